package projects_enums

type ProjectStatus string

const (
	ProjectStatusActive   ProjectStatus = "ACTIVE"
	ProjectStatusOnHold   ProjectStatus = "ON_HOLD"
	ProjectStatusArchived ProjectStatus = "ARCHIVED"
)

func (s ProjectStatus) IsValid() bool {
	switch s {
	case ProjectStatusActive, ProjectStatusOnHold, ProjectStatusArchived:
		return true
	default:
		return false
	}
}
