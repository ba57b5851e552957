package sprints_enums

type SprintStatus string

const (
	SprintStatusPlanning  SprintStatus = "PLANNING"
	SprintStatusActive    SprintStatus = "ACTIVE"
	SprintStatusCompleted SprintStatus = "COMPLETED"
	SprintStatusCancelled SprintStatus = "CANCELLED"
)

func (s SprintStatus) IsValid() bool {
	switch s {
	case SprintStatusPlanning, SprintStatusActive, SprintStatusCompleted, SprintStatusCancelled:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further lifecycle transitions are possible.
func (s SprintStatus) IsTerminal() bool {
	return s == SprintStatusCompleted || s == SprintStatusCancelled
}
