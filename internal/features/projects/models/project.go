package projects_models

import (
	"time"

	projects_enums "sprintdesk/internal/features/projects/enums"

	"github.com/google/uuid"
)

type Project struct {
	ID          uuid.UUID                   `json:"id"          gorm:"column:id"`
	TeamID      uuid.UUID                   `json:"teamId"      gorm:"column:team_id"`
	Name        string                      `json:"name"        gorm:"column:name"`
	Description string                      `json:"description" gorm:"column:description"`
	Status      projects_enums.ProjectStatus `json:"status"     gorm:"column:status"`

	// TeamLeadID is denormalized on the project: the lead may invite and
	// remove project members without holding a membership row.
	TeamLeadID *uuid.UUID `json:"teamLeadId" gorm:"column:team_lead_id"`

	// ActiveSprintID is the compare-and-swap pointer guaranteeing at most
	// one active sprint per project. It is claimed atomically on sprint
	// start and released on complete/cancel.
	ActiveSprintID *uuid.UUID `json:"activeSprintId" gorm:"column:active_sprint_id"`

	CreatedBy uuid.UUID `json:"createdBy" gorm:"column:created_by"`
	CreatedAt time.Time `json:"createdAt" gorm:"column:created_at"`

	// Used for caching non-existent projects
	IsNotExists bool `json:"isNotExists,omitempty" gorm:"-"`
}

func (Project) TableName() string {
	return "projects"
}
