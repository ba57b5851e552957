package projects_models

import (
	"time"

	projects_enums "sprintdesk/internal/features/projects/enums"

	"github.com/google/uuid"
)

// ProjectMembership links a user to a project. At most one row exists per
// (project, user); the creator starts as OWNER.
type ProjectMembership struct {
	ID        uuid.UUID                  `json:"id"        gorm:"column:id"`
	UserID    uuid.UUID                  `json:"userId"    gorm:"column:user_id"`
	ProjectID uuid.UUID                  `json:"projectId" gorm:"column:project_id"`
	Role      projects_enums.ProjectRole `json:"role"      gorm:"column:role"`

	// Workload is the planned allocation of the member to this project,
	// as a 0-100 percentage.
	Workload int `json:"workload" gorm:"column:workload"`

	CreatedAt time.Time `json:"createdAt" gorm:"column:created_at"`
}

func (ProjectMembership) TableName() string {
	return "project_memberships"
}
