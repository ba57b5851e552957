package projects_dto

import (
	"time"

	"sprintdesk/internal/features/access"
	projects_enums "sprintdesk/internal/features/projects/enums"

	"github.com/google/uuid"
)

type CreateProjectRequestDTO struct {
	Name        string     `json:"name"        binding:"required,min=1,max=255"`
	Description string     `json:"description" binding:"max=2000"`
	TeamLeadID  *uuid.UUID `json:"teamLeadId"`
}

type UpdateProjectRequestDTO struct {
	Name        *string                       `json:"name"        binding:"omitempty,min=1,max=255"`
	Description *string                       `json:"description" binding:"omitempty,max=2000"`
	Status      *projects_enums.ProjectStatus `json:"status"`
	TeamLeadID  *uuid.UUID                    `json:"teamLeadId"`
}

type ProjectResponseDTO struct {
	ID             uuid.UUID                    `json:"id"`
	TeamID         uuid.UUID                    `json:"teamId"`
	Name           string                       `json:"name"`
	Description    string                       `json:"description"`
	Status         projects_enums.ProjectStatus `json:"status"`
	TeamLeadID     *uuid.UUID                   `json:"teamLeadId,omitempty"`
	ActiveSprintID *uuid.UUID                   `json:"activeSprintId,omitempty"`
	CreatedBy      uuid.UUID                    `json:"createdBy"`
	CreatedAt      time.Time                    `json:"createdAt"`

	// Populated when fetching projects for a specific user.
	UserRole *projects_enums.ProjectRole `json:"userRole,omitempty" gorm:"column:user_role"`
}

type ListProjectsResponseDTO struct {
	Projects []ProjectResponseDTO `json:"projects"`
}

type AddMemberRequestDTO struct {
	Email    string                     `json:"email"    binding:"required,email"`
	Role     projects_enums.ProjectRole `json:"role"     binding:"required"`
	Workload int                        `json:"workload" binding:"min=0,max=100"`
}

type ChangeMemberRoleRequestDTO struct {
	Role projects_enums.ProjectRole `json:"role" binding:"required"`
}

type SetWorkloadRequestDTO struct {
	Workload int `json:"workload" binding:"min=0,max=100"`
}

type TransferOwnershipRequestDTO struct {
	NewOwnerEmail string `json:"newOwnerEmail" binding:"required,email"`
}

type ProjectMemberResponseDTO struct {
	ID        uuid.UUID                  `json:"id"        gorm:"column:id"`
	UserID    uuid.UUID                  `json:"userId"    gorm:"column:user_id"`
	Email     string                     `json:"email"     gorm:"column:email"`
	Role      projects_enums.ProjectRole `json:"role"      gorm:"column:role"`
	Workload  int                        `json:"workload"  gorm:"column:workload"`
	CreatedAt time.Time                  `json:"createdAt" gorm:"column:created_at"`

	// Derived from the role on read, never stored.
	Permissions access.ProjectPermissionFlags `json:"permissions" gorm:"-"`
}

type GetMembersResponseDTO struct {
	Members []*ProjectMemberResponseDTO `json:"members"`
}
