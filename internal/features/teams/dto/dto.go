package teams_dto

import (
	"time"

	"sprintdesk/internal/features/access"
	teams_enums "sprintdesk/internal/features/teams/enums"

	"github.com/google/uuid"
)

// Team DTOs
type CreateTeamRequestDTO struct {
	Name        string `json:"name"        binding:"required,min=1,max=255"`
	Description string `json:"description" binding:"max=2000"`
}

type UpdateTeamRequestDTO struct {
	Name        string `json:"name"        binding:"required,min=1,max=255"`
	Description string `json:"description" binding:"max=2000"`
}

type TeamResponseDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	OwnerID     uuid.UUID `json:"ownerId"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`

	// Requester's role in this team (populated when fetching for a specific user)
	UserRole *teams_enums.TeamRole `json:"userRole,omitempty"`
}

type ListTeamsResponseDTO struct {
	Teams []TeamResponseDTO `json:"teams"`
}

// Membership DTOs
type AddMemberRequestDTO struct {
	Email string               `json:"email" binding:"required,email"`
	Role  teams_enums.TeamRole `json:"role"  binding:"required"`
}

type BulkAddMembersRequestDTO struct {
	Members []AddMemberRequestDTO `json:"members" binding:"required,min=1,dive"`
}

// BulkAddMembersResponseDTO reports per-item outcomes: failures are collected
// alongside successes instead of aborting the whole batch.
type BulkAddMembersResponseDTO struct {
	Added  []TeamMemberResponseDTO `json:"added"`
	Failed []BulkMemberErrorDTO    `json:"failed"`
}

type BulkMemberErrorDTO struct {
	Email string `json:"email"`
	Error string `json:"error"`
}

type ChangeMemberRoleRequestDTO struct {
	Role teams_enums.TeamRole `json:"role" binding:"required"`
}

type SetReportingManagerRequestDTO struct {
	ReportingManagerID *uuid.UUID `json:"reportingManagerId"`
}

type TeamMemberResponseDTO struct {
	ID                 uuid.UUID                    `json:"id"`
	UserID             uuid.UUID                    `json:"userId"`
	Email              string                       `json:"email"`
	Role               teams_enums.TeamRole         `json:"role"`
	Status             teams_enums.MembershipStatus `json:"status"`
	ReportingManagerID *uuid.UUID                   `json:"reportingManagerId"`
	JoinedAt           time.Time                    `json:"joinedAt"`

	// Derived on read, never persisted.
	Permissions access.TeamPermissionFlags `json:"permissions" gorm:"-"`
}

type GetMembersResponseDTO struct {
	Members []TeamMemberResponseDTO `json:"members"`
}
