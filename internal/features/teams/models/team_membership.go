package teams_models

import (
	"time"

	teams_enums "sprintdesk/internal/features/teams/enums"

	"github.com/google/uuid"
)

// TeamMembership links a user to a team. At most one row exists per
// (team, user) pair; removal is a hard delete.
type TeamMembership struct {
	ID                 uuid.UUID                    `json:"id"                 gorm:"column:id"`
	TeamID             uuid.UUID                    `json:"teamId"             gorm:"column:team_id"`
	UserID             uuid.UUID                    `json:"userId"             gorm:"column:user_id"`
	Role               teams_enums.TeamRole         `json:"role"               gorm:"column:role"`
	Status             teams_enums.MembershipStatus `json:"status"             gorm:"column:status"`
	ReportingManagerID *uuid.UUID                   `json:"reportingManagerId" gorm:"column:reporting_manager_id"`
	JoinedAt           time.Time                    `json:"joinedAt"           gorm:"column:joined_at"`
}

func (TeamMembership) TableName() string {
	return "team_memberships"
}

func (m *TeamMembership) IsActiveMember() bool {
	return m.Status == teams_enums.MembershipStatusActive
}
