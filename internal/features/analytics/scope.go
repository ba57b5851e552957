package analytics

import (
	teams_enums "sprintdesk/internal/features/teams/enums"
	teams_models "sprintdesk/internal/features/teams/models"

	"github.com/google/uuid"
)

// VisibleUserIDs computes the set of user ids the requester may see in
// dashboards and statistics. Admins and managers see every active member;
// everyone else sees themselves plus their direct reports. The scope is one
// level deep and is recomputed on every request, never cached.
func VisibleUserIDs(
	requesterID uuid.UUID,
	requesterRole teams_enums.TeamRole,
	activeMembers []*teams_models.TeamMembership,
) []uuid.UUID {
	visible := make([]uuid.UUID, 0, len(activeMembers))

	if requesterRole == teams_enums.TeamRoleAdmin || requesterRole == teams_enums.TeamRoleManager {
		for _, member := range activeMembers {
			visible = append(visible, member.UserID)
		}

		return visible
	}

	visible = append(visible, requesterID)

	for _, member := range activeMembers {
		if member.UserID == requesterID {
			continue
		}

		if member.ReportingManagerID != nil && *member.ReportingManagerID == requesterID {
			visible = append(visible, member.UserID)
		}
	}

	return visible
}
