package teams_interfaces

import "github.com/google/uuid"

// TeamDeletionListener lets other features remove their team-scoped rows
// before the team itself is deleted. Listeners run in registration order;
// the first failure aborts the cascade and is reported to the caller.
type TeamDeletionListener interface {
	OnBeforeTeamDeletion(teamID uuid.UUID) error
}
