package tasks_models

import (
	"fmt"

	"sprintdesk/internal/apperrors"
	tasks_enums "sprintdesk/internal/features/tasks/enums"

	"github.com/google/uuid"
)

// ValidateHierarchy enforces the work-item parenting rules before any write:
// a subtask must have a parent; the parent must belong to the same project,
// must not be the task itself, and must strictly outrank the child.
func ValidateHierarchy(
	childID uuid.UUID,
	childType tasks_enums.WorkItemType,
	childProjectID uuid.UUID,
	parent *Task,
) error {
	if parent == nil {
		if childType.RequiresParent() {
			return apperrors.Validation(fmt.Sprintf("work items of type %s require a parent task", childType))
		}

		return nil
	}

	if parent.ID == childID {
		return apperrors.Validation("a task cannot be its own parent")
	}

	if parent.ProjectID != childProjectID {
		return apperrors.Validation("parent task must belong to the same project")
	}

	if parent.WorkItemType.Rank() >= childType.Rank() {
		return apperrors.Validation(fmt.Sprintf(
			"a %s cannot be nested under a %s",
			childType, parent.WorkItemType,
		))
	}

	return nil
}
