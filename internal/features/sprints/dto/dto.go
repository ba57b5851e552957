package sprints_dto

import (
	"time"

	sprints_models "sprintdesk/internal/features/sprints/models"
	tasks_models "sprintdesk/internal/features/tasks/models"

	"github.com/google/uuid"
)

type CreateSprintRequestDTO struct {
	Name      string    `json:"name"      binding:"required,min=1,max=255"`
	Goal      string    `json:"goal"      binding:"max=2000"`
	StartDate time.Time `json:"startDate" binding:"required"`
	EndDate   time.Time `json:"endDate"   binding:"required"`
	Capacity  int       `json:"capacity"  binding:"min=0"`
}

type UpdateSprintRequestDTO struct {
	Name      *string    `json:"name"      binding:"omitempty,min=1,max=255"`
	Goal      *string    `json:"goal"      binding:"omitempty,max=2000"`
	StartDate *time.Time `json:"startDate"`
	EndDate   *time.Time `json:"endDate"`
	Capacity  *int       `json:"capacity"  binding:"omitempty,min=0"`
}

type CompleteSprintRequestDTO struct {
	// Incomplete tasks move to this sprint; when nil they stay behind and
	// show up in the backlog's carry-over listing.
	MoveIncompleteToSprintID *uuid.UUID `json:"moveIncompleteToSprintId"`
	Retrospective            *string    `json:"retrospective" binding:"omitempty,max=10000"`
}

type MoveTasksRequestDTO struct {
	TaskIDs []uuid.UUID `json:"taskIds" binding:"required,min=1"`
}

type MoveTaskErrorDTO struct {
	TaskID uuid.UUID `json:"taskId"`
	Reason string    `json:"reason"`
}

type MoveTasksResponseDTO struct {
	Moved  []uuid.UUID        `json:"moved"`
	Failed []MoveTaskErrorDTO `json:"failed"`
}

// SprintResponseDTO decorates the stored sprint with its derived fields.
type SprintResponseDTO struct {
	*sprints_models.Sprint

	Duration      int  `json:"duration"`
	Progress      int  `json:"progress"`
	IsOverdue     bool `json:"isOverdue"`
	DaysRemaining int  `json:"daysRemaining"`
}

type ListSprintsResponseDTO struct {
	Sprints []*SprintResponseDTO `json:"sprints"`
}

type BacklogResponseDTO struct {
	Tasks []*tasks_models.Task `json:"tasks"`

	// CarryOver lists incomplete tasks from the most recently completed
	// sprint that were sent back to the backlog.
	CarryOver []*tasks_models.Task `json:"carryOver"`
}
