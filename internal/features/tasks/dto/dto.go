package tasks_dto

import (
	"time"

	tasks_enums "sprintdesk/internal/features/tasks/enums"
	tasks_models "sprintdesk/internal/features/tasks/models"

	"github.com/google/uuid"
)

type CreateTaskRequestDTO struct {
	Title        string                   `json:"title"        binding:"required,min=1,max=500"`
	Description  string                   `json:"description"  binding:"max=10000"`
	WorkItemType tasks_enums.WorkItemType `json:"workItemType" binding:"required"`
	Priority     tasks_enums.TaskPriority `json:"priority"`
	StoryPoints  int                      `json:"storyPoints"  binding:"min=0"`
	ParentTaskID *uuid.UUID               `json:"parentTaskId"`
	AssignedToID *uuid.UUID               `json:"assignedToId"`
	DueDate      *time.Time               `json:"dueDate"`
}

type UpdateTaskRequestDTO struct {
	Title        *string                   `json:"title"       binding:"omitempty,min=1,max=500"`
	Description  *string                   `json:"description" binding:"omitempty,max=10000"`
	Status       *tasks_enums.TaskStatus   `json:"status"`
	Priority     *tasks_enums.TaskPriority `json:"priority"`
	StoryPoints  *int                      `json:"storyPoints" binding:"omitempty,min=0"`
	ParentTaskID *uuid.UUID                `json:"parentTaskId"`
	DueDate      *time.Time                `json:"dueDate"`
}

type AssignTaskRequestDTO struct {
	AssigneeID *uuid.UUID `json:"assigneeId"`
}

type ListTasksRequestDTO struct {
	Status       *tasks_enums.TaskStatus `form:"status"`
	AssignedToID *uuid.UUID              `form:"assignedToId"`
	SprintID     *uuid.UUID              `form:"sprintId"`
	BacklogOnly  bool                    `form:"backlogOnly"`
}

type ListTasksResponseDTO struct {
	Tasks []*tasks_models.Task `json:"tasks"`
}
