package tasks_models

import (
	"time"

	tasks_enums "sprintdesk/internal/features/tasks/enums"

	"github.com/google/uuid"
)

type Task struct {
	ID          uuid.UUID                `json:"id"          gorm:"column:id"`
	TeamID      uuid.UUID                `json:"teamId"      gorm:"column:team_id"`
	ProjectID   uuid.UUID                `json:"projectId"   gorm:"column:project_id"`

	// SprintID is the sole signal of backlog-vs-sprint membership: nil means
	// the task sits in the project backlog.
	SprintID *uuid.UUID `json:"sprintId" gorm:"column:sprint_id"`

	Title        string                   `json:"title"        gorm:"column:title"`
	Description  string                   `json:"description"  gorm:"column:description"`
	WorkItemType tasks_enums.WorkItemType `json:"workItemType" gorm:"column:work_item_type"`
	Status       tasks_enums.TaskStatus   `json:"status"       gorm:"column:status"`
	Priority     tasks_enums.TaskPriority `json:"priority"     gorm:"column:priority"`
	AssignedToID *uuid.UUID               `json:"assignedToId" gorm:"column:assigned_to_id"`
	StoryPoints  int                      `json:"storyPoints"  gorm:"column:story_points"`
	ParentTaskID *uuid.UUID               `json:"parentTaskId" gorm:"column:parent_task_id"`
	DueDate      *time.Time               `json:"dueDate"      gorm:"column:due_date"`

	// CompletedAt is set exactly while Status is in the completed category
	// and cleared when the task reopens.
	CompletedAt *time.Time `json:"completedAt" gorm:"column:completed_at"`

	CreatedBy uuid.UUID `json:"createdBy" gorm:"column:created_by"`
	CreatedAt time.Time `json:"createdAt" gorm:"column:created_at"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"column:updated_at"`
}

func (Task) TableName() string {
	return "tasks"
}

// ApplyStatus moves the task to the given status and keeps CompletedAt in
// lockstep with the completed category.
func (t *Task) ApplyStatus(status tasks_enums.TaskStatus, now time.Time) {
	wasCompleted := t.Status.IsCompleted()
	t.Status = status

	switch {
	case status.IsCompleted() && !wasCompleted:
		completedAt := now.UTC()
		t.CompletedAt = &completedAt
	case !status.IsCompleted():
		t.CompletedAt = nil
	}
}
