package tasks_enums

type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "TODO"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusInReview   TaskStatus = "IN_REVIEW"
	TaskStatusBlocked    TaskStatus = "BLOCKED"
	TaskStatusDone       TaskStatus = "DONE"
)

func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusInReview, TaskStatusBlocked, TaskStatusDone:
		return true
	default:
		return false
	}
}

// IsCompleted reports whether the status counts as finished for sprint
// metrics and completedAt bookkeeping.
func (s TaskStatus) IsCompleted() bool {
	return s == TaskStatusDone
}
