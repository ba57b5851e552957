package tasks_repositories

import (
	"errors"
	"time"

	tasks_enums "sprintdesk/internal/features/tasks/enums"
	tasks_models "sprintdesk/internal/features/tasks/models"
	"sprintdesk/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TaskRepository struct{}

type TaskFilter struct {
	Status       *tasks_enums.TaskStatus
	AssignedToID *uuid.UUID
	SprintID     *uuid.UUID
	BacklogOnly  bool
}

func (r *TaskRepository) CreateTask(task *tasks_models.Task) error {
	if task.ID == uuid.Nil {
		task.ID = uuid.New()
	}

	now := time.Now().UTC()
	if task.CreatedAt.IsZero() {
		task.CreatedAt = now
	}
	task.UpdatedAt = now

	return storage.GetDb().Create(task).Error
}

// GetTaskByID returns nil without error when no task exists.
func (r *TaskRepository) GetTaskByID(taskID uuid.UUID) (*tasks_models.Task, error) {
	var task tasks_models.Task

	err := storage.GetDb().Where("id = ?", taskID).First(&task).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &task, nil
}

func (r *TaskRepository) UpdateTask(task *tasks_models.Task) error {
	task.UpdatedAt = time.Now().UTC()

	return storage.GetDb().Save(task).Error
}

func (r *TaskRepository) DeleteTask(taskID uuid.UUID) error {
	return storage.GetDb().Delete(&tasks_models.Task{}, taskID).Error
}

func (r *TaskRepository) GetTasksByProject(
	projectID uuid.UUID,
	filter *TaskFilter,
) ([]*tasks_models.Task, error) {
	tasks := make([]*tasks_models.Task, 0)

	query := storage.GetDb().Where("project_id = ?", projectID)

	if filter != nil {
		if filter.Status != nil {
			query = query.Where("status = ?", *filter.Status)
		}

		if filter.AssignedToID != nil {
			query = query.Where("assigned_to_id = ?", *filter.AssignedToID)
		}

		if filter.SprintID != nil {
			query = query.Where("sprint_id = ?", *filter.SprintID)
		}

		if filter.BacklogOnly {
			query = query.Where("sprint_id IS NULL")
		}
	}

	err := query.Order("created_at DESC").Find(&tasks).Error

	return tasks, err
}

func (r *TaskRepository) GetTasksBySprint(sprintID uuid.UUID) ([]*tasks_models.Task, error) {
	tasks := make([]*tasks_models.Task, 0)

	err := storage.GetDb().
		Where("sprint_id = ?", sprintID).
		Order("created_at ASC").
		Find(&tasks).Error

	return tasks, err
}

func (r *TaskRepository) GetIncompleteTasksBySprint(sprintID uuid.UUID) ([]*tasks_models.Task, error) {
	tasks := make([]*tasks_models.Task, 0)

	err := storage.GetDb().
		Where("sprint_id = ? AND status != ?", sprintID, tasks_enums.TaskStatusDone).
		Find(&tasks).Error

	return tasks, err
}

func (r *TaskRepository) AssignTasksToSprint(taskIDs []uuid.UUID, sprintID uuid.UUID) error {
	return storage.GetDb().
		Model(&tasks_models.Task{}).
		Where("id IN ?", taskIDs).
		Updates(map[string]any{"sprint_id": sprintID, "updated_at": time.Now().UTC()}).Error
}

// DetachTaskFromSprint returns the task to the backlog.
func (r *TaskRepository) DetachTaskFromSprint(taskID uuid.UUID) error {
	return storage.GetDb().
		Model(&tasks_models.Task{}).
		Where("id = ?", taskID).
		Updates(map[string]any{"sprint_id": nil, "updated_at": time.Now().UTC()}).Error
}

// DetachAllTasksFromSprint moves every task of the sprint to the backlog.
func (r *TaskRepository) DetachAllTasksFromSprint(sprintID uuid.UUID) error {
	return storage.GetDb().
		Model(&tasks_models.Task{}).
		Where("sprint_id = ?", sprintID).
		Updates(map[string]any{"sprint_id": nil, "updated_at": time.Now().UTC()}).Error
}

// RedirectIncompleteTasks moves the sprint's unfinished tasks to the target
// sprint, or to the backlog when target is nil.
func (r *TaskRepository) RedirectIncompleteTasks(fromSprintID uuid.UUID, toSprintID *uuid.UUID) error {
	return storage.GetDb().
		Model(&tasks_models.Task{}).
		Where("sprint_id = ? AND status != ?", fromSprintID, tasks_enums.TaskStatusDone).
		Updates(map[string]any{"sprint_id": toSprintID, "updated_at": time.Now().UTC()}).Error
}

// DetachChildren clears parent references so deleting a parent never orphans
// a hierarchy.
func (r *TaskRepository) DetachChildren(parentTaskID uuid.UUID) error {
	return storage.GetDb().
		Model(&tasks_models.Task{}).
		Where("parent_task_id = ?", parentTaskID).
		Update("parent_task_id", nil).Error
}

func (r *TaskRepository) GetOverdueTasks(now time.Time) ([]*tasks_models.Task, error) {
	tasks := make([]*tasks_models.Task, 0)

	err := storage.GetDb().
		Where("due_date IS NOT NULL AND due_date < ? AND status != ? AND assigned_to_id IS NOT NULL",
			now, tasks_enums.TaskStatusDone).
		Find(&tasks).Error

	return tasks, err
}

func (r *TaskRepository) DeleteByProject(projectID uuid.UUID) error {
	return storage.GetDb().Where("project_id = ?", projectID).Delete(&tasks_models.Task{}).Error
}
