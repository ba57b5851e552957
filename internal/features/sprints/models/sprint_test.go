package sprints_models

import (
	"testing"
	"time"

	"sprintdesk/internal/apperrors"
	sprints_enums "sprintdesk/internal/features/sprints/enums"
	tasks_enums "sprintdesk/internal/features/tasks/enums"
	tasks_models "sprintdesk/internal/features/tasks/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func planningSprint() *Sprint {
	return &Sprint{
		Status:    sprints_enums.SprintStatusPlanning,
		StartDate: time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
	}
}

func taskWithPoints(points int, status tasks_enums.TaskStatus) *tasks_models.Task {
	return &tasks_models.Task{StoryPoints: points, Status: status}
}

func Test_RecomputeMetrics(t *testing.T) {
	sprint := planningSprint()

	sprint.RecomputeMetrics([]*tasks_models.Task{
		taskWithPoints(3, tasks_enums.TaskStatusDone),
		taskWithPoints(5, tasks_enums.TaskStatusTodo),
	})

	assert.Equal(t, 8, sprint.Metrics.TotalStoryPoints)
	assert.Equal(t, 3, sprint.Metrics.CompletedStoryPoints)
	assert.Equal(t, 2, sprint.Metrics.TotalTasks)
	assert.Equal(t, 1, sprint.Metrics.CompletedTasks)
}

func Test_RecomputeMetrics_Idempotent(t *testing.T) {
	sprint := planningSprint()
	tasks := []*tasks_models.Task{
		taskWithPoints(3, tasks_enums.TaskStatusDone),
		taskWithPoints(5, tasks_enums.TaskStatusTodo),
	}

	sprint.RecomputeMetrics(tasks)
	first := sprint.Metrics

	sprint.RecomputeMetrics(tasks)
	assert.Equal(t, first, sprint.Metrics)
}

func Test_RecomputeMetrics_MissingPointsCountAsZero(t *testing.T) {
	sprint := planningSprint()

	sprint.RecomputeMetrics([]*tasks_models.Task{
		taskWithPoints(0, tasks_enums.TaskStatusDone),
		taskWithPoints(2, tasks_enums.TaskStatusInProgress),
	})

	assert.Equal(t, 2, sprint.Metrics.TotalStoryPoints)
	assert.Equal(t, 0, sprint.Metrics.CompletedStoryPoints)
	assert.Equal(t, 1, sprint.Metrics.CompletedTasks)
}

func Test_ApplyStart_SeedsBurndown(t *testing.T) {
	sprint := planningSprint()
	sprint.RecomputeMetrics([]*tasks_models.Task{
		taskWithPoints(3, tasks_enums.TaskStatusDone),
		taskWithPoints(5, tasks_enums.TaskStatusTodo),
	})

	now := time.Date(2025, 6, 2, 9, 30, 0, 0, time.UTC)
	require.NoError(t, sprint.ApplyStart(now))

	assert.Equal(t, sprints_enums.SprintStatusActive, sprint.Status)
	require.NotNil(t, sprint.ActualStartDate)
	assert.Equal(t, now, *sprint.ActualStartDate)

	require.Len(t, sprint.Burndown, 1)
	assert.Equal(t, time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC), sprint.Burndown[0].Date)
	assert.Equal(t, 5, sprint.Burndown[0].Remaining)
	assert.Equal(t, 3, sprint.Burndown[0].Completed)
}

func Test_ApplyStart_RejectedOutsidePlanning(t *testing.T) {
	for _, status := range []sprints_enums.SprintStatus{
		sprints_enums.SprintStatusActive,
		sprints_enums.SprintStatusCompleted,
		sprints_enums.SprintStatusCancelled,
	} {
		sprint := planningSprint()
		sprint.Status = status

		err := sprint.ApplyStart(time.Now())
		assert.True(t, apperrors.IsKind(err, apperrors.KindConflict), "status %s", status)
	}
}

func Test_ApplyComplete_FreezesVelocityAndAppendsFinalPoint(t *testing.T) {
	sprint := planningSprint()
	sprint.RecomputeMetrics([]*tasks_models.Task{
		taskWithPoints(3, tasks_enums.TaskStatusDone),
		taskWithPoints(5, tasks_enums.TaskStatusTodo),
	})

	startDay := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	require.NoError(t, sprint.ApplyStart(startDay))

	endDay := time.Date(2025, 6, 15, 17, 0, 0, 0, time.UTC)
	require.NoError(t, sprint.ApplyComplete(endDay))

	assert.Equal(t, sprints_enums.SprintStatusCompleted, sprint.Status)
	assert.Equal(t, 3, sprint.Metrics.Velocity)
	require.NotNil(t, sprint.ActualEndDate)

	require.Len(t, sprint.Burndown, 2)
	final := sprint.Burndown[1]
	assert.Equal(t, 5, final.Remaining)
	assert.Equal(t, 3, final.Completed)
}

func Test_ApplyComplete_RejectedOutsideActive(t *testing.T) {
	sprint := planningSprint()

	err := sprint.ApplyComplete(time.Now())
	assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))
}

func Test_ApplyCancel(t *testing.T) {
	sprint := planningSprint()
	require.NoError(t, sprint.ApplyCancel())
	assert.Equal(t, sprints_enums.SprintStatusCancelled, sprint.Status)

	completed := planningSprint()
	completed.Status = sprints_enums.SprintStatusCompleted
	assert.True(t, apperrors.IsKind(completed.ApplyCancel(), apperrors.KindConflict))

	assert.True(t, apperrors.IsKind(sprint.ApplyCancel(), apperrors.KindConflict))
}

func Test_RecordBurndownPoint_OnePointPerDay(t *testing.T) {
	sprint := planningSprint()
	sprint.RecomputeMetrics([]*tasks_models.Task{
		taskWithPoints(3, tasks_enums.TaskStatusDone),
		taskWithPoints(5, tasks_enums.TaskStatusTodo),
	})
	require.NoError(t, sprint.ApplyStart(time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)))

	// Another task completes later the same day: the point is replaced.
	sprint.RecomputeMetrics([]*tasks_models.Task{
		taskWithPoints(3, tasks_enums.TaskStatusDone),
		taskWithPoints(5, tasks_enums.TaskStatusDone),
	})
	sprint.RecordBurndownPoint(time.Date(2025, 6, 2, 16, 0, 0, 0, time.UTC))

	require.Len(t, sprint.Burndown, 1)
	assert.Equal(t, 0, sprint.Burndown[0].Remaining)
	assert.Equal(t, 8, sprint.Burndown[0].Completed)

	// The next day appends a fresh point.
	sprint.RecordBurndownPoint(time.Date(2025, 6, 3, 10, 0, 0, 0, time.UTC))
	assert.Len(t, sprint.Burndown, 2)
}

func Test_DerivedFields(t *testing.T) {
	sprint := planningSprint()
	assert.Equal(t, 14, sprint.Duration())

	assert.Equal(t, 0, sprint.Progress())

	sprint.RecomputeMetrics([]*tasks_models.Task{
		taskWithPoints(1, tasks_enums.TaskStatusDone),
		taskWithPoints(2, tasks_enums.TaskStatusTodo),
	})
	assert.Equal(t, 33, sprint.Progress())

	// Planning sprints are never overdue and report zero days remaining.
	after := sprint.EndDate.AddDate(0, 0, 2)
	assert.False(t, sprint.IsOverdue(after))
	assert.Equal(t, 0, sprint.DaysRemaining(after))

	sprint.Status = sprints_enums.SprintStatusActive
	assert.True(t, sprint.IsOverdue(after))
	assert.Equal(t, 0, sprint.DaysRemaining(after))

	during := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	assert.False(t, sprint.IsOverdue(during))
	assert.Equal(t, 5, sprint.DaysRemaining(during))
}
