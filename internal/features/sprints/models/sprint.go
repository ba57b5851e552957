package sprints_models

import (
	"encoding/json"
	"math"
	"time"

	"sprintdesk/internal/apperrors"
	sprints_enums "sprintdesk/internal/features/sprints/enums"
	tasks_models "sprintdesk/internal/features/tasks/models"
	dates_util "sprintdesk/internal/util/dates"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BurndownPoint is a per-day snapshot of remaining vs. completed story
// points. Dates are normalized to UTC midnight; at most one point exists per
// calendar day.
type BurndownPoint struct {
	Date      time.Time `json:"date"`
	Remaining int       `json:"remaining"`
	Completed int       `json:"completed"`
}

type SprintMetrics struct {
	TotalStoryPoints     int `json:"totalStoryPoints"     gorm:"column:total_story_points"`
	CompletedStoryPoints int `json:"completedStoryPoints" gorm:"column:completed_story_points"`
	TotalTasks           int `json:"totalTasks"           gorm:"column:total_tasks"`
	CompletedTasks       int `json:"completedTasks"       gorm:"column:completed_tasks"`

	// Velocity is frozen at completion time as a snapshot of
	// CompletedStoryPoints.
	Velocity int `json:"velocity" gorm:"column:velocity"`
}

type Sprint struct {
	ID        uuid.UUID `json:"id"        gorm:"column:id"`
	ProjectID uuid.UUID `json:"projectId" gorm:"column:project_id"`
	TeamID    uuid.UUID `json:"teamId"    gorm:"column:team_id"`
	Name      string    `json:"name"      gorm:"column:name"`
	Goal      string    `json:"goal"      gorm:"column:goal"`

	StartDate       time.Time  `json:"startDate"       gorm:"column:start_date"`
	EndDate         time.Time  `json:"endDate"         gorm:"column:end_date"`
	ActualStartDate *time.Time `json:"actualStartDate" gorm:"column:actual_start_date"`
	ActualEndDate   *time.Time `json:"actualEndDate"   gorm:"column:actual_end_date"`

	Status        sprints_enums.SprintStatus `json:"status"        gorm:"column:status"`
	Capacity      int                        `json:"capacity"      gorm:"column:capacity"`
	Retrospective *string                    `json:"retrospective" gorm:"column:retrospective"`

	Metrics SprintMetrics `json:"metrics" gorm:"embedded"`

	BurndownRaw string          `json:"-"        gorm:"column:burndown_raw"`
	Burndown    []BurndownPoint `json:"burndown" gorm:"-"`

	CreatedBy uuid.UUID `json:"createdBy" gorm:"column:created_by"`
	CreatedAt time.Time `json:"createdAt" gorm:"column:created_at"`
}

func (Sprint) TableName() string {
	return "sprints"
}

func (s *Sprint) BeforeSave(tx *gorm.DB) error {
	if len(s.Burndown) == 0 {
		s.BurndownRaw = ""
		return nil
	}

	data, err := json.Marshal(s.Burndown)
	if err != nil {
		return err
	}

	s.BurndownRaw = string(data)

	return nil
}

func (s *Sprint) AfterFind(tx *gorm.DB) error {
	if s.BurndownRaw == "" {
		s.Burndown = []BurndownPoint{}
		return nil
	}

	return json.Unmarshal([]byte(s.BurndownRaw), &s.Burndown)
}

// RecomputeMetrics rebuilds the counters from the sprint's current task set.
// Missing story points count as 0. The scan is idempotent: repeating it with
// an unchanged task set yields identical metrics.
func (s *Sprint) RecomputeMetrics(tasks []*tasks_models.Task) {
	metrics := SprintMetrics{Velocity: s.Metrics.Velocity}

	for _, task := range tasks {
		metrics.TotalTasks++
		metrics.TotalStoryPoints += task.StoryPoints

		if task.Status.IsCompleted() {
			metrics.CompletedTasks++
			metrics.CompletedStoryPoints += task.StoryPoints
		}
	}

	s.Metrics = metrics
}

// RecordBurndownPoint upserts the snapshot for the given day: a second
// computation on the same calendar day updates the existing point in place
// instead of appending a duplicate.
func (s *Sprint) RecordBurndownPoint(now time.Time) {
	point := BurndownPoint{
		Date:      dates_util.StartOfDay(now),
		Remaining: s.Metrics.TotalStoryPoints - s.Metrics.CompletedStoryPoints,
		Completed: s.Metrics.CompletedStoryPoints,
	}

	for i := range s.Burndown {
		if s.Burndown[i].Date.Equal(point.Date) {
			s.Burndown[i] = point
			return
		}
	}

	s.Burndown = append(s.Burndown, point)
}

// ApplyStart transitions planning -> active. The caller is responsible for
// the "no other active sprint in the project" precondition, enforced with an
// atomic claim on the project's active-sprint pointer.
func (s *Sprint) ApplyStart(now time.Time) error {
	if s.Status != sprints_enums.SprintStatusPlanning {
		return apperrors.Conflict("only a sprint in planning can be started")
	}

	now = now.UTC()
	s.Status = sprints_enums.SprintStatusActive
	s.ActualStartDate = &now
	s.Burndown = []BurndownPoint{{
		Date:      dates_util.StartOfDay(now),
		Remaining: s.Metrics.TotalStoryPoints - s.Metrics.CompletedStoryPoints,
		Completed: s.Metrics.CompletedStoryPoints,
	}}

	return nil
}

// ApplyComplete transitions active -> completed, freezing velocity as the
// completed-story-points snapshot and appending a final burndown point.
// Metrics must be recomputed by the caller before this is applied.
func (s *Sprint) ApplyComplete(now time.Time) error {
	if s.Status != sprints_enums.SprintStatusActive {
		return apperrors.Conflict("only an active sprint can be completed")
	}

	now = now.UTC()
	s.Status = sprints_enums.SprintStatusCompleted
	s.ActualEndDate = &now
	s.Metrics.Velocity = s.Metrics.CompletedStoryPoints
	s.RecordBurndownPoint(now)

	return nil
}

// ApplyCancel transitions planning/active -> cancelled.
func (s *Sprint) ApplyCancel() error {
	if s.Status == sprints_enums.SprintStatusCompleted {
		return apperrors.Conflict("a completed sprint cannot be cancelled")
	}

	if s.Status == sprints_enums.SprintStatusCancelled {
		return apperrors.Conflict("sprint is already cancelled")
	}

	s.Status = sprints_enums.SprintStatusCancelled

	return nil
}

// Duration is the planned sprint length in calendar days, inclusive.
func (s *Sprint) Duration() int {
	return dates_util.InclusiveDays(s.StartDate, s.EndDate)
}

// Progress is the completed share of story points, as a rounded percentage.
func (s *Sprint) Progress() int {
	if s.Metrics.TotalStoryPoints == 0 {
		return 0
	}

	ratio := float64(s.Metrics.CompletedStoryPoints) / float64(s.Metrics.TotalStoryPoints)

	return int(math.Round(ratio * 100))
}

func (s *Sprint) IsOverdue(now time.Time) bool {
	return s.Status == sprints_enums.SprintStatusActive && now.UTC().After(s.EndDate)
}

func (s *Sprint) DaysRemaining(now time.Time) int {
	if s.Status != sprints_enums.SprintStatusActive {
		return 0
	}

	return dates_util.DaysUntil(now, s.EndDate)
}
