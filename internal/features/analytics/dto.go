package analytics

import "github.com/google/uuid"

type SprintSummaryDTO struct {
	ActiveSprints    int64   `json:"activeSprints"    gorm:"column:active_sprints"`
	CompletedSprints int64   `json:"completedSprints" gorm:"column:completed_sprints"`
	AverageVelocity  float64 `json:"averageVelocity"  gorm:"column:average_velocity"`
}

type DashboardResponseDTO struct {
	VisibleMembers  int              `json:"visibleMembers"`
	TasksByStatus   map[string]int64 `json:"tasksByStatus"`
	OverdueTasks    int64            `json:"overdueTasks"`
	Sprints         SprintSummaryDTO `json:"sprints"`
	ReportsByStatus map[string]int64 `json:"reportsByStatus"`
	ReportingYear   int              `json:"reportingYear"`
	ReportingMonth  int              `json:"reportingMonth"`
}

type MemberStatsDTO struct {
	UserID               uuid.UUID `json:"userId"               gorm:"column:user_id"`
	UserEmail            string    `json:"userEmail"            gorm:"column:user_email"`
	TotalTasks           int64     `json:"totalTasks"           gorm:"column:total_tasks"`
	CompletedTasks       int64     `json:"completedTasks"       gorm:"column:completed_tasks"`
	OverdueTasks         int64     `json:"overdueTasks"         gorm:"column:overdue_tasks"`
	TotalStoryPoints     int64     `json:"totalStoryPoints"     gorm:"column:total_story_points"`
	CompletedStoryPoints int64     `json:"completedStoryPoints" gorm:"column:completed_story_points"`
}

type MemberStatsResponseDTO struct {
	Members []*MemberStatsDTO `json:"members"`
	Total   int               `json:"total"`
}
