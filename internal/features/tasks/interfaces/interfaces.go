package tasks_interfaces

import "github.com/google/uuid"

// SprintMetricsRefresher recomputes a sprint's aggregates after one of its
// tasks changed. Wired from the sprint feature to avoid a package cycle.
type SprintMetricsRefresher interface {
	RefreshSprintMetrics(sprintID uuid.UUID) error
}
