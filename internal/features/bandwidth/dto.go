package bandwidth

import "github.com/google/uuid"

type AllocationRequestDTO struct {
	ProjectID     uuid.UUID `json:"projectId"     binding:"required"`
	AllocatedDays float64   `json:"allocatedDays" binding:"min=0"`
}

type CreateReportRequestDTO struct {
	Month         int                    `json:"month" binding:"required,min=1,max=12"`
	Year          int                    `json:"year"  binding:"required,min=2000,max=2200"`
	AvailableDays float64                `json:"availableDays" binding:"min=0"`
	Allocations   []AllocationRequestDTO `json:"allocations"`

	// TotalWorkingDays defaults to the month's weekday count when omitted.
	TotalWorkingDays *int `json:"totalWorkingDays" binding:"omitempty,min=0,max=31"`
}

type UpdateReportRequestDTO struct {
	AvailableDays *float64               `json:"availableDays" binding:"omitempty,min=0"`
	Allocations   []AllocationRequestDTO `json:"allocations"`
}

type RejectReportRequestDTO struct {
	Reason string `json:"reason" binding:"max=2000"`
}

type ListReportsResponseDTO struct {
	Reports []*BandwidthReport `json:"reports"`
}
