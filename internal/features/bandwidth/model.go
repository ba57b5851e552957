package bandwidth

import (
	"encoding/json"
	"fmt"
	"math"
	"time"

	"sprintdesk/internal/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Allocation is one project's share of a member's month. The percentage is
// derived from the day counts on save and never written by clients.
type Allocation struct {
	ProjectID           uuid.UUID `json:"projectId"`
	AllocatedDays       float64   `json:"allocatedDays"`
	AllocatedPercentage float64   `json:"allocatedPercentage"`
}

// BandwidthReport is one member's planned availability for a calendar month.
// At most one report exists per (team, user, year, month).
type BandwidthReport struct {
	ID     uuid.UUID `json:"id"     gorm:"column:id"`
	TeamID uuid.UUID `json:"teamId" gorm:"column:team_id"`
	UserID uuid.UUID `json:"userId" gorm:"column:user_id"`

	Month int `json:"month" gorm:"column:month"`
	Year  int `json:"year"  gorm:"column:year"`

	TotalWorkingDays int     `json:"totalWorkingDays" gorm:"column:total_working_days"`
	AvailableDays    float64 `json:"availableDays"    gorm:"column:available_days"`

	AllocationsRaw string       `json:"-"           gorm:"column:allocations_raw"`
	Allocations    []Allocation `json:"allocations" gorm:"-"`

	Status      ReportStatus `json:"status"      gorm:"column:status"`
	SubmittedAt *time.Time   `json:"submittedAt" gorm:"column:submitted_at"`
	ReviewedAt  *time.Time   `json:"reviewedAt"  gorm:"column:reviewed_at"`
	ReviewedBy  *uuid.UUID   `json:"reviewedBy"  gorm:"column:reviewed_by"`

	CreatedAt time.Time `json:"createdAt" gorm:"column:created_at"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"column:updated_at"`
}

func (BandwidthReport) TableName() string {
	return "bandwidth_reports"
}

func (r *BandwidthReport) BeforeSave(tx *gorm.DB) error {
	if len(r.Allocations) == 0 {
		r.AllocationsRaw = ""
		return nil
	}

	data, err := json.Marshal(r.Allocations)
	if err != nil {
		return err
	}

	r.AllocationsRaw = string(data)

	return nil
}

func (r *BandwidthReport) AfterFind(tx *gorm.DB) error {
	if r.AllocationsRaw == "" {
		r.Allocations = []Allocation{}
		return nil
	}

	return json.Unmarshal([]byte(r.AllocationsRaw), &r.Allocations)
}

// Validate checks the report's arithmetic invariants: availability cannot
// exceed the month's working days, and allocations cannot exceed
// availability.
func (r *BandwidthReport) Validate() error {
	if r.Month < 1 || r.Month > 12 {
		return apperrors.Validation(fmt.Sprintf("invalid month: %d", r.Month))
	}

	if r.AvailableDays < 0 {
		return apperrors.Validation("available days cannot be negative")
	}

	if r.AvailableDays > float64(r.TotalWorkingDays) {
		return apperrors.Validation(fmt.Sprintf(
			"available days (%.1f) cannot exceed the month's working days (%d)",
			r.AvailableDays, r.TotalWorkingDays))
	}

	var allocated float64
	for _, allocation := range r.Allocations {
		if allocation.AllocatedDays < 0 {
			return apperrors.Validation("allocated days cannot be negative")
		}

		allocated += allocation.AllocatedDays
	}

	if allocated > r.AvailableDays {
		return apperrors.Validation(fmt.Sprintf(
			"allocated days (%.1f) exceed available days (%.1f)",
			allocated, r.AvailableDays))
	}

	return nil
}

// DerivePercentages recomputes each allocation's percentage from its day
// count. With zero available days every percentage is zero.
func (r *BandwidthReport) DerivePercentages() {
	for i := range r.Allocations {
		if r.AvailableDays == 0 {
			r.Allocations[i].AllocatedPercentage = 0
			continue
		}

		share := r.Allocations[i].AllocatedDays / r.AvailableDays * 100
		r.Allocations[i].AllocatedPercentage = math.Round(share*10) / 10
	}
}

// ApplySubmit transitions draft -> submitted.
func (r *BandwidthReport) ApplySubmit(now time.Time) error {
	if r.Status != ReportStatusDraft {
		return apperrors.Conflict("only a draft report can be submitted")
	}

	submittedAt := now.UTC()
	r.Status = ReportStatusSubmitted
	r.SubmittedAt = &submittedAt

	return nil
}

// ApplyReview transitions submitted -> approved/rejected.
func (r *BandwidthReport) ApplyReview(approve bool, reviewerID uuid.UUID, now time.Time) error {
	if r.Status != ReportStatusSubmitted {
		return apperrors.Conflict("only a submitted report can be reviewed")
	}

	reviewedAt := now.UTC()
	r.ReviewedAt = &reviewedAt
	r.ReviewedBy = &reviewerID

	if approve {
		r.Status = ReportStatusApproved
	} else {
		r.Status = ReportStatusRejected
	}

	return nil
}

// ApplyReopen returns a rejected report to draft for rework.
func (r *BandwidthReport) ApplyReopen() error {
	if r.Status != ReportStatusRejected {
		return apperrors.Conflict("only a rejected report can be reopened")
	}

	r.Status = ReportStatusDraft
	r.SubmittedAt = nil
	r.ReviewedAt = nil
	r.ReviewedBy = nil

	return nil
}
