package bandwidth

import (
	"testing"
	"time"

	"sprintdesk/internal/apperrors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDraftReport() *BandwidthReport {
	return &BandwidthReport{
		ID:               uuid.New(),
		TeamID:           uuid.New(),
		UserID:           uuid.New(),
		Month:            6,
		Year:             2025,
		TotalWorkingDays: 21,
		AvailableDays:    18,
		Status:           ReportStatusDraft,
	}
}

func TestValidate_AcceptsReportWithinLimits(t *testing.T) {
	report := newDraftReport()
	report.Allocations = []Allocation{
		{ProjectID: uuid.New(), AllocatedDays: 10},
		{ProjectID: uuid.New(), AllocatedDays: 8},
	}

	require.NoError(t, report.Validate())
}

func TestValidate_RejectsInvalidMonth(t *testing.T) {
	report := newDraftReport()
	report.Month = 13

	err := report.Validate()
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}

func TestValidate_RejectsAvailabilityAboveWorkingDays(t *testing.T) {
	report := newDraftReport()
	report.AvailableDays = 22

	err := report.Validate()
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}

func TestValidate_RejectsNegativeAllocation(t *testing.T) {
	report := newDraftReport()
	report.Allocations = []Allocation{
		{ProjectID: uuid.New(), AllocatedDays: -1},
	}

	err := report.Validate()
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}

func TestValidate_RejectsOverAllocation(t *testing.T) {
	report := newDraftReport()
	report.Allocations = []Allocation{
		{ProjectID: uuid.New(), AllocatedDays: 10},
		{ProjectID: uuid.New(), AllocatedDays: 9},
	}

	err := report.Validate()
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}

func TestDerivePercentages_RoundsToOneDecimal(t *testing.T) {
	report := newDraftReport()
	report.AvailableDays = 18
	report.Allocations = []Allocation{
		{ProjectID: uuid.New(), AllocatedDays: 12},
		{ProjectID: uuid.New(), AllocatedDays: 5},
	}

	report.DerivePercentages()

	assert.InDelta(t, 66.7, report.Allocations[0].AllocatedPercentage, 0.001)
	assert.InDelta(t, 27.8, report.Allocations[1].AllocatedPercentage, 0.001)
}

func TestDerivePercentages_ZeroAvailabilityYieldsZero(t *testing.T) {
	report := newDraftReport()
	report.AvailableDays = 0
	report.Allocations = []Allocation{
		{ProjectID: uuid.New(), AllocatedDays: 0},
	}

	report.DerivePercentages()

	assert.Equal(t, float64(0), report.Allocations[0].AllocatedPercentage)
}

func TestApplySubmit_MarksDraftSubmitted(t *testing.T) {
	report := newDraftReport()
	now := time.Date(2025, 6, 3, 9, 0, 0, 0, time.UTC)

	require.NoError(t, report.ApplySubmit(now))
	assert.Equal(t, ReportStatusSubmitted, report.Status)
	require.NotNil(t, report.SubmittedAt)
	assert.Equal(t, now, *report.SubmittedAt)
}

func TestApplySubmit_RejectsNonDraft(t *testing.T) {
	report := newDraftReport()
	report.Status = ReportStatusSubmitted

	err := report.ApplySubmit(time.Now())
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))
}

func TestApplyReview_ApprovesSubmittedReport(t *testing.T) {
	report := newDraftReport()
	require.NoError(t, report.ApplySubmit(time.Now()))

	reviewerID := uuid.New()
	require.NoError(t, report.ApplyReview(true, reviewerID, time.Now()))

	assert.Equal(t, ReportStatusApproved, report.Status)
	require.NotNil(t, report.ReviewedBy)
	assert.Equal(t, reviewerID, *report.ReviewedBy)
	assert.NotNil(t, report.ReviewedAt)
}

func TestApplyReview_RejectsDraftReport(t *testing.T) {
	report := newDraftReport()

	err := report.ApplyReview(true, uuid.New(), time.Now())
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))
}

func TestApplyReopen_ReturnsRejectedReportToDraft(t *testing.T) {
	report := newDraftReport()
	require.NoError(t, report.ApplySubmit(time.Now()))
	require.NoError(t, report.ApplyReview(false, uuid.New(), time.Now()))
	require.Equal(t, ReportStatusRejected, report.Status)

	require.NoError(t, report.ApplyReopen())

	assert.Equal(t, ReportStatusDraft, report.Status)
	assert.Nil(t, report.SubmittedAt)
	assert.Nil(t, report.ReviewedAt)
	assert.Nil(t, report.ReviewedBy)
}

func TestApplyReopen_RejectsApprovedReport(t *testing.T) {
	report := newDraftReport()
	require.NoError(t, report.ApplySubmit(time.Now()))
	require.NoError(t, report.ApplyReview(true, uuid.New(), time.Now()))

	err := report.ApplyReopen()
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))
}
