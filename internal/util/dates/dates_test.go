package dates_util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func Test_StartOfDay_NormalizesToUTCMidnight(t *testing.T) {
	moment := time.Date(2025, 3, 14, 17, 45, 12, 999, time.FixedZone("CET", 3600))
	normalized := StartOfDay(moment)

	assert.Equal(t, time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC), normalized)
	assert.Equal(t, time.UTC, normalized.Location())
}

func Test_SameDay(t *testing.T) {
	morning := time.Date(2025, 6, 1, 0, 1, 0, 0, time.UTC)
	night := time.Date(2025, 6, 1, 23, 59, 0, 0, time.UTC)
	nextDay := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	assert.True(t, SameDay(morning, night))
	assert.False(t, SameDay(night, nextDay))
}

func Test_InclusiveDays(t *testing.T) {
	start := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 15, 18, 0, 0, 0, time.UTC)

	assert.Equal(t, 14, InclusiveDays(start, end))
	assert.Equal(t, 1, InclusiveDays(start, start))
	assert.Equal(t, 0, InclusiveDays(end, start))
}

func Test_DaysUntil_FlooredAtZero(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, 5, DaysUntil(now, now.AddDate(0, 0, 5)))
	assert.Equal(t, 0, DaysUntil(now, now))
	assert.Equal(t, 0, DaysUntil(now, now.AddDate(0, 0, -3)))
}

func Test_WorkingDaysInMonth(t *testing.T) {
	// June 2025 starts on a Sunday: 21 weekdays.
	assert.Equal(t, 21, WorkingDaysInMonth(2025, time.June))
	// February 2024 (leap year) has 21 weekdays.
	assert.Equal(t, 21, WorkingDaysInMonth(2024, time.February))
}
