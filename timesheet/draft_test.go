package timesheet

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrportal/models"
)

func TestNewWeekDraft_ZeroDefaults(t *testing.T) {
	draft := NewWeekDraft()
	require.Len(t, draft, 7)
	for _, key := range WeekdayKeys {
		entry, ok := draft[key]
		require.True(t, ok, key)
		assert.Equal(t, "0", entry.Hours)
		assert.Empty(t, entry.Description)
		assert.Zero(t, entry.ProjectID)
		assert.False(t, entry.Overtime)
		assert.True(t, entry.IsEmpty())
	}
}

func TestDraftFromDetails_OverwritesWholesale(t *testing.T) {
	details := []models.TimesheetDetail{
		{
			Weekday:         "Monday",
			WorkDate:        date(2026, time.August, 24),
			HoursWorked:     7.5,
			ProjectID:       3,
			Project:         &models.Project{ID: 3, Name: "Project Alpha"},
			TaskDescription: "code review",
		},
		{Weekday: "Saturday", HoursWorked: 4, ProjectID: 3, TaskDescription: "release", IsOvertime: true},
	}

	draft := DraftFromDetails(details)
	require.Len(t, draft, 7)

	mon := draft["Monday"]
	assert.Equal(t, "7.5", mon.Hours)
	assert.Equal(t, uint(3), mon.ProjectID)
	assert.Equal(t, "Project Alpha", mon.ProjectName)
	assert.Equal(t, "code review", mon.Description)

	assert.True(t, draft["Saturday"].Overtime)

	// Days without server rows keep zero defaults.
	assert.True(t, draft["Tuesday"].IsEmpty())
	assert.Equal(t, "0", draft["Tuesday"].Hours)
}

func TestDraftFromDetails_IgnoresUnknownWeekday(t *testing.T) {
	draft := DraftFromDetails([]models.TimesheetDetail{{Weekday: "Someday", HoursWorked: 8}})
	require.Len(t, draft, 7)
	for _, key := range WeekdayKeys {
		assert.True(t, draft[key].IsEmpty())
	}
}

func TestDayEntry_HoursValueParsing(t *testing.T) {
	assert.Equal(t, 0.0, DayEntry{}.HoursValue())
	assert.Equal(t, 0.0, DayEntry{Hours: "abc"}.HoursValue())
	assert.Equal(t, 7.5, DayEntry{Hours: "7.5"}.HoursValue())
	assert.Equal(t, 8.0, DayEntry{Hours: " 8"}.HoursValue())
	assert.Equal(t, 8.0, DayEntry{Hours: "8\t"}.HoursValue())
}

// Whitespace-padded hours must parse the same everywhere: a day validation
// accepts as 8 hours has to count 8 hours in the totals.
func TestDayEntry_PaddedHoursCountTowardTotals(t *testing.T) {
	entry := DayEntry{Hours: " 8", ProjectID: 1, Description: "code review"}
	require.NoError(t, ValidateDay(entry))
	assert.False(t, entry.IsEmpty())

	draft := NewWeekDraft()
	draft["Monday"] = entry
	assert.Equal(t, 8.0, Summarize(draft).TotalHours)
}

func TestDayEntry_IsEmpty(t *testing.T) {
	assert.True(t, DayEntry{Hours: "0"}.IsEmpty())
	assert.True(t, DayEntry{}.IsEmpty())
	assert.False(t, DayEntry{Hours: "1"}.IsEmpty())
	assert.False(t, DayEntry{Hours: "0", Description: "standby"}.IsEmpty())
	assert.False(t, DayEntry{Hours: "0", Overtime: true}.IsEmpty())
}
