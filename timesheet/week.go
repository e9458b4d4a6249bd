package timesheet

import (
	"time"
)

// Weekday keys, Monday first. These key the draft map and the detail rows.
var WeekdayKeys = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

var weekdayLabels = map[string]string{
	"Monday":    "Mon",
	"Tuesday":   "Tue",
	"Wednesday": "Wed",
	"Thursday":  "Thu",
	"Friday":    "Fri",
	"Saturday":  "Sat",
	"Sunday":    "Sun",
}

func IsWeekend(key string) bool {
	return key == "Saturday" || key == "Sunday"
}

type WeekDayInfo struct {
	Key        string    `json:"key"`
	Label      string    `json:"label"`
	DayOfMonth int       `json:"day_of_month"`
	ISODate    string    `json:"iso_date"`
	Date       time.Time `json:"date"`
	IsToday    bool      `json:"is_today"`
	IsSelected bool      `json:"is_selected"`
}

// WeekOf truncates t to the Monday of its week, at midnight in t's location.
func WeekOf(t time.Time) time.Time {
	t = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	offset := int(t.Weekday()) - int(time.Monday)
	if offset < 0 {
		offset += 7
	}
	return t.AddDate(0, 0, -offset)
}

// WeekEnd returns the Sunday belonging to the given Monday-aligned start.
func WeekEnd(weekStart time.Time) time.Time {
	return weekStart.AddDate(0, 0, 6)
}

// DaysOf expands a Monday-aligned week start into the seven day infos.
// Derived state only; recomputed whenever the selected week changes.
func DaysOf(weekStart time.Time, selected time.Time, now time.Time) []WeekDayInfo {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	sel := time.Date(selected.Year(), selected.Month(), selected.Day(), 0, 0, 0, 0, selected.Location())

	days := make([]WeekDayInfo, 0, 7)
	for i, key := range WeekdayKeys {
		d := weekStart.AddDate(0, 0, i)
		days = append(days, WeekDayInfo{
			Key:        key,
			Label:      weekdayLabels[key],
			DayOfMonth: d.Day(),
			ISODate:    d.Format("2006-01-02"),
			Date:       d,
			IsToday:    d.Equal(today),
			IsSelected: d.Equal(sel),
		})
	}
	return days
}

// DateFor returns the concrete date of a weekday key within a week, and
// false when the key is not a known weekday.
func DateFor(weekStart time.Time, key string) (time.Time, bool) {
	for i, k := range WeekdayKeys {
		if k == key {
			return weekStart.AddDate(0, 0, i), true
		}
	}
	return time.Time{}, false
}

// AvailableWeeks is the selector's sliding window: lookBack prior weeks plus
// the current one, ascending, current week last. Previous/next controls
// disable at the two ends.
func AvailableWeeks(now time.Time, lookBack int) []time.Time {
	current := WeekOf(now)
	weeks := make([]time.Time, 0, lookBack+1)
	for i := lookBack; i >= 0; i-- {
		weeks = append(weeks, current.AddDate(0, 0, -7*i))
	}
	return weeks
}

// WithinSubmissionRange reports whether a week may be submitted: its start
// date must fall inside the current calendar month.
func WithinSubmissionRange(weekStart, now time.Time) bool {
	return weekStart.Year() == now.Year() && weekStart.Month() == now.Month()
}
