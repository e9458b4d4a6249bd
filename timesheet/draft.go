package timesheet

import (
	"strconv"
	"strings"

	"hrportal/models"
)

// DayEntry is the unsaved draft for one weekday. Hours stays a string so the
// draft can hold exactly what was typed; it is parsed at validation time.
type DayEntry struct {
	Hours       string `json:"hours"`
	ProjectID   uint   `json:"project_id"`
	ProjectName string `json:"project_name"`
	Description string `json:"description"`
	Overtime    bool   `json:"overtime"`
}

// IsEmpty reports a day the week-save filters out: zero hours, no
// description, overtime unset.
func (e DayEntry) IsEmpty() bool {
	return e.HoursValue() == 0 && e.Description == "" && !e.Overtime
}

// HoursValue parses the typed hours, treating blank or garbage as zero.
// Range checking belongs to validation, not parsing. Trimming matches the
// validator so both see the same number for padded input.
func (e DayEntry) HoursValue() float64 {
	s := strings.TrimSpace(e.Hours)
	if s == "" {
		return 0
	}
	h, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return h
}

// WeekDraft maps weekday keys to their drafts. Entries are never deleted,
// only reset to defaults on week change.
type WeekDraft map[string]DayEntry

// NewWeekDraft returns the zero-default draft for a week with no server
// record.
func NewWeekDraft() WeekDraft {
	draft := make(WeekDraft, len(WeekdayKeys))
	for _, key := range WeekdayKeys {
		draft[key] = DayEntry{Hours: "0"}
	}
	return draft
}

// DraftFromDetails overwrites the whole draft from server-side rows. Days
// without a row keep zero defaults.
func DraftFromDetails(details []models.TimesheetDetail) WeekDraft {
	draft := NewWeekDraft()
	for _, d := range details {
		if _, ok := draft[d.Weekday]; !ok {
			continue
		}
		entry := DayEntry{
			Hours:       strconv.FormatFloat(d.HoursWorked, 'f', -1, 64),
			ProjectID:   d.ProjectID,
			Description: d.TaskDescription,
			Overtime:    d.IsOvertime,
		}
		if d.Project != nil {
			entry.ProjectName = d.Project.Name
		}
		draft[d.Weekday] = entry
	}
	return draft
}
