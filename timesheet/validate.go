package timesheet

import (
	"fmt"
	"strconv"
	"strings"
)

// ValidationError carries every failing day of a batch so the caller can
// report them together.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, "; ")
}

// ValidateDay checks a single draft entry before any save is attempted:
// hours must parse and sit in [0,24]; a day with hours needs a project and a
// description.
func ValidateDay(entry DayEntry) error {
	msgs := validateDay(entry)
	if len(msgs) == 0 {
		return nil
	}
	return &ValidationError{Messages: msgs}
}

func validateDay(entry DayEntry) []string {
	var msgs []string

	hours, err := strconv.ParseFloat(strings.TrimSpace(entry.Hours), 64)
	if entry.Hours == "" {
		hours, err = 0, nil
	}
	if err != nil {
		return []string{"Hours must be a number"}
	}
	if hours < 0 || hours > 24 {
		msgs = append(msgs, "Hours must be between 0 and 24")
	}
	if hours > 0 {
		if entry.ProjectID == 0 {
			msgs = append(msgs, "Project is required for days with hours")
		}
		if strings.TrimSpace(entry.Description) == "" {
			msgs = append(msgs, "Description is required for days with hours")
		}
	}
	return msgs
}

// ValidateWeek validates every non-empty day of the draft. Any failure aborts
// the whole batch; all failing days are reported together, each message
// prefixed with its weekday.
func ValidateWeek(draft WeekDraft) error {
	var msgs []string
	for _, key := range WeekdayKeys {
		entry := draft[key]
		if entry.IsEmpty() {
			continue
		}
		for _, m := range validateDay(entry) {
			msgs = append(msgs, fmt.Sprintf("%s: %s", key, m))
		}
	}
	if len(msgs) > 0 {
		return &ValidationError{Messages: msgs}
	}
	return nil
}

// ValidateCompleteness enforces the submission invariant: every weekday
// (Mon-Fri) must carry non-zero hours.
func ValidateCompleteness(draft WeekDraft) error {
	var msgs []string
	for _, key := range WeekdayKeys {
		if IsWeekend(key) {
			continue
		}
		if draft[key].HoursValue() == 0 {
			msgs = append(msgs, fmt.Sprintf("%s: Hours cannot be 0 for weekdays", key))
		}
	}
	if len(msgs) > 0 {
		return &ValidationError{Messages: msgs}
	}
	return nil
}

// IsComplete reports whether all five weekdays have entries; it decides the
// "can submit" vs "fill remaining days" follow-up after a week save.
func IsComplete(draft WeekDraft) bool {
	return ValidateCompleteness(draft) == nil
}
