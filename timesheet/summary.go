package timesheet

import "math"

const (
	regularWeekHours    = 40
	compOffOvertimeStep = 16
)

// Summary holds the derived aggregates behind the four dashboard cards and
// the submit confirmation. Always recomputed from the draft, never cached.
type Summary struct {
	TotalHours    float64 `json:"total_hours"`
	RegularHours  float64 `json:"regular_hours"`
	OvertimeHours float64 `json:"overtime_hours"`
	CompOffEarned int     `json:"comp_off_earned"`
}

// Summarize computes totals over a draft: total is the plain sum, regular
// caps at 40, overtime is the excess, and a comp-off day is earned per 16
// overtime hours.
func Summarize(draft WeekDraft) Summary {
	var total float64
	for _, key := range WeekdayKeys {
		total += draft[key].HoursValue()
	}
	return SummarizeHours(total)
}

func SummarizeHours(total float64) Summary {
	overtime := math.Max(total-regularWeekHours, 0)
	return Summary{
		TotalHours:    total,
		RegularHours:  math.Min(total, regularWeekHours),
		OvertimeHours: overtime,
		CompOffEarned: int(math.Floor(overtime / compOffOvertimeStep)),
	}
}
