package client

import (
	"time"

	"hrportal/timesheet"
)

// WeekSelector is the controlled previous/next + dropdown control over the
// sliding window of available weeks. It owns no entry state; the session
// resets drafts when the selection changes.
type WeekSelector struct {
	weeks []time.Time
	index int
}

// NewWeekSelector builds the window ending at the current week, which starts
// selected.
func NewWeekSelector(now time.Time, lookBack int) *WeekSelector {
	weeks := timesheet.AvailableWeeks(now, lookBack)
	return &WeekSelector{weeks: weeks, index: len(weeks) - 1}
}

func (s *WeekSelector) Weeks() []time.Time { return s.weeks }

func (s *WeekSelector) Selected() time.Time { return s.weeks[s.index] }

// CanPrev and CanNext disable the controls at the ends of the range.
func (s *WeekSelector) CanPrev() bool { return s.index > 0 }

func (s *WeekSelector) CanNext() bool { return s.index < len(s.weeks)-1 }

func (s *WeekSelector) Prev() (time.Time, bool) {
	if !s.CanPrev() {
		return s.Selected(), false
	}
	s.index--
	return s.Selected(), true
}

func (s *WeekSelector) Next() (time.Time, bool) {
	if !s.CanNext() {
		return s.Selected(), false
	}
	s.index++
	return s.Selected(), true
}

// Select picks a week from the dropdown; weeks outside the window are
// rejected.
func (s *WeekSelector) Select(weekStart time.Time) bool {
	target := timesheet.WeekOf(weekStart)
	for i, w := range s.weeks {
		if w.Equal(target) {
			s.index = i
			return true
		}
	}
	return false
}
