package client

import (
	"context"
	"errors"
	"strconv"
	"time"

	"hrportal/api"
	"hrportal/timesheet"
)

// State is the week editor's lifecycle over a single selected week.
type State string

const (
	StateLoading           State = "loading"
	StateEditable          State = "editable"
	StateReadOnly          State = "read_only"
	StatePendingSubmission State = "pending_submission"
	StateSubmitted         State = "submitted"
)

var (
	ErrNotEditable   = errors.New("week is not editable")
	ErrNotPending    = errors.New("no submission pending confirmation")
	ErrNoTimesheet   = errors.New("week has no saved timesheet")
	ErrOutsideWindow = errors.New("week is outside the submission range")
)

// WeekSession drives the weekly editor for one user: the selected week, its
// draft, derived totals and the submit flow. It is single-goroutine state,
// the same cooperative model the dashboard event loop runs under.
type WeekSession struct {
	client *Client
	now    func() time.Time

	weekStart time.Time
	weekKey   string
	state     State
	draft     timesheet.WeekDraft
	sheet     api.TimesheetView
	hasSheet  bool
}

func NewWeekSession(c *Client) *WeekSession {
	s := &WeekSession{client: c, now: time.Now}
	s.SelectWeek(timesheet.WeekOf(s.now()))
	return s
}

func (s *WeekSession) State() State { return s.state }

func (s *WeekSession) WeekStart() time.Time { return s.weekStart }

func (s *WeekSession) Draft() timesheet.WeekDraft { return s.draft }

func (s *WeekSession) Timesheet() (api.TimesheetView, bool) { return s.sheet, s.hasSheet }

// SelectWeek switches the editor to a new week. Unsaved edits are discarded:
// all seven drafts reset to defaults before the new week's data loads, and
// the week key advances so stale fetch responses get dropped.
func (s *WeekSession) SelectWeek(start time.Time) {
	s.weekStart = timesheet.WeekOf(start)
	s.weekKey = s.weekStart.Format(api.DateFormat)
	s.state = StateLoading
	s.draft = timesheet.NewWeekDraft()
	s.sheet = api.TimesheetView{}
	s.hasSheet = false
}

// Apply installs a fetched week response. Responses are tagged by their week
// start; one that no longer matches the current selection is discarded and
// reported as not applied.
func (s *WeekSession) Apply(resp api.WeekResponse) bool {
	if resp.WeekStartDate != s.weekKey {
		return false
	}
	s.sheet = resp.Timesheet
	s.hasSheet = resp.Timesheet.ID != 0
	s.draft = timesheet.NewWeekDraft()
	for _, row := range resp.Timesheet.Days {
		if _, ok := s.draft[row.Weekday]; !ok {
			continue
		}
		s.draft[row.Weekday] = entryFromRow(row)
	}
	if resp.Editable {
		s.state = StateEditable
	} else {
		s.state = StateReadOnly
	}
	return true
}

// Load fetches the currently selected week and applies it, unless the
// selection moved on while the fetch was in flight.
func (s *WeekSession) Load(ctx context.Context) error {
	requested := s.weekStart
	resp, err := s.client.Week(ctx, requested, false)
	if err != nil {
		return err
	}
	s.Apply(resp)
	return nil
}

func entryFromRow(row api.DayRow) timesheet.DayEntry {
	return timesheet.DayEntry{
		Hours:       formatHours(row.Hours),
		ProjectID:   row.ProjectID,
		ProjectName: row.ProjectName,
		Description: row.Description,
		Overtime:    row.IsOvertime,
	}
}

// UpdateDay mutates one day's draft; totals derive from the draft on every
// read, so nothing else needs recomputing.
func (s *WeekSession) UpdateDay(weekday string, entry timesheet.DayEntry) error {
	if s.state != StateEditable {
		return ErrNotEditable
	}
	if _, ok := s.draft[weekday]; !ok {
		return errors.New("unknown weekday " + weekday)
	}
	s.draft[weekday] = entry
	return nil
}

// Summary recomputes the four card values from the current draft.
func (s *WeekSession) Summary() timesheet.Summary {
	return timesheet.Summarize(s.draft)
}

// SaveDay validates locally, persists one day, and replaces the local draft
// with the server's canonical echo. On failure the draft is left untouched.
func (s *WeekSession) SaveDay(ctx context.Context, weekday string) (api.DayRow, error) {
	if s.state != StateEditable {
		return api.DayRow{}, ErrNotEditable
	}
	entry, ok := s.draft[weekday]
	if !ok {
		return api.DayRow{}, errors.New("unknown weekday " + weekday)
	}
	// Out-of-range hours never reach the network.
	if err := timesheet.ValidateDay(entry); err != nil {
		return api.DayRow{}, err
	}

	row, err := s.client.SaveDay(ctx, s.weekStart, weekday, api.SaveDayRequest{
		Date:        mustDate(s.weekStart, weekday),
		Hours:       entry.HoursValue(),
		ProjectID:   entry.ProjectID,
		Description: entry.Description,
		IsOvertime:  entry.Overtime,
	})
	if err != nil {
		return api.DayRow{}, err
	}

	// Read-after-write reconciliation against the authoritative row.
	s.draft[weekday] = entryFromRow(row)
	return row, nil
}

// SaveWeek validates every non-empty day, filters the empty ones out of the
// payload, and replaces the week in one batch. The returned flag reports
// whether all weekdays now carry hours.
func (s *WeekSession) SaveWeek(ctx context.Context) (complete bool, err error) {
	if s.state != StateEditable {
		return false, ErrNotEditable
	}
	if err := timesheet.ValidateWeek(s.draft); err != nil {
		return false, err
	}

	req := api.CreateWeekRequest{
		WeekStartDate: s.weekStart.Format(api.DateFormat),
		WeekEndDate:   timesheet.WeekEnd(s.weekStart).Format(api.DateFormat),
	}
	for _, key := range timesheet.WeekdayKeys {
		entry := s.draft[key]
		if entry.IsEmpty() {
			continue
		}
		req.Details = append(req.Details, api.WeekDetail{
			Weekday:     key,
			Hours:       entry.HoursValue(),
			ProjectID:   entry.ProjectID,
			Description: entry.Description,
			IsOvertime:  entry.Overtime,
		})
	}

	resp, err := s.client.SaveWeek(ctx, req)
	if err != nil {
		return false, err
	}
	s.sheet = resp.Timesheet
	s.hasSheet = resp.Timesheet.ID != 0
	return resp.Complete, nil
}

// CanSubmit mirrors the server gate so the submit control can disable early:
// completeness plus the current-month window.
func (s *WeekSession) CanSubmit() error {
	if !s.hasSheet {
		return ErrNoTimesheet
	}
	if !timesheet.WithinSubmissionRange(s.weekStart, s.now()) {
		return ErrOutsideWindow
	}
	return timesheet.ValidateCompleteness(s.draft)
}

// BeginSubmit opens the confirmation step and returns the summary shown in
// the dialog.
func (s *WeekSession) BeginSubmit() (timesheet.Summary, error) {
	if s.state != StateEditable {
		return timesheet.Summary{}, ErrNotEditable
	}
	if err := s.CanSubmit(); err != nil {
		return timesheet.Summary{}, err
	}
	s.state = StatePendingSubmission
	return s.Summary(), nil
}

func (s *WeekSession) CancelSubmit() {
	if s.state == StatePendingSubmission {
		s.state = StateEditable
	}
}

// ConfirmSubmit performs the submission. On failure the session returns to
// Editable so the user can retry.
func (s *WeekSession) ConfirmSubmit(ctx context.Context) (api.SubmitResponse, error) {
	if s.state != StatePendingSubmission {
		return api.SubmitResponse{}, ErrNotPending
	}
	resp, err := s.client.Submit(ctx, s.sheet.ID)
	if err != nil {
		s.state = StateEditable
		return api.SubmitResponse{}, err
	}
	s.state = StateSubmitted
	s.sheet.Status = resp.Status
	s.sheet.SubmissionRef = resp.SubmissionRef
	return resp, nil
}

func mustDate(weekStart time.Time, weekday string) string {
	d, _ := timesheet.DateFor(weekStart, weekday)
	return d.Format(api.DateFormat)
}

func formatHours(h float64) string {
	return strconv.FormatFloat(h, 'f', -1, 64)
}
