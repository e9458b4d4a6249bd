package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrportal/api"
	"hrportal/models"
	"hrportal/timesheet"
)

func newTestServer(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(srv.URL)
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v interface{}) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

// fixedSession pins the session clock to a Wednesday so the submission
// window checks do not depend on the test run date.
func fixedSession(c *Client) *WeekSession {
	s := NewWeekSession(c)
	s.now = func() time.Time { return time.Date(2026, time.August, 26, 10, 0, 0, 0, time.UTC) }
	s.SelectWeek(s.now())
	return s
}

// editableWeek makes the session Editable for its currently selected week,
// optionally with a saved sheet behind it.
func editableWeek(s *WeekSession, sheetID uint) api.WeekResponse {
	key := s.WeekStart().Format(api.DateFormat)
	return api.WeekResponse{
		WeekStartDate: key,
		WeekEndDate:   timesheet.WeekEnd(s.WeekStart()).Format(api.DateFormat),
		Timesheet:     api.TimesheetView{ID: sheetID, WeekStartDate: key, Status: models.StatusDraft},
		Editable:      true,
	}
}

func fillWeekdays(t *testing.T, s *WeekSession) {
	t.Helper()
	for _, key := range []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"} {
		require.NoError(t, s.UpdateDay(key, timesheet.DayEntry{
			Hours: "8", ProjectID: 1, Description: "sprint work",
		}))
	}
}

func TestWeekSession_StartsLoadingWithZeroDrafts(t *testing.T) {
	s := NewWeekSession(New("http://unused"))
	assert.Equal(t, StateLoading, s.State())
	for _, key := range timesheet.WeekdayKeys {
		assert.True(t, s.Draft()[key].IsEmpty(), key)
	}
}

func TestWeekSession_SelectWeekResetsAllDrafts(t *testing.T) {
	s := NewWeekSession(New("http://unused"))
	require.True(t, s.Apply(editableWeek(s, 0)))
	fillWeekdays(t, s)
	require.Equal(t, 40.0, s.Summary().TotalHours)

	// Switching weeks discards unsaved edits before any data loads.
	s.SelectWeek(s.WeekStart().AddDate(0, 0, -7))
	assert.Equal(t, StateLoading, s.State())
	for _, key := range timesheet.WeekdayKeys {
		entry := s.Draft()[key]
		assert.Equal(t, "0", entry.Hours, key)
		assert.Empty(t, entry.Description, key)
	}
	assert.Equal(t, 0.0, s.Summary().TotalHours)
}

func TestWeekSession_ApplyDiscardsStaleResponse(t *testing.T) {
	s := NewWeekSession(New("http://unused"))
	stale := editableWeek(s, 3)

	// The selection moved on while the fetch was in flight.
	s.SelectWeek(s.WeekStart().AddDate(0, 0, -7))
	assert.False(t, s.Apply(stale))
	assert.Equal(t, StateLoading, s.State())

	fresh := editableWeek(s, 4)
	assert.True(t, s.Apply(fresh))
	assert.Equal(t, StateEditable, s.State())
}

func TestWeekSession_ApplyPopulatesDraftFromRows(t *testing.T) {
	s := NewWeekSession(New("http://unused"))
	resp := editableWeek(s, 9)
	resp.Timesheet.Days = []api.DayRow{
		{Weekday: "Monday", Hours: 7.5, ProjectID: 3, ProjectName: "Project Alpha", Description: "code review"},
	}
	require.True(t, s.Apply(resp))

	mon := s.Draft()["Monday"]
	assert.Equal(t, "7.5", mon.Hours)
	assert.Equal(t, uint(3), mon.ProjectID)
	assert.Equal(t, "Project Alpha", mon.ProjectName)
	assert.True(t, s.Draft()["Tuesday"].IsEmpty())
}

func TestWeekSession_ReadOnlyBlocksEdits(t *testing.T) {
	s := NewWeekSession(New("http://unused"))
	resp := editableWeek(s, 1)
	resp.Editable = false
	require.True(t, s.Apply(resp))
	assert.Equal(t, StateReadOnly, s.State())

	err := s.UpdateDay("Monday", timesheet.DayEntry{Hours: "8"})
	assert.ErrorIs(t, err, ErrNotEditable)
}

func TestWeekSession_SaveDayEchoRoundTripLeavesDraftUnchanged(t *testing.T) {
	var requests int
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		requests++
		require.Equal(t, http.MethodPut, r.Method)
		var req api.SaveDayRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		// Canonical echo: the server answers with exactly what was saved.
		writeJSON(t, w, http.StatusOK, api.DayRow{
			Weekday:     "Monday",
			Date:        req.Date,
			Hours:       req.Hours,
			ProjectID:   req.ProjectID,
			ProjectName: "Project Alpha",
			Description: req.Description,
			IsOvertime:  req.IsOvertime,
		})
	})

	s := NewWeekSession(c)
	require.True(t, s.Apply(editableWeek(s, 5)))
	entry := timesheet.DayEntry{Hours: "7.5", ProjectID: 3, ProjectName: "Project Alpha", Description: "code review"}
	require.NoError(t, s.UpdateDay("Monday", entry))

	row, err := s.SaveDay(context.Background(), "Monday")
	require.NoError(t, err)
	assert.Equal(t, 7.5, row.Hours)
	assert.Equal(t, 1, requests)

	// Reconciled draft is visually identical to what was typed.
	assert.Equal(t, entry, s.Draft()["Monday"])
}

func TestWeekSession_SaveDayValidatesBeforeNetwork(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("out-of-range hours must not reach the network")
	})

	s := NewWeekSession(c)
	require.True(t, s.Apply(editableWeek(s, 5)))
	require.NoError(t, s.UpdateDay("Monday", timesheet.DayEntry{Hours: "30", ProjectID: 1, Description: "x"}))

	_, err := s.SaveDay(context.Background(), "Monday")
	var verr *timesheet.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Messages, "Hours must be between 0 and 24")
}

func TestWeekSession_SaveDayFailureLeavesDraftUntouched(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusUnprocessableEntity, api.ValidationErrorResponse{Errors: []string{"unknown project"}})
	})

	s := NewWeekSession(c)
	require.True(t, s.Apply(editableWeek(s, 5)))
	entry := timesheet.DayEntry{Hours: "8", ProjectID: 42, Description: "work"}
	require.NoError(t, s.UpdateDay("Monday", entry))

	_, err := s.SaveDay(context.Background(), "Monday")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Contains(t, apiErr.Details, "unknown project")
	assert.Equal(t, entry, s.Draft()["Monday"])
}

func TestWeekSession_SaveWeekFiltersEmptyDays(t *testing.T) {
	var got api.CreateWeekRequest
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		writeJSON(t, w, http.StatusCreated, api.CreateWeekResponse{
			Timesheet: api.TimesheetView{ID: 8, Status: models.StatusDraft},
			Complete:  false,
		})
	})

	s := NewWeekSession(c)
	require.True(t, s.Apply(editableWeek(s, 0)))
	require.NoError(t, s.UpdateDay("Monday", timesheet.DayEntry{Hours: "8", ProjectID: 1, Description: "work"}))
	require.NoError(t, s.UpdateDay("Tuesday", timesheet.DayEntry{Hours: "8", ProjectID: 1, Description: "work"}))

	complete, err := s.SaveWeek(context.Background())
	require.NoError(t, err)
	assert.False(t, complete)

	// Only the two non-empty days made it into the payload.
	require.Len(t, got.Details, 2)
	assert.Equal(t, "Monday", got.Details[0].Weekday)
	assert.Equal(t, "Tuesday", got.Details[1].Weekday)
}

func TestWeekSession_SubmitFlow(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, api.SubmitResponse{
			ID: 7, Status: models.StatusSubmitted, SubmissionRef: "ref-123",
		})
	})

	s := fixedSession(c)
	require.True(t, s.Apply(editableWeek(s, 7)))
	fillWeekdays(t, s)

	summary, err := s.BeginSubmit()
	require.NoError(t, err)
	assert.Equal(t, StatePendingSubmission, s.State())
	assert.Equal(t, 40.0, summary.TotalHours)

	// Backing out returns to editing.
	s.CancelSubmit()
	assert.Equal(t, StateEditable, s.State())

	_, err = s.BeginSubmit()
	require.NoError(t, err)
	resp, err := s.ConfirmSubmit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StateSubmitted, s.State())
	assert.Equal(t, "ref-123", resp.SubmissionRef)

	sheet, ok := s.Timesheet()
	require.True(t, ok)
	assert.Equal(t, models.StatusSubmitted, sheet.Status)
}

func TestWeekSession_BeginSubmitRejectsIncompleteWeek(t *testing.T) {
	s := fixedSession(New("http://unused"))
	require.True(t, s.Apply(editableWeek(s, 7)))
	fillWeekdays(t, s)
	require.NoError(t, s.UpdateDay("Monday", timesheet.DayEntry{Hours: "0"}))

	_, err := s.BeginSubmit()
	var verr *timesheet.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Messages, "Monday: Hours cannot be 0 for weekdays")
	assert.Equal(t, StateEditable, s.State())
}

func TestWeekSession_CanSubmitOutsideWindow(t *testing.T) {
	s := NewWeekSession(New("http://unused"))
	require.True(t, s.Apply(editableWeek(s, 7)))
	fillWeekdays(t, s)

	// Freeze the clock one month past the selected week.
	s.now = func() time.Time { return s.WeekStart().AddDate(0, 1, 7) }
	assert.ErrorIs(t, s.CanSubmit(), ErrOutsideWindow)
}

func TestWeekSession_ConfirmSubmitFailureReturnsToEditable(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusUnprocessableEntity, api.ErrorResponse{Error: "timesheet can only be submitted within the current month"})
	})

	s := fixedSession(c)
	require.True(t, s.Apply(editableWeek(s, 7)))
	fillWeekdays(t, s)
	_, err := s.BeginSubmit()
	require.NoError(t, err)

	_, err = s.ConfirmSubmit(context.Background())
	require.Error(t, err)
	assert.Equal(t, StateEditable, s.State())
}

func TestWeekSelector_Bounds(t *testing.T) {
	now := time.Date(2026, time.August, 26, 12, 0, 0, 0, time.UTC)
	sel := NewWeekSelector(now, 4)

	require.Len(t, sel.Weeks(), 5)
	assert.Equal(t, timesheet.WeekOf(now), sel.Selected())
	assert.False(t, sel.CanNext())
	assert.True(t, sel.CanPrev())

	_, ok := sel.Next()
	assert.False(t, ok)

	for sel.CanPrev() {
		_, ok := sel.Prev()
		require.True(t, ok)
	}
	assert.Equal(t, timesheet.WeekOf(now).AddDate(0, 0, -28), sel.Selected())
	_, ok = sel.Prev()
	assert.False(t, ok)
}

func TestWeekSelector_Select(t *testing.T) {
	now := time.Date(2026, time.August, 26, 12, 0, 0, 0, time.UTC)
	sel := NewWeekSelector(now, 4)

	target := timesheet.WeekOf(now).AddDate(0, 0, -14)
	assert.True(t, sel.Select(target))
	assert.Equal(t, target, sel.Selected())

	// Outside the sliding window.
	assert.False(t, sel.Select(target.AddDate(0, 0, -70)))
	assert.Equal(t, target, sel.Selected())
}
