package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"hrportal/api"
	"hrportal/config"
	"hrportal/database"
	"hrportal/events"
	"hrportal/middleware"
	"hrportal/models"
	"hrportal/pagination"
	"hrportal/timesheet"
)

type TimesheetHandler struct {
	config   *config.Config
	recorder events.Recorder
	now      func() time.Time
}

func NewTimesheetHandler(cfg *config.Config, recorder events.Recorder) *TimesheetHandler {
	return &TimesheetHandler{
		config:   cfg,
		recorder: recorder,
		now:      time.Now,
	}
}

func parseDate(s string) (time.Time, error) {
	return time.Parse(api.DateFormat, s)
}

func formatHours(h float64) string {
	return strconv.FormatFloat(h, 'f', -1, 64)
}

func dayRowOf(d models.TimesheetDetail) api.DayRow {
	row := api.DayRow{
		Weekday:     d.Weekday,
		Date:        d.WorkDate.Format(api.DateFormat),
		Hours:       d.HoursWorked,
		ProjectID:   d.ProjectID,
		Description: d.TaskDescription,
		IsOvertime:  d.IsOvertime,
	}
	if d.Project != nil {
		row.ProjectName = d.Project.Name
	}
	return row
}

func viewOf(ts *models.Timesheet, withEmployee bool) api.TimesheetView {
	view := api.TimesheetView{
		ID:            ts.ID,
		WeekStartDate: ts.WeekStartDate.Format(api.DateFormat),
		WeekEndDate:   ts.WeekEndDate.Format(api.DateFormat),
		TotalHours:    ts.TotalHours,
		Status:        ts.Status,
		SubmissionRef: ts.SubmissionRef,
		Days:          []api.DayRow{},
		Summary:       timesheet.SummarizeHours(ts.TotalHours),
	}
	if ts.SubmittedAt != nil {
		view.SubmittedAt = ts.SubmittedAt.Format(time.RFC3339)
	}
	if withEmployee {
		view.EmployeeName = ts.User.DisplayName()
	}
	// Rows come back in Monday..Sunday order regardless of save order.
	for _, key := range timesheet.WeekdayKeys {
		if d := ts.DetailFor(key); d != nil {
			view.Days = append(view.Days, dayRowOf(*d))
		}
	}
	return view
}

func listItemOf(ts models.Timesheet, withEmployee bool) api.TimesheetListItem {
	item := api.TimesheetListItem{
		ID:            ts.ID,
		WeekStartDate: ts.WeekStartDate.Format(api.DateFormat),
		WeekEndDate:   ts.WeekEndDate.Format(api.DateFormat),
		TotalHours:    ts.TotalHours,
		Status:        ts.Status,
	}
	if withEmployee {
		item.EmployeeName = ts.User.DisplayName()
	}
	return item
}

func (h *TimesheetHandler) loadWeek(userID uint, weekStart time.Time) (*models.Timesheet, error) {
	var ts models.Timesheet
	err := database.GetDB().
		Preload("Details").
		Preload("Details.Project").
		Where("user_id = ? AND week_start_date = ?", userID, weekStart).
		First(&ts).Error
	if err != nil {
		return nil, err
	}
	return &ts, nil
}

// Week is the batch endpoint: day infos for the grid, the week's sheet (a
// zero-default skeleton when none exists), and optionally the first history
// page in the same round trip.
func (h *TimesheetHandler) Week(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	now := h.now()

	weekStart := timesheet.WeekOf(now)
	if s := r.URL.Query().Get("start"); s != "" {
		parsed, err := parseDate(s)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid start date, want YYYY-MM-DD")
			return
		}
		weekStart = timesheet.WeekOf(parsed)
	}

	resp := api.WeekResponse{
		WeekStartDate: weekStart.Format(api.DateFormat),
		WeekEndDate:   timesheet.WeekEnd(weekStart).Format(api.DateFormat),
		Days:          timesheet.DaysOf(weekStart, weekStart, now),
	}

	ts, err := h.loadWeek(user.ID, weekStart)
	switch {
	case err == nil:
		resp.Timesheet = viewOf(ts, false)
		resp.Editable = ts.Status.Submittable() && timesheet.WithinSubmissionRange(weekStart, now)
	case errors.Is(err, gorm.ErrRecordNotFound):
		resp.Timesheet = api.TimesheetView{
			WeekStartDate: resp.WeekStartDate,
			WeekEndDate:   resp.WeekEndDate,
			Status:        models.StatusDraft,
			Days:          []api.DayRow{},
		}
		resp.Editable = timesheet.WithinSubmissionRange(weekStart, now)
	default:
		respondError(w, http.StatusInternalServerError, "failed to load timesheet")
		return
	}

	if r.URL.Query().Get("history") == "1" {
		page, err := h.historyPage(user.ID, pagination.Params{Limit: h.config.HistoryPageSize})
		if err != nil {
			respondError(w, http.StatusInternalServerError, "failed to load history")
			return
		}
		resp.History = &page
	}

	respondJSON(w, http.StatusOK, resp)
}

// resolveProjects checks every referenced project against the catalog and
// returns id->name for the echo payloads.
func resolveProjects(ids []uint) (map[uint]string, error) {
	names := make(map[uint]string)
	if len(ids) == 0 {
		return names, nil
	}
	var projects []models.Project
	if err := database.GetDB().Where("id IN ?", ids).Find(&projects).Error; err != nil {
		return nil, err
	}
	for _, p := range projects {
		names[p.ID] = p.Name
	}
	return names, nil
}

func (h *TimesheetHandler) findOrCreateWeek(userID uint, weekStart time.Time) (*models.Timesheet, error) {
	ts, err := h.loadWeek(userID, weekStart)
	if err == nil {
		return ts, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	ts = &models.Timesheet{
		UserID:        userID,
		WeekStartDate: weekStart,
		WeekEndDate:   timesheet.WeekEnd(weekStart),
		Status:        models.StatusDraft,
	}
	if err := database.GetDB().Create(ts).Error; err != nil {
		return nil, err
	}
	return ts, nil
}

// SaveDay validates and persists a single weekday, then echoes the canonical
// saved row so the client can reconcile its draft against it.
func (h *TimesheetHandler) SaveDay(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	weekStartParam, err := parseDate(chi.URLParam(r, "start"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid week start date")
		return
	}
	weekStart := timesheet.WeekOf(weekStartParam)

	weekday := chi.URLParam(r, "weekday")
	workDate, ok := timesheet.DateFor(weekStart, weekday)
	if !ok {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("unknown weekday %q", weekday))
		return
	}

	var req api.SaveDayRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	entry := timesheet.DayEntry{
		Hours:       formatHours(req.Hours),
		ProjectID:   req.ProjectID,
		Description: req.Description,
		Overtime:    req.IsOvertime,
	}
	if err := timesheet.ValidateDay(entry); err != nil {
		respondValidation(w, err)
		return
	}

	var projectName string
	if req.Hours > 0 {
		names, err := resolveProjects([]uint{req.ProjectID})
		if err != nil {
			respondError(w, http.StatusInternalServerError, "failed to resolve project")
			return
		}
		name, ok := names[req.ProjectID]
		if !ok {
			respondValidation(w, &timesheet.ValidationError{Messages: []string{"unknown project"}})
			return
		}
		projectName = name
	}

	ts, err := h.findOrCreateWeek(user.ID, weekStart)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load timesheet")
		return
	}
	if !ts.Status.Submittable() {
		respondError(w, http.StatusConflict, "timesheet has already been submitted")
		return
	}

	detail := ts.DetailFor(weekday)
	if detail == nil {
		detail = &models.TimesheetDetail{
			TimesheetID: ts.ID,
			Weekday:     weekday,
			WorkDate:    workDate,
		}
	}
	detail.HoursWorked = req.Hours
	detail.ProjectID = req.ProjectID
	detail.TaskDescription = req.Description
	detail.IsOvertime = req.IsOvertime

	db := database.GetDB()
	if err := db.Save(detail).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "failed to save entry")
		return
	}

	ts, err = h.loadWeek(user.ID, weekStart)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to reload timesheet")
		return
	}
	ts.RecomputeTotal()
	if err := db.Model(ts).Update("total_hours", ts.TotalHours).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "failed to update total")
		return
	}

	row := api.DayRow{
		Weekday:     weekday,
		Date:        workDate.Format(api.DateFormat),
		Hours:       req.Hours,
		ProjectID:   req.ProjectID,
		ProjectName: projectName,
		Description: req.Description,
		IsOvertime:  req.IsOvertime,
	}
	respondJSON(w, http.StatusOK, row)
}

// SaveWeek replaces the week's entries in one batch. Empty days are filtered
// out; any validation failure aborts the whole batch with every failing day
// reported.
func (h *TimesheetHandler) SaveWeek(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	var req api.CreateWeekRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	weekStartParam, err := parseDate(req.WeekStartDate)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid week_start_date")
		return
	}
	weekStart := timesheet.WeekOf(weekStartParam)

	draft := timesheet.NewWeekDraft()
	seen := make(map[string]bool)
	for _, d := range req.Details {
		if _, ok := timesheet.DateFor(weekStart, d.Weekday); !ok {
			respondError(w, http.StatusBadRequest, fmt.Sprintf("unknown weekday %q", d.Weekday))
			return
		}
		if seen[d.Weekday] {
			respondError(w, http.StatusBadRequest, fmt.Sprintf("duplicate weekday %q", d.Weekday))
			return
		}
		seen[d.Weekday] = true
		draft[d.Weekday] = timesheet.DayEntry{
			Hours:       formatHours(d.Hours),
			ProjectID:   d.ProjectID,
			Description: d.Description,
			Overtime:    d.IsOvertime,
		}
	}

	if err := timesheet.ValidateWeek(draft); err != nil {
		respondValidation(w, err)
		return
	}

	var projectIDs []uint
	for _, key := range timesheet.WeekdayKeys {
		if entry := draft[key]; !entry.IsEmpty() && entry.ProjectID != 0 {
			projectIDs = append(projectIDs, entry.ProjectID)
		}
	}
	names, err := resolveProjects(projectIDs)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to resolve projects")
		return
	}
	var unknown []string
	for _, key := range timesheet.WeekdayKeys {
		entry := draft[key]
		if entry.IsEmpty() || entry.ProjectID == 0 {
			continue
		}
		if _, ok := names[entry.ProjectID]; !ok {
			unknown = append(unknown, fmt.Sprintf("%s: unknown project", key))
		}
	}
	if len(unknown) > 0 {
		respondValidation(w, &timesheet.ValidationError{Messages: unknown})
		return
	}

	ts, err := h.loadWeek(user.ID, weekStart)
	switch {
	case err == nil:
		if !ts.Status.Submittable() {
			respondError(w, http.StatusConflict, "timesheet has already been submitted")
			return
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		ts = nil
	default:
		respondError(w, http.StatusInternalServerError, "failed to load timesheet")
		return
	}

	// Sheet creation rides the same transaction as the detail rewrite so a
	// failed batch leaves no empty draft behind.
	err = database.GetDB().Transaction(func(tx *gorm.DB) error {
		if ts == nil {
			ts = &models.Timesheet{
				UserID:        user.ID,
				WeekStartDate: weekStart,
				WeekEndDate:   timesheet.WeekEnd(weekStart),
				Status:        models.StatusDraft,
			}
			if err := tx.Create(ts).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("timesheet_id = ?", ts.ID).Delete(&models.TimesheetDetail{}).Error; err != nil {
			return err
		}
		var total float64
		for _, key := range timesheet.WeekdayKeys {
			entry := draft[key]
			if entry.IsEmpty() {
				continue
			}
			workDate, _ := timesheet.DateFor(weekStart, key)
			detail := models.TimesheetDetail{
				TimesheetID:     ts.ID,
				WorkDate:        workDate,
				Weekday:         key,
				HoursWorked:     entry.HoursValue(),
				ProjectID:       entry.ProjectID,
				TaskDescription: entry.Description,
				IsOvertime:      entry.Overtime,
			}
			if err := tx.Create(&detail).Error; err != nil {
				return err
			}
			total += detail.HoursWorked
		}
		return tx.Model(ts).Update("total_hours", total).Error
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to save week")
		return
	}

	ts, err = h.loadWeek(user.ID, weekStart)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to reload timesheet")
		return
	}

	respondJSON(w, http.StatusCreated, api.CreateWeekResponse{
		Timesheet: viewOf(ts, false),
		Complete:  timesheet.IsComplete(draft),
	})
}

// Submit moves a sheet into the approval workflow. Gated on ownership, state,
// the submission window and Mon-Fri completeness.
func (h *TimesheetHandler) Submit(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	now := h.now()

	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 32)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid timesheet ID")
		return
	}

	var ts models.Timesheet
	if err := database.GetDB().Preload("Details").First(&ts, id).Error; err != nil {
		respondError(w, http.StatusNotFound, "timesheet not found")
		return
	}
	if !user.CanManageTimesheetFor(ts.UserID) {
		respondError(w, http.StatusForbidden, "forbidden")
		return
	}
	if !ts.Status.Submittable() {
		respondError(w, http.StatusConflict, "timesheet has already been submitted")
		return
	}
	if !timesheet.WithinSubmissionRange(ts.WeekStartDate, now) {
		respondError(w, http.StatusUnprocessableEntity, "timesheet can only be submitted within the current month")
		return
	}
	if err := timesheet.ValidateCompleteness(timesheet.DraftFromDetails(ts.Details)); err != nil {
		respondValidation(w, err)
		return
	}

	from := ts.Status
	submittedAt := now
	ts.Status = models.StatusSubmitted
	ts.SubmittedAt = &submittedAt
	ts.SubmissionRef = uuid.NewString()
	ts.RejectionReason = ""
	if err := database.GetDB().Save(&ts).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "failed to submit timesheet")
		return
	}

	if err := h.recorder.Record(r.Context(), events.Transition{
		EntityType: "timesheet",
		EntityID:   ts.ID,
		ActorID:    user.ID,
		From:       from,
		To:         ts.Status,
	}); err != nil {
		// The submission itself succeeded; the audit row is best effort.
		log.Printf("record submission event: %v", err)
	}

	respondJSON(w, http.StatusOK, api.SubmitResponse{
		ID:            ts.ID,
		Status:        ts.Status,
		SubmissionRef: ts.SubmissionRef,
	})
}

func (h *TimesheetHandler) historyPage(userID uint, p pagination.Params) (api.HistoryPage, error) {
	if p.Limit <= 0 {
		p.Limit = h.config.HistoryPageSize
	}
	query := database.GetDB().
		Model(&models.Timesheet{}).
		Where("user_id = ?", userID).
		Order("week_start_date desc")

	page, err := pagination.Find[models.Timesheet](query, p)
	if err != nil {
		return api.HistoryPage{}, err
	}

	items := make([]api.TimesheetListItem, 0, len(page.Items))
	for _, ts := range page.Items {
		items = append(items, listItemOf(ts, false))
	}
	return pagination.NewPage(items, page.TotalCount, p), nil
}

// History lists the caller's past weeks, newest first.
func (h *TimesheetHandler) History(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	p := pagination.FromQuery(r.URL.Query(), h.config.HistoryPageSize)
	page, err := h.historyPage(user.ID, p)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load history")
		return
	}
	respondJSON(w, http.StatusOK, page)
}
