package handlers

import (
	"net/http"
	"strings"

	"hrportal/api"
	"hrportal/config"
	"hrportal/database"
	"hrportal/middleware"
	"hrportal/models"
	"hrportal/pagination"
)

type LeaveHandler struct {
	config *config.Config
}

func NewLeaveHandler(cfg *config.Config) *LeaveHandler {
	return &LeaveHandler{config: cfg}
}

func leaveItemOf(l models.LeaveApplication, withEmployee bool) api.LeaveItem {
	item := api.LeaveItem{
		ID:        l.ID,
		LeaveType: string(l.LeaveType),
		StartDate: l.StartDate.Format(api.DateFormat),
		EndDate:   l.EndDate.Format(api.DateFormat),
		TotalDays: l.TotalDays,
		Reason:    l.Reason,
		Status:    l.Status,
	}
	if withEmployee {
		item.EmployeeName = l.User.DisplayName()
	}
	return item
}

// Create files a leave application; it enters the queue as Submitted.
func (h *LeaveHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	var req api.CreateLeaveRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	leaveType, ok := models.ParseLeaveType(req.LeaveType)
	if !ok {
		respondError(w, http.StatusBadRequest, "leave_type must be ANNUAL, SICK or UNPAID")
		return
	}

	start, err := parseDate(req.StartDate)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid start_date")
		return
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid end_date")
		return
	}
	if end.Before(start) {
		respondError(w, http.StatusBadRequest, "end_date must not be before start_date")
		return
	}

	totalDays := models.WorkingDays(start, end)
	if totalDays == 0 {
		respondError(w, http.StatusBadRequest, "leave must cover at least one working day")
		return
	}

	leave := models.LeaveApplication{
		UserID:    user.ID,
		LeaveType: leaveType,
		StartDate: start,
		EndDate:   end,
		TotalDays: totalDays,
		Reason:    strings.TrimSpace(req.Reason),
		Status:    models.StatusSubmitted,
	}
	if err := database.GetDB().Create(&leave).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "failed to create leave application")
		return
	}

	respondJSON(w, http.StatusCreated, leaveItemOf(leave, false))
}

// List returns the caller's own applications, newest first.
func (h *LeaveHandler) List(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	query := database.GetDB().
		Model(&models.LeaveApplication{}).
		Where("user_id = ?", user.ID).
		Order("start_date desc")

	p := pagination.FromQuery(r.URL.Query(), h.config.HistoryPageSize)
	page, err := pagination.Find[models.LeaveApplication](query, p)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load leave applications")
		return
	}

	items := make([]api.LeaveItem, 0, len(page.Items))
	for _, l := range page.Items {
		items = append(items, leaveItemOf(l, false))
	}
	respondJSON(w, http.StatusOK, pagination.NewPage(items, page.TotalCount, p))
}
