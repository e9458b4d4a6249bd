package handlers

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"hrportal/api"
	"hrportal/config"
	"hrportal/database"
	"hrportal/events"
	"hrportal/middleware"
	"hrportal/models"
	"hrportal/pagination"
)

// ApprovalHandler serves the manager and HR queues. Managers act on
// submitted sheets from their reports; HR acts on manager-approved sheets
// across the company. Admins see both stages.
type ApprovalHandler struct {
	config   *config.Config
	recorder events.Recorder
	now      func() time.Time
}

func NewApprovalHandler(cfg *config.Config, recorder events.Recorder) *ApprovalHandler {
	return &ApprovalHandler{
		config:   cfg,
		recorder: recorder,
		now:      time.Now,
	}
}

func pendingStatusesFor(user *models.User) []models.Status {
	switch {
	case user.IsAdmin():
		return append(append([]models.Status{}, models.ManagerPending...), models.HRPending...)
	case user.IsHR():
		return models.HRPending
	default:
		return models.ManagerPending
	}
}

// PendingTimesheets lists the role-appropriate pending queue, paginated.
func (h *ApprovalHandler) PendingTimesheets(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if !user.CanApproveTimesheets() {
		respondError(w, http.StatusForbidden, "forbidden")
		return
	}

	query := database.GetDB().
		Model(&models.Timesheet{}).
		Preload("User").
		Where("status IN ?", pendingStatusesFor(user)).
		Order("week_start_date asc")
	if user.IsManager() {
		query = query.Joins("JOIN users ON users.id = timesheets.user_id").
			Where("users.manager_id = ?", user.ID)
	}

	p := pagination.FromQuery(r.URL.Query(), h.config.HistoryPageSize)
	page, err := pagination.Find[models.Timesheet](query, p)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load pending timesheets")
		return
	}

	items := make([]api.TimesheetListItem, 0, len(page.Items))
	for _, ts := range page.Items {
		items = append(items, listItemOf(ts, true))
	}
	respondJSON(w, http.StatusOK, pagination.NewPage(items, page.TotalCount, p))
}

// withinManagerPurview limits managers to their own reports. HR and admin act
// company-wide.
func withinManagerPurview(actor *models.User, owner models.User) bool {
	if !actor.IsManager() {
		return true
	}
	return owner.ManagerID != nil && *owner.ManagerID == actor.ID
}

func approvalTarget(current models.Status, user *models.User) (models.Status, bool) {
	switch current {
	case models.StatusSubmitted:
		if user.IsManager() || user.IsAdmin() {
			return models.StatusManagerApproved, true
		}
	case models.StatusManagerApproved:
		if user.IsHR() || user.IsAdmin() {
			return models.StatusHRApproved, true
		}
	}
	return "", false
}

// ActOnTimesheet applies a single approve/reject transition.
func (h *ApprovalHandler) ActOnTimesheet(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if !user.CanApproveTimesheets() {
		respondError(w, http.StatusForbidden, "forbidden")
		return
	}

	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 32)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid timesheet ID")
		return
	}

	var req api.ApprovalActionRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var ts models.Timesheet
	if err := database.GetDB().Preload("User").First(&ts, id).Error; err != nil {
		respondError(w, http.StatusNotFound, "timesheet not found")
		return
	}
	if !withinManagerPurview(user, ts.User) {
		respondError(w, http.StatusForbidden, "timesheet is not from one of your reports")
		return
	}

	from := ts.Status
	var target models.Status
	switch req.Action {
	case "approve":
		next, ok := approvalTarget(ts.Status, user)
		if !ok {
			respondError(w, http.StatusConflict, "timesheet is not awaiting your approval")
			return
		}
		target = next
	case "reject":
		target = models.StatusRejected
	default:
		respondError(w, http.StatusBadRequest, "action must be approve or reject")
		return
	}

	if !ts.Status.CanTransitionTo(target) {
		respondError(w, http.StatusConflict, "timesheet is not awaiting approval")
		return
	}

	now := h.now()
	ts.Status = target
	if target == models.StatusRejected {
		ts.RejectionReason = req.Comment
	} else {
		approver := user.ID
		ts.ApprovedBy = &approver
		ts.ApprovedAt = &now
	}
	if err := database.GetDB().Save(&ts).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "failed to update timesheet")
		return
	}

	if err := h.recorder.Record(r.Context(), events.Transition{
		EntityType: "timesheet",
		EntityID:   ts.ID,
		ActorID:    user.ID,
		From:       from,
		To:         target,
		Comment:    req.Comment,
	}); err != nil {
		log.Printf("record approval event: %v", err)
	}

	respondJSON(w, http.StatusOK, listItemOf(ts, true))
}

// PendingLeave lists leave applications awaiting action, same shape as the
// timesheet queue.
func (h *ApprovalHandler) PendingLeave(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if !user.CanApproveTimesheets() {
		respondError(w, http.StatusForbidden, "forbidden")
		return
	}

	query := database.GetDB().
		Model(&models.LeaveApplication{}).
		Preload("User").
		Where("status IN ?", pendingStatusesFor(user)).
		Order("start_date asc")
	if user.IsManager() {
		query = query.Joins("JOIN users ON users.id = leave_applications.user_id").
			Where("users.manager_id = ?", user.ID)
	}

	p := pagination.FromQuery(r.URL.Query(), h.config.HistoryPageSize)
	page, err := pagination.Find[models.LeaveApplication](query, p)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load pending leave")
		return
	}

	items := make([]api.LeaveItem, 0, len(page.Items))
	for _, l := range page.Items {
		items = append(items, leaveItemOf(l, true))
	}
	respondJSON(w, http.StatusOK, pagination.NewPage(items, page.TotalCount, p))
}

// ActOnLeave approves or rejects a leave application.
func (h *ApprovalHandler) ActOnLeave(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if !user.CanApproveTimesheets() {
		respondError(w, http.StatusForbidden, "forbidden")
		return
	}

	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 32)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid leave ID")
		return
	}

	var req api.ApprovalActionRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var leave models.LeaveApplication
	if err := database.GetDB().Preload("User").First(&leave, id).Error; err != nil {
		respondError(w, http.StatusNotFound, "leave application not found")
		return
	}
	if !withinManagerPurview(user, leave.User) {
		respondError(w, http.StatusForbidden, "leave application is not from one of your reports")
		return
	}

	from := leave.Status
	var target models.Status
	switch req.Action {
	case "approve":
		next, ok := approvalTarget(leave.Status, user)
		if !ok {
			respondError(w, http.StatusConflict, "leave application is not awaiting your approval")
			return
		}
		target = next
	case "reject":
		target = models.StatusRejected
	default:
		respondError(w, http.StatusBadRequest, "action must be approve or reject")
		return
	}

	if !leave.Status.CanTransitionTo(target) {
		respondError(w, http.StatusConflict, "leave application is not awaiting approval")
		return
	}

	now := h.now()
	leave.Status = target
	if target == models.StatusRejected {
		leave.RejectionReason = req.Comment
	} else {
		approver := user.ID
		leave.ApprovedBy = &approver
		leave.ApprovedAt = &now
	}
	if err := database.GetDB().Save(&leave).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "failed to update leave application")
		return
	}

	if err := h.recorder.Record(r.Context(), events.Transition{
		EntityType: "leave",
		EntityID:   leave.ID,
		ActorID:    user.ID,
		From:       from,
		To:         target,
		Comment:    req.Comment,
	}); err != nil {
		log.Printf("record approval event: %v", err)
	}

	respondJSON(w, http.StatusOK, leaveItemOf(leave, true))
}
