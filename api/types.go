// Package api holds the wire types shared by the HTTP handlers and the Go
// client. Dates travel as "2006-01-02" strings.
package api

import (
	"hrportal/models"
	"hrportal/pagination"
	"hrportal/timesheet"
)

const DateFormat = "2006-01-02"

type ErrorResponse struct {
	Error string `json:"error"`
}

// ValidationErrorResponse lists every failing day of a batch together.
type ValidationErrorResponse struct {
	Errors []string `json:"errors"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Email          string `json:"email"`
	Password       string `json:"password"`
	FullName       string `json:"full_name"`
	Department     string `json:"department"`
	EmployeeType   string `json:"employee_type"`
	EmployeeNumber string `json:"employee_number"`
}

// Session is the typed identity surface; feature code reads these fields
// from here and nowhere else.
type Session struct {
	UserID         uint        `json:"user_id"`
	Email          string      `json:"email"`
	FullName       string      `json:"full_name"`
	Department     string      `json:"department"`
	EmployeeType   string      `json:"employee_type"`
	EmployeeNumber string      `json:"employee_number"`
	Role           models.Role `json:"role"`
}

type LoginResponse struct {
	Token   string  `json:"token"`
	Session Session `json:"session"`
}

// SaveDayRequest is the day-level save: one weekday's entry.
type SaveDayRequest struct {
	Date        string  `json:"date"`
	Hours       float64 `json:"hours"`
	ProjectID   uint    `json:"project_id"`
	Description string  `json:"description"`
	IsOvertime  bool    `json:"is_overtime"`
}

// DayRow is the canonical saved row echoed back after a day save; the client
// reconciles its draft against it.
type DayRow struct {
	Weekday     string  `json:"weekday"`
	Date        string  `json:"date"`
	Hours       float64 `json:"hours"`
	ProjectID   uint    `json:"project_id"`
	ProjectName string  `json:"project_name,omitempty"`
	Description string  `json:"description"`
	IsOvertime  bool    `json:"is_overtime"`
}

type WeekDetail struct {
	Weekday     string  `json:"weekday"`
	Hours       float64 `json:"hours"`
	ProjectID   uint    `json:"project_id"`
	Description string  `json:"description"`
	IsOvertime  bool    `json:"is_overtime"`
}

// CreateWeekRequest replaces a week's entries in one batch. Empty days are
// expected to be filtered out before the payload is built.
type CreateWeekRequest struct {
	WeekStartDate string       `json:"week_start_date"`
	WeekEndDate   string       `json:"week_end_date"`
	Details       []WeekDetail `json:"details"`
}

type TimesheetView struct {
	ID            uint              `json:"id"`
	WeekStartDate string            `json:"week_start_date"`
	WeekEndDate   string            `json:"week_end_date"`
	TotalHours    float64           `json:"total_hours"`
	Status        models.Status     `json:"status"`
	SubmittedAt   string            `json:"submitted_at,omitempty"`
	SubmissionRef string            `json:"submission_ref,omitempty"`
	EmployeeName  string            `json:"employee_name,omitempty"`
	Days          []DayRow          `json:"days"`
	Summary       timesheet.Summary `json:"summary"`
}

// WeekResponse is the batch payload for a selected week: day infos for the
// grid, the sheet (zero-default skeleton when none exists yet), whether the
// week is editable, and optionally the first history page.
type WeekResponse struct {
	WeekStartDate string                  `json:"week_start_date"`
	WeekEndDate   string                  `json:"week_end_date"`
	Days          []timesheet.WeekDayInfo `json:"day_infos"`
	Timesheet     TimesheetView           `json:"timesheet"`
	Editable      bool                    `json:"editable"`
	History       *HistoryPage            `json:"history,omitempty"`
}

type CreateWeekResponse struct {
	Timesheet TimesheetView `json:"timesheet"`
	// Complete reports whether all five weekdays now carry hours; it picks
	// the follow-up message ("can submit" vs "fill remaining days").
	Complete bool `json:"complete"`
}

type SubmitResponse struct {
	ID            uint          `json:"id"`
	Status        models.Status `json:"status"`
	SubmissionRef string        `json:"submission_ref"`
}

type TimesheetListItem struct {
	ID            uint          `json:"id"`
	WeekStartDate string        `json:"week_start_date"`
	WeekEndDate   string        `json:"week_end_date"`
	TotalHours    float64       `json:"total_hours"`
	Status        models.Status `json:"status"`
	EmployeeName  string        `json:"employee_name,omitempty"`
}

type HistoryPage = pagination.Page[TimesheetListItem]

type ApprovalActionRequest struct {
	Action  string `json:"action"` // "approve" or "reject"
	Comment string `json:"comment,omitempty"`
}

type ProjectItem struct {
	ID   uint   `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

type CreateLeaveRequest struct {
	LeaveType string `json:"leave_type"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Reason    string `json:"reason"`
}

type LeaveItem struct {
	ID           uint          `json:"id"`
	EmployeeName string        `json:"employee_name,omitempty"`
	LeaveType    string        `json:"leave_type"`
	StartDate    string        `json:"start_date"`
	EndDate      string        `json:"end_date"`
	TotalDays    int           `json:"total_days"`
	Reason       string        `json:"reason"`
	Status       models.Status `json:"status"`
}

type LeavePage = pagination.Page[LeaveItem]
