package handlers

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"hrportal/api"
	"hrportal/config"
	"hrportal/database"
	"hrportal/middleware"
	"hrportal/models"
)

type ExportHandler struct {
	config *config.Config
}

func NewExportHandler(cfg *config.Config) *ExportHandler {
	return &ExportHandler{config: cfg}
}

// ExportCSV writes one row per timesheet day for every week starting in the
// requested month. HR and admin only.
func (h *ExportHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if !user.CanExport() {
		respondError(w, http.StatusForbidden, "forbidden")
		return
	}

	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil || month < 1 || month > 12 {
		respondError(w, http.StatusBadRequest, "invalid month")
		return
	}

	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil || year < 2000 || year > 2100 {
		respondError(w, http.StatusBadRequest, "invalid year")
		return
	}

	startDate := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	endDate := startDate.AddDate(0, 1, 0)

	var sheets []models.Timesheet
	err = database.GetDB().
		Preload("User").
		Preload("Details").
		Preload("Details.Project").
		Where("week_start_date >= ? AND week_start_date < ?", startDate, endDate).
		Order("week_start_date asc, user_id asc").
		Find(&sheets).Error
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load timesheets")
		return
	}

	filename := fmt.Sprintf("timesheets_%d_%02d.csv", year, month)
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))

	writer := csv.NewWriter(w)
	defer writer.Flush()

	writer.Write([]string{"Employee", "Week Start", "Date", "Weekday", "Project", "Hours", "Overtime", "Description", "Status"})

	for _, ts := range sheets {
		for _, d := range ts.Details {
			projectName := ""
			if d.Project != nil {
				projectName = d.Project.Name
			}
			overtime := "no"
			if d.IsOvertime {
				overtime = "yes"
			}
			writer.Write([]string{
				ts.User.DisplayName(),
				ts.WeekStartDate.Format(api.DateFormat),
				d.WorkDate.Format(api.DateFormat),
				d.Weekday,
				projectName,
				fmt.Sprintf("%.2f", d.HoursWorked),
				overtime,
				d.TaskDescription,
				string(ts.Status),
			})
		}
	}
}
