package models

import (
	"time"

	"gorm.io/gorm"
)

type Timesheet struct {
	ID              uint              `gorm:"primaryKey" json:"id"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
	DeletedAt       gorm.DeletedAt    `gorm:"index" json:"-"`
	UserID          uint              `gorm:"not null;index:idx_user_week,unique" json:"user_id"`
	User            User              `gorm:"foreignKey:UserID" json:"user,omitempty"`
	WeekStartDate   time.Time         `gorm:"not null;type:date;index:idx_user_week,unique" json:"week_start_date"`
	WeekEndDate     time.Time         `gorm:"not null;type:date" json:"week_end_date"`
	TotalHours      float64           `gorm:"not null;default:0" json:"total_hours"`
	Status          Status            `gorm:"not null;size:20;default:Draft" json:"status"`
	SubmittedAt     *time.Time        `json:"submitted_at,omitempty"`
	SubmissionRef   string            `gorm:"size:64" json:"submission_ref,omitempty"`
	ApprovedBy      *uint             `json:"approved_by,omitempty"`
	ApprovedAt      *time.Time        `json:"approved_at,omitempty"`
	RejectionReason string            `gorm:"size:500" json:"rejection_reason,omitempty"`
	Details         []TimesheetDetail `gorm:"foreignKey:TimesheetID" json:"details,omitempty"`
}

type TimesheetDetail struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
	TimesheetID     uint           `gorm:"not null;index" json:"timesheet_id"`
	WorkDate        time.Time      `gorm:"not null;type:date" json:"work_date"`
	Weekday         string         `gorm:"not null;size:10" json:"weekday"`
	HoursWorked     float64        `gorm:"not null" json:"hours_worked"`
	ProjectID       uint           `gorm:"not null;index" json:"project_id"`
	Project         *Project       `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	TaskDescription string         `gorm:"size:500" json:"task_description"`
	IsOvertime      bool           `gorm:"default:false" json:"is_overtime"`
}

// RecomputeTotal sums detail hours into TotalHours. The stored total is a
// convenience for list views; per-week aggregates (regular/overtime/comp-off)
// are always derived, never persisted.
func (t *Timesheet) RecomputeTotal() {
	var total float64
	for _, d := range t.Details {
		total += d.HoursWorked
	}
	t.TotalHours = total
}

func (t *Timesheet) DetailFor(weekday string) *TimesheetDetail {
	for i := range t.Details {
		if t.Details[i].Weekday == weekday {
			return &t.Details[i]
		}
	}
	return nil
}
