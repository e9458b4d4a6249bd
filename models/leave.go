package models

import (
	"time"

	"gorm.io/gorm"
)

type LeaveType string

const (
	LeaveAnnual LeaveType = "ANNUAL"
	LeaveSick   LeaveType = "SICK"
	LeaveUnpaid LeaveType = "UNPAID"
)

func ParseLeaveType(s string) (LeaveType, bool) {
	switch LeaveType(s) {
	case LeaveAnnual, LeaveSick, LeaveUnpaid:
		return LeaveType(s), true
	}
	return "", false
}

type LeaveApplication struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
	UserID          uint           `gorm:"not null;index" json:"user_id"`
	User            User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
	LeaveType       LeaveType      `gorm:"not null;size:20" json:"leave_type"`
	StartDate       time.Time      `gorm:"not null;type:date" json:"start_date"`
	EndDate         time.Time      `gorm:"not null;type:date" json:"end_date"`
	TotalDays       int            `gorm:"not null" json:"total_days"`
	Reason          string         `gorm:"size:500" json:"reason"`
	Status          Status         `gorm:"not null;size:20;default:Submitted" json:"status"`
	ApprovedBy      *uint          `json:"approved_by,omitempty"`
	ApprovedAt      *time.Time     `json:"approved_at,omitempty"`
	RejectionReason string         `gorm:"size:500" json:"rejection_reason,omitempty"`
}

// WorkingDays counts Mon-Fri days in [start, end] inclusive.
func WorkingDays(start, end time.Time) int {
	days := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday {
			days++
		}
	}
	return days
}
