package models

import (
	"time"

	"gorm.io/gorm"
)

type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleHR       Role = "HR"
	RoleManager  Role = "MANAGER"
	RoleEmployee Role = "EMPLOYEE"
)

type User struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
	Email          string         `gorm:"uniqueIndex;not null;size:200" json:"email"`
	FullName       string         `gorm:"not null;size:200" json:"full_name"`
	PasswordHash   string         `gorm:"not null" json:"-"`
	Role           Role           `gorm:"not null;size:20" json:"role"`
	Department     string         `gorm:"size:100" json:"department"`
	EmployeeType   string         `gorm:"size:50" json:"employee_type"`
	EmployeeNumber string         `gorm:"uniqueIndex;size:50" json:"employee_number"`
	ManagerID      *uint          `gorm:"index" json:"manager_id"`
	Timesheets     []Timesheet    `gorm:"foreignKey:UserID" json:"timesheets,omitempty"`
}

func (u *User) DisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	return u.Email
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u *User) IsHR() bool {
	return u.Role == RoleHR
}

func (u *User) IsManager() bool {
	return u.Role == RoleManager
}

func (u *User) CanManageTimesheetFor(userID uint) bool {
	if u.IsAdmin() {
		return true
	}
	return u.ID == userID
}

func (u *User) CanApproveTimesheets() bool {
	return u.IsManager() || u.IsHR() || u.IsAdmin()
}

func (u *User) CanViewAllTimesheets() bool {
	return u.IsAdmin() || u.IsHR()
}

func (u *User) CanExport() bool {
	return u.IsAdmin() || u.IsHR()
}
