package models

import (
	"time"
)

// Project is the authoritative catalog entry; clients resolve names through
// the API and carry no fallback table of their own.
type Project struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Code      string    `gorm:"uniqueIndex;not null;size:50" json:"code"`
	Name      string    `gorm:"uniqueIndex;not null;size:100" json:"name"`
	Active    bool      `gorm:"default:true" json:"active"`
}
