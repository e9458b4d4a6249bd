package models

import (
	"time"
)

// WorkflowEvent is the audit trail row behind the submission/approval
// recorder. EntityType is "timesheet" or "leave".
type WorkflowEvent struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	EntityType string    `gorm:"not null;size:20;index" json:"entity_type"`
	EntityID   uint      `gorm:"not null;index" json:"entity_id"`
	ActorID    uint      `gorm:"not null" json:"actor_id"`
	FromStatus Status    `gorm:"size:20" json:"from_status"`
	ToStatus   Status    `gorm:"not null;size:20" json:"to_status"`
	Comment    string    `gorm:"size:500" json:"comment,omitempty"`
	OccurredAt time.Time `gorm:"not null" json:"occurred_at"`
}
