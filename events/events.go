// Package events records workflow transitions. Handlers receive a Recorder
// through their constructors; there is no global registry.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"hrportal/models"
)

// Transition is the typed cross-feature submission/approval event.
type Transition struct {
	EntityType string
	EntityID   uint
	ActorID    uint
	From       models.Status
	To         models.Status
	Comment    string
}

type Recorder interface {
	Record(ctx context.Context, t Transition) error
}

// DBRecorder persists transitions as workflow_events rows.
type DBRecorder struct {
	db *gorm.DB
}

func NewDBRecorder(db *gorm.DB) *DBRecorder {
	return &DBRecorder{db: db}
}

func (r *DBRecorder) Record(ctx context.Context, t Transition) error {
	event := models.WorkflowEvent{
		ID:         uuid.NewString(),
		EntityType: t.EntityType,
		EntityID:   t.EntityID,
		ActorID:    t.ActorID,
		FromStatus: t.From,
		ToStatus:   t.To,
		Comment:    t.Comment,
		OccurredAt: time.Now().UTC(),
	}
	return r.db.WithContext(ctx).Create(&event).Error
}
