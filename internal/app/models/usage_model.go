package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UsageRecord is an immutable audit entry for one unit of metered work.
// It is written alongside the account's cumulative counters; records are
// never updated or deleted.
type UsageRecord struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	AccountID      uuid.UUID `gorm:"type:uuid;index" json:"account_id"`
	TemplateID     string    `json:"template_id"`
	TemplateName   string    `json:"template_name"`
	ContentLength  int64     `json:"content_length"`
	ProcessingTime int64     `json:"processing_time"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (u *UsageRecord) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

type UsageTrackRequest struct {
	TemplateID     string `json:"template_id" validate:"required,max=100"`
	TemplateName   string `json:"template_name" validate:"required,max=255"`
	ContentLength  int64  `json:"content_length" validate:"min=0"`
	ProcessingTime int64  `json:"processing_time" validate:"min=0"`
}

type UsageStats struct {
	TemplatesUsed  int64    `json:"templates_used"`
	ContentCreated int64    `json:"content_created"`
	TimeSavedHours int64    `json:"time_saved_hours"`
	CurrentPlan    PlanType `json:"current_plan"`
}
