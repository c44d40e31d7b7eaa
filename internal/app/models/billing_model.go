package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type BillingEventKind string

const (
	BillingEventUpgraded  BillingEventKind = "upgraded"
	BillingEventRenewed   BillingEventKind = "renewed"
	BillingEventCancelled BillingEventKind = "cancelled"
)

// BillingEvent records a processed billing webhook delivery. The unique
// index on EventID makes webhook replays no-ops: a delivery whose id is
// already stored never mutates the account again.
type BillingEvent struct {
	ID        uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	EventID   string           `gorm:"uniqueIndex" json:"event_id"`
	AccountID uuid.UUID        `gorm:"type:uuid;index" json:"account_id"`
	Kind      BillingEventKind `json:"kind"`
	Plan      *PlanType        `json:"plan,omitempty"`
	CreatedAt time.Time        `gorm:"autoCreateTime" json:"created_at"`
}

func (b *BillingEvent) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

type BillingWebhookRequest struct {
	EventID   string           `json:"event_id" validate:"required,max=100"`
	AccountID string           `json:"account_id" validate:"required,uuid"`
	Kind      BillingEventKind `json:"kind" validate:"required,oneof=upgraded renewed cancelled"`
	Plan      *PlanType        `json:"plan,omitempty" validate:"omitempty,oneof=basic pro"`
}

// Plan describes a subscription tier in the public catalog.
type Plan struct {
	ID              PlanType        `json:"id"`
	Name            string          `json:"name"`
	PriceTHB        decimal.Decimal `json:"price_thb"`
	CreditsPerMonth int             `json:"credits_per_month"`
	Features        []string        `json:"features"`
}
