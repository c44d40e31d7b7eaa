package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type MembershipStatus string

const (
	MembershipStatusPending  MembershipStatus = "pending"
	MembershipStatusApproved MembershipStatus = "approved"
	MembershipStatusRejected MembershipStatus = "rejected"
)

// MembershipFeeTHB is the flat membership application fee.
const MembershipFeeTHB = 50

// MembershipApplication is a paid membership request awaiting admin review
// of the transfer slip. Approval flips the member flag on the account.
type MembershipApplication struct {
	ID        uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	AccountID uuid.UUID        `gorm:"type:uuid;index" json:"account_id"`
	Amount    decimal.Decimal  `gorm:"type:decimal(18,2)" json:"amount"`
	SlipPath  *string          `json:"slip_path,omitempty"`
	Status    MembershipStatus `json:"status"`
	CreatedAt time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time        `gorm:"autoUpdateTime" json:"updated_at"`
}

func (m *MembershipApplication) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

type MembershipApplyRequest struct {
	SlipPath *string `json:"slip_path,omitempty" validate:"omitempty,max=500"`
}
