package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type VoucherStatus string

const (
	VoucherStatusPending  VoucherStatus = "pending"
	VoucherStatusApproved VoucherStatus = "approved"
	VoucherStatusRejected VoucherStatus = "rejected"
)

// CreditBonusMultiplier converts a voucher's purchase amount into spendable
// credit: buy 1000, spend 1200.
var CreditBonusMultiplier = decimal.NewFromFloat(1.2)

type Voucher struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Code           string          `gorm:"uniqueIndex" json:"code"`
	PurchaseAmount decimal.Decimal `gorm:"type:decimal(18,2)" json:"purchase_amount"`
	CreditAmount   decimal.Decimal `gorm:"type:decimal(18,2)" json:"credit_amount"`
	UsedAmount     decimal.Decimal `gorm:"type:decimal(18,2)" json:"used_amount"`
	Status         VoucherStatus   `json:"status"`
	BuyerName      string          `json:"buyer_name"`
	BuyerPhone     *string         `json:"buyer_phone,omitempty"`
	BuyerEmail     *string         `json:"buyer_email,omitempty"`
	SlipPath       *string         `json:"slip_path,omitempty"`
	ExpiryDate     time.Time       `json:"expiry_date"`
	CreatedAt      time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt      gorm.DeletedAt  `gorm:"index" json:"deleted_at"`
}

func (v *Voucher) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}

// Remaining is the spendable balance left on the voucher.
func (v *Voucher) Remaining() decimal.Decimal {
	return v.CreditAmount.Sub(v.UsedAmount)
}

type VoucherCreateRequest struct {
	PurchaseAmount decimal.Decimal `json:"purchase_amount" validate:"required"`
	BuyerName      string          `json:"buyer_name" validate:"required,max=255"`
	BuyerPhone     *string         `json:"buyer_phone,omitempty" validate:"omitempty,max=20"`
	BuyerEmail     *string         `json:"buyer_email,omitempty" validate:"omitempty,email"`
	SlipPath       *string         `json:"slip_path,omitempty" validate:"omitempty,max=500"`
}

type VoucherRedeemRequest struct {
	Code   string          `json:"code" validate:"required,max=20"`
	Amount decimal.Decimal `json:"amount" validate:"required"`
}

type VoucherRedeemResponse struct {
	Used      decimal.Decimal `json:"used"`
	Remaining decimal.Decimal `json:"remaining"`
}

type VoucherValidityResponse struct {
	Valid        bool            `json:"valid"`
	Code         string          `json:"code"`
	Status       VoucherStatus   `json:"status"`
	CreditAmount decimal.Decimal `json:"credit_amount"`
	UsedAmount   decimal.Decimal `json:"used_amount"`
	Remaining    decimal.Decimal `json:"remaining"`
	ExpiryDate   time.Time       `json:"expiry_date"`
	IsExpired    bool            `json:"is_expired"`
}
