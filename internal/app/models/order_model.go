package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDone      OrderStatus = "done"
)

type Order struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	OrderNumber     string          `gorm:"uniqueIndex" json:"order_number"`
	AccountID       *uuid.UUID      `gorm:"type:uuid" json:"account_id,omitempty"`
	Items           string          `json:"items"`
	Subtotal        decimal.Decimal `gorm:"type:decimal(18,2)" json:"subtotal"`
	Discount        decimal.Decimal `gorm:"type:decimal(18,2)" json:"discount"`
	Total           decimal.Decimal `gorm:"type:decimal(18,2)" json:"total"`
	VoucherCode     *string         `json:"voucher_code,omitempty"`
	PaymentStatus   PaymentStatus   `json:"payment_status"`
	Status          OrderStatus     `json:"status"`
	ShippingAddress *string         `json:"shipping_address,omitempty"`
	SlipPath        *string         `json:"slip_path,omitempty"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt       gorm.DeletedAt  `gorm:"index" json:"deleted_at"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

type OrderCreateRequest struct {
	Items           string          `json:"items" validate:"required"`
	Subtotal        decimal.Decimal `json:"subtotal" validate:"required"`
	Discount        decimal.Decimal `json:"discount"`
	Total           decimal.Decimal `json:"total"`
	VoucherCode     *string         `json:"voucher_code,omitempty" validate:"omitempty,max=20"`
	ShippingAddress *string         `json:"shipping_address,omitempty" validate:"omitempty,max=1000"`
	SlipPath        *string         `json:"slip_path,omitempty" validate:"omitempty,max=500"`
}

type OrderApproveRequest struct {
	Status OrderStatus `json:"status" validate:"required,oneof=pending confirmed shipped done"`
}
