package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/siamaraya/araya-core/internal/app/errors"
	"github.com/siamaraya/araya-core/internal/app/models"
)

func newTestOrderService(t *testing.T, db *gorm.DB) (*OrderService, *VoucherService) {
	t.Helper()

	auditService := NewAuditService(db)
	voucherService := newTestVoucherService(t, db)
	return NewOrderService(db, newTestValidator(), voucherService, auditService), voucherService
}

func TestCreateOrderWithVoucherDiscount(t *testing.T) {
	db := newTestDB(t)
	svc, voucherService := newTestOrderService(t, db)
	voucher := issueApprovedVoucher(t, voucherService, "1000") // 1200 credit

	order, err := svc.CreateOrder(&models.OrderCreateRequest{
		Items:       `[{"sku":"herb-tea-01","qty":3}]`,
		Subtotal:    decimal.RequireFromString("1500"),
		Discount:    decimal.RequireFromString("1200"),
		VoucherCode: &voucher.Code,
	}, nil)
	require.NoError(t, err)

	assert.True(t, order.Total.Equal(decimal.RequireFromString("300")),
		"expected total 300, got %s", order.Total)
	assert.Equal(t, models.PaymentStatusPending, order.PaymentStatus)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Contains(t, order.OrderNumber, "ORD-")

	redeemed, err := voucherService.GetVoucher(voucher.ID.String())
	require.NoError(t, err)
	assert.True(t, redeemed.Remaining().IsZero())
}

func TestCreateOrderVoucherFailureRollsBack(t *testing.T) {
	db := newTestDB(t)
	svc, voucherService := newTestOrderService(t, db)
	voucher := issueApprovedVoucher(t, voucherService, "1000") // 1200 credit

	_, err := voucherService.Redeem(voucher.Code, decimal.RequireFromString("500"))
	require.NoError(t, err)

	// Discount 800 exceeds the remaining 700, so nothing must be written.
	_, err = svc.CreateOrder(&models.OrderCreateRequest{
		Items:       `[{"sku":"herb-tea-01","qty":1}]`,
		Subtotal:    decimal.RequireFromString("900"),
		Discount:    decimal.RequireFromString("800"),
		VoucherCode: &voucher.Code,
	}, nil)
	requireAppErrorCode(t, err, errors.CodeInsufficientBalance)

	var orderCount int64
	require.NoError(t, db.Model(&models.Order{}).Count(&orderCount).Error)
	assert.Equal(t, int64(0), orderCount)

	unchanged, err := voucherService.GetVoucher(voucher.ID.String())
	require.NoError(t, err)
	assert.True(t, unchanged.UsedAmount.Equal(decimal.RequireFromString("500")))
}

func TestCreateOrderRejectsDiscountAboveSubtotal(t *testing.T) {
	svc, _ := newTestOrderService(t, newTestDB(t))

	_, err := svc.CreateOrder(&models.OrderCreateRequest{
		Items:    `[{"sku":"herb-tea-01","qty":1}]`,
		Subtotal: decimal.RequireFromString("100"),
		Discount: decimal.RequireFromString("200"),
	}, nil)
	requireAppErrorCode(t, err, errors.CodeInvalidInput)
}

func TestCreateOrderRejectsInconsistentTotal(t *testing.T) {
	svc, _ := newTestOrderService(t, newTestDB(t))

	_, err := svc.CreateOrder(&models.OrderCreateRequest{
		Items:    `[{"sku":"herb-tea-01","qty":1}]`,
		Subtotal: decimal.RequireFromString("500"),
		Discount: decimal.RequireFromString("100"),
		Total:    decimal.RequireFromString("500"),
	}, nil)
	requireAppErrorCode(t, err, errors.CodeInvalidInput)
}

func TestApproveOrder(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newTestOrderService(t, db)

	order, err := svc.CreateOrder(&models.OrderCreateRequest{
		Items:    `[{"sku":"herb-tea-01","qty":1}]`,
		Subtotal: decimal.RequireFromString("500"),
	}, nil)
	require.NoError(t, err)

	approved, err := svc.ApproveOrder(order.ID.String(), &models.OrderApproveRequest{
		Status: models.OrderStatusConfirmed,
	})
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPaid, approved.PaymentStatus)
	assert.Equal(t, models.OrderStatusConfirmed, approved.Status)

	var auditCount int64
	require.NoError(t, db.Model(&models.AuditLog{}).
		Where("table_name = ? AND record_id = ?", "orders", order.ID).
		Count(&auditCount).Error)
	assert.Equal(t, int64(1), auditCount)
}

func TestGetOrderByNumberNotFound(t *testing.T) {
	svc, _ := newTestOrderService(t, newTestDB(t))

	_, err := svc.GetOrderByNumber("ORD-0")
	requireAppErrorCode(t, err, errors.CodeNotFound)
}
