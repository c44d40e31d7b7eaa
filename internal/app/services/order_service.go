package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/siamaraya/araya-core/internal/app/errors"
	"github.com/siamaraya/araya-core/internal/app/models"
	"github.com/siamaraya/araya-core/internal/infrastructures"
)

// OrderService creates storefront orders. When an order is funded by a gift
// voucher, the voucher debit and the order insert commit in the same
// transaction.
type OrderService struct {
	db             *gorm.DB
	validator      *infrastructures.Validator
	voucherService *VoucherService
	auditService   *AuditService
	now            func() time.Time
}

func NewOrderService(db *gorm.DB, validator *infrastructures.Validator, voucherService *VoucherService, auditService *AuditService) *OrderService {
	return &OrderService{
		db:             db,
		validator:      validator,
		voucherService: voucherService,
		auditService:   auditService,
		now:            time.Now,
	}
}

func (s *OrderService) CreateOrder(req *models.OrderCreateRequest, accountID *uuid.UUID) (*models.Order, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	if req.Subtotal.IsNegative() || req.Discount.IsNegative() {
		return nil, errors.NewBadRequestError("Amounts must not be negative")
	}
	if req.Discount.GreaterThan(req.Subtotal) {
		return nil, errors.NewBadRequestError("Discount must not exceed subtotal")
	}

	total := req.Subtotal.Sub(req.Discount)
	if !req.Total.IsZero() && !req.Total.Equal(total) {
		return nil, errors.NewBadRequestError("Total does not match subtotal minus discount")
	}

	order := &models.Order{
		OrderNumber:     fmt.Sprintf("ORD-%d", s.now().UnixMilli()),
		AccountID:       accountID,
		Items:           req.Items,
		Subtotal:        req.Subtotal,
		Discount:        req.Discount,
		Total:           total,
		VoucherCode:     req.VoucherCode,
		PaymentStatus:   models.PaymentStatusPending,
		Status:          models.OrderStatusPending,
		ShippingAddress: req.ShippingAddress,
		SlipPath:        req.SlipPath,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if req.VoucherCode != nil && req.Discount.IsPositive() {
			if _, err := s.voucherService.redeemTx(tx, *req.VoucherCode, req.Discount); err != nil {
				return err
			}
		}

		if err := tx.Create(order).Error; err != nil {
			return errors.NewInternalServerError(err, "Failed to create order")
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return order, nil
}

func (s *OrderService) GetOrderByNumber(orderNumber string) (*models.Order, error) {
	var order models.Order
	err := s.db.Where("order_number = ?", orderNumber).First(&order).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("Order not found")
		}
		return nil, errors.NewInternalServerError(err, "Failed to get order")
	}

	return &order, nil
}

// ApproveOrder marks an order as paid and moves it to the given fulfilment
// status. Admin action.
func (s *OrderService) ApproveOrder(orderID string, req *models.OrderApproveRequest) (*models.Order, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	orderUUID, err := uuid.Parse(orderID)
	if err != nil {
		return nil, errors.NewBadRequestError("Invalid order ID format")
	}

	var order models.Order
	err = s.db.Where("id = ?", orderUUID).First(&order).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("Order not found")
		}
		return nil, errors.NewInternalServerError(err, "Failed to get order")
	}

	previous := order
	order.PaymentStatus = models.PaymentStatusPaid
	order.Status = req.Status

	if err := s.db.Save(&order).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to update order")
	}

	s.auditService.LogAudit("orders", order.ID, models.AuditActionApprove, &previous, &order, nil)

	return &order, nil
}

func (s *OrderService) ListOrders(pagination *models.PaginationRequest) (*models.Pagination[[]models.Order], error) {
	if pagination.Limit <= 0 {
		pagination.Limit = 10
	}
	if pagination.Page <= 0 {
		pagination.Page = 1
	}

	offset := (pagination.Page - 1) * pagination.Limit

	var totalItems int64
	if err := s.db.Model(&models.Order{}).Count(&totalItems).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to count orders")
	}

	var orders []models.Order
	err := s.db.Order("created_at DESC").Limit(pagination.Limit).Offset(offset).Find(&orders).Error
	if err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to get orders")
	}

	totalPages := int((totalItems + int64(pagination.Limit) - 1) / int64(pagination.Limit))

	return &models.Pagination[[]models.Order]{
		Page:       pagination.Page,
		Limit:      pagination.Limit,
		TotalPages: totalPages,
		TotalItems: int(totalItems),
		HasNext:    pagination.Page < totalPages,
		HasPrev:    pagination.Page > 1,
		Items:      orders,
	}, nil
}
