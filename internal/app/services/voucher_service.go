package services

import (
	stderrors "errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/siamaraya/araya-core/internal/app/errors"
	"github.com/siamaraya/araya-core/internal/app/models"
	"github.com/siamaraya/araya-core/internal/infrastructures"
	"github.com/siamaraya/araya-core/pkg/vouchercode"
)

// codeGenerationAttempts bounds the collision-retry loop in Issue. With a
// 32^8 code space this is effectively never exhausted.
const codeGenerationAttempts = 10

const defaultVoucherExpiry = "2026-01-31"

// VoucherService issues, approves and meters consumption of prepaid store
// credit vouchers. Redemption uses a guarded increment on used_amount so
// concurrent redemptions can never jointly overspend a voucher.
type VoucherService struct {
	db           *gorm.DB
	validator    *infrastructures.Validator
	auditService *AuditService
	now          func() time.Time
}

func NewVoucherService(db *gorm.DB, validator *infrastructures.Validator, auditService *AuditService) *VoucherService {
	return &VoucherService{
		db:           db,
		validator:    validator,
		auditService: auditService,
		now:          time.Now,
	}
}

// Issue creates a pending voucher worth purchaseAmount * 1.2 in store
// credit. The balance is not spendable until an admin approves the voucher.
func (s *VoucherService) Issue(req *models.VoucherCreateRequest) (*models.Voucher, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	if !req.PurchaseAmount.IsPositive() {
		return nil, errors.NewBadRequestError("Purchase amount must be greater than zero")
	}

	voucher := &models.Voucher{
		PurchaseAmount: req.PurchaseAmount,
		CreditAmount:   req.PurchaseAmount.Mul(models.CreditBonusMultiplier),
		UsedAmount:     decimal.Zero,
		Status:         models.VoucherStatusPending,
		BuyerName:      req.BuyerName,
		BuyerPhone:     req.BuyerPhone,
		BuyerEmail:     req.BuyerEmail,
		SlipPath:       req.SlipPath,
		ExpiryDate:     s.expiryDate(),
	}

	for attempt := 0; attempt < codeGenerationAttempts; attempt++ {
		code, err := vouchercode.Generate()
		if err != nil {
			return nil, errors.NewInternalServerError(err, "Failed to generate voucher code")
		}

		voucher.Code = code
		err = s.db.Create(voucher).Error
		if err == nil {
			return voucher, nil
		}
		if stderrors.Is(err, gorm.ErrDuplicatedKey) {
			// Code collision: draw a new code and try again.
			voucher.ID = uuid.Nil
			continue
		}
		return nil, errors.NewInternalServerError(err, "Failed to create voucher")
	}

	return nil, errors.NewInternalServerError(
		stderrors.New("voucher code space exhausted"), "Failed to create voucher")
}

func (s *VoucherService) GetVoucher(voucherID string) (*models.Voucher, error) {
	voucherUUID, err := uuid.Parse(voucherID)
	if err != nil {
		return nil, errors.NewBadRequestError("Invalid voucher ID format")
	}

	var voucher models.Voucher
	err = s.db.Where("id = ?", voucherUUID).First(&voucher).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("Voucher not found")
		}
		return nil, errors.NewInternalServerError(err, "Failed to get voucher")
	}

	return &voucher, nil
}

func (s *VoucherService) GetVoucherByCode(code string) (*models.Voucher, error) {
	code = vouchercode.Normalize(code)
	if !vouchercode.IsWellFormed(code) {
		return nil, errors.NewBadRequestError("Malformed voucher code")
	}

	var voucher models.Voucher
	err := s.db.Where("code = ?", code).First(&voucher).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("Voucher not found")
		}
		return nil, errors.NewInternalServerError(err, "Failed to get voucher")
	}

	return &voucher, nil
}

// Approve transitions a pending voucher to approved, unlocking its balance.
// Approving an already-approved voucher is a no-op; a rejected voucher is
// terminal and cannot be approved.
func (s *VoucherService) Approve(voucherID string) (*models.Voucher, error) {
	return s.transition(voucherID, models.VoucherStatusApproved, models.AuditActionApprove)
}

// Reject transitions a pending voucher to rejected. Rejected is terminal:
// an approved voucher cannot be rejected afterwards.
func (s *VoucherService) Reject(voucherID string) (*models.Voucher, error) {
	return s.transition(voucherID, models.VoucherStatusRejected, models.AuditActionReject)
}

func (s *VoucherService) transition(voucherID string, target models.VoucherStatus, action models.AuditAction) (*models.Voucher, error) {
	voucher, err := s.GetVoucher(voucherID)
	if err != nil {
		return nil, err
	}

	if voucher.Status == target {
		return voucher, nil
	}

	// Guarded transition: only a pending voucher can move, so two racing
	// admin decisions cannot both win.
	result := s.db.Model(&models.Voucher{}).
		Where("id = ? AND status = ?", voucher.ID, models.VoucherStatusPending).
		Update("status", target)
	if result.Error != nil {
		return nil, errors.NewInternalServerError(result.Error, "Failed to update voucher status")
	}
	if result.RowsAffected == 0 {
		// Lost the race or the voucher already left pending; report the
		// state it actually holds.
		current, err := s.GetVoucher(voucherID)
		if err != nil {
			return nil, err
		}
		if current.Status == target {
			return current, nil
		}
		return nil, errors.NewConflictError("Voucher is already " + string(current.Status))
	}

	previous := *voucher
	voucher.Status = target
	s.auditService.LogAudit("vouchers", voucher.ID, action, &previous, voucher, nil)

	return voucher, nil
}

func (s *VoucherService) CheckValidity(code string) (*models.VoucherValidityResponse, error) {
	voucher, err := s.GetVoucherByCode(code)
	if err != nil {
		return nil, err
	}

	remaining := voucher.Remaining()
	isExpired := s.now().After(voucher.ExpiryDate)

	return &models.VoucherValidityResponse{
		Valid:        voucher.Status == models.VoucherStatusApproved && remaining.IsPositive() && !isExpired,
		Code:         voucher.Code,
		Status:       voucher.Status,
		CreditAmount: voucher.CreditAmount,
		UsedAmount:   voucher.UsedAmount,
		Remaining:    remaining,
		ExpiryDate:   voucher.ExpiryDate,
		IsExpired:    isExpired,
	}, nil
}

// Redeem spends amount from the voucher's remaining balance. The balance
// check and the increment are one guarded UPDATE: if two redemptions race,
// only the one that still fits the remaining balance commits.
func (s *VoucherService) Redeem(code string, amount decimal.Decimal) (*models.VoucherRedeemResponse, error) {
	var response *models.VoucherRedeemResponse
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		response, err = s.redeemTx(tx, code, amount)
		return err
	})
	if err != nil {
		return nil, err
	}
	return response, nil
}

func (s *VoucherService) redeemTx(tx *gorm.DB, code string, amount decimal.Decimal) (*models.VoucherRedeemResponse, error) {
	if !amount.IsPositive() {
		return nil, errors.NewBadRequestError("Redemption amount must be greater than zero")
	}

	code = vouchercode.Normalize(code)
	if !vouchercode.IsWellFormed(code) {
		return nil, errors.NewBadRequestError("Malformed voucher code")
	}

	var voucher models.Voucher
	err := tx.Where("code = ?", code).First(&voucher).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("Voucher not found")
		}
		return nil, errors.NewInternalServerError(err, "Failed to get voucher")
	}

	if voucher.Status != models.VoucherStatusApproved {
		return nil, errors.NewVoucherNotApprovedError("Voucher is not approved for redemption")
	}
	if s.now().After(voucher.ExpiryDate) {
		return nil, errors.NewExpiredVoucherError("Voucher has expired")
	}

	result := tx.Model(&models.Voucher{}).
		Where("id = ? AND used_amount + ? <= credit_amount", voucher.ID, amount).
		UpdateColumn("used_amount", gorm.Expr("used_amount + ?", amount))
	if result.Error != nil {
		return nil, errors.NewInternalServerError(result.Error, "Failed to redeem voucher")
	}
	if result.RowsAffected == 0 {
		// Re-read so the failure reports the balance that actually remains.
		if err := tx.Where("id = ?", voucher.ID).First(&voucher).Error; err != nil {
			return nil, errors.NewInternalServerError(err, "Failed to get voucher")
		}
		return nil, errors.NewInsufficientBalanceError(voucher.Remaining())
	}

	if err := tx.Where("id = ?", voucher.ID).First(&voucher).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to get voucher")
	}

	return &models.VoucherRedeemResponse{
		Used:      amount,
		Remaining: voucher.Remaining(),
	}, nil
}

func (s *VoucherService) ListVouchers(pagination *models.PaginationRequest, status *models.VoucherStatus) (*models.Pagination[[]models.Voucher], error) {
	if pagination.Limit <= 0 {
		pagination.Limit = 10
	}
	if pagination.Page <= 0 {
		pagination.Page = 1
	}

	offset := (pagination.Page - 1) * pagination.Limit

	countQuery := s.db.Model(&models.Voucher{})
	if status != nil {
		countQuery = countQuery.Where("status = ?", *status)
	}

	var totalItems int64
	if err := countQuery.Count(&totalItems).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to count vouchers")
	}

	var vouchers []models.Voucher
	query := s.db.Order("created_at DESC")
	if status != nil {
		query = query.Where("status = ?", *status)
	}

	err := query.Limit(pagination.Limit).Offset(offset).Find(&vouchers).Error
	if err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to get vouchers")
	}

	totalPages := int((totalItems + int64(pagination.Limit) - 1) / int64(pagination.Limit))

	return &models.Pagination[[]models.Voucher]{
		Page:       pagination.Page,
		Limit:      pagination.Limit,
		TotalPages: totalPages,
		TotalItems: int(totalItems),
		HasNext:    pagination.Page < totalPages,
		HasPrev:    pagination.Page > 1,
		Items:      vouchers,
	}, nil
}

func (s *VoucherService) expiryDate() time.Time {
	raw := defaultVoucherExpiry
	if infrastructures.Config != nil && infrastructures.Config.VOUCHER_EXPIRY_DATE != "" {
		raw = infrastructures.Config.VOUCHER_EXPIRY_DATE
	}

	expiry, err := time.Parse("2006-01-02", raw)
	if err != nil {
		expiry, _ = time.Parse("2006-01-02", defaultVoucherExpiry)
	}
	// Vouchers stay redeemable through the whole expiry day.
	return expiry.Add(24*time.Hour - time.Second)
}
