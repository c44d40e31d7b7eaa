package services

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/siamaraya/araya-core/internal/app/errors"
	"github.com/siamaraya/araya-core/internal/app/models"
	"github.com/siamaraya/araya-core/internal/infrastructures"
)

// MeterService answers "can this account perform a metered action right
// now?" and records that it did. Consumption is serialized per account via
// a guarded increment so concurrent calls never overspend the allotment.
type MeterService struct {
	db        *gorm.DB
	validator *infrastructures.Validator
	now       func() time.Time
}

func NewMeterService(db *gorm.DB, validator *infrastructures.Validator) *MeterService {
	return &MeterService{
		db:        db,
		validator: validator,
		now:       time.Now,
	}
}

func (s *MeterService) CheckEligibility(accountID string) (*models.CreditStatus, error) {
	accountUUID, err := uuid.Parse(accountID)
	if err != nil {
		return nil, errors.NewBadRequestError("Invalid account ID format")
	}

	var status *models.CreditStatus
	err = s.db.Transaction(func(tx *gorm.DB) error {
		account, err := s.getAccount(tx, accountUUID)
		if err != nil {
			return err
		}

		if err := s.applyRollover(tx, account); err != nil {
			return err
		}

		status = s.creditStatus(account)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return status, nil
}

// ConsumeCredit authorizes one unit of metered work. Unlimited plans always
// succeed; capped plans fail with CREDITS_EXHAUSTED once the allotment is
// spent. The check and the increment are a single guarded UPDATE, so two
// concurrent calls can never both spend the last credit.
func (s *MeterService) ConsumeCredit(accountID string) (*models.CreditStatus, error) {
	accountUUID, err := uuid.Parse(accountID)
	if err != nil {
		return nil, errors.NewBadRequestError("Invalid account ID format")
	}

	var status *models.CreditStatus
	err = s.db.Transaction(func(tx *gorm.DB) error {
		account, err := s.getAccount(tx, accountUUID)
		if err != nil {
			return err
		}

		if err := s.applyRollover(tx, account); err != nil {
			return err
		}

		if account.Plan == models.PlanPro {
			status = s.creditStatus(account)
			return nil
		}

		result := tx.Model(&models.Account{}).
			Where("id = ? AND credits_used < credits_total", account.ID).
			UpdateColumn("credits_used", gorm.Expr("credits_used + 1"))
		if result.Error != nil {
			return errors.NewInternalServerError(result.Error, "Failed to consume credit")
		}
		if result.RowsAffected == 0 {
			return errors.NewCreditsExhaustedError("No credits remaining this month. Please upgrade to the Pro plan.")
		}

		// Re-read so the reported remaining reflects the committed counter,
		// not the locally bumped copy.
		account, err = s.getAccount(tx, accountUUID)
		if err != nil {
			return err
		}
		status = s.creditStatus(account)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return status, nil
}

// TrackUsage appends an immutable usage record and bumps the account's
// cumulative counters in the same transaction, so a crash cannot record one
// without the other.
func (s *MeterService) TrackUsage(accountID string, req *models.UsageTrackRequest) (*models.UsageRecord, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	accountUUID, err := uuid.Parse(accountID)
	if err != nil {
		return nil, errors.NewBadRequestError("Invalid account ID format")
	}

	record := &models.UsageRecord{
		AccountID:      accountUUID,
		TemplateID:     req.TemplateID,
		TemplateName:   req.TemplateName,
		ContentLength:  req.ContentLength,
		ProcessingTime: req.ProcessingTime,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := s.getAccount(tx, accountUUID); err != nil {
			return err
		}

		if err := tx.Create(record).Error; err != nil {
			return errors.NewInternalServerError(err, "Failed to create usage record")
		}

		hoursSaved := (req.ProcessingTime + 1800) / 3600
		result := tx.Model(&models.Account{}).
			Where("id = ?", accountUUID).
			UpdateColumns(map[string]interface{}{
				"templates_used":   gorm.Expr("templates_used + 1"),
				"content_created":  gorm.Expr("content_created + ?", req.ContentLength),
				"time_saved_hours": gorm.Expr("time_saved_hours + ?", hoursSaved),
			})
		if result.Error != nil {
			return errors.NewInternalServerError(result.Error, "Failed to update usage counters")
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return record, nil
}

func (s *MeterService) GetUsageStats(accountID string) (*models.UsageStats, error) {
	accountUUID, err := uuid.Parse(accountID)
	if err != nil {
		return nil, errors.NewBadRequestError("Invalid account ID format")
	}

	account, err := s.getAccount(s.db, accountUUID)
	if err != nil {
		return nil, err
	}

	return &models.UsageStats{
		TemplatesUsed:  account.TemplatesUsed,
		ContentCreated: account.ContentCreated,
		TimeSavedHours: account.TimeSavedHours,
		CurrentPlan:    account.Plan,
	}, nil
}

func (s *MeterService) getAccount(tx *gorm.DB, accountID uuid.UUID) (*models.Account, error) {
	var account models.Account
	err := tx.Where("id = ?", accountID).First(&account).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("Account not found")
		}
		return nil, errors.NewInternalServerError(err, "Failed to get account")
	}
	return &account, nil
}

// applyRollover resets consumed credits the first time a capped account is
// touched in a new calendar month. Repeated calls within the same month are
// no-ops because the anchor month already matches.
func (s *MeterService) applyRollover(tx *gorm.DB, account *models.Account) error {
	if account.Plan != models.PlanBasic {
		return nil
	}

	now := s.now()
	if sameMonth(now, account.CreditsResetAt) {
		return nil
	}

	result := tx.Model(&models.Account{}).
		Where("id = ?", account.ID).
		UpdateColumns(map[string]interface{}{
			"credits_used":     0,
			"credits_reset_at": now,
		})
	if result.Error != nil {
		return errors.NewInternalServerError(result.Error, "Failed to roll over credits")
	}

	account.CreditsUsed = 0
	account.CreditsResetAt = now
	return nil
}

func (s *MeterService) creditStatus(account *models.Account) *models.CreditStatus {
	if account.Plan == models.PlanPro {
		return &models.CreditStatus{
			Plan:      account.Plan,
			Total:     models.UnlimitedCredits,
			Used:      account.CreditsUsed,
			Remaining: models.UnlimitedCredits,
			CanUse:    true,
		}
	}

	remaining := account.CreditsTotal - account.CreditsUsed
	return &models.CreditStatus{
		Plan:      account.Plan,
		Total:     account.CreditsTotal,
		Used:      account.CreditsUsed,
		Remaining: remaining,
		CanUse:    remaining > 0,
	}
}

func sameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}
