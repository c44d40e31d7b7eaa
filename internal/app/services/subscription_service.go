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
)

const subscriptionWindow = 30 * 24 * time.Hour

// SubscriptionService applies billing webhook events to accounts and exposes
// the plan catalog. Every processed event id is stored with a unique index,
// which makes webhook replays no-ops instead of double-extending windows.
type SubscriptionService struct {
	db           *gorm.DB
	validator    *infrastructures.Validator
	auditService *AuditService
	now          func() time.Time
}

func NewSubscriptionService(db *gorm.DB, validator *infrastructures.Validator, auditService *AuditService) *SubscriptionService {
	return &SubscriptionService{
		db:           db,
		validator:    validator,
		auditService: auditService,
		now:          time.Now,
	}
}

func (s *SubscriptionService) GetPlans() []models.Plan {
	return []models.Plan{
		{
			ID:              models.PlanBasic,
			Name:            "Basic",
			PriceTHB:        decimal.Zero,
			CreditsPerMonth: models.BasicPlanCredits,
			Features: []string{
				"5 credits per month",
				"Email support",
				"All template categories",
			},
		},
		{
			ID:              models.PlanPro,
			Name:            "Pro",
			PriceTHB:        decimal.NewFromInt(799),
			CreditsPerMonth: models.UnlimitedCredits,
			Features: []string{
				"Unlimited usage",
				"Phone support",
				"Premium templates",
				"Usage analytics",
				"Multi-format export",
				"API integration",
			},
		},
	}
}

// ApplyBillingEvent processes one webhook delivery. A delivery whose event
// id has already been recorded returns the account unchanged.
func (s *SubscriptionService) ApplyBillingEvent(req *models.BillingWebhookRequest) (*models.Account, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	accountUUID, err := uuid.Parse(req.AccountID)
	if err != nil {
		return nil, errors.NewBadRequestError("Invalid account ID format")
	}

	var account *models.Account
	err = s.db.Transaction(func(tx *gorm.DB) error {
		var existing models.BillingEvent
		err := tx.Where("event_id = ?", req.EventID).First(&existing).Error
		if err == nil {
			// Replayed delivery: load the account as-is and skip.
			account, err = s.getAccount(tx, accountUUID)
			return err
		}
		if err != gorm.ErrRecordNotFound {
			return errors.NewInternalServerError(err, "Failed to check billing event")
		}

		account, err = s.getAccount(tx, accountUUID)
		if err != nil {
			return err
		}

		now := s.now()
		switch req.Kind {
		case models.BillingEventUpgraded:
			plan := models.PlanPro
			if req.Plan != nil {
				plan = *req.Plan
			}
			windowEnd := now.Add(subscriptionWindow)
			account.Plan = plan
			account.Status = models.AccountStatusActive
			account.CreditsUsed = 0
			account.SubscriptionStart = now
			account.SubscriptionEnd = &windowEnd

		case models.BillingEventRenewed:
			windowEnd := now.Add(subscriptionWindow)
			account.Status = models.AccountStatusActive
			account.CreditsUsed = 0
			account.SubscriptionEnd = &windowEnd

		case models.BillingEventCancelled:
			account.Plan = models.PlanBasic
			account.Status = models.AccountStatusCancelled
			account.SubscriptionEnd = &now
		}

		if err := tx.Save(account).Error; err != nil {
			return errors.NewInternalServerError(err, "Failed to update account subscription")
		}

		event := &models.BillingEvent{
			EventID:   req.EventID,
			AccountID: accountUUID,
			Kind:      req.Kind,
			Plan:      req.Plan,
		}
		if err := tx.Create(event).Error; err != nil {
			return errors.NewInternalServerError(err, "Failed to record billing event")
		}

		return nil
	})
	if err != nil {
		// A concurrent delivery of the same event id loses the insert race;
		// treat it like any other replay.
		if stderrors.Is(err, gorm.ErrDuplicatedKey) {
			return s.getAccount(s.db, accountUUID)
		}
		return nil, err
	}

	s.auditService.LogAudit("accounts", account.ID, models.AuditActionUpdate, nil, account, nil)

	return account, nil
}

func (s *SubscriptionService) getAccount(tx *gorm.DB, accountID uuid.UUID) (*models.Account, error) {
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
