package services

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/siamaraya/araya-core/internal/app/errors"
	"github.com/siamaraya/araya-core/internal/app/models"
	"github.com/siamaraya/araya-core/internal/app/pkg"
	"github.com/siamaraya/araya-core/internal/infrastructures"
)

type AccountService struct {
	db        *gorm.DB
	validator *infrastructures.Validator
}

func NewAccountService(db *gorm.DB, validator *infrastructures.Validator) *AccountService {
	return &AccountService{
		db:        db,
		validator: validator,
	}
}

// CreateAccount signs up a new account on the free capped plan with its
// full monthly allotment available.
func (s *AccountService) CreateAccount(req *models.AccountCreateRequest) (*models.AccountCreateResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	var existing models.Account
	err := s.db.Where("email = ?", req.Email).First(&existing).Error
	if err == nil {
		return nil, errors.NewConflictError("Email is already registered")
	}
	if err != gorm.ErrRecordNotFound {
		return nil, errors.NewInternalServerError(err, "Failed to check existing account")
	}

	token, err := pkg.GenerateAccessToken()
	if err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to generate access token")
	}

	now := time.Now()
	account := &models.Account{
		Email:             req.Email,
		FullName:          req.FullName,
		Phone:             req.Phone,
		Company:           req.Company,
		AccessToken:       token,
		Plan:              models.PlanBasic,
		Status:            models.AccountStatusActive,
		CreditsTotal:      models.BasicPlanCredits,
		CreditsUsed:       0,
		CreditsResetAt:    now,
		SubscriptionStart: now,
	}

	if err := s.db.Create(account).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to create account")
	}

	return &models.AccountCreateResponse{
		Account:     account,
		AccessToken: token,
	}, nil
}

func (s *AccountService) GetAccount(accountID string) (*models.Account, error) {
	accountUUID, err := uuid.Parse(accountID)
	if err != nil {
		return nil, errors.NewBadRequestError("Invalid account ID format")
	}

	var account models.Account
	err = s.db.Where("id = ?", accountUUID).First(&account).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("Account not found")
		}
		return nil, errors.NewInternalServerError(err, "Failed to get account")
	}

	return &account, nil
}

func (s *AccountService) GetAccountByToken(accessToken string) (*models.Account, error) {
	var account models.Account
	err := s.db.Where("access_token = ?", accessToken).First(&account).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewUnauthorizedError("Invalid access token")
		}
		return nil, errors.NewInternalServerError(err, "Failed to get account")
	}

	return &account, nil
}
