package services

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/siamaraya/araya-core/internal/app/errors"
	"github.com/siamaraya/araya-core/internal/app/models"
	"github.com/siamaraya/araya-core/internal/infrastructures"
)

// MembershipService runs the paid membership workflow: an account applies
// with a transfer slip, an admin reviews the application, and approval
// flips the member flag on the account. The status transition is a guarded
// UPDATE so concurrent admin decisions cannot both win.
type MembershipService struct {
	db           *gorm.DB
	validator    *infrastructures.Validator
	auditService *AuditService
	now          func() time.Time
}

func NewMembershipService(db *gorm.DB, validator *infrastructures.Validator, auditService *AuditService) *MembershipService {
	return &MembershipService{
		db:           db,
		validator:    validator,
		auditService: auditService,
		now:          time.Now,
	}
}

// Apply files a membership application for the account at the flat fee.
// Accounts that are already members, or that have an application pending,
// cannot apply again.
func (s *MembershipService) Apply(accountID string, req *models.MembershipApplyRequest) (*models.MembershipApplication, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	accountUUID, err := uuid.Parse(accountID)
	if err != nil {
		return nil, errors.NewBadRequestError("Invalid account ID format")
	}

	var application *models.MembershipApplication
	err = s.db.Transaction(func(tx *gorm.DB) error {
		var account models.Account
		err := tx.Where("id = ?", accountUUID).First(&account).Error
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.NewNotFoundError("Account not found")
			}
			return errors.NewInternalServerError(err, "Failed to get account")
		}

		if account.IsMember {
			return errors.NewConflictError("Account is already a member")
		}

		var pending int64
		err = tx.Model(&models.MembershipApplication{}).
			Where("account_id = ? AND status = ?", accountUUID, models.MembershipStatusPending).
			Count(&pending).Error
		if err != nil {
			return errors.NewInternalServerError(err, "Failed to check pending applications")
		}
		if pending > 0 {
			return errors.NewConflictError("A membership application is already pending")
		}

		application = &models.MembershipApplication{
			AccountID: accountUUID,
			Amount:    decimal.NewFromInt(models.MembershipFeeTHB),
			SlipPath:  req.SlipPath,
			Status:    models.MembershipStatusPending,
		}
		if err := tx.Create(application).Error; err != nil {
			return errors.NewInternalServerError(err, "Failed to create membership application")
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return application, nil
}

func (s *MembershipService) GetApplication(applicationID string) (*models.MembershipApplication, error) {
	applicationUUID, err := uuid.Parse(applicationID)
	if err != nil {
		return nil, errors.NewBadRequestError("Invalid application ID format")
	}

	var application models.MembershipApplication
	err = s.db.Where("id = ?", applicationUUID).First(&application).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("Membership application not found")
		}
		return nil, errors.NewInternalServerError(err, "Failed to get membership application")
	}

	return &application, nil
}

// Approve accepts a pending application and marks the account a member.
// Approving an already-approved application is a no-op; a rejected one is
// terminal.
func (s *MembershipService) Approve(applicationID string) (*models.MembershipApplication, error) {
	application, err := s.GetApplication(applicationID)
	if err != nil {
		return nil, err
	}

	if application.Status == models.MembershipStatusApproved {
		return application, nil
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.MembershipApplication{}).
			Where("id = ? AND status = ?", application.ID, models.MembershipStatusPending).
			Update("status", models.MembershipStatusApproved)
		if result.Error != nil {
			return errors.NewInternalServerError(result.Error, "Failed to update membership application")
		}
		if result.RowsAffected == 0 {
			return s.transitionConflict(tx, application.ID, models.MembershipStatusApproved)
		}

		memberSince := s.now()
		updates := map[string]interface{}{
			"is_member":    true,
			"member_since": memberSince,
		}
		if err := tx.Model(&models.Account{}).Where("id = ?", application.AccountID).Updates(updates).Error; err != nil {
			return errors.NewInternalServerError(err, "Failed to update member flag")
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	previous := *application
	application.Status = models.MembershipStatusApproved
	s.auditService.LogAudit("membership_applications", application.ID, models.AuditActionApprove, &previous, application, nil)

	return application, nil
}

// Reject declines a pending application. Rejected is terminal.
func (s *MembershipService) Reject(applicationID string) (*models.MembershipApplication, error) {
	application, err := s.GetApplication(applicationID)
	if err != nil {
		return nil, err
	}

	if application.Status == models.MembershipStatusRejected {
		return application, nil
	}

	result := s.db.Model(&models.MembershipApplication{}).
		Where("id = ? AND status = ?", application.ID, models.MembershipStatusPending).
		Update("status", models.MembershipStatusRejected)
	if result.Error != nil {
		return nil, errors.NewInternalServerError(result.Error, "Failed to update membership application")
	}
	if result.RowsAffected == 0 {
		if err := s.transitionConflict(s.db, application.ID, models.MembershipStatusRejected); err != nil {
			return nil, err
		}
	}

	previous := *application
	application.Status = models.MembershipStatusRejected
	s.auditService.LogAudit("membership_applications", application.ID, models.AuditActionReject, &previous, application, nil)

	return application, nil
}

// transitionConflict resolves a failed guarded transition: the application
// either already reached the target (treated as done) or sits in the other
// terminal state.
func (s *MembershipService) transitionConflict(tx *gorm.DB, applicationID uuid.UUID, target models.MembershipStatus) error {
	var current models.MembershipApplication
	if err := tx.Where("id = ?", applicationID).First(&current).Error; err != nil {
		return errors.NewInternalServerError(err, "Failed to get membership application")
	}
	if current.Status == target {
		return nil
	}
	return errors.NewConflictError("Membership application is already " + string(current.Status))
}

func (s *MembershipService) ListApplications(pagination *models.PaginationRequest, status *models.MembershipStatus) (*models.Pagination[[]models.MembershipApplication], error) {
	if pagination.Limit <= 0 {
		pagination.Limit = 10
	}
	if pagination.Page <= 0 {
		pagination.Page = 1
	}

	offset := (pagination.Page - 1) * pagination.Limit

	countQuery := s.db.Model(&models.MembershipApplication{})
	if status != nil {
		countQuery = countQuery.Where("status = ?", *status)
	}

	var totalItems int64
	if err := countQuery.Count(&totalItems).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to count membership applications")
	}

	var applications []models.MembershipApplication
	query := s.db.Order("created_at DESC")
	if status != nil {
		query = query.Where("status = ?", *status)
	}

	err := query.Limit(pagination.Limit).Offset(offset).Find(&applications).Error
	if err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to get membership applications")
	}

	totalPages := int((totalItems + int64(pagination.Limit) - 1) / int64(pagination.Limit))

	return &models.Pagination[[]models.MembershipApplication]{
		Page:       pagination.Page,
		Limit:      pagination.Limit,
		TotalPages: totalPages,
		TotalItems: int(totalItems),
		HasNext:    pagination.Page < totalPages,
		HasPrev:    pagination.Page > 1,
		Items:      applications,
	}, nil
}
