package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PlanType string

const (
	PlanBasic PlanType = "basic"
	PlanPro   PlanType = "pro"
)

type AccountStatus string

const (
	AccountStatusActive    AccountStatus = "active"
	AccountStatusInactive  AccountStatus = "inactive"
	AccountStatusCancelled AccountStatus = "cancelled"
)

// BasicPlanCredits is the monthly credit allotment of the free tier.
const BasicPlanCredits = 5

// UnlimitedCredits is reported as the remaining count for pro accounts.
const UnlimitedCredits = -1

type Account struct {
	ID           uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	Email        string        `gorm:"uniqueIndex" json:"email"`
	FullName     string        `json:"full_name"`
	Phone        *string       `json:"phone,omitempty"`
	Company      *string       `json:"company,omitempty"`
	AccessToken  string        `gorm:"uniqueIndex" json:"-"`
	Plan         PlanType      `json:"plan"`
	Status       AccountStatus `json:"status"`
	CreditsTotal int           `json:"credits_total"`
	CreditsUsed  int           `json:"credits_used"`
	// CreditsResetAt anchors the monthly rollover: consumed credits reset
	// the first time the account is read in a new calendar month.
	CreditsResetAt    time.Time      `json:"credits_reset_at"`
	SubscriptionStart time.Time      `json:"subscription_start"`
	SubscriptionEnd   *time.Time     `json:"subscription_end,omitempty"`
	IsMember          bool           `json:"is_member"`
	MemberSince       *time.Time     `json:"member_since,omitempty"`
	TemplatesUsed     int64          `json:"templates_used"`
	ContentCreated    int64          `json:"content_created"`
	TimeSavedHours    int64          `json:"time_saved_hours"`
	CreatedAt         time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"deleted_at"`
}

func (a *Account) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

type AccountCreateRequest struct {
	Email    string  `json:"email" validate:"required,email"`
	FullName string  `json:"full_name" validate:"required,max=255"`
	Phone    *string `json:"phone,omitempty" validate:"omitempty,max=20"`
	Company  *string `json:"company,omitempty" validate:"omitempty,max=255"`
}

type AccountCreateResponse struct {
	Account     *Account `json:"account"`
	AccessToken string   `json:"access_token"`
}

// CreditStatus is the answer to "can this account perform a metered action
// right now?". Remaining is -1 for unlimited plans.
type CreditStatus struct {
	Plan      PlanType `json:"plan"`
	Total     int      `json:"total"`
	Used      int      `json:"used"`
	Remaining int      `json:"remaining"`
	CanUse    bool     `json:"can_use"`
}
