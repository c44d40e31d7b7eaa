package services

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/siamaraya/araya-core/internal/app/models"
	"github.com/siamaraya/araya-core/internal/infrastructures"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A single connection keeps the in-memory database visible to every
	// goroutine in the concurrency tests.
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.Account{},
		&models.Voucher{},
		&models.Order{},
		&models.Product{},
		&models.MembershipApplication{},
		&models.UsageRecord{},
		&models.BillingEvent{},
		&models.AuditLog{},
	)
	require.NoError(t, err)

	return db
}

func newTestValidator() *infrastructures.Validator {
	return infrastructures.NewValidator()
}

func testTime(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, value)
	require.NoError(t, err)
	return parsed
}

func createTestAccount(t *testing.T, db *gorm.DB, plan models.PlanType) *models.Account {
	t.Helper()

	total := models.BasicPlanCredits
	if plan == models.PlanPro {
		total = models.UnlimitedCredits
	}

	account := &models.Account{
		Email:             uuid.NewString() + "@example.com",
		FullName:          "Test Account",
		AccessToken:       "ak_test_" + uuid.NewString(),
		Plan:              plan,
		Status:            models.AccountStatusActive,
		CreditsTotal:      total,
		CreditsUsed:       0,
		CreditsResetAt:    time.Now(),
		SubscriptionStart: time.Now(),
	}
	require.NoError(t, db.Create(account).Error)

	return account
}
