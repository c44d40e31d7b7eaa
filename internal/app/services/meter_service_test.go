package services

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/siamaraya/araya-core/internal/app/errors"
	"github.com/siamaraya/araya-core/internal/app/models"
)

func newTestMeterService(t *testing.T, db *gorm.DB) *MeterService {
	t.Helper()
	return NewMeterService(db, newTestValidator())
}

func TestCheckEligibilityBasicAccount(t *testing.T) {
	db := newTestDB(t)
	svc := newTestMeterService(t, db)
	account := createTestAccount(t, db, models.PlanBasic)

	status, err := svc.CheckEligibility(account.ID.String())
	require.NoError(t, err)
	assert.Equal(t, models.PlanBasic, status.Plan)
	assert.Equal(t, models.BasicPlanCredits, status.Total)
	assert.Equal(t, 0, status.Used)
	assert.Equal(t, models.BasicPlanCredits, status.Remaining)
	assert.True(t, status.CanUse)
}

func TestConsumeCreditUntilExhausted(t *testing.T) {
	db := newTestDB(t)
	svc := newTestMeterService(t, db)
	account := createTestAccount(t, db, models.PlanBasic)

	for i := 1; i <= models.BasicPlanCredits; i++ {
		status, err := svc.ConsumeCredit(account.ID.String())
		require.NoError(t, err)
		assert.Equal(t, i, status.Used)
		assert.Equal(t, models.BasicPlanCredits-i, status.Remaining)
	}

	_, err := svc.ConsumeCredit(account.ID.String())
	appErr := requireAppErrorCode(t, err, errors.CodeCreditsExhausted)
	assert.Equal(t, 402, appErr.StatusCode)
}

func TestConsumeCreditProIsUnlimited(t *testing.T) {
	db := newTestDB(t)
	svc := newTestMeterService(t, db)
	account := createTestAccount(t, db, models.PlanPro)

	for i := 0; i < 50; i++ {
		status, err := svc.ConsumeCredit(account.ID.String())
		require.NoError(t, err)
		assert.Equal(t, models.UnlimitedCredits, status.Remaining)
		assert.True(t, status.CanUse)
	}
}

func TestMonthlyRollover(t *testing.T) {
	db := newTestDB(t)
	svc := newTestMeterService(t, db)
	account := createTestAccount(t, db, models.PlanBasic)

	anchor := testTime(t, "2025-10-15T09:00:00Z")
	require.NoError(t, db.Model(account).UpdateColumns(map[string]interface{}{
		"credits_used":     models.BasicPlanCredits,
		"credits_reset_at": anchor,
	}).Error)

	// Still October: exhausted.
	svc.now = func() time.Time { return testTime(t, "2025-10-28T09:00:00Z") }
	_, err := svc.ConsumeCredit(account.ID.String())
	requireAppErrorCode(t, err, errors.CodeCreditsExhausted)

	// November: the allotment resets on first touch.
	svc.now = func() time.Time { return testTime(t, "2025-11-01T00:30:00Z") }
	status, err := svc.CheckEligibility(account.ID.String())
	require.NoError(t, err)
	assert.Equal(t, 0, status.Used)
	assert.Equal(t, models.BasicPlanCredits, status.Remaining)

	// A second read in the same month must not reset again.
	_, err = svc.ConsumeCredit(account.ID.String())
	require.NoError(t, err)
	_, err = svc.ConsumeCredit(account.ID.String())
	require.NoError(t, err)

	status, err = svc.CheckEligibility(account.ID.String())
	require.NoError(t, err)
	assert.Equal(t, 2, status.Used)
}

func TestConcurrentConsumeNeverOverspends(t *testing.T) {
	db := newTestDB(t)
	svc := newTestMeterService(t, db)
	account := createTestAccount(t, db, models.PlanBasic)

	const workers = 12

	type consumeResult struct {
		status *models.CreditStatus
		err    error
	}

	var wg sync.WaitGroup
	results := make(chan consumeResult, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			status, err := svc.ConsumeCredit(account.ID.String())
			results <- consumeResult{status: status, err: err}
		}()
	}
	wg.Wait()
	close(results)

	var succeeded int
	usedSeen := make(map[int]bool)
	for result := range results {
		if result.err == nil {
			succeeded++
			usedSeen[result.status.Used] = true
			continue
		}
		requireAppErrorCode(t, result.err, errors.CodeCreditsExhausted)
	}
	assert.Equal(t, models.BasicPlanCredits, succeeded)

	// Each success reports the committed counter, so no two successes can
	// claim the same used count.
	for i := 1; i <= models.BasicPlanCredits; i++ {
		assert.True(t, usedSeen[i], "no success reported used=%d", i)
	}

	var final models.Account
	require.NoError(t, db.Where("id = ?", account.ID).First(&final).Error)
	assert.Equal(t, models.BasicPlanCredits, final.CreditsUsed)
}

func TestTrackUsageUpdatesCounters(t *testing.T) {
	db := newTestDB(t)
	svc := newTestMeterService(t, db)
	account := createTestAccount(t, db, models.PlanBasic)

	record, err := svc.TrackUsage(account.ID.String(), &models.UsageTrackRequest{
		TemplateID:     "blog-post",
		TemplateName:   "Blog Post Writer",
		ContentLength:  2400,
		ProcessingTime: 5400,
	})
	require.NoError(t, err)
	assert.Equal(t, account.ID, record.AccountID)

	stats, err := svc.GetUsageStats(account.ID.String())
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.TemplatesUsed)
	assert.Equal(t, int64(2400), stats.ContentCreated)
	// 5400s rounds to 2 hours.
	assert.Equal(t, int64(2), stats.TimeSavedHours)
}

func TestTrackUsageValidatesRequest(t *testing.T) {
	db := newTestDB(t)
	svc := newTestMeterService(t, db)
	account := createTestAccount(t, db, models.PlanBasic)

	_, err := svc.TrackUsage(account.ID.String(), &models.UsageTrackRequest{
		TemplateName: "Missing ID",
	})
	requireAppErrorCode(t, err, errors.CodeInvalidInput)
}

func TestMeterUnknownAccount(t *testing.T) {
	svc := newTestMeterService(t, newTestDB(t))

	_, err := svc.CheckEligibility("4dfb28fa-34a5-4a67-9925-1e7ff8c2ef12")
	requireAppErrorCode(t, err, errors.CodeNotFound)

	_, err = svc.CheckEligibility("not-a-uuid")
	requireAppErrorCode(t, err, errors.CodeInvalidInput)
}
