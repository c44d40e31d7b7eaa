package services

import (
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/siamaraya/araya-core/internal/app/errors"
	"github.com/siamaraya/araya-core/internal/app/models"
)

func newTestMembershipService(t *testing.T, db *gorm.DB) *MembershipService {
	t.Helper()
	return NewMembershipService(db, newTestValidator(), NewAuditService(db))
}

func TestApplyForMembership(t *testing.T) {
	db := newTestDB(t)
	svc := newTestMembershipService(t, db)
	account := createTestAccount(t, db, models.PlanBasic)

	slip := "uploads/slip-001.jpg"
	application, err := svc.Apply(account.ID.String(), &models.MembershipApplyRequest{SlipPath: &slip})
	require.NoError(t, err)

	assert.Equal(t, models.MembershipStatusPending, application.Status)
	assert.True(t, application.Amount.Equal(decimal.NewFromInt(models.MembershipFeeTHB)))
	assert.Equal(t, account.ID, application.AccountID)
}

func TestApplyWithPendingApplicationConflicts(t *testing.T) {
	db := newTestDB(t)
	svc := newTestMembershipService(t, db)
	account := createTestAccount(t, db, models.PlanBasic)

	_, err := svc.Apply(account.ID.String(), &models.MembershipApplyRequest{})
	require.NoError(t, err)

	_, err = svc.Apply(account.ID.String(), &models.MembershipApplyRequest{})
	requireAppErrorCode(t, err, errors.CodeConflict)
}

func TestApproveMembershipMarksAccountMember(t *testing.T) {
	db := newTestDB(t)
	svc := newTestMembershipService(t, db)
	account := createTestAccount(t, db, models.PlanBasic)

	application, err := svc.Apply(account.ID.String(), &models.MembershipApplyRequest{})
	require.NoError(t, err)

	approved, err := svc.Approve(application.ID.String())
	require.NoError(t, err)
	assert.Equal(t, models.MembershipStatusApproved, approved.Status)

	var member models.Account
	require.NoError(t, db.Where("id = ?", account.ID).First(&member).Error)
	assert.True(t, member.IsMember)
	require.NotNil(t, member.MemberSince)

	// Members cannot apply again.
	_, err = svc.Apply(account.ID.String(), &models.MembershipApplyRequest{})
	requireAppErrorCode(t, err, errors.CodeConflict)
}

func TestApproveMembershipIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := newTestMembershipService(t, db)
	account := createTestAccount(t, db, models.PlanBasic)

	application, err := svc.Apply(account.ID.String(), &models.MembershipApplyRequest{})
	require.NoError(t, err)

	_, err = svc.Approve(application.ID.String())
	require.NoError(t, err)

	again, err := svc.Approve(application.ID.String())
	require.NoError(t, err)
	assert.Equal(t, models.MembershipStatusApproved, again.Status)
}

func TestRejectApprovedMembershipConflicts(t *testing.T) {
	db := newTestDB(t)
	svc := newTestMembershipService(t, db)
	account := createTestAccount(t, db, models.PlanBasic)

	application, err := svc.Apply(account.ID.String(), &models.MembershipApplyRequest{})
	require.NoError(t, err)

	_, err = svc.Approve(application.ID.String())
	require.NoError(t, err)

	_, err = svc.Reject(application.ID.String())
	requireAppErrorCode(t, err, errors.CodeConflict)
}

func TestRejectMembershipLeavesAccountUnchanged(t *testing.T) {
	db := newTestDB(t)
	svc := newTestMembershipService(t, db)
	account := createTestAccount(t, db, models.PlanBasic)

	application, err := svc.Apply(account.ID.String(), &models.MembershipApplyRequest{})
	require.NoError(t, err)

	rejected, err := svc.Reject(application.ID.String())
	require.NoError(t, err)
	assert.Equal(t, models.MembershipStatusRejected, rejected.Status)

	var unchanged models.Account
	require.NoError(t, db.Where("id = ?", account.ID).First(&unchanged).Error)
	assert.False(t, unchanged.IsMember)
	assert.Nil(t, unchanged.MemberSince)
}

func TestConcurrentMembershipDecisionsSettleOnOneState(t *testing.T) {
	db := newTestDB(t)
	svc := newTestMembershipService(t, db)
	account := createTestAccount(t, db, models.PlanBasic)

	application, err := svc.Apply(account.ID.String(), &models.MembershipApplyRequest{})
	require.NoError(t, err)

	var wg sync.WaitGroup
	decisions := make(chan models.MembershipStatus, 8)
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.Approve(application.ID.String()); err == nil {
				decisions <- models.MembershipStatusApproved
			}
		}()
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.Reject(application.ID.String()); err == nil {
				decisions <- models.MembershipStatusRejected
			}
		}()
	}
	wg.Wait()
	close(decisions)

	final, err := svc.GetApplication(application.ID.String())
	require.NoError(t, err)
	require.Contains(t, []models.MembershipStatus{
		models.MembershipStatusApproved,
		models.MembershipStatusRejected,
	}, final.Status)

	// Every call that reported success must agree with the settled state.
	for decision := range decisions {
		assert.Equal(t, final.Status, decision)
	}

	var member models.Account
	require.NoError(t, db.Where("id = ?", account.ID).First(&member).Error)
	assert.Equal(t, final.Status == models.MembershipStatusApproved, member.IsMember)
}
