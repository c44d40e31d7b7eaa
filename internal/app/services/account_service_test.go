package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siamaraya/araya-core/internal/app/errors"
	"github.com/siamaraya/araya-core/internal/app/models"
)

func TestCreateAccount(t *testing.T) {
	db := newTestDB(t)
	svc := NewAccountService(db, newTestValidator())

	resp, err := svc.CreateAccount(&models.AccountCreateRequest{
		Email:    "malee@example.com",
		FullName: "Malee S.",
	})
	require.NoError(t, err)

	assert.Equal(t, models.PlanBasic, resp.Account.Plan)
	assert.Equal(t, models.AccountStatusActive, resp.Account.Status)
	assert.Equal(t, models.BasicPlanCredits, resp.Account.CreditsTotal)
	assert.Equal(t, 0, resp.Account.CreditsUsed)
	assert.True(t, strings.HasPrefix(resp.AccessToken, "ak_"), "token %q missing ak_ prefix", resp.AccessToken)
	assert.Equal(t, resp.Account.AccessToken, resp.AccessToken)
}

func TestCreateAccountDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	svc := NewAccountService(db, newTestValidator())

	_, err := svc.CreateAccount(&models.AccountCreateRequest{
		Email:    "malee@example.com",
		FullName: "Malee S.",
	})
	require.NoError(t, err)

	_, err = svc.CreateAccount(&models.AccountCreateRequest{
		Email:    "malee@example.com",
		FullName: "Another Malee",
	})
	requireAppErrorCode(t, err, errors.CodeConflict)
}

func TestCreateAccountValidatesEmail(t *testing.T) {
	svc := NewAccountService(newTestDB(t), newTestValidator())

	_, err := svc.CreateAccount(&models.AccountCreateRequest{
		Email:    "not-an-email",
		FullName: "Malee S.",
	})
	requireAppErrorCode(t, err, errors.CodeInvalidInput)
}

func TestGetAccountByToken(t *testing.T) {
	db := newTestDB(t)
	svc := NewAccountService(db, newTestValidator())
	account := createTestAccount(t, db, models.PlanBasic)

	found, err := svc.GetAccountByToken(account.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, account.ID, found.ID)

	_, err = svc.GetAccountByToken("ak_nope")
	appErr := requireAppErrorCode(t, err, errors.CodeUnauthorized)
	assert.Equal(t, 401, appErr.StatusCode)
}
