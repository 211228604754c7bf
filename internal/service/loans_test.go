package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minibank/internal/models"
)

func TestLoanService_SubmitEligibility(t *testing.T) {
	env := newTestEnv(t)

	t.Run("no approved account", func(t *testing.T) {
		_, err := env.loanSvc.Submit("ghost", decimal.NewFromInt(100), "car")
		requireCode(t, err, ErrCodeAccountNotFound)
	})

	number := env.openAccount(t, "alice", 0)

	t.Run("balance just under the floor", func(t *testing.T) {
		_, err := env.ledgerSvc.Deposit(number, decimal.RequireFromString("4999.99"))
		require.NoError(t, err)
		_, err = env.loanSvc.Submit("alice", decimal.NewFromInt(100), "car")
		requireCode(t, err, ErrCodeInsufficientBalance)
	})

	t.Run("balance exactly at the floor", func(t *testing.T) {
		_, err := env.ledgerSvc.Deposit(number, decimal.RequireFromString("0.01"))
		require.NoError(t, err)
		id, err := env.loanSvc.Submit("alice", decimal.NewFromInt(100), "car")
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, id)
	})
}

func TestLoanService_OneActiveLoanAtATime(t *testing.T) {
	env := newTestEnv(t)
	env.openAccount(t, "alice", 6000)

	id, err := env.loanSvc.Submit("alice", decimal.NewFromInt(500), "car")
	require.NoError(t, err)

	_, err = env.loanSvc.Submit("alice", decimal.NewFromInt(300), "boat")
	requireCode(t, err, ErrCodeActiveLoanExists)

	// An approved loan still blocks a new submission.
	require.NoError(t, env.loanSvc.Decide(id, true))
	_, err = env.loanSvc.Submit("alice", decimal.NewFromInt(300), "boat")
	requireCode(t, err, ErrCodeActiveLoanExists)
}

func TestLoanService_ResubmitAfterRejection(t *testing.T) {
	env := newTestEnv(t)
	env.openAccount(t, "alice", 6000)

	id, err := env.loanSvc.Submit("alice", decimal.NewFromInt(500), "car")
	require.NoError(t, err)
	require.NoError(t, env.loanSvc.Decide(id, false))

	_, err = env.loanSvc.Submit("alice", decimal.NewFromInt(300), "boat")
	require.NoError(t, err)
}

func TestLoanService_SubmitValidation(t *testing.T) {
	env := newTestEnv(t)
	env.openAccount(t, "alice", 6000)

	_, err := env.loanSvc.Submit("alice", decimal.Zero, "car")
	requireCode(t, err, ErrCodeInvalidAmount)
	_, err = env.loanSvc.Submit("alice", decimal.NewFromInt(100), "  ")
	requireCode(t, err, ErrCodeEmptyField)
}

func TestLoanService_ApproveCreditsAndLogs(t *testing.T) {
	env := newTestEnv(t)
	number := env.openAccount(t, "alice", 6000)

	id, err := env.loanSvc.Submit("alice", decimal.NewFromInt(1500), "car")
	require.NoError(t, err)
	require.NoError(t, env.loanSvc.Decide(id, true))

	acc, err := env.ledgerSvc.Account(number)
	require.NoError(t, err)
	assert.True(t, acc.Balance.Equal(decimal.NewFromInt(7500)))

	hist, err := env.txlog.History(number)
	require.NoError(t, err)
	require.Len(t, hist, 1)
	assert.Equal(t, models.TransactionTypeLoanApproved, hist[0].Type)
	assert.True(t, hist[0].Amount.Equal(decimal.NewFromInt(1500)))

	loans := env.loanSvc.LoansFor("alice")
	require.Len(t, loans, 1)
	assert.Equal(t, models.LoanStatusApproved, loans[0].Status)
	assert.True(t, loans[0].InterestRate.Equal(decimal.RequireFromString("0.05")))
}

func TestLoanService_DecideTwiceIsNoOp(t *testing.T) {
	env := newTestEnv(t)
	number := env.openAccount(t, "alice", 6000)

	id, err := env.loanSvc.Submit("alice", decimal.NewFromInt(1000), "car")
	require.NoError(t, err)
	require.NoError(t, env.loanSvc.Decide(id, true))
	require.NoError(t, env.loanSvc.Decide(id, true))

	// The account was credited exactly once.
	acc, err := env.ledgerSvc.Account(number)
	require.NoError(t, err)
	assert.True(t, acc.Balance.Equal(decimal.NewFromInt(7000)))
}

func TestLoanService_DecideUnknownLoan(t *testing.T) {
	env := newTestEnv(t)
	requireCode(t, env.loanSvc.Decide(uuid.New(), true), ErrCodeLoanNotFound)
}

func TestLoanService_PendingOrder(t *testing.T) {
	env := newTestEnv(t)
	env.openAccount(t, "alice", 6000)
	env.openAccount(t, "bob", 6000)

	_, err := env.loanSvc.Submit("alice", decimal.NewFromInt(100), "car")
	require.NoError(t, err)
	_, err = env.loanSvc.Submit("bob", decimal.NewFromInt(200), "roof")
	require.NoError(t, err)

	pending := env.loanSvc.Pending()
	require.Len(t, pending, 2)
	assert.Equal(t, "alice", pending[0].Username)
	assert.Equal(t, "bob", pending[1].Username)
}
