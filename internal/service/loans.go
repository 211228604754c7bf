package service

import (
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"minibank/internal/models"
	"minibank/internal/store"
)

// Loan policy. The balance floor is checked against the requester's
// current account balance at submission time; the rate is fixed for the
// lifetime of the loan.
var (
	loanMinimumBalance = decimal.NewFromInt(5000)
	loanInterestRate   = decimal.NewFromFloat(0.05)
)

// LoanService owns loan submission and decisions.
type LoanService struct {
	loans  *store.LoanStore
	ledger *store.LedgerStore
	txlog  *store.TransactionLog
	log    *slog.Logger
}

// NewLoanService creates a LoanService.
func NewLoanService(loans *store.LoanStore, ledger *store.LedgerStore, txlog *store.TransactionLog, log *slog.Logger) *LoanService {
	return &LoanService{loans: loans, ledger: ledger, txlog: txlog, log: log}
}

// Submit files a loan application. The requester needs an approved account
// with balance at or above the floor, and may hold at most one pending or
// approved loan at a time.
func (s *LoanService) Submit(username string, amount decimal.Decimal, reason string) (uuid.UUID, error) {
	acc, err := s.ledger.GetByOwner(username)
	if err != nil {
		return uuid.Nil, &ServiceError{Code: ErrCodeAccountNotFound, Message: "an approved account is required"}
	}
	if acc.Balance.LessThan(loanMinimumBalance) {
		return uuid.Nil, &ServiceError{
			Code:    ErrCodeInsufficientBalance,
			Message: "balance must be at least " + loanMinimumBalance.String() + " to request a loan",
		}
	}
	if s.loans.HasActive(username) {
		return uuid.Nil, &ServiceError{Code: ErrCodeActiveLoanExists, Message: "only one pending or approved loan at a time"}
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return uuid.Nil, &ServiceError{Code: ErrCodeInvalidAmount, Message: "amount must be positive"}
	}
	if strings.TrimSpace(reason) == "" {
		return uuid.Nil, &ServiceError{Code: ErrCodeEmptyField, Message: "a reason is required"}
	}
	loan := &models.Loan{
		ID:           uuid.New(),
		Username:     username,
		Amount:       amount,
		Reason:       reason,
		Status:       models.LoanStatusPending,
		InterestRate: loanInterestRate,
	}
	if err := s.loans.Add(loan); err != nil {
		return uuid.Nil, &ServiceError{Code: ErrCodePersistence, Message: "failed to save loan request", Err: err}
	}
	s.log.Info("loan submitted", "username", username, "amount", amount.String())
	return loan.ID, nil
}

// Decide settles a pending loan. Approval credits the requester's account
// and logs a Loan Approved transaction; rejection only flips the status.
// Deciding a non-pending loan is a no-op.
func (s *LoanService) Decide(id uuid.UUID, approve bool) error {
	loan, err := s.loans.Get(id)
	if err != nil {
		return &ServiceError{Code: ErrCodeLoanNotFound, Message: "loan not found"}
	}
	if loan.Status != models.LoanStatusPending {
		return nil
	}
	if !approve {
		if err := s.loans.SetStatus(id, models.LoanStatusRejected); err != nil {
			return &ServiceError{Code: ErrCodePersistence, Message: "failed to save loan request", Err: err}
		}
		s.log.Info("loan rejected", "username", loan.Username)
		return nil
	}
	acc, err := s.ledger.GetByOwner(loan.Username)
	if err != nil {
		return &ServiceError{Code: ErrCodeAccountNotFound, Message: "requester has no approved account"}
	}
	balance, err := s.ledger.AdjustBalance(acc.Number, loan.Amount)
	if err != nil {
		return &ServiceError{Code: ErrCodePersistence, Message: "failed to credit account", Err: err}
	}
	if err := s.txlog.Append(acc.Number, models.TransactionTypeLoanApproved, loan.Amount, balance); err != nil {
		s.log.Error("failed to append transaction log", "account", acc.Number, "error", err)
	}
	if err := s.loans.SetStatus(id, models.LoanStatusApproved); err != nil {
		return &ServiceError{Code: ErrCodePersistence, Message: "failed to save loan request", Err: err}
	}
	s.log.Info("loan approved", "username", loan.Username, "amount", loan.Amount.String())
	return nil
}

// Pending returns pending loans in submission order for the approval loop.
func (s *LoanService) Pending() []models.Loan {
	return s.loans.Pending()
}

// LoansFor returns username's loan history.
func (s *LoanService) LoansFor(username string) []models.Loan {
	return s.loans.ByUsername(username)
}

// All returns every loan for the admin audit view.
func (s *LoanService) All() []models.Loan {
	return s.loans.All()
}
