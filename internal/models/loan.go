package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LoanStatus tracks a loan application through its lifecycle. Approved and
// Rejected are terminal.
type LoanStatus string

const (
	LoanStatusPending  LoanStatus = "Pending"
	LoanStatusApproved LoanStatus = "Approved"
	LoanStatusRejected LoanStatus = "Rejected"
)

// Loan is a loan application. The interest rate is fixed at submission
// time. IDs are session-scoped: the persisted format carries no ID column,
// so a fresh ID is assigned on load.
type Loan struct {
	ID           uuid.UUID
	Username     string
	Reason       string
	Status       LoanStatus
	Amount       decimal.Decimal
	InterestRate decimal.Decimal
}

// Active reports whether the loan counts against the one-loan-per-customer
// rule. Rejected loans do not.
func (l *Loan) Active() bool {
	return l.Status == LoanStatusPending || l.Status == LoanStatusApproved
}
