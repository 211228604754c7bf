package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType names a ledger movement. The values are the exact strings
// written to the per-account log files.
type TransactionType string

const (
	TransactionTypeDeposit      TransactionType = "Deposit"
	TransactionTypeWithdraw     TransactionType = "Withdraw"
	TransactionTypeTransferOut  TransactionType = "Transfer Out"
	TransactionTypeTransferIn   TransactionType = "Transfer In"
	TransactionTypeLoanApproved TransactionType = "Loan Approved"
)

// Transaction is one append-only log entry for an account. Balance is the
// resulting balance after the movement.
type Transaction struct {
	Time    time.Time
	Type    TransactionType
	Amount  decimal.Decimal
	Balance decimal.Decimal
}
