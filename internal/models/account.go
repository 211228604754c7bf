package models

import "github.com/shopspring/decimal"

// Account is an approved ledger account. Accounts are created only by the
// approval engine, never directly by a customer.
type Account struct {
	Balance    decimal.Decimal
	Owner      string
	NationalID string
	Phone      string
	Address    string
	Number     int
}

// MinimumBalance is the floor below which withdrawals and outgoing
// transfers are rejected.
var MinimumBalance = decimal.NewFromInt(50)
