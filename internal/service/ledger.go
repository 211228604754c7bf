package service

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"minibank/internal/models"
	"minibank/internal/store"
)

// LedgerService owns money movement on approved accounts. Every accepted
// mutation is flushed to disk and appended to the account's transaction
// log before it returns.
type LedgerService struct {
	ledger *store.LedgerStore
	txlog  *store.TransactionLog
	log    *slog.Logger
}

// NewLedgerService creates a LedgerService.
func NewLedgerService(ledger *store.LedgerStore, txlog *store.TransactionLog, log *slog.Logger) *LedgerService {
	return &LedgerService{ledger: ledger, txlog: txlog, log: log}
}

// Deposit credits an account.
func (s *LedgerService) Deposit(number int, amount decimal.Decimal) (decimal.Decimal, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, &ServiceError{Code: ErrCodeInvalidAmount, Message: "amount must be positive"}
	}
	if _, err := s.ledger.Get(number); err != nil {
		return decimal.Zero, &ServiceError{Code: ErrCodeAccountNotFound, Message: "account not found"}
	}
	balance, err := s.ledger.AdjustBalance(number, amount)
	if err != nil {
		return decimal.Zero, &ServiceError{Code: ErrCodePersistence, Message: "failed to save account", Err: err}
	}
	s.appendLog(number, models.TransactionTypeDeposit, amount, balance)
	return balance, nil
}

// Withdraw debits an account, refusing any withdrawal that would leave the
// balance under the minimum.
func (s *LedgerService) Withdraw(number int, amount decimal.Decimal) (decimal.Decimal, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, &ServiceError{Code: ErrCodeInvalidAmount, Message: "amount must be positive"}
	}
	acc, err := s.ledger.Get(number)
	if err != nil {
		return decimal.Zero, &ServiceError{Code: ErrCodeAccountNotFound, Message: "account not found"}
	}
	if acc.Balance.Sub(amount).LessThan(models.MinimumBalance) {
		return decimal.Zero, &ServiceError{
			Code:    ErrCodeBelowMinimumBalance,
			Message: fmt.Sprintf("balance may not drop below %s", models.MinimumBalance),
		}
	}
	balance, err := s.ledger.AdjustBalance(number, amount.Neg())
	if err != nil {
		return decimal.Zero, &ServiceError{Code: ErrCodePersistence, Message: "failed to save account", Err: err}
	}
	s.appendLog(number, models.TransactionTypeWithdraw, amount, balance)
	return balance, nil
}

// Transfer moves amount from one account to another. Both legs commit
// together: validation happens up front, both balances move under a single
// flush, and both log entries are appended.
func (s *LedgerService) Transfer(from, to int, amount decimal.Decimal) (fromBalance, toBalance decimal.Decimal, err error) {
	src, err := s.ledger.Get(from)
	if err != nil {
		return decimal.Zero, decimal.Zero, &ServiceError{Code: ErrCodeAccountNotFound, Message: "source account not found"}
	}
	if _, err := s.ledger.Get(to); err != nil {
		return decimal.Zero, decimal.Zero, &ServiceError{Code: ErrCodeAccountNotFound, Message: "destination account not found"}
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, decimal.Zero, &ServiceError{Code: ErrCodeInvalidAmount, Message: "amount must be positive"}
	}
	if src.Balance.Sub(amount).LessThan(models.MinimumBalance) {
		return decimal.Zero, decimal.Zero, &ServiceError{
			Code:    ErrCodeBelowMinimumBalance,
			Message: fmt.Sprintf("balance may not drop below %s", models.MinimumBalance),
		}
	}
	fromBalance, toBalance, err = s.ledger.Transfer(from, to, amount)
	if err != nil {
		return decimal.Zero, decimal.Zero, &ServiceError{Code: ErrCodePersistence, Message: "failed to save accounts", Err: err}
	}
	s.appendLog(from, models.TransactionTypeTransferOut, amount, fromBalance)
	s.appendLog(to, models.TransactionTypeTransferIn, amount, toBalance)
	return fromBalance, toBalance, nil
}

// DeleteAccount removes an account from the ledger. Its transaction log is
// kept for audit.
func (s *LedgerService) DeleteAccount(number int) error {
	if err := s.ledger.Delete(number); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return &ServiceError{Code: ErrCodeAccountNotFound, Message: "account not found"}
		}
		return &ServiceError{Code: ErrCodePersistence, Message: "failed to save accounts", Err: err}
	}
	s.log.Info("account deleted", "account", number)
	return nil
}

// Account returns the account with the given number.
func (s *LedgerService) Account(number int) (*models.Account, error) {
	acc, err := s.ledger.Get(number)
	if err != nil {
		return nil, &ServiceError{Code: ErrCodeAccountNotFound, Message: "account not found"}
	}
	return acc, nil
}

// AccountFor returns the account owned by username.
func (s *LedgerService) AccountFor(username string) (*models.Account, error) {
	acc, err := s.ledger.GetByOwner(username)
	if err != nil {
		return nil, &ServiceError{Code: ErrCodeAccountNotFound, Message: "no approved account for this user"}
	}
	return acc, nil
}

// Accounts returns every account ordered by number.
func (s *LedgerService) Accounts() []models.Account {
	return s.ledger.All()
}

// Search returns accounts whose owner name or national ID contains the
// fragment, case-insensitively.
func (s *LedgerService) Search(fragment string) []models.Account {
	needle := strings.ToLower(fragment)
	var out []models.Account
	for _, acc := range s.ledger.All() {
		if strings.Contains(strings.ToLower(acc.Owner), needle) || strings.Contains(acc.NationalID, fragment) {
			out = append(out, acc)
		}
	}
	return out
}

// Export writes all accounts as a headed CSV report to path and returns
// the number of rows written.
func (s *LedgerService) Export(path string) (int, error) {
	lines := []string{"AccountNumber,Username,NationalID,Balance"}
	accounts := s.ledger.All()
	for _, acc := range accounts {
		lines = append(lines, strconv.Itoa(acc.Number)+","+acc.Owner+","+acc.NationalID+","+acc.Balance.String())
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return 0, &ServiceError{Code: ErrCodePersistence, Message: "failed to create export directory", Err: err}
	}
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644); err != nil {
		return 0, &ServiceError{Code: ErrCodePersistence, Message: "failed to write export", Err: err}
	}
	return len(accounts), nil
}

// appendLog records a movement; a log write failure is logged but does not
// undo an already-persisted balance change.
func (s *LedgerService) appendLog(number int, txType models.TransactionType, amount, balance decimal.Decimal) {
	if err := s.txlog.Append(number, txType, amount, balance); err != nil {
		s.log.Error("failed to append transaction log", "account", number, "type", txType, "error", err)
	}
}
