package service

import (
	"fmt"
	"iter"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"minibank/internal/models"
	"minibank/internal/store"
)

// StatementService answers transaction-history queries and renders the
// statement and receipt files the bank hands to customers.
type StatementService struct {
	ledger *store.LedgerStore
	txlog  *store.TransactionLog
	outDir string
	log    *slog.Logger
}

// NewStatementService creates a StatementService writing statement and
// receipt files under outDir.
func NewStatementService(ledger *store.LedgerStore, txlog *store.TransactionLog, outDir string, log *slog.Logger) *StatementService {
	return &StatementService{ledger: ledger, txlog: txlog, outDir: outDir, log: log}
}

// History returns the account's full transaction log.
func (s *StatementService) History(number int) ([]models.Transaction, error) {
	if _, err := s.ledger.Get(number); err != nil {
		return nil, &ServiceError{Code: ErrCodeAccountNotFound, Message: "account not found"}
	}
	txs, err := s.txlog.History(number)
	if err != nil {
		return nil, &ServiceError{Code: ErrCodePersistence, Message: "failed to read transaction log", Err: err}
	}
	return txs, nil
}

// FilterByDateRange yields the account's transactions between start and
// end, inclusive.
func (s *StatementService) FilterByDateRange(number int, start, end time.Time) iter.Seq[models.Transaction] {
	return s.txlog.Query(number, store.ByDateRange(start, end))
}

// FilterByType yields the account's transactions whose type contains
// substr, case-insensitively.
func (s *StatementService) FilterByType(number int, substr string) iter.Seq[models.Transaction] {
	return s.txlog.Query(number, store.ByType(substr))
}

// FilterByAmount yields the account's transactions with exactly this
// amount.
func (s *StatementService) FilterByAmount(number int, amount decimal.Decimal) iter.Seq[models.Transaction] {
	return s.txlog.Query(number, store.ByAmount(amount))
}

// MonthlyStatement collects one calendar month of transactions and writes
// them as a statement file, returning the transactions and the file path.
func (s *StatementService) MonthlyStatement(number, year int, month time.Month) ([]models.Transaction, string, error) {
	acc, err := s.ledger.Get(number)
	if err != nil {
		return nil, "", &ServiceError{Code: ErrCodeAccountNotFound, Message: "account not found"}
	}
	var txs []models.Transaction
	for tx := range s.txlog.Query(number, store.ByMonth(year, month)) {
		txs = append(txs, tx)
	}

	var b strings.Builder
	b.WriteString("==== MONTHLY STATEMENT ====\n")
	fmt.Fprintf(&b, "Account#: %d\n", acc.Number)
	fmt.Fprintf(&b, "Username: %s\n", acc.Owner)
	fmt.Fprintf(&b, "Period: %d/%d\n", int(month), year)
	b.WriteString("===========================\n")
	if len(txs) == 0 {
		b.WriteString("No transactions in this period.\n")
	}
	for _, tx := range txs {
		fmt.Fprintf(&b, "%s | %s | Amount: %s | Balance: %s\n",
			tx.Time.Format("1/2/2006 3:04:05 PM"), tx.Type, tx.Amount.String(), tx.Balance.String())
	}

	path := filepath.Join(s.outDir, fmt.Sprintf("statement_%d_%d_%d.txt", number, year, int(month)))
	if err := s.writeFile(path, b.String()); err != nil {
		return nil, "", err
	}
	return txs, path, nil
}

// Receipt writes a deposit/withdrawal receipt file and returns its path.
func (s *StatementService) Receipt(txType models.TransactionType, number int, amount, balance decimal.Decimal) (string, error) {
	acc, err := s.ledger.Get(number)
	if err != nil {
		return "", &ServiceError{Code: ErrCodeAccountNotFound, Message: "account not found"}
	}
	now := time.Now()
	var b strings.Builder
	b.WriteString("==== MiniBank Receipt ====\n")
	fmt.Fprintf(&b, "Account Number: %d\n", acc.Number)
	fmt.Fprintf(&b, "Username: %s\n", acc.Owner)
	fmt.Fprintf(&b, "Operation: %s\n", txType)
	fmt.Fprintf(&b, "Amount: %s\n", amount.StringFixed(2))
	fmt.Fprintf(&b, "Balance: %s\n", balance.StringFixed(2))
	fmt.Fprintf(&b, "Date: %s\n", now.Format("1/2/2006 3:04:05 PM"))

	path := filepath.Join(s.outDir, fmt.Sprintf("receipt_%d_%s.txt", number, now.Format("20060102_150405")))
	if err := s.writeFile(path, b.String()); err != nil {
		return "", err
	}
	return path, nil
}

func (s *StatementService) writeFile(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return &ServiceError{Code: ErrCodePersistence, Message: "failed to create output directory", Err: err}
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return &ServiceError{Code: ErrCodePersistence, Message: "failed to write " + filepath.Base(path), Err: err}
	}
	return nil
}
