package store

import (
	"fmt"
	"iter"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"minibank/internal/models"
)

// txTimeLayout matches the timestamps already present in installed
// transaction logs.
const txTimeLayout = "1/2/2006 3:04:05 PM"

// TransactionLog is the append-only per-account history. Each account has
// its own file, transactions/acc_<number>.txt, one entry per line:
//
//	timestamp | type | Amount: n | Balance: n
//
// Entries are never mutated or deleted; deleting an account orphans its
// log.
type TransactionLog struct {
	mu  sync.Mutex
	dir string
	now func() time.Time
}

// NewTransactionLog returns a log rooted at dir/transactions.
func NewTransactionLog(dir string) *TransactionLog {
	return &TransactionLog{
		dir: filepath.Join(dir, transactionsDir),
		now: time.Now,
	}
}

// Append records a movement on the account's log. The timestamp is
// assigned at append time, so call order is chronological order.
func (l *TransactionLog) Append(number int, txType models.TransactionType, amount, balance decimal.Decimal) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	line := fmt.Sprintf("%s | %s | Amount: %s | Balance: %s",
		l.now().Format(txTimeLayout), txType, amount.String(), balance.String())
	return appendLine(l.file(number), line)
}

// Filter selects transactions during a Query. Exactly one of the
// constructors below is used per call.
type Filter func(models.Transaction) bool

// ByDateRange keeps transactions with start <= time <= end.
func ByDateRange(start, end time.Time) Filter {
	return func(tx models.Transaction) bool {
		return !tx.Time.Before(start) && !tx.Time.After(end)
	}
}

// ByMonth keeps transactions within a calendar month.
func ByMonth(year int, month time.Month) Filter {
	return func(tx models.Transaction) bool {
		return tx.Time.Year() == year && tx.Time.Month() == month
	}
}

// ByType keeps transactions whose type contains substr, case-insensitively.
func ByType(substr string) Filter {
	needle := strings.ToLower(substr)
	return func(tx models.Transaction) bool {
		return strings.Contains(strings.ToLower(string(tx.Type)), needle)
	}
}

// ByAmount keeps transactions with exactly this amount.
func ByAmount(amount decimal.Decimal) Filter {
	return func(tx models.Transaction) bool {
		return tx.Amount.Equal(amount)
	}
}

// Query returns a lazy, restartable sequence of the account's transactions
// matching keep, in log (chronological) order. A nil keep yields the whole
// log. Malformed lines are skipped; a missing log yields nothing.
func (l *TransactionLog) Query(number int, keep Filter) iter.Seq[models.Transaction] {
	return func(yield func(models.Transaction) bool) {
		lines, err := readLines(l.file(number))
		if err != nil {
			return
		}
		for _, line := range lines {
			tx, ok := parseTransaction(line)
			if !ok {
				continue
			}
			if keep != nil && !keep(tx) {
				continue
			}
			if !yield(tx) {
				return
			}
		}
	}
}

// History returns the account's full log as a slice.
func (l *TransactionLog) History(number int) ([]models.Transaction, error) {
	lines, err := readLines(l.file(number))
	if err != nil {
		return nil, err
	}
	var out []models.Transaction
	for _, line := range lines {
		if tx, ok := parseTransaction(line); ok {
			out = append(out, tx)
		}
	}
	return out, nil
}

func (l *TransactionLog) file(number int) string {
	return filepath.Join(l.dir, fmt.Sprintf("acc_%d.txt", number))
}

func parseTransaction(line string) (models.Transaction, bool) {
	parts := strings.Split(line, " | ")
	if len(parts) != 4 {
		return models.Transaction{}, false
	}
	t, err := time.Parse(txTimeLayout, strings.TrimSpace(parts[0]))
	if err != nil {
		return models.Transaction{}, false
	}
	amount, err := decimal.NewFromString(strings.TrimSpace(strings.TrimPrefix(parts[2], "Amount:")))
	if err != nil {
		return models.Transaction{}, false
	}
	balance, err := decimal.NewFromString(strings.TrimSpace(strings.TrimPrefix(parts[3], "Balance:")))
	if err != nil {
		return models.Transaction{}, false
	}
	return models.Transaction{
		Time:    t,
		Type:    models.TransactionType(strings.TrimSpace(parts[1])),
		Amount:  amount,
		Balance: balance,
	}, true
}
