package store

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minibank/internal/models"
)

func newTestLog(t *testing.T) *TransactionLog {
	t.Helper()
	l := NewTransactionLog(t.TempDir())
	base := time.Date(2026, time.March, 10, 9, 30, 0, 0, time.UTC)
	n := 0
	l.now = func() time.Time {
		n++
		return base.Add(time.Duration(n) * time.Hour)
	}
	return l
}

func TestTransactionLog_AppendAndHistory(t *testing.T) {
	l := newTestLog(t)

	require.NoError(t, l.Append(1001, models.TransactionTypeDeposit, decimal.NewFromInt(100), decimal.NewFromInt(1100)))
	require.NoError(t, l.Append(1001, models.TransactionTypeWithdraw, decimal.RequireFromString("50.5"), decimal.RequireFromString("1049.5")))

	txs, err := l.History(1001)
	require.NoError(t, err)
	require.Len(t, txs, 2)

	assert.Equal(t, models.TransactionTypeDeposit, txs[0].Type)
	assert.True(t, txs[0].Amount.Equal(decimal.NewFromInt(100)))
	assert.True(t, txs[0].Balance.Equal(decimal.NewFromInt(1100)))
	assert.Equal(t, models.TransactionTypeWithdraw, txs[1].Type)
	assert.True(t, txs[1].Amount.Equal(decimal.RequireFromString("50.5")))
	assert.True(t, txs[1].Time.After(txs[0].Time), "append order is chronological order")
}

func TestTransactionLog_HistoryOfUnknownAccountIsEmpty(t *testing.T) {
	l := NewTransactionLog(t.TempDir())
	txs, err := l.History(4242)
	require.NoError(t, err)
	assert.Empty(t, txs)
}

func TestTransactionLog_Query(t *testing.T) {
	l := newTestLog(t)
	require.NoError(t, l.Append(1001, models.TransactionTypeDeposit, decimal.NewFromInt(100), decimal.NewFromInt(1100)))
	require.NoError(t, l.Append(1001, models.TransactionTypeTransferOut, decimal.NewFromInt(25), decimal.NewFromInt(1075)))
	require.NoError(t, l.Append(1001, models.TransactionTypeTransferIn, decimal.NewFromInt(100), decimal.NewFromInt(1175)))

	collect := func(keep Filter) []models.Transaction {
		var out []models.Transaction
		for tx := range l.Query(1001, keep) {
			out = append(out, tx)
		}
		return out
	}

	t.Run("by type substring", func(t *testing.T) {
		got := collect(ByType("transfer"))
		require.Len(t, got, 2)
		assert.Equal(t, models.TransactionTypeTransferOut, got[0].Type)
		assert.Equal(t, models.TransactionTypeTransferIn, got[1].Type)
	})

	t.Run("by exact amount", func(t *testing.T) {
		got := collect(ByAmount(decimal.NewFromInt(100)))
		require.Len(t, got, 2)
		for _, tx := range got {
			assert.True(t, tx.Amount.Equal(decimal.NewFromInt(100)))
		}
	})

	t.Run("by date range", func(t *testing.T) {
		all := collect(nil)
		require.Len(t, all, 3)
		got := collect(ByDateRange(all[1].Time, all[2].Time))
		require.Len(t, got, 2)
	})

	t.Run("by month", func(t *testing.T) {
		assert.Len(t, collect(ByMonth(2026, time.March)), 3)
		assert.Empty(t, collect(ByMonth(2026, time.April)))
	})

	t.Run("sequence is restartable", func(t *testing.T) {
		seq := l.Query(1001, ByType("transfer"))
		first := 0
		for range seq {
			first++
		}
		second := 0
		for range seq {
			second++
		}
		assert.Equal(t, first, second)
	})

	t.Run("early break stops iteration", func(t *testing.T) {
		count := 0
		for range l.Query(1001, nil) {
			count++
			break
		}
		assert.Equal(t, 1, count)
	})
}

func TestTransactionLog_LineFormat(t *testing.T) {
	l := NewTransactionLog(t.TempDir())
	l.now = func() time.Time { return time.Date(2024, time.June, 29, 15, 43, 34, 0, time.UTC) }

	require.NoError(t, l.Append(1001, models.TransactionTypeDeposit, decimal.NewFromInt(100), decimal.NewFromInt(1100)))

	lines, err := readLines(l.file(1001))
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "6/29/2024 3:43:34 PM | Deposit | Amount: 100 | Balance: 1100", lines[0])
}
