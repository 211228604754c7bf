package store

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minibank/internal/models"
)

func TestLedgerStore_OpenAssignsIncreasingNumbers(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLedgerStore(dir)
	require.NoError(t, err)

	first, err := s.Open("alice", "1001", decimal.NewFromInt(1000), "99887766", "Muscat")
	require.NoError(t, err)
	second, err := s.Open("bob", "1002", decimal.NewFromInt(500), "99887767", "Sohar")
	require.NoError(t, err)

	assert.Equal(t, 1001, first)
	assert.Equal(t, 1002, second)
	assert.Greater(t, second, first)
}

func TestLedgerStore_NumbersNeverReusedAfterDelete(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLedgerStore(dir)
	require.NoError(t, err)

	first, err := s.Open("alice", "1001", decimal.NewFromInt(1000), "", "")
	require.NoError(t, err)
	require.NoError(t, s.Delete(first))

	second, err := s.Open("bob", "1002", decimal.NewFromInt(500), "", "")
	require.NoError(t, err)
	assert.Equal(t, first+1, second)
}

func TestLedgerStore_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLedgerStore(dir)
	require.NoError(t, err)

	_, err = s.Open("alice", "1001", decimal.RequireFromString("1000.5"), "99887766", "Muscat, Oman")
	require.NoError(t, err)
	_, err = s.Open("bob", "1002", decimal.NewFromInt(500), "99887767", "Sohar")
	require.NoError(t, err)

	reloaded, err := NewLedgerStore(dir)
	require.NoError(t, err)

	assert.Equal(t, s.All(), reloaded.All())
	assert.Equal(t, s.LastNumber(), reloaded.LastNumber(), "counter must reseed from the max number seen")

	next, err := reloaded.Open("carol", "1003", decimal.NewFromInt(50), "", "")
	require.NoError(t, err)
	assert.Equal(t, 1003, next)
}

func TestLedgerStore_Transfer_SingleFlush(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLedgerStore(dir)
	require.NoError(t, err)

	a, err := s.Open("alice", "1001", decimal.NewFromInt(200), "", "")
	require.NoError(t, err)
	b, err := s.Open("bob", "1002", decimal.NewFromInt(50), "", "")
	require.NoError(t, err)

	fromBal, toBal, err := s.Transfer(a, b, decimal.NewFromInt(100))
	require.NoError(t, err)
	assert.True(t, fromBal.Equal(decimal.NewFromInt(100)))
	assert.True(t, toBal.Equal(decimal.NewFromInt(150)))

	reloaded, err := NewLedgerStore(dir)
	require.NoError(t, err)
	src, err := reloaded.Get(a)
	require.NoError(t, err)
	dst, err := reloaded.Get(b)
	require.NoError(t, err)
	assert.True(t, src.Balance.Equal(decimal.NewFromInt(100)))
	assert.True(t, dst.Balance.Equal(decimal.NewFromInt(150)))
}

func TestLedgerStore_GetUnknownAccount(t *testing.T) {
	s, err := NewLedgerStore(t.TempDir())
	require.NoError(t, err)

	_, err = s.Get(9999)
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.ErrorIs(t, s.Delete(9999), models.ErrNotFound)
}

func TestLedgerStore_NationalIDLookup(t *testing.T) {
	s, err := NewLedgerStore(t.TempDir())
	require.NoError(t, err)

	_, err = s.Open("alice", "12345", decimal.NewFromInt(100), "", "")
	require.NoError(t, err)

	assert.True(t, s.NationalIDExists("12345"))
	assert.False(t, s.NationalIDExists("54321"))

	acc, err := s.GetByNationalID("12345")
	require.NoError(t, err)
	assert.Equal(t, "alice", acc.Owner)

	acc, err = s.GetByOwner("ALICE")
	require.NoError(t, err)
	assert.Equal(t, "alice", acc.Owner, "owner lookup is case-insensitive")
}
