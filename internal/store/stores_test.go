package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minibank/internal/models"
)

func seedStores(t *testing.T, s *Stores) int {
	t.Helper()
	number, err := s.Ledger.Open("alice", "NID-1", decimal.NewFromInt(100), "555-0100", "1 Main St")
	require.NoError(t, err)
	require.NoError(t, s.Transactions.Append(number, models.TransactionTypeDeposit,
		decimal.NewFromInt(100), decimal.NewFromInt(200)))
	require.NoError(t, s.Reviews.Push("alice: all good"))
	return number
}

func TestStores_Open(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	s, err := Open(dir)
	require.NoError(t, err)

	// The data directory is created on demand.
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Equal(t, dir, s.Dir())
}

func TestStores_Backup(t *testing.T) {
	s, err := Open(t.TempDir())
	require.NoError(t, err)
	number := seedStores(t, s)

	backupDir, err := s.Backup(t.TempDir())
	require.NoError(t, err)

	original, err := os.ReadFile(filepath.Join(s.Dir(), accountsFile))
	require.NoError(t, err)
	copied, err := os.ReadFile(filepath.Join(backupDir, accountsFile))
	require.NoError(t, err)
	assert.Equal(t, original, copied)

	_, err = os.Stat(filepath.Join(backupDir, transactionsDir, "acc_1001.txt"))
	require.NoError(t, err)
	assert.Equal(t, 1001, number)
}

func TestStores_WipeAll(t *testing.T) {
	s, err := Open(t.TempDir())
	require.NoError(t, err)
	number := seedStores(t, s)

	require.NoError(t, s.WipeAll())

	assert.Empty(t, s.Ledger.All())
	assert.Zero(t, s.Reviews.Len())
	hist, err := s.Transactions.History(number)
	require.NoError(t, err)
	assert.Empty(t, hist)

	// The counter reseeds from the base, so numbering restarts.
	next, err := s.Ledger.Open("bob", "NID-2", decimal.NewFromInt(50), "", "")
	require.NoError(t, err)
	assert.Equal(t, 1001, next)
}

func TestStores_WipeAllClearsHeldStorePointers(t *testing.T) {
	s, err := Open(t.TempDir())
	require.NoError(t, err)

	// Long-lived services capture the store pointers once at startup.
	ledger := s.Ledger
	identity := s.Identity
	reviews := s.Reviews

	require.NoError(t, identity.Create(&models.Credential{
		Username: "alice", PasswordHash: "x", Role: models.RoleCustomer,
	}))
	seedStores(t, s)

	require.NoError(t, s.WipeAll())

	assert.Empty(t, ledger.All())
	assert.Empty(t, identity.All())
	assert.Zero(t, reviews.Len())

	// A mutation through the held pointer must not flush pre-wipe state
	// back to disk.
	next, err := ledger.Open("bob", "NID-2", decimal.NewFromInt(50), "", "")
	require.NoError(t, err)
	assert.Equal(t, 1001, next)

	data, err := os.ReadFile(filepath.Join(s.Dir(), accountsFile))
	require.NoError(t, err)
	assert.Equal(t, "1001,bob,50,NID-2,,\n", string(data))
}
