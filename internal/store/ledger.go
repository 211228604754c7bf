package store

import (
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"minibank/internal/models"
)

// accountNumberBase seeds the account counter on an empty ledger; the first
// account issued is accountNumberBase+1. Numbers are strictly increasing
// and never reused, even after deletion.
const accountNumberBase = 1000

// LedgerStore holds approved accounts, backed by accounts.txt with one
// `accountNumber,ownerUsername,balance,nationalId,phone,address` line per
// account.
type LedgerStore struct {
	mu         sync.RWMutex
	accounts   map[int]*models.Account
	path       string
	lastNumber int
}

// NewLedgerStore loads accounts.txt from dir, if present, and seeds the
// account counter from the highest number seen.
func NewLedgerStore(dir string) (*LedgerStore, error) {
	s := &LedgerStore{
		accounts:   make(map[int]*models.Account),
		path:       filepath.Join(dir, accountsFile),
		lastNumber: accountNumberBase,
	}
	lines, err := readLines(s.path)
	if err != nil {
		return nil, err
	}
	for _, line := range lines {
		// The address is the only free-text field and sits last, so a
		// bounded split keeps any commas it contains.
		parts := strings.SplitN(line, ",", 6)
		if len(parts) < 6 {
			continue
		}
		number, err := strconv.Atoi(parts[0])
		if err != nil {
			continue
		}
		balance, err := decimal.NewFromString(parts[2])
		if err != nil {
			continue
		}
		s.accounts[number] = &models.Account{
			Number:     number,
			Owner:      parts[1],
			Balance:    balance,
			NationalID: parts[3],
			Phone:      parts[4],
			Address:    parts[5],
		}
		if number > s.lastNumber {
			s.lastNumber = number
		}
	}
	return s, nil
}

// Open assigns the next account number, stores the record and flushes.
func (s *LedgerStore) Open(owner, nationalID string, initialDeposit decimal.Decimal, phone, address string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastNumber++
	number := s.lastNumber
	s.accounts[number] = &models.Account{
		Number:     number,
		Owner:      owner,
		Balance:    initialDeposit,
		NationalID: nationalID,
		Phone:      phone,
		Address:    address,
	}
	if err := s.flush(); err != nil {
		return 0, err
	}
	return number, nil
}

// Get returns the account with the given number, or models.ErrNotFound.
func (s *LedgerStore) Get(number int) (*models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.get(number)
}

func (s *LedgerStore) get(number int) (*models.Account, error) {
	acc, ok := s.accounts[number]
	if !ok {
		return nil, fmt.Errorf("account %d: %w", number, models.ErrNotFound)
	}
	a := *acc
	return &a, nil
}

// GetByOwner returns the account owned by username. Username matching is
// case-insensitive.
func (s *LedgerStore) GetByOwner(username string) (*models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, acc := range s.accounts {
		if strings.EqualFold(acc.Owner, username) {
			a := *acc
			return &a, nil
		}
	}
	return nil, fmt.Errorf("account for %q: %w", username, models.ErrNotFound)
}

// GetByNationalID returns the account registered under nationalID.
func (s *LedgerStore) GetByNationalID(nationalID string) (*models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, acc := range s.accounts {
		if acc.NationalID == nationalID {
			a := *acc
			return &a, nil
		}
	}
	return nil, fmt.Errorf("account for national id %q: %w", nationalID, models.ErrNotFound)
}

// NationalIDExists reports whether nationalID is already registered on an
// approved account.
func (s *LedgerStore) NationalIDExists(nationalID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, acc := range s.accounts {
		if acc.NationalID == nationalID {
			return true
		}
	}
	return false
}

// AdjustBalance applies delta to the account balance and flushes. The
// caller validates policy (sign, minimum balance) before calling.
func (s *LedgerStore) AdjustBalance(number int, delta decimal.Decimal) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	acc, ok := s.accounts[number]
	if !ok {
		return decimal.Zero, fmt.Errorf("account %d: %w", number, models.ErrNotFound)
	}
	acc.Balance = acc.Balance.Add(delta)
	if err := s.flush(); err != nil {
		return decimal.Zero, err
	}
	return acc.Balance, nil
}

// Transfer moves amount between two accounts under a single flush, so both
// legs land together or not at all.
func (s *LedgerStore) Transfer(from, to int, amount decimal.Decimal) (fromBalance, toBalance decimal.Decimal, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	src, ok := s.accounts[from]
	if !ok {
		return decimal.Zero, decimal.Zero, fmt.Errorf("account %d: %w", from, models.ErrNotFound)
	}
	dst, ok := s.accounts[to]
	if !ok {
		return decimal.Zero, decimal.Zero, fmt.Errorf("account %d: %w", to, models.ErrNotFound)
	}
	src.Balance = src.Balance.Sub(amount)
	dst.Balance = dst.Balance.Add(amount)
	if err := s.flush(); err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	return src.Balance, dst.Balance, nil
}

// Delete removes an account and flushes. The account's transaction log is
// orphaned, not deleted.
func (s *LedgerStore) Delete(number int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.accounts[number]; !ok {
		return fmt.Errorf("account %d: %w", number, models.ErrNotFound)
	}
	delete(s.accounts, number)
	return s.flush()
}

// All returns every account ordered by account number.
func (s *LedgerStore) All() []models.Account {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Account, 0, len(s.accounts))
	for _, acc := range s.accounts {
		out = append(out, *acc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out
}

// LastNumber returns the current account counter value.
func (s *LedgerStore) LastNumber() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastNumber
}

// reset drops every account and reseeds the counter. Only the wipe path
// calls it, after the file is already gone.
func (s *LedgerStore) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts = make(map[int]*models.Account)
	s.lastNumber = accountNumberBase
}

// flush rewrites accounts.txt. Callers must hold the write lock.
func (s *LedgerStore) flush() error {
	numbers := make([]int, 0, len(s.accounts))
	for n := range s.accounts {
		numbers = append(numbers, n)
	}
	sort.Ints(numbers)
	lines := make([]string, 0, len(numbers))
	for _, n := range numbers {
		acc := s.accounts[n]
		lines = append(lines, fmt.Sprintf("%d,%s,%s,%s,%s,%s",
			acc.Number, acc.Owner, acc.Balance.String(), acc.NationalID, acc.Phone, acc.Address))
	}
	return writeLines(s.path, lines)
}
