package store

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"minibank/internal/models"
)

// LoanStore holds loan applications in submission order, backed by
// loan_requests.txt with one `username|amount|reason|status|interestRate`
// line per loan. The format carries no ID column, so loan IDs are assigned
// at load and stable only within a session.
type LoanStore struct {
	mu    sync.RWMutex
	loans []*models.Loan
	byID  map[uuid.UUID]*models.Loan
	path  string
}

// NewLoanStore loads loan_requests.txt from dir, if present.
func NewLoanStore(dir string) (*LoanStore, error) {
	s := &LoanStore{
		byID: make(map[uuid.UUID]*models.Loan),
		path: filepath.Join(dir, loanRequestsFile),
	}
	lines, err := readLines(s.path)
	if err != nil {
		return nil, err
	}
	for _, line := range lines {
		parts := strings.Split(line, "|")
		if len(parts) < 5 {
			continue
		}
		amount, err := decimal.NewFromString(parts[1])
		if err != nil {
			continue
		}
		rate, err := decimal.NewFromString(parts[4])
		if err != nil {
			continue
		}
		loan := &models.Loan{
			ID:           uuid.New(),
			Username:     parts[0],
			Amount:       amount,
			Reason:       parts[2],
			Status:       models.LoanStatus(parts[3]),
			InterestRate: rate,
		}
		s.loans = append(s.loans, loan)
		s.byID[loan.ID] = loan
	}
	return s, nil
}

// Add appends a new loan and flushes.
func (s *LoanStore) Add(loan *models.Loan) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	l := *loan
	s.loans = append(s.loans, &l)
	s.byID[l.ID] = &l
	return s.flush()
}

// Get returns the loan with the given ID, or models.ErrNotFound.
func (s *LoanStore) Get(id uuid.UUID) (*models.Loan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	loan, ok := s.byID[id]
	if !ok {
		return nil, fmt.Errorf("loan %s: %w", id, models.ErrNotFound)
	}
	l := *loan
	return &l, nil
}

// SetStatus updates a loan's status and flushes.
func (s *LoanStore) SetStatus(id uuid.UUID, status models.LoanStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	loan, ok := s.byID[id]
	if !ok {
		return fmt.Errorf("loan %s: %w", id, models.ErrNotFound)
	}
	loan.Status = status
	return s.flush()
}

// HasActive reports whether username has a Pending or Approved loan.
func (s *LoanStore) HasActive(username string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, loan := range s.loans {
		if loan.Username == username && loan.Active() {
			return true
		}
	}
	return false
}

// Pending returns all pending loans in submission order.
func (s *LoanStore) Pending() []models.Loan {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Loan
	for _, loan := range s.loans {
		if loan.Status == models.LoanStatusPending {
			out = append(out, *loan)
		}
	}
	return out
}

// ByUsername returns username's loans in submission order.
func (s *LoanStore) ByUsername(username string) []models.Loan {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Loan
	for _, loan := range s.loans {
		if loan.Username == username {
			out = append(out, *loan)
		}
	}
	return out
}

// All returns every loan in submission order.
func (s *LoanStore) All() []models.Loan {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Loan, 0, len(s.loans))
	for _, loan := range s.loans {
		out = append(out, *loan)
	}
	return out
}

// reset drops every loan. Only the wipe path calls it.
func (s *LoanStore) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loans = nil
	s.byID = make(map[uuid.UUID]*models.Loan)
}

// flush rewrites loan_requests.txt. Callers must hold the write lock.
func (s *LoanStore) flush() error {
	lines := make([]string, 0, len(s.loans))
	for _, loan := range s.loans {
		lines = append(lines, fmt.Sprintf("%s|%s|%s|%s|%s",
			loan.Username, loan.Amount.String(), loan.Reason, loan.Status, loan.InterestRate.String()))
	}
	return writeLines(s.path, lines)
}
