package store

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// Stores bundles every file-backed store over one data directory. Open
// loads them all at startup; mutations flush eagerly, so there is no
// explicit save-on-shutdown step.
type Stores struct {
	Identity        *IdentityStore
	Ledger          *LedgerStore
	Transactions    *TransactionLog
	Loans           *LoanStore
	Appointments    *AppointmentStore
	Reviews         *ReviewStack
	Feedback        *FeedbackStore
	Rates           *RateStore
	AccountRequests *RequestQueue
	AdminRequests   *RequestQueue

	dir string
}

// Open loads every store from dir, creating the directory if needed.
func Open(dir string) (*Stores, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	s := &Stores{
		Transactions:    NewTransactionLog(dir),
		AccountRequests: NewRequestQueue(),
		AdminRequests:   NewRequestQueue(),
		dir:             dir,
	}
	var err error
	if s.Identity, err = NewIdentityStore(dir); err != nil {
		return nil, err
	}
	if s.Ledger, err = NewLedgerStore(dir); err != nil {
		return nil, err
	}
	if s.Loans, err = NewLoanStore(dir); err != nil {
		return nil, err
	}
	if s.Appointments, err = NewAppointmentStore(dir); err != nil {
		return nil, err
	}
	if s.Reviews, err = NewReviewStack(dir); err != nil {
		return nil, err
	}
	if s.Feedback, err = NewFeedbackStore(dir); err != nil {
		return nil, err
	}
	if s.Rates, err = NewRateStore(dir); err != nil {
		return nil, err
	}
	return s, nil
}

// Dir returns the data directory the stores were opened from.
func (s *Stores) Dir() string { return s.dir }

// dataFiles lists every flat file a backup or wipe must cover.
func dataFiles() []string {
	return []string{
		accountsFile,
		usersFile,
		reviewsFile,
		loanRequestsFile,
		serviceFeedbackFile,
		appointmentsPendingFile,
		appointmentsApprovedFile,
		exchangeRatesFile,
	}
}

// Backup copies every existing data file, including the per-account
// transaction logs, into a timestamped directory under dest and returns
// its path.
func (s *Stores) Backup(dest string) (string, error) {
	backupDir := filepath.Join(dest, "backup_"+time.Now().Format("20060102_150405"))
	if err := os.MkdirAll(backupDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}
	for _, name := range dataFiles() {
		src := filepath.Join(s.dir, name)
		if _, err := os.Stat(src); os.IsNotExist(err) {
			continue
		}
		if err := copyFile(src, filepath.Join(backupDir, name)); err != nil {
			return "", err
		}
	}
	txDir := filepath.Join(s.dir, transactionsDir)
	entries, err := os.ReadDir(txDir)
	if os.IsNotExist(err) {
		return backupDir, nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read transactions directory: %w", err)
	}
	destTxDir := filepath.Join(backupDir, transactionsDir)
	if err := os.MkdirAll(destTxDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if err := copyFile(filepath.Join(txDir, entry.Name()), filepath.Join(destTxDir, entry.Name())); err != nil {
			return "", err
		}
	}
	return backupDir, nil
}

// WipeAll deletes every data file and transaction log, then clears each
// store in place. Long-lived callers hold the store pointers, so the
// stores must empty themselves rather than be swapped for fresh ones.
// Destructive and unrecoverable; callers confirm first.
func (s *Stores) WipeAll() error {
	for _, name := range dataFiles() {
		if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove %s: %w", name, err)
		}
	}
	if err := os.RemoveAll(filepath.Join(s.dir, transactionsDir)); err != nil {
		return fmt.Errorf("failed to remove transaction logs: %w", err)
	}
	s.Identity.reset()
	s.Ledger.reset()
	s.Loans.reset()
	s.Appointments.reset()
	s.Reviews.reset()
	s.Feedback.reset()
	s.Rates.reset()
	s.AccountRequests.reset()
	s.AdminRequests.reset()
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", filepath.Base(src), err)
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Base(dst), err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("failed to copy %s: %w", filepath.Base(src), err)
	}
	return out.Close()
}
