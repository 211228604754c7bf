// Package store provides the file-backed stores behind the ledger engine.
// Each store owns one flat file under the data directory and rewrites it in
// full after every mutation; transaction logs are append-only. A write
// failure is reported to the caller while the in-memory state stays
// authoritative until the next successful flush.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Data file names, relative to the data directory. The line formats are
// fixed: existing installations must load unchanged.
const (
	accountsFile             = "accounts.txt"
	usersFile                = "users.txt"
	reviewsFile              = "reviews.txt"
	loanRequestsFile         = "loan_requests.txt"
	serviceFeedbackFile      = "service_feedback.txt"
	appointmentsPendingFile  = "appointments_pending.txt"
	appointmentsApprovedFile = "appointments_approved.txt"
	exchangeRatesFile        = "exchange_rates.txt"
	transactionsDir          = "transactions"
)

// readLines returns the lines of path, or nil if the file does not exist.
func readLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}
	text := strings.TrimRight(string(data), "\n")
	if text == "" {
		return nil, nil
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, "\r")
	}
	return lines, nil
}

// writeLines rewrites path in full.
func writeLines(path string, lines []string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(path), err)
	}
	var b strings.Builder
	for _, line := range lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}
	return nil
}

// appendLine appends a single line to path, creating it if needed.
func appendLine(path, line string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(path), err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", filepath.Base(path), err)
	}
	if _, err := f.WriteString(line + "\n"); err != nil {
		f.Close()
		return fmt.Errorf("failed to append to %s: %w", filepath.Base(path), err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", filepath.Base(path), err)
	}
	return nil
}
