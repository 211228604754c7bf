package service

import (
	"sort"

	"github.com/shopspring/decimal"

	"minibank/internal/models"
	"minibank/internal/store"
)

// SystemStats is the admin dashboard summary.
type SystemStats struct {
	TotalBalance        decimal.Decimal
	Accounts            int
	Users               int
	LockedUsers         int
	PendingRequests     int
	PendingAdmins       int
	PendingAppointments int
	PendingLoans        int
}

// ReportService answers the read-only aggregate queries admins use. It
// never mutates any store.
type ReportService struct {
	ledger       *store.LedgerStore
	identity     *store.IdentityStore
	loans        *store.LoanStore
	accountReqs  *store.RequestQueue
	adminReqs    *store.RequestQueue
	appointments *store.AppointmentStore
}

// NewReportService creates a ReportService.
func NewReportService(
	ledger *store.LedgerStore,
	identity *store.IdentityStore,
	loans *store.LoanStore,
	accountReqs, adminReqs *store.RequestQueue,
	appointments *store.AppointmentStore,
) *ReportService {
	return &ReportService{
		ledger:       ledger,
		identity:     identity,
		loans:        loans,
		accountReqs:  accountReqs,
		adminReqs:    adminReqs,
		appointments: appointments,
	}
}

// TotalBalance returns the sum of all account balances.
func (s *ReportService) TotalBalance() decimal.Decimal {
	total := decimal.Zero
	for _, acc := range s.ledger.All() {
		total = total.Add(acc.Balance)
	}
	return total
}

// AverageBalance returns the mean account balance, rounded to 2 places, or
// zero when the ledger is empty.
func (s *ReportService) AverageBalance() decimal.Decimal {
	accounts := s.ledger.All()
	if len(accounts) == 0 {
		return decimal.Zero
	}
	return s.TotalBalance().DivRound(decimal.NewFromInt(int64(len(accounts))), 2)
}

// TopRichest returns the n accounts with the highest balances, descending.
// Ties keep account-number order.
func (s *ReportService) TopRichest(n int) []models.Account {
	accounts := s.ledger.All()
	sort.SliceStable(accounts, func(i, j int) bool {
		return accounts[i].Balance.GreaterThan(accounts[j].Balance)
	})
	if n < 0 {
		n = 0
	}
	if n > len(accounts) {
		n = len(accounts)
	}
	return accounts[:n]
}

// AboveBalance returns accounts with balance strictly above the threshold.
func (s *ReportService) AboveBalance(threshold decimal.Decimal) []models.Account {
	var out []models.Account
	for _, acc := range s.ledger.All() {
		if acc.Balance.GreaterThan(threshold) {
			out = append(out, acc)
		}
	}
	return out
}

// CustomerCount returns the number of approved accounts.
func (s *ReportService) CustomerCount() int {
	return len(s.ledger.All())
}

// Stats collects the admin dashboard summary across every store.
func (s *ReportService) Stats() SystemStats {
	stats := SystemStats{
		TotalBalance:        s.TotalBalance(),
		Accounts:            len(s.ledger.All()),
		PendingRequests:     s.accountReqs.Len(),
		PendingAdmins:       s.adminReqs.Len(),
		PendingAppointments: s.appointments.PendingCount(),
		PendingLoans:        len(s.loans.Pending()),
	}
	for _, cred := range s.identity.All() {
		stats.Users++
		if cred.Locked {
			stats.LockedUsers++
		}
	}
	return stats
}
