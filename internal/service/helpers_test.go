package service

import (
	"io"
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"minibank/internal/models"
	"minibank/internal/store"
)

// testEnv wires real file-backed stores rooted at a temp directory so
// every test exercises the same persistence path production uses.
type testEnv struct {
	dir      string
	identity *store.IdentityStore
	ledger   *store.LedgerStore
	txlog    *store.TransactionLog
	loans    *store.LoanStore

	identitySvc *IdentityService
	ledgerSvc   *LedgerService
	loanSvc     *LoanService
	engine      *ApprovalEngine
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()
	log := discardLogger()

	identityStore, err := store.NewIdentityStore(dir)
	require.NoError(t, err)
	ledgerStore, err := store.NewLedgerStore(dir)
	require.NoError(t, err)
	loanStore, err := store.NewLoanStore(dir)
	require.NoError(t, err)
	appointments, err := store.NewAppointmentStore(dir)
	require.NoError(t, err)
	txlog := store.NewTransactionLog(dir)

	identitySvc, err := NewIdentityService(identityStore, ledgerStore, log)
	require.NoError(t, err)
	ledgerSvc := NewLedgerService(ledgerStore, txlog, log)
	loanSvc := NewLoanService(loanStore, ledgerStore, txlog, log)
	engine := NewApprovalEngine(
		store.NewRequestQueue(), store.NewRequestQueue(),
		appointments, ledgerStore, ledgerSvc, identitySvc, log,
	)

	return &testEnv{
		dir:         dir,
		identity:    identityStore,
		ledger:      ledgerStore,
		txlog:       txlog,
		loans:       loanStore,
		identitySvc: identitySvc,
		ledgerSvc:   ledgerSvc,
		loanSvc:     loanSvc,
		engine:      engine,
	}
}

// openAccount opens an account directly on the store, bypassing the
// approval queue, for tests that need a funded account up front.
func (e *testEnv) openAccount(t *testing.T, owner string, balance int64) int {
	t.Helper()
	number, err := e.ledger.Open(owner, "ID-"+owner, decimal.NewFromInt(balance), "555-0100", "1 Main St")
	require.NoError(t, err)
	return number
}

func (e *testEnv) registerCustomer(t *testing.T, username, password string) {
	t.Helper()
	_, err := e.identitySvc.Register(username, password, models.RoleCustomer)
	require.NoError(t, err)
}

// requireCode asserts err is a ServiceError carrying the given code.
func requireCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var svcErr *ServiceError
	require.ErrorAs(t, err, &svcErr)
	require.Equal(t, code, svcErr.Code)
}
