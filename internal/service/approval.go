package service

import (
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"minibank/internal/models"
	"minibank/internal/store"
)

// Verdict is an admin decision on the head of a request queue.
type Verdict int

const (
	VerdictApprove Verdict = iota
	VerdictReject
)

// ApprovalEngine turns admin verdicts on pending requests into ledger and
// identity mutations. Requests are presented strictly oldest-first; the
// engine never reorders.
//
// The two queue kinds handle an invalid verdict differently: an account or
// admin request stays at the front until it is decided, while an
// appointment request is re-enqueued at the back (its slot is lost).
type ApprovalEngine struct {
	accountReqs  *store.RequestQueue
	adminReqs    *store.RequestQueue
	appointments *store.AppointmentStore
	ledger       *LedgerService
	identity     *IdentityService
	ledgerStore  *store.LedgerStore
	log          *slog.Logger
}

// NewApprovalEngine creates an ApprovalEngine over the request queues and
// the stores its approvals mutate.
func NewApprovalEngine(
	accountReqs, adminReqs *store.RequestQueue,
	appointments *store.AppointmentStore,
	ledgerStore *store.LedgerStore,
	ledger *LedgerService,
	identity *IdentityService,
	log *slog.Logger,
) *ApprovalEngine {
	return &ApprovalEngine{
		accountReqs:  accountReqs,
		adminReqs:    adminReqs,
		appointments: appointments,
		ledger:       ledger,
		identity:     identity,
		ledgerStore:  ledgerStore,
		log:          log,
	}
}

// SubmitAccountRequest queues an account-opening application. The national
// ID must be unused across approved accounts and every pending request,
// since a second applicant can submit before the first is decided; a
// customer may hold only one pending request.
func (e *ApprovalEngine) SubmitAccountRequest(username, fullName, nationalID string, initialDeposit decimal.Decimal, phone, address string) error {
	if strings.TrimSpace(username) == "" || strings.TrimSpace(fullName) == "" || strings.TrimSpace(nationalID) == "" {
		return &ServiceError{Code: ErrCodeEmptyField, Message: "username, full name and national id are required"}
	}
	if e.ledgerStore.NationalIDExists(nationalID) || e.accountReqs.NationalIDExists(nationalID) || e.adminReqs.NationalIDExists(nationalID) {
		return &ServiceError{Code: ErrCodeDuplicateNationalID, Message: "national id already registered or pending"}
	}
	if _, ok := e.accountReqs.ByUsername(username); ok {
		return &ServiceError{Code: ErrCodePendingRequest, Message: "a request for this user is already pending"}
	}
	e.accountReqs.Enqueue(&models.AccountRequest{
		Username:       username,
		FullName:       fullName,
		NationalID:     nationalID,
		InitialDeposit: initialDeposit,
		Phone:          phone,
		Address:        address,
		Role:           models.RoleCustomer,
	})
	e.log.Info("account request submitted", "username", username)
	return nil
}

// SubmitAdminRequest queues an admin-account application. Approval will
// register the credential with the default admin password.
func (e *ApprovalEngine) SubmitAdminRequest(username, fullName, nationalID, phone, address string) error {
	if strings.TrimSpace(username) == "" || strings.TrimSpace(fullName) == "" {
		return &ServiceError{Code: ErrCodeEmptyField, Message: "username and full name are required"}
	}
	if e.identity.Exists(username) {
		return &ServiceError{Code: ErrCodeDuplicateUsername, Message: "username already exists"}
	}
	if _, ok := e.adminReqs.ByUsername(username); ok {
		return &ServiceError{Code: ErrCodePendingRequest, Message: "a request for this user is already pending"}
	}
	e.adminReqs.Enqueue(&models.AccountRequest{
		Username:   username,
		FullName:   fullName,
		NationalID: nationalID,
		Phone:      phone,
		Address:    address,
		Role:       models.RoleAdmin,
	})
	e.log.Info("admin request submitted", "username", username)
	return nil
}

// NextAccountRequest returns the oldest undecided account request without
// consuming it.
func (e *ApprovalEngine) NextAccountRequest() (*models.AccountRequest, bool) {
	return e.accountReqs.Peek()
}

// DecideAccountRequest settles the head of the account-request queue.
// Approval opens the account and returns its new number; rejection drops
// the request. The head is only consumed once decided.
func (e *ApprovalEngine) DecideAccountRequest(verdict Verdict) (int, error) {
	req, ok := e.accountReqs.Peek()
	if !ok {
		return 0, &ServiceError{Code: ErrCodeInternalError, Message: "no pending account requests"}
	}
	switch verdict {
	case VerdictApprove:
		number, err := e.ledgerStore.Open(req.Username, req.NationalID, req.InitialDeposit, req.Phone, req.Address)
		if err != nil {
			return 0, &ServiceError{Code: ErrCodePersistence, Message: "failed to save account", Err: err}
		}
		e.accountReqs.Dequeue()
		e.log.Info("account request approved", "username", req.Username, "account", number)
		return number, nil
	case VerdictReject:
		e.accountReqs.Dequeue()
		e.log.Info("account request rejected", "username", req.Username)
		return 0, nil
	default:
		return 0, &ServiceError{Code: ErrCodeInvalidVerdict, Message: "request must be approved or rejected"}
	}
}

// NextAdminRequest returns the oldest undecided admin request without
// consuming it.
func (e *ApprovalEngine) NextAdminRequest() (*models.AccountRequest, bool) {
	return e.adminReqs.Peek()
}

// DecideAdminRequest settles the head of the admin-request queue. Approval
// registers an Admin credential with the default password.
func (e *ApprovalEngine) DecideAdminRequest(verdict Verdict) error {
	req, ok := e.adminReqs.Peek()
	if !ok {
		return &ServiceError{Code: ErrCodeInternalError, Message: "no pending admin requests"}
	}
	switch verdict {
	case VerdictApprove:
		if _, err := e.identity.Register(req.Username, DefaultAdminPassword, models.RoleAdmin); err != nil {
			return err
		}
		e.adminReqs.Dequeue()
		e.log.Info("admin request approved", "username", req.Username)
		return nil
	case VerdictReject:
		e.adminReqs.Dequeue()
		e.log.Info("admin request rejected", "username", req.Username)
		return nil
	default:
		return &ServiceError{Code: ErrCodeInvalidVerdict, Message: "request must be approved or rejected"}
	}
}

// BookAppointment queues an appointment request for admin approval.
func (e *ApprovalEngine) BookAppointment(username, service, date, timeOfDay, reason string) error {
	if strings.TrimSpace(service) == "" || strings.TrimSpace(date) == "" || strings.TrimSpace(timeOfDay) == "" {
		return &ServiceError{Code: ErrCodeEmptyField, Message: "service, date and time are required"}
	}
	err := e.appointments.Enqueue(&models.Appointment{
		Username: username,
		Service:  service,
		Date:     date,
		Time:     timeOfDay,
		Reason:   reason,
		Status:   models.AppointmentStatusPending,
	})
	if err != nil {
		return &ServiceError{Code: ErrCodePersistence, Message: "failed to save appointment request", Err: err}
	}
	e.log.Info("appointment requested", "username", username, "service", service)
	return nil
}

// NextAppointment returns the oldest pending appointment without consuming
// it.
func (e *ApprovalEngine) NextAppointment() (*models.Appointment, bool) {
	return e.appointments.Peek()
}

// DecideAppointment settles the head of the appointment queue. Approval
// copies the record into the approved list with its status rewritten;
// rejection drops it; any other verdict re-enqueues it at the back, so the
// remaining queue keeps its order but the skipped item loses its slot.
func (e *ApprovalEngine) DecideAppointment(verdict Verdict) error {
	appt, ok, err := e.appointments.Dequeue()
	if err != nil {
		return &ServiceError{Code: ErrCodePersistence, Message: "failed to save appointment queue", Err: err}
	}
	if !ok {
		return &ServiceError{Code: ErrCodeInternalError, Message: "no pending appointments"}
	}
	switch verdict {
	case VerdictApprove:
		if err := e.appointments.Approve(appt); err != nil {
			return &ServiceError{Code: ErrCodePersistence, Message: "failed to save approved appointments", Err: err}
		}
		e.log.Info("appointment approved", "username", appt.Username, "service", appt.Service)
		return nil
	case VerdictReject:
		e.log.Info("appointment rejected", "username", appt.Username, "service", appt.Service)
		return nil
	default:
		if err := e.appointments.Enqueue(appt); err != nil {
			return &ServiceError{Code: ErrCodePersistence, Message: "failed to save appointment queue", Err: err}
		}
		return &ServiceError{Code: ErrCodeInvalidVerdict, Message: "request must be approved or rejected"}
	}
}

// PendingRequestFor returns username's pending account request, if any.
func (e *ApprovalEngine) PendingRequestFor(username string) (*models.AccountRequest, bool) {
	return e.accountReqs.ByUsername(username)
}

// AccountRequests returns the pending account requests in FIFO order.
func (e *ApprovalEngine) AccountRequests() []models.AccountRequest {
	return e.accountReqs.All()
}

// AdminRequests returns the pending admin requests in FIFO order.
func (e *ApprovalEngine) AdminRequests() []models.AccountRequest {
	return e.adminReqs.All()
}

// AppointmentsFor returns username's pending and approved appointments.
func (e *ApprovalEngine) AppointmentsFor(username string) (pending, approved []models.Appointment) {
	return e.appointments.ForUsername(username)
}

// ApprovedAppointments returns every approved appointment.
func (e *ApprovalEngine) ApprovedAppointments() []models.Appointment {
	return e.appointments.Approved()
}

// PendingAppointments returns the queued appointment requests in FIFO
// order.
func (e *ApprovalEngine) PendingAppointments() []models.Appointment {
	return e.appointments.Pending()
}
