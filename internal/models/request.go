package models

import "github.com/shopspring/decimal"

// AccountRequest is a pending application for a new account or a new admin
// identity, held in a FIFO queue until an admin decides it. Requests are
// session-scoped, never persisted, and addressed only by queue position or
// username, so they carry no separate identifier.
type AccountRequest struct {
	Username       string
	FullName       string
	NationalID     string
	Phone          string
	Address        string
	Role           Role
	InitialDeposit decimal.Decimal
}

// AppointmentStatus is Pending while the request sits in the queue and
// Approved once copied to the approved list.
type AppointmentStatus string

const (
	AppointmentStatusPending  AppointmentStatus = "Pending"
	AppointmentStatusApproved AppointmentStatus = "Approved"
)

// Appointment is a booking request for a bank service.
type Appointment struct {
	Username string
	Service  string
	Date     string
	Time     string
	Reason   string
	Status   AppointmentStatus
}

// Feedback is a free-form note about a bank service, visible to admins.
type Feedback struct {
	Username string
	Service  string
	Text     string
	When     string
}
