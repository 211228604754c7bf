package models

// Role classifies a login identity.
type Role string

const (
	RoleAdmin    Role = "Admin"
	RoleCustomer Role = "Customer"
)

// Credential is a login identity. Lock state and the failed-attempt counter
// are runtime-only: they are not persisted and reset on load.
type Credential struct {
	Username       string
	PasswordHash   string
	Role           Role
	FailedAttempts int
	Locked         bool
}
