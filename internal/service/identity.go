package service

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"log/slog"
	"strings"

	"minibank/internal/models"
	"minibank/internal/store"
)

const (
	// maxFailedAttempts is the number of consecutive bad passwords that
	// locks a credential.
	maxFailedAttempts = 3

	// BreakGlassUsername is the fixed administrative bootstrap identity.
	// It always exists and is exempt from the lockout side effect so the
	// system can never be left without a working admin. This weakens the
	// lockout guarantee for this one identity; kept deliberately.
	BreakGlassUsername = "q"

	breakGlassPassword = "q"

	// DefaultAdminPassword is assigned when an admin-account request is
	// approved. The new admin is expected to change it.
	DefaultAdminPassword = "admin123"
)

// IdentityService owns registration, authentication and the lockout rules.
type IdentityService struct {
	identity *store.IdentityStore
	ledger   *store.LedgerStore
	log      *slog.Logger
}

// NewIdentityService creates an IdentityService and ensures the bootstrap
// admin exists.
func NewIdentityService(identity *store.IdentityStore, ledger *store.LedgerStore, log *slog.Logger) (*IdentityService, error) {
	s := &IdentityService{identity: identity, ledger: ledger, log: log}
	if err := s.ensureBreakGlass(); err != nil {
		return nil, err
	}
	return s, nil
}

// HashPassword returns the hex-encoded SHA-256 digest of password. The
// plaintext is never stored.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

func (s *IdentityService) ensureBreakGlass() error {
	if s.identity.Exists(BreakGlassUsername) {
		return nil
	}
	err := s.identity.Create(&models.Credential{
		Username:     BreakGlassUsername,
		PasswordHash: HashPassword(breakGlassPassword),
		Role:         models.RoleAdmin,
	})
	if err != nil && !errors.Is(err, models.ErrDuplicateUsername) {
		return &ServiceError{Code: ErrCodePersistence, Message: "failed to create bootstrap admin", Err: err}
	}
	s.log.Info("bootstrap admin created", "username", BreakGlassUsername)
	return nil
}

// Register creates a credential with a hashed password. Usernames are
// unique across all roles.
func (s *IdentityService) Register(username, password string, role models.Role) (*models.Credential, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return nil, &ServiceError{Code: ErrCodeEmptyField, Message: "username and password are required"}
	}
	cred := &models.Credential{
		Username:     username,
		PasswordHash: HashPassword(password),
		Role:         role,
	}
	if err := s.identity.Create(cred); err != nil {
		if errors.Is(err, models.ErrDuplicateUsername) {
			return nil, &ServiceError{Code: ErrCodeDuplicateUsername, Message: "username already exists"}
		}
		return nil, &ServiceError{Code: ErrCodePersistence, Message: "failed to save credential", Err: err}
	}
	s.log.Info("credential registered", "username", username, "role", role)
	return cred, nil
}

// Authenticate checks a username/password pair for the given role. A wrong
// password increments the failed-attempt counter and locks the credential
// at the third miss; a locked credential rejects even correct passwords
// until an admin unlocks it. The bootstrap admin never locks.
func (s *IdentityService) Authenticate(username, password string, role models.Role) (*models.Credential, error) {
	cred, err := s.identity.Get(username)
	if err != nil || cred.Role != role {
		return nil, &ServiceError{Code: ErrCodeNoSuchUser, Message: "no such user with this role"}
	}
	if cred.Locked {
		return nil, &ServiceError{Code: ErrCodeAccountLocked, Message: "account is locked, contact an admin"}
	}
	if cred.PasswordHash == HashPassword(password) {
		if cred.FailedAttempts != 0 {
			cred.FailedAttempts = 0
			if err := s.identity.Update(cred); err != nil {
				return nil, &ServiceError{Code: ErrCodePersistence, Message: "failed to save credential", Err: err}
			}
		}
		return cred, nil
	}

	if cred.Username == BreakGlassUsername && cred.Role == models.RoleAdmin {
		// Break-glass exemption: report failure without counting it.
		return nil, &ServiceError{Code: ErrCodeBadPassword, Message: "invalid password"}
	}

	cred.FailedAttempts++
	if cred.FailedAttempts >= maxFailedAttempts {
		cred.Locked = true
	}
	if err := s.identity.Update(cred); err != nil {
		return nil, &ServiceError{Code: ErrCodePersistence, Message: "failed to save credential", Err: err}
	}
	if cred.Locked {
		s.log.Warn("credential locked after failed attempts", "username", username)
		return nil, &ServiceError{Code: ErrCodeAccountLocked, Message: "account locked after 3 failed attempts"}
	}
	return nil, &ServiceError{Code: ErrCodeBadPassword, Message: "invalid password"}
}

// AuthenticateByNationalID logs a customer in with their national ID as the
// lookup key instead of the username.
func (s *IdentityService) AuthenticateByNationalID(nationalID, password string) (*models.Credential, error) {
	acc, err := s.ledger.GetByNationalID(nationalID)
	if err != nil {
		return nil, &ServiceError{Code: ErrCodeNoSuchUser, Message: "no account with this national id"}
	}
	return s.Authenticate(acc.Owner, password, models.RoleCustomer)
}

// Unlock clears the lock flag and resets the failed-attempt counter.
func (s *IdentityService) Unlock(username string) error {
	cred, err := s.identity.Get(username)
	if err != nil {
		return &ServiceError{Code: ErrCodeNoSuchUser, Message: "no such user"}
	}
	cred.Locked = false
	cred.FailedAttempts = 0
	if err := s.identity.Update(cred); err != nil {
		return &ServiceError{Code: ErrCodePersistence, Message: "failed to save credential", Err: err}
	}
	s.log.Info("credential unlocked", "username", username)
	return nil
}

// ChangePassword replaces the password after verifying the old one.
func (s *IdentityService) ChangePassword(username, oldPassword, newPassword string) error {
	cred, err := s.identity.Get(username)
	if err != nil {
		return &ServiceError{Code: ErrCodeNoSuchUser, Message: "no such user"}
	}
	if cred.PasswordHash != HashPassword(oldPassword) {
		return &ServiceError{Code: ErrCodeWrongOldPassword, Message: "old password does not match"}
	}
	if newPassword == "" {
		return &ServiceError{Code: ErrCodeEmptyField, Message: "new password is required"}
	}
	cred.PasswordHash = HashPassword(newPassword)
	if err := s.identity.Update(cred); err != nil {
		return &ServiceError{Code: ErrCodePersistence, Message: "failed to save credential", Err: err}
	}
	s.log.Info("password changed", "username", username)
	return nil
}

// Exists reports whether any credential, in any role, uses username.
func (s *IdentityService) Exists(username string) bool {
	return s.identity.Exists(username)
}

// LockedUsernames returns the usernames of all locked credentials.
func (s *IdentityService) LockedUsernames() []string {
	var out []string
	for _, cred := range s.identity.All() {
		if cred.Locked {
			out = append(out, cred.Username)
		}
	}
	return out
}
