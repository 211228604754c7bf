package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minibank/internal/models"
)

func TestIdentityService_RegisterAndAuthenticate(t *testing.T) {
	env := newTestEnv(t)

	env.registerCustomer(t, "alice", "secret")

	cred, err := env.identitySvc.Authenticate("alice", "secret", models.RoleCustomer)
	require.NoError(t, err)
	assert.Equal(t, "alice", cred.Username)
	assert.Equal(t, models.RoleCustomer, cred.Role)
}

func TestIdentityService_DuplicateUsernameAcrossRoles(t *testing.T) {
	env := newTestEnv(t)

	env.registerCustomer(t, "alice", "secret")
	_, err := env.identitySvc.Register("alice", "other", models.RoleAdmin)
	requireCode(t, err, ErrCodeDuplicateUsername)
}

func TestIdentityService_WrongRoleRejected(t *testing.T) {
	env := newTestEnv(t)

	env.registerCustomer(t, "alice", "secret")
	_, err := env.identitySvc.Authenticate("alice", "secret", models.RoleAdmin)
	requireCode(t, err, ErrCodeNoSuchUser)
}

func TestIdentityService_LockoutAfterThreeFailures(t *testing.T) {
	env := newTestEnv(t)
	env.registerCustomer(t, "alice", "secret")

	_, err := env.identitySvc.Authenticate("alice", "wrong", models.RoleCustomer)
	requireCode(t, err, ErrCodeBadPassword)
	_, err = env.identitySvc.Authenticate("alice", "wrong", models.RoleCustomer)
	requireCode(t, err, ErrCodeBadPassword)

	// Third miss flips the lock.
	_, err = env.identitySvc.Authenticate("alice", "wrong", models.RoleCustomer)
	requireCode(t, err, ErrCodeAccountLocked)

	// Even the correct password is refused while locked.
	_, err = env.identitySvc.Authenticate("alice", "secret", models.RoleCustomer)
	requireCode(t, err, ErrCodeAccountLocked)

	assert.Equal(t, []string{"alice"}, env.identitySvc.LockedUsernames())

	require.NoError(t, env.identitySvc.Unlock("alice"))
	cred, err := env.identitySvc.Authenticate("alice", "secret", models.RoleCustomer)
	require.NoError(t, err)
	assert.Zero(t, cred.FailedAttempts)
	assert.Empty(t, env.identitySvc.LockedUsernames())
}

func TestIdentityService_SuccessResetsFailedAttempts(t *testing.T) {
	env := newTestEnv(t)
	env.registerCustomer(t, "alice", "secret")

	_, err := env.identitySvc.Authenticate("alice", "wrong", models.RoleCustomer)
	requireCode(t, err, ErrCodeBadPassword)
	_, err = env.identitySvc.Authenticate("alice", "wrong", models.RoleCustomer)
	requireCode(t, err, ErrCodeBadPassword)

	_, err = env.identitySvc.Authenticate("alice", "secret", models.RoleCustomer)
	require.NoError(t, err)

	// Counter was reset, so two more misses do not lock.
	_, err = env.identitySvc.Authenticate("alice", "wrong", models.RoleCustomer)
	requireCode(t, err, ErrCodeBadPassword)
	_, err = env.identitySvc.Authenticate("alice", "wrong", models.RoleCustomer)
	requireCode(t, err, ErrCodeBadPassword)
}

func TestIdentityService_BreakGlassNeverLocks(t *testing.T) {
	env := newTestEnv(t)

	for range 5 {
		_, err := env.identitySvc.Authenticate(BreakGlassUsername, "wrong", models.RoleAdmin)
		requireCode(t, err, ErrCodeBadPassword)
	}

	cred, err := env.identitySvc.Authenticate(BreakGlassUsername, "q", models.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, cred.Role)
}

func TestIdentityService_AuthenticateByNationalID(t *testing.T) {
	env := newTestEnv(t)
	env.registerCustomer(t, "alice", "secret")
	env.openAccount(t, "alice", 500)

	cred, err := env.identitySvc.AuthenticateByNationalID("ID-alice", "secret")
	require.NoError(t, err)
	assert.Equal(t, "alice", cred.Username)

	_, err = env.identitySvc.AuthenticateByNationalID("ID-nobody", "secret")
	requireCode(t, err, ErrCodeNoSuchUser)
}

func TestIdentityService_ChangePassword(t *testing.T) {
	env := newTestEnv(t)
	env.registerCustomer(t, "alice", "secret")

	err := env.identitySvc.ChangePassword("alice", "wrong", "next")
	requireCode(t, err, ErrCodeWrongOldPassword)

	require.NoError(t, env.identitySvc.ChangePassword("alice", "secret", "next"))

	_, err = env.identitySvc.Authenticate("alice", "secret", models.RoleCustomer)
	requireCode(t, err, ErrCodeBadPassword)
	_, err = env.identitySvc.Authenticate("alice", "next", models.RoleCustomer)
	require.NoError(t, err)
}

func TestIdentityService_EmptyFieldsRejected(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.identitySvc.Register("", "secret", models.RoleCustomer)
	requireCode(t, err, ErrCodeEmptyField)
	_, err = env.identitySvc.Register("alice", "", models.RoleCustomer)
	requireCode(t, err, ErrCodeEmptyField)
}
