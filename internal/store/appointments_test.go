package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minibank/internal/models"
)

func newAppointment(username, service string) *models.Appointment {
	return &models.Appointment{
		Username: username,
		Service:  service,
		Date:     "2026-09-01",
		Time:     "14:00",
		Reason:   "new account",
		Status:   models.AppointmentStatusPending,
	}
}

func TestAppointmentStore_QueueOrder(t *testing.T) {
	s, err := NewAppointmentStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, s.Enqueue(newAppointment("alice", "Loan")))
	require.NoError(t, s.Enqueue(newAppointment("bob", "Consultation")))

	first, ok, err := s.Dequeue()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "alice", first.Username)

	second, ok, err := s.Dequeue()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "bob", second.Username)

	_, ok, err = s.Dequeue()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAppointmentStore_ApproveCopiesWithStatusRewritten(t *testing.T) {
	s, err := NewAppointmentStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, s.Enqueue(newAppointment("alice", "Loan")))
	appt, ok, err := s.Dequeue()
	require.NoError(t, err)
	require.True(t, ok)
	require.NoError(t, s.Approve(appt))

	approved := s.Approved()
	require.Len(t, approved, 1)
	assert.Equal(t, models.AppointmentStatusApproved, approved[0].Status)
	assert.Zero(t, s.PendingCount())
}

func TestAppointmentStore_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	s, err := NewAppointmentStore(dir)
	require.NoError(t, err)

	require.NoError(t, s.Enqueue(newAppointment("alice", "Loan")))
	appt, _, err := s.Dequeue()
	require.NoError(t, err)
	require.NoError(t, s.Approve(appt))
	require.NoError(t, s.Enqueue(newAppointment("bob", "Other")))

	reloaded, err := NewAppointmentStore(dir)
	require.NoError(t, err)
	pending := reloaded.Pending()
	require.Len(t, pending, 1)
	assert.Equal(t, "bob", pending[0].Username)
	assert.Equal(t, models.AppointmentStatusPending, pending[0].Status)

	approved := reloaded.Approved()
	require.Len(t, approved, 1)
	assert.Equal(t, "alice", approved[0].Username)
	assert.Equal(t, models.AppointmentStatusApproved, approved[0].Status)
}

func TestAppointmentStore_ForUsername(t *testing.T) {
	s, err := NewAppointmentStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, s.Enqueue(newAppointment("alice", "Loan")))
	require.NoError(t, s.Enqueue(newAppointment("bob", "Other")))

	pending, approved := s.ForUsername("alice")
	require.Len(t, pending, 1)
	assert.Equal(t, "Loan", pending[0].Service)
	assert.Empty(t, approved)
}
