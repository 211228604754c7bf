package store

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"minibank/internal/models"
)

// AppointmentStore holds the pending appointment queue and the approved
// list, backed by appointments_pending.txt and appointments_approved.txt
// with one `username|service|date|time|reason|status` line per entry.
type AppointmentStore struct {
	mu           sync.RWMutex
	pending      []*models.Appointment
	approved     []*models.Appointment
	pendingPath  string
	approvedPath string
}

// NewAppointmentStore loads both appointment files from dir, if present.
func NewAppointmentStore(dir string) (*AppointmentStore, error) {
	s := &AppointmentStore{
		pendingPath:  filepath.Join(dir, appointmentsPendingFile),
		approvedPath: filepath.Join(dir, appointmentsApprovedFile),
	}
	var err error
	if s.pending, err = loadAppointments(s.pendingPath); err != nil {
		return nil, err
	}
	if s.approved, err = loadAppointments(s.approvedPath); err != nil {
		return nil, err
	}
	return s, nil
}

func loadAppointments(path string) ([]*models.Appointment, error) {
	lines, err := readLines(path)
	if err != nil {
		return nil, err
	}
	var out []*models.Appointment
	for _, line := range lines {
		parts := strings.Split(line, "|")
		if len(parts) < 6 {
			continue
		}
		out = append(out, &models.Appointment{
			Username: parts[0],
			Service:  parts[1],
			Date:     parts[2],
			Time:     parts[3],
			Reason:   parts[4],
			Status:   models.AppointmentStatus(parts[5]),
		})
	}
	return out, nil
}

// Enqueue adds a pending appointment at the back of the queue and flushes.
func (s *AppointmentStore) Enqueue(appt *models.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a := *appt
	s.pending = append(s.pending, &a)
	return s.flushPending()
}

// Dequeue removes and returns the oldest pending appointment. The queue
// file is rewritten by the caller's follow-up mutation (Approve, or a
// re-Enqueue on an invalid verdict), so Dequeue flushes immediately to keep
// the file truthful even when the request is simply dropped.
func (s *AppointmentStore) Dequeue() (*models.Appointment, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.pending) == 0 {
		return nil, false, nil
	}
	a := s.pending[0]
	s.pending = s.pending[1:]
	return a, true, s.flushPending()
}

// Peek returns the oldest pending appointment without removing it.
func (s *AppointmentStore) Peek() (*models.Appointment, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.pending) == 0 {
		return nil, false
	}
	a := *s.pending[0]
	return &a, true
}

// Approve copies appt into the approved list with its status rewritten and
// flushes the approved file.
func (s *AppointmentStore) Approve(appt *models.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a := *appt
	a.Status = models.AppointmentStatusApproved
	s.approved = append(s.approved, &a)
	return s.flushApproved()
}

// PendingCount returns the number of queued requests.
func (s *AppointmentStore) PendingCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.pending)
}

// Pending returns the queued requests in FIFO order.
func (s *AppointmentStore) Pending() []models.Appointment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyAppointments(s.pending)
}

// Approved returns the approved appointments in approval order.
func (s *AppointmentStore) Approved() []models.Appointment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyAppointments(s.approved)
}

// ForUsername returns username's pending and approved appointments.
func (s *AppointmentStore) ForUsername(username string) (pending, approved []models.Appointment) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.pending {
		if a.Username == username {
			pending = append(pending, *a)
		}
	}
	for _, a := range s.approved {
		if a.Username == username {
			approved = append(approved, *a)
		}
	}
	return pending, approved
}

func copyAppointments(in []*models.Appointment) []models.Appointment {
	out := make([]models.Appointment, 0, len(in))
	for _, a := range in {
		out = append(out, *a)
	}
	return out
}

// reset drops both lists. Only the wipe path calls it.
func (s *AppointmentStore) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = nil
	s.approved = nil
}

func (s *AppointmentStore) flushPending() error {
	return writeLines(s.pendingPath, appointmentLines(s.pending))
}

func (s *AppointmentStore) flushApproved() error {
	return writeLines(s.approvedPath, appointmentLines(s.approved))
}

func appointmentLines(appts []*models.Appointment) []string {
	lines := make([]string, 0, len(appts))
	for _, a := range appts {
		lines = append(lines, fmt.Sprintf("%s|%s|%s|%s|%s|%s",
			a.Username, a.Service, a.Date, a.Time, a.Reason, a.Status))
	}
	return lines
}
