package store

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"minibank/internal/models"
)

// FeedbackStore holds service feedback entries in submission order, backed
// by service_feedback.txt with one `username|service|text|timestamp` line
// per entry.
type FeedbackStore struct {
	mu    sync.RWMutex
	items []models.Feedback
	path  string
}

// NewFeedbackStore loads service_feedback.txt from dir, if present.
func NewFeedbackStore(dir string) (*FeedbackStore, error) {
	s := &FeedbackStore{path: filepath.Join(dir, serviceFeedbackFile)}
	lines, err := readLines(s.path)
	if err != nil {
		return nil, err
	}
	for _, line := range lines {
		parts := strings.SplitN(line, "|", 4)
		if len(parts) < 4 {
			continue
		}
		s.items = append(s.items, models.Feedback{
			Username: parts[0],
			Service:  parts[1],
			Text:     parts[2],
			When:     parts[3],
		})
	}
	return s, nil
}

// Add appends a feedback entry and flushes.
func (s *FeedbackStore) Add(fb models.Feedback) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, fb)
	return s.flush()
}

// All returns every feedback entry in submission order.
func (s *FeedbackStore) All() []models.Feedback {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Feedback, len(s.items))
	copy(out, s.items)
	return out
}

// reset drops every entry. Only the wipe path calls it.
func (s *FeedbackStore) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
}

// flush rewrites service_feedback.txt. Callers must hold the write lock.
func (s *FeedbackStore) flush() error {
	lines := make([]string, 0, len(s.items))
	for _, fb := range s.items {
		lines = append(lines, fmt.Sprintf("%s|%s|%s|%s", fb.Username, fb.Service, fb.Text, fb.When))
	}
	return writeLines(s.path, lines)
}
