package store

import (
	"path/filepath"
	"sync"
)

// ReviewStack holds customer complaints/reviews as a LIFO stack, backed by
// reviews.txt. The file is written in stack order (first line = newest
// push), so load pushes bottom-up to reconstruct the original order.
type ReviewStack struct {
	mu    sync.RWMutex
	items []string // items[len-1] is the top of the stack
	path  string
}

// NewReviewStack loads reviews.txt from dir, if present.
func NewReviewStack(dir string) (*ReviewStack, error) {
	s := &ReviewStack{path: filepath.Join(dir, reviewsFile)}
	lines, err := readLines(s.path)
	if err != nil {
		return nil, err
	}
	for i := len(lines) - 1; i >= 0; i-- {
		s.items = append(s.items, lines[i])
	}
	return s, nil
}

// Push adds a review on top of the stack and flushes.
func (s *ReviewStack) Push(review string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, review)
	return s.flush()
}

// Pop removes and returns the most recent review. It reports false on an
// empty stack.
func (s *ReviewStack) Pop() (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.items) == 0 {
		return "", false, nil
	}
	top := s.items[len(s.items)-1]
	s.items = s.items[:len(s.items)-1]
	return top, true, s.flush()
}

// All returns the reviews newest-first.
func (s *ReviewStack) All() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.items))
	for i := len(s.items) - 1; i >= 0; i-- {
		out = append(out, s.items[i])
	}
	return out
}

// Len returns the number of reviews.
func (s *ReviewStack) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// reset drops every review. Only the wipe path calls it.
func (s *ReviewStack) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
}

// flush rewrites reviews.txt top-first. Callers must hold the write lock.
func (s *ReviewStack) flush() error {
	lines := make([]string, 0, len(s.items))
	for i := len(s.items) - 1; i >= 0; i-- {
		lines = append(lines, s.items[i])
	}
	return writeLines(s.path, lines)
}
