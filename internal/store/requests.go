package store

import (
	"strings"
	"sync"

	"minibank/internal/models"
)

// RequestQueue is a FIFO queue of pending account or admin-account
// requests. Requests are session-scoped: the queue is not persisted and
// empties on restart.
type RequestQueue struct {
	mu    sync.RWMutex
	items []*models.AccountRequest
}

// NewRequestQueue returns an empty queue.
func NewRequestQueue() *RequestQueue {
	return &RequestQueue{}
}

// Enqueue adds a request at the back.
func (q *RequestQueue) Enqueue(req *models.AccountRequest) {
	q.mu.Lock()
	defer q.mu.Unlock()
	r := *req
	q.items = append(q.items, &r)
}

// Peek returns the oldest undecided request without removing it.
func (q *RequestQueue) Peek() (*models.AccountRequest, bool) {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if len(q.items) == 0 {
		return nil, false
	}
	r := *q.items[0]
	return &r, true
}

// Dequeue removes and returns the oldest request.
func (q *RequestQueue) Dequeue() (*models.AccountRequest, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return nil, false
	}
	r := q.items[0]
	q.items = q.items[1:]
	return r, true
}

// reset drops every pending request. Only the wipe path calls it.
func (q *RequestQueue) reset() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = nil
}

// Len returns the number of pending requests.
func (q *RequestQueue) Len() int {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return len(q.items)
}

// All returns the pending requests in FIFO order.
func (q *RequestQueue) All() []models.AccountRequest {
	q.mu.RLock()
	defer q.mu.RUnlock()
	out := make([]models.AccountRequest, 0, len(q.items))
	for _, r := range q.items {
		out = append(out, *r)
	}
	return out
}

// ByUsername returns the pending request submitted by username, if any.
// Matching is case-insensitive.
func (q *RequestQueue) ByUsername(username string) (*models.AccountRequest, bool) {
	q.mu.RLock()
	defer q.mu.RUnlock()
	for _, r := range q.items {
		if strings.EqualFold(r.Username, username) {
			req := *r
			return &req, true
		}
	}
	return nil, false
}

// NationalIDExists reports whether nationalID appears on any pending
// request.
func (q *RequestQueue) NationalIDExists(nationalID string) bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	for _, r := range q.items {
		if r.NationalID == nationalID {
			return true
		}
	}
	return false
}
