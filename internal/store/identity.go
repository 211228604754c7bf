package store

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"minibank/internal/models"
)

// IdentityStore holds login credentials, backed by users.txt with one
// `username,passwordHashHex,role` line per credential.
type IdentityStore struct {
	mu    sync.RWMutex
	creds map[string]*models.Credential
	path  string
}

// NewIdentityStore loads users.txt from dir, if present.
func NewIdentityStore(dir string) (*IdentityStore, error) {
	s := &IdentityStore{
		creds: make(map[string]*models.Credential),
		path:  filepath.Join(dir, usersFile),
	}
	lines, err := readLines(s.path)
	if err != nil {
		return nil, err
	}
	for _, line := range lines {
		parts := strings.Split(line, ",")
		if len(parts) != 3 {
			continue
		}
		s.creds[parts[0]] = &models.Credential{
			Username:     parts[0],
			PasswordHash: parts[1],
			Role:         models.Role(parts[2]),
		}
	}
	return s, nil
}

// Get returns the credential for username, or models.ErrNotFound.
func (s *IdentityStore) Get(username string) (*models.Credential, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cred, ok := s.creds[username]
	if !ok {
		return nil, fmt.Errorf("credential %q: %w", username, models.ErrNotFound)
	}
	c := *cred
	return &c, nil
}

// Exists reports whether a credential with username exists, in any role.
func (s *IdentityStore) Exists(username string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.creds[username]
	return ok
}

// Create inserts a new credential and flushes the store. Usernames are
// unique across roles.
func (s *IdentityStore) Create(cred *models.Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.creds[cred.Username]; ok {
		return fmt.Errorf("credential %q: %w", cred.Username, models.ErrDuplicateUsername)
	}
	c := *cred
	s.creds[cred.Username] = &c
	return s.flush()
}

// Update overwrites an existing credential and flushes the store.
func (s *IdentityStore) Update(cred *models.Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.creds[cred.Username]; !ok {
		return fmt.Errorf("credential %q: %w", cred.Username, models.ErrNotFound)
	}
	c := *cred
	s.creds[cred.Username] = &c
	return s.flush()
}

// All returns every credential, ordered by username.
func (s *IdentityStore) All() []models.Credential {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Credential, 0, len(s.creds))
	for _, cred := range s.creds {
		out = append(out, *cred)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out
}

// reset drops every credential. Only the wipe path calls it.
func (s *IdentityStore) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds = make(map[string]*models.Credential)
}

// flush rewrites users.txt. Callers must hold the write lock.
func (s *IdentityStore) flush() error {
	lines := make([]string, 0, len(s.creds))
	for _, cred := range s.creds {
		lines = append(lines, fmt.Sprintf("%s,%s,%s", cred.Username, cred.PasswordHash, cred.Role))
	}
	sort.Strings(lines)
	return writeLines(s.path, lines)
}
