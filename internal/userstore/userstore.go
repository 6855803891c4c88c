// Package userstore defines the pluggable UserStore collaborator and ships
// an in-memory reference implementation for tests and the reference client.
package userstore

import (
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// User is an account record.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	Email        string
}

// Store is the interface the session/command layer depends on. The core
// never hashes passwords or persists users directly; it only calls through
// this interface.
type Store interface {
	// CreateAccount registers a new user, rejecting a username that already
	// exists (case-insensitive).
	CreateAccount(username, password, email string) (*User, error)

	// Authenticate verifies username/password and returns the matching user.
	Authenticate(username, password string) (*User, error)

	// GetByID looks up a user by id, for packet user-id authorization checks.
	GetByID(id string) (*User, error)
}

// ErrUsernameTaken is returned by CreateAccount for a case-insensitive
// username collision.
var ErrUsernameTaken = &storeError{"username already exists"}

// ErrInvalidCredentials is returned by Authenticate on any mismatch,
// deliberately not distinguishing "no such user" from "wrong password".
var ErrInvalidCredentials = &storeError{"invalid username or password"}

type storeError struct{ msg string }

func (e *storeError) Error() string { return e.msg }

// MemoryStore is an in-memory Store, the reference implementation used by
// tests and local/dev deployments. Credential verifiers are bcrypt hashes.
type MemoryStore struct {
	mu    sync.RWMutex
	byID  map[string]*User
	byLow map[string]string // lowercased username -> id
}

// NewMemoryStore constructs an empty in-memory user store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byID:  make(map[string]*User),
		byLow: make(map[string]string),
	}
}

// CreateAccount implements Store.
func (s *MemoryStore) CreateAccount(username, password, email string) (*User, error) {
	lower := strings.ToLower(username)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byLow[lower]; exists {
		return nil, ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: string(hash),
		Email:        email,
	}
	s.byID[u.ID] = u
	s.byLow[lower] = u.ID
	return &User{ID: u.ID, Username: u.Username, Email: u.Email}, nil
}

// Authenticate implements Store.
func (s *MemoryStore) Authenticate(username, password string) (*User, error) {
	lower := strings.ToLower(username)

	s.mu.RLock()
	id, ok := s.byLow[lower]
	var u *User
	if ok {
		u = s.byID[id]
	}
	s.mu.RUnlock()

	if !ok {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return &User{ID: u.ID, Username: u.Username, Email: u.Email}, nil
}

// GetByID implements Store.
func (s *MemoryStore) GetByID(id string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.byID[id]
	if !ok {
		return nil, ErrInvalidCredentials
	}
	return &User{ID: u.ID, Username: u.Username, Email: u.Email}, nil
}
