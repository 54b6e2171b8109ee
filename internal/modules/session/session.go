// Package session keeps the bearer token the backend issued at login. The
// token is opaque to us: we forward it on API calls and drop it on logout or
// when the backend answers 401. Sessions live in memory for the lifetime of
// the process.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type Session struct {
	ID        string
	Token     string
	Claims    Claims
	CreatedAt time.Time
	ExpiresAt time.Time
}

type Store struct {
	ttl time.Duration

	mu   sync.Mutex
	byID map[string]*entry
}

type entry struct {
	token     string
	claims    Claims
	createdAt time.Time
	expiresAt time.Time
}

func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Store{ttl: ttl, byID: map[string]*entry{}}
}

// Create registers a new session for a freshly issued token.
func (s *Store) Create(token string) *Session {
	now := time.Now()
	e := &entry{
		token:     token,
		claims:    SniffClaims(token),
		createdAt: now,
		expiresAt: now.Add(s.ttl),
	}
	id := uuid.NewString()

	s.mu.Lock()
	s.byID[id] = e
	s.mu.Unlock()

	return sessionOf(id, e)
}

// Get returns the live session for id, or nil when unknown or expired.
func (s *Store) Get(id string) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.byID[id]
	if !ok {
		return nil
	}
	if time.Now().After(e.expiresAt) {
		delete(s.byID, id)
		return nil
	}
	return sessionOf(id, e)
}

func (s *Store) Delete(id string) {
	s.mu.Lock()
	delete(s.byID, id)
	s.mu.Unlock()
}

func sessionOf(id string, e *entry) *Session {
	return &Session{
		ID:        id,
		Token:     e.token,
		Claims:    e.claims,
		CreatedAt: e.createdAt,
		ExpiresAt: e.expiresAt,
	}
}

// TokenSource adapts a session to the credential dependency the order view
// model takes. Token re-reads the store, so a session deleted by logout
// yields an empty credential instead of a stale one.
type TokenSource struct {
	store *Store
	id    string
}

func (s *Store) TokenSource(id string) TokenSource {
	return TokenSource{store: s, id: id}
}

func (ts TokenSource) Token() string {
	if ts.store == nil {
		return ""
	}
	ts.store.mu.Lock()
	defer ts.store.mu.Unlock()
	if e, ok := ts.store.byID[ts.id]; ok && time.Now().Before(e.expiresAt) {
		return e.token
	}
	return ""
}

func (ts TokenSource) Clear() {
	if ts.store != nil {
		ts.store.Delete(ts.id)
	}
}
