package orders

import (
	"log/slog"
	"sync"
)

// Store hands out one ViewModel per session. The view model lives for the
// session: logging out (or session expiry) evicts it, which discards the
// cached order list.
type Store struct {
	api API
	log *slog.Logger

	mu   sync.Mutex
	byID map[string]*ViewModel
}

func NewStore(api API, log *slog.Logger) *Store {
	return &Store{api: api, log: log, byID: map[string]*ViewModel{}}
}

func (s *Store) For(sessionID string, session TokenSource) *ViewModel {
	s.mu.Lock()
	defer s.mu.Unlock()
	if vm, ok := s.byID[sessionID]; ok {
		return vm
	}
	vm := NewViewModel(s.api, session, s.log)
	s.byID[sessionID] = vm
	return vm
}

func (s *Store) Evict(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.byID, sessionID)
}
