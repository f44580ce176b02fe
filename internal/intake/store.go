package intake

import (
	"sync"
)

// SessionStore holds at most one live wizard per homeowner. Sessions are
// memory-only; a process restart drops them, which matches the product's
// abandoned-draft behavior.
type SessionStore struct {
	mu         sync.RWMutex
	sessions   map[string]*Wizard
	maxPDFSize int64
}

func NewSessionStore(maxPDFSize int64) *SessionStore {
	return &SessionStore{
		sessions:   make(map[string]*Wizard),
		maxPDFSize: maxPDFSize,
	}
}

// Start returns the owner's existing wizard, or creates a fresh one. started
// is true when a new flow began.
func (s *SessionStore) Start(ownerID string) (w *Wizard, started bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if w, ok := s.sessions[ownerID]; ok {
		return w, false
	}
	w = NewWizard(ownerID, s.maxPDFSize)
	s.sessions[ownerID] = w
	return w, true
}

// Get returns the owner's wizard, or nil when no flow is in progress.
func (s *SessionStore) Get(ownerID string) *Wizard {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessions[ownerID]
}

// Remove discards the owner's wizard, typically after a successful submit.
func (s *SessionStore) Remove(ownerID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, ownerID)
}
