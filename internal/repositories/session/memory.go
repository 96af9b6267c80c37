package session

import (
	"context"
	"sync"
	"time"

	"github.com/SscSPs/expense_tracker/internal/core/domain"
	portssvc "github.com/SscSPs/expense_tracker/internal/core/ports/services"
)

// MemoryStore keeps sessions in a mutex-guarded map. Sessions are lost on restart,
// which forces every employee to log in again.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]domain.Session
	now      func() time.Time
}

var _ portssvc.SessionStore = (*MemoryStore)(nil)

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]domain.Session), now: time.Now}
}

// newMemoryStoreWithClock is used by tests to control expiry.
func newMemoryStoreWithClock(now func() time.Time) *MemoryStore {
	s := NewMemoryStore()
	s.now = now
	return s
}

func (s *MemoryStore) TryCreateSession(_ context.Context, employeeID, sessionID string, expiresAt time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.evictExpiredLocked(now)

	if existing, ok := s.sessions[employeeID]; ok && !existing.IsExpired(now) {
		return false, nil
	}
	s.sessions[employeeID] = domain.Session{EmployeeID: employeeID, SessionID: sessionID, ExpiresAt: expiresAt}
	return true, nil
}

// IsSessionValid looks up a single entry. Expired entries are swept on login.
func (s *MemoryStore) IsSessionValid(_ context.Context, employeeID, sessionID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.sessions[employeeID]
	if !ok || existing.IsExpired(s.now()) {
		return false, nil
	}
	return existing.SessionID == sessionID, nil
}

func (s *MemoryStore) RemoveSession(_ context.Context, employeeID string, sessionID *string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.sessions[employeeID]
	if !ok {
		return nil
	}
	if sessionID == nil || existing.SessionID == *sessionID {
		delete(s.sessions, employeeID)
	}
	return nil
}

// Len returns the number of stored sessions, expired ones included.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *MemoryStore) evictExpiredLocked(now time.Time) {
	for id, sess := range s.sessions {
		if sess.IsExpired(now) {
			delete(s.sessions, id)
		}
	}
}
