package app

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rimandagantarianto-gif/siarumahsakitrimanda/internal/core"
	"golang.org/x/sync/semaphore"
)

// Session is the per-user dashboard state. It lives only in memory.
type Session struct {
	ID                string    `json:"id"`
	Role              core.Role `json:"role"`
	Actor             string    `json:"actor"`
	SelectedPatientID string    `json:"selected_patient_id,omitempty"`
	LastNote          string    `json:"last_note,omitempty"`
	LastSummary       string    `json:"last_summary,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	LastSeen          time.Time `json:"last_seen"`
}

type sessionEntry struct {
	session Session
	// one summary in flight per session
	summary *semaphore.Weighted
}

// SessionStore is a thread-safe in-memory session store with sliding TTL expiry.
type SessionStore struct {
	mu           sync.Mutex
	sessions     map[string]*sessionEntry
	ttl          time.Duration
	defaultActor string
	now          func() time.Time
	newID        func() string
}

func NewSessionStore(ttl time.Duration, defaultActor string) *SessionStore {
	return &SessionStore{
		sessions:     make(map[string]*sessionEntry),
		ttl:          ttl,
		defaultActor: defaultActor,
		now:          time.Now,
		newID:        uuid.NewString,
	}
}

// Create starts a session with the default role and actor.
func (s *SessionStore) Create() Session {
	now := s.now()
	sess := Session{
		ID:        s.newID(),
		Role:      core.DefaultRole,
		Actor:     s.defaultActor,
		CreatedAt: now,
		LastSeen:  now,
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = &sessionEntry{session: sess, summary: semaphore.NewWeighted(1)}
	return sess
}

func (s *SessionStore) expired(e *sessionEntry) bool {
	return s.now().Sub(e.session.LastSeen) > s.ttl
}

// lookup returns a live entry and refreshes its LastSeen. Callers hold s.mu.
func (s *SessionStore) lookup(id string) (*sessionEntry, bool) {
	e, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	if s.expired(e) {
		delete(s.sessions, id)
		return nil, false
	}
	e.session.LastSeen = s.now()
	return e, true
}

// Get returns a copy of the session.
func (s *SessionStore) Get(id string) (Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.lookup(id)
	if !ok {
		return Session{}, false
	}
	return e.session, true
}

// Update applies fn to the stored session and returns the result.
func (s *SessionStore) Update(id string, fn func(*Session)) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.lookup(id)
	if !ok {
		return Session{}, ErrSessionNotFound
	}
	fn(&e.session)
	return e.session, nil
}

// TryBeginSummary claims the session's summary slot. The returned release func
// must be called once the summary finishes.
func (s *SessionStore) TryBeginSummary(id string) (func(), error) {
	s.mu.Lock()
	e, ok := s.lookup(id)
	s.mu.Unlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	if !e.summary.TryAcquire(1) {
		return nil, ErrSummaryInProgress
	}
	return func() { e.summary.Release(1) }, nil
}

// Len returns the number of stored sessions, expired ones included until purged.
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *SessionStore) purgeExpired() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, e := range s.sessions {
		if s.expired(e) {
			delete(s.sessions, id)
		}
	}
}

// StartPurge starts a background goroutine that evicts expired sessions every interval.
func (s *SessionStore) StartPurge(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.purgeExpired()
			}
		}
	}()
}
