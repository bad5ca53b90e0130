package chat

import (
	"context"
	"sync"
	"time"
)

type memorySession struct {
	entries []Entry
	touched time.Time
}

// MemoryStore keeps history in process memory. A session expires ttl after
// its last append, like the Redis list TTL; expired sessions are dropped
// lazily on reads and swept at most once per ttl on appends.
type MemoryStore struct {
	mu        sync.Mutex
	sessions  map[string]*memorySession
	ttl       time.Duration
	lastSweep time.Time
	now       func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*memorySession),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (s *MemoryStore) expired(sess *memorySession, now time.Time) bool {
	return s.ttl > 0 && now.Sub(sess.touched) >= s.ttl
}

func (s *MemoryStore) sweep(now time.Time) {
	if s.ttl <= 0 || now.Sub(s.lastSweep) < s.ttl {
		return
	}
	for id, sess := range s.sessions {
		if s.expired(sess, now) {
			delete(s.sessions, id)
		}
	}
	s.lastSweep = now
}

func (s *MemoryStore) Append(_ context.Context, sessionID string, entries ...Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.sweep(now)

	sess, ok := s.sessions[sessionID]
	if !ok || s.expired(sess, now) {
		sess = &memorySession{}
		s.sessions[sessionID] = sess
	}
	sess.entries = append(sess.entries, entries...)
	sess.touched = now
	return nil
}

func (s *MemoryStore) History(_ context.Context, sessionID string) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return []Entry{}, nil
	}
	if s.expired(sess, s.now()) {
		delete(s.sessions, sessionID)
		return []Entry{}, nil
	}
	out := make([]Entry, len(sess.entries))
	copy(out, sess.entries)
	return out, nil
}

func (s *MemoryStore) Clear(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}

// Len reports how many sessions are currently held.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
