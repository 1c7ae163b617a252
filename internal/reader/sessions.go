package reader

import (
	"sync"
	"time"
)

// Session ties a surface to a document for one client.
type Session struct {
	ID        string
	DocID     string
	Surface   *Surface
	CreatedAt time.Time

	lastSeen time.Time // guarded by the owning store's mutex
}

// SessionStore is a thread-safe in-memory session registry with TTL
// eviction. Sessions idle past the TTL are dropped by Cleanup.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
}

func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*Session),
		ttl:      ttl,
	}
}

func (s *SessionStore) Put(sess *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess.lastSeen = time.Now()
	s.sessions[sess.ID] = sess
}

// Get returns a session and marks it live for TTL purposes.
func (s *SessionStore) Get(id string) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.sessions[id]
	if sess != nil {
		sess.lastSeen = time.Now()
	}
	return sess
}

func (s *SessionStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// DeleteForDoc drops every session attached to a document, used when the
// document itself is deleted so stale section ids cannot be navigated.
// Returns the ids of the dropped sessions.
func (s *SessionStore) DeleteForDoc(docID string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var dropped []string
	for id, sess := range s.sessions {
		if sess.DocID == docID {
			delete(s.sessions, id)
			dropped = append(dropped, id)
		}
	}
	return dropped
}

// Cleanup removes idle sessions.
func (s *SessionStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, sess := range s.sessions {
		if now.Sub(sess.lastSeen) > s.ttl {
			delete(s.sessions, id)
		}
	}
}
