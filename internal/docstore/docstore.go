// Package docstore is the in-memory registry of loaded documents. Documents
// arrive as already-fetched text from an upstream source; this service never
// edits or versions them.
package docstore

import (
	"crypto/sha256"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/dgallion1/regreader/internal/section"
)

// Document is an immutable source text plus its heading manifest. Every
// derived structure (sections, navigation index) is recomputed from Body.
type Document struct {
	ID        string               `json:"doc_id"`
	Title     string               `json:"title"`
	Body      string               `json:"-"`
	Headings  []section.HeadingRef `json:"headings"`
	CreatedAt time.Time            `json:"created_at"`
	UpdatedAt time.Time            `json:"updated_at"`
}

// Store is a thread-safe document registry with TTL eviction.
type Store struct {
	mu   sync.Mutex
	docs map[string]*Document
	ttl  time.Duration
}

func New(ttl time.Duration) *Store {
	return &Store{
		docs: make(map[string]*Document),
		ttl:  ttl,
	}
}

func (s *Store) Put(doc *Document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[doc.ID] = doc
}

func (s *Store) Get(id string) *Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.docs[id]
}

func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[id]; !ok {
		return false
	}
	delete(s.docs, id)
	return true
}

// List returns all documents, newest first.
func (s *Store) List() []*Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Document, 0, len(s.docs))
	for _, d := range s.docs {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// Cleanup removes documents idle past the TTL.
func (s *Store) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, doc := range s.docs {
		if now.Sub(doc.UpdatedAt) > s.ttl {
			delete(s.docs, id)
		}
	}
}

// ContentID derives a stable document id from the body text.
func ContentID(body string) string {
	h := sha256.Sum256([]byte(body))
	return fmt.Sprintf("%x", h[:])[:16]
}
