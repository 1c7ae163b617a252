package docstore

import (
	"testing"
	"time"
)

func TestStorePutGetDelete(t *testing.T) {
	s := New(time.Hour)
	now := time.Now()
	s.Put(&Document{ID: "d1", Title: "One", Body: "## A\nx", CreatedAt: now, UpdatedAt: now})

	doc := s.Get("d1")
	if doc == nil || doc.Title != "One" {
		t.Fatalf("unexpected document: %+v", doc)
	}
	if s.Get("missing") != nil {
		t.Error("expected nil for unknown id")
	}
	if !s.Delete("d1") {
		t.Error("expected delete to report success")
	}
	if s.Delete("d1") {
		t.Error("expected second delete to report failure")
	}
}

func TestStoreListNewestFirst(t *testing.T) {
	s := New(time.Hour)
	old := time.Now().Add(-time.Minute)
	s.Put(&Document{ID: "old", CreatedAt: old, UpdatedAt: old})
	now := time.Now()
	s.Put(&Document{ID: "new", CreatedAt: now, UpdatedAt: now})

	docs := s.List()
	if len(docs) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(docs))
	}
	if docs[0].ID != "new" {
		t.Errorf("expected newest first, got %q", docs[0].ID)
	}
}

func TestStoreCleanup(t *testing.T) {
	s := New(time.Millisecond)
	past := time.Now().Add(-time.Second)
	s.Put(&Document{ID: "stale", CreatedAt: past, UpdatedAt: past})
	s.Cleanup()
	if s.Get("stale") != nil {
		t.Error("expired document survived cleanup")
	}
}

func TestContentID(t *testing.T) {
	a := ContentID("## A\nbody")
	if a != ContentID("## A\nbody") {
		t.Error("same body produced different ids")
	}
	if a == ContentID("## B\nother") {
		t.Error("different bodies collided")
	}
	if len(a) != 16 {
		t.Errorf("expected 16-char id, got %q", a)
	}
}
