package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/dgallion1/regreader/internal/pipeline"
	"github.com/dgallion1/regreader/internal/reader"
	"github.com/dgallion1/regreader/internal/section"
	"github.com/go-chi/chi/v5"
)

// scrollRecorder collects scroll directives issued by a surface so the
// client can pick them up on its next state poll. Only the latest directive
// is kept; an unread one is replaced when a newer scroll fires.
type scrollRecorder struct {
	mu     sync.Mutex
	target string
}

func (r *scrollRecorder) ScrollTo(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.target = id
	return nil
}

// take returns the pending directive and clears it.
func (r *scrollRecorder) take() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	t := r.target
	r.target = ""
	return t
}

type createReaderRequest struct {
	DocID string `json:"doc_id"`
}

func (s *Server) handleCreateReader(w http.ResponseWriter, r *http.Request) {
	var req createReaderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	doc := s.docs.Get(req.DocID)
	if doc == nil {
		jsonError(w, "document not found", http.StatusNotFound)
		return
	}

	rec := &scrollRecorder{}
	surface := reader.NewSurface(section.BuildIndex(doc.Headings), rec, s.cfg.ScrollSettleTimeout, s.log)
	sess := &reader.Session{
		ID:        pipeline.NewID(),
		DocID:     doc.ID,
		Surface:   surface,
		CreatedAt: time.Now(),
	}
	s.sessions.Put(sess)

	s.mu.Lock()
	s.recorders[sess.ID] = rec
	s.mu.Unlock()

	s.log.Info("reader session created", "reader_id", sess.ID, "doc_id", doc.ID)
	writeJSON(w, http.StatusCreated, s.readerStateBody(sess, rec))
}

func (s *Server) handleReaderState(w http.ResponseWriter, r *http.Request) {
	sess, rec, ok := s.lookupReader(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.readerStateBody(sess, rec))
}

func (s *Server) handleDeleteReader(w http.ResponseWriter, r *http.Request) {
	readerID := chi.URLParam(r, "readerID")
	if s.sessions.Get(readerID) == nil {
		jsonError(w, "reader session not found", http.StatusNotFound)
		return
	}
	s.sessions.Delete(readerID)
	s.mu.Lock()
	delete(s.recorders, readerID)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]string{"deleted": readerID})
}

type navigateRequest struct {
	ID string `json:"id"`
}

func (s *Server) handleNavigate(w http.ResponseWriter, r *http.Request) {
	sess, rec, ok := s.lookupReader(w, r)
	if !ok {
		return
	}

	var req navigateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	if err := sess.Surface.NavigateTo(req.ID); err != nil {
		if errors.Is(err, reader.ErrUnknownSection) {
			jsonError(w, "unknown section id: "+req.ID, http.StatusNotFound)
			return
		}
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, s.readerStateBody(sess, rec))
}

// handleTransitionDone is the client's signal that an expand animation for
// the given container has finished.
func (s *Server) handleTransitionDone(w http.ResponseWriter, r *http.Request) {
	sess, rec, ok := s.lookupReader(w, r)
	if !ok {
		return
	}

	var req navigateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	sess.Surface.TransitionDone(req.ID)
	writeJSON(w, http.StatusOK, s.readerStateBody(sess, rec))
}

func (s *Server) handleExpandAll(w http.ResponseWriter, r *http.Request) {
	sess, rec, ok := s.lookupReader(w, r)
	if !ok {
		return
	}
	sess.Surface.ExpandAll()
	writeJSON(w, http.StatusOK, s.readerStateBody(sess, rec))
}

func (s *Server) handleCollapseAll(w http.ResponseWriter, r *http.Request) {
	sess, rec, ok := s.lookupReader(w, r)
	if !ok {
		return
	}
	sess.Surface.CollapseAll()
	writeJSON(w, http.StatusOK, s.readerStateBody(sess, rec))
}

type readerStateResponse struct {
	ReaderID string          `json:"reader_id"`
	DocID    string          `json:"doc_id"`
	State    reader.Snapshot `json:"state"`
	ScrollTo string          `json:"scroll_to,omitempty"`
}

func (s *Server) readerStateBody(sess *reader.Session, rec *scrollRecorder) readerStateResponse {
	resp := readerStateResponse{
		ReaderID: sess.ID,
		DocID:    sess.DocID,
		State:    sess.Surface.SnapshotState(),
	}
	if rec != nil {
		resp.ScrollTo = rec.take()
	}
	return resp
}

func (s *Server) lookupReader(w http.ResponseWriter, r *http.Request) (*reader.Session, *scrollRecorder, bool) {
	readerID := chi.URLParam(r, "readerID")
	sess := s.sessions.Get(readerID)
	if sess == nil {
		jsonError(w, "reader session not found", http.StatusNotFound)
		return nil, nil, false
	}
	s.mu.Lock()
	rec := s.recorders[readerID]
	s.mu.Unlock()
	return sess, rec, true
}
