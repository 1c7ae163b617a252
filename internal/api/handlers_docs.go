package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/dgallion1/regreader/internal/docstore"
	"github.com/dgallion1/regreader/internal/section"
	"github.com/dgallion1/regreader/internal/source"
	"github.com/go-chi/chi/v5"
)

type createDocumentRequest struct {
	Title    string               `json:"title"`
	Body     string               `json:"body"`
	Headings []section.HeadingRef `json:"headings,omitempty"`
}

type documentResponse struct {
	DocID string             `json:"doc_id"`
	Title string             `json:"title"`
	Nav   []section.NavEntry `json:"nav"`
}

// handleCreateDocument registers an already-fetched document body. The
// heading manifest may be supplied by the upstream source; otherwise it is
// derived from the body.
func (s *Server) handleCreateDocument(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxDocumentBytes)

	var req createDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Body) == "" {
		jsonError(w, "body is required", http.StatusBadRequest)
		return
	}
	for _, h := range req.Headings {
		if h.Level != 2 && h.Level != 3 {
			jsonError(w, fmt.Sprintf("invalid heading level %d for %q", h.Level, h.Title), http.StatusBadRequest)
			return
		}
	}

	s.storeDocument(w, req.Title, req.Body, req.Headings)
}

// handleUploadDocument accepts a file upload and normalizes it into the
// heading syntax before registering it.
func (s *Server) handleUploadDocument(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxDocumentBytes+1024*1024) // extra 1MB for form overhead

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	if !source.IsSupportedExtension(filename) {
		jsonError(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)), http.StatusBadRequest)
		return
	}

	norm, err := source.ForFile(filename)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if pdf, ok := norm.(*source.PDFNormalizer); ok {
		pdf.FallbackPdftotext = s.cfg.PDFFallbackPdftotext
	}

	title, body, err := norm.Normalize(io.LimitReader(file, s.cfg.MaxDocumentBytes+1), filename)
	if err != nil {
		jsonError(w, "normalize: "+err.Error(), http.StatusUnprocessableEntity)
		return
	}
	if int64(len(body)) > s.cfg.MaxDocumentBytes {
		jsonError(w, fmt.Sprintf("document exceeds max size (%d bytes)", s.cfg.MaxDocumentBytes), http.StatusRequestEntityTooLarge)
		return
	}
	if t := r.FormValue("title"); t != "" {
		title = t
	}

	s.storeDocument(w, title, body, nil)
}

func (s *Server) storeDocument(w http.ResponseWriter, title, body string, headings []section.HeadingRef) {
	if headings == nil {
		headings = section.Headings(body)
	}
	if title == "" {
		title = "Untitled"
	}

	now := time.Now()
	doc := &docstore.Document{
		ID:        docstore.ContentID(body),
		Title:     title,
		Body:      body,
		Headings:  headings,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.docs.Put(doc)
	s.log.Info("document registered", "doc_id", doc.ID, "title", doc.Title, "headings", len(headings))

	writeJSON(w, http.StatusCreated, documentResponse{
		DocID: doc.ID,
		Title: doc.Title,
		Nav:   section.BuildIndex(headings),
	})
}

func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"documents": s.docs.List()})
}

func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	doc, ok := s.lookupDocument(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"doc_id":     doc.ID,
		"title":      doc.Title,
		"body":       doc.Body,
		"headings":   doc.Headings,
		"created_at": doc.CreatedAt,
	})
}

func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	docID := chi.URLParam(r, "docID")
	if !s.docs.Delete(docID) {
		jsonError(w, "document not found", http.StatusNotFound)
		return
	}
	dropped := s.sessions.DeleteForDoc(docID)
	s.mu.Lock()
	for _, id := range dropped {
		delete(s.recorders, id)
	}
	s.mu.Unlock()
	s.log.Info("document deleted", "doc_id", docID, "sessions_dropped", len(dropped))
	writeJSON(w, http.StatusOK, map[string]any{"deleted": docID, "sessions_dropped": len(dropped)})
}

// handleSections returns the parsed section tree. nested=false limits the
// split to major headings; format=html additionally renders each body.
func (s *Server) handleSections(w http.ResponseWriter, r *http.Request) {
	doc, ok := s.lookupDocument(w, r)
	if !ok {
		return
	}

	nested := r.URL.Query().Get("nested") != "false"
	var secs []*section.Section
	if nested {
		secs = s.parser.ParseNested(doc.Body)
	} else {
		secs = s.parser.Parse(doc.Body)
	}

	if r.URL.Query().Get("format") == "html" {
		writeJSON(w, http.StatusOK, map[string]any{"sections": s.renderer.Sections(secs)})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"sections": secs})
}

func (s *Server) handleNav(w http.ResponseWriter, r *http.Request) {
	doc, ok := s.lookupDocument(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"nav": section.BuildIndex(doc.Headings)})
}

// handleExtract pulls a single fragment without building the full tree.
func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	doc, ok := s.lookupDocument(w, r)
	if !ok {
		return
	}

	title := r.URL.Query().Get("title")
	if title == "" {
		jsonError(w, "title query parameter is required", http.StatusBadRequest)
		return
	}
	level, err := parseLevel(r.URL.Query().Get("level"))
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	fragment, err := section.Extract(doc.Body, title, level)
	switch {
	case errors.Is(err, section.ErrSectionNotFound):
		jsonError(w, fmt.Sprintf("no level-%d section matching %q", level, title), http.StatusNotFound)
		return
	case errors.Is(err, section.ErrAmbiguousTitle):
		jsonError(w, fmt.Sprintf("multiple level-%d sections match %q", level, title), http.StatusConflict)
		return
	case err != nil:
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"title":    title,
		"level":    level,
		"fragment": fragment,
	})
}

func (s *Server) lookupDocument(w http.ResponseWriter, r *http.Request) (*docstore.Document, bool) {
	doc := s.docs.Get(chi.URLParam(r, "docID"))
	if doc == nil {
		jsonError(w, "document not found", http.StatusNotFound)
		return nil, false
	}
	return doc, true
}

func parseLevel(raw string) (int, error) {
	level, err := strconv.Atoi(raw)
	if err != nil || (level != 2 && level != 3) {
		return 0, fmt.Errorf("level must be 2 or 3")
	}
	return level, nil
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	enc := json.NewEncoder(w)
	// Responses may carry rendered HTML; keep it readable instead of
	// <-escaping angle brackets.
	enc.SetEscapeHTML(false)
	enc.Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
