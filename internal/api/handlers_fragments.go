package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/dgallion1/regreader/internal/pipeline"
	"github.com/go-chi/chi/v5"
)

type saveFragmentRequest struct {
	Title string `json:"title"`
	Level int    `json:"level"`
	Tag   string `json:"tag,omitempty"`
}

// handleSaveFragment queues an asynchronous extract-and-store job for one
// section. The response carries the job id to poll.
func (s *Server) handleSaveFragment(w http.ResponseWriter, r *http.Request) {
	doc, ok := s.lookupDocument(w, r)
	if !ok {
		return
	}

	var req saveFragmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.Title == "" {
		jsonError(w, "title is required", http.StatusBadRequest)
		return
	}
	if req.Level != 2 && req.Level != 3 {
		jsonError(w, "level must be 2 or 3", http.StatusBadRequest)
		return
	}

	now := time.Now()
	job := &pipeline.Job{
		ID:           pipeline.NewID(),
		DocID:        doc.ID,
		SectionTitle: req.Title,
		Level:        req.Level,
		Tag:          req.Tag,
		Status:       pipeline.StatusQueued,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.orch.Submit(job); err != nil {
		s.log.Warn("fragment job rejected", "job_id", job.ID, "error", err)
		jsonError(w, "queue full, retry later", http.StatusServiceUnavailable)
		return
	}

	s.log.Info("fragment job queued", "job_id", job.ID, "doc_id", doc.ID, "title", req.Title)
	writeJSON(w, http.StatusAccepted, job.Snapshot())
}

func (s *Server) handleFragmentJob(w http.ResponseWriter, r *http.Request) {
	job := s.orch.GetJob(chi.URLParam(r, "jobID"))
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, job.Snapshot())
}
