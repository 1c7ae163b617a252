// Package pipeline runs asynchronous fragment saves: a queued job re-scans
// its document for the referenced section and hands the extracted text to
// the fragment store, retrying transient store failures.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgallion1/regreader/internal/docstore"
	"github.com/dgallion1/regreader/internal/fragstore"
	"github.com/dgallion1/regreader/internal/section"
	"github.com/dgallion1/regreader/internal/slug"
)

// Worker processes fragment save jobs.
type Worker struct {
	docs  *docstore.Store
	frags *fragstore.Client
	log   *slog.Logger

	maxFragmentBytes int
}

func NewWorker(docs *docstore.Store, frags *fragstore.Client, log *slog.Logger, maxFragmentBytes int) *Worker {
	return &Worker{
		docs:             docs,
		frags:            frags,
		log:              log,
		maxFragmentBytes: maxFragmentBytes,
	}
}

// Process runs one save job to completion.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "doc_id", job.DocID, "title", job.SectionTitle)

	doc := w.docs.Get(job.DocID)
	if doc == nil {
		log.Error("document not found, may have been evicted")
		job.AddError("document not found")
		job.SetStatus(StatusFailed, "lookup")
		return
	}

	// Phase 1: extract the fragment from the source text.
	job.SetStatus(StatusExtracting, "extracting section")
	body, err := section.Extract(doc.Body, job.SectionTitle, job.Level)
	if err != nil {
		log.Error("extraction failed", "error", err)
		job.AddError(fmt.Sprintf("extract: %s", err))
		job.SetStatus(StatusFailed, "extracting")
		return
	}

	frag := fragstore.Fragment{
		DocID:     job.DocID,
		SectionID: slug.Make(job.SectionTitle, job.Level),
		Title:     job.SectionTitle,
		Level:     job.Level,
		Tag:       job.Tag,
		Body:      body,
	}
	if err := fragstore.Validate(&frag, w.maxFragmentBytes); err != nil {
		log.Error("fragment rejected", "error", err)
		job.AddError(fmt.Sprintf("validate: %s", err))
		job.SetStatus(StatusFailed, "validating")
		return
	}

	// Phase 2: persist with retry on transient store errors.
	job.SetStatus(StatusStoring, "storing fragment")
	fragID := NewID()

	var lastErr error
	for attempt := range MaxRetries {
		lastErr = w.frags.SaveFragment(ctx, fragID, frag)
		if lastErr == nil || !IsRetryable(lastErr) {
			break
		}
		log.Warn("retryable store error", "attempt", attempt, "error", lastErr)
		select {
		case <-time.After(Backoff(attempt)):
		case <-ctx.Done():
			lastErr = ctx.Err()
		}
		if ctx.Err() != nil {
			break
		}
	}
	if lastErr != nil {
		log.Error("store failed", "error", lastErr)
		job.AddError(fmt.Sprintf("store: %s", lastErr))
		job.SetStatus(StatusFailed, "storing")
		return
	}

	job.SetFragmentID(fragID)
	job.SetStatus(StatusCompleted, "done")
	log.Info("fragment saved", "fragment_id", fragID, "tag", frag.Tag, "bytes", len(frag.Body))
}
