package pipeline

import (
	"sync"
	"time"
)

// JobStatus represents the state of a fragment save job.
type JobStatus string

const (
	StatusQueued     JobStatus = "queued"
	StatusExtracting JobStatus = "extracting"
	StatusStoring    JobStatus = "storing"
	StatusCompleted  JobStatus = "completed"
	StatusFailed     JobStatus = "failed"
)

// Job tracks one asynchronous section save: extract the fragment from the
// document, then persist it to the fragment store.
type Job struct {
	mu sync.Mutex

	ID    string `json:"job_id"`
	DocID string `json:"doc_id"`

	SectionTitle string `json:"section_title"`
	Level        int    `json:"level"`
	Tag          string `json:"tag"`

	Status     JobStatus `json:"status"`
	Phase      string    `json:"phase"`
	FragmentID string    `json:"fragment_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	errors []string
}

// SetStatus updates job status atomically.
func (j *Job) SetStatus(status JobStatus, phase string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = status
	j.Phase = phase
	j.UpdatedAt = time.Now()
}

// AddError records an error.
func (j *Job) AddError(err string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.errors = append(j.errors, err)
	j.UpdatedAt = time.Now()
}

// SetFragmentID records the id the fragment was stored under.
func (j *Job) SetFragmentID(id string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.FragmentID = id
	j.UpdatedAt = time.Now()
}

// JobSnapshot is a read-only, JSON-safe copy of job state.
type JobSnapshot struct {
	ID           string    `json:"job_id"`
	DocID        string    `json:"doc_id"`
	SectionTitle string    `json:"section_title"`
	Level        int       `json:"level"`
	Tag          string    `json:"tag"`
	Status       JobStatus `json:"status"`
	Phase        string    `json:"phase"`
	FragmentID   string    `json:"fragment_id,omitempty"`
	Errors       []string  `json:"errors"`
}

// Snapshot returns a JSON-safe copy of the job state.
func (j *Job) Snapshot() JobSnapshot {
	j.mu.Lock()
	defer j.mu.Unlock()
	errs := append([]string{}, j.errors...)
	return JobSnapshot{
		ID:           j.ID,
		DocID:        j.DocID,
		SectionTitle: j.SectionTitle,
		Level:        j.Level,
		Tag:          j.Tag,
		Status:       j.Status,
		Phase:        j.Phase,
		FragmentID:   j.FragmentID,
		Errors:       errs,
	}
}

// JobStore is a thread-safe in-memory job registry with TTL eviction.
type JobStore struct {
	mu   sync.Mutex
	jobs map[string]*Job
	ttl  time.Duration
}

func NewJobStore(ttl time.Duration) *JobStore {
	return &JobStore{
		jobs: make(map[string]*Job),
		ttl:  ttl,
	}
}

func (s *JobStore) Put(job *Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = job
}

func (s *JobStore) Get(id string) *Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jobs[id]
}

// Cleanup removes expired jobs.
func (s *JobStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, job := range s.jobs {
		if now.Sub(job.UpdatedAt) > s.ttl {
			delete(s.jobs, id)
		}
	}
}
