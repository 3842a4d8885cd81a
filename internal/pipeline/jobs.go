package pipeline

import (
	"crypto/sha256"
	"fmt"
	"sync"
	"time"

	"github.com/dgallion1/coursecheck/internal/lint"
	"github.com/google/uuid"
)

// JobStatus represents the state of a lint run.
type JobStatus string

const (
	StatusQueued     JobStatus = "queued"
	StatusLinting    JobStatus = "linting"
	StatusPublishing JobStatus = "publishing"
	StatusCompleted  JobStatus = "completed"
	StatusFailed     JobStatus = "failed"
	StatusPartial    JobStatus = "partial" // report produced, publishing failed
)

// Job tracks the state of a single content lint run.
type Job struct {
	mu sync.Mutex

	ID             string `json:"run_id"`
	Root           string `json:"root"`
	StrictHeadings bool   `json:"strict_headings"`

	Status JobStatus `json:"status"`
	Phase  string    `json:"phase"`

	Progress Progress `json:"progress"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Internal: not serialized.
	report *lint.Report
	errors []string
}

// Progress tracks processing progress.
type Progress struct {
	FilesTotal          int      `json:"files_total"`
	FilesChecked        int      `json:"files_checked"`
	FilesFailed         int      `json:"files_failed"`
	StructureViolations int      `json:"structure_violations"`
	Errors              []string `json:"errors"`
}

// NewJob creates a queued run over root.
func NewJob(root string, strictHeadings bool) *Job {
	now := time.Now()
	return &Job{
		ID:             uuid.New().String(),
		Root:           root,
		StrictHeadings: strictHeadings,
		Status:         StatusQueued,
		Phase:          "queued",
		CreatedAt:      now,
		UpdatedAt:      now,
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
		job.mu.Lock()
		updated := job.UpdatedAt
		job.mu.Unlock()
		if now.Sub(updated) > s.ttl {
			delete(s.jobs, id)
		}
	}
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
	j.Progress.Errors = j.errors
	j.UpdatedAt = time.Now()
}

// SetFilesTotal records the number of lesson files found.
func (j *Job) SetFilesTotal(n int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Progress.FilesTotal = n
	j.UpdatedAt = time.Now()
}

// RecordFile counts one linted lesson file.
func (j *Job) RecordFile(failed bool) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Progress.FilesChecked++
	if failed {
		j.Progress.FilesFailed++
	}
	j.UpdatedAt = time.Now()
}

// SetReport stores the finished report.
func (j *Job) SetReport(r *lint.Report) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.report = r
	j.Progress.StructureViolations = len(r.Structure)
	j.UpdatedAt = time.Now()
}

// Report returns the finished report, or nil while the run is in progress.
func (j *Job) Report() *lint.Report {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.report
}

// JobSnapshot is a read-only, JSON-safe copy of job state.
type JobSnapshot struct {
	ID        string       `json:"run_id"`
	Root      string       `json:"root"`
	Status    JobStatus    `json:"status"`
	Phase     string       `json:"phase"`
	Progress  Progress     `json:"progress"`
	OK        *bool        `json:"ok,omitempty"`
	Report    *lint.Report `json:"report,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// Snapshot returns a JSON-safe copy of the job state.
func (j *Job) Snapshot() JobSnapshot {
	j.mu.Lock()
	defer j.mu.Unlock()
	errs := j.Progress.Errors
	if errs == nil {
		errs = []string{}
	}
	snap := JobSnapshot{
		ID:     j.ID,
		Root:   j.Root,
		Status: j.Status,
		Phase:  j.Phase,
		Progress: Progress{
			FilesTotal:          j.Progress.FilesTotal,
			FilesChecked:        j.Progress.FilesChecked,
			FilesFailed:         j.Progress.FilesFailed,
			StructureViolations: j.Progress.StructureViolations,
			Errors:              errs,
		},
		Report:    j.report,
		CreatedAt: j.CreatedAt,
		UpdatedAt: j.UpdatedAt,
	}
	if j.report != nil {
		ok := j.report.OK()
		snap.OK = &ok
	}
	return snap
}

// ContentHashHex returns the hex-encoded SHA-256 of data.
func ContentHashHex(data []byte) string {
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h[:])
}
