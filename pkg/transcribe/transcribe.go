// Package transcribe defines the speech-to-text collaborator boundary: a
// batch of per-utterance audio files goes in, per-job statuses and
// transcripts come out, either as one final result or as a sequence of
// incremental update callbacks. Backends wrap external services; the
// pipeline treats them as black boxes.
package transcribe

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	mperrors "github.com/otherjamesbrown/mentor-pipeline/pkg/errors"
)

// Status is the lifecycle state of one transcription job.
type Status string

const (
	StatusNone       Status = ""
	StatusQueued     Status = "QUEUED"
	StatusInProgress Status = "IN_PROGRESS"
	StatusSucceeded  Status = "SUCCEEDED"
	StatusFailed     Status = "FAILED"
)

// Resolved reports whether the status is terminal.
func (s Status) Resolved() bool {
	return s == StatusSucceeded || s == StatusFailed
}

// JobRequest asks for one audio file to be transcribed.
type JobRequest struct {
	BatchID      string
	JobID        string
	SourceFile   string
	MediaFormat  string
	LanguageCode string
}

// FQID returns the fully qualified job id within its batch.
func (r JobRequest) FQID() string {
	return r.BatchID + "-" + r.JobID
}

// ResolveMediaFormat returns the explicit media format or one derived from
// the source file extension.
func (r JobRequest) ResolveMediaFormat() string {
	if r.MediaFormat != "" {
		return r.MediaFormat
	}
	return strings.TrimPrefix(filepath.Ext(r.SourceFile), ".")
}

// ResolveLanguageCode returns the explicit language code or en-US.
func (r JobRequest) ResolveLanguageCode() string {
	if r.LanguageCode != "" {
		return r.LanguageCode
	}
	return "en-US"
}

// StampBatchID fills in batchID on every request that lacks one.
func StampBatchID(reqs []JobRequest, batchID string) []JobRequest {
	out := make([]JobRequest, len(reqs))
	for i, req := range reqs {
		if req.BatchID == "" {
			req.BatchID = batchID
		}
		out[i] = req
	}
	return out
}

// Job is the tracked state of one transcription request.
type Job struct {
	BatchID     string
	JobID       string
	SourceFile  string
	MediaFormat string
	Status      Status
	Transcript  string
	Error       string
}

// FQID returns the fully qualified job id within its batch.
func (j Job) FQID() string {
	return j.BatchID + "-" + j.JobID
}

// Resolved reports whether the job reached a terminal status.
func (j Job) Resolved() bool {
	return j.Status.Resolved()
}

// BatchResult tracks all jobs of one transcribe batch by fully qualified id.
type BatchResult struct {
	jobsByID map[string]Job
}

// NewBatchResult returns an empty result.
func NewBatchResult() *BatchResult {
	return &BatchResult{jobsByID: map[string]Job{}}
}

// ResultFromRequests seeds a result with one job per request at the given
// initial status.
func ResultFromRequests(reqs []JobRequest, initial Status) *BatchResult {
	r := NewBatchResult()
	for _, req := range reqs {
		r.jobsByID[req.FQID()] = Job{
			BatchID:     req.BatchID,
			JobID:       req.JobID,
			SourceFile:  req.SourceFile,
			MediaFormat: req.ResolveMediaFormat(),
			Status:      initial,
		}
	}
	return r
}

// Job returns the tracked job for a fully qualified id.
func (r *BatchResult) Job(fqid string) (Job, bool) {
	j, ok := r.jobsByID[fqid]
	return j, ok
}

// Jobs returns all jobs ordered by fully qualified id.
func (r *BatchResult) Jobs() []Job {
	out := make([]Job, 0, len(r.jobsByID))
	for _, j := range r.jobsByID {
		out = append(out, j)
	}
	sort.Slice(out, func(i, k int) bool { return out[i].FQID() < out[k].FQID() })
	return out
}

// Len returns the number of tracked jobs.
func (r *BatchResult) Len() int { return len(r.jobsByID) }

// HasUnresolved reports whether any job has not reached a terminal status.
func (r *BatchResult) HasUnresolved() bool {
	for _, j := range r.jobsByID {
		if !j.Resolved() {
			return true
		}
	}
	return false
}

// UpdateJob records a new status (and transcript or error) for a tracked
// job. Returns false when the status did not change; an untracked id is a
// caller bug.
func (r *BatchResult) UpdateJob(fqid string, status Status, transcript, errMsg string) (bool, error) {
	j, ok := r.jobsByID[fqid]
	if !ok {
		return false, fmt.Errorf("update for untracked transcribe job '%s': %w", fqid, mperrors.ErrInvalidState)
	}
	if j.Status == status {
		return false, nil
	}
	j.Status = status
	j.Transcript = transcript
	j.Error = errMsg
	r.jobsByID[fqid] = j
	return true, nil
}

// Clone returns a shallow copy so update callbacks never observe later
// mutation of the tracked batch.
func (r *BatchResult) Clone() *BatchResult {
	c := NewBatchResult()
	for id, j := range r.jobsByID {
		c.jobsByID[id] = j
	}
	return c
}

// Summary counts jobs per status.
func (r *BatchResult) Summary() map[Status]int {
	out := map[Status]int{}
	for _, j := range r.jobsByID {
		out[j.Status]++
	}
	return out
}

// Update is one incremental completion notification.
type Update struct {
	Result     *BatchResult
	IDsUpdated []string
}

// Options tunes one Transcribe call.
type Options struct {
	// BatchID names the batch; backends generate one when empty.
	BatchID string
	// PollInterval is how often async backends poll for job completion.
	PollInterval time.Duration
	// OnUpdate, when set, receives incremental completion notifications
	// before the batch fully resolves.
	OnUpdate func(Update)
}

// Service is the transcription collaborator.
type Service interface {
	Transcribe(ctx context.Context, reqs []JobRequest, opts Options) (*BatchResult, error)
}
