package transcribe

import (
	"context"
	"fmt"
	"os"
	"time"

	aai "github.com/AssemblyAI/assemblyai-go-sdk"
	backoff "github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"

	mperrors "github.com/otherjamesbrown/mentor-pipeline/pkg/errors"
	"github.com/otherjamesbrown/mentor-pipeline/pkg/logging"
)

// DefaultPollInterval is the fallback polling cadence for async backends.
const DefaultPollInterval = 5 * time.Second

// AssemblyAIService transcribes audio with the AssemblyAI API: upload and
// submit every file, then poll until all jobs resolve, emitting an
// OnUpdate callback per polling round that changed anything.
type AssemblyAIService struct {
	client *aai.Client
	log    logging.Logger
}

// NewAssemblyAIService builds an AssemblyAI-backed Service. A missing API
// key is a configuration error: fail fast, no partial run.
func NewAssemblyAIService(apiKey string, log logging.Logger) (*AssemblyAIService, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("ASSEMBLYAI_API_KEY: %w", mperrors.ErrMissingConfig)
	}
	if log == nil {
		log = logging.Nop()
	}
	return &AssemblyAIService{client: aai.NewClient(apiKey), log: log}, nil
}

// Transcribe submits all requests and polls until every job resolves. A
// per-job submit or service failure marks only that job FAILED.
func (s *AssemblyAIService) Transcribe(ctx context.Context, reqs []JobRequest, opts Options) (*BatchResult, error) {
	batchID := opts.BatchID
	if batchID == "" {
		batchID = uuid.NewString()
	}
	pollInterval := opts.PollInterval
	if pollInterval <= 0 {
		pollInterval = DefaultPollInterval
	}

	reqs = StampBatchID(reqs, batchID)
	result := ResultFromRequests(reqs, StatusQueued)
	remoteIDs := map[string]string{} // fqid -> AssemblyAI transcript id
	for _, req := range reqs {
		remoteID, err := s.submit(ctx, req)
		if err != nil {
			if ctx.Err() != nil {
				return result, ctx.Err()
			}
			s.log.Error("transcription submit failed",
				logging.F("batch", batchID),
				logging.F("job", req.JobID),
				logging.F("source", req.SourceFile),
				logging.Err(err))
			result = result.Clone()
			if _, err := result.UpdateJob(req.FQID(), StatusFailed, "", err.Error()); err != nil {
				return result, err
			}
			if opts.OnUpdate != nil {
				opts.OnUpdate(Update{Result: result, IDsUpdated: []string{req.FQID()}})
			}
			continue
		}
		remoteIDs[req.FQID()] = remoteID
	}

	for result.HasUnresolved() {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		case <-time.After(pollInterval):
		}
		next := result.Clone()
		var updated []string
		for fqid, remoteID := range remoteIDs {
			job, _ := next.Job(fqid)
			if job.Resolved() {
				continue
			}
			t, err := s.client.Transcripts.Get(ctx, remoteID)
			if err != nil {
				if ctx.Err() != nil {
					return result, ctx.Err()
				}
				// Could be a transient API error; poll again next round.
				s.log.Warn("transcription poll failed",
					logging.F("batch", batchID),
					logging.F("job", fqid),
					logging.Err(err))
				continue
			}
			status, transcript, errMsg := fromAssemblyAI(t)
			changed, err := next.UpdateJob(fqid, status, transcript, errMsg)
			if err != nil {
				return result, err
			}
			if changed {
				updated = append(updated, fqid)
			}
		}
		result = next
		if len(updated) > 0 && opts.OnUpdate != nil {
			opts.OnUpdate(Update{Result: result, IDsUpdated: updated})
		}
	}
	return result, nil
}

// submit uploads one audio file and creates its transcript job, retrying
// transient failures with exponential backoff.
func (s *AssemblyAIService) submit(ctx context.Context, req JobRequest) (string, error) {
	var remoteID string
	submitFn := func() error {
		f, err := os.Open(req.SourceFile)
		if err != nil {
			return backoff.Permanent(err)
		}
		defer f.Close()
		uploadURL, err := s.client.Upload(ctx, f)
		if err != nil {
			return err
		}
		t, err := s.client.Transcripts.SubmitFromURL(ctx, uploadURL, nil)
		if err != nil {
			return err
		}
		if t.ID != nil {
			remoteID = *t.ID
		}
		return nil
	}
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 2 * time.Second
	bo.MaxInterval = 10 * time.Second
	bo.MaxElapsedTime = 30 * time.Second
	if err := backoff.Retry(submitFn, backoff.WithContext(bo, ctx)); err != nil {
		return "", err
	}
	if remoteID == "" {
		return "", fmt.Errorf("assemblyai returned no transcript id for %s", req.SourceFile)
	}
	return remoteID, nil
}

func fromAssemblyAI(t aai.Transcript) (Status, string, string) {
	switch t.Status {
	case aai.TranscriptStatusCompleted:
		transcript := ""
		if t.Text != nil {
			transcript = *t.Text
		}
		return StatusSucceeded, transcript, ""
	case aai.TranscriptStatusError:
		errMsg := "transcription failed"
		if t.Error != nil {
			errMsg = *t.Error
		}
		return StatusFailed, "", errMsg
	case aai.TranscriptStatusProcessing:
		return StatusInProgress, "", ""
	default:
		return StatusQueued, "", ""
	}
}
