package transcribe

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	openai "github.com/sashabaranov/go-openai"

	mperrors "github.com/otherjamesbrown/mentor-pipeline/pkg/errors"
	"github.com/otherjamesbrown/mentor-pipeline/pkg/logging"
)

// OpenAIService transcribes audio with the OpenAI Whisper API. Requests
// are processed one at a time; each completion triggers an OnUpdate
// callback, so callers can persist partial progress.
type OpenAIService struct {
	client *openai.Client
	log    logging.Logger
}

// NewOpenAIService builds a Whisper-backed Service. A missing API key is a
// configuration error: fail fast, no partial run.
func NewOpenAIService(apiKey string, log logging.Logger) (*OpenAIService, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY: %w", mperrors.ErrMissingConfig)
	}
	if log == nil {
		log = logging.Nop()
	}
	return &OpenAIService{client: openai.NewClient(apiKey), log: log}, nil
}

// Transcribe runs each request through the Whisper API. A per-job failure
// marks only that job FAILED; the batch continues.
func (s *OpenAIService) Transcribe(ctx context.Context, reqs []JobRequest, opts Options) (*BatchResult, error) {
	batchID := opts.BatchID
	if batchID == "" {
		batchID = uuid.NewString()
	}
	reqs = StampBatchID(reqs, batchID)
	result := ResultFromRequests(reqs, StatusQueued)
	for _, req := range reqs {
		result = result.Clone()
		fqid := req.FQID()
		resp, err := s.client.CreateTranscription(ctx, openai.AudioRequest{
			Model:    openai.Whisper1,
			FilePath: req.SourceFile,
		})
		if err != nil {
			if ctx.Err() != nil {
				return result, ctx.Err()
			}
			s.log.Error("transcription failed",
				logging.F("batch", batchID),
				logging.F("job", req.JobID),
				logging.F("source", req.SourceFile),
				logging.Err(err))
			if _, err := result.UpdateJob(fqid, StatusFailed, "", err.Error()); err != nil {
				return result, err
			}
		} else {
			if _, err := result.UpdateJob(fqid, StatusSucceeded, resp.Text, ""); err != nil {
				return result, err
			}
		}
		if opts.OnUpdate != nil {
			opts.OnUpdate(Update{Result: result, IDsUpdated: []string{fqid}})
		}
	}
	return result, nil
}
