package pipeline

import (
	"context"
	"fmt"

	"github.com/otherjamesbrown/mentor-pipeline/pkg/assets"
	mperrors "github.com/otherjamesbrown/mentor-pipeline/pkg/errors"
	"github.com/otherjamesbrown/mentor-pipeline/pkg/logging"
	"github.com/otherjamesbrown/mentor-pipeline/pkg/transcribe"
	"github.com/otherjamesbrown/mentor-pipeline/pkg/utterance"
)

// UpdateTranscripts sends every sliced utterance audio lacking a
// transcript to the transcription service. IDLE utterances are never
// transcribed; force re-transcribes utterances that already have text.
// The map is persisted after every incremental update the service
// delivers, so a crash mid-batch keeps completed transcriptions.
func (p *Pipeline) UpdateTranscripts(ctx context.Context, m *utterance.Map, force bool) (*utterance.Map, error) {
	if p.stt == nil {
		return nil, fmt.Errorf("no transcription backend configured: %w", mperrors.ErrMissingConfig)
	}
	result := m.Clone()
	var reqs []transcribe.JobRequest
	sourceByJob := map[string]string{}
	for _, u := range result.Utterances() {
		if u.SkipTranscription() {
			continue
		}
		if u.Transcript != "" && !force {
			continue
		}
		audio := p.paths.FindUtteranceAudio(u, false)
		if audio == "" {
			p.log.Warn("no utterance audio to transcribe", logging.F("id", u.ID()))
			continue
		}
		reqs = append(reqs, transcribe.JobRequest{JobID: u.ID(), SourceFile: audio})
		sourceByJob[u.ID()] = p.paths.ToRelativePath(audio, assets.RootData)
	}
	if len(reqs) == 0 {
		p.log.Info("no utterances need transcription")
		return result, nil
	}
	p.log.Info("transcribing utterances", logging.F("count", len(reqs)))
	// An update naming an utterance the map does not know means the batch
	// no longer matches the document on disk. That corrupts data if
	// ignored, so the first such error aborts the run.
	var applyErr error
	opts := transcribe.Options{
		PollInterval: p.pollInterval,
		OnUpdate: func(up transcribe.Update) {
			if applyErr != nil {
				return
			}
			if applyErr = p.applyTranscribeUpdate(result, up, sourceByJob); applyErr != nil {
				return
			}
			if err := p.paths.WriteUtterances(result); err != nil {
				p.log.Error("persisting transcription progress", logging.Err(err))
			}
		},
	}
	if _, err := p.stt.Transcribe(ctx, reqs, opts); err != nil {
		return result, err
	}
	if applyErr != nil {
		return result, fmt.Errorf("applying transcription update: %w", applyErr)
	}
	return result, nil
}

func (p *Pipeline) applyTranscribeUpdate(result *utterance.Map, up transcribe.Update, sourceByJob map[string]string) error {
	for _, fqid := range up.IDsUpdated {
		job, ok := up.Result.Job(fqid)
		if !ok {
			continue
		}
		switch job.Status {
		case transcribe.StatusSucceeded:
			transcript := normalizeQuotes(job.Transcript)
			if err := result.SetTranscript(job.JobID, transcript, sourceByJob[job.JobID]); err != nil {
				return err
			}
		case transcribe.StatusFailed:
			u, ok := result.FindByID(job.JobID)
			if !ok {
				continue
			}
			u.ErrorMessage = job.Error
			p.log.Warn("transcription job failed",
				logging.F("id", job.JobID),
				logging.F("error", job.Error))
		}
	}
	return nil
}
