// Package pipeline implements the batch stages that take a mentor's raw
// recordings to training-ready artifacts, and the per-command chains that
// compose them. Every stage takes an utterance map and returns a derived
// copy; the caller decides when to persist.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/otherjamesbrown/mentor-pipeline/pkg/captions"
	mperrors "github.com/otherjamesbrown/mentor-pipeline/pkg/errors"
	"github.com/otherjamesbrown/mentor-pipeline/pkg/logging"
	"github.com/otherjamesbrown/mentor-pipeline/pkg/media"
	"github.com/otherjamesbrown/mentor-pipeline/pkg/mentorpath"
	"github.com/otherjamesbrown/mentor-pipeline/pkg/questions"
	"github.com/otherjamesbrown/mentor-pipeline/pkg/transcribe"
)

// Deps wires a Pipeline's collaborators. Paths is required; nil
// collaborators disable the stages that need them, and a nil Log becomes
// a no-op logger.
type Deps struct {
	Paths       *mentorpath.MentorPath
	Media       media.Tools
	Noise       media.Reducer
	Transcriber transcribe.Service

	CaptionOptions captions.Options
	PollInterval   time.Duration

	Log logging.Logger
}

// Pipeline runs batch stages for one mentor.
type Pipeline struct {
	paths        *mentorpath.MentorPath
	media        media.Tools
	noise        media.Reducer
	stt          transcribe.Service
	captionOpts  captions.Options
	pollInterval time.Duration
	log          logging.Logger
}

// New builds a Pipeline from its dependencies.
func New(deps Deps) *Pipeline {
	log := deps.Log
	if log == nil {
		log = logging.Nop()
	}
	captionOpts := deps.CaptionOptions
	if captionOpts.ChunkLength <= 0 {
		captionOpts.ChunkLength = captions.DefaultChunkLength
	}
	return &Pipeline{
		paths:        deps.Paths,
		media:        deps.Media,
		noise:        deps.Noise,
		stt:          deps.Transcriber,
		captionOpts:  captionOpts,
		pollInterval: deps.PollInterval,
		log:          log.With(logging.F("mentor", deps.Paths.MentorID())),
	}
}

// DataUpdate runs the full data chain for a mentor: sync the timestamp
// spreadsheets, derive and slice audio, transcribe, join paraphrases and
// topics, emit captions, and write the four training artifacts. The
// utterance map is persisted at the end and incrementally during
// transcription.
func (p *Pipeline) DataUpdate(ctx context.Context, forceTranscribe bool) error {
	// The chain cannot complete without a transcription backend, so a
	// missing one fails here rather than after media work has been done.
	if p.stt == nil {
		return fmt.Errorf("no transcription backend configured: %w", mperrors.ErrMissingConfig)
	}
	m, err := p.paths.LoadUtterances(true)
	if err != nil {
		return err
	}
	if m, err = p.SyncTimestamps(m); err != nil {
		return err
	}
	if m, err = p.SessionsToAudio(ctx, m); err != nil {
		return err
	}
	if m, err = p.UtterancesSliceAudio(ctx, m); err != nil {
		return err
	}
	if m, err = p.UpdateTranscripts(ctx, m, forceTranscribe); err != nil {
		return err
	}
	paraphrases, err := questions.LoadParaphrasesCSV(p.paths.ParaphrasesByQuestionCSV(), true)
	if err != nil {
		return err
	}
	m = p.UpdateParaphrases(m, paraphrases)
	topics, err := questions.LoadTopicsCSV(p.paths.TopicsByQuestionCSV(""), true)
	if err != nil {
		return err
	}
	m = p.UpdateTopics(m, topics)
	if err := p.UtterancesToCaptions(m); err != nil {
		return err
	}
	td := p.UtterancesToTrainingData(m)
	if err := td.Write(p.paths); err != nil {
		return err
	}
	return p.paths.WriteUtterances(m)
}

// VideosUpdate slices the session videos into per-utterance clips and
// produces the mobile and web encodes, persisting the map after slicing
// and again at the end.
func (p *Pipeline) VideosUpdate(ctx context.Context) error {
	m, err := p.paths.LoadUtterances(false)
	if err != nil {
		return err
	}
	if m, err = p.UtterancesSliceVideo(ctx, m); err != nil {
		return err
	}
	if err := p.paths.WriteUtterances(m); err != nil {
		return err
	}
	if err := p.EncodeMobileVideos(ctx, m); err != nil {
		return err
	}
	if err := p.EncodeWebVideos(ctx, m); err != nil {
		return err
	}
	return p.paths.WriteUtterances(m)
}

// VideosReduceNoise applies noise reduction to every sliced utterance
// video, using the mentor's recorded noise samples.
func (p *Pipeline) VideosReduceNoise(ctx context.Context) error {
	m, err := p.paths.LoadUtterances(false)
	if err != nil {
		return err
	}
	return p.ReduceNoise(ctx, m)
}

// TopicsByQuestionGenerate projects the topics recorded on utterances
// into the shared topics-by-question table.
func (p *Pipeline) TopicsByQuestionGenerate(fileName string) error {
	m, err := p.paths.LoadUtterances(false)
	if err != nil {
		return err
	}
	table := p.UtterancesToTopicsByQuestion(m)
	return questions.WriteTopicsCSV(table, p.paths.TopicsByQuestionCSV(fileName))
}

// SyncOnly runs the timestamp sync alone and persists the result.
func (p *Pipeline) SyncOnly() error {
	m, err := p.paths.LoadUtterances(true)
	if err != nil {
		return err
	}
	if m, err = p.SyncTimestamps(m); err != nil {
		return err
	}
	return p.paths.WriteUtterances(m)
}
