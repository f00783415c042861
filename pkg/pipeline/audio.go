package pipeline

import (
	"context"

	"github.com/otherjamesbrown/mentor-pipeline/pkg/assets"
	"github.com/otherjamesbrown/mentor-pipeline/pkg/logging"
	"github.com/otherjamesbrown/mentor-pipeline/pkg/utterance"
)

// SessionsToAudio ensures every utterance's session has an audio file,
// extracting it from the session video when absent. Each session file is
// converted at most once; a conversion failure is recorded on the affected
// utterances and the run continues.
func (p *Pipeline) SessionsToAudio(ctx context.Context, m *utterance.Map) (*utterance.Map, error) {
	result := m.Clone()
	// target path -> conversion error message ("" means converted ok)
	converted := map[string]string{}
	for _, u := range result.Utterances() {
		if p.paths.FindSessionAudio(u, false) != "" {
			p.paths.AssignSessionAssets(u)
			continue
		}
		video := p.paths.FindSessionVideo(u, false)
		if video == "" {
			p.log.Warn("no session video to extract audio from",
				logging.F("session", u.Session),
				logging.F("part", u.Part))
			continue
		}
		target := p.paths.FindSessionAudio(u, true)
		if target == "" {
			continue
		}
		if msg, done := converted[target]; done {
			if msg != "" {
				u.ErrorMessage = msg
			} else {
				p.paths.AssignSessionAssets(u)
			}
			continue
		}
		if err := p.media.VideoToAudio(ctx, video, target); err != nil {
			if ctx.Err() != nil {
				return result, ctx.Err()
			}
			p.log.Error("session audio extraction failed",
				logging.F("video", video),
				logging.Err(err))
			converted[target] = err.Error()
			u.ErrorMessage = err.Error()
			continue
		}
		converted[target] = ""
		p.paths.AssignSessionAssets(u)
	}
	return result, nil
}

// UtterancesSliceAudio slices each utterance's time range out of its
// session audio into build/utterance_audio/{id}.mp3, recording the
// relative path on the utterance. Utterances without session audio or
// with unresolved times are skipped with a warning.
func (p *Pipeline) UtterancesSliceAudio(ctx context.Context, m *utterance.Map) (*utterance.Map, error) {
	result := m.Clone()
	for _, u := range result.Utterances() {
		if u.Duration() <= 0 {
			p.log.Warn("utterance has no usable time range, not slicing",
				logging.F("id", u.ID()))
			continue
		}
		source := p.paths.FindSessionAudio(u, false)
		if source == "" {
			p.log.Warn("no session audio to slice", logging.F("id", u.ID()))
			continue
		}
		target := p.paths.FindUtteranceAudio(u, true)
		if err := p.media.SliceAudio(ctx, source, target, u.TimeStart, u.TimeEnd); err != nil {
			if ctx.Err() != nil {
				return result, ctx.Err()
			}
			p.log.Error("audio slice failed", logging.F("id", u.ID()), logging.Err(err))
			u.ErrorMessage = err.Error()
			continue
		}
		u.UtteranceAudio = p.paths.ToRelativePath(target, assets.RootData)
	}
	return result, nil
}
