package pipeline

import (
	"context"

	"github.com/otherjamesbrown/mentor-pipeline/pkg/assets"
	"github.com/otherjamesbrown/mentor-pipeline/pkg/logging"
	"github.com/otherjamesbrown/mentor-pipeline/pkg/utterance"
)

// UtterancesSliceVideo slices each utterance's time range out of its
// session video into build/utterance_video/{id}.mp4, recording the
// relative path on the utterance.
func (p *Pipeline) UtterancesSliceVideo(ctx context.Context, m *utterance.Map) (*utterance.Map, error) {
	result := m.Clone()
	for _, u := range result.Utterances() {
		if u.Duration() <= 0 {
			p.log.Warn("utterance has no usable time range, not slicing",
				logging.F("id", u.ID()))
			continue
		}
		source := p.paths.FindSessionVideo(u, false)
		if source == "" {
			p.log.Warn("no session video to slice", logging.F("id", u.ID()))
			continue
		}
		target := p.paths.FindUtteranceVideo(u, true)
		if err := p.media.SliceVideo(ctx, source, target, u.TimeStart, u.TimeEnd); err != nil {
			if ctx.Err() != nil {
				return result, ctx.Err()
			}
			p.log.Error("video slice failed", logging.F("id", u.ID()), logging.Err(err))
			u.ErrorMessage = err.Error()
			continue
		}
		u.UtteranceVideo = p.paths.ToRelativePath(target, assets.RootVideos)
	}
	return result, nil
}

// EncodeMobileVideos produces the square mobile crop of every sliced
// utterance video into the mobile convention directory.
func (p *Pipeline) EncodeMobileVideos(ctx context.Context, m *utterance.Map) error {
	return p.encodeVideos(ctx, m, p.paths.Registry().UtteranceVideoMobile.ConventionPath, p.media.EncodeMobile, "mobile")
}

// EncodeWebVideos produces the 16:9 web encode of every sliced utterance
// video into the web convention directory.
func (p *Pipeline) EncodeWebVideos(ctx context.Context, m *utterance.Map) error {
	return p.encodeVideos(ctx, m, p.paths.Registry().UtteranceVideoWeb.ConventionPath, p.media.EncodeWeb, "web")
}

func (p *Pipeline) encodeVideos(ctx context.Context, m *utterance.Map,
	targetFor func(string) string,
	encode func(context.Context, string, string) error,
	label string,
) error {
	for _, u := range m.Utterances() {
		source := p.paths.FindUtteranceVideo(u, false)
		if source == "" {
			continue
		}
		target := p.paths.MentorVideo(targetFor(u.ID()))
		if err := encode(ctx, source, target); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			p.log.Error("video encode failed",
				logging.F("id", u.ID()),
				logging.F("encode", label),
				logging.Err(err))
		}
	}
	return nil
}
