package pipeline

import (
	"context"
	"fmt"

	mperrors "github.com/otherjamesbrown/mentor-pipeline/pkg/errors"
	"github.com/otherjamesbrown/mentor-pipeline/pkg/logging"
	"github.com/otherjamesbrown/mentor-pipeline/pkg/utterance"
)

// ReduceNoise applies the noise-reduction collaborator to every sliced
// utterance video, using the first noise sample recorded under
// build/noise. Having no sample is an error: the command was invoked for
// nothing.
func (p *Pipeline) ReduceNoise(ctx context.Context, m *utterance.Map) error {
	samples := p.paths.FindNoiseSamples()
	if len(samples) == 0 {
		return fmt.Errorf("no noise samples under %s: %w", p.paths.NoisePath(), mperrors.ErrNotFound)
	}
	sample := samples[0]
	if len(samples) > 1 {
		p.log.Warn("multiple noise samples found, using first",
			logging.F("sample", sample))
	}
	reduced := 0
	for _, u := range m.Utterances() {
		target := p.paths.FindUtteranceVideo(u, false)
		if target == "" {
			continue
		}
		if err := p.noise.Reduce(ctx, sample, target); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			p.log.Error("noise reduction failed",
				logging.F("id", u.ID()),
				logging.F("target", target),
				logging.Err(err))
			continue
		}
		reduced++
	}
	p.log.Info("noise reduction complete", logging.F("videos", reduced))
	return nil
}
