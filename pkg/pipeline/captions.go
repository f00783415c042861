package pipeline

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/otherjamesbrown/mentor-pipeline/pkg/captions"
	"github.com/otherjamesbrown/mentor-pipeline/pkg/logging"
	"github.com/otherjamesbrown/mentor-pipeline/pkg/utterance"
)

// UtterancesToCaptions writes a VTT caption track for every transcribed
// utterance with a usable duration, at the captions asset path.
func (p *Pipeline) UtterancesToCaptions(m *utterance.Map) error {
	for _, u := range m.Utterances() {
		if u.Transcript == "" || u.Duration() <= 0 {
			continue
		}
		target := p.paths.FindUtteranceCaptions(u, true)
		if target == "" {
			continue
		}
		vtt := captions.TranscriptToVTTOpts(u.Transcript, u.Duration(), p.captionOpts)
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return fmt.Errorf("create captions dir: %w", err)
		}
		if err := os.WriteFile(target, []byte(vtt), 0o644); err != nil {
			return fmt.Errorf("write captions %s: %w", target, err)
		}
		p.log.Debug("captions written", logging.F("id", u.ID()), logging.F("path", target))
	}
	return nil
}
