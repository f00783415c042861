// Package captions converts a transcript string into a simple fixed-width
// timed-caption (WebVTT) format. No word-level timing is available, so
// chunks get an equal share of the clip duration; this is an accepted
// approximation, not word-accurate captioning.
package captions

import (
	"fmt"
	"math"
	"strings"
)

// Defaults for caption chunking. Both are empirically tuned and safe to
// adjust per deployment.
const (
	// DefaultChunkLength is the target caption line length in characters.
	DefaultChunkLength = 68
	// DefaultLeadInSeconds shifts cue times to account for observed
	// transcription lead-in.
	DefaultLeadInSeconds = 0.85
)

// Options tunes caption chunking.
type Options struct {
	ChunkLength   int
	LeadInSeconds float64
}

// TranscriptToVTT renders a transcript as WebVTT using default options.
func TranscriptToVTT(transcript string, duration float64) string {
	return TranscriptToVTTOpts(transcript, duration, Options{
		ChunkLength:   DefaultChunkLength,
		LeadInSeconds: DefaultLeadInSeconds,
	})
}

// TranscriptToVTTOpts renders a transcript as WebVTT. The transcript is
// split into chunks of roughly opts.ChunkLength characters, breaking only
// at space boundaries, and each chunk gets an equal share of duration.
func TranscriptToVTTOpts(transcript string, duration float64, opts Options) string {
	chunkLen := opts.ChunkLength
	if chunkLen <= 0 {
		chunkLen = DefaultChunkLength
	}

	var spaces []int
	for i, r := range transcript {
		if r == ' ' {
			spaces = append(spaces, i)
		}
	}

	// Boundary k is the first space past each successive multiple of the
	// chunk length, so words are never split.
	splits := []int{0}
	for k := 1; k < len(spaces); k++ {
		for _, si := range spaces {
			if si > chunkLen*k {
				if si != splits[len(splits)-1] {
					splits = append(splits, si)
				}
				break
			}
		}
	}
	if n := len(transcript); n > splits[len(splits)-1] {
		splits = append(splits, n)
	}

	chunkCount := math.Ceil(float64(len(transcript)) / float64(chunkLen))
	chunkDur := 0.0
	if chunkCount > 0 {
		chunkDur = duration / chunkCount
	}

	var b strings.Builder
	b.WriteString("WEBVTT FILE:\n\n")
	for j := 0; j < len(splits)-1; j++ {
		start := round2(chunkDur*float64(j)) + opts.LeadInSeconds
		end := round2(chunkDur*float64(j+1)) + opts.LeadInSeconds
		fmt.Fprintf(&b, "%s --> %s\n", cueTime(start), cueTime(end))
		b.WriteString(transcript[splits[j]:splits[j+1]])
		b.WriteString("\n\n")
	}
	return b.String()
}

// cueTime formats seconds as 00:MM:SS.mmm with a literal two-digit hour.
func cueTime(secs float64) string {
	m := int(math.Floor(secs / 60))
	s := math.Mod(secs, 60)
	return fmt.Sprintf("00:%02d:%06.3f", m, s)
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
