package captions

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTranscriptToVTT_SingleChunk(t *testing.T) {
	got := TranscriptToVTT("Hello world.", 2.0)
	want := "WEBVTT FILE:\n\n" +
		"00:00:00.850 --> 00:00:02.850\n" +
		"Hello world.\n\n"
	assert.Equal(t, want, got)
}

func TestTranscriptToVTTOpts_Golden(t *testing.T) {
	transcript := "the quick brown fox jumps over the lazy dog near the river bank"
	got := TranscriptToVTTOpts(transcript, 8.0, Options{ChunkLength: 20})
	want := "WEBVTT FILE:\n\n" +
		"00:00:00.000 --> 00:00:02.000\n" +
		"the quick brown fox jumps\n\n" +
		"00:00:02.000 --> 00:00:04.000\n" +
		" over the lazy dog\n\n" +
		"00:00:04.000 --> 00:00:06.000\n" +
		" near the river bank\n\n"
	assert.Equal(t, want, got)
}

func TestTranscriptToVTT_NeverSplitsWords(t *testing.T) {
	transcript := strings.Repeat("somewhat lengthy words flowing onward ", 8)
	transcript = strings.TrimSpace(transcript)
	words := map[string]bool{}
	for _, w := range strings.Fields(transcript) {
		words[w] = true
	}

	out := TranscriptToVTTOpts(transcript, 30.0, Options{ChunkLength: 25})
	for _, block := range strings.Split(out, "\n\n") {
		lines := strings.SplitN(block, "\n", 2)
		if len(lines) < 2 {
			continue
		}
		for _, w := range strings.Fields(lines[1]) {
			if !words[w] {
				t.Fatalf("chunk split a word: %q in %q", w, lines[1])
			}
		}
	}
}

func TestTranscriptToVTT_LeadInShiftsCues(t *testing.T) {
	base := TranscriptToVTTOpts("one two three", 3.0, Options{ChunkLength: 68})
	shifted := TranscriptToVTTOpts("one two three", 3.0, Options{ChunkLength: 68, LeadInSeconds: 1.0})
	assert.Contains(t, base, "00:00:00.000 --> 00:00:03.000")
	assert.Contains(t, shifted, "00:00:01.000 --> 00:00:04.000")
}

func TestTranscriptToVTT_MinuteRollover(t *testing.T) {
	out := TranscriptToVTTOpts("a b", 150.0, Options{ChunkLength: 68})
	assert.Contains(t, out, "00:00:00.000 --> 00:02:30.000")
}
