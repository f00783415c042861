package utterance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestID(t *testing.T) {
	tests := []struct {
		name          string
		session, part int
		start, end    float64
		want          string
	}{
		{"known example", 1, 2, 2.34, 3.45, "s001p002s00000234e00000345"},
		{"zero start", 1, 1, 0, 1, "s001p001s00000000e00000100"},
		{"minutes and hours", 12, 3, 3600 + 61.5, 3600 + 62.25, "s012p003s01010150e01010225"},
		{"rounds to centiseconds", 1, 1, 1.006, 2.345, "s001p001s00000101e00000235"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ID(tt.session, tt.part, tt.start, tt.end); got != tt.want {
				t.Errorf("ID() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestID_Injective(t *testing.T) {
	type quad struct {
		session, part int
		start, end    float64
	}
	seen := map[string]quad{}
	for session := 1; session <= 3; session++ {
		for part := 1; part <= 3; part++ {
			for cs := 0; cs < 200; cs += 7 {
				q := quad{session, part, float64(cs) / 100, float64(cs)/100 + 1.5}
				id := ID(q.session, q.part, q.start, q.end)
				if prev, ok := seen[id]; ok && prev != q {
					t.Fatalf("collision: %s for %+v and %+v", id, prev, q)
				}
				seen[id] = q
			}
		}
	}
}

func TestNew_Defaults(t *testing.T) {
	u := New()
	assert.Equal(t, 1, u.Session)
	assert.Equal(t, 1, u.Part)
	assert.Equal(t, -1.0, u.TimeStart)
	assert.Equal(t, -1.0, u.TimeEnd)
}

func TestDuration(t *testing.T) {
	tests := []struct {
		name       string
		start, end float64
		want       float64
	}{
		{"resolved", 1.0, 3.5, 2.5},
		{"unset", -1, -1, -1},
		{"end before start", 5, 2, -1},
		{"zero length", 2, 2, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := &Utterance{TimeStart: tt.start, TimeEnd: tt.end}
			if got := u.Duration(); got != tt.want {
				t.Errorf("Duration() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestType_Valid(t *testing.T) {
	for _, valid := range []Type{TypeAnswer, TypeFeedback, TypeIdle, TypeIntro,
		TypeOffTopic, TypeProfanity, TypePrompt, TypeRepeat} {
		if !valid.Valid() {
			t.Errorf("%s should be valid", valid)
		}
	}
	for _, invalid := range []Type{"", "_NOPE_", "answer", "_ANSWER"} {
		if invalid.Valid() {
			t.Errorf("%q should not be valid", invalid)
		}
	}
}

func TestSkipTranscription(t *testing.T) {
	assert.True(t, (&Utterance{UtteranceType: TypeIdle}).SkipTranscription())
	assert.False(t, (&Utterance{UtteranceType: TypeAnswer}).SkipTranscription())
	assert.False(t, (&Utterance{}).SkipTranscription())
}

func TestClone_Independent(t *testing.T) {
	u := &Utterance{
		Question:    "What is your name?",
		Paraphrases: []string{"Who are you?"},
		Topics:      []string{"About Me"},
	}
	c := u.Clone()
	c.Paraphrases[0] = "changed"
	c.Topics = append(c.Topics, "extra")
	c.Question = "changed"
	assert.Equal(t, "Who are you?", u.Paraphrases[0])
	assert.Equal(t, []string{"About Me"}, u.Topics)
	assert.Equal(t, "What is your name?", u.Question)
}

func TestPatch_PreservesUnpatchedFields(t *testing.T) {
	prior := &Utterance{
		Mentor:         "clint",
		Question:       "old question",
		Transcript:     "previous transcript",
		Paraphrases:    []string{"p1"},
		Topics:         []string{"t1"},
		Session:        1,
		Part:           1,
		TimeStart:      0,
		TimeEnd:        1,
		SessionAudio:   "build/s001p001.mp3",
		SessionVideo:   "build/s001p001.mp4",
		UtteranceAudio: "build/utterance_audio/x.mp3",
		ErrorMessage:   "earlier slice failed",
	}
	patch := Patch{
		Question:      String("new question"),
		UtteranceType: TypeOf(TypeAnswer),
		TimeStart:     Float(0),
		TimeEnd:       Float(1.5),
	}
	got := patch.ApplyTo(prior)

	require.NotSame(t, prior, got)
	assert.Equal(t, "new question", got.Question)
	assert.Equal(t, TypeAnswer, got.UtteranceType)
	assert.Equal(t, 1.5, got.TimeEnd)

	// Everything the patch does not carry survives.
	assert.Equal(t, "previous transcript", got.Transcript)
	assert.Equal(t, []string{"p1"}, got.Paraphrases)
	assert.Equal(t, []string{"t1"}, got.Topics)
	assert.Equal(t, "build/s001p001.mp3", got.SessionAudio)
	assert.Equal(t, "build/s001p001.mp4", got.SessionVideo)
	assert.Equal(t, "build/utterance_audio/x.mp3", got.UtteranceAudio)
	assert.Equal(t, "earlier slice failed", got.ErrorMessage)

	// The prior is untouched.
	assert.Equal(t, "old question", prior.Question)
}

func TestPatch_NilPriorStartsFromDefaults(t *testing.T) {
	got := Patch{Question: String("q")}.ApplyTo(nil)
	assert.Equal(t, 1, got.Session)
	assert.Equal(t, 1, got.Part)
	assert.Equal(t, "q", got.Question)
}

func TestRequiredPromptTypes(t *testing.T) {
	types := RequiredPromptTypes()
	assert.Len(t, types, 6)
	assert.NotContains(t, types, TypeAnswer)
	assert.NotContains(t, types, TypeProfanity)
}
