// Package utterance defines the core entity of the mentor pipeline: one
// bounded time-slice of mentor speech, and the id-keyed map of all such
// slices for a mentor. The map is the unit of persistence; every pipeline
// stage loads it, derives a new copy, and writes it back whole.
package utterance

import (
	"fmt"
	"math"
)

// Type classifies an utterance. Rows tagged as answers get TypeAnswer;
// non-answer rows carry one of the prompt/meta types. The zero value means
// unclassified.
type Type string

const (
	TypeAnswer    Type = "_ANSWER_"
	TypeFeedback  Type = "_FEEDBACK_"
	TypeIdle      Type = "_IDLE_"
	TypeIntro     Type = "_INTRO_"
	TypeOffTopic  Type = "_OFF_TOPIC_"
	TypeProfanity Type = "_PROFANITY_"
	TypePrompt    Type = "_PROMPT_"
	TypeRepeat    Type = "_REPEAT_"
)

// Valid reports whether t is one of the known utterance types.
func (t Type) Valid() bool {
	switch t {
	case TypeAnswer, TypeFeedback, TypeIdle, TypeIntro,
		TypeOffTopic, TypeProfanity, TypePrompt, TypeRepeat:
		return true
	}
	return false
}

// RequiredPromptTypes returns the non-answer types every complete mentor
// dataset is expected to have at least one transcribed utterance for.
func RequiredPromptTypes() []Type {
	return []Type{
		TypeFeedback,
		TypeIdle,
		TypeIntro,
		TypeOffTopic,
		TypePrompt,
		TypeRepeat,
	}
}

// Utterance is one slice of mentor speech. Stored asset paths are relative
// to their asset-type root; absolute resolution always goes through
// mentorpath.
type Utterance struct {
	ErrorMessage      string   `yaml:"errorMessage"`
	Mentor            string   `yaml:"mentor"`
	Question          string   `yaml:"question"`
	Paraphrases       []string `yaml:"paraphrases"`
	Part              int      `yaml:"part"`
	Session           int      `yaml:"session"`
	SessionAudio      string   `yaml:"sessionAudio"`
	SessionTimestamps string   `yaml:"sessionTimestamps"`
	SessionVideo      string   `yaml:"sessionVideo"`
	TimeEnd           float64  `yaml:"timeEnd"`
	TimeStart         float64  `yaml:"timeStart"`
	Topics            []string `yaml:"topics"`
	Transcript        string   `yaml:"transcript"`
	UtteranceAudio    string   `yaml:"utteranceAudio"`
	UtteranceVideo    string   `yaml:"utteranceVideo"`
	UtteranceType     Type     `yaml:"utteranceType"`
}

// New returns an Utterance with defaults: session/part 1, times unset (-1).
func New() *Utterance {
	return &Utterance{
		Part:      1,
		Session:   1,
		TimeStart: -1.0,
		TimeEnd:   -1.0,
	}
}

// Duration returns timeEnd-timeStart in seconds when both are resolved,
// else -1 as a sentinel for "unknown".
func (u *Utterance) Duration() float64 {
	if u.TimeStart >= 0 && u.TimeEnd >= u.TimeStart {
		return u.TimeEnd - u.TimeStart
	}
	return -1
}

// ID returns the stable identifier for this utterance. Both times must be
// resolved (>= 0) before calling.
func (u *Utterance) ID() string {
	return ID(u.Session, u.Part, u.TimeStart, u.TimeEnd)
}

// SkipTranscription reports whether this utterance type never gets sent to
// the transcription service.
func (u *Utterance) SkipTranscription() bool {
	return u.UtteranceType == TypeIdle
}

// Clone returns a deep copy of u.
func (u *Utterance) Clone() *Utterance {
	c := *u
	c.Paraphrases = append([]string(nil), u.Paraphrases...)
	c.Topics = append([]string(nil), u.Topics...)
	return &c
}

// ID derives the stable string id from (session, part, timeStart, timeEnd)
// at centisecond precision, e.g. s001p002s00000234e00000345 for session=1,
// part=2, start=2.34s, end=3.45s. Two utterances with an identical
// quadruple are the same entity.
func ID(session, part int, timeStart, timeEnd float64) string {
	return fmt.Sprintf("s%03dp%03ds%se%s",
		session, part, sliceTimestr(timeStart), sliceTimestr(timeEnd))
}

// sliceTimestr renders seconds as zero-padded HHMMSSCC.
func sliceTimestr(secs float64) string {
	cs := int64(math.Round(secs * 100))
	h := cs / 360000
	cs -= h * 360000
	m := cs / 6000
	cs -= m * 6000
	s := cs / 100
	cs -= s * 100
	return fmt.Sprintf("%02d%02d%02d%02d", h, m, s, cs)
}
