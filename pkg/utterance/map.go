package utterance

import (
	"fmt"
	"sort"

	mperrors "github.com/otherjamesbrown/mentor-pipeline/pkg/errors"
)

// Map holds all utterances for a mentor keyed by utterance id. Unordered at
// rest; Utterances() always yields ascending (session, part, timeStart)
// order. One pipeline run exclusively owns its Map; the persisted YAML
// document is the only cross-run channel.
type Map struct {
	byID map[string]*Utterance
}

// NewMap returns an empty Map.
func NewMap() *Map {
	return &Map{byID: map[string]*Utterance{}}
}

// MapFromList builds a Map keyed by each utterance's derived id.
func MapFromList(utterances []*Utterance) *Map {
	m := NewMap()
	for _, u := range utterances {
		m.Put(u)
	}
	return m
}

// Len returns the number of utterances in the map.
func (m *Map) Len() int {
	return len(m.byID)
}

// Put stores u under its derived id, replacing any previous entry.
func (m *Map) Put(u *Utterance) {
	m.byID[u.ID()] = u
}

// FindByID returns the utterance with the given id, if present.
func (m *Map) FindByID(id string) (*Utterance, bool) {
	u, ok := m.byID[id]
	return u, ok
}

// FindOne returns the utterance for the (session, part, timeStart, timeEnd)
// quadruple, if present.
func (m *Map) FindOne(session, part int, timeStart, timeEnd float64) (*Utterance, bool) {
	return m.FindByID(ID(session, part, timeStart, timeEnd))
}

// SetTranscript records a transcript and its source audio on an existing
// utterance. An unknown id is a merge logic bug and returns
// ErrUnknownUtterance.
func (m *Map) SetTranscript(id, transcript, sourceAudio string) error {
	u, ok := m.byID[id]
	if !ok {
		return fmt.Errorf("set transcript for '%s': %w", id, mperrors.ErrUnknownUtterance)
	}
	u.Transcript = transcript
	u.UtteranceAudio = sourceAudio
	return nil
}

// Utterances returns all utterances sorted by (session, part, timeStart).
func (m *Map) Utterances() []*Utterance {
	out := make([]*Utterance, 0, len(m.byID))
	for _, u := range m.byID {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Session != b.Session {
			return a.Session < b.Session
		}
		if a.Part != b.Part {
			return a.Part < b.Part
		}
		return a.TimeStart < b.TimeStart
	})
	return out
}

// Clone returns a deep copy of the map. Merge stages always build a new Map
// rather than mutating the loaded one, so a failed run cannot corrupt the
// previously persisted state.
func (m *Map) Clone() *Map {
	c := NewMap()
	for id, u := range m.byID {
		c.byID[id] = u.Clone()
	}
	return c
}
