package utterance

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mperrors "github.com/otherjamesbrown/mentor-pipeline/pkg/errors"
)

func testUtterance(session, part int, start, end float64) *Utterance {
	u := New()
	u.Session = session
	u.Part = part
	u.TimeStart = start
	u.TimeEnd = end
	return u
}

func TestMap_PutAndFind(t *testing.T) {
	m := NewMap()
	u := testUtterance(1, 1, 0, 1)
	m.Put(u)

	got, ok := m.FindByID("s001p001s00000000e00000100")
	require.True(t, ok)
	assert.Same(t, u, got)

	got, ok = m.FindOne(1, 1, 0, 1)
	require.True(t, ok)
	assert.Same(t, u, got)

	_, ok = m.FindOne(2, 1, 0, 1)
	assert.False(t, ok)
}

func TestMap_UtterancesOrdered(t *testing.T) {
	m := MapFromList([]*Utterance{
		testUtterance(2, 1, 0, 1),
		testUtterance(1, 2, 0, 1),
		testUtterance(1, 1, 5, 6),
		testUtterance(1, 1, 0, 1),
	})
	var ids []string
	for _, u := range m.Utterances() {
		ids = append(ids, u.ID())
	}
	assert.Equal(t, []string{
		"s001p001s00000000e00000100",
		"s001p001s00000500e00000600",
		"s001p002s00000000e00000100",
		"s002p001s00000000e00000100",
	}, ids)
}

func TestMap_SetTranscript(t *testing.T) {
	m := NewMap()
	u := testUtterance(1, 1, 0, 1)
	m.Put(u)

	err := m.SetTranscript(u.ID(), "hello there", "build/utterance_audio/x.mp3")
	require.NoError(t, err)
	assert.Equal(t, "hello there", u.Transcript)
	assert.Equal(t, "build/utterance_audio/x.mp3", u.UtteranceAudio)

	err = m.SetTranscript("s009p009s00000000e00000100", "x", "y")
	require.Error(t, err)
	assert.True(t, mperrors.IsUnknownUtterance(err))
}

func TestMap_CloneIsDeep(t *testing.T) {
	m := NewMap()
	u := testUtterance(1, 1, 0, 1)
	u.Transcript = "original"
	m.Put(u)

	c := m.Clone()
	cu, ok := c.FindByID(u.ID())
	require.True(t, ok)
	cu.Transcript = "changed"

	assert.Equal(t, "original", u.Transcript)
	assert.Equal(t, m.Len(), c.Len())
}

func TestYAML_RoundTrip(t *testing.T) {
	m := NewMap()
	u := testUtterance(1, 1, 0, 1)
	u.Mentor = "clint"
	u.Question = "What is your name?"
	u.UtteranceType = TypeAnswer
	u.Transcript = "My name is Clint."
	u.Paraphrases = []string{"Who are you?"}
	u.Topics = []string{"About Me"}
	m.Put(u)

	path := filepath.Join(t.TempDir(), "data", ".mentor", "utterances.yaml")
	require.NoError(t, ToYAML(m, path))

	loaded, err := FromYAML(path)
	require.NoError(t, err)
	require.Equal(t, 1, loaded.Len())
	got, ok := loaded.FindByID(u.ID())
	require.True(t, ok)
	assert.Equal(t, u, got)
}

func TestYAML_ReadsLegacyDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "utterances.yaml")
	legacy := "utterancesById:\n" +
		"  s001p001s00000000e00000100:\n" +
		"    session: 1\n" +
		"    part: 1\n" +
		"    timeStart: 0\n" +
		"    timeEnd: 1\n" +
		"    transcript: hello\n"
	require.NoError(t, os.WriteFile(path, []byte(legacy), 0o644))

	m, err := FromYAML(path)
	require.NoError(t, err)
	u, ok := m.FindByID("s001p001s00000000e00000100")
	require.True(t, ok)
	assert.Equal(t, "hello", u.Transcript)
}

func TestYAML_OverwriteKeepsSingleDocument(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "utterances.yaml")

	m := NewMap()
	m.Put(testUtterance(1, 1, 0, 1))
	require.NoError(t, ToYAML(m, path))

	m.Put(testUtterance(1, 1, 2, 3))
	require.NoError(t, ToYAML(m, path))

	loaded, err := FromYAML(path)
	require.NoError(t, err)
	assert.Equal(t, 2, loaded.Len())
}
