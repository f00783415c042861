package questions

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mperrors "github.com/otherjamesbrown/mentor-pipeline/pkg/errors"
)

func TestNormalizeID(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"spaces and punctuation", "What is your name?", "what_is_your_name"},
		{"already normalized", "what_is_your_name", "what_is_your_name"},
		{"smart punctuation runs collapse", "Where -- exactly -- did you work?", "where_exactly_did_you_work"},
		{"leading and trailing stripped", "  Hello!  ", "hello"},
		{"digits kept", "Top 10 tips?", "top_10_tips"},
		{"empty", "", ""},
		{"only punctuation", "?!", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeID(tt.in); got != tt.want {
				t.Errorf("NormalizeID(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeID_Idempotent(t *testing.T) {
	for _, q := range []string{"What is your name?", "A  B  C", "x-y-z"} {
		once := NormalizeID(q)
		assert.Equal(t, once, NormalizeID(once), q)
	}
}

func TestTopicsByQuestion_AddAndFind(t *testing.T) {
	table := NewTopicsByQuestion()
	table.Add("What is your name?", []string{"Identity", "About Me"})

	// Lookup matches on normalized id, so phrasing noise is tolerated.
	got := table.FindTopics("what is your name")
	assert.Equal(t, []string{"About Me", "Identity"}, got) // stored sorted

	assert.Nil(t, table.FindTopics("unseen question"))
	assert.Equal(t, 1, table.Len())
}

func TestTopicsCSV_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "topics_by_question.csv")

	table := NewTopicsByQuestion()
	table.Add("What is your name?", []string{"Identity"})
	table.Add("Where did you serve?", []string{"Background", "Service"})
	require.NoError(t, WriteTopicsCSV(table, path))

	loaded, err := LoadTopicsCSV(path, false)
	require.NoError(t, err)
	assert.Equal(t, 2, loaded.Len())
	assert.Equal(t, []string{"Background", "Service"}, loaded.FindTopics("Where did you serve?"))
}

func TestLoadTopicsCSV_Missing(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.csv")

	table, err := LoadTopicsCSV(missing, true)
	require.NoError(t, err)
	assert.Equal(t, 0, table.Len())

	_, err = LoadTopicsCSV(missing, false)
	require.Error(t, err)
	assert.True(t, mperrors.IsNotFound(err))
}

func TestLoadTopicsCSV_SkipsShortRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "topics.csv")
	content := "Questions,Topics\nWhat is your name?,Identity|About Me\nempty-topics-row\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	table, err := LoadTopicsCSV(path, false)
	require.NoError(t, err)
	assert.Equal(t, 1, table.Len())
	assert.Equal(t, []string{"Identity", "About Me"}, table.FindTopics("What is your name?"))
}

func TestLoadParaphrasesCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "paraphrases.csv")
	content := "Questions,Paraphrases\n" +
		"What is your name?,Who are you?,Tell me your name\n" +
		"Where did you grow up?,,\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	table, err := LoadParaphrasesCSV(path, false)
	require.NoError(t, err)
	assert.Equal(t, 2, table.Len())
	assert.Equal(t, []string{"Who are you?", "Tell me your name"},
		table.FindParaphrases("What is your name?"))
	// Empty cells are dropped, not kept as empty paraphrases.
	assert.Empty(t, table.FindParaphrases("Where did you grow up?"))
}

func TestLoadParaphrasesCSV_Missing(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.csv")

	table, err := LoadParaphrasesCSV(missing, true)
	require.NoError(t, err)
	assert.Equal(t, 0, table.Len())

	_, err = LoadParaphrasesCSV(missing, false)
	require.Error(t, err)
	assert.True(t, mperrors.IsNotFound(err))
}
