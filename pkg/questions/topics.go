package questions

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	mperrors "github.com/otherjamesbrown/mentor-pipeline/pkg/errors"
)

// QuestionTopics maps one canonical question to its ordered topic list.
type QuestionTopics struct {
	Question string
	Topics   []string
}

// TopicsByQuestion is the topics lookup table keyed by normalized question id.
type TopicsByQuestion struct {
	byID map[string]QuestionTopics
}

// NewTopicsByQuestion returns an empty table.
func NewTopicsByQuestion() *TopicsByQuestion {
	return &TopicsByQuestion{byID: map[string]QuestionTopics{}}
}

// Add records topics for a question, replacing any previous entry. Topics
// are stored sorted.
func (t *TopicsByQuestion) Add(question string, topics []string) {
	sorted := append([]string(nil), topics...)
	sort.Strings(sorted)
	t.byID[NormalizeID(question)] = QuestionTopics{Question: question, Topics: sorted}
}

// FindTopics returns the topics for a question, matching on normalized id.
func (t *TopicsByQuestion) FindTopics(question string) []string {
	if qt, ok := t.byID[NormalizeID(question)]; ok {
		return qt.Topics
	}
	return nil
}

// Len returns the number of questions in the table.
func (t *TopicsByQuestion) Len() int { return len(t.byID) }

// All returns entries ordered by normalized question id.
func (t *TopicsByQuestion) All() []QuestionTopics {
	ids := make([]string, 0, len(t.byID))
	for id := range t.byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out := make([]QuestionTopics, 0, len(ids))
	for _, id := range ids {
		out = append(out, t.byID[id])
	}
	return out
}

// LoadTopicsCSV reads a Questions,Topics table where topic lists are
// '|'-delimited. A missing file is tolerated as an empty table only when
// allowMissing is set; otherwise it is ErrNotFound.
func LoadTopicsCSV(path string, allowMissing bool) (*TopicsByQuestion, error) {
	rows, err := readTable(path)
	if err != nil {
		if os.IsNotExist(err) {
			if allowMissing {
				return NewTopicsByQuestion(), nil
			}
			return nil, fmt.Errorf("expected topics_by_question csv at %s: %w", path, mperrors.ErrNotFound)
		}
		return nil, err
	}
	t := NewTopicsByQuestion()
	for i, row := range rows {
		if i == 0 || len(row) < 2 {
			continue // header, trailing or empty rows
		}
		t.byID[NormalizeID(row[0])] = QuestionTopics{
			Question: row[0],
			Topics:   strings.Split(row[1], "|"),
		}
	}
	return t, nil
}

// WriteTopicsCSV writes the table as Questions,Topics with '|'-joined
// topic lists, creating parent directories as needed.
func WriteTopicsCSV(t *TopicsByQuestion, path string) error {
	records := [][]string{{"Questions", "Topics"}}
	for _, qt := range t.All() {
		records = append(records, []string{qt.Question, strings.Join(qt.Topics, "|")})
	}
	return writeTable(path, records)
}

func readTable(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return rows, nil
}

func writeTable(path string, records [][]string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create dir for %s: %w", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	defer f.Close()
	w := csv.NewWriter(f)
	if err := w.WriteAll(records); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	w.Flush()
	return w.Error()
}
