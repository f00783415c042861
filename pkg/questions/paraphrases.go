package questions

import (
	"fmt"
	"os"

	mperrors "github.com/otherjamesbrown/mentor-pipeline/pkg/errors"
)

// QuestionParaphrases maps one canonical question to its ordered
// paraphrase list.
type QuestionParaphrases struct {
	Question    string
	Paraphrases []string
}

// ParaphrasesByQuestion is the paraphrase lookup table keyed by normalized
// question id.
type ParaphrasesByQuestion struct {
	byID map[string]QuestionParaphrases
}

// NewParaphrasesByQuestion returns an empty table.
func NewParaphrasesByQuestion() *ParaphrasesByQuestion {
	return &ParaphrasesByQuestion{byID: map[string]QuestionParaphrases{}}
}

// Add records paraphrases for a question, replacing any previous entry.
func (t *ParaphrasesByQuestion) Add(question string, paraphrases []string) {
	t.byID[NormalizeID(question)] = QuestionParaphrases{
		Question:    question,
		Paraphrases: append([]string(nil), paraphrases...),
	}
}

// FindParaphrases returns the paraphrases for a question, matching on
// normalized id.
func (t *ParaphrasesByQuestion) FindParaphrases(question string) []string {
	if qp, ok := t.byID[NormalizeID(question)]; ok {
		return qp.Paraphrases
	}
	return nil
}

// Len returns the number of questions in the table.
func (t *ParaphrasesByQuestion) Len() int { return len(t.byID) }

// LoadParaphrasesCSV reads a paraphrase table: question in the first cell,
// one paraphrase per remaining cell. A missing file is tolerated as an
// empty table only when allowMissing is set.
func LoadParaphrasesCSV(path string, allowMissing bool) (*ParaphrasesByQuestion, error) {
	rows, err := readTable(path)
	if err != nil {
		if os.IsNotExist(err) {
			if allowMissing {
				return NewParaphrasesByQuestion(), nil
			}
			return nil, fmt.Errorf("expected paraphrases_by_question csv at %s: %w", path, mperrors.ErrNotFound)
		}
		return nil, err
	}
	t := NewParaphrasesByQuestion()
	for i, row := range rows {
		if i == 0 || len(row) < 2 {
			continue // header, trailing or empty rows
		}
		var paraphrases []string
		for _, p := range row[1:] {
			if p != "" {
				paraphrases = append(paraphrases, p)
			}
		}
		t.byID[NormalizeID(row[0])] = QuestionParaphrases{
			Question:    row[0],
			Paraphrases: paraphrases,
		}
	}
	return t, nil
}
