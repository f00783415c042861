// Package trainingdata projects the utterance map into the four flat CSV
// artifacts consumed by the downstream classifier. Builders are purely
// derived from utterances and recomputable at any time.
package trainingdata

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Column headers for the four artifacts.
var (
	ColsClassifierData              = []string{"ID", "topics", "text", "question"}
	ColsQuestionsParaphrasesAnswers = []string{"Topics", "Helpers", "Mentor", "Question", "text"}
	ColsPromptsUtterances           = []string{"Situation", "Mentor", "Utterance/Prompt"}
	ColsUtteranceData               = []string{"ID", "utterance", "situation"}
)

// ClassifierDataRow is one classifier-training row: the question text plus
// its paraphrases (newline-joined) against comma-joined topics and the
// utterance transcript, keyed by utterance id.
type ClassifierDataRow struct {
	ID          string
	Question    string
	Paraphrases []string
	Topics      []string
	Text        string
}

func (r ClassifierDataRow) record() []string {
	questionAndParaphrases := append([]string{r.Question}, r.Paraphrases...)
	return []string{
		r.ID,
		strings.Join(r.Topics, ","),
		r.Text,
		strings.Join(questionAndParaphrases, "\n"),
	}
}

// ClassifierDataBuilder accumulates classifier rows in insertion order.
type ClassifierDataBuilder struct {
	rows []ClassifierDataRow
}

// AddRow appends one classifier row.
func (b *ClassifierDataBuilder) AddRow(row ClassifierDataRow) {
	b.rows = append(b.rows, row)
}

// Len returns the number of rows added.
func (b *ClassifierDataBuilder) Len() int { return len(b.rows) }

// Records returns the rows as CSV records, without the header.
func (b *ClassifierDataBuilder) Records() [][]string {
	out := make([][]string, 0, len(b.rows))
	for _, r := range b.rows {
		out = append(out, r.record())
	}
	return out
}

// Write writes the artifact (header plus rows) to path.
func (b *ClassifierDataBuilder) Write(path string) error {
	return writeCSV(path, ColsClassifierData, b.Records())
}

// QuestionsParaphrasesAnswersRow is one Q/A export row for an answer-type
// utterance. Helpers is unused and always empty.
type QuestionsParaphrasesAnswersRow struct {
	Topics   []string
	Helpers  string
	MentorID string
	Question string
	Answer   string
}

func (r QuestionsParaphrasesAnswersRow) record() []string {
	return []string{strings.Join(r.Topics, ","), r.Helpers, r.MentorID, r.Question, r.Answer}
}

// QuestionsParaphrasesAnswersBuilder accumulates Q/A rows in insertion order.
type QuestionsParaphrasesAnswersBuilder struct {
	rows []QuestionsParaphrasesAnswersRow
}

// AddRow appends one Q/A row.
func (b *QuestionsParaphrasesAnswersBuilder) AddRow(row QuestionsParaphrasesAnswersRow) {
	b.rows = append(b.rows, row)
}

// Len returns the number of rows added.
func (b *QuestionsParaphrasesAnswersBuilder) Len() int { return len(b.rows) }

// Records returns the rows as CSV records, without the header.
func (b *QuestionsParaphrasesAnswersBuilder) Records() [][]string {
	out := make([][]string, 0, len(b.rows))
	for _, r := range b.rows {
		out = append(out, r.record())
	}
	return out
}

// Write writes the artifact (header plus rows) to path.
func (b *QuestionsParaphrasesAnswersBuilder) Write(path string) error {
	return writeCSV(path, ColsQuestionsParaphrasesAnswers, b.Records())
}

// PromptsUtterancesRow is one export row for a non-answer utterance type.
type PromptsUtterancesRow struct {
	MentorID  string
	Situation string
	Utterance string
}

func (r PromptsUtterancesRow) record() []string {
	return []string{r.Situation, r.MentorID, r.Utterance}
}

// PromptsUtterancesBuilder accumulates prompt rows in insertion order.
type PromptsUtterancesBuilder struct {
	rows []PromptsUtterancesRow
}

// AddRow appends one prompts row.
func (b *PromptsUtterancesBuilder) AddRow(row PromptsUtterancesRow) {
	b.rows = append(b.rows, row)
}

// Len returns the number of rows added.
func (b *PromptsUtterancesBuilder) Len() int { return len(b.rows) }

// Records returns the rows as CSV records, without the header.
func (b *PromptsUtterancesBuilder) Records() [][]string {
	out := make([][]string, 0, len(b.rows))
	for _, r := range b.rows {
		out = append(out, r.record())
	}
	return out
}

// Write writes the artifact (header plus rows) to path.
func (b *PromptsUtterancesBuilder) Write(path string) error {
	return writeCSV(path, ColsPromptsUtterances, b.Records())
}

// UtteranceDataRow is one row of the per-utterance export.
type UtteranceDataRow struct {
	ID        string
	Utterance string
	Situation string
}

func (r UtteranceDataRow) record() []string {
	return []string{r.ID, r.Utterance, r.Situation}
}

// UtteranceDataBuilder accumulates utterance rows in insertion order.
type UtteranceDataBuilder struct {
	rows []UtteranceDataRow
}

// AddRow appends one utterance row.
func (b *UtteranceDataBuilder) AddRow(row UtteranceDataRow) {
	b.rows = append(b.rows, row)
}

// Len returns the number of rows added.
func (b *UtteranceDataBuilder) Len() int { return len(b.rows) }

// Records returns the rows as CSV records, without the header.
func (b *UtteranceDataBuilder) Records() [][]string {
	out := make([][]string, 0, len(b.rows))
	for _, r := range b.rows {
		out = append(out, r.record())
	}
	return out
}

// Write writes the artifact (header plus rows) to path.
func (b *UtteranceDataBuilder) Write(path string) error {
	return writeCSV(path, ColsUtteranceData, b.Records())
}

func writeCSV(path string, header []string, records [][]string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create dir for %s: %w", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	defer f.Close()
	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := w.WriteAll(records); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	w.Flush()
	return w.Error()
}
