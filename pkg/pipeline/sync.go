package pipeline

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/otherjamesbrown/mentor-pipeline/pkg/assets"
	"github.com/otherjamesbrown/mentor-pipeline/pkg/logging"
	"github.com/otherjamesbrown/mentor-pipeline/pkg/mentorpath"
	"github.com/otherjamesbrown/mentor-pipeline/pkg/utterance"
)

// Timestamp spreadsheet column headers.
const (
	colQuestion        = "Question"
	colAnswerUtterance = "Answer/Utterance"
	colResponseStart   = "Response start"
	colResponseEnd     = "Response end"
	colTranscript      = "Transcript"
)

var asciiQuotes = strings.NewReplacer(
	"‘", "'", "’", "'", "‚", "'",
	"“", `"`, "”", `"`, "„", `"`,
)

// normalizeQuotes rewrites smart-quote characters to plain ASCII quotes.
// Recording spreadsheets and transcription services both emit them.
func normalizeQuotes(s string) string {
	return asciiQuotes.Replace(s)
}

// SyncTimestamps merges every timestamp spreadsheet under the recordings
// tree into the utterance map. Rows patch only spreadsheet-sourced fields;
// transcripts, paraphrases, topics, asset paths and error messages from a
// prior run survive. Returns a new map, never mutating the input.
func (p *Pipeline) SyncTimestamps(m *utterance.Map) (*utterance.Map, error) {
	files, err := p.paths.FindTimestamps()
	if err != nil {
		return nil, err
	}
	merged := m.Clone()
	for _, f := range files {
		if err := p.syncTimestampFile(merged, f); err != nil {
			return nil, err
		}
	}
	p.log.Info("timestamps synced",
		logging.F("files", len(files)),
		logging.F("utterances", merged.Len()))
	return merged, nil
}

func (p *Pipeline) syncTimestampFile(merged *utterance.Map, f mentorpath.SessionPartFile) error {
	rows, err := readTimestampRows(f.Path)
	if err != nil {
		return err
	}
	relTimestamps := p.paths.ToRelativePath(f.Path, assets.RootData)
	for _, row := range rows {
		start, err := ParseTimestamp(row.ResponseStart)
		if err != nil {
			p.log.Warn("skipping row with bad start time",
				logging.F("file", f.Path),
				logging.F("value", row.ResponseStart),
				logging.Err(err))
			continue
		}
		end, err := ParseTimestamp(row.ResponseEnd)
		if err != nil {
			p.log.Warn("skipping row with bad end time",
				logging.F("file", f.Path),
				logging.F("value", row.ResponseEnd),
				logging.Err(err))
			continue
		}
		patch := utterance.Patch{
			Mentor:            utterance.String(p.paths.MentorID()),
			Session:           utterance.Int(f.Session),
			Part:              utterance.Int(f.Part),
			TimeStart:         utterance.Float(start),
			TimeEnd:           utterance.Float(end),
			SessionTimestamps: utterance.String(relTimestamps),
		}
		question := normalizeQuotes(strings.TrimSpace(row.Question))
		switch strings.ToUpper(strings.TrimSpace(row.AnswerUtterance)) {
		case "A":
			patch.UtteranceType = utterance.TypeOf(utterance.TypeAnswer)
			patch.Question = utterance.String(question)
		case "U":
			// Utterance rows carry the type marker in the question column.
			t := utterance.Type(question)
			if !t.Valid() {
				p.log.Warn("unknown utterance type marker",
					logging.F("file", f.Path),
					logging.F("marker", question))
				continue
			}
			patch.UtteranceType = utterance.TypeOf(t)
			// The question column held the marker, not a question; clear
			// any question text left by an earlier sync of this range.
			patch.Question = utterance.String("")
		default:
			p.log.Warn("row is neither answer nor utterance",
				logging.F("file", f.Path),
				logging.F("value", row.AnswerUtterance))
			continue
		}
		if row.Transcript != "" {
			patch.Transcript = utterance.String(normalizeQuotes(row.Transcript))
		}
		prior, _ := merged.FindOne(f.Session, f.Part, start, end)
		u := patch.ApplyTo(prior)
		p.paths.AssignSessionAssets(u)
		merged.Put(u)
	}
	return nil
}

type timestampRow struct {
	Question        string
	AnswerUtterance string
	ResponseStart   string
	ResponseEnd     string
	Transcript      string
}

// readTimestampRows parses one timestamp spreadsheet, locating columns by
// header name so extra or reordered columns are harmless.
func readTimestampRows(path string) ([]timestampRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open timestamps %s: %w", path, err)
	}
	defer f.Close()
	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse timestamps %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, nil
	}
	colIdx := map[string]int{}
	for i, h := range records[0] {
		colIdx[strings.TrimSpace(h)] = i
	}
	for _, required := range []string{colQuestion, colAnswerUtterance, colResponseStart, colResponseEnd} {
		if _, ok := colIdx[required]; !ok {
			return nil, fmt.Errorf("timestamps %s: missing column %q", path, required)
		}
	}
	cell := func(row []string, name string) string {
		i, ok := colIdx[name]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}
	var out []timestampRow
	for _, row := range records[1:] {
		tr := timestampRow{
			Question:        cell(row, colQuestion),
			AnswerUtterance: cell(row, colAnswerUtterance),
			ResponseStart:   cell(row, colResponseStart),
			ResponseEnd:     cell(row, colResponseEnd),
			Transcript:      cell(row, colTranscript),
		}
		if tr.Question == "" && tr.AnswerUtterance == "" && tr.ResponseStart == "" {
			continue // trailing blank rows
		}
		out = append(out, tr)
	}
	return out, nil
}

// ParseTimestamp converts a spreadsheet time string to seconds. Accepted
// forms: MM:SS, HH:MM:SS, either with a .cc fraction on the seconds, and
// the editing-tool form HH:MM:SS:cc where the fourth field is
// centiseconds. The result is rounded to centisecond precision.
func ParseTimestamp(s string) (float64, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	var h, m int
	var sec float64
	var err error
	switch len(parts) {
	case 2:
		if m, err = strconv.Atoi(parts[0]); err == nil {
			sec, err = strconv.ParseFloat(parts[1], 64)
		}
	case 3:
		if h, err = strconv.Atoi(parts[0]); err == nil {
			if m, err = strconv.Atoi(parts[1]); err == nil {
				sec, err = strconv.ParseFloat(parts[2], 64)
			}
		}
	case 4:
		var cs int
		if h, err = strconv.Atoi(parts[0]); err == nil {
			if m, err = strconv.Atoi(parts[1]); err == nil {
				var whole int
				if whole, err = strconv.Atoi(parts[2]); err == nil {
					if cs, err = strconv.Atoi(parts[3]); err == nil {
						sec = float64(whole) + float64(cs)*0.01
					}
				}
			}
		}
	default:
		return 0, fmt.Errorf("unrecognized time format %q", s)
	}
	if err != nil {
		return 0, fmt.Errorf("unrecognized time format %q: %w", s, err)
	}
	total := float64(h)*3600 + float64(m)*60 + sec
	return math.Round(total*100) / 100, nil
}
