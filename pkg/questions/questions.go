// Package questions holds the question-keyed lookup tables (topics and
// paraphrases) loaded from CSV and joined into utterances by normalized
// question text.
package questions

import (
	"regexp"
	"strings"
)

var nonAlnum = regexp.MustCompile("[^a-zA-Z0-9]+")

// NormalizeID derives the join key for a question: lowercase, every
// maximal run of non-alphanumeric characters collapsed to a single '_',
// leading and trailing '_' stripped. Pure and idempotent.
func NormalizeID(question string) string {
	return strings.Trim(nonAlnum.ReplaceAllString(strings.ToLower(question), "_"), "_")
}
