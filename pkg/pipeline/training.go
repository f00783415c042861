package pipeline

import (
	"strings"

	"github.com/otherjamesbrown/mentor-pipeline/pkg/logging"
	"github.com/otherjamesbrown/mentor-pipeline/pkg/mentorpath"
	"github.com/otherjamesbrown/mentor-pipeline/pkg/trainingdata"
	"github.com/otherjamesbrown/mentor-pipeline/pkg/utterance"
)

// TrainingData bundles the four derived training artifacts for one mentor.
type TrainingData struct {
	Classifier *trainingdata.ClassifierDataBuilder
	Answers    *trainingdata.QuestionsParaphrasesAnswersBuilder
	Prompts    *trainingdata.PromptsUtterancesBuilder
	Utterances *trainingdata.UtteranceDataBuilder
}

// Write writes all four artifacts under the mentor's data directory.
func (td *TrainingData) Write(paths *mentorpath.MentorPath) error {
	if err := td.Classifier.Write(paths.TrainingClassifierDataCSV()); err != nil {
		return err
	}
	if err := td.Answers.Write(paths.TrainingQuestionsParaphrasesAnswersCSV()); err != nil {
		return err
	}
	if err := td.Prompts.Write(paths.TrainingPromptsUtterancesCSV()); err != nil {
		return err
	}
	return td.Utterances.Write(paths.TrainingUtteranceDataCSV())
}

// UtterancesToTrainingData projects the utterance map into the four flat
// training artifacts in canonical utterance order. Answer utterances feed
// the classifier and Q/A artifacts; every other classified type feeds the
// prompts artifact; all transcribed utterances feed the utterance
// artifact. The source map is never mutated.
func (p *Pipeline) UtterancesToTrainingData(m *utterance.Map) *TrainingData {
	td := &TrainingData{
		Classifier: &trainingdata.ClassifierDataBuilder{},
		Answers:    &trainingdata.QuestionsParaphrasesAnswersBuilder{},
		Prompts:    &trainingdata.PromptsUtterancesBuilder{},
		Utterances: &trainingdata.UtteranceDataBuilder{},
	}
	typesSeen := map[utterance.Type]bool{}
	for _, u := range m.Utterances() {
		if u.Transcript == "" {
			if !u.SkipTranscription() {
				p.log.Warn("utterance has no transcript, excluded from training data",
					logging.F("id", u.ID()))
				continue
			}
			// IDLE is silence; it belongs in the utterance artifact anyway.
		}
		typesSeen[u.UtteranceType] = true
		switch u.UtteranceType {
		case utterance.TypeAnswer:
			td.Classifier.AddRow(trainingdata.ClassifierDataRow{
				ID:          u.ID(),
				Question:    u.Question,
				Paraphrases: u.Paraphrases,
				Topics:      u.Topics,
				Text:        u.Transcript,
			})
			td.Answers.AddRow(trainingdata.QuestionsParaphrasesAnswersRow{
				Topics:   u.Topics,
				MentorID: u.Mentor,
				Question: u.Question,
				Answer:   u.Transcript,
			})
		case "":
			p.log.Warn("unclassified utterance excluded from training data",
				logging.F("id", u.ID()))
			continue
		default:
			td.Prompts.AddRow(trainingdata.PromptsUtterancesRow{
				MentorID:  u.Mentor,
				Situation: string(u.UtteranceType),
				Utterance: u.Transcript,
			})
		}
		td.Utterances.AddRow(trainingdata.UtteranceDataRow{
			ID:        u.ID(),
			Utterance: u.Transcript,
			Situation: string(u.UtteranceType),
		})
	}
	if missing := missingPromptTypes(typesSeen); len(missing) > 0 {
		p.log.Warn("dataset is missing required utterance types",
			logging.F("missing", strings.Join(missing, ",")))
	}
	return td
}

func missingPromptTypes(seen map[utterance.Type]bool) []string {
	var missing []string
	for _, t := range utterance.RequiredPromptTypes() {
		if !seen[t] {
			missing = append(missing, string(t))
		}
	}
	return missing
}
