package pipeline

import (
	"github.com/otherjamesbrown/mentor-pipeline/pkg/questions"
	"github.com/otherjamesbrown/mentor-pipeline/pkg/utterance"
)

// UpdateParaphrases joins the paraphrases-by-question table into the map
// by normalized question id. Questions absent from the table keep their
// existing paraphrases.
func (p *Pipeline) UpdateParaphrases(m *utterance.Map, table *questions.ParaphrasesByQuestion) *utterance.Map {
	result := m.Clone()
	for _, u := range result.Utterances() {
		if u.Question == "" {
			continue
		}
		if found := table.FindParaphrases(u.Question); found != nil {
			u.Paraphrases = append([]string(nil), found...)
		}
	}
	return result
}

// UpdateTopics joins the topics-by-question table into the map by
// normalized question id. Questions absent from the table keep their
// existing topics.
func (p *Pipeline) UpdateTopics(m *utterance.Map, table *questions.TopicsByQuestion) *utterance.Map {
	result := m.Clone()
	for _, u := range result.Utterances() {
		if u.Question == "" {
			continue
		}
		if found := table.FindTopics(u.Question); found != nil {
			u.Topics = append([]string(nil), found...)
		}
	}
	return result
}

// UtterancesToTopicsByQuestion projects each answered question's topics
// into a topics-by-question table. Later utterances of the same question
// win, which is harmless because topics are joined per question.
func (p *Pipeline) UtterancesToTopicsByQuestion(m *utterance.Map) *questions.TopicsByQuestion {
	table := questions.NewTopicsByQuestion()
	for _, u := range m.Utterances() {
		if u.Question == "" || len(u.Topics) == 0 {
			continue
		}
		table.Add(u.Question, u.Topics)
	}
	return table
}
