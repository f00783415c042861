package cmd

import (
	"github.com/spf13/cobra"
)

// NewTopicsByQuestionCommand creates the topics-by-question-generate
// command: project utterance topics into the shared lookup table.
func NewTopicsByQuestionCommand(deps *PipelineCommandDeps) *cobra.Command {
	var fileName string

	cmd := &cobra.Command{
		Use:   "topics-by-question-generate",
		Short: "Generate the topics-by-question CSV from recorded utterances",
		Long: `Project every answered question's topics from the utterance document
into the shared topics_by_question.csv at the data root. The table is
the join source for later data-update runs, including other mentors'.`,
		Example: `  mentor-pipeline topics-by-question-generate --mentor clint

  # Write to a differently named table
  mentor-pipeline topics-by-question-generate --mentor clint --file topics_v2.csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := deps.NewPipeline()
			if err != nil {
				return err
			}
			return p.TopicsByQuestionGenerate(fileName)
		},
	}

	cmd.Flags().StringVar(&fileName, "file", "",
		"output file name (default topics_by_question.csv)")
	return cmd
}
