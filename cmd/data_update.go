package cmd

import (
	"github.com/spf13/cobra"
)

// NewDataUpdateCommand creates the data-update command: the full data
// chain from timestamp spreadsheets to training artifacts.
func NewDataUpdateCommand(deps *PipelineCommandDeps) *cobra.Command {
	var forceTranscribe bool

	cmd := &cobra.Command{
		Use:   "data-update",
		Short: "Sync, slice, transcribe and assemble training data for a mentor",
		Long: `Run the full data pipeline for one mentor:

  1. Sync timestamp spreadsheets under build/recordings into the
     utterance document, preserving transcripts and topics from
     earlier runs.
  2. Extract session audio from session video where missing.
  3. Slice per-utterance audio clips.
  4. Transcribe utterances that have no transcript yet.
  5. Join paraphrases and topics tables by question.
  6. Write VTT caption tracks.
  7. Write the four training CSV artifacts.

The utterance document is persisted after every transcription update,
so an interrupted run keeps completed transcriptions.`,
		Example: `  # Update everything for mentor clint
  mentor-pipeline data-update --mentor clint

  # Re-transcribe even utterances that already have transcripts
  mentor-pipeline data-update --mentor clint --force-transcribe`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := deps.NewPipeline()
			if err != nil {
				return err
			}
			return p.DataUpdate(cmd.Context(), forceTranscribe)
		},
	}

	cmd.Flags().BoolVar(&forceTranscribe, "force-transcribe", false,
		"re-transcribe utterances that already have transcripts")
	return cmd
}
