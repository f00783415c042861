package cmd

import (
	"github.com/spf13/cobra"
)

// NewSyncTimestampsCommand creates the sync-timestamps command: the sync
// stage alone, without media or transcription work.
func NewSyncTimestampsCommand(deps *PipelineCommandDeps) *cobra.Command {
	return &cobra.Command{
		Use:   "sync-timestamps",
		Short: "Merge timestamp spreadsheets into the utterance document",
		Long: `Read every timestamp spreadsheet under build/recordings and merge its
rows into the mentor's utterance document. Existing transcripts,
paraphrases, topics and asset paths are preserved; only
spreadsheet-sourced fields are overwritten. No media is touched.`,
		Example: `  mentor-pipeline sync-timestamps --mentor clint`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := deps.NewPipeline()
			if err != nil {
				return err
			}
			return p.SyncOnly()
		},
	}
}
