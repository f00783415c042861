package cmd

import (
	"github.com/spf13/cobra"
)

// NewReduceNoiseCommand creates the reduce-noise command: one-off noise
// reduction of a single media file against a noise sample.
func NewReduceNoiseCommand(deps *PipelineCommandDeps) *cobra.Command {
	return &cobra.Command{
		Use:   "reduce-noise <noise-sample> <target>",
		Short: "Denoise one media file using a recorded noise sample",
		Long: `Measure the noise profile of <noise-sample> and rewrite <target> with
that profile suppressed. Useful for spot-fixing a single recording
without re-running the whole videos-reduce-noise pass.`,
		Example: `  mentor-pipeline reduce-noise build/noise/room.wav build/utterance_video/s001p001s00000000e00001000.mp4`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := deps.NewReducer()
			if err != nil {
				return err
			}
			return r.Reduce(cmd.Context(), args[0], args[1])
		},
	}
}
