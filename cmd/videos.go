package cmd

import (
	"github.com/spf13/cobra"
)

// NewVideosUpdateCommand creates the videos-update command: per-utterance
// video slicing plus mobile and web encodes.
func NewVideosUpdateCommand(deps *PipelineCommandDeps) *cobra.Command {
	return &cobra.Command{
		Use:   "videos-update",
		Short: "Slice session videos and produce mobile/web encodes",
		Long: `Slice each utterance's time range out of its session video into
build/utterance_video, then encode every clip twice: a square
center-cropped mobile variant and a 16:9 web variant. Requires a prior
data-update so the utterance document exists.`,
		Example: `  mentor-pipeline videos-update --mentor clint`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := deps.NewPipeline()
			if err != nil {
				return err
			}
			return p.VideosUpdate(cmd.Context())
		},
	}
}

// NewVideosReduceNoiseCommand creates the videos-reduce-noise command:
// noise reduction over every sliced utterance video.
func NewVideosReduceNoiseCommand(deps *PipelineCommandDeps) *cobra.Command {
	return &cobra.Command{
		Use:   "videos-reduce-noise",
		Short: "Apply noise reduction to every sliced utterance video",
		Long: `Denoise all sliced utterance videos using a noise sample recorded
under build/noise (first *.wav found). Videos are rewritten in place.`,
		Example: `  mentor-pipeline videos-reduce-noise --mentor clint`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := deps.NewPipeline()
			if err != nil {
				return err
			}
			return p.VideosReduceNoise(cmd.Context())
		},
	}
}
