// mentor-pipeline turns a mentor's raw interview recordings into the
// utterance document, media clips, captions and training CSVs consumed by
// the downstream question-answering stack.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/otherjamesbrown/mentor-pipeline/cmd"
	"github.com/otherjamesbrown/mentor-pipeline/config"
	"github.com/otherjamesbrown/mentor-pipeline/pkg/assets"
	"github.com/otherjamesbrown/mentor-pipeline/pkg/captions"
	mperrors "github.com/otherjamesbrown/mentor-pipeline/pkg/errors"
	"github.com/otherjamesbrown/mentor-pipeline/pkg/logging"
	"github.com/otherjamesbrown/mentor-pipeline/pkg/media"
	"github.com/otherjamesbrown/mentor-pipeline/pkg/mentorpath"
	"github.com/otherjamesbrown/mentor-pipeline/pkg/pipeline"
	"github.com/otherjamesbrown/mentor-pipeline/pkg/transcribe"
)

var (
	// Persistent flag values.
	cfgFile  string
	mentorID string
	dataRoot string
	logLevel string
	logJSON  bool

	// Shared state initialized in PersistentPreRunE.
	cfg *config.Config
	log logging.Logger
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "mentor-pipeline",
	Short: "Batch pipeline for mentor interview recordings",
	Long: `mentor-pipeline processes one mentor's recorded interview sessions into
training-ready artifacts: a persisted utterance document, per-utterance
audio and video clips, transcripts, VTT caption tracks and the four CSV
tables the classifier trains on.

Recordings are expected under <data-root>/<mentor>/build/recordings,
one directory per session, one timestamp spreadsheet per part. All
derived state lives under the mentor's directory; runs are idempotent
and safe to repeat.

COMMON WORKFLOWS:
  Full data refresh:   mentor-pipeline data-update --mentor <id>
  Produce video clips: mentor-pipeline videos-update --mentor <id>
  Clean up audio:      mentor-pipeline videos-reduce-noise --mentor <id>`,
	SilenceUsage: true,
	PersistentPreRunE: func(c *cobra.Command, args []string) error {
		if c.Name() == "version" || c.Name() == "help" || c.Name() == "completion" {
			return nil
		}
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading configuration: %w", err)
		}
		// Command-line flags win over file and environment.
		if dataRoot != "" {
			cfg.DataRoot = dataRoot
		}
		if logLevel != "" {
			cfg.LogLevel = logLevel
		}
		if logJSON {
			cfg.LogJSON = true
		}
		log = logging.New(&logging.Config{
			Level:      logging.Level(cfg.LogLevel),
			JSONFormat: cfg.LogJSON,
		})
		return nil
	},
}

// newPipeline wires the full pipeline for the mentor selected by --mentor.
// A missing transcription credential is tolerated here and only surfaces
// when a command actually needs to transcribe.
func newPipeline() (*pipeline.Pipeline, error) {
	mp, err := newMentorPath()
	if err != nil {
		return nil, err
	}
	ff := media.NewFFmpeg(log)
	stt, err := newTranscriber()
	if err != nil {
		if !mperrors.IsMissingConfig(err) {
			return nil, err
		}
		log.Warn("transcription backend not configured", logging.Err(err))
		stt = nil
	}
	return pipeline.New(pipeline.Deps{
		Paths:       mp,
		Media:       ff,
		Noise:       media.NewFFmpegReducer(ff),
		Transcriber: stt,
		CaptionOptions: captions.Options{
			ChunkLength:   cfg.Captions.ChunkLength,
			LeadInSeconds: cfg.Captions.LeadInSeconds,
		},
		PollInterval: cfg.Transcribe.PollInterval,
		Log:          log,
	}), nil
}

func newMentorPath() (*mentorpath.MentorPath, error) {
	if mentorID == "" {
		return nil, fmt.Errorf("--mentor is required: %w", mperrors.ErrValidation)
	}
	mp := mentorpath.New(mentorID, cfg.DataRoot, assets.NewRegistry())
	if cfg.VideoRoot != "" {
		mp = mp.WithVideoRoot(cfg.VideoRoot)
	}
	return mp, nil
}

func newTranscriber() (transcribe.Service, error) {
	switch cfg.Transcribe.Backend {
	case config.BackendAssemblyAI:
		return transcribe.NewAssemblyAIService(cfg.Transcribe.AssemblyAIAPIKey, log)
	default:
		return transcribe.NewOpenAIService(cfg.Transcribe.OpenAIAPIKey, log)
	}
}

func newReducer() (media.Reducer, error) {
	return media.NewFFmpegReducer(media.NewFFmpeg(log)), nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (YAML)")
	rootCmd.PersistentFlags().StringVar(&mentorID, "mentor", "", "mentor id to process")
	rootCmd.PersistentFlags().StringVar(&dataRoot, "data-root", "", "mentors data tree (default data/mentors)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "log as JSON")

	deps := &cmd.PipelineCommandDeps{
		NewPipeline: newPipeline,
		NewReducer:  newReducer,
	}
	rootCmd.AddCommand(
		cmd.NewDataUpdateCommand(deps),
		cmd.NewVideosUpdateCommand(deps),
		cmd.NewVideosReduceNoiseCommand(deps),
		cmd.NewTopicsByQuestionCommand(deps),
		cmd.NewReduceNoiseCommand(deps),
		cmd.NewSyncTimestampsCommand(deps),
		cmd.NewVersionCommand(),
	)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
