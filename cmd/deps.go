// Package cmd provides the CLI commands for the mentor-pipeline tool.
package cmd

import (
	"github.com/otherjamesbrown/mentor-pipeline/pkg/media"
	"github.com/otherjamesbrown/mentor-pipeline/pkg/pipeline"
)

// PipelineCommandDeps holds the dependencies for pipeline commands. The
// function fields let tests inject a pipeline built on fakes instead of
// ffmpeg and the transcription APIs.
type PipelineCommandDeps struct {
	// NewPipeline builds the fully wired pipeline for the mentor selected
	// on the command line.
	NewPipeline func() (*pipeline.Pipeline, error)

	// NewReducer builds the standalone noise-reduction collaborator.
	NewReducer func() (media.Reducer, error)
}
