package cmd

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/otherjamesbrown/mentor-pipeline/pkg/media"
	"github.com/otherjamesbrown/mentor-pipeline/pkg/pipeline"
)

func failingDeps(err error) *PipelineCommandDeps {
	return &PipelineCommandDeps{
		NewPipeline: func() (*pipeline.Pipeline, error) { return nil, err },
		NewReducer:  func() (media.Reducer, error) { return nil, err },
	}
}

func TestCommands_PropagatePipelineError(t *testing.T) {
	wantErr := errors.New("--mentor is required")
	deps := failingDeps(wantErr)

	for _, build := range []func(*PipelineCommandDeps) error{
		func(d *PipelineCommandDeps) error {
			c := NewDataUpdateCommand(d)
			c.SetArgs([]string{})
			return c.Execute()
		},
		func(d *PipelineCommandDeps) error {
			c := NewVideosUpdateCommand(d)
			c.SetArgs([]string{})
			return c.Execute()
		},
		func(d *PipelineCommandDeps) error {
			c := NewVideosReduceNoiseCommand(d)
			c.SetArgs([]string{})
			return c.Execute()
		},
		func(d *PipelineCommandDeps) error {
			c := NewTopicsByQuestionCommand(d)
			c.SetArgs([]string{})
			return c.Execute()
		},
		func(d *PipelineCommandDeps) error {
			c := NewSyncTimestampsCommand(d)
			c.SetArgs([]string{})
			return c.Execute()
		},
		func(d *PipelineCommandDeps) error {
			c := NewReduceNoiseCommand(d)
			c.SetArgs([]string{"sample.wav", "target.mp4"})
			return c.Execute()
		},
	} {
		err := build(deps)
		assert.ErrorIs(t, err, wantErr)
	}
}

func TestReduceNoiseCommand_RequiresTwoArgs(t *testing.T) {
	c := NewReduceNoiseCommand(failingDeps(errors.New("unused")))
	c.SetArgs([]string{"only-one"})
	c.SilenceUsage = true
	c.SilenceErrors = true
	err := c.Execute()
	require.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	c := NewVersionCommand()
	var out bytes.Buffer
	c.SetOut(&out)
	c.SetArgs([]string{})
	require.NoError(t, c.Execute())
	assert.Contains(t, out.String(), "mentor-pipeline")

	out.Reset()
	c.SetArgs([]string{"--json"})
	require.NoError(t, c.Execute())
	assert.Contains(t, out.String(), `"version"`)
}
