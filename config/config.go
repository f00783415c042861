// Package config provides configuration for the mentor-pipeline CLI. It
// layers a YAML config file, a local .env file, and environment variables
// (highest precedence), in the load order batch jobs expect: defaults,
// then file, then environment.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	mperrors "github.com/otherjamesbrown/mentor-pipeline/pkg/errors"
)

// Transcription backend names.
const (
	BackendOpenAI     = "openai"
	BackendAssemblyAI = "assemblyai"
)

// Default configuration values.
const (
	DefaultDataRoot     = "data/mentors"
	DefaultPollInterval = 5 * time.Second
	DefaultLogLevel     = "info"
)

// TranscribeConfig selects and credentials the transcription backend.
type TranscribeConfig struct {
	// Backend is one of openai or assemblyai.
	Backend string `yaml:"backend" envconfig:"TRANSCRIBE_BACKEND"`

	// OpenAIAPIKey authenticates the Whisper backend. Environment only,
	// never read from the config file.
	OpenAIAPIKey string `yaml:"-" envconfig:"OPENAI_API_KEY"`

	// AssemblyAIAPIKey authenticates the AssemblyAI backend. Environment
	// only, never read from the config file.
	AssemblyAIAPIKey string `yaml:"-" envconfig:"ASSEMBLYAI_API_KEY"`

	// PollInterval is how often async backends poll for job completion.
	PollInterval time.Duration `yaml:"poll_interval" envconfig:"TRANSCRIBE_POLL_INTERVAL"`
}

// CaptionsConfig tunes caption generation.
type CaptionsConfig struct {
	// ChunkLength is the target caption line length in characters.
	ChunkLength int `yaml:"chunk_length" envconfig:"CAPTIONS_CHUNK_LENGTH"`

	// LeadInSeconds shifts cue times to account for transcription lead-in.
	LeadInSeconds float64 `yaml:"lead_in_seconds" envconfig:"CAPTIONS_LEAD_IN_SECONDS"`
}

// Config is the full CLI configuration.
type Config struct {
	// DataRoot is the mentors data tree (the directory holding one
	// subdirectory per mentor).
	DataRoot string `yaml:"data_root" envconfig:"MENTOR_DATA_ROOT"`

	// VideoRoot overrides the videos/mentors tree; empty means the
	// conventional sibling of DataRoot.
	VideoRoot string `yaml:"video_root" envconfig:"MENTOR_VIDEO_ROOT"`

	// LogLevel sets the minimum log level (debug, info, warn, error).
	LogLevel string `yaml:"log_level" envconfig:"MENTOR_LOG_LEVEL"`

	// LogJSON switches logs to JSON output for batch/CI runs.
	LogJSON bool `yaml:"log_json" envconfig:"MENTOR_LOG_JSON"`

	Transcribe TranscribeConfig `yaml:"transcribe"`
	Captions   CaptionsConfig   `yaml:"captions"`
}

// Default returns a Config with defaults for interactive use.
func Default() *Config {
	return &Config{
		DataRoot: DefaultDataRoot,
		LogLevel: DefaultLogLevel,
		Transcribe: TranscribeConfig{
			Backend:      BackendOpenAI,
			PollInterval: DefaultPollInterval,
		},
	}
}

// Load builds the configuration: defaults, then the YAML file at path
// (skipped when path is empty or the file is absent), then a local .env
// file, then environment variables.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		if err := loadFromFile(cfg, path); err != nil {
			return nil, err
		}
	}
	// A missing .env is the normal case outside development checkouts.
	_ = godotenv.Load()
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return nil
}

// Validate checks cross-field constraints.
func (c *Config) Validate() error {
	switch c.Transcribe.Backend {
	case BackendOpenAI, BackendAssemblyAI:
	default:
		return fmt.Errorf("unknown transcribe backend %q: %w",
			c.Transcribe.Backend, mperrors.ErrValidation)
	}
	if c.Transcribe.PollInterval < 0 {
		return fmt.Errorf("transcribe poll_interval must not be negative: %w",
			mperrors.ErrValidation)
	}
	return nil
}
