// Package config provides configuration for the mentor-pipeline CLI.
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	mperrors "github.com/otherjamesbrown/mentor-pipeline/pkg/errors"
)

// TestDefault verifies default configuration values.
func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.DataRoot != DefaultDataRoot {
		t.Errorf("DataRoot = %v, want %v", cfg.DataRoot, DefaultDataRoot)
	}
	if cfg.LogLevel != DefaultLogLevel {
		t.Errorf("LogLevel = %v, want %v", cfg.LogLevel, DefaultLogLevel)
	}
	if cfg.Transcribe.Backend != BackendOpenAI {
		t.Errorf("Backend = %v, want %v", cfg.Transcribe.Backend, BackendOpenAI)
	}
	if cfg.Transcribe.PollInterval != DefaultPollInterval {
		t.Errorf("PollInterval = %v, want %v", cfg.Transcribe.PollInterval, DefaultPollInterval)
	}
	if cfg.LogJSON {
		t.Error("LogJSON should be false by default")
	}
}

// TestLoad_FileOverridesDefaults verifies YAML file values are applied.
func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `data_root: /srv/mentors/data/mentors
log_level: debug
transcribe:
  backend: assemblyai
  poll_interval: 10s
captions:
  chunk_length: 50
  lead_in_seconds: 0.5
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.DataRoot != "/srv/mentors/data/mentors" {
		t.Errorf("DataRoot = %v", cfg.DataRoot)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %v", cfg.LogLevel)
	}
	if cfg.Transcribe.Backend != BackendAssemblyAI {
		t.Errorf("Backend = %v", cfg.Transcribe.Backend)
	}
	if cfg.Transcribe.PollInterval != 10*time.Second {
		t.Errorf("PollInterval = %v", cfg.Transcribe.PollInterval)
	}
	if cfg.Captions.ChunkLength != 50 {
		t.Errorf("ChunkLength = %v", cfg.Captions.ChunkLength)
	}
}

// TestLoad_EnvOverridesFile verifies environment wins over the file.
func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("data_root: /from/file\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("MENTOR_DATA_ROOT", "/from/env")
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.DataRoot != "/from/env" {
		t.Errorf("DataRoot = %v, want /from/env", cfg.DataRoot)
	}
	if cfg.Transcribe.OpenAIAPIKey != "sk-test" {
		t.Errorf("OpenAIAPIKey = %v", cfg.Transcribe.OpenAIAPIKey)
	}
}

// TestLoad_MissingFileIsFine verifies an absent config file is tolerated.
func TestLoad_MissingFileIsFine(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.DataRoot != DefaultDataRoot {
		t.Errorf("DataRoot = %v, want default", cfg.DataRoot)
	}
}

// TestValidate rejects unknown backends and negative intervals.
func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Transcribe.Backend = "watson"
	err := cfg.Validate()
	if err == nil || !mperrors.IsValidation(err) {
		t.Errorf("Validate() = %v, want validation error", err)
	}

	cfg = Default()
	cfg.Transcribe.PollInterval = -time.Second
	err = cfg.Validate()
	if err == nil || !mperrors.IsValidation(err) {
		t.Errorf("Validate() = %v, want validation error", err)
	}

	if err := Default().Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}
