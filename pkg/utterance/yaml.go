package utterance

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// document is the persisted shape: the full utterance list in canonical
// order, read and written as a single unit.
type document struct {
	Utterances []*Utterance `yaml:"utterances"`
}

// legacyDocument is the older persisted shape keyed by utterance id. Still
// readable so existing mentor trees load without migration.
type legacyDocument struct {
	UtterancesByID map[string]*Utterance `yaml:"utterancesById"`
}

// FromYAML loads an utterance map from the persisted document at path.
func FromYAML(path string) (*Map, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read utterances: %w", err)
	}
	var doc document
	if err := yaml.Unmarshal(raw, &doc); err == nil && doc.Utterances != nil {
		return MapFromList(doc.Utterances), nil
	}
	var legacy legacyDocument
	if err := yaml.Unmarshal(raw, &legacy); err != nil {
		return nil, fmt.Errorf("parse utterances %s: %w", path, err)
	}
	m := NewMap()
	for _, u := range legacy.UtterancesByID {
		m.Put(u)
	}
	return m, nil
}

// ToYAML writes the full map to path, creating parent directories as
// needed. The write goes to a temp file first and is renamed into place so
// a crash mid-write leaves the previous version intact.
func ToYAML(m *Map, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create utterances dir: %w", err)
	}
	raw, err := yaml.Marshal(document{Utterances: m.Utterances()})
	if err != nil {
		return fmt.Errorf("marshal utterances: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".utterances-*.yaml")
	if err != nil {
		return fmt.Errorf("write utterances: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write utterances: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("write utterances: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("write utterances: %w", err)
	}
	return nil
}
