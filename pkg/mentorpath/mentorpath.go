// Package mentorpath resolves a mentor id into concrete file-system
// locations for every asset kind and data artifact, and performs
// existence-aware asset lookup with inference fallback. All stored asset
// paths are relative; this package is the only place they become absolute.
package mentorpath

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/otherjamesbrown/mentor-pipeline/pkg/assets"
	mperrors "github.com/otherjamesbrown/mentor-pipeline/pkg/errors"
	"github.com/otherjamesbrown/mentor-pipeline/pkg/utterance"
)

// SessionPartFile is one discovered timestamp file with its assigned
// session and part numbers.
type SessionPartFile struct {
	Session int
	Part    int
	Path    string
}

// MentorPath is the path resolver for one mentor's dataset.
type MentorPath struct {
	mentorID         string
	dataMentorsRoot  string
	videoMentorsRoot string
	reg              *assets.Registry
}

// New builds a resolver for mentorID under the given data-mentors root.
// The videos root defaults to the conventional videos/mentors sibling of
// the data tree; pass videoMentorsRoot to override.
func New(mentorID, dataMentorsRoot string, reg *assets.Registry) *MentorPath {
	root := filepath.Dir(filepath.Dir(dataMentorsRoot))
	return &MentorPath{
		mentorID:         mentorID,
		dataMentorsRoot:  dataMentorsRoot,
		videoMentorsRoot: filepath.Join(root, "videos", "mentors"),
		reg:              reg,
	}
}

// WithVideoRoot overrides the videos/mentors root.
func (mp *MentorPath) WithVideoRoot(videoMentorsRoot string) *MentorPath {
	c := *mp
	c.videoMentorsRoot = videoMentorsRoot
	return &c
}

// MentorID returns the mentor this resolver serves.
func (mp *MentorPath) MentorID() string { return mp.mentorID }

// Registry returns the asset-kind registry in use.
func (mp *MentorPath) Registry() *assets.Registry { return mp.reg }

func join(root string, p ...string) string {
	return filepath.Join(append([]string{root}, p...)...)
}

// MentorData returns the mentor's data directory, or a path under it.
func (mp *MentorPath) MentorData(p ...string) string {
	return join(filepath.Join(mp.dataMentorsRoot, mp.mentorID), p...)
}

// MentorVideo returns the mentor's video directory, or a path under it.
func (mp *MentorPath) MentorVideo(p ...string) string {
	return join(filepath.Join(mp.videoMentorsRoot, mp.mentorID), p...)
}

// MentorAsset resolves p under the storage tree for the given root.
func (mp *MentorPath) MentorAsset(root assets.Root, p ...string) string {
	if root == assets.RootVideos {
		return mp.MentorVideo(p...)
	}
	return mp.MentorData(p...)
}

// BuildPath returns the mentor's build directory, or a path under it.
func (mp *MentorPath) BuildPath(p ...string) string {
	return join(mp.MentorData("build"), p...)
}

// DataPath returns the mentor's generated-data directory, or a path under it.
func (mp *MentorPath) DataPath(p ...string) string {
	return join(mp.MentorData("data"), p...)
}

// RecordingsPath returns the directory holding raw session recordings and
// their timestamp spreadsheets.
func (mp *MentorPath) RecordingsPath(p ...string) string {
	return join(mp.BuildPath("recordings"), p...)
}

// NoisePath returns the directory holding noise sample recordings.
func (mp *MentorPath) NoisePath(p ...string) string {
	return join(mp.BuildPath("noise"), p...)
}

// RootDataPath returns the shared data root (parent of the mentors dir), or
// a path under it. Cross-mentor tables like topics_by_question.csv live here.
func (mp *MentorPath) RootDataPath(p ...string) string {
	return join(filepath.Dir(mp.dataMentorsRoot), p...)
}

// UtterancesDataPath returns the persisted utterance document location.
func (mp *MentorPath) UtterancesDataPath() string {
	return mp.MentorData(".mentor", "utterances.yaml")
}

// TopicsByQuestionCSV returns the topics-by-question table location.
// fileName overrides the default file name when non-empty.
func (mp *MentorPath) TopicsByQuestionCSV(fileName string) string {
	if fileName == "" {
		fileName = "topics_by_question.csv"
	}
	return mp.RootDataPath(fileName)
}

// ParaphrasesByQuestionCSV returns the paraphrases-by-question table location.
func (mp *MentorPath) ParaphrasesByQuestionCSV() string {
	return mp.RootDataPath("paraphrases_by_question.csv")
}

// TrainingClassifierDataCSV returns the classifier training artifact location.
func (mp *MentorPath) TrainingClassifierDataCSV() string {
	return mp.DataPath("classifier_data.csv")
}

// TrainingQuestionsParaphrasesAnswersCSV returns the Q/A export location.
func (mp *MentorPath) TrainingQuestionsParaphrasesAnswersCSV() string {
	return mp.DataPath("questions_paraphrases_answers.csv")
}

// TrainingPromptsUtterancesCSV returns the prompts export location.
func (mp *MentorPath) TrainingPromptsUtterancesCSV() string {
	return mp.DataPath("prompts_utterances.csv")
}

// TrainingUtteranceDataCSV returns the utterance export location.
func (mp *MentorPath) TrainingUtteranceDataCSV() string {
	return mp.DataPath("utterance_data.csv")
}

// ToRelativePath rewrites an absolute path relative to the storage tree for
// the given asset root. Stored utterance paths are always relative.
func (mp *MentorPath) ToRelativePath(p string, root assets.Root) string {
	rel, err := filepath.Rel(mp.MentorAsset(root), p)
	if err != nil {
		return p
	}
	return rel
}

func (mp *MentorPath) assetIsFile(root assets.Root, p string) bool {
	info, err := os.Stat(mp.MentorAsset(root, p))
	return err == nil && info.Mode().IsRegular()
}

// FindAsset resolves the location of one asset kind for an utterance.
// The utterance's explicit path wins when it points at an existing file (or
// unconditionally when allowNonexistent); otherwise inference is tried with
// the same existence gate. Returns empty when nothing resolves: the caller
// wanting "the path where it should go" passes allowNonexistent=true.
func (mp *MentorPath) FindAsset(u *utterance.Utterance, t *assets.Type, allowNonexistent bool) string {
	if configured := t.Value(u); configured != "" {
		if allowNonexistent || mp.assetIsFile(t.Root, configured) {
			return mp.MentorAsset(t.Root, configured)
		}
	}
	if inferred := t.InferredPath(mp.reg, u); inferred != "" {
		if allowNonexistent || mp.assetIsFile(t.Root, inferred) {
			return mp.MentorAsset(t.Root, inferred)
		}
	}
	return ""
}

// FindFirstExistingAsset returns the first kind in order that resolves to
// an existing file.
func (mp *MentorPath) FindFirstExistingAsset(u *utterance.Utterance, types ...*assets.Type) string {
	for _, t := range types {
		if p := mp.FindAsset(u, t, false); p != "" {
			return p
		}
	}
	return ""
}

// FindSessionAudio resolves the session audio asset for u.
func (mp *MentorPath) FindSessionAudio(u *utterance.Utterance, allowNonexistent bool) string {
	return mp.FindAsset(u, mp.reg.SessionAudio, allowNonexistent)
}

// FindSessionTimestamps resolves the session timestamps asset for u.
func (mp *MentorPath) FindSessionTimestamps(u *utterance.Utterance, allowNonexistent bool) string {
	return mp.FindAsset(u, mp.reg.SessionTimestamps, allowNonexistent)
}

// FindSessionVideo resolves the session video asset for u.
func (mp *MentorPath) FindSessionVideo(u *utterance.Utterance, allowNonexistent bool) string {
	return mp.FindAsset(u, mp.reg.SessionVideo, allowNonexistent)
}

// FindUtteranceAudio resolves the per-utterance audio asset for u.
func (mp *MentorPath) FindUtteranceAudio(u *utterance.Utterance, allowNonexistent bool) string {
	return mp.FindAsset(u, mp.reg.UtteranceAudio, allowNonexistent)
}

// FindUtteranceVideo resolves the per-utterance video asset for u.
func (mp *MentorPath) FindUtteranceVideo(u *utterance.Utterance, allowNonexistent bool) string {
	return mp.FindAsset(u, mp.reg.UtteranceVideo, allowNonexistent)
}

// FindUtteranceCaptions resolves the captions asset for u.
func (mp *MentorPath) FindUtteranceCaptions(u *utterance.Utterance, allowNonexistent bool) string {
	return mp.FindAsset(u, mp.reg.UtteranceCaptions, allowNonexistent)
}

// AssignSessionAssets discovers session-level assets (timestamps, video,
// audio) on disk and records their relative paths on u, leaving any field
// untouched when nothing is found.
func (mp *MentorPath) AssignSessionAssets(u *utterance.Utterance) {
	for _, t := range []*assets.Type{
		mp.reg.SessionTimestamps,
		mp.reg.SessionVideo,
		mp.reg.SessionAudio,
	} {
		if p := mp.FindAsset(u, t, false); p != "" {
			t.SetValue(u, mp.ToRelativePath(p, t.Root))
		}
	}
}

// FindSessionPartFiles enumerates timestamp spreadsheets under the
// recordings tree in case-insensitive lexicographic path order, assigning
// session numbers per first-seen directory and part numbers per first-seen
// file within that directory. This determines canonical session/part
// numbering even though source file names are arbitrary.
func (mp *MentorPath) FindSessionPartFiles(pattern string) ([]SessionPartFile, error) {
	var paths []string
	root := mp.RecordingsPath()
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(p), pattern) {
			paths = append(paths, p)
		}
		return nil
	})
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan recordings: %w", err)
	}
	sort.Slice(paths, func(i, j int) bool {
		return strings.ToLower(paths[i]) < strings.ToLower(paths[j])
	})
	var out []SessionPartFile
	sessionByDir := map[string]int{}
	partsByDir := map[string]map[string]int{}
	for _, p := range paths {
		dir, file := filepath.Split(p)
		if _, ok := sessionByDir[dir]; !ok {
			sessionByDir[dir] = len(sessionByDir) + 1
			partsByDir[dir] = map[string]int{}
		}
		parts := partsByDir[dir]
		if _, ok := parts[file]; !ok {
			parts[file] = len(parts) + 1
		}
		out = append(out, SessionPartFile{
			Session: sessionByDir[dir],
			Part:    parts[file],
			Path:    p,
		})
	}
	return out, nil
}

// FindTimestamps enumerates the mentor's timestamp spreadsheets.
func (mp *MentorPath) FindTimestamps() ([]SessionPartFile, error) {
	return mp.FindSessionPartFiles(".csv")
}

// FindNoiseSamples lists the wav noise samples recorded for this mentor.
func (mp *MentorPath) FindNoiseSamples() []string {
	entries, err := os.ReadDir(mp.NoisePath())
	if err != nil {
		return nil
	}
	var out []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".wav" {
			out = append(out, mp.NoisePath(e.Name()))
		}
	}
	return out
}

// LoadUtterances reads the persisted utterance map. When the document does
// not exist yet, createNew selects between a fresh empty map and
// ErrNotFound.
func (mp *MentorPath) LoadUtterances(createNew bool) (*utterance.Map, error) {
	path := mp.UtterancesDataPath()
	if _, err := os.Stat(path); err != nil {
		if createNew {
			return utterance.NewMap(), nil
		}
		return nil, fmt.Errorf("no utterances at %s: %w", path, mperrors.ErrNotFound)
	}
	return utterance.FromYAML(path)
}

// WriteUtterances persists the full utterance map as a single unit.
func (mp *MentorPath) WriteUtterances(m *utterance.Map) error {
	return utterance.ToYAML(m, mp.UtterancesDataPath())
}
