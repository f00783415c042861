// Package assets declares the fixed registry of asset kinds a mentor
// utterance can possess (session audio/video/timestamps, per-utterance
// audio/video/mobile/web derivatives, captions). Each kind knows its
// storage root, which utterance field carries its explicit path, and how to
// infer a path from sibling kinds or by convention when no explicit link is
// recorded.
package assets

import (
	"path/filepath"
	"strings"

	"github.com/otherjamesbrown/mentor-pipeline/pkg/utterance"
)

// Root selects which storage tree an asset kind lives under. The choice is
// a static property of each kind.
type Root int

const (
	// RootData is the per-mentor data tree (timestamps, audio, captions, CSVs).
	RootData Root = iota + 1
	// RootVideos is the per-mentor video tree (raw and processed video).
	RootVideos
)

// TransformKind enumerates the ways an inferred path is derived from a
// sibling kind's path. A tagged enum instead of callbacks keeps the
// registry plain data.
type TransformKind int

const (
	// TransformDefaultExt swaps the source path's extension for the owning
	// kind's default extension.
	TransformDefaultExt TransformKind = iota
	// TransformSegmentExt replaces a path segment (e.g. utterance_video ->
	// utterance_audio) and then swaps the extension.
	TransformSegmentExt
)

// Transform describes how to turn a sibling kind's path into this kind's path.
type Transform struct {
	Kind       TransformKind
	Ext        string // used by TransformSegmentExt; empty means default ext
	OldSegment string
	NewSegment string
}

// Apply runs the transform against a source path. defaultExt is the owning
// kind's default extension.
func (t Transform) Apply(p, defaultExt string) string {
	ext := t.Ext
	if ext == "" {
		ext = defaultExt
	}
	switch t.Kind {
	case TransformSegmentExt:
		return swapExt(strings.ReplaceAll(p, t.OldSegment, t.NewSegment), ext)
	default:
		return swapExt(p, ext)
	}
}

func swapExt(p, newExt string) string {
	stem := strings.TrimSuffix(p, filepath.Ext(p))
	return stem + "." + newExt
}

// InferRule names a sibling asset kind to derive a path from, plus the
// transform to apply to that sibling's value.
type InferRule struct {
	From      string
	Transform Transform
}

// Type is one registry entry. Instances are created only by NewRegistry.
type Type struct {
	// Name is the registry key, e.g. "sessionAudio".
	Name string
	// Root is the storage tree this kind resolves under.
	Root Root
	// Prop names the utterance field holding this kind's explicit path;
	// empty for purely derived kinds (captions, mobile/web video).
	Prop string
	// DefaultExt is the file extension for this kind, without the dot.
	DefaultExt string
	// InferFrom is an ordered priority list: the first rule whose sibling
	// has a non-empty value wins, whether or not the result exists on disk.
	InferFrom []InferRule
	// Convention, when non-empty, is the directory path (relative to Root)
	// where this kind's files land by convention as {utteranceID}.{ext}.
	Convention []string
}

// Value returns the utterance's own configured path for this kind, or
// empty if the utterance has no dedicated field for it.
func (t *Type) Value(u *utterance.Utterance) string {
	switch t.Prop {
	case "sessionAudio":
		return u.SessionAudio
	case "sessionTimestamps":
		return u.SessionTimestamps
	case "sessionVideo":
		return u.SessionVideo
	case "utteranceAudio":
		return u.UtteranceAudio
	case "utteranceVideo":
		return u.UtteranceVideo
	}
	return ""
}

// SetValue assigns the utterance's configured path for this kind. Kinds
// without a dedicated field ignore the call.
func (t *Type) SetValue(u *utterance.Utterance, p string) {
	switch t.Prop {
	case "sessionAudio":
		u.SessionAudio = p
	case "sessionTimestamps":
		u.SessionTimestamps = p
	case "sessionVideo":
		u.SessionVideo = p
	case "utteranceAudio":
		u.UtteranceAudio = p
	case "utteranceVideo":
		u.UtteranceVideo = p
	}
}

// InferredPath derives a path for this kind from the utterance's sibling
// asset values, in rule order, falling back to the kind's convention path.
// Returns empty when nothing can be inferred.
func (t *Type) InferredPath(reg *Registry, u *utterance.Utterance) string {
	for _, rule := range t.InferFrom {
		sibling, ok := reg.Lookup(rule.From)
		if !ok {
			continue
		}
		if from := sibling.Value(u); from != "" {
			return rule.Transform.Apply(from, t.DefaultExt)
		}
	}
	if len(t.Convention) > 0 {
		parts := append(append([]string(nil), t.Convention...), u.ID()+"."+t.DefaultExt)
		return filepath.Join(parts...)
	}
	return ""
}

// ConventionPath returns the convention-based path for an utterance id, or
// empty when the kind has no convention.
func (t *Type) ConventionPath(utteranceID string) string {
	if len(t.Convention) == 0 {
		return ""
	}
	parts := append(append([]string(nil), t.Convention...), utteranceID+"."+t.DefaultExt)
	return filepath.Join(parts...)
}

// Registry is the constructed-once set of asset kinds, passed explicitly to
// the path resolver. Immutable after NewRegistry.
type Registry struct {
	SessionAudio         *Type
	SessionTimestamps    *Type
	SessionVideo         *Type
	UtteranceAudio       *Type
	UtteranceVideo       *Type
	UtteranceVideoMobile *Type
	UtteranceVideoWeb    *Type
	UtteranceCaptions    *Type

	byName map[string]*Type
}

// Lookup returns the kind registered under name.
func (r *Registry) Lookup(name string) (*Type, bool) {
	t, ok := r.byName[name]
	return t, ok
}

// NewRegistry builds the fixed asset-kind table.
func NewRegistry() *Registry {
	r := &Registry{
		SessionAudio: &Type{
			Name:       "sessionAudio",
			Root:       RootData,
			Prop:       "sessionAudio",
			DefaultExt: "mp3",
			InferFrom: []InferRule{
				{From: "sessionTimestamps"},
				{From: "sessionVideo"},
			},
		},
		SessionTimestamps: &Type{
			Name:       "sessionTimestamps",
			Root:       RootData,
			Prop:       "sessionTimestamps",
			DefaultExt: "csv",
			InferFrom: []InferRule{
				{From: "sessionVideo"},
				{From: "sessionAudio"},
			},
		},
		SessionVideo: &Type{
			Name:       "sessionVideo",
			Root:       RootData,
			Prop:       "sessionVideo",
			DefaultExt: "mp4",
			InferFrom: []InferRule{
				{From: "sessionTimestamps"},
				{From: "sessionAudio"},
			},
		},
		UtteranceAudio: &Type{
			Name:       "utteranceAudio",
			Root:       RootData,
			Prop:       "utteranceAudio",
			DefaultExt: "mp3",
			InferFrom: []InferRule{
				{From: "utteranceVideo", Transform: Transform{
					Kind:       TransformSegmentExt,
					Ext:        "mp3",
					OldSegment: "utterance_video",
					NewSegment: "utterance_audio",
				}},
			},
			Convention: []string{"build", "utterance_audio"},
		},
		UtteranceVideo: &Type{
			Name:       "utteranceVideo",
			Root:       RootVideos,
			Prop:       "utteranceVideo",
			DefaultExt: "mp4",
			InferFrom: []InferRule{
				{From: "utteranceAudio", Transform: Transform{
					Kind:       TransformSegmentExt,
					Ext:        "mp4",
					OldSegment: "utterance_audio",
					NewSegment: "utterance_video",
				}},
			},
			Convention: []string{"build", "utterance_video"},
		},
		UtteranceVideoMobile: &Type{
			Name:       "utteranceVideoMobile",
			Root:       RootVideos,
			DefaultExt: "mp4",
			Convention: []string{"mobile"},
		},
		UtteranceVideoWeb: &Type{
			Name:       "utteranceVideoWeb",
			Root:       RootVideos,
			DefaultExt: "mp4",
			Convention: []string{"web"},
		},
		UtteranceCaptions: &Type{
			Name:       "utteranceCaptions",
			Root:       RootData,
			DefaultExt: "vtt",
			Convention: []string{"data", "tracks"},
		},
	}
	r.byName = map[string]*Type{}
	for _, t := range []*Type{
		r.SessionAudio, r.SessionTimestamps, r.SessionVideo,
		r.UtteranceAudio, r.UtteranceVideo,
		r.UtteranceVideoMobile, r.UtteranceVideoWeb, r.UtteranceCaptions,
	} {
		r.byName[t.Name] = t
	}
	return r
}
