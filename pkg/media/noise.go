package media

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// Reducer is the noise-reduction collaborator: given a recorded noise
// sample and a target media file, rewrite the target with the noise
// profile suppressed.
type Reducer interface {
	Reduce(ctx context.Context, samplePath, targetPath string) error
}

var meanVolumeRe = regexp.MustCompile(`mean_volume:\s*(-?[0-9.]+) dB`)

// FFmpegReducer implements noise reduction with ffmpeg's afftdn filter,
// using the noise sample's measured mean volume as the noise floor.
type FFmpegReducer struct {
	ff *FFmpeg
}

// NewFFmpegReducer returns a Reducer backed by the given ffmpeg runner.
func NewFFmpegReducer(ff *FFmpeg) *FFmpegReducer {
	return &FFmpegReducer{ff: ff}
}

// Reduce measures the sample's noise floor and rewrites targetPath with
// the denoised audio. Video streams are copied untouched.
func (r *FFmpegReducer) Reduce(ctx context.Context, samplePath, targetPath string) error {
	floor, err := r.noiseFloor(ctx, samplePath)
	if err != nil {
		return err
	}
	ext := filepath.Ext(targetPath)
	tmp := strings.TrimSuffix(targetPath, ext) + "-denoise" + ext
	args := []string{
		"-y",
		"-i", targetPath,
		"-af", fmt.Sprintf("afftdn=nf=%s", strconv.FormatFloat(floor, 'f', 1, 64)),
	}
	if ext == ".mp4" {
		args = append(args, "-c:v", "copy")
	}
	args = append(args, "-loglevel", "quiet", tmp)
	if _, err := r.ff.run(ctx, r.ff.FFmpegBin, args); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, targetPath)
}

// noiseFloor runs volumedetect over the sample and clamps the measured
// mean volume into afftdn's accepted noise-floor range.
func (r *FFmpegReducer) noiseFloor(ctx context.Context, samplePath string) (float64, error) {
	out, err := r.ff.run(ctx, r.ff.FFmpegBin, []string{
		"-i", samplePath,
		"-af", "volumedetect",
		"-f", "null",
		"-",
	})
	if err != nil {
		return 0, fmt.Errorf("measure noise sample %s: %w", samplePath, err)
	}
	m := meanVolumeRe.FindStringSubmatch(out)
	if m == nil {
		return -30, nil // afftdn default when the sample is unreadable
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return -30, nil
	}
	return math.Min(-20, math.Max(-80, v)), nil
}
