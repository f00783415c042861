// Package media wraps the external ffmpeg/ffprobe tools used for
// transcoding, slicing and noise reduction. Everything here is thin I/O
// glue: build an argument list, run the command, surface a non-zero exit
// as an error.
package media

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/otherjamesbrown/mentor-pipeline/pkg/logging"
)

// Tools is the media transform collaborator: synchronous calls whose side
// effect is a file written at the target path.
type Tools interface {
	// VideoToAudio extracts the audio track of src into dst.
	VideoToAudio(ctx context.Context, src, dst string) error
	// SliceAudio writes the [start,end] seconds range of src audio to dst.
	SliceAudio(ctx context.Context, src, dst string, start, end float64) error
	// SliceVideo writes the [start,end] seconds range of src video to dst.
	SliceVideo(ctx context.Context, src, dst string, start, end float64) error
	// EncodeMobile writes a square mobile-crop encode of src to dst.
	EncodeMobile(ctx context.Context, src, dst string) error
	// EncodeWeb writes a 16:9 web encode of src to dst.
	EncodeWeb(ctx context.Context, src, dst string) error
}

// FFmpeg runs the ffmpeg and ffprobe binaries.
type FFmpeg struct {
	// FFmpegBin and FFprobeBin override the binaries found on PATH.
	FFmpegBin  string
	FFprobeBin string

	log logging.Logger
}

// NewFFmpeg returns a Tools implementation backed by ffmpeg on PATH.
func NewFFmpeg(log logging.Logger) *FFmpeg {
	if log == nil {
		log = logging.Nop()
	}
	return &FFmpeg{FFmpegBin: "ffmpeg", FFprobeBin: "ffprobe", log: log}
}

func (f *FFmpeg) run(ctx context.Context, bin string, args []string) (string, error) {
	cmd := exec.CommandContext(ctx, bin, args...)
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	f.log.Debug("exec", logging.F("bin", bin), logging.F("args", strings.Join(args, " ")))
	if err := cmd.Run(); err != nil {
		return out.String(), fmt.Errorf("%s %s: %w: %s", bin, strings.Join(args, " "), err, out.String())
	}
	return out.String(), nil
}

func ensureDir(p string) error {
	return os.MkdirAll(filepath.Dir(p), 0o755)
}

// VideoDims probes the first video stream's dimensions. Returns (-1, -1)
// when the file has no video stream.
func (f *FFmpeg) VideoDims(ctx context.Context, path string) (int, int, error) {
	out, err := f.run(ctx, f.FFprobeBin, []string{
		"-v", "error",
		"-select_streams", "v:0",
		"-show_entries", "stream=width,height",
		"-of", "csv=s=x:p=0",
		path,
	})
	if err != nil {
		return -1, -1, err
	}
	dims := strings.SplitN(strings.TrimSpace(out), "x", 2)
	if len(dims) != 2 {
		return -1, -1, nil
	}
	w, errW := strconv.Atoi(dims[0])
	h, errH := strconv.Atoi(dims[1])
	if errW != nil || errH != nil {
		return -1, -1, nil
	}
	return w, h, nil
}

// VideoToAudio extracts src's audio track into dst (format from the dst
// extension).
func (f *FFmpeg) VideoToAudio(ctx context.Context, src, dst string) error {
	if _, err := os.Stat(src); err != nil {
		return fmt.Errorf("video to audio source %s: %w", src, err)
	}
	if err := ensureDir(dst); err != nil {
		return err
	}
	_, err := f.run(ctx, f.FFmpegBin, []string{"-y", "-loglevel", "quiet", "-i", src, dst})
	return err
}

// SliceAudio extracts the [start,end] range of src into dst as mono audio.
func (f *FFmpeg) SliceAudio(ctx context.Context, src, dst string, start, end float64) error {
	if err := ensureDir(dst); err != nil {
		return err
	}
	_, err := f.run(ctx, f.FFmpegBin, sliceAudioArgs(src, dst, start, end))
	return err
}

func sliceAudioArgs(src, dst string, start, end float64) []string {
	args := []string{
		"-y",
		"-i", src,
		"-ss", formatSeconds(start),
		"-to", formatSeconds(end),
		"-ac", "1",
		"-q:a", "5",
		"-loglevel", "quiet",
	}
	if strings.HasSuffix(dst, ".mp3") {
		args = append(args, "-acodec", "libmp3lame")
	}
	return append(args, dst)
}

// SliceVideo extracts the [start,end] range of src into dst with the
// normalized web-safe encode settings.
func (f *FFmpeg) SliceVideo(ctx context.Context, src, dst string, start, end float64) error {
	if err := ensureDir(dst); err != nil {
		return err
	}
	_, err := f.run(ctx, f.FFmpegBin, sliceVideoArgs(src, dst, start, end))
	return err
}

func sliceVideoArgs(src, dst string, start, end float64) []string {
	return []string{
		"-y",
		"-i", src,
		"-ss", formatSeconds(start),
		"-to", formatSeconds(end),
		"-c:v", "libx264",
		"-crf", "23",
		"-pix_fmt", "yuv420p",
		"-movflags", "+faststart",
		"-c:a", "aac",
		"-ac", "1",
		"-profile:v", "main",
		"-level", "4.0",
		"-loglevel", "quiet",
		dst,
	}
}

// EncodeMobile writes a square target-height encode of src to dst,
// zooming in slightly on landscape sources before the center crop.
func (f *FFmpeg) EncodeMobile(ctx context.Context, src, dst string) error {
	w, h, err := f.VideoDims(ctx, src)
	if err != nil {
		return err
	}
	if err := ensureDir(dst); err != nil {
		return err
	}
	_, err = f.run(ctx, f.FFmpegBin, encodeMobileArgs(src, dst, w, h, 480))
	return err
}

func encodeMobileArgs(src, dst string, w, h, targetHeight int) []string {
	cropW, cropH := 0.0, 0.0
	if w > h {
		cropH = float64(h) * 0.25
		cropW = float64(w) - (float64(h) - cropH)
	}
	return encodeArgs(src, dst, cropW, cropH, targetHeight, targetHeight)
}

// EncodeWeb writes a 16:9 encode of src to dst, capped at maxHeight 720.
func (f *FFmpeg) EncodeWeb(ctx context.Context, src, dst string) error {
	w, h, err := f.VideoDims(ctx, src)
	if err != nil {
		return err
	}
	if err := ensureDir(dst); err != nil {
		return err
	}
	_, err = f.run(ctx, f.FFmpegBin, encodeWebArgs(src, dst, w, h, 720, 16.0/9.0))
	return err
}

func encodeWebArgs(src, dst string, w, h, maxHeight int, targetAspect float64) []string {
	cropW, cropH := 0.0, 0.0
	var outH int
	aspect := float64(w) / float64(h)
	if aspect >= targetAspect {
		cropW = float64(w) - float64(h)*targetAspect
		outH = int(math.Round(math.Min(float64(maxHeight), float64(h))))
	} else {
		cropH = float64(h) - float64(w)/targetAspect
		outH = int(math.Round(math.Min(float64(maxHeight), float64(w)/targetAspect)))
	}
	outW := int(float64(outH) * targetAspect)
	if outW%2 != 0 {
		outW++
	}
	if outH%2 != 0 {
		outH++
	}
	return encodeArgs(src, dst, cropW, cropH, outW, outH)
}

func encodeArgs(src, dst string, cropW, cropH float64, outW, outH int) []string {
	return []string{
		"-y",
		"-i", src,
		"-filter:v", fmt.Sprintf("crop=iw-%.0f:ih-%.0f,scale=%d:%d", cropW, cropH, outW, outH),
		"-c:v", "libx264",
		"-crf", "23",
		"-pix_fmt", "yuv420p",
		"-movflags", "+faststart",
		"-c:a", "aac",
		"-ac", "1",
		"-loglevel", "quiet",
		dst,
	}
}

func formatSeconds(s float64) string {
	return strconv.FormatFloat(s, 'f', -1, 64)
}
