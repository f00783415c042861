package media

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSliceAudioArgs(t *testing.T) {
	args := sliceAudioArgs("in.mp4", "out.mp3", 1.5, 3.25)
	joined := strings.Join(args, " ")
	assert.Contains(t, joined, "-ss 1.5")
	assert.Contains(t, joined, "-to 3.25")
	assert.Contains(t, joined, "-acodec libmp3lame")
	assert.Equal(t, "out.mp3", args[len(args)-1])

	// Non-mp3 targets skip the lame codec.
	args = sliceAudioArgs("in.mp4", "out.wav", 0, 1)
	assert.NotContains(t, strings.Join(args, " "), "libmp3lame")
}

func TestSliceVideoArgs(t *testing.T) {
	args := sliceVideoArgs("in.mp4", "out.mp4", 0, 2)
	joined := strings.Join(args, " ")
	assert.Contains(t, joined, "-c:v libx264")
	assert.Contains(t, joined, "-pix_fmt yuv420p")
	assert.Contains(t, joined, "-movflags +faststart")
	assert.Equal(t, "out.mp4", args[len(args)-1])
}

func TestEncodeMobileArgs(t *testing.T) {
	// Landscape source: crop in on width, keep a square output.
	args := encodeMobileArgs("in.mp4", "out.mp4", 1920, 1080, 480)
	joined := strings.Join(args, " ")
	assert.Contains(t, joined, "crop=iw-1110:ih-270,scale=480:480")

	// Portrait/square source: no crop.
	args = encodeMobileArgs("in.mp4", "out.mp4", 720, 1280, 480)
	assert.Contains(t, strings.Join(args, " "), "crop=iw-0:ih-0,scale=480:480")
}

func TestEncodeWebArgs(t *testing.T) {
	// Exact 16:9 at 720p passes through uncropped.
	args := encodeWebArgs("in.mp4", "out.mp4", 1280, 720, 720, 16.0/9.0)
	assert.Contains(t, strings.Join(args, " "), "crop=iw-0:ih-0,scale=1280:720")

	// Taller-than-16:9 source crops height.
	args = encodeWebArgs("in.mp4", "out.mp4", 1280, 1024, 720, 16.0/9.0)
	joined := strings.Join(args, " ")
	assert.Contains(t, joined, "scale=1280:720")
	assert.Contains(t, joined, "ih-304")
}

func TestFormatSeconds(t *testing.T) {
	assert.Equal(t, "0", formatSeconds(0))
	assert.Equal(t, "1.5", formatSeconds(1.5))
	assert.Equal(t, "90.25", formatSeconds(90.25))
}

func TestNewFFmpeg_Defaults(t *testing.T) {
	f := NewFFmpeg(nil)
	assert.Equal(t, "ffmpeg", f.FFmpegBin)
	assert.Equal(t, "ffprobe", f.FFprobeBin)
}

func TestMeanVolumeRegexp(t *testing.T) {
	out := "[Parsed_volumedetect_0 @ 0x1] mean_volume: -42.3 dB\n"
	m := meanVolumeRe.FindStringSubmatch(out)
	if assert.NotNil(t, m) {
		assert.Equal(t, "-42.3", m[1])
	}
}
