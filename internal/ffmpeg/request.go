// Package ffmpeg provides FFmpeg command building and execution.
package ffmpeg

import (
	"strconv"

	"github.com/ssimtune/ssimtune/internal/config"
	"github.com/ssimtune/ssimtune/internal/util"
)

// EncodeRequest describes one quality-controlled re-encode. It is the
// single place that is translated into ffmpeg's flag syntax, so every
// encode in the pipeline (sample reference, trial, full file) shares the
// same invocation shape.
type EncodeRequest struct {
	Input  string
	Output string

	// QP is the constant quantization parameter for the video stream.
	QP int

	// FrameRate is the output frame rate, matching the source.
	FrameRate float64

	// GOP is the keyframe interval in frames.
	GOP int

	// Audio holds pre-built per-stream audio options (see AudioOptions).
	Audio []string
}

// GOPForFrameRate derives the keyframe interval from the frame rate:
// one keyframe every half second, at least 1.
func GOPForFrameRate(frameRate float64) int {
	gop := int(frameRate/2 + 0.5)
	if gop < 1 {
		return 1
	}
	return gop
}

// Args translates the request into an ffmpeg argument list.
func (r *EncodeRequest) Args() []string {
	args := []string{
		"-y",
		"-hwaccel", config.HWAccel,
		"-i", r.Input,
		"-r", util.FormatFrameRate(r.FrameRate),
		"-g", strconv.Itoa(r.GOP),
		"-bf", strconv.Itoa(config.BFrames),
		"-pix_fmt", config.PixelFormat,
		"-c:v", config.VideoCodec,
		"-preset", config.VideoPreset,
		"-rc", config.RateControl,
		"-qp", strconv.Itoa(r.QP),
	}
	args = append(args, r.Audio...)
	args = append(args, "-c:s", "copy", r.Output)
	return args
}
