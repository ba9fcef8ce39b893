package ffmpeg

import (
	"bytes"
	"context"
	"os/exec"
	"strconv"
	"strings"

	"github.com/ssimtune/ssimtune/internal/errors"
)

// run executes ffmpeg, discarding output. The trailing stderr lines are
// kept for error reporting.
func run(ctx context.Context, args []string) error {
	cmd := exec.CommandContext(ctx, "ffmpeg", args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return errors.NewCancelledError()
		}
		return errors.WrapExecError("ffmpeg", err, tailLines(stderr.String(), 5))
	}
	return nil
}

// runCaptureStderr executes ffmpeg and returns its full stderr. Used for
// the ssim filter, which writes its report there.
func runCaptureStderr(ctx context.Context, args []string) (string, error) {
	cmd := exec.CommandContext(ctx, "ffmpeg", args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return "", errors.NewCancelledError()
		}
		return "", errors.WrapExecError("ffmpeg", err, tailLines(stderr.String(), 5))
	}
	return stderr.String(), nil
}

// Encode runs the given encode request to completion.
func Encode(ctx context.Context, req *EncodeRequest) error {
	if err := run(ctx, req.Args()); err != nil {
		return errors.NewEncodeError("encode at QP "+strconv.Itoa(req.QP)+" failed", err)
	}
	return nil
}

// CutClip extracts a clip of the given duration via stream copy, so the
// clip is bit-identical to the source in that range.
func CutClip(ctx context.Context, input string, start, duration float64, output string) error {
	args := []string{
		"-y",
		"-i", input,
		"-ss", strconv.FormatFloat(start, 'f', -1, 64),
		"-t", strconv.FormatFloat(duration, 'f', -1, 64),
		"-c", "copy",
		output,
	}
	if err := run(ctx, args); err != nil {
		return errors.NewEncodeError("clip extraction failed", err)
	}
	return nil
}

// tailLines returns the last n non-empty lines of s.
func tailLines(s string, n int) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	var kept []string
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			kept = append(kept, line)
		}
	}
	if len(kept) > n {
		kept = kept[len(kept)-n:]
	}
	return strings.Join(kept, "\n")
}
