package ffmpeg

import (
	"context"
	"strconv"
	"strings"

	"github.com/ssimtune/ssimtune/internal/errors"
)

// MeasureSSIM compares two renditions of the same content with ffmpeg's
// ssim filter and returns the global score from the filter's report.
func MeasureSSIM(ctx context.Context, reference, candidate string) (float64, error) {
	args := []string{
		"-i", reference,
		"-i", candidate,
		"-filter_complex", "ssim",
		"-f", "null", "-",
	}

	report, err := runCaptureStderr(ctx, args)
	if err != nil {
		return 0, errors.NewScoreError("ssim measurement failed", err)
	}

	return ParseSSIMReport(report), nil
}

// ParseSSIMReport extracts the aggregate score from the ssim filter's
// textual report by locating the "All:" marker and reading the numeric
// token that follows it. A report without the marker scores 0.0.
func ParseSSIMReport(report string) float64 {
	for _, line := range strings.Split(report, "\n") {
		idx := strings.Index(line, "All:")
		if idx < 0 {
			continue
		}
		rest := strings.TrimSpace(line[idx+len("All:"):])
		fields := strings.Fields(rest)
		if len(fields) == 0 {
			continue
		}
		if score, err := strconv.ParseFloat(fields[0], 64); err == nil {
			return score
		}
	}
	return 0.0
}
