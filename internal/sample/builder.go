package sample

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/ssimtune/ssimtune/internal/ffmpeg"
	"github.com/ssimtune/ssimtune/internal/logging"
)

// Sample is one evaluation clip: a segment of the source turned into a
// reference rendition at the fixed sample QP. All later per-sample
// comparisons are measured against this rendition, not the raw clip, so
// trial renditions pass through the same audio and container logic as
// the final output.
type Sample struct {
	// Start is the segment's start time in the source, in seconds.
	Start float64
	// Duration is the segment length in seconds.
	Duration float64
	// Path is the reference rendition file inside the run workspace.
	Path string
}

// Builder turns selected timestamps into sample clips.
type Builder struct {
	// Workspace is the temporary directory owning all sample files.
	Workspace string
	// SampleQP is the fixed high-quality QP for reference renditions.
	SampleQP int
	// FrameRate and GOP are shared with every encode in the pipeline.
	FrameRate float64
	GOP       int
	// Audio holds the pre-built per-stream audio options.
	Audio []string

	Log *logging.Logger
}

// Build cuts one clip per timestamp via stream copy and produces its
// reference rendition. Two files per sample are written into the
// workspace; the caller owns workspace teardown.
func (b *Builder) Build(ctx context.Context, input string, times []float64, clipLen float64) ([]Sample, error) {
	log := b.Log
	if log == nil {
		log = logging.Discard()
	}

	ext := filepath.Ext(input)
	samples := make([]Sample, 0, len(times))

	for idx, start := range times {
		seg := filepath.Join(b.Workspace, fmt.Sprintf("seg_%d%s", idx, ext))
		ref := filepath.Join(b.Workspace, fmt.Sprintf("sample_%d%s", idx, ext))

		log.Debug("extracting sample", "index", idx, "start", start, "duration", clipLen)

		if err := ffmpeg.CutClip(ctx, input, start, clipLen, seg); err != nil {
			return nil, err
		}

		req := &ffmpeg.EncodeRequest{
			Input:     seg,
			Output:    ref,
			QP:        b.SampleQP,
			FrameRate: b.FrameRate,
			GOP:       b.GOP,
			Audio:     b.Audio,
		}
		if err := ffmpeg.Encode(ctx, req); err != nil {
			return nil, err
		}

		samples = append(samples, Sample{Start: start, Duration: clipLen, Path: ref})
	}

	return samples, nil
}
