// Package sample selects representative time segments of a video and
// builds the fixed evaluation set used during the QP search.
package sample

import (
	"context"
	"math"

	"github.com/ssimtune/ssimtune/internal/config"
	"github.com/ssimtune/ssimtune/internal/detect"
	"github.com/ssimtune/ssimtune/internal/logging"
)

// Params controls segment selection.
type Params struct {
	Mode           config.SamplingMode
	Percent        float64
	Count          int
	SceneThreshold float64
}

// ClipLength returns the per-segment duration: the sampled span split
// evenly across the requested segment count.
func ClipLength(duration, percent float64, count int) float64 {
	return duration * percent / 100.0 / float64(count)
}

// Selector picks candidate sample timestamps from a video.
type Selector struct {
	detector detect.Detector
	log      *logging.Logger
}

// NewSelector creates a Selector using the given detector for scene and
// motion analysis.
func NewSelector(detector detect.Detector, log *logging.Logger) *Selector {
	if log == nil {
		log = logging.Discard()
	}
	return &Selector{detector: detector, log: log}
}

// SelectTimes returns up to p.Count start timestamps, ordered as produced
// by the selection strategy. Scene and motion modes fall back to uniform
// placement when the detector yields no usable timestamps; that fallback
// is a warning, not an error. Fewer than p.Count timestamps are returned
// only when the source cannot host that many distinct segments.
func (s *Selector) SelectTimes(ctx context.Context, path string, duration float64, p Params) ([]float64, error) {
	clipLen := ClipLength(duration, p.Percent, p.Count)

	var times []float64
	var err error

	switch p.Mode {
	case config.SamplingScene:
		times, err = s.detector.Scenes(ctx, path, p.SceneThreshold)
	case config.SamplingMotion:
		times, err = s.detector.Motion(ctx, path)
	}
	if err != nil {
		return nil, err
	}

	if p.Mode != config.SamplingUniform && len(times) == 0 {
		s.log.Warn("no usable timestamps from detector, falling back to uniform sampling",
			"mode", p.Mode)
	}

	if p.Mode == config.SamplingUniform || len(times) == 0 {
		times = uniformTimes(duration, p.Percent, p.Count)
	}

	return filterSpaced(times, clipLen, p.Count), nil
}

// uniformTimes places count start points evenly across [0, duration-span],
// where span is the total sampled duration.
func uniformTimes(duration, percent float64, count int) []float64 {
	span := duration * percent / 100.0
	step := math.Max((duration-span)/math.Max(float64(count-1), 1), 0)

	times := make([]float64, count)
	for i := range times {
		times[i] = float64(i) * step
	}
	return times
}

// filterSpaced keeps candidates in their produced order, requiring each
// kept timestamp to be at least minSpacing from every other kept one,
// stopping at count. If the spacing constraint leaves fewer than count,
// the remaining slots are topped up from the unused candidates in their
// original order, ignoring spacing; duplicates of already-kept timestamps
// are skipped so segments stay distinct.
func filterSpaced(times []float64, minSpacing float64, count int) []float64 {
	kept := make([]float64, 0, count)
	for _, t := range times {
		if spacedFrom(kept, t, minSpacing) {
			kept = append(kept, t)
			if len(kept) == count {
				return kept
			}
		}
	}

	for _, t := range times {
		if len(kept) == count {
			break
		}
		if !contains(kept, t) {
			kept = append(kept, t)
		}
	}
	return kept
}

func spacedFrom(kept []float64, t, minSpacing float64) bool {
	for _, prev := range kept {
		if math.Abs(t-prev) < minSpacing {
			return false
		}
	}
	return true
}

func contains(times []float64, t float64) bool {
	for _, v := range times {
		if v == t {
			return true
		}
	}
	return false
}
