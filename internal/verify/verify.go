// Package verify re-checks the searched QP against the whole file and
// walks it downward when the sample-based estimate was optimistic.
package verify

import (
	"context"
	"fmt"
	"os"

	"github.com/ssimtune/ssimtune/internal/logging"
)

// FullEncoder produces and scores whole-file renditions.
type FullEncoder interface {
	// Encode writes a full-file rendition at the given QP and returns its path.
	Encode(ctx context.Context, qp int) (string, error)
	// Score measures whole-file similarity of a rendition against the source.
	Score(ctx context.Context, renditionPath string) (float64, error)
}

// Result is the accepted final candidate.
type Result struct {
	// QP is the accepted quality parameter.
	QP int
	// Score is the whole-file similarity at QP. Zero when the target was
	// unreachable and the fallback rendition was not scored.
	Score float64
	// Path is the accepted rendition inside the staging workspace.
	Path string
	// TargetMet is false when the walk exhausted the QP floor and fell
	// back to the sample-search QP.
	TargetMet bool
}

// Runner drives the full-file verification walk.
type Runner struct {
	Encoder FullEncoder
	Log     *logging.Logger

	// Observe, when set, receives every attempt. scored is false for the
	// unmeasured fallback encode.
	Observe func(qp int, score float64, met, scored bool)
}

// Run encodes the entire source starting at startQP and decrements one
// step at a time until the whole-file score meets target or the floor is
// passed. At most one full-file rendition is held at a time; a rejected
// rendition is removed before the next attempt. If no QP in
// [minQP, startQP] satisfies the target, the original startQP is accepted
// as a documented fallback and re-encoded without measuring.
func (r *Runner) Run(ctx context.Context, startQP, minQP int, target float64) (*Result, error) {
	log := r.Log
	if log == nil {
		log = logging.Discard()
	}

	for qp := startQP; qp >= minQP; qp-- {
		path, err := r.Encoder.Encode(ctx, qp)
		if err != nil {
			return nil, err
		}

		score, err := r.Encoder.Score(ctx, path)
		if err != nil {
			_ = os.Remove(path)
			return nil, err
		}

		met := score >= target
		if r.Observe != nil {
			r.Observe(qp, score, met, true)
		}

		if met {
			log.Info("full-file score meets target",
				"qp", qp, "score", fmt.Sprintf("%.4f", score), "target", target)
			return &Result{QP: qp, Score: score, Path: path, TargetMet: true}, nil
		}

		log.Info("full-file score below target, stepping down",
			"qp", qp, "score", fmt.Sprintf("%.4f", score), "target", target)
		_ = os.Remove(path)
	}

	// Sampling bias could not be corrected within the floor; fall back
	// to the sample-search QP rather than the floor.
	log.Warn("could not meet target on full file, using sample-based QP",
		"qp", startQP, "floor", minQP, "target", target)

	path, err := r.Encoder.Encode(ctx, startQP)
	if err != nil {
		return nil, err
	}
	if r.Observe != nil {
		r.Observe(startQP, 0, false, false)
	}

	return &Result{QP: startQP, Path: path, TargetMet: false}, nil
}
