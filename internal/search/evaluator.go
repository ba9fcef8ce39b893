// Package search implements the sample-based QP binary search.
package search

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ssimtune/ssimtune/internal/config"
	"github.com/ssimtune/ssimtune/internal/ffmpeg"
	"github.com/ssimtune/ssimtune/internal/logging"
	"github.com/ssimtune/ssimtune/internal/sample"
)

// Evaluator produces an aggregate similarity score for a candidate QP.
type Evaluator interface {
	Score(ctx context.Context, qp int) (float64, error)
}

// Observation is one evaluator invocation: per-sample scores at a QP and
// their aggregate. Produced fresh on every call, never cached.
type Observation struct {
	QP        int
	PerSample []float64
	Aggregate float64
}

// SampleEvaluator scores a QP by re-encoding each sample's reference
// rendition at that QP and measuring SSIM against the untouched reference.
type SampleEvaluator struct {
	Samples   []sample.Sample
	FrameRate float64
	GOP       int
	Audio     []string
	Metric    config.Metric

	Log *logging.Logger

	// Observe, when set, receives every observation as it is produced.
	Observe func(Observation)
}

// Score implements Evaluator. Each trial rendition is removed as soon as
// it has been measured.
func (e *SampleEvaluator) Score(ctx context.Context, qp int) (float64, error) {
	log := e.Log
	if log == nil {
		log = logging.Discard()
	}

	scores := make([]float64, 0, len(e.Samples))

	for _, s := range e.Samples {
		trial := trialPath(s.Path, qp)

		req := &ffmpeg.EncodeRequest{
			Input:     s.Path,
			Output:    trial,
			QP:        qp,
			FrameRate: e.FrameRate,
			GOP:       e.GOP,
			Audio:     e.Audio,
		}
		if err := ffmpeg.Encode(ctx, req); err != nil {
			return 0, err
		}

		score, err := ffmpeg.MeasureSSIM(ctx, s.Path, trial)
		_ = os.Remove(trial)
		if err != nil {
			return 0, err
		}

		scores = append(scores, score)
	}

	aggregate := Reduce(e.Metric, scores)
	log.Info("sample scores", "qp", qp, "scores", fmt.Sprintf("%.4f", scores),
		"metric", e.Metric, "aggregate", fmt.Sprintf("%.4f", aggregate))

	if e.Observe != nil {
		e.Observe(Observation{QP: qp, PerSample: scores, Aggregate: aggregate})
	}

	return aggregate, nil
}

// trialPath derives the trial rendition path from the reference path.
func trialPath(refPath string, qp int) string {
	ext := filepath.Ext(refPath)
	stem := strings.TrimSuffix(refPath, ext)
	return fmt.Sprintf("%s_enc_qp%d%s", stem, qp, ext)
}
