// Package processing orchestrates one optimization run end to end.
package processing

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/ssimtune/ssimtune/internal/config"
	"github.com/ssimtune/ssimtune/internal/ffmpeg"
	"github.com/ssimtune/ssimtune/internal/ffprobe"
	"github.com/ssimtune/ssimtune/internal/logging"
	"github.com/ssimtune/ssimtune/internal/reporter"
	"github.com/ssimtune/ssimtune/internal/search"
	"github.com/ssimtune/ssimtune/internal/util"
)

// Result contains the outcome of one optimization run.
type Result struct {
	// OutputFile is the accepted rendition next to the input.
	OutputFile string
	// FinalQP is the accepted quality parameter.
	FinalQP int
	// SampleSearchQP is the QP selected by the sample-based binary search
	// before full-file verification.
	SampleSearchQP int
	// FullFileScore is the whole-file SSIM at FinalQP, 0 when unmeasured.
	FullFileScore float64
	// TargetMet is false when the full-file walk exhausted the QP floor.
	TargetMet bool

	OriginalSize uint64
	EncodedSize  uint64
	Elapsed      time.Duration
}

// Run executes the full pipeline: probe, sample, search, verify, and
// placement of the accepted rendition next to the input.
func Run(ctx context.Context, cfg *config.Config, inputPath string, rep reporter.Reporter, log *logging.Logger) (*Result, error) {
	if rep == nil {
		rep = reporter.NullReporter{}
	}
	if log == nil {
		log = logging.Discard()
	}

	startTime := time.Now()

	// Input validation happens before any collaborator is invoked.
	if err := validateInput(inputPath); err != nil {
		return nil, err
	}

	rep.StageProgress("analysis", "probing source")

	duration, err := ffprobe.Duration(ctx, inputPath)
	if err != nil {
		return nil, err
	}
	frameRate, err := ffprobe.FrameRate(ctx, inputPath)
	if err != nil {
		return nil, err
	}
	audioStreams, err := ffprobe.AudioStreams(ctx, inputPath)
	if err != nil {
		return nil, err
	}

	gop := ffmpeg.GOPForFrameRate(frameRate)

	decisions := ffmpeg.PlanAudio(audioStreams)
	audioOpts := ffmpeg.AudioOptions(decisions)
	var decisionStrings []string
	for _, d := range decisions {
		decisionStrings = append(decisionStrings, d.String())
		log.Info("audio plan", "decision", d.String())
	}
	rep.AudioPlan(decisionStrings)

	rep.Initialization(reporter.InitializationSummary{
		InputFile:    filepath.Base(inputPath),
		Duration:     util.FormatDuration(duration),
		FrameRate:    fmt.Sprintf("%.3f", frameRate),
		TargetSSIM:   cfg.TargetSSIM,
		QPRange:      fmt.Sprintf("%d-%d", cfg.MinQP, cfg.MaxQP),
		SamplingMode: cfg.SamplingMode.String(),
		Metric:       cfg.Metric.String(),
		SampleCount:  cfg.SampleCount,
	})

	// Sample extraction workspace, removed on every exit path.
	samples, sampleCleanup, err := buildSamples(ctx, cfg, inputPath, duration, frameRate, gop, audioOpts, rep, log)
	if err != nil {
		return nil, err
	}
	defer sampleCleanup()

	// Sample-based binary search.
	rep.StageProgress("search", fmt.Sprintf("binary search over QP %d-%d", cfg.MinQP, cfg.MaxQP))
	rep.SearchStarted(maxProbes(cfg.MinQP, cfg.MaxQP))

	evaluator := &search.SampleEvaluator{
		Samples:   samples,
		FrameRate: frameRate,
		GOP:       gop,
		Audio:     audioOpts,
		Metric:    cfg.Metric,
		Log:       log,
		Observe: func(obs search.Observation) {
			rep.SearchObservation(reporter.SearchObservation{
				QP:        obs.QP,
				Scores:    obs.PerSample,
				Aggregate: obs.Aggregate,
			})
		},
	}

	bestQP, err := search.FindBestQP(ctx, evaluator, cfg.MinQP, cfg.MaxQP, cfg.TargetSSIM)
	if err != nil {
		return nil, err
	}
	rep.SearchComplete(bestQP)
	log.Info("sample search complete", "qp", bestQP)

	// Full-file verification in its own staging workspace.
	result, err := verifyFullFile(ctx, cfg, inputPath, bestQP, frameRate, gop, audioOpts, rep, log)
	if err != nil {
		return nil, err
	}
	result.SampleSearchQP = bestQP

	originalSize, _ := util.GetFileSize(inputPath)
	encodedSize, _ := util.GetFileSize(result.OutputFile)
	result.OriginalSize = originalSize
	result.EncodedSize = encodedSize
	result.Elapsed = time.Since(startTime)

	rep.OperationComplete(reporter.CompletionSummary{
		OutputFile:    result.OutputFile,
		FinalQP:       result.FinalQP,
		FullFileScore: result.FullFileScore,
		TargetMet:     result.TargetMet,
		OriginalSize:  util.FormatBytes(originalSize),
		EncodedSize:   util.FormatBytes(encodedSize),
		Elapsed:       result.Elapsed.Round(time.Second).String(),
	})

	return result, nil
}
