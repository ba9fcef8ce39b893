// Package ssimtune provides a Go library for SSIM-targeted video
// quality optimization.
//
// ssimtune finds the coarsest quantization parameter (QP) for a video
// file such that perceptual similarity to the source stays at or above
// a chosen SSIM threshold. It samples representative segments of the
// source, binary-searches the QP range against them, and verifies the
// result on the whole file before accepting it.
//
// Basic usage:
//
//	opt, err := ssimtune.New(
//	    ssimtune.WithTargetSSIM(0.985),
//	    ssimtune.WithQPRange(19, 32),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := opt.Optimize(ctx, "input.mkv")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Printf("Optimized: %s (QP %d)\n", result.OutputFile, result.FinalQP)
package ssimtune

import (
	"context"

	"github.com/ssimtune/ssimtune/internal/config"
	"github.com/ssimtune/ssimtune/internal/logging"
	"github.com/ssimtune/ssimtune/internal/processing"
	"github.com/ssimtune/ssimtune/internal/reporter"
)

// Re-export sampling mode and metric types
type (
	SamplingMode = config.SamplingMode
	Metric       = config.Metric
)

const (
	SamplingUniform = config.SamplingUniform
	SamplingScene   = config.SamplingScene
	SamplingMotion  = config.SamplingMotion

	MetricAvg = config.MetricAvg
	MetricMin = config.MetricMin
	MetricMax = config.MetricMax
)

// ParseSamplingMode converts a sampling mode string to a SamplingMode.
// Valid values are "uniform", "scene", and "motion" (case-insensitive).
func ParseSamplingMode(s string) (SamplingMode, error) {
	return config.ParseSamplingMode(s)
}

// ParseMetric converts a metric string to a Metric.
// Valid values are "avg", "min", and "max" (case-insensitive).
func ParseMetric(s string) (Metric, error) {
	return config.ParseMetric(s)
}

// Result contains the outcome of one optimization run.
type Result = processing.Result

// Optimizer is the main entry point for quality optimization.
type Optimizer struct {
	config *config.Config
}

// Option configures the optimizer.
type Option func(*config.Config)

// New creates a new Optimizer with the given options.
func New(opts ...Option) (*Optimizer, error) {
	cfg := config.NewConfig()

	for _, opt := range opts {
		opt(cfg)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Optimizer{config: cfg}, nil
}

// WithTargetSSIM sets the similarity score the accepted QP must meet.
func WithTargetSSIM(target float64) Option {
	return func(c *config.Config) {
		c.TargetSSIM = target
	}
}

// WithQPRange sets the inclusive QP search bounds.
func WithQPRange(minQP, maxQP int) Option {
	return func(c *config.Config) {
		c.MinQP = minQP
		c.MaxQP = maxQP
	}
}

// WithSamplePercent sets the fraction of total duration to sample (0-100).
func WithSamplePercent(percent float64) Option {
	return func(c *config.Config) {
		c.SamplePercent = percent
	}
}

// WithSampleCount sets the number of sample clips.
func WithSampleCount(count int) Option {
	return func(c *config.Config) {
		c.SampleCount = count
	}
}

// WithSampleQP sets the fixed high-quality QP for sample reference renditions.
func WithSampleQP(qp int) Option {
	return func(c *config.Config) {
		c.SampleQP = qp
	}
}

// WithSamplingMode selects the segment selection strategy.
func WithSamplingMode(mode SamplingMode) Option {
	return func(c *config.Config) {
		c.SamplingMode = mode
	}
}

// WithMetric selects the per-sample score reducer.
func WithMetric(metric Metric) Option {
	return func(c *config.Config) {
		c.Metric = metric
	}
}

// WithSceneThreshold sets the scene-change score cutoff for scene sampling.
func WithSceneThreshold(threshold float64) Option {
	return func(c *config.Config) {
		c.SceneThreshold = threshold
	}
}

// WithLogFile enables logging to the given file path.
func WithLogFile(path string) Option {
	return func(c *config.Config) {
		c.LogFile = path
	}
}

// WithVerbose enables debug logging to stderr.
func WithVerbose(verbose bool) Option {
	return func(c *config.Config) {
		c.Verbose = verbose
	}
}

// Optimize runs the full pipeline on one input file and places the
// accepted rendition next to it.
func (o *Optimizer) Optimize(ctx context.Context, inputPath string) (*Result, error) {
	log, err := logging.Setup(o.config.Verbose, o.config.LogFile)
	if err != nil {
		return nil, err
	}
	defer func() { _ = log.Close() }()

	return processing.Run(ctx, o.config, inputPath, reporter.NullReporter{}, log)
}
