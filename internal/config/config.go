// Package config provides configuration types and defaults for ssimtune.
package config

import (
	"fmt"
	"strings"
)

// Default constants
const (
	// DefaultTargetSSIM is the default target similarity score.
	DefaultTargetSSIM float64 = 0.99

	// DefaultMinQP is the lower bound of the QP search range.
	DefaultMinQP int = 19

	// DefaultMaxQP is the upper bound of the QP search range.
	DefaultMaxQP int = 32

	// DefaultSamplePercent is the fraction of total duration sampled, in percent.
	DefaultSamplePercent float64 = 15

	// DefaultSampleCount is the number of sample clips.
	DefaultSampleCount int = 3

	// DefaultSampleQP is the QP used for the reference rendition of each sample.
	DefaultSampleQP int = 16

	// DefaultSceneThreshold is the scene-change score cutoff for scene sampling.
	DefaultSceneThreshold float64 = 0.6

	// MaxQPLimit is the largest QP the encoder accepts.
	MaxQPLimit int = 51
)

// Encoder invocation constants shared by every encode in the pipeline.
const (
	VideoCodec  = "h264_nvenc"
	VideoPreset = "p7"
	PixelFormat = "yuv420p"
	RateControl = "constqp"
	HWAccel     = "cuda"
	BFrames     = 2
)

// SamplingMode selects the segment selection strategy.
type SamplingMode string

const (
	SamplingUniform SamplingMode = "uniform"
	SamplingScene   SamplingMode = "scene"
	SamplingMotion  SamplingMode = "motion"
)

// ParseSamplingMode parses a string into a SamplingMode.
func ParseSamplingMode(s string) (SamplingMode, error) {
	switch strings.ToLower(s) {
	case "uniform":
		return SamplingUniform, nil
	case "scene":
		return SamplingScene, nil
	case "motion":
		return SamplingMotion, nil
	default:
		return "", fmt.Errorf("%w: '%s', valid options: uniform, scene, motion", ErrInvalidSamplingMode, s)
	}
}

// String returns the string representation of the sampling mode.
func (m SamplingMode) String() string {
	return string(m)
}

// Metric selects the per-sample score reducer.
type Metric string

const (
	MetricAvg Metric = "avg"
	MetricMin Metric = "min"
	MetricMax Metric = "max"
)

// ParseMetric parses a string into a Metric.
func ParseMetric(s string) (Metric, error) {
	switch strings.ToLower(s) {
	case "avg":
		return MetricAvg, nil
	case "min":
		return MetricMin, nil
	case "max":
		return MetricMax, nil
	default:
		return "", fmt.Errorf("%w: '%s', valid options: avg, min, max", ErrInvalidMetric, s)
	}
}

// String returns the string representation of the metric.
func (m Metric) String() string {
	return string(m)
}

// Config holds all configuration for one optimization run.
type Config struct {
	// TargetSSIM is the similarity score the accepted QP must meet.
	TargetSSIM float64

	// MinQP and MaxQP bound the QP search (inclusive).
	MinQP int
	MaxQP int

	// SamplePercent is the fraction of total duration to sample, 0-100.
	SamplePercent float64

	// SampleCount is the number of sample clips to evaluate.
	SampleCount int

	// SampleQP is the fixed high-quality QP for sample reference renditions.
	SampleQP int

	// SamplingMode selects uniform, scene, or motion sampling.
	SamplingMode SamplingMode

	// Metric selects the per-sample score reducer.
	Metric Metric

	// SceneThreshold is the scene-change score cutoff.
	SceneThreshold float64

	// LogFile is an optional log file path.
	LogFile string

	// Verbose enables debug logging and mirrors logs to stderr.
	Verbose bool
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		TargetSSIM:     DefaultTargetSSIM,
		MinQP:          DefaultMinQP,
		MaxQP:          DefaultMaxQP,
		SamplePercent:  DefaultSamplePercent,
		SampleCount:    DefaultSampleCount,
		SampleQP:       DefaultSampleQP,
		SamplingMode:   SamplingMotion,
		Metric:         MetricAvg,
		SceneThreshold: DefaultSceneThreshold,
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.TargetSSIM <= 0 || c.TargetSSIM > 1 {
		return fmt.Errorf("%w: must be in (0, 1], got %v", ErrInvalidTarget, c.TargetSSIM)
	}

	if c.MinQP < 0 || c.MaxQP > MaxQPLimit {
		return fmt.Errorf("%w: must be within 0-%d, got %d-%d", ErrInvalidQPRange, MaxQPLimit, c.MinQP, c.MaxQP)
	}

	if c.MinQP > c.MaxQP {
		return fmt.Errorf("%w: min (%d) exceeds max (%d)", ErrInvalidQPRange, c.MinQP, c.MaxQP)
	}

	if c.SampleQP < 0 || c.SampleQP > MaxQPLimit {
		return fmt.Errorf("%w: sample QP must be within 0-%d, got %d", ErrInvalidQPRange, MaxQPLimit, c.SampleQP)
	}

	if c.SamplePercent <= 0 || c.SamplePercent > 100 {
		return fmt.Errorf("%w: must be in (0, 100], got %v", ErrInvalidSamplePercent, c.SamplePercent)
	}

	if c.SampleCount < 1 {
		return fmt.Errorf("%w: must be at least 1, got %d", ErrInvalidSampleCount, c.SampleCount)
	}

	if _, err := ParseSamplingMode(string(c.SamplingMode)); err != nil {
		return err
	}

	if _, err := ParseMetric(string(c.Metric)); err != nil {
		return err
	}

	if c.SceneThreshold <= 0 || c.SceneThreshold >= 1 {
		return fmt.Errorf("%w: must be in (0, 1), got %v", ErrInvalidSceneThreshold, c.SceneThreshold)
	}

	return nil
}
