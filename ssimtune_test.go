package ssimtune

import (
	"testing"

	"github.com/ssimtune/ssimtune/internal/config"
)

func TestNewDefaults(t *testing.T) {
	opt, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	cfg := opt.config
	if cfg.TargetSSIM != config.DefaultTargetSSIM {
		t.Errorf("TargetSSIM = %v, want %v", cfg.TargetSSIM, config.DefaultTargetSSIM)
	}
	if cfg.MinQP != config.DefaultMinQP || cfg.MaxQP != config.DefaultMaxQP {
		t.Errorf("QP range = %d-%d, want defaults %d-%d",
			cfg.MinQP, cfg.MaxQP, config.DefaultMinQP, config.DefaultMaxQP)
	}
}

func TestNewAppliesOptions(t *testing.T) {
	opt, err := New(
		WithTargetSSIM(0.985),
		WithQPRange(20, 35),
		WithSamplePercent(10),
		WithSampleCount(5),
		WithSampleQP(14),
		WithSamplingMode(SamplingScene),
		WithMetric(MetricMin),
		WithSceneThreshold(0.5),
		WithVerbose(true),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	cfg := opt.config
	if cfg.TargetSSIM != 0.985 {
		t.Errorf("TargetSSIM = %v, want 0.985", cfg.TargetSSIM)
	}
	if cfg.MinQP != 20 || cfg.MaxQP != 35 {
		t.Errorf("QP range = %d-%d, want 20-35", cfg.MinQP, cfg.MaxQP)
	}
	if cfg.SampleCount != 5 || cfg.SampleQP != 14 {
		t.Errorf("samples = count %d, QP %d; want 5, 14", cfg.SampleCount, cfg.SampleQP)
	}
	if cfg.SamplingMode != SamplingScene {
		t.Errorf("SamplingMode = %v, want scene", cfg.SamplingMode)
	}
	if cfg.Metric != MetricMin {
		t.Errorf("Metric = %v, want min", cfg.Metric)
	}
	if !cfg.Verbose {
		t.Error("Verbose = false, want true")
	}
}

func TestNewRejectsInvalidOptions(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
	}{
		{"target above one", []Option{WithTargetSSIM(1.5)}},
		{"inverted qp range", []Option{WithQPRange(35, 20)}},
		{"zero sample count", []Option{WithSampleCount(0)}},
		{"bad sampling mode", []Option{WithSamplingMode("wavelet")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.opts...); err == nil {
				t.Error("New() expected validation error")
			}
		})
	}
}

func TestParseSamplingModeFacade(t *testing.T) {
	mode, err := ParseSamplingMode("motion")
	if err != nil {
		t.Fatalf("ParseSamplingMode() error = %v", err)
	}
	if mode != SamplingMotion {
		t.Errorf("ParseSamplingMode() = %v, want motion", mode)
	}

	if _, err := ParseSamplingMode("nope"); err == nil {
		t.Error("ParseSamplingMode() expected error")
	}
}

func TestParseMetricFacade(t *testing.T) {
	metric, err := ParseMetric("max")
	if err != nil {
		t.Fatalf("ParseMetric() error = %v", err)
	}
	if metric != MetricMax {
		t.Errorf("ParseMetric() = %v, want max", metric)
	}

	if _, err := ParseMetric("p95"); err == nil {
		t.Error("ParseMetric() expected error")
	}
}
