package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/pflag"
)

// fileValues mirrors Config with pointer fields so absent keys can be
// told apart from zero values.
type fileValues struct {
	TargetSSIM     *float64 `toml:"ssim"`
	MinQP          *int     `toml:"min_qp"`
	MaxQP          *int     `toml:"max_qp"`
	SamplePercent  *float64 `toml:"sample_percent"`
	SampleCount    *int     `toml:"sample_count"`
	SampleQP       *int     `toml:"sample_qp"`
	SamplingMode   *string  `toml:"sampling_mode"`
	Metric         *string  `toml:"metric"`
	SceneThreshold *float64 `toml:"scene_threshold"`
	LogFile        *string  `toml:"log_file"`
	Verbose        *bool    `toml:"verbose"`
}

// fileFlagNames maps TOML keys to the CLI flag that overrides them.
var fileFlagNames = map[string]string{
	"ssim":            "ssim",
	"min_qp":          "min-qp",
	"max_qp":          "max-qp",
	"sample_percent":  "sample-percent",
	"sample_count":    "sample-count",
	"sample_qp":       "sample-qp",
	"sampling_mode":   "sampling-mode",
	"metric":          "metric",
	"scene_threshold": "scene-threshold",
	"log_file":        "log-file",
	"verbose":         "verbose",
}

// ApplyFile loads a TOML config file into cfg. Values for flags the user
// set explicitly on the command line are left untouched, so precedence is
// CLI > file > defaults. A nil flag set applies every present key.
func ApplyFile(cfg *Config, path string, flags *pflag.FlagSet) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var fv fileValues
	if err := toml.Unmarshal(data, &fv); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	changed := func(key string) bool {
		if flags == nil {
			return false
		}
		name, ok := fileFlagNames[key]
		return ok && flags.Changed(name)
	}

	if fv.TargetSSIM != nil && !changed("ssim") {
		cfg.TargetSSIM = *fv.TargetSSIM
	}
	if fv.MinQP != nil && !changed("min_qp") {
		cfg.MinQP = *fv.MinQP
	}
	if fv.MaxQP != nil && !changed("max_qp") {
		cfg.MaxQP = *fv.MaxQP
	}
	if fv.SamplePercent != nil && !changed("sample_percent") {
		cfg.SamplePercent = *fv.SamplePercent
	}
	if fv.SampleCount != nil && !changed("sample_count") {
		cfg.SampleCount = *fv.SampleCount
	}
	if fv.SampleQP != nil && !changed("sample_qp") {
		cfg.SampleQP = *fv.SampleQP
	}
	if fv.SamplingMode != nil && !changed("sampling_mode") {
		mode, err := ParseSamplingMode(*fv.SamplingMode)
		if err != nil {
			return err
		}
		cfg.SamplingMode = mode
	}
	if fv.Metric != nil && !changed("metric") {
		metric, err := ParseMetric(*fv.Metric)
		if err != nil {
			return err
		}
		cfg.Metric = metric
	}
	if fv.SceneThreshold != nil && !changed("scene_threshold") {
		cfg.SceneThreshold = *fv.SceneThreshold
	}
	if fv.LogFile != nil && !changed("log_file") {
		cfg.LogFile = *fv.LogFile
	}
	if fv.Verbose != nil && !changed("verbose") {
		cfg.Verbose = *fv.Verbose
	}

	return nil
}
