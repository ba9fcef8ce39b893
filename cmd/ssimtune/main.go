// Package main provides the CLI entry point for ssimtune.
package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ssimtune/ssimtune/internal/config"
	"github.com/ssimtune/ssimtune/internal/errors"
	"github.com/ssimtune/ssimtune/internal/logging"
	"github.com/ssimtune/ssimtune/internal/processing"
	"github.com/ssimtune/ssimtune/internal/reporter"
)

const (
	appName    = "ssimtune"
	appVersion = "0.1.0"
)

// cliFlags holds values bound to the root command's flags.
type cliFlags struct {
	targetSSIM     float64
	minQP          int
	maxQP          int
	samplePercent  float64
	sampleCount    int
	sampleQP       int
	samplingMode   string
	metric         string
	sceneThreshold float64
	configFile     string
	logFile        string
	verbose        bool
}

// errReported marks failures the terminal reporter has already shown,
// so main does not print them a second time.
var errReported = stderrors.New("error already reported")

func main() {
	if err := newRootCommand().Execute(); err != nil {
		if !stderrors.Is(err, errReported) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var cf cliFlags

	cmd := &cobra.Command{
		Use:   appName + " [flags] <input>",
		Short: "Find the coarsest QP that keeps SSIM at or above a target",
		Long: appName + ` re-encodes a video at the highest quantization parameter
whose structural similarity to the source still meets the chosen SSIM
target. It binary-searches the QP range against sampled segments, then
verifies the winner against the whole file before accepting it.`,
		Version:       appVersion,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOptimize(cmd, &cf, args[0])
		},
	}

	fl := cmd.Flags()
	fl.Float64Var(&cf.targetSSIM, "ssim", config.DefaultTargetSSIM, "target SSIM score in (0, 1]")
	fl.IntVar(&cf.minQP, "min-qp", config.DefaultMinQP, "lower bound of the QP search range")
	fl.IntVar(&cf.maxQP, "max-qp", config.DefaultMaxQP, "upper bound of the QP search range")
	fl.Float64Var(&cf.samplePercent, "sample-percent", config.DefaultSamplePercent, "percent of total duration to sample")
	fl.IntVar(&cf.sampleCount, "sample-count", config.DefaultSampleCount, "number of sample clips")
	fl.IntVar(&cf.sampleQP, "sample-qp", config.DefaultSampleQP, "QP for sample reference renditions")
	fl.StringVar(&cf.samplingMode, "sampling-mode", config.SamplingMotion.String(), "segment selection: uniform, scene, or motion")
	fl.StringVar(&cf.metric, "metric", config.MetricAvg.String(), "per-sample score reducer: avg, min, or max")
	fl.Float64Var(&cf.sceneThreshold, "scene-threshold", config.DefaultSceneThreshold, "scene-change score cutoff for scene sampling")
	fl.StringVar(&cf.configFile, "config", "", "TOML config file (CLI flags take precedence)")
	fl.StringVar(&cf.logFile, "log-file", "", "append logs to this file")
	fl.BoolVarP(&cf.verbose, "verbose", "v", false, "enable debug logging to stderr")

	return cmd
}

func runOptimize(cmd *cobra.Command, cf *cliFlags, input string) error {
	rep := reporter.NewTerminalReporter()

	cfg, err := buildConfig(cmd, cf)
	if err != nil {
		return err
	}

	inputPath, err := filepath.Abs(input)
	if err != nil {
		return fmt.Errorf("invalid input path: %w", err)
	}

	log, err := logging.Setup(cfg.Verbose, cfg.LogFile)
	if err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	defer func() { _ = log.Close() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	if _, err := processing.Run(ctx, cfg, inputPath, rep, log); err != nil {
		rep.Error(reportError(err))
		log.Error("optimization failed", "error", err)
		return fmt.Errorf("%w: %w", errReported, err)
	}

	return nil
}

// buildConfig resolves the effective configuration: CLI flags override
// config file values, which override defaults.
func buildConfig(cmd *cobra.Command, cf *cliFlags) (*config.Config, error) {
	cfg := config.NewConfig()

	cfg.TargetSSIM = cf.targetSSIM
	cfg.MinQP = cf.minQP
	cfg.MaxQP = cf.maxQP
	cfg.SamplePercent = cf.samplePercent
	cfg.SampleCount = cf.sampleCount
	cfg.SampleQP = cf.sampleQP
	cfg.SceneThreshold = cf.sceneThreshold
	cfg.LogFile = cf.logFile
	cfg.Verbose = cf.verbose

	mode, err := config.ParseSamplingMode(cf.samplingMode)
	if err != nil {
		return nil, err
	}
	cfg.SamplingMode = mode

	metric, err := config.ParseMetric(cf.metric)
	if err != nil {
		return nil, err
	}
	cfg.Metric = metric

	if cf.configFile != "" {
		if err := config.ApplyFile(cfg, cf.configFile, cmd.Flags()); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// reportError maps pipeline errors to terminal-friendly reports.
func reportError(err error) reporter.ReporterError {
	switch {
	case errors.IsCancelled(err):
		return reporter.ReporterError{
			Title:   "Cancelled",
			Message: "optimization interrupted before completion",
		}
	case errors.IsKind(err, errors.KindInput):
		return reporter.ReporterError{
			Title:      "Invalid input",
			Message:    err.Error(),
			Suggestion: "check that the file exists and is a supported video container",
		}
	case errors.IsKind(err, errors.KindProbe):
		return reporter.ReporterError{
			Title:      "Probe failed",
			Message:    err.Error(),
			Suggestion: "verify ffprobe is installed and the file is readable",
		}
	case errors.IsKind(err, errors.KindNoTimestamps):
		return reporter.ReporterError{
			Title:      "Sampling failed",
			Message:    err.Error(),
			Suggestion: "reduce --sample-count or --sample-percent for short sources",
		}
	case errors.IsKind(err, errors.KindEncode):
		return reporter.ReporterError{
			Title:      "Encode failed",
			Message:    err.Error(),
			Suggestion: "verify ffmpeg is installed with h264_nvenc support",
		}
	case errors.IsKind(err, errors.KindScore):
		return reporter.ReporterError{
			Title:   "Scoring failed",
			Message: err.Error(),
		}
	default:
		return reporter.ReporterError{
			Title:   "Optimization failed",
			Message: err.Error(),
		}
	}
}
