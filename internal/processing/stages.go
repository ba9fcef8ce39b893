package processing

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/ssimtune/ssimtune/internal/config"
	"github.com/ssimtune/ssimtune/internal/detect"
	"github.com/ssimtune/ssimtune/internal/errors"
	"github.com/ssimtune/ssimtune/internal/ffmpeg"
	"github.com/ssimtune/ssimtune/internal/logging"
	"github.com/ssimtune/ssimtune/internal/reporter"
	"github.com/ssimtune/ssimtune/internal/sample"
	"github.com/ssimtune/ssimtune/internal/util"
	"github.com/ssimtune/ssimtune/internal/verify"
)

// validateInput rejects missing files and unsupported container
// extensions before any collaborator is invoked.
func validateInput(inputPath string) error {
	if !util.FileExists(inputPath) {
		return errors.NewInputError("input file not found: " + inputPath)
	}
	ext := strings.ToLower(filepath.Ext(inputPath))
	if !util.VideoExtensions[ext] {
		return errors.NewInputError("unsupported input extension: " + ext)
	}
	return nil
}

// buildSamples selects segment timestamps and materializes the sample
// set in a fresh workspace. The returned cleanup removes the workspace
// and must run on every exit path.
func buildSamples(
	ctx context.Context,
	cfg *config.Config,
	inputPath string,
	duration, frameRate float64,
	gop int,
	audioOpts []string,
	rep reporter.Reporter,
	log *logging.Logger,
) ([]sample.Sample, func(), error) {
	rep.StageProgress("sampling", fmt.Sprintf("selecting %d segments (%s mode)",
		cfg.SampleCount, cfg.SamplingMode))

	selector := sample.NewSelector(detect.New(log), log)
	times, err := selector.SelectTimes(ctx, inputPath, duration, sample.Params{
		Mode:           cfg.SamplingMode,
		Percent:        cfg.SamplePercent,
		Count:          cfg.SampleCount,
		SceneThreshold: cfg.SceneThreshold,
	})
	if err != nil {
		return nil, nil, err
	}
	if len(times) < cfg.SampleCount {
		return nil, nil, errors.NewNoTimestampsError(fmt.Sprintf(
			"selected %d of %d requested sample timestamps; source too short for the requested sampling",
			len(times), cfg.SampleCount))
	}

	workspace, err := util.CreateTempDir("", "ssimtune_sample")
	if err != nil {
		return nil, nil, errors.NewIOError("failed to create sample workspace", err)
	}
	cleanup := func() { _ = workspace.Cleanup() }

	clipLen := sample.ClipLength(duration, cfg.SamplePercent, cfg.SampleCount)
	builder := &sample.Builder{
		Workspace: workspace.Path,
		SampleQP:  cfg.SampleQP,
		FrameRate: frameRate,
		GOP:       gop,
		Audio:     audioOpts,
		Log:       log,
	}

	rep.StageProgress("sampling", fmt.Sprintf("extracting %d clips of %.1fs at QP %d",
		len(times), clipLen, cfg.SampleQP))

	samples, err := builder.Build(ctx, inputPath, times, clipLen)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	return samples, cleanup, nil
}

// fullEncoder adapts the ffmpeg package to the verifier's interface,
// staging whole-file renditions in a temporary directory.
type fullEncoder struct {
	input      string
	stagingDir string
	frameRate  float64
	gop        int
	audio      []string
}

func (f *fullEncoder) Encode(ctx context.Context, qp int) (string, error) {
	output := filepath.Join(f.stagingDir, renditionName(f.input, qp))
	req := &ffmpeg.EncodeRequest{
		Input:     f.input,
		Output:    output,
		QP:        qp,
		FrameRate: f.frameRate,
		GOP:       f.gop,
		Audio:     f.audio,
	}
	if err := ffmpeg.Encode(ctx, req); err != nil {
		return "", err
	}
	return output, nil
}

func (f *fullEncoder) Score(ctx context.Context, renditionPath string) (float64, error) {
	return ffmpeg.MeasureSSIM(ctx, f.input, renditionPath)
}

// renditionName embeds the encoder identity and QP in the output name.
func renditionName(inputPath string, qp int) string {
	stem := util.GetFileStem(inputPath)
	ext := filepath.Ext(inputPath)
	return fmt.Sprintf("%s [%s qp %d]%s", stem, config.VideoCodec, qp, ext)
}

// verifyFullFile runs the whole-file verification walk and moves the
// accepted rendition next to the input.
func verifyFullFile(
	ctx context.Context,
	cfg *config.Config,
	inputPath string,
	startQP int,
	frameRate float64,
	gop int,
	audioOpts []string,
	rep reporter.Reporter,
	log *logging.Logger,
) (*Result, error) {
	rep.StageProgress("verification", fmt.Sprintf("full-file encode starting at QP %d", startQP))

	staging, err := util.CreateTempDir("", "ssimtune_final")
	if err != nil {
		return nil, errors.NewIOError("failed to create staging workspace", err)
	}
	defer func() { _ = staging.Cleanup() }()

	// A full rendition can approach the source size; warn when the
	// staging filesystem looks too tight to hold one.
	if srcSize, err := util.GetFileSize(inputPath); err == nil {
		if free := util.AvailableDiskBytes(staging.Path); free > 0 && free < srcSize {
			warning := fmt.Sprintf("staging filesystem has %s free, source is %s",
				util.FormatBytes(free), util.FormatBytes(srcSize))
			rep.Warning(warning)
			log.Warn("low disk space in staging workspace", "free", free, "source", srcSize)
		}
	}

	runner := &verify.Runner{
		Encoder: &fullEncoder{
			input:      inputPath,
			stagingDir: staging.Path,
			frameRate:  frameRate,
			gop:        gop,
			audio:      audioOpts,
		},
		Log: log,
		Observe: func(qp int, score float64, met, scored bool) {
			rep.VerifyAttempt(reporter.VerifyAttempt{QP: qp, Score: score, Met: met, Scored: scored})
		},
	}

	res, err := runner.Run(ctx, startQP, cfg.MinQP, cfg.TargetSSIM)
	if err != nil {
		return nil, err
	}
	if !res.TargetMet {
		rep.Warning(fmt.Sprintf(
			"full-file SSIM target %.4f unreachable above QP %d; keeping sample-based QP %d",
			cfg.TargetSSIM, cfg.MinQP, res.QP))
	}

	dest := filepath.Join(filepath.Dir(inputPath), renditionName(inputPath, res.QP))
	if err := util.MoveFile(res.Path, dest); err != nil {
		_ = os.Remove(res.Path)
		return nil, errors.NewIOError("failed to place output file", err)
	}

	return &Result{
		OutputFile:    dest,
		FinalQP:       res.QP,
		FullFileScore: res.Score,
		TargetMet:     res.TargetMet,
	}, nil
}

// maxProbes bounds the number of evaluator calls the binary search can
// make: the initial high probe plus the bisection depth.
func maxProbes(minQP, maxQP int) int {
	span := maxQP - minQP
	if span <= 0 {
		return 1
	}
	return int(math.Ceil(math.Log2(float64(span)))) + 1
}
