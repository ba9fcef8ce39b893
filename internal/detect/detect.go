// Package detect finds scene changes and motion peaks using ffprobe's
// lavfi input device.
package detect

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/ssimtune/ssimtune/internal/errors"
	"github.com/ssimtune/ssimtune/internal/logging"
)

// Detector runs frame analysis probes against a video file.
type Detector interface {
	// Scenes returns timestamps where the scene-change score exceeds threshold.
	Scenes(ctx context.Context, path string, threshold float64) ([]float64, error)
	// Motion returns per-second timestamps ordered by descending motion intensity.
	Motion(ctx context.Context, path string) ([]float64, error)
}

// FFprobeDetector implements Detector with ffprobe lavfi filter graphs.
type FFprobeDetector struct {
	log *logging.Logger
}

// New creates an FFprobeDetector.
func New(log *logging.Logger) *FFprobeDetector {
	if log == nil {
		log = logging.Discard()
	}
	return &FFprobeDetector{log: log}
}

// lavfiFrames represents the frames array of ffprobe's JSON output.
type lavfiFrames struct {
	Frames []lavfiFrame `json:"frames"`
}

type lavfiFrame struct {
	BestEffortTimestampTime string            `json:"best_effort_timestamp_time"`
	PktPtsTime              string            `json:"pkt_pts_time"`
	Tags                    map[string]string `json:"tags"`
}

// timestamp prefers the best-effort timestamp, falling back to pkt_pts_time.
func (f lavfiFrame) timestamp() (float64, bool) {
	for _, s := range []string{f.BestEffortTimestampTime, f.PktPtsTime} {
		if s == "" {
			continue
		}
		if ts, err := strconv.ParseFloat(s, 64); err == nil {
			return ts, true
		}
	}
	return 0, false
}

// Scenes returns timestamps of frames whose lavfi scene score exceeds threshold.
func (d *FFprobeDetector) Scenes(ctx context.Context, path string, threshold float64) ([]float64, error) {
	d.log.Debug("detecting scene changes", "path", path, "threshold", threshold)

	frames, err := d.runLavfi(ctx, path,
		func(safePath string) string {
			return fmt.Sprintf("movie=%s,select='gt(scene,%g)'", safePath, threshold)
		},
		"frame=best_effort_timestamp_time:frame_tags=lavfi.scene_score")
	if err != nil {
		return nil, err
	}

	times := sceneTimes(frames)
	d.log.Debug("scene detection complete", "count", len(times))
	return times, nil
}

// sceneTimes extracts timestamps of frames carrying a scene score tag.
func sceneTimes(frames *lavfiFrames) []float64 {
	var times []float64
	for _, frame := range frames.Frames {
		if _, ok := frame.Tags["lavfi.scene_score"]; !ok {
			continue
		}
		if ts, ok := frame.timestamp(); ok {
			times = append(times, ts)
		}
	}
	return times
}

// Motion samples luma frame difference (signalstats YDIF) at 1 fps and
// returns timestamps ordered by descending intensity.
func (d *FFprobeDetector) Motion(ctx context.Context, path string) ([]float64, error) {
	d.log.Debug("detecting motion peaks", "path", path)

	frames, err := d.runLavfi(ctx, path,
		func(safePath string) string {
			return fmt.Sprintf("movie=%s,fps=1,signalstats,metadata=print:key=lavfi.signalstats.YDIF", safePath)
		},
		"frame=pkt_pts_time:frame_tags=lavfi.signalstats.YDIF")
	if err != nil {
		return nil, err
	}

	times := motionTimes(frames)
	d.log.Debug("motion detection complete", "count", len(times))
	return times, nil
}

// motionTimes extracts (score, timestamp) pairs and orders timestamps by
// descending score. The sort is stable so equal scores keep frame order.
func motionTimes(frames *lavfiFrames) []float64 {
	type scoredTime struct {
		score float64
		ts    float64
	}

	var scored []scoredTime
	for _, frame := range frames.Frames {
		raw, ok := frame.Tags["lavfi.signalstats.YDIF"]
		if !ok {
			continue
		}
		score, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			continue
		}
		if ts, ok := frame.timestamp(); ok {
			scored = append(scored, scoredTime{score: score, ts: ts})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	times := make([]float64, 0, len(scored))
	for _, st := range scored {
		times = append(times, st.ts)
	}
	return times
}

// runLavfi executes ffprobe with a lavfi filter graph. The input is reached
// through a temporary symlink with a safe name, since the movie= source
// embeds the path inside the filter expression where commas, colons, and
// quotes have syntactic meaning.
func (d *FFprobeDetector) runLavfi(ctx context.Context, path string, buildFilter func(safePath string) string, entries string) (*lavfiFrames, error) {
	linkDir, linkPath, err := safeLink(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = os.RemoveAll(linkDir) }()

	cmd := exec.CommandContext(ctx, "ffprobe",
		"-v", "quiet",
		"-f", "lavfi",
		buildFilter(linkPath),
		"-show_entries", entries,
		"-of", "json",
	)

	output, err := cmd.Output()
	if err != nil {
		return nil, errors.NewProbeError("ffprobe lavfi failed", errors.WrapExecError("ffprobe", err, ""))
	}

	return parseLavfiFrames(output)
}

// parseLavfiFrames unmarshals ffprobe's JSON frames output.
func parseLavfiFrames(data []byte) (*lavfiFrames, error) {
	var frames lavfiFrames
	if err := json.Unmarshal(data, &frames); err != nil {
		return nil, errors.NewProbeError("failed to parse ffprobe lavfi output", err)
	}
	return &frames, nil
}

// safeLink creates a symlink to path inside a fresh temporary directory,
// named "input<ext>" so the resulting path carries no lavfi metacharacters.
func safeLink(path string) (dir, link string, err error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", "", errors.NewIOError("failed to resolve input path", err)
	}

	dir, err = os.MkdirTemp("", "ssimtune_probe_")
	if err != nil {
		return "", "", errors.NewIOError("failed to create probe directory", err)
	}

	link = filepath.Join(dir, "input"+filepath.Ext(abs))
	if err := os.Symlink(abs, link); err != nil {
		_ = os.RemoveAll(dir)
		return "", "", errors.NewIOError("failed to link input for probing", err)
	}
	return dir, link, nil
}
