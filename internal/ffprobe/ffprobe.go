// Package ffprobe provides functions for extracting media information using ffprobe.
package ffprobe

import (
	"context"
	"encoding/json"
	"os/exec"
	"strconv"
	"strings"

	"github.com/ssimtune/ssimtune/internal/errors"
)

// AudioStream contains information about one audio stream.
type AudioStream struct {
	// Index is the stream's global index within the container.
	Index int
	// CodecName is the audio codec, e.g. "aac".
	CodecName string
	// BitRate is the stream bitrate in bits per second, 0 if unknown.
	BitRate int
	// Channels is the channel count.
	Channels int
}

// ffprobeOutput represents the JSON output from ffprobe.
type ffprobeOutput struct {
	Format  ffprobeFormat   `json:"format"`
	Streams []ffprobeStream `json:"streams"`
}

type ffprobeFormat struct {
	Duration string `json:"duration"`
}

type ffprobeStream struct {
	Index      int    `json:"index"`
	CodecType  string `json:"codec_type"`
	CodecName  string `json:"codec_name"`
	BitRate    string `json:"bit_rate"`
	Channels   int    `json:"channels"`
	RFrameRate string `json:"r_frame_rate"`
}

// runFFprobe executes ffprobe and returns the parsed output.
func runFFprobe(ctx context.Context, inputPath string) (*ffprobeOutput, error) {
	cmd := exec.CommandContext(ctx, "ffprobe",
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		inputPath,
	)

	output, err := cmd.Output()
	if err != nil {
		return nil, errors.NewProbeError("ffprobe failed", errors.WrapExecError("ffprobe", err, ""))
	}

	return parseFFprobeOutput(output)
}

// parseFFprobeOutput unmarshals raw ffprobe JSON.
func parseFFprobeOutput(data []byte) (*ffprobeOutput, error) {
	var result ffprobeOutput
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, errors.NewProbeError("failed to parse ffprobe output", err)
	}
	return &result, nil
}

// Duration returns the container duration in seconds.
func Duration(ctx context.Context, inputPath string) (float64, error) {
	probe, err := runFFprobe(ctx, inputPath)
	if err != nil {
		return 0, err
	}
	return probe.duration()
}

func (p *ffprobeOutput) duration() (float64, error) {
	if p.Format.Duration == "" {
		return 0, errors.NewProbeError("no duration in ffprobe output", nil)
	}
	d, err := strconv.ParseFloat(p.Format.Duration, 64)
	if err != nil {
		return 0, errors.NewProbeError("failed to parse duration", err)
	}
	return d, nil
}

// FrameRate returns the real frame rate of the first video stream,
// derived from ffprobe's rational r_frame_rate.
func FrameRate(ctx context.Context, inputPath string) (float64, error) {
	probe, err := runFFprobe(ctx, inputPath)
	if err != nil {
		return 0, err
	}
	return probe.frameRate()
}

func (p *ffprobeOutput) frameRate() (float64, error) {
	for _, stream := range p.Streams {
		if stream.CodecType != "video" {
			continue
		}
		return parseRational(stream.RFrameRate)
	}
	return 0, errors.NewProbeError("no video stream found", nil)
}

// parseRational parses a "num/den" frame rate string.
func parseRational(s string) (float64, error) {
	parts := strings.SplitN(s, "/", 2)
	if len(parts) != 2 {
		return 0, errors.NewProbeError("invalid frame rate "+strconv.Quote(s), nil)
	}
	num, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return 0, errors.NewProbeError("invalid frame rate numerator", err)
	}
	den, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return 0, errors.NewProbeError("invalid frame rate denominator", err)
	}
	if den == 0 {
		return 0, errors.NewProbeError("zero frame rate denominator", nil)
	}
	return num / den, nil
}

// AudioStreams returns the audio streams of the file in container order.
func AudioStreams(ctx context.Context, inputPath string) ([]AudioStream, error) {
	probe, err := runFFprobe(ctx, inputPath)
	if err != nil {
		return nil, err
	}
	return probe.audioStreams(), nil
}

func (p *ffprobeOutput) audioStreams() []AudioStream {
	var streams []AudioStream
	for _, stream := range p.Streams {
		if stream.CodecType != "audio" {
			continue
		}

		bitRate := 0
		if stream.BitRate != "" {
			if br, err := strconv.Atoi(stream.BitRate); err == nil {
				bitRate = br
			}
		}

		streams = append(streams, AudioStream{
			Index:     stream.Index,
			CodecName: stream.CodecName,
			BitRate:   bitRate,
			Channels:  stream.Channels,
		})
	}
	return streams
}
