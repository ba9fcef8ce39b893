package ffmpeg

import (
	"fmt"
	"strconv"

	"github.com/ssimtune/ssimtune/internal/ffprobe"
)

// AudioDecision records how one audio stream will be handled.
type AudioDecision struct {
	Index int
	// Reencode is true when the stream is converted to AAC.
	Reencode bool
	// BitRateKbps is the target bitrate for re-encoded streams, derived
	// from the source stream's own bitrate.
	BitRateKbps int
	Channels    int
}

// String describes the decision for logging.
func (d AudioDecision) String() string {
	if d.Reencode {
		return fmt.Sprintf("stream %d: re-encode to AAC %dk, %dch", d.Index, d.BitRateKbps, d.Channels)
	}
	return fmt.Sprintf("stream %d: passthrough", d.Index)
}

// PlanAudio decides per-stream handling: non-AAC streams with a known
// source bitrate are re-encoded to AAC at that bitrate with the source
// channel count; AAC streams and streams with unknown bitrate are copied.
func PlanAudio(streams []ffprobe.AudioStream) []AudioDecision {
	decisions := make([]AudioDecision, 0, len(streams))
	for _, s := range streams {
		if s.CodecName != "aac" && s.BitRate > 0 {
			decisions = append(decisions, AudioDecision{
				Index:       s.Index,
				Reencode:    true,
				BitRateKbps: s.BitRate / 1000,
				Channels:    s.Channels,
			})
		} else {
			decisions = append(decisions, AudioDecision{Index: s.Index})
		}
	}
	return decisions
}

// AudioOptions translates audio decisions into per-stream ffmpeg options.
func AudioOptions(decisions []AudioDecision) []string {
	var opts []string
	for _, d := range decisions {
		i := strconv.Itoa(d.Index)
		if d.Reencode {
			opts = append(opts,
				"-c:a:"+i, "aac",
				"-b:a:"+i, strconv.Itoa(d.BitRateKbps)+"k",
				"-ac:"+i, strconv.Itoa(d.Channels),
			)
		} else {
			opts = append(opts, "-c:a:"+i, "copy")
		}
	}
	return opts
}
