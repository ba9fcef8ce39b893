package ffmpeg

import (
	"reflect"
	"testing"

	"github.com/ssimtune/ssimtune/internal/ffprobe"
)

func TestPlanAudio(t *testing.T) {
	streams := []ffprobe.AudioStream{
		{Index: 0, CodecName: "dts", BitRate: 1536000, Channels: 6},
		{Index: 1, CodecName: "aac", BitRate: 192000, Channels: 2},
		{Index: 2, CodecName: "truehd", BitRate: 0, Channels: 8},
	}

	decisions := PlanAudio(streams)
	if len(decisions) != 3 {
		t.Fatalf("PlanAudio() returned %d decisions, want 3", len(decisions))
	}

	// Non-AAC with a known bitrate is re-encoded at the source bitrate.
	if !decisions[0].Reencode || decisions[0].BitRateKbps != 1536 || decisions[0].Channels != 6 {
		t.Errorf("dts decision = %+v, want re-encode at 1536k, 6ch", decisions[0])
	}
	// AAC passes through regardless of bitrate.
	if decisions[1].Reencode {
		t.Errorf("aac decision = %+v, want passthrough", decisions[1])
	}
	// Unknown bitrate passes through even for non-AAC codecs.
	if decisions[2].Reencode {
		t.Errorf("truehd decision = %+v, want passthrough (unknown bitrate)", decisions[2])
	}
}

func TestAudioOptions(t *testing.T) {
	tests := []struct {
		name      string
		decisions []AudioDecision
		expected  []string
	}{
		{
			name: "mixed streams",
			decisions: []AudioDecision{
				{Index: 0, Reencode: true, BitRateKbps: 640, Channels: 6},
				{Index: 1},
			},
			expected: []string{
				"-c:a:0", "aac", "-b:a:0", "640k", "-ac:0", "6",
				"-c:a:1", "copy",
			},
		},
		{
			name:      "no streams",
			decisions: nil,
			expected:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AudioOptions(tt.decisions)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("AudioOptions() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestAudioDecisionString(t *testing.T) {
	re := AudioDecision{Index: 0, Reencode: true, BitRateKbps: 640, Channels: 6}
	if got := re.String(); got != "stream 0: re-encode to AAC 640k, 6ch" {
		t.Errorf("String() = %q", got)
	}

	copyDec := AudioDecision{Index: 1}
	if got := copyDec.String(); got != "stream 1: passthrough" {
		t.Errorf("String() = %q", got)
	}
}
