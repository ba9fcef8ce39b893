package util

import (
	"math"
	"testing"
)

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		bytes    uint64
		expected string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1024, "1.00 KiB"},
		{1536, "1.50 KiB"},
		{1048576, "1.00 MiB"},
		{5242880, "5.00 MiB"},
		{1073741824, "1.00 GiB"},
		{8589934592, "8.00 GiB"},
	}

	for _, tt := range tests {
		got := FormatBytes(tt.bytes)
		if got != tt.expected {
			t.Errorf("FormatBytes(%d) = %q, want %q", tt.bytes, got, tt.expected)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		seconds  float64
		expected string
	}{
		{0, "00:00:00"},
		{59.9, "00:00:59"},
		{60, "00:01:00"},
		{3661, "01:01:01"},
		{5400.123, "01:30:00"},
		{-5, "??:??:??"},
		{math.NaN(), "??:??:??"},
	}

	for _, tt := range tests {
		got := FormatDuration(tt.seconds)
		if got != tt.expected {
			t.Errorf("FormatDuration(%v) = %q, want %q", tt.seconds, got, tt.expected)
		}
	}
}

func TestFormatFrameRate(t *testing.T) {
	tests := []struct {
		fps      float64
		expected string
	}{
		{30, "30"},
		{23.976, "23.976"},
		{25, "25"},
	}

	for _, tt := range tests {
		got := FormatFrameRate(tt.fps)
		if got != tt.expected {
			t.Errorf("FormatFrameRate(%v) = %q, want %q", tt.fps, got, tt.expected)
		}
	}
}
