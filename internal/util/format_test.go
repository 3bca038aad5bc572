package util

import (
	"math"
	"testing"
)

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		bytes    int64
		expected string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1024, "1.00 KiB"},
		{1536, "1.50 KiB"},
		{1048576, "1.00 MiB"},
		{5242880, "5.00 MiB"},
		{1073741824, "1.00 GiB"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := FormatBytes(tt.bytes); got != tt.expected {
				t.Errorf("FormatBytes(%d) = %v, want %v", tt.bytes, got, tt.expected)
			}
		})
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		seconds  float64
		expected string
	}{
		{0, "00:00:00"},
		{59, "00:00:59"},
		{60, "00:01:00"},
		{3661, "01:01:01"},
		{7322.9, "02:02:02"},
		{-1, "??:??:??"},
		{math.NaN(), "??:??:??"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := FormatDuration(tt.seconds); got != tt.expected {
				t.Errorf("FormatDuration(%f) = %v, want %v", tt.seconds, got, tt.expected)
			}
		})
	}
}

func TestFormatDurationFromSecs(t *testing.T) {
	if got := FormatDurationFromSecs(3725); got != "01:02:05" {
		t.Errorf("FormatDurationFromSecs(3725) = %v, want 01:02:05", got)
	}
}

func TestFormatFPS(t *testing.T) {
	tests := []struct {
		fps      float64
		expected string
	}{
		{24, "24"},
		{25.0, "25"},
		{29.97002997, "29.97003"},
		{23.976, "23.976"},
		{60, "60"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := FormatFPS(tt.fps); got != tt.expected {
				t.Errorf("FormatFPS(%v) = %v, want %v", tt.fps, got, tt.expected)
			}
		})
	}
}
