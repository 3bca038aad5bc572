// Package ffprobe provides typed media probes backed by the ffprobe binary.
package ffprobe

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/five82/vqsweep/internal/errors"
)

// SourceInfo contains the per-source properties threaded into encoder
// arguments.
type SourceInfo struct {
	FPS          float64
	DurationSecs float64
	Width        int
	Height       int
}

// probeOutput represents the JSON output from ffprobe.
type probeOutput struct {
	Format  probeFormat   `json:"format"`
	Streams []probeStream `json:"streams"`
}

type probeFormat struct {
	Duration string `json:"duration"`
	BitRate  string `json:"bit_rate"`
}

type probeStream struct {
	CodecType  string `json:"codec_type"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	RFrameRate string `json:"r_frame_rate"`
}

// runProbe executes ffprobe with the given arguments and returns raw JSON.
func runProbe(ctx context.Context, ffprobeBin string, args []string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, ffprobeBin, args...)
	output, err := cmd.Output()
	if err != nil {
		return nil, errors.WrapExecError(ffprobeBin, err, exitStderr(err))
	}
	return output, nil
}

// exitStderr pulls captured stderr out of an exec.ExitError, if present.
func exitStderr(err error) string {
	if exitErr, ok := err.(*exec.ExitError); ok {
		return strings.TrimSpace(string(exitErr.Stderr))
	}
	return ""
}

// ProbeSource returns frame rate, duration, and dimensions for a source file.
func ProbeSource(ctx context.Context, ffprobeBin, path string) (*SourceInfo, error) {
	output, err := runProbe(ctx, ffprobeBin, []string{
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		path,
	})
	if err != nil {
		return nil, err
	}
	return parseSourceInfo(output, path)
}

// parseSourceInfo decodes a -show_format -show_streams probe.
func parseSourceInfo(data []byte, path string) (*SourceInfo, error) {
	var probe probeOutput
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("failed to parse ffprobe output for %s: %w", path, err)
	}

	var video *probeStream
	for i := range probe.Streams {
		if probe.Streams[i].CodecType == "video" {
			video = &probe.Streams[i]
			break
		}
	}
	if video == nil {
		return nil, fmt.Errorf("no video stream found in %s", path)
	}

	fps, err := parseRate(video.RFrameRate)
	if err != nil {
		return nil, fmt.Errorf("invalid frame rate %q in %s: %w", video.RFrameRate, path, err)
	}

	if probe.Format.Duration == "" {
		return nil, fmt.Errorf("no duration reported for %s", path)
	}
	duration, err := strconv.ParseFloat(probe.Format.Duration, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid duration %q in %s: %w", probe.Format.Duration, path, err)
	}

	if video.Width <= 0 || video.Height <= 0 {
		return nil, fmt.Errorf("invalid dimensions in %s: %dx%d", path, video.Width, video.Height)
	}

	return &SourceInfo{
		FPS:          fps,
		DurationSecs: duration,
		Width:        video.Width,
		Height:       video.Height,
	}, nil
}

// parseRate parses an ffprobe rational rate like "30000/1001" or "25".
func parseRate(s string) (float64, error) {
	if s == "" {
		return 0, fmt.Errorf("empty rate")
	}
	if num, den, found := strings.Cut(s, "/"); found {
		n, err := strconv.ParseFloat(num, 64)
		if err != nil {
			return 0, err
		}
		d, err := strconv.ParseFloat(den, 64)
		if err != nil {
			return 0, err
		}
		if d == 0 {
			return 0, fmt.Errorf("zero denominator")
		}
		return n / d, nil
	}
	rate, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if rate <= 0 {
		return 0, fmt.Errorf("non-positive rate %v", rate)
	}
	return rate, nil
}

// ProbeBitrateKbps queries the container bit rate of an encoded artifact.
// A missing bit_rate field returns (nil, nil): raw bitstreams legitimately
// report no container bitrate, which is distinct from a probe failure.
func ProbeBitrateKbps(ctx context.Context, ffprobeBin, path string) (*float64, error) {
	output, err := runProbe(ctx, ffprobeBin, []string{
		"-v", "error",
		"-select_streams", "v:0",
		"-show_entries", "format=bit_rate",
		"-of", "json",
		path,
	})
	if err != nil {
		return nil, errors.NewBitrateProbeError(path, err)
	}
	return parseBitrate(output, path)
}

// parseBitrate decodes a format=bit_rate probe into kbps.
func parseBitrate(data []byte, path string) (*float64, error) {
	var probe probeOutput
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, errors.NewBitrateProbeError(path, err)
	}

	if probe.Format.BitRate == "" {
		return nil, nil
	}

	bps, err := strconv.ParseFloat(probe.Format.BitRate, 64)
	if err != nil {
		return nil, errors.NewBitrateProbeError(path, err)
	}

	kbps := bps / 1000
	return &kbps, nil
}
