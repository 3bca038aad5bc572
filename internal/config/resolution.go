package config

import (
	"fmt"
	"strconv"
	"strings"
)

// Resolution is one entry of the fixed sweep resolution table.
type Resolution struct {
	Name   string
	Width  int
	Height int
}

// String returns the short name, e.g. "720p".
func (r Resolution) String() string {
	return r.Name
}

// Size returns the WxH form used in encoder arguments, e.g. "1280x720".
func (r Resolution) Size() string {
	return fmt.Sprintf("%dx%d", r.Width, r.Height)
}

// StandardResolutions returns the full resolution table in sweep order.
func StandardResolutions() []Resolution {
	return []Resolution{
		{Name: "360p", Width: 640, Height: 360},
		{Name: "720p", Width: 1280, Height: 720},
		{Name: "1080p", Width: 1920, Height: 1080},
		{Name: "2160p", Width: 3840, Height: 2160},
	}
}

// ResolutionByName looks up a standard resolution by its short name.
func ResolutionByName(name string) (Resolution, error) {
	for _, r := range StandardResolutions() {
		if strings.EqualFold(r.Name, name) {
			return r, nil
		}
	}
	return Resolution{}, fmt.Errorf("%w: '%s', valid options: 360p, 720p, 1080p, 2160p", ErrUnknownResolution, name)
}

// ParseResolutionList parses a comma-separated list of resolution names,
// preserving the given order. Duplicates are rejected: they would collide on
// output paths before any job runs.
func ParseResolutionList(s string) ([]Resolution, error) {
	parts := strings.Split(s, ",")
	resolutions := make([]Resolution, 0, len(parts))
	seen := make(map[string]bool, len(parts))
	for _, part := range parts {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}
		r, err := ResolutionByName(name)
		if err != nil {
			return nil, err
		}
		if seen[r.Name] {
			return nil, fmt.Errorf("%w: '%s' listed twice", ErrUnknownResolution, r.Name)
		}
		seen[r.Name] = true
		resolutions = append(resolutions, r)
	}
	if len(resolutions) == 0 {
		return nil, ErrNoResolutions
	}
	return resolutions, nil
}

// ParseQualityParams parses a comma-separated list of integer quality
// parameters, preserving the given order. Range checks against the selected
// codec happen in Config.Validate.
func ParseQualityParams(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	params := make([]int, 0, len(parts))
	seen := make(map[int]bool, len(parts))
	for _, part := range parts {
		text := strings.TrimSpace(part)
		if text == "" {
			continue
		}
		v, err := strconv.Atoi(text)
		if err != nil {
			return nil, fmt.Errorf("%w: '%s' is not an integer", ErrInvalidQualityParam, text)
		}
		if seen[v] {
			return nil, fmt.Errorf("%w: %d listed twice", ErrInvalidQualityParam, v)
		}
		seen[v] = true
		params = append(params, v)
	}
	if len(params) == 0 {
		return nil, ErrNoQualityParams
	}
	return params, nil
}
