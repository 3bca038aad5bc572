// Package config provides configuration types and defaults for vqsweep.
package config

import "errors"

// Sentinel errors for configuration validation.
var (
	// ErrMissingSourceDir indicates the source directory was not set.
	ErrMissingSourceDir = errors.New("source directory not set")

	// ErrMissingOutputDir indicates the output directory was not set.
	ErrMissingOutputDir = errors.New("output directory not set")

	// ErrMissingResultsDir indicates the results directory was not set.
	ErrMissingResultsDir = errors.New("results directory not set")

	// ErrUnknownCodec indicates an unknown codec name was provided.
	ErrUnknownCodec = errors.New("unknown codec")

	// ErrUnknownResolution indicates a resolution name outside the standard table.
	ErrUnknownResolution = errors.New("unknown resolution")

	// ErrNoResolutions indicates an empty resolution selection.
	ErrNoResolutions = errors.New("no resolutions selected")

	// ErrNoQualityParams indicates an empty quality parameter list was parsed.
	ErrNoQualityParams = errors.New("no quality parameters given")

	// ErrInvalidQualityParam indicates a quality parameter outside the codec's range.
	ErrInvalidQualityParam = errors.New("quality parameter out of range")

	// ErrInvalidWorkers indicates a worker count outside the valid range.
	ErrInvalidWorkers = errors.New("worker count out of range")

	// ErrInvalidTimeout indicates a negative chain timeout.
	ErrInvalidTimeout = errors.New("chain timeout must not be negative")
)
