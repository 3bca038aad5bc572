package config

import (
	"fmt"
	"path/filepath"
	"time"
)

// Default constants
const (
	// DefaultWorkers of 0 selects an automatic worker count from cores and memory.
	DefaultWorkers int = 0

	// DefaultChainTimeout of 0 disables the per-chain wall-clock budget.
	DefaultChainTimeout time.Duration = 0

	// DefaultVMAFModelPath is the 4K VMAF model used for scoring.
	DefaultVMAFModelPath string = "vmaf_models/vmaf_4k_v0.6.1.json"

	// VMAFComparisonWidth is the width both inputs are scaled to before scoring.
	VMAFComparisonWidth int = 3840

	// VMAFComparisonHeight is the height both inputs are scaled to before scoring.
	VMAFComparisonHeight int = 2160

	// VMAFComparisonFPS is the frame rate both inputs are resampled to before scoring.
	VMAFComparisonFPS int = 60

	// AV1CPUUsed is the libaom-av1 speed setting (0-8, higher is faster).
	AV1CPUUsed int = 6

	// H265Preset is the libx265 speed preset.
	H265Preset string = "fast"

	// VVCPreset is the vvencapp speed preset.
	VVCPreset string = "faster"

	// DecodeUpscaleCRF is the x264 CRF for re-encoding decoded VVC at 4K.
	DecodeUpscaleCRF int = 18

	// DecodeUpscalePreset is the x264 preset for re-encoding decoded VVC.
	DecodeUpscalePreset string = "medium"

	// MaxQPAV1 is the maximum quality parameter for av1 and vvc.
	MaxQPAV1 int = 63

	// MaxQPH265 is the maximum quality parameter for h265.
	MaxQPH265 int = 51

	// MaxWorkers is the upper bound on configured worker concurrency.
	MaxWorkers int = 128
)

// ToolPaths holds the external binaries the sweep invokes. Entries without a
// path separator are resolved through PATH.
type ToolPaths struct {
	FFmpeg   string
	FFprobe  string
	VVEncApp string
	VVDecApp string
}

// DefaultToolPaths returns tool names resolved through PATH.
func DefaultToolPaths() ToolPaths {
	return ToolPaths{
		FFmpeg:   "ffmpeg",
		FFprobe:  "ffprobe",
		VVEncApp: "vvencapp",
		VVDecApp: "vvdecapp",
	}
}

// Config holds all configuration for one sweep or evaluation run.
type Config struct {
	// Input/output paths
	SourceDir  string
	OutputDir  string
	ResultsDir string
	LogDir     string

	// Sweep grid
	Codec         Codec
	Resolutions   []Resolution
	QualityParams []int // Optional global override; empty uses per-codec defaults

	// Execution
	Workers      int           // 0 selects an automatic count
	ChainTimeout time.Duration // 0 disables the budget

	// Quality evaluation
	VMAFModelPath string

	// External tools
	Tools ToolPaths
}

// NewConfig creates a new Config with default values.
func NewConfig(sourceDir, outputDir, resultsDir string) *Config {
	return &Config{
		SourceDir:     sourceDir,
		OutputDir:     outputDir,
		ResultsDir:    resultsDir,
		Codec:         CodecAV1,
		Resolutions:   StandardResolutions(),
		Workers:       DefaultWorkers,
		ChainTimeout:  DefaultChainTimeout,
		VMAFModelPath: DefaultVMAFModelPath,
		Tools:         DefaultToolPaths(),
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.SourceDir == "" {
		return ErrMissingSourceDir
	}

	if c.OutputDir == "" {
		return ErrMissingOutputDir
	}

	if c.ResultsDir == "" {
		return ErrMissingResultsDir
	}

	if _, err := ParseCodec(string(c.Codec)); err != nil {
		return err
	}

	if len(c.Resolutions) == 0 {
		return ErrNoResolutions
	}

	for _, r := range c.Resolutions {
		if _, err := ResolutionByName(r.Name); err != nil {
			return err
		}
	}

	maxParam := c.Codec.MaxQualityParam()
	for _, q := range c.QualityParams {
		if q < 0 || q > maxParam {
			return fmt.Errorf("%w: %s must be 0-%d, got %d", ErrInvalidQualityParam, c.Codec.ParamTag(), maxParam, q)
		}
	}

	if c.Workers < 0 || c.Workers > MaxWorkers {
		return fmt.Errorf("%w: must be 0-%d, got %d", ErrInvalidWorkers, MaxWorkers, c.Workers)
	}

	if c.ChainTimeout < 0 {
		return fmt.Errorf("%w: got %s", ErrInvalidTimeout, c.ChainTimeout)
	}

	return nil
}

// QualityParamsFor returns the quality parameters swept at a resolution: the
// explicit override when set, otherwise the codec's per-resolution defaults.
func (c *Config) QualityParamsFor(r Resolution) []int {
	if len(c.QualityParams) > 0 {
		params := make([]int, len(c.QualityParams))
		copy(params, c.QualityParams)
		return params
	}
	return c.Codec.DefaultQualityParams(r.Name)
}

// EncodedDir returns the artifact directory for the selected codec.
func (c *Config) EncodedDir() string {
	return filepath.Join(c.OutputDir, string(c.Codec)+"_encoded")
}

// DecodedDir returns the directory for decoded VVC intermediates.
func (c *Config) DecodedDir() string {
	return filepath.Join(c.OutputDir, "vvc_decoded")
}

// SourceResultsDir returns the per-source results directory.
func (c *Config) SourceResultsDir(sourceStem string) string {
	return filepath.Join(c.ResultsDir, sourceStem)
}

// ReportDir returns the per-source VMAF report directory.
func (c *Config) ReportDir(sourceStem string) string {
	return filepath.Join(c.ResultsDir, sourceStem, "vmaf")
}

// CSVPath returns the per-source results table path for the selected codec.
func (c *Config) CSVPath(sourceStem string) string {
	return filepath.Join(c.ResultsDir, sourceStem, fmt.Sprintf("vmaf_results_%s.csv", c.Codec))
}
