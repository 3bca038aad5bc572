// Package vqsweep provides a Go library for codec quality sweeps: encoding
// a grid of resolution and quality-parameter combinations per source video,
// then scoring each encode against its source with VMAF.
//
// Basic usage:
//
//	sweeper, err := vqsweep.New(
//	    vqsweep.WithSourceDir("video_source"),
//	    vqsweep.WithOutputDir("encodes"),
//	    vqsweep.WithResultsDir("results"),
//	    vqsweep.WithCodec(vqsweep.CodecAV1),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := sweeper.Sweep(ctx, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Printf("%d of %d encodes succeeded\n", result.Succeeded, result.TotalJobs)
package vqsweep

import (
	"context"
	"time"

	"github.com/five82/vqsweep/internal/config"
	"github.com/five82/vqsweep/internal/reporter"
	"github.com/five82/vqsweep/internal/results"
	"github.com/five82/vqsweep/internal/sweep"
)

// Re-export codec and resolution types.
type (
	Codec      = config.Codec
	Resolution = config.Resolution
	ToolPaths  = config.ToolPaths
)

const (
	CodecAV1  = config.CodecAV1
	CodecH265 = config.CodecH265
	CodecVVC  = config.CodecVVC
)

// ParseCodec converts a codec string to a Codec value. Valid values are
// "av1", "h265"/"hevc", and "vvc"/"h266" (case-insensitive).
func ParseCodec(s string) (Codec, error) {
	return config.ParseCodec(s)
}

// ParseResolutions parses a comma-separated resolution list, e.g. "360p,720p".
func ParseResolutions(s string) ([]Resolution, error) {
	return config.ParseResolutionList(s)
}

// ParseQualityParams parses a comma-separated quality parameter list,
// e.g. "24,30,36".
func ParseQualityParams(s string) ([]int, error) {
	return config.ParseQualityParams(s)
}

// Sweeper runs encode sweeps and quality evaluations.
type Sweeper struct {
	config *config.Config
}

// SweepResult summarizes an encode sweep.
type SweepResult struct {
	TotalJobs int
	Succeeded int
	Skipped   int
	Failed    int
	Duration  time.Duration
}

// AllSucceeded reports whether no job failed.
func (r SweepResult) AllSucceeded() bool {
	return r.Failed == 0
}

// EvalResult summarizes a quality evaluation.
type EvalResult struct {
	TotalJobs int
	Scored    int
	Skipped   int
	Failed    int
	Duration  time.Duration
}

// AllScored reports whether every existing artifact was scored.
func (r EvalResult) AllScored() bool {
	return r.Failed == 0
}

// Option configures the sweeper.
type Option func(*config.Config)

// New creates a new Sweeper with the given options.
func New(opts ...Option) (*Sweeper, error) {
	cfg := config.NewConfig(".", ".", ".")

	for _, opt := range opts {
		opt(cfg)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Sweeper{config: cfg}, nil
}

// WithSourceDir sets the directory scanned for source videos.
func WithSourceDir(dir string) Option {
	return func(c *config.Config) {
		c.SourceDir = dir
	}
}

// WithOutputDir sets the directory that receives encoded artifacts.
func WithOutputDir(dir string) Option {
	return func(c *config.Config) {
		c.OutputDir = dir
	}
}

// WithResultsDir sets the directory that receives reports and CSV tables.
func WithResultsDir(dir string) Option {
	return func(c *config.Config) {
		c.ResultsDir = dir
	}
}

// WithCodec selects the codec swept and evaluated.
func WithCodec(codec Codec) Option {
	return func(c *config.Config) {
		c.Codec = codec
	}
}

// WithResolutions restricts the sweep to the given resolutions.
func WithResolutions(resolutions []Resolution) Option {
	return func(c *config.Config) {
		c.Resolutions = resolutions
	}
}

// WithQualityParams overrides the per-codec default quality parameters for
// every resolution.
func WithQualityParams(params []int) Option {
	return func(c *config.Config) {
		c.QualityParams = params
	}
}

// WithWorkers sets the number of concurrent encode jobs. Zero selects an
// automatic count from cores and memory.
func WithWorkers(n int) Option {
	return func(c *config.Config) {
		c.Workers = n
	}
}

// WithChainTimeout bounds the wall-clock time of each process chain.
func WithChainTimeout(d time.Duration) Option {
	return func(c *config.Config) {
		c.ChainTimeout = d
	}
}

// WithVMAFModel sets the path of the libvmaf model JSON.
func WithVMAFModel(path string) Option {
	return func(c *config.Config) {
		c.VMAFModelPath = path
	}
}

// WithTools overrides the external tool binaries, mainly for testing and
// for hosts with versioned tool names.
func WithTools(tools ToolPaths) Option {
	return func(c *config.Config) {
		c.Tools = tools
	}
}

// Sweep encodes the full parameter grid. A nil handler discards progress
// events. Per-job failures are totalled in the result; the returned error is
// reserved for failures that prevented the run from starting.
func (s *Sweeper) Sweep(ctx context.Context, handler EventHandler) (*SweepResult, error) {
	var rep reporter.Reporter = reporter.NullReporter{}
	if handler != nil {
		rep = newEventReporter(handler)
	}

	rs, err := sweep.RunSweep(ctx, s.config, rep, nil)
	if err != nil {
		return nil, err
	}
	return &SweepResult{
		TotalJobs: len(rs.Entries),
		Succeeded: rs.Count(results.StatusSucceeded),
		Skipped:   rs.Count(results.StatusSkipped),
		Failed:    rs.Count(results.StatusFailed),
		Duration:  rs.Duration,
	}, nil
}

// Evaluate scores the grid's encoded artifacts against their sources and
// writes one CSV table per source.
func (s *Sweeper) Evaluate(ctx context.Context, handler EventHandler) (*EvalResult, error) {
	var rep reporter.Reporter = reporter.NullReporter{}
	if handler != nil {
		rep = newEventReporter(handler)
	}

	summary, err := sweep.RunEvaluation(ctx, s.config, rep, nil)
	if err != nil {
		return nil, err
	}
	return &EvalResult{
		TotalJobs: summary.TotalJobs,
		Scored:    summary.Scored,
		Skipped:   summary.Skipped,
		Failed:    summary.Failed,
		Duration:  summary.Duration,
	}, nil
}
