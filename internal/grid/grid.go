// Package grid enumerates the encode jobs of a sweep: the cross product of
// source files, resolutions, and quality parameters for one codec.
package grid

import (
	"fmt"
	"path/filepath"

	"github.com/five82/vqsweep/internal/config"
	"github.com/five82/vqsweep/internal/errors"
	"github.com/five82/vqsweep/internal/util"
)

// Job is one encode invocation of the sweep grid. Index is the job's position
// in enumeration order and stays stable for the whole run; result slots are
// addressed by it.
type Job struct {
	Index        int
	Source       string
	Codec        config.Codec
	Resolution   config.Resolution
	QualityParam int
	OutputPath   string
}

// SourceStem returns the source filename without its extension.
func (j Job) SourceStem() string {
	return util.GetFileStem(j.Source)
}

// Label returns a short human-readable identity for progress lines, e.g.
// "clip av1 720p qp30".
func (j Job) Label() string {
	return fmt.Sprintf("%s %s %s %s%d", j.SourceStem(), j.Codec, j.Resolution.Name, j.Codec.ParamTag(), j.QualityParam)
}

// IsComplete reports whether the job's output already exists with nonzero
// size. Complete jobs are skipped, which makes interrupted sweeps resumable.
func (j Job) IsComplete() bool {
	return util.NonEmptyFileExists(j.OutputPath)
}

// outputPath builds the artifact path for one grid point. Encoding metadata
// is baked into the name so artifacts from different grid points can never
// collide, but the Job remains the only authority on that metadata.
func outputPath(cfg *config.Config, source string, res config.Resolution, param int) string {
	name := fmt.Sprintf("%s_%s_%s_%s%d%s",
		util.GetFileStem(source), cfg.Codec, res.Name, cfg.Codec.ParamTag(), param, cfg.Codec.Container())
	return filepath.Join(cfg.EncodedDir(), name)
}

// Enumerate expands the configured grid over the given sources in a stable
// order: sources outermost, then resolutions as configured, then quality
// parameters. It fails before returning any jobs if two grid points map to
// the same output path, which can only happen when distinct source stems
// collide.
func Enumerate(cfg *config.Config, sources []string) ([]Job, error) {
	var jobs []Job
	seen := make(map[string]string)
	for _, src := range sources {
		for _, res := range cfg.Resolutions {
			for _, param := range cfg.QualityParamsFor(res) {
				out := outputPath(cfg, src, res, param)
				if prev, ok := seen[out]; ok {
					return nil, errors.NewConfigurationError(fmt.Sprintf(
						"output path collision: %s and %s both map to %s", prev, src, out))
				}
				seen[out] = src
				jobs = append(jobs, Job{
					Index:        len(jobs),
					Source:       src,
					Codec:        cfg.Codec,
					Resolution:   res,
					QualityParam: param,
					OutputPath:   out,
				})
			}
		}
	}
	return jobs, nil
}
