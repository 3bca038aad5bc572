// Package sweep orchestrates encode sweeps and quality evaluations over the
// parameter grid.
package sweep

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/five82/vqsweep/internal/chain"
	"github.com/five82/vqsweep/internal/config"
	"github.com/five82/vqsweep/internal/discovery"
	"github.com/five82/vqsweep/internal/errors"
	"github.com/five82/vqsweep/internal/ffprobe"
	"github.com/five82/vqsweep/internal/grid"
	"github.com/five82/vqsweep/internal/logging"
	"github.com/five82/vqsweep/internal/reporter"
	"github.com/five82/vqsweep/internal/results"
	"github.com/five82/vqsweep/internal/tools"
	"github.com/five82/vqsweep/internal/util"
	"github.com/five82/vqsweep/internal/validation"
	"github.com/five82/vqsweep/internal/worker"
)

// RunSweep encodes the full parameter grid and returns the per-job outcomes.
// Jobs whose output already exists are skipped, so an interrupted sweep can
// be rerun against the same output directory. A non-nil error means the run
// could not start; per-job failures live in the returned set.
func RunSweep(ctx context.Context, cfg *config.Config, rep reporter.Reporter, runLog *logging.RunLog) (results.ResultSet, error) {
	if err := cfg.Validate(); err != nil {
		return results.ResultSet{}, errors.NewConfigurationError(err.Error())
	}
	if err := tools.VerifySweep(ctx, cfg, logging.Global()); err != nil {
		return results.ResultSet{}, err
	}

	sources, err := discovery.FindSourceFiles(cfg.SourceDir, runLog)
	if err != nil {
		return results.ResultSet{}, err
	}

	probes, probeErrs := probeSources(ctx, cfg, sources, runLog)

	jobs, err := grid.Enumerate(cfg, sources)
	if err != nil {
		return results.ResultSet{}, err
	}
	if err := util.EnsureDirectory(cfg.EncodedDir()); err != nil {
		return results.ResultSet{}, errors.NewIOError("could not create output directory", err)
	}
	util.CheckDiskSpace(cfg.EncodedDir(), runLog.Warn)

	workers := cfg.Workers
	if workers == 0 {
		workers = worker.AutoWorkers()
	}
	runLog.Info("Sweeping %d job(s) across %d worker(s)", len(jobs), workers)
	rep.RunStarted(runInfo("sweep", cfg, sources, len(jobs), workers))

	agg := results.NewAggregator(jobs)
	progress := worker.Progress{JobsTotal: len(jobs)}
	var progressMu sync.Mutex

	record := func(e results.Entry) {
		if err := agg.Record(e); err != nil {
			rep.Warning(err.Error())
			return
		}
		progressMu.Lock()
		progress.JobsComplete++
		switch e.Status {
		case results.StatusSkipped:
			progress.Skipped++
		case results.StatusFailed:
			progress.Failed++
		}
		complete, total, pct := progress.JobsComplete, progress.JobsTotal, progress.Percent()
		progressMu.Unlock()
		runLog.Debug("Progress: %d/%d (%.0f%%)", complete, total, pct)
	}

	sem := worker.NewSemaphore(workers)
	var wg sync.WaitGroup
	for _, job := range jobs {
		wg.Add(1)
		go func(job grid.Job) {
			defer wg.Done()
			if err := sem.Acquire(ctx); err != nil {
				record(results.Entry{Job: job, Status: results.StatusFailed, Err: errors.NewCancelledError()})
				return
			}
			defer sem.Release()
			if probeErr := probeErrs[job.Source]; probeErr != nil {
				record(results.Entry{Job: job, Status: results.StatusFailed, Err: probeErr})
				return
			}
			record(runSweepJob(ctx, cfg, job, probes[job.Source], rep, runLog, len(jobs)))
		}(job)
	}
	wg.Wait()

	rs := agg.Finalize()
	rep.RunComplete(runSummary(rs))
	runLog.Info("Sweep finished: %d succeeded, %d skipped, %d failed",
		rs.Count(results.StatusSucceeded), rs.Count(results.StatusSkipped), rs.Count(results.StatusFailed))
	return rs, nil
}

// runSweepJob executes one grid job end to end: skip check, encode chain,
// artifact confirmation. Partial outputs of failed chains are removed so a
// rerun does not mistake them for completed work.
func runSweepJob(ctx context.Context, cfg *config.Config, job grid.Job, info *ffprobe.SourceInfo, rep reporter.Reporter, runLog *logging.RunLog, total int) results.Entry {
	event := reporter.JobEvent{Label: job.Label(), Index: job.Index, Total: total, OutputPath: job.OutputPath}

	if job.IsComplete() {
		size, _ := util.GetFileSize(job.OutputPath)
		runLog.Info("Skipping %s: output already exists", job.Label())
		rep.JobSkipped(event)
		return results.Entry{Job: job, Status: results.StatusSkipped, SizeBytes: size}
	}
	if ctx.Err() != nil {
		return results.Entry{Job: job, Status: results.StatusFailed, Err: errors.NewCancelledError()}
	}

	rep.JobStarted(event)
	runLog.Info("Encoding %s -> %s", job.Label(), job.OutputPath)
	start := time.Now()

	res := chain.Run(ctx, encodeChain(cfg, job, info))
	artifact, err := validation.Confirm(res, job.OutputPath)
	duration := time.Since(start)

	if err != nil {
		logChainFailure(runLog, job, res, err)
		if removeErr := os.Remove(job.OutputPath); removeErr == nil {
			runLog.Debug("Removed partial output %s", job.OutputPath)
		}
		rep.JobCompleted(reporter.JobResult{
			Label: job.Label(), Index: job.Index, Total: total,
			Status: results.StatusFailed.String(), Duration: duration, Message: err.Error(),
		})
		return results.Entry{Job: job, Status: results.StatusFailed, Duration: duration, Err: err}
	}

	runLog.Info("Encoded %s (%s in %s)", job.Label(), util.FormatBytes(artifact.SizeBytes), util.FormatDuration(duration.Seconds()))
	rep.JobCompleted(reporter.JobResult{
		Label: job.Label(), Index: job.Index, Total: total,
		Status: results.StatusSucceeded.String(), SizeBytes: artifact.SizeBytes, Duration: duration,
	})
	return results.Entry{Job: job, Status: results.StatusSucceeded, SizeBytes: artifact.SizeBytes, Duration: duration}
}

// probeSources probes every source once up front. A source that cannot be
// probed does not abort the run; its error fails every job derived from it
// while the rest of the grid proceeds.
func probeSources(ctx context.Context, cfg *config.Config, sources []string, runLog *logging.RunLog) (map[string]*ffprobe.SourceInfo, map[string]error) {
	probes := make(map[string]*ffprobe.SourceInfo, len(sources))
	probeErrs := make(map[string]error)
	for _, src := range sources {
		info, err := ffprobe.ProbeSource(ctx, cfg.Tools.FFprobe, src)
		if err != nil {
			runLog.Error("Probe of %s failed: %v", util.GetFilename(src), err)
			probeErrs[src] = errors.NewSourceProbeError(util.GetFilename(src), err)
			continue
		}
		runLog.Debug("Probed %s: %dx%d, %s fps, %s",
			util.GetFilename(src), info.Width, info.Height,
			util.FormatFPS(info.FPS), util.FormatDuration(info.DurationSecs))
		probes[src] = info
	}
	return probes, probeErrs
}

// logChainFailure writes per-stage diagnostics to the run log.
func logChainFailure(runLog *logging.RunLog, job grid.Job, res chain.Result, err error) {
	runLog.Error("Job %s failed: %v", job.Label(), err)
	for _, sr := range res.Stages {
		if sr.Err == nil {
			continue
		}
		if sr.Stderr != "" {
			runLog.Error("Stage %d (%s) stderr tail:\n%s", sr.Index, sr.Name, sr.Stderr)
		}
	}
}

func runInfo(operation string, cfg *config.Config, sources []string, totalJobs, workers int) reporter.RunInfo {
	resolutions := make([]string, len(cfg.Resolutions))
	for i, r := range cfg.Resolutions {
		resolutions[i] = r.Name
	}
	return reporter.RunInfo{
		Operation:   operation,
		Codec:       cfg.Codec.String(),
		Sources:     sources,
		Resolutions: resolutions,
		Workers:     workers,
		TotalJobs:   totalJobs,
		OutputDir:   cfg.OutputDir,
	}
}

func runSummary(rs results.ResultSet) reporter.RunSummary {
	var kinds []reporter.KindCount
	for kind, count := range rs.FailureKinds() {
		kinds = append(kinds, reporter.KindCount{Kind: kind.String(), Count: count})
	}
	return reporter.RunSummary{
		TotalJobs:    len(rs.Entries),
		Succeeded:    rs.Count(results.StatusSucceeded),
		Skipped:      rs.Count(results.StatusSkipped),
		Failed:       rs.Count(results.StatusFailed),
		FailureKinds: kinds,
		Duration:     rs.Duration,
	}
}
