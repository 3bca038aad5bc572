package sweep

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
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
	"github.com/five82/vqsweep/internal/vmaf"
)

// EvalSummary totals one evaluation run.
type EvalSummary struct {
	TotalJobs int
	Scored    int
	Skipped   int
	Failed    int
	Duration  time.Duration
}

// AllScored reports whether every artifact that existed was scored.
func (s EvalSummary) AllScored() bool {
	return s.Failed == 0
}

// RunEvaluation scores every encoded artifact of the grid against its source
// and writes one CSV results table per source. Artifacts that were never
// encoded are skipped with a warning. Sources run sequentially: libvmaf
// already saturates the machine on its own.
func RunEvaluation(ctx context.Context, cfg *config.Config, rep reporter.Reporter, runLog *logging.RunLog) (EvalSummary, error) {
	if err := cfg.Validate(); err != nil {
		return EvalSummary{}, errors.NewConfigurationError(err.Error())
	}
	if err := tools.VerifyEvaluation(ctx, cfg, logging.Global()); err != nil {
		return EvalSummary{}, err
	}

	sources, err := discovery.FindSourceFiles(cfg.SourceDir, runLog)
	if err != nil {
		return EvalSummary{}, err
	}
	jobs, err := grid.Enumerate(cfg, sources)
	if err != nil {
		return EvalSummary{}, err
	}

	rep.RunStarted(runInfo("evaluate", cfg, sources, len(jobs), 1))
	start := time.Now()

	summary := EvalSummary{TotalJobs: len(jobs)}
	perSource := make(map[string][]grid.Job)
	for _, job := range jobs {
		perSource[job.Source] = append(perSource[job.Source], job)
	}

	for i, src := range sources {
		select {
		case <-ctx.Done():
			return summary, errors.NewCancelledError()
		default:
		}

		srcJobs := perSource[src]
		rep.SourceStarted(reporter.SourceStart{Source: src, CurrentFile: i + 1, TotalFiles: len(sources), JobCount: len(srcJobs)})
		records, scored, skipped, failed := evaluateSource(ctx, cfg, src, srcJobs, len(jobs), rep, runLog)
		summary.Scored += scored
		summary.Skipped += skipped
		summary.Failed += failed

		if len(records) == 0 {
			rep.Warning(fmt.Sprintf("no results for %s; nothing to write", util.GetFilename(src)))
			continue
		}

		stem := util.GetFileStem(src)
		if err := util.EnsureDirectory(cfg.SourceResultsDir(stem)); err != nil {
			return summary, errors.NewIOError("could not create results directory", err)
		}
		csvPath := cfg.CSVPath(stem)
		if err := results.WriteCSV(csvPath, records); err != nil {
			return summary, err
		}
		runLog.Info("Wrote %d row(s) to %s", len(records), csvPath)
		rep.TableWritten(tableSummary(src, csvPath, records))
	}

	summary.Duration = time.Since(start)
	rep.RunComplete(reporter.RunSummary{
		TotalJobs: summary.TotalJobs,
		Succeeded: summary.Scored,
		Skipped:   summary.Skipped,
		Failed:    summary.Failed,
		Duration:  summary.Duration,
	})
	return summary, nil
}

// evaluateSource scores all of one source's encoded artifacts in grid order.
func evaluateSource(ctx context.Context, cfg *config.Config, src string, jobs []grid.Job, totalJobs int, rep reporter.Reporter, runLog *logging.RunLog) (records []results.QualityRecord, scored, skipped, failed int) {
	stem := util.GetFileStem(src)
	reportDir := cfg.ReportDir(stem)
	if err := util.EnsureDirectory(reportDir); err != nil {
		rep.Warning(fmt.Sprintf("could not create report directory for %s: %v", stem, err))
		return nil, 0, 0, len(jobs)
	}

	for _, job := range jobs {
		event := reporter.JobEvent{Label: job.Label(), Index: job.Index, Total: totalJobs, OutputPath: job.OutputPath}

		if !job.IsComplete() {
			runLog.Warn("Skipping %s: no encoded artifact at %s", job.Label(), job.OutputPath)
			rep.JobSkipped(event)
			skipped++
			continue
		}

		rep.JobStarted(event)
		record, err := scoreJob(ctx, cfg, src, job, reportDir, runLog)
		if err != nil {
			runLog.Error("Scoring %s failed: %v", job.Label(), err)
			rep.JobCompleted(reporter.JobResult{
				Label: job.Label(), Index: job.Index, Total: totalJobs,
				Status: results.StatusFailed.String(), Message: err.Error(),
			})
			failed++
			continue
		}

		runLog.Info("Scored %s: vmaf %.2f", job.Label(), record.VMAFScore)
		rep.JobCompleted(reporter.JobResult{
			Label: job.Label(), Index: job.Index, Total: totalJobs,
			Status: results.StatusSucceeded.String(),
		})
		records = append(records, record)
		scored++
	}
	return records, scored, skipped, failed
}

// scoreJob produces the quality record for one encoded artifact: optional
// VVC decode, the VMAF chain, report aggregation, and the bitrate probe.
func scoreJob(ctx context.Context, cfg *config.Config, src string, job grid.Job, reportDir string, runLog *logging.RunLog) (results.QualityRecord, error) {
	distorted := job.OutputPath
	if job.Codec == config.CodecVVC {
		decoded, err := decodeVVCArtifact(ctx, cfg, job, runLog)
		if err != nil {
			return results.QualityRecord{}, err
		}
		distorted = decoded
	}

	reportPath := reportPathFor(reportDir, job)
	res := chain.Run(ctx, vmafChain(cfg, distorted, src, reportPath))
	if res.Err != nil {
		return results.QualityRecord{}, res.Err
	}

	score, err := vmaf.MeanScore(reportPath, vmaf.DefaultMetric)
	if err != nil {
		return results.QualityRecord{}, err
	}

	// Bitrate is informational; a probe failure downgrades the cell to
	// empty instead of failing the whole job.
	bitrate, err := ffprobe.ProbeBitrateKbps(ctx, cfg.Tools.FFprobe, job.OutputPath)
	if err != nil {
		runLog.Warn("Bitrate probe failed for %s: %v", job.Label(), err)
		bitrate = nil
	}

	return results.QualityRecord{
		Video:        job.OutputPath,
		Resolution:   job.Resolution.Name,
		QualityParam: job.QualityParam,
		BitrateKbps:  bitrate,
		VMAFScore:    score,
		ReportPath:   reportPath,
	}, nil
}

// decodeVVCArtifact turns a raw VVC bitstream into a scorable 4K derivative.
// The decoded file is kept next to the other decoded intermediates and
// reused on rerun; the raw YUV intermediate is deleted either way, it can
// run to hundreds of gigabytes.
func decodeVVCArtifact(ctx context.Context, cfg *config.Config, job grid.Job, runLog *logging.RunLog) (string, error) {
	if err := util.EnsureDirectory(cfg.DecodedDir()); err != nil {
		return "", errors.NewIOError("could not create decode directory", err)
	}

	decoded := decodedPathFor(cfg, job)
	if util.NonEmptyFileExists(decoded) {
		runLog.Debug("Reusing decoded artifact %s", decoded)
		return decoded, nil
	}

	tmp, err := util.CreateTempDir(cfg.DecodedDir(), "decode")
	if err != nil {
		return "", errors.NewIOError("could not allocate decode scratch directory", err)
	}
	defer tmp.Cleanup()
	yuvPath := filepath.Join(tmp.Path(), "stream.yuv")

	res := chain.Run(ctx, decodeChain(cfg, job, yuvPath, decoded))
	if _, err := validation.Confirm(res, decoded); err != nil {
		_ = os.Remove(decoded)
		return "", err
	}
	return decoded, nil
}

// decodedPathFor names the decoded 4K derivative of a VVC artifact.
func decodedPathFor(cfg *config.Config, job grid.Job) string {
	return util.SiblingWithSuffix(cfg.DecodedDir(), job.OutputPath, "_decoded.mp4")
}

// reportPathFor names the per-job VMAF JSON report.
func reportPathFor(reportDir string, job grid.Job) string {
	return util.SiblingWithSuffix(reportDir, job.OutputPath, "_vmaf.json")
}

func tableSummary(src, csvPath string, records []results.QualityRecord) reporter.TableSummary {
	stats := results.StatsByResolution(records)
	scores := make([]reporter.ResolutionScore, len(stats))
	for i, s := range stats {
		scores[i] = reporter.ResolutionScore{Resolution: s.Resolution, Count: s.Count, Min: s.Min, Mean: s.Mean, Max: s.Max}
	}
	return reporter.TableSummary{Source: src, Path: csvPath, Rows: len(records), Scores: scores}
}
