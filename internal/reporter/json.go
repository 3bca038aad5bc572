package reporter

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// JSONReporter outputs NDJSON events for machine consumers.
type JSONReporter struct {
	writer io.Writer
	mu     sync.Mutex
}

// NewJSONReporter creates a new JSON reporter that writes to stdout.
func NewJSONReporter() *JSONReporter {
	return &JSONReporter{writer: os.Stdout}
}

// NewJSONReporterWithWriter creates a JSON reporter with a custom writer.
func NewJSONReporterWithWriter(w io.Writer) *JSONReporter {
	return &JSONReporter{writer: w}
}

func (r *JSONReporter) timestamp() int64 {
	return time.Now().Unix()
}

func (r *JSONReporter) write(v interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	_, _ = fmt.Fprintln(r.writer, string(data))
}

func (r *JSONReporter) RunStarted(info RunInfo) {
	r.write(map[string]interface{}{
		"type":        "run_started",
		"operation":   info.Operation,
		"codec":       info.Codec,
		"sources":     info.Sources,
		"resolutions": info.Resolutions,
		"workers":     info.Workers,
		"total_jobs":  info.TotalJobs,
		"output_dir":  info.OutputDir,
		"timestamp":   r.timestamp(),
	})
}

func (r *JSONReporter) SourceStarted(info SourceStart) {
	r.write(map[string]interface{}{
		"type":         "source_started",
		"source":       info.Source,
		"current_file": info.CurrentFile,
		"total_files":  info.TotalFiles,
		"job_count":    info.JobCount,
		"timestamp":    r.timestamp(),
	})
}

func (r *JSONReporter) JobStarted(event JobEvent) {
	r.write(map[string]interface{}{
		"type":        "job_started",
		"label":       event.Label,
		"index":       event.Index,
		"total":       event.Total,
		"output_path": event.OutputPath,
		"timestamp":   r.timestamp(),
	})
}

func (r *JSONReporter) JobSkipped(event JobEvent) {
	r.write(map[string]interface{}{
		"type":        "job_skipped",
		"label":       event.Label,
		"index":       event.Index,
		"total":       event.Total,
		"output_path": event.OutputPath,
		"timestamp":   r.timestamp(),
	})
}

func (r *JSONReporter) JobCompleted(result JobResult) {
	event := map[string]interface{}{
		"type":             "job_completed",
		"label":            result.Label,
		"index":            result.Index,
		"total":            result.Total,
		"status":           result.Status,
		"size_bytes":       result.SizeBytes,
		"duration_seconds": int64(result.Duration.Seconds()),
		"timestamp":        r.timestamp(),
	}
	if result.Message != "" {
		event["message"] = result.Message
	}
	r.write(event)
}

func (r *JSONReporter) TableWritten(summary TableSummary) {
	scores := make([]map[string]interface{}, len(summary.Scores))
	for i, s := range summary.Scores {
		scores[i] = map[string]interface{}{
			"resolution": s.Resolution,
			"count":      s.Count,
			"min":        s.Min,
			"mean":       s.Mean,
			"max":        s.Max,
		}
	}
	r.write(map[string]interface{}{
		"type":      "table_written",
		"source":    summary.Source,
		"path":      summary.Path,
		"rows":      summary.Rows,
		"scores":    scores,
		"timestamp": r.timestamp(),
	})
}

func (r *JSONReporter) Warning(message string) {
	r.write(map[string]interface{}{
		"type":      "warning",
		"message":   message,
		"timestamp": r.timestamp(),
	})
}

func (r *JSONReporter) Error(err RunError) {
	r.write(map[string]interface{}{
		"type":       "error",
		"title":      err.Title,
		"message":    err.Message,
		"context":    err.Context,
		"suggestion": err.Suggestion,
		"timestamp":  r.timestamp(),
	})
}

func (r *JSONReporter) RunComplete(summary RunSummary) {
	kinds := make([]map[string]interface{}, len(summary.FailureKinds))
	for i, kc := range summary.FailureKinds {
		kinds[i] = map[string]interface{}{"kind": kc.Kind, "count": kc.Count}
	}
	r.write(map[string]interface{}{
		"type":             "run_complete",
		"total_jobs":       summary.TotalJobs,
		"succeeded":        summary.Succeeded,
		"skipped":          summary.Skipped,
		"failed":           summary.Failed,
		"failure_kinds":    kinds,
		"duration_seconds": int64(summary.Duration.Seconds()),
		"timestamp":        r.timestamp(),
	})
}

func (r *JSONReporter) Verbose(message string) {
	r.write(map[string]interface{}{
		"type":      "verbose",
		"message":   message,
		"timestamp": r.timestamp(),
	})
}
