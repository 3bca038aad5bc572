// Package reporter provides progress reporting interfaces and implementations.
package reporter

import "time"

// RunInfo describes a run before the first job starts.
type RunInfo struct {
	Operation   string // "sweep" or "evaluate"
	Codec       string
	Sources     []string
	Resolutions []string
	Workers     int
	TotalJobs   int
	OutputDir   string
}

// SourceStart marks the start of work on one source file.
type SourceStart struct {
	Source      string
	CurrentFile int
	TotalFiles  int
	JobCount    int
}

// JobEvent identifies one grid job as it starts or is skipped.
type JobEvent struct {
	Label      string
	Index      int
	Total      int
	OutputPath string
}

// JobResult is the terminal outcome of one grid job.
type JobResult struct {
	Label     string
	Index     int
	Total     int
	Status    string
	SizeBytes int64
	Duration  time.Duration
	Message   string // failure detail, empty on success
}

// ResolutionScore summarizes quality scores at one resolution.
type ResolutionScore struct {
	Resolution string
	Count      int
	Min        float64
	Mean       float64
	Max        float64
}

// TableSummary describes a written per-source results table.
type TableSummary struct {
	Source string
	Path   string
	Rows   int
	Scores []ResolutionScore
}

// RunError contains error information.
type RunError struct {
	Title      string
	Message    string
	Context    string
	Suggestion string
}

// KindCount is one failure category with its occurrence count.
type KindCount struct {
	Kind  string
	Count int
}

// RunSummary contains run completion information.
type RunSummary struct {
	TotalJobs    int
	Succeeded    int
	Skipped      int
	Failed       int
	FailureKinds []KindCount
	Duration     time.Duration
}
