// Package results collects per-job sweep outcomes and per-encode quality
// records, and renders the quality records to CSV.
package results

import (
	"time"

	"github.com/five82/vqsweep/internal/errors"
	"github.com/five82/vqsweep/internal/grid"
)

// Status is the terminal state of one sweep job.
type Status int

const (
	// StatusSkipped means the job's output already existed and nothing ran.
	StatusSkipped Status = iota
	// StatusSucceeded means the job's chain completed and left a confirmed artifact.
	StatusSucceeded
	// StatusFailed means the job's chain or artifact confirmation failed.
	StatusFailed
)

// String returns a lower-case label for summaries.
func (s Status) String() string {
	switch s {
	case StatusSkipped:
		return "skipped"
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Entry is the recorded outcome of one sweep job.
type Entry struct {
	Job       grid.Job
	Status    Status
	SizeBytes int64
	Duration  time.Duration
	Err       error
}

// QualityRecord is one row of an evaluation's results table: the quality
// score and bitrate of a single encoded artifact.
type QualityRecord struct {
	Video        string
	Resolution   string
	QualityParam int
	BitrateKbps  *float64 // nil when the container carries no bitrate
	VMAFScore    float64
	ReportPath   string // per-frame report the score was aggregated from
}

// ResultSet is the complete, ordered outcome of a sweep run. Entries appear
// in grid enumeration order regardless of completion order.
type ResultSet struct {
	Entries  []Entry
	Duration time.Duration
}

// Count returns the number of entries with the given status.
func (rs ResultSet) Count(status Status) int {
	n := 0
	for _, e := range rs.Entries {
		if e.Status == status {
			n++
		}
	}
	return n
}

// Failed returns the failed entries in grid order.
func (rs ResultSet) Failed() []Entry {
	var failed []Entry
	for _, e := range rs.Entries {
		if e.Status == StatusFailed {
			failed = append(failed, e)
		}
	}
	return failed
}

// FailureKinds returns how many failures fell into each error kind.
func (rs ResultSet) FailureKinds() map[errors.ErrorKind]int {
	kinds := make(map[errors.ErrorKind]int)
	for _, e := range rs.Entries {
		if e.Status != StatusFailed {
			continue
		}
		kind, ok := errors.KindOf(e.Err)
		if !ok {
			kind = errors.KindInternal
		}
		kinds[kind]++
	}
	return kinds
}

// AllSucceeded reports whether no entry failed. Skipped entries count as
// success: their artifacts exist.
func (rs ResultSet) AllSucceeded() bool {
	return rs.Count(StatusFailed) == 0
}

// ResolutionStat summarizes quality scores at one resolution.
type ResolutionStat struct {
	Resolution string
	Count      int
	Min        float64
	Mean       float64
	Max        float64
}

// StatsByResolution aggregates quality records per resolution, preserving
// first-appearance order of the resolutions.
func StatsByResolution(records []QualityRecord) []ResolutionStat {
	index := make(map[string]int)
	var stats []ResolutionStat
	sums := make(map[string]float64)
	for _, rec := range records {
		i, ok := index[rec.Resolution]
		if !ok {
			i = len(stats)
			index[rec.Resolution] = i
			stats = append(stats, ResolutionStat{Resolution: rec.Resolution, Min: rec.VMAFScore, Max: rec.VMAFScore})
		}
		s := &stats[i]
		s.Count++
		sums[rec.Resolution] += rec.VMAFScore
		if rec.VMAFScore < s.Min {
			s.Min = rec.VMAFScore
		}
		if rec.VMAFScore > s.Max {
			s.Max = rec.VMAFScore
		}
	}
	for i := range stats {
		stats[i].Mean = sums[stats[i].Resolution] / float64(stats[i].Count)
	}
	return stats
}
