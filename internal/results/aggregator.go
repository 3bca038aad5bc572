package results

import (
	"fmt"
	"sync"
	"time"

	"github.com/five82/vqsweep/internal/errors"
	"github.com/five82/vqsweep/internal/grid"
)

// Aggregator assembles worker outcomes into a ResultSet. Workers complete
// jobs in arbitrary order; each outcome lands in the slot addressed by its
// job index, so the final set always reads in grid order.
type Aggregator struct {
	mu       sync.Mutex
	entries  []Entry
	recorded []bool
	started  time.Time
	final    *ResultSet
}

// NewAggregator creates an aggregator with one slot per job.
func NewAggregator(jobs []grid.Job) *Aggregator {
	entries := make([]Entry, len(jobs))
	for i, j := range jobs {
		entries[i] = Entry{Job: j}
	}
	return &Aggregator{
		entries:  entries,
		recorded: make([]bool, len(jobs)),
		started:  time.Now(),
	}
}

// Record stores the outcome for one job. Recording an out-of-range index or
// the same slot twice is a pipeline bug, not a job failure.
func (a *Aggregator) Record(e Entry) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.final != nil {
		return errors.NewInternalError("result recorded after finalize")
	}
	idx := e.Job.Index
	if idx < 0 || idx >= len(a.entries) {
		return errors.NewInternalError(fmt.Sprintf("result index %d outside grid of %d jobs", idx, len(a.entries)))
	}
	if a.recorded[idx] {
		return errors.NewInternalError(fmt.Sprintf("job %d recorded twice", idx))
	}
	a.recorded[idx] = true
	a.entries[idx] = e
	return nil
}

// Recorded returns how many slots have an outcome.
func (a *Aggregator) Recorded() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	n := 0
	for _, r := range a.recorded {
		if r {
			n++
		}
	}
	return n
}

// Finalize freezes the aggregator and returns the result set. Slots never
// recorded (a worker died before reaching them) are marked failed as
// cancelled. Finalize is idempotent; later calls return the same set.
func (a *Aggregator) Finalize() ResultSet {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.final != nil {
		return *a.final
	}
	for i := range a.entries {
		if !a.recorded[i] {
			a.entries[i].Status = StatusFailed
			a.entries[i].Err = errors.NewCancelledError()
		}
	}
	rs := ResultSet{Entries: a.entries, Duration: time.Since(a.started)}
	a.final = &rs
	return rs
}
