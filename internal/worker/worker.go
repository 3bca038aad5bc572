// Package worker provides concurrency primitives for parallel job execution.
package worker

import (
	"context"

	"github.com/five82/vqsweep/internal/util"
)

// encoderMemBytes is the estimated memory per in-flight encode job: one
// encoder process plus pipe buffers.
const encoderMemBytes = 1 << 30 // ~1 GB

// memFraction is the fraction of available memory the pool may claim.
const memFraction = 0.7

// Semaphore provides a counting semaphore for controlling concurrency.
// It limits the number of jobs in flight to bound memory and CPU pressure.
type Semaphore struct {
	permits chan struct{}
}

// NewSemaphore creates a new semaphore with the given number of permits.
func NewSemaphore(count int) *Semaphore {
	if count <= 0 {
		count = 1
	}
	s := &Semaphore{
		permits: make(chan struct{}, count),
	}
	// Pre-fill the permits
	for i := 0; i < count; i++ {
		s.permits <- struct{}{}
	}
	return s
}

// Acquire takes a permit, blocking until one is available or the context is
// cancelled.
func (s *Semaphore) Acquire(ctx context.Context) error {
	select {
	case <-s.permits:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Release returns a permit to the semaphore.
func (s *Semaphore) Release() {
	select {
	case s.permits <- struct{}{}:
	default:
		// Semaphore is full, this shouldn't happen in normal use
	}
}

// AutoWorkers selects a worker count from physical cores and available
// memory. Returns at least 1.
func AutoWorkers() int {
	workers := util.PhysicalCores()
	memPermits := util.MaxPermitsForMemory(encoderMemBytes, memFraction)
	if memPermits < workers {
		workers = memPermits
	}
	return max(workers, 1)
}

// Progress represents sweep progress information.
type Progress struct {
	JobsComplete int
	JobsTotal    int
	Skipped      int
	Failed       int
}

// Percent returns the completion percentage.
func (p Progress) Percent() float64 {
	if p.JobsTotal == 0 {
		return 0
	}
	return float64(p.JobsComplete) / float64(p.JobsTotal) * 100
}
