// Package chain runs declarative multi-stage external-process chains.
//
// A chain is an ordered list of stages. Consecutive stages joined by
// StdoutPipeNext/StdinFromPrev form a segment whose processes run
// concurrently, connected by a live OS pipe. Segments run sequentially; a
// failed segment prevents later segments from starting. The executor owns
// every process handle and pipe it creates and releases them on all exit
// paths.
package chain

import (
	"fmt"
	"time"

	"github.com/five82/vqsweep/internal/errors"
)

// StdinSource declares where a stage's standard input comes from.
type StdinSource int

const (
	// StdinNone leaves the stage's stdin disconnected.
	StdinNone StdinSource = iota
	// StdinFromPrev connects the stage's stdin to the previous stage's stdout.
	StdinFromPrev
)

// StdoutSink declares what happens to a stage's standard output.
type StdoutSink int

const (
	// StdoutDiscard throws the stage's stdout away.
	StdoutDiscard StdoutSink = iota
	// StdoutCapture collects the stage's stdout into Result.Stdout.
	StdoutCapture
	// StdoutPipeNext streams the stage's stdout into the next stage's stdin.
	StdoutPipeNext
)

// Stage is one external-process invocation within a chain.
type Stage struct {
	Name   string // attribution label for diagnostics
	Bin    string
	Args   []string
	Stdin  StdinSource
	Stdout StdoutSink
}

// Chain is an ordered list of stages with an optional wall-clock budget.
// Timeout 0 disables the budget.
type Chain struct {
	Stages  []Stage
	Timeout time.Duration
}

// StageResult records the outcome of one stage.
type StageResult struct {
	Name            string
	Index           int
	Started         bool
	ExitCode        int
	Stderr          string
	StderrTruncated bool
	Err             error
}

// Result is the outcome of running a chain. Err is nil on success; otherwise
// it carries the chain's classified failure. All stages' results remain
// available regardless of outcome.
type Result struct {
	Stages   []StageResult
	Stdout   string
	TimedOut bool
	Err      error
}

// Failed reports whether the chain did not complete successfully.
func (r Result) Failed() bool {
	return r.Err != nil
}

// validate checks the declarative shape of a chain before any process starts.
func validate(c Chain) error {
	if len(c.Stages) == 0 {
		return errors.NewConfigurationError("chain has no stages")
	}
	for i, s := range c.Stages {
		if s.Bin == "" {
			return errors.NewConfigurationError(fmt.Sprintf("stage %d (%s) has no binary", i, s.Name))
		}
		if s.Stdout == StdoutPipeNext {
			if i == len(c.Stages)-1 {
				return errors.NewConfigurationError(fmt.Sprintf("stage %d (%s) pipes stdout but is the last stage", i, s.Name))
			}
			if c.Stages[i+1].Stdin != StdinFromPrev {
				return errors.NewConfigurationError(fmt.Sprintf("stage %d (%s) pipes stdout but stage %d does not read it", i, s.Name, i+1))
			}
		}
		if s.Stdin == StdinFromPrev {
			if i == 0 {
				return errors.NewConfigurationError(fmt.Sprintf("stage 0 (%s) reads from a previous stage but none exists", s.Name))
			}
			if c.Stages[i-1].Stdout != StdoutPipeNext {
				return errors.NewConfigurationError(fmt.Sprintf("stage %d (%s) reads from stage %d which does not pipe", i, s.Name, i-1))
			}
		}
	}
	return nil
}

// segments splits the chain into maximal runs of pipe-connected stages.
// Each segment is a half-open index range [start, end).
type segment struct {
	start, end int
}

func splitSegments(c Chain) []segment {
	var segs []segment
	start := 0
	for i := range c.Stages {
		if c.Stages[i].Stdout != StdoutPipeNext {
			segs = append(segs, segment{start: start, end: i + 1})
			start = i + 1
		}
	}
	return segs
}
