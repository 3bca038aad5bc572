package chain

import (
	"context"
	stderrors "errors"
	"os"
	"os/exec"

	"github.com/five82/vqsweep/internal/errors"
)

// Run executes a chain and returns its outcome. Run never returns a partial
// handle: by the time it returns, every process it started has been reaped
// and every pipe it opened has been closed.
//
// Failure classification, in precedence order: parent-context cancellation,
// chain timeout, then the lowest-index failed stage.
func Run(ctx context.Context, c Chain) Result {
	res := Result{Stages: make([]StageResult, len(c.Stages))}
	for i, s := range c.Stages {
		res.Stages[i] = StageResult{Name: s.Name, Index: i, ExitCode: -1}
	}
	if err := validate(c); err != nil {
		res.Err = err
		return res
	}

	runCtx := ctx
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	capture := newCapWriter(stdoutCaptureLimit)
	for _, seg := range splitSegments(c) {
		runSegment(runCtx, c, seg, res.Stages, capture)
		if failedIndex(res.Stages[seg.start:seg.end]) >= 0 {
			break
		}
		if runCtx.Err() != nil {
			break
		}
	}
	res.Stdout = capture.String()

	idx := failedIndex(res.Stages)
	if idx < 0 {
		return res
	}
	switch {
	case ctx.Err() != nil:
		res.Err = errors.NewCancelledError()
	case runCtx.Err() == context.DeadlineExceeded:
		res.TimedOut = true
		res.Err = errors.NewTimeoutError(c.Timeout)
	default:
		sr := res.Stages[idx]
		var cmdErr *errors.CommandError
		if !stderrors.As(sr.Err, &cmdErr) {
			cmdErr = &errors.CommandError{Command: c.Stages[idx].Bin, Kind: errors.CommandWait, Underlying: sr.Err}
		}
		res.Err = errors.NewStageFailureError(sr.Name, idx, cmdErr)
	}
	return res
}

// failedIndex returns the lowest index of a stage that errored or exited
// nonzero, or -1 when every stage in the slice succeeded or never ran.
func failedIndex(stages []StageResult) int {
	for i, sr := range stages {
		if sr.Err != nil {
			return i
		}
		if sr.Started && sr.ExitCode != 0 {
			return i
		}
	}
	return -1
}

// runSegment starts every stage in the segment, closes the parent's copies
// of the connecting pipes, then waits for the stages in order. Results are
// written into results at the stages' chain indexes.
func runSegment(ctx context.Context, c Chain, seg segment, results []StageResult, capture *capWriter) {
	n := seg.end - seg.start
	cmds := make([]*exec.Cmd, n)
	tails := make([]*tailWriter, n)

	type pipePair struct{ r, w *os.File }
	var pairs []pipePair
	closePairs := func() {
		for _, p := range pairs {
			p.r.Close()
			p.w.Close()
		}
		pairs = nil
	}

	var prevRead *os.File
	for j := 0; j < n; j++ {
		st := c.Stages[seg.start+j]
		cmd := exec.CommandContext(ctx, st.Bin, st.Args...)
		tails[j] = newTailWriter(stderrTailLimit)
		cmd.Stderr = tails[j]
		if st.Stdin == StdinFromPrev {
			cmd.Stdin = prevRead
			prevRead = nil
		}
		switch st.Stdout {
		case StdoutCapture:
			cmd.Stdout = capture
		case StdoutPipeNext:
			r, w, err := os.Pipe()
			if err != nil {
				results[seg.start+j].Err = &errors.CommandError{Command: st.Bin, Kind: errors.CommandStart, Underlying: err}
				closePairs()
				return
			}
			pairs = append(pairs, pipePair{r: r, w: w})
			cmd.Stdout = w
			prevRead = r
		}
		cmds[j] = cmd
	}

	started := 0
	for j := 0; j < n; j++ {
		st := c.Stages[seg.start+j]
		if err := cmds[j].Start(); err != nil {
			results[seg.start+j].Err = &errors.CommandError{Command: st.Bin, Kind: errors.CommandStart, Underlying: err}
			break
		}
		results[seg.start+j].Started = true
		started++
	}

	// The children hold their own duplicates of the pipe descriptors; the
	// parent's copies must go away or readers never see EOF.
	closePairs()

	if started < n {
		// A later stage failed to start. Pipes to it are already closed, so
		// the started stages will see EPIPE/EOF; help them along.
		for j := 0; j < started; j++ {
			if cmds[j].Process != nil {
				_ = cmds[j].Process.Kill()
			}
		}
	}

	for j := 0; j < started; j++ {
		st := c.Stages[seg.start+j]
		sr := &results[seg.start+j]
		err := cmds[j].Wait()
		sr.Stderr = tails[j].String()
		sr.StderrTruncated = tails[j].Truncated()
		if err == nil {
			sr.ExitCode = 0
			continue
		}
		var exitErr *exec.ExitError
		if stderrors.As(err, &exitErr) {
			sr.ExitCode = exitErr.ExitCode()
			sr.Err = &errors.CommandError{Command: st.Bin, Kind: errors.CommandFailed, ExitCode: sr.ExitCode, Stderr: sr.Stderr}
		} else {
			sr.Err = &errors.CommandError{Command: st.Bin, Kind: errors.CommandWait, Underlying: err}
		}
	}
}
