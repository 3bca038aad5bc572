package chain

import "sync"

// stderrTailLimit bounds how much stderr is retained per stage. Encoders can
// emit megabytes of progress lines; only the tail matters for diagnostics.
const stderrTailLimit = 8 * 1024

// stdoutCaptureLimit bounds captured stdout for StdoutCapture stages.
const stdoutCaptureLimit = 1024 * 1024

// tailWriter keeps the last max bytes written to it. It is safe for use as
// an exec.Cmd stderr sink: exec serializes writes, but the chain reads the
// buffer only after Wait returns, so a mutex keeps the race detector quiet
// when stages share a goroutine dump.
type tailWriter struct {
	mu        sync.Mutex
	max       int
	buf       []byte
	truncated bool
}

func newTailWriter(max int) *tailWriter {
	return &tailWriter{max: max}
}

func (w *tailWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.buf = append(w.buf, p...)
	if len(w.buf) > w.max {
		w.buf = w.buf[len(w.buf)-w.max:]
		w.truncated = true
	}
	return len(p), nil
}

func (w *tailWriter) String() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return string(w.buf)
}

func (w *tailWriter) Truncated() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.truncated
}

// capWriter appends to an in-memory buffer up to max bytes, then silently
// drops the rest. Dropping keeps the child process unblocked.
type capWriter struct {
	mu  sync.Mutex
	max int
	buf []byte
}

func newCapWriter(max int) *capWriter {
	return &capWriter{max: max}
}

func (w *capWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if room := w.max - len(w.buf); room > 0 {
		if len(p) > room {
			w.buf = append(w.buf, p[:room]...)
		} else {
			w.buf = append(w.buf, p...)
		}
	}
	return len(p), nil
}

func (w *capWriter) String() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return string(w.buf)
}
