package vqsweep

import (
	"time"

	"github.com/five82/vqsweep/internal/reporter"
)

// Event types emitted to an EventHandler.
const (
	EventTypeRunStarted    = "run_started"
	EventTypeSourceStarted = "source_started"
	EventTypeJobStarted    = "job_started"
	EventTypeJobSkipped    = "job_skipped"
	EventTypeJobCompleted  = "job_completed"
	EventTypeTableWritten  = "table_written"
	EventTypeWarning       = "warning"
	EventTypeError         = "error"
	EventTypeRunComplete   = "run_complete"
)

// Event is one progress event of a sweep or evaluation.
type Event interface {
	Type() string
}

// EventHandler receives progress events. Returning an error does not stop
// the run; handlers that need to abort should cancel the context instead.
type EventHandler func(Event) error

// BaseEvent carries the fields common to all events.
type BaseEvent struct {
	EventType string
	Time      string
}

// Type returns the event type tag.
func (e BaseEvent) Type() string {
	return e.EventType
}

// NewTimestamp returns the current time in RFC 3339 form.
func NewTimestamp() string {
	return time.Now().Format(time.RFC3339)
}

// RunStartedEvent is emitted once before the first job.
type RunStartedEvent struct {
	BaseEvent
	Operation string
	Codec     string
	Sources   []string
	TotalJobs int
	Workers   int
}

// SourceStartedEvent is emitted when an evaluation reaches a new source.
type SourceStartedEvent struct {
	BaseEvent
	Source      string
	CurrentFile int
	TotalFiles  int
}

// JobStartedEvent is emitted when a grid job begins running.
type JobStartedEvent struct {
	BaseEvent
	Label      string
	Index      int
	Total      int
	OutputPath string
}

// JobSkippedEvent is emitted when a grid job is skipped.
type JobSkippedEvent struct {
	BaseEvent
	Label      string
	Index      int
	Total      int
	OutputPath string
}

// JobCompletedEvent is emitted when a grid job finishes.
type JobCompletedEvent struct {
	BaseEvent
	Label           string
	Index           int
	Total           int
	Status          string
	SizeBytes       int64
	DurationSeconds int64
	Message         string
}

// TableWrittenEvent is emitted after a per-source CSV table is written.
type TableWrittenEvent struct {
	BaseEvent
	Source string
	Path   string
	Rows   int
}

// WarningEvent is emitted for recoverable problems.
type WarningEvent struct {
	BaseEvent
	Message string
}

// ErrorEvent is emitted for reported run errors.
type ErrorEvent struct {
	BaseEvent
	Title      string
	Message    string
	Context    string
	Suggestion string
}

// RunCompleteEvent is emitted once after the last job.
type RunCompleteEvent struct {
	BaseEvent
	TotalJobs       int
	Succeeded       int
	Skipped         int
	Failed          int
	DurationSeconds int64
}

// eventReporter adapts EventHandler to the internal reporter interface.
type eventReporter struct {
	handler EventHandler
}

func newEventReporter(handler EventHandler) *eventReporter {
	return &eventReporter{handler: handler}
}

func (r *eventReporter) RunStarted(info reporter.RunInfo) {
	_ = r.handler(RunStartedEvent{
		BaseEvent: BaseEvent{EventType: EventTypeRunStarted, Time: NewTimestamp()},
		Operation: info.Operation,
		Codec:     info.Codec,
		Sources:   info.Sources,
		TotalJobs: info.TotalJobs,
		Workers:   info.Workers,
	})
}

func (r *eventReporter) SourceStarted(info reporter.SourceStart) {
	_ = r.handler(SourceStartedEvent{
		BaseEvent:   BaseEvent{EventType: EventTypeSourceStarted, Time: NewTimestamp()},
		Source:      info.Source,
		CurrentFile: info.CurrentFile,
		TotalFiles:  info.TotalFiles,
	})
}

func (r *eventReporter) JobStarted(event reporter.JobEvent) {
	_ = r.handler(JobStartedEvent{
		BaseEvent:  BaseEvent{EventType: EventTypeJobStarted, Time: NewTimestamp()},
		Label:      event.Label,
		Index:      event.Index,
		Total:      event.Total,
		OutputPath: event.OutputPath,
	})
}

func (r *eventReporter) JobSkipped(event reporter.JobEvent) {
	_ = r.handler(JobSkippedEvent{
		BaseEvent:  BaseEvent{EventType: EventTypeJobSkipped, Time: NewTimestamp()},
		Label:      event.Label,
		Index:      event.Index,
		Total:      event.Total,
		OutputPath: event.OutputPath,
	})
}

func (r *eventReporter) JobCompleted(result reporter.JobResult) {
	_ = r.handler(JobCompletedEvent{
		BaseEvent:       BaseEvent{EventType: EventTypeJobCompleted, Time: NewTimestamp()},
		Label:           result.Label,
		Index:           result.Index,
		Total:           result.Total,
		Status:          result.Status,
		SizeBytes:       result.SizeBytes,
		DurationSeconds: int64(result.Duration.Seconds()),
		Message:         result.Message,
	})
}

func (r *eventReporter) TableWritten(summary reporter.TableSummary) {
	_ = r.handler(TableWrittenEvent{
		BaseEvent: BaseEvent{EventType: EventTypeTableWritten, Time: NewTimestamp()},
		Source:    summary.Source,
		Path:      summary.Path,
		Rows:      summary.Rows,
	})
}

func (r *eventReporter) Warning(message string) {
	_ = r.handler(WarningEvent{
		BaseEvent: BaseEvent{EventType: EventTypeWarning, Time: NewTimestamp()},
		Message:   message,
	})
}

func (r *eventReporter) Error(err reporter.RunError) {
	_ = r.handler(ErrorEvent{
		BaseEvent:  BaseEvent{EventType: EventTypeError, Time: NewTimestamp()},
		Title:      err.Title,
		Message:    err.Message,
		Context:    err.Context,
		Suggestion: err.Suggestion,
	})
}

func (r *eventReporter) RunComplete(summary reporter.RunSummary) {
	_ = r.handler(RunCompleteEvent{
		BaseEvent:       BaseEvent{EventType: EventTypeRunComplete, Time: NewTimestamp()},
		TotalJobs:       summary.TotalJobs,
		Succeeded:       summary.Succeeded,
		Skipped:         summary.Skipped,
		Failed:          summary.Failed,
		DurationSeconds: int64(summary.Duration.Seconds()),
	})
}

func (r *eventReporter) Verbose(string) {}
