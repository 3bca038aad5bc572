package reporter

// Reporter defines the interface for run progress reporting.
type Reporter interface {
	RunStarted(info RunInfo)
	SourceStarted(info SourceStart)
	JobStarted(event JobEvent)
	JobSkipped(event JobEvent)
	JobCompleted(result JobResult)
	TableWritten(summary TableSummary)
	Warning(message string)
	Error(err RunError)
	RunComplete(summary RunSummary)
	Verbose(message string)
}

// NullReporter is a no-op reporter that discards all updates.
type NullReporter struct{}

func (NullReporter) RunStarted(RunInfo)       {}
func (NullReporter) SourceStarted(SourceStart) {}
func (NullReporter) JobStarted(JobEvent)      {}
func (NullReporter) JobSkipped(JobEvent)      {}
func (NullReporter) JobCompleted(JobResult)   {}
func (NullReporter) TableWritten(TableSummary) {}
func (NullReporter) Warning(string)           {}
func (NullReporter) Error(RunError)           {}
func (NullReporter) RunComplete(RunSummary)   {}
func (NullReporter) Verbose(string)           {}
