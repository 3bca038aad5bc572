package reporter

// CompositeReporter fans out events to multiple reporters.
type CompositeReporter struct {
	reporters []Reporter
}

// NewCompositeReporter creates a composite reporter.
func NewCompositeReporter(reporters ...Reporter) *CompositeReporter {
	return &CompositeReporter{reporters: reporters}
}

func (c *CompositeReporter) RunStarted(info RunInfo) {
	for _, r := range c.reporters {
		r.RunStarted(info)
	}
}

func (c *CompositeReporter) SourceStarted(info SourceStart) {
	for _, r := range c.reporters {
		r.SourceStarted(info)
	}
}

func (c *CompositeReporter) JobStarted(event JobEvent) {
	for _, r := range c.reporters {
		r.JobStarted(event)
	}
}

func (c *CompositeReporter) JobSkipped(event JobEvent) {
	for _, r := range c.reporters {
		r.JobSkipped(event)
	}
}

func (c *CompositeReporter) JobCompleted(result JobResult) {
	for _, r := range c.reporters {
		r.JobCompleted(result)
	}
}

func (c *CompositeReporter) TableWritten(summary TableSummary) {
	for _, r := range c.reporters {
		r.TableWritten(summary)
	}
}

func (c *CompositeReporter) Warning(message string) {
	for _, r := range c.reporters {
		r.Warning(message)
	}
}

func (c *CompositeReporter) Error(err RunError) {
	for _, r := range c.reporters {
		r.Error(err)
	}
}

func (c *CompositeReporter) RunComplete(summary RunSummary) {
	for _, r := range c.reporters {
		r.RunComplete(summary)
	}
}

func (c *CompositeReporter) Verbose(message string) {
	for _, r := range c.reporters {
		r.Verbose(message)
	}
}
