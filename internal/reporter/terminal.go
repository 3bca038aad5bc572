package reporter

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/gertd/go-pluralize"
	"github.com/schollz/progressbar/v3"

	"github.com/five82/vqsweep/internal/util"
)

// TerminalReporter outputs human-friendly text to the terminal.
type TerminalReporter struct {
	mu       sync.Mutex
	progress *progressbar.ProgressBar
	plural   *pluralize.Client
	cyan     *color.Color
	green    *color.Color
	yellow   *color.Color
	red      *color.Color
	faint    *color.Color
	bold     *color.Color
}

// NewTerminalReporter creates a new terminal reporter.
func NewTerminalReporter() *TerminalReporter {
	return &TerminalReporter{
		plural: pluralize.NewClient(),
		cyan:   color.New(color.FgCyan, color.Bold),
		green:  color.New(color.FgGreen),
		yellow: color.New(color.FgYellow, color.Bold),
		red:    color.New(color.FgRed, color.Bold),
		faint:  color.New(color.Faint),
		bold:   color.New(color.Bold),
	}
}

// printLabel prints a bold label with fixed width padding followed by a value.
// Width is applied to the plain text before styling to ensure proper alignment.
func (r *TerminalReporter) printLabel(width int, label, value string) {
	paddedLabel := fmt.Sprintf("%-*s", width, label)
	fmt.Printf("  %s %s\n", r.bold.Sprint(paddedLabel), value)
}

func (r *TerminalReporter) finishProgress() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.progress != nil {
		_ = r.progress.Finish()
		r.progress = nil
	}
}

func (r *TerminalReporter) RunStarted(info RunInfo) {
	fmt.Println()
	_, _ = r.cyan.Println(strings.ToUpper(info.Operation))
	const w = 12
	r.printLabel(w, "Codec:", info.Codec)
	r.printLabel(w, "Sources:", r.plural.Pluralize("file", len(info.Sources), true))
	r.printLabel(w, "Resolutions:", strings.Join(info.Resolutions, ", "))
	if info.Workers > 0 {
		r.printLabel(w, "Workers:", fmt.Sprintf("%d", info.Workers))
	}
	r.printLabel(w, "Jobs:", r.plural.Pluralize("job", info.TotalJobs, true))
	r.printLabel(w, "Output:", info.OutputDir)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.progress = progressbar.NewOptions64(
		int64(info.TotalJobs),
		progressbar.OptionSetDescription(""),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionShowDescriptionAtLineEnd(),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "Jobs [",
			BarEnd:        "]",
		}),
	)
}

func (r *TerminalReporter) SourceStarted(info SourceStart) {
	fmt.Printf("\nSource %s of %d: %s (%s)\n",
		r.bold.Sprint(info.CurrentFile),
		info.TotalFiles,
		r.bold.Sprint(util.GetFilename(info.Source)),
		r.plural.Pluralize("job", info.JobCount, true))
}

func (r *TerminalReporter) JobStarted(event JobEvent) {
	r.describe(event.Label)
}

func (r *TerminalReporter) JobSkipped(event JobEvent) {
	r.advance()
	fmt.Printf("  %s %s\n", r.faint.Sprint("skip"), event.Label)
}

func (r *TerminalReporter) JobCompleted(result JobResult) {
	r.advance()
	switch result.Status {
	case "succeeded":
		fmt.Printf("  %s %s (%s in %s)\n",
			r.green.Sprint("done"),
			result.Label,
			util.FormatBytes(result.SizeBytes),
			util.FormatDuration(result.Duration.Seconds()))
	default:
		fmt.Printf("  %s %s: %s\n", r.red.Sprint("fail"), result.Label, result.Message)
	}
}

func (r *TerminalReporter) describe(desc string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.progress != nil {
		r.progress.Describe(desc)
	}
}

func (r *TerminalReporter) advance() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.progress != nil {
		_ = r.progress.Add64(1)
	}
}

func (r *TerminalReporter) TableWritten(summary TableSummary) {
	fmt.Println()
	_, _ = r.cyan.Println("RESULTS")
	r.printLabel(8, "Source:", util.GetFilename(summary.Source))
	r.printLabel(8, "Table:", r.green.Sprint(summary.Path))
	r.printLabel(8, "Rows:", r.plural.Pluralize("row", summary.Rows, true))
	for _, score := range summary.Scores {
		fmt.Printf("  - %-6s vmaf %.2f (min %.2f, max %.2f, %s)\n",
			score.Resolution, score.Mean, score.Min, score.Max,
			r.plural.Pluralize("encode", score.Count, true))
	}
}

func (r *TerminalReporter) Warning(message string) {
	fmt.Println()
	_, _ = r.yellow.Printf("WARN: %s\n", message)
}

func (r *TerminalReporter) Error(err RunError) {
	r.finishProgress()
	_, _ = fmt.Fprintln(os.Stderr)
	_, _ = r.red.Fprintf(os.Stderr, "ERROR %s\n", err.Title)
	_, _ = fmt.Fprintf(os.Stderr, "  %s\n", err.Message)
	if err.Context != "" {
		_, _ = fmt.Fprintf(os.Stderr, "  Context: %s\n", err.Context)
	}
	if err.Suggestion != "" {
		_, _ = fmt.Fprintf(os.Stderr, "  Suggestion: %s\n", err.Suggestion)
	}
}

func (r *TerminalReporter) RunComplete(summary RunSummary) {
	r.finishProgress()

	fmt.Println()
	_, _ = r.cyan.Println("SUMMARY")
	fmt.Printf("  %s\n", r.bold.Sprintf("%d of %d succeeded", summary.Succeeded, summary.TotalJobs))
	if summary.Skipped > 0 {
		fmt.Printf("  Skipped: %s (already encoded)\n", r.faint.Sprint(summary.Skipped))
	}
	if summary.Failed > 0 {
		fmt.Printf("  Failed: %s\n", r.red.Sprint(summary.Failed))
		for _, kc := range summary.FailureKinds {
			fmt.Printf("  - %s: %d\n", kc.Kind, kc.Count)
		}
	}
	fmt.Printf("  Time: %s\n", util.FormatDuration(summary.Duration.Seconds()))
}

func (r *TerminalReporter) Verbose(message string) {
	_, _ = r.faint.Printf("  %s\n", message)
}
