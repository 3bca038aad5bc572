// Package vmaf extracts per-frame quality scores from libvmaf JSON reports
// and aggregates them into a single score per encode.
package vmaf

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/five82/vqsweep/internal/errors"
)

// DefaultMetric is the per-frame metric key aggregated from the report.
const DefaultMetric = "vmaf"

// frameEntry mirrors one element of the report's frames array. Metrics are
// decoded as a loose map: libvmaf emits a different key set depending on the
// model and feature flags.
type frameEntry struct {
	Metrics map[string]float64 `json:"metrics"`
}

// MeanScore reads a libvmaf JSON report and returns the arithmetic mean of
// the metric across all frames. A report that exists but has no frame
// entries, or whose frames all lack the metric, is an empty-report failure
// rather than a score of zero.
func MeanScore(reportPath, metric string) (float64, error) {
	f, err := os.Open(reportPath)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, errors.NewReportMissingError(reportPath)
		}
		return 0, errors.NewIOError("could not open quality report", err)
	}
	defer f.Close()

	scores, err := frameScores(f, metric)
	if err != nil {
		return 0, errors.NewReportUnparsableError(reportPath, err)
	}
	if len(scores) == 0 {
		return 0, errors.NewReportEmptyError(reportPath)
	}

	var sum float64
	for _, s := range scores {
		sum += s
	}
	return sum / float64(len(scores)), nil
}

// frameScores streams the frames array of a report, collecting the metric
// from each frame entry. Streaming keeps memory flat on hour-long sources
// where the report carries hundreds of thousands of frames.
func frameScores(r io.Reader, metric string) ([]float64, error) {
	dec := json.NewDecoder(r)

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("reading report opening: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("report is not a JSON object")
	}

	var scores []float64
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("reading report key: %w", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token %v in report object", keyTok)
		}
		if key != "frames" {
			// Skip pooled_metrics, version strings, and whatever else the
			// model attaches alongside the frames array.
			var skipped json.RawMessage
			if err := dec.Decode(&skipped); err != nil {
				return nil, fmt.Errorf("skipping report field %q: %w", key, err)
			}
			continue
		}

		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("reading frames array: %w", err)
		}
		if delim, ok := tok.(json.Delim); !ok || delim != '[' {
			return nil, fmt.Errorf("frames field is not an array")
		}
		for dec.More() {
			var frame frameEntry
			if err := dec.Decode(&frame); err != nil {
				return nil, fmt.Errorf("decoding frame entry: %w", err)
			}
			if score, ok := frame.Metrics[metric]; ok {
				scores = append(scores, score)
			}
		}
		if _, err := dec.Token(); err != nil {
			return nil, fmt.Errorf("closing frames array: %w", err)
		}
	}
	return scores, nil
}
