package results

import (
	"encoding/csv"
	"os"
	"strconv"

	"github.com/five82/vqsweep/internal/errors"
)

// csvHeader matches the downstream analysis tooling's expected column set.
var csvHeader = []string{"video", "resolution", "qp", "bitrate_kbps", "vmaf"}

// WriteCSV writes quality records as a results table. A record without a
// bitrate gets an empty cell, never a zero.
func WriteCSV(path string, records []QualityRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.NewIOError("could not create results table", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return errors.NewIOError("could not write results header", err)
	}
	for _, rec := range records {
		bitrate := ""
		if rec.BitrateKbps != nil {
			bitrate = strconv.FormatFloat(*rec.BitrateKbps, 'f', -1, 64)
		}
		row := []string{
			rec.Video,
			rec.Resolution,
			strconv.Itoa(rec.QualityParam),
			bitrate,
			strconv.FormatFloat(rec.VMAFScore, 'f', 2, 64),
		}
		if err := w.Write(row); err != nil {
			return errors.NewIOError("could not write results row", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return errors.NewIOError("could not flush results table", err)
	}
	return nil
}
