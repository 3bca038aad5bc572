package ffmpeg

import (
	"fmt"
	"strings"

	"github.com/five82/vqsweep/internal/config"
)

// VMAFFilter builds the lavfi graph that normalizes both inputs to the 4K
// comparison plane and runs libvmaf. Input 0 is the distorted video, input 1
// the reference; the JSON report is written to reportPath.
func VMAFFilter(modelPath, reportPath string) string {
	w := config.VMAFComparisonWidth
	h := config.VMAFComparisonHeight
	fps := config.VMAFComparisonFPS
	return fmt.Sprintf(
		"[0:v]scale=%d:%d:flags=bicubic,fps=%d[dis];"+
			"[1:v]scale=%d:%d:flags=bicubic,fps=%d[ref];"+
			"[dis][ref]libvmaf=model=path=%s:log_fmt=json:log_path=%s",
		w, h, fps, w, h, fps,
		lavfiEscape(modelPath), lavfiEscape(reportPath),
	)
}

// VMAFArgs builds the ffmpeg command that scores distorted against reference
// with the given filter graph. Output goes to the null muxer; only the report
// file matters.
func VMAFArgs(distorted, reference, filter string) []string {
	return []string{
		"-i", distorted,
		"-i", reference,
		"-lavfi", filter,
		"-f", "null",
		"-",
	}
}

// lavfiEscape escapes characters that are option separators inside a lavfi
// filter value.
func lavfiEscape(s string) string {
	r := strings.NewReplacer(`\`, `\\`, ":", `\:`, "'", `\'`)
	return r.Replace(s)
}
