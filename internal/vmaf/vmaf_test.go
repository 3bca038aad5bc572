package vmaf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/vqsweep/internal/errors"
)

func writeReport(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestMeanScoreArithmeticMean(t *testing.T) {
	path := writeReport(t, `{
		"version": "2.3.1",
		"frames": [
			{"frameNum": 0, "metrics": {"vmaf": 80.0, "integer_motion": 1.2}},
			{"frameNum": 1, "metrics": {"vmaf": 90.0}},
			{"frameNum": 2, "metrics": {"vmaf": 100.0}}
		],
		"pooled_metrics": {"vmaf": {"mean": 90.0, "harmonic_mean": 89.3}}
	}`)

	score, err := MeanScore(path, DefaultMetric)
	require.NoError(t, err)
	assert.Equal(t, 90.0, score)
}

func TestMeanScoreSingleFrame(t *testing.T) {
	path := writeReport(t, `{"frames": [{"metrics": {"vmaf": 73.25}}]}`)

	score, err := MeanScore(path, DefaultMetric)
	require.NoError(t, err)
	assert.Equal(t, 73.25, score)
}

func TestMeanScoreMissingReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.json")

	_, err := MeanScore(path, DefaultMetric)
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindReportMissing))
}

func TestMeanScoreUnparsableReport(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"truncated json", `{"frames": [{"metrics": {"vmaf": 80`},
		{"not an object", `[1, 2, 3]`},
		{"frames not an array", `{"frames": {"metrics": {}}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := MeanScore(writeReport(t, tt.content), DefaultMetric)
			require.Error(t, err)
			assert.True(t, errors.IsKind(err, errors.KindReportUnparsable))
		})
	}
}

func TestMeanScoreEmptyReport(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"no frames key", `{"version": "2.3.1"}`},
		{"empty frames array", `{"frames": []}`},
		{"frames without the metric", `{"frames": [{"metrics": {"psnr_y": 42.0}}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := MeanScore(writeReport(t, tt.content), DefaultMetric)
			require.Error(t, err)
			assert.True(t, errors.IsKind(err, errors.KindReportEmpty))
		})
	}
}
