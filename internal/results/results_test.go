package results

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/vqsweep/internal/errors"
	"github.com/five82/vqsweep/internal/grid"
)

func makeJobs(n int) []grid.Job {
	jobs := make([]grid.Job, n)
	for i := range jobs {
		jobs[i] = grid.Job{Index: i, Source: "/src/clip.mkv"}
	}
	return jobs
}

func TestAggregatorPreservesGridOrder(t *testing.T) {
	jobs := makeJobs(8)
	agg := NewAggregator(jobs)

	// Record out of order from several goroutines, the way workers finish.
	var wg sync.WaitGroup
	for i := len(jobs) - 1; i >= 0; i-- {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			status := StatusSucceeded
			if i%3 == 0 {
				status = StatusSkipped
			}
			require.NoError(t, agg.Record(Entry{Job: jobs[i], Status: status}))
		}(i)
	}
	wg.Wait()

	rs := agg.Finalize()
	require.Len(t, rs.Entries, 8)
	for i, e := range rs.Entries {
		assert.Equal(t, i, e.Job.Index)
	}
	assert.Equal(t, 3, rs.Count(StatusSkipped))
	assert.Equal(t, 5, rs.Count(StatusSucceeded))
	assert.True(t, rs.AllSucceeded())
}

func TestAggregatorRejectsDoubleRecord(t *testing.T) {
	jobs := makeJobs(2)
	agg := NewAggregator(jobs)

	require.NoError(t, agg.Record(Entry{Job: jobs[0], Status: StatusSucceeded}))
	err := agg.Record(Entry{Job: jobs[0], Status: StatusFailed})
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindInternal))

	err = agg.Record(Entry{Job: grid.Job{Index: 7}})
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindInternal))
}

func TestAggregatorFinalizeMarksUnrecorded(t *testing.T) {
	jobs := makeJobs(3)
	agg := NewAggregator(jobs)
	require.NoError(t, agg.Record(Entry{Job: jobs[1], Status: StatusSucceeded}))

	rs := agg.Finalize()
	assert.Equal(t, StatusFailed, rs.Entries[0].Status)
	assert.True(t, errors.IsKind(rs.Entries[0].Err, errors.KindCancelled))
	assert.Equal(t, StatusSucceeded, rs.Entries[1].Status)
	assert.Equal(t, StatusFailed, rs.Entries[2].Status)

	// Idempotent: a second call returns the identical set.
	again := agg.Finalize()
	assert.Equal(t, rs.Entries, again.Entries)
	assert.Equal(t, rs.Duration, again.Duration)
}

func TestAggregatorRejectsRecordAfterFinalize(t *testing.T) {
	jobs := makeJobs(2)
	agg := NewAggregator(jobs)
	require.NoError(t, agg.Record(Entry{Job: jobs[0], Status: StatusSucceeded}))

	rs := agg.Finalize()
	require.Equal(t, StatusFailed, rs.Entries[1].Status)

	err := agg.Record(Entry{Job: jobs[1], Status: StatusSucceeded})
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindInternal))

	// The frozen set must not change underneath its holder.
	assert.Equal(t, StatusFailed, rs.Entries[1].Status)
}

func TestResultSetFailureKinds(t *testing.T) {
	rs := ResultSet{Entries: []Entry{
		{Status: StatusFailed, Err: errors.NewTimeoutError(0)},
		{Status: StatusFailed, Err: errors.NewMissingOutputError("/x")},
		{Status: StatusFailed, Err: errors.NewTimeoutError(0)},
		{Status: StatusSucceeded},
	}}

	kinds := rs.FailureKinds()
	assert.Equal(t, 2, kinds[errors.KindTimeout])
	assert.Equal(t, 1, kinds[errors.KindMissingOutput])
	assert.False(t, rs.AllSucceeded())
	assert.Len(t, rs.Failed(), 3)
}

func TestStatsByResolution(t *testing.T) {
	records := []QualityRecord{
		{Resolution: "720p", VMAFScore: 80},
		{Resolution: "720p", VMAFScore: 90},
		{Resolution: "360p", VMAFScore: 60},
		{Resolution: "720p", VMAFScore: 70},
	}

	stats := StatsByResolution(records)
	require.Len(t, stats, 2)
	assert.Equal(t, "720p", stats[0].Resolution)
	assert.Equal(t, 3, stats[0].Count)
	assert.Equal(t, 70.0, stats[0].Min)
	assert.Equal(t, 80.0, stats[0].Mean)
	assert.Equal(t, 90.0, stats[0].Max)
	assert.Equal(t, "360p", stats[1].Resolution)
	assert.Equal(t, 60.0, stats[1].Mean)
}

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vmaf_results_av1.csv")
	bitrate := 1532.4
	records := []QualityRecord{
		{Video: "/out/clip_av1_720p_qp24.mkv", Resolution: "720p", QualityParam: 24, BitrateKbps: &bitrate, VMAFScore: 91.2345},
		{Video: "/out/clip_av1_360p_qp30.mkv", Resolution: "360p", QualityParam: 30, BitrateKbps: nil, VMAFScore: 64.5},
	}

	require.NoError(t, WriteCSV(path, records))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t,
		"video,resolution,qp,bitrate_kbps,vmaf\n"+
			"/out/clip_av1_720p_qp24.mkv,720p,24,1532.4,91.23\n"+
			"/out/clip_av1_360p_qp30.mkv,360p,30,,64.50\n",
		string(data))
}
