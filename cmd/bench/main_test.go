package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkloadsAreValid(t *testing.T) {
	for _, wl := range getWorkloads(2, 7) {
		t.Run(wl.Name, func(t *testing.T) {
			require.NoError(t, wl.Session.Validate())
			assert.Equal(t, 2, wl.NumSessions)
			assert.Equal(t, uint64(7), wl.Session.Seed)
		})
	}
}

func TestReportRoundTripAndMarkdown(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.json")

	require.NoError(t, appendReport(path, FullReport{ID: "first", Benchmarks: []BenchmarkResult{
		{Workload: "classic", NumSessions: 1, QueueCapacity: 5, StackCapacity: 3, BatchSize: 3, NumActions: 10, NumFailures: 5, Throughput: 10},
	}}))
	require.NoError(t, appendReport(path, FullReport{ID: "second", Benchmarks: []BenchmarkResult{
		{Workload: "slow", NumActions: 10, Throughput: 1},
		{Workload: "fast", NumActions: 10, Throughput: 100},
	}}))

	reports, err := readReports(path)
	require.NoError(t, err)
	require.Len(t, reports, 2)
	assert.Equal(t, "first", reports[0].ID)

	var buf bytes.Buffer
	require.NoError(t, outputMarkdownTable(&buf, path))
	out := buf.String()
	assert.Contains(t, out, "fast")
	assert.NotContains(t, out, "classic", "only the last report is tabulated")
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("fast")), bytes.Index(buf.Bytes(), []byte("slow")))
}

func TestMarkdownTableMissingFile(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, outputMarkdownTable(&buf, filepath.Join(t.TempDir(), "nope.json")))
}
