package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMedianAndRange(t *testing.T) {
	assert.Equal(t, 0.0, median(nil))
	assert.Equal(t, 2.0, median([]float64{1, 2, 3}))
	assert.Equal(t, 2.5, median([]float64{1, 2, 3, 4}))

	vals := make([]float64, 100)
	for i := range vals {
		vals[i] = float64(i)
	}
	assert.Equal(t, 2.0, averageOfRange(vals, 0, 0.05))
	assert.Equal(t, 97.0, averageOfRange(vals, 0.95, 1.0))
	// Too few samples for a 5% slice falls back to the median.
	assert.Equal(t, 2.0, averageOfRange([]float64{1, 2, 3}, 0, 0.05))
}

func TestFormatNs(t *testing.T) {
	assert.Equal(t, "12ns", formatNs(12))
	assert.Equal(t, "1.5µs", formatNs(1500))
	assert.Equal(t, "2.0ms", formatNs(2e6))
	assert.Equal(t, "3.00s", formatNs(3e9))
}

func TestNsPerAction(t *testing.T) {
	reports := []FullReport{{Benchmarks: []BenchmarkResult{
		{Workload: "classic", NumSessions: 2, NumActions: 1000, ActualElapsed: "1ms"},
		{Workload: "classic", NumSessions: 2, NumActions: 0, ActualElapsed: "1ms"},
		{Workload: "classic", NumSessions: 2, NumActions: 10, ActualElapsed: "garbage"},
	}}}
	points := nsPerAction(reports)
	require.Contains(t, points, "classic")
	assert.Equal(t, []float64{2000}, points["classic"][2])

	stats := buildStats(points["classic"])
	require.Len(t, stats, 1)
	assert.Equal(t, 2000.0, stats[0].median)
}

func TestBuildPlot(t *testing.T) {
	p, err := buildPlot(map[string]map[float64][]float64{
		"classic": {1: {10, 12}, 4: {20}},
		"single":  {1: {5}},
	})
	require.NoError(t, err)
	assert.NotNil(t, p)
}
