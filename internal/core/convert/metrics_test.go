package convert

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(n int) *int { return &n }

func TestDeriveMetricsBands(t *testing.T) {
	tests := []struct {
		name string
		rate float64
		want Severity
	}{
		{name: "high", rate: 95, want: SeverityGood},
		{name: "boundary high", rate: 80, want: SeverityWarn},
		{name: "medium", rate: 65, want: SeverityWarn},
		{name: "boundary medium", rate: 50, want: SeverityBad},
		{name: "low", rate: 10, want: SeverityBad},
		{name: "zero", rate: 0, want: SeverityBad},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := DeriveMetrics(Stats{MatchRate: tt.rate}, false)
			assert.Equal(t, tt.want, m.MatchSeverity)
		})
	}
}

func TestDeriveMetricsOrphans(t *testing.T) {
	m := DeriveMetrics(Stats{OrphanedHighlights: 0}, false)
	assert.Equal(t, SeverityGood, m.OrphanSeverity)

	m = DeriveMetrics(Stats{OrphanedHighlights: 3}, false)
	assert.Equal(t, SeverityWarn, m.OrphanSeverity)
	assert.Equal(t, 3, m.OrphanCount)
}

func TestDeriveMetricsMergeCounters(t *testing.T) {
	stats := Stats{
		MatchRate:       90,
		FileSize:        "12 KB",
		NewAdded:        intPtr(7),
		DuplicatesFound: intPtr(2),
	}

	m := DeriveMetrics(stats, true)
	assert.True(t, m.ShowMerge)
	assert.Equal(t, 7, m.NewAdded)
	assert.Equal(t, 2, m.DuplicatesFound)

	// Not in merge mode: counters hidden even if the server sent them.
	m = DeriveMetrics(stats, false)
	assert.False(t, m.ShowMerge)

	// Merge mode but counters absent from the response.
	m = DeriveMetrics(Stats{MatchRate: 90}, true)
	assert.False(t, m.ShowMerge)
}

func TestDeriveMetricsIsDeterministic(t *testing.T) {
	stats := Stats{MatchRate: 72.5, OrphanedHighlights: 1, FileSize: "3.1 KB"}

	first := DeriveMetrics(stats, false)
	for range 3 {
		assert.Equal(t, first, DeriveMetrics(stats, false))
	}
}
