package convert

// Severity buckets a metric for display coloring.
type Severity int

const (
	SeverityGood Severity = iota
	SeverityWarn
	SeverityBad
)

// Match-rate cut points.
const (
	matchRateHigh   = 80
	matchRateMedium = 50
)

// DisplayMetrics is the derived, render-ready view of a result's stats.
type DisplayMetrics struct {
	FileSize string

	MatchRate     float64
	MatchSeverity Severity

	OrphanCount    int
	OrphanSeverity Severity

	// ShowMerge is set when the conversion was a merge and the service
	// reported merge counters.
	ShowMerge       bool
	NewAdded        int
	DuplicatesFound int
}

// DeriveMetrics computes display metrics from a stats block. Pure and
// deterministic; safe to call on every render.
func DeriveMetrics(s Stats, mergeMode bool) DisplayMetrics {
	m := DisplayMetrics{
		FileSize:    s.FileSize,
		MatchRate:   s.MatchRate,
		OrphanCount: s.OrphanedHighlights,
	}

	switch {
	case s.MatchRate > matchRateHigh:
		m.MatchSeverity = SeverityGood
	case s.MatchRate > matchRateMedium:
		m.MatchSeverity = SeverityWarn
	default:
		m.MatchSeverity = SeverityBad
	}

	if s.OrphanedHighlights == 0 {
		m.OrphanSeverity = SeverityGood
	} else {
		m.OrphanSeverity = SeverityWarn
	}

	if mergeMode && s.NewAdded != nil && s.DuplicatesFound != nil {
		m.ShowMerge = true
		m.NewAdded = *s.NewAdded
		m.DuplicatesFound = *s.DuplicatesFound
	}

	return m
}
