package finance

import (
	"time"

	"portfolioBenchBot/internal/analytics"
)

// Request is one analysis as entered by a user: instruments, invested
// amounts, window [Start, End) and VaR confidence.
type Request struct {
	Symbols    []string
	Amounts    []float64
	Start      time.Time
	End        time.Time
	Confidence float64
	Benchmark  string // empty means the analyzer default
}

// Result bundles the analytics report with what produced it.
type Result struct {
	Request   Request
	Benchmark string
	Positions []analytics.Position
	Report    *analytics.Report
}
