package analytics

import (
	"math"
	"testing"
	"time"
)

var day0 = time.Date(2023, time.May, 29, 0, 0, 0, 0, time.UTC)

// Helper: consecutive daily points starting at day0 + offset days
func series(t *testing.T, offset int, vals ...float64) []Point {
	t.Helper()
	out := make([]Point, len(vals))
	for i, v := range vals {
		out[i] = Point{Date: day0.AddDate(0, 0, offset+i), Value: v}
	}
	return out
}

// Helper: normalized curve whose percentage changes are exactly the given returns
func curveFromReturns(t *testing.T, returns []float64) NormalizedSeries {
	t.Helper()
	vals := make([]float64, len(returns)+1)
	vals[0] = 1
	for i, r := range returns {
		vals[i+1] = vals[i] * (1 + r)
	}
	return NormalizedSeries(series(t, 0, vals...))
}

func assertClose(t *testing.T, name string, expected, actual, tol float64) {
	t.Helper()
	if math.Abs(expected-actual) > tol {
		t.Errorf("%s: expected %.6f, got %.6f", name, expected, actual)
	}
}
