package analytics

import (
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// Point is a single dated observation.
type Point struct {
	Date  time.Time
	Value float64
}

// PriceSeries is an ordered sequence of adjusted close prices for one instrument.
type PriceSeries []Point

// NormalizedSeries is a series rescaled so that its first value is 1.0.
type NormalizedSeries []Point

// ReturnSeries holds period-over-period percentage changes, dated at the end of each period.
type ReturnSeries []Point

func values(points []Point) []float64 {
	out := make([]float64, len(points))
	for i, p := range points {
		out[i] = p.Value
	}
	return out
}

func (s PriceSeries) Values() []float64      { return values(s) }
func (s NormalizedSeries) Values() []float64 { return values(s) }
func (s ReturnSeries) Values() []float64     { return values(s) }

// Day truncates t to its calendar day in UTC. Series are joined on this key.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func checkSorted(points []Point) error {
	for i := 1; i < len(points); i++ {
		if !Day(points[i].Date).After(Day(points[i-1].Date)) {
			return fmt.Errorf("%w: %s follows %s", ErrUnsortedSeries,
				points[i].Date.Format(time.DateOnly), points[i-1].Date.Format(time.DateOnly))
		}
	}
	return nil
}

// Normalize divides every value by the first one.
func Normalize(s PriceSeries) (NormalizedSeries, error) {
	if len(s) == 0 {
		return nil, ErrInsufficientData
	}
	if err := checkSorted(s); err != nil {
		return nil, err
	}
	base := s[0].Value
	if base == 0 || math.IsNaN(base) || math.IsInf(base, 0) {
		return nil, ErrZeroBase
	}
	out := make(NormalizedSeries, len(s))
	for i, p := range s {
		out[i] = Point{Date: p.Date, Value: p.Value / base}
	}
	// x/x is 1 for every finite non-zero x, but keep the invariant explicit.
	out[0].Value = 1.0
	return out, nil
}

// PctChange returns v[t]/v[t-1] - 1 for every point after the first.
func PctChange(points []Point) ReturnSeries {
	if len(points) < 2 {
		return ReturnSeries{}
	}
	out := make(ReturnSeries, 0, len(points)-1)
	for i := 1; i < len(points); i++ {
		out = append(out, Point{
			Date:  points[i].Date,
			Value: points[i].Value/points[i-1].Value - 1,
		})
	}
	return out
}

// Round3 rounds to 3 decimals, half to even on the scaled binary value, so
// 0.5015 (stored just below the tie) rounds down to 0.501.
func Round3(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	f, _ := decimal.NewFromFloat(v * 1000).RoundBank(0).Shift(-3).Float64()
	return f
}
