package analytics

import (
	"math"
	"sort"
	"time"
)

const (
	PortfolioColumn = "Portfolio"
	BenchmarkColumn = "Benchmark"
)

// ComparisonRow is one date of the side-by-side table. A side that has no
// observation on that date is NaN.
type ComparisonRow struct {
	Date      time.Time
	Portfolio float64
	Benchmark float64
}

// Comparison aligns the portfolio and benchmark normalized series by date.
type Comparison struct {
	Columns   [2]string
	Rows      []ComparisonRow
	Portfolio NormalizedSeries
	Benchmark NormalizedSeries
}

// Compare normalizes the benchmark and lays it next to the portfolio curve.
// Calendars are expected to be aligned upstream; dates present on one side
// only are kept with a NaN on the other.
func Compare(portfolio NormalizedSeries, benchmark PriceSeries) (*Comparison, error) {
	if len(portfolio) == 0 {
		return nil, ErrInsufficientData
	}
	if err := checkSorted(portfolio); err != nil {
		return nil, err
	}
	bench, err := Normalize(benchmark)
	if err != nil {
		return nil, err
	}

	rows := map[time.Time]*ComparisonRow{}
	row := func(t time.Time) *ComparisonRow {
		day := Day(t)
		r, ok := rows[day]
		if !ok {
			r = &ComparisonRow{Date: day, Portfolio: math.NaN(), Benchmark: math.NaN()}
			rows[day] = r
		}
		return r
	}
	for _, p := range portfolio {
		row(p.Date).Portfolio = p.Value
	}
	for _, p := range bench {
		row(p.Date).Benchmark = p.Value
	}

	out := make([]ComparisonRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })

	return &Comparison{
		Columns:   [2]string{PortfolioColumn, BenchmarkColumn},
		Rows:      out,
		Portfolio: portfolio,
		Benchmark: bench,
	}, nil
}

// Aligned reports whether every row has both sides present.
func (c *Comparison) Aligned() bool {
	for _, r := range c.Rows {
		if math.IsNaN(r.Portfolio) || math.IsNaN(r.Benchmark) {
			return false
		}
	}
	return true
}
