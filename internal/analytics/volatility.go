package analytics

import (
	"fmt"

	"gonum.org/v1/gonum/stat"
)

const (
	MoreVolatileLabel = "more volatile than benchmark"
	LessVolatileLabel = "less or equally volatile"
)

// VolatilityReport holds the sample standard deviation of both normalized
// curves, rounded to 3 decimals.
type VolatilityReport struct {
	Portfolio    float64
	Benchmark    float64
	MoreVolatile bool
	Label        string
}

// Volatility measures the dispersion of the normalized levels (not of their
// returns) using the sample standard deviation.
func Volatility(portfolio, benchmark NormalizedSeries) (VolatilityReport, error) {
	if len(portfolio) < 2 {
		return VolatilityReport{}, fmt.Errorf("portfolio volatility: %w", ErrInsufficientData)
	}
	if len(benchmark) < 2 {
		return VolatilityReport{}, fmt.Errorf("benchmark volatility: %w", ErrInsufficientData)
	}

	v := VolatilityReport{
		Portfolio: Round3(stat.StdDev(portfolio.Values(), nil)),
		Benchmark: Round3(stat.StdDev(benchmark.Values(), nil)),
	}
	v.MoreVolatile = v.Portfolio > v.Benchmark
	v.Label = LessVolatileLabel
	if v.MoreVolatile {
		v.Label = MoreVolatileLabel
	}
	return v, nil
}
