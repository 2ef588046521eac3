// Package analytics computes portfolio-versus-benchmark statistics from
// already-fetched daily price series. It performs no I/O.
package analytics

import "fmt"

// Input is everything Analyze needs. Prices must hold a series for every
// position identifier.
type Input struct {
	Positions  []Position
	Prices     map[string]PriceSeries
	Benchmark  PriceSeries
	Confidence float64
}

// Report is the full set of outputs handed to the presentation layer.
type Report struct {
	Portfolio   NormalizedSeries
	Benchmark   NormalizedSeries
	Comparison  *Comparison
	Volatility  VolatilityReport
	Confidence  float64
	VaR         float64
	Correlation *CorrelationMatrix
}

// Analyze runs valuation, comparison, volatility, VaR and correlation in
// order. The first failure is returned as is, with no partial report.
func Analyze(in Input) (*Report, error) {
	if len(in.Positions) == 0 {
		return nil, ErrEmptyPortfolio
	}
	if err := ValidateConfidence(in.Confidence); err != nil {
		return nil, err
	}

	portfolio, err := ValuePortfolio(in.Prices, in.Positions)
	if err != nil {
		return nil, fmt.Errorf("portfolio valuation: %w", err)
	}

	cmp, err := Compare(portfolio, in.Benchmark)
	if err != nil {
		return nil, fmt.Errorf("benchmark comparison: %w", err)
	}

	vol, err := Volatility(cmp.Portfolio, cmp.Benchmark)
	if err != nil {
		return nil, err
	}

	v, err := ValueAtRisk(portfolio, in.Confidence)
	if err != nil {
		return nil, fmt.Errorf("value at risk: %w", err)
	}

	corr, err := CorrelateReturns(
		[]string{PortfolioColumn, BenchmarkColumn},
		PctChange(cmp.Portfolio),
		PctChange(cmp.Benchmark),
	)
	if err != nil {
		return nil, fmt.Errorf("return correlation: %w", err)
	}

	return &Report{
		Portfolio:   portfolio,
		Benchmark:   cmp.Benchmark,
		Comparison:  cmp,
		Volatility:  vol,
		Confidence:  in.Confidence,
		VaR:         v,
		Correlation: corr,
	}, nil
}
