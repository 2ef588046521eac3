package analytics

import (
	"errors"
	"math"
	"testing"
)

func TestAnalyzeEndToEnd(t *testing.T) {
	in := Input{
		Positions: []Position{{"AAA", 1}, {"BBB", 1}},
		Prices: map[string]PriceSeries{
			"AAA": PriceSeries(series(t, 0, 100, 110, 121, 118, 125)),
			"BBB": PriceSeries(series(t, 0, 50, 45, 40.5, 42, 41)),
		},
		Benchmark:  PriceSeries(series(t, 0, 1000, 1010, 1005, 1020, 1030)),
		Confidence: 0.95,
	}

	r, err := Analyze(in)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	if r.Portfolio[0].Value != 1 || r.Benchmark[0].Value != 1 {
		t.Errorf("normalized curves must start at 1: %v / %v", r.Portfolio[0].Value, r.Benchmark[0].Value)
	}
	assertClose(t, "portfolio[1]", 155.0/150.0, r.Portfolio[1].Value, 1e-12)
	assertClose(t, "benchmark[4]", 1.03, r.Benchmark[4].Value, 1e-12)

	if got := r.Comparison.Columns; got != [2]string{"Portfolio", "Benchmark"} {
		t.Errorf("unexpected columns %v", got)
	}
	if len(r.Comparison.Rows) != 5 || !r.Comparison.Aligned() {
		t.Errorf("expected 5 aligned rows, got %d (aligned=%v)", len(r.Comparison.Rows), r.Comparison.Aligned())
	}

	if r.Volatility.Portfolio < 0 || r.Volatility.Benchmark < 0 {
		t.Errorf("volatility must be non-negative: %+v", r.Volatility)
	}
	if r.Volatility.Label == "" {
		t.Error("volatility label missing")
	}

	expectedVaR, _ := HistoricalVaR(PctChange(r.Portfolio), 0.95)
	if r.VaR != expectedVaR || r.Confidence != 0.95 {
		t.Errorf("VaR = %v at %v, want %v at 0.95", r.VaR, r.Confidence, expectedVaR)
	}

	if r.Correlation.Dim() != 2 || r.Correlation.Observations != 4 {
		t.Fatalf("unexpected correlation shape: %d x %d obs", r.Correlation.Dim(), r.Correlation.Observations)
	}
	pb, _ := r.Correlation.Get(PortfolioColumn, BenchmarkColumn)
	bp, _ := r.Correlation.Get(BenchmarkColumn, PortfolioColumn)
	if math.Abs(pb-bp) > 1e-12 || math.Abs(pb) > 1 {
		t.Errorf("bad correlation %v / %v", pb, bp)
	}
}

func TestAnalyzeBenchmarkGap(t *testing.T) {
	bench := PriceSeries(series(t, 0, 10, 11, 12, 13))
	// benchmark skips day 2
	bench = append(bench[:2:2], bench[3])

	r, err := Analyze(Input{
		Positions:  []Position{{"AAA", 2}},
		Prices:     map[string]PriceSeries{"AAA": PriceSeries(series(t, 0, 5, 6, 7, 8))},
		Benchmark:  bench,
		Confidence: 0.9,
	})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if r.Comparison.Aligned() {
		t.Error("comparison should report the missing benchmark day")
	}
	if !math.IsNaN(r.Comparison.Rows[2].Benchmark) {
		t.Errorf("missing benchmark value should be NaN, got %v", r.Comparison.Rows[2].Benchmark)
	}
	// returns dated day 1 and day 3 on the benchmark; day 1 and 3 overlap
	if r.Correlation.Observations != 2 {
		t.Errorf("expected 2 overlapping returns, got %d", r.Correlation.Observations)
	}
}

func TestAnalyzeErrors(t *testing.T) {
	prices := map[string]PriceSeries{"AAA": PriceSeries(series(t, 0, 1, 2, 3))}
	bench := PriceSeries(series(t, 0, 1, 2, 3))

	cases := []struct {
		name string
		in   Input
		err  error
	}{
		{"empty", Input{Prices: prices, Benchmark: bench, Confidence: 0.95}, ErrEmptyPortfolio},
		{"confidence", Input{Positions: []Position{{"AAA", 1}}, Prices: prices, Benchmark: bench, Confidence: 1}, ErrInvalidConfidence},
		{"missing", Input{Positions: []Position{{"BBB", 1}}, Prices: prices, Benchmark: bench, Confidence: 0.95}, ErrMissingPrices},
		{"short", Input{
			Positions:  []Position{{"AAA", 1}},
			Prices:     map[string]PriceSeries{"AAA": PriceSeries(series(t, 0, 1))},
			Benchmark:  bench,
			Confidence: 0.95,
		}, ErrInsufficientData},
		{"overlap", Input{
			Positions:  []Position{{"AAA", 1}},
			Prices:     prices,
			Benchmark:  PriceSeries(series(t, 2, 1, 2, 3)),
			Confidence: 0.95,
		}, ErrInsufficientOverlap},
		{"no benchmark", Input{Positions: []Position{{"AAA", 1}}, Prices: prices, Confidence: 0.95}, ErrInsufficientData},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, err := Analyze(c.in)
			if !errors.Is(err, c.err) {
				t.Fatalf("expected %v, got %v", c.err, err)
			}
			if r != nil {
				t.Error("no partial report expected on failure")
			}
		})
	}
}
