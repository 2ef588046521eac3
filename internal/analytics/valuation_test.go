package analytics

import (
	"errors"
	"math"
	"testing"
)

func TestNewPositions(t *testing.T) {
	cases := []struct {
		name    string
		ids     []string
		amounts []float64
		want    []float64
		err     error
	}{
		{"one each", []string{"A", "B"}, []float64{1, 2}, []float64{1, 2}, nil},
		{"broadcast", []string{"A", "B", "C"}, []float64{500}, []float64{500, 500, 500}, nil},
		{"single", []string{"A"}, []float64{3}, []float64{3}, nil},
		{"empty", nil, nil, nil, ErrEmptyPortfolio},
		{"empty with amount", nil, []float64{1}, nil, ErrEmptyPortfolio},
		{"too many amounts", []string{"A"}, []float64{1, 2}, nil, ErrMismatchedLength},
		{"too few amounts", []string{"A", "B", "C"}, []float64{1, 2}, nil, ErrMismatchedLength},
		{"no amounts", []string{"A", "B"}, nil, nil, ErrMismatchedLength},
		{"negative", []string{"A"}, []float64{-1}, nil, ErrInvalidAmount},
		{"nan", []string{"A", "B"}, []float64{1, math.NaN()}, nil, ErrInvalidAmount},
		{"zero is fine", []string{"A", "B"}, []float64{0, 1}, []float64{0, 1}, nil},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := NewPositions(c.ids, c.amounts)
			if c.err != nil {
				if !errors.Is(err, c.err) {
					t.Fatalf("expected %v, got %v", c.err, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != len(c.want) {
				t.Fatalf("expected %d positions, got %d", len(c.want), len(got))
			}
			for i, p := range got {
				if p.Identifier != c.ids[i] || p.Amount != c.want[i] {
					t.Errorf("position %d: got %+v, want %s/%v", i, p, c.ids[i], c.want[i])
				}
			}
		})
	}
}

func TestValuePortfolioTwoInstruments(t *testing.T) {
	prices := map[string]PriceSeries{
		"AAA": PriceSeries(series(t, 0, 100, 110, 121)),
		"BBB": PriceSeries(series(t, 0, 50, 45, 40.5)),
	}

	raw, err := MarketValue(prices, []Position{{"AAA", 1}, {"BBB", 1}})
	if err != nil {
		t.Fatalf("MarketValue failed: %v", err)
	}
	for i, want := range []float64{150, 155, 161.5} {
		assertClose(t, "value", want, raw[i].Value, 1e-9)
	}

	got, err := ValueWithAmounts(prices, []string{"AAA", "BBB"}, []float64{1, 1})
	if err != nil {
		t.Fatalf("ValueWithAmounts failed: %v", err)
	}
	if got[0].Value != 1.0 {
		t.Errorf("first normalized value = %v, want exactly 1", got[0].Value)
	}
	for i, want := range []float64{1.0, 1.0333, 1.0767} {
		assertClose(t, "normalized", want, got[i].Value, 5e-5)
	}
}

func TestValuePortfolioUsesAmountAsWeight(t *testing.T) {
	prices := map[string]PriceSeries{
		"AAA": PriceSeries(series(t, 0, 10, 20)),
		"BBB": PriceSeries(series(t, 0, 100, 100)),
	}
	// 1000 invested in each: value = 10*1000 + 100*1000, not shares bought at day 0
	raw, err := MarketValue(prices, []Position{{"AAA", 1000}, {"BBB", 1000}})
	if err != nil {
		t.Fatalf("MarketValue failed: %v", err)
	}
	assertClose(t, "day0", 110000, raw[0].Value, 1e-9)
	assertClose(t, "day1", 120000, raw[1].Value, 1e-9)
}

func TestValuePortfolioScaledInstrumentsMatchSingle(t *testing.T) {
	base := []float64{100, 103, 99, 104.5, 110}
	scaled := make([]float64, len(base))
	for i, v := range base {
		scaled[i] = v * 0.37
	}

	single, err := ValueWithAmounts(map[string]PriceSeries{
		"AAA": PriceSeries(series(t, 0, base...)),
	}, []string{"AAA"}, []float64{1})
	if err != nil {
		t.Fatalf("single: %v", err)
	}

	multi, err := ValueWithAmounts(map[string]PriceSeries{
		"AAA": PriceSeries(series(t, 0, base...)),
		"BBB": PriceSeries(series(t, 0, scaled...)),
	}, []string{"AAA", "BBB"}, []float64{1, 1})
	if err != nil {
		t.Fatalf("multi: %v", err)
	}

	if len(single) != len(multi) {
		t.Fatalf("length mismatch: %d vs %d", len(single), len(multi))
	}
	for i := range single {
		assertClose(t, "curve", single[i].Value, multi[i].Value, 1e-12)
	}
}

func TestValuePortfolioIntersectsCalendars(t *testing.T) {
	prices := map[string]PriceSeries{
		// days 0..4
		"AAA": PriceSeries(series(t, 0, 10, 11, 12, 13, 14)),
		// days 2..6
		"BBB": PriceSeries(series(t, 2, 20, 21, 22, 23, 24)),
	}
	got, err := ValuePortfolio(prices, []Position{{"AAA", 1}, {"BBB", 1}})
	if err != nil {
		t.Fatalf("ValuePortfolio failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 common days, got %d", len(got))
	}
	if !got[0].Date.Equal(day0.AddDate(0, 0, 2)) {
		t.Errorf("first date = %v, want day 2", got[0].Date)
	}
	assertClose(t, "last", (14.0+22.0)/(12.0+20.0), got[2].Value, 1e-12)
}

func TestValuePortfolioErrors(t *testing.T) {
	prices := map[string]PriceSeries{
		"AAA": PriceSeries(series(t, 0, 10, 11)),
		"ZZZ": PriceSeries(series(t, 10, 10, 11)),
	}

	if _, err := ValueWithAmounts(prices, []string{"AAA"}, []float64{1, 2}); !errors.Is(err, ErrMismatchedLength) {
		t.Errorf("expected ErrMismatchedLength, got %v", err)
	}
	if _, err := ValueWithAmounts(prices, []string{"AAA", "ZZZ"}, []float64{1}); !errors.Is(err, ErrMismatchedLength) {
		t.Errorf("parallel lists do not broadcast: expected ErrMismatchedLength, got %v", err)
	}
	if _, err := ValueWithAmounts(prices, nil, nil); !errors.Is(err, ErrEmptyPortfolio) {
		t.Errorf("expected ErrEmptyPortfolio, got %v", err)
	}
	if _, err := ValuePortfolio(prices, nil); !errors.Is(err, ErrEmptyPortfolio) {
		t.Errorf("expected ErrEmptyPortfolio, got %v", err)
	}
	if _, err := ValuePortfolio(prices, []Position{{"NOPE", 1}}); !errors.Is(err, ErrMissingPrices) {
		t.Errorf("expected ErrMissingPrices, got %v", err)
	}
	if _, err := ValuePortfolio(prices, []Position{{"AAA", 1}, {"ZZZ", 1}}); !errors.Is(err, ErrInsufficientData) {
		t.Errorf("disjoint calendars: expected ErrInsufficientData, got %v", err)
	}
	if _, err := ValuePortfolio(prices, []Position{{"AAA", 0}}); !errors.Is(err, ErrZeroBase) {
		t.Errorf("zero weights: expected ErrZeroBase, got %v", err)
	}
}
