package analytics

import (
	"fmt"
	"time"
)

// ValueWithAmounts is ValuePortfolio for callers holding parallel identifier
// and amount lists. The lists must have the same length; use NewPositions to
// broadcast a single amount.
func ValueWithAmounts(prices map[string]PriceSeries, ids []string, amounts []float64) (NormalizedSeries, error) {
	if len(ids) == 0 {
		return nil, ErrEmptyPortfolio
	}
	if len(ids) != len(amounts) {
		return nil, fmt.Errorf("%w: %d instruments, %d amounts", ErrMismatchedLength, len(ids), len(amounts))
	}
	positions, err := NewPositions(ids, amounts)
	if err != nil {
		return nil, err
	}
	return ValuePortfolio(prices, positions)
}

// ValuePortfolio computes sum(price_i(t) * amount_i) on every date traded by
// all positions and normalizes the result by its first value.
func ValuePortfolio(prices map[string]PriceSeries, positions []Position) (NormalizedSeries, error) {
	values, err := MarketValue(prices, positions)
	if err != nil {
		return nil, err
	}
	return Normalize(values)
}

// MarketValue returns the raw weighted-sum value series over the intersected
// trading calendar of all positions.
func MarketValue(prices map[string]PriceSeries, positions []Position) (PriceSeries, error) {
	if len(positions) == 0 {
		return nil, ErrEmptyPortfolio
	}

	lookups := make([]map[time.Time]float64, len(positions))
	for i, pos := range positions {
		series, ok := prices[pos.Identifier]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingPrices, pos.Identifier)
		}
		if err := checkSorted(series); err != nil {
			return nil, fmt.Errorf("%s: %w", pos.Identifier, err)
		}
		m := make(map[time.Time]float64, len(series))
		for _, p := range series {
			m[Day(p.Date)] = p.Value
		}
		lookups[i] = m
	}

	// the first position's order drives the calendar; other positions only filter it
	base := prices[positions[0].Identifier]
	out := make(PriceSeries, 0, len(base))
	for _, p := range base {
		day := Day(p.Date)
		total := 0.0
		traded := true
		for i, pos := range positions {
			price, ok := lookups[i][day]
			if !ok {
				traded = false
				break
			}
			total += price * pos.Amount
		}
		if traded {
			out = append(out, Point{Date: day, Value: total})
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: instruments share no trading dates", ErrInsufficientData)
	}
	return out, nil
}
