package analytics

import (
	"fmt"
	"math"
	"sort"
)

// ValueAtRisk returns the historical VaR of a normalized curve, in percent,
// rounded to 3 decimals. The sign follows the data; a loss bound is
// normally negative.
func ValueAtRisk(series NormalizedSeries, confidence float64) (float64, error) {
	if err := ValidateConfidence(confidence); err != nil {
		return 0, err
	}
	if len(series) < 2 {
		return 0, fmt.Errorf("%w: need 2 points to compute returns, got %d", ErrInsufficientData, len(series))
	}
	return HistoricalVaR(PctChange(series), confidence)
}

// HistoricalVaR takes the (1-confidence) percentile of the returns.
func HistoricalVaR(returns ReturnSeries, confidence float64) (float64, error) {
	if err := ValidateConfidence(confidence); err != nil {
		return 0, err
	}
	if len(returns) == 0 {
		return 0, fmt.Errorf("%w: no returns", ErrInsufficientData)
	}
	p := Percentile(returns.Values(), (1-confidence)*100)
	return Round3(p * 100), nil
}

// ValidateConfidence rejects levels outside the open interval (0, 1).
func ValidateConfidence(c float64) error {
	if math.IsNaN(c) || c <= 0 || c >= 1 {
		return fmt.Errorf("%w: got %v", ErrInvalidConfidence, c)
	}
	return nil
}

// Percentile interpolates linearly between the closest ranks: the value at
// rank p/100*(n-1) of the sorted sample. p is clamped to [0, 100].
func Percentile(sample []float64, p float64) float64 {
	if len(sample) == 0 {
		return math.NaN()
	}
	vals := make([]float64, len(sample))
	copy(vals, sample)
	sort.Float64s(vals)

	if p <= 0 {
		return vals[0]
	}
	if p >= 100 {
		return vals[len(vals)-1]
	}
	pos := p / 100 * float64(len(vals)-1)
	lo := int(pos)
	hi := lo + 1
	if hi >= len(vals) {
		return vals[lo]
	}
	frac := pos - float64(lo)
	return vals[lo] + (vals[hi]-vals[lo])*frac
}
