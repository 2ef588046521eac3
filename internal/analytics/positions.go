package analytics

import (
	"fmt"
	"math"
)

// Position pairs an instrument with the amount invested in it at day 0.
//
// Amount is applied directly as a weight on price (value = price * amount),
// not converted to a share count.
type Position struct {
	Identifier string
	Amount     float64
}

// NewPositions expands the raw identifier and amount lists into positions.
// A single amount supplied for several identifiers is broadcast to all of them.
func NewPositions(ids []string, amounts []float64) ([]Position, error) {
	if len(ids) == 0 {
		return nil, ErrEmptyPortfolio
	}
	if len(amounts) == 1 && len(ids) > 1 {
		broadcast := make([]float64, len(ids))
		for i := range broadcast {
			broadcast[i] = amounts[0]
		}
		amounts = broadcast
	}
	if len(ids) != len(amounts) {
		return nil, fmt.Errorf("%w: %d instruments, %d amounts", ErrMismatchedLength, len(ids), len(amounts))
	}

	positions := make([]Position, len(ids))
	for i, id := range ids {
		a := amounts[i]
		if a < 0 || math.IsNaN(a) || math.IsInf(a, 0) {
			return nil, fmt.Errorf("%w: %s has %v", ErrInvalidAmount, id, a)
		}
		positions[i] = Position{Identifier: id, Amount: a}
	}
	return positions, nil
}
