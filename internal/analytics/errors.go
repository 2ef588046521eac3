package analytics

import "errors"

// Input-validation failures. None of them are retryable: the same input
// always reproduces the same error.
var (
	ErrMismatchedLength    = errors.New("instrument and amount counts differ")
	ErrEmptyPortfolio      = errors.New("portfolio has no instruments")
	ErrInsufficientData    = errors.New("not enough data points")
	ErrInvalidConfidence   = errors.New("confidence level must lie strictly between 0 and 1")
	ErrInsufficientOverlap = errors.New("fewer than 2 overlapping dates")

	ErrInvalidAmount  = errors.New("invested amount must be a finite non-negative number")
	ErrMissingPrices  = errors.New("no price series for instrument")
	ErrUnsortedSeries = errors.New("series dates are not strictly increasing")
	ErrZeroBase       = errors.New("series starts at zero and cannot be normalized")
)
