package report

import (
	"context"
	"errors"

	"portfolioBenchBot/internal/analytics"
	"portfolioBenchBot/internal/finance"
)

const usageHint = "Usage: /analyze SYM1,SYM2 AMOUNT1,AMOUNT2 (START END | 6m) [0.95]"

// errorMessages is checked in order; the first kind matched by errors.Is wins.
var errorMessages = []struct {
	err  error
	text string
}{
	{finance.ErrInvalidCommand, "I could not read that command."},
	{finance.ErrConfidenceRange, "Confidence must be between 80% and 99%."},
	{finance.ErrInvalidWindow, "The start date must be at least one day before the end date."},
	{analytics.ErrEmptyPortfolio, "Add at least one instrument to the portfolio."},
	{analytics.ErrMismatchedLength, "Give one amount per instrument, or a single amount for all of them."},
	{analytics.ErrInvalidAmount, "Amounts must be non-negative numbers."},
	{analytics.ErrInvalidConfidence, "Confidence must be a fraction between 0 and 1, e.g. 0.95."},
	{finance.ErrUnknownSymbol, "Yahoo Finance does not know one of the symbols."},
	{finance.ErrNoData, "No prices were found for the selected window."},
	{analytics.ErrMissingPrices, "Prices are missing for one of the instruments."},
	{analytics.ErrZeroBase, "A series starts at zero and cannot be normalized."},
	{analytics.ErrUnsortedSeries, "Price dates came back out of order."},
	{analytics.ErrInsufficientOverlap, "The instruments share fewer than 2 trading days in this window."},
	{analytics.ErrInsufficientData, "The window is too short: at least 2 trading days are needed."},
	{context.DeadlineExceeded, "Fetching prices took too long, please try again."},
}

// ErrorMessage maps an analysis error to a message for the user. The
// underlying error text is appended so the offending value is visible.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	for _, m := range errorMessages {
		if errors.Is(err, m.err) {
			msg := m.text + "\n" + err.Error()
			if errors.Is(err, finance.ErrInvalidCommand) {
				msg += "\n" + usageHint
			}
			return msg
		}
	}
	return "Analysis failed: " + err.Error()
}
