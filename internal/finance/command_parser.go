package finance

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Confidence bounds accepted from users; the analytics accept any level in (0, 1).
const (
	MinConfidence     = 0.80
	MaxConfidence     = 0.99
	DefaultConfidence = 0.95
)

var (
	ErrInvalidCommand  = errors.New("invalid command")
	ErrConfidenceRange = fmt.Errorf("confidence must be between %.2f and %.2f", MinConfidence, MaxConfidence)
)

// ParseAnalyzeCommand parses an analyze command string
// Format: /analyze VALE3.SA,PETR4.SA 1000,500 2023-01-02 2023-06-30 [0.95]
//
//	or: /analyze VALE3.SA,PETR4.SA 1000 6m [0.95]
//
// A single amount is applied to every symbol. Confidence may also be given
// as a percentage (95).
func ParseAnalyzeCommand(input string, now time.Time, defaultConfidence float64) (Request, error) {
	input = strings.TrimSpace(input)
	if strings.HasPrefix(input, "/") {
		// drop "/analyze" or "/analyze@SomeBot"
		if i := strings.IndexAny(input, " \t\n"); i >= 0 {
			input = input[i:]
		} else {
			input = ""
		}
	}

	parts := strings.Fields(input)
	if len(parts) < 3 {
		return Request{}, fmt.Errorf("%w: need symbols, amounts and a window", ErrInvalidCommand)
	}

	symbols, err := ParseSymbols(parts[0])
	if err != nil {
		return Request{}, err
	}
	amounts, err := ParseAmounts(parts[1])
	if err != nil {
		return Request{}, err
	}

	req := Request{Symbols: symbols, Amounts: amounts, Confidence: defaultConfidence}
	rest := parts[2:]
	if start, ok := parseDate(rest[0]); ok {
		if len(rest) < 2 {
			return Request{}, fmt.Errorf("%w: start date %s needs an end date", ErrInvalidCommand, rest[0])
		}
		end, ok := parseDate(rest[1])
		if !ok {
			return Request{}, fmt.Errorf("%w: invalid end date %q (use YYYY-MM-DD)", ErrInvalidCommand, rest[1])
		}
		req.Start, req.End = start, end
		rest = rest[2:]
	} else {
		req.Start, req.End, err = parseWindow(rest[0], now)
		if err != nil {
			return Request{}, err
		}
		rest = rest[1:]
	}

	switch len(rest) {
	case 0:
	case 1:
		c, err := ParseConfidence(rest[0])
		if err != nil {
			return Request{}, err
		}
		req.Confidence = c
	default:
		return Request{}, fmt.Errorf("%w: unexpected arguments %v", ErrInvalidCommand, rest[1:])
	}
	return req, nil
}

// ParseSymbols splits a comma or whitespace separated symbol list, upper-cases
// it and rejects duplicates. An empty list is returned as is.
func ParseSymbols(field string) ([]string, error) {
	seen := make(map[string]bool)
	var symbols []string
	for _, raw := range strings.FieldsFunc(field, isListSeparator) {
		symbol := strings.ToUpper(strings.TrimSpace(raw))
		if symbol == "" {
			continue
		}
		if seen[symbol] {
			return nil, fmt.Errorf("%w: duplicate symbol: %s", ErrInvalidCommand, symbol)
		}
		seen[symbol] = true
		symbols = append(symbols, symbol)
	}
	return symbols, nil
}

// ParseAmounts parses a comma or whitespace separated list of invested amounts.
func ParseAmounts(field string) ([]float64, error) {
	var amounts []float64
	for i, raw := range strings.FieldsFunc(field, isListSeparator) {
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid amount '%s' at position %d", ErrInvalidCommand, raw, i+1)
		}
		amounts = append(amounts, v)
	}
	return amounts, nil
}

// ParseConfidence accepts 0.95 or 95 and enforces the user-facing range.
func ParseConfidence(s string) (float64, error) {
	c, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(s), "%"), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid confidence '%s'", ErrInvalidCommand, s)
	}
	if c > 1 && c <= 100 {
		c /= 100
	}
	if c < MinConfidence-1e-9 || c > MaxConfidence+1e-9 {
		return 0, fmt.Errorf("%w, got %v", ErrConfidenceRange, c)
	}
	return c, nil
}

func isListSeparator(r rune) bool {
	return r == ',' || r == ';' || r == '\n' || r == ' ' || r == '\t'
}
