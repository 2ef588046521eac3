package finance

import (
	"errors"
	"testing"
	"time"
)

var now = time.Date(2023, time.June, 15, 18, 30, 0, 0, time.UTC)

func date(s string) time.Time {
	t, _ := time.Parse(time.DateOnly, s)
	return t
}

func TestParseAnalyzeCommand(t *testing.T) {
	cases := []struct {
		name       string
		input      string
		symbols    []string
		amounts    []float64
		start, end time.Time
		confidence float64
	}{
		{
			name:    "explicit dates",
			input:   "/analyze vale3.sa,PETR4.SA 1000,500 2023-01-02 2023-06-01",
			symbols: []string{"VALE3.SA", "PETR4.SA"}, amounts: []float64{1000, 500},
			start: date("2023-01-02"), end: date("2023-06-01"), confidence: 0.95,
		},
		{
			name:    "bot suffix and confidence",
			input:   "/analyze@CarteiraBot ITUB4.SA 1 2023-01-02 2023-03-01 0.9",
			symbols: []string{"ITUB4.SA"}, amounts: []float64{1},
			start: date("2023-01-02"), end: date("2023-03-01"), confidence: 0.9,
		},
		{
			name:    "relative window, broadcast amount, percent confidence",
			input:   "/analyze A,B,C 100 6m 99",
			symbols: []string{"A", "B", "C"}, amounts: []float64{100},
			start: date("2022-12-15"), end: date("2023-06-16"), confidence: 0.99,
		},
		{
			name:    "week window without command",
			input:   "SPY 1 2w",
			symbols: []string{"SPY"}, amounts: []float64{1},
			start: date("2023-06-01"), end: date("2023-06-16"), confidence: 0.95,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			req, err := ParseAnalyzeCommand(c.input, now, DefaultConfidence)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(req.Symbols) != len(c.symbols) {
				t.Fatalf("symbols = %v, want %v", req.Symbols, c.symbols)
			}
			for i := range c.symbols {
				if req.Symbols[i] != c.symbols[i] {
					t.Errorf("symbol %d = %s, want %s", i, req.Symbols[i], c.symbols[i])
				}
			}
			if len(req.Amounts) != len(c.amounts) {
				t.Fatalf("amounts = %v, want %v", req.Amounts, c.amounts)
			}
			for i := range c.amounts {
				if req.Amounts[i] != c.amounts[i] {
					t.Errorf("amount %d = %v, want %v", i, req.Amounts[i], c.amounts[i])
				}
			}
			if !req.Start.Equal(c.start) || !req.End.Equal(c.end) {
				t.Errorf("window [%v, %v), want [%v, %v)", req.Start, req.End, c.start, c.end)
			}
			if req.Confidence != c.confidence {
				t.Errorf("confidence = %v, want %v", req.Confidence, c.confidence)
			}
		})
	}
}

func TestParseAnalyzeCommandErrors(t *testing.T) {
	cases := map[string]error{
		"/analyze":                                  ErrInvalidCommand,
		"/analyze VALE3.SA 1000":                    ErrInvalidCommand,
		"/analyze VALE3.SA,vale3.sa 1 1y":           ErrInvalidCommand,
		"/analyze VALE3.SA abc 1y":                  ErrInvalidCommand,
		"/analyze VALE3.SA 1 2023-01-02":            ErrInvalidCommand,
		"/analyze VALE3.SA 1 2023-01-02 2023-13-01": ErrInvalidCommand,
		"/analyze VALE3.SA 1 1q":                    ErrInvalidCommand,
		"/analyze VALE3.SA 1 0y":                    ErrInvalidCommand,
		"/analyze VALE3.SA 1 1y 0.5":                ErrConfidenceRange,
		"/analyze VALE3.SA 1 1y 1":                  ErrConfidenceRange,
		"/analyze VALE3.SA 1 1y x":                  ErrInvalidCommand,
		"/analyze VALE3.SA 1 1y 0.95 extra":         ErrInvalidCommand,
	}
	for input, want := range cases {
		if _, err := ParseAnalyzeCommand(input, now, DefaultConfidence); !errors.Is(err, want) {
			t.Errorf("%q: expected %v, got %v", input, want, err)
		}
	}
}

func TestParseConfidenceBounds(t *testing.T) {
	for _, s := range []string{"0.80", "0.99", "80", "99%"} {
		if _, err := ParseConfidence(s); err != nil {
			t.Errorf("%s should be accepted: %v", s, err)
		}
	}
	for _, s := range []string{"0.79", "0.995", "100"} {
		if _, err := ParseConfidence(s); !errors.Is(err, ErrConfidenceRange) {
			t.Errorf("%s: expected ErrConfidenceRange, got %v", s, err)
		}
	}
}

func TestParseSymbolsAndAmountsKeepMismatch(t *testing.T) {
	// counts are checked by the analyzer, not the parser
	req, err := ParseAnalyzeCommand("/analyze A,B,C 1,2 1y", now, DefaultConfidence)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(req.Symbols) != 3 || len(req.Amounts) != 2 {
		t.Errorf("got %v / %v", req.Symbols, req.Amounts)
	}
}
