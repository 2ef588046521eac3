package report

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"portfolioBenchBot/internal/analytics"
	"portfolioBenchBot/internal/finance"
)

var day0 = time.Date(2023, time.January, 2, 0, 0, 0, 0, time.UTC)

func prices(offset int, vals ...float64) analytics.PriceSeries {
	out := make(analytics.PriceSeries, len(vals))
	for i, v := range vals {
		out[i] = analytics.Point{Date: day0.AddDate(0, 0, offset+i), Value: v}
	}
	return out
}

func testResult(t *testing.T, benchmark analytics.PriceSeries) *finance.Result {
	t.Helper()
	positions, err := analytics.NewPositions([]string{"AAA", "BBB"}, []float64{1})
	if err != nil {
		t.Fatal(err)
	}
	rep, err := analytics.Analyze(analytics.Input{
		Positions: positions,
		Prices: map[string]analytics.PriceSeries{
			"AAA": prices(0, 100, 110, 121, 115, 118),
			"BBB": prices(0, 50, 45, 40.5, 44, 46),
		},
		Benchmark:  benchmark,
		Confidence: 0.95,
	})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	return &finance.Result{
		Request:   finance.Request{Symbols: []string{"AAA", "BBB"}, Amounts: []float64{1}, Start: day0, End: day0.AddDate(0, 0, 5), Confidence: 0.95},
		Benchmark: "^BVSP",
		Positions: positions,
		Report:    rep,
	}
}

func TestText(t *testing.T) {
	res := testResult(t, prices(0, 1000, 1010, 990, 1005, 1020))
	got := Text(res)

	for _, want := range []string{
		"Portfolio vs ^BVSP • 2023-01-02 → 2023-01-06 (5 days)",
		"Positions: AAA 1, BBB 1",
		"Return: portfolio +9.333% • ^BVSP +2.000%",
		fmt.Sprintf("Volatility: portfolio %.3f • ^BVSP %.3f", res.Report.Volatility.Portfolio, res.Report.Volatility.Benchmark),
		"The portfolio is " + res.Report.Volatility.Label + ".",
		fmt.Sprintf("VaR 95%% (1 day): %.3f%%", res.Report.VaR),
	} {
		if !strings.Contains(got, want) {
			t.Errorf("text is missing %q:\n%s", want, got)
		}
	}
}

func TestMarkdown(t *testing.T) {
	// the benchmark trades one extra day, so the table has a gap
	res := testResult(t, prices(0, 1000, 1010, 990, 1005, 1020, 1030))
	got := Markdown(res)

	for _, want := range []string{
		"# Portfolio vs ^BVSP",
		"6 trading days",
		"| AAA | 1 |",
		"| Total return | +9.333% | +3.000% |",
		"| Portfolio | 1.000 |",
		"| 2023-01-02 | 1.000 | 1.000 |",
		"| 2023-01-07 | n/a | 1.030 |",
		"Historical VaR at 95%",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("markdown is missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "error executing template") {
		t.Fatal(got)
	}
}

func TestRenderNilResult(t *testing.T) {
	if got := Text(nil); got != "no analysis available" {
		t.Errorf("Text(nil) = %q", got)
	}
	if got := Markdown(&finance.Result{}); got != "no analysis available" {
		t.Errorf("Markdown(empty) = %q", got)
	}
}

func TestErrorMessage(t *testing.T) {
	kinds := []error{
		finance.ErrInvalidCommand,
		finance.ErrConfidenceRange,
		finance.ErrInvalidWindow,
		analytics.ErrEmptyPortfolio,
		analytics.ErrMismatchedLength,
		analytics.ErrInvalidAmount,
		analytics.ErrInvalidConfidence,
		finance.ErrUnknownSymbol,
		finance.ErrNoData,
		analytics.ErrMissingPrices,
		analytics.ErrZeroBase,
		analytics.ErrUnsortedSeries,
		analytics.ErrInsufficientOverlap,
		analytics.ErrInsufficientData,
		context.DeadlineExceeded,
	}
	seen := map[string]error{}
	for _, kind := range kinds {
		wrapped := fmt.Errorf("failed to fetch XYZ: %w", kind)
		msg := ErrorMessage(wrapped)
		first := strings.SplitN(msg, "\n", 2)[0]
		if prev, dup := seen[first]; dup {
			t.Errorf("%v and %v share the message %q", prev, kind, first)
		}
		seen[first] = kind
		if !strings.Contains(msg, wrapped.Error()) {
			t.Errorf("message for %v should carry the error text, got %q", kind, msg)
		}
	}

	if got := ErrorMessage(finance.ErrInvalidCommand); !strings.Contains(got, usageHint) {
		t.Errorf("command errors should show usage, got %q", got)
	}
	if got := ErrorMessage(errors.New("boom")); got != "Analysis failed: boom" {
		t.Errorf("fallback message = %q", got)
	}
	if ErrorMessage(nil) != "" {
		t.Error("nil error should map to an empty message")
	}
}
