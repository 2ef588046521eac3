// Package report turns analysis results into text for people: markdown for
// terminals and plain text for chat.
package report

import (
	"embed"
	"fmt"
	"math"
	"strings"
	"text/template"
	"time"

	"github.com/shopspring/decimal"

	"portfolioBenchBot/internal/analytics"
	"portfolioBenchBot/internal/finance"
)

//go:embed templates/*
var templates embed.FS

var funcs = template.FuncMap{
	"num":    num,
	"pct":    pct,
	"signed": signed,
	"amount": amount,
}

var (
	markdownTmpl = template.Must(template.New("analysis.md").Funcs(funcs).ParseFS(templates, "templates/analysis.md"))
	textTmpl     = template.Must(template.New("analysis.txt").Funcs(funcs).ParseFS(templates, "templates/analysis.txt"))
)

// view is the flattened, template-friendly shape of a finance.Result.
type view struct {
	Benchmark       string
	Symbols         string
	Start, End      string
	Days            int
	Positions       []analytics.Position
	Volatility      analytics.VolatilityReport
	Confidence      float64
	VaR             float64
	ReturnPortfolio float64
	ReturnBenchmark float64
	Correlation     float64
	Labels          []string
	Matrix          [][]float64
	Rows            []analytics.ComparisonRow
	Gaps            bool
}

func newView(res *finance.Result) *view {
	r := res.Report
	v := &view{
		Benchmark:       res.Benchmark,
		Symbols:         strings.Join(res.Request.Symbols, ", "),
		Positions:       res.Positions,
		Volatility:      r.Volatility,
		Confidence:      r.Confidence,
		VaR:             r.VaR,
		ReturnPortfolio: totalReturn(r.Portfolio),
		ReturnBenchmark: totalReturn(r.Benchmark),
		Correlation:     math.NaN(),
	}
	if cmp := r.Comparison; cmp != nil && len(cmp.Rows) > 0 {
		v.Start = cmp.Rows[0].Date.Format(time.DateOnly)
		v.End = cmp.Rows[len(cmp.Rows)-1].Date.Format(time.DateOnly)
		v.Days = len(cmp.Rows)
		v.Rows = cmp.Rows
		v.Gaps = !cmp.Aligned()
	}
	if c := r.Correlation; c != nil {
		v.Labels = make([]string, len(c.Labels))
		for i, l := range c.Labels {
			v.Labels[i] = l
			if l == analytics.BenchmarkColumn {
				v.Labels[i] = res.Benchmark
			}
		}
		v.Matrix = c.Rows()
		if x, ok := c.Get(analytics.PortfolioColumn, analytics.BenchmarkColumn); ok {
			v.Correlation = x
		}
	}
	return v
}

// Markdown renders the full report, including the day-by-day comparison
// table. Intended for terminals (see glamour) and files.
func Markdown(res *finance.Result) string {
	return execute(markdownTmpl, res)
}

// Text renders a compact plain-text summary suitable for a chat message.
func Text(res *finance.Result) string {
	return execute(textTmpl, res)
}

func execute(t *template.Template, res *finance.Result) string {
	if res == nil || res.Report == nil {
		return "no analysis available"
	}
	var b strings.Builder
	if err := t.Execute(&b, newView(res)); err != nil {
		return fmt.Sprintf("error executing template %q: %v", t.Name(), err)
	}
	return b.String()
}

// totalReturn is last/first - 1 of a normalized curve, in percent.
func totalReturn(s analytics.NormalizedSeries) float64 {
	if len(s) == 0 {
		return math.NaN()
	}
	return (s[len(s)-1].Value/s[0].Value - 1) * 100
}

func num(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "n/a"
	}
	return decimal.NewFromFloat(v).StringFixedBank(3)
}

func signed(v float64) string {
	s := num(v)
	if s != "n/a" && v >= 0 {
		return "+" + s
	}
	return s
}

// pct formats a confidence level as a whole percentage.
func pct(c float64) string {
	return decimal.NewFromFloat(c).Shift(2).Round(1).String() + "%"
}

func amount(v float64) string {
	return decimal.NewFromFloat(v).Round(2).String()
}
