package cli

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/subcommands"

	"portfolioBenchBot/internal/finance"
	"portfolioBenchBot/internal/report"
)

const analyzeTimeout = 2 * time.Minute

type analyzeCmd struct {
	app       *App
	benchmark string
	chart     string
	asJSON    bool
	raw       bool
	noCache   bool
}

func (*analyzeCmd) Name() string     { return "analyze" }
func (*analyzeCmd) Synopsis() string { return "compare a portfolio with a benchmark" }
func (*analyzeCmd) Usage() string {
	return `portfolio analyze [-benchmark SYM] [-chart out.png] [-json] <symbols> <amounts> (<start> <end> | <window>) [confidence]

Fetches adjusted daily closes for every symbol and the benchmark, values the
portfolio as sum(price * amount), and reports total return, volatility of the
normalized curves, one-day historical VaR and the correlation of daily returns.

  symbols     comma separated, e.g. VALE3.SA,PETR4.SA
  amounts     comma separated, one per symbol or a single one for all
  start end   YYYY-MM-DD, end excluded
  window      30d, 6w, 6m, 1y... ending today
  confidence  VaR level, 0.80 to 0.99 (default from VAR_CONFIDENCE)

Example:
  portfolio analyze VALE3.SA,PETR4.SA 1000,500 2023-01-02 2023-06-30 0.95
`
}

func (c *analyzeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.benchmark, "benchmark", "", "Benchmark symbol (defaults to BENCHMARK_SYMBOL)")
	f.StringVar(&c.chart, "chart", "", "Write the comparison chart to this PNG file")
	f.BoolVar(&c.asJSON, "json", false, "Print the result as JSON")
	f.BoolVar(&c.raw, "raw", false, "Print markdown without terminal rendering")
	f.BoolVar(&c.noCache, "no-cache", false, "Bypass the sqlite price cache")
}

func (c *analyzeCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	req, err := finance.ParseAnalyzeCommand(strings.Join(f.Args(), " "), time.Now(), c.app.Config.Confidence)
	if err != nil {
		fmt.Fprintln(os.Stderr, report.ErrorMessage(err))
		return subcommands.ExitUsageError
	}
	req.Benchmark = strings.ToUpper(c.benchmark)

	provider, closeFn, err := c.app.provider(c.noCache)
	if err != nil {
		return fail("%v", err)
	}
	defer closeFn()

	ctx, cancel := withContext(ctx)
	defer cancel()
	res, err := finance.NewAnalyzer(provider, c.app.Config.Benchmark, c.app.Log).Run(ctx, req)
	if err != nil {
		return fail("%s", report.ErrorMessage(err))
	}

	if c.chart != "" {
		img, err := finance.RenderComparisonChart(res)
		if err != nil {
			return fail("chart: %v", err)
		}
		if err := os.WriteFile(c.chart, img, 0o644); err != nil {
			return fail("chart: %v", err)
		}
		c.app.Log.Info().Str("file", c.chart).Msg("chart written")
	}

	if c.asJSON {
		enc := json.NewEncoder(c.app.Out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report.NewDocument(res)); err != nil {
			return fail("%v", err)
		}
		return subcommands.ExitSuccess
	}
	c.app.printMarkdown(report.Markdown(res), c.raw)
	return subcommands.ExitSuccess
}
