package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/subcommands"

	"portfolioBenchBot/internal/finance"
	"portfolioBenchBot/internal/report"
)

type fetchCmd struct {
	app     *App
	window  string
	start   string
	end     string
	raw     bool
	noCache bool
}

func (*fetchCmd) Name() string     { return "fetch" }
func (*fetchCmd) Synopsis() string { return "fetch adjusted daily closes into the price cache" }
func (*fetchCmd) Usage() string {
	return `portfolio fetch [-window 1y | -start YYYY-MM-DD -end YYYY-MM-DD] <symbol...>

Downloads adjusted daily closes from Yahoo Finance, stores them in the sqlite
price cache (DB_PATH) and prints them as a table, one column per symbol.
Later analyses over the same window are served from the cache.
`
}

func (c *fetchCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.window, "window", "1y", "Window ending today, e.g. 30d, 6m, 1y")
	f.StringVar(&c.start, "start", "", "First day (YYYY-MM-DD); overrides -window")
	f.StringVar(&c.end, "end", "", "Day after the last one (YYYY-MM-DD); defaults to tomorrow")
	f.BoolVar(&c.raw, "raw", false, "Print markdown without terminal rendering")
	f.BoolVar(&c.noCache, "no-cache", false, "Do not read or write the sqlite price cache")
}

func (c *fetchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	symbols, err := finance.ParseSymbols(strings.Join(f.Args(), ","))
	if err != nil || len(symbols) == 0 {
		fmt.Fprintln(os.Stderr, "Error: at least one symbol is required")
		return subcommands.ExitUsageError
	}
	start, end, err := c.resolveWindow()
	if err != nil {
		fmt.Fprintln(os.Stderr, report.ErrorMessage(err))
		return subcommands.ExitUsageError
	}

	provider, closeFn, err := c.app.provider(c.noCache)
	if err != nil {
		return fail("%v", err)
	}
	defer closeFn()

	ctx, cancel := withContext(ctx)
	defer cancel()
	prices, err := provider.FetchAdjustedClose(ctx, symbols, start, end)
	if err != nil {
		return fail("%s", report.ErrorMessage(err))
	}
	c.app.printMarkdown(pricesMarkdown(symbols, prices), c.raw)
	return subcommands.ExitSuccess
}

// resolveWindow resolves the flags into [start, end) by reusing the command parser.
func (c *fetchCmd) resolveWindow() (time.Time, time.Time, error) {
	args := []string{"X", "1", c.window}
	if c.start != "" {
		end := c.end
		if end == "" {
			end = time.Now().AddDate(0, 0, 1).Format(time.DateOnly)
		}
		args = []string{"X", "1", c.start, end}
	}
	req, err := finance.ParseAnalyzeCommand(strings.Join(args, " "), time.Now(), finance.DefaultConfidence)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if !req.Start.Before(req.End) {
		return time.Time{}, time.Time{}, finance.ErrInvalidWindow
	}
	return req.Start, req.End, nil
}
