// Package cli implements the portfolio command line: one subcommand per
// analysis task, sharing configuration and the price provider.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"

	"portfolioBenchBot/internal/config"
	"portfolioBenchBot/internal/finance"
	"portfolioBenchBot/internal/storage"
)

// App carries what every subcommand needs.
type App struct {
	Config config.Config
	Log    zerolog.Logger
	Out    io.Writer

	// NewProvider overrides the Yahoo client, for tests.
	NewProvider func() finance.PriceProvider
}

// Register adds the subcommands to c.
func Register(c *subcommands.Commander, app *App) {
	c.Register(&analyzeCmd{app: app}, "analysis")
	c.Register(&fetchCmd{app: app}, "analysis")
}

// provider returns the price source, wrapped in the sqlite cache unless
// noCache is set. The returned func releases the database.
func (a *App) provider(noCache bool) (finance.PriceProvider, func(), error) {
	var p finance.PriceProvider
	if a.NewProvider != nil {
		p = a.NewProvider()
	} else {
		p = finance.NewYahooClient(a.Log)
	}
	if noCache || a.Config.DBPath == "" {
		return p, func() {}, nil
	}

	if err := os.MkdirAll(filepath.Dir(a.Config.DBPath), 0o755); err != nil {
		return nil, nil, fmt.Errorf("cache directory: %w", err)
	}
	db, err := storage.OpenSQLite("file:" + a.Config.DBPath)
	if err != nil {
		return nil, nil, err
	}
	if err := storage.InitSchema(db); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("cache schema: %w", err)
	}
	a.Log.Debug().Str("path", a.Config.DBPath).Msg("price cache opened")
	return finance.NewCachedProvider(p, storage.NewStore(db), a.Log), func() { db.Close() }, nil
}

// printMarkdown renders md for the terminal, or writes it as is when raw.
func (a *App) printMarkdown(md string, raw bool) {
	if raw {
		fmt.Fprint(a.Out, md)
		return
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err == nil {
		var out string
		if out, err = r.Render(md); err == nil {
			fmt.Fprint(a.Out, out)
			return
		}
	}
	a.Log.Debug().Err(err).Msg("markdown rendering failed, printing raw")
	fmt.Fprint(a.Out, md)
}

func fail(format string, args ...any) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	return subcommands.ExitFailure
}

// withContext bounds a command by ctx, which main derives from signals.
func withContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, analyzeTimeout)
}
