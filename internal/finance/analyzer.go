package finance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"portfolioBenchBot/internal/analytics"
)

const DefaultBenchmark = "^BVSP"

var ErrInvalidWindow = errors.New("start date must be before end date")

// Analyzer validates a Request, fetches its prices and runs the analytics.
type Analyzer struct {
	provider  PriceProvider
	benchmark string
	log       zerolog.Logger
}

func NewAnalyzer(provider PriceProvider, benchmark string, log zerolog.Logger) *Analyzer {
	if benchmark == "" {
		benchmark = DefaultBenchmark
	}
	return &Analyzer{
		provider:  provider,
		benchmark: benchmark,
		log:       log.With().Str("component", "analyzer").Logger(),
	}
}

// Benchmark returns the default benchmark symbol.
func (a *Analyzer) Benchmark() string { return a.benchmark }

// Run validates everything that can be validated before touching the
// provider, then fetches and analyzes.
func (a *Analyzer) Run(ctx context.Context, req Request) (*Result, error) {
	start := time.Now()

	if req.Start.IsZero() || req.End.IsZero() {
		return nil, fmt.Errorf("%w: both dates are required", ErrInvalidWindow)
	}
	if !analytics.Day(req.Start).Before(analytics.Day(req.End)) {
		return nil, fmt.Errorf("%w: %s >= %s", ErrInvalidWindow,
			req.Start.Format(time.DateOnly), req.End.Format(time.DateOnly))
	}
	positions, err := analytics.NewPositions(req.Symbols, req.Amounts)
	if err != nil {
		return nil, err
	}
	if err := analytics.ValidateConfidence(req.Confidence); err != nil {
		return nil, err
	}

	benchmark := req.Benchmark
	if benchmark == "" {
		benchmark = a.benchmark
	}
	log := a.log.With().Strs("symbols", req.Symbols).Str("benchmark", benchmark).Logger()

	log.Info().Msg("fetching prices")
	symbols := append(append([]string(nil), req.Symbols...), benchmark)
	prices, err := a.provider.FetchAdjustedClose(ctx, symbols, req.Start, req.End)
	if err != nil {
		log.Error().Err(err).Dur("elapsed", time.Since(start)).Msg("price fetch failed")
		return nil, err
	}
	bench, ok := prices[benchmark]
	if !ok {
		return nil, fmt.Errorf("%w for benchmark %s", ErrNoData, benchmark)
	}

	log.Debug().Dur("elapsed", time.Since(start)).Msg("running analytics")
	report, err := analytics.Analyze(analytics.Input{
		Positions:  positions,
		Prices:     prices,
		Benchmark:  bench,
		Confidence: req.Confidence,
	})
	if err != nil {
		log.Warn().Err(err).Msg("analysis rejected input")
		return nil, err
	}

	log.Info().
		Float64("var", report.VaR).
		Float64("vol_portfolio", report.Volatility.Portfolio).
		Float64("vol_benchmark", report.Volatility.Benchmark).
		Dur("elapsed", time.Since(start)).
		Msg("analysis completed")

	return &Result{
		Request:   req,
		Benchmark: benchmark,
		Positions: positions,
		Report:    report,
	}, nil
}
