package finance

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"portfolioBenchBot/internal/analytics"
)

// PriceProvider returns adjusted close series keyed by symbol. Series are
// daily and cover [start, end).
type PriceProvider interface {
	FetchAdjustedClose(ctx context.Context, symbols []string, start, end time.Time) (map[string]analytics.PriceSeries, error)
}

// YahooClient reads daily bars from the Yahoo Finance chart API.
type YahooClient struct {
	httpClient *http.Client
	baseURLs   []string
	backoffs   []time.Duration
	log        zerolog.Logger
}

type YahooOption func(*YahooClient)

// WithBaseURLs replaces the Yahoo hosts, e.g. to point at a test server.
func WithBaseURLs(urls ...string) YahooOption {
	return func(c *YahooClient) { c.baseURLs = urls }
}

func WithHTTPClient(hc *http.Client) YahooOption {
	return func(c *YahooClient) { c.httpClient = hc }
}

func WithBackoffs(b ...time.Duration) YahooOption {
	return func(c *YahooClient) { c.backoffs = b }
}

func NewYahooClient(log zerolog.Logger, opts ...YahooOption) *YahooClient {
	c := &YahooClient{
		httpClient: &http.Client{Timeout: 20 * time.Second},
		baseURLs:   []string{"https://query1.finance.yahoo.com", "https://query2.finance.yahoo.com"},
		backoffs:   []time.Duration{200 * time.Millisecond, 500 * time.Millisecond, 1 * time.Second},
		log:        log.With().Str("component", "yahoo").Logger(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// FetchAdjustedClose fetches every symbol in turn and fails on the first error.
func (c *YahooClient) FetchAdjustedClose(ctx context.Context, symbols []string, start, end time.Time) (map[string]analytics.PriceSeries, error) {
	out := make(map[string]analytics.PriceSeries, len(symbols))
	for _, symbol := range symbols {
		if _, done := out[symbol]; done {
			continue
		}
		series, err := c.fetchDaily(ctx, symbol, start, end)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch %s: %w", symbol, err)
		}
		c.log.Debug().Str("symbol", symbol).Int("points", len(series)).Msg("fetched daily series")
		out[symbol] = series
	}
	return out, nil
}
