package finance

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"portfolioBenchBot/internal/analytics"
	"portfolioBenchBot/internal/storage"
)

// PriceStore is the persistence side of CachedProvider; *storage.Store implements it.
type PriceStore interface {
	CoveringWindow(symbol string, start, end time.Time) (bool, error)
	LoadPrices(symbol string, start, end time.Time) ([]storage.PricePoint, error)
	SavePrices(symbol string, start, end time.Time, points []storage.PricePoint) error
}

// CachedProvider serves symbols whose window was fetched before from the
// store and forwards the rest to the wrapped provider. Only completed days
// are stored: a window ending after today always goes upstream.
type CachedProvider struct {
	next  PriceProvider
	store PriceStore
	log   zerolog.Logger
	now   func() time.Time
}

func NewCachedProvider(next PriceProvider, store PriceStore, log zerolog.Logger) *CachedProvider {
	return &CachedProvider{
		next:  next,
		store: store,
		log:   log.With().Str("component", "price_cache").Logger(),
		now:   time.Now,
	}
}

func (p *CachedProvider) FetchAdjustedClose(ctx context.Context, symbols []string, start, end time.Time) (map[string]analytics.PriceSeries, error) {
	start, end = analytics.Day(start), analytics.Day(end)
	today := analytics.Day(p.now())
	// today's session may still be trading
	settled := end
	if settled.After(today) {
		settled = today
	}
	out := make(map[string]analytics.PriceSeries, len(symbols))
	var misses []string

	for _, symbol := range symbols {
		if end.After(today) {
			misses = append(misses, symbol)
			continue
		}
		covered, err := p.store.CoveringWindow(symbol, start, end)
		if err != nil {
			// a broken cache must not block analysis
			p.log.Warn().Err(err).Str("symbol", symbol).Msg("price cache lookup failed")
			covered = false
		}
		if covered {
			points, err := p.store.LoadPrices(symbol, start, end)
			if err == nil && len(points) > 0 {
				out[symbol] = fromStored(points)
				continue
			}
		}
		misses = append(misses, symbol)
	}

	p.log.Debug().Int("hits", len(out)).Int("misses", len(misses)).Msg("price cache")
	if len(misses) == 0 {
		return out, nil
	}

	fetched, err := p.next.FetchAdjustedClose(ctx, misses, start, end)
	if err != nil {
		return nil, err
	}
	for symbol, series := range fetched {
		out[symbol] = series
		if !settled.After(start) {
			continue
		}
		if err := p.store.SavePrices(symbol, start, settled, toStored(series, settled)); err != nil {
			p.log.Warn().Err(err).Str("symbol", symbol).Msg("price cache write failed")
		}
	}
	return out, nil
}

func fromStored(points []storage.PricePoint) analytics.PriceSeries {
	out := make(analytics.PriceSeries, len(points))
	for i, p := range points {
		out[i] = analytics.Point{Date: p.Day, Value: p.Close}
	}
	return out
}

// toStored keeps the points strictly before until.
func toStored(series analytics.PriceSeries, until time.Time) []storage.PricePoint {
	out := make([]storage.PricePoint, 0, len(series))
	for _, p := range series {
		day := analytics.Day(p.Date)
		if !day.Before(until) {
			continue
		}
		out = append(out, storage.PricePoint{Day: day, Close: p.Value})
	}
	return out
}
