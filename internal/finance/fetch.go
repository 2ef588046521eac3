package finance

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"portfolioBenchBot/internal/analytics"
)

var (
	ErrUnknownSymbol = errors.New("unknown symbol")
	ErrNoData        = errors.New("no price data")
)

// fetchDaily fetches daily adjusted closes for one symbol over [start, end),
// trying every host with increasing backoff before giving up.
func (c *YahooClient) fetchDaily(ctx context.Context, symbol string, start, end time.Time) (analytics.PriceSeries, error) {
	var yc yahooChartResp
	var lastErr error
	// bars east of UTC are stamped before midnight UTC of their local day;
	// toDailySeries trims back to [start, end)
	from := start.AddDate(0, 0, -1)
	for attempt := 0; attempt < len(c.backoffs)+1; attempt++ {
		for _, base := range c.baseURLs {
			u := fmt.Sprintf("%s/v8/finance/chart/%s?period1=%d&period2=%d&interval=1d&events=div,splits&includeAdjustedClose=true",
				base, url.PathEscape(symbol), from.Unix(), end.Unix())
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
			if err != nil {
				return nil, err
			}
			req.Header.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.4 Safari/605.1.15")
			req.Header.Set("Accept", "application/json, text/javascript, */*; q=0.01")
			req.Header.Set("Accept-Language", "en-US,en;q=0.9")
			resp, err := c.httpClient.Do(req)
			if err != nil {
				if ctx.Err() != nil {
					return nil, ctx.Err()
				}
				lastErr = err
				continue
			}
			body, readErr := io.ReadAll(resp.Body)
			resp.Body.Close()
			if readErr != nil {
				lastErr = fmt.Errorf("failed to read yahoo response: %w", readErr)
				continue
			}
			if resp.StatusCode == http.StatusNotFound {
				return nil, fmt.Errorf("%w: %s", ErrUnknownSymbol, symbol)
			}
			if resp.StatusCode == http.StatusTooManyRequests || strings.HasPrefix(string(body), "Edge: Too Many Requests") {
				lastErr = fmt.Errorf("yahoo %s returned 429: Edge: Too Many Requests", base)
				continue
			}
			if resp.StatusCode != http.StatusOK {
				lastErr = fmt.Errorf("yahoo %s returned %d: %s", base, resp.StatusCode, preview(body))
				continue
			}
			if strings.HasPrefix(string(body), "<") || strings.HasPrefix(string(body), "Edge:") {
				lastErr = fmt.Errorf("yahoo returned non-json body: %s", preview(body))
				continue
			}
			if err := json.Unmarshal(body, &yc); err != nil {
				lastErr = fmt.Errorf("failed to parse yahoo json: %v; body: %s", err, preview(body))
				continue
			}
			lastErr = nil
			break
		}
		if lastErr == nil {
			break
		}
		if attempt < len(c.backoffs) {
			c.log.Debug().Str("symbol", symbol).Int("attempt", attempt+1).Err(lastErr).Msg("yahoo fetch failed, backing off")
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.backoffs[attempt]):
			}
		}
	}
	if lastErr != nil {
		return nil, lastErr
	}

	if yc.Chart.Error != nil {
		return nil, fmt.Errorf("%w: %s: %s", ErrUnknownSymbol, symbol, yc.Chart.Error.Description)
	}
	if len(yc.Chart.Result) == 0 {
		return nil, fmt.Errorf("%w for %s", ErrNoData, symbol)
	}
	res := yc.Chart.Result[0]

	// prefer the split/dividend adjusted column; indices only carry close
	var closes []float64
	if len(res.Indicators.AdjClose) > 0 && len(res.Indicators.AdjClose[0].AdjClose) > 0 {
		closes = res.Indicators.AdjClose[0].AdjClose
	} else if len(res.Indicators.Quote) > 0 {
		closes = res.Indicators.Quote[0].Close
	}
	loc := exchangeLocation(res.Meta.ExchangeTimezoneName, res.Meta.Timezone, res.Meta.GmtOffset)
	series := toDailySeries(res.Timestamp, closes, loc, start, end)
	if len(series) == 0 {
		return nil, fmt.Errorf("%w for %s between %s and %s", ErrNoData, symbol,
			start.Format(time.DateOnly), end.Format(time.DateOnly))
	}
	return series, nil
}

func preview(body []byte) string {
	s := string(body)
	if len(s) > 120 {
		s = s[:120]
	}
	return s
}
