package finance

import (
	"math"
	"time"

	"portfolioBenchBot/internal/analytics"
)

// toDailySeries turns raw bars into one point per exchange-local trading day
// within [start, end). Missing (null) and non-positive closes are dropped,
// and when a day appears twice the later bar wins.
func toDailySeries(ts []int64, cl []float64, loc *time.Location, start, end time.Time) analytics.PriceSeries {
	if len(ts) != len(cl) {
		n := len(ts)
		if len(cl) < n {
			n = len(cl)
		}
		ts = ts[:n]
		cl = cl[:n]
	}
	from, until := analytics.Day(start), analytics.Day(end)
	out := make(analytics.PriceSeries, 0, len(ts))
	for i := 0; i < len(ts); i++ {
		v := cl[i]
		if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		day := analytics.Day(time.Unix(ts[i], 0).In(loc))
		if day.Before(from) || !day.Before(until) {
			continue
		}
		if n := len(out); n > 0 && !day.After(out[n-1].Date) {
			if day.Equal(out[n-1].Date) {
				out[n-1].Value = v
			}
			continue
		}
		out = append(out, analytics.Point{Date: day, Value: v})
	}
	return out
}
