package cli

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"portfolioBenchBot/internal/analytics"
)

// pricesMarkdown lays the series out as a date by symbol table. Days a symbol
// did not trade are left blank.
func pricesMarkdown(symbols []string, prices map[string]analytics.PriceSeries) string {
	byDay := map[time.Time]map[string]float64{}
	for _, s := range symbols {
		for _, p := range prices[s] {
			d := analytics.Day(p.Date)
			if byDay[d] == nil {
				byDay[d] = map[string]float64{}
			}
			byDay[d][s] = p.Value
		}
	}
	days := make([]time.Time, 0, len(byDay))
	for d := range byDay {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	var b strings.Builder
	b.WriteString("# Adjusted closes\n\n| Date |")
	for _, s := range symbols {
		b.WriteString(" " + s + " |")
	}
	b.WriteString("\n|:-----|" + strings.Repeat("-----:|", len(symbols)) + "\n")
	for _, d := range days {
		b.WriteString("| " + d.Format(time.DateOnly) + " |")
		for _, s := range symbols {
			if v, ok := byDay[d][s]; ok {
				b.WriteString(" " + decimal.NewFromFloat(v).StringFixed(2) + " |")
			} else {
				b.WriteString("  |")
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}
