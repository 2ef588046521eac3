package finance

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/vicanso/go-charts/v2"

	"portfolioBenchBot/internal/storage"
)

// usageRow is one command's share of all recorded commands.
type usageRow struct {
	command string
	count   int
	share   float64 // percent
	last    time.Time
}

// usageRows orders commands by count, most used first, then by name.
func usageRows(stats map[string]*storage.UsageStats) (rows []usageRow, total int) {
	for cmd, s := range stats {
		rows = append(rows, usageRow{command: cmd, count: s.Count, last: s.LastUsed})
		total += s.Count
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].count != rows[j].count {
			return rows[i].count > rows[j].count
		}
		return rows[i].command < rows[j].command
	})
	for i := range rows {
		rows[i].share = float64(rows[i].count) / float64(total) * 100
	}
	return rows, total
}

// UsageChart draws the command distribution of the last days as a pie.
func UsageChart(stats map[string]*storage.UsageStats, days int) ([]byte, error) {
	rows, _ := usageRows(stats)
	if len(rows) == 0 {
		return nil, fmt.Errorf("no usage data available")
	}

	values := make([]float64, len(rows))
	labels := make([]string, len(rows))
	for i, r := range rows {
		values[i] = float64(r.count)
		labels[i] = fmt.Sprintf("/%s (%.1f%%)", r.command, r.share)
	}

	p, err := charts.PieRender(
		values,
		charts.TitleTextOptionFunc(fmt.Sprintf("Command Usage (%d days)", days)),
		charts.LegendOptionFunc(charts.LegendOption{
			Data: labels,
			Top:  charts.PositionTop,
		}),
		charts.ThemeOptionFunc(charts.ThemeLight),
		charts.WidthOptionFunc(800),
		charts.HeightOptionFunc(600),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to render usage chart: %w", err)
	}
	return p.Bytes()
}

// UsageText summarizes the same numbers as UsageChart in plain text.
func UsageText(stats map[string]*storage.UsageStats, days int) string {
	rows, total := usageRows(stats)
	if len(rows) == 0 {
		return "No usage data available for the specified period."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Usage (%d days): %d commands\n", days, total)
	for _, r := range rows {
		fmt.Fprintf(&b, "- /%s: %d (%.1f%%), last %s\n", r.command, r.count, r.share, r.last.Format("Jan 02 15:04"))
	}
	return b.String()
}
