package finance

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/vicanso/go-charts/v2"

	"portfolioBenchBot/internal/analytics"
)

// RenderComparisonChart draws the normalized portfolio and benchmark curves
// of a result as a PNG.
func RenderComparisonChart(res *Result) ([]byte, error) {
	if res == nil || res.Report == nil || res.Report.Comparison == nil {
		return nil, fmt.Errorf("no comparison to chart")
	}
	cmp := res.Report.Comparison
	if len(cmp.Rows) < 2 {
		return nil, fmt.Errorf("need at least 2 data points to chart, got %d", len(cmp.Rows))
	}

	key := chartCacheKey(res)
	if img, ok := chartImages.get(key); ok {
		return img, nil
	}

	xLabels := make([]string, len(cmp.Rows))
	portfolio := make([]float64, len(cmp.Rows))
	benchmark := make([]float64, len(cmp.Rows))
	labelFormat := "Jan 02"
	if len(cmp.Rows) > 60 {
		labelFormat = "Jan '06"
	}
	lastP, lastB := 1.0, 1.0
	for i, row := range cmp.Rows {
		xLabels[i] = row.Date.Format(labelFormat)
		// gaps are drawn flat; the table keeps them as NaN
		if !math.IsNaN(row.Portfolio) {
			lastP = row.Portfolio
		}
		if !math.IsNaN(row.Benchmark) {
			lastB = row.Benchmark
		}
		portfolio[i] = lastP
		benchmark[i] = lastB
	}
	yMin, yMax := paddedRange(0.05, portfolio, benchmark)

	title := fmt.Sprintf("Portfolio vs %s (%s)", res.Benchmark, strings.Join(res.Request.Symbols, ", "))
	subtitle := fmt.Sprintf("%s to %s | Vol: %.3f vs %.3f | VaR %.0f%%: %.3f%%",
		cmp.Rows[0].Date.Format(time.DateOnly), cmp.Rows[len(cmp.Rows)-1].Date.Format(time.DateOnly),
		res.Report.Volatility.Portfolio, res.Report.Volatility.Benchmark,
		res.Report.Confidence*100, res.Report.VaR)

	p, err := charts.LineRender(
		[][]float64{portfolio, benchmark},
		charts.TitleTextOptionFunc(title+"\n"+subtitle),
		charts.LegendLabelsOptionFunc([]string{analytics.PortfolioColumn, res.Benchmark}, charts.PositionRight),
		charts.XAxisOptionFunc(charts.XAxisOption{
			Data:        xLabels,
			SplitNumber: labelSplit(len(xLabels)),
			BoundaryGap: charts.FalseFlag(),
		}),
		charts.YAxisOptionFunc(charts.YAxisOption{
			Min:         &yMin,
			Max:         &yMax,
			DivideCount: 5,
		}),
		charts.ThemeOptionFunc(charts.ThemeDark),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}

	buf, err := p.Bytes()
	if err != nil {
		return nil, fmt.Errorf("failed to generate chart bytes: %w", err)
	}

	chartImages.put(key, buf)
	return buf, nil
}

// paddedRange returns the min and max over all series widened by frac of
// the spread, so flat lines do not sit on the frame.
func paddedRange(frac float64, series ...[]float64) (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, s := range series {
		for _, v := range s {
			lo, hi = math.Min(lo, v), math.Max(hi, v)
		}
	}
	pad := (hi - lo) * frac
	if pad == 0 {
		pad = math.Abs(hi) * frac
	}
	return lo - pad, hi + pad
}

// labelSplit picks how many x labels to show: roughly one every third point
// on short windows, 6 otherwise.
func labelSplit(points int) int {
	if points > 30 {
		return 6
	}
	return max(points/3, 3)
}

func chartCacheKey(res *Result) string {
	amounts := make([]string, len(res.Positions))
	for i, p := range res.Positions {
		amounts[i] = fmt.Sprintf("%.3f", p.Amount)
	}
	return fmt.Sprintf("cmp-%s-%s-%s-%s-%s-%.2f",
		strings.Join(res.Request.Symbols, ","), strings.Join(amounts, ","), res.Benchmark,
		res.Request.Start.Format(time.DateOnly), res.Request.End.Format(time.DateOnly), res.Report.Confidence)
}
