package report

import (
	"math"
	"time"

	"portfolioBenchBot/internal/finance"
)

// Document is the JSON shape of a result. JSON has no NaN, so missing
// values are encoded as null.
type Document struct {
	Benchmark   string          `json:"benchmark"`
	Start       string          `json:"start"`
	End         string          `json:"end"`
	Positions   []positionDTO   `json:"positions"`
	Confidence  float64         `json:"confidence"`
	VaR         float64         `json:"var"`
	Volatility  volatilityDTO   `json:"volatility"`
	Correlation correlationDTO  `json:"correlation"`
	Series      []comparisonDTO `json:"series"`
}

type positionDTO struct {
	Symbol string  `json:"symbol"`
	Amount float64 `json:"amount"`
}

type volatilityDTO struct {
	Portfolio    float64 `json:"portfolio"`
	Benchmark    float64 `json:"benchmark"`
	MoreVolatile bool    `json:"more_volatile"`
	Label        string  `json:"label"`
}

type correlationDTO struct {
	Labels       []string     `json:"labels"`
	Observations int          `json:"observations"`
	Matrix       [][]*float64 `json:"matrix"`
}

type comparisonDTO struct {
	Date      string   `json:"date"`
	Portfolio *float64 `json:"portfolio"`
	Benchmark *float64 `json:"benchmark"`
}

func nullable(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func NewDocument(res *finance.Result) Document {
	rep := res.Report
	out := Document{
		Benchmark:  res.Benchmark,
		Start:      res.Request.Start.Format(time.DateOnly),
		End:        res.Request.End.Format(time.DateOnly),
		Confidence: rep.Confidence,
		VaR:        rep.VaR,
		Volatility: volatilityDTO{
			Portfolio:    rep.Volatility.Portfolio,
			Benchmark:    rep.Volatility.Benchmark,
			MoreVolatile: rep.Volatility.MoreVolatile,
			Label:        rep.Volatility.Label,
		},
	}
	for _, p := range res.Positions {
		out.Positions = append(out.Positions, positionDTO{Symbol: p.Identifier, Amount: p.Amount})
	}
	if c := rep.Correlation; c != nil {
		out.Correlation.Labels = c.Labels
		out.Correlation.Observations = c.Observations
		for _, row := range c.Rows() {
			cells := make([]*float64, len(row))
			for j, v := range row {
				cells[j] = nullable(v)
			}
			out.Correlation.Matrix = append(out.Correlation.Matrix, cells)
		}
	}
	if rep.Comparison != nil {
		for _, row := range rep.Comparison.Rows {
			out.Series = append(out.Series, comparisonDTO{
				Date:      row.Date.Format(time.DateOnly),
				Portfolio: nullable(row.Portfolio),
				Benchmark: nullable(row.Benchmark),
			})
		}
	}
	return out
}
