package analytics

import (
	"fmt"
	"time"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// CorrelationMatrix is a labeled Pearson correlation matrix.
type CorrelationMatrix struct {
	Labels       []string
	Observations int
	m            *mat.SymDense
}

// Dim returns the number of series.
func (c *CorrelationMatrix) Dim() int { return len(c.Labels) }

// At returns the coefficient between series i and j.
func (c *CorrelationMatrix) At(i, j int) float64 { return c.m.At(i, j) }

// Get returns the coefficient between two labeled series.
func (c *CorrelationMatrix) Get(a, b string) (float64, bool) {
	i, j := c.index(a), c.index(b)
	if i < 0 || j < 0 {
		return 0, false
	}
	return c.m.At(i, j), true
}

func (c *CorrelationMatrix) index(label string) int {
	for i, l := range c.Labels {
		if l == label {
			return i
		}
	}
	return -1
}

// Rows copies the matrix out as a dense table.
func (c *CorrelationMatrix) Rows() [][]float64 {
	n := c.Dim()
	out := make([][]float64, n)
	for i := 0; i < n; i++ {
		out[i] = make([]float64, n)
		for j := 0; j < n; j++ {
			out[i][j] = c.m.At(i, j)
		}
	}
	return out
}

// CorrelateReturns inner-joins the return series by date and computes their
// Pearson correlation matrix. The diagonal is exactly 1. Off-diagonal entries
// involving a constant series are NaN.
func CorrelateReturns(labels []string, series ...ReturnSeries) (*CorrelationMatrix, error) {
	if len(labels) != len(series) {
		return nil, fmt.Errorf("%w: %d labels, %d series", ErrMismatchedLength, len(labels), len(series))
	}
	if len(series) == 0 {
		return nil, ErrInsufficientOverlap
	}

	dates := commonDates(series)
	if len(dates) < 2 {
		return nil, fmt.Errorf("%w: %d common dates", ErrInsufficientOverlap, len(dates))
	}

	// observations in rows, series in columns
	data := mat.NewDense(len(dates), len(series), nil)
	for j, s := range series {
		byDay := make(map[time.Time]float64, len(s))
		for _, p := range s {
			byDay[Day(p.Date)] = p.Value
		}
		for i, d := range dates {
			data.Set(i, j, byDay[d])
		}
	}

	corr := mat.NewSymDense(len(series), nil)
	stat.CorrelationMatrix(corr, data, nil)
	for i := 0; i < len(series); i++ {
		corr.SetSym(i, i, 1)
	}

	return &CorrelationMatrix{
		Labels:       append([]string(nil), labels...),
		Observations: len(dates),
		m:            corr,
	}, nil
}

// commonDates returns the days present in every series, in the order of the first.
func commonDates(series []ReturnSeries) []time.Time {
	counts := map[time.Time]int{}
	for _, s := range series {
		seen := map[time.Time]bool{}
		for _, p := range s {
			d := Day(p.Date)
			if !seen[d] {
				seen[d] = true
				counts[d]++
			}
		}
	}
	var out []time.Time
	for _, p := range series[0] {
		d := Day(p.Date)
		if counts[d] == len(series) {
			out = append(out, d)
			counts[d] = 0
		}
	}
	return out
}
