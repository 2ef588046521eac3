package analytics

import (
	"errors"
	"testing"
	"time"
)

func TestNormalizeStartsAtOne(t *testing.T) {
	cases := [][]float64{
		{100, 110, 121},
		{0.3, 0.1, 0.7},
		{42},
		{1e-9, 2e-9},
	}
	for _, vals := range cases {
		got, err := Normalize(PriceSeries(series(t, 0, vals...)))
		if err != nil {
			t.Fatalf("Normalize(%v) failed: %v", vals, err)
		}
		if got[0].Value != 1.0 {
			t.Errorf("Normalize(%v)[0] = %v, want exactly 1", vals, got[0].Value)
		}
		for i := range vals {
			assertClose(t, "ratio", vals[i]/vals[0], got[i].Value, 1e-12)
		}
	}
}

func TestNormalizeErrors(t *testing.T) {
	if _, err := Normalize(nil); !errors.Is(err, ErrInsufficientData) {
		t.Errorf("empty series: expected ErrInsufficientData, got %v", err)
	}
	if _, err := Normalize(PriceSeries(series(t, 0, 0, 1, 2))); !errors.Is(err, ErrZeroBase) {
		t.Errorf("zero base: expected ErrZeroBase, got %v", err)
	}

	unsorted := PriceSeries{
		{Date: day0.AddDate(0, 0, 1), Value: 1},
		{Date: day0, Value: 2},
	}
	if _, err := Normalize(unsorted); !errors.Is(err, ErrUnsortedSeries) {
		t.Errorf("unsorted: expected ErrUnsortedSeries, got %v", err)
	}

	duplicate := PriceSeries{
		{Date: day0, Value: 1},
		{Date: day0.Add(3 * time.Hour), Value: 2},
	}
	if _, err := Normalize(duplicate); !errors.Is(err, ErrUnsortedSeries) {
		t.Errorf("same day twice: expected ErrUnsortedSeries, got %v", err)
	}
}

func TestPctChange(t *testing.T) {
	got := PctChange(series(t, 0, 100, 110, 99))
	if len(got) != 2 {
		t.Fatalf("expected 2 returns, got %d", len(got))
	}
	assertClose(t, "r1", 0.10, got[0].Value, 1e-12)
	assertClose(t, "r2", -0.10, got[1].Value, 1e-12)
	if !got[0].Date.Equal(day0.AddDate(0, 0, 1)) {
		t.Errorf("first return dated %v, want end of first period", got[0].Date)
	}

	if r := PctChange(series(t, 0, 5)); len(r) != 0 {
		t.Errorf("single point should give no returns, got %v", r)
	}
}

func TestRound3(t *testing.T) {
	cases := map[float64]float64{
		1.03333333: 1.033,
		-4.55:      -4.55,
		0.0016:     0.002,
		0.0125:     0.012, // half to even
		-0.0004:    0,
		0.5015:     0.501, // 501.49999999999994 once scaled
		2.0005:     2.001, // 2000.5000000000002 once scaled
	}
	for in, want := range cases {
		if got := Round3(in); got != want {
			t.Errorf("Round3(%v) = %v, want %v", in, got, want)
		}
	}
}
