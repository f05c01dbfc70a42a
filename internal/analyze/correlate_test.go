package analyze

import (
	"math"
	"testing"
)

func TestCorrelatePerfectPositive(t *testing.T) {
	xs := []float64{1, 2, 3, 4}
	ys := []float64{10, 20, 30, 40}

	c := Correlate(xs, ys)
	if c.N != 4 {
		t.Errorf("expected n=4, got %d", c.N)
	}
	if c.MeanX != 2.5 || c.MeanY != 25 {
		t.Errorf("unexpected means: %v, %v", c.MeanX, c.MeanY)
	}
	if c.R == nil {
		t.Fatal("expected a correlation, got nil")
	}
	if math.Abs(*c.R-1.0) > 1e-9 {
		t.Errorf("expected r=1, got %v", *c.R)
	}
}

func TestCorrelatePerfectNegative(t *testing.T) {
	c := Correlate([]float64{1, 2, 3}, []float64{6, 4, 2})
	if c.R == nil {
		t.Fatal("expected a correlation, got nil")
	}
	if math.Abs(*c.R+1.0) > 1e-9 {
		t.Errorf("expected r=-1, got %v", *c.R)
	}
}

func TestCorrelateZeroVariance(t *testing.T) {
	// All x-values identical: correlation is undefined, not NaN or a fault.
	c := Correlate([]float64{5, 5, 5, 5}, []float64{1, 2, 3, 4})
	if c.R != nil {
		t.Errorf("expected nil r for zero-variance series, got %v", *c.R)
	}
	if c.N != 4 {
		t.Errorf("expected n=4, got %d", c.N)
	}
}

func TestCorrelateEmpty(t *testing.T) {
	c := Correlate(nil, nil)
	if c.N != 0 || c.R != nil {
		t.Errorf("expected empty result, got %+v", c)
	}
}

func TestCorrelateSinglePair(t *testing.T) {
	// One pair has zero variance on both sides.
	c := Correlate([]float64{3}, []float64{7})
	if c.R != nil {
		t.Errorf("expected nil r for a single pair, got %v", *c.R)
	}
}

func TestCorrelateUsesPopulationStatistics(t *testing.T) {
	// Known population correlation: r = cov/(stdX*stdY) with denominator N.
	xs := []float64{1, 2, 3}
	ys := []float64{2, 2, 4}

	c := Correlate(xs, ys)
	if c.R == nil {
		t.Fatal("expected a correlation")
	}
	// cov = 2/3, stdX = sqrt(2/3), stdY = sqrt(8/9) -> r = sqrt(3)/2
	want := math.Sqrt(3) / 2
	if math.Abs(*c.R-want) > 1e-9 {
		t.Errorf("expected r=%v, got %v", want, *c.R)
	}
}
