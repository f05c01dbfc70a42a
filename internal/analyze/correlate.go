package analyze

import "math"

// Correlation holds the result of correlating two numeric series.
// R is nil when the correlation is undefined: fewer than two pairs, or a
// zero-variance series. It is never NaN.
type Correlation struct {
	N     int
	MeanX float64
	MeanY float64
	R     *float64
}

// Correlate computes the Pearson correlation of two equal-length series
// using population statistics (denominator N, not N-1).
func Correlate(xs, ys []float64) Correlation {
	n := len(xs)
	if len(ys) < n {
		n = len(ys)
	}
	c := Correlation{N: n}
	if n == 0 {
		return c
	}

	for i := 0; i < n; i++ {
		c.MeanX += xs[i]
		c.MeanY += ys[i]
	}
	c.MeanX /= float64(n)
	c.MeanY /= float64(n)

	var varX, varY, cov float64
	for i := 0; i < n; i++ {
		dx := xs[i] - c.MeanX
		dy := ys[i] - c.MeanY
		varX += dx * dx
		varY += dy * dy
		cov += dx * dy
	}
	varX /= float64(n)
	varY /= float64(n)
	cov /= float64(n)

	stdX := math.Sqrt(varX)
	stdY := math.Sqrt(varY)
	if stdX == 0 || stdY == 0 {
		// Degenerate series: all values identical on one side.
		return c
	}

	r := cov / (stdX * stdY)
	c.R = &r
	return c
}
