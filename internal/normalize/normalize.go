// Package normalize cleans the noisy free-text fields of imported catalog
// records before any aggregation sees them. Every consumer shares these
// definitions so "unknown" means the same thing everywhere.
package normalize

import (
	"strconv"
	"strings"

	"github.com/araddon/dateparse"
)

// GrossIncome parses a raw income string ("$ 1,234,567", "INR 50000") into
// a numeric amount. Every rune that is not a digit or a decimal point is
// stripped; an empty or unparseable residual returns nil, never zero.
func GrossIncome(raw *string) *float64 {
	if raw == nil {
		return nil
	}

	var b strings.Builder
	for _, r := range *raw {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}

	residual := b.String()
	if residual == "" {
		return nil
	}

	amount, err := strconv.ParseFloat(residual, 64)
	if err != nil {
		return nil
	}
	return &amount
}

// Year resolves the canonical release year of a movie. The published date
// is finer-grained than the year column and wins when both are present;
// a movie where neither resolves has no canonical year.
func Year(datePublished *string, yearField *int) *int {
	if datePublished != nil && strings.TrimSpace(*datePublished) != "" {
		if t, err := dateparse.ParseAny(strings.TrimSpace(*datePublished)); err == nil {
			y := t.Year()
			return &y
		}
	}
	if yearField != nil {
		y := *yearField
		return &y
	}
	return nil
}
