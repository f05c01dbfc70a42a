package analyze

import (
	"math"
	"sort"
)

// YearStat aggregates the catalog for one canonical release year.
// Count is a census of every year-resolved movie; AvgRating and SumGross
// cover only the subsets where rating or gross income is known.
type YearStat struct {
	Year      int
	Count     int
	AvgRating *float64
	SumGross  *float64
}

// yearlyTrend groups records by canonical year, ascending. Movies without
// a canonical year are absent, and so are years with no movies at all;
// the sequence is not gap-filled.
func yearlyTrend(records []Record) []YearStat {
	byYear := make(map[int][]Record)
	for _, r := range records {
		if r.Year == nil {
			continue
		}
		byYear[*r.Year] = append(byYear[*r.Year], r)
	}

	years := make([]int, 0, len(byYear))
	for y := range byYear {
		years = append(years, y)
	}
	sort.Ints(years)

	stats := make([]YearStat, 0, len(years))
	for _, y := range years {
		group := byYear[y]
		stat := YearStat{Year: y, Count: len(group)}

		var ratingSum, grossSum float64
		ratedCount, grossCount := 0, 0
		for _, r := range group {
			if r.rated() {
				ratingSum += *r.Rating
				ratedCount++
			}
			if r.Gross != nil {
				grossSum += *r.Gross
				grossCount++
			}
		}
		if ratedCount > 0 {
			avg := ratingSum / float64(ratedCount)
			stat.AvgRating = &avg
		}
		if grossCount > 0 {
			sum := grossSum
			stat.SumGross = &sum
		}
		stats = append(stats, stat)
	}
	return stats
}

// Growth compares a category's recent production volume against the
// immediately preceding window. PctChange is nil when the prior window is
// empty.
type Growth struct {
	RecentCount int
	PriorCount  int
	Delta       int
	PctChange   *float64
}

// growthSignal buckets year-resolved records into a recent window
// [maxYear-recentSpan+1, maxYear] and a prior window of priorSpan years
// immediately before it (separated by gap years), counting per category.
// maxYear is the latest canonical year anywhere in the dataset.
func growthSignal(records []Record, key func(Record) (string, bool), recentSpan, priorSpan, gap int) map[string]Growth {
	maxYear, found := 0, false
	for _, r := range records {
		if r.Year != nil && (!found || *r.Year > maxYear) {
			maxYear = *r.Year
			found = true
		}
	}
	if !found {
		return map[string]Growth{}
	}

	recentLo := maxYear - recentSpan + 1
	priorHi := recentLo - gap - 1
	priorLo := priorHi - priorSpan + 1

	type counts struct{ recent, prior int }
	byCategory := make(map[string]*counts)
	for _, r := range records {
		if r.Year == nil {
			continue
		}
		k, ok := key(r)
		if !ok {
			continue
		}
		y := *r.Year
		var inRecent, inPrior bool
		switch {
		case y >= recentLo && y <= maxYear:
			inRecent = true
		case y >= priorLo && y <= priorHi:
			inPrior = true
		default:
			continue
		}
		c := byCategory[k]
		if c == nil {
			c = &counts{}
			byCategory[k] = c
		}
		if inRecent {
			c.recent++
		}
		if inPrior {
			c.prior++
		}
	}

	result := make(map[string]Growth, len(byCategory))
	for k, c := range byCategory {
		g := Growth{
			RecentCount: c.recent,
			PriorCount:  c.prior,
			Delta:       c.recent - c.prior,
		}
		if c.prior > 0 {
			pct := float64(c.recent-c.prior) / float64(c.prior) * 100
			pct = math.Round(pct*100) / 100
			g.PctChange = &pct
		}
		result[k] = g
	}
	return result
}
