package analyze

import "sort"

// RankedMovie is one row of a ranked listing.
type RankedMovie struct {
	MovieID string
	Title   string
	Rating  float64
	Votes   int
}

// rankMovies gates records by minVotes, orders them by rating descending,
// vote count descending, then movie ID ascending so equal rating/vote pairs
// always come out in the same order, and truncates to topN (topN <= 0 keeps
// everything).
func rankMovies(records []Record, minVotes, topN int) []RankedMovie {
	var ranked []RankedMovie
	for _, r := range records {
		if !r.passesGate(minVotes) {
			continue
		}
		ranked = append(ranked, RankedMovie{
			MovieID: r.MovieID,
			Title:   r.Title,
			Rating:  *r.Rating,
			Votes:   r.Votes,
		})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Rating != ranked[j].Rating {
			return ranked[i].Rating > ranked[j].Rating
		}
		if ranked[i].Votes != ranked[j].Votes {
			return ranked[i].Votes > ranked[j].Votes
		}
		return ranked[i].MovieID < ranked[j].MovieID
	})

	if topN > 0 && len(ranked) > topN {
		ranked = ranked[:topN]
	}
	return ranked
}

// Summary aggregates one group of records that already passed the vote
// gate. Count and AvgRating cover the whole group; SumGross and AvgGross
// cover only the records whose gross income is known, and are nil when
// none is. Gaps in the income field must not depress counts or averages.
type Summary struct {
	Count     int
	AvgRating float64
	SumGross  *float64
	AvgGross  *float64
}

// summarize computes the Summary of a gated group.
func summarize(records []Record) Summary {
	s := Summary{Count: len(records)}
	if len(records) == 0 {
		return s
	}

	var ratingSum float64
	var grossSum float64
	grossCount := 0
	for _, r := range records {
		ratingSum += *r.Rating
		if r.Gross != nil {
			grossSum += *r.Gross
			grossCount++
		}
	}

	s.AvgRating = ratingSum / float64(len(records))
	if grossCount > 0 {
		sum := grossSum
		avg := grossSum / float64(grossCount)
		s.SumGross = &sum
		s.AvgGross = &avg
	}
	return s
}

// groupBy partitions gated records by a key function. Records the key
// function rejects are left out of every group.
func groupBy(records []Record, minVotes int, key func(Record) (string, bool)) map[string][]Record {
	groups := make(map[string][]Record)
	for _, r := range records {
		if !r.passesGate(minVotes) {
			continue
		}
		k, ok := key(r)
		if !ok {
			continue
		}
		groups[k] = append(groups[k], r)
	}
	return groups
}
