package analyze

import (
	"fmt"
	"sort"
)

// GenreRanking holds the top movies for one genre.
type GenreRanking struct {
	Genre  string
	Movies []RankedMovie
}

// TopRatedByGenre returns the perGenre best-rated movies for every genre
// with at least one movie passing the vote gate, genres in alphabetical
// order.
func (s *Snapshot) TopRatedByGenre(minVotes, perGenre int) ([]GenreRanking, error) {
	if err := checkMinVotes(minVotes); err != nil {
		return nil, err
	}
	if perGenre <= 0 {
		return nil, fmt.Errorf("perGenre must be positive, got %d", perGenre)
	}

	byGenre := make(map[string][]Record)
	for _, r := range s.Records {
		for _, g := range s.Genres[r.MovieID] {
			byGenre[g] = append(byGenre[g], r)
		}
	}

	genres := make([]string, 0, len(byGenre))
	for g := range byGenre {
		genres = append(genres, g)
	}
	sort.Strings(genres)

	var rankings []GenreRanking
	for _, g := range genres {
		movies := rankMovies(byGenre[g], minVotes, perGenre)
		if len(movies) == 0 {
			continue
		}
		rankings = append(rankings, GenreRanking{Genre: g, Movies: movies})
	}
	return rankings, nil
}

// DirectorInsight describes a director with a sustained track record.
type DirectorInsight struct {
	PersonID   string
	Name       string
	MovieCount int
	AvgRating  float64
	MinRating  float64
	MaxRating  float64
}

// TopDirectors returns directors whose gated filmography has at least
// minMovies entries and an average rating strictly above minAvgRating.
// Both conditions must hold. Ordered by average rating descending, movie
// count descending, person ID ascending.
func (s *Snapshot) TopDirectors(minVotes, minMovies int, minAvgRating float64) ([]DirectorInsight, error) {
	if err := checkMinVotes(minVotes); err != nil {
		return nil, err
	}
	if minMovies <= 0 {
		return nil, fmt.Errorf("minMovies must be positive, got %d", minMovies)
	}
	if minAvgRating < 0 {
		return nil, fmt.Errorf("minAvgRating must not be negative, got %v", minAvgRating)
	}

	byDirector := make(map[string][]Record)
	for _, r := range s.Records {
		if !r.passesGate(minVotes) {
			continue
		}
		for _, pid := range s.Directors[r.MovieID] {
			byDirector[pid] = append(byDirector[pid], r)
		}
	}

	var insights []DirectorInsight
	for pid, movies := range byDirector {
		if len(movies) < minMovies {
			continue
		}
		sum := 0.0
		minR, maxR := *movies[0].Rating, *movies[0].Rating
		for _, m := range movies {
			rating := *m.Rating
			sum += rating
			if rating < minR {
				minR = rating
			}
			if rating > maxR {
				maxR = rating
			}
		}
		avg := sum / float64(len(movies))
		if avg <= minAvgRating {
			continue
		}
		insights = append(insights, DirectorInsight{
			PersonID:   pid,
			Name:       s.personName(pid),
			MovieCount: len(movies),
			AvgRating:  avg,
			MinRating:  minR,
			MaxRating:  maxR,
		})
	}

	sort.Slice(insights, func(i, j int) bool {
		if insights[i].AvgRating != insights[j].AvgRating {
			return insights[i].AvgRating > insights[j].AvgRating
		}
		if insights[i].MovieCount != insights[j].MovieCount {
			return insights[i].MovieCount > insights[j].MovieCount
		}
		return insights[i].PersonID < insights[j].PersonID
	})
	return insights, nil
}

// ActorInsight describes how often a cast member appears in well-rated
// movies.
type ActorInsight struct {
	PersonID    string
	Name        string
	Appearances int
	AvgRating   float64
}

// TopActors counts appearances of whitelisted cast members in movies rated
// at least minRating that pass the vote gate. Ordered by appearance count
// descending, average rating descending, person ID ascending, truncated to
// limit.
func (s *Snapshot) TopActors(minVotes int, minRating float64, limit int) ([]ActorInsight, error) {
	if err := checkMinVotes(minVotes); err != nil {
		return nil, err
	}
	if minRating < 0 {
		return nil, fmt.Errorf("minRating must not be negative, got %v", minRating)
	}
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be positive, got %d", limit)
	}

	byActor := make(map[string][]float64)
	for _, r := range s.Records {
		if !r.passesGate(minVotes) || *r.Rating < minRating {
			continue
		}
		for _, pid := range s.Cast[r.MovieID] {
			byActor[pid] = append(byActor[pid], *r.Rating)
		}
	}

	insights := make([]ActorInsight, 0, len(byActor))
	for pid, ratings := range byActor {
		sum := 0.0
		for _, rating := range ratings {
			sum += rating
		}
		insights = append(insights, ActorInsight{
			PersonID:    pid,
			Name:        s.personName(pid),
			Appearances: len(ratings),
			AvgRating:   sum / float64(len(ratings)),
		})
	}

	sort.Slice(insights, func(i, j int) bool {
		if insights[i].Appearances != insights[j].Appearances {
			return insights[i].Appearances > insights[j].Appearances
		}
		if insights[i].AvgRating != insights[j].AvgRating {
			return insights[i].AvgRating > insights[j].AvgRating
		}
		return insights[i].PersonID < insights[j].PersonID
	})
	if len(insights) > limit {
		insights = insights[:limit]
	}
	return insights, nil
}

// CountrySummary aggregates production per (country, language) pair.
type CountrySummary struct {
	Country  string
	Language string
	Summary
}

// CountryLanguageSummary summarizes gated records per (country, language)
// pair, largest groups first. Records missing either field are excluded
// from the comparison entirely.
func (s *Snapshot) CountryLanguageSummary(minVotes int) ([]CountrySummary, error) {
	if err := checkMinVotes(minVotes); err != nil {
		return nil, err
	}

	groups := groupBy(s.Records, minVotes, func(r Record) (string, bool) {
		if r.Country == nil || r.Language == nil {
			return "", false
		}
		return *r.Country + "\x00" + *r.Language, true
	})

	summaries := make([]CountrySummary, 0, len(groups))
	for key, group := range groups {
		country, language := splitKey(key)
		summaries = append(summaries, CountrySummary{
			Country:  country,
			Language: language,
			Summary:  summarize(group),
		})
	}

	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].Count != summaries[j].Count {
			return summaries[i].Count > summaries[j].Count
		}
		if summaries[i].Country != summaries[j].Country {
			return summaries[i].Country < summaries[j].Country
		}
		return summaries[i].Language < summaries[j].Language
	})
	return summaries, nil
}

// RevenueRatingCorrelation correlates gross income (x) against average
// rating (y) over gated records whose gross is known.
func (s *Snapshot) RevenueRatingCorrelation(minVotes int) (Correlation, error) {
	if err := checkMinVotes(minVotes); err != nil {
		return Correlation{}, err
	}

	var xs, ys []float64
	for _, r := range s.Records {
		if !r.passesGate(minVotes) || r.Gross == nil {
			continue
		}
		xs = append(xs, *r.Gross)
		ys = append(ys, *r.Rating)
	}
	return Correlate(xs, ys), nil
}

// YearlyTrend returns per-year catalog statistics, oldest year first.
func (s *Snapshot) YearlyTrend() []YearStat {
	return yearlyTrend(s.Records)
}

// GrowthSignal compares recent against prior production volume per
// production country. Spans are window lengths in years; gap is the number
// of years skipped between the two windows.
func (s *Snapshot) GrowthSignal(recentSpan, priorSpan, gap int) (map[string]Growth, error) {
	if recentSpan <= 0 || priorSpan <= 0 {
		return nil, fmt.Errorf("window spans must be positive, got recent=%d prior=%d", recentSpan, priorSpan)
	}
	if gap < 0 {
		return nil, fmt.Errorf("gap must not be negative, got %d", gap)
	}

	return growthSignal(s.Records, func(r Record) (string, bool) {
		if r.Country == nil {
			return "", false
		}
		return *r.Country, true
	}, recentSpan, priorSpan, gap), nil
}

func checkMinVotes(minVotes int) error {
	if minVotes < 0 {
		return fmt.Errorf("minVotes must not be negative, got %d", minVotes)
	}
	return nil
}

func splitKey(key string) (string, string) {
	for i := 0; i < len(key); i++ {
		if key[i] == '\x00' {
			return key[:i], key[i+1:]
		}
	}
	return key, ""
}
