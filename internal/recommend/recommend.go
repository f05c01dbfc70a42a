// Package recommend ranks movies by weighted overlap with a target movie.
// Three signals contribute: shared directors, shared cast, shared genres.
// Signals are independent weighted sources merged by candidate; adding a
// new signal (say, shared writers) means adding one more source, the merge
// and ranking stay untouched.
package recommend

import (
	"fmt"
	"sort"

	"github.com/JanHoffmann/filmetrics/internal/analyze"
)

// DefaultLimit is the default size of a recommendation list.
const DefaultLimit = 20

// Weights holds the per-signal scores. Shared creative leadership is the
// strongest similarity evidence, shared genre the weakest.
type Weights struct {
	Director int
	Cast     int
	Genre    int
}

// DefaultWeights returns the standard 3/2/1 weighting.
func DefaultWeights() Weights {
	return Weights{Director: 3, Cast: 2, Genre: 1}
}

// Candidate is one recommended movie. Rating is nil when the movie has no
// rating statistics; missing ratings do not disqualify a candidate.
type Candidate struct {
	MovieID string
	Title   string
	Score   int
	Rating  *float64
	Votes   int
}

// Scorer scores candidates against a target movie over a fixed snapshot.
type Scorer struct {
	snap    *analyze.Snapshot
	weights Weights

	// Inverted link indexes, built once per snapshot.
	byDirector map[string][]string // person ID -> movie IDs
	byCast     map[string][]string
	byGenre    map[string][]string // genre -> movie IDs
}

// NewScorer builds a Scorer with inverted indexes over the snapshot's
// association tables.
func NewScorer(snap *analyze.Snapshot, weights Weights) *Scorer {
	return &Scorer{
		snap:       snap,
		weights:    weights,
		byDirector: invert(snap.Directors),
		byCast:     invert(snap.Cast),
		byGenre:    invert(snap.Genres),
	}
}

// Recommend returns up to limit movies ranked by similarity to the target.
// An unknown target yields an empty list; that is a valid query, not an
// error.
func (s *Scorer) Recommend(targetID string, limit int) ([]Candidate, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be positive, got %d", limit)
	}
	if _, ok := s.snap.ByID[targetID]; !ok {
		return nil, nil
	}

	scores := make(map[string]int)
	addSignal(scores, s.candidates(targetID, s.snap.Directors, s.byDirector), s.weights.Director)
	addSignal(scores, s.candidates(targetID, s.snap.Cast, s.byCast), s.weights.Cast)
	addSignal(scores, s.candidates(targetID, s.snap.Genres, s.byGenre), s.weights.Genre)

	ranked := make([]Candidate, 0, len(scores))
	for id, score := range scores {
		c := Candidate{MovieID: id, Score: score}
		if rec, ok := s.snap.ByID[id]; ok {
			c.Title = rec.Title
			c.Rating = rec.Rating
			c.Votes = rec.Votes
		}
		ranked = append(ranked, c)
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		ri, rj := ranked[i].Rating, ranked[j].Rating
		if (ri == nil) != (rj == nil) {
			return rj == nil // known ratings ahead of unknown
		}
		if ri != nil && *ri != *rj {
			return *ri > *rj
		}
		if ranked[i].Votes != ranked[j].Votes {
			return ranked[i].Votes > ranked[j].Votes
		}
		return ranked[i].MovieID < ranked[j].MovieID
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked, nil
}

// candidates returns the set of movies sharing at least one link value
// with the target, the target itself excluded. One signal contributes its
// weight once per candidate no matter how many links are shared.
func (s *Scorer) candidates(targetID string, links, inverted map[string][]string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, key := range links[targetID] {
		for _, movieID := range inverted[key] {
			if movieID == targetID {
				continue
			}
			set[movieID] = struct{}{}
		}
	}
	return set
}

// addSignal merges one weighted candidate set into the running scores.
// A candidate seen by several signals accumulates the sum of their
// weights; overlap across signal types compounds.
func addSignal(scores map[string]int, set map[string]struct{}, weight int) {
	for id := range set {
		scores[id] += weight
	}
}

func invert(links map[string][]string) map[string][]string {
	inverted := make(map[string][]string)
	for movieID, keys := range links {
		for _, key := range keys {
			inverted[key] = append(inverted[key], movieID)
		}
	}
	return inverted
}
