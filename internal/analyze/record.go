// Package analyze computes catalog analytics over an immutable snapshot of
// normalized movie records: per-group rankings, summaries, revenue/rating
// correlation, yearly trends, and growth signals. Every operation is pure
// over the snapshot it is given.
package analyze

import (
	"github.com/JanHoffmann/filmetrics/internal/database"
	"github.com/JanHoffmann/filmetrics/internal/normalize"
)

// Record is a single normalized movie. Year, Gross, and Rating are nil when
// the source data did not resolve; aggregates exclude such records from the
// affected figures instead of coercing them to zero.
type Record struct {
	MovieID  string
	Title    string
	Country  *string
	Language *string
	Year     *int
	Gross    *float64
	Rating   *float64
	Votes    int
}

// rated reports whether the movie has rating statistics at all.
func (r Record) rated() bool { return r.Rating != nil }

// passesGate reports whether the record clears the vote-confidence gate.
// Unrated movies never pass: absence of a rating is not a rating of zero.
func (r Record) passesGate(minVotes int) bool {
	return r.rated() && r.Votes >= minVotes
}

// Snapshot is an immutable in-memory view of the catalog: normalized
// records plus the association tables the scorers and aggregators join on.
type Snapshot struct {
	Records     []Record
	ByID        map[string]*Record
	Genres      map[string][]string // movie ID -> genres
	Directors   map[string][]string // movie ID -> director person IDs
	Cast        map[string][]string // movie ID -> cast person IDs
	PersonNames map[string]string
}

// Load reads the full catalog from the database and normalizes it into a
// Snapshot. Role links are restricted to the whitelisted cast categories;
// crew roles do not count toward cast overlap or actor popularity.
func Load(db *database.DB, castCategories []string) (*Snapshot, error) {
	movies, err := db.GetAllMovies()
	if err != nil {
		return nil, err
	}
	tags, err := db.GetAllGenreTags()
	if err != nil {
		return nil, err
	}
	directors, err := db.GetAllDirectorLinks()
	if err != nil {
		return nil, err
	}
	cast, err := db.GetRoleLinksByCategory(castCategories)
	if err != nil {
		return nil, err
	}
	people, err := db.GetAllPeople()
	if err != nil {
		return nil, err
	}
	ratings, err := db.GetAllRatingStats()
	if err != nil {
		return nil, err
	}

	ratingByMovie := make(map[string]database.RatingStat, len(ratings))
	for _, rs := range ratings {
		ratingByMovie[rs.MovieID] = rs
	}

	snap := &Snapshot{
		Records:     make([]Record, 0, len(movies)),
		ByID:        make(map[string]*Record, len(movies)),
		Genres:      make(map[string][]string),
		Directors:   make(map[string][]string),
		Cast:        make(map[string][]string),
		PersonNames: make(map[string]string, len(people)),
	}

	for _, m := range movies {
		rec := Record{
			MovieID:  m.ID,
			Title:    m.Title,
			Country:  m.Country,
			Language: m.Language,
			Year:     normalize.Year(m.DatePublished, m.Year),
			Gross:    normalize.GrossIncome(m.GrossIncome),
		}
		if rs, ok := ratingByMovie[m.ID]; ok {
			rating := rs.AvgRating
			rec.Rating = &rating
			rec.Votes = rs.TotalVotes
		}
		snap.Records = append(snap.Records, rec)
	}
	for i := range snap.Records {
		snap.ByID[snap.Records[i].MovieID] = &snap.Records[i]
	}

	for _, t := range tags {
		snap.Genres[t.MovieID] = append(snap.Genres[t.MovieID], t.Genre)
	}
	for _, d := range directors {
		snap.Directors[d.MovieID] = append(snap.Directors[d.MovieID], d.PersonID)
	}
	for _, c := range cast {
		snap.Cast[c.MovieID] = append(snap.Cast[c.MovieID], c.PersonID)
	}
	for _, p := range people {
		snap.PersonNames[p.ID] = p.Name
	}

	return snap, nil
}

// personName resolves a person ID to a display name, falling back to the ID.
func (s *Snapshot) personName(id string) string {
	if name, ok := s.PersonNames[id]; ok {
		return name
	}
	return id
}
