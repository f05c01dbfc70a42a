package database

// Movie represents an imported catalog movie. Country, language, year,
// published date, and gross income all arrive dirty and optional, so they
// stay nullable here; cleaning happens in the normalize package.
type Movie struct {
	ID            string
	Title         string
	Country       *string
	Language      *string
	Year          *int
	DatePublished *string
	GrossIncome   *string
	ImportedAt    *string
}

// GenreTag links a movie to one of its genres.
type GenreTag struct {
	MovieID string
	Genre   string
}

// DirectorLink links a movie to one of its directors.
type DirectorLink struct {
	MovieID  string
	PersonID string
}

// RoleLink links a movie to a contributor in a given role category
// (actor, actress, writer, producer, ...).
type RoleLink struct {
	MovieID  string
	PersonID string
	Category string
}

// Person is a contributor shared between director and role links.
type Person struct {
	ID   string
	Name string
}

// RatingStat holds the rating statistics for a movie. At most one row per
// movie; a movie without one is simply unrated.
type RatingStat struct {
	MovieID    string
	AvgRating  float64
	TotalVotes int
}

// Report is a stored analytics report generated by a pipeline run.
type Report struct {
	ID           int64
	Title        string
	Summary      string
	BodyMarkdown string
	MovieCount   int
	RatedCount   int
	GeneratedAt  *string
}

// Stats contains aggregate database statistics.
type Stats struct {
	Movies        int
	RatedMovies   int
	People        int
	Genres        int
	DirectorLinks int
	RoleLinks     int
	Reports       int
}
