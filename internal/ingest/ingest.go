// Package ingest loads the six CSV dataset files into the catalog
// database. Rows missing their join keys are skipped and counted, never
// fatal; a dirty dataset row is a data problem, not a program fault.
package ingest

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/JanHoffmann/filmetrics/internal/database"
)

// Result holds the results of an import run.
type Result struct {
	TotalRows  int
	Inserted   int
	Duplicates int
	Skipped    int
	Files      map[string]int // new rows per file
}

// Importer loads a CSV dataset directory into the database.
type Importer struct {
	db *database.DB
}

// NewImporter creates a new dataset importer.
func NewImporter(db *database.DB) *Importer {
	return &Importer{db: db}
}

// ImportDir imports every dataset file found in dir. movies.csv is
// required; the association and rating files are optional and logged when
// absent.
func (im *Importer) ImportDir(dir string) (*Result, error) {
	r := &Result{Files: make(map[string]int)}

	if err := im.importMovies(filepath.Join(dir, "movies.csv"), r); err != nil {
		return nil, err
	}

	optional := []struct {
		name string
		load func(*table, *Result)
	}{
		{"genres.csv", im.importGenres},
		{"directors.csv", im.importDirectors},
		{"roles.csv", im.importRoles},
		{"people.csv", im.importPeople},
		{"ratings.csv", im.importRatings},
	}

	for _, file := range optional {
		path := filepath.Join(dir, file.name)
		if _, err := os.Stat(path); err != nil {
			log.Printf("%s not found, skipping", file.name)
			continue
		}
		t, err := readTable(path)
		if err != nil {
			return nil, err
		}
		before := r.Inserted
		file.load(t, r)
		r.Files[file.name] = r.Inserted - before
		log.Printf("Imported %d new rows from %s", r.Inserted-before, file.name)
	}

	log.Printf("Import complete: %d rows, %d new, %d duplicates, %d skipped",
		r.TotalRows, r.Inserted, r.Duplicates, r.Skipped)
	return r, nil
}

func (im *Importer) importMovies(path string, r *Result) error {
	t, err := readTable(path)
	if err != nil {
		return fmt.Errorf("reading movies: %w", err)
	}

	before := r.Inserted
	for _, row := range t.rows {
		r.TotalRows++
		id := t.get(row, "id")
		title := t.get(row, "title")
		if id == "" || title == "" {
			r.Skipped++
			continue
		}

		var year *int
		if raw := t.get(row, "year"); raw != "" {
			if y, err := strconv.Atoi(raw); err == nil {
				year = &y
			}
		}

		inserted, err := im.db.InsertMovie(id, title,
			t.optional(row, "country"), t.optional(row, "language"),
			year, t.optional(row, "date_published"), t.optional(row, "gross_income"))
		if err != nil {
			return err
		}
		if inserted {
			r.Inserted++
		} else {
			r.Duplicates++
		}
	}
	r.Files["movies.csv"] = r.Inserted - before
	log.Printf("Imported %d new movies", r.Inserted-before)
	return nil
}

func (im *Importer) importGenres(t *table, r *Result) {
	for _, row := range t.rows {
		r.TotalRows++
		movieID, genre := t.get(row, "movie_id"), t.get(row, "genre")
		if movieID == "" || genre == "" {
			r.Skipped++
			continue
		}
		inserted, err := im.db.InsertGenreTag(movieID, genre)
		im.count(r, inserted, err)
	}
}

func (im *Importer) importDirectors(t *table, r *Result) {
	for _, row := range t.rows {
		r.TotalRows++
		movieID, personID := t.get(row, "movie_id"), t.get(row, "person_id")
		if movieID == "" || personID == "" {
			r.Skipped++
			continue
		}
		inserted, err := im.db.InsertDirectorLink(movieID, personID)
		im.count(r, inserted, err)
	}
}

func (im *Importer) importRoles(t *table, r *Result) {
	for _, row := range t.rows {
		r.TotalRows++
		movieID := t.get(row, "movie_id")
		personID := t.get(row, "person_id")
		category := t.get(row, "category")
		if movieID == "" || personID == "" || category == "" {
			r.Skipped++
			continue
		}
		inserted, err := im.db.InsertRoleLink(movieID, personID, category)
		im.count(r, inserted, err)
	}
}

func (im *Importer) importPeople(t *table, r *Result) {
	for _, row := range t.rows {
		r.TotalRows++
		id, name := t.get(row, "id"), t.get(row, "name")
		if id == "" || name == "" {
			r.Skipped++
			continue
		}
		inserted, err := im.db.InsertPerson(id, name)
		im.count(r, inserted, err)
	}
}

func (im *Importer) importRatings(t *table, r *Result) {
	for _, row := range t.rows {
		r.TotalRows++
		movieID := t.get(row, "movie_id")
		rating, ratingErr := strconv.ParseFloat(t.get(row, "avg_rating"), 64)
		votes, votesErr := strconv.Atoi(t.get(row, "total_votes"))
		if movieID == "" || ratingErr != nil || votesErr != nil || votes < 0 {
			r.Skipped++
			continue
		}
		if err := im.db.InsertRatingStat(movieID, rating, votes); err != nil {
			log.Printf("Failed to insert rating for %s: %v", movieID, err)
			r.Skipped++
			continue
		}
		r.Inserted++
	}
}

func (im *Importer) count(r *Result, inserted bool, err error) {
	switch {
	case err != nil:
		log.Printf("Insert failed: %v", err)
		r.Skipped++
	case inserted:
		r.Inserted++
	default:
		r.Duplicates++
	}
}
