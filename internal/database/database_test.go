package database

import (
	"path/filepath"
	"testing"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func ptr(s string) *string { return &s }

func TestInsertMovie(t *testing.T) {
	db := openTestDB(t)
	inserted, err := db.InsertMovie("tt0001", "Test Movie", ptr("USA"), ptr("English"), nil, ptr("1999-10-15"), ptr("$ 1,234,567"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !inserted {
		t.Error("expected movie to be inserted")
	}
}

func TestInsertDuplicateMovie(t *testing.T) {
	db := openTestDB(t)
	db.InsertMovie("tt0001", "First", nil, nil, nil, nil, nil)
	inserted, err := db.InsertMovie("tt0001", "Duplicate", nil, nil, nil, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inserted {
		t.Error("expected duplicate to be ignored")
	}

	m, _ := db.GetMovieByID("tt0001")
	if m == nil || m.Title != "First" {
		t.Error("expected original row to survive the duplicate insert")
	}
}

func TestGetMovieByIDMissing(t *testing.T) {
	db := openTestDB(t)
	m, err := db.GetMovieByID("tt9999")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m != nil {
		t.Error("expected nil for unknown movie")
	}
}

func TestGetAllMovies(t *testing.T) {
	db := openTestDB(t)
	db.InsertMovie("tt0002", "B", nil, nil, nil, nil, nil)
	db.InsertMovie("tt0001", "A", nil, nil, nil, nil, nil)

	movies, err := db.GetAllMovies()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(movies) != 2 {
		t.Fatalf("expected 2 movies, got %d", len(movies))
	}
	if movies[0].ID != "tt0001" {
		t.Errorf("expected movies ordered by ID, got %q first", movies[0].ID)
	}
}

func TestSearchMoviesByTitle(t *testing.T) {
	db := openTestDB(t)
	db.InsertMovie("tt0001", "The Godfather", nil, nil, nil, nil, nil)
	db.InsertMovie("tt0002", "The Godfather: Part II", nil, nil, nil, nil, nil)
	db.InsertMovie("tt0003", "Alien", nil, nil, nil, nil, nil)

	movies, err := db.SearchMoviesByTitle("godfather", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(movies) != 2 {
		t.Errorf("expected 2 matches, got %d", len(movies))
	}
}

func TestGenreTags(t *testing.T) {
	db := openTestDB(t)
	db.InsertMovie("tt0001", "Test", nil, nil, nil, nil, nil)
	db.InsertGenreTag("tt0001", "Drama")
	db.InsertGenreTag("tt0001", "Crime")
	inserted, _ := db.InsertGenreTag("tt0001", "Drama")
	if inserted {
		t.Error("expected duplicate genre tag to be ignored")
	}

	tags, err := db.GetAllGenreTags()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tags) != 2 {
		t.Errorf("expected 2 genre tags, got %d", len(tags))
	}
}

func TestDirectorAndRoleLinks(t *testing.T) {
	db := openTestDB(t)
	db.InsertMovie("tt0001", "Test", nil, nil, nil, nil, nil)
	db.InsertPerson("nm0001", "Jane Director")
	db.InsertPerson("nm0002", "John Actor")

	db.InsertDirectorLink("tt0001", "nm0001")
	db.InsertRoleLink("tt0001", "nm0002", "actor")
	db.InsertRoleLink("tt0001", "nm0001", "writer")

	directors, err := db.GetAllDirectorLinks()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(directors) != 1 {
		t.Errorf("expected 1 director link, got %d", len(directors))
	}

	cast, err := db.GetRoleLinksByCategory([]string{"actor", "actress"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cast) != 1 || cast[0].PersonID != "nm0002" {
		t.Errorf("expected only the actor link, got %v", cast)
	}

	all, _ := db.GetRoleLinksByCategory(nil)
	if len(all) != 2 {
		t.Errorf("expected 2 role links total, got %d", len(all))
	}
}

func TestRatingStats(t *testing.T) {
	db := openTestDB(t)
	db.InsertMovie("tt0001", "Test", nil, nil, nil, nil, nil)

	if err := db.InsertRatingStat("tt0001", 8.5, 12000); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rs, err := db.GetRatingStat("tt0001")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rs == nil || rs.AvgRating != 8.5 || rs.TotalVotes != 12000 {
		t.Errorf("unexpected rating stat: %+v", rs)
	}

	// Replace on re-import
	db.InsertRatingStat("tt0001", 8.4, 13000)
	rs, _ = db.GetRatingStat("tt0001")
	if rs.TotalVotes != 13000 {
		t.Errorf("expected replaced vote count 13000, got %d", rs.TotalVotes)
	}

	missing, err := db.GetRatingStat("tt9999")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if missing != nil {
		t.Error("expected nil for unrated movie")
	}
}

func TestReports(t *testing.T) {
	db := openTestDB(t)
	id, err := db.InsertReport("Catalog report", "- 2 movies", "## Body", 2, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id == 0 {
		t.Fatal("expected non-zero report ID")
	}

	r, err := db.GetReport(id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r == nil || r.Title != "Catalog report" || r.MovieCount != 2 {
		t.Errorf("unexpected report: %+v", r)
	}

	db.InsertReport("Second", "-", "body", 3, 2)
	all, _ := db.GetAllReports()
	if len(all) != 2 || all[0].Title != "Second" {
		t.Errorf("expected newest report first, got %v", all)
	}
}

func TestGetStats(t *testing.T) {
	db := openTestDB(t)
	db.InsertMovie("tt0001", "A", nil, nil, nil, nil, nil)
	db.InsertMovie("tt0002", "B", nil, nil, nil, nil, nil)
	db.InsertPerson("nm0001", "P")
	db.InsertGenreTag("tt0001", "Drama")
	db.InsertGenreTag("tt0002", "Drama")
	db.InsertRatingStat("tt0001", 7.0, 100)

	stats, err := db.GetStats()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.Movies != 2 {
		t.Errorf("expected 2 movies, got %d", stats.Movies)
	}
	if stats.RatedMovies != 1 {
		t.Errorf("expected 1 rated movie, got %d", stats.RatedMovies)
	}
	if stats.Genres != 1 {
		t.Errorf("expected 1 distinct genre, got %d", stats.Genres)
	}
}
