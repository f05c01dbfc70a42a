package ingest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/JanHoffmann/filmetrics/internal/database"
)

func openTestDB(t *testing.T) *database.DB {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func writeDataset(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("writing %s: %v", name, err)
		}
	}
	return dir
}

func TestImportFullDataset(t *testing.T) {
	dir := writeDataset(t, map[string]string{
		"movies.csv": "id,title,country,language,year,date_published,gross_income\n" +
			"tt0001,The Test,USA,English,1999,1999-10-15,\"$ 1,234,567\"\n" +
			"tt0002,Другой фильм,Russia,Russian,,2001-03-01,\n",
		"genres.csv":    "movie_id,genre\ntt0001,Drama\ntt0001,Crime\ntt0002,Drama\n",
		"directors.csv": "movie_id,person_id\ntt0001,nm0001\ntt0002,nm0001\n",
		"roles.csv":     "movie_id,person_id,category\ntt0001,nm0002,actor\ntt0001,nm0003,writer\n",
		"people.csv":    "id,name\nnm0001,Jane Director\nnm0002,John Actor\nnm0003,Wanda Writer\n",
		"ratings.csv":   "movie_id,avg_rating,total_votes\ntt0001,8.5,12000\ntt0002,7.1,340\n",
	})

	db := openTestDB(t)
	result, err := NewImporter(db).ImportDir(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Inserted != 12 {
		t.Errorf("expected 12 new rows, got %d", result.Inserted)
	}
	if result.Skipped != 0 {
		t.Errorf("expected no skipped rows, got %d", result.Skipped)
	}
	if result.Files["movies.csv"] != 2 {
		t.Errorf("expected 2 new movies, got %d", result.Files["movies.csv"])
	}

	m, _ := db.GetMovieByID("tt0001")
	if m == nil || m.GrossIncome == nil || *m.GrossIncome != "$ 1,234,567" {
		t.Errorf("expected raw gross income preserved, got %+v", m)
	}
	if m.Year == nil || *m.Year != 1999 {
		t.Errorf("expected year 1999, got %v", m.Year)
	}

	rs, _ := db.GetRatingStat("tt0001")
	if rs == nil || rs.TotalVotes != 12000 {
		t.Errorf("unexpected rating stat: %+v", rs)
	}
}

func TestImportSkipsBadRows(t *testing.T) {
	dir := writeDataset(t, map[string]string{
		"movies.csv": "id,title\n" +
			"tt0001,Good\n" +
			",Missing ID\n" +
			"tt0002,\n",
		"ratings.csv": "movie_id,avg_rating,total_votes\n" +
			"tt0001,not-a-number,100\n" +
			"tt0001,8.0,-5\n" +
			"tt0001,8.0,100\n",
	})

	db := openTestDB(t)
	result, err := NewImporter(db).ImportDir(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Skipped != 4 {
		t.Errorf("expected 4 skipped rows, got %d", result.Skipped)
	}
	if result.Files["movies.csv"] != 1 {
		t.Errorf("expected 1 imported movie, got %d", result.Files["movies.csv"])
	}
}

func TestImportDuplicatesIgnored(t *testing.T) {
	files := map[string]string{
		"movies.csv": "id,title\ntt0001,Once\n",
	}
	dir := writeDataset(t, files)

	db := openTestDB(t)
	importer := NewImporter(db)
	if _, err := importer.ImportDir(dir); err != nil {
		t.Fatalf("first import: %v", err)
	}

	result, err := importer.ImportDir(dir)
	if err != nil {
		t.Fatalf("second import: %v", err)
	}
	if result.Inserted != 0 || result.Duplicates != 1 {
		t.Errorf("expected re-import to count duplicates, got %+v", result)
	}
}

func TestImportMissingMoviesFile(t *testing.T) {
	db := openTestDB(t)
	if _, err := NewImporter(db).ImportDir(t.TempDir()); err == nil {
		t.Error("expected error when movies.csv is missing")
	}
}

func TestImportMissingOptionalFiles(t *testing.T) {
	dir := writeDataset(t, map[string]string{
		"movies.csv": "id,title\ntt0001,Alone\n",
	})

	db := openTestDB(t)
	result, err := NewImporter(db).ImportDir(dir)
	if err != nil {
		t.Fatalf("optional files must not be required: %v", err)
	}
	if result.Inserted != 1 {
		t.Errorf("expected 1 movie, got %d", result.Inserted)
	}
}
