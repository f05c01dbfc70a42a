package database

import "database/sql"

// Migration represents a single schema migration step.
type Migration struct {
	Version     int
	Description string
	Up          func(tx *sql.Tx) error
}

// migrations is the ordered list of all schema migrations.
// Append new migrations to the end with incrementing Version numbers.
var migrations = []Migration{
	{
		Version:     1,
		Description: "initial schema",
		Up: func(tx *sql.Tx) error {
			_, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS movies (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    country TEXT,
    language TEXT,
    year INTEGER,
    date_published TEXT,
    gross_income TEXT,
    imported_at TEXT DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS genre_tags (
    movie_id TEXT NOT NULL REFERENCES movies(id),
    genre TEXT NOT NULL,
    PRIMARY KEY (movie_id, genre)
);

CREATE TABLE IF NOT EXISTS director_links (
    movie_id TEXT NOT NULL REFERENCES movies(id),
    person_id TEXT NOT NULL,
    PRIMARY KEY (movie_id, person_id)
);

CREATE TABLE IF NOT EXISTS role_links (
    movie_id TEXT NOT NULL REFERENCES movies(id),
    person_id TEXT NOT NULL,
    category TEXT NOT NULL,
    PRIMARY KEY (movie_id, person_id, category)
);

CREATE TABLE IF NOT EXISTS people (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS rating_stats (
    movie_id TEXT PRIMARY KEY REFERENCES movies(id),
    avg_rating REAL NOT NULL,
    total_votes INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS reports (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    title TEXT NOT NULL,
    summary TEXT NOT NULL,
    body_markdown TEXT NOT NULL,
    movie_count INTEGER DEFAULT 0,
    rated_count INTEGER DEFAULT 0,
    generated_at TEXT DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_genre_tags_genre ON genre_tags(genre);
CREATE INDEX IF NOT EXISTS idx_director_links_person ON director_links(person_id);
CREATE INDEX IF NOT EXISTS idx_role_links_person ON role_links(person_id);
CREATE INDEX IF NOT EXISTS idx_role_links_category ON role_links(category);
CREATE INDEX IF NOT EXISTS idx_movies_year ON movies(year);
`)
			return err
		},
	},
}

// latestVersion returns the highest migration version number.
func latestVersion() int {
	if len(migrations) == 0 {
		return 0
	}
	return migrations[len(migrations)-1].Version
}
