package database

import (
	"database/sql"
)

// InsertMovie inserts a movie. Returns false if the ID already exists.
func (db *DB) InsertMovie(id, title string, country, language *string, year *int, datePublished, grossIncome *string) (bool, error) {
	result, err := db.conn.Exec(
		`INSERT OR IGNORE INTO movies (id, title, country, language, year, date_published, gross_income)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, title, country, language, year, datePublished, grossIncome,
	)
	if err != nil {
		return false, err
	}
	n, err := result.RowsAffected()
	return n > 0, err
}

// GetMovieByID returns a single movie by ID, or nil if it does not exist.
func (db *DB) GetMovieByID(id string) (*Movie, error) {
	row := db.conn.QueryRow(
		`SELECT id, title, country, language, year, date_published, gross_income, imported_at
		FROM movies WHERE id = ?`, id,
	)
	m, err := scanMovie(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

// GetAllMovies returns every movie in the catalog ordered by ID.
func (db *DB) GetAllMovies() ([]Movie, error) {
	rows, err := db.conn.Query(
		`SELECT id, title, country, language, year, date_published, gross_income, imported_at
		FROM movies ORDER BY id`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var movies []Movie
	for rows.Next() {
		var m Movie
		if err := rows.Scan(&m.ID, &m.Title, &m.Country, &m.Language,
			&m.Year, &m.DatePublished, &m.GrossIncome, &m.ImportedAt); err != nil {
			return nil, err
		}
		movies = append(movies, m)
	}
	return movies, rows.Err()
}

// SearchMoviesByTitle returns movies whose title contains the query,
// case-insensitively, ordered by title. Used by the recommendation UI.
func (db *DB) SearchMoviesByTitle(query string, limit int) ([]Movie, error) {
	rows, err := db.conn.Query(
		`SELECT id, title, country, language, year, date_published, gross_income, imported_at
		FROM movies WHERE title LIKE ? ORDER BY title LIMIT ?`,
		"%"+query+"%", limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var movies []Movie
	for rows.Next() {
		var m Movie
		if err := rows.Scan(&m.ID, &m.Title, &m.Country, &m.Language,
			&m.Year, &m.DatePublished, &m.GrossIncome, &m.ImportedAt); err != nil {
			return nil, err
		}
		movies = append(movies, m)
	}
	return movies, rows.Err()
}

// InsertGenreTag links a movie to a genre. Duplicate pairs are ignored.
func (db *DB) InsertGenreTag(movieID, genre string) (bool, error) {
	result, err := db.conn.Exec(
		"INSERT OR IGNORE INTO genre_tags (movie_id, genre) VALUES (?, ?)",
		movieID, genre,
	)
	if err != nil {
		return false, err
	}
	n, err := result.RowsAffected()
	return n > 0, err
}

// GetAllGenreTags returns every (movie, genre) association.
func (db *DB) GetAllGenreTags() ([]GenreTag, error) {
	rows, err := db.conn.Query("SELECT movie_id, genre FROM genre_tags")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []GenreTag
	for rows.Next() {
		var g GenreTag
		if err := rows.Scan(&g.MovieID, &g.Genre); err != nil {
			return nil, err
		}
		tags = append(tags, g)
	}
	return tags, rows.Err()
}

func scanMovie(row *sql.Row) (*Movie, error) {
	var m Movie
	err := row.Scan(&m.ID, &m.Title, &m.Country, &m.Language,
		&m.Year, &m.DatePublished, &m.GrossIncome, &m.ImportedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
