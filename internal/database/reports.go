package database

import "database/sql"

// InsertReport stores a generated analytics report.
func (db *DB) InsertReport(title, summary, bodyMarkdown string, movieCount, ratedCount int) (int64, error) {
	result, err := db.conn.Exec(
		`INSERT INTO reports (title, summary, body_markdown, movie_count, rated_count)
		VALUES (?, ?, ?, ?, ?)`,
		title, summary, bodyMarkdown, movieCount, ratedCount,
	)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// GetReport returns a report by ID, or nil if it does not exist.
func (db *DB) GetReport(id int64) (*Report, error) {
	row := db.conn.QueryRow(
		`SELECT id, title, summary, body_markdown, movie_count, rated_count, generated_at
		FROM reports WHERE id = ?`, id,
	)

	var r Report
	if err := row.Scan(&r.ID, &r.Title, &r.Summary, &r.BodyMarkdown,
		&r.MovieCount, &r.RatedCount, &r.GeneratedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &r, nil
}

// GetAllReports returns all reports, newest first.
func (db *DB) GetAllReports() ([]Report, error) {
	rows, err := db.conn.Query(
		`SELECT id, title, summary, body_markdown, movie_count, rated_count, generated_at
		FROM reports ORDER BY id DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reports []Report
	for rows.Next() {
		var r Report
		if err := rows.Scan(&r.ID, &r.Title, &r.Summary, &r.BodyMarkdown,
			&r.MovieCount, &r.RatedCount, &r.GeneratedAt); err != nil {
			return nil, err
		}
		reports = append(reports, r)
	}
	return reports, rows.Err()
}

// GetStats returns aggregate database statistics.
func (db *DB) GetStats() (*Stats, error) {
	s := &Stats{}

	queries := []struct {
		sql  string
		dest *int
	}{
		{"SELECT COUNT(*) FROM movies", &s.Movies},
		{"SELECT COUNT(*) FROM rating_stats", &s.RatedMovies},
		{"SELECT COUNT(*) FROM people", &s.People},
		{"SELECT COUNT(DISTINCT genre) FROM genre_tags", &s.Genres},
		{"SELECT COUNT(*) FROM director_links", &s.DirectorLinks},
		{"SELECT COUNT(*) FROM role_links", &s.RoleLinks},
		{"SELECT COUNT(*) FROM reports", &s.Reports},
	}

	for _, q := range queries {
		if err := db.conn.QueryRow(q.sql).Scan(q.dest); err != nil {
			return nil, err
		}
	}

	return s, nil
}
