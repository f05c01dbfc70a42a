package database

import "database/sql"

// InsertRatingStat inserts or replaces the rating statistics for a movie.
// Re-imports carry fresher vote counts, so last write wins.
func (db *DB) InsertRatingStat(movieID string, avgRating float64, totalVotes int) error {
	_, err := db.conn.Exec(
		`INSERT OR REPLACE INTO rating_stats (movie_id, avg_rating, total_votes)
		VALUES (?, ?, ?)`,
		movieID, avgRating, totalVotes,
	)
	return err
}

// GetRatingStat returns the rating statistics for a movie, or nil when the
// movie is unrated.
func (db *DB) GetRatingStat(movieID string) (*RatingStat, error) {
	row := db.conn.QueryRow(
		"SELECT movie_id, avg_rating, total_votes FROM rating_stats WHERE movie_id = ?",
		movieID,
	)

	var rs RatingStat
	if err := row.Scan(&rs.MovieID, &rs.AvgRating, &rs.TotalVotes); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &rs, nil
}

// GetAllRatingStats returns the rating statistics for every rated movie.
func (db *DB) GetAllRatingStats() ([]RatingStat, error) {
	rows, err := db.conn.Query("SELECT movie_id, avg_rating, total_votes FROM rating_stats")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []RatingStat
	for rows.Next() {
		var rs RatingStat
		if err := rows.Scan(&rs.MovieID, &rs.AvgRating, &rs.TotalVotes); err != nil {
			return nil, err
		}
		stats = append(stats, rs)
	}
	return stats, rows.Err()
}
