package database

import "database/sql"

// InsertPerson inserts a person. Duplicate IDs are ignored.
func (db *DB) InsertPerson(id, name string) (bool, error) {
	result, err := db.conn.Exec(
		"INSERT OR IGNORE INTO people (id, name) VALUES (?, ?)", id, name,
	)
	if err != nil {
		return false, err
	}
	n, err := result.RowsAffected()
	return n > 0, err
}

// GetPersonByID returns a person by ID, or nil if unknown.
func (db *DB) GetPersonByID(id string) (*Person, error) {
	row := db.conn.QueryRow("SELECT id, name FROM people WHERE id = ?", id)

	var p Person
	if err := row.Scan(&p.ID, &p.Name); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// GetAllPeople returns every person in the catalog.
func (db *DB) GetAllPeople() ([]Person, error) {
	rows, err := db.conn.Query("SELECT id, name FROM people")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var people []Person
	for rows.Next() {
		var p Person
		if err := rows.Scan(&p.ID, &p.Name); err != nil {
			return nil, err
		}
		people = append(people, p)
	}
	return people, rows.Err()
}

// InsertDirectorLink links a movie to a director. Duplicates are ignored.
func (db *DB) InsertDirectorLink(movieID, personID string) (bool, error) {
	result, err := db.conn.Exec(
		"INSERT OR IGNORE INTO director_links (movie_id, person_id) VALUES (?, ?)",
		movieID, personID,
	)
	if err != nil {
		return false, err
	}
	n, err := result.RowsAffected()
	return n > 0, err
}

// GetAllDirectorLinks returns every (movie, director) association.
func (db *DB) GetAllDirectorLinks() ([]DirectorLink, error) {
	rows, err := db.conn.Query("SELECT movie_id, person_id FROM director_links")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var links []DirectorLink
	for rows.Next() {
		var l DirectorLink
		if err := rows.Scan(&l.MovieID, &l.PersonID); err != nil {
			return nil, err
		}
		links = append(links, l)
	}
	return links, rows.Err()
}

// InsertRoleLink links a movie to a contributor in a role category.
// Duplicates are ignored.
func (db *DB) InsertRoleLink(movieID, personID, category string) (bool, error) {
	result, err := db.conn.Exec(
		"INSERT OR IGNORE INTO role_links (movie_id, person_id, category) VALUES (?, ?, ?)",
		movieID, personID, category,
	)
	if err != nil {
		return false, err
	}
	n, err := result.RowsAffected()
	return n > 0, err
}

// GetRoleLinksByCategory returns role links whose category is in the given
// set. An empty set returns all role links.
func (db *DB) GetRoleLinksByCategory(categories []string) ([]RoleLink, error) {
	query := "SELECT movie_id, person_id, category FROM role_links"
	var args []any
	if len(categories) > 0 {
		query += " WHERE category IN (?" // first placeholder
		args = append(args, categories[0])
		for _, c := range categories[1:] {
			query += ", ?"
			args = append(args, c)
		}
		query += ")"
	}

	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var links []RoleLink
	for rows.Next() {
		var l RoleLink
		if err := rows.Scan(&l.MovieID, &l.PersonID, &l.Category); err != nil {
			return nil, err
		}
		links = append(links, l)
	}
	return links, rows.Err()
}
