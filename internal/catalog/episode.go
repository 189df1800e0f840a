package catalog

import (
	"fmt"
)

// GetEpisodes returns all episodes for a show ordered by season then number.
func (s *Store) GetEpisodes(showID int64) ([]*Episode, error) {
	rows, err := s.db.Query(`
		SELECT id, show_id, season, number, title, air_date
		FROM episodes WHERE show_id = ?
		ORDER BY season, number`, showID)
	if err != nil {
		return nil, fmt.Errorf("get episodes: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []*Episode
	for rows.Next() {
		e := &Episode{}
		if err := rows.Scan(&e.ID, &e.ShowID, &e.Season, &e.Number, &e.Title, &e.AirDate); err != nil {
			return nil, fmt.Errorf("scan episode: %w", err)
		}
		results = append(results, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate episodes: %w", err)
	}
	return results, nil
}

// PutEpisodes replaces the stored episode set for a show.
// Duplicate (season, number) entries in the input are dropped, keeping
// the first occurrence. The replacement is transactional: readers never
// observe a partially written episode set.
func (s *Store) PutEpisodes(showID int64, episodes []*Episode) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec("DELETE FROM episodes WHERE show_id = ?", showID); err != nil {
		return fmt.Errorf("clear episodes: %w", mapSQLiteError(err))
	}

	stmt, err := tx.Prepare(`
		INSERT INTO episodes (show_id, season, number, title, air_date)
		VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	seen := make(map[[2]int]bool, len(episodes))
	for _, e := range episodes {
		key := [2]int{e.Season, e.Number}
		if seen[key] {
			continue
		}
		seen[key] = true

		result, err := stmt.Exec(showID, e.Season, e.Number, e.Title, e.AirDate)
		if err != nil {
			return fmt.Errorf("insert episode S%02dE%02d: %w", e.Season, e.Number, mapSQLiteError(err))
		}
		if id, err := result.LastInsertId(); err == nil {
			e.ID = id
		}
		e.ShowID = showID
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
