package catalog

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

func scanShow(row interface{ Scan(...any) error }) (*Show, error) {
	s := &Show{}
	var aliases string
	if err := row.Scan(&s.ID, &s.Title, &aliases, &s.SourceRef, &s.LastRefreshed); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(aliases), &s.Aliases); err != nil {
		return nil, fmt.Errorf("decode aliases: %w", err)
	}
	return s, nil
}

func putShow(q querier, s *Show) error {
	aliases, err := json.Marshal(s.Aliases)
	if err != nil {
		return fmt.Errorf("encode aliases: %w", err)
	}
	if s.Aliases == nil {
		aliases = []byte("[]")
	}

	_, err = q.Exec(`
		INSERT INTO shows (title, aliases, source_ref, last_refreshed)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(source_ref) DO UPDATE SET
			title = excluded.title,
			aliases = excluded.aliases,
			last_refreshed = COALESCE(excluded.last_refreshed, shows.last_refreshed)`,
		s.Title, string(aliases), s.SourceRef, s.LastRefreshed,
	)
	if err != nil {
		return fmt.Errorf("put show: %w", mapSQLiteError(err))
	}

	// Upserts don't reliably report the row id; read it back by source_ref.
	row := q.QueryRow("SELECT id FROM shows WHERE source_ref = ?", s.SourceRef)
	if err := row.Scan(&s.ID); err != nil {
		return fmt.Errorf("get show id: %w", mapSQLiteError(err))
	}
	return nil
}

// PutShow inserts or updates a show, keyed by its source reference.
// Sets ID on the struct. A nil LastRefreshed never clears a stored value.
func (s *Store) PutShow(show *Show) error { return putShow(s.db, show) }

// PutShow inserts or updates a show within a transaction.
func (t *Tx) PutShow(show *Show) error { return putShow(t.tx, show) }

func getShow(q querier, id int64) (*Show, error) {
	show, err := scanShow(q.QueryRow(`
		SELECT id, title, aliases, source_ref, last_refreshed
		FROM shows WHERE id = ?`, id))
	if err != nil {
		return nil, fmt.Errorf("get show %d: %w", id, mapSQLiteError(err))
	}
	return show, nil
}

// GetShow retrieves a show by ID.
// Returns ErrNotFound if the show does not exist.
func (s *Store) GetShow(id int64) (*Show, error) { return getShow(s.db, id) }

// GetShow retrieves a show by ID within a transaction.
func (t *Tx) GetShow(id int64) (*Show, error) { return getShow(t.tx, id) }

// GetShowByTitle finds a show by exact title, case-insensitive.
// Returns ErrNotFound when no show matches.
func (s *Store) GetShowByTitle(title string) (*Show, error) {
	show, err := scanShow(s.db.QueryRow(`
		SELECT id, title, aliases, source_ref, last_refreshed
		FROM shows WHERE title = ? COLLATE NOCASE`, title))
	if err != nil {
		return nil, fmt.Errorf("get show %q: %w", title, mapSQLiteError(err))
	}
	return show, nil
}

// ListShows returns all shows ordered by title. An optional filter
// restricts the result to titles containing the substring,
// case-insensitive.
func (s *Store) ListShows(filter string) ([]*Show, error) {
	query := "SELECT id, title, aliases, source_ref, last_refreshed FROM shows"
	var args []any
	if filter != "" {
		// LIKE is case-insensitive for ASCII in SQLite.
		query += ` WHERE title LIKE ? ESCAPE '\'`
		args = append(args, "%"+escapeLike(filter)+"%")
	}
	query += " ORDER BY title"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list shows: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []*Show
	for rows.Next() {
		show, err := scanShow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan show: %w", err)
		}
		results = append(results, show)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate shows: %w", err)
	}
	return results, nil
}

// MarkRefreshed records the time episode data was last fetched for a show.
func (s *Store) MarkRefreshed(showID int64, at time.Time) error {
	result, err := s.db.Exec("UPDATE shows SET last_refreshed = ? WHERE id = ?", at, showID)
	if err != nil {
		return fmt.Errorf("mark refreshed: %w", mapSQLiteError(err))
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("mark refreshed %d: %w", showID, ErrNotFound)
	}
	return nil
}

func escapeLike(s string) string {
	s = strings.ReplaceAll(s, "%", `\%`)
	return strings.ReplaceAll(s, "_", `\_`)
}
