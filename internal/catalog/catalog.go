// Package catalog persists show and episode metadata in SQLite.
package catalog

import (
	"time"
)

// Show is one television show known to the catalog.
// LastRefreshed is nil until episode data has been fetched at least once;
// staleness is advisory and never acted on by this package.
type Show struct {
	ID            int64
	Title         string
	Aliases       []string
	SourceRef     string // provider reference, e.g. the epguides show URL
	LastRefreshed *time.Time
}

// Stale reports whether the show's episode data is older than maxAge.
// A show that was never refreshed is always stale.
func (s *Show) Stale(maxAge time.Duration) bool {
	if s.LastRefreshed == nil {
		return true
	}
	return time.Since(*s.LastRefreshed) > maxAge
}

// Episode is one episode of a show. (Season, Number) is unique within a
// show; season 0 denotes specials.
type Episode struct {
	ID      int64
	ShowID  int64
	Season  int
	Number  int
	Title   string
	AirDate *time.Time
}
