// Package match resolves local files to catalog episodes.
package match

import (
	"errors"
	"sort"

	"github.com/hbollon/go-edlib"

	"github.com/vmunix/renamarr/internal/catalog"
	"github.com/vmunix/renamarr/pkg/epname"
)

// ErrEmptyShow indicates there are no episodes to index; matching cannot
// run for that show.
var ErrEmptyShow = errors.New("show has no episodes")

type epKey struct {
	season, number int
}

type titleEntry struct {
	normalized string
	episode    *catalog.Episode
}

// Index is the per-show lookup structure: episodes by (season, number)
// and by normalized title.
type Index struct {
	byKey    map[epKey]*catalog.Episode
	titles   []titleEntry
	absolute []*catalog.Episode // regular episodes in airing order
}

// NewIndex builds the lookup structures for one show's episode set.
// Duplicate (season, number) entries keep the first occurrence.
func NewIndex(episodes []*catalog.Episode) (*Index, error) {
	if len(episodes) == 0 {
		return nil, ErrEmptyShow
	}

	ix := &Index{byKey: make(map[epKey]*catalog.Episode, len(episodes))}

	for _, ep := range episodes {
		key := epKey{ep.Season, ep.Number}
		if _, dup := ix.byKey[key]; dup {
			continue
		}
		ix.byKey[key] = ep
		ix.titles = append(ix.titles, titleEntry{epname.Normalize(ep.Title), ep})
		if ep.Season >= 1 {
			ix.absolute = append(ix.absolute, ep)
		}
	}

	sort.SliceStable(ix.absolute, func(i, j int) bool {
		a, b := ix.absolute[i], ix.absolute[j]
		if a.Season != b.Season {
			return a.Season < b.Season
		}
		return a.Number < b.Number
	})

	return ix, nil
}

// ByKey looks up an episode by season and number.
func (ix *Index) ByKey(season, number int) (*catalog.Episode, bool) {
	ep, ok := ix.byKey[epKey{season, number}]
	return ep, ok
}

// ByAbsolute resolves an absolute episode number (1-based, specials
// excluded) against the show's airing order.
func (ix *Index) ByAbsolute(n int) (*catalog.Episode, bool) {
	if n < 1 || n > len(ix.absolute) {
		return nil, false
	}
	return ix.absolute[n-1], true
}

// Candidate is one title-match candidate with its similarity score.
type Candidate struct {
	Episode *catalog.Episode
	Score   float64
}

// ByTitle ranks all episodes by title similarity to the given text.
// Jaro-Winkler favors shared prefixes, which suits episode titles.
// Ties are broken by air date, earliest first; undated episodes last.
func (ix *Index) ByTitle(text string) []Candidate {
	normalized := epname.Normalize(text)
	if normalized == "" {
		return nil
	}

	candidates := make([]Candidate, 0, len(ix.titles))
	for _, entry := range ix.titles {
		score := float64(edlib.JaroWinklerSimilarity(normalized, entry.normalized))
		candidates = append(candidates, Candidate{Episode: entry.episode, Score: score})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		switch {
		case a.Episode.AirDate == nil:
			return false
		case b.Episode.AirDate == nil:
			return true
		default:
			return a.Episode.AirDate.Before(*b.Episode.AirDate)
		}
	})

	return candidates
}
