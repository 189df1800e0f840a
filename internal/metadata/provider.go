// Package metadata orchestrates fetching show and episode data from a
// remote provider and caching it in the catalog.
package metadata

import (
	"context"
	"errors"

	"github.com/vmunix/renamarr/internal/catalog"
)

// ErrFetch indicates the remote provider failed (network or parse).
// Callers fall back to cached data when they see this.
var ErrFetch = errors.New("metadata fetch failed")

// Provider fetches show and episode data from a remote source.
// Implementations own all transport concerns; consumers only see
// normalized records.
type Provider interface {
	// FetchShowList returns every show the source knows about.
	FetchShowList(ctx context.Context) ([]*catalog.Show, error)

	// FetchEpisodes returns all episodes for the show identified by
	// sourceRef.
	FetchEpisodes(ctx context.Context, sourceRef string) ([]*catalog.Episode, error)
}
