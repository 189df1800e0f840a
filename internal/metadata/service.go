package metadata

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/vmunix/renamarr/internal/catalog"
)

// Service provides cached access to show and episode metadata.
// Refreshes are explicit: stale data is surfaced via Show.LastRefreshed,
// never silently replaced, unless the caller opts in to AutoRefresh.
type Service struct {
	store    *catalog.Store
	provider Provider
	log      *slog.Logger

	// AutoRefresh makes Episodes refresh stale shows on read.
	// Off by default; whether refresh is user-initiated is caller policy.
	AutoRefresh bool

	// StaleAfter is the advisory staleness horizon used by AutoRefresh.
	StaleAfter time.Duration

	group singleflight.Group
}

// NewService creates a metadata service.
func NewService(store *catalog.Store, provider Provider, log *slog.Logger) *Service {
	return &Service{
		store:      store,
		provider:   provider,
		log:        log,
		StaleAfter: 7 * 24 * time.Hour,
	}
}

// RefreshShowList fetches the remote show list and upserts it into the
// catalog. Returns the number of shows stored.
func (s *Service) RefreshShowList(ctx context.Context) (int, error) {
	shows, err := s.provider.FetchShowList(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: show list: %v", ErrFetch, err)
	}

	for _, show := range shows {
		if err := s.store.PutShow(show); err != nil {
			return 0, fmt.Errorf("store show %q: %w", show.Title, err)
		}
	}

	s.log.Info("refreshed show list", "shows", len(shows))
	return len(shows), nil
}

// Shows lists catalog shows matching the optional title filter.
// An empty catalog triggers a one-time show list fetch.
func (s *Service) Shows(ctx context.Context, filter string) ([]*catalog.Show, error) {
	shows, err := s.store.ListShows(filter)
	if err != nil {
		return nil, err
	}
	if len(shows) > 0 {
		return shows, nil
	}

	all, err := s.store.ListShows("")
	if err != nil {
		return nil, err
	}
	if len(all) > 0 {
		return shows, nil // catalog populated, filter just matched nothing
	}

	if _, err := s.RefreshShowList(ctx); err != nil {
		return nil, err
	}
	return s.store.ListShows(filter)
}

// Episodes returns the episode set for a show along with whether the
// data is fresh (fetched during this call) or served from the cache.
// With forceRefresh the provider is always consulted; a provider failure
// falls back to the cached copy when one exists.
func (s *Service) Episodes(ctx context.Context, show *catalog.Show, forceRefresh bool) ([]*catalog.Episode, bool, error) {
	needsRefresh := forceRefresh ||
		show.LastRefreshed == nil ||
		(s.AutoRefresh && show.Stale(s.StaleAfter))

	if !needsRefresh {
		episodes, err := s.store.GetEpisodes(show.ID)
		return episodes, false, err
	}

	episodes, err := s.Refresh(ctx, show)
	if err == nil {
		return episodes, true, nil
	}

	// Stale cache is the designed fallback for fetch failures.
	cached, cacheErr := s.store.GetEpisodes(show.ID)
	if cacheErr != nil || len(cached) == 0 {
		return nil, false, err
	}
	s.log.Warn("provider unavailable, using cached episodes",
		"show", show.Title, "error", err, "last_refreshed", show.LastRefreshed)
	return cached, false, nil
}

// Refresh fetches the episode set for a show from the provider and
// replaces the cached copy. Concurrent refreshes of the same show are
// collapsed into a single provider call; refreshes of different shows
// proceed independently.
func (s *Service) Refresh(ctx context.Context, show *catalog.Show) ([]*catalog.Episode, error) {
	key := fmt.Sprintf("refresh:%d", show.ID)

	result, err, _ := s.group.Do(key, func() (any, error) {
		episodes, err := s.provider.FetchEpisodes(ctx, show.SourceRef)
		if err != nil {
			return nil, fmt.Errorf("%w: episodes for %q: %v", ErrFetch, show.Title, err)
		}

		if err := s.store.PutEpisodes(show.ID, episodes); err != nil {
			return nil, fmt.Errorf("store episodes: %w", err)
		}

		now := time.Now()
		if err := s.store.MarkRefreshed(show.ID, now); err != nil {
			return nil, err
		}
		show.LastRefreshed = &now

		s.log.Info("refreshed episodes", "show", show.Title, "episodes", len(episodes))

		// Read back to get the deduplicated, ordered set.
		return s.store.GetEpisodes(show.ID)
	})
	if err != nil {
		return nil, err
	}
	return result.([]*catalog.Episode), nil
}
