package marketdata

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Service is the read-through dataset loader: serve from the SQLite cache
// while fresh, otherwise fetch, cache, and parse. The parsed table is the
// input contract of the simulation engine (optimization.DatasetProvider).
type Service struct {
	client *Client
	repo   *Repository
	ttl    time.Duration
	log    zerolog.Logger

	mu sync.Mutex // serializes fetches so a cold cache triggers one download
}

// NewService creates a new market data service.
func NewService(client *Client, repo *Repository, ttl time.Duration, log zerolog.Logger) *Service {
	return &Service{
		client: client,
		repo:   repo,
		ttl:    ttl,
		log:    log.With().Str("component", "marketdata").Logger(),
	}
}

// Dataset implements optimization.DatasetProvider.
func (s *Service) Dataset(ctx context.Context) ([]string, [][]float64, error) {
	table, err := s.Table(ctx)
	if err != nil {
		return nil, nil, err
	}
	return table.Assets, table.Prices, nil
}

// Table returns the cleaned price table, refreshing the cache if stale.
func (s *Service) Table(ctx context.Context) (*PriceTable, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cached, err := s.repo.Load(s.client.URL())
	if err == nil && time.Since(cached.FetchedAt) < s.ttl {
		return ParseCSV(cached.Payload)
	}
	if err != nil && err != ErrNotCached {
		s.log.Warn().Err(err).Msg("Dataset cache read failed, falling back to fetch")
	}

	payload, fetchErr := s.client.Fetch(ctx)
	if fetchErr != nil {
		// A stale copy beats no copy when the host is unreachable.
		if cached != nil {
			s.log.Warn().Err(fetchErr).Msg("Dataset fetch failed, serving stale cache")
			return ParseCSV(cached.Payload)
		}
		return nil, fetchErr
	}

	if err := s.repo.Save(s.client.URL(), payload, time.Now()); err != nil {
		s.log.Warn().Err(err).Msg("Failed to cache dataset")
	}
	return ParseCSV(payload)
}

// Refresh force-fetches the dataset and replaces the cached copy. Used by
// the scheduled refresh job.
func (s *Service) Refresh(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	payload, err := s.client.Fetch(ctx)
	if err != nil {
		return err
	}
	// Validate before replacing the cache so a bad upstream payload can
	// never evict a good one.
	if _, err := ParseCSV(payload); err != nil {
		return fmt.Errorf("refused to cache unparseable dataset: %w", err)
	}
	return s.repo.Save(s.client.URL(), payload, time.Now())
}
