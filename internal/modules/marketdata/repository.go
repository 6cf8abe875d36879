package marketdata

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// ErrNotCached is returned when no cached copy of a dataset exists.
var ErrNotCached = errors.New("dataset not cached")

// Repository persists raw dataset payloads in SQLite so the service can
// serve requests without hitting the dataset host every time. The cache
// stores the payload as fetched; parsing and cleaning happen on read.
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRepository creates a new dataset cache repository.
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("component", "dataset_repository").Logger(),
	}
}

// InitSchema creates the cache table if it does not exist.
func (r *Repository) InitSchema() error {
	_, err := r.db.Exec(`
		CREATE TABLE IF NOT EXISTS datasets (
			url_hash   TEXT PRIMARY KEY,
			url        TEXT NOT NULL,
			payload    BLOB NOT NULL,
			fetched_at INTEGER NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create datasets table: %w", err)
	}
	return nil
}

// Save stores (or replaces) the cached payload for url.
func (r *Repository) Save(url string, payload []byte, fetchedAt time.Time) error {
	_, err := r.db.Exec(`
		INSERT INTO datasets (url_hash, url, payload, fetched_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(url_hash) DO UPDATE SET
			payload    = excluded.payload,
			fetched_at = excluded.fetched_at
	`, hashURL(url), url, payload, fetchedAt.Unix())
	if err != nil {
		return fmt.Errorf("failed to cache dataset: %w", err)
	}
	r.log.Debug().Str("url", url).Int("bytes", len(payload)).Msg("Cached dataset")
	return nil
}

// Load returns the cached payload for url, or ErrNotCached.
func (r *Repository) Load(url string) (*cachedDataset, error) {
	var payload []byte
	var fetchedAt int64
	err := r.db.QueryRow(`
		SELECT payload, fetched_at FROM datasets WHERE url_hash = ?
	`, hashURL(url)).Scan(&payload, &fetchedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotCached
		}
		return nil, fmt.Errorf("failed to load cached dataset: %w", err)
	}
	return &cachedDataset{
		URL:       url,
		Payload:   payload,
		FetchedAt: time.Unix(fetchedAt, 0),
	}, nil
}

func hashURL(url string) string {
	h := sha256.Sum256([]byte(url))
	return hex.EncodeToString(h[:16])
}
