// Package storage provides the local report cache and the optional
// database backends for decoded weather observations.
package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	_ "modernc.org/sqlite"

	"metar_parser/internal/metar"
)

// CacheTTL is how long a cached bulletin stays fresh, measured against
// the observation time embedded in the bulletin itself. Reports are
// published hourly; 65 minutes leaves slack for late publication.
const CacheTTL = 65 * time.Minute

// clock is a package-level time source so tests can freeze time via
// SetClock.
var clock clockwork.Clock = clockwork.NewRealClock()

// SetClock swaps the time source used for cache freshness checks. Pass
// nil to reset to real time.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}

// Cache stores raw bulletin text per station in a local SQLite file so
// repeated lookups within the same observation hour skip the network.
type Cache struct {
	db *sql.DB
}

// OpenCache opens or creates the cache database at the given path.
func OpenCache(path string) (*Cache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}

	// Enable WAL mode for better concurrent access.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable WAL: %w", err)
	}

	if err := createCacheSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Cache{db: db}, nil
}

// Close closes the cache database.
func (c *Cache) Close() error {
	return c.db.Close()
}

func createCacheSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS reports (
		station_id  TEXT PRIMARY KEY,
		report      TEXT NOT NULL,
		observed_at TEXT,
		fetched_at  TEXT NOT NULL
	);
	`
	_, err := db.Exec(schema)
	return err
}

// Put stores a fetched bulletin for a station, replacing any previous
// one. The observation time is read out of the bulletin text; bulletins
// without one fall back to the fetch time for freshness.
func (c *Cache) Put(stationID, report string) error {
	var observedAt sql.NullString
	if t, ok := metar.ExtractObservationTime(report); ok {
		observedAt = sql.NullString{String: t.Format(time.RFC3339), Valid: true}
	}

	_, err := c.db.Exec(`
		INSERT INTO reports (station_id, report, observed_at, fetched_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (station_id) DO UPDATE SET
			report = excluded.report,
			observed_at = excluded.observed_at,
			fetched_at = excluded.fetched_at
	`, stationID, report, observedAt, clock.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("cache report: %w", err)
	}
	return nil
}

// Get returns the cached bulletin for a station if it is still fresh.
// Stale or missing entries return ok=false.
func (c *Cache) Get(stationID string) (report string, ok bool, err error) {
	var observedAt sql.NullString
	var fetchedAt string

	row := c.db.QueryRow(`SELECT report, observed_at, fetched_at FROM reports WHERE station_id = ?`, stationID)
	if err := row.Scan(&report, &observedAt, &fetchedAt); err != nil {
		if err == sql.ErrNoRows {
			return "", false, nil
		}
		return "", false, fmt.Errorf("read cache: %w", err)
	}

	ref := fetchedAt
	if observedAt.Valid {
		ref = observedAt.String
	}
	t, err := time.Parse(time.RFC3339, ref)
	if err != nil {
		return "", false, nil
	}
	if clock.Now().Sub(t) >= CacheTTL {
		return "", false, nil
	}
	return report, true, nil
}

// Purge removes the cached bulletin for a station.
func (c *Cache) Purge(stationID string) error {
	_, err := c.db.Exec(`DELETE FROM reports WHERE station_id = ?`, stationID)
	return err
}
