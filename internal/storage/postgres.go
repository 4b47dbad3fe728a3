package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"metar_parser/internal/metar"
)

// PostgresConfig holds PostgreSQL connection settings.
type PostgresConfig struct {
	Host     string
	Port     int
	Database string
	User     string
	Password string
}

// PostgresDB wraps a PostgreSQL connection pool holding the latest
// observation per station.
type PostgresDB struct {
	pool *pgxpool.Pool
}

// OpenPostgres opens a connection pool to PostgreSQL.
func OpenPostgres(ctx context.Context, cfg PostgresConfig) (*PostgresDB, error) {
	connStr := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Database)

	poolCfg, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		return nil, fmt.Errorf("parse postgres config: %w", err)
	}

	poolCfg.MaxConns = 10
	poolCfg.MinConns = 2
	poolCfg.MaxConnLifetime = time.Hour
	poolCfg.MaxConnIdleTime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	// Test the connection.
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return &PostgresDB{pool: pool}, nil
}

// Close closes the PostgreSQL connection pool.
func (d *PostgresDB) Close() {
	d.pool.Close()
}

// Pool returns the underlying connection pool for direct queries.
func (d *PostgresDB) Pool() *pgxpool.Pool {
	return d.pool
}

// CreateSchema creates the PostgreSQL tables.
func (d *PostgresDB) CreateSchema(ctx context.Context) error {
	schema := `
	-- One row per station, holding its metadata and latest observation.
	CREATE TABLE IF NOT EXISTS stations (
		station_id      TEXT PRIMARY KEY,
		name            TEXT,
		city            TEXT,
		country         TEXT,
		latitude        DOUBLE PRECISION,
		longitude       DOUBLE PRECISION,
		altitude_m      INTEGER,
		last_observed   TIMESTAMPTZ,
		observation     JSONB,
		first_seen      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		last_seen       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		report_count    INTEGER NOT NULL DEFAULT 1
	);

	CREATE INDEX IF NOT EXISTS idx_stations_country ON stations(country);
	CREATE INDEX IF NOT EXISTS idx_stations_last_observed ON stations(last_observed);
	`

	if _, err := d.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("create postgres schema: %w", err)
	}
	return nil
}

// Station is the stored state for one reporting station.
type Station struct {
	StationID    string
	Name         string
	City         string
	Country      string
	Latitude     *float64
	Longitude    *float64
	AltitudeM    *int
	LastObserved *time.Time
	Observation  string
	FirstSeen    time.Time
	LastSeen     time.Time
	ReportCount  int
}

// UpsertObservation stores the decoded report as the station's latest
// observation, updating the station metadata alongside.
func (d *PostgresDB) UpsertObservation(ctx context.Context, rep *metar.WeatherReport) error {
	observation, err := json.Marshal(rep)
	if err != nil {
		return fmt.Errorf("marshal observation: %w", err)
	}

	lat, _ := rep.StationLatitudeFloat()
	long, _ := rep.StationLongitudeFloat()

	var observedAt *time.Time
	if t, ok := rep.ObservedAt(); ok {
		observedAt = &t
	}

	_, err = d.pool.Exec(ctx, `
		INSERT INTO stations (station_id, name, city, country, latitude, longitude, altitude_m, last_observed, observation)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (station_id) DO UPDATE SET
			name = COALESCE(NULLIF(EXCLUDED.name, ''), stations.name),
			city = COALESCE(NULLIF(EXCLUDED.city, ''), stations.city),
			country = COALESCE(NULLIF(EXCLUDED.country, ''), stations.country),
			latitude = COALESCE(EXCLUDED.latitude, stations.latitude),
			longitude = COALESCE(EXCLUDED.longitude, stations.longitude),
			altitude_m = COALESCE(EXCLUDED.altitude_m, stations.altitude_m),
			last_observed = EXCLUDED.last_observed,
			observation = EXCLUDED.observation,
			last_seen = NOW(),
			report_count = stations.report_count + 1
	`, rep.StationID, rep.StationName, rep.StationCity, rep.StationCountry,
		lat, long, rep.StationAltitude, observedAt, string(observation))
	return err
}

// GetStation retrieves a station and its latest observation.
func (d *PostgresDB) GetStation(ctx context.Context, stationID string) (*Station, error) {
	var s Station
	err := d.pool.QueryRow(ctx, `
		SELECT station_id, COALESCE(name, ''), COALESCE(city, ''), COALESCE(country, ''),
			latitude, longitude, altitude_m, last_observed, COALESCE(observation::text, ''),
			first_seen, last_seen, report_count
		FROM stations WHERE station_id = $1
	`, stationID).Scan(&s.StationID, &s.Name, &s.City, &s.Country,
		&s.Latitude, &s.Longitude, &s.AltitudeM, &s.LastObserved, &s.Observation,
		&s.FirstSeen, &s.LastSeen, &s.ReportCount)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// ListStations retrieves all known stations ordered by ID.
func (d *PostgresDB) ListStations(ctx context.Context) ([]Station, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT station_id, COALESCE(name, ''), COALESCE(city, ''), COALESCE(country, ''),
			latitude, longitude, altitude_m, last_observed, COALESCE(observation::text, ''),
			first_seen, last_seen, report_count
		FROM stations ORDER BY station_id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stations []Station
	for rows.Next() {
		var s Station
		err := rows.Scan(&s.StationID, &s.Name, &s.City, &s.Country,
			&s.Latitude, &s.Longitude, &s.AltitudeM, &s.LastObserved, &s.Observation,
			&s.FirstSeen, &s.LastSeen, &s.ReportCount)
		if err != nil {
			return nil, err
		}
		stations = append(stations, s)
	}
	return stations, rows.Err()
}
