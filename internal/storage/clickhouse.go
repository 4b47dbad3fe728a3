package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"

	"metar_parser/internal/metar"
)

// ClickHouseConfig holds ClickHouse connection settings.
type ClickHouseConfig struct {
	Host     string
	Port     int
	Database string
	User     string
	Password string
}

// ClickHouseDB wraps a ClickHouse connection for observation history.
type ClickHouseDB struct {
	conn driver.Conn
}

// Conn returns the underlying ClickHouse connection for direct queries.
func (d *ClickHouseDB) Conn() driver.Conn {
	return d.conn
}

// OpenClickHouse opens a connection to ClickHouse.
func OpenClickHouse(ctx context.Context, cfg ClickHouseConfig) (*ClickHouseDB, error) {
	conn, err := clickhouse.Open(&clickhouse.Options{
		Addr: []string{fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)},
		Auth: clickhouse.Auth{
			Database: cfg.Database,
			Username: cfg.User,
			Password: cfg.Password,
		},
		Settings: clickhouse.Settings{
			"max_execution_time": 60,
		},
		DialTimeout:     10 * time.Second,
		MaxOpenConns:    10,
		MaxIdleConns:    5,
		ConnMaxLifetime: time.Hour,
	})
	if err != nil {
		return nil, fmt.Errorf("open clickhouse: %w", err)
	}

	// Test the connection.
	if err := conn.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping clickhouse: %w", err)
	}

	return &ClickHouseDB{conn: conn}, nil
}

// Close closes the ClickHouse connection.
func (d *ClickHouseDB) Close() error {
	return d.conn.Close()
}

// CreateSchema creates the ClickHouse tables.
func (d *ClickHouseDB) CreateSchema(ctx context.Context) error {
	query := `CREATE TABLE IF NOT EXISTS observations (
		station_id      LowCardinality(String),
		observed_at     DateTime,
		cycle           UInt8,
		temperature_c   Nullable(Float64),
		dew_point_c     Nullable(Float64),
		wind_dir        Nullable(Int16),
		wind_compass    LowCardinality(String),
		wind_speed_mph  Nullable(Float64),
		visibility_mi   Nullable(Float64),
		humidity_pct    Nullable(UInt8),
		pressure_hpa    Nullable(Float64),
		weather         String,
		sky_conditions  String,
		raw_metar       String,
		recorded_at     DateTime64(3) DEFAULT now64(3)
	)
	ENGINE = MergeTree()
	PARTITION BY toYYYYMM(observed_at)
	ORDER BY (station_id, observed_at)
	SETTINGS index_granularity = 8192`

	if err := d.conn.Exec(ctx, query); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Observation is one historical weather observation row.
type Observation struct {
	StationID      string
	ObservedAt     time.Time
	Cycle          uint8
	TemperatureC   *float64
	DewPointC      *float64
	WindDir        *int16
	WindCompass    string
	WindSpeedMPH   *float64
	VisibilityMi   *float64
	HumidityPct    *uint8
	PressureHPa    *float64
	Weather        string
	SkyConditions  string
	RawMetar       string
	RecordedAt     time.Time
}

// InsertObservation appends a decoded report to the observation
// history. Reports without a parseable observation time are skipped.
func (d *ClickHouseDB) InsertObservation(ctx context.Context, rep *metar.WeatherReport) error {
	observedAt, ok := rep.ObservedAt()
	if !ok {
		return nil
	}

	var windDir *int16
	if rep.WindDirection != nil {
		v := int16(*rep.WindDirection)
		windDir = &v
	}
	var humidity *uint8
	if rep.Humidity != nil {
		v := uint8(*rep.Humidity)
		humidity = &v
	}

	err := d.conn.Exec(ctx, `
		INSERT INTO observations (station_id, observed_at, cycle, temperature_c, dew_point_c, wind_dir, wind_compass, wind_speed_mph, visibility_mi, humidity_pct, pressure_hpa, weather, sky_conditions, raw_metar)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, rep.StationID, observedAt, uint8(rep.Cycle), rep.TemperatureCelsius, rep.DewPointCelsius,
		windDir, rep.WindCompass, rep.WindSpeedMilesPerHour, rep.VisibilityMiles, humidity,
		rep.PressurehPa, rep.Weather, rep.SkyConditions, rep.RawMetarCode)
	if err != nil {
		return fmt.Errorf("insert observation: %w", err)
	}
	return nil
}

// History retrieves observations for a station since the given time,
// newest first.
func (d *ClickHouseDB) History(ctx context.Context, stationID string, since time.Time, limit int) ([]Observation, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := d.conn.Query(ctx, `
		SELECT station_id, observed_at, cycle, temperature_c, dew_point_c, wind_dir, wind_compass, wind_speed_mph, visibility_mi, humidity_pct, pressure_hpa, weather, sky_conditions, raw_metar, recorded_at
		FROM observations
		WHERE station_id = ? AND observed_at >= ?
		ORDER BY observed_at DESC
		LIMIT ?
	`, stationID, since, limit)
	if err != nil {
		return nil, fmt.Errorf("query observations: %w", err)
	}
	defer rows.Close()

	var observations []Observation
	for rows.Next() {
		var o Observation
		err := rows.Scan(&o.StationID, &o.ObservedAt, &o.Cycle, &o.TemperatureC, &o.DewPointC,
			&o.WindDir, &o.WindCompass, &o.WindSpeedMPH, &o.VisibilityMi, &o.HumidityPct,
			&o.PressureHPa, &o.Weather, &o.SkyConditions, &o.RawMetar, &o.RecordedAt)
		if err != nil {
			return nil, fmt.Errorf("scan observation: %w", err)
		}
		observations = append(observations, o)
	}
	return observations, rows.Err()
}

// CountByStation returns observation counts grouped by station.
func (d *ClickHouseDB) CountByStation(ctx context.Context) (map[string]uint64, error) {
	counts := make(map[string]uint64)
	rows, err := d.conn.Query(ctx, `SELECT station_id, COUNT(*) FROM observations GROUP BY station_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var station string
		var count uint64
		if err := rows.Scan(&station, &count); err != nil {
			return nil, err
		}
		counts[station] = count
	}
	return counts, rows.Err()
}
