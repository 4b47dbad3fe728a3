package storage

import (
	"context"
	"os"
	"testing"

	"metar_parser/internal/metar"
)

// setupTestPostgres creates a test database connection.
// Returns nil if no PostgreSQL connection is available.
func setupTestPostgres(t *testing.T) *PostgresDB {
	t.Helper()

	host := os.Getenv("POSTGRES_HOST")
	if host == "" {
		host = "localhost"
	}
	user := os.Getenv("POSTGRES_USER")
	if user == "" {
		user = "metar"
	}
	password := os.Getenv("POSTGRES_PASSWORD")
	if password == "" {
		password = "metar"
	}
	database := os.Getenv("POSTGRES_DB")
	if database == "" {
		database = "metar_state"
	}

	ctx := context.Background()
	pg, err := OpenPostgres(ctx, PostgresConfig{
		Host:     host,
		Port:     5432,
		User:     user,
		Password: password,
		Database: database,
	})
	if err != nil {
		return nil
	}

	// Ensure schema exists.
	if err := pg.CreateSchema(ctx); err != nil {
		pg.Close()
		return nil
	}

	return pg
}

func TestUpsertObservation(t *testing.T) {
	pg := setupTestPostgres(t)
	if pg == nil {
		t.Skip("No PostgreSQL connection available")
	}
	defer pg.Close()

	ctx := context.Background()

	cleanup := func() {
		_, _ = pg.pool.Exec(ctx, "DELETE FROM stations WHERE station_id = 'ZZZZ'")
	}
	cleanup()
	defer cleanup()

	bulletin := "Test Station, Testland (ZZZZ) 51-14N 006-45E 37M\n" +
		"Aug 29, 2026 - 10:30 AM EDT / 2026.08.29 1430 UTC\n" +
		"Temperature: 68 F (20 C)\n" +
		"Relative Humidity: 55%\n"

	rep, err := metar.Decode("ZZZZ", bulletin)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if err := pg.UpsertObservation(ctx, rep); err != nil {
		t.Fatalf("first upsert failed: %v", err)
	}

	// Second upsert bumps report_count rather than inserting a new row.
	if err := pg.UpsertObservation(ctx, rep); err != nil {
		t.Fatalf("second upsert failed: %v", err)
	}

	s, err := pg.GetStation(ctx, "ZZZZ")
	if err != nil {
		t.Fatalf("GetStation: %v", err)
	}
	if s == nil {
		t.Fatal("GetStation returned nil for stored station")
	}
	if s.City != "Test Station" || s.Country != "Testland" {
		t.Errorf("station location = %q/%q, want Test Station/Testland", s.City, s.Country)
	}
	if s.ReportCount != 2 {
		t.Errorf("ReportCount = %d, want 2", s.ReportCount)
	}
	if s.LastObserved == nil {
		t.Error("LastObserved not stored")
	}
	if s.Latitude == nil {
		t.Error("Latitude not stored")
	}
	if s.Observation == "" {
		t.Error("Observation JSON not stored")
	}
}

func TestGetStationMissing(t *testing.T) {
	pg := setupTestPostgres(t)
	if pg == nil {
		t.Skip("No PostgreSQL connection available")
	}
	defer pg.Close()

	s, err := pg.GetStation(context.Background(), "QQQQ")
	if err != nil {
		t.Fatalf("GetStation: %v", err)
	}
	if s != nil {
		t.Errorf("GetStation for unknown station = %+v, want nil", s)
	}
}
