// Package main provides the metar-server REST API for decoded weather
// reports.
//
// The server fetches decoded METAR bulletins from the NOAA weather
// server on demand, caches them locally, and serves the decoded values
// as JSON. Optionally the decoded observations are recorded to
// PostgreSQL (latest state per station) and ClickHouse (history), and
// published to NATS for downstream consumers.
//
// Usage:
//
//	metar-server [options]
//
// Options:
//
//	-port N             HTTP port (default: 8080)
//	-cache PATH         SQLite cache file (default: metar-cache.db, env: METAR_CACHE)
//	-base-url URL       Report server base URL (env: METAR_BASE_URL)
//	-proxy URL          HTTP proxy for outbound fetches (env: HTTP_PROXY)
//	-db                 Enable PostgreSQL + ClickHouse recording
//	-pg-host HOST       PostgreSQL host (default: localhost, env: POSTGRES_HOST)
//	-pg-port PORT       PostgreSQL port (default: 5432, env: POSTGRES_PORT)
//	-pg-database DB     PostgreSQL database (default: metar_state, env: POSTGRES_DATABASE)
//	-pg-user USER       PostgreSQL user (default: metar, env: POSTGRES_USER)
//	-pg-password PASS   PostgreSQL password (default: metar, env: POSTGRES_PASSWORD)
//	-ch-host HOST       ClickHouse host (default: localhost, env: CLICKHOUSE_HOST)
//	-ch-port PORT       ClickHouse port (default: 9000, env: CLICKHOUSE_PORT)
//	-ch-database DB     ClickHouse database (default: metar, env: CLICKHOUSE_DATABASE)
//	-ch-user USER       ClickHouse user (default: default, env: CLICKHOUSE_USER)
//	-ch-password PASS   ClickHouse password (env: CLICKHOUSE_PASSWORD)
//	-nats URL           NATS server URL; empty disables publishing (env: NATS_URL)
//	-nats-prefix P      NATS subject prefix (default: metar.observations)
//	-auth               Enable API key authentication
//	-api-keys KEYS      Comma-separated list of valid API keys
//
// API Endpoints:
//
//	GET /api/v1/health
//	    Health check endpoint.
//
//	GET /api/v1/report/{station}
//	    Decoded report with derived values for a station.
//
//	GET /api/v1/report/{station}/raw
//	    Raw bulletin text.
//
//	GET /api/v1/report/{station}/history?since=RFC3339&limit=N
//	    Observation history from ClickHouse (requires -db).
//
//	GET /api/v1/stations
//	GET /api/v1/stations/{station}
//	    Station state from PostgreSQL (requires -db).
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"metar_parser/internal/api"
	"metar_parser/internal/fetch"
	"metar_parser/internal/metar"
	"metar_parser/internal/publish"
	"metar_parser/internal/storage"
)

func main() {
	// Fetch and cache flags.
	port := flag.Int("port", 8080, "HTTP port for API server")
	cachePath := flag.String("cache", envOrDefault("METAR_CACHE", "metar-cache.db"), "SQLite cache file (empty disables caching)")
	baseURL := flag.String("base-url", envOrDefault("METAR_BASE_URL", metar.DefaultBaseURL), "Report server base URL")
	proxy := flag.String("proxy", envOrDefault("HTTP_PROXY", ""), "HTTP proxy URL")

	// Database flags.
	dbEnabled := flag.Bool("db", false, "Record observations to PostgreSQL and ClickHouse")
	pgHost := flag.String("pg-host", envOrDefault("POSTGRES_HOST", "localhost"), "PostgreSQL host")
	pgPort := flag.Int("pg-port", envOrDefaultInt("POSTGRES_PORT", 5432), "PostgreSQL port")
	pgUser := flag.String("pg-user", envOrDefault("POSTGRES_USER", "metar"), "PostgreSQL user")
	pgPassword := flag.String("pg-password", envOrDefault("POSTGRES_PASSWORD", "metar"), "PostgreSQL password")
	pgDB := flag.String("pg-database", envOrDefault("POSTGRES_DATABASE", "metar_state"), "PostgreSQL database")
	chHost := flag.String("ch-host", envOrDefault("CLICKHOUSE_HOST", "localhost"), "ClickHouse host")
	chPort := flag.Int("ch-port", envOrDefaultInt("CLICKHOUSE_PORT", 9000), "ClickHouse port")
	chUser := flag.String("ch-user", envOrDefault("CLICKHOUSE_USER", "default"), "ClickHouse user")
	chPassword := flag.String("ch-password", envOrDefault("CLICKHOUSE_PASSWORD", ""), "ClickHouse password")
	chDB := flag.String("ch-database", envOrDefault("CLICKHOUSE_DATABASE", "metar"), "ClickHouse database")

	// NATS flags.
	natsURL := flag.String("nats", envOrDefault("NATS_URL", ""), "NATS server URL (empty disables publishing)")
	natsPrefix := flag.String("nats-prefix", publish.DefaultSubjectPrefix, "NATS subject prefix")

	// API server flags.
	authEnabled := flag.Bool("auth", false, "Enable API key authentication")
	apiKeys := flag.String("api-keys", "", "Comma-separated list of valid API keys (when auth enabled)")

	flag.Parse()

	ctx := context.Background()

	// Fetcher.
	opts := []fetch.Option{fetch.WithBaseURL(*baseURL)}
	if *proxy != "" {
		opts = append(opts, fetch.WithProxy(*proxy))
	}
	fetcher := fetch.New(opts...)

	// Local bulletin cache.
	var cache *storage.Cache
	if *cachePath != "" {
		var err error
		cache, err = storage.OpenCache(*cachePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening cache: %v\n", err)
			os.Exit(1)
		}
		defer cache.Close()
	}

	// Optional database backends.
	var db *storage.DB
	if *dbEnabled {
		var err error
		db, err = storage.Open(ctx, storage.Config{
			ClickHouse: storage.ClickHouseConfig{
				Host:     *chHost,
				Port:     *chPort,
				Database: *chDB,
				User:     *chUser,
				Password: *chPassword,
			},
			Postgres: storage.PostgresConfig{
				Host:     *pgHost,
				Port:     *pgPort,
				Database: *pgDB,
				User:     *pgUser,
				Password: *pgPassword,
			},
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening databases: %v\n", err)
			os.Exit(1)
		}
		defer db.Close()

		if err := db.CreateSchemas(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Error creating schemas: %v\n", err)
			os.Exit(1)
		}
	}

	// Optional NATS publisher.
	var publisher *publish.Publisher
	if *natsURL != "" {
		var err error
		publisher, err = publish.Connect(*natsURL, *natsPrefix)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error connecting to NATS: %v\n", err)
			os.Exit(1)
		}
		defer publisher.Close()
	}

	// Parse API keys.
	var keys []string
	if *apiKeys != "" {
		keys = strings.Split(*apiKeys, ",")
		for i := range keys {
			keys[i] = strings.TrimSpace(keys[i])
		}
	}

	// Create and run server. The nil checks matter: a nil *Cache or
	// *Publisher stored in an interface field would not compare equal
	// to nil inside the server.
	var serverCache api.ReportCache
	if cache != nil {
		serverCache = cache
	}
	var serverPublisher api.Publisher
	if publisher != nil {
		serverPublisher = publisher
	}

	server := api.NewServer(fetcher, serverCache, serverPublisher, db, api.Config{
		Port:        *port,
		AuthEnabled: *authEnabled,
		APIKeys:     keys,
	})

	if err := server.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func envOrDefaultInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}
