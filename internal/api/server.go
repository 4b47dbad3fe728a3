// Package api provides REST API endpoints for decoded weather reports.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"metar_parser/internal/fetch"
	"metar_parser/internal/metar"
	"metar_parser/internal/storage"
)

// Fetcher downloads raw bulletins. Satisfied by *fetch.Fetcher.
type Fetcher interface {
	Fetch(ctx context.Context, stationID string) (string, error)
	ReportURL(stationID string) string
}

// ReportCache stores raw bulletins between fetches. Satisfied by
// *storage.Cache.
type ReportCache interface {
	Get(stationID string) (string, bool, error)
	Put(stationID, report string) error
}

// Publisher pushes decoded reports to downstream consumers. Satisfied
// by *publish.Publisher.
type Publisher interface {
	Publish(rep *metar.WeatherReport) error
}

// Server serves decoded weather reports over HTTP.
type Server struct {
	fetcher     Fetcher
	cache       ReportCache
	publisher   Publisher
	db          *storage.DB
	port        int
	authEnabled bool
	apiKeys     map[string]bool // Simple API key auth (when enabled).
}

// Config holds configuration for the report API server.
type Config struct {
	Port        int
	AuthEnabled bool
	APIKeys     []string // List of valid API keys.
}

// NewServer creates a report API server. Cache, publisher and db are
// optional; a nil cache fetches every request, a nil publisher and db
// skip those steps.
func NewServer(fetcher Fetcher, cache ReportCache, publisher Publisher, db *storage.DB, cfg Config) *Server {
	keys := make(map[string]bool)
	for _, k := range cfg.APIKeys {
		if k != "" {
			keys[k] = true
		}
	}

	return &Server{
		fetcher:     fetcher,
		cache:       cache,
		publisher:   publisher,
		db:          db,
		port:        cfg.Port,
		authEnabled: cfg.AuthEnabled,
		apiKeys:     keys,
	}
}

// Run starts the HTTP server.
func (s *Server) Run() error {
	r := chi.NewRouter()

	// Standard middleware.
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(30 * time.Second))

	// CORS for browser access.
	r.Use(corsMiddleware)

	r.Route("/api/v1", func(r chi.Router) {
		r.Mount("/", s.Router())
	})

	addr := ":" + strconv.Itoa(s.port)
	log.Printf("Report API starting at http://localhost%s", addr)
	if s.authEnabled {
		log.Printf("Authentication: ENABLED (API key required)")
	} else {
		log.Printf("Authentication: DISABLED (open access)")
	}

	return http.ListenAndServe(addr, r)
}

// Router returns the configured chi router for embedding in other
// servers and for tests.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()

	// Optional authentication.
	if s.authEnabled {
		r.Use(s.authMiddleware)
	}

	r.Get("/health", s.handleHealth)
	r.Get("/report/{station}", s.handleGetReport)
	r.Get("/report/{station}/raw", s.handleGetRawReport)
	r.Get("/report/{station}/history", s.handleGetHistory)
	r.Get("/stations", s.handleListStations)
	r.Get("/stations/{station}", s.handleGetStation)

	return r
}

// corsMiddleware adds CORS headers for browser access.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type, X-API-Key")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// authMiddleware validates API key authentication.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Check X-API-Key header first.
		apiKey := r.Header.Get("X-API-Key")

		// Fall back to Authorization: Bearer <key>.
		if apiKey == "" {
			auth := r.Header.Get("Authorization")
			if strings.HasPrefix(auth, "Bearer ") {
				apiKey = strings.TrimPrefix(auth, "Bearer ")
			}
		}

		// Fall back to query parameter (for simple testing).
		if apiKey == "" {
			apiKey = r.URL.Query().Get("api_key")
		}

		if apiKey == "" {
			writeError(w, http.StatusUnauthorized, "API key required")
			return
		}

		if !s.apiKeys[apiKey] {
			writeError(w, http.StatusForbidden, "Invalid API key")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// DerivedValues carries the values computed from the decoded report
// rather than read out of it.
type DerivedValues struct {
	ISOTime              string   `json:"iso_time,omitempty"`
	WindSpeedMPS         *float64 `json:"wind_speed_mps,omitempty"`
	WindSpeedBeaufort    *int     `json:"wind_speed_beaufort,omitempty"`
	WindchillCelsius     *float64 `json:"windchill_c,omitempty"`
	WindchillFahrenheit  *float64 `json:"windchill_f,omitempty"`
	ApparentTemperatureC *float64 `json:"apparent_temperature_c,omitempty"`
	ApparentTemperatureF *float64 `json:"apparent_temperature_f,omitempty"`
	VisibilityKilometers *float64 `json:"visibility_km,omitempty"`
	PressureMmHg         *float64 `json:"pressure_mmhg,omitempty"`
	Latitude             *float64 `json:"latitude,omitempty"`
	Longitude            *float64 `json:"longitude,omitempty"`
}

// ReportResponse is the JSON response for report queries.
type ReportResponse struct {
	*metar.WeatherReport
	Derived DerivedValues `json:"derived"`
	Cached  bool          `json:"cached"`
}

func reportToResponse(rep *metar.WeatherReport, cached bool) ReportResponse {
	lat, _ := rep.StationLatitudeFloat()
	long, _ := rep.StationLongitudeFloat()

	return ReportResponse{
		WeatherReport: rep,
		Derived: DerivedValues{
			ISOTime:              rep.ISOTime(),
			WindSpeedMPS:         rep.WindSpeedMPS(),
			WindSpeedBeaufort:    rep.WindSpeedBeaufort(),
			WindchillCelsius:     rep.WindchillCelsius(),
			WindchillFahrenheit:  rep.WindchillFahrenheit(),
			ApparentTemperatureC: rep.ApparentTemperatureCelsius(),
			ApparentTemperatureF: rep.ApparentTemperatureFahrenheit(),
			VisibilityKilometers: rep.VisibilityKilometers(),
			PressureMmHg:         rep.PressureMmHg(),
			Latitude:             lat,
			Longitude:            long,
		},
		Cached: cached,
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// rawReport returns the bulletin text for a station, from cache when
// fresh, otherwise fetched and re-cached.
func (s *Server) rawReport(ctx context.Context, stationID string) (report string, cached bool, err error) {
	if s.cache != nil {
		report, ok, err := s.cache.Get(stationID)
		if err != nil {
			log.Printf("cache read for %s: %v", stationID, err)
		} else if ok {
			return report, true, nil
		}
	}

	report, err = s.fetcher.Fetch(ctx, stationID)
	if err != nil {
		return "", false, err
	}

	if s.cache != nil {
		if err := s.cache.Put(stationID, report); err != nil {
			log.Printf("cache write for %s: %v", stationID, err)
		}
	}
	return report, false, nil
}

func (s *Server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	stationID := strings.ToUpper(chi.URLParam(r, "station"))
	if stationID == "" {
		writeError(w, http.StatusBadRequest, "station is required")
		return
	}

	raw, cached, err := s.rawReport(r.Context(), stationID)
	if err != nil {
		writeFetchError(w, err)
		return
	}

	rep := metar.NewFromReport(stationID, raw)
	rep.ReportURL = s.fetcher.ReportURL(stationID)
	if err := rep.ParseReport(); err != nil {
		writeError(w, http.StatusBadGateway, "undecodable report: "+err.Error())
		return
	}

	// Persist and publish fresh observations only; cached ones were
	// already handled on first sight.
	if !cached {
		if s.db != nil {
			if err := s.db.Record(r.Context(), rep); err != nil {
				log.Printf("record observation for %s: %v", stationID, err)
			}
		}
		if s.publisher != nil {
			if err := s.publisher.Publish(rep); err != nil {
				log.Printf("publish observation for %s: %v", stationID, err)
			}
		}
	}

	writeJSON(w, http.StatusOK, reportToResponse(rep, cached))
}

func (s *Server) handleGetRawReport(w http.ResponseWriter, r *http.Request) {
	stationID := strings.ToUpper(chi.URLParam(r, "station"))
	if stationID == "" {
		writeError(w, http.StatusBadRequest, "station is required")
		return
	}

	raw, _, err := s.rawReport(r.Context(), stationID)
	if err != nil {
		writeFetchError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(raw))
}

func (s *Server) handleGetHistory(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		writeError(w, http.StatusNotFound, "observation history not configured")
		return
	}

	stationID := strings.ToUpper(chi.URLParam(r, "station"))
	since := time.Now().UTC().Add(-24 * time.Hour)
	if v := r.URL.Query().Get("since"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid since (use RFC3339)")
			return
		}
		since = t
	}
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = n
	}

	observations, err := s.db.CH.History(r.Context(), stationID, since, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, observations)
}

func (s *Server) handleListStations(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		writeError(w, http.StatusNotFound, "station state not configured")
		return
	}

	stations, err := s.db.PG.ListStations(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, stations)
}

func (s *Server) handleGetStation(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		writeError(w, http.StatusNotFound, "station state not configured")
		return
	}

	stationID := strings.ToUpper(chi.URLParam(r, "station"))
	station, err := s.db.PG.GetStation(r.Context(), stationID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if station == nil {
		writeError(w, http.StatusNotFound, "Unknown station")
		return
	}
	writeJSON(w, http.StatusOK, station)
}

// writeFetchError maps fetch failures to HTTP statuses: a missing
// station is a 404, anything else upstream is a 502.
func writeFetchError(w http.ResponseWriter, err error) {
	if errors.Is(err, fetch.ErrEmptyID) {
		writeError(w, http.StatusBadRequest, "station is required")
		return
	}
	var statusErr *fetch.StatusError
	if errors.As(err, &statusErr) && statusErr.Code == http.StatusNotFound {
		writeError(w, http.StatusNotFound, "Unknown station")
		return
	}
	writeError(w, http.StatusBadGateway, err.Error())
}

// Helper functions.

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
