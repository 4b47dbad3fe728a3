// Package fetch retrieves decoded METAR bulletins from the NOAA
// weather server.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"metar_parser/internal/metar"
)

// ErrEmptyID is returned when no station ID was given.
var ErrEmptyID = errors.New("empty station ID")

// StatusError is returned when the weather server answers with a
// non-200 status. An unknown station ID shows up as a 404.
type StatusError struct {
	StationID string
	Code      int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fetching report for %s: status %d", e.StationID, e.Code)
}

// Fetcher downloads decoded bulletins over HTTP.
type Fetcher struct {
	client  *resty.Client
	baseURL string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithBaseURL points the fetcher at a different report server. Used by
// tests and by deployments with a local NOAA mirror.
func WithBaseURL(url string) Option {
	return func(f *Fetcher) {
		f.baseURL = url
	}
}

// WithProxy routes requests through an HTTP proxy.
func WithProxy(proxyURL string) Option {
	return func(f *Fetcher) {
		f.client.SetProxy(proxyURL)
	}
}

// WithTimeout overrides the default 30 second request timeout.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.client.SetTimeout(d)
	}
}

// New creates a fetcher with retry and timeout defaults suitable for
// the NOAA server.
func New(opts ...Option) *Fetcher {
	client := resty.New()
	client.SetTimeout(30 * time.Second)
	client.SetRetryCount(3)
	client.SetRetryWaitTime(2 * time.Second)

	f := &Fetcher{
		client:  client,
		baseURL: metar.DefaultBaseURL,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// ReportURL returns the URL the bulletin for a station is fetched from.
func (f *Fetcher) ReportURL(stationID string) string {
	return f.baseURL + strings.ToUpper(stationID) + ".TXT"
}

// Fetch downloads the raw bulletin text for a station. The station ID
// is case-insensitive.
func (f *Fetcher) Fetch(ctx context.Context, stationID string) (string, error) {
	stationID = strings.ToUpper(strings.TrimSpace(stationID))
	if stationID == "" {
		return "", ErrEmptyID
	}

	resp, err := f.client.R().
		SetContext(ctx).
		Get(f.ReportURL(stationID))
	if err != nil {
		return "", fmt.Errorf("fetching report for %s: %w", stationID, err)
	}
	if resp.StatusCode() != 200 {
		return "", &StatusError{StationID: stationID, Code: resp.StatusCode()}
	}
	return string(resp.Body()), nil
}

// FetchReport downloads and decodes the bulletin for a station in one
// call.
func (f *Fetcher) FetchReport(ctx context.Context, stationID string) (*metar.WeatherReport, error) {
	raw, err := f.Fetch(ctx, stationID)
	if err != nil {
		return nil, err
	}
	rep := metar.NewFromReport(stationID, raw)
	rep.ReportURL = f.ReportURL(stationID)
	if err := rep.ParseReport(); err != nil {
		return nil, fmt.Errorf("decoding report for %s: %w", rep.StationID, err)
	}
	return rep, nil
}
