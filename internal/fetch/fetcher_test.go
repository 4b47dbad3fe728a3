package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

const testBulletin = `Vilnius, Lithuania (EYVI) 54-38N 025-06E 156M
Aug 29, 2026 - 10:30 AM EDT / 2026.08.29 1430 UTC
Wind: from the NW (320 degrees) at 15 MPH (13 KT):0
Temperature: 68 F (20 C)
Sky conditions: mostly clear
ob: EYVI 291430Z 32013KT 9999 FEW030 20/12 Q1014
cycle: 14
`

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/EYVI.TXT" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(testBulletin))
	}))
	defer srv.Close()

	f := New(WithBaseURL(srv.URL + "/"))

	raw, err := f.Fetch(context.Background(), "eyvi")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if raw != testBulletin {
		t.Errorf("Fetch body = %q, want bulletin", raw)
	}
}

func TestFetchReport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(testBulletin))
	}))
	defer srv.Close()

	f := New(WithBaseURL(srv.URL + "/"))

	rep, err := f.FetchReport(context.Background(), "EYVI")
	if err != nil {
		t.Fatalf("FetchReport: %v", err)
	}
	if !rep.Parsed() {
		t.Error("report not parsed")
	}
	if rep.StationID != "EYVI" {
		t.Errorf("StationID = %q, want EYVI", rep.StationID)
	}
	if rep.TemperatureCelsius == nil || *rep.TemperatureCelsius != 20 {
		t.Errorf("TemperatureCelsius = %v, want 20", rep.TemperatureCelsius)
	}
	if rep.ReportURL != srv.URL+"/EYVI.TXT" {
		t.Errorf("ReportURL = %q", rep.ReportURL)
	}
}

func TestFetchUnknownStation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	f := New(WithBaseURL(srv.URL + "/"))

	_, err := f.Fetch(context.Background(), "XXXX")
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("Fetch error = %v, want StatusError", err)
	}
	if statusErr.Code != http.StatusNotFound {
		t.Errorf("StatusError.Code = %d, want 404", statusErr.Code)
	}
}

func TestFetchEmptyID(t *testing.T) {
	f := New()
	if _, err := f.Fetch(context.Background(), "  "); !errors.Is(err, ErrEmptyID) {
		t.Errorf("Fetch error = %v, want ErrEmptyID", err)
	}
}
