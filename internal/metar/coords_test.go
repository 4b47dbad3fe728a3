package metar

import (
	"errors"
	"math"
	"testing"
)

func TestParseLatLong(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"51-14N", 51.0 + 14.0/60.0},
		{"51-14S", -(51.0 + 14.0/60.0)},
		{"004-46E", 4.0 + 46.0/60.0},
		{"056-07W", -(56.0 + 7.0/60.0)},
		{"52-18-36N", 52.0 + 18.0/60.0 + 36.0/3600.0},
		{"120-30-15W", -(120.0 + 30.0/60.0 + 15.0/3600.0)},
		{"51N", 51.0},
	}
	for _, tt := range tests {
		got, err := ParseLatLong(tt.in)
		if err != nil {
			t.Errorf("ParseLatLong(%q) error: %v", tt.in, err)
			continue
		}
		if got == nil {
			t.Errorf("ParseLatLong(%q) = nil, want %v", tt.in, tt.want)
			continue
		}
		if math.Abs(*got-tt.want) > 1e-9 {
			t.Errorf("ParseLatLong(%q) = %v, want %v", tt.in, *got, tt.want)
		}
	}
}

func TestParseLatLongOForZero(t *testing.T) {
	// Some stations put the letter O where a zero belongs.
	typo, err := ParseLatLong("O1-14N")
	if err != nil {
		t.Fatalf("ParseLatLong(O1-14N) error: %v", err)
	}
	clean, err := ParseLatLong("01-14N")
	if err != nil {
		t.Fatalf("ParseLatLong(01-14N) error: %v", err)
	}
	if *typo != *clean {
		t.Errorf("O-typo coordinate = %v, want %v", *typo, *clean)
	}
}

func TestParseLatLongEmpty(t *testing.T) {
	got, err := ParseLatLong("")
	if err != nil {
		t.Fatalf("ParseLatLong(\"\") error: %v", err)
	}
	if got != nil {
		t.Errorf("ParseLatLong(\"\") = %v, want nil", *got)
	}
}

func TestParseLatLongMalformed(t *testing.T) {
	for _, in := range []string{"abc-14N", "51-xxN", "-N"} {
		_, err := ParseLatLong(in)
		var mv *MalformedValueError
		if !errors.As(err, &mv) {
			t.Errorf("ParseLatLong(%q) error = %v, want MalformedValueError", in, err)
		}
	}
}
