package metar

import (
	"math"
	"testing"
)

func TestWindchillCelsius(t *testing.T) {
	// 20 km/h expressed in mph, so the km/h seen by the formula is
	// exactly 20.
	mph := 20.0 / 1.609344

	r := &WeatherReport{
		TemperatureCelsius:    floatPtr(5),
		WindSpeedMilesPerHour: floatPtr(mph),
	}
	got := r.WindchillCelsius()
	if got == nil {
		t.Fatal("WindchillCelsius = nil")
	}

	kph := *r.WindSpeedMPS() * 3.6
	v := math.Pow(kph, 0.16)
	want := 13.12 + 0.6215*5 - 11.37*v + 0.3965*5*v
	if math.Abs(*got-want) > 1e-9 {
		t.Errorf("WindchillCelsius = %v, want %v", *got, want)
	}

	// Repeated access returns the cached value unchanged.
	second := r.WindchillCelsius()
	if second == nil || *second != *got {
		t.Errorf("second WindchillCelsius = %v, want %v", second, *got)
	}
}

func TestWindchillBelowThreshold(t *testing.T) {
	// Above 10 °C the index does not apply and the raw temperature
	// comes back.
	r := &WeatherReport{
		TemperatureCelsius:    floatPtr(15),
		WindSpeedMilesPerHour: floatPtr(20),
	}
	got := r.WindchillCelsius()
	if got == nil || *got != 15 {
		t.Errorf("WindchillCelsius = %v, want 15", got)
	}
}

func TestWindchillCalmWind(t *testing.T) {
	// 4.8 km/h is the wind floor; calm air yields the raw temperature.
	r := &WeatherReport{
		TemperatureCelsius:    floatPtr(5),
		WindSpeedMilesPerHour: floatPtr(0),
	}
	if got := r.WindchillCelsius(); got == nil || *got != 5 {
		t.Errorf("WindchillCelsius = %v, want 5", got)
	}
}

func TestWindchillAbsentInputs(t *testing.T) {
	r := &WeatherReport{}
	if got := r.WindchillCelsius(); got != nil {
		t.Errorf("WindchillCelsius = %v, want nil", *got)
	}
	if got := r.WindchillFahrenheit(); got != nil {
		t.Errorf("WindchillFahrenheit = %v, want nil", *got)
	}
}

func TestWindchillFahrenheit(t *testing.T) {
	r := &WeatherReport{
		TemperatureFahrenheit: floatPtr(30),
		WindSpeedMilesPerHour: floatPtr(10),
	}
	got := r.WindchillFahrenheit()
	if got == nil {
		t.Fatal("WindchillFahrenheit = nil")
	}
	v := math.Pow(10, 0.16)
	want := 35.74 + 0.6215*30 - 35.75*v + 0.4275*30*v
	if math.Abs(*got-want) > 1e-9 {
		t.Errorf("WindchillFahrenheit = %v, want %v", *got, want)
	}
}

func TestApparentTemperature(t *testing.T) {
	hum := 55
	r := &WeatherReport{
		TemperatureCelsius:    floatPtr(20),
		WindSpeedMilesPerHour: floatPtr(15),
		Humidity:              &hum,
	}
	got := r.ApparentTemperatureCelsius()
	if got == nil {
		t.Fatal("ApparentTemperatureCelsius = nil")
	}
	mps := 15 * 0.44704
	e := 0.55 * 6.105 * math.Pow(2.71828, (17.27*20)/(237.7+20))
	want := 20 + 0.33*e - 0.7*mps - 4.0
	if math.Abs(*got-want) > 1e-9 {
		t.Errorf("ApparentTemperatureCelsius = %v, want %v", *got, want)
	}

	f := r.ApparentTemperatureFahrenheit()
	if f == nil || math.Abs(*f-(want*1.8+32)) > 1e-9 {
		t.Errorf("ApparentTemperatureFahrenheit = %v, want %v", f, want*1.8+32)
	}

	// Absent humidity leaves the apparent temperature absent.
	r.Humidity = nil
	if got := r.ApparentTemperatureCelsius(); got != nil {
		t.Errorf("ApparentTemperatureCelsius = %v, want nil", *got)
	}
}

func TestUnitConversions(t *testing.T) {
	r := &WeatherReport{
		WindSpeedMilesPerHour: floatPtr(10),
		VisibilityMiles:       floatPtr(10),
		PressureInHg:          floatPtr(29.95),
	}

	if mps := r.WindSpeedMPS(); mps == nil || math.Abs(*mps-4.4704) > 1e-9 {
		t.Errorf("WindSpeedMPS = %v, want 4.4704", mps)
	}
	if km := r.VisibilityKilometers(); km == nil || math.Abs(*km-16.09344) > 1e-9 {
		t.Errorf("VisibilityKilometers = %v, want 16.09344", km)
	}
	if mm := r.PressureMmHg(); mm == nil || math.Abs(*mm-29.95*25.4) > 1e-9 {
		t.Errorf("PressureMmHg = %v, want %v", mm, 29.95*25.4)
	}

	empty := &WeatherReport{}
	if empty.WindSpeedMPS() != nil || empty.VisibilityKilometers() != nil || empty.PressureMmHg() != nil {
		t.Error("conversions of absent fields should be nil")
	}
}

func TestWindSpeedBeaufort(t *testing.T) {
	tests := []struct {
		mps  float64
		want int
	}{
		{0, 0},
		{1, 1},
		{5, 3},
		{10, 5},
		{20, 8},
		{33, 12},
	}
	for _, tt := range tests {
		r := &WeatherReport{WindSpeedMilesPerHour: floatPtr(tt.mps / 0.44704)}
		got := r.WindSpeedBeaufort()
		if got == nil || *got != tt.want {
			t.Errorf("WindSpeedBeaufort(%v m/s) = %v, want %d", tt.mps, got, tt.want)
		}
	}
}

func TestISOTime(t *testing.T) {
	r := &WeatherReport{Time: "2002.04.01 1020 UTC"}
	if got := r.ISOTime(); got != "2002-04-01 10:20:00Z" {
		t.Errorf("ISOTime = %q, want %q", got, "2002-04-01 10:20:00Z")
	}

	r = &WeatherReport{}
	if got := r.ISOTime(); got != "" {
		t.Errorf("ISOTime of empty report = %q, want empty", got)
	}

	r = &WeatherReport{Time: "garbled"}
	if got := r.ISOTime(); got != "" {
		t.Errorf("ISOTime of garbled time = %q, want empty", got)
	}
}

func TestObservedAt(t *testing.T) {
	r := &WeatherReport{Time: "2026.08.29 1430 UTC"}
	got, ok := r.ObservedAt()
	if !ok {
		t.Fatal("ObservedAt not ok")
	}
	if got.Year() != 2026 || got.Month() != 8 || got.Day() != 29 || got.Hour() != 14 || got.Minute() != 30 {
		t.Errorf("ObservedAt = %v", got)
	}

	if _, ok := (&WeatherReport{Time: "nonsense"}).ObservedAt(); ok {
		t.Error("ObservedAt of garbled time should not be ok")
	}
}

func TestStationPositionFloat(t *testing.T) {
	alt := 5
	r := &WeatherReport{
		StationLatitude:  "12-34N",
		StationLongitude: "056-07W",
		StationAltitude:  &alt,
	}
	lat, long, a, err := r.StationPositionFloat()
	if err != nil {
		t.Fatalf("StationPositionFloat: %v", err)
	}
	if lat == nil || math.Abs(*lat-(12.0+34.0/60.0)) > 1e-9 {
		t.Errorf("lat = %v", lat)
	}
	if long == nil || math.Abs(*long-(-(56.0+7.0/60.0))) > 1e-9 {
		t.Errorf("long = %v", long)
	}
	if a == nil || *a != 5 {
		t.Errorf("alt = %v, want 5", a)
	}
}

func TestFieldList(t *testing.T) {
	r, err := Decode("EYVI", vilniusBulletin)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	fields := r.FieldList()
	byName := make(map[string]string, len(fields))
	for _, f := range fields {
		byName[f.Name] = f.Value
	}
	if byName["StationID"] != "EYVI" {
		t.Errorf("StationID field = %q", byName["StationID"])
	}
	if byName["TemperatureCelsius"] != "20" {
		t.Errorf("TemperatureCelsius field = %q", byName["TemperatureCelsius"])
	}
	if byName["VisibilityMiles"] != "none" {
		t.Errorf("VisibilityMiles field = %q, want none", byName["VisibilityMiles"])
	}
	if byName["ISOTime"] != "2026-08-29 14:30:00Z" {
		t.Errorf("ISOTime field = %q", byName["ISOTime"])
	}
}
