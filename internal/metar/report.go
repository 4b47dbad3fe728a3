package metar

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// DefaultBaseURL is the NOAA decoded-METAR feed the reports come from.
const DefaultBaseURL = "https://tgftp.nws.noaa.gov/data/observations/metar/decoded/"

// observationLayout is the timestamp layout used inside the bulletin,
// e.g. "2002.04.01 1020".
const observationLayout = "2006.01.02 1504"

// WeatherReport holds both the unparsed bulletin text and the decoded
// values once ParseReport has run. Optional numeric fields are pointers;
// nil means the bulletin did not carry the value (or it was garbled).
// Optional text fields are empty strings when absent.
type WeatherReport struct {
	StationID  string `json:"station_id"`
	ReportURL  string `json:"report_url,omitempty"`
	FullReport string `json:"-"`

	StationName    string `json:"station_name,omitempty"`
	StationCity    string `json:"station_city,omitempty"`
	StationCountry string `json:"station_country,omitempty"`

	// Latitude and longitude in the bulletin's dd[-mm[-ss]]D notation,
	// e.g. "51-14N". Altitude is metres above sea level.
	StationLatitude  string `json:"station_latitude,omitempty"`
	StationLongitude string `json:"station_longitude,omitempty"`
	StationAltitude  *int   `json:"station_altitude,omitempty"`

	// Cycle is the observation time slot (0-23). Slots run from N:45 to
	// N+1:45 UTC; the slot from 23:45 to 0:45 is cycle 0.
	Cycle int `json:"cycle"`

	// Time is the observation timestamp as carried by the bulletin,
	// e.g. "2002.04.01 1020 UTC". This is when the observation was
	// made, not when the report was fetched.
	Time string `json:"time,omitempty"`

	TemperatureCelsius    *float64 `json:"temperature_c,omitempty"`
	TemperatureFahrenheit *float64 `json:"temperature_f,omitempty"`
	DewPointCelsius       *float64 `json:"dew_point_c,omitempty"`
	DewPointFahrenheit    *float64 `json:"dew_point_f,omitempty"`

	WindDirection         *int     `json:"wind_direction,omitempty"`
	WindCompass           string   `json:"wind_compass,omitempty"`
	WindSpeedMilesPerHour *float64 `json:"wind_speed_mph,omitempty"`
	WindSpeedKnots        *float64 `json:"wind_speed_kt,omitempty"`

	VisibilityMiles *float64 `json:"visibility_mi,omitempty"`
	Humidity        *int     `json:"humidity_pct,omitempty"`
	PressureInHg    *float64 `json:"pressure_inhg,omitempty"`
	PressurehPa     *float64 `json:"pressure_hpa,omitempty"`

	Weather       string `json:"weather,omitempty"`
	SkyConditions string `json:"sky_conditions,omitempty"`

	// RawMetarCode is the encoded METAR line embedded in the bulletin.
	RawMetarCode string `json:"raw_metar_code,omitempty"`

	Cloudtype  string         `json:"cloud_type,omitempty"`
	Cloudinfo  *ConditionInfo `json:"cloud_info,omitempty"`
	Conditions *ConditionInfo `json:"conditions,omitempty"`

	// Pixmap is a suggested icon name for the current weather.
	Pixmap string `json:"pixmap,omitempty"`

	parsed bool

	// One-shot caches for the wind chill values. A Windchill header in
	// the bulletin pre-fills these.
	windChill  *float64
	windChillF *float64
}

// New returns an empty report for the given station.
func New(stationID string) *WeatherReport {
	return &WeatherReport{StationID: strings.ToUpper(strings.TrimSpace(stationID))}
}

// NewFromReport returns a report pre-filled with already-fetched
// bulletin text, ready for ParseReport.
func NewFromReport(stationID, rawReport string) *WeatherReport {
	r := New(stationID)
	r.ReportURL = DefaultBaseURL + r.StationID + ".TXT"
	r.FullReport = rawReport
	return r
}

// Decode parses a raw bulletin for a station in one call. On error no
// report is returned.
func Decode(stationID, rawReport string) (*WeatherReport, error) {
	r := NewFromReport(stationID, rawReport)
	if err := r.ParseReport(); err != nil {
		return nil, err
	}
	return r, nil
}

// Parsed reports whether ParseReport has completed on this report.
func (r *WeatherReport) Parsed() bool { return r.parsed }

// ObservedAt returns the observation timestamp as a UTC time.
func (r *WeatherReport) ObservedAt() (time.Time, bool) {
	return ParseObservationTime(r.Time)
}

// ParseObservationTime parses a bulletin timestamp such as
// "2002.04.01 1020 UTC" into a UTC time.
func ParseObservationTime(s string) (time.Time, bool) {
	fields := strings.Fields(s)
	if len(fields) < 2 {
		return time.Time{}, false
	}
	t, err := time.Parse(observationLayout, fields[0]+" "+fields[1])
	if err != nil {
		return time.Time{}, false
	}
	return t.UTC(), true
}

// ExtractObservationTime scans raw bulletin text for the embedded
// observation timestamp without decoding the rest of the report.
func ExtractObservationTime(report string) (time.Time, bool) {
	for _, line := range strings.Split(report, "\n") {
		if !strings.Contains(line, " UTC") {
			continue
		}
		if _, after, ok := strings.Cut(line, "/"); ok {
			return ParseObservationTime(strings.TrimSpace(after))
		}
	}
	return time.Time{}, false
}

// ISOTime returns the observation time in ISO-8601 form, e.g.
// "2002-07-25 15:12:00Z", or an empty string when the bulletin time is
// absent or malformed.
func (r *WeatherReport) ISOTime() string {
	fields := strings.Fields(r.Time)
	if len(fields) < 2 {
		return ""
	}
	date := strings.Split(fields[0], ".")
	hour := fields[1]
	if len(date) != 3 || len(hour) < 4 {
		return ""
	}
	return fmt.Sprintf("%s-%s-%s %s:%s:00Z", date[0], date[1], date[2], hour[:2], hour[2:4])
}

// PressureMmHg returns the pressure in millimetres of mercury.
func (r *WeatherReport) PressureMmHg() *float64 {
	if r.PressureInHg == nil {
		return nil
	}
	return floatPtr(*r.PressureInHg * 25.4)
}

// WindSpeedMPS returns the wind speed in metres per second.
func (r *WeatherReport) WindSpeedMPS() *float64 {
	if r.WindSpeedMilesPerHour == nil {
		return nil
	}
	return floatPtr(*r.WindSpeedMilesPerHour * 0.44704)
}

// WindSpeedBeaufort returns the wind speed on the Beaufort scale.
func (r *WeatherReport) WindSpeedBeaufort() *int {
	mps := r.WindSpeedMPS()
	if mps == nil {
		return nil
	}
	b := int(math.Round(math.Pow(*mps/0.8359648, 2.0/3.0)))
	return &b
}

// VisibilityKilometers returns the visibility in kilometres.
func (r *WeatherReport) VisibilityKilometers() *float64 {
	if r.VisibilityMiles == nil {
		return nil
	}
	return floatPtr(*r.VisibilityMiles * 1.609344)
}

// StationLatitudeFloat returns the station latitude in signed decimal
// degrees, or nil when the bulletin carried no latitude.
func (r *WeatherReport) StationLatitudeFloat() (*float64, error) {
	return ParseLatLong(r.StationLatitude)
}

// StationLongitudeFloat returns the station longitude in signed decimal
// degrees, or nil when the bulletin carried no longitude.
func (r *WeatherReport) StationLongitudeFloat() (*float64, error) {
	return ParseLatLong(r.StationLongitude)
}

// StationPosition returns the station coordinates in bulletin notation
// together with the altitude in metres. Some stations don't deliver an
// altitude; those return nil.
func (r *WeatherReport) StationPosition() (lat, long string, alt *int) {
	return r.StationLatitude, r.StationLongitude, r.StationAltitude
}

// StationPositionFloat returns the station coordinates as signed
// decimal degrees together with the altitude in metres.
func (r *WeatherReport) StationPositionFloat() (lat, long *float64, alt *int, err error) {
	lat, err = r.StationLatitudeFloat()
	if err != nil {
		return nil, nil, nil, err
	}
	long, err = r.StationLongitudeFloat()
	if err != nil {
		return nil, nil, nil, err
	}
	return lat, long, r.StationAltitude, nil
}

// ApparentTemperatureCelsius returns the Australian apparent
// temperature (a heat index variant combining temperature, wind and
// humidity), or nil when any input is absent.
func (r *WeatherReport) ApparentTemperatureCelsius() *float64 {
	c := r.TemperatureCelsius
	mps := r.WindSpeedMPS()
	if c == nil || mps == nil || r.Humidity == nil {
		return nil
	}
	e := float64(*r.Humidity) / 100 * 6.105 * math.Pow(2.71828, (17.27 * *c)/(237.7 + *c))
	return floatPtr(*c + 0.33*e - 0.7*(*mps) - 4.0)
}

// ApparentTemperatureFahrenheit returns the apparent temperature in
// degrees Fahrenheit.
func (r *WeatherReport) ApparentTemperatureFahrenheit() *float64 {
	c := r.ApparentTemperatureCelsius()
	if c == nil {
		return nil
	}
	return floatPtr((*c)*1.8 + 32)
}

// WindchillCelsius returns the North American wind chill index in
// degrees Celsius. Below 10 °C with wind above 4.8 km/h the index
// formula applies; otherwise the raw temperature is returned. The value
// is computed once and cached.
func (r *WeatherReport) WindchillCelsius() *float64 {
	if r.windChill != nil {
		return r.windChill
	}
	c := r.TemperatureCelsius
	var kph float64
	if mps := r.WindSpeedMPS(); mps != nil {
		kph = *mps * 3.6
	}
	if c != nil && r.WindSpeedMilesPerHour != nil && *c <= 10 && kph > 4.8 {
		v := math.Pow(kph, 0.16)
		r.windChill = floatPtr(13.12 + 0.6215*(*c) - 11.37*v + 0.3965*(*c)*v)
	} else if c != nil {
		r.windChill = floatPtr(*c)
	}
	return r.windChill
}

// WindchillFahrenheit returns the wind chill index in degrees
// Fahrenheit, using the imperial coefficients with the 50 °F / 3 mph
// thresholds. Cached independently of the Celsius value.
func (r *WeatherReport) WindchillFahrenheit() *float64 {
	if r.windChillF != nil {
		return r.windChillF
	}
	f := r.TemperatureFahrenheit
	var mph float64
	if r.WindSpeedMilesPerHour != nil {
		mph = *r.WindSpeedMilesPerHour
	}
	if f != nil && r.WindSpeedMilesPerHour != nil && *f <= 50 && mph > 3 {
		v := math.Pow(mph, 0.16)
		r.windChillF = floatPtr(35.74 + 0.6215*(*f) - 35.75*v + 0.4275*(*f)*v)
	} else if f != nil {
		r.windChillF = floatPtr(*f)
	}
	return r.windChillF
}

func floatPtr(v float64) *float64 { return &v }
