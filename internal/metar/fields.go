package metar

import (
	"fmt"
	"strconv"
)

// Field is one named value of a decoded report, formatted for display.
type Field struct {
	Name  string
	Value string
}

// FieldList returns every decoded and derived value of the report as an
// explicit name/value list, in a stable order. Absent values render as
// "none".
func (r *WeatherReport) FieldList() []Field {
	latF, latErr := r.StationLatitudeFloat()
	longF, longErr := r.StationLongitudeFloat()

	return []Field{
		{"StationID", r.StationID},
		{"ReportURL", r.ReportURL},
		{"StationName", r.StationName},
		{"StationCity", r.StationCity},
		{"StationCountry", r.StationCountry},
		{"StationLatitude", r.StationLatitude},
		{"StationLongitude", r.StationLongitude},
		{"StationLatitudeFloat", fmtCoord(latF, latErr)},
		{"StationLongitudeFloat", fmtCoord(longF, longErr)},
		{"StationAltitude", fmtInt(r.StationAltitude)},
		{"Cycle", strconv.Itoa(r.Cycle)},
		{"Time", r.Time},
		{"ISOTime", r.ISOTime()},
		{"TemperatureCelsius", fmtFloat(r.TemperatureCelsius)},
		{"TemperatureFahrenheit", fmtFloat(r.TemperatureFahrenheit)},
		{"DewPointCelsius", fmtFloat(r.DewPointCelsius)},
		{"DewPointFahrenheit", fmtFloat(r.DewPointFahrenheit)},
		{"WindDirection", fmtInt(r.WindDirection)},
		{"WindCompass", r.WindCompass},
		{"WindSpeedMilesPerHour", fmtFloat(r.WindSpeedMilesPerHour)},
		{"WindSpeedKnots", fmtFloat(r.WindSpeedKnots)},
		{"WindSpeedMPS", fmtFloat(r.WindSpeedMPS())},
		{"WindSpeedBeaufort", fmtInt(r.WindSpeedBeaufort())},
		{"WindchillCelsius", fmtFloat(r.WindchillCelsius())},
		{"WindchillFahrenheit", fmtFloat(r.WindchillFahrenheit())},
		{"ApparentTemperatureCelsius", fmtFloat(r.ApparentTemperatureCelsius())},
		{"ApparentTemperatureFahrenheit", fmtFloat(r.ApparentTemperatureFahrenheit())},
		{"VisibilityMiles", fmtFloat(r.VisibilityMiles)},
		{"VisibilityKilometers", fmtFloat(r.VisibilityKilometers())},
		{"Humidity", fmtInt(r.Humidity)},
		{"PressureInHg", fmtFloat(r.PressureInHg)},
		{"PressurehPa", fmtFloat(r.PressurehPa)},
		{"PressureMmHg", fmtFloat(r.PressureMmHg())},
		{"Weather", r.Weather},
		{"SkyConditions", r.SkyConditions},
		{"Cloudtype", r.Cloudtype},
		{"Cloudinfo", fmtCondition(r.Cloudinfo)},
		{"Conditions", fmtCondition(r.Conditions)},
		{"Pixmap", r.Pixmap},
		{"RawMetarCode", r.RawMetarCode},
	}
}

func fmtFloat(v *float64) string {
	if v == nil {
		return "none"
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func fmtInt(v *int) string {
	if v == nil {
		return "none"
	}
	return strconv.Itoa(*v)
}

func fmtCoord(v *float64, err error) string {
	if err != nil {
		return "invalid"
	}
	return fmtFloat(v)
}

func fmtCondition(c *ConditionInfo) string {
	if c == nil || (c.Text == "" && c.Icon == "") {
		return "none"
	}
	return fmt.Sprintf("%s (%s)", c.Text, c.Icon)
}
