package metar

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// ParseReport decodes the bulletin text into the report's fields. It is
// idempotent: once a report is parsed, calling it again is a no-op.
// Individual field values that fail to convert are left absent so that
// one garbled field does not spoil the rest of the bulletin; only
// report-level problems (no text, undecodable text, an unsplittable
// station line) return an error. On error the report is left untouched.
func (r *WeatherReport) ParseReport() error {
	if r.parsed {
		return nil
	}
	if r.FullReport == "" {
		return ErrEmptyReport
	}
	if !utf8.ValidString(r.FullReport) {
		return ErrGarbledReport
	}

	next := *r
	for _, line := range strings.Split(r.FullReport, "\n") {
		if err := next.parseLine(line); err != nil {
			return err
		}
	}
	next.resolveConditions()
	next.parsed = true
	*r = next
	return nil
}

// parseLine classifies a single bulletin line and extracts its fields.
// Lines without a colon keep the whole line as both header and value;
// that degenerate form is how the station line and the encoded report
// line are recognised.
func (r *WeatherReport) parseLine(line string) error {
	header, data, found := strings.Cut(line, ":")
	if !found {
		header, data = line, line
	}
	header = strings.TrimSpace(header)
	data = strings.TrimSpace(data)

	// The station id inside the report. The station line may contain
	// additional parenthesised parts, so the id is located explicitly
	// and the name split on its last comma.
	if r.StationID != "" && strings.Contains(header, "("+r.StationID+")") {
		return r.parseStationLine(data)
	}

	switch {
	// Date and time of the observation. The encoded report line also
	// mentions the station id next to a Z-time, hence the guard.
	case strings.Contains(data, " UTC") && !strings.Contains(data, r.StationID):
		if _, after, ok := strings.Cut(data, "/"); ok {
			r.Time = strings.TrimSpace(after)
		}

	case header == "Temperature":
		r.TemperatureFahrenheit, r.TemperatureCelsius = parseUnitPair(data)

	case header == "Windchill":
		r.windChillF, r.windChill = parseUnitPair(data)

	case header == "Dew Point":
		r.DewPointFahrenheit, r.DewPointCelsius = parseUnitPair(data)

	case header == "Wind":
		r.parseWind(data)

	case header == "Visibility":
		// Only the first token is considered; an unparseable first
		// token leaves the visibility absent.
		if fields := strings.Fields(data); len(fields) > 0 {
			if v, err := strconv.ParseFloat(fields[0], 64); err == nil {
				r.VisibilityMiles = &v
			}
		}

	case header == "Relative Humidity":
		before, _, _ := strings.Cut(data, "%")
		if h, err := strconv.Atoi(before); err == nil {
			r.Humidity = &h
		}

	case header == "Pressure (altimeter)":
		fields := strings.Fields(data)
		if len(fields) >= 2 {
			if v, err := strconv.ParseFloat(fields[0], 64); err == nil {
				r.PressureInHg = &v
			}
			// The hPa token looks like "(1014"; drop the paren.
			hpa := fields[len(fields)-2]
			if len(hpa) > 1 {
				if v, err := strconv.ParseFloat(hpa[1:], 64); err == nil {
					r.PressurehPa = &v
				}
			}
		}

	case header == "Weather":
		r.Weather = data

	case header == "Sky conditions":
		r.SkyConditions = data

	case header == "ob":
		r.RawMetarCode = strings.TrimSpace(data)

	case header == "cycle":
		if c, err := strconv.Atoi(data); err == nil {
			r.Cycle = c
		} else {
			// Cycle value missing or garbled, assume cycle 0.
			r.Cycle = 0
		}
	}
	return nil
}

// parseUnitPair parses a "<F> F (<C> C)" value into its Fahrenheit and
// Celsius parts. The Celsius token carries a leading paren from the
// split, hence the slice.
func parseUnitPair(data string) (f, c *float64) {
	fields := strings.Fields(data)
	if len(fields) < 3 || len(fields[2]) < 2 {
		return nil, nil
	}
	fv, err := strconv.ParseFloat(fields[0], 64)
	cv, err2 := strconv.ParseFloat(fields[2][1:], 64)
	if err != nil || err2 != nil {
		return nil, nil
	}
	return &fv, &cv
}

// parseStationLine extracts name, city, country, coordinates and
// altitude from the line carrying the parenthesised station id.
func (r *WeatherReport) parseStationLine(data string) error {
	idx := strings.Index(data, "("+r.StationID+")")
	if idx < 0 {
		return nil
	}
	loc := strings.TrimSpace(data[:idx])
	coords := data[idx:]

	// The location may itself contain commas; the city/country split is
	// on the last one. Locations without a comma keep both parts empty.
	var city, country string
	if c := strings.LastIndex(loc, ","); c >= 0 {
		city = strings.TrimSpace(loc[:c])
		country = strings.TrimSpace(loc[c+1:])
	}

	fields := strings.Fields(coords)
	if len(fields) < 4 {
		return &MalformedValueError{Field: "station position", Value: coords}
	}

	// A few jokers out there think O==0.
	lat := strings.ReplaceAll(fields[1], "O", "0")
	long := strings.ReplaceAll(fields[2], "O", "0")
	altStr := strings.ReplaceAll(fields[3], "O", "0")

	r.StationCity = city
	r.StationCountry = country
	r.StationName = loc
	r.StationLatitude = lat
	r.StationLongitude = long
	if len(altStr) > 1 {
		// Cut off the trailing 'M' for metres.
		if alt, err := strconv.Atoi(altStr[:len(altStr)-1]); err == nil {
			r.StationAltitude = &alt
		}
	}
	return nil
}

// parseWind handles the three forms of the Wind line: calm, variable
// and the fixed nine-field form with compass, degrees and speeds.
func (r *WeatherReport) parseWind(data string) {
	switch {
	case strings.Contains(data, "Calm"):
		r.WindSpeedKnots = floatPtr(0)
		r.WindSpeedMilesPerHour = floatPtr(0)
		r.WindDirection = nil
		r.WindCompass = ""

	case strings.Contains(data, "Variable"):
		// "Variable at 7 MPH (6 KT):0"
		parts := strings.SplitN(data, " ", 4)
		ktParts := strings.SplitN(data, " ", 6)
		if len(parts) < 3 || len(ktParts) < 5 || len(ktParts[4]) < 2 {
			return
		}
		mph, err := strconv.Atoi(parts[2])
		kt, err2 := strconv.Atoi(ktParts[4][1:])
		if err != nil || err2 != nil {
			return
		}
		r.WindSpeedMilesPerHour = floatPtr(float64(mph))
		r.WindSpeedKnots = floatPtr(float64(kt))
		r.WindDirection = nil
		r.WindCompass = ""

	default:
		// "from the NW (320 degrees) at 15 MPH (13 KT):0"
		fields := strings.SplitN(data, " ", 10)
		if len(fields) < 9 || len(fields[3]) < 2 || len(fields[8]) < 2 {
			return
		}
		deg, err := strconv.Atoi(fields[3][1:])
		mph, err2 := strconv.Atoi(fields[6])
		kt, err3 := strconv.Atoi(fields[8][1:])
		if err != nil || err2 != nil || err3 != nil {
			return
		}
		r.WindDirection = &deg
		r.WindCompass = strings.TrimSpace(fields[2])
		r.WindSpeedMilesPerHour = floatPtr(float64(mph))
		r.WindSpeedKnots = floatPtr(float64(kt))
	}
}

// resolveConditions runs the encoded report through the cloud and
// condition grammars and fills the summary fields.
func (r *WeatherReport) resolveConditions() {
	skyType, cloudType, cloudIcon := extractCloudInformation(r.RawMetarCode)
	if r.Cloudtype == "" {
		r.Cloudtype = cloudType
	}
	r.Cloudinfo = &ConditionInfo{Text: skyType, Icon: cloudIcon}

	cond := extractSkyConditions(r.RawMetarCode)
	if cond != nil {
		r.Conditions = cond
	} else {
		r.Conditions = &ConditionInfo{}
	}

	// The first non-empty of the decoded Weather line, the phenomenon
	// description and the cloud description wins.
	if r.Weather == "" {
		if r.Conditions.Text != "" {
			r.Weather = r.Conditions.Text
		} else {
			r.Weather = skyType
		}
	}

	// An icon guessed from the general conditions has priority over
	// one guessed from the clouds.
	if r.Conditions.Icon != "" {
		r.Pixmap = r.Conditions.Icon
	} else {
		r.Pixmap = cloudIcon
	}
}
