// Package metar decodes the NOAA "decoded METAR" plain-text bulletin into
// a structured weather report and derives secondary quantities from it.
package metar

import (
	"strconv"
	"strings"
)

// ParseLatLong converts a station coordinate in dd[-mm[-ss]]D notation
// (e.g. "51-14N" or "004-46-12E") into signed decimal degrees. N and E
// are positive, S and W negative. The letter O is accepted in place of
// the digit 0, a typo some stations put on the wire. Returns nil for an
// empty input and MalformedValueError when a numeric segment does not
// parse.
func ParseLatLong(latlong string) (*float64, error) {
	s := strings.ToUpper(strings.TrimSpace(latlong))
	if s == "" {
		return nil, nil
	}

	elements := strings.Split(s, "-")
	last := elements[len(elements)-1]
	if last == "" {
		return nil, &MalformedValueError{Field: "coordinate", Value: latlong}
	}

	// The compass direction is the final character of the last segment.
	dir := last[len(last)-1]
	elements[len(elements)-1] = last[:len(last)-1]

	divisors := [3]float64{1, 60, 3600}
	var coords float64
	for i, el := range elements {
		if i >= len(divisors) {
			break
		}
		el = strings.ReplaceAll(el, "O", "0")
		v, err := strconv.ParseFloat(el, 64)
		if err != nil {
			return nil, &MalformedValueError{Field: "coordinate", Value: latlong}
		}
		coords += v / divisors[i]
	}

	if dir == 'W' || dir == 'S' {
		coords = -coords
	}
	return &coords, nil
}
