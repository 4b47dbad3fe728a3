package metar

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyReport is returned when a report is parsed before any
	// bulletin text has been supplied.
	ErrEmptyReport = errors.New("metar: no report text given")

	// ErrGarbledReport is returned when the bulletin text is not valid
	// character data.
	ErrGarbledReport = errors.New("metar: report is not valid text")
)

// MalformedValueError reports a value that could not be converted where
// the bulletin structure requires one.
type MalformedValueError struct {
	Field string
	Value string
}

func (e *MalformedValueError) Error() string {
	return fmt.Sprintf("metar: malformed %s value %q", e.Field, e.Value)
}
