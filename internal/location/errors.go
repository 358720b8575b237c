package location

import (
	"fmt"
	"strings"
)

type InvalidSchemeError struct {
	Direction Direction
	Location  string
	Scheme    Scheme
	Allowed   SchemeSet
	// Err is set when the location could not be parsed or is unusable with
	// an otherwise supported scheme.
	Err error
}

func (e *InvalidSchemeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %q is not a valid location: %s", e.Direction, e.Location, e.Err)
	}
	if e.Scheme == "" {
		return fmt.Sprintf("%s %q must include a scheme, one of: %s", e.Direction, e.Location, e.Allowed)
	}
	return fmt.Sprintf("%s scheme %q is not supported, must be one of: %s", e.Direction, e.Scheme, e.Allowed)
}

func (e *InvalidSchemeError) Unwrap() error {
	return e.Err
}

type InvalidInputFormatError struct {
	Location   string
	Extensions []string
}

func (e *InvalidInputFormatError) Error() string {
	return fmt.Sprintf("source %q must point to a file ending in %s", e.Location, strings.Join(e.Extensions, " or "))
}
