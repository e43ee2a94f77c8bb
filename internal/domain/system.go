package domain

import (
	"fmt"
	"strings"
)

// System is the zodiac reference frame a placement is expressed in.
type System string

const (
	Tropical System = "tropical"
	Sidereal System = "sidereal"
)

// Valid reports whether s names a supported reference system.
func (s System) Valid() bool {
	return s == Tropical || s == Sidereal
}

// Label returns the capitalized display form, e.g. "Sidereal".
func (s System) Label() string {
	return title(string(s))
}

// ParseSystem accepts "tropical" or "sidereal" in any letter case.
func ParseSystem(value string) (System, error) {
	s := System(strings.ToLower(strings.TrimSpace(value)))
	if !s.Valid() {
		return "", fmt.Errorf("parse system: unknown reference system %q", value)
	}
	return s, nil
}
