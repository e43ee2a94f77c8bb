package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Sign is a zodiac sign ordinal in [0, 11]. Ordinal × 30° is the sign's starting longitude.
type Sign int

const (
	Aries Sign = iota
	Taurus
	Gemini
	Cancer
	Leo
	Virgo
	Libra
	Scorpio
	Sagittarius
	Capricorn
	Aquarius
	Pisces
)

// SignCount is the number of zodiac signs; SignWidth is the span of each in degrees.
const (
	SignCount = 12
	SignWidth = 30.0
)

// DefaultAyanamsa approximates the Lahiri ayanāṃśa for 2025, in degrees.
const DefaultAyanamsa = 24.1

var signNames = [SignCount]string{
	"Aries", "Taurus", "Gemini", "Cancer", "Leo", "Virgo",
	"Libra", "Scorpio", "Sagittarius", "Capricorn", "Aquarius", "Pisces",
}

// title capitalizes a name. A cases.Caser keeps per-call state, so each
// call gets its own.
func title(s string) string {
	return cases.Title(language.English).String(s)
}

// Signs returns all twelve signs in zodiacal order.
func Signs() []Sign {
	out := make([]Sign, SignCount)
	for i := range out {
		out[i] = Sign(i)
	}
	return out
}

// Valid reports whether s is one of the twelve signs.
func (s Sign) Valid() bool {
	return s >= Aries && s <= Pisces
}

func (s Sign) String() string {
	if !s.Valid() {
		return "Sign(" + strconv.Itoa(int(s)) + ")"
	}
	return signNames[s]
}

// StartLongitude returns the ecliptic longitude at which the sign begins.
func (s Sign) StartLongitude() float64 {
	return float64(s) * SignWidth
}

// ParseSign accepts a sign name in any letter case ("leo", "LEO", "Leo")
// or a decimal ordinal ("4").
func ParseSign(value string) (Sign, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("parse sign: empty value")
	}
	if n, err := strconv.Atoi(value); err == nil {
		s := Sign(n)
		if !s.Valid() {
			return 0, fmt.Errorf("parse sign: ordinal %d out of range [0,11]", n)
		}
		return s, nil
	}
	name := title(value)
	for i, candidate := range signNames {
		if candidate == name {
			return Sign(i), nil
		}
	}
	return 0, fmt.Errorf("parse sign: unknown sign %q", value)
}

// MarshalJSON encodes the sign by name.
func (s Sign) MarshalJSON() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("marshal sign: ordinal %d out of range", int(s))
	}
	return json.Marshal(s.String())
}

// UnmarshalJSON decodes either a sign name or a numeric ordinal.
func (s *Sign) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		parsed, err := ParseSign(name)
		if err != nil {
			return err
		}
		*s = parsed
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("unmarshal sign: expected name or ordinal, got %s", data)
	}
	parsed := Sign(n)
	if !parsed.Valid() {
		return fmt.Errorf("unmarshal sign: ordinal %d out of range [0,11]", n)
	}
	*s = parsed
	return nil
}

// SignAt returns the sign containing a longitude already normalized to [0, 360).
func SignAt(longitude float64) Sign {
	s := Sign(math.Floor(longitude / SignWidth))
	if s > Pisces {
		return Pisces
	}
	if s < Aries {
		return Aries
	}
	return s
}

// NormalizeLongitude maps any finite longitude into [0, 360).
func NormalizeLongitude(longitude float64) float64 {
	for longitude < 0 {
		longitude += 360
	}
	longitude = math.Mod(longitude, 360)
	if longitude >= 360 {
		return 0
	}
	return longitude
}

// TropicalLongitude converts a sign and a degree within it to an absolute longitude.
func TropicalLongitude(sign Sign, degree float64) float64 {
	return sign.StartLongitude() + degree
}

// ResolveLongitude returns the longitude and sign used for house computation.
// The tropical path keeps the given sign and its absolute longitude as-is.
// The sidereal path subtracts the ayanāṃśa and re-derives the sign from the
// normalized result.
func ResolveLongitude(system System, sign Sign, degree, ayanamsa float64) (float64, Sign) {
	tropical := TropicalLongitude(sign, degree)
	if system != Sidereal {
		return tropical, sign
	}
	sidereal := NormalizeLongitude(tropical - ayanamsa)
	return sidereal, SignAt(sidereal)
}
