// Package domain computes which house a full moon occupies for a chosen
// rising sign.
//
// # Reference frames
//
// Full-moon placements are published in the tropical zodiac as a sign plus a
// degree within it. The absolute longitude is sign×30 + degree. The sidereal
// longitude subtracts a fixed ayanāṃśa (24.1°, the Lahiri value for 2025) and
// is renormalized into [0, 360); the sidereal sign is floor(lon/30).
//
// # Houses
//
// Houses are twelve equal sectors counted from the rising sign, which is
// always house 1:
//
//	house = 1 + ((sign − rising + 12) mod 12)
//
// # Lunar mansions
//
// On the sidereal path the longitude also selects one of 27 nakshatras, each
// exactly 13°20′ wide. The width is applied as the rational 40/3 so mansion
// boundaries do not drift.
//
// # Numerology
//
// The digits of the date's YYYYMMDD form are summed and reduced to their
// digital root (1–9). The date is always read from its own calendar fields,
// never from a time-zone-shifted instant.
package domain
