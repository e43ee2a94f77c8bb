package domain

import "math"

// NakshatraCount is the number of lunar mansions on the ecliptic.
const NakshatraCount = 27

// MansionWidth is the exact span of one lunar mansion: 13°20′.
const MansionWidth = 13.0 + 20.0/60.0

// MansionOf returns the ordinal of the lunar mansion containing a sidereal
// longitude in [0, 360). Computed as lon·3/40 so the 13⅓° width is never
// rounded to a decimal; results are clamped to [0, 26].
func MansionOf(siderealLongitude float64) int {
	idx := int(math.Floor(siderealLongitude * 3 / 40))
	switch {
	case idx < 0:
		return 0
	case idx >= NakshatraCount:
		return NakshatraCount - 1
	default:
		return idx
	}
}

// MansionStart returns the sidereal longitude where mansion k begins.
func MansionStart(k int) float64 {
	return float64(k) * 40 / 3
}
