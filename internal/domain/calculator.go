package domain

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"time"
)

var (
	// ErrRecordNotFound means no full moon exists for the selected date.
	ErrRecordNotFound = errors.New("no full moon record for date")
	// ErrInvalidSelection wraps every malformed-input failure from Compute.
	ErrInvalidSelection = errors.New("invalid selection")
	// ErrInvalidTables wraps every reference-table invariant violation.
	ErrInvalidTables = errors.New("invalid reference tables")
)

// Calculator holds the loaded reference tables and computes house placements.
// It is read-only after construction and safe for concurrent use.
type Calculator struct {
	ayanamsa   float64
	records    []FullMoonRecord // sorted by date
	byDate     map[string]FullMoonRecord
	houses     HouseMeanings
	nakshatras []Nakshatra
}

// NewCalculator validates the tables and builds a Calculator. Tables that
// break the 12-house / 27-mansion invariants are rejected here so that a
// computed ordinal can never miss its lookup later.
func NewCalculator(tables Tables, ayanamsa float64) (*Calculator, error) {
	if math.IsNaN(ayanamsa) || ayanamsa < 0 || ayanamsa >= SignWidth {
		return nil, fmt.Errorf("%w: ayanamsa %v outside [0,30)", ErrInvalidTables, ayanamsa)
	}
	if err := validateHouses(tables.Houses); err != nil {
		return nil, err
	}
	if err := validateNakshatras(tables.Nakshatras); err != nil {
		return nil, err
	}

	byDate := make(map[string]FullMoonRecord, len(tables.FullMoons))
	for _, rec := range tables.FullMoons {
		if err := validateRecord(rec); err != nil {
			return nil, err
		}
		if _, dup := byDate[rec.Date]; dup {
			return nil, fmt.Errorf("%w: duplicate full moon date %s", ErrInvalidTables, rec.Date)
		}
		byDate[rec.Date] = rec
	}

	records := make([]FullMoonRecord, len(tables.FullMoons))
	copy(records, tables.FullMoons)
	// ISO dates sort lexically in chronological order.
	sort.Slice(records, func(i, j int) bool { return records[i].Date < records[j].Date })

	houses := make(HouseMeanings, len(tables.Houses))
	for k, v := range tables.Houses {
		houses[k] = v
	}
	nakshatras := make([]Nakshatra, len(tables.Nakshatras))
	copy(nakshatras, tables.Nakshatras)

	return &Calculator{
		ayanamsa:   ayanamsa,
		records:    records,
		byDate:     byDate,
		houses:     houses,
		nakshatras: nakshatras,
	}, nil
}

func validateHouses(houses HouseMeanings) error {
	if len(houses) != HouseCount {
		return fmt.Errorf("%w: expected %d house meanings, got %d", ErrInvalidTables, HouseCount, len(houses))
	}
	for h := 1; h <= HouseCount; h++ {
		if _, ok := houses[strconv.Itoa(h)]; !ok {
			return fmt.Errorf("%w: missing meaning for house %d", ErrInvalidTables, h)
		}
	}
	return nil
}

func validateNakshatras(nakshatras []Nakshatra) error {
	if len(nakshatras) != NakshatraCount {
		return fmt.Errorf("%w: expected %d nakshatras, got %d", ErrInvalidTables, NakshatraCount, len(nakshatras))
	}
	for i, n := range nakshatras {
		if n.Index != i {
			return fmt.Errorf("%w: nakshatra at position %d has index %d", ErrInvalidTables, i, n.Index)
		}
		if n.Name == "" {
			return fmt.Errorf("%w: nakshatra %d has no name", ErrInvalidTables, i)
		}
	}
	return nil
}

func validateRecord(rec FullMoonRecord) error {
	if _, err := rec.Day(); err != nil {
		return fmt.Errorf("%w: full moon date %q is not YYYY-MM-DD", ErrInvalidTables, rec.Date)
	}
	if !rec.Tropical.Sign.Valid() {
		return fmt.Errorf("%w: full moon %s has sign ordinal %d", ErrInvalidTables, rec.Date, int(rec.Tropical.Sign))
	}
	if d := rec.Tropical.Degree; math.IsNaN(d) || d < 0 || d >= SignWidth {
		return fmt.Errorf("%w: full moon %s has degree %v outside [0,30)", ErrInvalidTables, rec.Date, d)
	}
	return nil
}

// Ayanamsa returns the sidereal offset in degrees.
func (c *Calculator) Ayanamsa() float64 { return c.ayanamsa }

// FullMoons returns the records in chronological order.
func (c *Calculator) FullMoons() []FullMoonRecord {
	out := make([]FullMoonRecord, len(c.records))
	copy(out, c.records)
	return out
}

// Lookup finds the record for an ISO date key.
func (c *Calculator) Lookup(date string) (FullMoonRecord, bool) {
	rec, ok := c.byDate[date]
	return rec, ok
}

// Next returns the first full moon on or after now's calendar date, or the
// last one when every record is in the past. ok is false for an empty table.
func (c *Calculator) Next(now time.Time) (FullMoonRecord, bool) {
	if len(c.records) == 0 {
		return FullMoonRecord{}, false
	}
	today := now.Format(DateLayout)
	i := sort.Search(len(c.records), func(i int) bool { return c.records[i].Date >= today })
	if i == len(c.records) {
		return c.records[len(c.records)-1], true
	}
	return c.records[i], true
}

// Validate reports why a selection is malformed, or nil.
func (s Selection) Validate() error {
	if !s.System.Valid() {
		return fmt.Errorf("%w: unknown system %q", ErrInvalidSelection, s.System)
	}
	if !s.Rising.Valid() {
		return fmt.Errorf("%w: rising ordinal %d out of range [0,11]", ErrInvalidSelection, int(s.Rising))
	}
	if _, err := time.Parse(DateLayout, s.Date); err != nil {
		return fmt.Errorf("%w: date %q is not YYYY-MM-DD", ErrInvalidSelection, s.Date)
	}
	return nil
}

// Compute derives the house, sign, optional mansion, and numerology for a
// selection. It returns ErrRecordNotFound when the date has no full moon.
func (c *Calculator) Compute(sel Selection) (DerivedResult, error) {
	if err := sel.Validate(); err != nil {
		return DerivedResult{}, err
	}
	rec, ok := c.byDate[sel.Date]
	if !ok {
		return DerivedResult{}, fmt.Errorf("%w: %s", ErrRecordNotFound, sel.Date)
	}

	lon, used := ResolveLongitude(sel.System, rec.Tropical.Sign, rec.Tropical.Degree, c.ayanamsa)
	house := HouseOf(used, sel.Rising)

	meaning, ok := c.houses[strconv.Itoa(house)]
	if !ok {
		panic(fmt.Sprintf("domain: house %d missing from validated table", house))
	}

	// Parse cannot fail: the record passed validateRecord.
	day, _ := rec.Day()

	res := DerivedResult{
		Date:         rec.Date,
		System:       sel.System,
		Rising:       sel.Rising,
		Sign:         used,
		Longitude:    lon,
		DegreeInSign: math.Mod(lon, SignWidth),
		House:        house,
		HouseMeaning: meaning,
		Numerology:   NumerologyOf(day),
		PeakTime:     rec.Tropical.Time,
	}

	if sel.System == Sidereal {
		k := MansionOf(lon)
		res.Nakshatra = &MansionInfo{Ordinal: k, Nakshatra: c.nakshatras[k]}
	}

	return res, nil
}
