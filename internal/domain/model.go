package domain

import (
	"context"
	"time"
)

// DateLayout is the ISO calendar date format used as the full-moon key.
const DateLayout = "2006-01-02"

// Placement is a tropical zodiac position: a sign plus a degree in [0, 30).
type Placement struct {
	Sign   Sign    `json:"sign"`
	Degree float64 `json:"degree"`
	Time   string  `json:"time,omitempty"` // peak time as published by the data source
}

// FullMoonRecord is one full moon keyed by its ISO date.
type FullMoonRecord struct {
	Date     string    `json:"date"`
	Tropical Placement `json:"tropical"`
}

// Day parses the record's date key as a UTC civil date.
func (r FullMoonRecord) Day() (time.Time, error) {
	return time.Parse(DateLayout, r.Date)
}

// Nakshatra is one of the 27 lunar mansions.
type Nakshatra struct {
	Index   int    `json:"index"`
	Name    string `json:"name"`
	Symbol  string `json:"symbol"`
	Meaning string `json:"meaning"`
}

// HouseMeanings maps a house number ("1".."12") to its descriptive text.
type HouseMeanings map[string]string

// Tables bundles the three static reference tables.
type Tables struct {
	FullMoons  []FullMoonRecord
	Houses     HouseMeanings
	Nakshatras []Nakshatra
}

// Selection is a single request for a house computation.
type Selection struct {
	System System `json:"system"`
	Rising Sign   `json:"rising"`
	Date   string `json:"date"`
}

// DerivedResult is everything computed for one selection.
type DerivedResult struct {
	Date         string       `json:"date"`
	System       System       `json:"system"`
	Rising       Sign         `json:"rising"`
	Sign         Sign         `json:"sign"`
	Longitude    float64      `json:"longitude"`
	DegreeInSign float64      `json:"degree_in_sign"`
	House        int          `json:"house"`
	HouseMeaning string       `json:"house_meaning"`
	Nakshatra    *MansionInfo `json:"nakshatra,omitempty"`
	Numerology   Numerology   `json:"numerology"`
	PeakTime     string       `json:"peak_time,omitempty"`
}

// MansionInfo is the lunar mansion reference attached to sidereal results.
type MansionInfo struct {
	Ordinal int `json:"ordinal"`
	Nakshatra
}

// RawMessage is an unprocessed selection message from the source topic.
type RawMessage struct {
	Key       []byte
	Value     []byte
	Headers   map[string]string
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
	Commit    func(ctx context.Context) error
}

// OutputMessage is the serialized result destined for the sink topic.
type OutputMessage struct {
	Key     []byte
	Value   []byte
	Headers map[string]string
}
