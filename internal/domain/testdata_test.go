package domain

import (
	"fmt"
	"strconv"
)

// testTables returns a minimal, valid set of reference tables.
func testTables() Tables {
	houses := make(HouseMeanings, HouseCount)
	for h := 1; h <= HouseCount; h++ {
		houses[strconv.Itoa(h)] = fmt.Sprintf("meaning of house %d", h)
	}
	nakshatras := make([]Nakshatra, NakshatraCount)
	for i := range nakshatras {
		nakshatras[i] = Nakshatra{
			Index:   i,
			Name:    fmt.Sprintf("Mansion %d", i),
			Symbol:  fmt.Sprintf("symbol %d", i),
			Meaning: fmt.Sprintf("meaning of mansion %d", i),
		}
	}
	return Tables{
		FullMoons: []FullMoonRecord{
			{Date: "2025-05-12", Tropical: Placement{Sign: Scorpio, Degree: 22.2, Time: "16:56 UTC"}},
			{Date: "2025-01-13", Tropical: Placement{Sign: Cancer, Degree: 23.98, Time: "22:27 UTC"}},
			{Date: "2025-02-12", Tropical: Placement{Sign: Leo, Degree: 15}},
			{Date: "2025-10-07", Tropical: Placement{Sign: Aries, Degree: 10}},
		},
		Houses:     houses,
		Nakshatras: nakshatras,
	}
}
