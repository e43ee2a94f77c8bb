package domain

import (
	"fmt"
	"time"
)

// Numerology is the single-digit figure derived from a calendar date.
type Numerology struct {
	Figure      int    `json:"figure"`
	Description string `json:"description"`
}

var numerologyPhrases = [10]string{
	1: "initiate / start fresh",
	2: "partnerships & balance",
	3: "expression & creativity",
	4: "structure & discipline",
	5: "change & movement",
	6: "care, duty, harmony",
	7: "insight & spirituality",
	8: "power, finances, results",
	9: "completion & release",
}

// NumerologyOf reduces the digits of the date's YYYYMMDD form to a single digit.
// Only the date's own calendar fields are read; the time of day and location
// never shift the result.
func NumerologyOf(date time.Time) Numerology {
	y, m, d := date.Date()
	figure := DigitalRoot(digitSum(y) + digitSum(int(m)) + digitSum(d))
	return Numerology{
		Figure:      figure,
		Description: fmt.Sprintf("%d — %s", figure, numerologyPhrases[figure]),
	}
}

// DigitalRoot repeatedly sums decimal digits until a single digit remains.
func DigitalRoot(n int) int {
	for n > 9 {
		n = digitSum(n)
	}
	return n
}

func digitSum(n int) int {
	if n < 0 {
		n = -n
	}
	sum := 0
	for n > 0 {
		sum += n % 10
		n /= 10
	}
	return sum
}
