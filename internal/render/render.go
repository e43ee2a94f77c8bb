// Package render formats computed house results for display.
package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/couchcryptid/moon-house-service/internal/domain"
)

// noTime is shown when a record has no published peak time.
const noTime = "—"

// View is the display-ready form of a DerivedResult.
type View struct {
	Title            string   `json:"title"`
	SignLine         string   `json:"sign_line"`
	HouseMeaning     string   `json:"house_meaning"`
	Extras           []string `json:"extras"`
	NakshatraLine    string   `json:"nakshatra_line,omitempty"`
	NakshatraMeaning string   `json:"nakshatra_meaning,omitempty"`
}

// Build converts a result into its display lines.
func Build(res domain.DerivedResult) View {
	signLine := fmt.Sprintf("%s Moon in %s", res.System.Label(), res.Sign)
	if res.System == domain.Sidereal {
		signLine += " · " + FormatDegree(res.DegreeInSign) + " of the sign"
	}

	peak := res.PeakTime
	if peak == "" {
		peak = noTime
	}

	v := View{
		Title:        fmt.Sprintf("House %d", res.House),
		SignLine:     signLine,
		HouseMeaning: res.HouseMeaning,
		Extras: []string{
			"Numerology (date): " + res.Numerology.Description,
			"Peak time (source tz): " + peak,
		},
	}
	if n := res.Nakshatra; n != nil {
		v.NakshatraLine = fmt.Sprintf("%d. %s — symbol: %s", n.Index+1, n.Name, n.Symbol)
		v.NakshatraMeaning = n.Meaning
	}
	return v
}

// Text renders a view as plain text, one block per section.
func Text(v View) string {
	var b strings.Builder
	b.WriteString(v.Title + "\n")
	b.WriteString(v.SignLine + "\n")
	if v.HouseMeaning != "" {
		b.WriteString(v.HouseMeaning + "\n")
	}
	for _, e := range v.Extras {
		b.WriteString("  • " + e + "\n")
	}
	if v.NakshatraLine != "" {
		b.WriteString("\nNakshatra: " + v.NakshatraLine + "\n")
		if v.NakshatraMeaning != "" {
			b.WriteString(v.NakshatraMeaning + "\n")
		}
	}
	return b.String()
}

// FormatDegree renders a degree value with two decimals, e.g. "20.90°".
func FormatDegree(d float64) string {
	return fmt.Sprintf("%.2f°", d)
}

// DateLabel formats an ISO date key for a picker, e.g. "Mon, Jan 13, 2025".
// Unparseable keys are returned unchanged.
func DateLabel(date string) string {
	t, err := time.Parse(domain.DateLayout, date)
	if err != nil {
		return date
	}
	return t.Format("Mon, Jan 2, 2006")
}
