// Command validate checks a reference data directory before it is deployed.
// It loads the full moon, house, and nakshatra tables, asserts every table
// invariant, and computes every date against every rising sign under both
// zodiac systems.
//
// Usage:
//
//	go run ./cmd/validate -data-dir ./data -ayanamsa 24.1
//
// When -data-dir is omitted the embedded tables are validated.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"time"

	"github.com/couchcryptid/moon-house-service/internal/adapter/refdata"
	"github.com/couchcryptid/moon-house-service/internal/domain"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	dataDir := flag.String("data-dir", "", "directory containing fullmoons.json, houses.json, nakshatras.json (default: embedded tables)")
	ayanamsa := flag.Float64("ayanamsa", domain.DefaultAyanamsa, "sidereal offset in degrees")
	flag.Parse()

	if code := run(os.Stdout, *dataDir, *ayanamsa); code != 0 {
		os.Exit(code)
	}
}

func run(out io.Writer, dataDir string, ayanamsa float64) int {
	var src refdata.Source = refdata.Embedded()
	if dataDir != "" {
		src = refdata.Dir(dataDir)
	}

	fmt.Fprintln(out, "=== Moon House Reference Data Validation ===")
	fmt.Fprintf(out, "Source: %s\n\n", src)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tables, err := refdata.Load(ctx, src, logger)
	if err != nil {
		fmt.Fprintf(out, "FATAL: load tables: %v\n", err)
		return 1
	}

	tablePhase := &phase{name: "Phase 1: Table Invariants"}
	calc, err := domain.NewCalculator(tables, ayanamsa)
	if err != nil {
		tablePhase.errorf("%v", err)
	}

	phases := []*phase{tablePhase}
	if calc != nil {
		phases = append(phases,
			validateComputations(calc),
			validateHouseCoverage(calc),
		)
	}

	fmt.Fprintln(out)
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Fprintf(out, "  %-42s %s\n", p.name, status)
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Records: %d full moons, %d houses, %d nakshatras\n",
		len(tables.FullMoons), len(tables.Houses), len(tables.Nakshatras))

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Fprintf(out, "\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Fprintf(out, "  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Fprintln(out, "\nAll validations passed.")
		return 0
	}
	fmt.Fprintln(out, "\nValidation FAILED.")
	return 1
}

// ── Phase 2: Computations ──
// Every date × rising × system must compute and satisfy the result ranges.

func validateComputations(calc *domain.Calculator) *phase {
	p := &phase{name: "Phase 2: Computations (date × rising × system)"}

	for _, rec := range calc.FullMoons() {
		for _, system := range []domain.System{domain.Tropical, domain.Sidereal} {
			for _, rising := range domain.Signs() {
				res, err := calc.Compute(domain.Selection{System: system, Rising: rising, Date: rec.Date})
				if err != nil {
					p.errorf("%s %s %s: %v", rec.Date, system, rising, err)
					continue
				}
				checkResult(p, res)
			}
		}
	}
	return p
}

func checkResult(p *phase, res domain.DerivedResult) {
	id := fmt.Sprintf("%s %s %s", res.Date, res.System, res.Rising)

	if res.House < 1 || res.House > domain.HouseCount {
		p.errorf("%s: house %d outside [1,12]", id, res.House)
	}
	if res.HouseMeaning == "" {
		p.errorf("%s: house %d has an empty meaning", id, res.House)
	}
	if res.Longitude < 0 || res.Longitude >= 360 {
		p.errorf("%s: longitude %g outside [0,360)", id, res.Longitude)
	}
	if res.Numerology.Figure < 1 || res.Numerology.Figure > 9 {
		p.errorf("%s: numerology %d outside [1,9]", id, res.Numerology.Figure)
	}

	switch res.System {
	case domain.Tropical:
		if res.Nakshatra != nil {
			p.errorf("%s: tropical result carries a nakshatra", id)
		}
	case domain.Sidereal:
		if res.Nakshatra == nil {
			p.errorf("%s: sidereal result has no nakshatra", id)
			return
		}
		want := int(math.Floor(res.Longitude * 3 / 40))
		if want > domain.NakshatraCount-1 {
			want = domain.NakshatraCount - 1
		}
		if res.Nakshatra.Ordinal != want {
			p.errorf("%s: nakshatra %d, expected %d for longitude %g", id, res.Nakshatra.Ordinal, want, res.Longitude)
		}
	}
}

// ── Phase 3: House Coverage ──
// For a fixed date, the twelve risings must place the moon in twelve distinct houses.

func validateHouseCoverage(calc *domain.Calculator) *phase {
	p := &phase{name: "Phase 3: House Coverage (per date)"}

	for _, rec := range calc.FullMoons() {
		seen := make(map[int]domain.Sign, domain.HouseCount)
		for _, rising := range domain.Signs() {
			res, err := calc.Compute(domain.Selection{System: domain.Tropical, Rising: rising, Date: rec.Date})
			if errors.Is(err, domain.ErrRecordNotFound) {
				p.errorf("%s: listed date has no record", rec.Date)
				break
			}
			if err != nil {
				continue
			}
			if prev, dup := seen[res.House]; dup {
				p.errorf("%s: risings %s and %s both give house %d", rec.Date, prev, rising, res.House)
			}
			seen[res.House] = rising
		}
	}
	return p
}
