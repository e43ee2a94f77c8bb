package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/couchcryptid/moon-house-service/internal/domain"
	"github.com/couchcryptid/moon-house-service/internal/render"
	"github.com/spf13/cobra"
)

func newComputeCmd(opts *globalOptions) *cobra.Command {
	var (
		system string
		rising string
		date   string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "compute",
		Short: "Compute the house, sign, nakshatra, and numerology for a full moon",
		Long: `Compute the house a full moon occupies for the given rising sign.

The date must match a full moon in the reference tables; use "moonhouse dates"
to list them. When --date is omitted the first full moon on record is used.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			calc, err := opts.calculator(cmd)
			if err != nil {
				return err
			}

			sys, err := domain.ParseSystem(system)
			if err != nil {
				return err
			}
			sign, err := domain.ParseSign(rising)
			if err != nil {
				return err
			}
			if date == "" {
				moons := calc.FullMoons()
				if len(moons) == 0 {
					return errors.New("no full moons on record")
				}
				date = moons[0].Date
			}

			res, err := calc.Compute(domain.Selection{System: sys, Rising: sign, Date: date})
			if errors.Is(err, domain.ErrRecordNotFound) {
				return fmt.Errorf("no full moon on %s (see \"moonhouse dates\")", date)
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			}
			_, err = fmt.Fprint(out, render.Text(render.Build(res)))
			return err
		},
	}

	cmd.Flags().StringVar(&system, "system", string(domain.Tropical), "zodiac system: tropical or sidereal")
	cmd.Flags().StringVar(&rising, "rising", domain.Aries.String(), "rising sign name or ordinal (0-11)")
	cmd.Flags().StringVar(&date, "date", "", "full moon date (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the raw result as JSON")
	return cmd
}
