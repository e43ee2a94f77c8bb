package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/couchcryptid/moon-house-service/internal/domain"
	"github.com/couchcryptid/moon-house-service/internal/render"
	"github.com/spf13/cobra"
)

func newDatesCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "dates",
		Short: "List the full moons in the reference tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			calc, err := opts.calculator(cmd)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "DATE\tLABEL\tTROPICAL\tPEAK")
			for _, rec := range calc.FullMoons() {
				printRecord(tw, rec)
			}
			return tw.Flush()
		},
	}
}

func newNextCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "next",
		Short: "Show the next full moon on or after today",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			calc, err := opts.calculator(cmd)
			if err != nil {
				return err
			}
			rec, ok := calc.NextFullMoon()
			if !ok {
				return errors.New("no full moons on record")
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			printRecord(tw, rec)
			return tw.Flush()
		},
	}
}

func printRecord(tw *tabwriter.Writer, rec domain.FullMoonRecord) {
	peak := rec.Tropical.Time
	if peak == "" {
		peak = "—"
	}
	fmt.Fprintf(tw, "%s\t%s\t%s %s\t%s\n",
		rec.Date, render.DateLabel(rec.Date), rec.Tropical.Sign, render.FormatDegree(rec.Tropical.Degree), peak)
}
