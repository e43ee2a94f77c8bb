package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/couchcryptid/moon-house-service/internal/adapter/refdata"
	"github.com/couchcryptid/moon-house-service/internal/domain"
	"github.com/spf13/cobra"
)

// globalOptions are shared by every subcommand.
type globalOptions struct {
	dataDir  string
	dataURL  string
	ayanamsa float64
	logLevel string
	timeout  time.Duration
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:          "moonhouse",
		Short:        "Find the house a full moon occupies for a rising sign",
		SilenceUsage: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.dataDir, "data-dir", "", "directory containing fullmoons.json, houses.json, nakshatras.json")
	flags.StringVar(&opts.dataURL, "data-url", "", "base URL serving the reference tables")
	flags.Float64Var(&opts.ayanamsa, "ayanamsa", domain.DefaultAyanamsa, "sidereal offset in degrees")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	flags.DurationVar(&opts.timeout, "timeout", 10*time.Second, "reference data load timeout")

	root.AddCommand(
		newComputeCmd(opts),
		newDatesCmd(opts),
		newNextCmd(opts),
	)
	return root
}

func (o *globalOptions) logger(cmd *cobra.Command) *slog.Logger {
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: levelOf(o.logLevel)}))
}

func levelOf(level string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return slog.LevelWarn
	}
	return l
}

func (o *globalOptions) source() (refdata.Source, error) {
	switch {
	case o.dataDir != "" && o.dataURL != "":
		return nil, errors.New("--data-dir and --data-url are mutually exclusive")
	case o.dataDir != "":
		return refdata.Dir(o.dataDir), nil
	case o.dataURL != "":
		return refdata.NewHTTPSource(o.dataURL, &http.Client{Timeout: o.timeout})
	default:
		return refdata.Embedded(), nil
	}
}

func (o *globalOptions) calculator(cmd *cobra.Command) (*domain.Calculator, error) {
	src, err := o.source()
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(cmd.Context(), o.timeout)
	defer cancel()
	return refdata.LoadCalculator(ctx, src, o.ayanamsa, o.logger(cmd))
}
