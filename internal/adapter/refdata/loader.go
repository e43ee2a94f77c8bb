package refdata

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/moon-house-service/internal/domain"
	"golang.org/x/sync/errgroup"
)

// Load reads the three reference tables concurrently. All three must decode
// before the tables are returned; the first failure cancels the others.
func Load(ctx context.Context, src Source, logger *slog.Logger) (domain.Tables, error) {
	var tables domain.Tables
	start := time.Now()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return decode(gctx, src, FullMoonsFile, &tables.FullMoons) })
	g.Go(func() error { return decode(gctx, src, HousesFile, &tables.Houses) })
	g.Go(func() error { return decode(gctx, src, NakshatrasFile, &tables.Nakshatras) })

	if err := g.Wait(); err != nil {
		return domain.Tables{}, err
	}

	logger.Info("reference tables loaded",
		"source", src.String(),
		"full_moons", len(tables.FullMoons),
		"houses", len(tables.Houses),
		"nakshatras", len(tables.Nakshatras),
		"duration", time.Since(start),
	)
	return tables, nil
}

// LoadCalculator loads the tables and builds a Calculator from them.
func LoadCalculator(ctx context.Context, src Source, ayanamsa float64, logger *slog.Logger) (*domain.Calculator, error) {
	tables, err := Load(ctx, src, logger)
	if err != nil {
		return nil, err
	}
	calc, err := domain.NewCalculator(tables, ayanamsa)
	if err != nil {
		return nil, fmt.Errorf("build calculator from %s: %w", src, err)
	}
	return calc, nil
}

func decode(ctx context.Context, src Source, name string, v any) error {
	rc, err := src.Open(ctx, name)
	if err != nil {
		return fmt.Errorf("open %s: %w", name, err)
	}
	defer rc.Close() //nolint:errcheck // read-only

	if err := json.NewDecoder(rc).Decode(v); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}
