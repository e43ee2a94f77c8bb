package pipeline

import (
	"context"
	"log/slog"

	"github.com/couchcryptid/moon-house-service/internal/domain"
)

// HouseTransformer implements Transformer by running each selection through
// a Calculator.
type HouseTransformer struct {
	calc   *domain.Calculator
	logger *slog.Logger
}

// NewTransformer creates a HouseTransformer over a loaded Calculator.
func NewTransformer(calc *domain.Calculator, logger *slog.Logger) *HouseTransformer {
	return &HouseTransformer{
		calc:   calc,
		logger: logger,
	}
}

func (t *HouseTransformer) Transform(_ context.Context, raw domain.RawMessage) (domain.OutputMessage, error) {
	sel, err := domain.ParseSelection(raw)
	if err != nil {
		return domain.OutputMessage{}, err
	}

	res, err := t.calc.Compute(sel)
	if err != nil {
		return domain.OutputMessage{}, err
	}

	t.logger.Debug("selection computed",
		"date", res.Date, "system", res.System, "rising", res.Rising.String(), "house", res.House)

	return domain.SerializeResult(res)
}
