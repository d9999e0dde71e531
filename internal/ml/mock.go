package ml

import (
	"context"

	"github.com/civic_pulse/mlservice/internal/utils"
)

// MockPredictor produces a stable pseudo-prediction per feature vector, for
// running the service without a trained model.
type MockPredictor struct {
	Base float64
}

func (m MockPredictor) Predict(ctx context.Context, f Features) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	base := m.Base
	if base <= 0 {
		base = 40
	}
	h := utils.HashFields(f.ZoneCode, f.AreaCode, f.Year, f.Month)
	return base + float64(h%160) + float64(h%100)/100, nil
}
