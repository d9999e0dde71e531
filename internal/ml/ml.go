package ml

import (
	"context"
)

// Features is the model input, in the column order the model was trained on:
// Zone_enc, Area_enc, Year, Month.
type Features struct {
	ZoneCode int `json:"Zone_enc"`
	AreaCode int `json:"Area_enc"`
	Year     int `json:"Year"`
	Month    int `json:"Month"`
}

func (f Features) Vector() []float64 {
	return []float64{float64(f.ZoneCode), float64(f.AreaCode), float64(f.Year), float64(f.Month)}
}

const FeatureCount = 4

type Predictor interface {
	Predict(ctx context.Context, f Features) (float64, error)
}

type Categorizer interface {
	Categorize(ctx context.Context, text string) (string, error)
}
