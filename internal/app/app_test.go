package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/civic_pulse/mlservice/internal/config"
	"github.com/civic_pulse/mlservice/internal/ml"
	"github.com/civic_pulse/mlservice/internal/models"
	"github.com/civic_pulse/mlservice/internal/observability"
)

const catalogCSV = "Area,Zone,Year,Month,Total_Complaints\n" +
	"Connaught Place,Central,2023,2,120\n" +
	"Rohini,North West,2022,11,55\n" +
	"Rohini,North West,2023,1,60\n"

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestBuildFromArtifacts(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Config{
		CatalogSource:   config.CatalogSourceCSV,
		CatalogPath:     writeFile(t, dir, "complaints.csv", catalogCSV),
		ModelPath:       writeFile(t, dir, "model.json", `{"type":"linear","intercept":90.7,"coefficients":[0,0,0,0]}`),
		ZoneEncoderPath: writeFile(t, dir, "zone.json", `{"classes":["Central","North West"]}`),
		AreaEncoderPath: writeFile(t, dir, "area.json", `{"classes":["Connaught Place","Rohini"]}`),
	}
	metrics := observability.NewMetricsForTesting()

	a, err := Build(context.Background(), cfg, metrics, zerolog.Nop())
	require.NoError(t, err)
	defer a.Close()

	assert.Equal(t, 3.0, testutil.ToFloat64(metrics.CatalogRecords))
	require.NoError(t, a.Ready(context.Background()))

	res, err := a.Service.Predict(context.Background(), "rohini")
	require.NoError(t, err)
	assert.Equal(t, "Rohini", res.Area)
	assert.Equal(t, 90, res.TotalComplaints)
	assert.Equal(t, 81, res.ResolvedComplaints)
	assert.Equal(t, 9, res.PendingComplaints)
	assert.Equal(t, models.PredictionOutcomePredicted, res.PredictionOutcome)
}

func TestBuildFitsEncodersAndUsesMockWithoutArtifacts(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Config{
		CatalogSource: config.CatalogSourceCSV,
		CatalogPath:   writeFile(t, dir, "complaints.csv", catalogCSV),
	}

	a, err := Build(context.Background(), cfg, nil, zerolog.Nop())
	require.NoError(t, err)

	assert.IsType(t, ml.MockPredictor{}, a.Service.Predictor)
	code, err := a.Service.AreaEncoder.Encode("Rohini")
	require.NoError(t, err)
	assert.Equal(t, 1, code)
}

func TestBuildUsesRemoteModelWhenConfigured(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Config{
		CatalogSource: config.CatalogSourceCSV,
		CatalogPath:   writeFile(t, dir, "complaints.csv", catalogCSV),
		ModelPath:     filepath.Join(dir, "ignored.json"),
		ModelURL:      "http://model:9000",
	}

	a, err := Build(context.Background(), cfg, nil, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, ml.HTTPPredictor{BaseURL: "http://model:9000"}, a.Service.Predictor)
}

func TestBuildFailsOnBrokenArtifacts(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "complaints.csv", catalogCSV)

	cases := map[string]config.Config{
		"missing catalog": {CatalogSource: config.CatalogSourceCSV, CatalogPath: filepath.Join(dir, "nope.csv")},
		"empty catalog":   {CatalogSource: config.CatalogSourceCSV, CatalogPath: writeFile(t, dir, "empty.csv", "Area,Zone,Year,Month\n")},
		"bad encoder":     {CatalogSource: config.CatalogSourceCSV, CatalogPath: good, ZoneEncoderPath: writeFile(t, dir, "z.json", `[]`)},
		"bad model":       {CatalogSource: config.CatalogSourceCSV, CatalogPath: good, ModelPath: writeFile(t, dir, "m.json", `{"type":"forest"}`)},
	}
	for name, cfg := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Build(context.Background(), cfg, nil, zerolog.Nop())
			assert.Error(t, err)
		})
	}
}

func TestShippedArtifactsAreConsistent(t *testing.T) {
	cfg := config.Config{
		CatalogSource:   config.CatalogSourceCSV,
		CatalogPath:     "../../data/delhi_civic_complaints.csv",
		ModelPath:       "../../data/complaints_model.json",
		ZoneEncoderPath: "../../data/zone_encoder.json",
		AreaEncoderPath: "../../data/area_encoder.json",
	}
	a, err := Build(context.Background(), cfg, nil, zerolog.Nop())
	require.NoError(t, err)

	for _, area := range a.Service.Catalog.AreaNames() {
		res, err := a.Service.Predict(context.Background(), area)
		require.NoError(t, err, area)
		assert.Equal(t, area, res.Area)
		assert.Equal(t, models.PredictionOutcomePredicted, res.PredictionOutcome, area)
	}
}
