package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "*", cfg.CORSAllowed)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, CatalogSourceCSV, cfg.CatalogSource)
	assert.Equal(t, "data/delhi_civic_complaints.csv", cfg.CatalogPath)
	assert.Empty(t, cfg.ModelURL)
}

func TestLoadFromEnvironment(t *testing.T) {
	chdirTemp(t)
	t.Setenv("PORT", "9090")
	t.Setenv("CATALOG_SOURCE", " Postgres ")
	t.Setenv("DATABASE_URL", "postgres://localhost/complaints")
	t.Setenv("REQUEST_TIMEOUT", "5s")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, CatalogSourcePostgres, cfg.CatalogSource)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
}

func TestLoadEmptyEnvironmentOverridesDefaults(t *testing.T) {
	chdirTemp(t)
	t.Setenv("ZONE_ENCODER_PATH", "")
	t.Setenv("AREA_ENCODER_PATH", "")
	t.Setenv("MODEL_PATH", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.ZoneEncoderPath)
	assert.Empty(t, cfg.AreaEncoderPath)
	assert.Empty(t, cfg.ModelPath)
	assert.Equal(t, "data/delhi_civic_complaints.csv", cfg.CatalogPath)
}

func TestLoadRejectsPostgresWithoutURL(t *testing.T) {
	chdirTemp(t)
	t.Setenv("CATALOG_SOURCE", "postgres")
	t.Setenv("DATABASE_URL", "")

	_, err := Load()
	assert.ErrorContains(t, err, "DATABASE_URL")
}

func TestValidateUnknownSource(t *testing.T) {
	cfg := Config{CatalogSource: "s3"}
	assert.Error(t, cfg.Validate())
}

// chdirTemp moves into an empty directory so a developer's .env is not read.
func chdirTemp(t *testing.T) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}
