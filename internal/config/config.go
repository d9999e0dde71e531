package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	CatalogSourceCSV      = "csv"
	CatalogSourcePostgres = "postgres"
)

type Config struct {
	Env             string        `mapstructure:"ENV"`
	Port            string        `mapstructure:"PORT"`
	LogLevel        string        `mapstructure:"LOG_LEVEL"`
	CORSAllowed     string        `mapstructure:"CORS_ALLOWED_ORIGINS"`
	RequestTimeout  time.Duration `mapstructure:"REQUEST_TIMEOUT"`
	CatalogSource   string        `mapstructure:"CATALOG_SOURCE"`
	CatalogPath     string        `mapstructure:"CATALOG_PATH"`
	DatabaseURL     string        `mapstructure:"DATABASE_URL"`
	ModelPath       string        `mapstructure:"MODEL_PATH"`
	ModelURL        string        `mapstructure:"MODEL_URL"`
	ZoneEncoderPath string        `mapstructure:"ZONE_ENCODER_PATH"`
	AreaEncoderPath string        `mapstructure:"AREA_ENCODER_PATH"`
}

func Load() (Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AllowEmptyEnv(true)
	v.AutomaticEnv()
	_ = v.ReadInConfig()

	v.SetDefault("ENV", "dev")
	v.SetDefault("PORT", "8000")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("REQUEST_TIMEOUT", "30s")
	v.SetDefault("CATALOG_SOURCE", CatalogSourceCSV)
	v.SetDefault("CATALOG_PATH", "data/delhi_civic_complaints.csv")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("MODEL_PATH", "data/complaints_model.json")
	v.SetDefault("MODEL_URL", "")
	v.SetDefault("ZONE_ENCODER_PATH", "data/zone_encoder.json")
	v.SetDefault("AREA_ENCODER_PATH", "data/area_encoder.json")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	cfg.CatalogSource = strings.ToLower(strings.TrimSpace(cfg.CatalogSource))
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.CatalogSource {
	case CatalogSourceCSV:
		if c.CatalogPath == "" {
			return fmt.Errorf("CATALOG_PATH is required when CATALOG_SOURCE=%s", CatalogSourceCSV)
		}
	case CatalogSourcePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required when CATALOG_SOURCE=%s", CatalogSourcePostgres)
		}
	default:
		return fmt.Errorf("unknown CATALOG_SOURCE %q", c.CatalogSource)
	}
	return nil
}
