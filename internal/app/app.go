package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/civic_pulse/mlservice/internal/catalog"
	"github.com/civic_pulse/mlservice/internal/config"
	"github.com/civic_pulse/mlservice/internal/db"
	"github.com/civic_pulse/mlservice/internal/encoder"
	"github.com/civic_pulse/mlservice/internal/matcher"
	"github.com/civic_pulse/mlservice/internal/ml"
	"github.com/civic_pulse/mlservice/internal/observability"
	"github.com/civic_pulse/mlservice/internal/service"
)

// App is the startup state shared read-only by every request.
type App struct {
	Service     *service.PredictionService
	Categorizer ml.Categorizer
	Store       *db.Store
}

// Build loads the catalog, encoders and model described by cfg. metrics may
// be nil.
func Build(ctx context.Context, cfg config.Config, metrics *observability.Metrics, logger zerolog.Logger) (*App, error) {
	a := &App{Categorizer: ml.StaticCategorizer{}}

	cat, err := a.loadCatalog(ctx, cfg)
	if err != nil {
		a.Close()
		return nil, err
	}
	logger.Info().Int("records", cat.Len()).Int("areas", len(cat.AreaNames())).Str("source", cfg.CatalogSource).Msg("catalog loaded")
	if metrics != nil {
		metrics.CatalogRecords.Set(float64(cat.Len()))
	}

	zones, err := loadEncoder(cfg.ZoneEncoderPath, cat.Zones(), "zone", logger)
	if err != nil {
		a.Close()
		return nil, err
	}
	areas, err := loadEncoder(cfg.AreaEncoderPath, cat.AreaNames(), "area", logger)
	if err != nil {
		a.Close()
		return nil, err
	}

	predictor, err := loadPredictor(cfg, logger)
	if err != nil {
		a.Close()
		return nil, err
	}

	a.Service = &service.PredictionService{
		Catalog:     cat,
		Matcher:     matcher.NewFuzzyMatcher(),
		ZoneEncoder: zones,
		AreaEncoder: areas,
		Predictor:   predictor,
		Metrics:     metrics,
		Logger:      logger,
	}
	return a, nil
}

func (a *App) loadCatalog(ctx context.Context, cfg config.Config) (*catalog.Catalog, error) {
	switch cfg.CatalogSource {
	case config.CatalogSourcePostgres:
		store, err := db.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("connect db: %w", err)
		}
		a.Store = store
		records, err := store.LoadComplaintRecords(ctx)
		if err != nil {
			return nil, fmt.Errorf("load catalog from db: %w", err)
		}
		return catalog.New(records)
	default:
		return catalog.LoadCSV(cfg.CatalogPath)
	}
}

// loadEncoder reads the encoder artifact, or fits one on the catalog's own
// values when no artifact is configured.
func loadEncoder(path string, values []string, name string, logger zerolog.Logger) (*encoder.LabelEncoder, error) {
	if path == "" {
		logger.Info().Str("encoder", name).Int("classes", len(values)).Msg("no encoder artifact, fitting on catalog")
		return encoder.New(values)
	}
	e, err := encoder.Load(path)
	if err != nil {
		return nil, fmt.Errorf("%s encoder: %w", name, err)
	}
	return e, nil
}

func loadPredictor(cfg config.Config, logger zerolog.Logger) (ml.Predictor, error) {
	switch {
	case cfg.ModelURL != "":
		logger.Info().Str("url", cfg.ModelURL).Msg("using remote model")
		return ml.HTTPPredictor{BaseURL: cfg.ModelURL}, nil
	case cfg.ModelPath != "":
		p, err := ml.LoadModel(cfg.ModelPath)
		if err != nil {
			return nil, err
		}
		logger.Info().Str("path", cfg.ModelPath).Msg("model loaded")
		return p, nil
	default:
		logger.Info().Msg("using mock predictor")
		return ml.MockPredictor{}, nil
	}
}

// Ready reports whether the backing store, if any, is reachable.
func (a *App) Ready(ctx context.Context) error {
	if a.Service == nil || a.Service.Catalog == nil {
		return errors.New("catalog not loaded")
	}
	if a.Store != nil {
		if err := a.Store.Ping(ctx); err != nil {
			return fmt.Errorf("db: %w", err)
		}
	}
	return nil
}

func (a *App) Close() {
	if a.Store != nil {
		a.Store.Close()
		a.Store = nil
	}
}
