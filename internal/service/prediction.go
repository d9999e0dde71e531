package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/civic_pulse/mlservice/internal/catalog"
	"github.com/civic_pulse/mlservice/internal/encoder"
	"github.com/civic_pulse/mlservice/internal/matcher"
	"github.com/civic_pulse/mlservice/internal/ml"
	"github.com/civic_pulse/mlservice/internal/models"
	"github.com/civic_pulse/mlservice/internal/observability"
)

const (
	// MinMatchScore is the lowest score accepted as a real match.
	MinMatchScore = 20
	// FallbackTotal replaces a failed or non-positive prediction.
	FallbackTotal = 50
	// MaxTotal is the largest prediction accepted as a complaint count.
	MaxTotal = math.MaxInt32
)

// PredictionService resolves an address to a catalog area and forecasts its
// complaint volume. All dependencies are read-only after construction, so a
// single instance serves concurrent requests.
type PredictionService struct {
	Catalog     *catalog.Catalog
	Matcher     matcher.Matcher
	ZoneEncoder encoder.Encoder
	AreaEncoder encoder.Encoder
	Predictor   ml.Predictor
	Metrics     *observability.Metrics
	Logger      zerolog.Logger
}

// Predict runs the full address-to-forecast pipeline. Only encoder and
// catalog failures are returned as errors; model failures fall back to
// FallbackTotal.
func (s *PredictionService) Predict(ctx context.Context, address string) (models.Prediction, error) {
	start := time.Now()
	p, err := s.predict(ctx, address)
	if s.Metrics != nil {
		s.Metrics.PipelineDuration.Observe(time.Since(start).Seconds())
		if err != nil {
			s.Metrics.PipelineErrors.Inc()
		} else {
			s.Metrics.Predictions.WithLabelValues(string(p.PredictionOutcome)).Inc()
			s.Metrics.Matches.WithLabelValues(string(p.MatchOutcome)).Inc()
			s.Metrics.MatchScore.Observe(float64(p.MatchScore))
		}
	}
	return p, err
}

func (s *PredictionService) predict(ctx context.Context, address string) (models.Prediction, error) {
	query := strings.TrimSpace(address)
	match := s.Matcher.Match(query, s.Catalog.AreaNames())

	area := match.Area
	matchOutcome := models.MatchOutcomeMatched
	if !match.Found || match.Score < MinMatchScore {
		area = s.Catalog.First().Area
		matchOutcome = models.MatchOutcomeFallbackArea
		s.Logger.Debug().
			Str("query", query).
			Str("candidate", match.Area).
			Int("score", match.Score).
			Str("fallback_area", area).
			Msg("low confidence match, using fallback area")
	}

	zone, err := s.Catalog.ZoneForArea(area)
	if err != nil {
		return models.Prediction{}, err
	}
	latest, err := s.Catalog.FindLatestRecord(area)
	if err != nil {
		return models.Prediction{}, err
	}

	zoneCode, err := s.ZoneEncoder.Encode(zone)
	if err != nil {
		return models.Prediction{}, fmt.Errorf("encode zone: %w", err)
	}
	areaCode, err := s.AreaEncoder.Encode(area)
	if err != nil {
		return models.Prediction{}, fmt.Errorf("encode area: %w", err)
	}

	features := ml.Features{ZoneCode: zoneCode, AreaCode: areaCode, Year: latest.Year, Month: latest.Month}
	raw, predErr := s.Predictor.Predict(ctx, features)
	value, outcome := applyPredictionFallback(raw, predErr)
	switch outcome {
	case models.PredictionOutcomeFallbackError:
		s.Logger.Warn().Err(predErr).Str("area", area).Msg("prediction failed, using fallback total")
	case models.PredictionOutcomeFallbackNonPositive:
		s.Logger.Debug().Float64("raw", raw).Str("area", area).Msg("non-positive prediction, using fallback total")
	}

	total := int(value)
	resolved, pending := SplitTotal(total)
	return models.Prediction{
		Zone:               zone,
		Area:               area,
		TotalComplaints:    total,
		ResolvedComplaints: resolved,
		PendingComplaints:  pending,
		MatchScore:         match.Score,
		MatchOutcome:       matchOutcome,
		PredictionOutcome:  outcome,
		RawPrediction:      raw,
	}, nil
}

// applyPredictionFallback treats errors, non-finite values, values above
// MaxTotal and values <= 0 alike: all become FallbackTotal.
func applyPredictionFallback(raw float64, err error) (float64, models.PredictionOutcome) {
	if err != nil || math.IsNaN(raw) || math.IsInf(raw, 0) || raw > MaxTotal {
		return FallbackTotal, models.PredictionOutcomeFallbackError
	}
	if raw <= 0 {
		return FallbackTotal, models.PredictionOutcomeFallbackNonPositive
	}
	return raw, models.PredictionOutcomePredicted
}

// SplitTotal returns floor(total*0.9) resolved and the remainder pending,
// computed in integers so the split is exact for any non-negative int.
func SplitTotal(total int) (resolved, pending int) {
	resolved = total/10*9 + total%10*9/10
	return resolved, total - resolved
}
