package matcher

import (
	"github.com/civic_pulse/mlservice/internal/models"
)

// Matcher finds the known area that best resembles free text.
type Matcher interface {
	Match(query string, choices []string) models.MatchResult
}

type ScoreFunc func(query, choice string) int

// FuzzyMatcher returns the highest scoring choice. Among equal scores the
// earliest choice wins, but callers should not rely on that.
type FuzzyMatcher struct {
	Scorer ScoreFunc
}

func NewFuzzyMatcher() FuzzyMatcher {
	return FuzzyMatcher{Scorer: WeightedRatio}
}

func (m FuzzyMatcher) Match(query string, choices []string) models.MatchResult {
	scorer := m.Scorer
	if scorer == nil {
		scorer = WeightedRatio
	}
	if Process(query) == "" || len(choices) == 0 {
		return models.MatchResult{}
	}

	best := models.MatchResult{Score: -1}
	for _, c := range choices {
		score := scorer(query, c)
		if score > best.Score {
			best = models.MatchResult{Area: c, Score: score, Found: true}
			if score == 100 {
				break
			}
		}
	}
	return best
}
