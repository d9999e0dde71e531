package ml

import (
	"context"
)

// StaticCategorizer returns the same label for every text.
type StaticCategorizer struct {
	Label string
}

const DefaultCategory = "Waste Management"

func (s StaticCategorizer) Categorize(_ context.Context, _ string) (string, error) {
	if s.Label == "" {
		return DefaultCategory, nil
	}
	return s.Label, nil
}
