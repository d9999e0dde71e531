package matcher

import (
	"strings"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"
)

// Process lowercases s, drops non-ASCII runes and turns everything that is
// not a letter or digit into a space.
func Process(s string) string {
	return strings.TrimSpace(fuzzy.Cleanse(s, true))
}

// WeightedRatio scores query against choice on a 0..100 scale after
// processing both. An empty processed string scores 0.
func WeightedRatio(query, choice string) int {
	return fuzzy.WRatio(Process(query), Process(choice))
}
