package symbols

import (
	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"

	"github.com/mohamedagadya/Stocks/internal/models"
)

// DefaultThreshold is the minimum similarity score (0-100) for a lookup hit.
const DefaultThreshold = 50

// Match scores the query against every alias and returns the best candidate
// when its score reaches the threshold, or the zero MatchResult otherwise.
//
// The function is pure. When several aliases share the maximum score the
// first one in entry order wins; that tie-break is an implementation detail
// of this matcher, not a guarantee.
func Match(query string, entries []models.AliasEntry, threshold int) models.MatchResult {
	var best models.AliasEntry
	bestScore := -1

	// UWRatio keeps non-ASCII runes in play; the ASCII-cleansing WRatio
	// scores Arabic-only aliases as zero.
	for _, e := range entries {
		score := fuzzy.UWRatio(query, e.Alias)
		if score > bestScore {
			bestScore = score
			best = e
		}
	}

	if bestScore < threshold || best.Alias == "" {
		return models.MatchResult{Score: max(bestScore, 0)}
	}

	return models.MatchResult{
		Alias:  best.Alias,
		Score:  bestScore,
		Ticker: best.Ticker,
	}
}
