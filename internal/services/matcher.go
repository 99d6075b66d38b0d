package services

import (
	"sort"
	"strings"

	"foodiebot/internal/models"
)

// DefaultTopK is how many matches a chat turn returns.
const DefaultTopK = 6

// searchResultLimit caps the search surface's result list.
const searchResultLimit = 30

// MatchWeights is the soft-scoring policy for ranking products against a
// signal set. The values are a heuristic choice, not a tuned model; they are
// exposed as a struct so callers and tests can see and override the policy.
type MatchWeights struct {
	CategoryMatch     float64
	WithinBudget      float64
	OverBudgetPenalty float64
	MoodOverlap       float64
	FlavorMatch       float64
	DietaryFriendly   float64
	SpiceLevelBonus   float64
	PopularityScale   float64
}

// DefaultMatchWeights returns the standard ranking policy.
func DefaultMatchWeights() MatchWeights {
	return MatchWeights{
		CategoryMatch:     25,
		WithinBudget:      12,
		OverBudgetPenalty: 8,
		MoodOverlap:       10,
		FlavorMatch:       8,
		DietaryFriendly:   15,
		SpiceLevelBonus:   0.3,
		PopularityScale:   20,
	}
}

// DietaryCompatible is the hard-filter predicate: products that violate the
// restriction are excluded from ranking entirely, never merely down-ranked.
func DietaryCompatible(p models.Product, restriction models.Dietary) bool {
	switch restriction {
	case "":
		return true
	case models.DietaryVegetarian:
		return p.DietaryTags.Contains("vegetarian") || p.DietaryTags.Contains("vegan")
	case models.DietaryVegan:
		return p.DietaryTags.Contains("vegan")
	case models.DietaryGlutenFree:
		return !p.DietaryTags.Contains("contains_gluten")
	case models.DietaryDairyFree:
		return !p.DietaryTags.Contains("contains_dairy")
	default:
		return true
	}
}

// MatchProducts ranks the catalog snapshot against a signal set and returns
// up to k matches. Two explicit phases: hard dietary filter, then weighted
// soft scoring. With an empty signal set the popularity term alone orders
// the catalog, so results are never empty on a non-empty eligible catalog.
func MatchProducts(catalog []models.Product, sig models.SignalSet, k int) []models.Match {
	return MatchProductsWith(catalog, sig, k, DefaultMatchWeights())
}

// MatchProductsWith ranks with an explicit weighting policy.
func MatchProductsWith(catalog []models.Product, sig models.SignalSet, k int, w MatchWeights) []models.Match {
	eligible := make([]models.Product, 0, len(catalog))
	for _, p := range catalog {
		if DietaryCompatible(p, sig.Dietary) {
			eligible = append(eligible, p)
		}
	}

	matches := make([]models.Match, 0, len(eligible))
	for _, p := range eligible {
		matches = append(matches, models.Match{Product: p, Score: scoreProduct(p, sig, w)})
	}
	sortMatches(matches)

	if k >= 0 && len(matches) > k {
		matches = matches[:k]
	}
	return matches
}

func scoreProduct(p models.Product, sig models.SignalSet, w MatchWeights) float64 {
	var score float64

	if sig.CategoryHint != "" && p.Category == sig.CategoryHint {
		score += w.CategoryMatch
	}

	if sig.BudgetCeiling != nil {
		if p.Price <= *sig.BudgetCeiling {
			score += w.WithinBudget
		} else {
			score -= w.OverBudgetPenalty
		}
	}

	if sig.Mood != "" && p.MoodTags.Contains(string(sig.Mood)) {
		score += w.MoodOverlap
	}

	if sig.Flavor != "" {
		token := string(sig.Flavor)
		if containsFold(p.Name, token) || containsFold(p.Description, token) {
			score += w.FlavorMatch
		}
		switch sig.Flavor {
		case models.FlavorSpicy:
			score += float64(p.SpiceLevel) * w.SpiceLevelBonus
		case models.FlavorMild:
			score += float64(10-p.SpiceLevel) * w.SpiceLevelBonus
		}
	}

	// The product already passed the hard filter, so a declared restriction
	// means this one is compatible.
	if sig.Dietary != "" {
		score += w.DietaryFriendly
	}

	score += float64(p.PopularityScore) / w.PopularityScale

	if score < 0 {
		score = 0
	}
	return score
}

// SearchProducts is the search surface: text plus attribute filter over the
// catalog, independent of chat signals. An unknown category yields an empty
// result rather than an error.
func SearchProducts(catalog []models.Product, query, category string, maxPrice *float64) []models.Match {
	var categoryFilter models.Category
	if category != "" {
		parsed, ok := models.ParseCategory(category)
		if !ok {
			return []models.Match{}
		}
		categoryFilter = parsed
	}

	loweredQuery := strings.ToLower(strings.TrimSpace(query))

	matches := make([]models.Match, 0, len(catalog))
	for _, p := range catalog {
		if categoryFilter != "" && p.Category != categoryFilter {
			continue
		}
		if maxPrice != nil && p.Price > *maxPrice {
			continue
		}

		relevance := float64(p.PopularityScore) / 10
		if loweredQuery != "" {
			nameHit := strings.Contains(strings.ToLower(p.Name), loweredQuery)
			descHit := strings.Contains(strings.ToLower(p.Description), loweredQuery)
			if !nameHit && !descHit {
				continue
			}
			if nameHit {
				relevance += 5
			}
			if descHit {
				relevance += 3
			}
		}
		matches = append(matches, models.Match{Product: p, Score: relevance})
	}
	sortMatches(matches)

	if len(matches) > searchResultLimit {
		matches = matches[:searchResultLimit]
	}
	return matches
}

// sortMatches orders by score descending, then popularity descending, then
// product id ascending, so identical inputs always rank identically.
func sortMatches(matches []models.Match) {
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		if matches[i].Product.PopularityScore != matches[j].Product.PopularityScore {
			return matches[i].Product.PopularityScore > matches[j].Product.PopularityScore
		}
		return matches[i].Product.ID < matches[j].Product.ID
	})
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), needle)
}
