package services

import (
	"regexp"
	"strconv"
	"strings"

	"foodiebot/internal/models"
)

// Keyword tables for the lexical extractor. When several entries of the same
// kind could match, the first matching entry in table order wins; later
// occurrences in the text never override it.

var moodKeywords = []struct {
	keyword string
	mood    models.Mood
}{
	{"adventurous", models.MoodAdventurous},
	{"try something new", models.MoodAdventurous},
	{"surprise me", models.MoodAdventurous},
	{"comfort", models.MoodComfort},
	{"stressed", models.MoodComfort},
	{"cozy", models.MoodComfort},
	{"cheer", models.MoodComfort},
	{"indulgent", models.MoodIndulgent},
	{"treat myself", models.MoodIndulgent},
	{"celebrate", models.MoodIndulgent},
	{"healthy", models.MoodHealthy},
	{"light meal", models.MoodHealthy},
	{"fresh", models.MoodHealthy},
}

var dietaryKeywords = []struct {
	keyword string
	dietary models.Dietary
}{
	{"vegan", models.DietaryVegan},
	{"vegetarian", models.DietaryVegetarian},
	{"no meat", models.DietaryVegetarian},
	{"gluten-free", models.DietaryGlutenFree},
	{"gluten free", models.DietaryGlutenFree},
	{"dairy-free", models.DietaryDairyFree},
	{"dairy free", models.DietaryDairyFree},
	{"lactose", models.DietaryDairyFree},
}

var flavorKeywords = []struct {
	keyword string
	flavor  models.Flavor
}{
	{"spicy", models.FlavorSpicy},
	{"hot sauce", models.FlavorSpicy},
	{"fiery", models.FlavorSpicy},
	{"sweet", models.FlavorSweet},
	{"savory", models.FlavorSavory},
	{"smoky", models.FlavorSavory},
	{"mild", models.FlavorMild},
	{"not spicy", models.FlavorMild},
}

var categoryKeywords = []struct {
	keyword  string
	category models.Category
}{
	{"burger", models.CategoryBurgers},
	{"pizza", models.CategoryPizza},
	{"fried chicken", models.CategoryFriedChicken},
	{"chicken", models.CategoryFriedChicken},
	{"taco", models.CategoryTacosWraps},
	{"wrap", models.CategoryTacosWraps},
	{"fries", models.CategorySides},
	{"appetizer", models.CategorySides},
	{"side", models.CategorySides},
	{"drink", models.CategoryBeverages},
	{"beverage", models.CategoryBeverages},
	{"shake", models.CategoryBeverages},
	{"dessert", models.CategoryDesserts},
	{"salad", models.CategorySalads},
	{"breakfast", models.CategoryBreakfast},
	{"special", models.CategorySpecials},
}

var enthusiasmWords = []string{"amazing", "love", "perfect", "awesome", "great", "delicious", "yum"}

var orderIntentPhrases = []string{"add to cart", "i'll take", "i will take", "order now", "i want to order", "buy it", "add it"}

var hesitationPhrases = []string{"maybe", "not sure", "i don't know", "dont know"}

var rejectionPhrases = []string{"too expensive", "not for me", "i don't like that", "i dont like that"}

var budgetConcernPhrases = []string{"too expensive", "costly", "expensive"}

var (
	budgetRe = regexp.MustCompile(`(?:under|below|less than)\s*\$?\s*(\d+(?:\.\d+)?)`)
	priceRe  = regexp.MustCompile(`\$\d+`)
)

// ExtractSignals maps raw free text to a signal set using a lowercased
// lexical scan over the keyword tables. Unrecognized text yields an empty
// set; malformed budget text leaves the budget unset. It never fails.
func ExtractSignals(text string) models.SignalSet {
	var sig models.SignalSet
	lowered := strings.ToLower(text)
	if strings.TrimSpace(lowered) == "" {
		return sig
	}

	for _, entry := range moodKeywords {
		if strings.Contains(lowered, entry.keyword) {
			sig.Mood = entry.mood
			break
		}
	}

	for _, entry := range dietaryKeywords {
		if strings.Contains(lowered, entry.keyword) {
			sig.Dietary = entry.dietary
			break
		}
	}

	for _, entry := range flavorKeywords {
		if strings.Contains(lowered, entry.keyword) {
			sig.Flavor = entry.flavor
			break
		}
	}

	for _, entry := range categoryKeywords {
		if strings.Contains(lowered, entry.keyword) {
			sig.CategoryHint = entry.category
			break
		}
	}

	// "not spicy" must beat the bare "spicy" substring.
	if strings.Contains(lowered, "not spicy") {
		sig.Flavor = models.FlavorMild
	}

	if m := budgetRe.FindStringSubmatch(lowered); m != nil {
		if ceiling, err := strconv.ParseFloat(m[1], 64); err == nil {
			sig.BudgetCeiling = &ceiling
		}
	} else if priceRe.MatchString(lowered) {
		sig.PriceInquiry = true
	}

	sig.Question = strings.Contains(lowered, "?")
	sig.Enthusiasm = containsAny(lowered, enthusiasmWords)
	sig.OrderIntent = containsAny(lowered, orderIntentPhrases)
	sig.Hesitation = containsAny(lowered, hesitationPhrases)
	sig.Rejection = containsAny(lowered, rejectionPhrases)
	sig.BudgetConcern = containsAny(lowered, budgetConcernPhrases)

	return sig
}

func containsAny(text string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(text, p) {
			return true
		}
	}
	return false
}

// MergeHistory fills unset preference fields of the current signal set from
// prior signal sets, newest first. Preferences persist within a conversation
// until the user states new ones; engagement flags are never carried over.
func MergeHistory(current models.SignalSet, prior []models.SignalSet) models.SignalSet {
	merged := current
	for i := len(prior) - 1; i >= 0; i-- {
		p := prior[i]
		if merged.BudgetCeiling == nil && p.BudgetCeiling != nil {
			merged.BudgetCeiling = p.BudgetCeiling
		}
		if merged.Mood == "" {
			merged.Mood = p.Mood
		}
		if merged.Dietary == "" {
			merged.Dietary = p.Dietary
		}
		if merged.Flavor == "" {
			merged.Flavor = p.Flavor
		}
		if merged.CategoryHint == "" {
			merged.CategoryHint = p.CategoryHint
		}
	}
	return merged
}
