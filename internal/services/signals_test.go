package services

import (
	"testing"

	"foodiebot/internal/models"
)

func TestExtractSignals_SpicyBurgerUnderBudget(t *testing.T) {
	sig := ExtractSignals("I want a spicy burger under $10")

	if sig.Flavor != models.FlavorSpicy {
		t.Fatalf("expected spicy flavor, got %q", sig.Flavor)
	}
	if sig.CategoryHint != models.CategoryBurgers {
		t.Fatalf("expected burger category hint, got %q", sig.CategoryHint)
	}
	if sig.BudgetCeiling == nil || *sig.BudgetCeiling != 10 {
		t.Fatalf("expected budget ceiling 10, got %v", sig.BudgetCeiling)
	}
}

func TestExtractSignals_UnrecognizedTextYieldsEmptySet(t *testing.T) {
	for _, text := range []string{"hello", "xyzzy plugh", "   "} {
		if sig := ExtractSignals(text); !sig.Empty() {
			t.Fatalf("expected empty signal set for %q, got %+v", text, sig)
		}
	}
}

func TestExtractSignals_DietaryAndMood(t *testing.T) {
	sig := ExtractSignals("I'm vegan and pretty stressed today")

	if sig.Dietary != models.DietaryVegan {
		t.Fatalf("expected vegan restriction, got %q", sig.Dietary)
	}
	if sig.Mood != models.MoodComfort {
		t.Fatalf("expected comfort mood, got %q", sig.Mood)
	}
}

func TestExtractSignals_TableOrderWins(t *testing.T) {
	// "vegan" precedes "vegetarian" in the table, so it wins regardless of
	// where each keyword sits in the text.
	sig := ExtractSignals("vegetarian or vegan, either works")
	if sig.Dietary != models.DietaryVegan {
		t.Fatalf("expected vegan (first table entry), got %q", sig.Dietary)
	}
}

func TestExtractSignals_MalformedBudgetIgnored(t *testing.T) {
	sig := ExtractSignals("something under $ please")
	if sig.BudgetCeiling != nil {
		t.Fatalf("expected no budget ceiling, got %v", *sig.BudgetCeiling)
	}
}

func TestExtractSignals_BarePriceIsInquiryNotBudget(t *testing.T) {
	sig := ExtractSignals("is the deluxe really $15")
	if sig.BudgetCeiling != nil {
		t.Fatalf("expected no budget ceiling, got %v", *sig.BudgetCeiling)
	}
	if !sig.PriceInquiry {
		t.Fatal("expected price inquiry flag")
	}
}

func TestExtractSignals_NotSpicyMeansMild(t *testing.T) {
	sig := ExtractSignals("please not spicy at all")
	if sig.Flavor != models.FlavorMild {
		t.Fatalf("expected mild flavor, got %q", sig.Flavor)
	}
}

func TestExtractSignals_EngagementFlags(t *testing.T) {
	sig := ExtractSignals("That sounds amazing, I'll take it! Can you add to cart?")
	if !sig.Enthusiasm {
		t.Fatal("expected enthusiasm flag")
	}
	if !sig.OrderIntent {
		t.Fatal("expected order intent flag")
	}
	if !sig.Question {
		t.Fatal("expected question flag")
	}
}

func TestMergeHistory_FillsUnsetFieldsFromMostRecent(t *testing.T) {
	oldBudget := 20.0
	newBudget := 9.0
	prior := []models.SignalSet{
		{Dietary: models.DietaryVegan, BudgetCeiling: &oldBudget},
		{BudgetCeiling: &newBudget, Mood: models.MoodComfort},
	}

	merged := MergeHistory(models.SignalSet{Flavor: models.FlavorSpicy}, prior)

	if merged.Flavor != models.FlavorSpicy {
		t.Fatalf("current flavor lost: %q", merged.Flavor)
	}
	if merged.Dietary != models.DietaryVegan {
		t.Fatalf("expected vegan carried over, got %q", merged.Dietary)
	}
	if merged.BudgetCeiling == nil || *merged.BudgetCeiling != 9 {
		t.Fatalf("expected most recent budget 9, got %v", merged.BudgetCeiling)
	}
	if merged.Mood != models.MoodComfort {
		t.Fatalf("expected comfort mood carried over, got %q", merged.Mood)
	}
}

func TestMergeHistory_CurrentOverridesHistory(t *testing.T) {
	old := 20.0
	current := 8.0
	prior := []models.SignalSet{{BudgetCeiling: &old, Flavor: models.FlavorSweet}}

	merged := MergeHistory(models.SignalSet{BudgetCeiling: &current, Flavor: models.FlavorSpicy}, prior)

	if *merged.BudgetCeiling != 8 {
		t.Fatalf("expected current budget 8, got %v", *merged.BudgetCeiling)
	}
	if merged.Flavor != models.FlavorSpicy {
		t.Fatalf("expected current flavor, got %q", merged.Flavor)
	}
}
