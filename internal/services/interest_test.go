package services

import (
	"testing"

	"foodiebot/internal/models"
)

func intPtr(v int) *int { return &v }

func TestInterestScore_WithinRange(t *testing.T) {
	budget := 10.0
	cases := []models.SignalSet{
		{},
		{Rejection: true, BudgetConcern: true, Hesitation: true},
		{
			BudgetCeiling: &budget,
			Mood:          models.MoodAdventurous,
			Dietary:       models.DietaryVegan,
			Flavor:        models.FlavorSpicy,
			CategoryHint:  models.CategoryBurgers,
			Question:      true,
			Enthusiasm:    true,
			OrderIntent:   true,
			PriceInquiry:  true,
		},
	}
	for i, sig := range cases {
		score := InterestScore(sig)
		if score < InterestMin || score > InterestMax {
			t.Fatalf("case %d: score %d outside [%d,%d]", i, score, InterestMin, InterestMax)
		}
	}
}

func TestInterestScore_FullSignalsBeatEmpty(t *testing.T) {
	budget := 10.0
	full := models.SignalSet{
		BudgetCeiling: &budget,
		Mood:          models.MoodComfort,
		Dietary:       models.DietaryVegetarian,
		Flavor:        models.FlavorSpicy,
		CategoryHint:  models.CategoryPizza,
	}
	if InterestScore(full) < InterestScore(models.SignalSet{}) {
		t.Fatal("fully signaled message must not score below an empty one")
	}
}

func TestInterestScore_NegativeSignalsClampAtFloor(t *testing.T) {
	sig := models.SignalSet{Rejection: true, BudgetConcern: true, Hesitation: true}
	if got := InterestScore(sig); got != InterestMin {
		t.Fatalf("expected floor %d, got %d", InterestMin, got)
	}
}

func TestInterestScore_Deterministic(t *testing.T) {
	sig := ExtractSignals("spicy tacos under $12, I love tacos!")
	first := InterestScore(sig)
	for i := 0; i < 5; i++ {
		if got := InterestScore(sig); got != first {
			t.Fatalf("score changed between calls: %d vs %d", first, got)
		}
	}
}

func TestAdjustForHistory_NoHistoryPassesThrough(t *testing.T) {
	if got := AdjustForHistory(40, nil); got != 40 {
		t.Fatalf("expected 40, got %d", got)
	}
}

func TestAdjustForHistory_BlendsWithPriorUserScores(t *testing.T) {
	prior := []models.Message{
		{Sender: SenderUser, InterestScore: intPtr(100)},
		{Sender: SenderBot, InterestScore: intPtr(0)}, // bot rows are ignored
		{Sender: SenderUser, InterestScore: intPtr(50)},
	}
	// 0.8*20 + 0.2*75 = 31
	if got := AdjustForHistory(20, prior); got != 31 {
		t.Fatalf("expected 31, got %d", got)
	}
}

func TestAdjustForHistory_StaysClamped(t *testing.T) {
	prior := []models.Message{{Sender: SenderUser, InterestScore: intPtr(100)}}
	if got := AdjustForHistory(100, prior); got != 100 {
		t.Fatalf("expected ceiling 100, got %d", got)
	}
}
