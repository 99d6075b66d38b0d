package services

import (
	"foodiebot/internal/models"
)

// Interest scores live in this closed range.
const (
	InterestMin = 0
	InterestMax = 100
)

// InterestFactors holds the additive contribution of each engagement signal.
// Negative factors pull the score down; the result is always clamped to
// [InterestMin, InterestMax].
type InterestFactors struct {
	BaseMessage         int
	SpecificPreferences int
	DietaryRestrictions int
	BudgetMention       int
	MoodIndication      int
	QuestionAsking      int
	EnthusiasmWords     int
	PriceInquiry        int
	OrderIntent         int
	Hesitation          int
	BudgetConcern       int
	Rejection           int
}

// DefaultInterestFactors returns the standard factor table.
func DefaultInterestFactors() InterestFactors {
	return InterestFactors{
		BaseMessage:         5,
		SpecificPreferences: 15,
		DietaryRestrictions: 10,
		BudgetMention:       5,
		MoodIndication:      20,
		QuestionAsking:      10,
		EnthusiasmWords:     8,
		PriceInquiry:        25,
		OrderIntent:         30,
		Hesitation:          -10,
		BudgetConcern:       -15,
		Rejection:           -25,
	}
}

// InterestScore computes the engagement score of a single message from its
// signal set using the default factors. Deterministic, no side effects.
func InterestScore(sig models.SignalSet) int {
	return InterestScoreWith(sig, DefaultInterestFactors())
}

// InterestScoreWith computes the engagement score with explicit factors.
func InterestScoreWith(sig models.SignalSet, f InterestFactors) int {
	score := f.BaseMessage

	if sig.Flavor != "" || sig.CategoryHint != "" {
		score += f.SpecificPreferences
	}
	if sig.Dietary != "" {
		score += f.DietaryRestrictions
	}
	if sig.BudgetCeiling != nil {
		score += f.BudgetMention
	}
	if sig.Mood != "" {
		score += f.MoodIndication
	}
	if sig.Question {
		score += f.QuestionAsking
	}
	if sig.Enthusiasm {
		score += f.EnthusiasmWords
	}
	if sig.PriceInquiry {
		score += f.PriceInquiry
	}
	if sig.OrderIntent {
		score += f.OrderIntent
	}
	if sig.Hesitation {
		score += f.Hesitation
	}
	if sig.BudgetConcern {
		score += f.BudgetConcern
	}
	if sig.Rejection {
		score += f.Rejection
	}

	return clampInterest(score)
}

// AdjustForHistory blends the current score with the running mean of prior
// user-message scores (80/20). With no usable history the score passes
// through unchanged. The adjustment only ever reads the conversation's own
// messages, so scores stay independent across conversations.
func AdjustForHistory(score int, prior []models.Message) int {
	var sum, count int
	for _, msg := range prior {
		if msg.Sender != SenderUser || msg.InterestScore == nil {
			continue
		}
		sum += *msg.InterestScore
		count++
	}
	if count == 0 {
		return clampInterest(score)
	}
	mean := float64(sum) / float64(count)
	blended := 0.8*float64(score) + 0.2*mean
	return clampInterest(int(blended + 0.5))
}

func clampInterest(score int) int {
	if score < InterestMin {
		return InterestMin
	}
	if score > InterestMax {
		return InterestMax
	}
	return score
}
