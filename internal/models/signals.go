package models

// Mood is the coarse emotional context inferred from a message. Values line
// up with product mood tags so overlap can be scored directly.
type Mood string

const (
	MoodAdventurous Mood = "adventurous"
	MoodComfort     Mood = "comfort"
	MoodIndulgent   Mood = "indulgent"
	MoodHealthy     Mood = "healthy"
)

// Dietary is a restriction the user declared. Restrictions act as hard
// filters on the catalog, never as soft penalties.
type Dietary string

const (
	DietaryVegetarian Dietary = "vegetarian"
	DietaryVegan      Dietary = "vegan"
	DietaryGlutenFree Dietary = "gluten_free"
	DietaryDairyFree  Dietary = "dairy_free"
)

// Flavor is a taste preference.
type Flavor string

const (
	FlavorSpicy  Flavor = "spicy"
	FlavorSweet  Flavor = "sweet"
	FlavorSavory Flavor = "savory"
	FlavorMild   Flavor = "mild"
)

// SignalSet is what a single message told us about the user. Every field is
// optional; the zero value means "no constraint".
type SignalSet struct {
	BudgetCeiling *float64 `json:"budget_ceiling,omitempty"`
	Mood          Mood     `json:"mood,omitempty"`
	Dietary       Dietary  `json:"dietary,omitempty"`
	Flavor        Flavor   `json:"flavor,omitempty"`
	CategoryHint  Category `json:"category_hint,omitempty"`

	// Engagement flags feed the interest score only, not product matching.
	PriceInquiry  bool `json:"price_inquiry,omitempty"`
	Question      bool `json:"question,omitempty"`
	Enthusiasm    bool `json:"enthusiasm,omitempty"`
	OrderIntent   bool `json:"order_intent,omitempty"`
	Hesitation    bool `json:"hesitation,omitempty"`
	Rejection     bool `json:"rejection,omitempty"`
	BudgetConcern bool `json:"budget_concern,omitempty"`
}

// Empty reports whether no signal of any kind was recognized.
func (s SignalSet) Empty() bool {
	return s.BudgetCeiling == nil &&
		s.Mood == "" &&
		s.Dietary == "" &&
		s.Flavor == "" &&
		s.CategoryHint == "" &&
		!s.PriceInquiry &&
		!s.Question &&
		!s.Enthusiasm &&
		!s.OrderIntent &&
		!s.Hesitation &&
		!s.Rejection &&
		!s.BudgetConcern
}

// HasPreferences reports whether the set carries any product-facing
// preference (as opposed to engagement flags alone).
func (s SignalSet) HasPreferences() bool {
	return s.BudgetCeiling != nil || s.Mood != "" || s.Dietary != "" ||
		s.Flavor != "" || s.CategoryHint != ""
}

// Match pairs a product with the score it earned against a signal set.
type Match struct {
	Product Product `json:"product"`
	Score   float64 `json:"score"`
}
