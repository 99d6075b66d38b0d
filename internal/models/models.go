package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Category is one of the fixed menu categories products belong to.
type Category string

const (
	CategoryBurgers      Category = "Burgers"
	CategoryPizza        Category = "Pizza"
	CategoryFriedChicken Category = "Fried Chicken"
	CategoryTacosWraps   Category = "Tacos & Wraps"
	CategorySides        Category = "Sides & Appetizers"
	CategoryBeverages    Category = "Beverages"
	CategoryDesserts     Category = "Desserts"
	CategorySalads       Category = "Salads"
	CategoryBreakfast    Category = "Breakfast"
	CategorySpecials     Category = "Limited Time Specials"
)

// Categories lists every valid category in menu order.
var Categories = []Category{
	CategoryBurgers,
	CategoryPizza,
	CategoryFriedChicken,
	CategoryTacosWraps,
	CategorySides,
	CategoryBeverages,
	CategoryDesserts,
	CategorySalads,
	CategoryBreakfast,
	CategorySpecials,
}

// ParseCategory resolves a user-supplied category name case-insensitively.
func ParseCategory(s string) (Category, bool) {
	for _, c := range Categories {
		if strings.EqualFold(string(c), s) {
			return c, true
		}
	}
	return "", false
}

// StringList stores a list of tags as a JSON text column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	data, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into StringList", value)
	}
	if len(raw) == 0 {
		*l = nil
		return nil
	}
	return json.Unmarshal(raw, (*[]string)(l))
}

// Contains reports whether the list holds tag (exact match).
func (l StringList) Contains(tag string) bool {
	for _, t := range l {
		if t == tag {
			return true
		}
	}
	return false
}

// Product is a catalog item. Attributes are static once created except
// PopularityScore, which admin/analytics may bump.
type Product struct {
	ID              string     `gorm:"column:product_id;primaryKey" json:"product_id"`
	Name            string     `gorm:"column:name" json:"name"`
	Category        Category   `gorm:"column:category" json:"category"`
	Description     string     `gorm:"column:description" json:"description"`
	Ingredients     StringList `gorm:"column:ingredients;type:text" json:"ingredients"`
	Price           float64    `gorm:"column:price" json:"price"`
	Calories        int        `gorm:"column:calories" json:"calories"`
	PrepTime        string     `gorm:"column:prep_time" json:"prep_time"`
	DietaryTags     StringList `gorm:"column:dietary_tags;type:text" json:"dietary_tags"`
	MoodTags        StringList `gorm:"column:mood_tags;type:text" json:"mood_tags"`
	Allergens       StringList `gorm:"column:allergens;type:text" json:"allergens"`
	PopularityScore int        `gorm:"column:popularity_score" json:"popularity_score"`
	ChefSpecial     bool       `gorm:"column:chef_special" json:"chef_special"`
	LimitedTime     bool       `gorm:"column:limited_time" json:"limited_time"`
	SpiceLevel      int        `gorm:"column:spice_level" json:"spice_level"`
	ImageURL        string     `gorm:"column:image_url" json:"image_url,omitempty"`
}

func (Product) TableName() string { return "products" }

// Conversation is a chat session. Messages are appended, never mutated.
type Conversation struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	StartedAt time.Time `json:"started_at"`
	UserName  string    `json:"user_name"`
}

func (Conversation) TableName() string { return "conversations" }

// Message is a single chat turn, immutable once created. Signals holds the
// extracted signal set serialized as JSON (user messages only).
type Message struct {
	ID             uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ConversationID string    `gorm:"index" json:"conversation_id"`
	Sender         string    `json:"sender"`
	Text           string    `json:"text"`
	CreatedAt      time.Time `json:"created_at"`
	InterestScore  *int      `json:"interest_score,omitempty"`
	Signals        string    `json:"signals,omitempty"`
}

func (Message) TableName() string { return "messages" }

// SignalSet decodes the stored signal JSON; a missing or malformed column
// yields an empty set.
func (m Message) SignalSet() SignalSet {
	var sig SignalSet
	if m.Signals == "" {
		return sig
	}
	_ = json.Unmarshal([]byte(m.Signals), &sig)
	return sig
}

// ProductInput is a proposed product record submitted through the admin API.
type ProductInput struct {
	ID              string   `json:"product_id"`
	Name            string   `json:"name"`
	Category        string   `json:"category"`
	Description     string   `json:"description"`
	Ingredients     []string `json:"ingredients"`
	Price           float64  `json:"price"`
	Calories        int      `json:"calories"`
	PrepTime        string   `json:"prep_time"`
	DietaryTags     []string `json:"dietary_tags"`
	MoodTags        []string `json:"mood_tags"`
	Allergens       []string `json:"allergens"`
	PopularityScore int      `json:"popularity_score"`
	ChefSpecial     bool     `json:"chef_special"`
	LimitedTime     bool     `json:"limited_time"`
	SpiceLevel      int      `json:"spice_level"`
	ImageURL        string   `json:"image_url"`
}

// ValidationError carries every violation found on a rejected candidate.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return "invalid product: " + strings.Join(e.Violations, "; ")
}

// Validate checks the candidate record. It returns a *ValidationError
// listing all violations, or nil when the record is acceptable.
func (in ProductInput) Validate() error {
	var violations []string
	if strings.TrimSpace(in.ID) == "" {
		violations = append(violations, "product_id must not be empty")
	}
	if strings.TrimSpace(in.Name) == "" {
		violations = append(violations, "name must not be empty")
	}
	if in.Price < 0 {
		violations = append(violations, "price must not be negative")
	}
	if _, ok := ParseCategory(in.Category); !ok {
		violations = append(violations, fmt.Sprintf("unknown category %q", in.Category))
	}
	if in.PopularityScore < 0 {
		violations = append(violations, "popularity_score must not be negative")
	}
	if len(violations) > 0 {
		return &ValidationError{Violations: violations}
	}
	return nil
}

// ToProduct converts a validated input into a catalog record.
func (in ProductInput) ToProduct() Product {
	category, _ := ParseCategory(in.Category)
	return Product{
		ID:              strings.TrimSpace(in.ID),
		Name:            strings.TrimSpace(in.Name),
		Category:        category,
		Description:     in.Description,
		Ingredients:     StringList(in.Ingredients),
		Price:           in.Price,
		Calories:        in.Calories,
		PrepTime:        in.PrepTime,
		DietaryTags:     StringList(in.DietaryTags),
		MoodTags:        StringList(in.MoodTags),
		Allergens:       StringList(in.Allergens),
		PopularityScore: in.PopularityScore,
		ChefSpecial:     in.ChefSpecial,
		LimitedTime:     in.LimitedTime,
		SpiceLevel:      in.SpiceLevel,
		ImageURL:        in.ImageURL,
	}
}
