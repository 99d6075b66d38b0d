package models

// StartConversationRequest begins a chat session.
type StartConversationRequest struct {
	UserName string `json:"user_name"`
}

// StartConversationResponse returns the new session id.
type StartConversationResponse struct {
	ConversationID string `json:"conversation_id"`
}

// MessageRequest is a user chat turn.
type MessageRequest struct {
	Text string `json:"text" binding:"required"`
}

// ProductScore is the wire shape of a ranked product.
type ProductScore struct {
	ProductID       string   `json:"product_id"`
	Name            string   `json:"name"`
	Category        Category `json:"category"`
	Price           float64  `json:"price"`
	PopularityScore int      `json:"popularity_score"`
	SpiceLevel      int      `json:"spice_level"`
	ImageURL        string   `json:"image_url,omitempty"`
	Score           float64  `json:"score"`
}

// NewProductScore flattens a match for API responses.
func NewProductScore(m Match) ProductScore {
	return ProductScore{
		ProductID:       m.Product.ID,
		Name:            m.Product.Name,
		Category:        m.Product.Category,
		Price:           m.Product.Price,
		PopularityScore: m.Product.PopularityScore,
		SpiceLevel:      m.Product.SpiceLevel,
		ImageURL:        m.Product.ImageURL,
		Score:           m.Score,
	}
}

// MessageResponse is the bot's reply to a chat turn.
type MessageResponse struct {
	BotText       string         `json:"bot_text"`
	InterestScore int            `json:"interest_score"`
	Signals       SignalSet      `json:"signals"`
	Matches       []ProductScore `json:"matches"`
}

// TopProduct is a popularity leaderboard entry.
type TopProduct struct {
	ProductID       string `json:"product_id"`
	Name            string `json:"name"`
	PopularityScore int    `json:"popularity_score"`
}

// AnalyticsResponse aggregates read-side counts over the stores.
type AnalyticsResponse struct {
	TotalProducts      int64        `json:"total_products"`
	TotalConversations int64        `json:"total_conversations"`
	TotalMessages      int64        `json:"total_messages"`
	TopProducts        []TopProduct `json:"top_products"`
}
