package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"foodiebot/internal/models"
)

// Message sender labels.
const (
	SenderUser = "user"
	SenderBot  = "bot"
)

// ChatService runs the chat pipeline: extract signals, merge conversation
// history, compute the interest score, rank the catalog, and persist both
// sides of the turn. Each call is one synchronous pure computation over one
// catalog snapshot plus an append to the conversation history.
type ChatService struct {
	catalog       CatalogStore
	conversations ConversationStore
	weights       MatchWeights
	factors       InterestFactors
	topK          int
	logger        *zap.Logger
}

// NewChatService creates a chat service with the default policies.
func NewChatService(catalog CatalogStore, conversations ConversationStore, logger *zap.Logger) *ChatService {
	return &ChatService{
		catalog:       catalog,
		conversations: conversations,
		weights:       DefaultMatchWeights(),
		factors:       DefaultInterestFactors(),
		topK:          DefaultTopK,
		logger:        logger,
	}
}

// StartConversation opens a new chat session.
func (s *ChatService) StartConversation(ctx context.Context, userName string) (models.Conversation, error) {
	if strings.TrimSpace(userName) == "" {
		userName = "guest"
	}
	conv, err := s.conversations.CreateConversation(ctx, userName)
	if err != nil {
		return models.Conversation{}, fmt.Errorf("failed to create conversation: %w", err)
	}
	s.logger.Info("conversation started", zap.String("conversation_id", conv.ID))
	return conv, nil
}

// HandleMessage processes one user turn and returns the bot reply with the
// interest score and ranked matches. Unknown conversations surface
// ErrConversationNotFound; empty text surfaces ErrEmptyMessage.
func (s *ChatService) HandleMessage(ctx context.Context, conversationID, text string) (*models.MessageResponse, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyMessage
	}

	if _, err := s.conversations.GetConversation(ctx, conversationID); err != nil {
		return nil, err
	}

	history, err := s.conversations.ListMessages(ctx, conversationID)
	if err != nil {
		return nil, fmt.Errorf("failed to load conversation history: %w", err)
	}

	sig := ExtractSignals(text)
	score := InterestScoreWith(sig, s.factors)
	score = AdjustForHistory(score, history)

	signalsJSON, err := json.Marshal(sig)
	if err != nil {
		return nil, fmt.Errorf("failed to encode signals: %w", err)
	}
	userMsg := models.Message{
		ConversationID: conversationID,
		Sender:         SenderUser,
		Text:           text,
		InterestScore:  &score,
		Signals:        string(signalsJSON),
	}
	if err := s.conversations.AppendMessage(ctx, &userMsg); err != nil {
		return nil, fmt.Errorf("failed to store user message: %w", err)
	}

	// Preferences stated earlier in the conversation keep constraining the
	// ranking until the user overrides them.
	merged := MergeHistory(sig, priorSignalSets(history))

	catalog, err := s.catalog.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	matches := MatchProductsWith(catalog, merged, s.topK, s.weights)

	botText := s.composeReply(matches, score)
	botMsg := models.Message{
		ConversationID: conversationID,
		Sender:         SenderBot,
		Text:           botText,
		InterestScore:  &score,
	}
	if err := s.conversations.AppendMessage(ctx, &botMsg); err != nil {
		return nil, fmt.Errorf("failed to store bot message: %w", err)
	}

	s.logger.Info("message handled",
		zap.String("conversation_id", conversationID),
		zap.Int("interest_score", score),
		zap.Int("matches", len(matches)))

	scores := make([]models.ProductScore, 0, len(matches))
	for _, m := range matches {
		scores = append(scores, models.NewProductScore(m))
	}

	return &models.MessageResponse{
		BotText:       botText,
		InterestScore: score,
		Signals:       sig,
		Matches:       scores,
	}, nil
}

// History returns the conversation's messages in append order.
func (s *ChatService) History(ctx context.Context, conversationID string) ([]models.Message, error) {
	if _, err := s.conversations.GetConversation(ctx, conversationID); err != nil {
		return nil, err
	}
	return s.conversations.ListMessages(ctx, conversationID)
}

func (s *ChatService) composeReply(matches []models.Match, score int) string {
	if len(matches) == 0 {
		return "I couldn't find a match right now — can you tell me more about what you'd like? (price, type, or dietary needs)"
	}
	return fmt.Sprintf("I found %d items that match your request. Here are the top picks. Interest score: %d%%", len(matches), score)
}

func priorSignalSets(history []models.Message) []models.SignalSet {
	sets := make([]models.SignalSet, 0, len(history))
	for _, msg := range history {
		if msg.Sender != SenderUser || msg.Signals == "" {
			continue
		}
		sets = append(sets, msg.SignalSet())
	}
	return sets
}
