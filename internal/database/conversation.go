package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"foodiebot/internal/models"
	"foodiebot/internal/services"
)

// GormConversationStore implements services.ConversationStore on SQLite.
type GormConversationStore struct {
	db *gorm.DB
}

// NewGormConversationStore creates a conversation store over the handle.
func NewGormConversationStore(db *gorm.DB) *GormConversationStore {
	return &GormConversationStore{db: db}
}

// CreateConversation opens a session with a fresh uuid.
func (s *GormConversationStore) CreateConversation(ctx context.Context, userName string) (models.Conversation, error) {
	conv := models.Conversation{
		ID:        uuid.NewString(),
		StartedAt: time.Now().UTC(),
		UserName:  userName,
	}
	if err := s.db.WithContext(ctx).Create(&conv).Error; err != nil {
		return models.Conversation{}, fmt.Errorf("failed to create conversation: %w", err)
	}
	return conv, nil
}

// GetConversation returns a session or services.ErrConversationNotFound.
func (s *GormConversationStore) GetConversation(ctx context.Context, id string) (models.Conversation, error) {
	var conv models.Conversation
	err := s.db.WithContext(ctx).First(&conv, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Conversation{}, services.ErrConversationNotFound
	}
	if err != nil {
		return models.Conversation{}, fmt.Errorf("failed to get conversation: %w", err)
	}
	return conv, nil
}

// AppendMessage persists a message; the conversation must exist. The append
// timestamp preserves per-conversation ordering.
func (s *GormConversationStore) AppendMessage(ctx context.Context, msg *models.Message) error {
	if _, err := s.GetConversation(ctx, msg.ConversationID); err != nil {
		return err
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now().UTC()
	}
	if err := s.db.WithContext(ctx).Create(msg).Error; err != nil {
		return fmt.Errorf("failed to append message: %w", err)
	}
	return nil
}

// ListMessages returns a conversation's messages in append order.
func (s *GormConversationStore) ListMessages(ctx context.Context, conversationID string) ([]models.Message, error) {
	var messages []models.Message
	if err := s.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("id").Find(&messages).Error; err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	return messages, nil
}

// CountConversations returns the number of sessions.
func (s *GormConversationStore) CountConversations(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Conversation{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count conversations: %w", err)
	}
	return count, nil
}

// CountMessages returns the number of stored messages.
func (s *GormConversationStore) CountMessages(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Message{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count messages: %w", err)
	}
	return count, nil
}
