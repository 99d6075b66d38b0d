package services

import (
	"context"
	"errors"

	"foodiebot/internal/models"
)

var (
	// ErrConversationNotFound is returned when a message is appended to, or
	// read from, a conversation id no store knows about.
	ErrConversationNotFound = errors.New("conversation not found")

	// ErrProductNotFound is returned for lookups of unknown product ids.
	ErrProductNotFound = errors.New("product not found")

	// ErrDuplicateProduct is returned when a candidate reuses an existing id.
	ErrDuplicateProduct = errors.New("product already exists")

	// ErrEmptyMessage is returned for chat turns with no text.
	ErrEmptyMessage = errors.New("message text must not be empty")
)

// CatalogStore supplies the product catalog and accepts new records.
type CatalogStore interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	GetProduct(ctx context.Context, id string) (models.Product, error)
	CreateProduct(ctx context.Context, p models.Product) error
	CountProducts(ctx context.Context) (int64, error)
	TopProducts(ctx context.Context, n int) ([]models.Product, error)
}

// ConversationStore persists chat sessions and their ordered messages.
type ConversationStore interface {
	CreateConversation(ctx context.Context, userName string) (models.Conversation, error)
	GetConversation(ctx context.Context, id string) (models.Conversation, error)
	AppendMessage(ctx context.Context, msg *models.Message) error
	ListMessages(ctx context.Context, conversationID string) ([]models.Message, error)
	CountConversations(ctx context.Context) (int64, error)
	CountMessages(ctx context.Context) (int64, error)
}
