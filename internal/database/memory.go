package database

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"foodiebot/internal/models"
	"foodiebot/internal/services"
)

// MemoryCatalogStore is an in-memory services.CatalogStore for tests and
// driverless runs.
type MemoryCatalogStore struct {
	mu       sync.RWMutex
	products map[string]models.Product
	order    []string
}

// NewMemoryCatalogStore creates an empty in-memory catalog.
func NewMemoryCatalogStore() *MemoryCatalogStore {
	return &MemoryCatalogStore{products: make(map[string]models.Product)}
}

func (s *MemoryCatalogStore) ListProducts(_ context.Context) ([]models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Product, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.products[id])
	}
	return out, nil
}

func (s *MemoryCatalogStore) GetProduct(_ context.Context, id string) (models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.products[id]
	if !ok {
		return models.Product{}, services.ErrProductNotFound
	}
	return p, nil
}

func (s *MemoryCatalogStore) CreateProduct(_ context.Context, p models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.products[p.ID]; exists {
		return services.ErrDuplicateProduct
	}
	s.products[p.ID] = p
	s.order = append(s.order, p.ID)
	return nil
}

func (s *MemoryCatalogStore) CountProducts(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.products)), nil
}

func (s *MemoryCatalogStore) TopProducts(_ context.Context, n int) ([]models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	all := make([]models.Product, 0, len(s.products))
	for _, id := range s.order {
		all = append(all, s.products[id])
	}
	sort.SliceStable(all, func(i, j int) bool {
		if all[i].PopularityScore != all[j].PopularityScore {
			return all[i].PopularityScore > all[j].PopularityScore
		}
		return all[i].ID < all[j].ID
	})
	if len(all) > n {
		all = all[:n]
	}
	return all, nil
}

// MemoryConversationStore is an in-memory services.ConversationStore.
type MemoryConversationStore struct {
	mu            sync.RWMutex
	conversations map[string]models.Conversation
	messages      map[string][]models.Message
	nextMessageID uint
}

// NewMemoryConversationStore creates an empty in-memory conversation store.
func NewMemoryConversationStore() *MemoryConversationStore {
	return &MemoryConversationStore{
		conversations: make(map[string]models.Conversation),
		messages:      make(map[string][]models.Message),
	}
}

func (s *MemoryConversationStore) CreateConversation(_ context.Context, userName string) (models.Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	conv := models.Conversation{
		ID:        uuid.NewString(),
		StartedAt: time.Now().UTC(),
		UserName:  userName,
	}
	s.conversations[conv.ID] = conv
	return conv, nil
}

func (s *MemoryConversationStore) GetConversation(_ context.Context, id string) (models.Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	conv, ok := s.conversations[id]
	if !ok {
		return models.Conversation{}, services.ErrConversationNotFound
	}
	return conv, nil
}

func (s *MemoryConversationStore) AppendMessage(_ context.Context, msg *models.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.conversations[msg.ConversationID]; !ok {
		return services.ErrConversationNotFound
	}
	s.nextMessageID++
	msg.ID = s.nextMessageID
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now().UTC()
	}
	s.messages[msg.ConversationID] = append(s.messages[msg.ConversationID], *msg)
	return nil
}

func (s *MemoryConversationStore) ListMessages(_ context.Context, conversationID string) ([]models.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	msgs := s.messages[conversationID]
	out := make([]models.Message, len(msgs))
	copy(out, msgs)
	return out, nil
}

func (s *MemoryConversationStore) CountConversations(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.conversations)), nil
}

func (s *MemoryConversationStore) CountMessages(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var total int64
	for _, msgs := range s.messages {
		total += int64(len(msgs))
	}
	return total, nil
}

// SeedCatalog loads the generated starter catalog into any catalog store.
func SeedCatalog(ctx context.Context, store services.CatalogStore, n int) error {
	for _, p := range GenerateProducts(n) {
		if err := store.CreateProduct(ctx, p); err != nil {
			return err
		}
	}
	return nil
}
