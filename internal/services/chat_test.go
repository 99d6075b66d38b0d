package services_test

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"foodiebot/internal/database"
	"foodiebot/internal/models"
	"foodiebot/internal/services"
)

func newChatFixture(t *testing.T, products []models.Product) (*services.ChatService, *database.MemoryCatalogStore, *database.MemoryConversationStore) {
	t.Helper()
	catalog := database.NewMemoryCatalogStore()
	for _, p := range products {
		if err := catalog.CreateProduct(context.Background(), p); err != nil {
			t.Fatalf("seed product %s: %v", p.ID, err)
		}
	}
	conversations := database.NewMemoryConversationStore()
	return services.NewChatService(catalog, conversations, zap.NewNop()), catalog, conversations
}

func fixtureProducts() []models.Product {
	return []models.Product{
		{
			ID: "FF001", Name: "Spicy Dragon Burger", Category: models.CategoryBurgers,
			Description: "Bold flavors with a kick.",
			Price:       8.0, PopularityScore: 50, SpiceLevel: 8,
			DietaryTags: models.StringList{"contains_gluten"},
		},
		{
			ID: "FF002", Name: "Garden Deluxe Bowl", Category: models.CategorySalads,
			Description: "Fresh and healthy.",
			Price:       6.5, PopularityScore: 70, SpiceLevel: 0,
			DietaryTags: models.StringList{"vegetarian", "vegan"},
		},
	}
}

func TestChatService_UnknownConversation(t *testing.T) {
	chat, _, _ := newChatFixture(t, fixtureProducts())

	_, err := chat.HandleMessage(context.Background(), "no-such-id", "hello")
	if !errors.Is(err, services.ErrConversationNotFound) {
		t.Fatalf("expected ErrConversationNotFound, got %v", err)
	}
}

func TestChatService_EmptyMessageRejected(t *testing.T) {
	chat, _, _ := newChatFixture(t, fixtureProducts())
	conv, err := chat.StartConversation(context.Background(), "guest")
	if err != nil {
		t.Fatalf("start conversation: %v", err)
	}

	_, err = chat.HandleMessage(context.Background(), conv.ID, "   ")
	if !errors.Is(err, services.ErrEmptyMessage) {
		t.Fatalf("expected ErrEmptyMessage, got %v", err)
	}
}

func TestChatService_HandleMessagePersistsBothTurns(t *testing.T) {
	chat, _, conversations := newChatFixture(t, fixtureProducts())
	ctx := context.Background()
	conv, err := chat.StartConversation(ctx, "guest")
	if err != nil {
		t.Fatalf("start conversation: %v", err)
	}

	resp, err := chat.HandleMessage(ctx, conv.ID, "I want a spicy burger under $10")
	if err != nil {
		t.Fatalf("handle message: %v", err)
	}
	if resp.InterestScore < services.InterestMin || resp.InterestScore > services.InterestMax {
		t.Fatalf("interest score %d out of range", resp.InterestScore)
	}
	if len(resp.Matches) == 0 || len(resp.Matches) > services.DefaultTopK {
		t.Fatalf("unexpected match count %d", len(resp.Matches))
	}
	if resp.Matches[0].ProductID != "FF001" {
		t.Fatalf("expected the spicy burger first, got %s", resp.Matches[0].ProductID)
	}

	messages, err := conversations.ListMessages(ctx, conv.ID)
	if err != nil {
		t.Fatalf("list messages: %v", err)
	}
	if len(messages) != 2 {
		t.Fatalf("expected user + bot messages, got %d", len(messages))
	}
	if messages[0].Sender != services.SenderUser || messages[1].Sender != services.SenderBot {
		t.Fatalf("unexpected senders: %s, %s", messages[0].Sender, messages[1].Sender)
	}
	if messages[0].InterestScore == nil {
		t.Fatal("user message must carry its interest score")
	}
	if messages[0].SignalSet().Flavor != models.FlavorSpicy {
		t.Fatal("user message must carry its extracted signals")
	}
}

func TestChatService_DietaryPreferencePersistsAcrossTurns(t *testing.T) {
	chat, _, _ := newChatFixture(t, fixtureProducts())
	ctx := context.Background()
	conv, err := chat.StartConversation(ctx, "guest")
	if err != nil {
		t.Fatalf("start conversation: %v", err)
	}

	if _, err := chat.HandleMessage(ctx, conv.ID, "I'm vegan"); err != nil {
		t.Fatalf("first turn: %v", err)
	}

	// Second turn states no dietary signal, the restriction must carry over.
	resp, err := chat.HandleMessage(ctx, conv.ID, "something cheap under $9")
	if err != nil {
		t.Fatalf("second turn: %v", err)
	}
	for _, m := range resp.Matches {
		if m.ProductID == "FF001" {
			t.Fatal("non-vegan product leaked through the carried-over restriction")
		}
	}
	if len(resp.Matches) != 1 || resp.Matches[0].ProductID != "FF002" {
		t.Fatalf("expected only the vegan bowl, got %+v", resp.Matches)
	}
}

func TestChatService_ConversationsAreIndependent(t *testing.T) {
	chat, _, _ := newChatFixture(t, fixtureProducts())
	ctx := context.Background()

	vegConv, _ := chat.StartConversation(ctx, "a")
	plainConv, _ := chat.StartConversation(ctx, "b")

	if _, err := chat.HandleMessage(ctx, vegConv.ID, "I'm vegan"); err != nil {
		t.Fatalf("vegan turn: %v", err)
	}

	resp, err := chat.HandleMessage(ctx, plainConv.ID, "show me burgers")
	if err != nil {
		t.Fatalf("plain turn: %v", err)
	}
	found := false
	for _, m := range resp.Matches {
		if m.ProductID == "FF001" {
			found = true
		}
	}
	if !found {
		t.Fatal("another conversation's restriction must not leak into this one")
	}
}

func TestCatalogService_RejectedCandidateLeavesStoreUntouched(t *testing.T) {
	catalog := database.NewMemoryCatalogStore()
	conversations := database.NewMemoryConversationStore()
	svc := services.NewCatalogService(catalog, conversations, zap.NewNop())
	ctx := context.Background()

	before, _ := catalog.CountProducts(ctx)

	_, err := svc.CreateProduct(ctx, models.ProductInput{
		ID: "FF900", Name: "Bad Burger", Category: "Burgers", Price: -5,
	})
	var validationErr *models.ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected validation error, got %v", err)
	}

	after, _ := catalog.CountProducts(ctx)
	if before != after {
		t.Fatalf("catalog size changed on rejected candidate: %d -> %d", before, after)
	}
}

func TestCatalogService_DuplicateProductRejected(t *testing.T) {
	catalog := database.NewMemoryCatalogStore()
	svc := services.NewCatalogService(catalog, database.NewMemoryConversationStore(), zap.NewNop())
	ctx := context.Background()

	input := models.ProductInput{ID: "FF001", Name: "Burger", Category: "Burgers", Price: 5}
	if _, err := svc.CreateProduct(ctx, input); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if _, err := svc.CreateProduct(ctx, input); !errors.Is(err, services.ErrDuplicateProduct) {
		t.Fatalf("expected ErrDuplicateProduct, got %v", err)
	}
}

func TestCatalogService_Analytics(t *testing.T) {
	chat, catalog, conversations := newChatFixture(t, fixtureProducts())
	svc := services.NewCatalogService(catalog, conversations, zap.NewNop())
	ctx := context.Background()

	conv, _ := chat.StartConversation(ctx, "guest")
	if _, err := chat.HandleMessage(ctx, conv.ID, "hello there, any burgers?"); err != nil {
		t.Fatalf("handle message: %v", err)
	}

	stats, err := svc.Analytics(ctx)
	if err != nil {
		t.Fatalf("analytics: %v", err)
	}
	if stats.TotalProducts != 2 {
		t.Fatalf("expected 2 products, got %d", stats.TotalProducts)
	}
	if stats.TotalConversations != 1 {
		t.Fatalf("expected 1 conversation, got %d", stats.TotalConversations)
	}
	if stats.TotalMessages != 2 {
		t.Fatalf("expected 2 messages, got %d", stats.TotalMessages)
	}
	if len(stats.TopProducts) != 2 || stats.TopProducts[0].ProductID != "FF002" {
		t.Fatalf("unexpected leaderboard: %+v", stats.TopProducts)
	}
}
