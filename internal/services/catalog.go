package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"foodiebot/internal/models"
)

// topProductCount is how many leaders the analytics view reports.
const topProductCount = 5

// CatalogService covers the non-chat surfaces: search, product detail,
// admin product creation, and analytics.
type CatalogService struct {
	catalog       CatalogStore
	conversations ConversationStore
	logger        *zap.Logger
}

// NewCatalogService creates a catalog service.
func NewCatalogService(catalog CatalogStore, conversations ConversationStore, logger *zap.Logger) *CatalogService {
	return &CatalogService{
		catalog:       catalog,
		conversations: conversations,
		logger:        logger,
	}
}

// Search runs the text + attribute filter over a fresh catalog snapshot.
func (s *CatalogService) Search(ctx context.Context, query, category string, maxPrice *float64) ([]models.ProductScore, error) {
	catalog, err := s.catalog.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	matches := SearchProducts(catalog, query, category, maxPrice)
	results := make([]models.ProductScore, 0, len(matches))
	for _, m := range matches {
		results = append(results, models.NewProductScore(m))
	}
	return results, nil
}

// GetProduct returns one catalog record.
func (s *CatalogService) GetProduct(ctx context.Context, id string) (models.Product, error) {
	return s.catalog.GetProduct(ctx, id)
}

// CreateProduct validates a candidate record and inserts it. A rejected
// candidate returns *models.ValidationError and leaves the store untouched;
// a reused id returns ErrDuplicateProduct.
func (s *CatalogService) CreateProduct(ctx context.Context, input models.ProductInput) (models.Product, error) {
	if err := input.Validate(); err != nil {
		return models.Product{}, err
	}
	product := input.ToProduct()
	if err := s.catalog.CreateProduct(ctx, product); err != nil {
		return models.Product{}, err
	}
	s.logger.Info("product created",
		zap.String("product_id", product.ID),
		zap.String("category", string(product.Category)))
	return product, nil
}

// Analytics aggregates read-side counts plus the popularity leaderboard.
func (s *CatalogService) Analytics(ctx context.Context) (*models.AnalyticsResponse, error) {
	products, err := s.catalog.CountProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}
	conversations, err := s.conversations.CountConversations(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count conversations: %w", err)
	}
	messages, err := s.conversations.CountMessages(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count messages: %w", err)
	}
	leaders, err := s.catalog.TopProducts(ctx, topProductCount)
	if err != nil {
		return nil, fmt.Errorf("failed to load top products: %w", err)
	}

	top := make([]models.TopProduct, 0, len(leaders))
	for _, p := range leaders {
		top = append(top, models.TopProduct{
			ProductID:       p.ID,
			Name:            p.Name,
			PopularityScore: p.PopularityScore,
		})
	}

	return &models.AnalyticsResponse{
		TotalProducts:      products,
		TotalConversations: conversations,
		TotalMessages:      messages,
		TopProducts:        top,
	}, nil
}
