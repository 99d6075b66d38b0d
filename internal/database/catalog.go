package database

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"foodiebot/internal/models"
	"foodiebot/internal/services"
)

// GormCatalogStore implements services.CatalogStore on the SQLite database.
type GormCatalogStore struct {
	db *gorm.DB
}

// NewGormCatalogStore creates a catalog store over the given handle.
func NewGormCatalogStore(db *gorm.DB) *GormCatalogStore {
	return &GormCatalogStore{db: db}
}

// ListProducts returns the full catalog snapshot ordered by product id.
func (s *GormCatalogStore) ListProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := s.db.WithContext(ctx).Order("product_id").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// GetProduct returns one product or services.ErrProductNotFound.
func (s *GormCatalogStore) GetProduct(ctx context.Context, id string) (models.Product, error) {
	var product models.Product
	err := s.db.WithContext(ctx).First(&product, "product_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Product{}, services.ErrProductNotFound
	}
	if err != nil {
		return models.Product{}, fmt.Errorf("failed to get product: %w", err)
	}
	return product, nil
}

// CreateProduct inserts a record. A reused id surfaces
// services.ErrDuplicateProduct and leaves the catalog unchanged.
func (s *GormCatalogStore) CreateProduct(ctx context.Context, p models.Product) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Product{}).
		Where("product_id = ?", p.ID).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check product id: %w", err)
	}
	if count > 0 {
		return services.ErrDuplicateProduct
	}
	if err := s.db.WithContext(ctx).Create(&p).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// CountProducts returns the catalog size.
func (s *GormCatalogStore) CountProducts(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Product{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}

// TopProducts returns the n most popular products.
func (s *GormCatalogStore) TopProducts(ctx context.Context, n int) ([]models.Product, error) {
	var products []models.Product
	if err := s.db.WithContext(ctx).
		Order("popularity_score DESC").Order("product_id").
		Limit(n).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to load top products: %w", err)
	}
	return products, nil
}
