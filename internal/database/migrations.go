package database

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"foodiebot/internal/models"
)

// Migrator prepares the schema and seeds the starter catalog.
type Migrator struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewMigrator creates a migrator over the given handle.
func NewMigrator(db *gorm.DB, logger *zap.Logger) *Migrator {
	return &Migrator{db: db, logger: logger}
}

// Run migrates the schema and seeds the catalog when it is empty. Seeding is
// idempotent: an existing catalog is left untouched.
func (m *Migrator) Run(ctx context.Context, seedCount int) error {
	m.logger.Info("running migrations")

	steps := []struct {
		name string
		fn   func(context.Context, int) error
	}{
		{"schema", m.migrateSchema},
		{"seed_products", m.seedProducts},
	}

	for _, step := range steps {
		if err := step.fn(ctx, seedCount); err != nil {
			return fmt.Errorf("migration step %s failed: %w", step.name, err)
		}
		m.logger.Info("migration step completed", zap.String("step", step.name))
	}
	return nil
}

func (m *Migrator) migrateSchema(ctx context.Context, _ int) error {
	return m.db.WithContext(ctx).AutoMigrate(
		&models.Product{},
		&models.Conversation{},
		&models.Message{},
	)
}

func (m *Migrator) seedProducts(ctx context.Context, seedCount int) error {
	var existing int64
	if err := m.db.WithContext(ctx).Model(&models.Product{}).Count(&existing).Error; err != nil {
		return err
	}
	if existing > 0 {
		m.logger.Info("catalog already seeded", zap.Int64("products", existing))
		return nil
	}

	products := GenerateProducts(seedCount)
	if err := m.db.WithContext(ctx).CreateInBatches(products, 50).Error; err != nil {
		return err
	}
	m.logger.Info("seeded catalog", zap.Int("products", len(products)))
	return nil
}

// Status returns the current row counts per table.
func (m *Migrator) Status(ctx context.Context) (map[string]int64, error) {
	status := make(map[string]int64, 3)
	tables := []struct {
		name  string
		model interface{}
	}{
		{"products", &models.Product{}},
		{"conversations", &models.Conversation{}},
		{"messages", &models.Message{}},
	}
	for _, t := range tables {
		var count int64
		if err := m.db.WithContext(ctx).Model(t.model).Count(&count).Error; err != nil {
			return nil, fmt.Errorf("failed to count %s: %w", t.name, err)
		}
		status[t.name] = count
	}
	return status, nil
}
