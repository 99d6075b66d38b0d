package database

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// SQLiteService wraps the gorm SQLite handle with application-specific
// lifecycle methods.
type SQLiteService struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewSQLiteService opens (creating if needed) the SQLite database at path
// and verifies the connection.
func NewSQLiteService(path string, logger *zap.Logger) (*SQLiteService, error) {
	gormLog := gormLogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormLogger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormLogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{Logger: gormLog})
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	svc := &SQLiteService{db: db, logger: logger}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := svc.Health(ctx); err != nil {
		return nil, fmt.Errorf("failed to verify SQLite connectivity: %w", err)
	}

	logger.Info("connected to SQLite database", zap.String("path", path))
	return svc, nil
}

// DB returns the underlying gorm handle.
func (s *SQLiteService) DB() *gorm.DB { return s.db }

// Health checks the database connection.
func (s *SQLiteService) Health(ctx context.Context) error {
	var one int
	if err := s.db.WithContext(ctx).Raw("SELECT 1").Scan(&one).Error; err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	return nil
}

// Close closes the underlying connection pool.
func (s *SQLiteService) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
