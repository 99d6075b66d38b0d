package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"foodiebot/internal/database"
	"foodiebot/internal/handlers"
	"foodiebot/internal/services"
	"foodiebot/pkg/helper"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	// Load environment variables
	if err := godotenv.Load(); err != nil {
		logger.Warn("no .env file loaded", zap.Error(err))
	}

	config := helper.LoadConfigFromEnv()
	if config.GinMode != "" {
		gin.SetMode(config.GinMode)
	}
	if config.AdminToken == "" {
		logger.Warn("ADMIN_TOKEN not set, admin endpoints are disabled")
	}

	var catalogStore services.CatalogStore
	var conversationStore services.ConversationStore

	if config.DBInMemory {
		logger.Info("using in-memory storage")
		memCatalog := database.NewMemoryCatalogStore()
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := database.SeedCatalog(ctx, memCatalog, config.SeedCount); err != nil {
			cancel()
			logger.Fatal("failed to seed in-memory catalog", zap.Error(err))
		}
		cancel()
		catalogStore = memCatalog
		conversationStore = database.NewMemoryConversationStore()
	} else {
		sqliteService, err := database.NewSQLiteService(config.DBPath, logger)
		if err != nil {
			logger.Fatal("failed to open database", zap.Error(err))
		}
		defer func() {
			if err := sqliteService.Close(); err != nil {
				logger.Error("error closing database", zap.Error(err))
			}
		}()

		migrator := database.NewMigrator(sqliteService.DB(), logger)
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		if err := migrator.Run(ctx, config.SeedCount); err != nil {
			cancel()
			logger.Fatal("migration failed", zap.Error(err))
		}
		status, err := migrator.Status(ctx)
		cancel()
		if err != nil {
			logger.Fatal("failed to read migration status", zap.Error(err))
		}
		logger.Info("database ready",
			zap.Int64("products", status["products"]),
			zap.Int64("conversations", status["conversations"]),
			zap.Int64("messages", status["messages"]))

		catalogStore = database.NewGormCatalogStore(sqliteService.DB())
		conversationStore = database.NewGormConversationStore(sqliteService.DB())
	}

	// Initialize services
	chatService := services.NewChatService(catalogStore, conversationStore, logger)
	catalogService := services.NewCatalogService(catalogStore, conversationStore, logger)

	// Initialize API handlers
	apiHandler := handlers.NewAPIHandler(chatService, catalogService, config.AdminToken, logger)

	// Setup Gin router
	router := gin.Default()

	// Add CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Setup API routes
	apiHandler.SetupRoutes(router)

	// Serve the chat UI for anything that isn't an API call
	router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.JSON(http.StatusNotFound, gin.H{"error": "API endpoint not found"})
			return
		}
		c.File("./web/static/index.html")
	})

	// Create server with graceful shutdown
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", config.Port),
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("server starting", zap.String("port", config.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	// Gracefully shutdown with a timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server exited properly")
}
