package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"foodiebot/internal/models"
	"foodiebot/internal/services"
)

// APIHandler handles all API requests.
type APIHandler struct {
	chat       *services.ChatService
	catalog    *services.CatalogService
	adminToken string
	logger     *zap.Logger
}

// NewAPIHandler creates a new API handler. adminToken is the shared secret
// guarding the product-creation entry point.
func NewAPIHandler(chat *services.ChatService, catalog *services.CatalogService, adminToken string, logger *zap.Logger) *APIHandler {
	return &APIHandler{
		chat:       chat,
		catalog:    catalog,
		adminToken: adminToken,
		logger:     logger,
	}
}

// SetupRoutes configures all API routes.
func (h *APIHandler) SetupRoutes(router *gin.Engine) {
	api := router.Group("/api")
	{
		api.POST("/conversations", h.StartConversation)
		api.POST("/conversations/:id/messages", h.PostMessage)
		api.GET("/conversations/:id/messages", h.ListMessages)
		api.GET("/search", h.Search)
		api.GET("/products/:id", h.GetProduct)
		api.POST("/admin/products", h.CreateProduct)
		api.GET("/analytics", h.Analytics)
	}
}

// StartConversation opens a new chat session.
func (h *APIHandler) StartConversation(c *gin.Context) {
	var req models.StartConversationRequest
	_ = c.ShouldBindJSON(&req) // body is optional

	conv, err := h.chat.StartConversation(c.Request.Context(), req.UserName)
	if err != nil {
		h.logger.Error("failed to start conversation", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start conversation"})
		return
	}
	c.JSON(http.StatusCreated, models.StartConversationResponse{ConversationID: conv.ID})
}

// PostMessage runs the chat pipeline on one user turn.
func (h *APIHandler) PostMessage(c *gin.Context) {
	conversationID := c.Param("id")

	var req models.MessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message text is required"})
		return
	}

	resp, err := h.chat.HandleMessage(c.Request.Context(), conversationID, req.Text)
	switch {
	case errors.Is(err, services.ErrConversationNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Conversation not found"})
		return
	case errors.Is(err, services.ErrEmptyMessage):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message text is required"})
		return
	case err != nil:
		h.logger.Error("failed to handle message", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to handle message"})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListMessages returns a conversation's history in order.
func (h *APIHandler) ListMessages(c *gin.Context) {
	messages, err := h.chat.History(c.Request.Context(), c.Param("id"))
	if errors.Is(err, services.ErrConversationNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Conversation not found"})
		return
	}
	if err != nil {
		h.logger.Error("failed to list messages", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list messages"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

// Search filters the catalog by free text, category, and max price.
func (h *APIHandler) Search(c *gin.Context) {
	var maxPrice *float64
	if raw := c.Query("max_price"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid max_price"})
			return
		}
		maxPrice = &parsed
	}

	results, err := h.catalog.Search(c.Request.Context(), c.Query("q"), c.Query("category"), maxPrice)
	if err != nil {
		h.logger.Error("search failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Search failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}

// GetProduct returns one product's detail.
func (h *APIHandler) GetProduct(c *gin.Context) {
	product, err := h.catalog.GetProduct(c.Request.Context(), c.Param("id"))
	if errors.Is(err, services.ErrProductNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	if err != nil {
		h.logger.Error("failed to get product", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get product"})
		return
	}
	c.JSON(http.StatusOK, product)
}

// CreateProduct is the admin entry point, guarded by the shared token. The
// engine validates the candidate; access control stays at this boundary.
func (h *APIHandler) CreateProduct(c *gin.Context) {
	if h.adminToken == "" || c.Query("token") != h.adminToken {
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		return
	}

	var input models.ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product payload"})
		return
	}

	product, err := h.catalog.CreateProduct(c.Request.Context(), input)
	var validationErr *models.ValidationError
	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":      "Product rejected",
			"violations": validationErr.Violations,
		})
		return
	case errors.Is(err, services.ErrDuplicateProduct):
		c.JSON(http.StatusConflict, gin.H{"error": "Product already exists"})
		return
	case err != nil:
		h.logger.Error("failed to create product", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "created", "product": product})
}

// Analytics reports aggregate counts and the popularity leaderboard.
func (h *APIHandler) Analytics(c *gin.Context) {
	stats, err := h.catalog.Analytics(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to load analytics", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load analytics"})
		return
	}
	c.JSON(http.StatusOK, stats)
}
