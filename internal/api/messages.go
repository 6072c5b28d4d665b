package api

import (
	"context"
	"net/http"
	"strconv"

	"gharpey-console/internal/database"
	"gharpey-console/internal/ingest"
	"gharpey-console/internal/models"

	"github.com/gin-gonic/gin"
)

const (
	defaultRecentLimit = 10
	maxRecentLimit     = 100
)

// MessageCreator stores operator-submitted messages with enrichment applied.
type MessageCreator interface {
	CreateMessage(ctx context.Context, req models.NewMessage) (*ingest.Ingested, error)
}

type MessageHandler struct {
	Store   *database.Store
	Creator MessageCreator
}

func NewMessageHandler(store *database.Store, creator MessageCreator) *MessageHandler {
	return &MessageHandler{Store: store, Creator: creator}
}

func (h *MessageHandler) CreateMessage(c *gin.Context) {
	var req models.NewMessage
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid message data", err)
		return
	}

	out, err := h.Creator.CreateMessage(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Message", "Failed to create message")
		return
	}
	c.JSON(http.StatusCreated, out)
}

func (h *MessageHandler) GetMessage(c *gin.Context) {
	message, err := h.Store.GetMessage(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Message", "Failed to fetch message")
		return
	}
	c.JSON(http.StatusOK, message)
}

// GetRecentMessages returns the newest messages across every conversation.
// A missing or unusable limit falls back to the default.
func (h *MessageHandler) GetRecentMessages(c *gin.Context) {
	limit := defaultRecentLimit
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = min(n, maxRecentLimit)
		}
	}

	messages, err := h.Store.RecentMessages(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err, "Message", "Failed to fetch recent messages")
		return
	}
	c.JSON(http.StatusOK, messages)
}
