package api

import (
	"net/http"

	"gharpey-console/internal/database"
	"gharpey-console/internal/models"

	"github.com/gin-gonic/gin"
)

type ConversationHandler struct {
	Store *database.Store
}

func NewConversationHandler(store *database.Store) *ConversationHandler {
	return &ConversationHandler{Store: store}
}

func (h *ConversationHandler) GetConversations(c *gin.Context) {
	conversations, err := h.Store.ListConversations(c.Request.Context())
	if err != nil {
		respondError(c, err, "Conversation", "Failed to fetch conversations")
		return
	}
	c.JSON(http.StatusOK, conversations)
}

func (h *ConversationHandler) GetConversation(c *gin.Context) {
	conversation, err := h.Store.GetConversation(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Conversation", "Failed to fetch conversation")
		return
	}
	c.JSON(http.StatusOK, conversation)
}

func (h *ConversationHandler) CreateConversation(c *gin.Context) {
	var req models.NewConversation
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid conversation data", err)
		return
	}

	conversation := req.Conversation()
	if err := h.Store.CreateConversation(c.Request.Context(), &conversation); err != nil {
		respondError(c, err, "Conversation", "Failed to create conversation")
		return
	}
	c.JSON(http.StatusCreated, conversation)
}

func (h *ConversationHandler) UpdateConversation(c *gin.Context) {
	var patch models.ConversationPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badRequest(c, "Invalid conversation data", err)
		return
	}

	conversation, err := h.Store.UpdateConversation(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		respondError(c, err, "Conversation", "Failed to update conversation")
		return
	}
	c.JSON(http.StatusOK, conversation)
}

// GetMessages lists a conversation's messages oldest first. An unknown
// conversation is a 404 rather than an empty list.
func (h *ConversationHandler) GetMessages(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	if _, err := h.Store.GetConversation(ctx, id); err != nil {
		respondError(c, err, "Conversation", "Failed to fetch messages")
		return
	}
	messages, err := h.Store.ListMessages(ctx, id)
	if err != nil {
		respondError(c, err, "Conversation", "Failed to fetch messages")
		return
	}
	c.JSON(http.StatusOK, messages)
}

func (h *ConversationHandler) MarkRead(c *gin.Context) {
	conversation, err := h.Store.MarkConversationRead(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Conversation", "Failed to mark conversation as read")
		return
	}
	c.JSON(http.StatusOK, conversation)
}
