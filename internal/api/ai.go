package api

import (
	"context"
	"net/http"

	"gharpey-console/internal/ai"

	"github.com/gin-gonic/gin"
)

// Assistant is the enrichment surface exposed over HTTP.
type Assistant interface {
	Analyze(ctx context.Context, content, targetLanguage string) ai.Result[ai.Analysis]
	Translate(ctx context.Context, content, targetLanguage string) ai.Result[string]
	GenerateReply(ctx context.Context, history []string, language string) ai.Result[string]
}

// AIHandler serves the operator-facing AI utilities. Enrichment never fails
// a request: disabled or failed calls answer with their fallback value.
type AIHandler struct {
	Assistant Assistant
}

func NewAIHandler(assistant Assistant) *AIHandler {
	return &AIHandler{Assistant: assistant}
}

type generateResponseRequest struct {
	MessageHistory []string `json:"messageHistory" binding:"required"`
	Language       string   `json:"language"`
}

type translateRequest struct {
	Content        string `json:"content" binding:"required"`
	TargetLanguage string `json:"targetLanguage" binding:"required"`
}

type processRequest struct {
	Content        string `json:"content" binding:"required"`
	TargetLanguage string `json:"targetLanguage"`
}

func (h *AIHandler) GenerateResponse(c *gin.Context) {
	var req generateResponseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request data", err)
		return
	}
	if req.Language == "" {
		req.Language = "en"
	}

	res := h.Assistant.GenerateReply(c.Request.Context(), req.MessageHistory, req.Language)
	c.JSON(http.StatusOK, gin.H{"response": res.Value})
}

func (h *AIHandler) Translate(c *gin.Context) {
	var req translateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request data", err)
		return
	}

	res := h.Assistant.Translate(c.Request.Context(), req.Content, req.TargetLanguage)
	c.JSON(http.StatusOK, gin.H{"translatedContent": res.Value})
}

func (h *AIHandler) Process(c *gin.Context) {
	var req processRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request data", err)
		return
	}

	res := h.Assistant.Analyze(c.Request.Context(), req.Content, req.TargetLanguage)
	c.JSON(http.StatusOK, res.Value)
}
