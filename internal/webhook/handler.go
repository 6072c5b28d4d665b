package webhook

import (
	"context"
	"net/http"

	"gharpey-console/internal/ingest"
	webhookmodels "gharpey-console/pkg/models"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// Receiver stores messages arriving from the channel providers.
type Receiver interface {
	ReceiveWhatsApp(ctx context.Context, from, body, externalID string) (*ingest.Ingested, error)
	ReceiveEmail(ctx context.Context, from, subject, body, externalID string) (*ingest.Ingested, error)
}

type Handler struct {
	VerifyToken string
	Receiver    Receiver
}

func NewHandler(verifyToken string, receiver Receiver) *Handler {
	return &Handler{
		VerifyToken: verifyToken,
		Receiver:    receiver,
	}
}

// Register mounts the webhook routes on rg.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/whatsapp", h.VerifyWebhook)
	rg.POST("/whatsapp", h.HandleWhatsApp)
	rg.POST("/email", h.HandleEmail)
}

// VerifyWebhook answers the WhatsApp Cloud API subscription challenge.
func (h *Handler) VerifyWebhook(c *gin.Context) {
	mode := c.Query("hub.mode")
	token := c.Query("hub.verify_token")
	challenge := c.Query("hub.challenge")

	if mode == "" || token == "" {
		c.Status(http.StatusBadRequest)
		return
	}
	if mode != "subscribe" || h.VerifyToken == "" || token != h.VerifyToken {
		log.Warn().Str("mode", mode).Msg("Webhook verification rejected")
		c.Status(http.StatusForbidden)
		return
	}

	log.Info().Msg("Webhook verified successfully")
	c.String(http.StatusOK, challenge)
}

func (h *Handler) HandleWhatsApp(c *gin.Context) {
	var payload webhookmodels.WhatsAppWebhook
	if err := c.ShouldBindJSON(&payload); err != nil {
		log.Warn().Err(err).Msg("Invalid WhatsApp webhook body")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid webhook payload"})
		return
	}

	messages := payload.Messages()
	if len(messages) == 0 {
		if len(payload.Entry) > 0 {
			// Delivery receipts and other changes carry no messages.
			c.JSON(http.StatusOK, gin.H{"success": true})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "from and body are required"})
		return
	}

	log.Info().Int("messages", len(messages)).Str("from", messages[0].From).Msg("WhatsApp webhook received")

	var suggestion *string
	for _, m := range messages {
		res, err := h.Receiver.ReceiveWhatsApp(c.Request.Context(), m.From, m.Body, m.ID)
		if err != nil {
			log.Error().Err(err).Str("from", m.From).Msg("WhatsApp webhook error")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process webhook"})
			return
		}
		suggestion = res.AISuggestion
	}

	c.JSON(http.StatusOK, response(suggestion))
}

func (h *Handler) HandleEmail(c *gin.Context) {
	var payload webhookmodels.EmailWebhook
	if err := c.ShouldBindJSON(&payload); err != nil {
		log.Warn().Err(err).Msg("Invalid email webhook body")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid webhook payload"})
		return
	}

	log.Info().Str("from", payload.From).Str("subject", payload.Subject).Str("messageId", payload.MessageID).Msg("Email webhook received")

	res, err := h.Receiver.ReceiveEmail(c.Request.Context(), payload.From, payload.Subject, payload.Body, payload.MessageID)
	if err != nil {
		log.Error().Err(err).Str("from", payload.From).Msg("Email webhook error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process webhook"})
		return
	}

	c.JSON(http.StatusOK, response(res.AISuggestion))
}

func response(suggestion *string) gin.H {
	body := gin.H{"success": true}
	if suggestion != nil {
		body["suggestion"] = *suggestion
	}
	return body
}
