package api

import (
	"net/http"

	"gharpey-console/internal/database"
	"gharpey-console/internal/logger"
	"gharpey-console/internal/metrics"
	"gharpey-console/internal/webhook"
	"gharpey-console/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Deps are the collaborators the HTTP surface is built from. Hub and
// Metrics are optional.
type Deps struct {
	Store     *database.Store
	Messages  MessageCreator
	Assistant Assistant
	Webhooks  *webhook.Handler
	Hub       *ws.Hub
	Metrics   *metrics.Metrics
}

// NewRouter builds the gin engine with every console route.
func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(logger.Middleware(), gin.Recovery(), cors())
	if d.Metrics != nil {
		r.Use(countServerErrors(d.Metrics))
	}

	contacts := NewContactHandler(d.Store)
	conversations := NewConversationHandler(d.Store)
	messages := NewMessageHandler(d.Store, d.Messages)
	templates := NewTemplateHandler(d.Store)
	dashboard := NewDashboardHandler(d.Store)
	assistant := NewAIHandler(d.Assistant)
	workflows := NewWorkflowHandler(d.Store)
	notifications := NewNotificationHandler(d.Store)

	r.GET("/healthz", func(c *gin.Context) {
		if err := d.Store.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	if d.Hub != nil {
		r.GET("/ws", gin.WrapF(d.Hub.ServeWs))
	}

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/contacts", contacts.GetContacts)
		apiGroup.POST("/contacts", contacts.CreateContact)
		apiGroup.GET("/contacts/export", contacts.ExportContacts)
		apiGroup.GET("/contacts/:id", contacts.GetContact)
		apiGroup.PUT("/contacts/:id", contacts.UpdateContact)
		apiGroup.DELETE("/contacts/:id", contacts.DeleteContact)

		apiGroup.GET("/conversations", conversations.GetConversations)
		apiGroup.POST("/conversations", conversations.CreateConversation)
		apiGroup.GET("/conversations/:id", conversations.GetConversation)
		apiGroup.PUT("/conversations/:id", conversations.UpdateConversation)
		apiGroup.GET("/conversations/:id/messages", conversations.GetMessages)
		apiGroup.POST("/conversations/:id/read", conversations.MarkRead)

		apiGroup.POST("/messages", messages.CreateMessage)
		apiGroup.GET("/messages/recent", messages.GetRecentMessages)
		apiGroup.GET("/messages/:id", messages.GetMessage)

		apiGroup.GET("/templates", templates.GetTemplates)
		apiGroup.POST("/templates", templates.CreateTemplate)
		apiGroup.GET("/templates/:id", templates.GetTemplate)
		apiGroup.PUT("/templates/:id", templates.UpdateTemplate)
		apiGroup.DELETE("/templates/:id", templates.DeleteTemplate)
		apiGroup.POST("/templates/:id/use", templates.UseTemplate)

		apiGroup.GET("/stats", dashboard.GetStats)
		apiGroup.GET("/analytics", dashboard.GetAnalytics)

		aiGroup := apiGroup.Group("/ai")
		{
			aiGroup.POST("/generate-response", assistant.GenerateResponse)
			aiGroup.POST("/translate", assistant.Translate)
			aiGroup.POST("/process", assistant.Process)
		}

		if d.Webhooks != nil {
			d.Webhooks.Register(apiGroup.Group("/webhooks"))
		}

		apiGroup.GET("/workflows", workflows.GetWorkflows)
		apiGroup.POST("/workflows", workflows.CreateWorkflow)
		apiGroup.GET("/workflows/:id/instances", workflows.GetInstances)
		apiGroup.POST("/workflows/:id/instances", workflows.StartInstance)

		apiGroup.GET("/notifications", notifications.GetNotifications)
		apiGroup.POST("/notifications", notifications.CreateNotification)
		apiGroup.POST("/notifications/:id/read", notifications.MarkRead)
	}

	return r
}

func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func countServerErrors(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		if c.Writer.Status() >= http.StatusInternalServerError {
			route := c.FullPath()
			if route == "" {
				route = "unmatched"
			}
			m.HTTPErrors.WithLabelValues(route).Inc()
		}
	}
}
