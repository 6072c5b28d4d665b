package api

import (
	"net/http"

	"gharpey-console/internal/database"
	"gharpey-console/internal/models"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	Store *database.Store
}

func NewNotificationHandler(store *database.Store) *NotificationHandler {
	return &NotificationHandler{Store: store}
}

// GetNotifications lists notifications, filtered by the userId query when given.
func (h *NotificationHandler) GetNotifications(c *gin.Context) {
	notifications, err := h.Store.ListNotifications(c.Request.Context(), c.Query("userId"))
	if err != nil {
		respondError(c, err, "Notification", "Failed to fetch notifications")
		return
	}
	c.JSON(http.StatusOK, notifications)
}

func (h *NotificationHandler) CreateNotification(c *gin.Context) {
	var req models.NewNotification
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid notification data", err)
		return
	}

	notification := req.Notification()
	if err := h.Store.CreateNotification(c.Request.Context(), &notification); err != nil {
		respondError(c, err, "Notification", "Failed to create notification")
		return
	}
	c.JSON(http.StatusCreated, notification)
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	if err := h.Store.MarkNotificationRead(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "Notification", "Failed to mark notification as read")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
