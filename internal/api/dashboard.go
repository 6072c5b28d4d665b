package api

import (
	"net/http"
	"time"

	"gharpey-console/internal/database"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	Store *database.Store
	// Now is the clock used for the analytics window.
	Now func() time.Time
}

func NewDashboardHandler(store *database.Store) *DashboardHandler {
	return &DashboardHandler{Store: store, Now: time.Now}
}

func (h *DashboardHandler) GetStats(c *gin.Context) {
	stats, err := h.Store.Stats(c.Request.Context())
	if err != nil {
		respondError(c, err, "Stats", "Failed to fetch stats")
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *DashboardHandler) GetAnalytics(c *gin.Context) {
	analytics, err := h.Store.Analytics(c.Request.Context(), h.Now())
	if err != nil {
		respondError(c, err, "Analytics", "Failed to fetch analytics")
		return
	}
	c.JSON(http.StatusOK, analytics)
}
