package api

import (
	"errors"
	"net/http"

	"gharpey-console/internal/database"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// respondError maps a store error onto the response: missing rows are 404,
// dangling references in the body are 400, anything else is logged and
// answered with failMsg.
func respondError(c *gin.Context, err error, resource, failMsg string) {
	switch {
	case errors.Is(err, database.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": resource + " not found"})
	case errors.Is(err, database.ErrInvalidReference):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.Error().Err(err).Str("route", c.FullPath()).Msg(failMsg)
		c.JSON(http.StatusInternalServerError, gin.H{"error": failMsg})
	}
}

func badRequest(c *gin.Context, msg string, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg, "details": err.Error()})
}
