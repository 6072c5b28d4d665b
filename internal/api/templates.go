package api

import (
	"net/http"

	"gharpey-console/internal/database"
	"gharpey-console/internal/models"

	"github.com/gin-gonic/gin"
)

type TemplateHandler struct {
	Store *database.Store
}

func NewTemplateHandler(store *database.Store) *TemplateHandler {
	return &TemplateHandler{Store: store}
}

// GetTemplates lists active templates only.
func (h *TemplateHandler) GetTemplates(c *gin.Context) {
	templates, err := h.Store.ListTemplates(c.Request.Context())
	if err != nil {
		respondError(c, err, "Template", "Failed to fetch templates")
		return
	}
	c.JSON(http.StatusOK, templates)
}

func (h *TemplateHandler) GetTemplate(c *gin.Context) {
	template, err := h.Store.GetTemplate(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Template", "Failed to fetch template")
		return
	}
	c.JSON(http.StatusOK, template)
}

func (h *TemplateHandler) CreateTemplate(c *gin.Context) {
	var req models.NewTemplate
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid template data", err)
		return
	}

	template := req.Template()
	if err := h.Store.CreateTemplate(c.Request.Context(), &template); err != nil {
		respondError(c, err, "Template", "Failed to create template")
		return
	}
	c.JSON(http.StatusCreated, template)
}

func (h *TemplateHandler) UpdateTemplate(c *gin.Context) {
	var patch models.TemplatePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badRequest(c, "Invalid template data", err)
		return
	}

	template, err := h.Store.UpdateTemplate(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		respondError(c, err, "Template", "Failed to update template")
		return
	}
	c.JSON(http.StatusOK, template)
}

// DeleteTemplate deactivates the template. It stays readable by id.
func (h *TemplateHandler) DeleteTemplate(c *gin.Context) {
	if err := h.Store.DeleteTemplate(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "Template", "Failed to delete template")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *TemplateHandler) UseTemplate(c *gin.Context) {
	template, err := h.Store.IncrementTemplateUsage(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Template", "Failed to use template")
		return
	}
	c.JSON(http.StatusOK, template)
}
