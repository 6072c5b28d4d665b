package api

import (
	"encoding/csv"
	"net/http"
	"time"

	"gharpey-console/internal/database"
	"gharpey-console/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type ContactHandler struct {
	Store *database.Store
}

func NewContactHandler(store *database.Store) *ContactHandler {
	return &ContactHandler{Store: store}
}

func (h *ContactHandler) GetContacts(c *gin.Context) {
	contacts, err := h.Store.ListContacts(c.Request.Context())
	if err != nil {
		respondError(c, err, "Contact", "Failed to fetch contacts")
		return
	}
	c.JSON(http.StatusOK, contacts)
}

func (h *ContactHandler) GetContact(c *gin.Context) {
	contact, err := h.Store.GetContact(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Contact", "Failed to fetch contact")
		return
	}
	c.JSON(http.StatusOK, contact)
}

func (h *ContactHandler) CreateContact(c *gin.Context) {
	var req models.NewContact
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid contact data", err)
		return
	}

	contact := req.Contact()
	if err := h.Store.CreateContact(c.Request.Context(), &contact); err != nil {
		respondError(c, err, "Contact", "Failed to create contact")
		return
	}
	c.JSON(http.StatusCreated, contact)
}

func (h *ContactHandler) UpdateContact(c *gin.Context) {
	var patch models.ContactPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badRequest(c, "Invalid contact data", err)
		return
	}

	contact, err := h.Store.UpdateContact(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		respondError(c, err, "Contact", "Failed to update contact")
		return
	}
	c.JSON(http.StatusOK, contact)
}

func (h *ContactHandler) DeleteContact(c *gin.Context) {
	if err := h.Store.DeleteContact(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "Contact", "Failed to delete contact")
		return
	}
	c.Status(http.StatusNoContent)
}

var exportHeader = []string{"ID", "Name", "Type", "Phone", "Email", "Language", "Location", "Created At"}

func (h *ContactHandler) ExportContacts(c *gin.Context) {
	contacts, err := h.Store.ListContacts(c.Request.Context())
	if err != nil {
		respondError(c, err, "Contact", "Failed to export contacts")
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", "attachment; filename=contacts.csv")
	c.Status(http.StatusOK)

	w := csv.NewWriter(c.Writer)
	_ = w.Write(exportHeader)
	for _, contact := range contacts {
		_ = w.Write([]string{
			contact.ID,
			contact.Name,
			string(contact.Type),
			deref(contact.Phone),
			deref(contact.Email),
			string(contact.Language),
			deref(contact.Location),
			contact.CreatedAt.Format(time.RFC3339),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		log.Error().Err(err).Msg("Error writing contacts CSV")
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
