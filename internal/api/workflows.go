package api

import (
	"net/http"

	"gharpey-console/internal/database"
	"gharpey-console/internal/models"

	"github.com/gin-gonic/gin"
)

type WorkflowHandler struct {
	Store *database.Store
}

func NewWorkflowHandler(store *database.Store) *WorkflowHandler {
	return &WorkflowHandler{Store: store}
}

func (h *WorkflowHandler) GetWorkflows(c *gin.Context) {
	workflows, err := h.Store.ListWorkflows(c.Request.Context())
	if err != nil {
		respondError(c, err, "Workflow", "Failed to fetch workflows")
		return
	}
	c.JSON(http.StatusOK, workflows)
}

func (h *WorkflowHandler) CreateWorkflow(c *gin.Context) {
	var req models.NewWorkflow
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid workflow data", err)
		return
	}

	workflow := req.Workflow()
	if err := h.Store.CreateWorkflow(c.Request.Context(), &workflow); err != nil {
		respondError(c, err, "Workflow", "Failed to create workflow")
		return
	}
	c.JSON(http.StatusCreated, workflow)
}

func (h *WorkflowHandler) GetInstances(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	if _, err := h.Store.GetWorkflow(ctx, id); err != nil {
		respondError(c, err, "Workflow", "Failed to fetch workflow instances")
		return
	}
	instances, err := h.Store.ListWorkflowInstances(ctx, id)
	if err != nil {
		respondError(c, err, "Workflow", "Failed to fetch workflow instances")
		return
	}
	c.JSON(http.StatusOK, instances)
}

func (h *WorkflowHandler) StartInstance(c *gin.Context) {
	var req models.NewWorkflowInstance
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid workflow instance data", err)
		return
	}

	instance := req.Instance(c.Param("id"))
	if err := h.Store.CreateWorkflowInstance(c.Request.Context(), &instance); err != nil {
		respondError(c, err, "Workflow", "Failed to start workflow")
		return
	}
	c.JSON(http.StatusCreated, instance)
}
