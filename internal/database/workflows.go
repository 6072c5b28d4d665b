package database

import (
	"context"
	"fmt"

	"gharpey-console/internal/models"
)

// ListWorkflows returns active workflows, newest first.
func (s *Store) ListWorkflows(ctx context.Context) ([]models.Workflow, error) {
	workflows := []models.Workflow{}
	err := s.conn(ctx).
		Where("is_active = ?", true).
		Order("created_at DESC").
		Find(&workflows).Error
	if err != nil {
		return nil, fmt.Errorf("list workflows: %w", err)
	}
	return workflows, nil
}

func (s *Store) GetWorkflow(ctx context.Context, id string) (*models.Workflow, error) {
	var workflow models.Workflow
	if err := s.conn(ctx).Take(&workflow, "id = ?", id).Error; err != nil {
		return nil, notFound("workflow", id, err)
	}
	return &workflow, nil
}

func (s *Store) CreateWorkflow(ctx context.Context, workflow *models.Workflow) error {
	if err := s.conn(ctx).Create(workflow).Error; err != nil {
		return fmt.Errorf("create workflow: %w", err)
	}
	return nil
}

// ListWorkflowInstances returns instances of one workflow, or of all
// workflows when workflowID is empty, most recently started first.
func (s *Store) ListWorkflowInstances(ctx context.Context, workflowID string) ([]models.WorkflowInstance, error) {
	instances := []models.WorkflowInstance{}
	q := s.conn(ctx).Order("started_at DESC")
	if workflowID != "" {
		q = q.Where("workflow_id = ?", workflowID)
	}
	if err := q.Find(&instances).Error; err != nil {
		return nil, fmt.Errorf("list workflow instances: %w", err)
	}
	return instances, nil
}

func (s *Store) CreateWorkflowInstance(ctx context.Context, instance *models.WorkflowInstance) error {
	ok, err := s.exists(ctx, &models.Workflow{}, instance.WorkflowID)
	if err != nil {
		return fmt.Errorf("create workflow instance: %w", err)
	}
	if !ok {
		return fmt.Errorf("workflow %s: %w", instance.WorkflowID, ErrNotFound)
	}
	if instance.ContactID != nil {
		ok, err := s.exists(ctx, &models.Contact{}, *instance.ContactID)
		if err != nil {
			return fmt.Errorf("create workflow instance: %w", err)
		}
		if !ok {
			return fmt.Errorf("contact %s: %w", *instance.ContactID, ErrInvalidReference)
		}
	}

	if err := s.conn(ctx).Omit("Workflow", "Contact").Create(instance).Error; err != nil {
		return fmt.Errorf("create workflow instance: %w", err)
	}
	return nil
}
