package database

import (
	"context"
	"fmt"

	"gharpey-console/internal/models"

	"gorm.io/gorm"
)

// ListTemplates returns active templates, newest first.
func (s *Store) ListTemplates(ctx context.Context) ([]models.Template, error) {
	templates := []models.Template{}
	err := s.conn(ctx).
		Where("is_active = ?", true).
		Order("created_at DESC").
		Find(&templates).Error
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	return templates, nil
}

// GetTemplate returns the template whether or not it is active.
func (s *Store) GetTemplate(ctx context.Context, id string) (*models.Template, error) {
	var template models.Template
	if err := s.conn(ctx).Take(&template, "id = ?", id).Error; err != nil {
		return nil, notFound("template", id, err)
	}
	return &template, nil
}

func (s *Store) CreateTemplate(ctx context.Context, template *models.Template) error {
	if err := s.conn(ctx).Create(template).Error; err != nil {
		return fmt.Errorf("create template: %w", err)
	}
	return nil
}

func (s *Store) UpdateTemplate(ctx context.Context, id string, patch models.TemplatePatch) (*models.Template, error) {
	updates := patch.Updates()
	if len(updates) == 0 {
		return s.GetTemplate(ctx, id)
	}

	res := s.conn(ctx).Model(&models.Template{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return nil, fmt.Errorf("update template %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("template %s: %w", id, ErrNotFound)
	}
	return s.GetTemplate(ctx, id)
}

// DeleteTemplate deactivates the template; the row is kept.
func (s *Store) DeleteTemplate(ctx context.Context, id string) error {
	res := s.conn(ctx).Model(&models.Template{}).Where("id = ?", id).Update("is_active", false)
	if res.Error != nil {
		return fmt.Errorf("delete template %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("template %s: %w", id, ErrNotFound)
	}
	return nil
}

// IncrementTemplateUsage adds one to usageCount with a single atomic update.
func (s *Store) IncrementTemplateUsage(ctx context.Context, id string) (*models.Template, error) {
	res := s.conn(ctx).Model(&models.Template{}).
		Where("id = ?", id).
		UpdateColumn("usage_count", gorm.Expr("usage_count + ?", 1))
	if res.Error != nil {
		return nil, fmt.Errorf("increment template usage %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("template %s: %w", id, ErrNotFound)
	}
	return s.GetTemplate(ctx, id)
}
