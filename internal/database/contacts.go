package database

import (
	"context"
	"fmt"

	"gharpey-console/internal/models"
)

func (s *Store) ListContacts(ctx context.Context) ([]models.Contact, error) {
	contacts := []models.Contact{}
	if err := s.conn(ctx).Order("created_at DESC").Find(&contacts).Error; err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	return contacts, nil
}

func (s *Store) GetContact(ctx context.Context, id string) (*models.Contact, error) {
	var contact models.Contact
	if err := s.conn(ctx).Take(&contact, "id = ?", id).Error; err != nil {
		return nil, notFound("contact", id, err)
	}
	return &contact, nil
}

func (s *Store) CreateContact(ctx context.Context, contact *models.Contact) error {
	if err := s.conn(ctx).Create(contact).Error; err != nil {
		return fmt.Errorf("create contact: %w", err)
	}
	return nil
}

func (s *Store) UpdateContact(ctx context.Context, id string, patch models.ContactPatch) (*models.Contact, error) {
	updates := patch.Updates()
	if len(updates) == 0 {
		return s.GetContact(ctx, id)
	}

	res := s.conn(ctx).Model(&models.Contact{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return nil, fmt.Errorf("update contact %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("contact %s: %w", id, ErrNotFound)
	}
	return s.GetContact(ctx, id)
}

// DeleteContact removes the contact; its conversations and messages cascade.
func (s *Store) DeleteContact(ctx context.Context, id string) error {
	res := s.conn(ctx).Where("id = ?", id).Delete(&models.Contact{})
	if res.Error != nil {
		return fmt.Errorf("delete contact %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("contact %s: %w", id, ErrNotFound)
	}
	return nil
}

// FindContactByPhone returns the oldest contact with the given phone number.
func (s *Store) FindContactByPhone(ctx context.Context, phone string) (*models.Contact, error) {
	var contact models.Contact
	if err := s.conn(ctx).Where("phone = ?", phone).Order("created_at").First(&contact).Error; err != nil {
		return nil, notFound("contact with phone", phone, err)
	}
	return &contact, nil
}

// FindContactByEmail returns the oldest contact with the given email address.
func (s *Store) FindContactByEmail(ctx context.Context, email string) (*models.Contact, error) {
	var contact models.Contact
	if err := s.conn(ctx).Where("email = ?", email).Order("created_at").First(&contact).Error; err != nil {
		return nil, notFound("contact with email", email, err)
	}
	return &contact, nil
}
