package database

import (
	"context"
	"fmt"
	"time"

	"gharpey-console/internal/models"

	"gorm.io/gorm"
)

// ListConversations returns every conversation with its contact, most recently active first.
func (s *Store) ListConversations(ctx context.Context) ([]models.Conversation, error) {
	conversations := []models.Conversation{}
	err := s.conn(ctx).
		Preload("Contact").
		Order("last_message_at DESC").
		Find(&conversations).Error
	if err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}
	return conversations, nil
}

func (s *Store) GetConversation(ctx context.Context, id string) (*models.Conversation, error) {
	var conversation models.Conversation
	if err := s.conn(ctx).Preload("Contact").Take(&conversation, "id = ?", id).Error; err != nil {
		return nil, notFound("conversation", id, err)
	}
	return &conversation, nil
}

func (s *Store) CreateConversation(ctx context.Context, conversation *models.Conversation) error {
	ok, err := s.exists(ctx, &models.Contact{}, conversation.ContactID)
	if err != nil {
		return fmt.Errorf("create conversation: %w", err)
	}
	if !ok {
		return fmt.Errorf("contact %s: %w", conversation.ContactID, ErrInvalidReference)
	}

	if err := s.conn(ctx).Omit("Contact").Create(conversation).Error; err != nil {
		return fmt.Errorf("create conversation: %w", err)
	}
	return nil
}

// UpdateConversation applies the fields present in patch.
func (s *Store) UpdateConversation(ctx context.Context, id string, patch models.ConversationPatch) (*models.Conversation, error) {
	updates := patch.Updates()
	if len(updates) == 0 {
		return s.GetConversation(ctx, id)
	}

	res := s.conn(ctx).Model(&models.Conversation{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return nil, fmt.Errorf("update conversation %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("conversation %s: %w", id, ErrNotFound)
	}
	return s.GetConversation(ctx, id)
}

// FindConversation returns the oldest conversation with contactID on channel.
func (s *Store) FindConversation(ctx context.Context, contactID string, channel models.Channel) (*models.Conversation, error) {
	var conversation models.Conversation
	err := s.conn(ctx).
		Where("contact_id = ? AND channel = ?", contactID, channel).
		Order("created_at").
		First(&conversation).Error
	if err != nil {
		return nil, notFound("conversation for contact", contactID, err)
	}
	return &conversation, nil
}

// MarkConversationRead clears the unread counter and stamps readAt on the
// conversation's unread inbound messages.
func (s *Store) MarkConversationRead(ctx context.Context, id string) (*models.Conversation, error) {
	now := time.Now()
	err := s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Conversation{}).Where("id = ?", id).Update("unread_count", 0)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("conversation %s: %w", id, ErrNotFound)
		}
		return tx.Model(&models.Message{}).
			Where("conversation_id = ? AND direction = ? AND read_at IS NULL", id, models.DirectionInbound).
			Update("read_at", now).Error
	})
	if err != nil {
		return nil, err
	}
	return s.GetConversation(ctx, id)
}
