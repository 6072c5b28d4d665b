package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gharpey-console/internal/models"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const defaultRecentLimit = 10

// ListMessages returns a conversation's messages, oldest first.
func (s *Store) ListMessages(ctx context.Context, conversationID string) ([]models.Message, error) {
	messages := []models.Message{}
	err := s.conn(ctx).
		Where("conversation_id = ?", conversationID).
		Order("created_at ASC").
		Find(&messages).Error
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return messages, nil
}

func (s *Store) GetMessage(ctx context.Context, id string) (*models.Message, error) {
	var message models.Message
	if err := s.conn(ctx).Take(&message, "id = ?", id).Error; err != nil {
		return nil, notFound("message", id, err)
	}
	return &message, nil
}

// CreateMessage inserts the message and bumps its conversation's
// lastMessageAt (and unreadCount for inbound messages) in one transaction.
func (s *Store) CreateMessage(ctx context.Context, message *models.Message) error {
	return s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		var conversation models.Conversation
		if err := tx.Select("id", "contact_id").Take(&conversation, "id = ?", message.ConversationID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("conversation %s: %w", message.ConversationID, ErrInvalidReference)
			}
			return fmt.Errorf("load conversation: %w", err)
		}

		var contacts int64
		if err := tx.Model(&models.Contact{}).Where("id = ?", message.ContactID).Count(&contacts).Error; err != nil {
			return fmt.Errorf("load contact: %w", err)
		}
		if contacts == 0 {
			return fmt.Errorf("contact %s: %w", message.ContactID, ErrInvalidReference)
		}

		// Not enforced: the message may name a different contact than its conversation.
		if conversation.ContactID != message.ContactID {
			log.Warn().
				Str("conversationId", conversation.ID).
				Str("conversationContactId", conversation.ContactID).
				Str("messageContactId", message.ContactID).
				Msg("Message contact does not match conversation contact")
		}

		if err := tx.Omit("Conversation", "Contact").Create(message).Error; err != nil {
			return fmt.Errorf("insert message: %w", err)
		}

		updates := map[string]interface{}{"last_message_at": time.Now()}
		if message.Direction == models.DirectionInbound {
			updates["unread_count"] = gorm.Expr("unread_count + ?", 1)
		}
		if err := tx.Model(&models.Conversation{}).Where("id = ?", conversation.ID).Updates(updates).Error; err != nil {
			return fmt.Errorf("update conversation: %w", err)
		}
		return nil
	})
}

// RecentMessages returns the newest messages across all conversations.
func (s *Store) RecentMessages(ctx context.Context, limit int) ([]models.Message, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	messages := []models.Message{}
	if err := s.conn(ctx).Order("created_at DESC").Limit(limit).Find(&messages).Error; err != nil {
		return nil, fmt.Errorf("recent messages: %w", err)
	}
	return messages, nil
}
