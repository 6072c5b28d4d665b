package testhelper

import (
	"context"
	"testing"
	"time"

	"gharpey-console/internal/database"
	"gharpey-console/internal/models"
)

func SeedContact(t *testing.T, store *database.Store, name string, typ models.ContactType, phone string) *models.Contact {
	t.Helper()

	contact := &models.Contact{Name: name, Type: typ}
	if phone != "" {
		contact.Phone = &phone
	}
	if err := store.CreateContact(context.Background(), contact); err != nil {
		t.Fatalf("testhelper: seed contact: %v", err)
	}
	return contact
}

func SeedConversation(t *testing.T, store *database.Store, contactID string, channel models.Channel, lastMessageAt time.Time) *models.Conversation {
	t.Helper()

	conversation := &models.Conversation{
		ContactID:     contactID,
		Channel:       channel,
		LastMessageAt: lastMessageAt,
	}
	if err := store.CreateConversation(context.Background(), conversation); err != nil {
		t.Fatalf("testhelper: seed conversation: %v", err)
	}
	return conversation
}

func SeedMessage(t *testing.T, store *database.Store, conversation *models.Conversation, direction models.Direction, content string) *models.Message {
	t.Helper()

	message := &models.Message{
		ConversationID: conversation.ID,
		ContactID:      conversation.ContactID,
		Direction:      direction,
		Channel:        conversation.Channel,
		Content:        content,
	}
	if err := store.CreateMessage(context.Background(), message); err != nil {
		t.Fatalf("testhelper: seed message: %v", err)
	}
	return message
}

func SeedTemplate(t *testing.T, store *database.Store, name string) *models.Template {
	t.Helper()

	template := &models.Template{
		Name:     name,
		Category: "onboarding",
		Channel:  models.ChannelWhatsApp,
		Content:  []byte(`{"en":"Welcome {{name}}"}`),
		IsActive: true,
	}
	if err := store.CreateTemplate(context.Background(), template); err != nil {
		t.Fatalf("testhelper: seed template: %v", err)
	}
	return template
}
