// Package seed loads a small demo data set: a few employers and maids,
// their first conversations and messages, and the stock templates.
package seed

import (
	"context"
	"encoding/json"
	"fmt"

	"gharpey-console/internal/database"
	"gharpey-console/internal/models"

	"gorm.io/datatypes"
)

type Summary struct {
	Contacts      int
	Conversations int
	Messages      int
	Templates     int
}

func ptr[T any](v T) *T { return &v }

func sampleContacts() []models.Contact {
	return []models.Contact{
		{
			Name:     "Priya Sharma",
			Phone:    ptr("+91 98765 43210"),
			Email:    ptr("priya.sharma@example.com"),
			Type:     models.ContactEmployer,
			Language: models.LanguageEnglish,
			Location: ptr("Bangalore, Koramangala"),
			Notes:    ptr("Looking for full-time domestic help"),
		},
		{
			Name:     "Lakshmi Devi",
			Phone:    ptr("+91 98765 43211"),
			Type:     models.ContactMaid,
			Language: models.LanguageKannada,
			Location: ptr("Bangalore, BTM Layout"),
			Notes:    ptr("Experienced in cooking and cleaning"),
		},
		{
			Name:     "Rajesh Kumar",
			Phone:    ptr("+91 98765 43212"),
			Email:    ptr("rajesh.kumar@example.com"),
			Type:     models.ContactEmployer,
			Language: models.LanguageHindi,
			Location: ptr("Bangalore, Indiranagar"),
		},
		{
			Name:     "Anita Rao",
			Phone:    ptr("+91 98765 43213"),
			Type:     models.ContactMaid,
			Language: models.LanguageKannada,
			Location: ptr("Bangalore, Whitefield"),
			Notes:    ptr("Part-time availability"),
		},
	}
}

func textContent(s string) datatypes.JSON {
	b, _ := json.Marshal(map[string]string{"text": s})
	return b
}

func sampleTemplates() []models.Template {
	return []models.Template{
		{
			Name:     "Welcome Message",
			Category: "onboarding",
			Channel:  models.ChannelWhatsApp,
			Content:  textContent("Welcome to GharPey! We're here to help you find the perfect domestic help. How can we assist you today?"),
			Language: models.LanguageEnglish,
			IsActive: true,
		},
		{
			Name:      "Salary Reminder",
			Category:  "reminder",
			Channel:   models.ChannelWhatsApp,
			Content:   textContent("Reminder: It's time to process salary payments for your domestic help. Please ensure timely payment."),
			Variables: datatypes.JSONSlice[string]{"{name}", "{amount}", "{date}"},
			Language:  models.LanguageEnglish,
			IsActive:  true,
		},
		{
			Name:      "Interview Schedule",
			Category:  "notification",
			Channel:   models.ChannelEmail,
			Content:   textContent("Your interview has been scheduled with {name} on {date} at {time}. Location: {location}"),
			Variables: datatypes.JSONSlice[string]{"{name}", "{date}", "{time}", "{location}"},
			Language:  models.LanguageEnglish,
			IsActive:  true,
		},
		{
			Name:     "कन्नड स्वागत संदेश",
			Category: "onboarding",
			Channel:  models.ChannelWhatsApp,
			Content:  textContent("ಘರ್‌ಪೇಗೆ ಸ್ವಾಗತ! ನಿಮಗೆ ಸೂಕ್ತವಾದ ಮನೆಕೆಲಸದವರನ್ನು ಹುಡುಕಲು ನಾವು ಇಲ್ಲಿದ್ದೇವೆ."),
			Language: models.LanguageKannada,
			IsActive: true,
		},
	}
}

// Run inserts the demo data in one transaction. Nothing is written if any
// insert fails.
func Run(ctx context.Context, store *database.Store) (Summary, error) {
	var sum Summary

	err := store.WithTx(ctx, func(tx *database.Store) error {
		contacts := sampleContacts()
		for i := range contacts {
			if err := tx.CreateContact(ctx, &contacts[i]); err != nil {
				return err
			}
		}
		sum.Contacts = len(contacts)

		conversations := []models.Conversation{
			{ContactID: contacts[0].ID, Channel: models.ChannelWhatsApp, Subject: ptr("Initial Inquiry")},
			{ContactID: contacts[1].ID, Channel: models.ChannelWhatsApp, Subject: ptr("Job Application")},
			{ContactID: contacts[2].ID, Channel: models.ChannelEmail, Subject: ptr("Service Inquiry")},
		}
		for i := range conversations {
			if err := tx.CreateConversation(ctx, &conversations[i]); err != nil {
				return err
			}
		}
		sum.Conversations = len(conversations)

		messages := []models.Message{
			{
				ConversationID: conversations[0].ID,
				ContactID:      contacts[0].ID,
				Direction:      models.DirectionInbound,
				Channel:        models.ChannelWhatsApp,
				Content:        "Hi, I'm looking for a reliable maid for my home in Koramangala.",
				Language:       ptr(models.LanguageEnglish),
				Sentiment:      ptr(models.SentimentNeutral),
				Intent:         ptr("inquiry"),
				Status:         models.StatusDelivered,
			},
			{
				ConversationID: conversations[0].ID,
				ContactID:      contacts[0].ID,
				Direction:      models.DirectionOutbound,
				Channel:        models.ChannelWhatsApp,
				Content:        "Hello Priya! Thank you for reaching out. We can help you find the perfect domestic help. What are your specific requirements?",
				Language:       ptr(models.LanguageEnglish),
				Status:         models.StatusDelivered,
			},
			{
				ConversationID:    conversations[1].ID,
				ContactID:         contacts[1].ID,
				Direction:         models.DirectionInbound,
				Channel:           models.ChannelWhatsApp,
				Content:           "ನಮಸ್ಕಾರ, ನನಗೆ ಮನೆಕೆಲಸ ಬೇಕು. ನಾನು ಅಡುಗೆ ಮತ್ತು ಸ್ವಚ್ಛತೆ ಮಾಡುತ್ತೇನೆ.",
				Language:          ptr(models.LanguageKannada),
				TranslatedContent: ptr("Hello, I need house work. I do cooking and cleaning."),
				Sentiment:         ptr(models.SentimentPositive),
				Intent:            ptr("job_application"),
				Status:            models.StatusDelivered,
			},
			{
				ConversationID:    conversations[2].ID,
				ContactID:         contacts[2].ID,
				Direction:         models.DirectionInbound,
				Channel:           models.ChannelEmail,
				Content:           "मुझे एक विश्वसनीय घरेलू सहायक चाहिए जो सप्ताह में तीन दिन आ सके।",
				Language:          ptr(models.LanguageHindi),
				TranslatedContent: ptr("I need a reliable domestic help who can come three days a week."),
				Sentiment:         ptr(models.SentimentNeutral),
				Intent:            ptr("inquiry"),
				Status:            models.StatusDelivered,
			},
		}
		for i := range messages {
			if err := tx.CreateMessage(ctx, &messages[i]); err != nil {
				return err
			}
		}
		sum.Messages = len(messages)

		templates := sampleTemplates()
		for i := range templates {
			if err := tx.CreateTemplate(ctx, &templates[i]); err != nil {
				return err
			}
		}
		sum.Templates = len(templates)
		return nil
	})
	if err != nil {
		return Summary{}, fmt.Errorf("seed: %w", err)
	}
	return sum, nil
}
