package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gharpey-console/internal/ai"
	"gharpey-console/internal/database"
	"gharpey-console/internal/metrics"
	"gharpey-console/internal/models"

	"github.com/rs/zerolog/log"
)

// Enricher analyzes inbound message content.
type Enricher interface {
	Analyze(ctx context.Context, content, targetLanguage string) ai.Result[ai.Analysis]
}

// Notifier is told about every stored message.
type Notifier interface {
	NotifyMessage(msg models.Message)
}

// Ingested is a stored message plus the reply suggestion produced while
// analyzing it. The suggestion is never persisted.
type Ingested struct {
	Message      *models.Message `json:"message"`
	AISuggestion *string         `json:"aiSuggestion,omitempty"`
}

type Service struct {
	store    *database.Store
	enricher Enricher
	notifier Notifier
	metrics  *metrics.Metrics
}

// NewService wires ingestion. notifier and m may be nil.
func NewService(store *database.Store, enricher Enricher, notifier Notifier, m *metrics.Metrics) *Service {
	return &Service{
		store:    store,
		enricher: enricher,
		notifier: notifier,
		metrics:  m,
	}
}

// CreateMessage stores a message submitted by an operator or an integration.
// Inbound messages are analyzed first and the analysis overwrites the
// enrichment fields of the request. Outbound messages are stored as given.
func (s *Service) CreateMessage(ctx context.Context, req models.NewMessage) (*Ingested, error) {
	msg := req.Message()

	var suggestion *string
	if msg.Direction == models.DirectionInbound {
		res := s.enricher.Analyze(ctx, msg.Content, "")
		applyAnalysis(&msg, res.Value)
		suggestion = res.Value.SuggestedResponse
	}

	if err := s.store.CreateMessage(ctx, &msg); err != nil {
		return nil, err
	}

	s.published(&msg)
	return &Ingested{Message: &msg, AISuggestion: suggestion}, nil
}

// inbound describes a message arriving from a provider webhook.
type inbound struct {
	channel    models.Channel
	from       string
	subject    string
	body       string
	externalID string
}

// ReceiveWhatsApp records a WhatsApp message from the phone number from,
// creating the contact and conversation on first contact.
func (s *Service) ReceiveWhatsApp(ctx context.Context, from, body, externalID string) (*Ingested, error) {
	return s.receive(ctx, inbound{
		channel:    models.ChannelWhatsApp,
		from:       from,
		body:       body,
		externalID: externalID,
	})
}

// ReceiveEmail records an email from the address from. subject only names a
// newly created conversation.
func (s *Service) ReceiveEmail(ctx context.Context, from, subject, body, externalID string) (*Ingested, error) {
	return s.receive(ctx, inbound{
		channel:    models.ChannelEmail,
		from:       from,
		subject:    subject,
		body:       body,
		externalID: externalID,
	})
}

func (s *Service) receive(ctx context.Context, in inbound) (*Ingested, error) {
	res := s.enricher.Analyze(ctx, in.body, "")

	msg := &models.Message{
		Direction: models.DirectionInbound,
		Channel:   in.channel,
		Content:   in.body,
		Status:    models.StatusDelivered,
	}
	applyAnalysis(msg, res.Value)
	if in.externalID != "" {
		meta, err := json.Marshal(map[string]string{"externalId": in.externalID})
		if err != nil {
			return nil, fmt.Errorf("encode message metadata: %w", err)
		}
		msg.Metadata = meta
	}

	err := s.store.WithTx(ctx, func(tx *database.Store) error {
		contact, err := findOrCreateContact(ctx, tx, in)
		if err != nil {
			return err
		}
		conversation, err := findOrCreateConversation(ctx, tx, contact.ID, in)
		if err != nil {
			return err
		}

		msg.ContactID = contact.ID
		msg.ConversationID = conversation.ID
		return tx.CreateMessage(ctx, msg)
	})
	if err != nil {
		return nil, fmt.Errorf("ingest %s message from %s: %w", in.channel, in.from, err)
	}

	log.Info().
		Str("channel", string(in.channel)).
		Str("from", in.from).
		Str("messageId", msg.ID).
		Str("enrichment", string(res.Status)).
		Msg("Inbound message stored")

	s.published(msg)
	return &Ingested{Message: msg, AISuggestion: res.Value.SuggestedResponse}, nil
}

func findOrCreateContact(ctx context.Context, tx *database.Store, in inbound) (*models.Contact, error) {
	var (
		contact *models.Contact
		err     error
	)
	switch in.channel {
	case models.ChannelEmail:
		contact, err = tx.FindContactByEmail(ctx, in.from)
	default:
		contact, err = tx.FindContactByPhone(ctx, in.from)
	}
	if err == nil {
		return contact, nil
	}
	if !errors.Is(err, database.ErrNotFound) {
		return nil, err
	}

	from := in.from
	contact = &models.Contact{
		Type:     models.ContactEmployer,
		Language: models.LanguageEnglish,
	}
	switch in.channel {
	case models.ChannelEmail:
		contact.Name = "Email " + from
		contact.Email = &from
	default:
		contact.Name = "WhatsApp " + from
		contact.Phone = &from
	}
	if err := tx.CreateContact(ctx, contact); err != nil {
		return nil, err
	}
	log.Info().Str("contactId", contact.ID).Str("channel", string(in.channel)).Msg("Created contact for new sender")
	return contact, nil
}

func findOrCreateConversation(ctx context.Context, tx *database.Store, contactID string, in inbound) (*models.Conversation, error) {
	conversation, err := tx.FindConversation(ctx, contactID, in.channel)
	if err == nil {
		return conversation, nil
	}
	if !errors.Is(err, database.ErrNotFound) {
		return nil, err
	}

	subject := "WhatsApp Conversation"
	if in.channel == models.ChannelEmail {
		subject = in.subject
		if subject == "" {
			subject = "Email Conversation"
		}
	}
	conversation = &models.Conversation{
		ContactID: contactID,
		Channel:   in.channel,
		Subject:   &subject,
	}
	if err := tx.CreateConversation(ctx, conversation); err != nil {
		return nil, err
	}
	return conversation, nil
}

// applyAnalysis copies the analysis onto msg. Values outside the known
// languages and sentiments leave the message's own value in place.
func applyAnalysis(msg *models.Message, a ai.Analysis) {
	if lang, ok := models.ParseLanguage(a.Language); ok {
		msg.Language = &lang
	}
	if sentiment, ok := models.ParseSentiment(a.Sentiment); ok {
		msg.Sentiment = &sentiment
	}
	intent := a.Intent
	msg.Intent = &intent
	if a.TranslatedContent != nil {
		translated := *a.TranslatedContent
		msg.TranslatedContent = &translated
	}
}

func (s *Service) published(msg *models.Message) {
	if s.metrics != nil {
		s.metrics.MessagesIngested.WithLabelValues(string(msg.Channel), string(msg.Direction)).Inc()
	}
	if s.notifier != nil {
		s.notifier.NotifyMessage(*msg)
	}
}
