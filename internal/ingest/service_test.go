package ingest

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"gharpey-console/internal/ai"
	"gharpey-console/internal/config"
	"gharpey-console/internal/database"
	"gharpey-console/internal/database/testhelper"
	"gharpey-console/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubEnricher struct {
	mu     sync.Mutex
	result ai.Result[ai.Analysis]
	calls  int
}

func (s *stubEnricher) Analyze(_ context.Context, _, _ string) ai.Result[ai.Analysis] {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return s.result
}

type recordingNotifier struct {
	mu       sync.Mutex
	messages []models.Message
}

func (r *recordingNotifier) NotifyMessage(msg models.Message) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, msg)
}

func strPtr(s string) *string { return &s }

func TestCreateMessage_InboundWithoutCredentialUsesDefaults(t *testing.T) {
	t.Parallel()
	store := testhelper.SetupTestStore(t)
	notifier := &recordingNotifier{}
	svc := NewService(store, ai.New(config.AIConfig{Provider: config.ProviderOpenAI}, nil), notifier, nil)

	contact := testhelper.SeedContact(t, store, "Priya", models.ContactEmployer, "+911")
	conv := testhelper.SeedConversation(t, store, contact.ID, models.ChannelWhatsApp, time.Now())

	out, err := svc.CreateMessage(context.Background(), models.NewMessage{
		ConversationID: conv.ID,
		ContactID:      contact.ID,
		Direction:      models.DirectionInbound,
		Channel:        models.ChannelWhatsApp,
		Content:        "Is anyone available tomorrow?",
	})
	require.NoError(t, err)

	require.NotNil(t, out.Message.Language)
	assert.Equal(t, models.LanguageEnglish, *out.Message.Language)
	require.NotNil(t, out.Message.Sentiment)
	assert.Equal(t, models.SentimentNeutral, *out.Message.Sentiment)
	require.NotNil(t, out.Message.Intent)
	assert.Equal(t, "Message received", *out.Message.Intent)
	require.NotNil(t, out.AISuggestion)
	assert.Equal(t, ai.DefaultSuggestedResponse, *out.AISuggestion)

	stored, err := store.GetMessage(context.Background(), out.Message.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.Intent)
	assert.Equal(t, "Message received", *stored.Intent)

	require.Len(t, notifier.messages, 1)
	assert.Equal(t, out.Message.ID, notifier.messages[0].ID)
}

func TestCreateMessage_OutboundSkipsEnrichment(t *testing.T) {
	t.Parallel()
	store := testhelper.SetupTestStore(t)
	enricher := &stubEnricher{}
	svc := NewService(store, enricher, nil, nil)

	contact := testhelper.SeedContact(t, store, "Rajesh", models.ContactEmployer, "+912")
	conv := testhelper.SeedConversation(t, store, contact.ID, models.ChannelWhatsApp, time.Now())

	hi := models.LanguageHindi
	out, err := svc.CreateMessage(context.Background(), models.NewMessage{
		ConversationID: conv.ID,
		ContactID:      contact.ID,
		Direction:      models.DirectionOutbound,
		Channel:        models.ChannelWhatsApp,
		Content:        "Kal subah 9 baje",
		Language:       &hi,
	})
	require.NoError(t, err)

	assert.Zero(t, enricher.calls)
	assert.Nil(t, out.AISuggestion)
	assert.Nil(t, out.Message.Sentiment)
	require.NotNil(t, out.Message.Language)
	assert.Equal(t, models.LanguageHindi, *out.Message.Language)
}

func TestCreateMessage_AnalysisOverwritesEnrichment(t *testing.T) {
	t.Parallel()
	store := testhelper.SetupTestStore(t)
	enricher := &stubEnricher{result: ai.Result[ai.Analysis]{
		Status: ai.StatusOK,
		Value: ai.Analysis{
			Language:          "kn",
			Sentiment:         "urgent",
			Intent:            "needs help today",
			TranslatedContent: strPtr("Please send someone today"),
			SuggestedResponse: strPtr("We are on it."),
		},
	}}
	svc := NewService(store, enricher, nil, nil)

	contact := testhelper.SeedContact(t, store, "Asha", models.ContactEmployer, "+913")
	conv := testhelper.SeedConversation(t, store, contact.ID, models.ChannelWhatsApp, time.Now())

	en := models.LanguageEnglish
	out, err := svc.CreateMessage(context.Background(), models.NewMessage{
		ConversationID: conv.ID,
		ContactID:      contact.ID,
		Direction:      models.DirectionInbound,
		Channel:        models.ChannelWhatsApp,
		Content:        "Indu yaaradru kaLisi",
		Language:       &en,
	})
	require.NoError(t, err)

	assert.Equal(t, models.LanguageKannada, *out.Message.Language)
	assert.Equal(t, models.SentimentUrgent, *out.Message.Sentiment)
	assert.Equal(t, "Please send someone today", *out.Message.TranslatedContent)
	assert.Equal(t, "We are on it.", *out.AISuggestion)
}

func TestCreateMessage_UnknownLanguageKeepsRequestValue(t *testing.T) {
	t.Parallel()

	msg := models.Message{}
	hi := models.LanguageHindi
	msg.Language = &hi
	applyAnalysis(&msg, ai.Analysis{Language: "fr", Sentiment: "ecstatic", Intent: "greeting"})

	assert.Equal(t, models.LanguageHindi, *msg.Language)
	assert.Nil(t, msg.Sentiment)
	assert.Equal(t, "greeting", *msg.Intent)
}

func TestCreateMessage_MissingConversation(t *testing.T) {
	t.Parallel()
	store := testhelper.SetupTestStore(t)
	notifier := &recordingNotifier{}
	svc := NewService(store, &stubEnricher{}, notifier, nil)

	contact := testhelper.SeedContact(t, store, "X", models.ContactMaid, "+914")
	_, err := svc.CreateMessage(context.Background(), models.NewMessage{
		ConversationID: "missing",
		ContactID:      contact.ID,
		Direction:      models.DirectionOutbound,
		Channel:        models.ChannelEmail,
		Content:        "hi",
	})
	assert.ErrorIs(t, err, database.ErrInvalidReference)
	assert.Empty(t, notifier.messages)
}

func TestReceiveWhatsApp_CreatesThenReuses(t *testing.T) {
	t.Parallel()
	store := testhelper.SetupTestStore(t)
	notifier := &recordingNotifier{}
	svc := NewService(store, ai.New(config.AIConfig{}, nil), notifier, nil)
	ctx := context.Background()

	first, err := svc.ReceiveWhatsApp(ctx, "+919812345678", "Hello, I need a maid", "wamid.1")
	require.NoError(t, err)
	require.NotNil(t, first.AISuggestion)
	assert.Equal(t, ai.DefaultSuggestedResponse, *first.AISuggestion)
	assert.Equal(t, models.StatusDelivered, first.Message.Status)
	assert.Equal(t, models.DirectionInbound, first.Message.Direction)

	var meta map[string]string
	require.NoError(t, json.Unmarshal(first.Message.Metadata, &meta))
	assert.Equal(t, "wamid.1", meta["externalId"])

	contact, err := store.FindContactByPhone(ctx, "+919812345678")
	require.NoError(t, err)
	assert.Equal(t, "WhatsApp +919812345678", contact.Name)
	assert.Equal(t, models.ContactEmployer, contact.Type)

	conv, err := store.GetConversation(ctx, first.Message.ConversationID)
	require.NoError(t, err)
	require.NotNil(t, conv.Subject)
	assert.Equal(t, "WhatsApp Conversation", *conv.Subject)
	assert.Equal(t, 1, conv.UnreadCount)

	second, err := svc.ReceiveWhatsApp(ctx, "+919812345678", "Any update?", "wamid.2")
	require.NoError(t, err)
	assert.Equal(t, first.Message.ContactID, second.Message.ContactID)
	assert.Equal(t, first.Message.ConversationID, second.Message.ConversationID)

	contacts, err := store.ListContacts(ctx)
	require.NoError(t, err)
	assert.Len(t, contacts, 1)

	conv, err = store.GetConversation(ctx, first.Message.ConversationID)
	require.NoError(t, err)
	assert.Equal(t, 2, conv.UnreadCount)
	assert.Len(t, notifier.messages, 2)
}

func TestReceiveEmail_SubjectAndFallback(t *testing.T) {
	t.Parallel()
	store := testhelper.SetupTestStore(t)
	svc := NewService(store, &stubEnricher{result: ai.Result[ai.Analysis]{Status: ai.StatusFailed, Value: ai.Analysis{Language: "en", Sentiment: "neutral", Intent: "unknown"}}}, nil, nil)
	ctx := context.Background()

	out, err := svc.ReceiveEmail(ctx, "owner@example.com", "", "Looking for a nanny", "")
	require.NoError(t, err)
	assert.Nil(t, out.AISuggestion)
	assert.Empty(t, out.Message.Metadata)
	require.NotNil(t, out.Message.Intent)
	assert.Equal(t, "unknown", *out.Message.Intent)

	contact, err := store.FindContactByEmail(ctx, "owner@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Email owner@example.com", contact.Name)
	assert.Nil(t, contact.Phone)

	conv, err := store.GetConversation(ctx, out.Message.ConversationID)
	require.NoError(t, err)
	assert.Equal(t, models.ChannelEmail, conv.Channel)
	assert.Equal(t, "Email Conversation", *conv.Subject)

	other, err := svc.ReceiveEmail(ctx, "agency@example.com", "Weekly roster", "See attached", "m-2")
	require.NoError(t, err)
	conv, err = store.GetConversation(ctx, other.Message.ConversationID)
	require.NoError(t, err)
	assert.Equal(t, "Weekly roster", *conv.Subject)
}
