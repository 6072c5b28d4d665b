package database_test

import (
	"context"
	"testing"
	"time"

	"gharpey-console/internal/database"
	"gharpey-console/internal/database/testhelper"
	"gharpey-console/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContacts_CRUD(t *testing.T) {
	t.Parallel()
	store := testhelper.SetupTestStore(t)
	ctx := context.Background()

	contact := testhelper.SeedContact(t, store, "Priya Sharma", models.ContactEmployer, "+919876543210")
	assert.NotEmpty(t, contact.ID)
	assert.Equal(t, models.LanguageEnglish, contact.Language)

	got, err := store.GetContact(ctx, contact.ID)
	require.NoError(t, err)
	assert.Equal(t, "Priya Sharma", got.Name)

	name := "Priya S."
	lang := models.LanguageHindi
	updated, err := store.UpdateContact(ctx, contact.ID, models.ContactPatch{Name: &name, Language: &lang})
	require.NoError(t, err)
	assert.Equal(t, "Priya S.", updated.Name)
	assert.Equal(t, models.LanguageHindi, updated.Language)
	require.NotNil(t, updated.Phone)
	assert.Equal(t, "+919876543210", *updated.Phone)

	_, err = store.UpdateContact(ctx, "missing", models.ContactPatch{Name: &name})
	assert.ErrorIs(t, err, database.ErrNotFound)

	byPhone, err := store.FindContactByPhone(ctx, "+919876543210")
	require.NoError(t, err)
	assert.Equal(t, contact.ID, byPhone.ID)

	_, err = store.FindContactByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, database.ErrNotFound)

	require.NoError(t, store.DeleteContact(ctx, contact.ID))
	_, err = store.GetContact(ctx, contact.ID)
	assert.ErrorIs(t, err, database.ErrNotFound)
	assert.ErrorIs(t, store.DeleteContact(ctx, contact.ID), database.ErrNotFound)
}

func TestDeleteContact_CascadesToConversationsAndMessages(t *testing.T) {
	t.Parallel()
	store := testhelper.SetupTestStore(t)
	ctx := context.Background()

	contact := testhelper.SeedContact(t, store, "Lakshmi Devi", models.ContactMaid, "+919845012345")
	conv := testhelper.SeedConversation(t, store, contact.ID, models.ChannelWhatsApp, time.Now())
	msg := testhelper.SeedMessage(t, store, conv, models.DirectionInbound, "Namaste")

	require.NoError(t, store.DeleteContact(ctx, contact.ID))

	_, err := store.GetConversation(ctx, conv.ID)
	assert.ErrorIs(t, err, database.ErrNotFound)
	_, err = store.GetMessage(ctx, msg.ID)
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestConversations_ListOrderAndPreload(t *testing.T) {
	t.Parallel()
	store := testhelper.SetupTestStore(t)
	ctx := context.Background()

	now := time.Now()
	a := testhelper.SeedContact(t, store, "A", models.ContactEmployer, "+911")
	b := testhelper.SeedContact(t, store, "B", models.ContactMaid, "+912")
	older := testhelper.SeedConversation(t, store, a.ID, models.ChannelWhatsApp, now.Add(-2*time.Hour))
	newer := testhelper.SeedConversation(t, store, b.ID, models.ChannelEmail, now.Add(-time.Hour))

	list, err := store.ListConversations(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, newer.ID, list[0].ID)
	assert.Equal(t, older.ID, list[1].ID)
	require.NotNil(t, list[0].Contact)
	assert.Equal(t, "B", list[0].Contact.Name)
	assert.Equal(t, "active", list[0].Status)

	err = store.CreateConversation(ctx, &models.Conversation{ContactID: "missing", Channel: models.ChannelEmail})
	assert.ErrorIs(t, err, database.ErrInvalidReference)

	found, err := store.FindConversation(ctx, a.ID, models.ChannelWhatsApp)
	require.NoError(t, err)
	assert.Equal(t, older.ID, found.ID)

	_, err = store.FindConversation(ctx, a.ID, models.ChannelEmail)
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestCreateMessage_UpdatesConversation(t *testing.T) {
	t.Parallel()
	store := testhelper.SetupTestStore(t)
	ctx := context.Background()

	contact := testhelper.SeedContact(t, store, "Rajesh Kumar", models.ContactEmployer, "+919900112233")
	start := time.Now().Add(-24 * time.Hour)
	conv := testhelper.SeedConversation(t, store, contact.ID, models.ChannelWhatsApp, start)

	in := testhelper.SeedMessage(t, store, conv, models.DirectionInbound, "Need a cook")
	assert.Equal(t, models.StatusPending, in.Status)

	got, err := store.GetConversation(ctx, conv.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.UnreadCount)
	assert.True(t, got.LastMessageAt.After(start))
	bumped := got.LastMessageAt

	testhelper.SeedMessage(t, store, conv, models.DirectionOutbound, "Sure, which area?")

	got, err = store.GetConversation(ctx, conv.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.UnreadCount, "outbound messages do not count as unread")
	assert.False(t, got.LastMessageAt.Before(bumped))

	messages, err := store.ListMessages(ctx, conv.ID)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, "Need a cook", messages[0].Content)
}

func TestCreateMessage_InvalidReferences(t *testing.T) {
	t.Parallel()
	store := testhelper.SetupTestStore(t)
	ctx := context.Background()

	contact := testhelper.SeedContact(t, store, "Sunita", models.ContactMaid, "+918800")
	conv := testhelper.SeedConversation(t, store, contact.ID, models.ChannelWhatsApp, time.Now())

	err := store.CreateMessage(ctx, &models.Message{
		ConversationID: "missing",
		ContactID:      contact.ID,
		Direction:      models.DirectionInbound,
		Channel:        models.ChannelWhatsApp,
		Content:        "hello",
	})
	assert.ErrorIs(t, err, database.ErrInvalidReference)

	err = store.CreateMessage(ctx, &models.Message{
		ConversationID: conv.ID,
		ContactID:      "missing",
		Direction:      models.DirectionInbound,
		Channel:        models.ChannelWhatsApp,
		Content:        "hello",
	})
	assert.ErrorIs(t, err, database.ErrInvalidReference)

	got, err := store.GetConversation(ctx, conv.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.UnreadCount)
}

func TestCreateMessage_ContactMismatchIsAccepted(t *testing.T) {
	t.Parallel()
	store := testhelper.SetupTestStore(t)
	ctx := context.Background()

	a := testhelper.SeedContact(t, store, "A", models.ContactEmployer, "+911")
	b := testhelper.SeedContact(t, store, "B", models.ContactMaid, "+912")
	conv := testhelper.SeedConversation(t, store, a.ID, models.ChannelWhatsApp, time.Now())

	err := store.CreateMessage(ctx, &models.Message{
		ConversationID: conv.ID,
		ContactID:      b.ID,
		Direction:      models.DirectionOutbound,
		Channel:        models.ChannelWhatsApp,
		Content:        "forwarded",
	})
	assert.NoError(t, err)
}

func TestMarkConversationRead(t *testing.T) {
	t.Parallel()
	store := testhelper.SetupTestStore(t)
	ctx := context.Background()

	contact := testhelper.SeedContact(t, store, "Meena", models.ContactMaid, "+917700")
	conv := testhelper.SeedConversation(t, store, contact.ID, models.ChannelWhatsApp, time.Now())
	in := testhelper.SeedMessage(t, store, conv, models.DirectionInbound, "one")
	testhelper.SeedMessage(t, store, conv, models.DirectionInbound, "two")
	out := testhelper.SeedMessage(t, store, conv, models.DirectionOutbound, "reply")

	got, err := store.MarkConversationRead(ctx, conv.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.UnreadCount)

	msg, err := store.GetMessage(ctx, in.ID)
	require.NoError(t, err)
	assert.NotNil(t, msg.ReadAt)

	msg, err = store.GetMessage(ctx, out.ID)
	require.NoError(t, err)
	assert.Nil(t, msg.ReadAt)

	_, err = store.MarkConversationRead(ctx, "missing")
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestUpdateConversation(t *testing.T) {
	t.Parallel()
	store := testhelper.SetupTestStore(t)
	ctx := context.Background()

	contact := testhelper.SeedContact(t, store, "Kamala", models.ContactMaid, "+917711")
	conv := testhelper.SeedConversation(t, store, contact.ID, models.ChannelEmail, time.Now())

	subject := "Interview schedule"
	status := "archived"
	got, err := store.UpdateConversation(ctx, conv.ID, models.ConversationPatch{Subject: &subject, Status: &status})
	require.NoError(t, err)
	require.NotNil(t, got.Subject)
	assert.Equal(t, subject, *got.Subject)
	assert.Equal(t, status, got.Status)
	assert.Equal(t, models.ChannelEmail, got.Channel)

	unchanged, err := store.UpdateConversation(ctx, conv.ID, models.ConversationPatch{})
	require.NoError(t, err)
	assert.Equal(t, status, unchanged.Status)

	_, err = store.UpdateConversation(ctx, "missing", models.ConversationPatch{Status: &status})
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestRecentMessages_NewestFirst(t *testing.T) {
	t.Parallel()
	store := testhelper.SetupTestStore(t)
	ctx := context.Background()

	contact := testhelper.SeedContact(t, store, "Anita", models.ContactEmployer, "+916600")
	conv := testhelper.SeedConversation(t, store, contact.ID, models.ChannelEmail, time.Now())
	for _, content := range []string{"first", "second", "third"} {
		testhelper.SeedMessage(t, store, conv, models.DirectionInbound, content)
	}

	recent, err := store.RecentMessages(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "third", recent[0].Content)
	assert.Equal(t, "second", recent[1].Content)

	all, err := store.RecentMessages(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestTemplates_SoftDeleteAndUsage(t *testing.T) {
	t.Parallel()
	store := testhelper.SetupTestStore(t)
	ctx := context.Background()

	keep := testhelper.SeedTemplate(t, store, "Welcome")
	gone := testhelper.SeedTemplate(t, store, "Old promo")

	for i := 0; i < 3; i++ {
		tpl, err := store.IncrementTemplateUsage(ctx, keep.ID)
		require.NoError(t, err)
		assert.Equal(t, i+1, tpl.UsageCount)

		again, err := store.GetTemplate(ctx, keep.ID)
		require.NoError(t, err)
		assert.Equal(t, i+1, again.UsageCount)
	}

	require.NoError(t, store.DeleteTemplate(ctx, gone.ID))

	list, err := store.ListTemplates(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, keep.ID, list[0].ID)

	deleted, err := store.GetTemplate(ctx, gone.ID)
	require.NoError(t, err)
	assert.False(t, deleted.IsActive)

	category := "payments"
	updated, err := store.UpdateTemplate(ctx, keep.ID, models.TemplatePatch{Category: &category})
	require.NoError(t, err)
	assert.Equal(t, "payments", updated.Category)
	assert.Equal(t, 3, updated.UsageCount)

	_, err = store.IncrementTemplateUsage(ctx, "missing")
	assert.ErrorIs(t, err, database.ErrNotFound)
	assert.ErrorIs(t, store.DeleteTemplate(ctx, "missing"), database.ErrNotFound)
}

func TestWorkflowsAndNotifications(t *testing.T) {
	t.Parallel()
	store := testhelper.SetupTestStore(t)
	ctx := context.Background()

	wf := &models.Workflow{Name: "Onboard maid", Trigger: "contact_created", Actions: []byte(`[{"type":"send_template"}]`), IsActive: true}
	require.NoError(t, store.CreateWorkflow(ctx, wf))

	workflows, err := store.ListWorkflows(ctx)
	require.NoError(t, err)
	require.Len(t, workflows, 1)

	contact := testhelper.SeedContact(t, store, "Kavya", models.ContactMaid, "+915500")
	inst := &models.WorkflowInstance{WorkflowID: wf.ID, ContactID: &contact.ID}
	require.NoError(t, store.CreateWorkflowInstance(ctx, inst))
	assert.Equal(t, models.WorkflowActive, inst.Status)

	err = store.CreateWorkflowInstance(ctx, &models.WorkflowInstance{WorkflowID: "missing"})
	assert.ErrorIs(t, err, database.ErrNotFound)

	missing := "missing"
	err = store.CreateWorkflowInstance(ctx, &models.WorkflowInstance{WorkflowID: wf.ID, ContactID: &missing})
	assert.ErrorIs(t, err, database.ErrInvalidReference)

	instances, err := store.ListWorkflowInstances(ctx, wf.ID)
	require.NoError(t, err)
	assert.Len(t, instances, 1)

	user := "ops-1"
	n := &models.Notification{Type: "message", Title: "New message", Message: "Kavya wrote", UserID: &user}
	require.NoError(t, store.CreateNotification(ctx, n))
	require.NoError(t, store.CreateNotification(ctx, &models.Notification{Type: "system", Title: "Hi", Message: "all"}))

	mine, err := store.ListNotifications(ctx, user)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.False(t, mine[0].IsRead)

	all, err := store.ListNotifications(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	require.NoError(t, store.MarkNotificationRead(ctx, n.ID))
	mine, err = store.ListNotifications(ctx, user)
	require.NoError(t, err)
	assert.True(t, mine[0].IsRead)

	assert.ErrorIs(t, store.MarkNotificationRead(ctx, "missing"), database.ErrNotFound)
}

func TestStats(t *testing.T) {
	t.Parallel()
	store := testhelper.SetupTestStore(t)
	ctx := context.Background()

	empty, err := store.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), empty.TotalMessages)
	assert.Equal(t, 0, empty.ResponseRate)
	assert.Equal(t, database.AvgResponseTimePlaceholder, empty.AvgResponseTime)

	contact := testhelper.SeedContact(t, store, "Deepa", models.ContactEmployer, "+914400")
	conv := testhelper.SeedConversation(t, store, contact.ID, models.ChannelWhatsApp, time.Now())
	testhelper.SeedMessage(t, store, conv, models.DirectionInbound, "1")
	testhelper.SeedMessage(t, store, conv, models.DirectionInbound, "2")
	testhelper.SeedMessage(t, store, conv, models.DirectionOutbound, "3")

	stats, err := store.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.TotalMessages)
	assert.Equal(t, int64(1), stats.TotalContacts)
	assert.Equal(t, 33, stats.ResponseRate)
}

func TestAnalytics(t *testing.T) {
	t.Parallel()
	store := testhelper.SetupTestStore(t)
	ctx := context.Background()

	busy := testhelper.SeedContact(t, store, "Busy", models.ContactEmployer, "+913300")
	quiet := testhelper.SeedContact(t, store, "Quiet", models.ContactMaid, "+913301")
	wa := testhelper.SeedConversation(t, store, busy.ID, models.ChannelWhatsApp, time.Now())
	em := testhelper.SeedConversation(t, store, quiet.ID, models.ChannelEmail, time.Now())

	hi := models.LanguageHindi
	require.NoError(t, store.CreateMessage(ctx, &models.Message{
		ConversationID: wa.ID, ContactID: busy.ID, Direction: models.DirectionInbound,
		Channel: models.ChannelWhatsApp, Content: "namaste", Language: &hi,
	}))
	testhelper.SeedMessage(t, store, wa, models.DirectionOutbound, "hello")
	testhelper.SeedMessage(t, store, wa, models.DirectionInbound, "thanks")
	testhelper.SeedMessage(t, store, em, models.DirectionInbound, "query")

	a, err := store.Analytics(ctx, time.Now())
	require.NoError(t, err)

	require.Len(t, a.MessageVolume, 7)
	assert.Equal(t, int64(4), a.MessageVolume[6].Count)
	assert.Equal(t, time.Now().Format("2006-01-02"), a.MessageVolume[6].Date)

	require.Len(t, a.ChannelDistribution, 2)
	assert.Equal(t, models.ChannelWhatsApp, a.ChannelDistribution[0].Channel)
	assert.Equal(t, int64(3), a.ChannelDistribution[0].Count)
	assert.Equal(t, 75, a.ChannelDistribution[0].Percentage)

	require.Len(t, a.LanguageDistribution, 1)
	assert.Equal(t, models.LanguageHindi, a.LanguageDistribution[0].Language)
	assert.Equal(t, 100, a.LanguageDistribution[0].Percentage)

	require.Len(t, a.TopContacts, 2)
	assert.Equal(t, busy.ID, a.TopContacts[0].ContactID)
	assert.Equal(t, int64(3), a.TopContacts[0].MessageCount)

	assert.Equal(t, 25, a.ResponseMetrics.ResponseRate)
}
