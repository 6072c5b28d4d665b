package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContactPatch_UpdatesOnlySetFields(t *testing.T) {
	t.Parallel()

	name := "Asha"
	lang := LanguageKannada
	updates := ContactPatch{Name: &name, Language: &lang}.Updates()

	assert.Equal(t, map[string]interface{}{"name": "Asha", "language": LanguageKannada}, updates)
	assert.Empty(t, ContactPatch{}.Updates())
}

func TestTemplatePatch_MapsIsActive(t *testing.T) {
	t.Parallel()

	off := false
	updates := TemplatePatch{IsActive: &off}.Updates()
	assert.Equal(t, map[string]interface{}{"is_active": false}, updates)
}

func TestNewTemplate_DefaultsActive(t *testing.T) {
	t.Parallel()

	tpl := NewTemplate{Name: "Welcome", Category: "onboarding", Channel: ChannelWhatsApp}.Template()
	assert.True(t, tpl.IsActive)
	assert.Zero(t, tpl.UsageCount)

	off := false
	tpl = NewTemplate{Name: "Old", IsActive: &off}.Template()
	assert.False(t, tpl.IsActive)
}

func TestParseLanguageAndSentiment(t *testing.T) {
	t.Parallel()

	l, ok := ParseLanguage("ne")
	assert.True(t, ok)
	assert.Equal(t, LanguageNepali, l)

	_, ok = ParseLanguage("fr")
	assert.False(t, ok)

	s, ok := ParseSentiment("urgent")
	assert.True(t, ok)
	assert.Equal(t, SentimentUrgent, s)

	_, ok = ParseSentiment("angry")
	assert.False(t, ok)
}
