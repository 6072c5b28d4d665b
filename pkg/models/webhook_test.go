package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWhatsAppWebhook_FlatForm(t *testing.T) {
	t.Parallel()

	var w WhatsAppWebhook
	require.NoError(t, json.Unmarshal([]byte(`{"from":"+919812345678","body":"Hello","messageId":"abc"}`), &w))

	msgs := w.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, InboundMessage{From: "+919812345678", Body: "Hello", ID: "abc"}, msgs[0])

	assert.Empty(t, WhatsAppWebhook{From: "+91"}.Messages())
}

func TestWhatsAppWebhook_CloudEnvelope(t *testing.T) {
	t.Parallel()

	body := `{
		"object": "whatsapp_business_account",
		"entry": [{
			"id": "123",
			"changes": [{
				"field": "messages",
				"value": {
					"messaging_product": "whatsapp",
					"messages": [
						{"from": "919812345678", "id": "wamid.1", "type": "text", "text": {"body": "Namaste"}},
						{"from": "919812345678", "id": "wamid.2", "type": "image", "image": {"id": "img1", "caption": "my kitchen"}},
						{"from": "919812345678", "id": "wamid.3", "type": "document", "document": {"id": "doc1", "filename": "id-proof.pdf"}},
						{"from": "919812345678", "id": "wamid.4", "type": "sticker"}
					]
				}
			}]
		}]
	}`

	var w WhatsAppWebhook
	require.NoError(t, json.Unmarshal([]byte(body), &w))

	msgs := w.Messages()
	require.Len(t, msgs, 4)
	assert.Equal(t, "Namaste", msgs[0].Body)
	assert.Equal(t, "wamid.1", msgs[0].ID)
	assert.Equal(t, "[image]:my kitchen", msgs[1].Body)
	assert.Equal(t, "[document]:id-proof.pdf", msgs[2].Body)
	assert.Equal(t, "[sticker]", msgs[3].Body)
}
