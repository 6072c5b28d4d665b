package models

import "strings"

// WhatsAppWebhook is the body of POST /api/webhooks/whatsapp. Relays post the
// flat form (from, body, messageId); the WhatsApp Cloud API posts the
// object/entry envelope.
type WhatsAppWebhook struct {
	From      string `json:"from"`
	Body      string `json:"body"`
	MessageID string `json:"messageId"`

	Object string         `json:"object,omitempty"`
	Entry  []WebhookEntry `json:"entry,omitempty"`
}

type WebhookEntry struct {
	ID      string `json:"id"`
	Changes []struct {
		Value WebhookValue `json:"value"`
		Field string       `json:"field"`
	} `json:"changes"`
}

type WebhookValue struct {
	MessagingProduct string `json:"messaging_product"`
	Metadata         struct {
		DisplayPhoneNumber string `json:"display_phone_number"`
		PhoneNumberID      string `json:"phone_number_id"`
	} `json:"metadata"`
	Messages []CloudMessage `json:"messages,omitempty"`
}

// CloudMessage is one message inside a Cloud API change.
type CloudMessage struct {
	From      string `json:"from"`
	ID        string `json:"id"`
	Timestamp string `json:"timestamp"`
	Type      string `json:"type"`
	Text      *struct {
		Body string `json:"body"`
	} `json:"text,omitempty"`
	Image    *MediaMessage `json:"image,omitempty"`
	Video    *MediaMessage `json:"video,omitempty"`
	Audio    *MediaMessage `json:"audio,omitempty"`
	Document *MediaMessage `json:"document,omitempty"`
}

// MediaMessage represents a media attachment in a WhatsApp message
type MediaMessage struct {
	ID       string `json:"id"`
	MimeType string `json:"mime_type"`
	Caption  string `json:"caption,omitempty"`
	Filename string `json:"filename,omitempty"`
}

// InboundMessage is a single message pulled out of a webhook body.
type InboundMessage struct {
	From string
	Body string
	ID   string
}

// Messages flattens the payload. Envelope messages without a sender are
// skipped; the flat form yields at most one message.
func (w WhatsAppWebhook) Messages() []InboundMessage {
	if len(w.Entry) == 0 {
		if strings.TrimSpace(w.From) == "" || strings.TrimSpace(w.Body) == "" {
			return nil
		}
		return []InboundMessage{{From: w.From, Body: w.Body, ID: w.MessageID}}
	}

	var out []InboundMessage
	for _, entry := range w.Entry {
		for _, change := range entry.Changes {
			for _, m := range change.Value.Messages {
				if m.From == "" {
					continue
				}
				out = append(out, InboundMessage{From: m.From, Body: m.content(), ID: m.ID})
			}
		}
	}
	return out
}

// content renders non-text messages as a bracketed placeholder such as
// "[image]:<caption>" so they still show up in the conversation.
func (m CloudMessage) content() string {
	switch m.Type {
	case "text":
		if m.Text != nil {
			return m.Text.Body
		}
	case "image":
		return media("image", m.Image, m.imageCaption())
	case "video":
		return media("video", m.Video, "")
	case "audio":
		return media("audio", m.Audio, "")
	case "document":
		name := ""
		if m.Document != nil {
			name = m.Document.Filename
		}
		return media("document", m.Document, name)
	}
	return "[" + m.Type + "]"
}

func (m CloudMessage) imageCaption() string {
	if m.Image == nil {
		return ""
	}
	return m.Image.Caption
}

func media(kind string, mm *MediaMessage, label string) string {
	if mm != nil && mm.Caption != "" && label == "" {
		label = mm.Caption
	}
	if label == "" {
		return "[" + kind + "]"
	}
	return "[" + kind + "]:" + label
}

// EmailWebhook is the body of POST /api/webhooks/email.
type EmailWebhook struct {
	From      string `json:"from" binding:"required"`
	Subject   string `json:"subject"`
	Body      string `json:"body" binding:"required"`
	MessageID string `json:"messageId"`
}
