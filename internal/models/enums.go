package models

// ContactType tells employers apart from the domestic staff they hire.
type ContactType string

const (
	ContactEmployer ContactType = "employer"
	ContactMaid     ContactType = "maid"
)

// Channel is the medium a conversation or message travels on.
type Channel string

const (
	ChannelWhatsApp Channel = "whatsapp"
	ChannelEmail    Channel = "email"
)

type Direction string

const (
	DirectionInbound  Direction = "inbound"
	DirectionOutbound Direction = "outbound"
)

type MessageStatus string

const (
	StatusPending   MessageStatus = "pending"
	StatusSent      MessageStatus = "sent"
	StatusDelivered MessageStatus = "delivered"
	StatusRead      MessageStatus = "read"
	StatusFailed    MessageStatus = "failed"
)

// Language codes supported by the console.
type Language string

const (
	LanguageEnglish Language = "en"
	LanguageHindi   Language = "hi"
	LanguageKannada Language = "kn"
	LanguageNepali  Language = "ne"
)

// ParseLanguage reports whether code is one of the supported languages.
func ParseLanguage(code string) (Language, bool) {
	switch l := Language(code); l {
	case LanguageEnglish, LanguageHindi, LanguageKannada, LanguageNepali:
		return l, true
	}
	return "", false
}

type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
	SentimentUrgent   Sentiment = "urgent"
)

// ParseSentiment reports whether s is one of the known sentiments.
func ParseSentiment(s string) (Sentiment, bool) {
	switch v := Sentiment(s); v {
	case SentimentPositive, SentimentNeutral, SentimentNegative, SentimentUrgent:
		return v, true
	}
	return "", false
}

type WorkflowStatus string

const (
	WorkflowActive    WorkflowStatus = "active"
	WorkflowPaused    WorkflowStatus = "paused"
	WorkflowCompleted WorkflowStatus = "completed"
	WorkflowFailed    WorkflowStatus = "failed"
)
