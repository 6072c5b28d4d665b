package ai

// Status tells why a Result carries the value it does.
type Status string

const (
	// StatusOK means the provider answered and the value is its output.
	StatusOK Status = "ok"
	// StatusDisabled means no provider is configured and the value is the fixed default.
	StatusDisabled Status = "disabled"
	// StatusFailed means the provider call or its parsing failed and the value is the fallback.
	StatusFailed Status = "failed"
)

// Result is the outcome of an enrichment operation. Value is always usable:
// callers that do not care about the outcome read Value and move on.
type Result[T any] struct {
	Status Status
	Value  T
	Err    error
}

func (r Result[T]) OK() bool {
	return r.Status == StatusOK
}

func ok[T any](v T) Result[T] {
	return Result[T]{Status: StatusOK, Value: v}
}

func disabled[T any](v T) Result[T] {
	return Result[T]{Status: StatusDisabled, Value: v}
}

func failed[T any](v T, err error) Result[T] {
	return Result[T]{Status: StatusFailed, Value: v, Err: err}
}

// Analysis is the structured reading of one message.
type Analysis struct {
	Language          string  `json:"language"`
	Sentiment         string  `json:"sentiment"`
	Intent            string  `json:"intent"`
	TranslatedContent *string `json:"translatedContent,omitempty"`
	SuggestedResponse *string `json:"suggestedResponse,omitempty"`
}

const (
	DefaultSuggestedResponse = "Thank you for your message. We'll get back to you soon."
	UnavailableReply         = "Thank you for your message. Our AI assistant is currently unavailable. A team member will respond shortly."
	FailedReply              = "I apologize, but I'm having trouble generating a response right now."
)

func disabledAnalysis() Analysis {
	suggestion := DefaultSuggestedResponse
	return Analysis{
		Language:          "en",
		Sentiment:         "neutral",
		Intent:            "Message received",
		SuggestedResponse: &suggestion,
	}
}

func failedAnalysis() Analysis {
	return Analysis{
		Language:  "en",
		Sentiment: "neutral",
		Intent:    "unknown",
	}
}
