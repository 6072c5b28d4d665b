package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"gharpey-console/internal/config"
	"gharpey-console/internal/metrics"

	"github.com/rs/zerolog/log"
)

const (
	opAnalyze   = "analyze"
	opTranslate = "translate"
	opReply     = "generate_reply"

	translateMaxTokens = 500
	replyMaxTokens     = 300
)

var errEmptyCompletion = errors.New("empty completion")

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionRequest struct {
	System   string
	Messages []chatMessage
	// JSON asks for a single JSON object as the whole completion.
	JSON bool
	// MaxTokens of zero leaves the limit to the provider.
	MaxTokens int
}

// provider is one LLM backend. complete returns the text of the first choice.
type provider interface {
	name() string
	complete(ctx context.Context, req completionRequest) (string, error)
}

// Client runs the enrichment operations. A Client without a provider answers
// every call with the disabled defaults and never touches the network.
type Client struct {
	provider provider
	metrics  *metrics.Metrics
}

// New builds a Client for cfg. Whether enrichment is enabled is decided here,
// once, from the presence of the provider's credential.
func New(cfg config.AIConfig, m *metrics.Metrics) *Client {
	if !cfg.Enabled() {
		log.Info().Str("provider", cfg.Provider).Msg("No AI credential configured, enrichment disabled")
		return &Client{metrics: m}
	}

	var p provider
	switch cfg.Provider {
	case config.ProviderAnthropic:
		p = newAnthropicProvider(cfg.AnthropicAPIKey, cfg.AnthropicModel)
	default:
		p = newOpenAIProvider(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, cfg.OpenAIModel)
	}
	log.Info().Str("provider", p.name()).Msg("AI enrichment enabled")
	return &Client{provider: p, metrics: m}
}

func (c *Client) Enabled() bool {
	return c.provider != nil
}

// Analyze detects language, sentiment and intent of content, translating it to
// targetLanguage (default en) and suggesting a reply.
func (c *Client) Analyze(ctx context.Context, content, targetLanguage string) Result[Analysis] {
	if c.provider == nil {
		c.record(opAnalyze, StatusDisabled)
		return disabled(disabledAnalysis())
	}
	if targetLanguage == "" {
		targetLanguage = "en"
	}

	text, err := c.call(ctx, opAnalyze, completionRequest{
		System:   analyzePrompt(targetLanguage),
		Messages: []chatMessage{{Role: "user", Content: content}},
		JSON:     true,
	})
	if err != nil {
		return fail(c, opAnalyze, failedAnalysis(), err)
	}

	analysis, err := parseAnalysis(text)
	if err != nil {
		return fail(c, opAnalyze, failedAnalysis(), err)
	}
	c.record(opAnalyze, StatusOK)
	return ok(analysis)
}

// Translate returns content in targetLanguage, or content unchanged when the
// translation is unavailable.
func (c *Client) Translate(ctx context.Context, content, targetLanguage string) Result[string] {
	if c.provider == nil {
		c.record(opTranslate, StatusDisabled)
		return disabled(content)
	}

	text, err := c.call(ctx, opTranslate, completionRequest{
		System:    fmt.Sprintf("Translate the following text to %s. Maintain the tone and meaning.", targetLanguage),
		Messages:  []chatMessage{{Role: "user", Content: content}},
		MaxTokens: translateMaxTokens,
	})
	if err != nil {
		return fail(c, opTranslate, content, err)
	}
	c.record(opTranslate, StatusOK)
	return ok(text)
}

// GenerateReply drafts the next operator reply. history alternates between
// the contact (even positions) and the operator (odd positions).
func (c *Client) GenerateReply(ctx context.Context, history []string, language string) Result[string] {
	if c.provider == nil {
		c.record(opReply, StatusDisabled)
		return disabled(UnavailableReply)
	}

	messages := make([]chatMessage, 0, len(history))
	for i, msg := range history {
		role := "user"
		if i%2 == 1 {
			role = "assistant"
		}
		messages = append(messages, chatMessage{Role: role, Content: msg})
	}

	text, err := c.call(ctx, opReply, completionRequest{
		System:    replyPrompt(language),
		Messages:  messages,
		MaxTokens: replyMaxTokens,
	})
	if err != nil {
		return fail(c, opReply, FailedReply, err)
	}
	c.record(opReply, StatusOK)
	return ok(text)
}

// call runs one provider completion and rejects blank output.
func (c *Client) call(ctx context.Context, op string, req completionRequest) (string, error) {
	start := time.Now()
	text, err := c.provider.complete(ctx, req)
	if c.metrics != nil {
		c.metrics.EnrichmentLatency.WithLabelValues(op).Observe(time.Since(start).Seconds())
	}
	if err != nil {
		return "", err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", errEmptyCompletion
	}
	return text, nil
}

func fail[T any](c *Client, op string, fallback T, err error) Result[T] {
	log.Warn().Err(err).Str("operation", op).Str("provider", c.provider.name()).Msg("Enrichment failed, using fallback")
	c.record(op, StatusFailed)
	return failed(fallback, err)
}

func (c *Client) record(op string, status Status) {
	if c.metrics != nil {
		c.metrics.EnrichmentRequests.WithLabelValues(op, string(status)).Inc()
	}
}

func parseAnalysis(text string) (Analysis, error) {
	jsonStr, err := extractJSON(text)
	if err != nil {
		return Analysis{}, err
	}

	var raw struct {
		Language          string `json:"language"`
		Sentiment         string `json:"sentiment"`
		Intent            string `json:"intent"`
		TranslatedContent string `json:"translatedContent"`
		SuggestedResponse string `json:"suggestedResponse"`
	}
	if err := json.Unmarshal([]byte(jsonStr), &raw); err != nil {
		return Analysis{}, fmt.Errorf("decode analysis: %w", err)
	}

	analysis := Analysis{
		Language:  strings.ToLower(strings.TrimSpace(raw.Language)),
		Sentiment: strings.ToLower(strings.TrimSpace(raw.Sentiment)),
		Intent:    raw.Intent,
	}
	if analysis.Language == "" {
		analysis.Language = "en"
	}
	if analysis.Sentiment == "" {
		analysis.Sentiment = "neutral"
	}
	if raw.TranslatedContent != "" {
		analysis.TranslatedContent = &raw.TranslatedContent
	}
	if raw.SuggestedResponse != "" {
		analysis.SuggestedResponse = &raw.SuggestedResponse
	}
	return analysis, nil
}

// extractJSON finds the outermost JSON object in a completion.
func extractJSON(s string) (string, error) {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end == -1 || end <= start {
		return "", fmt.Errorf("no JSON object found in response")
	}
	return s[start : end+1], nil
}
