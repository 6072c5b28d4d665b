package ai

import "fmt"

func analyzePrompt(targetLanguage string) string {
	return fmt.Sprintf(`You are an AI assistant that analyzes messages and provides structured information.
Analyze the message and provide:
1. language: detected language code (en, hi, kn, ne)
2. sentiment: positive, neutral, negative, or urgent
3. intent: brief description of the message intent
4. translatedContent: translation to %s if different from original language
5. suggestedResponse: a brief appropriate response in the original language

Respond with JSON in this format: { "language": "en", "sentiment": "neutral", "intent": "...", "translatedContent": "...", "suggestedResponse": "..." }`, targetLanguage)
}

func replyPrompt(language string) string {
	return fmt.Sprintf(`You are a helpful assistant for GharPey, a platform connecting employers with domestic help (maids).
Generate professional, helpful responses in %s. Be warm, clear, and concise.`, language)
}
