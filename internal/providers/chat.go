package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

const (
	langPlaceholder = "{lang}"
	textPlaceholder = "[TEXT]"
)

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model,omitempty"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// chatTranslator speaks the OpenAI chat completions protocol.
type chatTranslator struct {
	provider string
	client   *http.Client
	endpoint string
	// bearer is sent as Authorization; apiKey as the azure api-key header.
	bearer   string
	apiKey   string
	model    string
	template string
}

// RenderPrompt substitutes the target language and text into a template.
// A template without a text placeholder gets the text appended.
func RenderPrompt(template, targetLanguage, text string) string {
	prompt := strings.ReplaceAll(template, langPlaceholder, targetLanguage)
	if !strings.Contains(prompt, textPlaceholder) {
		if strings.TrimSpace(prompt) == "" {
			return text
		}
		return strings.TrimRight(prompt, "\n") + "\n" + text
	}
	return strings.ReplaceAll(prompt, textPlaceholder, text)
}

func (c *chatTranslator) Translate(ctx context.Context, req TranslationRequest) (string, error) {
	if strings.TrimSpace(c.endpoint) == "" || strings.HasPrefix(c.endpoint, "/") {
		return "", providerError(c.provider, errEmptyURL)
	}

	payload := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: "You are a professional, authentic machine translation engine."},
			{Role: "user", Content: RenderPrompt(c.template, req.TargetLanguage, req.Text)},
		},
	}
	body, err := jsonBody(payload)
	if err != nil {
		return "", providerError(c.provider, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, body)
	if err != nil {
		return "", providerError(c.provider, fmt.Errorf("create request: %w", err))
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.bearer != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.bearer)
	}
	if c.apiKey != "" {
		httpReq.Header.Set("api-key", c.apiKey)
	}

	raw, err := do(c.client, c.provider, httpReq)
	if err != nil {
		return "", err
	}

	var out chatResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", providerError(c.provider, fmt.Errorf("decode response: %w", err))
	}
	if len(out.Choices) == 0 {
		return "", providerErrorf(c.provider, "%s: no choices in response", c.provider)
	}
	return cleanTranslation(out.Choices[0].Message.Content), nil
}

// cleanTranslation drops source tags a model echoed back.
func cleanTranslation(text string) string {
	text = strings.ReplaceAll(text, "<source>", "")
	text = strings.ReplaceAll(text, "</source>", "")
	return strings.TrimSpace(text)
}
