package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// openAISpeech speaks the OpenAI audio/speech protocol.
type openAISpeech struct {
	provider string
	client   *http.Client
	base     string
	key      string
	model    string
}

type speechRequest struct {
	Model          string  `json:"model"`
	Input          string  `json:"input"`
	Voice          string  `json:"voice"`
	ResponseFormat string  `json:"response_format"`
	Speed          float64 `json:"speed,omitempty"`
}

func (s *openAISpeech) Synthesize(ctx context.Context, req SynthesisRequest) error {
	body, err := jsonBody(speechRequest{
		Model:          s.model,
		Input:          req.Text,
		Voice:          req.Role,
		ResponseFormat: "wav",
		Speed:          rateToSpeed(req.Rate),
	})
	if err != nil {
		return providerError(s.provider, err)
	}

	endpoint := strings.TrimRight(s.base, "/") + "/audio/speech"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return providerError(s.provider, fmt.Errorf("create request: %w", err))
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+s.key)

	audio, err := do(s.client, s.provider, httpReq)
	if err != nil {
		return err
	}
	return writeAudio(s.provider, req.TargetFile, audio)
}

// gptSoVITS calls the GPT-SoVITS api.py GET endpoint.
type gptSoVITS struct {
	client *http.Client
	url    string
	extra  string
}

func (g *gptSoVITS) Synthesize(ctx context.Context, req SynthesisRequest) error {
	const provider = "gptsovits"
	if strings.TrimSpace(g.url) == "" {
		return providerError(provider, errEmptyURL)
	}

	query := url.Values{}
	query.Set("text", req.Text)
	query.Set("text_language", req.Language)
	query.Set("extra", g.extra)
	if req.Role != "" {
		query.Set("refer_wav_path", req.Role)
	}

	endpoint, err := withQuery(g.url, query)
	if err != nil {
		return providerError(provider, err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return providerError(provider, fmt.Errorf("create request: %w", err))
	}

	audio, err := do(g.client, provider, httpReq)
	if err != nil {
		return err
	}
	return writeAudio(provider, req.TargetFile, audio)
}

// ttsAPI posts a form to a user-provided synthesis endpoint.
type ttsAPI struct {
	client *http.Client
	url    string
	extra  string
}

func (t *ttsAPI) Synthesize(ctx context.Context, req SynthesisRequest) error {
	const provider = "ttsapi"
	if strings.TrimSpace(t.url) == "" {
		return providerError(provider, errEmptyURL)
	}

	form := url.Values{}
	form.Set("text", req.Text)
	form.Set("language", req.Language)
	form.Set("voice", req.Role)
	form.Set("rate", req.Rate)
	form.Set("extra", t.extra)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, t.url, strings.NewReader(form.Encode()))
	if err != nil {
		return providerError(provider, fmt.Errorf("create request: %w", err))
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	audio, err := do(t.client, provider, httpReq)
	if err != nil {
		return err
	}
	return writeAudio(provider, req.TargetFile, audio)
}

func writeAudio(provider, path string, audio []byte) error {
	if len(audio) == 0 {
		return providerErrorf(provider, "%s: empty audio response", provider)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return providerError(provider, err)
	}
	if err := os.WriteFile(path, audio, 0o644); err != nil {
		return providerError(provider, err)
	}
	return nil
}

func withQuery(raw string, query url.Values) (string, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", fmt.Errorf("invalid api url: %w", err)
	}
	merged := u.Query()
	for key, values := range query {
		for _, v := range values {
			merged.Set(key, v)
		}
	}
	u.RawQuery = merged.Encode()
	return u.String(), nil
}

// rateToSpeed converts "+25%" style rates to a speed multiplier. A zero or
// unparsable rate is 0 so the field is omitted.
func rateToSpeed(rate string) float64 {
	rate = strings.TrimSuffix(strings.TrimSpace(rate), "%")
	if rate == "" {
		return 0
	}
	var pct float64
	if _, err := fmt.Sscanf(rate, "%g", &pct); err != nil || pct == 0 {
		return 0
	}
	return 1 + pct/100
}
