package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// deepLX posts to a DeepLX /translate endpoint.
type deepLX struct {
	client  *http.Client
	address string
}

type deepLXRequest struct {
	Text       string `json:"text"`
	SourceLang string `json:"source_lang"`
	TargetLang string `json:"target_lang"`
}

type deepLXResponse struct {
	Code    int    `json:"code"`
	Data    string `json:"data"`
	Message string `json:"message"`
}

func (d *deepLX) Translate(ctx context.Context, req TranslationRequest) (string, error) {
	const provider = "deeplx"
	address := strings.TrimSpace(d.address)
	if address == "" {
		return "", providerError(provider, errEmptyURL)
	}
	if !strings.Contains(address, "/translate") {
		address = strings.TrimRight(address, "/") + "/translate"
	}
	if !strings.HasPrefix(address, "http") {
		address = "http://" + address
	}

	body, err := jsonBody(deepLXRequest{
		Text:       req.Text,
		SourceLang: strings.ToUpper(defaultString(req.SourceLanguage, "auto")),
		TargetLang: strings.ToUpper(req.TargetLanguage),
	})
	if err != nil {
		return "", providerError(provider, err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, address, body)
	if err != nil {
		return "", providerError(provider, fmt.Errorf("create request: %w", err))
	}
	httpReq.Header.Set("Content-Type", "application/json")

	raw, err := do(d.client, provider, httpReq)
	if err != nil {
		return "", err
	}

	var out deepLXResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", providerError(provider, fmt.Errorf("decode response: %w", err))
	}
	if out.Code != 0 && out.Code != http.StatusOK {
		return "", providerErrorf(provider, "deeplx: %s", defaultString(out.Message, fmt.Sprintf("code %d", out.Code)))
	}
	return strings.TrimSpace(out.Data), nil
}

// transAPI calls a user-provided GET translation endpoint.
type transAPI struct {
	client *http.Client
	url    string
	secret string
}

type transAPIResponse struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
	Text string `json:"text"`
}

func (t *transAPI) Translate(ctx context.Context, req TranslationRequest) (string, error) {
	const provider = "transapi"
	if strings.TrimSpace(t.url) == "" {
		return "", providerError(provider, errEmptyURL)
	}

	query := url.Values{}
	query.Set("text", req.Text)
	query.Set("source_language", req.SourceLanguage)
	query.Set("target_language", req.TargetLanguage)
	query.Set("secret", t.secret)

	endpoint, err := withQuery(t.url, query)
	if err != nil {
		return "", providerError(provider, err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", providerError(provider, fmt.Errorf("create request: %w", err))
	}

	raw, err := do(t.client, provider, httpReq)
	if err != nil {
		return "", err
	}

	var out transAPIResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", providerError(provider, fmt.Errorf("decode response: %w", err))
	}
	if out.Code != 0 {
		return "", providerErrorf(provider, "transapi: %s", defaultString(out.Msg, fmt.Sprintf("code %d", out.Code)))
	}
	return strings.TrimSpace(out.Text), nil
}

// httpProbe treats any HTTP response as reachable.
type httpProbe struct {
	provider string
	client   *http.Client
	url      string
}

func (p *httpProbe) Probe(ctx context.Context) error {
	if strings.TrimSpace(p.url) == "" {
		return providerError(p.provider, errEmptyURL)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return providerError(p.provider, fmt.Errorf("create request: %w", err))
	}
	resp, err := p.client.Do(httpReq)
	if err != nil {
		return providerError(p.provider, err)
	}
	return resp.Body.Close()
}
