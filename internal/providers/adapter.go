package providers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

const (
	defaultAI302Base = "https://api.302.ai/v1"
	defaultArkBase   = "https://ark.cn-beijing.volces.com/api/v3"
)

// ErrUnsupported means no built-in adapter exists for the provider.
var ErrUnsupported = errors.New("provider has no built-in adapter")

// SynthesisRequest is one speech synthesis call.
type SynthesisRequest struct {
	Text     string
	Role     string
	Language string
	// Rate is a signed percentage such as "+0%".
	Rate       string
	TargetFile string
}

// TranslationRequest is one translation call.
type TranslationRequest struct {
	Text           string
	TargetLanguage string
	SourceLanguage string
}

// Synthesizer writes synthesized speech to the request target file.
type Synthesizer interface {
	Synthesize(ctx context.Context, req SynthesisRequest) error
}

// Translator returns the translated text.
type Translator interface {
	Translate(ctx context.Context, req TranslationRequest) (string, error)
}

// Prober checks that a service answers at all.
type Prober interface {
	Probe(ctx context.Context) error
}

// ProviderError carries a provider failure whose message is shown verbatim.
type ProviderError struct {
	Provider string
	Message  string
	Err      error
}

func (e *ProviderError) Error() string {
	return e.Message
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

func providerError(provider string, err error) error {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return err
	}
	return &ProviderError{Provider: provider, Message: err.Error(), Err: err}
}

func providerErrorf(provider, format string, args ...any) error {
	return &ProviderError{Provider: provider, Message: fmt.Sprintf(format, args...)}
}

// Factory builds adapters from provider values. It applies no timeout; the
// caller's context bounds every call.
type Factory struct {
	Client *http.Client

	// AI302Base and ArkBase override the hosted API roots.
	AI302Base string
	ArkBase   string
}

// NewFactory returns a factory whose client routes through proxy when set.
func NewFactory(proxy string) (*Factory, error) {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if proxy = strings.TrimSpace(proxy); proxy != "" {
		proxyURL, err := url.Parse(proxy)
		if err != nil || proxyURL.Host == "" {
			return nil, fmt.Errorf("invalid proxy %q", proxy)
		}
		transport.Proxy = http.ProxyURL(proxyURL)
	}
	return &Factory{Client: &http.Client{Transport: transport}}, nil
}

func (f *Factory) client() *http.Client {
	if f == nil || f.Client == nil {
		return http.DefaultClient
	}
	return f.Client
}

func (f *Factory) ai302Base() string {
	if f != nil && f.AI302Base != "" {
		return strings.TrimRight(f.AI302Base, "/")
	}
	return defaultAI302Base
}

func (f *Factory) arkBase() string {
	if f != nil && f.ArkBase != "" {
		return strings.TrimRight(f.ArkBase, "/")
	}
	return defaultArkBase
}

// Synthesizer builds the synthesis adapter for name.
func (f *Factory) Synthesizer(name string, values Values) (Synthesizer, error) {
	switch name {
	case "openaitts":
		return &openAISpeech{
			provider: name,
			client:   f.client(),
			base:     defaultString(values["chatgpt_api"], DefaultOpenAIBase),
			key:      values["chatgpt_key"],
			model:    "tts-1",
		}, nil
	case "ai302tts":
		return &openAISpeech{
			provider: name,
			client:   f.client(),
			base:     f.ai302Base(),
			key:      values["ai302tts_key"],
			model:    values["ai302tts_model"],
		}, nil
	case "gptsovits":
		return &gptSoVITS{
			client: f.client(),
			url:    values["gptsovits_url"],
			extra:  values["gptsovits_extra"],
		}, nil
	case "ttsapi":
		return &ttsAPI{
			client: f.client(),
			url:    values["ttsapi_url"],
			extra:  values["ttsapi_extra"],
		}, nil
	}
	if _, ok := Lookup(name); !ok {
		return nil, fmt.Errorf("unknown provider %q", name)
	}
	return nil, fmt.Errorf("%s: %w", name, ErrUnsupported)
}

// Translator builds the translation adapter for name.
func (f *Factory) Translator(name string, values Values) (Translator, error) {
	switch name {
	case "chatgpt":
		return &chatTranslator{
			provider: name,
			client:   f.client(),
			endpoint: strings.TrimRight(defaultString(values["chatgpt_api"], DefaultOpenAIBase), "/") + "/chat/completions",
			bearer:   values["chatgpt_key"],
			model:    values["chatgpt_model"],
			template: values["chatgpt_template"],
		}, nil
	case "localllm":
		return &chatTranslator{
			provider: name,
			client:   f.client(),
			endpoint: strings.TrimRight(values["localllm_api"], "/") + "/chat/completions",
			bearer:   values["localllm_key"],
			model:    values["localllm_model"],
			template: values["localllm_template"],
		}, nil
	case "zijiehuoshan":
		return &chatTranslator{
			provider: name,
			client:   f.client(),
			endpoint: f.arkBase() + "/chat/completions",
			bearer:   values["zijiehuoshan_key"],
			model:    values["zijiehuoshan_model"],
			template: values["zijiehuoshan_template"],
		}, nil
	case "ai302":
		return &chatTranslator{
			provider: name,
			client:   f.client(),
			endpoint: f.ai302Base() + "/chat/completions",
			bearer:   values["ai302_key"],
			model:    values["ai302_model"],
			template: values["ai302_template"],
		}, nil
	case "azure":
		endpoint := fmt.Sprintf("%s/openai/deployments/%s/chat/completions?api-version=%s",
			strings.TrimRight(values["azure_api"], "/"),
			url.PathEscape(values["azure_model"]),
			url.QueryEscape(values["azure_version"]))
		return &chatTranslator{
			provider: name,
			client:   f.client(),
			endpoint: endpoint,
			apiKey:   values["azure_key"],
			template: values["azure_template"],
		}, nil
	case "deeplx":
		return &deepLX{client: f.client(), address: values["deeplx_address"]}, nil
	case "transapi":
		return &transAPI{client: f.client(), url: values["trans_api_url"], secret: values["trans_secret"]}, nil
	}
	if _, ok := Lookup(name); !ok {
		return nil, fmt.Errorf("unknown provider %q", name)
	}
	return nil, fmt.Errorf("%s: %w", name, ErrUnsupported)
}

// Prober builds the reachability probe for a recognition provider.
func (f *Factory) Prober(name string, values Values) (Prober, error) {
	switch name {
	case "zh_recogn":
		return &httpProbe{provider: name, client: f.client(), url: values["zh_recogn_api"]}, nil
	}
	if _, ok := Lookup(name); !ok {
		return nil, fmt.Errorf("unknown provider %q", name)
	}
	return nil, fmt.Errorf("%s: %w", name, ErrUnsupported)
}

func defaultString(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return strings.TrimSpace(value)
}
