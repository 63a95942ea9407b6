package providers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/require"
)

func TestChatTranslatorSendsRenderedPrompt(t *testing.T) {
	var got chatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/chat/completions", r.URL.Path)
		require.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":" <source>Bonjour</source> "}}]}`))
	}))
	defer server.Close()

	f := &Factory{Client: server.Client()}
	tr, err := f.Translator("chatgpt", Values{
		"chatgpt_api":      server.URL + "/v1/",
		"chatgpt_key":      "sk-test",
		"chatgpt_model":    "gpt-4o-mini",
		"chatgpt_template": "Translate to {lang}:\n<source>[TEXT]</source>",
	})
	require.NoError(t, err)

	text, err := tr.Translate(context.Background(), TranslationRequest{Text: "Hello", TargetLanguage: "French"})
	require.NoError(t, err)
	require.Equal(t, "Bonjour", text)
	require.Equal(t, "gpt-4o-mini", got.Model)
	require.Len(t, got.Messages, 2)
	require.Equal(t, "Translate to French:\n<source>Hello</source>", got.Messages[1].Content)
}

func TestAzureTranslatorUsesDeploymentURLAndAPIKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/openai/deployments/gpt-4o/chat/completions", r.URL.Path)
		require.Equal(t, "2024-06-01", r.URL.Query().Get("api-version"))
		require.Equal(t, "az-key", r.Header.Get("api-key"))
		require.Empty(t, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"ok"}}]}`))
	}))
	defer server.Close()

	f := &Factory{Client: server.Client()}
	tr, err := f.Translator("azure", Values{
		"azure_api":     server.URL,
		"azure_key":     "az-key",
		"azure_model":   "gpt-4o",
		"azure_version": "2024-06-01",
	})
	require.NoError(t, err)

	text, err := tr.Translate(context.Background(), TranslationRequest{Text: "x", TargetLanguage: "English"})
	require.NoError(t, err)
	require.Equal(t, "ok", text)
}

func TestChatTranslatorSurfacesProviderMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"Incorrect API key provided"}}`))
	}))
	defer server.Close()

	f := &Factory{Client: server.Client(), AI302Base: server.URL}
	tr, err := f.Translator("ai302", Values{"ai302_key": "bad"})
	require.NoError(t, err)

	_, err = tr.Translate(context.Background(), TranslationRequest{Text: "x", TargetLanguage: "English"})
	var perr *ProviderError
	require.True(t, errors.As(err, &perr))
	require.Equal(t, "ai302", perr.Provider)
	require.Contains(t, perr.Error(), "HTTP 401")
	require.Contains(t, perr.Error(), "Incorrect API key provided")
}

func TestOpenAISpeechWritesWAV(t *testing.T) {
	var got speechRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/audio/speech", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte("RIFF-audio"))
	}))
	defer server.Close()

	target := filepath.Join(t.TempDir(), "tmp", "test.wav")
	f := &Factory{Client: server.Client(), AI302Base: server.URL}
	s, err := f.Synthesizer("ai302tts", Values{"ai302tts_key": "k", "ai302tts_model": "tts-1"})
	require.NoError(t, err)

	require.NoError(t, s.Synthesize(context.Background(), SynthesisRequest{Text: "hi", Role: "alloy", Rate: "+0%", TargetFile: target}))
	require.Equal(t, "wav", got.ResponseFormat)
	require.Equal(t, "alloy", got.Voice)
	require.Equal(t, "tts-1", got.Model)
	require.Zero(t, got.Speed)

	content, err := os.ReadFile(target)
	require.NoError(t, err)
	require.Equal(t, "RIFF-audio", string(content))
}

func TestGPTSoVITSQuery(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		q := r.URL.Query()
		require.Equal(t, "你好", q.Get("text"))
		require.Equal(t, "zh", q.Get("text_language"))
		require.Equal(t, "pyvideotrans", q.Get("extra"))
		require.Equal(t, "ref.wav", q.Get("refer_wav_path"))
		_, _ = w.Write([]byte("wav"))
	}))
	defer server.Close()

	f := &Factory{Client: server.Client()}
	s, err := f.Synthesizer("gptsovits", Values{"gptsovits_url": server.URL, "gptsovits_extra": "pyvideotrans"})
	require.NoError(t, err)
	target := filepath.Join(t.TempDir(), "out.wav")
	require.NoError(t, s.Synthesize(context.Background(), SynthesisRequest{Text: "你好", Language: "zh", Role: "ref.wav", TargetFile: target}))
	require.FileExists(t, target)
}

func TestTTSAPIPostsForm(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, r.ParseForm())
		require.Equal(t, "hello", r.PostForm.Get("text"))
		require.Equal(t, "en", r.PostForm.Get("language"))
		require.Equal(t, "voice-a", r.PostForm.Get("voice"))
		require.Equal(t, "+10%", r.PostForm.Get("rate"))
		require.Equal(t, "extra", r.PostForm.Get("extra"))
		_, _ = w.Write([]byte("mp3"))
	}))
	defer server.Close()

	f := &Factory{Client: server.Client()}
	s, err := f.Synthesizer("ttsapi", Values{"ttsapi_url": server.URL, "ttsapi_extra": "extra"})
	require.NoError(t, err)
	target := filepath.Join(t.TempDir(), "out.mp3")
	require.NoError(t, s.Synthesize(context.Background(), SynthesisRequest{Text: "hello", Language: "en", Role: "voice-a", Rate: "+10%", TargetFile: target}))
}

func TestSynthesisEmptyBodyIsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	f := &Factory{Client: server.Client()}
	s, err := f.Synthesizer("ttsapi", Values{"ttsapi_url": server.URL})
	require.NoError(t, err)
	err = s.Synthesize(context.Background(), SynthesisRequest{Text: "x", TargetFile: filepath.Join(t.TempDir(), "x.wav")})
	require.ErrorContains(t, err, "empty audio")
}

func TestDeepLXTranslate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/translate", r.URL.Path)
		var req deepLXRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "ZH", req.SourceLang)
		require.Equal(t, "EN", req.TargetLang)
		_, _ = w.Write([]byte(`{"code":200,"data":"hello my friend"}`))
	}))
	defer server.Close()

	f := &Factory{Client: server.Client()}
	tr, err := f.Translator("deeplx", Values{"deeplx_address": server.URL})
	require.NoError(t, err)
	text, err := tr.Translate(context.Background(), TranslationRequest{Text: "你好", SourceLanguage: "zh", TargetLanguage: "en"})
	require.NoError(t, err)
	require.Equal(t, "hello my friend", text)
}

func TestTransAPITranslate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		require.Equal(t, "你好啊我的朋友", q.Get("text"))
		require.Equal(t, "zh", q.Get("source_language"))
		require.Equal(t, "en", q.Get("target_language"))
		require.Equal(t, "s3cret", q.Get("secret"))
		require.Equal(t, "1", q.Get("keep"))
		_, _ = w.Write([]byte(`{"code":0,"msg":"ok","text":"hello my friend"}`))
	}))
	defer server.Close()

	f := &Factory{Client: server.Client()}
	tr, err := f.Translator("transapi", Values{"trans_api_url": server.URL + "/api?keep=1", "trans_secret": "s3cret"})
	require.NoError(t, err)
	text, err := tr.Translate(context.Background(), TranslationRequest{Text: "你好啊我的朋友", SourceLanguage: "zh", TargetLanguage: "en"})
	require.NoError(t, err)
	require.Equal(t, "hello my friend", text)
}

func TestTransAPIErrorCode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"code":1,"msg":"bad secret"}`))
	}))
	defer server.Close()

	f := &Factory{Client: server.Client()}
	tr, err := f.Translator("transapi", Values{"trans_api_url": server.URL})
	require.NoError(t, err)
	_, err = tr.Translate(context.Background(), TranslationRequest{Text: "x"})
	require.EqualError(t, err, "transapi: bad secret")
}

func TestFactoryUnsupportedAndUnknown(t *testing.T) {
	f := &Factory{}
	_, err := f.Synthesizer("azuretts", Values{})
	require.True(t, errors.Is(err, ErrUnsupported))

	_, err = f.Translator("baidu", Values{})
	require.True(t, errors.Is(err, ErrUnsupported))

	_, err = f.Translator("nope", Values{})
	require.Error(t, err)
	require.False(t, errors.Is(err, ErrUnsupported))
}

func TestNewFactoryRejectsBadProxy(t *testing.T) {
	_, err := NewFactory("::not-a-proxy")
	require.Error(t, err)

	f, err := NewFactory("http://127.0.0.1:7890")
	require.NoError(t, err)
	require.NotNil(t, f.Client)
}

func TestNewProbeValidatesBeforeBuilding(t *testing.T) {
	d, _ := Lookup("zijiehuoshan")
	_, err := NewProbe(&Factory{}, d, "en", Values{"zijiehuoshan_key": "k"}, "")
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	require.Equal(t, "zijiehuoshan_model", verr.Field)
}

func TestProbeRunsTranslationSample(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		require.Contains(t, string(body), helloZH)
		require.Contains(t, string(body), "English")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"hello my friend"}}]}`))
	}))
	defer server.Close()

	d, _ := Lookup("localllm")
	probe, err := NewProbe(&Factory{Client: server.Client()}, d, "en", Values{
		"localllm_api":      server.URL,
		"localllm_template": "to {lang}: [TEXT]",
	}, "")
	require.NoError(t, err)

	out, err := probe.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, helloZH+"\nhello my friend", out.Summary())
}

func TestProbeRunsRecognitionPing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	d, _ := Lookup("zh_recogn")
	probe, err := NewProbe(&Factory{Client: server.Client()}, d, "zh", Values{"zh_recogn_api": server.URL}, "")
	require.NoError(t, err)

	out, err := probe.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Test Ok", out.Summary())
}

func TestSynthesisSampleUsesRoleField(t *testing.T) {
	d, _ := Lookup("gptsovits")
	req, err := SynthesisSample(d, "en", Values{"gptsovits_role": "a.wav#hi#en"}, "/tmp/x.wav")
	require.NoError(t, err)
	require.Equal(t, "a.wav", req.Role)
	require.Equal(t, "zh", req.Language)
	require.Equal(t, helloZH, req.Text)

	azure, _ := Lookup("azuretts")
	req, err = SynthesisSample(azure, "zh", Values{}, "/tmp/x.wav")
	require.NoError(t, err)
	require.Equal(t, "zh-CN-YunjianNeural", req.Role)
	require.Equal(t, TestRate, req.Rate)
}

func TestRenderPrompt(t *testing.T) {
	require.Equal(t, "to French: hi", RenderPrompt("to {lang}: [TEXT]", "French", "hi"))
	require.Equal(t, "hi", RenderPrompt("", "French", "hi"))
	require.Equal(t, "Translate to French\nhi", RenderPrompt("Translate to {lang}\n", "French", "hi"))
}

func TestRateToSpeed(t *testing.T) {
	require.Zero(t, rateToSpeed("+0%"))
	require.InDelta(t, 1.25, rateToSpeed("+25%"), 1e-9)
	require.InDelta(t, 0.9, rateToSpeed("-10%"), 1e-9)
	require.Zero(t, rateToSpeed("fast"))
}

func TestErrorDetailTruncatesOnRuneBoundary(t *testing.T) {
	// 3-byte runes put the byte limit in the middle of one.
	body := "x" + strings.Repeat("错误", maxErrorBody)

	detail := errorDetail([]byte(body))
	require.True(t, utf8.ValidString(detail))
	require.LessOrEqual(t, len(detail), maxErrorBody)
	require.Greater(t, len(detail), maxErrorBody-utf8.UTFMax)
	require.True(t, strings.HasPrefix(body, detail))
}
