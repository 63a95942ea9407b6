// Package providers describes the synthesis and translation providers, the
// pick-lists derived from settings, and the uniform adapter contract.
package providers

import (
	"strings"

	"github.com/rbright/vtrans/internal/config"
)

// Split breaks a comma list on ASCII and full-width commas, trims each entry,
// and drops empties. An empty result is the single placeholder [""].
func Split(raw string) []string {
	out := make([]string, 0)
	for _, part := range strings.FieldsFunc(raw, isListSeparator) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return []string{""}
	}
	return out
}

func isListSeparator(r rune) bool {
	return r == ',' || r == '，'
}

// List splits the string-typed settings value at key. Unknown or
// non-string keys yield the placeholder list.
func List(settings config.Settings, key string) []string {
	raw, ok := settings.String(key)
	if !ok {
		return []string{""}
	}
	return Split(raw)
}

// Lists holds every pick-list derived from settings.
type Lists struct {
	WhisperModels      []string
	ChatTTSVoices      []string
	ChatGPTModels      []string
	AzureModels        []string
	LocalLLMModels     []string
	ZijiehuoshanModels []string
	GeminiModels       []string
	AI302Models        []string
	AI302TTSModels     []string
}

// ListKeys maps each pick-list name to its settings key.
var ListKeys = map[string]string{
	"whisper":      "model_list",
	"chattts":      "chattts_voice",
	"chatgpt":      "chatgpt_model",
	"azure":        "azure_model",
	"localllm":     "localllm_model",
	"zijiehuoshan": "zijiehuoshan_model",
	"gemini":       "gemini_model",
	"ai302":        "ai302_models",
	"ai302tts":     "ai302tts_models",
}

// DeriveLists builds every pick-list. It has no side effects.
func DeriveLists(settings config.Settings) Lists {
	return Lists{
		WhisperModels:      List(settings, "model_list"),
		ChatTTSVoices:      List(settings, "chattts_voice"),
		ChatGPTModels:      List(settings, "chatgpt_model"),
		AzureModels:        List(settings, "azure_model"),
		LocalLLMModels:     List(settings, "localllm_model"),
		ZijiehuoshanModels: List(settings, "zijiehuoshan_model"),
		GeminiModels:       List(settings, "gemini_model"),
		AI302Models:        List(settings, "ai302_models"),
		AI302TTSModels:     List(settings, "ai302tts_models"),
	}
}

// ParamsOptions seeds the params defaults that depend on the pick-lists.
func (l Lists) ParamsOptions(locale, home string) config.ParamsOptions {
	return config.ParamsOptions{
		Locale:            locale,
		HomeDir:           home,
		ChatGPTModel:      l.ChatGPTModels[0],
		AzureModel:        l.AzureModels[0],
		LocalLLMModel:     l.LocalLLMModels[0],
		ZijiehuoshanModel: l.ZijiehuoshanModels[0],
	}
}
