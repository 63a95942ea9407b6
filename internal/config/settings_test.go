package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCoerce(t *testing.T) {
	tests := []struct {
		in   string
		want any
	}{
		{in: "13", want: 13},
		{in: " 007 ", want: 7},
		{in: "0.5", want: 0.5},
		{in: ".25", want: 0.25},
		{in: "1.", want: "1."},
		{in: "-3", want: "-3"},
		{in: "TRUE", want: true},
		{in: "False", want: false},
		{in: "  Slow ", want: "slow"},
		{in: "", want: ""},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			require.Equal(t, tc.want, Coerce(tc.in))
		})
	}
}

func TestSettingsSetCoercesLikeLoad(t *testing.T) {
	cfg := DefaultSettings()

	require.NoError(t, cfg.Set("crf", "18"))
	require.Equal(t, 18, cfg.CRF)

	require.NoError(t, cfg.Set("overall_threshold", "1"))
	require.InDelta(t, 1.0, cfg.OverallThreshold, 1e-9)

	require.NoError(t, cfg.Set("preset", "Medium"))
	require.Equal(t, "medium", cfg.Preset)

	err := cfg.Set("fontname", "2024")
	require.ErrorContains(t, err, "expected string")

	require.ErrorContains(t, cfg.Set("no_such_key", "1"), "unknown settings key")
}

func TestSettingsSetStringBypassesCoercion(t *testing.T) {
	cfg := DefaultSettings()
	require.NoError(t, cfg.SetString("chatgpt_model", "GPT-4o,Qwen"))
	require.Equal(t, "GPT-4o,Qwen", cfg.ChatGPTModel)
	require.Error(t, cfg.SetString("crf", "13"))
}

func TestSettingsDocumentIncludesExtra(t *testing.T) {
	cfg, warnings, err := decodeSettings(`{"old_key": "x"}`, DefaultSettings())
	require.NoError(t, err)
	require.Len(t, warnings, 1)

	doc := cfg.Document()
	require.Contains(t, doc, "old_key")
	require.Equal(t, 13, doc["crf"])
	require.Len(t, doc, len(SettingsKeys())+1)
}

func TestParamsSetHandlesTypedFields(t *testing.T) {
	params := DefaultParams(ParamsOptions{Locale: "en"})

	require.NoError(t, params.Set("voice_role", "1234"))
	require.Equal(t, "1234", params.VoiceRole)

	require.NoError(t, params.Set("subtitle_type", "3"))
	require.Equal(t, 3, params.SubtitleType)

	require.NoError(t, params.Set("cuda", "true"))
	require.True(t, params.CUDA)

	require.NoError(t, params.Set("clone_voicelist", `["clone","b.wav"]`))
	require.Equal(t, []string{"clone", "b.wav"}, params.CloneVoiceList)

	require.NoError(t, params.Set("elevenlabstts_role", "Rachel, Adam，Bella"))
	require.Equal(t, []string{"Rachel", "Adam", "Bella"}, params.ElevenlabsTTSRole)

	require.NoError(t, params.Set("listen_text_en", "hello"))
	require.Equal(t, "hello", params.ListenText["en"])

	require.ErrorContains(t, params.Set("subtitle_type", "soft"), "expected integer")
}

func TestParamsCloneIsIndependent(t *testing.T) {
	params := DefaultParams(ParamsOptions{Locale: "zh"})
	clone := params.Clone()

	clone.ListenText["en"] = "changed"
	clone.TTSTypeList[0] = "changed"

	require.NotEqual(t, "changed", params.ListenText["en"])
	require.Equal(t, "edgeTTS", params.TTSTypeList[0])
}

func TestDefaultParamsDependOnLocale(t *testing.T) {
	zh := DefaultParams(ParamsOptions{Locale: "zh", ChatGPTModel: "gpt-4o-mini"})
	require.Equal(t, templateZH, zh.ChatGPTTemplate)
	require.Equal(t, "", zh.LocalLLMTemplate)
	require.Equal(t, "gpt-4o-mini", zh.ChatGPTModel)

	en := DefaultParams(ParamsOptions{Locale: "en"})
	require.Equal(t, "", en.ChatGPTTemplate)
	require.Equal(t, templateEN, en.LocalLLMTemplate)
	require.Equal(t, templateZH, en.ZijiehuoshanTemplate)
	require.Equal(t, templateAI302, en.AI302Template)
}

func TestTemplateSlotFileName(t *testing.T) {
	chatgpt, ok := TemplateSlotFor("chatgpt_template")
	require.True(t, ok)
	require.Equal(t, "chatgpt.txt", chatgpt.FileName("zh"))
	require.Equal(t, "chatgpt-en.txt", chatgpt.FileName("ja"))

	ai302, ok := TemplateSlotFor("ai302_template")
	require.True(t, ok)
	require.Equal(t, "302ai.txt", ai302.FileName("en"))

	_, ok = TemplateSlotFor("chatgpt_key")
	require.False(t, ok)
}

func TestResolveRootPrecedence(t *testing.T) {
	explicit := t.TempDir()
	env := t.TempDir()
	t.Setenv(RootEnv, env)

	root, err := ResolveRoot(explicit)
	require.NoError(t, err)
	require.Equal(t, explicit, root)

	root, err = ResolveRoot("")
	require.NoError(t, err)
	require.Equal(t, env, root)
}
