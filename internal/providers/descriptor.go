package providers

import (
	"sort"
)

// Capability is what a provider does for the pipeline.
type Capability string

const (
	Synthesis   Capability = "synthesis"
	Translation Capability = "translation"
	Recognition Capability = "recognition"
)

// FieldKind selects how an editor renders and stores a field.
type FieldKind string

const (
	KindText     FieldKind = "text"
	KindSecret   FieldKind = "secret"
	KindURL      FieldKind = "url"
	KindModel    FieldKind = "model"
	KindRoles    FieldKind = "roles"
	KindTemplate FieldKind = "template"
	KindChoice   FieldKind = "choice"
)

// Field is one editable value of a provider.
type Field struct {
	// Key is the params key, or an editor-only name when Virtual is set.
	Key   string
	Label string
	Kind  FieldKind
	// Rule is a validator tag applied before test and save.
	Rule    string
	Choices []string
	Default string
	Virtual bool
}

// RoleFormat names the line syntax of a role list field.
type RoleFormat string

const (
	RolesNone RoleFormat = "none"
	// RolesSovits lines are "name.wav#text#lang" with lang in zh, ja, en.
	RolesSovits RoleFormat = "sovits"
	// RolesPair lines are "name#text".
	RolesPair RoleFormat = "pair"
	// RolesPairWAV lines are "name.wav#text".
	RolesPairWAV RoleFormat = "pairwav"
)

// Sample is the fixed request a test action sends. Fields with a ZH suffix
// apply under the zh locale.
type Sample struct {
	Text, TextZH         string
	Role, RoleZH         string
	Language, LanguageZH string
	Target, TargetZH     string
	Source               string
}

// Descriptor drives the generic editor for one provider.
type Descriptor struct {
	Name       string
	Title      string
	Capability Capability
	Fields     []Field

	// Template is the params key of the prompt template, if any.
	Template string
	// ModelList is the settings key holding the model pick-list, and
	// ModelField the params key the picker writes.
	ModelList  string
	ModelField string

	// RoleField supplies the sample role, parsed with RoleFormat.
	RoleField  string
	RoleFormat RoleFormat

	// Sample is nil for providers without a test action.
	Sample *Sample
}

// Testable reports whether the provider has a test action.
func (d Descriptor) Testable() bool {
	return d.Sample != nil
}

// Field returns the field with key.
func (d Descriptor) Field(key string) (Field, bool) {
	for _, f := range d.Fields {
		if f.Key == key {
			return f, true
		}
	}
	return Field{}, false
}

const (
	helloZH = "你好啊我的朋友"
	helloEN = "hello,my friend"
)

var (
	ttsSample = &Sample{Text: helloEN, TextZH: helloZH, Language: "en", LanguageZH: "zh-cn"}

	// LLM translators probe with text in the other language.
	llmSample = &Sample{Text: helloZH, TextZH: helloEN, Target: "English", TargetZH: "Chinese"}

	apiSample = &Sample{Text: helloZH, TextZH: helloZH, Target: "en", TargetZH: "en", Source: "zh"}

	azureSpeechRegions = []string{
		"eastasia", "southeastasia", "eastus", "eastus2", "westus", "westus2", "westus3",
		"centralus", "northeurope", "westeurope", "uksouth", "francecentral", "germanywestcentral",
		"japaneast", "japanwest", "koreacentral", "australiaeast", "centralindia", "canadacentral",
		"brazilsouth", "southafricanorth", "swedencentral", "switzerlandnorth", "uaenorth",
	}

	azureAPIVersions = []string{"2024-06-01", "2024-02-01", "2023-12-01-preview", "2023-05-15"}
)

var descriptors = []Descriptor{
	{
		Name: "azuretts", Title: "Azure TTS", Capability: Synthesis,
		Fields: []Field{
			{Key: "azure_speech_key", Label: "Speech key", Kind: KindSecret, Rule: "required"},
			{Key: "azure_speech_region", Label: "Region endpoint (https://...)", Kind: KindURL},
			{Key: "azure_speech_area", Label: "Region", Kind: KindChoice, Choices: azureSpeechRegions, Default: "eastasia", Virtual: true},
		},
		Sample: &Sample{
			Text: helloEN, TextZH: helloZH,
			Role: "en-US-AvaNeural", RoleZH: "zh-CN-YunjianNeural",
			Language: "en-US", LanguageZH: "zh-CN",
		},
	},
	{
		Name: "elevenlabs", Title: "ElevenLabs", Capability: Synthesis,
		Fields: []Field{
			{Key: "elevenlabstts_key", Label: "API key", Kind: KindSecret},
		},
	},
	{
		Name: "clone", Title: "clone-voice", Capability: Synthesis,
		Fields: []Field{
			{Key: "clone_api", Label: "API address", Kind: KindURL, Rule: "required"},
		},
		Sample: &Sample{Text: helloEN, TextZH: helloZH, Role: "clone", RoleZH: "clone", Language: "en", LanguageZH: "zh-cn"},
	},
	{
		Name: "chattts", Title: "ChatTTS", Capability: Synthesis,
		Fields: []Field{
			{Key: "chattts_api", Label: "API address", Kind: KindURL, Rule: "required"},
		},
		ModelList: "chattts_voice",
		Sample:    &Sample{Text: helloEN, TextZH: helloZH, Role: "boy1", RoleZH: "boy1"},
	},
	{
		Name: "ai302tts", Title: "302.ai TTS", Capability: Synthesis,
		Fields: []Field{
			{Key: "ai302tts_key", Label: "API key", Kind: KindSecret, Rule: "required"},
			{Key: "ai302tts_model", Label: "Model", Kind: KindModel, Rule: "required"},
		},
		ModelList: "ai302tts_models", ModelField: "ai302tts_model",
		Sample: &Sample{
			Text: helloZH, TextZH: helloZH,
			Role: "en-US-AvaNeural", RoleZH: "zh-CN-YunjianNeural",
			Language: "en-US", LanguageZH: "zh-CN",
		},
	},
	{
		Name: "openaitts", Title: "OpenAI TTS", Capability: Synthesis,
		Fields: []Field{
			{Key: "chatgpt_api", Label: "API base URL", Kind: KindURL},
			{Key: "chatgpt_key", Label: "API key", Kind: KindSecret, Rule: "required"},
			{Key: "openaitts_role", Label: "Voices", Kind: KindRoles},
		},
		RoleField: "openaitts_role", RoleFormat: RolesNone,
		Sample: ttsSample,
	},
	{
		Name: "doubao", Title: "Doubao TTS", Capability: Synthesis,
		Fields: []Field{
			{Key: "doubao_appid", Label: "App ID", Kind: KindText},
			{Key: "doubao_access", Label: "Access token", Kind: KindSecret},
		},
	},
	{
		Name: "ttsapi", Title: "TTS-API", Capability: Synthesis,
		Fields: []Field{
			{Key: "ttsapi_url", Label: "API URL", Kind: KindURL, Rule: "required"},
			{Key: "ttsapi_voice_role", Label: "Voice roles", Kind: KindRoles},
			{Key: "ttsapi_extra", Label: "Extra", Kind: KindText},
		},
		RoleField: "ttsapi_voice_role", RoleFormat: RolesNone,
		Sample: ttsSample,
	},
	{
		Name: "gptsovits", Title: "GPT-SoVITS", Capability: Synthesis,
		Fields: []Field{
			{Key: "gptsovits_url", Label: "API URL", Kind: KindURL, Rule: "required"},
			{Key: "gptsovits_extra", Label: "Extra", Kind: KindText},
			{Key: "gptsovits_role", Label: "Reference roles (name.wav#text#lang)", Kind: KindRoles},
		},
		RoleField: "gptsovits_role", RoleFormat: RolesSovits,
		Sample: &Sample{Text: helloZH, TextZH: helloZH, Language: "zh", LanguageZH: "zh"},
	},
	{
		Name: "cosyvoice", Title: "CosyVoice", Capability: Synthesis,
		Fields: []Field{
			{Key: "cosyvoice_url", Label: "API URL", Kind: KindURL, Rule: "required"},
			{Key: "cosyvoice_role", Label: "Reference roles (name.wav#text)", Kind: KindRoles},
		},
		RoleField: "cosyvoice_role", RoleFormat: RolesPair,
		Sample: &Sample{Text: helloZH, TextZH: helloZH, Language: "zh", LanguageZH: "zh"},
	},
	{
		Name: "fishtts", Title: "FishTTS", Capability: Synthesis,
		Fields: []Field{
			{Key: "fishtts_url", Label: "API URL", Kind: KindURL, Rule: "required"},
			{Key: "fishtts_role", Label: "Reference roles (name.wav#text)", Kind: KindRoles},
		},
		RoleField: "fishtts_role", RoleFormat: RolesPairWAV,
		Sample: &Sample{Text: helloZH, TextZH: helloZH},
	},
	{
		Name: "zh_recogn", Title: "zh_recogn", Capability: Recognition,
		Fields: []Field{
			{Key: "zh_recogn_api", Label: "API address", Kind: KindURL, Rule: "required"},
		},
		Sample: &Sample{},
	},
	{
		Name: "deepl", Title: "DeepL", Capability: Translation,
		Fields: []Field{
			{Key: "deepl_authkey", Label: "Auth key", Kind: KindSecret},
			{Key: "deepl_api", Label: "API URL", Kind: KindURL, Rule: "omitempty,url"},
		},
	},
	{
		Name: "deeplx", Title: "DeepLX", Capability: Translation,
		Fields: []Field{
			{Key: "deeplx_address", Label: "Address", Kind: KindURL, Rule: "required"},
		},
		Sample: apiSample,
	},
	{
		Name: "ott", Title: "OTT", Capability: Translation,
		Fields: []Field{
			{Key: "ott_address", Label: "Address", Kind: KindURL},
		},
	},
	{
		Name: "baidu", Title: "Baidu", Capability: Translation,
		Fields: []Field{
			{Key: "baidu_appid", Label: "App ID", Kind: KindText},
			{Key: "baidu_miyue", Label: "Secret", Kind: KindSecret},
		},
	},
	{
		Name: "tencent", Title: "Tencent", Capability: Translation,
		Fields: []Field{
			{Key: "tencent_SecretId", Label: "SecretId", Kind: KindText},
			{Key: "tencent_SecretKey", Label: "SecretKey", Kind: KindSecret},
		},
	},
	{
		Name: "chatgpt", Title: "ChatGPT", Capability: Translation,
		Fields: []Field{
			{Key: "chatgpt_api", Label: "API base URL", Kind: KindURL, Default: "https://api.openai.com/v1"},
			{Key: "chatgpt_key", Label: "API key", Kind: KindSecret},
			{Key: "chatgpt_model", Label: "Model", Kind: KindModel},
			{Key: "chatgpt_template", Label: "Prompt template", Kind: KindTemplate},
		},
		Template:  "chatgpt_template",
		ModelList: "chatgpt_model", ModelField: "chatgpt_model",
		Sample: llmSample,
	},
	{
		Name: "ai302", Title: "302.ai", Capability: Translation,
		Fields: []Field{
			{Key: "ai302_key", Label: "API key", Kind: KindSecret},
			{Key: "ai302_model", Label: "Model", Kind: KindModel},
			{Key: "ai302_template", Label: "Prompt template", Kind: KindTemplate},
		},
		Template:  "ai302_template",
		ModelList: "ai302_models", ModelField: "ai302_model",
		Sample: llmSample,
	},
	{
		Name: "localllm", Title: "Local LLM", Capability: Translation,
		Fields: []Field{
			{Key: "localllm_api", Label: "API base URL", Kind: KindURL, Rule: "required"},
			{Key: "localllm_key", Label: "API key", Kind: KindSecret},
			{Key: "localllm_model", Label: "Model", Kind: KindModel},
			{Key: "localllm_template", Label: "Prompt template", Kind: KindTemplate},
		},
		Template:  "localllm_template",
		ModelList: "localllm_model", ModelField: "localllm_model",
		Sample: llmSample,
	},
	{
		Name: "zijiehuoshan", Title: "Volcengine Ark", Capability: Translation,
		Fields: []Field{
			{Key: "zijiehuoshan_key", Label: "API key", Kind: KindSecret, Rule: "required"},
			{Key: "zijiehuoshan_model", Label: "Endpoint ID", Kind: KindModel, Rule: "required"},
			{Key: "zijiehuoshan_template", Label: "Prompt template", Kind: KindTemplate},
		},
		Template:  "zijiehuoshan_template",
		ModelList: "zijiehuoshan_model", ModelField: "zijiehuoshan_model",
		Sample: &Sample{Text: helloZH, TextZH: helloZH, Target: "English", TargetZH: "English"},
	},
	{
		Name: "gemini", Title: "Gemini", Capability: Translation,
		Fields: []Field{
			{Key: "gemini_key", Label: "API key", Kind: KindSecret},
			{Key: "gemini_model", Label: "Model", Kind: KindModel},
			{Key: "gemini_template", Label: "Prompt template", Kind: KindTemplate},
		},
		Template:  "gemini_template",
		ModelList: "gemini_model", ModelField: "gemini_model",
	},
	{
		Name: "azure", Title: "Azure OpenAI", Capability: Translation,
		Fields: []Field{
			{Key: "azure_api", Label: "Endpoint", Kind: KindURL, Rule: "required"},
			{Key: "azure_key", Label: "API key", Kind: KindSecret, Rule: "required"},
			{Key: "azure_version", Label: "API version", Kind: KindChoice, Choices: azureAPIVersions},
			{Key: "azure_model", Label: "Deployment", Kind: KindModel},
			{Key: "azure_template", Label: "Prompt template", Kind: KindTemplate},
		},
		Template:  "azure_template",
		ModelList: "azure_model", ModelField: "azure_model",
		Sample: llmSample,
	},
	{
		Name: "transapi", Title: "Custom translation API", Capability: Translation,
		Fields: []Field{
			{Key: "trans_api_url", Label: "API URL", Kind: KindURL, Rule: "required"},
			{Key: "trans_secret", Label: "Secret", Kind: KindSecret},
		},
		Sample: apiSample,
	},
}

var byName = func() map[string]int {
	index := make(map[string]int, len(descriptors))
	for i, d := range descriptors {
		index[d.Name] = i
	}
	return index
}()

// Lookup returns the descriptor registered under name.
func Lookup(name string) (Descriptor, bool) {
	i, ok := byName[name]
	if !ok {
		return Descriptor{}, false
	}
	return descriptors[i], true
}

// All returns every descriptor in table order.
func All() []Descriptor {
	return append([]Descriptor(nil), descriptors...)
}

// Names returns every provider name in sorted order.
func Names() []string {
	names := make([]string, 0, len(descriptors))
	for _, d := range descriptors {
		names = append(names, d.Name)
	}
	sort.Strings(names)
	return names
}

// ByCapability returns the descriptors offering c, in table order.
func ByCapability(c Capability) []Descriptor {
	var out []Descriptor
	for _, d := range descriptors {
		if d.Capability == c {
			out = append(out, d)
		}
	}
	return out
}

// pick returns the zh variant under the zh locale.
func pick(locale, other, zh string) string {
	if locale == "zh" {
		return zh
	}
	return other
}
