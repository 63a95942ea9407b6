package providers

import (
	"strings"
)

// DefaultOpenAIBase is used when the chatgpt base URL is blank.
const DefaultOpenAIBase = "https://api.openai.com/v1"

// addressFields are plain host addresses that gain an http:// scheme on save.
var addressFields = map[string]bool{
	"clone_api":     true,
	"chattts_api":   true,
	"zh_recogn_api": true,
}

// ApplyDefaults fills blank fields and normalizes addresses in place.
func ApplyDefaults(d Descriptor, values Values) {
	for _, f := range d.Fields {
		value := values[f.Key]
		if f.Kind != KindTemplate {
			value = strings.TrimSpace(value)
		}
		if value == "" && f.Default != "" {
			value = f.Default
		}
		if addressFields[f.Key] && value != "" {
			value = normalizeAddress(f.Key, value)
		}
		if _, present := values[f.Key]; present || value != "" {
			values[f.Key] = value
		}
	}

	if _, ok := values["azure_speech_region"]; ok {
		region := values["azure_speech_region"]
		if !strings.HasPrefix(region, "https:") {
			values["azure_speech_region"] = values["azure_speech_area"]
		}
	}
}

// normalizeAddress strips trailing slashes and ensures an http(s) scheme.
// ChatTTS addresses also lose a /tts suffix.
func normalizeAddress(key, value string) string {
	value = strings.TrimRight(value, "/")
	if key == "chattts_api" {
		value = strings.TrimSuffix(value, "/tts")
	}
	if !strings.HasPrefix(value, "http://") && !strings.HasPrefix(value, "https://") {
		value = "http://" + value
	}
	return value
}
