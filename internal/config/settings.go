package config

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// SettingsKeys returns every built-in settings key in sorted order.
func SettingsKeys() []string {
	return append([]string(nil), settingsSchema.keys...)
}

// Get returns the typed value stored under key.
func (s Settings) Get(key string) (any, bool) {
	if field, ok := settingsSchema.field(reflect.ValueOf(s), key); ok {
		return field.Interface(), true
	}
	if raw, ok := s.Extra[key]; ok {
		return raw, true
	}
	return nil, false
}

// String returns a string-typed value, or false when key is unknown or not a string.
func (s Settings) String(key string) (string, bool) {
	value, ok := s.Get(key)
	if !ok {
		return "", false
	}
	str, ok := value.(string)
	return str, ok
}

// Set coerces text with the load-time rule and stores it under key.
func (s *Settings) Set(key, text string) error {
	field, ok := settingsSchema.field(reflect.ValueOf(s).Elem(), key)
	if !ok {
		return fmt.Errorf("unknown settings key %q", key)
	}
	if err := assignScalar(field, Coerce(text)); err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	return nil
}

// SetString stores value verbatim in a string-typed key.
func (s *Settings) SetString(key, value string) error {
	field, ok := settingsSchema.field(reflect.ValueOf(s).Elem(), key)
	if !ok {
		return fmt.Errorf("unknown settings key %q", key)
	}
	if field.Kind() != reflect.String {
		return fmt.Errorf("%s: expected %s value", key, kindName(field.Kind()))
	}
	field.SetString(value)
	return nil
}

// Document returns the flat on-disk form, including carried-through keys.
func (s Settings) Document() map[string]any {
	doc := settingsSchema.document(reflect.ValueOf(s))
	for key, raw := range s.Extra {
		doc[key] = raw
	}
	return doc
}

// decodeSettings merges persisted content over base.
//
// Every disk value is coerced before it is assigned. Values that do not fit
// the field type keep the base value and produce a warning.
func decodeSettings(content string, base Settings) (Settings, []Warning, error) {
	payload, err := decodeObject(content)
	if err != nil {
		return Settings{}, nil, err
	}

	cfg := base
	cfg.Extra = nil
	target := reflect.ValueOf(&cfg).Elem()
	warnings := make([]Warning, 0)

	keys := make([]string, 0, len(payload))
	for key := range payload {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		raw := payload[key]
		field, ok := settingsSchema.field(target, key)
		if !ok {
			if cfg.Extra == nil {
				cfg.Extra = make(map[string]json.RawMessage)
			}
			cfg.Extra[key] = raw
			warnings = append(warnings, Warning{Key: key, Message: "unknown key kept as-is"})
			continue
		}

		value, err := coerceRaw(raw)
		if err == nil {
			err = assignScalar(field, value)
		}
		if err != nil {
			warnings = append(warnings, Warning{Key: key, Message: err.Error() + "; using default"})
		}
	}

	return cfg, warnings, nil
}

// repairSettings restores model lists that lost their sentinel entry.
func repairSettings(cfg *Settings) []Warning {
	var warnings []Warning
	if !strings.Contains(cfg.AI302TTSModels, "azure") {
		cfg.AI302TTSModels = DefaultAI302TTSModels
		warnings = append(warnings, Warning{Key: "ai302tts_models", Message: "missing azure entry; restored default list"})
	}
	if !strings.Contains(cfg.GeminiModel, "gemini") {
		cfg.GeminiModel = RepairedGeminiModels
		warnings = append(warnings, Warning{Key: "gemini_model", Message: "missing gemini entry; restored default list"})
	}
	return warnings
}
