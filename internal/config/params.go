package config

import (
	"encoding/json"
	"fmt"
	"maps"
	"reflect"
	"slices"
	"sort"
	"strings"
)

const listenTextPrefix = "listen_text_"

// ParamsKeys returns every built-in params key in sorted order, excluding
// the per-language listen_text_* keys.
func ParamsKeys() []string {
	return append([]string(nil), paramsSchema.keys...)
}

// Get returns the value stored under key.
func (p Params) Get(key string) (any, bool) {
	if lang, ok := strings.CutPrefix(key, listenTextPrefix); ok {
		text, found := p.ListenText[lang]
		return text, found
	}
	if field, ok := paramsSchema.field(reflect.ValueOf(p), key); ok {
		return field.Interface(), true
	}
	if raw, ok := p.Extra[key]; ok {
		return raw, true
	}
	return nil, false
}

// String returns a string-typed value, or false when key is unknown or not a string.
func (p Params) String(key string) (string, bool) {
	value, ok := p.Get(key)
	if !ok {
		return "", false
	}
	str, ok := value.(string)
	return str, ok
}

// SetString stores value in a string-typed key.
func (p *Params) SetString(key, value string) error {
	if lang, ok := strings.CutPrefix(key, listenTextPrefix); ok && lang != "" {
		if p.ListenText == nil {
			p.ListenText = make(map[string]string)
		}
		p.ListenText[lang] = value
		return nil
	}
	field, ok := paramsSchema.field(reflect.ValueOf(p).Elem(), key)
	if !ok {
		return fmt.Errorf("unknown params key %q", key)
	}
	if field.Kind() != reflect.String {
		return fmt.Errorf("%s: expected %s value", key, kindName(field.Kind()))
	}
	field.SetString(value)
	return nil
}

// Set stores text under key. String fields take text verbatim; other
// fields take a JSON literal, and list fields also accept a comma-delimited
// string.
func (p *Params) Set(key, text string) error {
	field, ok := paramsSchema.field(reflect.ValueOf(p).Elem(), key)
	if !ok || field.Kind() == reflect.String {
		return p.SetString(key, text)
	}

	ptr := reflect.New(field.Type())
	if err := json.Unmarshal([]byte(text), ptr.Interface()); err != nil {
		if field.Kind() != reflect.Slice {
			return fmt.Errorf("%s: expected %s value: %w", key, kindName(field.Kind()), err)
		}
		ptr.Elem().Set(reflect.ValueOf(splitCommaList(text)))
	}
	field.Set(ptr.Elem())
	return nil
}

// Document returns the flat on-disk form, including carried-through keys.
func (p Params) Document() map[string]any {
	doc := paramsSchema.document(reflect.ValueOf(p))
	for lang, text := range p.ListenText {
		doc[listenTextPrefix+lang] = text
	}
	for key, raw := range p.Extra {
		doc[key] = raw
	}
	return doc
}

// Clone returns a copy that shares no maps or slices with p.
func (p Params) Clone() Params {
	out := p
	out.ListenText = maps.Clone(p.ListenText)
	out.Extra = maps.Clone(p.Extra)
	out.TTSTypeList = slices.Clone(p.TTSTypeList)
	out.ElevenlabsTTSRole = slices.Clone(p.ElevenlabsTTSRole)
	out.CloneVoiceList = slices.Clone(p.CloneVoiceList)
	return out
}

// decodeParams merges persisted content over base with strict per-field
// JSON decoding. Params values are never coerced.
func decodeParams(content string, base Params) (Params, []Warning, error) {
	payload, err := decodeObject(content)
	if err != nil {
		return Params{}, nil, err
	}

	params := base.Clone()
	params.Extra = nil
	if params.ListenText == nil {
		params.ListenText = make(map[string]string)
	}
	target := reflect.ValueOf(&params).Elem()
	warnings := make([]Warning, 0)

	keys := make([]string, 0, len(payload))
	for key := range payload {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		raw := payload[key]

		if lang, ok := strings.CutPrefix(key, listenTextPrefix); ok && lang != "" {
			var text string
			if err := json.Unmarshal(raw, &text); err != nil {
				warnings = append(warnings, Warning{Key: key, Message: "expected string; using default"})
				continue
			}
			params.ListenText[lang] = text
			continue
		}

		field, ok := paramsSchema.field(target, key)
		if !ok {
			if params.Extra == nil {
				params.Extra = make(map[string]json.RawMessage)
			}
			params.Extra[key] = raw
			warnings = append(warnings, Warning{Key: key, Message: "unknown key kept as-is"})
			continue
		}

		ptr := reflect.New(field.Type())
		if err := json.Unmarshal(raw, ptr.Interface()); err != nil {
			warnings = append(warnings, Warning{Key: key, Message: fmt.Sprintf("expected %s; using default", kindName(field.Kind()))})
			continue
		}
		if field.Kind() == reflect.Slice && ptr.Elem().IsNil() {
			ptr.Elem().Set(reflect.MakeSlice(field.Type(), 0, 0))
		}
		field.Set(ptr.Elem())
	}

	return params, warnings, nil
}

func splitCommaList(text string) []string {
	out := make([]string, 0)
	for _, part := range strings.FieldsFunc(text, func(r rune) bool { return r == ',' || r == '，' }) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
