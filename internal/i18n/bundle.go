package i18n

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// DefaultBundle is loaded when the requested bundle file does not exist.
const DefaultBundle = "en"

// ErrBundleNotFound means neither the requested nor the default bundle exists.
var ErrBundleNotFound = errors.New("language bundle not found")

// LanguageName pairs a language code with its display name.
type LanguageName struct {
	Code string
	Name string
}

// Bundle holds the UI lookup tables for one language.
type Bundle struct {
	// Code is the bundle actually loaded, which differs from the requested
	// code after a fallback.
	Code      string
	Requested string
	Path      string

	Strings   map[string]string
	UI        map[string]string
	Toolbox   map[string]string
	Languages []LanguageName

	// Warnings records soft anomalies such as duplicate display names.
	Warnings []string

	byCode map[string]string
	byName map[string]string
}

// Fallback reports whether the default bundle replaced the requested one.
func (b Bundle) Fallback() bool {
	return b.Code != b.Requested
}

// T returns the UI string for key, or key itself when it is missing.
func (b Bundle) T(key string) string {
	return lookup(b.Strings, key)
}

// UIText returns the ui chrome label for key, or key itself.
func (b Bundle) UIText(key string) string {
	return lookup(b.UI, key)
}

// ToolboxText returns the toolbox label for key, or key itself.
func (b Bundle) ToolboxText(key string) string {
	return lookup(b.Toolbox, key)
}

// LanguageName returns the display name for code, or code itself.
func (b Bundle) LanguageName(code string) string {
	return lookup(b.byCode, code)
}

// LanguageCode maps a display name back to its code.
func (b Bundle) LanguageCode(name string) (string, bool) {
	code, ok := b.byName[name]
	return code, ok
}

// LanguageNames returns display names in bundle order.
func (b Bundle) LanguageNames() []string {
	names := make([]string, 0, len(b.Languages))
	for _, entry := range b.Languages {
		names = append(names, entry.Name)
	}
	return names
}

func lookup(table map[string]string, key string) string {
	if value, ok := table[key]; ok {
		return value
	}
	return key
}

// LoadBundle loads dir/<code>.json, substituting the default bundle when the
// requested file is missing.
func LoadBundle(dir, code string) (Bundle, error) {
	path := filepath.Join(dir, code+".json")
	content, err := os.ReadFile(path)
	loaded := code

	if errors.Is(err, fs.ErrNotExist) {
		loaded = DefaultBundle
		path = filepath.Join(dir, DefaultBundle+".json")
		content, err = os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			return Bundle{}, fmt.Errorf("%w: %s (requested %q)", ErrBundleNotFound, path, code)
		}
	}
	if err != nil {
		return Bundle{}, fmt.Errorf("read bundle %s: %w", path, err)
	}

	bundle, err := parseBundle(content)
	if err != nil {
		return Bundle{}, fmt.Errorf("parse bundle %s: %w", path, err)
	}
	bundle.Code = loaded
	bundle.Requested = code
	bundle.Path = path
	return bundle, nil
}

type bundleFile struct {
	TranslateLanguage map[string]string `json:"translate_language"`
	UILang            map[string]string `json:"ui_lang"`
	ToolboxLang       map[string]string `json:"toolbox_lang"`
	LanguageCodeList  json.RawMessage   `json:"language_code_list"`
}

func parseBundle(content []byte) (Bundle, error) {
	var file bundleFile
	if err := json.Unmarshal(content, &file); err != nil {
		return Bundle{}, err
	}

	languages, err := decodeOrderedStrings(file.LanguageCodeList)
	if err != nil {
		return Bundle{}, fmt.Errorf("language_code_list: %w", err)
	}

	bundle := Bundle{
		Strings: orEmpty(file.TranslateLanguage),
		UI:      orEmpty(file.UILang),
		Toolbox: orEmpty(file.ToolboxLang),
		byCode:  make(map[string]string, len(languages)),
		byName:  make(map[string]string, len(languages)),
	}

	for _, entry := range languages {
		if first, dup := bundle.byName[entry.Name]; dup {
			bundle.Warnings = append(bundle.Warnings,
				fmt.Sprintf("display name %q of %q already used by %q; ignored", entry.Name, entry.Code, first))
			continue
		}
		bundle.byName[entry.Name] = entry.Code
		bundle.byCode[entry.Code] = entry.Name
		bundle.Languages = append(bundle.Languages, entry)
	}
	return bundle, nil
}

// decodeOrderedStrings reads a JSON object of strings preserving key order.
// A repeated key keeps its last value at its first position.
func decodeOrderedStrings(raw json.RawMessage) ([]LanguageName, error) {
	if len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil, nil
	}

	decoder := json.NewDecoder(bytes.NewReader(raw))
	token, err := decoder.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := token.(json.Delim); !ok || delim != '{' {
		return nil, errors.New("expected an object")
	}

	var out []LanguageName
	position := make(map[string]int)
	for decoder.More() {
		token, err := decoder.Token()
		if err != nil {
			return nil, err
		}
		key, ok := token.(string)
		if !ok {
			return nil, errors.New("expected a string key")
		}

		var name string
		if err := decoder.Decode(&name); err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}

		if i, seen := position[key]; seen {
			out[i].Name = name
			continue
		}
		position[key] = len(out)
		out = append(out, LanguageName{Code: key, Name: name})
	}

	if _, err := decoder.Token(); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return out, nil
}

func orEmpty(table map[string]string) map[string]string {
	if table == nil {
		return map[string]string{}
	}
	return table
}
