// Package i18n resolves the UI locale and loads the matching language bundle.
package i18n

import (
	"os"
	"strings"

	"golang.org/x/text/language"
)

// FallbackLocale is used when neither the settings nor the environment name a locale.
const FallbackLocale = "zh"

// Lookup reads one environment variable.
type Lookup func(key string) (string, bool)

// localeEnv is consulted in POSIX precedence order.
var localeEnv = []string{"LC_ALL", "LC_MESSAGES", "LANG"}

// ResolveLocale returns the persisted code when set, otherwise the two-letter
// base language of the process locale.
func ResolveLocale(persisted string, lookup Lookup) string {
	if code := strings.ToLower(strings.TrimSpace(persisted)); code != "" {
		return code
	}
	if lookup == nil {
		lookup = os.LookupEnv
	}

	for _, key := range localeEnv {
		value, ok := lookup(key)
		if !ok || strings.TrimSpace(value) == "" {
			continue
		}
		code, ok := baseLanguage(value)
		if !ok {
			// An explicit C/POSIX or garbage value still shadows the
			// lower-precedence variables.
			return FallbackLocale
		}
		return code
	}
	return FallbackLocale
}

// baseLanguage parses a POSIX locale such as "pt_BR.UTF-8@euro".
func baseLanguage(raw string) (string, bool) {
	value := strings.TrimSpace(raw)
	if i := strings.IndexAny(value, ".@"); i >= 0 {
		value = value[:i]
	}
	if value == "" || value == "C" || value == "POSIX" {
		return "", false
	}

	tag, err := language.Parse(strings.ReplaceAll(value, "_", "-"))
	if err != nil {
		return "", false
	}
	base, confidence := tag.Base()
	if confidence == language.No {
		return "", false
	}

	code := base.String()
	if len(code) < 2 {
		return "", false
	}
	return strings.ToLower(code[:2]), true
}
