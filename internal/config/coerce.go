package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var decimalPattern = regexp.MustCompile(`^\d*\.\d+$`)

// Coerce infers a scalar type from the textual form of a persisted value.
//
// All-digit text becomes an int, decimal text becomes a float64, true/false
// (any case) becomes a bool, and anything else is returned trimmed and
// lowercased. A digit-only role name is therefore an int; callers that store
// numeric-looking strings get a type mismatch, not a silent repair.
func Coerce(text string) any {
	value := strings.TrimSpace(text)
	switch {
	case isDigits(value):
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	case decimalPattern.MatchString(value):
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	case strings.EqualFold(value, "true"):
		return true
	case strings.EqualFold(value, "false"):
		return false
	}
	return strings.ToLower(value)
}

// coerceRaw stringifies one scalar JSON value the way it was written and
// coerces the result.
func coerceRaw(raw json.RawMessage) (any, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty value")
	}

	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return nil, err
		}
		return Coerce(s), nil
	case '{', '[':
		return nil, fmt.Errorf("expected a scalar value")
	case 'n':
		return nil, fmt.Errorf("null is not a settings value")
	default:
		return Coerce(string(trimmed)), nil
	}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
