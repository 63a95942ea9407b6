package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// decodeObject reads one JSON object document into raw per-key values.
//
// Comments and trailing commas are tolerated so hand-edited files still load.
// Whitespace-only content decodes to an empty object.
func decodeObject(content string) (map[string]json.RawMessage, error) {
	if strings.TrimSpace(content) == "" {
		return map[string]json.RawMessage{}, nil
	}

	normalized, err := normalizeJSONC(content)
	if err != nil {
		return nil, err
	}

	decoder := json.NewDecoder(strings.NewReader(normalized))
	payload := make(map[string]json.RawMessage)
	if err := decoder.Decode(&payload); err != nil {
		return nil, locateDecodeError(normalized, err)
	}
	if err := ensureSingleJSONValue(decoder); err != nil {
		return nil, locateDecodeError(normalized, err)
	}
	if payload == nil {
		return nil, errors.New("top-level value must be an object")
	}
	return payload, nil
}

// normalizeJSONC blanks comments and trailing commas in one pass. Every
// removed byte becomes a space and line breaks stay, so decoder offsets still
// point into the original text.
func normalizeJSONC(content string) (string, error) {
	out := []byte(content)
	comma := -1

	for i := 0; i < len(out); i++ {
		switch ch := out[i]; {
		case ch == '"':
			comma = -1
			end, ok := skipString(out, i)
			if !ok {
				return string(out), nil
			}
			i = end
		case ch == '/' && i+1 < len(out) && out[i+1] == '/':
			for i < len(out) && out[i] != '\n' && out[i] != '\r' {
				out[i] = ' '
				i++
			}
		case ch == '/' && i+1 < len(out) && out[i+1] == '*':
			end := strings.Index(string(out[i+2:]), "*/")
			if end < 0 {
				return "", errors.New("unterminated block comment in JSONC")
			}
			stop := i + 2 + end + 2
			for ; i < stop; i++ {
				if !keepsLayout(out[i]) {
					out[i] = ' '
				}
			}
			i--
		case ch == ',':
			comma = i
		case ch == '}' || ch == ']':
			if comma >= 0 {
				out[comma] = ' '
			}
			comma = -1
		case isJSONWhitespace(ch):
		default:
			comma = -1
		}
	}
	return string(out), nil
}

// skipString returns the index of the closing quote of the string opening at
// start.
func skipString(buf []byte, start int) (int, bool) {
	for i := start + 1; i < len(buf); i++ {
		switch buf[i] {
		case '\\':
			i++
		case '"':
			return i, true
		}
	}
	return len(buf), false
}

func keepsLayout(ch byte) bool {
	return ch == '\n' || ch == '\r' || ch == '\t'
}

func isJSONWhitespace(ch byte) bool {
	switch ch {
	case ' ', '\n', '\r', '\t':
		return true
	default:
		return false
	}
}

func ensureSingleJSONValue(decoder *json.Decoder) error {
	var extra json.RawMessage
	switch err := decoder.Decode(&extra); {
	case errors.Is(err, io.EOF):
		return nil
	case err != nil:
		return err
	default:
		return errors.New("multiple JSON values are not allowed")
	}
}

// locateDecodeError prefixes decoder errors that carry an offset with the
// line and column they point at.
func locateDecodeError(content string, err error) error {
	var offset int64
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &syntaxErr):
		offset = syntaxErr.Offset
	case errors.As(err, &typeErr):
		offset = typeErr.Offset
	default:
		return err
	}
	line, col := offsetToLineCol(content, offset)
	return fmt.Errorf("line %d column %d: %w", line, col, err)
}

func offsetToLineCol(content string, offset int64) (int, int) {
	if offset <= 0 {
		return 1, 1
	}
	limit := min(int(offset), len(content))
	if limit < 1 {
		return 1, 1
	}
	prefix := content[:limit-1]
	line := 1 + strings.Count(prefix, "\n")
	col := len(prefix) - strings.LastIndexByte(prefix, '\n')
	return line, col
}
