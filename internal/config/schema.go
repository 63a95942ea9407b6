package config

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// schema indexes the json-tagged fields of a document struct by on-disk key.
type schema struct {
	keys  []string
	index map[string]int
}

var (
	settingsSchema = buildSchema(reflect.TypeOf(Settings{}))
	paramsSchema   = buildSchema(reflect.TypeOf(Params{}))
)

func buildSchema(t reflect.Type) schema {
	s := schema{index: make(map[string]int)}
	for i := 0; i < t.NumField(); i++ {
		tag := t.Field(i).Tag.Get("json")
		name, _, _ := strings.Cut(tag, ",")
		if name == "" || name == "-" {
			continue
		}
		s.keys = append(s.keys, name)
		s.index[name] = i
	}
	sort.Strings(s.keys)
	return s
}

// field returns the addressable struct field for key.
func (s schema) field(doc reflect.Value, key string) (reflect.Value, bool) {
	i, ok := s.index[key]
	if !ok {
		return reflect.Value{}, false
	}
	return doc.Field(i), true
}

// document flattens the struct into an on-disk key map.
func (s schema) document(doc reflect.Value) map[string]any {
	out := make(map[string]any, len(s.keys))
	for _, key := range s.keys {
		out[key] = doc.Field(s.index[key]).Interface()
	}
	return out
}

// assignScalar stores a coerced scalar into a typed field.
func assignScalar(field reflect.Value, value any) error {
	switch field.Kind() {
	case reflect.Int:
		if n, ok := value.(int); ok {
			field.SetInt(int64(n))
			return nil
		}
	case reflect.Float64:
		switch n := value.(type) {
		case float64:
			field.SetFloat(n)
			return nil
		case int:
			field.SetFloat(float64(n))
			return nil
		}
	case reflect.Bool:
		if b, ok := value.(bool); ok {
			field.SetBool(b)
			return nil
		}
	case reflect.String:
		if str, ok := value.(string); ok {
			field.SetString(str)
			return nil
		}
	}
	return fmt.Errorf("expected %s, got %s %v", kindName(field.Kind()), typeName(value), value)
}

func kindName(k reflect.Kind) string {
	switch k {
	case reflect.Int:
		return "integer"
	case reflect.Float64:
		return "number"
	case reflect.Bool:
		return "boolean"
	case reflect.String:
		return "string"
	case reflect.Slice:
		return "list"
	default:
		return k.String()
	}
}

func typeName(v any) string {
	switch v.(type) {
	case int:
		return "integer"
	case float64:
		return "number"
	case bool:
		return "boolean"
	case string:
		return "string"
	default:
		return fmt.Sprintf("%T", v)
	}
}
