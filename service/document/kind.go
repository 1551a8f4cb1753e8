package document

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Kind describes a value returned by Lookup for use in error messages.
func Kind(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case string:
		return "a string"
	case bool:
		return "a boolean"
	case json.Number, int, int64, uint64, float64:
		return fmt.Sprintf("the number %v", t)
	case *jsonObject, map[string]any:
		return "a mapping"
	case []any:
		return "a list"
	case *yaml.Node:
		return yamlKind(t)
	default:
		return fmt.Sprintf("a %T", v)
	}
}

// ScalarString formats scalar values; ok is false for mappings, lists and null.
func ScalarString(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case json.Number:
		return t.String(), true
	case bool, int, int64, uint64, float64:
		return fmt.Sprint(t), true
	default:
		return "", false
	}
}
