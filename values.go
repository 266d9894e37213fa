package dojson

import (
	"fmt"
	"strconv"

	json "github.com/goccy/go-json"
)

// ForceList normalizes a scalar-or-list value to a list. nil yields nil; a
// list is returned as-is; any scalar becomes a single-element list.
func ForceList(v any) []any {
	switch t := v.(type) {
	case nil:
		return nil
	case []any:
		return t
	case []string:
		out := make([]any, len(t))
		for i, s := range t {
			out[i] = s
		}
		return out
	case []map[string]any:
		out := make([]any, len(t))
		for i, m := range t {
			out[i] = m
		}
		return out
	default:
		return []any{v}
	}
}

// ForceSingle collapses a scalar-or-list value to a single element: the first
// element of a list, or the value itself. Empty lists yield nil.
func ForceSingle(v any) any {
	switch t := v.(type) {
	case []any:
		if len(t) == 0 {
			return nil
		}
		return t[0]
	case []string:
		if len(t) == 0 {
			return nil
		}
		return t[0]
	default:
		return v
	}
}

// String coerces a scalar to its string form. nil and aggregate values yield
// the empty string.
func String(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case []any, []string, map[string]any:
		return ""
	default:
		return fmt.Sprint(t)
	}
}

// MaybeInt coerces a scalar to an int, returning nil when the value is
// absent or not a whole number.
func MaybeInt(v any) *int {
	switch t := v.(type) {
	case nil:
		return nil
	case int:
		return &t
	case int64:
		n := int(t)
		return &n
	case json.Number:
		i, err := t.Int64()
		if err != nil {
			return nil
		}
		n := int(i)
		return &n
	case float64:
		n := int(t)
		if float64(n) != t {
			return nil
		}
		return &n
	case string:
		n, err := strconv.Atoi(t)
		if err != nil {
			return nil
		}
		return &n
	default:
		return nil
	}
}

// Subfields views a field occurrence as its subfield map. Non-map values
// yield an empty map so rule code can chain lookups without nil checks.
func Subfields(v any) map[string]any {
	if m, ok := v.(map[string]any); ok {
		return m
	}
	return map[string]any{}
}
