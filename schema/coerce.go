package schema

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Coerce converts raw request data into the schema's shape. Only declared
// fields are kept, absent fields receive their default, and string or
// json.Number inputs are converted to the declared scalar type. Values that
// cannot be converted are kept unchanged so that Validate reports them.
func (s *Schema) Coerce(raw map[string]any) map[string]any {
	out := make(map[string]any, len(s.Fields))
	for _, f := range s.Fields {
		v, ok := raw[f.Name]
		if !ok || v == nil {
			if f.Default == nil {
				continue
			}
			v = f.Default
		}
		out[f.Name] = coerceValue(f.Type, f.Items, v)
	}
	return out
}

func coerceValue(t, items Type, v any) any {
	//exhaustive:ignore
	switch t {
	case TypeInteger:
		return toInteger(v)
	case TypeNumber:
		return toNumber(v)
	case TypeBoolean:
		return toBoolean(v)
	case TypeArray:
		return toArray(items, v)
	default:
		return v
	}
}

func toInteger(v any) any {
	switch n := v.(type) {
	case string:
		if i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64); err == nil {
			return i
		}
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i
		}
	case float64:
		if n == math.Trunc(n) && !math.IsInf(n, 0) {
			return int64(n)
		}
	case int:
		return int64(n)
	case int32:
		return int64(n)
	}
	return v
}

func toNumber(v any) any {
	switch n := v.(type) {
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(n), 64); err == nil {
			return f
		}
	case json.Number:
		if f, err := n.Float64(); err == nil {
			return f
		}
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case float32:
		return float64(n)
	}
	return v
}

func toBoolean(v any) any {
	if s, ok := v.(string); ok {
		if b, err := strconv.ParseBool(strings.TrimSpace(s)); err == nil {
			return b
		}
	}
	return v
}

func toArray(items Type, v any) any {
	var list []any
	switch a := v.(type) {
	case []any:
		list = make([]any, len(a))
		copy(list, a)
	case []string:
		list = make([]any, len(a))
		for i, s := range a {
			list[i] = s
		}
	case map[string]any:
		return v
	default:
		list = []any{v}
	}

	if items == "" {
		return list
	}
	for i := range list {
		list[i] = coerceValue(items, "", list[i])
	}
	return list
}
