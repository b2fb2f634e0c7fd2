package schema

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/go-openapi/strfmt"
)

// Violation lists every constraint a single field failed.
type Violation struct {
	Field    string
	Messages []string
}

// String joins the field's messages with ", ".
func (v Violation) String() string { return strings.Join(v.Messages, ", ") }

// Violations is the result of validating one object, one entry per field.
type Violations []Violation

// Error implements error.
func (vs Violations) Error() string {
	if len(vs) == 0 {
		return "validation failed"
	}
	return "validation failed: " + strings.Join(vs.Strings(), "; ")
}

// Strings renders one string per violated field.
func (vs Violations) Strings() []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = v.String()
	}
	return out
}

// Has reports whether the named field has a violation.
func (vs Violations) Has(field string) bool {
	return slices.ContainsFunc(vs, func(v Violation) bool { return v.Field == field })
}

// Validate checks obj against every field constraint and collects all
// violations in field declaration order. A nil result means obj is valid.
func (s *Schema) Validate(obj map[string]any) Violations {
	var out Violations
	for _, f := range s.Fields {
		if msgs := checkField(f, obj); len(msgs) > 0 {
			out = append(out, Violation{Field: f.Name, Messages: msgs})
		}
	}
	return out
}

func checkField(f Field, obj map[string]any) []string {
	v, ok := obj[f.Name]
	if !ok || v == nil {
		if f.Required {
			return []string{f.Name + " is required"}
		}
		return nil
	}

	if msg, ok := checkType(f.Name, f.Type, v); !ok {
		return []string{msg}
	}

	var msgs []string
	//exhaustive:ignore
	switch f.Type {
	case TypeString:
		msgs = checkString(f, v.(string))
	case TypeInteger, TypeNumber:
		msgs = checkNumber(f, toFloat64(v))
	case TypeArray:
		if f.Items != "" {
			for _, item := range v.([]any) {
				if _, ok := checkType(f.Name, f.Items, item); !ok {
					msgs = append(msgs, fmt.Sprintf("each value in %s must be %s", f.Name, article(f.Items)))
					break
				}
			}
		}
	}
	return msgs
}

func checkType(name string, t Type, v any) (string, bool) {
	var ok bool
	//exhaustive:ignore
	switch t {
	case TypeString:
		_, ok = v.(string)
	case TypeInteger:
		ok = isInteger(v)
	case TypeNumber:
		ok = isNumber(v)
	case TypeBoolean:
		_, ok = v.(bool)
	case TypeArray:
		_, ok = v.([]any)
	case TypeObject:
		_, ok = v.(map[string]any)
	default:
		ok = true
	}
	if ok {
		return "", true
	}
	return fmt.Sprintf("%s must be %s", name, article(t)), false
}

func checkString(f Field, val string) []string {
	var msgs []string
	n := utf8.RuneCountInString(val)

	if f.MinLength != nil && n < *f.MinLength {
		msgs = append(msgs, fmt.Sprintf("%s must be at least %d characters", f.Name, *f.MinLength))
	}
	if f.MaxLength != nil && n > *f.MaxLength {
		msgs = append(msgs, fmt.Sprintf("%s must be at most %d characters", f.Name, *f.MaxLength))
	}
	if f.Pattern != "" {
		// An uncompilable pattern matches nothing.
		if re, err := compilePattern(f.Pattern); err != nil || !re.MatchString(val) {
			msgs = append(msgs, fmt.Sprintf("%s must match pattern %s", f.Name, f.Pattern))
		}
	}
	if len(f.Enum) > 0 && !slices.Contains(f.Enum, val) {
		msgs = append(msgs, fmt.Sprintf("%s must be one of [%s]", f.Name, strings.Join(f.Enum, ", ")))
	}
	if f.Format != "" && strfmt.Default.ContainsName(f.Format) && !strfmt.Default.Validates(f.Format, val) {
		msgs = append(msgs, fmt.Sprintf("%s must be a valid %s", f.Name, f.Format))
	}
	return msgs
}

// compiled caches patterns across schemas and requests.
var compiled sync.Map

func compilePattern(pattern string) (*regexp.Regexp, error) {
	if re, ok := compiled.Load(pattern); ok {
		return re.(*regexp.Regexp), nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	actual, _ := compiled.LoadOrStore(pattern, re)
	return actual.(*regexp.Regexp), nil
}

func checkNumber(f Field, val float64) []string {
	var msgs []string
	if f.Minimum != nil && val < *f.Minimum {
		msgs = append(msgs, fmt.Sprintf("%s must be at least %s", f.Name, formatFloat(*f.Minimum)))
	}
	if f.Maximum != nil && val > *f.Maximum {
		msgs = append(msgs, fmt.Sprintf("%s must be at most %s", f.Name, formatFloat(*f.Maximum)))
	}
	return msgs
}

func isInteger(v any) bool {
	switch n := v.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return true
	case float64:
		return n == math.Trunc(n) && !math.IsInf(n, 0)
	case json.Number:
		_, err := n.Int64()
		return err == nil
	default:
		return false
	}
}

func isNumber(v any) bool {
	switch n := v.(type) {
	case float32, float64:
		return true
	case json.Number:
		_, err := n.Float64()
		return err == nil
	default:
		return isInteger(n)
	}
}

func toFloat64(v any) float64 {
	switch n := v.(type) {
	case int:
		return float64(n)
	case int8:
		return float64(n)
	case int16:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case uint:
		return float64(n)
	case uint8:
		return float64(n)
	case uint16:
		return float64(n)
	case uint32:
		return float64(n)
	case uint64:
		return float64(n)
	case float32:
		return float64(n)
	case float64:
		return n
	case json.Number:
		f, _ := n.Float64()
		return f
	default:
		return 0
	}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func article(t Type) string {
	//exhaustive:ignore
	switch t {
	case TypeInteger, TypeArray, TypeObject:
		return "an " + string(t)
	default:
		return "a " + string(t)
	}
}
