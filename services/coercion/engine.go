package coercion

import (
	"encoding/json"
	"math"

	"github.com/stridelab/stride-api/services"
)

// Field is one accepted (column, value) pair. Value is nil for an explicit
// NULL, otherwise string, float64, []string, or json.RawMessage by kind.
type Field struct {
	Column string
	Kind   FieldKind
	Value  interface{}
}

// FieldSet is the ordered set of accepted fields derived from a raw payload
type FieldSet struct {
	Fields []Field
}

// IsEmpty returns true if no field survived coercion
func (fs *FieldSet) IsEmpty() bool {
	return len(fs.Fields) == 0
}

// TextValues returns the non-null text-kind values keyed by column, for
// moderation review. Other kinds are exempt from review.
func (fs *FieldSet) TextValues() map[string]string {
	out := make(map[string]string)
	for _, f := range fs.Fields {
		if f.Kind != KindText || f.Value == nil {
			continue
		}
		if s, ok := f.Value.(string); ok {
			out[f.Column] = s
		}
	}
	return out
}

// Coerce validates and converts a sparse untyped payload against the schema.
//
// Validation is two-tier on purpose: individual fields that fail their kind or
// constraints are dropped silently, and only an entirely empty result fails
// the request. Collapsing the tiers into one policy would change observable
// behavior on mixed payloads.
func Coerce(raw map[string]interface{}, schema []FieldDescriptor) (*FieldSet, error) {
	set := &FieldSet{}

	for _, desc := range schema {
		value, present := raw[desc.Name]
		if !present {
			continue
		}

		coerced, ok := coerceValue(desc, value)
		if !ok {
			continue // silent drop
		}
		set.Fields = append(set.Fields, Field{
			Column: desc.Name,
			Kind:   desc.Kind,
			Value:  coerced,
		})
	}

	if set.IsEmpty() {
		return nil, services.ErrNoValidFields
	}
	return set, nil
}

// coerceValue applies the kind-specific validator. The second return reports
// acceptance; a nil first return with ok=true is an explicit storage NULL.
func coerceValue(desc FieldDescriptor, value interface{}) (interface{}, bool) {
	if value == nil {
		// Explicit clearing is legal for every kind.
		return nil, true
	}

	switch desc.Kind {
	case KindText:
		s, ok := value.(string)
		if !ok {
			return nil, false
		}
		return s, true

	case KindNumber:
		n, ok := asFloat(value)
		if !ok || math.IsNaN(n) || math.IsInf(n, 0) {
			return nil, false
		}
		if c := desc.Constraints; c != nil {
			if n < c.Min || n > c.Max {
				return nil, false
			}
		}
		return n, true

	case KindTextArray:
		arr, ok := value.([]interface{})
		if !ok {
			return nil, false
		}
		out := make([]string, 0, len(arr))
		for _, el := range arr {
			s, ok := el.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true

	case KindJSON:
		obj, ok := value.(map[string]interface{})
		if !ok {
			return nil, false
		}
		encoded, err := json.Marshal(obj)
		if err != nil {
			return nil, false
		}
		return json.RawMessage(encoded), true
	}

	return nil, false
}

// asFloat accepts the numeric representations a decoded JSON payload can carry
func asFloat(value interface{}) (float64, bool) {
	switch n := value.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}
