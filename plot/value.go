package plot

import (
	"encoding/json"
	"fmt"
	"strings"
)

// RefSigil is the prefix that marks a channel string as a field reference
// rather than a literal. Renderers depend on this exact convention.
const RefSigil = "="

// Value is a tagged channel value: either a literal applied to every
// datum, or a reference to a field of the bound table.
type Value struct {
	ref   bool
	field string
	lit   any
}

// Literal returns a Value carrying a constant.
func Literal(v any) Value {
	return Value{lit: v}
}

// FieldRef returns a Value referencing the named table field.
func FieldRef(name string) Value {
	return Value{ref: true, field: name}
}

// ParseValue interprets v the way the wire format does: a string with the
// leading sigil becomes a field reference, anything else is a literal.
func ParseValue(v any) Value {
	if s, ok := v.(string); ok && strings.HasPrefix(s, RefSigil) && len(s) > len(RefSigil) {
		return FieldRef(s[len(RefSigil):])
	}
	return Literal(v)
}

// IsRef reports whether the value is a field reference.
func (v Value) IsRef() bool {
	return v.ref
}

// Field returns the referenced field name, or "" for literals.
func (v Value) Field() string {
	if !v.ref {
		return ""
	}
	return v.field
}

// LiteralValue returns the constant carried by a literal, or nil for refs.
func (v Value) LiteralValue() any {
	if v.ref {
		return nil
	}
	return v.lit
}

func (v Value) String() string {
	if v.ref {
		return RefSigil + v.field
	}
	return fmt.Sprint(v.lit)
}

// MarshalJSON emits field references in sigil form and literals verbatim.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.ref {
		return json.Marshal(RefSigil + v.field)
	}
	return json.Marshal(v.lit)
}

// UnmarshalJSON parses a raw JSON value using the sigil convention.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*v = ParseValue(raw)
	return nil
}
