package plot

import (
	"encoding/json"
	"fmt"

	"github.com/c360/dashsync/table"
)

// ResolvedMark is a mark whose field references have all been verified
// against a concrete schema. Marks stacked with StackAuto additionally
// carry the stacking order once OrderStacks has run.
type ResolvedMark struct {
	Coord      Coord
	Type       MarkType
	Channels   Channels
	XMin       *float64
	XMax       *float64
	YMin       *float64
	YMax       *float64
	Stack      StackMode
	StackOrder []string
}

// MarshalJSON emits the same flat wire shape as Mark plus stack_order.
func (m ResolvedMark) MarshalJSON() ([]byte, error) {
	out := Mark{
		Coord:    m.Coord,
		Type:     m.Type,
		Channels: m.Channels,
		XMin:     m.XMin,
		XMax:     m.XMax,
		YMin:     m.YMin,
		YMax:     m.YMax,
		Stack:    m.Stack,
	}.wireMap()
	if len(m.StackOrder) > 0 {
		out["stack_order"] = m.StackOrder
	}
	return json.Marshal(out)
}

// ResolvedSpec is the renderer-ready form of a Spec: every field
// reference verified, defaults filled in, stacking order attached.
type ResolvedSpec struct {
	Marks []ResolvedMark `json:"marks"`
}

// Resolve verifies every field reference in spec against schema. It fails
// with an UnknownFieldError naming the first unresolved reference in
// mark-then-channel order, so error messages are reproducible for a given
// spec and schema.
func Resolve(spec *Spec, schema []string) (*ResolvedSpec, error) {
	fields := make(map[string]bool, len(schema))
	for _, f := range schema {
		fields[f] = true
	}

	rs := &ResolvedSpec{Marks: make([]ResolvedMark, 0, len(spec.marks))}
	for i, m := range spec.marks {
		for _, c := range channelOrder {
			v, bound := m.Channels[c]
			if !bound || !v.IsRef() {
				continue
			}
			if !fields[v.Field()] {
				return nil, &UnknownFieldError{Mark: i, Channel: c, Field: v.Field()}
			}
		}
		m = m.clone()
		rs.Marks = append(rs.Marks, ResolvedMark{
			Coord:    m.Coord,
			Type:     m.Type,
			Channels: m.Channels,
			XMin:     m.XMin,
			XMax:     m.XMax,
			YMin:     m.YMin,
			YMax:     m.YMax,
			Stack:    m.Stack,
		})
	}
	return rs, nil
}

// OrderStacks computes the stacking order for every StackAuto mark whose
// color channel references a field of t. The order is the first-occurrence
// order of the series category across the whole table, not per group, so
// stacked segments are comparable across all groups.
func (rs *ResolvedSpec) OrderStacks(t *table.Table) {
	for i := range rs.Marks {
		m := &rs.Marks[i]
		if m.Stack != StackAuto {
			continue
		}
		series, ok := m.Channels[ChannelColor]
		if !ok || !series.IsRef() {
			continue
		}
		idx, ok := t.FieldIndex(series.Field())
		if !ok {
			continue
		}

		seen := make(map[string]bool)
		var order []string
		for _, row := range t.Rows() {
			key := fmt.Sprint(row[idx])
			if !seen[key] {
				seen[key] = true
				order = append(order, key)
			}
		}
		m.StackOrder = order
	}
}
