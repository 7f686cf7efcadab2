package plot

import (
	"encoding/json"
	"fmt"
)

// Spec is a validated, normalized plot specification. It is immutable
// after Build; changing visual behavior means building a new Spec.
type Spec struct {
	marks []Mark
}

// Build validates marks and normalizes them into a canonical Spec.
// Missing coordinate systems default to cartesian and missing stack modes
// to none. Unrecognized coordinate, mark type, channel, or stack tags fail
// with a ValidationError naming the offending mark.
func Build(marks []Mark) (*Spec, error) {
	if len(marks) == 0 {
		return nil, &ValidationError{Mark: -1, Detail: "at least one mark is required"}
	}

	normalized := make([]Mark, 0, len(marks))
	for i, m := range marks {
		m = m.clone()

		if m.Coord == "" {
			m.Coord = CoordCartesian
		}
		if !knownCoords[m.Coord] {
			return nil, &ValidationError{Mark: i, Detail: fmt.Sprintf("unknown coordinate system %q", m.Coord)}
		}

		if m.Type == "" {
			return nil, &ValidationError{Mark: i, Detail: "mark type is required"}
		}
		allowed, ok := markChannels[m.Type]
		if !ok {
			return nil, &ValidationError{Mark: i, Detail: fmt.Sprintf("unknown mark type %q", m.Type)}
		}

		for _, c := range channelOrder {
			if _, bound := m.Channels[c]; bound && !allowed[c] {
				return nil, &ValidationError{Mark: i, Detail: fmt.Sprintf("channel %q not recognized for mark type %q", c, m.Type)}
			}
		}
		for c := range m.Channels {
			if !allowed[c] {
				return nil, &ValidationError{Mark: i, Detail: fmt.Sprintf("channel %q not recognized for mark type %q", c, m.Type)}
			}
		}

		if m.Stack == "" {
			m.Stack = StackNone
		}
		if !knownStacks[m.Stack] {
			return nil, &ValidationError{Mark: i, Detail: fmt.Sprintf("unknown stack mode %q", m.Stack)}
		}

		normalized = append(normalized, m)
	}

	return &Spec{marks: normalized}, nil
}

// Parse builds a Spec from its JSON wire form {"marks": [...]}.
func Parse(data []byte) (*Spec, error) {
	var raw struct {
		Marks []Mark `json:"marks"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return Build(raw.Marks)
}

// Marks returns a copy of the normalized mark descriptors.
func (s *Spec) Marks() []Mark {
	out := make([]Mark, 0, len(s.marks))
	for _, m := range s.marks {
		out = append(out, m.clone())
	}
	return out
}

// Len returns the number of marks.
func (s *Spec) Len() int {
	return len(s.marks)
}

// MarshalJSON emits the wire form {"marks": [...]}.
func (s *Spec) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{"marks": s.marks})
}
