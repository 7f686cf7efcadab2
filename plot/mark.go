package plot

import (
	"encoding/json"
	"fmt"
)

// Coord selects the geometric projection marks are rendered under.
type Coord string

const (
	CoordCartesian Coord = "cartesian"
	CoordPolar     Coord = "polar"
	CoordTheta     Coord = "theta"
)

// MarkType is the visual primitive a descriptor renders.
type MarkType string

const (
	MarkPoint    MarkType = "point"
	MarkLine     MarkType = "line"
	MarkInterval MarkType = "interval"
	MarkArea     MarkType = "area"
	MarkPath     MarkType = "path"
)

// Channel is a named visual attribute a mark binds to data or a constant.
type Channel string

const (
	ChannelX     Channel = "x"
	ChannelY     Channel = "y"
	ChannelX0    Channel = "x0"
	ChannelX1    Channel = "x1"
	ChannelY0    Channel = "y0"
	ChannelY1    Channel = "y1"
	ChannelColor Channel = "color"
	ChannelSize  Channel = "size"
	ChannelShape Channel = "shape"
	ChannelLabel Channel = "label"
)

// StackMode controls whether series sharing a group key are laid
// contiguously along the stacked axis.
type StackMode string

const (
	StackNone StackMode = "none"
	StackAuto StackMode = "auto"
)

// Channels maps channel names to their bound values.
type Channels map[Channel]Value

// channelOrder is the canonical traversal order for channels. Resolution
// errors are reported in this order so messages are reproducible.
var channelOrder = []Channel{
	ChannelX, ChannelY,
	ChannelX0, ChannelX1, ChannelY0, ChannelY1,
	ChannelColor, ChannelSize, ChannelShape, ChannelLabel,
}

// markChannels lists the channels each mark type recognizes.
var markChannels = map[MarkType]map[Channel]bool{
	MarkPoint:    channelSet(ChannelX, ChannelY, ChannelColor, ChannelSize, ChannelShape, ChannelLabel),
	MarkLine:     channelSet(ChannelX, ChannelY, ChannelColor, ChannelSize, ChannelLabel),
	MarkPath:     channelSet(ChannelX, ChannelY, ChannelColor, ChannelSize, ChannelLabel),
	MarkArea:     channelSet(ChannelX, ChannelY, ChannelX0, ChannelY0, ChannelColor, ChannelLabel),
	MarkInterval: channelSet(ChannelX, ChannelY, ChannelX0, ChannelX1, ChannelY0, ChannelY1, ChannelColor, ChannelLabel),
}

var knownCoords = map[Coord]bool{
	CoordCartesian: true,
	CoordPolar:     true,
	CoordTheta:     true,
}

var knownStacks = map[StackMode]bool{
	StackNone: true,
	StackAuto: true,
}

func channelSet(cs ...Channel) map[Channel]bool {
	set := make(map[Channel]bool, len(cs))
	for _, c := range cs {
		set[c] = true
	}
	return set
}

// Bound is a convenience for the optional axis bound fields.
func Bound(v float64) *float64 {
	return &v
}

// Mark describes one visual layer of a plot: the primitive to draw, the
// coordinate system to project it under, its channel bindings, optional
// axis bounds, and the stacking mode.
type Mark struct {
	Coord    Coord
	Type     MarkType
	Channels Channels
	XMin     *float64
	XMax     *float64
	YMin     *float64
	YMax     *float64
	Stack    StackMode
}

// MarshalJSON flattens the mark into the renderer wire shape: channels
// appear as top-level keys and field references keep their sigil.
func (m Mark) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.wireMap())
}

func (m Mark) wireMap() map[string]any {
	out := make(map[string]any, len(m.Channels)+7)
	if m.Coord != "" {
		out["coord"] = m.Coord
	}
	out["type"] = m.Type
	for c, v := range m.Channels {
		out[string(c)] = v
	}
	putBound(out, "x_min", m.XMin)
	putBound(out, "x_max", m.XMax)
	putBound(out, "y_min", m.YMin)
	putBound(out, "y_max", m.YMax)
	if m.Stack != "" && m.Stack != StackNone {
		out["stack"] = m.Stack
	}
	return out
}

func putBound(out map[string]any, key string, v *float64) {
	if v != nil {
		out[key] = *v
	}
}

// UnmarshalJSON parses the flat wire shape. Unknown keys are collected as
// channels and left for Build to validate; axis bounds must be numeric.
func (m *Mark) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*m = Mark{}
	for key, val := range raw {
		switch key {
		case "coord":
			if err := json.Unmarshal(val, &m.Coord); err != nil {
				return &ValidationError{Mark: -1, Detail: "coord must be a string"}
			}
		case "type":
			if err := json.Unmarshal(val, &m.Type); err != nil {
				return &ValidationError{Mark: -1, Detail: "type must be a string"}
			}
		case "stack":
			if err := json.Unmarshal(val, &m.Stack); err != nil {
				return &ValidationError{Mark: -1, Detail: "stack must be a string"}
			}
		case "x_min":
			if err := readBound(val, &m.XMin); err != nil {
				return &ValidationError{Mark: -1, Detail: "axis bound x_min must be numeric"}
			}
		case "x_max":
			if err := readBound(val, &m.XMax); err != nil {
				return &ValidationError{Mark: -1, Detail: "axis bound x_max must be numeric"}
			}
		case "y_min":
			if err := readBound(val, &m.YMin); err != nil {
				return &ValidationError{Mark: -1, Detail: "axis bound y_min must be numeric"}
			}
		case "y_max":
			if err := readBound(val, &m.YMax); err != nil {
				return &ValidationError{Mark: -1, Detail: "axis bound y_max must be numeric"}
			}
		default:
			var v Value
			if err := v.UnmarshalJSON(val); err != nil {
				return fmt.Errorf("channel %q: %w", key, err)
			}
			if m.Channels == nil {
				m.Channels = Channels{}
			}
			m.Channels[Channel(key)] = v
		}
	}
	return nil
}

func readBound(data json.RawMessage, dst **float64) error {
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*dst = &f
	return nil
}

func (m Mark) clone() Mark {
	out := m
	out.Channels = make(Channels, len(m.Channels))
	for c, v := range m.Channels {
		out.Channels[c] = v
	}
	return out
}
