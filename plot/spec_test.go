package plot

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intervalMark() Mark {
	return Mark{
		Type: MarkInterval,
		Channels: Channels{
			ChannelX: FieldRef("product"),
			ChannelY: FieldRef("price"),
		},
	}
}

func TestBuild_NormalizesDefaults(t *testing.T) {
	spec, err := Build([]Mark{intervalMark()})
	require.NoError(t, err)

	marks := spec.Marks()
	require.Len(t, marks, 1)
	assert.Equal(t, CoordCartesian, marks[0].Coord)
	assert.Equal(t, StackNone, marks[0].Stack)
}

func TestBuild_ValidationFailures(t *testing.T) {
	tests := []struct {
		name   string
		marks  []Mark
		mark   int
		detail string
	}{
		{
			name:   "no marks",
			marks:  nil,
			mark:   -1,
			detail: "at least one mark is required",
		},
		{
			name: "unknown coordinate system",
			marks: []Mark{{
				Coord: "spherical", Type: MarkPoint,
				Channels: Channels{ChannelX: FieldRef("a")},
			}},
			mark:   0,
			detail: `unknown coordinate system "spherical"`,
		},
		{
			name:   "missing mark type",
			marks:  []Mark{{Channels: Channels{ChannelX: FieldRef("a")}}},
			mark:   0,
			detail: "mark type is required",
		},
		{
			name: "unknown mark type",
			marks: []Mark{{
				Type:     "sparkle",
				Channels: Channels{ChannelX: FieldRef("a")},
			}},
			mark:   0,
			detail: `unknown mark type "sparkle"`,
		},
		{
			name: "channel not recognized for mark type",
			marks: []Mark{{
				Type:     MarkLine,
				Channels: Channels{ChannelShape: Literal("circle")},
			}},
			mark:   0,
			detail: `channel "shape" not recognized for mark type "line"`,
		},
		{
			name: "unknown stack mode",
			marks: []Mark{
				intervalMark(),
				{
					Type:     MarkInterval,
					Channels: Channels{ChannelX: FieldRef("a")},
					Stack:    "always",
				},
			},
			mark:   1,
			detail: `unknown stack mode "always"`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			spec, err := Build(tc.marks)
			assert.Nil(t, spec)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.mark, verr.Mark)
			assert.Equal(t, tc.detail, verr.Detail)
		})
	}
}

func TestBuild_CopiesInput(t *testing.T) {
	in := []Mark{intervalMark()}
	spec, err := Build(in)
	require.NoError(t, err)

	// Mutating the caller's descriptor does not reach the spec.
	in[0].Channels[ChannelX] = FieldRef("changed")
	assert.Equal(t, "product", spec.Marks()[0].Channels[ChannelX].Field())
}

func TestSpec_MarshalJSON_WireShape(t *testing.T) {
	m := intervalMark()
	m.Coord = CoordPolar
	m.YMin = Bound(0)
	spec, err := Build([]Mark{m})
	require.NoError(t, err)

	data, err := json.Marshal(spec)
	require.NoError(t, err)

	var decoded struct {
		Marks []map[string]any `json:"marks"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded.Marks, 1)

	wire := decoded.Marks[0]
	assert.Equal(t, "polar", wire["coord"])
	assert.Equal(t, "interval", wire["type"])
	assert.Equal(t, "=product", wire["x"])
	assert.Equal(t, "=price", wire["y"])
	assert.Equal(t, 0.0, wire["y_min"])
	assert.NotContains(t, wire, "stack")
	assert.NotContains(t, wire, "y_max")
}

func TestParse_RoundTrip(t *testing.T) {
	in := `{"marks":[{"coord":"theta","type":"interval","x":"=product","y":"=price","color":"=country","stack":"auto","y_min":0}]}`

	spec, err := Parse([]byte(in))
	require.NoError(t, err)

	marks := spec.Marks()
	require.Len(t, marks, 1)
	m := marks[0]
	assert.Equal(t, CoordTheta, m.Coord)
	assert.Equal(t, MarkInterval, m.Type)
	assert.Equal(t, StackAuto, m.Stack)
	require.NotNil(t, m.YMin)
	assert.Equal(t, 0.0, *m.YMin)
	assert.True(t, m.Channels[ChannelColor].IsRef())
	assert.Equal(t, "country", m.Channels[ChannelColor].Field())
}

func TestParse_NonNumericBound(t *testing.T) {
	in := `{"marks":[{"type":"interval","x":"=a","y_min":"zero"}]}`

	spec, err := Parse([]byte(in))
	assert.Nil(t, spec)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Detail, "y_min must be numeric")
}

func TestParse_UnknownChannelRejected(t *testing.T) {
	in := `{"marks":[{"type":"point","x":"=a","glow":"=b"}]}`

	spec, err := Parse([]byte(in))
	assert.Nil(t, spec)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Detail, `channel "glow"`)
}
