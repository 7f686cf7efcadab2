package transport

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/dashsync/plot"
	"github.com/c360/dashsync/table"
)

func TestBatch_WireShape(t *testing.T) {
	spec, err := plot.Build([]plot.Mark{{
		Coord: plot.CoordPolar,
		Type:  plot.MarkInterval,
		Channels: plot.Channels{
			plot.ChannelX: plot.FieldRef("product"),
			plot.ChannelY: plot.FieldRef("price"),
		},
		YMin: plot.Bound(0),
	}})
	require.NoError(t, err)
	resolved, err := plot.Resolve(spec, []string{"product", "price"})
	require.NoError(t, err)

	batch := Batch{
		ID:   "batch-1",
		Page: "/demo",
		Cards: []CardRecord{{
			Name:   "example",
			Layout: "1 1 4 5",
			Title:  "Interval, polar",
			Spec:   resolved,
			Schema: []string{"product", "price"},
			Rows:   []table.Row{{"a", 10}, {"b", 20}},
		}},
	}

	data, err := batch.MarshalForWire()
	require.NoError(t, err)

	var wire map[string]any
	require.NoError(t, json.Unmarshal(data, &wire))
	assert.Equal(t, "batch-1", wire["id"])
	assert.Equal(t, "/demo", wire["page"])

	cards := wire["cards"].([]any)
	require.Len(t, cards, 1)
	card := cards[0].(map[string]any)
	assert.Equal(t, "example", card["name"])
	assert.Equal(t, "1 1 4 5", card["layout"])
	assert.Equal(t, "Interval, polar", card["title"])

	// Row field order matches schema order exactly.
	assert.Equal(t, []any{"product", "price"}, card["schema"])
	rows := card["rows"].([]any)
	require.Len(t, rows, 2)
	assert.Equal(t, []any{"a", 10.0}, rows[0])
	assert.Equal(t, []any{"b", 20.0}, rows[1])

	// The sigil convention survives serialization.
	specWire := card["spec"].(map[string]any)
	marks := specWire["marks"].([]any)
	require.Len(t, marks, 1)
	mark := marks[0].(map[string]any)
	assert.Equal(t, "=product", mark["x"])
	assert.Equal(t, "=price", mark["y"])
	assert.Equal(t, "polar", mark["coord"])
	assert.Equal(t, 0.0, mark["y_min"])
}

func TestError_Unwrap(t *testing.T) {
	inner := assert.AnError
	err := &Error{Op: "send", Err: inner}
	assert.ErrorIs(t, err, inner)
	assert.Contains(t, err.Error(), "transport: send")
}
