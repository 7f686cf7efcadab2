package capture

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dserrors "github.com/c360/dashsync/errors"
	"github.com/c360/dashsync/transport"
)

func TestCapture_RecordsBatches(t *testing.T) {
	c := New()

	_, ok := c.Last()
	assert.False(t, ok)

	require.NoError(t, c.Send(context.Background(), transport.Batch{ID: "1", Page: "/a"}))
	require.NoError(t, c.Send(context.Background(), transport.Batch{ID: "2", Page: "/b"}))

	batches := c.Batches()
	require.Len(t, batches, 2)
	assert.Equal(t, "1", batches[0].ID)

	last, ok := c.Last()
	require.True(t, ok)
	assert.Equal(t, "/b", last.Page)

	c.Reset()
	assert.Empty(t, c.Batches())
}

func TestCapture_SendAfterClose(t *testing.T) {
	c := New()
	require.NoError(t, c.Close())
	require.NoError(t, c.Close()) // idempotent

	err := c.Send(context.Background(), transport.Batch{ID: "1"})
	assert.ErrorIs(t, err, dserrors.ErrTransportClosed)

	var terr *transport.Error
	assert.ErrorAs(t, err, &terr)
}
