// Package capture provides an in-memory Transport that records batches.
// It backs tests and local dry runs where no renderer is available.
package capture

import (
	"context"
	"sync"

	dserrors "github.com/c360/dashsync/errors"
	"github.com/c360/dashsync/transport"
)

// Capture records every batch it is asked to deliver.
type Capture struct {
	mu      sync.Mutex
	batches []transport.Batch
	closed  bool
}

// New returns an empty capture transport.
func New() *Capture {
	return &Capture{}
}

// Send records the batch. Fails once the transport has been closed.
func (c *Capture) Send(_ context.Context, batch transport.Batch) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return &transport.Error{Op: "send", Err: dserrors.ErrTransportClosed}
	}
	c.batches = append(c.batches, batch)
	return nil
}

// Close marks the transport closed. Idempotent.
func (c *Capture) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

// Batches returns a copy of everything recorded so far.
func (c *Capture) Batches() []transport.Batch {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]transport.Batch(nil), c.batches...)
}

// Last returns the most recent batch, or false if nothing was recorded.
func (c *Capture) Last() (transport.Batch, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.batches) == 0 {
		return transport.Batch{}, false
	}
	return c.batches[len(c.batches)-1], true
}

// Reset discards all recorded batches.
func (c *Capture) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.batches = nil
}
