// Package transport defines the sync payload shape and the delivery
// boundary between pages and remote renderers.
//
// The core makes exactly one Send attempt per batch and never retries;
// implementations own their reconnect and retry policy. Batches are
// self-contained: each card record carries the full current table content
// and the resolved spec, with row field order matching schema order.
package transport

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/c360/dashsync/plot"
	"github.com/c360/dashsync/table"
)

// CardRecord is the serialized state of one dirty card.
type CardRecord struct {
	Name   string             `json:"name"`
	Layout string             `json:"layout"`
	Title  string             `json:"title"`
	Spec   *plot.ResolvedSpec `json:"spec"`
	Schema []string           `json:"schema"`
	Rows   []table.Row        `json:"rows"`
}

// Batch is one sync transmission: every still-dirty card of a page.
type Batch struct {
	ID    string       `json:"id"`
	Page  string       `json:"page"`
	Cards []CardRecord `json:"cards"`
}

// MarshalForWire serializes the batch to its JSON wire form.
func (b Batch) MarshalForWire() ([]byte, error) {
	return json.Marshal(b)
}

// Transport delivers batches to a remote renderer. Send blocks until the
// batch has been handed to the underlying medium or an error occurs.
// Implementations must be safe for use from multiple pages.
type Transport interface {
	Send(ctx context.Context, batch Batch) error
	Close() error
}

// Error wraps a delivery failure. The core surfaces these opaquely; it
// neither generates nor interprets them beyond classification.
type Error struct {
	Op  string // "dial", "send", "close"
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("transport: %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
