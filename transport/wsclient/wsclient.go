// Package wsclient implements the sync transport over a WebSocket
// connection to the remote renderer. Batches are written as JSON text
// messages. The connection is dialed lazily on first send and redialed
// with exponential backoff after failures; delivery itself is
// fire-and-forget (at-most-once).
package wsclient

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	dserrors "github.com/c360/dashsync/errors"
	"github.com/c360/dashsync/pkg/retry"
	"github.com/c360/dashsync/transport"
)

// Config holds configuration for the WebSocket transport.
type Config struct {
	URL              string        // Renderer endpoint, e.g. ws://localhost:10101/sync
	HandshakeTimeout time.Duration // Dial handshake timeout
	WriteTimeout     time.Duration // Per-message write deadline
	Retry            retry.Config  // Backoff policy for dialing
	Logger           *slog.Logger
}

// DefaultConfig returns sensible defaults for Client construction.
func DefaultConfig(url string) Config {
	return Config{
		URL:              url,
		HandshakeTimeout: 5 * time.Second,
		WriteTimeout:     10 * time.Second,
		Retry:            retry.Quick(),
	}
}

// Client is a Transport that pushes batches to a single renderer endpoint.
type Client struct {
	cfg    Config
	logger *slog.Logger

	mu     sync.Mutex
	conn   *websocket.Conn
	closed bool
}

// New creates a Client. No connection is made until the first Send.
func New(cfg Config) (*Client, error) {
	if cfg.URL == "" {
		return nil, dserrors.WrapInvalid(dserrors.ErrMissingConfig, "wsclient", "New", "renderer URL required")
	}
	if cfg.HandshakeTimeout <= 0 {
		cfg.HandshakeTimeout = 5 * time.Second
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = 10 * time.Second
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{cfg: cfg, logger: logger.With("transport", "websocket")}, nil
}

// Send marshals the batch and writes it as one text message. A write
// failure tears down the connection so the next Send redials.
func (c *Client) Send(ctx context.Context, batch transport.Batch) error {
	data, err := batch.MarshalForWire()
	if err != nil {
		return &transport.Error{Op: "send", Err: retry.NonRetryable(err)}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return &transport.Error{Op: "send", Err: dserrors.ErrTransportClosed}
	}

	if err := c.ensureConn(ctx); err != nil {
		return &transport.Error{Op: "dial", Err: err}
	}

	deadline := time.Now().Add(c.cfg.WriteTimeout)
	if err := c.conn.SetWriteDeadline(deadline); err == nil {
		err = c.conn.WriteMessage(websocket.TextMessage, data)
		if err == nil {
			c.logger.Debug("batch sent",
				"page", batch.Page, "cards", len(batch.Cards), "bytes", len(data))
			return nil
		}
	}

	// Drop the broken connection; the next Send redials.
	c.teardown()
	return &transport.Error{Op: "send", Err: dserrors.ErrConnectionLost}
}

// ensureConn dials the renderer if no live connection exists.
// Caller holds c.mu.
func (c *Client) ensureConn(ctx context.Context) error {
	if c.conn != nil {
		return nil
	}
	dialer := websocket.Dialer{HandshakeTimeout: c.cfg.HandshakeTimeout}
	conn, err := retry.DoWithResult(ctx, c.cfg.Retry, func() (*websocket.Conn, error) {
		conn, _, err := dialer.DialContext(ctx, c.cfg.URL, nil)
		return conn, err
	})
	if err != nil {
		return err
	}
	c.conn = conn
	c.logger.Info("connected to renderer", "url", c.cfg.URL)
	return nil
}

func (c *Client) teardown() {
	if c.conn != nil {
		_ = c.conn.Close()
		c.conn = nil
	}
}

// Close sends a close frame if connected and releases the connection.
// The client cannot be reused afterwards.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	if c.conn != nil {
		deadline := time.Now().Add(time.Second)
		_ = c.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)
		err := c.conn.Close()
		c.conn = nil
		if err != nil {
			return &transport.Error{Op: "close", Err: err}
		}
	}
	return nil
}
