// Package natspub implements the sync transport over NATS publish.
// Each page route maps to one subject under a configurable prefix
// ("/sales/q3" becomes "dashsync.page.sales.q3"), so renderers subscribe
// to the pages they display with ordinary subject wildcards.
package natspub

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/nats-io/nats.go"

	dserrors "github.com/c360/dashsync/errors"
	"github.com/c360/dashsync/pkg/retry"
	"github.com/c360/dashsync/transport"
)

// DefaultSubjectPrefix is prepended to every page subject.
const DefaultSubjectPrefix = "dashsync.page"

// Config holds configuration for the NATS transport.
type Config struct {
	URL           string        // NATS server URL, e.g. nats://localhost:4222
	SubjectPrefix string        // Subject prefix, DefaultSubjectPrefix when empty
	ClientName    string        // Connection name reported to the server
	MaxReconnects int           // -1 for infinite
	ReconnectWait time.Duration // Wait between reconnect attempts
	Retry         retry.Config  // Backoff policy for the initial connect
	Logger        *slog.Logger
}

// DefaultConfig returns sensible defaults for Publisher construction.
func DefaultConfig(url string) Config {
	return Config{
		URL:           url,
		SubjectPrefix: DefaultSubjectPrefix,
		ClientName:    "dashsync",
		MaxReconnects: -1,
		ReconnectWait: 2 * time.Second,
		Retry:         retry.Quick(),
	}
}

// Publisher is a Transport that publishes JSON batches to per-page
// subjects. Reconnects after the initial connect are handled by the NATS
// client itself.
type Publisher struct {
	cfg    Config
	logger *slog.Logger

	mu     sync.Mutex
	conn   *nats.Conn
	closed bool
}

// New creates a Publisher. The server is dialed lazily on first Send.
func New(cfg Config) (*Publisher, error) {
	if cfg.URL == "" {
		return nil, dserrors.WrapInvalid(dserrors.ErrMissingConfig, "natspub", "New", "NATS URL required")
	}
	if cfg.SubjectPrefix == "" {
		cfg.SubjectPrefix = DefaultSubjectPrefix
	}
	if cfg.ReconnectWait <= 0 {
		cfg.ReconnectWait = 2 * time.Second
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Publisher{cfg: cfg, logger: logger.With("transport", "nats")}, nil
}

// Subject returns the subject a page route publishes to.
func (p *Publisher) Subject(route string) string {
	route = strings.Trim(route, "/")
	if route == "" {
		route = "_root"
	}
	route = strings.ReplaceAll(route, "/", ".")
	route = strings.ReplaceAll(route, " ", "_")
	return p.cfg.SubjectPrefix + "." + route
}

// Send publishes the batch to the page's subject and flushes.
func (p *Publisher) Send(ctx context.Context, batch transport.Batch) error {
	data, err := batch.MarshalForWire()
	if err != nil {
		return &transport.Error{Op: "send", Err: retry.NonRetryable(err)}
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return &transport.Error{Op: "send", Err: dserrors.ErrTransportClosed}
	}
	if err := p.ensureConn(ctx); err != nil {
		return &transport.Error{Op: "dial", Err: err}
	}

	subject := p.Subject(batch.Page)
	if err := p.conn.Publish(subject, data); err != nil {
		return &transport.Error{Op: "send", Err: err}
	}
	if err := p.conn.FlushTimeout(5 * time.Second); err != nil {
		return &transport.Error{Op: "send", Err: err}
	}

	p.logger.Debug("batch published", "subject", subject, "cards", len(batch.Cards), "bytes", len(data))
	return nil
}

// ensureConn connects to the server if needed. Caller holds p.mu.
func (p *Publisher) ensureConn(ctx context.Context) error {
	if p.conn != nil && p.conn.IsConnected() {
		return nil
	}

	opts := []nats.Option{
		nats.Name(p.cfg.ClientName),
		nats.MaxReconnects(p.cfg.MaxReconnects),
		nats.ReconnectWait(p.cfg.ReconnectWait),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				p.logger.Warn("NATS disconnected", "error", err)
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			p.logger.Info("NATS reconnected", "url", nc.ConnectedUrl())
		}),
	}

	conn, err := retry.DoWithResult(ctx, p.cfg.Retry, func() (*nats.Conn, error) {
		return nats.Connect(p.cfg.URL, opts...)
	})
	if err != nil {
		return err
	}
	p.conn = conn
	p.logger.Info("connected to NATS", "url", p.cfg.URL)
	return nil
}

// Close drains the connection so queued publishes are delivered.
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	if p.conn != nil {
		err := p.conn.Drain()
		p.conn = nil
		if err != nil {
			return &transport.Error{Op: "close", Err: err}
		}
	}
	return nil
}
