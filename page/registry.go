package page

import (
	"log/slog"
	"sort"
	"sync"

	"github.com/c360/dashsync/metric"
	"github.com/c360/dashsync/transport"
)

// Registry is the process-wide table of pages, keyed by a route-like
// address. It replaces the implicit module-level singleton of older
// dashboard libraries with an explicit object: created once at process
// start, torn down by Close at shutdown. The registry is safe for
// concurrent use; the pages it hands out are not (see Page).
type Registry struct {
	mu      sync.Mutex
	tr      transport.Transport
	logger  *slog.Logger
	metrics *metric.Metrics
	pages   map[string]*Page
	closed  bool
}

// NewRegistry creates a registry whose pages deliver through tr. The
// registry does not own the transport; the caller closes it separately.
// logger and metrics may be nil.
func NewRegistry(tr transport.Transport, logger *slog.Logger, metrics *metric.Metrics) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		tr:      tr,
		logger:  logger,
		metrics: metrics,
		pages:   make(map[string]*Page),
	}
}

// Page returns the page at route, creating it if absent. Lookup is
// idempotent: the same route yields the same page until it is dropped.
func (r *Registry) Page(route string) *Page {
	r.mu.Lock()
	defer r.mu.Unlock()

	if p, ok := r.pages[route]; ok {
		return p
	}

	p := NewPage(route, r.tr, r.logger, r.metrics)
	if r.closed {
		// A closed registry hands out detached pages rather than nil so
		// straggling callers fail at the transport, not with a panic.
		r.logger.Warn("page requested on closed registry", "route", route)
		return p
	}

	r.pages[route] = p
	if r.metrics != nil {
		r.metrics.PagesActive.Set(float64(len(r.pages)))
	}
	r.logger.Debug("page created", "route", route)
	return p
}

// Drop removes the page at route and all its cards. Dropping an absent
// route is a no-op.
func (r *Registry) Drop(route string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.pages[route]
	if !ok {
		return
	}
	for _, name := range p.CardNames() {
		p.Remove(name)
	}
	delete(r.pages, route)
	if r.metrics != nil {
		r.metrics.PagesActive.Set(float64(len(r.pages)))
	}
	r.logger.Debug("page dropped", "route", route)
}

// Routes returns the registered routes in sorted order.
func (r *Registry) Routes() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	routes := make([]string, 0, len(r.pages))
	for route := range r.pages {
		routes = append(routes, route)
	}
	sort.Strings(routes)
	return routes
}

// Close drops every page and marks the registry closed. It does not close
// the transport.
func (r *Registry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return
	}
	r.closed = true
	for route, p := range r.pages {
		for _, name := range p.CardNames() {
			p.Remove(name)
		}
		delete(r.pages, route)
	}
	if r.metrics != nil {
		r.metrics.PagesActive.Set(0)
	}
	r.logger.Debug("registry closed")
}
