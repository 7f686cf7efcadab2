package page

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"

	dserrors "github.com/c360/dashsync/errors"
	"github.com/c360/dashsync/metric"
	"github.com/c360/dashsync/plot"
	"github.com/c360/dashsync/transport"
)

// Page is an ordered mapping of card name to card, with dirty tracking
// and batched synchronization. It is not safe for concurrent use: at most
// one goroutine drives a page between Sync calls. Distinct pages are
// independent.
type Page struct {
	route   string
	tr      transport.Transport
	logger  *slog.Logger
	metrics *metric.Metrics

	cards map[string]*Card
	order []string
	dirty map[string]bool
}

// NewPage creates a standalone page. Most callers obtain pages through a
// Registry instead. logger and metrics may be nil.
func NewPage(route string, tr transport.Transport, logger *slog.Logger, metrics *metric.Metrics) *Page {
	if logger == nil {
		logger = slog.Default()
	}
	return &Page{
		route:   route,
		tr:      tr,
		logger:  logger.With("page", route),
		metrics: metrics,
		cards:   make(map[string]*Card),
		dirty:   make(map[string]bool),
	}
}

// Route returns the page's address.
func (p *Page) Route() string { return p.route }

// Len returns the number of cards on the page.
func (p *Page) Len() int { return len(p.cards) }

// CardNames returns card names in insertion order.
func (p *Page) CardNames() []string {
	return append([]string(nil), p.order...)
}

// Card returns the named card.
func (p *Page) Card(name string) (*Card, bool) {
	c, ok := p.cards[name]
	return c, ok
}

// DirtyCards returns the names of cards changed since the last sync, in
// insertion order.
func (p *Page) DirtyCards() []string {
	var names []string
	for _, name := range p.order {
		if p.dirty[name] {
			names = append(names, name)
		}
	}
	return names
}

// Add constructs a card from def and inserts it under name, returning the
// live handle for further mutation. An existing card under the same name
// is replaced (it keeps its position in sync order) and the binding is
// marked dirty. Fails only if the definition is invalid.
func (p *Page) Add(name string, def CardDef) (*Card, error) {
	c, err := NewCard(def)
	if err != nil {
		return nil, err
	}
	p.insert(name, c)
	return c, nil
}

// AddCard inserts a previously constructed, unattached card under name.
// Dirtiness the card recorded while unattached carries over (the insert
// marks it dirty regardless).
func (p *Page) AddCard(name string, c *Card) (*Card, error) {
	if c.page != nil {
		return nil, dserrors.WrapInvalid(
			fmt.Errorf("card already attached to page %q", c.page.route),
			"Page", "AddCard", "attach")
	}
	p.insert(name, c)
	return c, nil
}

func (p *Page) insert(name string, c *Card) {
	if old, exists := p.cards[name]; exists {
		old.detach()
	} else {
		p.order = append(p.order, name)
	}
	c.page = p
	c.name = name
	c.dirtyLocal = false
	p.cards[name] = c
	p.dirty[name] = true
	p.updateCardGauge()
}

// Remove deletes the named card. Removing an absent name is a no-op.
func (p *Page) Remove(name string) {
	c, exists := p.cards[name]
	if !exists {
		return
	}
	c.detach()
	delete(p.cards, name)
	delete(p.dirty, name)
	if i := slices.Index(p.order, name); i >= 0 {
		p.order = slices.Delete(p.order, i, i+1)
	}
	p.updateCardGauge()
}

// Sync transmits the state of every dirty card to the renderer and clears
// the dirty set for everything that was delivered.
//
// Cards whose spec fails to resolve against their table's current schema
// are skipped and stay dirty; the rest of the batch is still sent, and the
// failures are reported in the returned error. Cards with no bound table
// stay dirty silently until one is attached. A transport failure leaves
// every card dirty. With no dirty cards Sync returns immediately without
// transmitting.
func (p *Page) Sync(ctx context.Context) error {
	if len(p.dirty) == 0 {
		p.logger.Debug("sync skipped, no dirty cards")
		return nil
	}

	start := time.Now()
	var (
		records []transport.CardRecord
		synced  []string
		errs    []error
	)

	for _, name := range p.order {
		if !p.dirty[name] {
			continue
		}
		c := p.cards[name]

		if c.tbl == nil {
			p.logger.Debug("card has no table yet, staying dirty", "card", name)
			continue
		}

		resolved, err := plot.Resolve(c.spec, c.tbl.Schema())
		if err != nil {
			p.countError(metric.ErrorKindResolve)
			p.logger.Warn("card failed to resolve, staying dirty", "card", name, "error", err)
			errs = append(errs, fmt.Errorf("card %q: %w", name, err))
			continue
		}
		resolved.OrderStacks(c.tbl)

		records = append(records, transport.CardRecord{
			Name:   name,
			Layout: c.layout,
			Title:  c.title,
			Spec:   resolved,
			Schema: c.tbl.Schema(),
			Rows:   c.tbl.Rows(),
		})
		synced = append(synced, name)
	}

	if len(records) == 0 {
		return errors.Join(errs...)
	}

	batch := transport.Batch{
		ID:    uuid.NewString(),
		Page:  p.route,
		Cards: records,
	}

	if err := p.tr.Send(ctx, batch); err != nil {
		p.countError(metric.ErrorKindTransport)
		if p.metrics != nil {
			p.metrics.SyncsTotal.WithLabelValues(p.route, metric.SyncStatusFailed).Inc()
		}
		p.logger.Error("batch delivery failed, cards stay dirty",
			"batch", batch.ID, "cards", len(records), "error", err)
		errs = append(errs, dserrors.WrapTransient(err, "Page", "Sync", "batch delivery"))
		return errors.Join(errs...)
	}

	for _, name := range synced {
		delete(p.dirty, name)
	}

	status := metric.SyncStatusOK
	if len(errs) > 0 {
		status = metric.SyncStatusPartial
	}
	if p.metrics != nil {
		p.metrics.ObserveSync(p.route, status, len(records), time.Since(start))
		if data, err := batch.MarshalForWire(); err == nil {
			p.metrics.BytesSent.WithLabelValues(p.route).Add(float64(len(data)))
		}
	}
	p.logger.Info("page synced",
		"batch", batch.ID, "cards", len(records), "failed", len(errs),
		"elapsed", time.Since(start))

	return errors.Join(errs...)
}

func (p *Page) updateCardGauge() {
	if p.metrics != nil {
		p.metrics.CardsActive.WithLabelValues(p.route).Set(float64(len(p.cards)))
	}
}

func (p *Page) countError(kind string) {
	if p.metrics != nil {
		p.metrics.SyncErrors.WithLabelValues(p.route, kind).Inc()
	}
}
