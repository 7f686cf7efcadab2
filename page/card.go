package page

import (
	"errors"
	"fmt"

	"github.com/c360/dashsync/plot"
	"github.com/c360/dashsync/table"
)

// ErrUnboundTable is returned by data mutations on a card that has no
// table attached yet.
var ErrUnboundTable = errors.New("card has no bound table")

// CardDef describes a card to be created: its placement (opaque to this
// layer, passed through to the renderer untouched), title, plot
// specification, and optionally its initial table.
type CardDef struct {
	Layout string
	Title  string
	Spec   *plot.Spec
	Data   *table.Table
}

// Card is a named visualization unit: one plot spec bound to one table.
// A card exclusively owns both; neither is shared across cards.
type Card struct {
	name   string
	layout string
	title  string
	spec   *plot.Spec
	tbl    *table.Table

	page       *Page
	dirtyLocal bool // dirtiness recorded before attachment to a page
}

// NewCard constructs an unattached card from a definition. Fails with a
// plot.ValidationError if the definition has no plot specification.
func NewCard(def CardDef) (*Card, error) {
	if def.Spec == nil {
		return nil, &plot.ValidationError{Mark: -1, Detail: "card requires a plot specification"}
	}
	c := &Card{
		layout: def.Layout,
		title:  def.Title,
		spec:   def.Spec,
	}
	if def.Data != nil {
		c.bind(def.Data)
	}
	return c, nil
}

// Name returns the card's name within its page, empty while unattached.
func (c *Card) Name() string { return c.name }

// Title returns the card's title.
func (c *Card) Title() string { return c.title }

// Layout returns the opaque placement descriptor.
func (c *Card) Layout() string { return c.layout }

// Spec returns the card's plot specification.
func (c *Card) Spec() *plot.Spec { return c.spec }

// Table returns the bound table, nil if none is attached.
func (c *Card) Table() *table.Table { return c.tbl }

// SetData replaces the bound table's content wholesale. Fails with
// ErrUnboundTable before a table is attached, or with the table's own
// arity errors; a failed replace leaves the data untouched and the card
// clean.
func (c *Card) SetData(rows []table.Row) error {
	if c.tbl == nil {
		return fmt.Errorf("card %q: %w", c.name, ErrUnboundTable)
	}
	return c.tbl.ReplaceRows(rows)
}

// AppendData adds rows to the bound table's content.
func (c *Card) AppendData(rows ...table.Row) error {
	if c.tbl == nil {
		return fmt.Errorf("card %q: %w", c.name, ErrUnboundTable)
	}
	return c.tbl.Append(rows...)
}

// BindTable attaches t as the card's table, replacing any previous
// binding, and marks the card dirty. A nil t detaches the table.
func (c *Card) BindTable(t *table.Table) {
	c.bind(t)
	c.markDirty()
}

func (c *Card) bind(t *table.Table) {
	if c.tbl != nil {
		c.tbl.OnMutate(nil)
	}
	c.tbl = t
	if t != nil {
		t.OnMutate(c.markDirty)
	}
}

// Dirty reports whether the card has changed since the last sync. For an
// unattached card this is its locally recorded dirtiness.
func (c *Card) Dirty() bool {
	if c.page == nil {
		return c.dirtyLocal
	}
	return c.page.dirty[c.name]
}

func (c *Card) markDirty() {
	if c.page == nil {
		c.dirtyLocal = true
		return
	}
	c.page.dirty[c.name] = true
}

// detach severs the card from its page. Local dirtiness starts clean;
// a removed card is terminal as far as its old page is concerned.
func (c *Card) detach() {
	c.page = nil
	c.name = ""
	c.dirtyLocal = false
}
