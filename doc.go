// Package dashsync provides a declarative plot specification model and a
// page synchronization protocol for driving remote dashboard renderers.
//
// # Architecture
//
// The module has two collaborating halves:
//
// Data model (what a visualization is):
//   - table: columnar data buffers with a fixed schema and replaceable rows
//   - plot: the mark/coordinate/channel grammar that maps table fields to
//     visual marks, including stacking and axis bounds
//
// Synchronization (how a renderer learns about it):
//   - page: named cards on addressable pages, dirty tracking, and the
//     batched sync operation
//   - transport: the wire payload and pluggable delivery (WebSocket, NATS,
//     in-memory capture)
//
//	┌─────────┐  add/remove   ┌────────┐  Sync()   ┌───────────┐
//	│ Registry ├──────────────►│  Page  ├──────────►│ Transport │
//	└─────────┘               └───┬────┘           └───────────┘
//	                              │ owns
//	                        ┌─────┴─────┐
//	                        │   Card    │
//	                        │ plot.Spec │
//	                        │ table.Table│
//	                        └───────────┘
//
// A caller builds a Table, describes the plot with plot.Build, wraps both in
// a Card via Page.Add, replaces the Card's data as new values arrive, and
// calls Page.Sync to push the changed cards to the renderer. Sync transmits
// only dirty cards, isolates per-card resolution failures, and clears the
// dirty set for everything that reached the transport.
//
// # Infrastructure packages
//
//   - errors: error classification and wrapping conventions
//   - metric: Prometheus metrics and the metrics HTTP server
//   - config: YAML configuration for embedding processes
//   - pkg/retry: exponential backoff used by the transports
//   - synth: synthetic series generators for demos and tests
//
// # Usage
//
//	site := page.NewRegistry(tr, nil, nil)
//	defer site.Close()
//
//	pg := site.Page("/demo")
//	tbl, _ := table.New([]string{"product", "price"}, 24)
//	spec, _ := plot.Build([]plot.Mark{{
//	    Coord:    plot.CoordPolar,
//	    Type:     plot.MarkInterval,
//	    Channels: plot.Channels{plot.ChannelX: plot.FieldRef("product"), plot.ChannelY: plot.FieldRef("price")},
//	    YMin:     plot.Bound(0),
//	}})
//	card, _ := pg.Add("example", page.CardDef{
//	    Layout: "1 1 4 5",
//	    Title:  "Interval, polar",
//	    Spec:   spec,
//	    Data:   tbl,
//	})
//	_ = card.SetData(rows)
//	_ = pg.Sync(ctx)
//
// # Design principles
//
// Explicit ownership: a Card exclusively owns its Table and Spec; Pages own
// their Cards; the Registry owns its Pages. Nothing is shared across cards.
//
// Single mutator per page: a Page assumes one goroutine drives it between
// Sync calls; distinct Pages are independent and may be mutated and synced
// in parallel.
//
// Transport-agnostic core: Page.Sync makes exactly one delivery attempt per
// batch. Retry policy, if any, belongs to the transport implementation.
package dashsync
