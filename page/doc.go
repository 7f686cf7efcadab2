// Package page implements named visualization cards, the pages that hold
// them, and the batched synchronization that keeps a remote renderer
// current.
//
// A Card binds exactly one table.Table and one plot.Spec under a name
// that is unique within its Page. Mutating the card's data marks it
// dirty; Page.Sync resolves every dirty card's spec against its table,
// serializes the still-valid ones into a single batch, and hands the
// batch to the configured transport. Resolution failures are isolated
// per card: a malformed card stays dirty and is reported, while the rest
// of the batch still reaches the renderer. A sync with no dirty cards
// transmits nothing.
//
// Pages live in a Registry keyed by a route-like address ("/demo");
// lookup is idempotent get-or-create. Each page assumes a single mutator
// goroutine between Sync calls. Distinct pages are independent and may
// be driven in parallel.
package page
