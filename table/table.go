// Package table provides columnar data buffers for visualization cards.
//
// A Table has a fixed schema (an ordered list of unique field names) and
// mutable row content. Rows are replaced wholesale between syncs; an
// optional incremental Append is offered as a convenience. Content
// mutations notify a single observer, which is how an owning card learns
// it has become dirty.
package table

import (
	"fmt"
	"strings"
)

// Row is one record whose arity must match the owning Table's schema.
type Row []any

// SchemaError reports a malformed schema at construction time.
type SchemaError struct {
	Field  string // offending field, empty for schema-level problems
	Reason string
}

func (e *SchemaError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("table: invalid schema: %s", e.Reason)
	}
	return fmt.Sprintf("table: invalid schema: field %q: %s", e.Field, e.Reason)
}

// ArityError reports a row whose length does not match the schema.
type ArityError struct {
	Row  int // index within the offending batch
	Got  int
	Want int
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("table: row %d has %d values, schema has %d fields", e.Row, e.Got, e.Want)
}

// Table is a columnar buffer with a fixed schema and replaceable rows.
// It is not safe for concurrent use; the owning card's page provides the
// single-mutator boundary.
type Table struct {
	schema  []string
	index   map[string]int
	rows    []Row
	observe func()
}

// New creates a Table with the given schema. expectedRows is a
// pre-allocation hint only, never a hard limit.
func New(schema []string, expectedRows int) (*Table, error) {
	if len(schema) == 0 {
		return nil, &SchemaError{Reason: "no fields"}
	}
	index := make(map[string]int, len(schema))
	for i, f := range schema {
		if strings.TrimSpace(f) == "" {
			return nil, &SchemaError{Field: f, Reason: "empty name"}
		}
		if _, dup := index[f]; dup {
			return nil, &SchemaError{Field: f, Reason: "duplicate name"}
		}
		index[f] = i
	}
	if expectedRows < 0 {
		expectedRows = 0
	}
	return &Table{
		schema: append([]string(nil), schema...),
		index:  index,
		rows:   make([]Row, 0, expectedRows),
	}, nil
}

// Schema returns a copy of the field names in declaration order.
func (t *Table) Schema() []string {
	return append([]string(nil), t.schema...)
}

// FieldIndex returns the position of a field within the schema.
func (t *Table) FieldIndex(name string) (int, bool) {
	i, ok := t.index[name]
	return i, ok
}

// Len returns the current row count.
func (t *Table) Len() int {
	return len(t.rows)
}

// Rows returns the current content. The returned slice is a copy; the
// rows themselves are shared and must not be mutated by the caller.
func (t *Table) Rows() []Row {
	return append([]Row(nil), t.rows...)
}

// ReplaceRows swaps the entire content of the table for rows. The whole
// batch is validated before anything is touched, so a failed replace
// leaves the previous content intact. Fires the mutation observer exactly
// once on success.
func (t *Table) ReplaceRows(rows []Row) error {
	if err := t.checkArity(rows); err != nil {
		return err
	}
	t.rows = append(t.rows[:0:0], rows...)
	t.notify()
	return nil
}

// Append adds rows to the existing content. Like ReplaceRows it validates
// the whole batch up front and fires the observer once.
func (t *Table) Append(rows ...Row) error {
	if err := t.checkArity(rows); err != nil {
		return err
	}
	t.rows = append(t.rows, rows...)
	t.notify()
	return nil
}

func (t *Table) checkArity(rows []Row) error {
	for i, r := range rows {
		if len(r) != len(t.schema) {
			return &ArityError{Row: i, Got: len(r), Want: len(t.schema)}
		}
	}
	return nil
}

// OnMutate registers the single mutation observer. The owning card uses
// this to propagate dirtiness to its page. A nil fn clears the observer.
func (t *Table) OnMutate(fn func()) {
	t.observe = fn
}

func (t *Table) notify() {
	if t.observe != nil {
		t.observe()
	}
}
