// Package plot implements the declarative plot specification grammar.
//
// A specification is an ordered list of mark descriptors. Each mark names
// a coordinate system (cartesian, polar, theta), a visual primitive
// (point, line, interval, area, path), and a set of channel bindings that
// map visual attributes (x, y, color, size, shape, label) to either a
// constant or a field of the table the enclosing card is bound to.
//
// Field references use a leading "=" sigil on the wire ("=price") and are
// represented in memory as a tagged Value (Literal or FieldRef). The sigil
// form is preserved exactly in serialized output for renderer
// compatibility.
//
// Build validates and normalizes descriptors into an immutable Spec.
// Resolve checks every field reference against a concrete schema and
// yields a ResolvedSpec ready for transmission; resolution failures name
// the first unresolved field in mark-then-channel order. Marks with
// stack mode "auto" additionally carry a stacking order computed from the
// bound table: the global first-occurrence order of the series category,
// so stacked segments line up across all groups.
package plot
