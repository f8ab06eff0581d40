// Package gcguard provides the scoped protection-region interface
// spec.md §4.2 describes, adapted to a process with a real tracing
// garbage collector (Go's) standing in for the conservative-or-precise
// collector the original assumes. Go's GC already scans everything
// reachable from the stack and heap roots it is given, so Region does
// not need to (and must not try to) implement reachability itself —
// its job is purely the *intent-marking* half of the interface: every
// allocation-intensive sequence in the reader is wrapped
// in a Region so that a reader of the code (or a future port to a
// non-GC'd host) can see exactly which sequences assume their
// intermediate allocations stay live until the region ends.
package gcguard

// Region is a scoped protection region: values constructed while it is
// open, and values reachable through identifiers captured by Protect,
// are guaranteed live until the region ends. Under Go's collector this
// guarantee is automatic (anything referenced from a live local or
// closure stays reachable); Region exists so evaluator/reader code
// reads the same way it would against a conservative GC that needed
// explicit root registration.
type Region struct {
	protected []any
}

// Open begins a new region. Pair with a deferred Close:
//
//	r := gcguard.Open()
//	defer r.Close()
func Open() *Region {
	return &Region{}
}

// Protect registers v as a root for the lifetime of the region. Under
// Go's GC this is a no-op beyond retaining a reference (which keeps v
// alive regardless), but it documents, at the call site, exactly which
// values the surrounding code depends on staying reachable.
func (r *Region) Protect(v ...any) {
	r.protected = append(r.protected, v...)
}

// Close ends the region. Values protected only by this region become
// collectible again once Close returns and no other root references
// them.
func (r *Region) Close() {
	r.protected = nil
}
