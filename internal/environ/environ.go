// Package environ implements the split lexical/global environment of
// spec.md §4.3: a lexical chain of bindings and boundary markers,
// searched most-recent-first, and a separate process-wide global
// list. It is adapted from the teacher's
// internal/interp/runtime/environment.go, replacing that type's
// single case-insensitive nested-scope chain with the boundary-marker
// discipline the spec requires — bind(..., local=true) performed
// inside a subexpression must not leak into a sibling subexpression at
// the same call site.
//
// Env is deliberately a small immutable value (two pointers), not a
// mutated object: every operation that would "change the
// environment" returns a new Env sharing the old chain's tail nodes,
// the same persistent-list discipline the reference C implementation
// gets for free from local_env = cons(...). This is what lets the
// evaluator's call-stack frames save a lexical environment by value
// and have it stay correct even after the live environment keeps
// growing — a later PushBoundary/Bind never mutates a node a saved
// Env still points at.
package environ

import "github.com/philisp-go/philisp/internal/object"

// node is one link of the lexical chain: either a binding or a
// boundary marker (binding == nil). Nodes are never mutated after
// creation, only prepended to.
type node struct {
	binding *Binding
	next    *node
}

// Binding is a mutable (name, value) cell. Lookup returns the cell
// itself (not a copy of its value) so callers — in particular bind!
// and closures sharing captured scope — can mutate it in place. The
// Binding itself is the one piece of genuinely mutable state in the
// environment; the chain of nodes that reaches it is not.
type Binding struct {
	Name  *object.Symbol
	Value object.Value
}

// Global is the process-wide global binding list, conceptually a
// prepended sentinel cell followed by entries (spec.md: "a sequence of
// (name, value) bindings, conceptually a prepended cell followed by
// entries"). Unlike the lexical chain, the global list is genuinely
// shared mutable state — spec.md models it as process-wide — so it is
// a pointer-identity type, and closures capture a reference to it
// directly (object.Closure.GlobalEnv).
type Global struct {
	head *gnode
}

type gnode struct {
	binding *Binding
	next    *gnode
}

// NewGlobal creates an empty global list.
func NewGlobal() *Global {
	return &Global{}
}

// Lookup searches the global list for name.
func (g *Global) Lookup(name *object.Symbol) (*Binding, bool) {
	for n := g.head; n != nil; n = n.next {
		if n.binding.Name == name {
			return n.binding, true
		}
	}
	return nil, false
}

// Names lists every bound name in the global list, most recently
// bound first. Used by internal/eval's tracer to reproduce the "g:"
// line of original_source/subr.c's DEBUG_DUMP macro.
func (g *Global) Names() []string {
	var names []string
	for n := g.head; n != nil; n = n.next {
		names = append(names, n.binding.Name.Name())
	}
	return names
}

// Bind mutates an existing global binding for name, or prepends a new
// one. Always succeeds (spec.md: "a fail-soft operation that always
// succeeds").
func (g *Global) Bind(name *object.Symbol, value object.Value) *Binding {
	if b, ok := g.Lookup(name); ok {
		b.Value = value
		return b
	}
	b := &Binding{Name: name, Value: value}
	g.head = &gnode{binding: b, next: g.head}
	return b
}

// Env is the lexical chain together with the global list it falls
// back to. It is passed and returned by value throughout
// internal/eval.
type Env struct {
	top    *node
	global *Global
}

// New creates a lexical environment rooted at an empty chain, backed
// by global.
func New(global *Global) Env {
	return Env{global: global}
}

// Global returns the environment's backing global list, so callers
// (the evaluator building a Closure) can capture it directly.
func (e Env) Global() *Global { return e.global }

// LexicalNames lists the bound names visible in e's lexical chain,
// most recent first, with "/" standing in for each boundary marker.
// Used by internal/eval's tracer to reproduce the "l:" line of
// original_source/subr.c's DEBUG_DUMP macro.
func (e Env) LexicalNames() []string {
	var names []string
	for n := e.top; n != nil; n = n.next {
		if n.binding == nil {
			names = append(names, "/")
			continue
		}
		names = append(names, n.binding.Name.Name())
	}
	return names
}

// PushBoundary returns an environment with a boundary marker prepended,
// walling off bindings made after this point from a subsequent
// local_only lookup. The evaluator calls this before evaluating each
// subexpression (spec.md §4.3/§4.8).
func (e Env) PushBoundary() Env {
	return Env{top: &node{next: e.top}, global: e.global}
}

// Lookup walks the lexical chain from most-recent to oldest. If
// localOnly and a boundary is hit before a match, the search stops
// and reports not-found without falling through to outer scopes or
// the global list. Otherwise, on reaching the end of the chain, the
// global list is consulted.
func (e Env) Lookup(name *object.Symbol, localOnly bool) (*Binding, bool) {
	for n := e.top; n != nil; n = n.next {
		if n.binding == nil { // boundary marker
			if localOnly {
				return nil, false
			}
			continue
		}
		if n.binding.Name == name {
			return n.binding, true
		}
	}
	if localOnly {
		return nil, false
	}
	return e.global.Lookup(name)
}

// Bind mutates a matching binding if one is visible under the
// appropriate rule, or creates a new one: at the head of the lexical
// chain when local (returning the extended Env), or of the global
// list otherwise (returning e unchanged, since the global list is
// shared mutable state reached through the same pointer). Always
// succeeds.
func (e Env) Bind(name *object.Symbol, value object.Value, local bool) (Env, *Binding) {
	if b, ok := e.Lookup(name, local); ok {
		b.Value = value
		return e, b
	}
	if local {
		b := &Binding{Name: name, Value: value}
		return Env{top: &node{binding: b, next: e.top}, global: e.global}, b
	}
	return e, e.global.Bind(name, value)
}

// BindLocal always creates a fresh local binding at the head of the
// lexical chain without first searching for an existing one, so the
// new binding shadows any outer binding of the same name. (APPLY binds
// formals with Bind(..., true), which does search first.)
func (e Env) BindLocal(name *object.Symbol, value object.Value) Env {
	return Env{top: &node{binding: &Binding{Name: name, Value: value}, next: e.top}, global: e.global}
}
