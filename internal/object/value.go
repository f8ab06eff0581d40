// Package object defines the runtime value model of the philisp
// evaluator: a tagged union of immediate and heap-allocated variants,
// dispatched with type switches rather than virtual methods, per the
// "single match at each dispatch site" design note.
package object

// Value is the single representation for every runtime datum. Nil and
// heap objects alike implement it; callers never branch on storage,
// only on variant.
type Value interface {
	// Type returns the variant's tag name, used by printer/error text
	// (e.g. "INTEGER", "SYMBOL", "PAIR").
	Type() string

	// isValue marks the sum type closed to this package: every variant
	// of the tagged union lives here, and nowhere else implements Value.
	isValue()
}

// Nil is the unique false/empty value, and the canonical empty-list
// terminator. It is the sole value that is "false" in conditionals.
type NilValue struct{}

func (NilValue) Type() string { return "NIL" }
func (NilValue) isValue()     {}

// Nil is the single shared instance of NilValue; all nils are this
// value, so identity comparison (==) on object.Value is valid for nil
// checks.
var Nil Value = NilValue{}

// IsNil reports whether v is the nil value (or a nil Go interface,
// which callers sometimes pass before normalizing to object.Nil).
func IsNil(v Value) bool {
	return v == nil || v == Nil
}

// IsTruthy reports whether v counts as true in a conditional: every
// value except nil.
func IsTruthy(v Value) bool {
	return !IsNil(v)
}

// BoolValue converts a Go bool to a truthy/falsy value: true maps to
// truthy (callers pass a fresh gensym, not a canonical bound symbol —
// see DESIGN.md), false maps to Nil. Used by predicate built-ins that
// do not have a more specific non-nil result to return.
func BoolValue(cond bool, truthy Value) Value {
	if cond {
		return truthy
	}
	return Nil
}

// Character is an 8-bit character (Non-goal: no Unicode).
type Character byte

func (Character) Type() string { return "CHARACTER" }
func (Character) isValue()     {}

// Integer is a 32-bit signed integer (Non-goal: no numeric tower
// beyond int32/binary64).
type Integer int32

func (Integer) Type() string { return "INTEGER" }
func (Integer) isValue()     {}

// Float is a binary64 floating-point number.
type Float float64

func (Float) Type() string { return "FLOAT" }
func (Float) isValue()     {}
