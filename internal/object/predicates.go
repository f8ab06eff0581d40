package object

// Predicates mirror the leaf type-predicate builtins of spec.md §4.6;
// each built-in wraps one of these rather than re-implementing the
// type switch.

func IsSymbol(v Value) bool { _, ok := v.(*Symbol); return ok }
func IsPair(v Value) bool   { _, ok := v.(*Pair); return ok }
func IsArray(v Value) bool  { _, ok := v.(*Array); return ok }
func IsString(v Value) bool { _, ok := v.(*String); return ok }
func IsChar(v Value) bool   { _, ok := v.(Character); return ok }
func IsInteger(v Value) bool {
	_, ok := v.(Integer)
	return ok
}
func IsFloat(v Value) bool { _, ok := v.(Float); return ok }
func IsStream(v Value) bool {
	_, ok := v.(*Stream)
	return ok
}
func IsFunction(v Value) bool    { _, ok := v.(*Function); return ok }
func IsClosure(v Value) bool     { _, ok := v.(*Closure); return ok }
func IsBuiltin(v Value) bool     { _, ok := v.(*Builtin); return ok }
func IsContinuation(v Value) bool {
	_, ok := v.(*Continuation)
	return ok
}
func IsPartialApp(v Value) bool { _, ok := v.(*PartialApp); return ok }

// IsCallable reports whether v participates in APPLY as a callable
// variant (function, closure, builtin, continuation, or partial
// application) as opposed to falling into the number/"other" catch-all
// cases of spec.md §4.8.
func IsCallable(v Value) bool {
	switch v.(type) {
	case *Function, *Closure, *Builtin, *Continuation, *PartialApp:
		return true
	default:
		return false
	}
}

// Eq reports pointer/immediate identity, backing the eq? builtin.
// Nil, characters, and interned symbols compare by value (immediates
// and canonical pointers); everything else compares by Go pointer
// identity.
func Eq(a, b Value) bool {
	switch av := a.(type) {
	case NilValue:
		_, ok := b.(NilValue)
		return ok
	case Character:
		bv, ok := b.(Character)
		return ok && av == bv
	case Integer:
		bv, ok := b.(Integer)
		return ok && av == bv
	case Float:
		bv, ok := b.(Float)
		return ok && av == bv
	case *Symbol:
		bv, ok := b.(*Symbol)
		return ok && av == bv
	default:
		return a == b
	}
}

// NumEq implements the numeric "=" comparison with the coercion rule
// of spec.md §4.1: mixed int/float compares as float.
func NumEq(a, b Value) (bool, bool) {
	af, aok := AsFloat(a)
	bf, bok := AsFloat(b)
	if !aok || !bok {
		return false, false
	}
	return af == bf, true
}

// AsFloat coerces an Integer or Float value to float64.
func AsFloat(v Value) (float64, bool) {
	switch n := v.(type) {
	case Integer:
		return float64(n), true
	case Float:
		return float64(n), true
	default:
		return 0, false
	}
}

// AsInt coerces an Integer value to int; floats are not silently
// truncated (callers needing that use round/int->char explicitly).
func AsInt(v Value) (int32, bool) {
	n, ok := v.(Integer)
	return int32(n), ok
}
