package object

// Pair is a mutable cons cell. Lists are right-nested chains of pairs
// terminated by Nil; the evaluator must not assume acyclicity of data
// reachable through Pair, only of expressions under active evaluation.
type Pair struct {
	Car, Cdr Value
}

func (*Pair) Type() string { return "PAIR" }
func (*Pair) isValue()     {}

// Cons allocates a new pair. Allocation-heavy callers are expected to
// run inside a gcguard.Region (see internal/gcguard); Cons itself does
// not enforce that, matching spec.md's allocator/root-protection split.
func Cons(car, cdr Value) *Pair {
	return &Pair{Car: car, Cdr: cdr}
}

// List builds a proper list from vs, right to left.
func List(vs ...Value) Value {
	var tail Value = Nil
	for i := len(vs) - 1; i >= 0; i-- {
		tail = Cons(vs[i], tail)
	}
	return tail
}

// IsProperList reports whether v is a proper list: a chain of pairs
// terminated by Nil. Cyclic chains are reported as improper rather
// than looping forever, using Floyd's cycle detection.
func IsProperList(v Value) bool {
	slow, fast := v, v
	for {
		if IsNil(fast) {
			return true
		}
		fp, ok := fast.(*Pair)
		if !ok {
			return false
		}
		fast = fp.Cdr
		if IsNil(fast) {
			return true
		}
		fp, ok = fast.(*Pair)
		if !ok {
			return false
		}
		fast = fp.Cdr

		sp := slow.(*Pair)
		slow = sp.Cdr
		if slow == fast {
			return false // cycle: never nil-terminated
		}
	}
}

// ListToSlice converts a proper list to a Go slice. The caller must
// ensure v is a proper list (e.g. via IsProperList) or this will loop
// forever on cyclic input, exactly as the reference evaluator would.
func ListToSlice(v Value) []Value {
	var out []Value
	for !IsNil(v) {
		p := v.(*Pair)
		out = append(out, p.Car)
		v = p.Cdr
	}
	return out
}

// SliceToList is an alias for List kept for call-site clarity where a
// slice is already in hand (e.g. argument lists).
func SliceToList(vs []Value) Value {
	return List(vs...)
}
