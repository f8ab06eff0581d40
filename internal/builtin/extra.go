package builtin

import (
	"github.com/philisp-go/philisp/internal/eval"
	"github.com/philisp-go/philisp/internal/object"
	"github.com/philisp-go/philisp/internal/rterr"
)

// registerExtra installs the supplemental list primitives SPEC_FULL.md
// adds beyond original_source/subr.c's roster: length, list, reverse,
// not, and append. None of these appear in subr_initialize; they are
// built from cons/car/cdr the way a philisp program itself would
// define them, just pre-bound as native built-ins for convenience.
func registerExtra(r *Registry) {
	r.register("not", object.Fixed(1), func(ev *eval.Evaluator, args []object.Value) (object.Value, error) {
		return object.BoolValue(object.IsNil(args[0]), truthy(ev)), nil
	}, "not O => an unspecified non-() value if O is (), else ()")

	r.register("length", object.Fixed(1), func(ev *eval.Evaluator, args []object.Value) (object.Value, error) {
		if !object.IsProperList(args[0]) {
			return nil, rterr.TypeError(1, "length", "LIST")
		}
		n := 0
		for cur := args[0]; !object.IsNil(cur); {
			n++
			cur = cur.(*object.Pair).Cdr
		}
		return object.Integer(n), nil
	}, "length LIST => the number of elements in LIST")

	r.register("list", object.VariadicFrom(0), func(ev *eval.Evaluator, args []object.Value) (object.Value, error) {
		return object.SliceToList(args), nil
	}, "list O ... => a fresh proper list of its arguments")

	r.register("reverse", object.Fixed(1), func(ev *eval.Evaluator, args []object.Value) (object.Value, error) {
		if !object.IsProperList(args[0]) {
			return nil, rterr.TypeError(1, "reverse", "LIST")
		}
		var out object.Value = object.Nil
		for cur := args[0]; !object.IsNil(cur); {
			p := cur.(*object.Pair)
			out = object.Cons(p.Car, out)
			cur = p.Cdr
		}
		return out, nil
	}, "reverse LIST => a fresh list with LIST's elements in reverse order")

	r.register("append", object.VariadicFrom(0), func(ev *eval.Evaluator, args []object.Value) (object.Value, error) {
		if len(args) == 0 {
			return object.Nil, nil
		}
		for i, a := range args[:len(args)-1] {
			if !object.IsProperList(a) {
				return nil, rterr.TypeError(i+1, "append", "LIST")
			}
		}
		result := args[len(args)-1]
		for i := len(args) - 2; i >= 0; i-- {
			elems := object.ListToSlice(args[i])
			for j := len(elems) - 1; j >= 0; j-- {
				result = object.Cons(elems[j], result)
			}
		}
		return result, nil
	}, "append LIST ... => a fresh list of every LIST's elements, followed by the last argument")
}
