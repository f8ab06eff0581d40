package builtin

import (
	"github.com/philisp-go/philisp/internal/eval"
	"github.com/philisp-go/philisp/internal/object"
	"github.com/philisp-go/philisp/internal/rterr"
)

// registerCons installs cons?, cons, car, cdr, setcar!, setcdr!,
// grounded on subr_consp/subr_cons/subr_car/subr_cdr/subr_setcar
// /subr_setcdr. car and cdr of () return () rather than erroring, per
// the reference's `if(!car(args)) return NIL` guard.
func registerCons(r *Registry) {
	r.register("cons?", object.Fixed(1), func(ev *eval.Evaluator, args []object.Value) (object.Value, error) {
		return object.BoolValue(object.IsPair(args[0]), truthy(ev)), nil
	}, "cons? O => true if O is a pair")

	r.register("cons", object.Fixed(2), func(ev *eval.Evaluator, args []object.Value) (object.Value, error) {
		return object.Cons(args[0], args[1]), nil
	}, "cons O1 O2 => a new pair of O1 and O2")

	r.register("car", object.Fixed(1), func(ev *eval.Evaluator, args []object.Value) (object.Value, error) {
		if object.IsNil(args[0]) {
			return object.Nil, nil
		}
		p, ok := args[0].(*object.Pair)
		if !ok {
			return nil, rterr.TypeError(1, "car", "CONS nor ()")
		}
		return p.Car, nil
	}, "car PAIR => PAIR's first element, or () if PAIR is ()")

	r.register("cdr", object.Fixed(1), func(ev *eval.Evaluator, args []object.Value) (object.Value, error) {
		if object.IsNil(args[0]) {
			return object.Nil, nil
		}
		p, ok := args[0].(*object.Pair)
		if !ok {
			return nil, rterr.TypeError(1, "cdr", "CONS nor ()")
		}
		return p.Cdr, nil
	}, "cdr PAIR => PAIR's second element, or () if PAIR is ()")

	r.register("setcar!", object.Fixed(2), func(ev *eval.Evaluator, args []object.Value) (object.Value, error) {
		p, ok := args[0].(*object.Pair)
		if !ok {
			return nil, rterr.TypeError(1, "setcar!", "CONS")
		}
		p.Car = args[1]
		return args[1], nil
	}, "setcar! PAIR NEWCAR => NEWCAR, having replaced PAIR's first element")

	r.register("setcdr!", object.Fixed(2), func(ev *eval.Evaluator, args []object.Value) (object.Value, error) {
		p, ok := args[0].(*object.Pair)
		if !ok {
			return nil, rterr.TypeError(1, "setcdr!", "CONS")
		}
		p.Cdr = args[1]
		return args[1], nil
	}, "setcdr! PAIR NEWCDR => NEWCDR, having replaced PAIR's second element")
}
