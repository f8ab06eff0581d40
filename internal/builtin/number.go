package builtin

import (
	"github.com/philisp-go/philisp/internal/eval"
	"github.com/philisp-go/philisp/internal/object"
	"github.com/philisp-go/philisp/internal/rterr"
)

// registerNumber installs the arithmetic and ordering primitives,
// grounded line for line on original_source/subr.c's subr_mod,
// subr_quot (bound to "/": integer-only division), subr_round,
// subr_add, subr_mult, subr_sub, subr_div (bound to "div": always
// promotes to float), and the DEFINE_ORD_SUBR macro expansion backing
// <=, <, >=, >, plus subr_num_eq for "=". Preserving the "/" vs "div"
// naming exactly as the reference binds them, not the more familiar
// Scheme convention, is deliberate.
func registerNumber(r *Registry) {
	r.register("integer?", object.Fixed(1), func(ev *eval.Evaluator, args []object.Value) (object.Value, error) {
		return object.BoolValue(object.IsInteger(args[0]), truthy(ev)), nil
	}, "integer? O => true if O is an integer")

	r.register("float?", object.Fixed(1), func(ev *eval.Evaluator, args []object.Value) (object.Value, error) {
		return object.BoolValue(object.IsFloat(args[0]), truthy(ev)), nil
	}, "float? O => true if O is a float")

	r.register("mod", object.Fixed(2), func(ev *eval.Evaluator, args []object.Value) (object.Value, error) {
		a, ok := args[0].(object.Integer)
		if !ok {
			return nil, rterr.TypeError(1, "mod", "INTEGER")
		}
		b, ok := args[1].(object.Integer)
		if !ok {
			return nil, rterr.TypeError(2, "mod", "INTEGER")
		}
		if b == 0 {
			return nil, rterr.EvalError(rterr.ErrMsgDivisionByZero)
		}
		return a % b, nil
	}, "mod INT1 INT2 => INT1 % INT2")

	r.register("/", object.VariadicFrom(1), func(ev *eval.Evaluator, args []object.Value) (object.Value, error) {
		v, ok := args[0].(object.Integer)
		if !ok {
			return nil, rterr.TypeError(1, "/", "INTEGER")
		}
		for i, a := range args[1:] {
			n, ok := a.(object.Integer)
			if !ok {
				return nil, rterr.TypeError(i+2, "/", "INTEGER")
			}
			if n == 0 {
				return nil, rterr.EvalError(rterr.ErrMsgDivisionByZero)
			}
			v /= n
		}
		return v, nil
	}, "/ INT1 INT2 ... => INT1 integer-divided by INT2, ...")

	r.register("round", object.Fixed(1), func(ev *eval.Evaluator, args []object.Value) (object.Value, error) {
		switch n := args[0].(type) {
		case object.Integer:
			return n, nil
		case object.Float:
			return object.Integer(int32(n)), nil
		default:
			return nil, rterr.TypeError(1, "round", "NUMBER")
		}
	}, "round NUM => NUM truncated to an integer")

	r.register("+", object.VariadicFrom(0), func(ev *eval.Evaluator, args []object.Value) (object.Value, error) {
		return sumOrProduct(args, "+", 0, func(a, b int32) int32 { return a + b }, func(a, b float64) float64 { return a + b })
	}, "+ NUM ... => the sum of its arguments, as an integer iff all are integers")

	r.register("*", object.VariadicFrom(0), func(ev *eval.Evaluator, args []object.Value) (object.Value, error) {
		return sumOrProduct(args, "*", 1, func(a, b int32) int32 { return a * b }, func(a, b float64) float64 { return a * b })
	}, "* NUM ... => the product of its arguments, as an integer iff all are integers")

	r.register("-", object.VariadicFrom(1), func(ev *eval.Evaluator, args []object.Value) (object.Value, error) {
		return subtract(args)
	}, "- NUM [NUM ...] => NUM negated, or NUM1 minus the rest")

	r.register("div", object.VariadicFrom(1), func(ev *eval.Evaluator, args []object.Value) (object.Value, error) {
		return floatDivide(args)
	}, "div NUM [NUM ...] => 1/NUM, or NUM1 divided by the rest, always as a float")

	r.register("<=", object.VariadicFrom(0), func(ev *eval.Evaluator, args []object.Value) (object.Value, error) {
		return ordered(ev, args, "<=", func(a, b float64) bool { return a <= b })
	}, "<= NUM ... => the last argument if weakly increasing, else ()")

	r.register("<", object.VariadicFrom(0), func(ev *eval.Evaluator, args []object.Value) (object.Value, error) {
		return ordered(ev, args, "<", func(a, b float64) bool { return a < b })
	}, "< NUM ... => the last argument if strictly increasing, else ()")

	r.register(">=", object.VariadicFrom(0), func(ev *eval.Evaluator, args []object.Value) (object.Value, error) {
		return ordered(ev, args, ">=", func(a, b float64) bool { return a >= b })
	}, ">= NUM ... => the last argument if weakly decreasing, else ()")

	r.register(">", object.VariadicFrom(0), func(ev *eval.Evaluator, args []object.Value) (object.Value, error) {
		return ordered(ev, args, ">", func(a, b float64) bool { return a > b })
	}, "> NUM ... => the last argument if strictly decreasing, else ()")

	r.register("=", object.VariadicFrom(0), func(ev *eval.Evaluator, args []object.Value) (object.Value, error) {
		return ordered(ev, args, "=", func(a, b float64) bool { return a == b })
	}, "= NUM ... => the last NUM if all are numerically equal, else ()")
}

func allIntegers(args []object.Value) bool {
	for _, a := range args {
		if !object.IsInteger(a) {
			return false
		}
	}
	return true
}

func sumOrProduct(args []object.Value, name string, identity int32, intOp func(a, b int32) int32, floatOp func(a, b float64) float64) (object.Value, error) {
	if allIntegers(args) {
		acc := identity
		for _, a := range args {
			acc = intOp(acc, int32(a.(object.Integer)))
		}
		return object.Integer(acc), nil
	}
	acc := float64(identity)
	for i, a := range args {
		f, ok := object.AsFloat(a)
		if !ok {
			return nil, rterr.TypeError(i+1, name, "NUMBER")
		}
		acc = floatOp(acc, f)
	}
	return object.Float(acc), nil
}

func subtract(args []object.Value) (object.Value, error) {
	if len(args) == 1 {
		switch n := args[0].(type) {
		case object.Integer:
			return -n, nil
		case object.Float:
			return -n, nil
		default:
			return nil, rterr.TypeError(1, "-", "NUMBER")
		}
	}
	if allIntegers(args) {
		res := int32(args[0].(object.Integer))
		for _, a := range args[1:] {
			res -= int32(a.(object.Integer))
		}
		return object.Integer(res), nil
	}
	res, ok := object.AsFloat(args[0])
	if !ok {
		return nil, rterr.TypeError(1, "-", "NUMBER")
	}
	for i, a := range args[1:] {
		f, ok := object.AsFloat(a)
		if !ok {
			return nil, rterr.TypeError(i+2, "-", "NUMBER")
		}
		res -= f
	}
	return object.Float(res), nil
}

func floatDivide(args []object.Value) (object.Value, error) {
	first, ok := object.AsFloat(args[0])
	if !ok {
		return nil, rterr.TypeError(1, "div", "NUMBER")
	}
	if len(args) == 1 {
		if first == 0 {
			return nil, rterr.EvalError(rterr.ErrMsgDivisionByZero)
		}
		return object.Float(1.0 / first), nil
	}
	res := first
	for i, a := range args[1:] {
		f, ok := object.AsFloat(a)
		if !ok {
			return nil, rterr.TypeError(i+2, "div", "NUMBER")
		}
		if f == 0 {
			return nil, rterr.EvalError(rterr.ErrMsgDivisionByZero)
		}
		res /= f
	}
	return object.Float(res), nil
}

func ordered(ev *eval.Evaluator, args []object.Value, name string, cmp func(a, b float64) bool) (object.Value, error) {
	if len(args) == 0 {
		return truthy(ev), nil
	}
	num1, ok := object.AsFloat(args[0])
	if !ok {
		return nil, rterr.TypeError(1, name, "NUMBER")
	}
	last := args[0]
	for i, a := range args[1:] {
		num2, ok := object.AsFloat(a)
		if !ok {
			return nil, rterr.TypeError(i+2, name, "NUMBER")
		}
		if !cmp(num1, num2) {
			return object.Nil, nil
		}
		num1, last = num2, a
	}
	return last, nil
}
