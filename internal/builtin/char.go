package builtin

import (
	"github.com/philisp-go/philisp/internal/eval"
	"github.com/philisp-go/philisp/internal/object"
	"github.com/philisp-go/philisp/internal/rterr"
)

// registerChar installs char?, char->int, int->char, and char=,
// grounded on subr_charp/subr_char_to_int/subr_int_to_char/subr_char_eq.
func registerChar(r *Registry) {
	r.register("char?", object.Fixed(1), func(ev *eval.Evaluator, args []object.Value) (object.Value, error) {
		return object.BoolValue(object.IsChar(args[0]), truthy(ev)), nil
	}, "char? O => true if O is a character")

	r.register("char->int", object.Fixed(1), func(ev *eval.Evaluator, args []object.Value) (object.Value, error) {
		c, ok := args[0].(object.Character)
		if !ok {
			return nil, rterr.TypeError(1, "char->int", "CHARACTER")
		}
		return object.Integer(c), nil
	}, "char->int CHAR => the ASCII code of CHAR")

	r.register("int->char", object.Fixed(1), func(ev *eval.Evaluator, args []object.Value) (object.Value, error) {
		n, ok := args[0].(object.Integer)
		if !ok {
			return nil, rterr.TypeError(1, "int->char", "INTEGER")
		}
		return object.Character(byte(n)), nil
	}, "int->char INT => the character with ASCII code INT")

	r.register("char=", object.VariadicFrom(0), func(ev *eval.Evaluator, args []object.Value) (object.Value, error) {
		if len(args) == 0 {
			return truthy(ev), nil
		}
		first, ok := args[0].(object.Character)
		if !ok {
			return nil, rterr.TypeError(1, "char=", "CHARACTER")
		}
		last := args[0]
		for i, a := range args[1:] {
			c, ok := a.(object.Character)
			if !ok {
				return nil, rterr.TypeError(i+2, "char=", "CHARACTER")
			}
			if c != first {
				return object.Nil, nil
			}
			first, last = c, a
		}
		return last, nil
	}, "char= C ... => the last C if every C is the same character, else ()")
}
