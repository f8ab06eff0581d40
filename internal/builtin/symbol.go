package builtin

import (
	"github.com/philisp-go/philisp/internal/eval"
	"github.com/philisp-go/philisp/internal/object"
	"github.com/philisp-go/philisp/internal/rterr"
)

// registerSymbol installs symbol?, gensym, and intern, grounded on
// subr_symbolp/subr_gensym/subr_intern.
func registerSymbol(r *Registry) {
	r.register("symbol?", object.Fixed(1), func(ev *eval.Evaluator, args []object.Value) (object.Value, error) {
		return object.BoolValue(object.IsSymbol(args[0]), truthy(ev)), nil
	}, "symbol? O => true if O is a symbol")

	r.register("gensym", object.Fixed(0), func(ev *eval.Evaluator, args []object.Value) (object.Value, error) {
		return ev.Symbols.Gensym(), nil
	}, "gensym => a fresh symbol, distinct from every other symbol")

	r.register("intern", object.Fixed(1), func(ev *eval.Evaluator, args []object.Value) (object.Value, error) {
		s, ok := args[0].(*object.String)
		if !ok {
			return nil, rterr.TypeError(1, "intern", "STRING")
		}
		sym, err := ev.Symbols.Intern(s.GoString())
		if err != nil {
			return nil, rterr.EvalError("%s", err.Error())
		}
		return sym, nil
	}, "intern NAME => the canonical symbol for NAME, interning it if new")
}
