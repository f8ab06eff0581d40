package builtin

import (
	"fmt"

	"github.com/philisp-go/philisp/internal/eval"
	"github.com/philisp-go/philisp/internal/object"
	"github.com/philisp-go/philisp/internal/rterr"
)

// registerEnviron installs bind! and bound-value. Both read the
// calling scope through ev.CurrentEnv rather than an explicit
// parameter, mirroring subr_bind/subr_bound_value's direct use of the
// global local_env/global_env C variables (original_source/subr.c).
// subr_bind always passes local=0 to bind(), so bind! — despite its
// doc comment — never creates a local binding: it updates a visible
// binding of SYM (lexical first, then global) if there is one, and
// otherwise creates SYM in the global list, the same place every
// top-level definition lands.
func registerEnviron(r *Registry) {
	r.register("bind!", object.VariadicFrom(1), func(ev *eval.Evaluator, args []object.Value) (object.Value, error) {
		sym, ok := args[0].(*object.Symbol)
		if !ok {
			return nil, rterr.TypeError(1, "bind!", "SYMBOL")
		}
		var val object.Value = object.Nil
		if len(args) > 1 {
			val = args[1]
		}
		ev.CurrentEnv().Bind(sym, val, false)
		return val, nil
	}, "bind! SYM [VALUE] => VALUE, stored in the visible binding of SYM, else bound to SYM in the global environment")

	r.register("bound-value", object.VariadicFrom(1), func(ev *eval.Evaluator, args []object.Value) (object.Value, error) {
		sym, ok := args[0].(*object.Symbol)
		if !ok {
			return nil, rterr.TypeError(1, "bound-value", "SYMBOL")
		}
		if b, found := ev.CurrentEnv().Lookup(sym, false); found {
			return b.Value, nil
		}
		var errorback object.Value
		if len(args) > 1 {
			errorback = args[1]
		}
		return errorOrCallback(ev, errorback, rterr.KindEval, fmt.Sprintf(rterr.ErrMsgUnboundSymbol, sym.Name()))
	}, "bound-value SYM [ERRORBACK] => the value SYM is bound to")
}
