package builtin

import (
	"plugin"

	"github.com/philisp-go/philisp/internal/eval"
	"github.com/philisp-go/philisp/internal/object"
	"github.com/philisp-go/philisp/internal/rterr"
)

// registerFunction installs function?, fn, closure?, closure, subr?,
// dlsubr, and continuation?, grounded on subr_functionp/subr_fn
// /subr_closurep/subr_closure/subr_subrp/subr_dlsubr
// /subr_continuationp.
func registerFunction(r *Registry) {
	r.register("function?", object.Fixed(1), func(ev *eval.Evaluator, args []object.Value) (object.Value, error) {
		return object.BoolValue(object.IsFunction(args[0]), truthy(ev)), nil
	}, "function? O => true if O is a function")

	r.register("fn", object.FixedPattern(false, false), func(ev *eval.Evaluator, args []object.Value) (object.Value, error) {
		params, evalBits, rest, restEval, err := parseFormals(args[0])
		if err != nil {
			return nil, err
		}
		arity := object.Arity{Min: len(params), Variadic: rest != nil, EvalBits: evalBits, RestEval: restEval}
		return &object.Function{Formals: args[0], Body: args[1], Arity: arity, Params: params, Rest: rest}, nil
	}, "fn FORMALS EXPR => a function over FORMALS evaluating to EXPR")

	r.register("closure?", object.Fixed(1), func(ev *eval.Evaluator, args []object.Value) (object.Value, error) {
		return object.BoolValue(object.IsClosure(args[0]), truthy(ev)), nil
	}, "closure? O => true if O is a closure")

	r.register("closure", object.Fixed(1), func(ev *eval.Evaluator, args []object.Value) (object.Value, error) {
		fn, ok := args[0].(*object.Function)
		if !ok {
			return nil, rterr.TypeError(1, "closure", "FUNCTION")
		}
		env := ev.CurrentEnv()
		return &object.Closure{Fn: fn, LexEnv: env, GlobalEnv: env.Global()}, nil
	}, "closure FN => FN closed over the calling lexical environment")

	r.register("subr?", object.Fixed(1), func(ev *eval.Evaluator, args []object.Value) (object.Value, error) {
		return object.BoolValue(object.IsBuiltin(args[0]), truthy(ev)), nil
	}, "subr? O => true if O is a compiled (native) function")

	r.register("dlsubr", object.VariadicFrom(2), func(ev *eval.Evaluator, args []object.Value) (object.Value, error) {
		return dlsubr(ev, args)
	}, "dlsubr FILENAME SUBRNAME [ERRORBACK] => a subr loaded from the named shared object's SUBRNAME symbol")

	r.register("continuation?", object.Fixed(1), func(ev *eval.Evaluator, args []object.Value) (object.Value, error) {
		return object.BoolValue(object.IsContinuation(args[0]), truthy(ev)), nil
	}, "continuation? O => true if O is a continuation")
}

// dlsubr loads a Go plugin built with `go build -buildmode=plugin` and
// looks up an exported symbol of type object.BuiltinFunc, standing in
// for subr_dlsubr's dlopen/dlsym pair (original_source/subr.c): this
// runtime has no C-style lsubr ABI to dlopen, so a Go plugin exporting
// the same function type built-ins already use is the idiomatic
// analogue.
func dlsubr(ev *eval.Evaluator, args []object.Value) (object.Value, error) {
	filename, ok := args[0].(*object.String)
	if !ok {
		return nil, rterr.TypeError(1, "dlsubr", "STRING")
	}
	name, ok := args[1].(*object.String)
	if !ok {
		return nil, rterr.TypeError(2, "dlsubr", "STRING")
	}
	var errorback object.Value
	if len(args) > 2 {
		errorback = args[2]
	}

	p, err := plugin.Open(filename.GoString())
	if err != nil {
		return errorOrCallback(ev, errorback, rterr.KindIO, "failed to load shared object.")
	}
	sym, err := p.Lookup(name.GoString())
	if err != nil {
		return errorOrCallback(ev, errorback, rterr.KindIO, "failed to find symbol from shared object.")
	}
	fn, ok := sym.(object.BuiltinFunc)
	if !ok {
		return errorOrCallback(ev, errorback, rterr.KindIO, "shared object symbol has the wrong type.")
	}
	return &object.Builtin{Name: name.GoString(), Fn: fn, Arity: object.AllEvaluated}, nil
}

// parseFormals translates a fn formals form into bound parameter
// names, their per-position eval pattern, and an optional rest
// parameter, mirroring subr_fn's formals grammar
// (original_source/subr.c lines ~879-946): () is a nullary function;
// a bare symbol is a fully variadic evaluated rest parameter; (eval
// S) as the whole formals form is a fully variadic quoted rest
// parameter; otherwise each element is either a bare symbol (an
// evaluated parameter) or (eval S) (a quoted parameter), and the
// final cdr is either nil (no rest), a bare symbol (an evaluated
// rest), or the literal two-element tail `eval S` (a quoted rest).
func parseFormals(formalsForm object.Value) ([]*object.Symbol, []bool, *object.Symbol, bool, error) {
	if object.IsNil(formalsForm) {
		return nil, nil, nil, false, nil
	}
	if !object.IsPair(formalsForm) {
		sym, ok := formalsForm.(*object.Symbol)
		if !ok {
			return nil, nil, nil, false, invalidFormals()
		}
		return nil, nil, sym, true, nil
	}

	first := formalsForm.(*object.Pair)
	if sym, ok := first.Car.(*object.Symbol); ok && sym.Name() == "eval" {
		s, err := evalWrappedSymbol(first.Cdr)
		if err != nil {
			return nil, nil, nil, false, err
		}
		return nil, nil, s, false, nil
	}

	var params []*object.Symbol
	var evalBits []bool

	p0, eval0, err := parseOneFormal(first.Car)
	if err != nil {
		return nil, nil, nil, false, err
	}
	params = append(params, p0)
	evalBits = append(evalBits, eval0)

	cur := first.Cdr
	for {
		if object.IsNil(cur) {
			return params, evalBits, nil, false, nil
		}
		pair, ok := cur.(*object.Pair)
		if !ok {
			sym, ok := cur.(*object.Symbol)
			if !ok {
				return nil, nil, nil, false, invalidFormals()
			}
			return params, evalBits, sym, true, nil
		}
		if sym, ok := pair.Car.(*object.Symbol); ok && sym.Name() == "eval" {
			s, err := evalWrappedSymbol(pair.Cdr)
			if err != nil {
				return nil, nil, nil, false, err
			}
			return params, evalBits, s, false, nil
		}
		p, evalP, err := parseOneFormal(pair.Car)
		if err != nil {
			return nil, nil, nil, false, err
		}
		params = append(params, p)
		evalBits = append(evalBits, evalP)
		cur = pair.Cdr
	}
}

func parseOneFormal(v object.Value) (*object.Symbol, bool, error) {
	if sym, ok := v.(*object.Symbol); ok {
		return sym, true, nil
	}
	if pair, ok := v.(*object.Pair); ok {
		if sym, ok := pair.Car.(*object.Symbol); ok && sym.Name() == "eval" {
			if s, err := evalWrappedSymbol(pair.Cdr); err == nil {
				return s, false, nil
			}
		}
	}
	return nil, false, invalidFormals()
}

func evalWrappedSymbol(tail object.Value) (*object.Symbol, error) {
	pair, ok := tail.(*object.Pair)
	if !ok {
		return nil, invalidFormals()
	}
	s, ok := pair.Car.(*object.Symbol)
	if !ok {
		return nil, invalidFormals()
	}
	return s, nil
}

func invalidFormals() error {
	return rterr.EvalError(rterr.ErrMsgInvalidFormals)
}
