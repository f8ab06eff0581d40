package builtin

import (
	"io"

	"github.com/philisp-go/philisp/internal/eval"
	"github.com/philisp-go/philisp/internal/object"
	"github.com/philisp-go/philisp/internal/printer"
	"github.com/philisp-go/philisp/internal/rterr"
)

// registerCore installs nil?, eq?, print, read, error, and the seven
// special-form placeholders. The placeholders are bound so the
// symbols resolve and print sensibly, but their Fn is never invoked —
// the evaluator intercepts them by name before dispatch
// (object.Builtin.IsSpecialForm), mirroring
// original_source/subr.c's DEFINE_DUMMY_SUBR macro, whose bodies all
// call internal_error("unexpected call to ...") because the real
// interpreter loop never reaches them either.
func registerCore(r *Registry) {
	r.register("nil?", object.Fixed(1), func(ev *eval.Evaluator, args []object.Value) (object.Value, error) {
		return object.BoolValue(object.IsNil(args[0]), truthy(ev)), nil
	}, "nil? O => an unspecified non-() value if O is the empty list, else ()")

	r.register("eq?", object.VariadicFrom(0), func(ev *eval.Evaluator, args []object.Value) (object.Value, error) {
		if len(args) == 0 {
			return truthy(ev), nil
		}
		for i := 1; i < len(args); i++ {
			if !object.Eq(args[i-1], args[i]) {
				return object.Nil, nil
			}
		}
		return args[len(args)-1], nil
	}, "eq? O ... => the last O if every O is identical, else ()")

	r.register("print", object.Fixed(1), func(ev *eval.Evaluator, args []object.Value) (object.Value, error) {
		out := ev.Streams.Out
		if out == nil || out.Closed {
			return nil, rterr.IOError(rterr.ErrMsgStreamClosed)
		}
		if _, err := io.WriteString(out.File, printer.Print(args[0])); err != nil {
			return nil, rterr.IOError("%s", err.Error())
		}
		return args[0], nil
	}, "print O => O, having written O's printed representation to the current output port")

	r.register("read", object.VariadicFrom(0), func(ev *eval.Evaluator, args []object.Value) (object.Value, error) {
		return doRead(ev, args)
	}, "read [ERRORBACK] => the next value read from the current input port")

	r.register("error", object.VariadicFrom(1), func(ev *eval.Evaluator, args []object.Value) (object.Value, error) {
		msg, ok := args[0].(*object.String)
		if !ok {
			return nil, rterr.TypeError(1, "error", "STRING")
		}
		return nil, rterr.EvalError("%s", msg.GoString())
	}, "error MSG => never returns; raises an evaluation error with MSG")

	// Special-form placeholders: bound so (eq? if if) and friends work
	// and so the printer has something to show, but Fn is nil — the
	// evaluator never calls it, matching the reference dummy subrs.
	r.register("if", object.FixedPattern(true, false, false), nil,
		"if COND THEN ELSE => THEN evaluated if COND is true, else ELSE")
	r.register("eval", object.VariadicFrom(1), nil,
		"eval O [ERRORBACK] => O evaluated under the current environments")
	r.register("apply", object.Fixed(2), nil,
		"apply F ARGS => F applied to the elements of list ARGS")
	r.register("evlis", object.Fixed(2), nil,
		"evlis (reserved, not implemented)")
	r.register("unwind-protect", object.FixedPattern(false, false), nil,
		"unwind-protect BODY AFTER => BODY's value, running AFTER unconditionally first")
	r.register("call-cc", object.Fixed(1), nil,
		"call-cc F => F applied to a continuation reifying the current call stack")
	r.register("quote", object.FixedPattern(false), nil,
		"quote O => O, unevaluated")
}

// truthy mints a fresh, unspecified non-() value, mirroring
// original_source/subr.c's symbol() — predicates that succeed return
// this rather than a canonical bound symbol like "t", since no such
// symbol is ever interned by subr_initialize.
func truthy(ev *eval.Evaluator) object.Value {
	return ev.Symbols.Gensym()
}

// doRead reads the next value from the current input port. On EOF or
// a reader syntax error, if an errorback callable was supplied it is
// invoked with the error message instead of raising — grounded on
// subr.c's EVALUATION_ERROR macro and its literal
// `return eval(o, NIL)` recursive callback, reproduced here as a
// nested Eval call.
func doRead(ev *eval.Evaluator, args []object.Value) (object.Value, error) {
	var errorback object.Value
	if len(args) > 0 {
		errorback = args[0]
	}

	in := ev.Streams.In
	if in == nil || in.Closed {
		return errorOrCallback(ev, errorback, rterr.KindIO, rterr.ErrMsgStreamClosed)
	}
	rd := ev.Streams.ReaderFor(in, ev.Symbols)
	v, err := rd.Read()
	if err != nil {
		if err == io.EOF {
			return errorOrCallback(ev, errorback, rterr.KindIO, rterr.ErrMsgUnexpectedEOF)
		}
		return errorOrCallback(ev, errorback, rterr.KindParse, err.Error())
	}
	return v, nil
}

// errorOrCallback implements the errorback convention shared by read
// and bound-value: on failure, invoke errorback with the error
// message as a recursive evaluation if one was supplied (subr.c's
// EVALUATION_ERROR macro, literally `return eval(o, NIL)`), or raise
// msg as a catalog error of kind otherwise.
func errorOrCallback(ev *eval.Evaluator, errorback object.Value, kind rterr.Kind, msg string) (object.Value, error) {
	if object.IsNil(errorback) || errorback == nil {
		return nil, rterr.New(kind, "%s", msg)
	}
	form := object.List(errorback, object.NewString(msg))
	return ev.Eval(ev.CurrentEnv(), form)
}
