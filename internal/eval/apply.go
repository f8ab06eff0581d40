package eval

import (
	"github.com/philisp-go/philisp/internal/environ"
	"github.com/philisp-go/philisp/internal/object"
	"github.com/philisp-go/philisp/internal/rterr"
)

// apply implements the APPLY label of spec.md §4.8, dispatching on the
// callable variant held by pa. It returns the next value for O, the
// environment to resume with, the (possibly extended) call stack, and
// which label to resume at. Grounded state-for-state on
// original_source/subr.c's `apply:` block.
func (ev *Evaluator) apply(env environ.Env, stack CallStack, pa *object.PartialApp) (object.Value, environ.Env, CallStack, state, error) {
	switch callable := pa.Callable.(type) {

	case *object.Function:
		return ev.applyFunction(env, stack, callable, pa.Args, "function")

	case *object.Closure:
		lexEnv, ok := callable.LexEnv.(environ.Env)
		if !ok {
			return nil, env, stack, stateRet, rterr.InternalError("closure has no captured lexical environment")
		}
		return ev.applyFunction(lexEnv, stack, callable.Fn, pa.Args, "closure")

	case *object.Builtin:
		return ev.applyBuiltin(env, stack, callable, pa.Args)

	case *object.Continuation:
		if len(pa.Args) > 1 {
			return nil, env, stack, stateRet, rterr.EvalError(rterr.ErrMsgContinuationArity)
		}
		if len(pa.Args) < 1 {
			return pa, env, stack, stateRet, nil // underapplication
		}
		capturedStack, ok := callable.Frames.(CallStack)
		if !ok {
			return nil, env, stack, stateRet, rterr.InternalError("continuation has no captured call stack")
		}
		if err := ev.runUnwindTo(callable.UnwindDepth); err != nil {
			return nil, env, stack, stateRet, err
		}
		return pa.Args[0], env, capturedStack, stateRet, nil

	case *object.PartialApp:
		// Combine partial applications: splice callable's already-
		// gathered args ahead of pa's own, then re-apply the merged pa.
		merged := &object.PartialApp{
			Callable: callable.Callable,
			Args:     append(append([]object.Value{}, callable.Args...), pa.Args...),
			Pattern:  callable.Pattern,
		}
		return ev.apply(env, stack, merged)

	case object.Integer, object.Float:
		return ev.applyNumber(env, stack, callable, pa.Args)

	default:
		return ev.applyOther(env, stack, callable, pa.Args)
	}
}

// applyFunction binds formals directly onto env (no fresh boundary —
// the reference evaluator's bind(..., 1) call is likewise unguarded by
// one; the enclosing frame's save/restore discipline is what keeps
// this from leaking into sibling evaluation) and transfers to EVAL on
// the body. Underapplication returns the partial application
// unchanged; overapplication of a non-variadic callable is fatal.
func (ev *Evaluator) applyFunction(env environ.Env, stack CallStack, fn *object.Function, args []object.Value, kind string) (object.Value, environ.Env, CallStack, state, error) {
	arity := fn.Arity
	if !arity.Variadic && len(args) > arity.Max() {
		return nil, env, stack, stateRet, rterr.EvalError(rterr.ErrMsgTooManyArgs, kind)
	}
	if len(args) < arity.Min {
		return &object.PartialApp{Callable: fn, Args: args, Pattern: arity}, env, stack, stateRet, nil
	}

	bodyEnv := env
	rest := args
	for _, p := range fn.Params {
		var v object.Value = object.Nil
		if len(rest) > 0 {
			v, rest = rest[0], rest[1:]
		}
		bodyEnv, _ = bodyEnv.Bind(p, v, true)
	}
	if fn.Rest != nil {
		bodyEnv, _ = bodyEnv.Bind(fn.Rest, object.SliceToList(rest), true)
	}
	return fn.Body, bodyEnv, stack, stateEval, nil
}

// applyBuiltin handles the seven specially-intercepted names by
// Builtin name (IsSpecialForm) and otherwise invokes the built-in's
// native Go function, exposing env through ev.CurrentEnv for the rare
// built-in (closure, bind!, bound-value) that needs ambient access to
// the calling scope.
func (ev *Evaluator) applyBuiltin(env environ.Env, stack CallStack, b *object.Builtin, args []object.Value) (object.Value, environ.Env, CallStack, state, error) {
	arity := b.Arity
	if !arity.Variadic && len(args) > arity.Max() {
		return nil, env, stack, stateRet, rterr.EvalError(rterr.ErrMsgTooManyArgs, "subr \""+b.Name+"\"")
	}
	if len(args) < arity.Min {
		return &object.PartialApp{Callable: b, Args: args, Pattern: arity}, env, stack, stateRet, nil
	}

	if b.IsSpecialForm() {
		return ev.applySpecialForm(env, stack, b.Name, args)
	}

	ev.currentEnv = env
	val, err := b.Fn(ev, args)
	if err != nil {
		return nil, env, stack, stateRet, err
	}
	return val, env, stack, stateRet, nil
}

func (ev *Evaluator) applySpecialForm(env environ.Env, stack CallStack, name string, args []object.Value) (object.Value, environ.Env, CallStack, state, error) {
	switch name {
	case "quote":
		return args[0], env, stack, stateRet, nil

	case "if":
		if object.IsTruthy(args[0]) {
			return args[1], env, stack, stateEval, nil
		}
		return args[2], env, stack, stateEval, nil

	case "eval":
		return args[0], env, stack, stateEval, nil

	case "apply":
		if !object.IsProperList(args[1]) {
			return nil, env, stack, stateRet, rterr.EvalError(rterr.ErrMsgApplyNotList)
		}
		newPA := &object.PartialApp{
			Callable: args[0],
			Args:     object.ListToSlice(args[1]),
			Pattern:  object.ArityOf(args[0]),
		}
		return newPA, env, stack, stateApply, nil

	case "call-cc":
		cont := &object.Continuation{Frames: stack, UnwindDepth: len(ev.unwind)}
		newPA := &object.PartialApp{
			Callable: args[0],
			Args:     []object.Value{cont},
			Pattern:  object.ArityOf(args[0]),
		}
		return newPA, env, stack, stateApply, nil

	case "unwind-protect":
		return ev.applyUnwindProtect(env, stack, args[0], args[1])

	case "evlis":
		return nil, env, stack, stateRet, rterr.InternalError(rterr.ErrMsgNotImplemented, "evlis")

	default:
		return nil, env, stack, stateRet, rterr.InternalError("unrecognized special form %q", name)
	}
}

// applyUnwindProtect evaluates body with after registered so that a
// continuation invocation unwinding through this call runs after
// first (see runUnwindTo); on ordinary return, after always runs once
// more, win or lose, before the body's result (or error) propagates.
// Each nested Eval call here is a native Go call, so Go's own stack
// discipline saves and restores the outer trampoline's local variables
// across the reentrant evaluation — the reentrancy story spec.md §9
// asks an implementer to resolve explicitly.
func (ev *Evaluator) applyUnwindProtect(env environ.Env, stack CallStack, body, after object.Value) (object.Value, environ.Env, CallStack, state, error) {
	ev.unwind = append(ev.unwind, unwindEntry{after: after, env: env})
	depth := len(ev.unwind)

	result, bodyErr := ev.Eval(env, body)

	if len(ev.unwind) >= depth {
		ev.unwind = ev.unwind[:depth-1]
	}
	_, afterErr := ev.Eval(env, after)

	err := bodyErr
	if err == nil {
		err = afterErr
	}
	if err != nil {
		return nil, env, stack, stateRet, err
	}
	return result, env, stack, stateRet, nil
}

// runUnwindTo runs, innermost first, the after-clauses of every
// unwind-protect entry registered more recently than target — the
// dynamic extents a continuation jump is about to exit — per spec.md
// §9's requirement that invoking a continuation runs pending
// after-clauses first.
func (ev *Evaluator) runUnwindTo(target int) error {
	for len(ev.unwind) > target {
		i := len(ev.unwind) - 1
		entry := ev.unwind[i]
		ev.unwind = ev.unwind[:i]
		if _, err := ev.Eval(entry.env, entry.after); err != nil {
			return err
		}
	}
	return nil
}

// applyNumber implements spec.md §4.8's curry-with-number rule,
// grounded on subr.c's `integerp(func) || floatingp(func)` branch.
func (ev *Evaluator) applyNumber(env environ.Env, stack CallStack, n object.Value, args []object.Value) (object.Value, environ.Env, CallStack, state, error) {
	switch len(args) {
	case 0:
		return n, env, stack, stateRet, nil
	case 1:
		inner := &object.PartialApp{Callable: args[0], Args: []object.Value{n}, Pattern: object.ArityOf(args[0])}
		return inner, env, stack, stateRet, nil
	default:
		return ev.curryRewrite(env, stack, args[0], []object.Value{n, args[1]}, args[2:])
	}
}

// applyOther implements spec.md §4.8's "other non-callable" rule:
// (x) is identity; (x f ...) always rewrites to ((f x) ...) and fully
// applies, unlike the number case's single-arg rule which stops at an
// uninvoked partial application.
func (ev *Evaluator) applyOther(env environ.Env, stack CallStack, x object.Value, args []object.Value) (object.Value, environ.Env, CallStack, state, error) {
	if len(args) == 0 {
		return x, env, stack, stateRet, nil
	}
	return ev.curryRewrite(env, stack, args[0], []object.Value{x}, args[1:])
}

// curryRewrite applies f to innerArgs immediately, pushing a frame
// that — once that inner application's result is known — splats rest
// onto it via the ordinary apply mechanism. This reproduces
// original_source/subr.c's trick of pre-seeding a stack frame with an
// "apply" partial application and an all-quoted eval pattern so that
// the already-evaluated inner result and the already-evaluated rest
// list both pass through RET unevaluated.
func (ev *Evaluator) curryRewrite(env environ.Env, stack CallStack, f object.Value, innerArgs, rest []object.Value) (object.Value, environ.Env, CallStack, state, error) {
	frame := &Frame{
		PA: &object.PartialApp{
			Callable: &object.Builtin{Name: "apply", Arity: object.Fixed(2)},
			Pattern:  object.Arity{Min: 2, EvalBits: []bool{false, false}},
		},
		Pending: object.List(object.SliceToList(rest)),
		LexEnv:  env,
	}
	stack = stack.Push(frame)

	inner := &object.PartialApp{Callable: f, Args: innerArgs, Pattern: object.ArityOf(f)}
	return inner, env, stack, stateApply, nil
}
