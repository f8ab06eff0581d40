// Package eval implements the trampolined EVAL/RET/APPLY evaluator of
// spec.md §4.8: a three-label state machine driven by a heap call
// stack (internal/eval.CallStack) instead of Go's native call
// recursion, so that deeply tail-recursive user programs cannot
// exhaust the host stack. Grounded structurally on the teacher's
// internal/interp/evaluator package (CallStack type, per-call
// recursion-depth guard) and semantically on
// _examples/original_source/subr.c's eval() function, which this file
// translates state-for-state into Go.
package eval

import (
	"github.com/philisp-go/philisp/internal/environ"
	"github.com/philisp-go/philisp/internal/object"
	"github.com/philisp-go/philisp/internal/rterr"
)

// DefaultMaxDepth bounds the heap call stack so that genuinely
// unbounded non-tail recursion fails with a catchable EvalError
// rather than exhausting process memory. Spec.md imposes no specific
// bound; this mirrors the teacher's CallStack.maxDepth guard
// (internal/interp/evaluator/callstack.go), applied here to the heap
// stack rather than Go's native one.
const DefaultMaxDepth = 1 << 20

// state names the evaluator's three labels.
type state int

const (
	stateEval state = iota
	stateRet
	stateApply
)

// Evaluator owns the pieces spec.md §5 says are process-wide: the
// symbol table, current streams, and the unwind-protect registration
// stack used to make continuation invocation run pending cleanup
// handlers. currentEnv mirrors the reference evaluator's global
// local_env/global_env C variables, which subr.c's non-special-form
// built-ins (closure, bind!, bound-value with a local flag) read
// directly rather than receiving as an argument; ordinary Go built-ins
// here do the same via CurrentEnv, set around every non-special
// Builtin.Fn invocation.
type Evaluator struct {
	Symbols  *object.SymbolTable
	Streams  *Streams
	MaxDepth int

	// Tracer, when non-nil, receives one line per EVAL/RET transition
	// (the --trace flag's backing mechanism). nil by default, so
	// tracing costs nothing when not requested.
	Tracer *Tracer

	currentEnv environ.Env
	unwind     []unwindEntry
}

type unwindEntry struct {
	after object.Value
	env   environ.Env
}

// New creates an Evaluator over symbols and streams (NewStdioStreams
// builds the stdio set). Built-ins that use a port read it from
// Streams.
func New(symbols *object.SymbolTable, streams *Streams) *Evaluator {
	return &Evaluator{Symbols: symbols, Streams: streams, MaxDepth: DefaultMaxDepth}
}

// CurrentEnv returns the lexical environment active at the most recent
// ordinary (non-special-form) built-in call, for built-ins such as
// closure and bind! that need ambient access to "the calling scope"
// the way subr.c's subrs read the global local_env/global_env
// variables directly.
func (ev *Evaluator) CurrentEnv() environ.Env { return ev.currentEnv }

// Eval runs the trampoline to completion, returning the value `expr`
// reduces to under env, or an error. Each call starts its own fresh
// CallStack — a local variable on this Go call's native stack — so
// that nested Eval invocations (triggered by error callbacks, by
// unwind-protect's body/after clauses, or by the after-clauses run when
// a continuation is invoked) naturally save and restore evaluator state via Go's own call
// recursion, resolving spec.md §9's open question about reentrancy in
// favor of explicit (here, structural) save/restore rather than
// banning nested entry.
func (ev *Evaluator) Eval(env environ.Env, expr object.Value) (object.Value, error) {
	stack := CallStack{}
	st := stateEval
	o := expr

	for {
		switch st {
		case stateEval:
			ev.Tracer.trace("eval", stack.Depth(), o, env)
			switch t := o.(type) {
			case *object.Symbol:
				b, ok := env.Lookup(t, false)
				if !ok {
					return nil, rterr.EvalError(rterr.ErrMsgUnboundSymbol, t.Name())
				}
				o = b.Value
				st = stateRet

			case *object.Pair:
				if stack.Depth() >= ev.maxDepth() {
					return nil, rterr.EvalError("stack overflow: maximum call-stack depth (%d) exceeded", ev.maxDepth())
				}
				stack = stack.Push(&Frame{Pending: t.Cdr, LexEnv: env})
				o = t.Car
				env = env.PushBoundary()
				// st stays stateEval; loop re-enters EVAL on the head.

			default:
				st = stateRet
			}

		case stateRet:
			ev.Tracer.trace("ret", stack.Depth(), o, env)
			if stack.Empty() {
				return o, nil
			}
			frame := stack.Top()
			if frame.PA == nil {
				frame.PA = object.NewPartialApp(o)
			} else {
				frame.PA.Push(o)
			}
			env = frame.LexEnv

			if !object.IsNil(frame.Pending) {
				p := frame.Pending.(*object.Pair)
				next := p.Car
				frame.Pending = p.Cdr
				if frame.PA.EvalPatternAt(0) {
					env = env.PushBoundary()
					o = next
					st = stateEval
				} else {
					o = next
					// st stays stateRet: re-enter RET with the raw form.
				}
			} else {
				o = frame.PA
				stack = stack.Pop()
				st = stateApply
			}

		case stateApply:
			val, newEnv, newStack, newState, err := ev.apply(env, stack, o.(*object.PartialApp))
			if err != nil {
				return nil, err
			}
			o = val
			env = newEnv
			stack = newStack
			st = newState
		}
	}
}

func (ev *Evaluator) maxDepth() int {
	if ev.MaxDepth > 0 {
		return ev.MaxDepth
	}
	return DefaultMaxDepth
}
