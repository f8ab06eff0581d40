// Package builtin implements the leaf primitives of spec.md §6: the
// standard environment every philisp process starts with. Grounded
// structurally on the teacher's internal/interp/builtins.Registry
// (name -> implementation table with lookup) and semantically on
// original_source/subr.c, whose DEFSUBR-registered C functions this
// package's Go functions mirror one for one, including the exact
// error wording each one raises.
package builtin

import (
	"github.com/philisp-go/philisp/internal/environ"
	"github.com/philisp-go/philisp/internal/eval"
	"github.com/philisp-go/philisp/internal/object"
)

// Fn is the concrete signature builtin implementations are written
// against; wrap adapts it to object.BuiltinFunc's type-erased
// signature (object cannot import eval without a cycle, since eval
// imports object).
type Fn func(ev *eval.Evaluator, args []object.Value) (object.Value, error)

func wrap(fn Fn) object.BuiltinFunc {
	return func(evaluator any, args []object.Value) (object.Value, error) {
		ev, _ := evaluator.(*eval.Evaluator)
		return fn(ev, args)
	}
}

// entry is one not-yet-interned registration.
type entry struct {
	name        string
	arity       object.Arity
	fn          Fn
	description string
}

// Registry collects the standard primitive table before it is
// installed into a global environment, mirroring the teacher's
// Registry type with a single-process lookup map rather than that
// type's category/concurrency machinery, which this single-threaded
// evaluator does not need.
type Registry struct {
	entries []entry
	byName  map[string]int
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]int)}
}

// register records one primitive. Later calls with the same name
// replace the earlier registration, mirroring the teacher's Register.
func (r *Registry) register(name string, arity object.Arity, fn Fn, description string) {
	e := entry{name: name, arity: arity, fn: fn, description: description}
	if i, ok := r.byName[name]; ok {
		r.entries[i] = e
		return
	}
	r.entries = append(r.entries, e)
	r.byName[name] = len(r.entries) - 1
}

// Install interns every registered name and binds it in global to a
// fresh *object.Builtin. Special-form names get a placeholder Builtin
// whose Fn is never invoked: the evaluator intercepts any Builtin
// carrying one of those names (object.Builtin.IsSpecialForm).
func (r *Registry) Install(symtab *object.SymbolTable, global *environ.Global) error {
	for i := range r.entries {
		e := &r.entries[i]
		sym, err := symtab.Intern(e.name)
		if err != nil {
			return err
		}
		b := &object.Builtin{Name: e.name, Arity: e.arity, Description: e.description}
		if e.fn != nil {
			b.Fn = wrap(e.fn)
		}
		global.Bind(sym, b)
	}
	return nil
}

// Standard builds the registry described by spec.md §6's primitive
// roster, plus SPEC_FULL.md's supplemental length/list/reverse/not
// /append primitives.
func Standard() *Registry {
	r := NewRegistry()
	registerCore(r)
	registerSymbol(r)
	registerEnviron(r)
	registerChar(r)
	registerNumber(r)
	registerStream(r)
	registerCons(r)
	registerArray(r)
	registerFunction(r)
	registerExtra(r)
	return r
}
