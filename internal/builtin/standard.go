package builtin

import (
	"github.com/philisp-go/philisp/internal/environ"
	"github.com/philisp-go/philisp/internal/object"
)

// BindConstants binds the handful of names that are plain value
// bindings rather than primitives: just nil, bound to the empty list
// (subr_initialize's `bind(intern("nil"), NIL, 0)`). Kept separate
// from Registry since nothing about it fits the name/arity/Fn shape
// every other entry has.
func BindConstants(symtab *object.SymbolTable, global *environ.Global) error {
	sym, err := symtab.Intern("nil")
	if err != nil {
		return err
	}
	global.Bind(sym, object.Nil)
	return nil
}
