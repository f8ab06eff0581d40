package object

import "fmt"

// MaxSymbolNameLength bounds interned names, per spec: "name strings
// up to a fixed maximum length, e.g. 255 bytes".
const MaxSymbolNameLength = 255

// Symbol is an interned name, or a gensym. Two symbols produced by
// interning equal names compare equal (==, since *Symbol is a pointer
// identity); gensyms are always distinct from every other symbol.
type Symbol struct {
	name   string
	gensym bool
	serial int // disambiguates gensym print form; 0 for interned symbols
}

func (*Symbol) Type() string { return "SYMBOL" }
func (*Symbol) isValue()     {}

// Name returns the symbol's print name. Gensyms carry an empty name;
// use Symbol.String for their opaque identity form.
func (s *Symbol) Name() string { return s.name }

// IsGensym reports whether s was produced by gensym rather than intern.
func (s *Symbol) IsGensym() bool { return s.gensym }

func (s *Symbol) String() string {
	if s.gensym {
		return fmt.Sprintf("#:g%d", s.serial)
	}
	return s.name
}

// SymbolTable interns names to canonical *Symbol values and mints
// gensyms. It is process/runtime scoped: every Runtime owns exactly
// one, matching spec.md's "process-wide... symbol table" (modeled as
// a field of the runtime context rather than a package global).
type SymbolTable struct {
	interned    map[string]*Symbol
	gensymCount int
}

// NewSymbolTable creates an empty interning table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{interned: make(map[string]*Symbol)}
}

// Intern returns the canonical symbol for name, creating it on first
// use. Names longer than MaxSymbolNameLength are rejected by the
// reader with a parse error; Intern itself enforces the same bound
// so direct callers (built-ins) get the same guarantee.
func (t *SymbolTable) Intern(name string) (*Symbol, error) {
	if len(name) > MaxSymbolNameLength {
		return nil, fmt.Errorf("symbol name exceeds maximum length of %d bytes", MaxSymbolNameLength)
	}
	if sym, ok := t.interned[name]; ok {
		return sym, nil
	}
	sym := &Symbol{name: name}
	t.interned[name] = sym
	return sym, nil
}

// MustIntern is Intern without the length check failure path, for
// internal callers that pass compile-time-constant names (built-in
// registration, special-form identities).
func (t *SymbolTable) MustIntern(name string) *Symbol {
	sym, err := t.Intern(name)
	if err != nil {
		panic(err)
	}
	return sym
}

// Gensym mints a fresh, uninterned symbol, unequal to every symbol
// produced by Intern and to every other gensym.
func (t *SymbolTable) Gensym() *Symbol {
	t.gensymCount++
	return &Symbol{gensym: true, serial: t.gensymCount}
}
