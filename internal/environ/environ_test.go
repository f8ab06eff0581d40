package environ

import (
	"testing"

	"github.com/philisp-go/philisp/internal/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sym(tab *object.SymbolTable, name string) *object.Symbol {
	return tab.MustIntern(name)
}

func TestGlobalBindAndLookup(t *testing.T) {
	tab := object.NewSymbolTable()
	g := NewGlobal()
	x := sym(tab, "x")

	_, ok := g.Lookup(x)
	assert.False(t, ok)

	g.Bind(x, object.Integer(1))
	b, ok := g.Lookup(x)
	require.True(t, ok)
	assert.Equal(t, object.Integer(1), b.Value)

	g.Bind(x, object.Integer(2))
	b2, ok := g.Lookup(x)
	require.True(t, ok)
	assert.Equal(t, object.Integer(2), b2.Value)
	assert.True(t, b == b2, "rebinding an existing global mutates the same cell")
}

func TestGlobalNamesMostRecentFirst(t *testing.T) {
	tab := object.NewSymbolTable()
	g := NewGlobal()
	g.Bind(sym(tab, "a"), object.Nil)
	g.Bind(sym(tab, "b"), object.Nil)
	assert.Equal(t, []string{"b", "a"}, g.Names())
}

func TestLexicalLookupFindsInnermostFirst(t *testing.T) {
	tab := object.NewSymbolTable()
	g := NewGlobal()
	env := New(g)

	x := sym(tab, "x")
	env = env.BindLocal(x, object.Integer(1))
	env = env.BindLocal(x, object.Integer(2))

	b, ok := env.Lookup(x, false)
	require.True(t, ok)
	assert.Equal(t, object.Integer(2), b.Value, "the most recently bound shadowing binding wins")
}

func TestBoundaryBlocksLocalOnlyLookup(t *testing.T) {
	tab := object.NewSymbolTable()
	g := NewGlobal()
	env := New(g)

	x := sym(tab, "x")
	env = env.BindLocal(x, object.Integer(1))
	env = env.PushBoundary()

	_, ok := env.Lookup(x, true)
	assert.False(t, ok, "a boundary stops a local-only lookup from seeing bindings made before it")

	_, ok = env.Lookup(x, false)
	assert.True(t, ok, "a non-local lookup still sees past the boundary")
}

func TestLookupFallsBackToGlobal(t *testing.T) {
	tab := object.NewSymbolTable()
	g := NewGlobal()
	env := New(g)
	y := sym(tab, "y")
	g.Bind(y, object.Integer(42))

	b, ok := env.Lookup(y, false)
	require.True(t, ok)
	assert.Equal(t, object.Integer(42), b.Value)

	_, ok = env.Lookup(y, true)
	assert.False(t, ok, "local-only lookup never falls through to the global list")
}

func TestBindLocalTrueExtendsLexicalChain(t *testing.T) {
	tab := object.NewSymbolTable()
	g := NewGlobal()
	env := New(g)
	x := sym(tab, "x")

	env2, _ := env.Bind(x, object.Integer(1), true)
	assert.NotEqual(t, env, env2, "binding locally must return an extended Env, not mutate in place")

	_, ok := env.Lookup(x, true)
	assert.False(t, ok, "the original Env is untouched by a local bind performed on its extension")

	_, ok = env2.Lookup(x, true)
	assert.True(t, ok)
}

func TestBindFalseMutatesVisibleBindingElseTargetsGlobal(t *testing.T) {
	tab := object.NewSymbolTable()
	g := NewGlobal()
	env := New(g)
	x := sym(tab, "x")
	y := sym(tab, "y")

	// Shadow x lexically first.
	env = env.BindLocal(x, object.Integer(99))

	returned, _ := env.Bind(x, object.Integer(7), false)
	assert.Equal(t, env, returned, "a non-local bind returns the same Env value")

	_, ok := g.Lookup(x)
	assert.False(t, ok, "a non-local bind of a visible lexical name does not create a global binding")

	lb, ok := env.Lookup(x, true)
	require.True(t, ok)
	assert.Equal(t, object.Integer(7), lb.Value, "with local=false the visible lexical binding found by the full lookup is the one mutated")

	env.Bind(y, object.Integer(8), false)
	b, ok := g.Lookup(y)
	require.True(t, ok)
	assert.Equal(t, object.Integer(8), b.Value, "with no visible binding, a non-local bind creates it in the global list")
}

func TestLexicalNamesRendersBoundaryMarker(t *testing.T) {
	tab := object.NewSymbolTable()
	g := NewGlobal()
	env := New(g)
	env = env.BindLocal(sym(tab, "a"), object.Nil)
	env = env.PushBoundary()
	env = env.BindLocal(sym(tab, "b"), object.Nil)

	assert.Equal(t, []string{"b", "/", "a"}, env.LexicalNames())
}

func TestSavedEnvUnaffectedByLaterGrowth(t *testing.T) {
	tab := object.NewSymbolTable()
	g := NewGlobal()
	env := New(g)
	x := sym(tab, "x")

	saved := env.BindLocal(x, object.Integer(1))
	_ = saved.BindLocal(sym(tab, "y"), object.Integer(2))

	names := saved.LexicalNames()
	assert.Equal(t, []string{"x"}, names, "extending a copy of a saved Env must not be visible through the saved value")
}
