package printer

import (
	"strings"
	"testing"

	"github.com/philisp-go/philisp/internal/object"
	"github.com/philisp-go/philisp/internal/reader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintAtoms(t *testing.T) {
	assert.Equal(t, "()", Print(object.Nil))
	assert.Equal(t, "42", Print(object.Integer(42)))
	assert.Equal(t, "-7", Print(object.Integer(-7)))
}

func TestPrintList(t *testing.T) {
	l := object.List(object.Integer(1), object.Integer(2), object.Integer(3))
	assert.Equal(t, "(1 2 3)", Print(l))
}

func TestPrintDottedPair(t *testing.T) {
	p := object.Cons(object.Integer(1), object.Integer(2))
	assert.Equal(t, "(1 . 2)", Print(p))
}

func TestPrintNestedList(t *testing.T) {
	inner := object.List(object.Integer(2), object.Integer(3))
	l := object.Cons(object.Integer(1), object.Cons(inner, object.Nil))
	assert.Equal(t, "(1 (2 3))", Print(l))
}

func TestPrintArray(t *testing.T) {
	a := &object.Array{Slots: []object.Value{object.Integer(1), object.Integer(2)}}
	assert.Equal(t, "[1 2]", Print(a))
}

func TestPrintStringEscapesControlBytes(t *testing.T) {
	s := object.NewString("a\nb\"c")
	assert.Equal(t, `"a\nb\"c"`, Print(s))
}

func TestPrintUpgradedStringRendersAsArray(t *testing.T) {
	s := object.NewString("ab")
	s.Set(0, object.Integer(1))
	assert.Equal(t, "[1 ?b]", Print(s), "an upgraded string prints as its backing array")
}

func TestPrintCharacterLiteral(t *testing.T) {
	assert.Equal(t, "?a", Print(object.Character('a')))
	assert.Equal(t, `?\n`, Print(object.Character('\n')))
}

func TestPrintSymbol(t *testing.T) {
	tab := object.NewSymbolTable()
	sym := tab.MustIntern("foo")
	assert.Equal(t, "foo", Print(sym))
}

func TestPrintGensymOpaqueForm(t *testing.T) {
	tab := object.NewSymbolTable()
	g := tab.Gensym()
	assert.Equal(t, g.String(), Print(g))
	assert.Contains(t, Print(g), "#:g")
}

func TestPrintOpaqueCallableDescriptors(t *testing.T) {
	b := &object.Builtin{Name: "cons", Arity: object.Fixed(2)}
	assert.Equal(t, "#<subr cons:2>", Print(b))

	fn := &object.Function{Arity: object.VariadicFrom(1)}
	assert.Equal(t, "#<function:1+>", Print(fn))

	cont := &object.Continuation{}
	assert.Equal(t, "#<continuation>", Print(cont))
}

func TestPrintRoundTripsThroughReader(t *testing.T) {
	// A value built directly, printed, then read back, must produce an
	// equal-shaped value — the round-trip property printer/reader share.
	l := object.List(object.Integer(1), object.NewString("hi"), object.Character('x'))
	text := Print(l)
	assert.Equal(t, `(1 "hi" ?x)`, text)

	back, err := reader.New(strings.NewReader(text), object.NewSymbolTable()).Read()
	require.NoError(t, err)
	assert.Equal(t, text, Print(back))
}
