package philisp

import (
	"testing"

	"github.com/philisp-go/philisp/internal/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSymbolPrimitives(t *testing.T) {
	rt, err := New()
	require.NoError(t, err)

	a := evalOK(t, rt, `(intern "foo")`)
	b := evalOK(t, rt, `(intern "foo")`)
	assert.True(t, a == b, "interning the same name twice returns the same canonical symbol")

	g1 := evalOK(t, rt, "(gensym)")
	g2 := evalOK(t, rt, "(gensym)")
	assert.False(t, g1 == g2)
}

func TestCharPrimitives(t *testing.T) {
	rt, err := New()
	require.NoError(t, err)

	assert.Equal(t, object.Integer('a'), evalOK(t, rt, "(char->int ?a)"))
	assert.Equal(t, object.Character('a'), evalOK(t, rt, "(int->char 97)"))

	v := evalOK(t, rt, "(char= ?a ?a ?a)")
	assert.Equal(t, object.Character('a'), v, "char= returns the last matched character, not a boolean")

	v = evalOK(t, rt, "(char= ?a ?b)")
	assert.True(t, object.IsNil(v))
}

func TestListPrimitives(t *testing.T) {
	rt, err := New()
	require.NoError(t, err)

	assert.Equal(t, object.Integer(3), evalOK(t, rt, "(length (list 1 2 3))"))

	v := evalOK(t, rt, "(reverse (list 1 2 3))")
	assert.Equal(t, []object.Value{object.Integer(3), object.Integer(2), object.Integer(1)}, object.ListToSlice(v))

	v = evalOK(t, rt, "(append (list 1 2) (list 3 4))")
	assert.Equal(t, []object.Value{object.Integer(1), object.Integer(2), object.Integer(3), object.Integer(4)}, object.ListToSlice(v))
}

func TestNotBuiltin(t *testing.T) {
	rt, err := New()
	require.NoError(t, err)

	v := evalOK(t, rt, "(not ())")
	assert.False(t, object.IsNil(v))

	v = evalOK(t, rt, "(not 1)")
	assert.True(t, object.IsNil(v))
}

func TestOrderedComparisonChains(t *testing.T) {
	rt, err := New()
	require.NoError(t, err)

	v := evalOK(t, rt, "(< 1 2 3)")
	assert.Equal(t, object.Integer(3), v, "a successful < chain returns the last argument, not a boolean")

	v = evalOK(t, rt, "(< 1 3 2)")
	assert.True(t, object.IsNil(v))

	v = evalOK(t, rt, "(<=)")
	assert.True(t, object.IsSymbol(v), "the zero-argument case returns a fresh truthy gensym, not a canonical bound symbol")
}

func TestAsetHasThreeArguments(t *testing.T) {
	rt, err := New()
	require.NoError(t, err)

	v := evalOK(t, rt, "(aset! (make-array 2 0) 1 9)")
	assert.Equal(t, object.Integer(9), v)
}

func TestMakeArrayWithCharacterFillProducesString(t *testing.T) {
	rt, err := New()
	require.NoError(t, err)

	v := evalOK(t, rt, `(make-array 3 ?x)`)
	s, ok := v.(*object.String)
	require.True(t, ok)
	assert.Equal(t, "xxx", s.GoString())
}

func TestDivisionByZeroIsAnEvaluationError(t *testing.T) {
	rt, err := New()
	require.NoError(t, err)

	_, err = rt.Eval("(/ 1 0)")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "division by zero")
}

func TestTypeErrorWording(t *testing.T) {
	rt, err := New()
	require.NoError(t, err)

	_, err = rt.Eval("(car 1)")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1-th arg for car is not a")
}

func TestUnboundSymbolIsAnEvaluationError(t *testing.T) {
	rt, err := New()
	require.NoError(t, err)

	_, err = rt.Eval("undefined-name")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "undefined-name")
}

func TestSetcarAndSetcdrMutateInPlace(t *testing.T) {
	rt, err := New()
	require.NoError(t, err)

	_, err = rt.Eval("(bind! 'p (cons 1 2))")
	require.NoError(t, err)
	_, err = rt.Eval("(setcar! p 9)")
	require.NoError(t, err)
	_, err = rt.Eval("(setcdr! p 8)")
	require.NoError(t, err)

	assert.Equal(t, object.Integer(9), evalOK(t, rt, "(car p)"))
	assert.Equal(t, object.Integer(8), evalOK(t, rt, "(cdr p)"))
}
