package philisp

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/philisp-go/philisp/internal/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pipe(t *testing.T) (*os.File, *os.File, error) {
	t.Helper()
	return os.Pipe()
}

func evalOK(t *testing.T, rt *Runtime, source string) object.Value {
	t.Helper()
	v, err := rt.Eval(source)
	require.NoError(t, err)
	return v
}

func TestEvalArithmetic(t *testing.T) {
	rt, err := New()
	require.NoError(t, err)

	assert.Equal(t, object.Integer(6), evalOK(t, rt, "(+ 1 2 3)"))
	assert.Equal(t, object.Integer(2), evalOK(t, rt, "(/ 10 5)"))
	assert.Equal(t, object.Float(2.5), evalOK(t, rt, "(div 5 2)"))
}

func TestEvalIfAndQuote(t *testing.T) {
	rt, err := New()
	require.NoError(t, err)

	assert.Equal(t, object.Integer(1), evalOK(t, rt, "(if (= 1 1) 1 2)"))
	assert.Equal(t, object.Integer(2), evalOK(t, rt, "(if () 1 2)"))

	q := evalOK(t, rt, "'(a b c)")
	assert.True(t, object.IsProperList(q))
}

func TestEvalConsOperations(t *testing.T) {
	rt, err := New()
	require.NoError(t, err)

	v := evalOK(t, rt, "(car (cons 1 2))")
	assert.Equal(t, object.Integer(1), v)

	v = evalOK(t, rt, "(cdr (cons 1 2))")
	assert.Equal(t, object.Integer(2), v)
}

func TestCurryRewriteWithTrailingRestArguments(t *testing.T) {
	rt, err := New()
	require.NoError(t, err)

	// (x f a2) with a non-callable head and one trailing argument
	// rewrites to ((f x) a2): ((quote z) cons 1) -> ((cons z) 1) -> (z . 1).
	v := evalOK(t, rt, "((quote z) cons 1)")
	assert.Equal(t, "(z . 1)", rt.Print(v))

	// (n f a2 a3) with a number head rewrites to ((f n a2) a3); this
	// must not raise "too many arguments" while gathering the rewrite's
	// two values (the inner application's result and the rest list).
	_, err = rt.Eval("(2 + 3 4)")
	require.NoError(t, err)
}

func TestEqIsVariadicChainReturningLastValue(t *testing.T) {
	rt, err := New()
	require.NoError(t, err)

	v := evalOK(t, rt, "(eq? 1 1 1)")
	assert.Equal(t, object.Integer(1), v, "a successful eq? chain returns the last compared value, not a canonical boolean")

	v = evalOK(t, rt, "(eq? 1 2 1)")
	assert.True(t, object.IsNil(v))
}

func TestBindBangAlwaysTargetsGlobalEnvironment(t *testing.T) {
	rt, err := New()
	require.NoError(t, err)

	// bind! performed from inside a function body still lands in the
	// global environment, not the function's local scope, matching
	// subr_bind's literal local=0 argument despite its doc comment.
	_, err = rt.Eval("((fn () (bind! 'g 42)))")
	require.NoError(t, err)

	v := evalOK(t, rt, "g")
	assert.Equal(t, object.Integer(42), v)
}

func TestFnAndGlobalRecursion(t *testing.T) {
	rt, err := New()
	require.NoError(t, err)

	_, err = rt.Eval(`(bind! 'sum (fn (n acc) (if (= n 0) acc (sum (- n 1) (+ acc n)))))`)
	require.NoError(t, err)

	v := evalOK(t, rt, "(sum 100 0)")
	assert.Equal(t, object.Integer(5050), v)
}

func TestDeepNonTailRecursionDoesNotOverflowTheHostStack(t *testing.T) {
	rt, err := New()
	require.NoError(t, err)

	// sum2's recursive call sits inside (+ n ...), not in tail
	// position, so every level keeps a pending call-stack frame alive
	// until its recursive call returns — exactly the shape a native
	// recursive Eval would blow the Go stack on, and that the heap-
	// resident CallStack is built to survive instead.
	_, err = rt.Eval(`(bind! 'sum2 (fn (n) (if (= n 0) 0 (+ n (sum2 (- n 1))))))`)
	require.NoError(t, err)

	v := evalOK(t, rt, "(sum2 20000)")
	assert.Equal(t, object.Integer(20000*20001/2), v)
}

func TestClosureCapturesLexicalEnvironment(t *testing.T) {
	rt, err := New()
	require.NoError(t, err)

	_, err = rt.Eval(`(bind! 'make-adder (fn (n) (closure (fn (x) (+ x n)))))`)
	require.NoError(t, err)
	_, err = rt.Eval(`(bind! 'add5 (make-adder 5))`)
	require.NoError(t, err)

	v := evalOK(t, rt, "(add5 10)")
	assert.Equal(t, object.Integer(15), v)
}

func TestCallCCEscapesEarly(t *testing.T) {
	rt, err := New()
	require.NoError(t, err)

	v := evalOK(t, rt, `(+ 1 (call-cc (fn (k) (+ 2 (k 10)))))`)
	assert.Equal(t, object.Integer(11), v, "invoking the continuation discards the pending (+ 2 ...) and returns straight to the call-cc's own call site")
}

func TestUnwindProtectRunsAfterClauseOnOrdinaryReturn(t *testing.T) {
	rt, err := New()
	require.NoError(t, err)

	_, err = rt.Eval(`(bind! 'log (make-array 1 0))`)
	require.NoError(t, err)
	v := evalOK(t, rt, `(unwind-protect 1 (aset! log 0 99))`)
	assert.Equal(t, object.Integer(1), v)

	logged := evalOK(t, rt, "(aref log 0)")
	assert.Equal(t, object.Integer(99), logged)
}

func TestArrayAndStringOperations(t *testing.T) {
	rt, err := New()
	require.NoError(t, err)

	v := evalOK(t, rt, `(aref (make-array 3 0) 1)`)
	assert.Equal(t, object.Integer(0), v)

	v = evalOK(t, rt, `(aset! (make-array 3 0) 1 7)`)
	assert.Equal(t, object.Integer(7), v)
}

func TestErrorBuiltinRaisesEvaluationError(t *testing.T) {
	rt, err := New()
	require.NoError(t, err)

	_, err = rt.Eval(`(error "boom")`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestWithStdioRedirectsPrint(t *testing.T) {
	r, w, err := pipe(t)
	require.NoError(t, err)
	defer r.Close()

	rt, err := New(WithStdio(nil, w, nil))
	require.NoError(t, err)

	_, err = rt.Eval(`(print "hi")`)
	require.NoError(t, err)
	w.Close()

	var buf bytes.Buffer
	buf.ReadFrom(r)
	assert.Equal(t, `"hi"`, buf.String())
}

func TestWithTraceEmitsEvalLines(t *testing.T) {
	var trace bytes.Buffer
	rt, err := New(WithTrace(&trace))
	require.NoError(t, err)

	_, err = rt.Eval("(+ 1 2)")
	require.NoError(t, err)

	assert.Contains(t, trace.String(), "eval:")
	assert.Contains(t, trace.String(), "ret:")
}

func TestWithMaxDepthIsEnforced(t *testing.T) {
	rt, err := New(WithMaxDepth(10))
	require.NoError(t, err)

	_, err = rt.Eval(`(bind! 'sum2 (fn (n) (if (= n 0) 0 (+ n (sum2 (- n 1))))))`)
	require.NoError(t, err)

	_, err = rt.Eval("(sum2 1000)")
	require.Error(t, err)
	assert.Contains(t, strings.ToLower(err.Error()), "stack")
}

func TestReadWithoutEvaluating(t *testing.T) {
	rt, err := New()
	require.NoError(t, err)

	v, err := rt.Read("(1 2 3)")
	require.NoError(t, err)
	assert.True(t, object.IsProperList(v))
	assert.Equal(t, "(1 2 3)", rt.Print(v))
}

func TestBindAndRegisterBuiltinFromHost(t *testing.T) {
	rt, err := New()
	require.NoError(t, err)

	require.NoError(t, rt.Bind("answer", object.Integer(42)))
	assert.Equal(t, object.Integer(42), evalOK(t, rt, "answer"))

	require.NoError(t, rt.RegisterBuiltin("double", object.Fixed(1), func(_ any, args []object.Value) (object.Value, error) {
		return args[0].(object.Integer) * 2, nil
	}))
	assert.Equal(t, object.Integer(84), evalOK(t, rt, "(double 42)"))
}

func TestEvalReaderReturnsNilForEmptySource(t *testing.T) {
	rt, err := New()
	require.NoError(t, err)

	v, err := rt.Eval("")
	require.NoError(t, err)
	assert.True(t, object.IsNil(v))
}

func TestEvalReaderPersistsGlobalBindingsAcrossForms(t *testing.T) {
	rt, err := New()
	require.NoError(t, err)

	v := evalOK(t, rt, `(bind! 'x 1) (bind! 'y 2) (+ x y)`)
	assert.Equal(t, object.Integer(3), v)
}
