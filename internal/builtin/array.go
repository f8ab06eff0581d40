package builtin

import (
	"github.com/philisp-go/philisp/internal/eval"
	"github.com/philisp-go/philisp/internal/object"
	"github.com/philisp-go/philisp/internal/rterr"
)

// registerArray installs array?, make-array, aref, aset!, and
// string?, grounded on subr_arrayp/subr_make_array/subr_aref
// /subr_aset/subr_stringp. array? and string share a common vector
// abstraction (original_source/subr.c treats a string as a
// char-specialized array); aset!'s arity here follows its doc comment
// (ARRAY N O) rather than the reference's DEFSUBR declaration, which
// names only two fixed positions while the body it wraps clearly
// expects three.
func registerArray(r *Registry) {
	r.register("array?", object.Fixed(1), func(ev *eval.Evaluator, args []object.Value) (object.Value, error) {
		return object.BoolValue(object.IsArray(args[0]) || object.IsString(args[0]), truthy(ev)), nil
	}, "array? O => true if O is an array or a string")

	r.register("make-array", object.VariadicFrom(1), func(ev *eval.Evaluator, args []object.Value) (object.Value, error) {
		n, ok := args[0].(object.Integer)
		if !ok || n < 0 {
			return nil, rterr.TypeError(1, "make-array", "positive INTEGER")
		}
		var init object.Value = object.Nil
		if len(args) > 1 {
			init = args[1]
		}
		if ch, ok := init.(object.Character); ok {
			bytes := make([]byte, n)
			for i := range bytes {
				bytes[i] = byte(ch)
			}
			return object.NewStringFromBytes(bytes), nil
		}
		return object.NewArray(int(n), init), nil
	}, "make-array LENGTH [INIT] => a fresh array of LENGTH slots, each initialized to INIT")

	r.register("aref", object.Fixed(2), func(ev *eval.Evaluator, args []object.Value) (object.Value, error) {
		ix, ok := args[1].(object.Integer)
		if !ok || ix < 0 {
			return nil, rterr.TypeError(2, "aref", "positive INTEGER")
		}
		switch a := args[0].(type) {
		case *object.Array:
			v, ok := a.Ref(int(ix))
			if !ok {
				return nil, rterr.EvalError(rterr.ErrMsgIndexOutOfBounds, ix, a.Len())
			}
			return v, nil
		case *object.String:
			v, ok := a.Ref(int(ix))
			if !ok {
				return nil, rterr.EvalError(rterr.ErrMsgIndexOutOfBounds, ix, a.Len())
			}
			return v, nil
		default:
			return nil, rterr.TypeError(1, "aref", "ARRAY")
		}
	}, "aref ARRAY N => the N-th element of ARRAY")

	r.register("aset!", object.Fixed(3), func(ev *eval.Evaluator, args []object.Value) (object.Value, error) {
		ix, ok := args[1].(object.Integer)
		if !ok || ix < 0 {
			return nil, rterr.TypeError(2, "aset!", "positive INTEGER")
		}
		switch a := args[0].(type) {
		case *object.Array:
			if !a.Set(int(ix), args[2]) {
				return nil, rterr.EvalError(rterr.ErrMsgIndexOutOfBounds, ix, a.Len())
			}
		case *object.String:
			if !a.Set(int(ix), args[2]) {
				return nil, rterr.EvalError(rterr.ErrMsgIndexOutOfBounds, ix, a.Len())
			}
		default:
			return nil, rterr.TypeError(1, "aset!", "ARRAY")
		}
		return args[2], nil
	}, "aset! ARRAY N O => O, having stored it at the N-th slot of ARRAY")

	r.register("string?", object.Fixed(1), func(ev *eval.Evaluator, args []object.Value) (object.Value, error) {
		return object.BoolValue(object.IsString(args[0]), truthy(ev)), nil
	}, "string? O => true if O is a string")
}
