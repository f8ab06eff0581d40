package builtin

import (
	"os"

	"github.com/philisp-go/philisp/internal/eval"
	"github.com/philisp-go/philisp/internal/object"
	"github.com/philisp-go/philisp/internal/rterr"
)

// registerStream installs the port primitives, grounded on
// subr_streamp/subr_input_port/subr_output_port/subr_error_port
// /subr_set_ports/subr_getc/subr_putc/subr_puts/subr_ungetc/subr_open
// /subr_close (original_source/subr.c). Every primitive that fails
// reaches for ev.Streams rather than process globals, since Streams is
// evaluator-owned state here rather than the reference's current_in
// /current_out/current_err C variables.
func registerStream(r *Registry) {
	r.register("stream?", object.Fixed(1), func(ev *eval.Evaluator, args []object.Value) (object.Value, error) {
		return object.BoolValue(object.IsStream(args[0]), truthy(ev)), nil
	}, "stream? O => true if O is a stream")

	r.register("current-input-port", object.Fixed(0), func(ev *eval.Evaluator, args []object.Value) (object.Value, error) {
		return ev.Streams.In, nil
	}, "current-input-port => the current input stream")

	r.register("current-output-port", object.Fixed(0), func(ev *eval.Evaluator, args []object.Value) (object.Value, error) {
		return ev.Streams.Out, nil
	}, "current-output-port => the current output stream")

	r.register("current-error-port", object.Fixed(0), func(ev *eval.Evaluator, args []object.Value) (object.Value, error) {
		return ev.Streams.Err, nil
	}, "current-error-port => the current error stream")

	r.register("set-ports", object.VariadicFrom(0), func(ev *eval.Evaluator, args []object.Value) (object.Value, error) {
		fields := []**object.Stream{&ev.Streams.In, &ev.Streams.Out, &ev.Streams.Err}
		for i, field := range fields {
			if i >= len(args) || object.IsNil(args[i]) {
				continue
			}
			s, ok := args[i].(*object.Stream)
			if !ok {
				return nil, rterr.TypeError(i+1, "set-ports", "STREAM")
			}
			*field = s
		}
		return object.Nil, nil
	}, "set-ports [IN OUT ERR] => (), redirecting any non-() port given")

	r.register("getc", object.VariadicFrom(0), func(ev *eval.Evaluator, args []object.Value) (object.Value, error) {
		var errorback object.Value
		if len(args) > 0 {
			errorback = args[0]
		}
		in := ev.Streams.In
		if in == nil || in.Closed {
			return errorOrCallback(ev, errorback, rterr.KindIO, "failed to get character.")
		}
		var b [1]byte
		n, err := in.File.Read(b[:])
		if err != nil || n == 0 {
			return errorOrCallback(ev, errorback, rterr.KindIO, "failed to get character.")
		}
		return object.Character(b[0]), nil
	}, "getc [ERRORBACK] => the next character from the current input port")

	r.register("putc", object.VariadicFrom(1), func(ev *eval.Evaluator, args []object.Value) (object.Value, error) {
		ch, ok := args[0].(object.Character)
		if !ok {
			return nil, rterr.TypeError(1, "putc", "CHARACTER")
		}
		var errorback object.Value
		if len(args) > 1 {
			errorback = args[1]
		}
		out := ev.Streams.Out
		if out == nil || out.Closed {
			return errorOrCallback(ev, errorback, rterr.KindIO, "failed to put character.")
		}
		if _, err := out.File.Write([]byte{byte(ch)}); err != nil {
			return errorOrCallback(ev, errorback, rterr.KindIO, "failed to put character.")
		}
		return ch, nil
	}, "putc CHAR [ERRORBACK] => CHAR, written to the current output port")

	r.register("puts", object.VariadicFrom(1), func(ev *eval.Evaluator, args []object.Value) (object.Value, error) {
		s, ok := args[0].(*object.String)
		if !ok {
			return nil, rterr.TypeError(1, "puts", "STRING")
		}
		var errorback object.Value
		if len(args) > 1 {
			errorback = args[1]
		}
		out := ev.Streams.Out
		if out == nil || out.Closed {
			return errorOrCallback(ev, errorback, rterr.KindIO, "failed to put string.")
		}
		if _, err := out.File.Write(s.Bytes()); err != nil {
			return errorOrCallback(ev, errorback, rterr.KindIO, "failed to put string.")
		}
		return s, nil
	}, "puts STRING [ERRORBACK] => STRING, written to the current output port")

	r.register("ungetc", object.VariadicFrom(1), func(ev *eval.Evaluator, args []object.Value) (object.Value, error) {
		ch, ok := args[0].(object.Character)
		if !ok {
			return nil, rterr.TypeError(1, "ungetc", "CHARACTER")
		}
		var errorback object.Value
		if len(args) > 1 {
			errorback = args[1]
		}
		in := ev.Streams.In
		if in == nil || in.Closed {
			return errorOrCallback(ev, errorback, rterr.KindIO, "failed to unget character.")
		}
		rd := ev.Streams.ReaderFor(in, ev.Symbols)
		rd.Unget(byte(ch))
		return ch, nil
	}, "ungetc CHAR [ERRORBACK] => CHAR, pushed back onto the current input port")

	r.register("open", object.VariadicFrom(1), func(ev *eval.Evaluator, args []object.Value) (object.Value, error) {
		name, ok := args[0].(*object.String)
		if !ok {
			return nil, rterr.TypeError(1, "open", "STRING")
		}
		writable := len(args) > 1 && object.IsTruthy(args[1])
		appendMode := len(args) > 2 && object.IsTruthy(args[2])
		var errorback object.Value
		if len(args) > 4 {
			errorback = args[4]
		}

		flags := os.O_RDONLY
		if writable {
			flags = os.O_RDWR | os.O_CREATE
			if appendMode {
				flags |= os.O_APPEND
			} else {
				flags |= os.O_TRUNC
			}
		}
		f, err := os.OpenFile(name.GoString(), flags, 0644)
		if err != nil {
			return errorOrCallback(ev, errorback, rterr.KindIO, "failed to open file")
		}
		return object.NewStream(f), nil
	}, "open FILE [WRITABLE APPEND BINARY ERRORBACK] => a stream open on FILE")

	r.register("close", object.VariadicFrom(1), func(ev *eval.Evaluator, args []object.Value) (object.Value, error) {
		s, ok := args[0].(*object.Stream)
		if !ok {
			return nil, rterr.TypeError(1, "close", "STREAM")
		}
		var errorback object.Value
		if len(args) > 1 {
			errorback = args[1]
		}
		if err := s.File.Close(); err != nil {
			return errorOrCallback(ev, errorback, rterr.KindIO, "failed to close stream.")
		}
		s.Closed = true
		return object.Nil, nil
	}, "close STREAM [ERRORBACK] => (), having closed STREAM")
}
