package eval

import (
	"fmt"
	"io"
	"strings"

	"github.com/kr/pretty"
	"github.com/kr/text"

	"github.com/philisp-go/philisp/internal/environ"
	"github.com/philisp-go/philisp/internal/object"
	"github.com/philisp-go/philisp/internal/printer"
)

// Tracer renders one line per EVAL/RET transition, the Go
// analogue of original_source/subr.c's DEBUG_DUMP macro: an indent
// per call-stack depth (that macro's "> " run), the label and the
// value under evaluation, and the names currently visible in the
// lexical and global environments (that macro's "l:"/"g:" lines).
type Tracer struct {
	Out io.Writer
}

// NewTracer builds a Tracer writing to out.
func NewTracer(out io.Writer) *Tracer {
	return &Tracer{Out: out}
}

func (t *Tracer) trace(label string, depth int, o object.Value, env environ.Env) {
	if t == nil || t.Out == nil {
		return
	}
	line := fmt.Sprintf("%s: %s | l: %s | g: %s",
		label,
		printer.Print(o),
		strings.Join(env.LexicalNames(), " "),
		strings.Join(env.Global().Names(), " "),
	)
	fmt.Fprintln(t.Out, text.Indent(line, strings.Repeat("> ", depth)))
}

// Dump pretty-prints an arbitrary Go value (a Frame, a CallStack) for
// deeper --trace inspection than a single printed form line provides.
func (t *Tracer) Dump(label string, v any) {
	if t == nil || t.Out == nil {
		return
	}
	fmt.Fprintf(t.Out, "%s:\n%s\n", label, pretty.Sprint(v))
}
