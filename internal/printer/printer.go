// Package printer implements the inverse of internal/reader (spec.md
// §4.5): round-trippable rendering of printable values, and opaque
// #<...> descriptors for functions, closures, builtins, continuations,
// and partial applications.
package printer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/philisp-go/philisp/internal/object"
)

// Print renders v to its surface-syntax (or opaque descriptor) form.
func Print(v object.Value) string {
	var sb strings.Builder
	write(&sb, v)
	return sb.String()
}

func write(sb *strings.Builder, v object.Value) {
	switch val := v.(type) {
	case object.NilValue:
		sb.WriteString("()")
	case *object.Symbol:
		sb.WriteString(val.String())
	case object.Integer:
		sb.WriteString(strconv.FormatInt(int64(val), 10))
	case object.Float:
		sb.WriteString(fmt.Sprintf("%f", float64(val)))
	case object.Character:
		sb.WriteString("?")
		writeCharLiteral(sb, byte(val))
	case *object.String:
		writeString(sb, val)
	case *object.Array:
		writeArray(sb, val)
	case *object.Pair:
		writePair(sb, val)
	case *object.Stream:
		fmt.Fprintf(sb, "#<stream>")
	case *object.Function:
		fmt.Fprintf(sb, "#<function:%s>", aritySummary(val.Arity))
	case *object.Closure:
		fmt.Fprintf(sb, "#<closure:%s>", aritySummary(val.Fn.Arity))
	case *object.Builtin:
		fmt.Fprintf(sb, "#<subr %s:%s>", val.Name, aritySummary(val.Arity))
	case *object.Continuation:
		sb.WriteString("#<continuation>")
	case *object.PartialApp:
		fmt.Fprintf(sb, "#<partial-application %d-arg:%s>", len(val.Args), aritySummary(val.Pattern))
	default:
		fmt.Fprintf(sb, "#<unknown>")
	}
}

func aritySummary(a object.Arity) string {
	if a.Variadic {
		return fmt.Sprintf("%d+", a.Min)
	}
	return strconv.Itoa(a.Min)
}

func writePair(sb *strings.Builder, p *object.Pair) {
	sb.WriteByte('(')
	write(sb, p.Car)
	cur := p.Cdr
	for {
		switch rest := cur.(type) {
		case object.NilValue:
			sb.WriteByte(')')
			return
		case *object.Pair:
			sb.WriteByte(' ')
			write(sb, rest.Car)
			cur = rest.Cdr
		default:
			sb.WriteString(" . ")
			write(sb, cur)
			sb.WriteByte(')')
			return
		}
	}
}

func writeArray(sb *strings.Builder, a *object.Array) {
	sb.WriteByte('[')
	for i, s := range a.Slots {
		if i > 0 {
			sb.WriteByte(' ')
		}
		write(sb, s)
	}
	sb.WriteByte(']')
}

func writeString(sb *strings.Builder, s *object.String) {
	if s.IsUpgraded() {
		writeArray(sb, s.AsArray())
		return
	}
	sb.WriteByte('"')
	for _, b := range s.Bytes() {
		writeStringByte(sb, b)
	}
	sb.WriteByte('"')
}

func writeStringByte(sb *strings.Builder, b byte) {
	switch b {
	case '"':
		sb.WriteString(`\"`)
	case '\\':
		sb.WriteString(`\\`)
	case '\n':
		sb.WriteString(`\n`)
	case '\t':
		sb.WriteString(`\t`)
	case '\r':
		sb.WriteString(`\r`)
	case '\a':
		sb.WriteString(`\a`)
	case '\b':
		sb.WriteString(`\b`)
	case '\f':
		sb.WriteString(`\f`)
	case '\v':
		sb.WriteString(`\v`)
	default:
		if b >= 0x20 && b < 0x7f {
			sb.WriteByte(b)
		} else {
			fmt.Fprintf(sb, `\x%02X`, b)
		}
	}
}

func writeCharLiteral(sb *strings.Builder, b byte) {
	switch b {
	case '"':
		sb.WriteString(`\"`)
	case '\\':
		sb.WriteString(`\\`)
	case '\n':
		sb.WriteString(`\n`)
	case '\t':
		sb.WriteString(`\t`)
	case '\r':
		sb.WriteString(`\r`)
	case '\a':
		sb.WriteString(`\a`)
	case '\b':
		sb.WriteString(`\b`)
	case '\f':
		sb.WriteString(`\f`)
	case '\v':
		sb.WriteString(`\v`)
	default:
		if b >= 0x20 && b < 0x7f {
			sb.WriteByte(b)
		} else {
			fmt.Fprintf(sb, `\x%02X`, b)
		}
	}
}
