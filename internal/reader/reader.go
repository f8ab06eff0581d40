// Package reader implements the surface-syntax parser of spec.md
// §4.4: a hand-written recursive-descent reader over a byte stream,
// producing internal/object values. Grounded in the teacher's
// internal/lexer (Position tracking, one-token-of-lookahead style) and
// in the grammar original_source/subr.c's sibling reader.c implements
// (kept out of the retrieval pack, but described exhaustively by
// spec.md §4.4, which this file follows literally).
package reader

import (
	"bufio"
	"fmt"
	"io"

	"github.com/philisp-go/philisp/internal/gcguard"
	"github.com/philisp-go/philisp/internal/object"
	"github.com/philisp-go/philisp/internal/rterr"
)

// Position is a 1-based line/column location in the source stream.
type Position struct {
	Line, Column int
}

func (p Position) String() string { return fmt.Sprintf("%d:%d", p.Line, p.Column) }

// delimiters are the characters that end a bare symbol token, per
// spec.md §4.4's "otherwise" rule.
const delimiters = "()[]\";"

// Reader reads one value at a time from an underlying byte stream.
type Reader struct {
	src     *bufio.Reader
	symtab  *object.SymbolTable
	line    int
	col     int
	pending []byte // pushed back by Unget, consumed before src

	lastByte    byte // the byte most recently returned by readByte
	lastPending bool // whether it came from pending rather than src
}

// New wraps r, interning symbols into symtab.
func New(r io.Reader, symtab *object.SymbolTable) *Reader {
	return &Reader{src: bufio.NewReader(r), symtab: symtab, line: 1, col: 1}
}

// Pos returns the reader's current position, for error reporting by
// callers that want to annotate a parse failure.
func (rd *Reader) Pos() Position {
	return Position{Line: rd.line, Column: rd.col}
}

// Unget pushes b back so the next readByte returns it, for the
// ungetc built-in (subr_ungetc in original_source/subr.c), which
// pushes back an arbitrary character rather than necessarily the last
// one read.
func (rd *Reader) Unget(b byte) {
	rd.pending = append(rd.pending, b)
}

func (rd *Reader) readByte() (byte, error) {
	if n := len(rd.pending); n > 0 {
		b := rd.pending[n-1]
		rd.pending = rd.pending[:n-1]
		rd.lastByte, rd.lastPending = b, true
		if b == '\n' {
			rd.line++
			rd.col = 1
		} else {
			rd.col++
		}
		return b, nil
	}
	b, err := rd.src.ReadByte()
	if err != nil {
		return 0, err
	}
	rd.lastByte, rd.lastPending = b, false
	if b == '\n' {
		rd.line++
		rd.col = 1
	} else {
		rd.col++
	}
	return b, nil
}

// unreadByte undoes the most recent readByte. When that byte came
// from the Unget pushback buffer, it must go back onto pending rather
// than through src.UnreadByte, which would instead re-arm whatever
// src itself last produced and desync the two sources.
func (rd *Reader) unreadByte() {
	if rd.lastPending {
		rd.pending = append(rd.pending, rd.lastByte)
	} else {
		_ = rd.src.UnreadByte()
	}
	// Position bookkeeping is best-effort on unread; a single
	// character of backtrack never crosses a line within this
	// grammar's use of unreadByte (peeking the next token char).
	if rd.col > 1 {
		rd.col--
	}
}

// peekByte returns the next byte without consuming it. Afterwards the
// byte read before the peek is still the one unreadByte restores; it
// is marked as pending because src.UnreadByte can only undo src's own
// most recent byte, which is now the peeked one.
func (rd *Reader) peekByte() (byte, error) {
	prev := rd.lastByte
	b, err := rd.readByte()
	if err != nil {
		return 0, err
	}
	rd.unreadByte()
	rd.lastByte, rd.lastPending = prev, true
	return b, nil
}

func isDelimiter(b byte) bool {
	if b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\f' || b == '\v' {
		return true
	}
	for i := 0; i < len(delimiters); i++ {
		if delimiters[i] == b {
			return true
		}
	}
	return false
}

func isWhitespace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	}
	return false
}

// skipAtmosphere skips whitespace and ;-to-end-of-line comments.
func (rd *Reader) skipAtmosphere() error {
	for {
		b, err := rd.readByte()
		if err != nil {
			return err
		}
		if isWhitespace(b) {
			continue
		}
		if b == ';' {
			for {
				c, err := rd.readByte()
				if err != nil {
					return err
				}
				if c == '\n' {
					break
				}
			}
			continue
		}
		rd.unreadByte()
		return nil
	}
}

// Read parses a single top-level expression. It returns io.EOF,
// unwrapped, only when the stream ends before any token is seen (a
// clean end between forms); any failure after that point is a
// *rterr.Error distinguished per spec.md §4.4 and §7, never a bare
// io.EOF, so callers can tell "no more input" from "malformed input"
// without inspecting message text.
func (rd *Reader) Read() (object.Value, error) {
	region := gcguard.Open()
	defer region.Close()

	if err := rd.skipAtmosphere(); err != nil {
		return nil, err // clean EOF before any token
	}
	return rd.readExpr(region)
}

func (rd *Reader) mustByte() (byte, error) {
	b, err := rd.readByte()
	if err != nil {
		return 0, rterr.ParseError(rterr.ErrMsgUnexpectedEOF)
	}
	return b, nil
}

func (rd *Reader) readExpr(region *gcguard.Region) (object.Value, error) {
	b, err := rd.mustByte()
	if err != nil {
		return nil, err
	}

	switch {
	case b == '(':
		return rd.readList(region, ')')
	case b == '[':
		return rd.readArray(region)
	case b == ')' || b == ']':
		return nil, rterr.ParseError(rterr.ErrMsgUnexpectedClose, string(b))
	case b == '"':
		return rd.readString()
	case b == '?':
		return rd.readCharacter()
	case b == '\'':
		return rd.readWrapped(region, "quote")
	case b == ',':
		return rd.readWrapped(region, "eval")
	case isDigit(b):
		rd.unreadByte()
		return rd.readNumber()
	case b == '.':
		nb, perr := rd.peekByte()
		if perr == nil && isDigit(nb) {
			rd.unreadByte()
			return rd.readNumber()
		}
		rd.unreadByte()
		return rd.readSymbol()
	case b == '+' || b == '-':
		nb, perr := rd.peekByte()
		if perr == nil && (isDigit(nb) || nb == '.') {
			neg := b == '-'
			v, err := rd.readNumber()
			if err != nil {
				return nil, err
			}
			if neg {
				return negate(v), nil
			}
			return v, nil
		}
		rd.unreadByte()
		return rd.readSymbol()
	default:
		rd.unreadByte()
		return rd.readSymbol()
	}
}

func negate(v object.Value) object.Value {
	switch n := v.(type) {
	case object.Integer:
		return -n
	case object.Float:
		return -n
	default:
		return v
	}
}

func (rd *Reader) readWrapped(region *gcguard.Region, head string) (object.Value, error) {
	if err := rd.skipAtmosphere(); err != nil {
		return nil, rterr.ParseError(rterr.ErrMsgUnexpectedEOF)
	}
	inner, err := rd.readExpr(region)
	if err != nil {
		return nil, err
	}
	sym, ierr := rd.symtab.Intern(head)
	if ierr != nil {
		return nil, rterr.InternalError("%s", ierr)
	}
	return object.List(sym, inner), nil
}

func (rd *Reader) readList(region *gcguard.Region, closeByte byte) (object.Value, error) {
	var items []object.Value
	var tail object.Value = object.Nil

	for {
		if err := rd.skipAtmosphere(); err != nil {
			return nil, rterr.ParseError(rterr.ErrMsgUnexpectedEOF)
		}
		b, err := rd.peekByte()
		if err != nil {
			return nil, rterr.ParseError(rterr.ErrMsgUnexpectedEOF)
		}
		if b == closeByte {
			rd.readByte()
			break
		}
		if b == '.' && closeByte == ')' {
			// Only a dotted tail when '.' is itself a whole token,
			// i.e. followed by a delimiter; ".5" remains a number.
			rd.readByte()
			nb, perr := rd.peekByte()
			if perr != nil || isDelimiter(nb) {
				if err := rd.skipAtmosphere(); err != nil {
					return nil, rterr.ParseError(rterr.ErrMsgUnexpectedEOF)
				}
				t, err := rd.readExpr(region)
				if err != nil {
					return nil, err
				}
				tail = t
				if err := rd.skipAtmosphere(); err != nil {
					return nil, rterr.ParseError(rterr.ErrMsgUnexpectedEOF)
				}
				cb, err := rd.readByte()
				if err != nil || cb != closeByte {
					return nil, rterr.ParseError(rterr.ErrMsgUnexpectedClose, string(closeByte))
				}
				break
			}
			rd.unreadByte()
		}

		item, err := rd.readExpr(region)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
		region.Protect(item)
	}

	result := tail
	for i := len(items) - 1; i >= 0; i-- {
		result = object.Cons(items[i], result)
	}
	return result, nil
}

func (rd *Reader) readArray(region *gcguard.Region) (object.Value, error) {
	var items []object.Value
	for {
		if err := rd.skipAtmosphere(); err != nil {
			return nil, rterr.ParseError(rterr.ErrMsgUnexpectedEOF)
		}
		b, err := rd.peekByte()
		if err != nil {
			return nil, rterr.ParseError(rterr.ErrMsgUnexpectedEOF)
		}
		if b == ']' {
			rd.readByte()
			break
		}
		item, err := rd.readExpr(region)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
		region.Protect(item)
	}
	return &object.Array{Slots: items}, nil
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func (rd *Reader) readSymbol() (object.Value, error) {
	var buf []byte
	for {
		b, err := rd.readByte()
		if err != nil {
			break
		}
		if isDelimiter(b) {
			rd.unreadByte()
			break
		}
		buf = append(buf, b)
		if len(buf) > object.MaxSymbolNameLength {
			return nil, rterr.ParseError(rterr.ErrMsgOverlongSymbol, object.MaxSymbolNameLength)
		}
	}
	if len(buf) == 0 {
		return nil, rterr.ParseError(rterr.ErrMsgUnexpectedEOF)
	}
	sym, err := rd.symtab.Intern(string(buf))
	if err != nil {
		return nil, rterr.ParseError("%s", err)
	}
	return sym, nil
}
