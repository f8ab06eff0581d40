package reader

import (
	"strconv"

	"github.com/philisp-go/philisp/internal/object"
	"github.com/philisp-go/philisp/internal/rterr"
)

// readNumber parses an unsigned integer or float, per spec.md §4.4:
// digit or '.' digit starts the token, 'e' introduces a positive
// decimal exponent, floats admit fractional and exponent parts.
func (rd *Reader) readNumber() (object.Value, error) {
	var buf []byte
	isFloat := false

	for {
		b, err := rd.readByte()
		if err != nil {
			break
		}
		switch {
		case isDigit(b):
			buf = append(buf, b)
		case b == '.' && !isFloat:
			isFloat = true
			buf = append(buf, b)
		case (b == 'e' || b == 'E') && len(buf) > 0:
			isFloat = true
			buf = append(buf, 'e')
			nb, perr := rd.peekByte()
			if perr == nil && nb == '+' {
				rd.readByte()
			}
		default:
			rd.unreadByte()
			goto done
		}
	}
done:
	if len(buf) == 0 {
		return nil, rterr.ParseError(rterr.ErrMsgUnexpectedEOF)
	}
	if isFloat {
		f, err := strconv.ParseFloat(string(buf), 64)
		if err != nil {
			return nil, rterr.ParseError("invalid float literal %q", string(buf))
		}
		return object.Float(f), nil
	}
	n, err := strconv.ParseInt(string(buf), 10, 32)
	if err != nil {
		return nil, rterr.ParseError("invalid integer literal %q", string(buf))
	}
	return object.Integer(n), nil
}

// readString parses a "..." literal with C-style escapes. The opening
// quote has already been consumed by the caller.
func (rd *Reader) readString() (object.Value, error) {
	var buf []byte
	for {
		b, err := rd.readByte()
		if err != nil {
			return nil, rterr.ParseError(rterr.ErrMsgUnexpectedEOF)
		}
		if b == '"' {
			break
		}
		if b == '\\' {
			c, err := rd.readEscape()
			if err != nil {
				return nil, err
			}
			buf = append(buf, c)
			continue
		}
		buf = append(buf, b)
	}
	return object.NewStringFromBytes(buf), nil
}

// readCharacter parses a ?c literal; the leading '?' has already been
// consumed.
func (rd *Reader) readCharacter() (object.Value, error) {
	b, err := rd.mustByte()
	if err != nil {
		return nil, err
	}
	if b == '\\' {
		c, err := rd.readEscape()
		if err != nil {
			return nil, err
		}
		return object.Character(c), nil
	}
	return object.Character(b), nil
}

// readEscape parses the character(s) after a backslash, common to
// string and character literals: \a \b \f \n \r \t \v \\ \" , \xHH ,
// and \NNN octal (up to 3 digits).
func (rd *Reader) readEscape() (byte, error) {
	b, err := rd.mustByte()
	if err != nil {
		return 0, err
	}
	switch b {
	case 'a':
		return '\a', nil
	case 'b':
		return '\b', nil
	case 'f':
		return '\f', nil
	case 'n':
		return '\n', nil
	case 'r':
		return '\r', nil
	case 't':
		return '\t', nil
	case 'v':
		return '\v', nil
	case '\\':
		return '\\', nil
	case '"':
		return '"', nil
	case 'x':
		// spec.md's open question: the hex accumulator is not
		// explicitly zeroed in the reference; resolved here by
		// initializing to 0 before accumulating digits.
		var acc byte
		n := 0
		for n < 2 {
			hb, perr := rd.peekByte()
			if perr != nil || !isHexDigit(hb) {
				break
			}
			rd.readByte()
			acc = acc*16 + hexValue(hb)
			n++
		}
		if n == 0 {
			return 0, rterr.ParseError(rterr.ErrMsgInvalidEscape, "\\x")
		}
		return acc, nil
	default:
		if b >= '0' && b <= '7' {
			acc := b - '0'
			n := 1
			for n < 3 {
				ob, perr := rd.peekByte()
				if perr != nil || ob < '0' || ob > '7' {
					break
				}
				rd.readByte()
				acc = acc*8 + (ob - '0')
				n++
			}
			return acc, nil
		}
		return 0, rterr.ParseError(rterr.ErrMsgInvalidEscape, "\\"+string(b))
	}
}

func isHexDigit(b byte) bool {
	return isDigit(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

func hexValue(b byte) byte {
	switch {
	case isDigit(b):
		return b - '0'
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10
	default:
		return b - 'A' + 10
	}
}
