package flat

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// ErrNested is reported when a value opens an object or an array.
var ErrNested = errors.New("nested objects and arrays are not supported")

// SyntaxError describes malformed input and the byte offset where it was found.
type SyntaxError struct {
	Offset  int
	Message string
	Err     error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("flat: %s at offset %d", e.Message, e.Offset)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

// Unmarshal parses a flat object produced by Marshal.
//
// Quoted values become text with escapes undone. Bare values are typed:
// null, true and false (any case) map to their kinds, -?\d+ becomes an
// int, -?\d+\.\d+ a real, and any other bare token is kept as raw text.
// Whitespace between tokens is ignored. Duplicate keys keep the last value.
func Unmarshal(s string) (Object, error) {
	l := &lexer{input: s}
	obj := Object{}

	l.skipSpace()
	if !l.consume('{') {
		return nil, l.errorf("expected '{'")
	}
	l.skipSpace()
	if l.consume('}') {
		return obj, l.expectEnd()
	}

	for {
		l.skipSpace()
		key, err := l.readKey()
		if err != nil {
			return nil, err
		}
		l.skipSpace()
		if !l.consume(':') {
			return nil, l.errorf("expected ':' after key %q", key)
		}
		l.skipSpace()
		val, err := l.readValue()
		if err != nil {
			return nil, err
		}
		obj[key] = val

		l.skipSpace()
		if l.consume(',') {
			continue
		}
		if l.consume('}') {
			break
		}
		return nil, l.errorf("expected ',' or '}'")
	}
	return obj, l.expectEnd()
}

type lexer struct {
	input string
	pos   int
}

func (l *lexer) eof() bool {
	return l.pos >= len(l.input)
}

func (l *lexer) peek() byte {
	if l.eof() {
		return 0
	}
	return l.input[l.pos]
}

func (l *lexer) consume(c byte) bool {
	if !l.eof() && l.input[l.pos] == c {
		l.pos++
		return true
	}
	return false
}

func (l *lexer) skipSpace() {
	for !l.eof() {
		switch l.input[l.pos] {
		case ' ', '\t', '\n', '\r':
			l.pos++
		default:
			return
		}
	}
}

func (l *lexer) expectEnd() error {
	l.skipSpace()
	if !l.eof() {
		return l.errorf("unexpected data after object")
	}
	return nil
}

func (l *lexer) errorf(format string, args ...any) *SyntaxError {
	return &SyntaxError{Offset: l.pos, Message: fmt.Sprintf(format, args...)}
}

func (l *lexer) readKey() (string, error) {
	switch l.peek() {
	case '"':
		return l.readQuoted()
	case ':', ',', '}', 0:
		return "", l.errorf("missing key")
	}
	start := l.pos
	for !l.eof() && l.input[l.pos] != ':' {
		l.pos++
	}
	return strings.TrimSpace(l.input[start:l.pos]), nil
}

func (l *lexer) readValue() (Value, error) {
	switch l.peek() {
	case '"':
		s, err := l.readQuoted()
		if err != nil {
			return Value{}, err
		}
		return Text(s), nil
	case '{', '[':
		return Value{}, &SyntaxError{Offset: l.pos, Message: "nested value", Err: ErrNested}
	}

	start := l.pos
	for !l.eof() {
		c := l.input[l.pos]
		if c == ',' || c == '}' {
			break
		}
		l.pos++
	}
	raw := strings.TrimSpace(l.input[start:l.pos])
	if raw == "" {
		return Value{}, l.errorf("missing value")
	}
	return classifyBare(raw), nil
}

// readQuoted reads a double-quoted string starting at the opening quote.
func (l *lexer) readQuoted() (string, error) {
	start := l.pos
	l.pos++ // opening quote

	var b strings.Builder
	for {
		if l.eof() {
			return "", &SyntaxError{Offset: start, Message: "unterminated string"}
		}
		c := l.input[l.pos]
		switch c {
		case '"':
			l.pos++
			return b.String(), nil
		case '\\':
			l.pos++
			if l.eof() {
				return "", &SyntaxError{Offset: start, Message: "unterminated string"}
			}
			if err := l.readEscape(&b); err != nil {
				return "", err
			}
		default:
			b.WriteByte(c)
			l.pos++
		}
	}
}

func (l *lexer) readEscape(b *strings.Builder) error {
	c := l.input[l.pos]
	l.pos++
	switch c {
	case '\\', '"', '/':
		b.WriteByte(c)
	case 'n':
		b.WriteByte('\n')
	case 'r':
		b.WriteByte('\r')
	case 't':
		b.WriteByte('\t')
	case 'b':
		b.WriteByte('\b')
	case 'f':
		b.WriteByte('\f')
	case 'u':
		if l.pos+4 > len(l.input) {
			return l.errorf("short unicode escape")
		}
		n, err := strconv.ParseUint(l.input[l.pos:l.pos+4], 16, 16)
		if err != nil {
			return l.errorf("invalid unicode escape")
		}
		l.pos += 4
		r := rune(n)
		if !utf8.ValidRune(r) {
			r = utf8.RuneError
		}
		b.WriteRune(r)
	default:
		return &SyntaxError{Offset: l.pos - 1, Message: fmt.Sprintf("invalid escape '\\%c'", c)}
	}
	return nil
}

func classifyBare(raw string) Value {
	switch {
	case strings.EqualFold(raw, "null"):
		return Null()
	case strings.EqualFold(raw, "true"):
		return Bool(true)
	case strings.EqualFold(raw, "false"):
		return Bool(false)
	}

	switch numericShape(raw) {
	case shapeInt:
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return Int(n)
		}
		// Out of int64 range; keep the magnitude as a real.
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			return Real(f)
		}
	case shapeReal:
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			return Real(f)
		}
	}
	return Text(raw)
}

type shape uint8

const (
	shapeNone shape = iota
	shapeInt
	shapeReal
)

// numericShape matches -?\d+(\.\d+)?
func numericShape(s string) shape {
	i := 0
	if i < len(s) && s[i] == '-' {
		i++
	}
	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if digits == 0 {
		return shapeNone
	}
	if i == len(s) {
		return shapeInt
	}
	if s[i] != '.' {
		return shapeNone
	}
	i++
	frac := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		frac++
	}
	if frac == 0 || i != len(s) {
		return shapeNone
	}
	return shapeReal
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
