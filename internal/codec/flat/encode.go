package flat

import "strings"

// Marshal renders o as a single-line object with keys in ascending order.
// Keys and non-integer values are quoted; integers are emitted bare.
func Marshal(o Object) string {
	var b strings.Builder
	b.Grow(len(o) * 24)
	b.WriteByte('{')
	for i, key := range o.Keys() {
		if i > 0 {
			b.WriteByte(',')
		}
		writeQuoted(&b, key)
		b.WriteByte(':')
		writeValue(&b, o[key])
	}
	b.WriteByte('}')
	return b.String()
}

func writeValue(b *strings.Builder, v Value) {
	switch v.kind {
	case KindInt:
		b.WriteString(v.String())
	case KindText:
		writeQuoted(b, v.textVal)
	case KindNull, KindBool, KindReal:
		// Only integers travel bare; everything else is quoted text.
		writeQuoted(b, v.String())
	default:
		writeQuoted(b, "")
	}
}

func writeQuoted(b *strings.Builder, s string) {
	b.WriteByte('"')
	b.WriteString(Escape(s))
	b.WriteByte('"')
}

// Escape escapes backslash, double quote, newline, carriage return and tab.
func Escape(s string) string {
	if !strings.ContainsAny(s, "\\\"\n\r\t") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 8)
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}
