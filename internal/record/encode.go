package record

import (
	"bytes"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
)

// DefaultIndent is the number of spaces per nesting level in Marshal output.
const DefaultIndent = 4

// Marshal writes records as an indented JSON array. The layout matches the
// dictionary files produced by the existing tooling: one element per line,
// ": " between key and value, non-ASCII text left unescaped, floats in
// shortest repr form and no trailing newline.
func Marshal(records []*Record, indent int) ([]byte, error) {
	if indent < 0 {
		return nil, fmt.Errorf("negative indent %d", indent)
	}
	items := make([]Value, len(records))
	for i, r := range records {
		items[i] = Object(r)
	}
	e := &encoder{indent: strings.Repeat(" ", indent)}
	if err := e.value(Array(items...), 0); err != nil {
		return nil, err
	}
	return e.buf.Bytes(), nil
}

type encoder struct {
	buf    bytes.Buffer
	indent string
}

func (e *encoder) newline(depth int) {
	e.buf.WriteByte('\n')
	for i := 0; i < depth; i++ {
		e.buf.WriteString(e.indent)
	}
}

func (e *encoder) value(v Value, depth int) error {
	switch v.kind {
	case KindNull:
		e.buf.WriteString("null")
	case KindBool:
		e.buf.WriteString(v.text)
	case KindNumber:
		s, err := FormatNumber(v.text)
		if err != nil {
			return err
		}
		e.buf.WriteString(s)
	case KindString:
		writeString(&e.buf, v.text)
	case KindArray:
		if len(v.items) == 0 {
			e.buf.WriteString("[]")
			return nil
		}
		e.buf.WriteByte('[')
		for i, item := range v.items {
			if i > 0 {
				e.buf.WriteByte(',')
			}
			e.newline(depth + 1)
			if err := e.value(item, depth+1); err != nil {
				return err
			}
		}
		e.newline(depth)
		e.buf.WriteByte(']')
	case KindObject:
		if v.obj == nil || v.obj.Len() == 0 {
			e.buf.WriteString("{}")
			return nil
		}
		e.buf.WriteByte('{')
		for i, f := range v.obj.fields {
			if i > 0 {
				e.buf.WriteByte(',')
			}
			e.newline(depth + 1)
			writeString(&e.buf, f.Key)
			e.buf.WriteString(": ")
			if err := e.value(f.Value, depth+1); err != nil {
				return err
			}
		}
		e.newline(depth)
		e.buf.WriteByte('}')
	default:
		return fmt.Errorf("cannot encode value of kind %s", v.kind)
	}
	return nil
}

func writeString(buf *bytes.Buffer, s string) {
	buf.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			buf.WriteString(`\"`)
		case '\\':
			buf.WriteString(`\\`)
		case '\b':
			buf.WriteString(`\b`)
		case '\f':
			buf.WriteString(`\f`)
		case '\n':
			buf.WriteString(`\n`)
		case '\r':
			buf.WriteString(`\r`)
		case '\t':
			buf.WriteString(`\t`)
		default:
			if r < 0x20 {
				fmt.Fprintf(buf, `\u%04x`, r)
				continue
			}
			buf.WriteRune(r)
		}
	}
	buf.WriteByte('"')
}

// nonFiniteValue maps the NaN/Infinity/-Infinity literals to their floats.
func nonFiniteValue(lit string) (float64, bool) {
	switch lit {
	case "NaN":
		return math.NaN(), true
	case "Infinity":
		return math.Inf(1), true
	case "-Infinity":
		return math.Inf(-1), true
	}
	return 0, false
}

// IsNaN reports whether v is the NaN literal. A NaN identifier never equals
// anything, itself included.
func (v Value) IsNaN() bool {
	return v.kind == KindNumber && v.text == "NaN"
}

// isIntLiteral reports whether a JSON number literal has no fraction or
// exponent part.
func isIntLiteral(lit string) bool {
	return !strings.ContainsAny(lit, ".eE")
}

// FormatNumber renders a JSON number literal in canonical form: integers
// without leading sign noise, everything else as the shortest float repr.
func FormatNumber(lit string) (string, error) {
	if f, ok := nonFiniteValue(lit); ok {
		return formatFloat(f), nil
	}
	if isIntLiteral(lit) {
		n, ok := new(big.Int).SetString(lit, 10)
		if !ok {
			return "", fmt.Errorf("invalid integer literal %q", lit)
		}
		return n.String(), nil
	}
	f, err := strconv.ParseFloat(lit, 64)
	if err != nil && !math.IsInf(f, 0) {
		return "", fmt.Errorf("invalid number literal %q: %w", lit, err)
	}
	return formatFloat(f), nil
}

// formatFloat prints f with the fewest digits that round-trip, switching to
// exponent form below 1e-4 and from 1e16 on.
func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}

	sci := strconv.FormatFloat(f, 'e', -1, 64)
	mant, expPart, _ := strings.Cut(sci, "e")
	exp, _ := strconv.Atoi(expPart)
	if exp < -4 || exp >= 16 {
		sign := '+'
		if exp < 0 {
			sign = '-'
			exp = -exp
		}
		return fmt.Sprintf("%se%c%02d", mant, sign, exp)
	}

	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
