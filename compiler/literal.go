package compiler

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/risor-io/expr/internal/token"
	"github.com/risor-io/expr/op"
)

var nan = math.NaN()

// minInt64Magnitude is the one integer literal only valid after a minus.
const minInt64Magnitude = "9223372036854775808"

// minInt64 compiles "-9223372036854775808" as a single constant.
func (c *Compiler) minInt64() error {
	if err := c.advance(); err != nil {
		return err
	}
	if c.cfg.NumericMode == NumericDecimal {
		c.emitFloat64(math.MinInt64)
		return nil
	}
	c.emitInteger(math.MinInt64)
	return nil
}

func (c *Compiler) integer() error {
	text := c.literal(c.previous)
	if c.cfg.NumericMode == NumericDecimal {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return c.errorAtPrevious(fmt.Sprintf("'%s' is not a valid 64bit floating point value", text))
		}
		c.emitFloat64(f)
		return nil
	}
	v, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return c.errorAtPrevious(fmt.Sprintf("'%s' is not a valid integer value", text))
	}
	c.emitInteger(v)
	return nil
}

func (c *Compiler) decimal() error {
	text := c.literal(c.previous)
	bits := 64
	if c.previous.Type == token.FLOAT32 {
		bits = 32
		text = strings.TrimSuffix(text, "f")
	}
	if strings.HasSuffix(text, ".") {
		text += "0"
	}
	f, err := strconv.ParseFloat(text, bits)
	if err != nil {
		return c.errorAtPrevious(fmt.Sprintf("'%s' is not a valid %dbit floating point value", text, bits))
	}
	switch c.cfg.NumericMode {
	case NumericInteger:
		t := math.Trunc(f)
		if t < math.MinInt64 || t >= math.MaxInt64 {
			return c.errorAtPrevious(fmt.Sprintf("'%s' is out of range for an integer value", text))
		}
		c.emitInteger(int64(t))
	default:
		if bits == 32 {
			c.emitFloat32(float32(f))
		} else {
			c.emitFloat64(f)
		}
	}
	return nil
}

func (c *Compiler) str() error {
	raw := c.literal(c.previous)
	// Strip the delimiting quotes.
	value := unescape(raw[1 : len(raw)-1])
	c.emit(op.LoadString, uint64(c.stringIndexOf(value)))
	return nil
}

// unescape decodes backslash escapes. Unknown or incomplete escapes are
// kept as written.
func unescape(s string) string {
	if strings.IndexByte(s, '\\') < 0 {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if ch != '\\' || i+1 >= len(s) {
			b.WriteByte(ch)
			continue
		}
		next := s[i+1]
		if r, ok := simpleEscapes[next]; ok {
			b.WriteByte(r)
			i++
			continue
		}
		if next == 'u' && i+6 <= len(s) {
			if code, err := strconv.ParseUint(s[i+2:i+6], 16, 32); err == nil {
				var enc [utf8.UTFMax]byte
				n := utf8.EncodeRune(enc[:], rune(code))
				b.Write(enc[:n])
				i += 5
				continue
			}
		}
		b.WriteByte(ch)
	}
	return b.String()
}

var simpleEscapes = map[byte]byte{
	'\'': '\'',
	'"':  '"',
	'\\': '\\',
	'0':  0,
	'a':  '\a',
	'b':  '\b',
	'f':  '\f',
	'n':  '\n',
	'r':  '\r',
	't':  '\t',
	'v':  '\v',
}
