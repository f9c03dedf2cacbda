package snbt

import (
	"bufio"
	"io"
	"maps"
	"math"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/signadot/nbt-format/go-nbt/ir"
	"github.com/signadot/nbt-format/go-nbt/nbterr"
)

type PrintState struct {
	w        *bufio.Writer
	depth    int
	maxDepth int
	indent   int
	sortKeys bool

	Color func(ir.Type, ColorAttr, string) string
}

func newPrintState(w io.Writer, opts []PrintOption) *PrintState {
	ps := &PrintState{w: bufio.NewWriter(w), sortKeys: true, maxDepth: defaultMaxDepth}
	for _, opt := range opts {
		opt(ps)
	}
	return ps
}

// Print writes the textual form of v to w.
func Print(v ir.Value, w io.Writer, opts ...PrintOption) error {
	ps := newPrintState(w, opts)
	if err := ps.value(v); err != nil {
		return err
	}
	return ps.flush()
}

// PrintDocument writes name and v as a document, "name: value", followed
// by a newline.
func PrintDocument(name string, v ir.Value, w io.Writer, opts ...PrintOption) error {
	ps := newPrintState(w, opts)
	ps.key(name)
	ps.sep(ir.CompoundType, ":")
	ps.space()
	if err := ps.value(v); err != nil {
		return err
	}
	ps.w.WriteByte('\n')
	return ps.flush()
}

func (ps *PrintState) flush() error {
	if err := ps.w.Flush(); err != nil {
		return nbterr.NewIO("write", -1, err)
	}
	return nil
}

func (ps *PrintState) color(t ir.Type, a ColorAttr, s string) {
	if ps.Color != nil {
		s = ps.Color(t, a, s)
	}
	ps.w.WriteString(s)
}

func (ps *PrintState) sep(t ir.Type, s string) {
	ps.color(t, SepColor, s)
}

func (ps *PrintState) space() {
	if ps.indent > 0 {
		ps.w.WriteByte(' ')
	}
}

func (ps *PrintState) nl() {
	if ps.indent == 0 {
		return
	}
	ps.w.WriteByte('\n')
	ps.w.WriteString(strings.Repeat(" ", ps.indent*ps.depth))
}

func (ps *PrintState) key(k string) {
	if !isBare(k) {
		k = Quote(k)
	}
	ps.color(ir.CompoundType, FieldColor, k)
}

func (ps *PrintState) value(v ir.Value) error {
	switch x := v.(type) {
	case nil:
		return nbterr.NewCustom("print", "nil value")
	case ir.Byte:
		ps.number(v.Type(), strconv.FormatInt(int64(x), 10), "b")
	case ir.Short:
		ps.number(v.Type(), strconv.FormatInt(int64(x), 10), "s")
	case ir.Int:
		ps.number(v.Type(), strconv.FormatInt(int64(x), 10), "")
	case ir.Long:
		ps.number(v.Type(), strconv.FormatInt(int64(x), 10), "L")
	case ir.Float:
		ps.number(v.Type(), formatFloat(float64(x), 32), "f")
	case ir.Double:
		ps.number(v.Type(), formatFloat(float64(x), 64), "d")
	case ir.String:
		ps.color(v.Type(), ValueColor, Quote(string(x)))
	case ir.ByteArray:
		ps.array(v.Type(), "B", len(x), func(i int) { ps.number(ir.ByteType, strconv.FormatInt(int64(x[i]), 10), "b") })
	case ir.IntArray:
		ps.array(v.Type(), "I", len(x), func(i int) { ps.number(ir.IntType, strconv.FormatInt(int64(x[i]), 10), "") })
	case ir.LongArray:
		ps.array(v.Type(), "L", len(x), func(i int) { ps.number(ir.LongType, strconv.FormatInt(x[i], 10), "L") })
	case ir.Compound:
		return ps.compound(x)
	case ir.List:
		return ps.list(x)
	default:
		panic("type")
	}
	return nil
}

func (ps *PrintState) number(t ir.Type, digits, suffix string) {
	ps.color(t, ValueColor, digits)
	if suffix != "" {
		ps.color(t, SuffixColor, suffix)
	}
}

func formatFloat(f float64, bits int) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Inf"
	case math.IsInf(f, -1):
		return "-Inf"
	}
	return strconv.FormatFloat(f, 'g', -1, bits)
}

func (ps *PrintState) array(t ir.Type, prefix string, n int, elt func(int)) {
	ps.sep(t, "["+prefix+";")
	for i := range n {
		if i > 0 {
			ps.sep(t, ",")
			ps.space()
		}
		elt(i)
	}
	ps.sep(t, "]")
}

func (ps *PrintState) push(rule string) error {
	if ps.depth >= ps.maxDepth {
		return nbterr.NewCustom("depth", "%s nested deeper than %d", rule, ps.maxDepth)
	}
	return nil
}

func (ps *PrintState) compound(c ir.Compound) error {
	if err := ps.push("Compound"); err != nil {
		return err
	}
	ps.sep(ir.CompoundType, "{")
	keys := slices.Collect(maps.Keys(c))
	if ps.sortKeys {
		slices.Sort(keys)
	}
	ps.depth++
	for i, k := range keys {
		if i > 0 {
			ps.sep(ir.CompoundType, ",")
		}
		ps.nl()
		ps.key(k)
		ps.sep(ir.CompoundType, ":")
		ps.space()
		if err := ps.value(c[k]); err != nil {
			return err
		}
	}
	ps.depth--
	if len(keys) > 0 {
		ps.nl()
	}
	ps.sep(ir.CompoundType, "}")
	return nil
}

func (ps *PrintState) list(l ir.List) error {
	if err := ps.push("List"); err != nil {
		return err
	}
	n := l.Len()
	if n == 0 {
		if _, ok := l.(ir.EmptyList); ok {
			ps.sep(ir.ListType, "[]")
			return nil
		}
		// a zero length list keeps its element kind
		ps.sep(ir.ListType, "["+l.ElemType().String()+";]")
		return nil
	}
	broken := !l.ElemType().IsLeaf()
	ps.sep(ir.ListType, "[")
	ps.depth++
	for i := range n {
		if i > 0 {
			ps.sep(ir.ListType, ",")
			if !broken {
				ps.space()
			}
		}
		if broken {
			ps.nl()
		}
		if err := ps.value(l.At(i)); err != nil {
			return err
		}
	}
	ps.depth--
	if broken {
		ps.nl()
	}
	ps.sep(ir.ListType, "]")
	return nil
}

// Quote returns s as a double quoted string literal.
func Quote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		default:
			if r < 0x20 || r == 0x7f {
				b.WriteString(`\u`)
				h := strconv.FormatInt(int64(r), 16)
				b.WriteString(strings.Repeat("0", 4-len(h)))
				b.WriteString(h)
				continue
			}
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

func isBareByte(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' ||
		c == '_' || c == '-' || c == '.' || c == '+'
}

// isBare reports whether a key can be written without quotes.
func isBare(s string) bool {
	if s == "" || !utf8.ValidString(s) {
		return false
	}
	for i := range len(s) {
		if !isBareByte(s[i]) {
			return false
		}
	}
	return true
}

// String returns the single line textual form of v.
func String(v ir.Value) string {
	var b strings.Builder
	if err := Print(v, &b); err != nil {
		return "<" + err.Error() + ">"
	}
	return b.String()
}
