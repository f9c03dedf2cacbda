package snbt

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/signadot/nbt-format/go-nbt/ir"
	"github.com/signadot/nbt-format/go-nbt/nbterr"
)

const defaultMaxDepth = 512

type parser struct {
	s        string
	pos      int
	depth    int
	maxDepth int
}

func newParser(s string, opts []ParseOption) *parser {
	p := &parser{s: s, maxDepth: defaultMaxDepth}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse parses the textual form of a single value.
func Parse(s string, opts ...ParseOption) (ir.Value, error) {
	p := newParser(s, opts)
	v, err := p.value()
	if err != nil {
		return nil, err
	}
	if err := p.end(); err != nil {
		return nil, err
	}
	return v, nil
}

// ParseDocument parses a document as written by PrintDocument. The
// "name:" prefix is optional; without it the name is "".
func ParseDocument(s string, opts ...ParseOption) (string, ir.Value, error) {
	p := newParser(s, opts)
	p.ws()
	name := ""
	start := p.pos
	if k, err := p.key(); err == nil {
		p.ws()
		if p.peek() == ':' {
			p.pos++
			name = k
		} else {
			p.pos = start
		}
	} else {
		p.pos = start
	}
	v, err := p.value()
	if err != nil {
		return "", nil, err
	}
	if err := p.end(); err != nil {
		return "", nil, err
	}
	return name, v, nil
}

func (p *parser) errf(rule, format string, args ...any) error {
	return &nbterr.Error{
		Kind:   nbterr.Custom,
		Rule:   rule,
		Offset: int64(p.pos),
		Msg:    fmt.Sprintf(format, args...),
	}
}

const eof = -1

func (p *parser) peek() int {
	if p.pos >= len(p.s) {
		return eof
	}
	return int(p.s[p.pos])
}

func (p *parser) ws() {
	for p.pos < len(p.s) {
		switch p.s[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

func (p *parser) end() error {
	p.ws()
	if p.pos < len(p.s) {
		return p.errf("end", "unexpected %q after value", p.s[p.pos])
	}
	return nil
}

func (p *parser) word() string {
	start := p.pos
	for p.pos < len(p.s) && isBareByte(p.s[p.pos]) {
		p.pos++
	}
	return p.s[start:p.pos]
}

func (p *parser) push(rule string) error {
	p.depth++
	if p.depth > p.maxDepth {
		return p.errf("depth", "%s nested deeper than %d", rule, p.maxDepth)
	}
	return nil
}

func (p *parser) pop() {
	p.depth--
}

func (p *parser) value() (ir.Value, error) {
	p.ws()
	switch c := p.peek(); c {
	case '{':
		return p.compound()
	case '[':
		return p.list()
	case '"', '\'':
		s, err := p.quoted()
		if err != nil {
			return nil, err
		}
		return ir.String(s), nil
	case eof:
		return nil, p.errf("value", "unexpected end of input")
	default:
		start := p.pos
		w := p.word()
		if w == "" {
			return nil, p.errf("value", "unexpected %q", byte(c))
		}
		v, err := literal(w)
		if err != nil {
			p.pos = start
			return nil, p.errf("number", "%v", err)
		}
		return v, nil
	}
}

func (p *parser) key() (string, error) {
	switch p.peek() {
	case '"', '\'':
		return p.quoted()
	}
	w := p.word()
	if w == "" {
		return "", p.errf("key", "expected key")
	}
	return w, nil
}

func (p *parser) quoted() (string, error) {
	q := p.s[p.pos]
	start := p.pos
	p.pos++
	var b strings.Builder
	for p.pos < len(p.s) {
		c := p.s[p.pos]
		switch c {
		case q:
			p.pos++
			res := b.String()
			if !utf8.ValidString(res) {
				p.pos = start
				return "", p.errf("string", "invalid UTF-8")
			}
			return res, nil
		case '\\':
			p.pos++
			if err := p.escape(&b); err != nil {
				return "", err
			}
		default:
			b.WriteByte(c)
			p.pos++
		}
	}
	p.pos = start
	return "", p.errf("string", "unterminated string")
}

func (p *parser) escape(b *strings.Builder) error {
	if p.pos >= len(p.s) {
		return p.errf("string", "unterminated escape")
	}
	c := p.s[p.pos]
	p.pos++
	switch c {
	case '"', '\'', '\\', '/':
		b.WriteByte(c)
	case 'n':
		b.WriteByte('\n')
	case 't':
		b.WriteByte('\t')
	case 'r':
		b.WriteByte('\r')
	case 'b':
		b.WriteByte('\b')
	case 'f':
		b.WriteByte('\f')
	case 'u':
		r, err := p.hex4()
		if err != nil {
			return err
		}
		if utf16.IsSurrogate(r) && strings.HasPrefix(p.s[p.pos:], `\u`) {
			save := p.pos
			p.pos += 2
			r2, err := p.hex4()
			if err == nil {
				if d := utf16.DecodeRune(r, r2); d != utf8.RuneError {
					b.WriteRune(d)
					return nil
				}
			}
			p.pos = save
		}
		if utf16.IsSurrogate(r) {
			return p.errf("string", "unpaired surrogate \\u%04x", r)
		}
		b.WriteRune(r)
	default:
		return p.errf("string", "unknown escape \\%c", c)
	}
	return nil
}

func (p *parser) hex4() (rune, error) {
	if p.pos+4 > len(p.s) {
		return 0, p.errf("string", "short \\u escape")
	}
	u, err := strconv.ParseUint(p.s[p.pos:p.pos+4], 16, 16)
	if err != nil {
		return 0, p.errf("string", "bad \\u escape %q", p.s[p.pos:p.pos+4])
	}
	p.pos += 4
	return rune(u), nil
}

func (p *parser) compound() (ir.Value, error) {
	if err := p.push("Compound"); err != nil {
		return nil, err
	}
	defer p.pop()
	p.pos++
	res := ir.Compound{}
	p.ws()
	if p.peek() == '}' {
		p.pos++
		return res, nil
	}
	for {
		p.ws()
		k, err := p.key()
		if err != nil {
			return nil, err
		}
		p.ws()
		if p.peek() != ':' {
			return nil, p.errf("compound", "expected ':' after key %q", k)
		}
		p.pos++
		v, err := p.value()
		if err != nil {
			return nil, err
		}
		res[k] = v
		p.ws()
		switch p.peek() {
		case ',':
			p.pos++
		case '}':
			p.pos++
			return res, nil
		default:
			return nil, p.errf("compound", "expected ',' or '}'")
		}
	}
}

// elements parses values up to and including the closing bracket.
func (p *parser) elements() ([]ir.Value, error) {
	var vs []ir.Value
	p.ws()
	if p.peek() == ']' {
		p.pos++
		return vs, nil
	}
	for {
		v, err := p.value()
		if err != nil {
			return nil, err
		}
		vs = append(vs, v)
		p.ws()
		switch p.peek() {
		case ',':
			p.pos++
		case ']':
			p.pos++
			return vs, nil
		default:
			return nil, p.errf("list", "expected ',' or ']'")
		}
	}
}

func (p *parser) list() (ir.Value, error) {
	if err := p.push("List"); err != nil {
		return nil, err
	}
	defer p.pop()
	open := p.pos
	p.pos++
	p.ws()
	prefixStart := p.pos
	prefix := p.word()
	p.ws()
	if prefix == "" || p.peek() != ';' {
		p.pos = prefixStart
		vs, err := p.elements()
		if err != nil {
			return nil, err
		}
		if len(vs) == 0 {
			return ir.EmptyList{}, nil
		}
		l, err := ir.NewList(vs[0].Type(), vs)
		if err != nil {
			p.pos = open
			return nil, p.errf("list", "%v", err)
		}
		return l, nil
	}
	p.pos++
	switch prefix {
	case "B":
		return array[ir.ByteArray](p, open, "ByteArray", math.MinInt8, math.MaxInt8)
	case "I":
		return array[ir.IntArray](p, open, "IntArray", math.MinInt32, math.MaxInt32)
	case "L":
		return array[ir.LongArray](p, open, "LongArray", math.MinInt64, math.MaxInt64)
	}
	t, err := ir.ParseType(prefix)
	if err != nil || !t.IsValue() {
		p.pos = prefixStart
		return nil, p.errf("list", "unknown list prefix %q", prefix)
	}
	vs, err := p.elements()
	if err != nil {
		return nil, err
	}
	l, err := ir.NewList(t, vs)
	if err != nil {
		p.pos = open
		return nil, p.errf("list", "%v", err)
	}
	return l, nil
}

func array[L interface {
	ir.Value
	~[]E
}, E int8 | int32 | int64](p *parser, open int, kind string, lo, hi int64) (ir.Value, error) {
	vs, err := p.elements()
	if err != nil {
		return nil, err
	}
	res := make(L, len(vs))
	for i, v := range vs {
		n, ok := ir.AsInt64(v)
		if !ok || n < lo || n > hi {
			p.pos = open
			return nil, p.errf("array", "%s element %d: %s %s out of range", kind, i, v.Type(), String(v))
		}
		res[i] = E(n)
	}
	return res, nil
}

var errRange = errors.New("out of range")

// literal classifies an unquoted word: numbers by suffix, booleans as
// bytes, anything else as a string.
func literal(w string) (ir.Value, error) {
	switch w {
	case "true":
		return ir.Byte(1), nil
	case "false":
		return ir.Byte(0), nil
	case "NaNf":
		return ir.Float(math.NaN()), nil
	case "Inff", "+Inff":
		return ir.Float(math.Inf(1)), nil
	case "-Inff":
		return ir.Float(math.Inf(-1)), nil
	case "NaNd":
		return ir.Double(math.NaN()), nil
	case "Infd", "+Infd":
		return ir.Double(math.Inf(1)), nil
	case "-Infd":
		return ir.Double(math.Inf(-1)), nil
	}
	if isInt(w) {
		i, err := strconv.ParseInt(w, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("Int %s %w", w, errRange)
		}
		return ir.Int(i), nil
	}
	if isDecimal(w) {
		f, err := strconv.ParseFloat(w, 64)
		if err != nil {
			return nil, fmt.Errorf("Double %s %w", w, errRange)
		}
		return ir.Double(f), nil
	}
	body, suffix := w[:len(w)-1], w[len(w)-1]
	switch suffix {
	case 'b', 'B':
		if isInt(body) {
			i, err := strconv.ParseInt(body, 10, 8)
			if err != nil {
				return nil, fmt.Errorf("Byte %s %w", w, errRange)
			}
			return ir.Byte(i), nil
		}
	case 's', 'S':
		if isInt(body) {
			i, err := strconv.ParseInt(body, 10, 16)
			if err != nil {
				return nil, fmt.Errorf("Short %s %w", w, errRange)
			}
			return ir.Short(i), nil
		}
	case 'l', 'L':
		if isInt(body) {
			i, err := strconv.ParseInt(body, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("Long %s %w", w, errRange)
			}
			return ir.Long(i), nil
		}
	case 'f', 'F':
		if isDecimal(body) {
			f, err := strconv.ParseFloat(body, 32)
			if err != nil {
				return nil, fmt.Errorf("Float %s %w", w, errRange)
			}
			return ir.Float(f), nil
		}
	case 'd', 'D':
		if isDecimal(body) {
			f, err := strconv.ParseFloat(body, 64)
			if err != nil {
				return nil, fmt.Errorf("Double %s %w", w, errRange)
			}
			return ir.Double(f), nil
		}
	}
	return ir.String(w), nil
}

func digits(s string) int {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	return i
}

func sign(s string) string {
	if s != "" && (s[0] == '+' || s[0] == '-') {
		return s[1:]
	}
	return s
}

func isInt(s string) bool {
	s = sign(s)
	return s != "" && digits(s) == len(s)
}

// isDecimal reports whether s is a signed decimal with a fraction and/or
// an exponent, or a plain integer.
func isDecimal(s string) bool {
	s = sign(s)
	n := digits(s)
	s = s[n:]
	if s != "" && s[0] == '.' {
		m := digits(s[1:])
		n += m
		s = s[1+m:]
	}
	if n == 0 {
		return false
	}
	if s != "" && (s[0] == 'e' || s[0] == 'E') {
		e := sign(s[1:])
		m := digits(e)
		if m == 0 {
			return false
		}
		s = e[m:]
	}
	return s == ""
}
