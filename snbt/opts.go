package snbt

type PrintOption func(*PrintState)

// Indent sets the number of spaces per nesting level. With 0, the default,
// output is a single line with no spaces.
func Indent(n int) PrintOption {
	return func(ps *PrintState) { ps.indent = n }
}

func PrintColors(c *Colors) PrintOption {
	return func(ps *PrintState) {
		if c == nil {
			ps.Color = nil
			return
		}
		ps.Color = c.Color
	}
}

// SortKeys prints compound entries in sorted key order. It is on by
// default.
func SortKeys(v bool) PrintOption {
	return func(ps *PrintState) { ps.sortKeys = v }
}

// PrintMaxDepth bounds the nesting of lists and compounds printed. Deeper
// (or cyclic) values fail with a custom "depth" error. n <= 0 restores the
// default of 512.
func PrintMaxDepth(n int) PrintOption {
	return func(ps *PrintState) {
		if n <= 0 {
			n = defaultMaxDepth
		}
		ps.maxDepth = n
	}
}

type ParseOption func(*parser)

// MaxDepth bounds the nesting of lists and compounds; n <= 0 restores the
// default of 512.
func MaxDepth(n int) ParseOption {
	return func(p *parser) {
		if n <= 0 {
			n = defaultMaxDepth
		}
		p.maxDepth = n
	}
}
