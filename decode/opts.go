package decode

// DefaultMaxDepth bounds the nesting of lists and compounds.
const DefaultMaxDepth = 512

type decOpts struct {
	maxDepth     int
	compoundRoot bool
	strict       bool
}

type DecodeOption func(*decOpts)

// MaxDepth sets the maximum nesting of lists and compounds. Deeper input is
// reported as malformed. n <= 0 restores DefaultMaxDepth.
func MaxDepth(n int) DecodeOption {
	return func(o *decOpts) {
		if n <= 0 {
			n = DefaultMaxDepth
		}
		o.maxDepth = n
	}
}

// RequireCompoundRoot rejects documents whose root is not a Compound.
func RequireCompoundRoot() DecodeOption {
	return func(o *decOpts) { o.compoundRoot = true }
}

// Strict rejects input with bytes after the root document.
func Strict() DecodeOption {
	return func(o *decOpts) { o.strict = true }
}
