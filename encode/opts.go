package encode

type EncodeOption func(*EncState)

// SortKeys writes compound entries in sorted key order, making output
// deterministic. It is on by default.
func SortKeys(v bool) EncodeOption {
	return func(es *EncState) { es.sortKeys = v }
}

// DefaultMaxDepth bounds the nesting of lists and compounds. It matches
// the decoder's default so that anything encoded can be read back.
const DefaultMaxDepth = 512

// MaxDepth bounds the nesting of lists and compounds accepted for
// encoding. Deeper (or cyclic) trees are reported as malformed.
// n <= 0 restores DefaultMaxDepth.
func MaxDepth(n int) EncodeOption {
	return func(es *EncState) {
		if n <= 0 {
			n = DefaultMaxDepth
		}
		es.maxDepth = n
	}
}
