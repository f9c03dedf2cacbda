package libdiff

import (
	"math"
	"strconv"
	"strings"

	"github.com/signadot/nbt-format/go-nbt/ir"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// Diff returns the changes turning from into to, or nil when the trees
// are equal. Compound entries are matched by key. List elements are
// matched by diffing summaries of their elements, so an insertion in the
// middle of a list is one change rather than a replacement of its tail.
func Diff(from, to ir.Value) []Change {
	return diff(nil, "$", from, to)
}

func diff(dst []Change, path string, from, to ir.Value) []Change {
	switch {
	case from == nil && to == nil:
		return dst
	case from == nil:
		return append(dst, Change{Path: path, Op: Insert, To: to})
	case to == nil:
		return append(dst, Change{Path: path, Op: Delete, From: from})
	case from.Type() != to.Type():
		return append(dst, Change{Path: path, Op: Replace, From: from, To: to})
	}
	switch x := from.(type) {
	case ir.Compound:
		return diffCompound(dst, path, x, to.(ir.Compound))
	case ir.List:
		y := to.(ir.List)
		if x.ElemType() != y.ElemType() {
			return append(dst, Change{Path: path, Op: Replace, From: from, To: to})
		}
		return diffList(dst, path, x, y)
	}
	if ir.Equal(from, to) {
		return dst
	}
	return append(dst, Change{Path: path, Op: Replace, From: from, To: to})
}

// we map each key to a rune and diff the two sorted key sequences; keys
// only in from are deleted, keys only in to inserted, and common keys
// recursed into.
func diffCompound(dst []Change, path string, from, to ir.Compound) []Change {
	fromKeys, toKeys := from.Keys(), to.Keys()
	m := map[string]rune{}
	fromRunes := mapKeys(m, fromKeys)
	toRunes := mapKeys(m, toKeys)
	diffs := diffpatch.New().DiffMainRunes(fromRunes, toRunes, false)
	fi, ti := 0, 0
	for i := range diffs {
		n := len([]rune(diffs[i].Text))
		switch diffs[i].Type {
		case diffpatch.DiffDelete:
			for range n {
				k := fromKeys[fi]
				dst = append(dst, Change{Path: keyPath(path, k), Op: Delete, From: from[k]})
				fi++
			}
		case diffpatch.DiffInsert:
			for range n {
				k := toKeys[ti]
				dst = append(dst, Change{Path: keyPath(path, k), Op: Insert, To: to[k]})
				ti++
			}
		case diffpatch.DiffEqual:
			for range n {
				k := fromKeys[fi]
				dst = diff(dst, keyPath(path, k), from[k], to[k])
				fi++
				ti++
			}
		}
	}
	return dst
}

// elements are summarised as kind plus value for leaves and kind alone for
// lists and compounds, so that containers line up and are recursed into.
// A run of deletes followed by a run of inserts is paired up into
// replacements.
func diffList(dst []Change, path string, from, to ir.List) []Change {
	m := map[string]rune{}
	fromRunes := mapValues(m, from)
	toRunes := mapValues(m, to)
	diffs := diffpatch.New().DiffMainRunes(fromRunes, toRunes, false)

	fi, ti, ri := 0, 0, 0
	for i := 0; i < len(diffs); i++ {
		d := &diffs[i]
		n := len([]rune(d.Text))
		switch d.Type {
		case diffpatch.DiffEqual:
			for range n {
				dst = diff(dst, indexPath(path, ri), from.At(fi), to.At(ti))
				fi++
				ti++
				ri++
			}
		case diffpatch.DiffDelete:
			ins := 0
			if i+1 < len(diffs) && diffs[i+1].Type == diffpatch.DiffInsert {
				ins = len([]rune(diffs[i+1].Text))
				i++
			}
			paired := min(n, ins)
			for range paired {
				dst = diff(dst, indexPath(path, ri), from.At(fi), to.At(ti))
				fi++
				ti++
				ri++
			}
			for range n - paired {
				dst = append(dst, Change{Path: indexPath(path, ri), Op: Delete, From: from.At(fi)})
				fi++
			}
			for range ins - paired {
				dst = append(dst, Change{Path: indexPath(path, ri), Op: Insert, To: to.At(ti)})
				ti++
				ri++
			}
		case diffpatch.DiffInsert:
			for range n {
				dst = append(dst, Change{Path: indexPath(path, ri), Op: Insert, To: to.At(ti)})
				ti++
				ri++
			}
		}
	}
	return dst
}

func keyPath(path, k string) string {
	return path + "." + ir.PathField(k)
}

func indexPath(path string, i int) string {
	return path + "[" + strconv.Itoa(i) + "]"
}

// runes are allocated past the surrogate range so that no summary maps to
// an invalid code point.
func nextRune(m map[string]rune) rune {
	r := rune(len(m))
	if r >= 0xD800 {
		r += 0x800
	}
	return r
}

func mapKeys(m map[string]rune, keys []string) []rune {
	rs := make([]rune, len(keys))
	for i, k := range keys {
		r, ok := m[k]
		if !ok {
			r = nextRune(m)
			m[k] = r
		}
		rs[i] = r
	}
	return rs
}

func mapValues(m map[string]rune, l ir.List) []rune {
	n := l.Len()
	rs := make([]rune, n)
	for i := range n {
		sum := summaryStr(l.At(i))
		r, ok := m[sum]
		if !ok {
			r = nextRune(m)
			m[sum] = r
		}
		rs[i] = r
	}
	return rs
}

func summaryStr(v ir.Value) string {
	switch x := v.(type) {
	case ir.Compound, ir.List:
		return v.Type().String()
	case ir.Byte, ir.Short, ir.Int, ir.Long:
		i, _ := ir.AsInt64(x)
		return v.Type().String() + "-" + strconv.FormatInt(i, 10)
	case ir.Float:
		return v.Type().String() + "-" + strconv.FormatUint(uint64(math.Float32bits(float32(x))), 16)
	case ir.Double:
		return v.Type().String() + "-" + strconv.FormatUint(math.Float64bits(float64(x)), 16)
	case ir.String:
		if strings.Contains(string(x), "\n") {
			return v.Type().String() + "/m"
		}
		return v.Type().String() + "-" + string(x)
	case ir.ByteArray, ir.IntArray, ir.LongArray:
		return v.Type().String() + "-" + strconv.FormatUint(ir.Hash(v), 16)
	default:
		panic("type")
	}
}
