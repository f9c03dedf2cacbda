package ir

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// Path addresses a value inside a tree: "$" is the root, ".key" selects a
// compound entry, "[i]" a list or array element. Keys containing any of
// "'.*$[]" are written quoted: $.'a.b'[0].
type Path struct {
	IndexAll bool
	Index    *int
	Field    *string
	Subtree  bool
	Next     *Path
}

func (p *Path) String() string {
	buf := bytes.NewBuffer([]byte{'$'})
	x := p
	for x != nil {
		if x.Subtree {
			buf.WriteString("..")
			x = x.Next
			if x != nil && x.Field != nil {
				buf.WriteString(PathField(*x.Field))
				x = x.Next
			}
			continue
		}
		if x.IndexAll {
			buf.WriteString("[*]")
			x = x.Next
			continue
		}
		if x.Field != nil {
			buf.WriteString("." + PathField(*x.Field))
			x = x.Next
			continue
		}
		if x.Index != nil {
			fmt.Fprintf(buf, "[%d]", *x.Index)
			x = x.Next
			continue
		}
		x = x.Next
	}
	return buf.String()
}

// IsRoot reports whether p addresses the root itself.
func (p *Path) IsRoot() bool {
	return p == nil || (p.Field == nil && p.Index == nil && !p.IndexAll && !p.Subtree && p.Next == nil)
}

func ParsePath(p string) (*Path, error) {
	if len(p) == 0 || p[0] != '$' {
		return nil, fmt.Errorf("%w: path %q should start with '$'", ErrPath, p)
	}
	root := &Path{}
	if len(p) == 1 {
		return root, nil
	}
	if err := parseFrag(p[1:], root); err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrPath, p, err)
	}
	return root, nil
}

func parseFrag(frag string, parent *Path) error {
	if len(frag) == 0 {
		return nil
	}
	switch frag[0] {
	case '.':
		if len(frag) > 1 && frag[1] == '.' {
			parent.Subtree = true
			rest := frag[2:]
			// a bare key may follow "..": $..id
			if rest != "" && rest[0] != '.' && rest[0] != '[' {
				rest = "." + rest
			}
			next := &Path{}
			if err := parseFrag(rest, next); err != nil {
				return err
			}
			parent.Next = next
			return nil
		}
		field, rest, err := parseField(frag[1:])
		if err != nil {
			return err
		}
		parent.Field = &field
		if len(rest) == 0 {
			return nil
		}
		next := &Path{}
		if err := parseFrag(rest, next); err != nil {
			return err
		}
		parent.Next = next
		return nil
	case '[':
		i := strings.IndexByte(frag[1:], ']')
		if i == -1 {
			return fmt.Errorf("expected '[' <index> ']'")
		}
		index, all, err := parseIndex(frag[1 : i+1])
		if err != nil {
			return err
		}
		parent.IndexAll = all
		if !all {
			parent.Index = &index
		}
		if len(frag) == i+2 {
			return nil
		}
		next := &Path{}
		if err := parseFrag(frag[i+2:], next); err != nil {
			return err
		}
		parent.Next = next
		return nil
	default:
		return fmt.Errorf("expected '.' or '['")
	}
}

func parseIndex(is string) (index int, all bool, err error) {
	if len(is) == 1 && is[0] == '*' {
		return 0, true, nil
	}
	u64, err := strconv.ParseUint(is, 10, 31)
	if err != nil {
		return 0, false, err
	}
	return int(u64), false, nil
}

func parseField(frag string) (field, rest string, err error) {
	if len(frag) == 0 {
		return "", "", fmt.Errorf("expected field at end of string")
	}
	if frag[0] != '\'' {
		i := strings.IndexAny(frag, ".[")
		if i == -1 {
			return frag, "", nil
		}
		if i == 0 {
			return "", "", fmt.Errorf("empty field")
		}
		return frag[:i], frag[i:], nil
	}
	escaped := false
	res := make([]byte, 0, len(frag))
	for i := 1; i < len(frag); i++ {
		c := frag[i]
		switch c {
		case '\\':
			if escaped {
				escaped = false
				res = append(res, c)
				continue
			}
			escaped = true
		case '\'':
			if !escaped {
				return string(res), frag[i+1:], nil
			}
			fallthrough
		default:
			escaped = false
			res = append(res, c)
		}
	}
	return "", "", fmt.Errorf("end of string scanning for \"'\"")
}

// PathField quotes f for use as a path field when needed.
func PathField(f string) string {
	if f != "" && strings.IndexAny(f, "'.*$[]\\") == -1 {
		return f
	}
	f = strings.ReplaceAll(f, "\\", "\\\\")
	return "'" + strings.ReplaceAll(f, "'", "\\'") + "'"
}

// Get returns the value at path p in v. The result aliases v.
func Get(v Value, p string) (Value, error) {
	yp, err := ParsePath(p)
	if err != nil {
		return nil, err
	}
	return GetPath(v, yp)
}

func GetPath(v Value, yp *Path) (Value, error) {
	res := v
	for ; yp != nil; yp = yp.Next {
		if yp.IndexAll {
			return nil, fmt.Errorf("%w: any index in get", ErrPath)
		}
		if yp.Subtree {
			return nil, fmt.Errorf("%w: recurse .. in get", ErrPath)
		}
		switch {
		case yp.Index != nil:
			elt, err := index(res, *yp.Index)
			if err != nil {
				return nil, err
			}
			res = elt
		case yp.Field != nil:
			c, ok := res.(Compound)
			if !ok {
				return nil, fmt.Errorf("%w: expected Compound, got %s", ErrKind, typeOf(res))
			}
			child, ok := c[*yp.Field]
			if !ok {
				return nil, fmt.Errorf("%w: key %q", ErrNotFound, *yp.Field)
			}
			res = child
		case yp.Next != nil:
			return nil, fmt.Errorf("%w: unexpected next w/out index or field", ErrPath)
		}
	}
	return res, nil
}

func index(v Value, i int) (Value, error) {
	n, err := Len(v)
	if err != nil {
		return nil, err
	}
	if i < 0 || i >= n {
		return nil, fmt.Errorf("%w: %d (len %d)", ErrIndex, i, n)
	}
	switch x := v.(type) {
	case ByteArray:
		return Byte(x[i]), nil
	case IntArray:
		return Int(x[i]), nil
	case LongArray:
		return Long(x[i]), nil
	case List:
		return x.At(i), nil
	}
	panic("indexable")
}

// Len returns the number of elements of an array, list or compound.
func Len(v Value) (int, error) {
	switch x := v.(type) {
	case ByteArray:
		return len(x), nil
	case IntArray:
		return len(x), nil
	case LongArray:
		return len(x), nil
	case List:
		return x.Len(), nil
	case Compound:
		return len(x), nil
	}
	return 0, fmt.Errorf("%w: %s has no elements", ErrKind, typeOf(v))
}

// Set stores nv at path p in v and returns the resulting root, which is nv
// itself when p is "$". Compound entries are created when missing; an index
// equal to the length of a list or array appends.
func Set(v Value, p string, nv Value) (Value, error) {
	yp, err := ParsePath(p)
	if err != nil {
		return nil, err
	}
	if nv == nil {
		return nil, fmt.Errorf("%w: cannot set nil value", ErrKind)
	}
	return setPath(v, yp, nv)
}

func setPath(cur Value, yp *Path, nv Value) (Value, error) {
	if yp.IsRoot() {
		return nv, nil
	}
	if yp.IndexAll || yp.Subtree {
		return nil, fmt.Errorf("%w: wildcard in set", ErrPath)
	}
	if yp.Field != nil {
		c, ok := cur.(Compound)
		if !ok {
			return nil, fmt.Errorf("%w: expected Compound, got %s", ErrKind, typeOf(cur))
		}
		field := *yp.Field
		if yp.Next == nil {
			if c == nil {
				c = Compound{}
			}
			c[field] = nv
			return c, nil
		}
		child, ok := c[field]
		if !ok {
			return nil, fmt.Errorf("%w: key %q", ErrNotFound, field)
		}
		res, err := setPath(child, yp.Next, nv)
		if err != nil {
			return nil, err
		}
		c[field] = res
		return c, nil
	}
	if yp.Index == nil {
		return nil, fmt.Errorf("%w: unexpected next w/out index or field", ErrPath)
	}
	i := *yp.Index
	n, err := Len(cur)
	if err != nil {
		return nil, err
	}
	if _, ok := cur.(Compound); ok {
		return nil, fmt.Errorf("%w: cannot index Compound", ErrKind)
	}
	if i > n || (i == n && yp.Next != nil) {
		return nil, fmt.Errorf("%w: %d (len %d)", ErrIndex, i, n)
	}
	elt := nv
	if yp.Next != nil {
		child, err := index(cur, i)
		if err != nil {
			return nil, err
		}
		if elt, err = setPath(child, yp.Next, nv); err != nil {
			return nil, err
		}
	}
	return setIndex(cur, i, elt)
}

func setIndex(cur Value, i int, elt Value) (Value, error) {
	switch x := cur.(type) {
	case ByteArray:
		b, ok := elt.(Byte)
		if !ok {
			return nil, fmt.Errorf("%w: cannot store %s in ByteArray", ErrKind, typeOf(elt))
		}
		if i == len(x) {
			return append(x, int8(b)), nil
		}
		x[i] = int8(b)
		return x, nil
	case IntArray:
		e, ok := elt.(Int)
		if !ok {
			return nil, fmt.Errorf("%w: cannot store %s in IntArray", ErrKind, typeOf(elt))
		}
		if i == len(x) {
			return append(x, int32(e)), nil
		}
		x[i] = int32(e)
		return x, nil
	case LongArray:
		e, ok := elt.(Long)
		if !ok {
			return nil, fmt.Errorf("%w: cannot store %s in LongArray", ErrKind, typeOf(elt))
		}
		if i == len(x) {
			return append(x, int64(e)), nil
		}
		x[i] = int64(e)
		return x, nil
	case List:
		if i == x.Len() {
			return Append(x, elt)
		}
		if err := SetAt(x, i, elt); err != nil {
			return nil, err
		}
		return x, nil
	}
	panic("indexable")
}

// Delete removes the value at path p from v and returns the resulting root.
// The root itself cannot be deleted.
func Delete(v Value, p string) (Value, error) {
	yp, err := ParsePath(p)
	if err != nil {
		return nil, err
	}
	if yp.IsRoot() {
		return nil, fmt.Errorf("%w: cannot delete root", ErrPath)
	}
	return deletePath(v, yp)
}

func deletePath(cur Value, yp *Path) (Value, error) {
	if yp.IndexAll || yp.Subtree {
		return nil, fmt.Errorf("%w: wildcard in delete", ErrPath)
	}
	if yp.Next != nil {
		var child Value
		var err error
		if yp.Field != nil {
			child, err = GetPath(cur, &Path{Field: yp.Field})
		} else {
			child, err = GetPath(cur, &Path{Index: yp.Index})
		}
		if err != nil {
			return nil, err
		}
		res, err := deletePath(child, yp.Next)
		if err != nil {
			return nil, err
		}
		if yp.Field != nil {
			cur.(Compound)[*yp.Field] = res
			return cur, nil
		}
		return setIndex(cur, *yp.Index, res)
	}
	if yp.Field != nil {
		c, ok := cur.(Compound)
		if !ok {
			return nil, fmt.Errorf("%w: expected Compound, got %s", ErrKind, typeOf(cur))
		}
		if _, ok := c[*yp.Field]; !ok {
			return nil, fmt.Errorf("%w: key %q", ErrNotFound, *yp.Field)
		}
		delete(c, *yp.Field)
		return c, nil
	}
	if yp.Index == nil {
		return nil, fmt.Errorf("%w: unexpected next w/out index or field", ErrPath)
	}
	i := *yp.Index
	if _, err := index(cur, i); err != nil {
		return nil, err
	}
	switch x := cur.(type) {
	case ByteArray:
		return append(x[:i:i], x[i+1:]...), nil
	case IntArray:
		return append(x[:i:i], x[i+1:]...), nil
	case LongArray:
		return append(x[:i:i], x[i+1:]...), nil
	case List:
		return RemoveAt(x, i)
	}
	panic("indexable")
}

// Select returns every value matched by p, which may contain [*] and ..
// wildcards. Matches alias v.
func Select(v Value, p string) ([]Value, error) {
	yp, err := ParsePath(p)
	if err != nil {
		return nil, err
	}
	return selectPath(nil, v, yp), nil
}

func selectPath(dst []Value, v Value, yp *Path) []Value {
	if yp == nil || yp.IsRoot() {
		return append(dst, v)
	}
	if yp.Subtree {
		Visit(v, func(_ string, sub Value) error {
			if !sub.Type().IsLeaf() {
				dst = selectPath(dst, sub, yp.Next)
			}
			return nil
		})
		return dst
	}
	switch {
	case yp.Field != nil:
		c, ok := v.(Compound)
		if !ok {
			return dst
		}
		if child, ok := c[*yp.Field]; ok {
			dst = selectPath(dst, child, yp.Next)
		}
	case yp.IndexAll:
		n, err := Len(v)
		if err != nil {
			return dst
		}
		if c, ok := v.(Compound); ok {
			for _, k := range sortedKeys(c) {
				dst = selectPath(dst, c[k], yp.Next)
			}
			return dst
		}
		for i := range n {
			elt, _ := index(v, i)
			dst = selectPath(dst, elt, yp.Next)
		}
	case yp.Index != nil:
		if _, ok := v.(Compound); ok {
			return dst
		}
		if elt, err := index(v, *yp.Index); err == nil {
			dst = selectPath(dst, elt, yp.Next)
		}
	}
	return dst
}

// Visit calls f on v and every value below it in depth first order, with
// the path of each value relative to v. Compound entries are visited in
// sorted key order. Elements of arrays are not visited individually.
func Visit(v Value, f func(path string, v Value) error) error {
	return visit("$", v, f)
}

func visit(path string, v Value, f func(string, Value) error) error {
	if err := f(path, v); err != nil {
		return err
	}
	switch x := v.(type) {
	case Compound:
		for _, k := range sortedKeys(x) {
			if err := visit(path+"."+PathField(k), x[k], f); err != nil {
				return err
			}
		}
	case List:
		n := x.Len()
		for i := range n {
			if err := visit(path+"["+strconv.Itoa(i)+"]", x.At(i), f); err != nil {
				return err
			}
		}
	}
	return nil
}
