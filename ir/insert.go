package ir

import "fmt"

// Insert stores nv at path p in v and returns the resulting root. Where p
// ends in an index, nv is inserted before that element of the list or array
// and the elements after it shift up; otherwise Insert behaves as Set.
func Insert(v Value, p string, nv Value) (Value, error) {
	yp, err := ParsePath(p)
	if err != nil {
		return nil, err
	}
	if nv == nil {
		return nil, fmt.Errorf("%w: cannot insert nil value", ErrKind)
	}
	parent, last := splitLast(yp)
	if last == nil || last.Index == nil {
		return setPath(v, yp, nv)
	}
	pv, err := GetPath(v, parent)
	if err != nil {
		return nil, err
	}
	if _, ok := pv.(Compound); ok {
		return nil, fmt.Errorf("%w: cannot index Compound", ErrKind)
	}
	n, err := Len(pv)
	if err != nil {
		return nil, err
	}
	i := *last.Index
	if i > n {
		return nil, fmt.Errorf("%w: %d (len %d)", ErrIndex, i, n)
	}
	res, err := insertIndex(pv, i, nv)
	if err != nil {
		return nil, err
	}
	return setPath(v, parent, res)
}

// splitLast returns a copy of p without its last segment, and that
// segment. last is nil for the root path.
func splitLast(p *Path) (parent, last *Path) {
	if p.IsRoot() {
		return p, nil
	}
	var segs []*Path
	for x := p; x != nil; x = x.Next {
		segs = append(segs, x)
	}
	last = segs[len(segs)-1]
	parent = &Path{}
	cur := parent
	for j, s := range segs[:len(segs)-1] {
		*cur = *s
		cur.Next = nil
		if j < len(segs)-2 {
			cur.Next = &Path{}
			cur = cur.Next
		}
	}
	return parent, last
}

func insertIndex(cur Value, i int, elt Value) (Value, error) {
	switch x := cur.(type) {
	case ByteArray:
		b, ok := elt.(Byte)
		if !ok {
			return nil, fmt.Errorf("%w: cannot store %s in ByteArray", ErrKind, typeOf(elt))
		}
		return insertAt(x, i, int8(b)), nil
	case IntArray:
		e, ok := elt.(Int)
		if !ok {
			return nil, fmt.Errorf("%w: cannot store %s in IntArray", ErrKind, typeOf(elt))
		}
		return insertAt(x, i, int32(e)), nil
	case LongArray:
		e, ok := elt.(Long)
		if !ok {
			return nil, fmt.Errorf("%w: cannot store %s in LongArray", ErrKind, typeOf(elt))
		}
		return insertAt(x, i, int64(e)), nil
	case EmptyList:
		return Append(x, elt)
	case List:
		if elt.Type() != x.ElemType() {
			return nil, fmt.Errorf("%w: cannot store %s in list of %s", ErrKind, elt.Type(), x.ElemType())
		}
		return NewList(x.ElemType(), insertAt(Values(x), i, elt))
	}
	panic("indexable")
}

func insertAt[E any, L ~[]E](l L, i int, e E) L {
	res := make(L, 0, len(l)+1)
	res = append(res, l[:i]...)
	res = append(res, e)
	return append(res, l[i:]...)
}
