package libdiff

import (
	"fmt"

	"github.com/signadot/nbt-format/go-nbt/ir"
)

type Op int

const (
	Insert Op = iota + 1
	Delete
	Replace
)

func (o Op) String() string {
	switch o {
	case Insert:
		return "insert"
	case Delete:
		return "delete"
	case Replace:
		return "replace"
	}
	return fmt.Sprintf("<op %d>", int(o))
}

// Change is one edit of a tree. Path is evaluated against the tree as left
// by the changes before it, so a list of changes applies in order: an
// insert at $.l[2] shifts the elements after it before the next change
// is considered.
type Change struct {
	Path string
	Op   Op
	From ir.Value
	To   ir.Value
}

func (c *Change) String() string {
	switch c.Op {
	case Insert:
		return fmt.Sprintf("+ %s %s", c.Path, c.To.Type())
	case Delete:
		return fmt.Sprintf("- %s %s", c.Path, c.From.Type())
	default:
		return fmt.Sprintf("~ %s %s -> %s", c.Path, c.From.Type(), c.To.Type())
	}
}

// Reverse returns the changes undoing cs: applied to the result of
// applying cs, they yield the original tree.
func Reverse(cs []Change) []Change {
	res := make([]Change, len(cs))
	for i, c := range cs {
		r := Change{Path: c.Path, From: c.To, To: c.From}
		switch c.Op {
		case Insert:
			r.Op = Delete
		case Delete:
			r.Op = Insert
		default:
			r.Op = c.Op
		}
		res[len(cs)-1-i] = r
	}
	return res
}
