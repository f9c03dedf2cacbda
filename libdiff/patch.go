package libdiff

import (
	"errors"
	"fmt"

	"github.com/signadot/nbt-format/go-nbt/ir"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

var ErrConflict = errors.New("patch conflict")

// Patch applies cs in order to a copy of v and returns the result. Deletes
// and replacements check that the value they remove is the one recorded in
// the change.
func Patch(v ir.Value, cs []Change) (ir.Value, error) {
	res := ir.Clone(v)
	for i := range cs {
		c := &cs[i]
		var err error
		switch c.Op {
		case Insert:
			res, err = ir.Insert(res, c.Path, ir.Clone(c.To))
		case Delete:
			if err = check(res, c); err != nil {
				break
			}
			if c.Path == "$" {
				res = nil
				break
			}
			res, err = ir.Delete(res, c.Path)
		case Replace:
			if err = check(res, c); err != nil {
				break
			}
			res, err = ir.Set(res, c.Path, ir.Clone(c.To))
		default:
			err = fmt.Errorf("unknown op %s", c.Op)
		}
		if err != nil {
			return nil, fmt.Errorf("change %d (%s): %w", i, c.Path, err)
		}
	}
	return res, nil
}

func check(v ir.Value, c *Change) error {
	cur, err := ir.Get(v, c.Path)
	if err != nil {
		return err
	}
	if !ir.Equal(cur, c.From) {
		return fmt.Errorf("%w: unexpected %s at %s", ErrConflict, cur.Type(), c.Path)
	}
	return nil
}

// TextDiff renders the character level difference of a string
// replacement with ANSI colours, or "" when c is not one.
func TextDiff(c *Change) string {
	from, ok := c.From.(ir.String)
	if !ok || c.Op != Replace {
		return ""
	}
	to, ok := c.To.(ir.String)
	if !ok {
		return ""
	}
	dmp := diffpatch.New()
	diffs := dmp.DiffMain(string(from), string(to), false)
	return dmp.DiffPrettyText(dmp.DiffCleanupSemantic(diffs))
}
