// Package handle binds a tag tree to a mutex so that it can be shared
// between goroutines.
//
// Values passed in are cloned and values returned are clones: the tree held
// by a Handle only changes through its methods.
package handle

import (
	"fmt"
	"strconv"
	"sync"

	nbt "github.com/signadot/nbt-format/go-nbt"
	"github.com/signadot/nbt-format/go-nbt/compression"
	"github.com/signadot/nbt-format/go-nbt/decode"
	"github.com/signadot/nbt-format/go-nbt/encode"
	"github.com/signadot/nbt-format/go-nbt/gomap"
	"github.com/signadot/nbt-format/go-nbt/ir"
)

type Handle struct {
	mu   sync.RWMutex
	name string
	root ir.Value
}

// New returns a handle holding a copy of v under the root name name.
func New(name string, v ir.Value) *Handle {
	if v == nil {
		v = ir.Compound{}
	}
	return &Handle{name: name, root: ir.Clone(v)}
}

// Open reads the document at path.
func Open(path string, k compression.Kind, opts ...decode.DecodeOption) (*Handle, error) {
	doc, err := nbt.ReadFile(path, k, opts...)
	if err != nil {
		return nil, err
	}
	return &Handle{name: doc.Name, root: doc.Value}, nil
}

// Save writes the tree to path. The tree is encoded from a snapshot so that
// writers are not held up by the file system.
func (h *Handle) Save(path string, k compression.Kind, opts ...encode.EncodeOption) error {
	return nbt.WriteFile(path, h.Doc(), k, opts...)
}

func (h *Handle) Name() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.name
}

func (h *Handle) SetName(name string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.name = name
}

// Doc returns a copy of the whole document.
func (h *Handle) Doc() *ir.Doc {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return &ir.Doc{Name: h.name, Value: ir.Clone(h.root)}
}

func (h *Handle) Get(path string) (ir.Value, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	v, err := ir.Get(h.root, path)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", path, err)
	}
	return ir.Clone(v), nil
}

// GetInto stores the value at path in the Go value dst points to, mapping
// it with gomap.
func (h *Handle) GetInto(path string, dst any) error {
	v, err := h.Get(path)
	if err != nil {
		return err
	}
	return gomap.FromValue(v, dst)
}

// SetFrom maps the Go value x with gomap and stores it at path.
func (h *Handle) SetFrom(path string, x any) error {
	v, err := gomap.ToValue(x)
	if err != nil {
		return err
	}
	return h.Set(path, v)
}

// Set stores a copy of v at path, creating the final compound entry when it
// is missing. Setting "$" replaces the whole tree.
func (h *Handle) Set(path string, v ir.Value) error {
	return h.update("set", path, func(root ir.Value) (ir.Value, error) {
		return ir.Set(root, path, ir.Clone(v))
	})
}

// Insert places a copy of v before the element addressed by path, or sets
// it when path ends in a compound key.
func (h *Handle) Insert(path string, v ir.Value) error {
	return h.update("insert", path, func(root ir.Value) (ir.Value, error) {
		return ir.Insert(root, path, ir.Clone(v))
	})
}

func (h *Handle) Delete(path string) error {
	return h.update("delete", path, func(root ir.Value) (ir.Value, error) {
		return ir.Delete(root, path)
	})
}

// update applies f to a copy of the tree and commits the result only when f
// succeeds, so a failed edit never leaves a partial change behind.
func (h *Handle) update(op, path string, f func(ir.Value) (ir.Value, error)) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	res, err := f(ir.Clone(h.root))
	if err != nil {
		return fmt.Errorf("%s %s: %w", op, path, err)
	}
	h.root = res
	return nil
}

// Keys returns the sorted keys of the compound at path.
func (h *Handle) Keys(path string) ([]string, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	v, err := ir.Get(h.root, path)
	if err != nil {
		return nil, fmt.Errorf("keys %s: %w", path, err)
	}
	c, ok := v.(ir.Compound)
	if !ok {
		return nil, fmt.Errorf("keys %s: %w: %s is not a Compound", path, ir.ErrKind, v.Type())
	}
	return c.Keys(), nil
}

// Len returns the number of elements of the compound, list or array at path.
func (h *Handle) Len(path string) (int, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	v, err := ir.Get(h.root, path)
	if err != nil {
		return 0, fmt.Errorf("len %s: %w", path, err)
	}
	n, err := ir.Len(v)
	if err != nil {
		return 0, fmt.Errorf("len %s: %w", path, err)
	}
	return n, nil
}

// Range calls fn with each child of the value at path: compound entries in
// key order, list and array elements with their decimal index as key. fn
// receives copies taken before the first call and may use h. Iteration
// stops at the first error fn returns.
func (h *Handle) Range(path string, fn func(key string, v ir.Value) error) error {
	keys, vals, err := h.children(path)
	if err != nil {
		return err
	}
	for i, k := range keys {
		if err := fn(k, vals[i]); err != nil {
			return err
		}
	}
	return nil
}

// Walk calls fn with the value at path and every value below it, depth
// first, each with its full path. The values are parts of one copy taken
// before the first call. Elements of arrays are not visited individually.
func (h *Handle) Walk(path string, fn func(path string, v ir.Value) error) error {
	v, err := h.Get(path)
	if err != nil {
		return err
	}
	return ir.Visit(v, func(p string, sub ir.Value) error {
		return fn(path+p[1:], sub)
	})
}

func (h *Handle) children(path string) ([]string, []ir.Value, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	v, err := ir.Get(h.root, path)
	if err != nil {
		return nil, nil, fmt.Errorf("range %s: %w", path, err)
	}
	if c, ok := v.(ir.Compound); ok {
		keys := c.Keys()
		vals := make([]ir.Value, len(keys))
		for i, k := range keys {
			vals[i] = ir.Clone(c[k])
		}
		return keys, vals, nil
	}
	n, err := ir.Len(v)
	if err != nil {
		return nil, nil, fmt.Errorf("range %s: %w", path, err)
	}
	keys := make([]string, n)
	vals := make([]ir.Value, n)
	for i := range n {
		keys[i] = strconv.Itoa(i)
		vals[i], err = ir.Get(v, "$["+keys[i]+"]")
		if err != nil {
			return nil, nil, fmt.Errorf("range %s: %w", path, err)
		}
		vals[i] = ir.Clone(vals[i])
	}
	return keys, vals, nil
}

// View calls fn with the live tree under the read lock. fn must not modify
// the tree or call methods of h that take the write lock.
func (h *Handle) View(fn func(name string, v ir.Value) error) error {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return fn(h.name, h.root)
}

// Update calls fn with a copy of the tree under the write lock and installs
// the tree fn returns when it succeeds. fn must not call methods of h.
func (h *Handle) Update(fn func(v ir.Value) (ir.Value, error)) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	res, err := fn(ir.Clone(h.root))
	if err != nil {
		return err
	}
	if res == nil {
		return fmt.Errorf("update: %w: nil tree", ir.ErrKind)
	}
	h.root = res
	return nil
}
