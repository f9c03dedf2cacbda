// Package query evaluates expr-lang expressions against a document.
//
// The entries of a compound root are the expression's variables, holding
// the plain projection of each value (see interchange.ToAny). Paths can be
// reached with functions as well:
//
//	get("$.Data.Pos[1]")   value at a path
//	has("$.Data.Rain")     whether the path exists
//	kind("$.Data")         kind name of the value at a path
//	isarray("$.Data.Seeds") whether the value at a path is an array
//	truthy("$.Data.Rain")  whether the value at a path is non-zero or non-empty
//	num("$.Data.Time")     numeric value at a path as a float
//	cmp("$.a", "$.b")      -1, 0 or 1 ordering the values at two paths
//	paths("$.Data")        paths of every value under a path
//	docname()              root name of the document
package query

import (
	"errors"
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/signadot/nbt-format/go-nbt/debug"
	"github.com/signadot/nbt-format/go-nbt/interchange"
	"github.com/signadot/nbt-format/go-nbt/ir"
	"github.com/signadot/nbt-format/go-nbt/nbterr"
)

// Env returns the variables of expressions evaluated against doc.
func Env(doc *ir.Doc) map[string]any {
	env := map[string]any{}
	if c, ok := doc.Value.(ir.Compound); ok {
		for k, v := range c {
			env[k] = interchange.ToAny(v)
		}
	}
	return env
}

func exprOpts(doc *ir.Doc) []expr.Option {
	return []expr.Option{
		expr.Function("get", func(params ...any) (any, error) {
			v, err := ir.Get(doc.Value, params[0].(string))
			if err != nil {
				return nil, err
			}
			return interchange.ToAny(v), nil
		},
			new(func(string) any)),
		expr.Function("has", func(params ...any) (any, error) {
			_, err := ir.Get(doc.Value, params[0].(string))
			return err == nil, nil
		},
			new(func(string) bool)),
		expr.Function("kind", func(params ...any) (any, error) {
			v, err := ir.Get(doc.Value, params[0].(string))
			if err != nil {
				return nil, err
			}
			return v.Type().String(), nil
		},
			new(func(string) string)),
		expr.Function("isarray", func(params ...any) (any, error) {
			v, err := ir.Get(doc.Value, params[0].(string))
			if err != nil {
				return nil, err
			}
			return v.Type().IsArray(), nil
		},
			new(func(string) bool)),
		expr.Function("truthy", func(params ...any) (any, error) {
			v, err := ir.Get(doc.Value, params[0].(string))
			if err != nil {
				if errors.Is(err, ir.ErrNotFound) {
					return false, nil
				}
				return nil, err
			}
			return ir.Truth(v), nil
		},
			new(func(string) bool)),
		expr.Function("num", func(params ...any) (any, error) {
			v, err := ir.Get(doc.Value, params[0].(string))
			if err != nil {
				return nil, err
			}
			f, ok := ir.AsFloat64(v)
			if !ok {
				return nil, fmt.Errorf("%s is %s, not a number", params[0], v.Type())
			}
			return f, nil
		},
			new(func(string) float64)),
		expr.Function("cmp", func(params ...any) (any, error) {
			a, err := ir.Get(doc.Value, params[0].(string))
			if err != nil {
				return nil, err
			}
			b, err := ir.Get(doc.Value, params[1].(string))
			if err != nil {
				return nil, err
			}
			return ir.Compare(a, b), nil
		},
			new(func(string, string) int)),
		expr.Function("paths", func(params ...any) (any, error) {
			root := params[0].(string)
			v, err := ir.Get(doc.Value, root)
			if err != nil {
				return nil, err
			}
			var res []any
			err = ir.Visit(v, func(p string, _ ir.Value) error {
				res = append(res, root+p[1:])
				return nil
			})
			return res, err
		},
			new(func(string) []any)),
		expr.Function("docname", func(params ...any) (any, error) {
			return doc.Name, nil
		},
			new(func() string)),
	}
}

// Eval evaluates src against doc and returns the plain result.
func Eval(src string, doc *ir.Doc) (any, error) {
	return run(src, doc)
}

// EvalValue evaluates src against doc and converts the result back to a
// tree with interchange.FromAny.
func EvalValue(src string, doc *ir.Doc) (ir.Value, error) {
	x, err := run(src, doc)
	if err != nil {
		return nil, err
	}
	return interchange.FromAny(x)
}

// Match reports whether the boolean expression src holds for doc.
func Match(src string, doc *ir.Doc) (bool, error) {
	x, err := run(src, doc, expr.AsBool())
	if err != nil {
		return false, err
	}
	b, ok := x.(bool)
	if !ok {
		return false, nbterr.NewCustom("expr run", "expected bool, got %T", x)
	}
	return b, nil
}

func run(src string, doc *ir.Doc, opts ...expr.Option) (any, error) {
	env := Env(doc)
	opts = append(append(exprOpts(doc), expr.Env(env)), opts...)
	prog, err := expr.Compile(src, opts...)
	if err != nil {
		return nil, &nbterr.Error{Kind: nbterr.Custom, Rule: "expr compile", Offset: -1, Err: err}
	}
	res, err := expr.Run(prog, env)
	if err != nil {
		return nil, &nbterr.Error{Kind: nbterr.Custom, Rule: "expr run", Offset: -1, Err: err}
	}
	if debug.Eval() {
		debug.Logf("eval %q gave %#v\n", src, res)
	}
	return res, nil
}
