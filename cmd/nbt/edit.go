package main

import (
	"fmt"
	"io"

	"github.com/signadot/nbt-format/go-nbt/handle"
	"github.com/signadot/nbt-format/go-nbt/ir"
	"github.com/signadot/nbt-format/go-nbt/snbt"

	"github.com/scott-cotton/cli"
)

func set(cfg *SetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Set.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 3 {
		return fmt.Errorf("%w: set requires a path, a value and a file", cli.ErrUsage)
	}
	v, err := snbt.Parse(args[1], snbt.MaxDepth(cfg.MaxDepth))
	if err != nil {
		return fmt.Errorf("%w: value: %w", cli.ErrUsage, err)
	}
	return edit(cfg.MainConfig, cc, args[2], func(h *handle.Handle) error {
		if cfg.Insert {
			return h.Insert(fullPath(args[0]), v)
		}
		return h.Set(fullPath(args[0]), v)
	})
}

func rm(cfg *RmConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Rm.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: rm requires a path and a file", cli.ErrUsage)
	}
	return edit(cfg.MainConfig, cc, args[1], func(h *handle.Handle) error {
		return h.Delete(fullPath(args[0]))
	})
}

func edit(cfg *MainConfig, cc *cli.Context, file string, f func(*handle.Handle) error) error {
	df, err := readDoc(cfg, cc, file)
	if err != nil {
		return err
	}
	h := handle.New(df.Doc.Name, df.Doc.Value)
	if err := f(h); err != nil {
		return err
	}
	return saveDoc(cfg, cc, df, h.Doc())
}

func keys(cfg *KeysConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Keys.Parse(cc, args)
	if err != nil {
		return err
	}
	path := "$"
	switch len(args) {
	case 0:
		args = []string{"-"}
	case 1:
	case 2:
		path = fullPath(args[0])
		args = args[1:]
	default:
		return fmt.Errorf("%w: keys takes a path and a file", cli.ErrUsage)
	}
	df, err := readDoc(cfg.MainConfig, cc, args[0])
	if err != nil {
		return err
	}
	h := handle.New(df.Doc.Name, df.Doc.Value)
	if cfg.Count {
		n, err := h.Len(path)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cc.Out, n)
		return err
	}
	if cfg.Recurse {
		return h.Walk(path, func(p string, v ir.Value) error {
			return writeEntry(cc.Out, p, v)
		})
	}
	return h.Range(path, func(key string, v ir.Value) error {
		return writeEntry(cc.Out, key, v)
	})
}

func writeEntry(w io.Writer, key string, v ir.Value) error {
	kind := v.Type().String()
	if l, ok := v.(ir.List); ok {
		kind += "<" + l.ElemType().String() + ">"
	}
	if n, err := ir.Len(v); err == nil {
		_, err = fmt.Fprintf(w, "%s\t%s\t%d\n", key, kind, n)
		return err
	}
	_, err := fmt.Fprintf(w, "%s\t%s\t%s\n", key, kind, snbt.String(v))
	return err
}
