package main

import (
	"fmt"
	"io"

	nbt "github.com/signadot/nbt-format/go-nbt"
	"github.com/signadot/nbt-format/go-nbt/ir"
	"github.com/signadot/nbt-format/go-nbt/libdiff"
	"github.com/signadot/nbt-format/go-nbt/snbt"

	"github.com/scott-cotton/cli"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires 2 args, got %v", cli.ErrUsage, args)
	}
	a, err := readDoc(cfg.MainConfig, cc, args[0])
	if err != nil {
		return err
	}
	b, err := readDoc(cfg.MainConfig, cc, args[1])
	if err != nil {
		return err
	}
	differs := false
	if a.Doc.Name != b.Doc.Name {
		differs = true
		if _, err := fmt.Fprintf(cc.Out, "name %q -> %q\n", a.Doc.Name, b.Doc.Name); err != nil {
			return err
		}
	}
	d := nbt.Diff(a.Doc.Value, b.Doc.Value)
	if cfg.Reverse {
		d = libdiff.Reverse(d)
	}
	theLog.Debug("diffed", "a", args[0], "b", args[1], "changes", len(d))
	for i := range d {
		if err := writeChange(cfg, cc.Out, &d[i]); err != nil {
			return err
		}
	}
	if differs || len(d) != 0 {
		return cli.ExitCodeErr(1)
	}
	return nil
}

func writeChange(cfg *DiffConfig, w io.Writer, c *libdiff.Change) error {
	if _, err := fmt.Fprintln(w, c.String()); err != nil {
		return err
	}
	if td := libdiff.TextDiff(c); td != "" && cfg.useColor(w) {
		_, err := fmt.Fprintf(w, "\t%s\n", td)
		return err
	}
	if !cfg.Values {
		return nil
	}
	for _, v := range []struct {
		mark string
		v    ir.Value
	}{{"-", c.From}, {"+", c.To}} {
		if v.v == nil {
			continue
		}
		if _, err := fmt.Fprintf(w, "\t%s %s\n", v.mark, snbt.String(v.v)); err != nil {
			return err
		}
	}
	return nil
}
