package main

import (
	"fmt"
	"io"

	"github.com/signadot/nbt-format/go-nbt/query"
	"github.com/signadot/nbt-format/go-nbt/snbt"

	"github.com/scott-cotton/cli"
)

func eval(cfg *EvalConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Eval.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: eval requires an expression", cli.ErrUsage)
	}
	src := args[0]
	files := args[1:]
	if len(files) == 0 {
		files = []string{"-"}
	}
	opts := cfg.printOpts(cc.Out)
	for _, file := range files {
		df, err := readDoc(cfg.MainConfig, cc, file)
		if err != nil {
			return err
		}
		if cfg.Match {
			ok, err := query.Match(src, df.Doc)
			if err != nil {
				return fmt.Errorf("%s: %w", file, err)
			}
			if ok {
				if _, err := fmt.Fprintln(cc.Out, file); err != nil {
					return err
				}
			}
			continue
		}
		v, err := query.EvalValue(src, df.Doc)
		if err != nil {
			return fmt.Errorf("%s: %w", file, err)
		}
		if err := snbt.Print(v, cc.Out, opts...); err != nil {
			return err
		}
		if _, err := io.WriteString(cc.Out, "\n"); err != nil {
			return err
		}
	}
	return nil
}
