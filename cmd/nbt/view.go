package main

import (
	"fmt"
	"io"

	"github.com/signadot/nbt-format/go-nbt/snbt"

	"github.com/scott-cotton/cli"
)

func view(cfg *ViewConfig, cc *cli.Context, args []string) error {
	args, err := cfg.View.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		args = []string{"-"}
	}
	opts := cfg.printOpts(cc.Out)
	for i, file := range args {
		if i > 0 {
			if _, err := io.WriteString(cc.Out, "\n"); err != nil {
				return err
			}
		}
		if err := viewFile(cfg, cc, file, opts); err != nil {
			return err
		}
	}
	return nil
}

func viewFile(cfg *ViewConfig, cc *cli.Context, file string, opts []snbt.PrintOption) error {
	df, err := readDoc(cfg.MainConfig, cc, file)
	if err != nil {
		return err
	}
	if cfg.Names {
		if _, err := fmt.Fprintf(cc.Out, "# %s (%s, %s)\n", file, df.Format, df.Compression); err != nil {
			return err
		}
	}
	if err := snbt.PrintDocument(df.Doc.Name, df.Doc.Value, cc.Out, opts...); err != nil {
		return fmt.Errorf("error printing %s: %w", file, err)
	}
	return nil
}
