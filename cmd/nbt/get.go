package main

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/signadot/nbt-format/go-nbt/ir"
	"github.com/signadot/nbt-format/go-nbt/snbt"

	"github.com/scott-cotton/cli"
)

func get(cfg *GetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Get.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: get requires a path", cli.ErrUsage)
	}
	path := fullPath(args[0])
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
		vs, err := ir.Select(df.Doc.Value, path)
		if err != nil {
			return fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		theLog.Debug("selected", "path", path, "file", file, "matches", len(vs))
		if cfg.Sort {
			slices.SortStableFunc(vs, ir.Compare)
		}
		for _, v := range vs {
			if len(files) > 1 {
				if _, err := fmt.Fprintf(cc.Out, "%s: ", file); err != nil {
					return err
				}
			}
			if err := snbt.Print(v, cc.Out, opts...); err != nil {
				return err
			}
			if _, err := io.WriteString(cc.Out, "\n"); err != nil {
				return err
			}
		}
	}
	return nil
}

// fullPath lets paths on the command line omit the leading "$".
func fullPath(p string) string {
	switch {
	case strings.HasPrefix(p, "$"):
		return p
	case strings.HasPrefix(p, "[") || strings.HasPrefix(p, "."):
		return "$" + p
	case p == "":
		return "$"
	}
	return "$." + p
}
