package main

import (
	"fmt"

	"github.com/signadot/nbt-format/go-nbt/format"

	"github.com/scott-cotton/cli"
)

func convert(cfg *ConvertConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Convert.Parse(cc, args)
	if err != nil {
		return err
	}
	switch len(args) {
	case 0:
		args = []string{"-"}
	case 1:
	default:
		return fmt.Errorf("%w: convert takes at most one file, got %d", cli.ErrUsage, len(args))
	}
	df, err := readDoc(cfg.MainConfig, cc, args[0])
	if err != nil {
		return err
	}
	def := cfg.Conf.Output
	if def == df.Format && df.Format != format.SNBTFormat {
		def = format.SNBTFormat
	}
	return writeDoc(cfg.MainConfig, cc, df.Doc, def, df.Compression)
}
