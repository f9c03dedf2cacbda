package main

import (
	"fmt"
	"io"
	"os"

	"github.com/signadot/nbt-format/go-nbt/compression"
	"github.com/signadot/nbt-format/go-nbt/config"
	"github.com/signadot/nbt-format/go-nbt/format"
	"github.com/signadot/nbt-format/go-nbt/snbt"

	"github.com/scott-cotton/cli"

	"github.com/mattn/go-isatty"
)

type MainConfig struct {
	Color    bool `cli:"name=color desc='print snbt with color'"`
	Verbose  bool `cli:"name=v desc='log debug messages to stderr'"`
	Indent   int  `cli:"name=indent desc='snbt indentation, 0 for one line'"`
	MaxDepth int  `cli:"name=depth desc='maximum nesting depth when reading or writing'"`

	InFormat, OutFormat *format.Format
	Compression         *compression.Kind

	Conf    *config.Config
	confErr error

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) fmtFunc(fp **format.Format) cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		f, err := format.ParseFormat(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		*fp = &f
		return f, nil
	})
}

func (cfg *MainConfig) compressionOpt(_ *cli.Context, v string) (any, error) {
	k, err := compression.ParseKind(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	cfg.Compression = &k
	return k, nil
}

// useColor follows -color when given, else the config file, else whether
// w is a terminal.
func (cfg *MainConfig) useColor(w io.Writer) bool {
	for _, opt := range cfg.Main.Opts {
		if opt.Name != "color" {
			continue
		}
		if opt.Value != nil {
			return cfg.Color
		}
		break
	}
	return cfg.Conf.UseColor(isTerminal(w))
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

func (cfg *MainConfig) printOpts(w io.Writer) []snbt.PrintOption {
	res := []snbt.PrintOption{snbt.Indent(cfg.Indent)}
	if cfg.useColor(w) {
		res = append(res, snbt.PrintColors(snbt.NewColors()))
	}
	return res
}

// inFormat is -I when given, else guessed from the file name. Standard
// input without -I is binary NBT.
func (cfg *MainConfig) inFormat(path string) format.Format {
	if cfg.InFormat != nil {
		return *cfg.InFormat
	}
	if path == "-" {
		return format.NBTFormat
	}
	return format.FromPath(path)
}

// outFormat is -O when given, else guessed from -o, else def.
func (cfg *MainConfig) outFormat(def format.Format) format.Format {
	if cfg.OutFormat != nil {
		return *cfg.OutFormat
	}
	if cfg.Out != "" && cfg.Out != "-" {
		return format.FromPath(cfg.Out)
	}
	return def
}

// outCompression resolves -z, then the config file. Auto keeps the
// compression of the input for NBT output and means none otherwise.
func (cfg *MainConfig) outCompression(f format.Format, in compression.Kind) compression.Kind {
	k := cfg.Conf.Compression
	if cfg.Compression != nil {
		k = *cfg.Compression
	}
	if k != compression.Auto {
		return k
	}
	if f != format.NBTFormat || in == compression.Auto {
		return compression.None
	}
	return in
}

type ViewConfig struct {
	*MainConfig

	Names bool `cli:"name=n desc='print file names before documents'"`
	View  *cli.Command
}

type ConvertConfig struct {
	*MainConfig

	Convert *cli.Command
}

type GetConfig struct {
	*MainConfig

	Sort bool `cli:"name=s desc='print the matches of each file in sorted order'"`
	Get  *cli.Command
}

type SetConfig struct {
	*MainConfig

	Insert bool `cli:"name=i desc='insert into lists instead of replacing'"`
	Set    *cli.Command
}

type RmConfig struct {
	*MainConfig

	Rm *cli.Command
}

type KeysConfig struct {
	*MainConfig

	Count   bool `cli:"name=n desc='print the number of entries only'"`
	Recurse bool `cli:"name=r desc='list every value below the path with its full path'"`
	Keys    *cli.Command
}

type DiffConfig struct {
	*MainConfig
	Reverse bool `cli:"name=r desc='reverse the diff'"`
	Values  bool `cli:"name=values desc='print changed values as snbt'"`

	Diff *cli.Command
}

type EvalConfig struct {
	*MainConfig
	Match bool `cli:"name=m desc='print the files for which the expression is true'"`

	Eval *cli.Command
}

type StoreConfig struct {
	*MainConfig
	DB string `cli:"name=db desc='store file (default from config)'"`

	Store *cli.Command
}

type StoreSubConfig struct {
	*StoreConfig

	Cmd *cli.Command
}
