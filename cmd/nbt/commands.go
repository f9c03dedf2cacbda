package main

import (
	"github.com/scott-cotton/cli"
	"github.com/signadot/nbt-format/go-nbt/config"
)

func MainCommand() *cli.Command {
	conf, confErr := config.Load()
	if confErr != nil {
		conf = config.Default()
	}
	cfg := &MainConfig{
		Conf:     conf,
		confErr:  confErr,
		Indent:   conf.Indent,
		MaxDepth: conf.MaxDepth,
	}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, []*cli.Opt{
		&cli.Opt{
			Name:        "o",
			Description: "output file (default stdout)",
			Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
		},
		&cli.Opt{
			Name:        "I",
			Aliases:     []string{"ifmt"},
			Description: "input format: nbt/n, snbt/s, json/j, yaml/y, cbor/c, msgpack/m",
			Type:        cli.NamedFuncOpt(cfg.fmtFunc(&cfg.InFormat), "(format)"),
		},
		&cli.Opt{
			Name:        "O",
			Aliases:     []string{"ofmt"},
			Description: "output format: nbt/n, snbt/s, json/j, yaml/y, cbor/c, msgpack/m",
			Type:        cli.NamedFuncOpt(cfg.fmtFunc(&cfg.OutFormat), "(format)"),
		},
		&cli.Opt{
			Name:        "z",
			Description: "output compression: none, gzip, zlib, auto (same as input)",
			Type:        cli.NamedFuncOpt(cfg.compressionOpt, "(compression)"),
		}}...)

	return cli.NewCommandAt(&cfg.Main, "nbt").
		WithSynopsis("nbt [opts] command [opts]").
		WithDescription("nbt is a tool for inspecting and converting NBT documents.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return nbtMain(cfg, cc, args)
		}).
		WithSubs(
			ViewCommand(cfg),
			ConvertCommand(cfg),
			GetCommand(cfg),
			SetCommand(cfg),
			RmCommand(cfg),
			KeysCommand(cfg),
			DiffCommand(cfg),
			EvalCommand(cfg),
			StoreCommand(cfg))
}

func ViewCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ViewConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("view").
		WithAliases("v").
		WithOpts(opts...).
		WithSynopsis("view [files]").
		WithDescription("view documents as SNBT, in color on a terminal").
		WithRun(func(cc *cli.Context, args []string) error {
			return view(cfg, cc, args)
		})
	cfg.View = cmd
	return cmd
}

func ConvertCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ConvertConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Convert, "convert").
		WithAliases("c", "conv").
		WithSynopsis("convert [-O format] [-o out] file").
		WithDescription("convert a document between formats").
		WithRun(func(cc *cli.Context, args []string) error {
			return convert(cfg, cc, args)
		})
}

func GetCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &GetConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("get").
		WithAliases("g").
		WithOpts(opts...).
		WithSynopsis("get [-s] <path> [files]").
		WithDescription("get the values at a path, which may use [*] and .. wildcards").
		WithRun(func(cc *cli.Context, args []string) error {
			return get(cfg, cc, args)
		})
	cfg.Get = cmd
	return cmd
}

func SetCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &SetConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Set, "set").
		WithAliases("s").
		WithOpts(opts...).
		WithSynopsis("set [-i] <path> <snbt> file").
		WithDescription("set the value at a path, rewriting file in place unless -o is given").
		WithRun(func(cc *cli.Context, args []string) error {
			return set(cfg, cc, args)
		})
}

func RmCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &RmConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Rm, "rm").
		WithSynopsis("rm <path> file").
		WithDescription("remove the value at a path, rewriting file in place unless -o is given").
		WithRun(func(cc *cli.Context, args []string) error {
			return rm(cfg, cc, args)
		})
}

func KeysCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &KeysConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Keys, "keys").
		WithAliases("k", "ls").
		WithOpts(opts...).
		WithSynopsis("keys [-n|-r] <path> file").
		WithDescription("list the entries of a compound, list or array with their kinds").
		WithRun(func(cc *cli.Context, args []string) error {
			return keys(cfg, cc, args)
		})
}

func DiffCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DiffConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("diff").
		WithAliases("d", "di").
		WithOpts(opts...).
		WithSynopsis("diff [-r] [-values] a b").
		WithDescription("diff two documents; exits 1 when they differ").
		WithRun(func(cc *cli.Context, args []string) error {
			return diff(cfg, cc, args)
		})
	cfg.Diff = cmd
	return cmd
}

func EvalCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &EvalConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("eval").
		WithAliases("e", "ev").
		WithSynopsis("eval [-m] <expr> [files]").
		WithDescription(evalDescription).
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return eval(cfg, cc, args)
		})
	cfg.Eval = cmd
	return cmd
}

const evalDescription = `evaluate an expression against documents.

The entries of a compound root are variables of the expression:

  nbt eval 'Data.Player.Health > 10' level.dat

Paths are reached with get("$.a.b[0]"), has(path) and kind(path), and
docname() gives the root name. With -m, eval prints the names of the
files for which the expression is true.`

func StoreCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &StoreConfig{MainConfig: mainCfg, DB: mainCfg.Conf.Store}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Store, "store").
		WithAliases("db").
		WithOpts(opts...).
		WithSynopsis("store [-db file] <subcommand>").
		WithDescription("keep documents in a single store file").
		WithRun(func(cc *cli.Context, args []string) error {
			return storeMain(cfg, cc, args)
		}).
		WithSubs(
			StorePutCommand(cfg),
			StoreGetCommand(cfg),
			StoreLsCommand(cfg),
			StoreRmCommand(cfg))
}

func StorePutCommand(storeCfg *StoreConfig) *cli.Command {
	cfg := &StoreSubConfig{StoreConfig: storeCfg}
	return cli.NewCommandAt(&cfg.Cmd, "put").
		WithSynopsis("put <key> file").
		WithDescription("store a document under key").
		WithRun(func(cc *cli.Context, args []string) error {
			return storePut(cfg, cc, args)
		})
}

func StoreGetCommand(storeCfg *StoreConfig) *cli.Command {
	cfg := &StoreSubConfig{StoreConfig: storeCfg}
	return cli.NewCommandAt(&cfg.Cmd, "get").
		WithSynopsis("get <key>").
		WithDescription("write the document stored under key").
		WithRun(func(cc *cli.Context, args []string) error {
			return storeGet(cfg, cc, args)
		})
}

func StoreLsCommand(storeCfg *StoreConfig) *cli.Command {
	cfg := &StoreSubConfig{StoreConfig: storeCfg}
	return cli.NewCommandAt(&cfg.Cmd, "ls").
		WithAliases("list").
		WithSynopsis("ls").
		WithDescription("list stored documents").
		WithRun(func(cc *cli.Context, args []string) error {
			return storeLs(cfg, cc, args)
		})
}

func StoreRmCommand(storeCfg *StoreConfig) *cli.Command {
	cfg := &StoreSubConfig{StoreConfig: storeCfg}
	return cli.NewCommandAt(&cfg.Cmd, "rm").
		WithSynopsis("rm <key>").
		WithDescription("remove the document stored under key").
		WithRun(func(cc *cli.Context, args []string) error {
			return storeRm(cfg, cc, args)
		})
}
