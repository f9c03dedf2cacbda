package main

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/signadot/nbt-format/go-nbt/compression"
	"github.com/signadot/nbt-format/go-nbt/format"
	"github.com/signadot/nbt-format/go-nbt/ir"
	"github.com/signadot/nbt-format/go-nbt/store"

	"github.com/scott-cotton/cli"
)

func storeMain(cfg *StoreConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Store.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return cli.ErrNoCommandProvided
	}
	sub := cfg.Store.FindSub(cc, args[0])
	if sub == nil {
		return fmt.Errorf("%w: %q not found", cli.ErrNoSuchCommand, args[0])
	}
	err = sub.Run(cc, args[1:])
	if errors.Is(err, cli.ErrUsage) {
		sub.Usage(cc, err)
		os.Exit(sub.Exit(cc, err))
	}
	return err
}

func (cfg *StoreConfig) withStore(f func(*store.Store) error) error {
	s, err := store.Open(cfg.DB, store.Timeout(time.Second))
	if err != nil {
		return err
	}
	theLog.Debug("opened store", "path", cfg.DB)
	err = f(s)
	if cerr := s.Close(); err == nil {
		err = cerr
	}
	return err
}

func storePut(cfg *StoreSubConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Cmd.Parse(cc, args)
	if err != nil {
		return err
	}
	switch len(args) {
	case 1:
		args = append(args, "-")
	case 2:
	default:
		return fmt.Errorf("%w: put requires a key and a file", cli.ErrUsage)
	}
	df, err := readDoc(cfg.MainConfig, cc, args[1])
	if err != nil {
		return err
	}
	return cfg.withStore(func(s *store.Store) error {
		return s.Put(args[0], df.Doc.Name, df.Doc.Value)
	})
}

func storeGet(cfg *StoreSubConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Cmd.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 1 {
		return fmt.Errorf("%w: get requires a key", cli.ErrUsage)
	}
	var doc *ir.Doc
	err = cfg.withStore(func(s *store.Store) error {
		name, v, err := s.Get(args[0])
		if err != nil {
			return err
		}
		doc = &ir.Doc{Name: name, Value: v}
		return nil
	})
	if err != nil {
		return err
	}
	return writeDoc(cfg.MainConfig, cc, doc, format.SNBTFormat, compression.None)
}

func storeLs(cfg *StoreSubConfig, cc *cli.Context, args []string) error {
	if _, err := cfg.Cmd.Parse(cc, args); err != nil {
		return err
	}
	return cfg.withStore(func(s *store.Store) error {
		keys, err := s.Keys()
		if err != nil {
			return err
		}
		tw := tabwriter.NewWriter(cc.Out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "KEY\tNAME\tROOT\tSIZE\tSTORED")
		for _, k := range keys {
			m, err := s.Meta(k)
			if err != nil {
				return err
			}
			fmt.Fprintf(tw, "%s\t%q\t%s\t%d\t%s\n", k, m.Name, m.Root, m.Size, m.Stored.Format(time.RFC3339))
		}
		return tw.Flush()
	})
}

func storeRm(cfg *StoreSubConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Cmd.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: rm requires a key", cli.ErrUsage)
	}
	return cfg.withStore(func(s *store.Store) error {
		for _, k := range args {
			if err := s.Delete(k); err != nil {
				return fmt.Errorf("%s: %w", k, err)
			}
		}
		return nil
	})
}
