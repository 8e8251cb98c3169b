// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/gomatic/cmd/gomatic/cli"
	"github.com/bureau-foundation/gomatic/lib/archive"
	"github.com/bureau-foundation/gomatic/lib/codec"
	"github.com/bureau-foundation/gomatic/lib/config"
	"github.com/bureau-foundation/gomatic/lib/render"
)

func archiveCommand() *cli.Command {
	return &cli.Command{
		Name:    "archive",
		Summary: "Inspect archived configuration revisions",
		Description: `Every save records the prettified configuration before and after
editing in the revision archive (archive.dir in the configuration
file, or --archive-dir). Revisions are content-addressed by a keyed
BLAKE3 digest and stored compressed.`,
		Subcommands: []*cli.Command{
			archiveListCommand(),
			archiveShowCommand(),
			archiveIndexCommand(),
		},
	}
}

// openArchiveFromParams loads the configuration and opens its archive.
// An unconfigured archive is an error here.
func openArchiveFromParams(params *connectionParams) (*archive.Store, error) {
	cfg, err := params.load()
	if err != nil {
		return nil, err
	}
	return openConfiguredArchive(cfg, commandLogger(cfg))
}

func openConfiguredArchive(cfg *config.Config, logger *slog.Logger) (*archive.Store, error) {
	store, err := openArchive(cfg, logger)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, errors.New("no archive configured: set archive.dir or pass --archive-dir")
	}
	return store, nil
}

func archiveListCommand() *cli.Command {
	var params connectionParams

	return &cli.Command{
		Name:    "list",
		Aliases: []string{"ls"},
		Summary: "List archived revisions, oldest first",
		Usage:   "gomatic archive list [flags]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("list", pflag.ContinueOnError)
			params.register(flagSet)
			return flagSet
		},
		Run: func(args []string) error {
			store, err := openArchiveFromParams(&params)
			if err != nil {
				return err
			}
			return runArchiveList(store, os.Stdout)
		},
	}
}

func runArchiveList(store *archive.Store, w io.Writer) error {
	tw := tabwriter.NewWriter(w, 2, 0, 3, ' ', 0)
	fmt.Fprintln(tw, "DIGEST\tKIND\tSIZE\tSTORED\tCOMPRESSION\tMD5\tSTORED AT")
	for _, entry := range store.List() {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\t%s\t%s\n",
			entry.Digest.Short(), entry.Kind, entry.Size, entry.StoredSize,
			entry.Compression, entry.MD5, entry.StoredAt.Format(time.RFC3339))
	}
	return tw.Flush()
}

type archiveShowParams struct {
	connectionParams
	Color string
}

func archiveShowCommand() *cli.Command {
	var params archiveShowParams

	return &cli.Command{
		Name:    "show",
		Summary: "Print an archived revision",
		Usage:   "gomatic archive show <digest-prefix> [flags]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("show", pflag.ContinueOnError)
			params.register(flagSet)
			flagSet.StringVar(&params.Color, "color", render.ColorAuto, "highlight XML syntax: auto, always or never")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("archive show takes exactly one digest prefix, got %d arguments", len(args))
			}
			color, err := render.ColorEnabled(params.Color, os.Stdout)
			if err != nil {
				return err
			}
			store, err := openArchiveFromParams(&params.connectionParams)
			if err != nil {
				return err
			}
			return runArchiveShow(store, args[0], render.New(color), os.Stdout)
		},
	}
}

func runArchiveShow(store *archive.Store, prefix string, renderer *render.Renderer, w io.Writer) error {
	entry, err := findEntry(store, prefix)
	if err != nil {
		return err
	}
	data, err := store.Get(entry.Digest)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, renderer.XML(string(data)))
	return err
}

// findEntry resolves a digest prefix to exactly one archived revision.
func findEntry(store *archive.Store, prefix string) (archive.Entry, error) {
	prefix = strings.ToLower(prefix)
	if prefix == "" {
		return archive.Entry{}, errors.New("empty digest prefix")
	}
	var match archive.Entry
	found := 0
	seen := make(map[string]bool)
	for _, entry := range store.List() {
		hex := entry.Digest.String()
		if !strings.HasPrefix(hex, prefix) || seen[hex] {
			continue
		}
		seen[hex] = true
		match = entry
		found++
	}
	switch found {
	case 0:
		return archive.Entry{}, fmt.Errorf("%w: no revision matches %q", archive.ErrNotFound, prefix)
	case 1:
		return match, nil
	default:
		return archive.Entry{}, fmt.Errorf("digest prefix %q is ambiguous (%d revisions)", prefix, found)
	}
}

func archiveIndexCommand() *cli.Command {
	var params connectionParams

	return &cli.Command{
		Name:    "index",
		Summary: "Print the archive index in CBOR diagnostic notation",
		Description: `Print index.cbor as RFC 8949 diagnostic notation, which shows the
exact encoded types (byte strings, integers, text) of every entry.`,
		Usage: "gomatic archive index [flags]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("index", pflag.ContinueOnError)
			params.register(flagSet)
			return flagSet
		},
		Run: func(args []string) error {
			store, err := openArchiveFromParams(&params)
			if err != nil {
				return err
			}
			return runArchiveIndex(store, os.Stdout)
		},
	}
}

func runArchiveIndex(store *archive.Store, w io.Writer) error {
	raw, err := store.RawIndex()
	if err != nil {
		return err
	}
	notation, err := codec.Diagnose(raw)
	if err != nil {
		return fmt.Errorf("diagnosing archive index: %w", err)
	}
	_, err = fmt.Fprintln(w, notation)
	return err
}
