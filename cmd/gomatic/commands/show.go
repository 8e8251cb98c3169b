// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/gomatic/cmd/gomatic/cli"
	"github.com/bureau-foundation/gomatic/lib/config"
	"github.com/bureau-foundation/gomatic/lib/render"
	"github.com/bureau-foundation/gomatic/lib/xmltree"
)

type showParams struct {
	connectionParams
	Color string
	Raw   bool
}

func showCommand() *cli.Command {
	var params showParams

	return &cli.Command{
		Name:    "show",
		Summary: "Print the server's configuration",
		Description: `Fetch cruise-config.xml from the GoCD server and print it.

The document is re-indented with two spaces and blank lines removed,
the same normalization used to decide whether an edit changed
anything. Use --raw to print the bytes exactly as served.`,
		Usage: "gomatic show [flags]",
		Examples: []cli.Example{
			{
				Description: "Show the configuration with syntax highlighting",
				Command:     "gomatic show --server http://gocd.internal:8153 --color=always | less -R",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("show", pflag.ContinueOnError)
			params.register(flagSet)
			flagSet.StringVar(&params.Color, "color", render.ColorAuto, "highlight XML syntax: auto, always or never")
			flagSet.BoolVar(&params.Raw, "raw", false, "print the document exactly as served")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) > 0 {
				return fmt.Errorf("show takes no positional arguments, got %q", args[0])
			}
			cfg, err := params.load()
			if err != nil {
				return err
			}
			return runShow(context.Background(), cfg, params, os.Stdout, commandLogger(cfg))
		},
	}
}

func runShow(ctx context.Context, cfg *config.Config, params showParams, w io.Writer, logger *slog.Logger) error {
	color, err := render.ColorEnabled(params.Color, w)
	if err != nil {
		return err
	}
	client, err := newClient(cfg, logger)
	if err != nil {
		return err
	}
	defer client.Close()
	file, err := client.FetchConfig(ctx)
	if err != nil {
		return err
	}

	document := string(file.XML)
	if !params.Raw {
		document, err = xmltree.Prettify(file.XML)
		if err != nil {
			return err
		}
	}
	_, err = fmt.Fprintln(w, render.New(color).XML(document))
	return err
}
