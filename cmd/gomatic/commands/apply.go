// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/gomatic/cmd/gomatic/cli"
	"github.com/bureau-foundation/gomatic/configurator"
	"github.com/bureau-foundation/gomatic/lib/manifest"
	"github.com/bureau-foundation/gomatic/lib/render"
)

type applyParams struct {
	connectionParams
	DryRun    bool
	SaveLocal string
}

func applyCommand() *cli.Command {
	var params applyParams

	return &cli.Command{
		Name:    "apply",
		Summary: "Apply a repository manifest to the server",
		Description: `Read a JSONC manifest of package repositories and packages, ensure
each one exists on the server with the given settings, and post the
updated configuration.

Nothing is posted when the result is identical to the server's
configuration (ignoring formatting) or when --dry-run is given. The
post carries the md5 of the configuration as fetched, so a concurrent
change on the server fails the post instead of being overwritten.

With --save-local DIR, config-before.xml and config-after.xml are
written to DIR. Passwords are encrypted according to encryption.mode
in the configuration file before they reach the document.`,
		Usage: "gomatic apply <manifest> [flags]",
		Examples: []cli.Example{
			{
				Description: "Apply a manifest",
				Command:     "gomatic apply repositories.jsonc",
			},
			{
				Description: "Preview the result without posting",
				Command:     "gomatic apply repositories.jsonc --dry-run --save-local /tmp/gocd",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("apply", pflag.ContinueOnError)
			params.register(flagSet)
			flagSet.BoolVar(&params.DryRun, "dry-run", false, "do not post the result")
			flagSet.StringVar(&params.SaveLocal, "save-local", "", "directory for config-before.xml and config-after.xml")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("apply takes exactly one manifest path, got %d arguments", len(args))
			}
			cfg, err := params.load()
			if err != nil {
				return err
			}
			document, err := manifest.ReadFile(args[0])
			if err != nil {
				return err
			}
			logger := commandLogger(cfg)
			session, release, err := openSession(context.Background(), cfg, logger)
			if err != nil {
				return err
			}
			defer release()
			options := configurator.SaveOptions{
				LocalDir: cfg.Save.LocalDir,
				DryRun:   cfg.Save.DryRun || params.DryRun,
			}
			if params.SaveLocal != "" {
				options.LocalDir = params.SaveLocal
			}
			return runApply(context.Background(), session, document, options, os.Stdout)
		},
	}
}

func runApply(ctx context.Context, session *configurator.Configurator, document *manifest.Manifest, options configurator.SaveOptions, w io.Writer) error {
	applied, err := manifest.Apply(document, session, manifest.ApplyOptions{})
	if err != nil {
		return err
	}
	saved, err := session.SaveUpdatedConfig(ctx, options)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "repositories: %d ensured, %d removed\n", applied.RepositoriesEnsured, applied.RepositoriesRemoved)
	fmt.Fprintf(w, "packages: %d ensured, %d removed\n", applied.PackagesEnsured, applied.PackagesRemoved)
	for _, path := range saved.LocalFiles {
		fmt.Fprintf(w, "wrote %s\n", path)
	}
	switch {
	case !saved.Changed:
		fmt.Fprintln(w, "configuration unchanged")
	case saved.Posted:
		fmt.Fprintf(w, "posted configuration %s\n", saved.AfterDigest.Short())
	default:
		fmt.Fprintf(w, "dry run: configuration would change (%s -> %s)\n",
			saved.BeforeDigest.Short(), saved.AfterDigest.Short())
	}
	return nil
}

type diffParams struct {
	connectionParams
	Color string
}

func diffCommand() *cli.Command {
	var params diffParams

	return &cli.Command{
		Name:    "diff",
		Summary: "Show what applying a manifest would change",
		Description: `Apply a manifest to a copy of the server's configuration without
posting it, and print a line diff of the prettified documents.

Exits 0 when the manifest changes nothing and 1 when it would change
the configuration, like diff(1).`,
		Usage: "gomatic diff <manifest> [flags]",
		Examples: []cli.Example{
			{
				Description: "Fail a CI check when the server drifted from the manifest",
				Command:     "gomatic diff repositories.jsonc",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("diff", pflag.ContinueOnError)
			params.register(flagSet)
			flagSet.StringVar(&params.Color, "color", render.ColorAuto, "color added and removed lines: auto, always or never")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("diff takes exactly one manifest path, got %d arguments", len(args))
			}
			cfg, err := params.load()
			if err != nil {
				return err
			}
			color, err := render.ColorEnabled(params.Color, os.Stdout)
			if err != nil {
				return err
			}
			document, err := manifest.ReadFile(args[0])
			if err != nil {
				return err
			}
			logger := commandLogger(cfg)
			session, release, err := openSession(context.Background(), cfg, logger)
			if err != nil {
				return err
			}
			defer release()
			return runDiff(context.Background(), session, document, render.New(color), os.Stdout)
		},
	}
}

// runDiff returns an *cli.ExitError with code 1 when the manifest
// changes the configuration.
func runDiff(ctx context.Context, session *configurator.Configurator, document *manifest.Manifest, renderer *render.Renderer, w io.Writer) error {
	if _, err := manifest.Apply(document, session, manifest.ApplyOptions{}); err != nil {
		return err
	}
	saved, err := session.SaveUpdatedConfig(ctx, configurator.SaveOptions{DryRun: true})
	if err != nil {
		return err
	}
	if !saved.Changed {
		return nil
	}
	fmt.Fprint(w, renderer.Diff(saved.Before, saved.After))
	return &cli.ExitError{Code: 1}
}
