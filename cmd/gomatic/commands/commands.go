// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bureau-foundation/gomatic/cmd/gomatic/cli"
	"github.com/bureau-foundation/gomatic/lib/version"
)

// Root builds and returns the complete gomatic command tree.
func Root() *cli.Command {
	return &cli.Command{
		Name: "gomatic",
		Description: `Gomatic: programmatic GoCD configuration.

Fetch a GoCD server's cruise-config.xml, ensure package repositories
and packages exist with the settings a manifest declares, and post the
result only when something changed.`,
		Hint: manifestHint,
		Subcommands: []*cli.Command{
			showCommand(),
			repositoriesCommand(),
			applyCommand(),
			diffCommand(),
			archiveCommand(),
			keygenCommand(),
			{
				Name:    "version",
				Summary: "Print version information",
				Run: func(args []string) error {
					fmt.Printf("gomatic %s\n", version.Full())
					return nil
				},
			},
		},
		Examples: []cli.Example{
			{
				Description: "Preview a manifest against a local server",
				Command:     "gomatic diff repositories.jsonc --server http://localhost:8153",
			},
			{
				Description: "Apply it",
				Command:     "gomatic apply repositories.jsonc",
			},
		},
	}
}

// manifestHint answers a manifest path given in place of a command.
func manifestHint(arg string) string {
	switch strings.ToLower(filepath.Ext(arg)) {
	case ".json", ".jsonc":
		return fmt.Sprintf("%s looks like a manifest: preview it with 'gomatic diff %s' or apply it with 'gomatic apply %s'", arg, arg, arg)
	}
	return ""
}
