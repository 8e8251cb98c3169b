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
	"github.com/bureau-foundation/gomatic/lib/gocd"
)

type repositoriesParams struct {
	connectionParams
	Format  string
	Ordered bool
}

func repositoriesCommand() *cli.Command {
	var params repositoriesParams

	return &cli.Command{
		Name:    "repositories",
		Aliases: []string{"repos"},
		Summary: "List package repositories and their packages",
		Description: `List the generic-artifactory package repositories defined on the
server, with each repository's packages projected the way GoCD's
package API describes them.

Keys are sorted unless --ordered is given, in which case every object
keeps its natural field order (type, repository_name, name, id,
configuration for packages).`,
		Usage: "gomatic repositories [flags]",
		Examples: []cli.Example{
			{
				Description: "List repositories as JSON in field order",
				Command:     "gomatic repositories --format json --ordered",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("repositories", pflag.ContinueOnError)
			params.register(flagSet)
			flagSet.StringVarP(&params.Format, "format", "f", cli.FormatYAML, "output format: json or yaml")
			flagSet.BoolVar(&params.Ordered, "ordered", false, "keep natural field order instead of sorting keys")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) > 0 {
				return fmt.Errorf("repositories takes no positional arguments, got %q", args[0])
			}
			cfg, err := params.load()
			if err != nil {
				return err
			}
			logger := commandLogger(cfg)
			session, release, err := openSession(context.Background(), cfg, logger)
			if err != nil {
				return err
			}
			defer release()
			return runRepositories(session, params, os.Stdout)
		},
	}
}

func runRepositories(session *configurator.Configurator, params repositoriesParams, w io.Writer) error {
	var mappings []gocd.Mapping
	for _, repository := range session.Repositories() {
		mappings = append(mappings, repositoryMapping(repository, params.Ordered))
	}
	return cli.WriteFormatted(w, params.Format, mappings)
}

// repositoryMapping projects a repository the way ToMapping projects a
// package. Passwords are never included.
func repositoryMapping(repository *gocd.Repository, ordered bool) gocd.Mapping {
	mapping := gocd.NewMapping(!ordered)
	mapping.Set("name", repository.Name())
	mapping.Set("id", repository.ID())
	mapping.Set("repository_url", repository.RepositoryURL())
	if username := repository.Username(); username != "" {
		mapping.Set("username", username)
	}
	packages := []gocd.Mapping{}
	for _, pkg := range repository.Packages() {
		packages = append(packages, pkg.ToMapping(ordered))
	}
	mapping.Set("packages", packages)
	return mapping
}
