// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Gomatic configures a GoCD server programmatically: it ensures package
// repositories and packages described in a manifest exist in the
// server's configuration and posts the result when it changed.
package main

import (
	"os"

	"github.com/bureau-foundation/gomatic/cmd/gomatic/commands"
	"github.com/bureau-foundation/gomatic/lib/process"
)

func main() {
	if err := run(); err != nil {
		// Commands that print their own output (like diff) return an
		// ExitError with the desired exit code; process.Exit stays
		// quiet for those.
		process.Exit(err)
	}
}

func run() error {
	return commands.Root().Execute(os.Args[1:])
}
