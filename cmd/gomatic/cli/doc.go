// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli provides the command-line framework for gomatic.
//
// The central type is [Command], which represents a named subcommand with
// optional nested [Command.Subcommands], a [pflag.FlagSet] factory, and a
// Run function. Commands are assembled into a tree in
// cmd/gomatic/commands and dispatched via [Command.Execute], which
// handles flag parsing, subcommand routing, and structured help output
// with examples.
//
// Commands may carry [Command.Aliases] ("repos", "ls"). Rejected
// command lines come back as [UsageError]. An unknown subcommand or long
// flag gets a suggestion: a unique prefix of three or more bytes
// ("repo", "--password") completes to its command or flag, otherwise
// the nearest spelling by optimal string alignment distance is offered
// when it is within a third of the input's length (one to three edits).
// A root [Command.Hint] covers arguments no name is close to, which
// gomatic uses for a manifest path typed without "apply" or "diff".
//
// Output helpers: [WriteFormatted] renders JSON or YAML for --format,
// [NewCommandLogger] picks a text or JSON slog handler depending on
// whether stderr is a terminal, and [ReadPassword] prompts without echo.
package cli
