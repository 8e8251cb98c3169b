// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/spf13/pflag"
)

// Command is a node in the gomatic command tree: either a group such
// as "archive" that dispatches on its first argument, or a leaf such
// as "apply" with flags and a Run function.
type Command struct {
	// Name is the canonical name, e.g. "repositories".
	Name string

	// Aliases are accepted in place of Name, e.g. "repos".
	Aliases []string

	// Summary is the one-line entry in the parent's command listing.
	Summary string

	// Description is the longer text at the top of the command's help.
	Description string

	// Usage overrides the synthesized usage line, e.g.
	// "gomatic apply <manifest> [flags]".
	Usage string

	Examples []Example

	// Flags builds the command's flag set. It is called once per parse
	// or help request. Nil means the command takes no flags.
	Flags func() *pflag.FlagSet

	Subcommands []*Command

	// Run receives the positional arguments left after flag parsing.
	// A group may set Run to handle arguments no subcommand claims.
	Run func(args []string) error

	// Hint explains an unknown subcommand that no name is close to,
	// e.g. a manifest path typed without "apply". It returns "" when
	// it has nothing to say.
	Hint func(arg string) string

	// HelpOutput receives help text. Defaults to the parent's, then
	// os.Stderr.
	HelpOutput io.Writer

	parent *Command
}

// Example is a command line shown in help output.
type Example struct {
	Description string
	Command     string
}

// UsageError is a command line the tree could not accept. The message
// ends by pointing at the command's --help.
type UsageError struct {
	// Command is the full path of the command that rejected the
	// arguments, e.g. "gomatic archive show".
	Command string
	Message string
	// Suggestion is the likely intended spelling, already formatted
	// for display ("--dry-run" or "\"repositories\"").
	Suggestion string
	// Hint is an extra sentence printed on its own line.
	Hint string
}

func (e *UsageError) Error() string {
	var builder strings.Builder
	builder.WriteString(e.Message)
	if e.Suggestion != "" {
		fmt.Fprintf(&builder, " (did you mean %s?)", e.Suggestion)
	}
	if e.Hint != "" {
		fmt.Fprintf(&builder, "\n%s", e.Hint)
	}
	fmt.Fprintf(&builder, "\n\nRun '%s --help' for usage.", e.Command)
	return builder.String()
}

// IsUsageError reports whether err is or wraps a *UsageError.
func IsUsageError(err error) bool {
	var usage *UsageError
	return errors.As(err, &usage)
}

// ErrUsage returns a *UsageError for this command.
func (c *Command) ErrUsage(format string, args ...any) error {
	return &UsageError{Command: c.fullName(), Message: fmt.Sprintf(format, args...)}
}

// Execute parses args against the tree rooted at c and runs the
// selected command.
func (c *Command) Execute(args []string) error {
	if len(args) > 0 && isHelpFlag(args[0]) {
		c.PrintHelp(c.helpOutput())
		return nil
	}

	if len(c.Subcommands) > 0 {
		if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
			if sub := c.lookup(args[0]); sub != nil {
				sub.parent = c
				return sub.Execute(args[1:])
			}
			if c.Run == nil {
				return c.unknownSubcommand(args[0])
			}
		} else if c.Run == nil {
			c.PrintHelp(c.helpOutput())
			if len(args) == 0 {
				return c.ErrUsage("subcommand required")
			}
			return c.ErrUsage("subcommand required (got flag %q)", args[0])
		}
	}

	if c.Flags != nil {
		positional, err := c.parseFlags(args)
		if err != nil {
			return err
		}
		args = positional
	}

	if c.Run == nil {
		c.PrintHelp(c.helpOutput())
		return fmt.Errorf("no action defined for %q", c.fullName())
	}
	return c.Run(args)
}

// lookup returns the subcommand named or aliased name.
func (c *Command) lookup(name string) *Command {
	for _, sub := range c.Subcommands {
		if sub.Name == name || slices.Contains(sub.Aliases, name) {
			return sub
		}
	}
	return nil
}

func (c *Command) unknownSubcommand(name string) error {
	usage := &UsageError{
		Command: c.fullName(),
		Message: fmt.Sprintf("unknown command %q", name),
	}
	if suggestion := suggestCommand(name, c.Subcommands); suggestion != "" {
		usage.Suggestion = fmt.Sprintf("%q", suggestion)
	} else if c.Hint != nil {
		usage.Hint = c.Hint(name)
	}
	return usage
}

// parseFlags parses args with the command's flag set and returns the
// positional arguments. pflag's own error output is suppressed.
func (c *Command) parseFlags(args []string) ([]string, error) {
	flagSet := c.Flags()
	flagSet.SetOutput(io.Discard)
	if err := flagSet.Parse(args); err != nil {
		usage := &UsageError{Command: c.fullName(), Message: err.Error()}
		if strings.HasPrefix(usage.Message, "unknown flag") || strings.HasPrefix(usage.Message, "unknown shorthand flag") {
			usage.Suggestion = suggestFlag(args, flagSet)
		}
		return nil, usage
	}
	return flagSet.Args(), nil
}

// PrintHelp writes the command's help to w.
func (c *Command) PrintHelp(w io.Writer) {
	name := c.fullName()

	switch {
	case c.Description != "":
		fmt.Fprintf(w, "%s\n\n", c.Description)
	case c.Summary != "":
		fmt.Fprintf(w, "%s\n\n", c.Summary)
	}

	usage := c.Usage
	if usage == "" {
		usage = name + " [flags]"
		if len(c.Subcommands) > 0 {
			usage = name + " <command> [flags]"
		}
	}
	fmt.Fprintf(w, "Usage:\n  %s\n", usage)

	if len(c.Subcommands) > 0 {
		fmt.Fprintf(w, "\nCommands:\n")
		table := tabwriter.NewWriter(w, 2, 0, 3, ' ', 0)
		for _, sub := range c.Subcommands {
			label := sub.Name
			if len(sub.Aliases) > 0 {
				label += " (" + strings.Join(sub.Aliases, ", ") + ")"
			}
			fmt.Fprintf(table, "  %s\t%s\n", label, sub.Summary)
		}
		table.Flush()
	}

	if c.Flags != nil {
		if defaults := c.Flags().FlagUsages(); defaults != "" {
			fmt.Fprintf(w, "\nFlags:\n%s", defaults)
		}
	}

	if len(c.Examples) > 0 {
		fmt.Fprintf(w, "\nExamples:\n")
		for _, example := range c.Examples {
			if example.Description == "" {
				fmt.Fprintf(w, "  %s\n", example.Command)
				continue
			}
			fmt.Fprintf(w, "  # %s\n  %s\n\n", example.Description, example.Command)
		}
	}

	if len(c.Subcommands) > 0 {
		fmt.Fprintf(w, "\nRun '%s <command> --help' for more information on a command.\n", name)
	}
}

func (c *Command) helpOutput() io.Writer {
	for command := c; command != nil; command = command.parent {
		if command.HelpOutput != nil {
			return command.HelpOutput
		}
	}
	return os.Stderr
}

// fullName returns the command path, e.g. "gomatic archive list".
func (c *Command) fullName() string {
	if c.parent == nil {
		return c.Name
	}
	return c.parent.fullName() + " " + c.Name
}

func isHelpFlag(arg string) bool {
	return arg == "-h" || arg == "--help" || arg == "help"
}
