// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

func TestCommand_Execute_DispatchesToSubcommand(t *testing.T) {
	var called string

	root := &Command{
		Name: "gomatic",
		Subcommands: []*Command{
			{
				Name: "version",
				Run: func(args []string) error {
					called = "version"
					return nil
				},
			},
			{
				Name: "show",
				Run: func(args []string) error {
					called = "show"
					return nil
				},
			},
		},
	}

	if err := root.Execute([]string{"show"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if called != "show" {
		t.Errorf("dispatched to %q, want %q", called, "show")
	}
}

func TestCommand_Execute_NestedSubcommands(t *testing.T) {
	var called string
	var receivedArgs []string

	root := &Command{
		Name: "gomatic",
		Subcommands: []*Command{
			{
				Name: "archive",
				Subcommands: []*Command{
					{
						Name: "show",
						Run: func(args []string) error {
							called = "archive show"
							receivedArgs = args
							return nil
						},
					},
				},
			},
		},
	}

	if err := root.Execute([]string{"archive", "show", "3fa4b2"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if called != "archive show" {
		t.Errorf("dispatched to %q, want %q", called, "archive show")
	}
	if len(receivedArgs) != 1 || receivedArgs[0] != "3fa4b2" {
		t.Errorf("args = %v, want [3fa4b2]", receivedArgs)
	}
}

func TestCommand_Execute_FlagParsing(t *testing.T) {
	var format string
	var manifestPath string

	command := &Command{
		Name: "apply",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("apply", pflag.ContinueOnError)
			flagSet.StringVar(&format, "format", "json", "output format")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) > 0 {
				manifestPath = args[0]
			}
			return nil
		},
	}

	if err := command.Execute([]string{"--format", "yaml", "repos.jsonc"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if format != "yaml" {
		t.Errorf("format = %q, want %q", format, "yaml")
	}
	if manifestPath != "repos.jsonc" {
		t.Errorf("manifestPath = %q, want %q", manifestPath, "repos.jsonc")
	}
}

func TestCommand_Execute_UnknownFlagSuggestion(t *testing.T) {
	command := &Command{
		Name: "apply",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("apply", pflag.ContinueOnError)
			flagSet.Bool("dry-run", false, "do not post")
			flagSet.String("save-local", "", "directory for local copies")
			return flagSet
		},
		Run: func(args []string) error { return nil },
	}

	err := command.Execute([]string{"--dry-rnu"})
	if err == nil {
		t.Fatal("Execute() = nil, want error for unknown flag")
	}
	errStr := err.Error()
	if !strings.Contains(errStr, "did you mean --dry-run") {
		t.Errorf("error = %q, want suggestion for '--dry-run'", errStr)
	}
	if !strings.Contains(errStr, "dry-rnu") {
		t.Errorf("error = %q, should mention the bad flag", errStr)
	}
	if !strings.Contains(errStr, "--help") {
		t.Errorf("error = %q, should point to --help", errStr)
	}
}

func TestCommand_Execute_UnknownFlagNoSuggestion(t *testing.T) {
	command := &Command{
		Name: "apply",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("apply", pflag.ContinueOnError)
			flagSet.Bool("dry-run", false, "do not post")
			return flagSet
		},
		Run: func(args []string) error { return nil },
	}

	err := command.Execute([]string{"--zzzzzzzzz"})
	if err == nil {
		t.Fatal("Execute() = nil, want error for unknown flag")
	}
	if strings.Contains(err.Error(), "did you mean") {
		t.Errorf("error = %q, should not suggest for distant flag", err.Error())
	}
	if !strings.Contains(err.Error(), "--help") {
		t.Errorf("error = %q, should point to --help", err.Error())
	}
}

func TestCommand_Execute_UnknownSubcommandSuggestion(t *testing.T) {
	root := &Command{
		Name: "gomatic",
		Subcommands: []*Command{
			{Name: "show"},
			{Name: "repositories"},
			{Name: "version"},
		},
	}

	err := root.Execute([]string{"repositores"})
	if err == nil {
		t.Fatal("Execute() = nil, want error for unknown subcommand")
	}
	if !strings.Contains(err.Error(), "did you mean \"repositories\"") {
		t.Errorf("error = %q, want suggestion for 'repositories'", err.Error())
	}
}

func TestCommand_Execute_UnknownSubcommandNoSuggestion(t *testing.T) {
	root := &Command{
		Name: "gomatic",
		Subcommands: []*Command{
			{Name: "show"},
			{Name: "repositories"},
		},
	}

	err := root.Execute([]string{"zzzzzzz"})
	if err == nil {
		t.Fatal("Execute() = nil, want error for unknown subcommand")
	}
	if strings.Contains(err.Error(), "did you mean") {
		t.Errorf("error = %q, should not contain suggestion for distant input", err.Error())
	}
}

func TestCommand_Execute_HelpFlag(t *testing.T) {
	for _, helpArg := range []string{"-h", "--help", "help"} {
		t.Run(helpArg, func(t *testing.T) {
			var buffer bytes.Buffer
			root := &Command{
				Name:       "gomatic",
				Summary:    "Programmatic GoCD configuration",
				HelpOutput: &buffer,
				Subcommands: []*Command{
					{Name: "show", Summary: "Print the server's configuration"},
				},
			}

			if err := root.Execute([]string{helpArg}); err != nil {
				t.Errorf("Execute(%q) error: %v", helpArg, err)
			}
			if !strings.Contains(buffer.String(), "Print the server's configuration") {
				t.Errorf("help output = %q, want subcommand listing", buffer.String())
			}
		})
	}
}

func TestCommand_Execute_HelpOutputInherited(t *testing.T) {
	var buffer bytes.Buffer
	root := &Command{
		Name:       "gomatic",
		HelpOutput: &buffer,
		Subcommands: []*Command{
			{
				Name:    "archive",
				Summary: "Inspect archived revisions",
				Subcommands: []*Command{
					{Name: "list", Summary: "List archived revisions"},
				},
			},
		},
	}

	if err := root.Execute([]string{"archive", "--help"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if !strings.Contains(buffer.String(), "gomatic archive <command>") {
		t.Errorf("help output = %q, want nested usage line", buffer.String())
	}
}

func TestCommand_Execute_NoArgsShowsHelp(t *testing.T) {
	root := &Command{
		Name:       "gomatic",
		HelpOutput: &bytes.Buffer{},
		Subcommands: []*Command{
			{Name: "show", Summary: "Print the server's configuration"},
		},
	}

	err := root.Execute([]string{})
	if err == nil {
		t.Fatal("Execute() = nil, want error for missing subcommand")
	}
	if !strings.Contains(err.Error(), "subcommand required") {
		t.Errorf("error = %q, want 'subcommand required'", err.Error())
	}
}

func TestCommand_PrintHelp(t *testing.T) {
	command := &Command{
		Name:        "gomatic",
		Description: "Programmatic GoCD configuration.",
		Subcommands: []*Command{
			{Name: "show", Summary: "Print the server's configuration"},
			{Name: "apply", Summary: "Apply a repository manifest"},
			{Name: "version", Summary: "Print version information"},
		},
		Examples: []Example{
			{
				Description: "Preview a manifest without posting",
				Command:     "gomatic apply repos.jsonc --dry-run",
			},
			{
				Description: "List repositories as YAML",
				Command:     "gomatic repositories --format yaml",
			},
		},
	}

	var buffer bytes.Buffer
	command.PrintHelp(&buffer)
	output := buffer.String()

	for _, want := range []string{
		"Programmatic GoCD configuration.",
		"Usage:",
		"gomatic <command> [flags]",
		"Commands:",
		"show",
		"Print the server's configuration",
		"apply",
		"Apply a repository manifest",
		"Examples:",
		"gomatic apply repos.jsonc --dry-run",
		"gomatic repositories --format yaml",
		"Run 'gomatic <command> --help'",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("help output missing %q\n\nFull output:\n%s", want, output)
		}
	}
}

func TestCommand_PrintHelp_WithFlags(t *testing.T) {
	command := &Command{
		Name:    "apply",
		Summary: "Apply a repository manifest",
		Usage:   "gomatic apply <manifest> [flags]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("apply", pflag.ContinueOnError)
			flagSet.String("save-local", "", "directory for config-before.xml and config-after.xml")
			flagSet.Bool("dry-run", false, "do not post the result")
			return flagSet
		},
	}

	var buffer bytes.Buffer
	command.PrintHelp(&buffer)
	output := buffer.String()

	for _, want := range []string{
		"gomatic apply <manifest> [flags]",
		"Flags:",
		"save-local",
		"dry-run",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("help output missing %q\n\nFull output:\n%s", want, output)
		}
	}
}

func TestCommand_FullName(t *testing.T) {
	root := &Command{Name: "gomatic"}
	archive := &Command{Name: "archive", parent: root}
	list := &Command{Name: "list", parent: archive}

	if got := root.fullName(); got != "gomatic" {
		t.Errorf("root.fullName() = %q, want %q", got, "gomatic")
	}
	if got := archive.fullName(); got != "gomatic archive" {
		t.Errorf("archive.fullName() = %q, want %q", got, "gomatic archive")
	}
	if got := list.fullName(); got != "gomatic archive list" {
		t.Errorf("list.fullName() = %q, want %q", got, "gomatic archive list")
	}
}

func TestCommand_ErrUsage(t *testing.T) {
	root := &Command{Name: "gomatic"}
	apply := &Command{Name: "apply", parent: root}

	err := apply.ErrUsage("expected 1 argument, got %d", 0)
	if !strings.Contains(err.Error(), "expected 1 argument, got 0") {
		t.Errorf("error = %q, want formatted message", err.Error())
	}
	if !strings.Contains(err.Error(), "Run 'gomatic apply --help'") {
		t.Errorf("error = %q, want help pointer", err.Error())
	}
}

func TestCommand_Execute_Alias(t *testing.T) {
	var called string
	root := &Command{
		Name: "gomatic",
		Subcommands: []*Command{
			{
				Name:    "repositories",
				Aliases: []string{"repos"},
				Run:     func(args []string) error { called = "repositories"; return nil },
			},
		},
	}

	if err := root.Execute([]string{"repos"}); err != nil {
		t.Fatalf("Execute(repos) error: %v", err)
	}
	if called != "repositories" {
		t.Errorf("dispatched to %q, want %q", called, "repositories")
	}

	var buffer bytes.Buffer
	root.PrintHelp(&buffer)
	if !strings.Contains(buffer.String(), "repositories (repos)") {
		t.Errorf("help output = %q, want alias listed", buffer.String())
	}
}

func TestCommand_Execute_HintForUnmatchedArgument(t *testing.T) {
	root := &Command{
		Name:        "gomatic",
		Subcommands: []*Command{{Name: "apply"}, {Name: "diff"}},
		Hint: func(arg string) string {
			if strings.HasSuffix(arg, ".jsonc") {
				return "run 'gomatic apply " + arg + "'"
			}
			return ""
		},
	}

	err := root.Execute([]string{"repos.jsonc"})
	var usage *UsageError
	if !errors.As(err, &usage) {
		t.Fatalf("Execute() error = %v, want *UsageError", err)
	}
	if usage.Suggestion != "" || usage.Hint != "run 'gomatic apply repos.jsonc'" {
		t.Errorf("suggestion %q, hint %q", usage.Suggestion, usage.Hint)
	}
	if !strings.Contains(err.Error(), "\nrun 'gomatic apply repos.jsonc'\n") {
		t.Errorf("error = %q, want hint on its own line", err.Error())
	}

	// A close name wins over the hint.
	err = root.Execute([]string{"aply"})
	if !errors.As(err, &usage) || usage.Hint != "" || usage.Suggestion != `"apply"` {
		t.Errorf("Execute(aply) error = %#v", err)
	}
}

func TestUsageError(t *testing.T) {
	err := error(&UsageError{
		Command:    "gomatic apply",
		Message:    "unknown flag: --dry",
		Suggestion: "--dry-run",
	})
	want := "unknown flag: --dry (did you mean --dry-run?)\n\nRun 'gomatic apply --help' for usage."
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if !IsUsageError(fmt.Errorf("apply: %w", err)) {
		t.Error("IsUsageError() = false for a wrapped *UsageError")
	}
	if IsUsageError(errors.New("server returned 409")) {
		t.Error("IsUsageError() = true for an unrelated error")
	}
}

func TestCommand_Execute_UnknownShorthandFlag(t *testing.T) {
	command := &Command{
		Name: "show",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("show", pflag.ContinueOnError)
			flagSet.Bool("raw", false, "")
			return flagSet
		},
		Run: func(args []string) error { return nil },
	}

	err := command.Execute([]string{"-x"})
	if !IsUsageError(err) {
		t.Fatalf("Execute(-x) error = %v, want *UsageError", err)
	}
	if strings.Contains(err.Error(), "did you mean") {
		t.Errorf("error = %q, shorthands are never suggested", err.Error())
	}
}
