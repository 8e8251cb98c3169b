// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/bureau-foundation/gomatic/lib/secret"
)

// ErrNotTerminal is returned by ReadPassword when stdin is not a
// terminal.
var ErrNotTerminal = errors.New("stdin is not a terminal")

// StdinIsTerminal reports whether stdin is an interactive terminal.
func StdinIsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// ReadPassword prints prompt to stderr and reads a line from the
// terminal without echo into a locked buffer, which the caller closes.
func ReadPassword(prompt string) (*secret.Buffer, error) {
	if !StdinIsTerminal() {
		return nil, ErrNotTerminal
	}
	fmt.Fprint(os.Stderr, prompt)
	typed, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		secret.Zero(typed)
		return nil, fmt.Errorf("reading password: %w", err)
	}
	return secret.Take(typed)
}
