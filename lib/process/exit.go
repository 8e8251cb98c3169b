// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package process

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// ExitCoder is implemented by errors that select the process exit
// code themselves, such as the CLI's exit error for "diff found
// changes". Their output has already been printed.
type ExitCoder interface {
	ExitCode() int
}

// Exit terminates the process according to err. A nil err exits 0.
func Exit(err error) {
	os.Exit(Code(err, os.Stderr))
}

// Code returns the exit code for err, writing "error: err" to stderr
// unless err carries its own code via [ExitCoder].
func Code(err error, stderr io.Writer) int {
	if err == nil {
		return 0
	}
	var coder ExitCoder
	if errors.As(err, &coder) {
		return coder.ExitCode()
	}
	fmt.Fprintf(stderr, "error: %v\n", err)
	return 1
}
