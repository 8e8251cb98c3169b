// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the gomatic command tree.
//
// Commands that talk to a GoCD server share the connection flags
// (--config, --server, --username, --password-file, --archive-dir,
// --log-level). Flags override the YAML configuration, which is read
// from --config or GOMATIC_CONFIG; without either the defaults point at
// http://localhost:8153.
//
// Each Run function parses its arguments and delegates to a run*
// function taking explicit writers, which is what the tests drive.
package commands
