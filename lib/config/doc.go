// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML configuration loading for the gomatic
// command.
//
// Configuration is loaded from a single file specified by either the
// GOMATIC_CONFIG environment variable (via [Load]) or a --config flag
// (via [LoadFile]). There are no fallbacks and no automatic file
// search. Commands that only need a server URL can run without a file
// by passing --server.
//
// Variable expansion is performed on path fields after loading:
// ${HOME} and ${VAR:-default} patterns are expanded. Environment
// variables do not otherwise override config values.
//
// Key exports:
//
//   - [Config] -- Server, Save, Archive, Encryption and LogLevel
//   - [Default] -- a Config with every field at its default
//   - [Load] and [LoadFile] -- the two entry points for loading
//
// This package depends on no other gomatic packages.
package config
