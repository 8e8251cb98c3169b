// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package process provides entrypoint helpers for the gomatic binary.
// It owns the raw stderr writes that happen after a command fails,
// outside the structured logger:
//
//   - [Exit] maps a command error to a process exit code, staying
//     silent for errors that carry their own exit code.
//   - [Code] is the testable core of Exit.
package process
