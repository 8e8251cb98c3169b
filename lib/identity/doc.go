// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package identity supplies the unique tokens gomatic writes into the
// id attribute of repositories and packages.
//
// Production code uses [UUID], which issues time-based (version 1)
// UUIDs the way the GoCD server itself does for generated entities.
// Tests use [NewSequence] for deterministic, readable identifiers.
// Nothing here coordinates uniqueness across processes; a token only
// needs to be unique within the document being edited.
package identity
