// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package render formats configuration documents for a terminal.
//
// [Renderer.XML] syntax-highlights a document with Chroma.
// [Renderer.Diff] produces a line diff of two prettified documents
// with unchanged runs collapsed to a few lines of context, styled with
// lipgloss. A Renderer built with color disabled emits plain text.
// [ColorEnabled] resolves the CLI's --color mode, detecting terminal
// support with termenv in auto mode.
package render
