// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package xmltree provides the two views every gomatic entity uses to
// touch the configuration document: a [Reader] over an element that may
// be missing, and an [Ensurer] over an element that is guaranteed to
// exist.
//
// Readers propagate absence. Every navigation step on a missing element
// yields another missing Reader, and every terminal read returns the
// caller's default or an empty sequence:
//
//	name := xmltree.Read(root).Child("repositories").Child("repository").Attribute("name", "")
//
// Ensurers build paths. EnsureChild and EnsureChildWithAttribute find
// the first matching child in document order or create one, so calling
// them repeatedly never duplicates structure:
//
//	xmltree.Ensure(root).EnsureChild("repositories").
//		EnsureChildWithAttribute("repository", "name", "artifacts").
//		Set("id", id)
//
// Elements are shared *etree.Element pointers. No view copies data out
// of the tree, so a mutation through one view is visible through every
// other view of the same element.
//
// Constructing an Ensurer over a nil element, or reading an attribute
// that a structural invariant requires, panics with a [*ContractError].
// Those are programming errors, not conditions to recover from.
//
// Key exports:
//
//   - [Read] / [Reader] -- absence-propagating reads and removals
//   - [Ensure] / [Ensurer] -- idempotent find-or-create navigation
//   - [RequireAttribute] -- invariant-checked attribute read
//   - [Parse], [Serialize], [Prettify] -- document I/O
//   - [NewFragment], [MoveAllToEnd] -- subtree construction and reordering
package xmltree
