// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package gocd provides typed views over the elements of a GoCD
// cruise-config document.
//
// An entity wraps a live *etree.Element and never copies data out of
// it: every getter re-reads the tree through an [xmltree.Reader], and
// every setter mutates it through an [xmltree.Ensurer]. Two entities
// over the same element observe each other's writes immediately.
//
// Construction can mutate the document. [NewRepository] and
// [NewPackage] assign an id attribute when none is present (using the
// [identity.Generator] from [WithIDGenerator]), and NewRepository
// ensures the generic-artifactory pluginConfiguration child. Repeated
// construction over the same element never changes an existing id.
//
// Properties live in a <configuration> block as ordered
// <property><key/><value/></property> pairs, or with <encryptedValue>
// in place of <value> for secrets. Repository property setters for
// arbitrary keys append without checking for duplicates; the
// well-known repository keys and every package key are written
// remove-then-set so they stay single valued.
//
// Key exports:
//
//   - [Repository] -- a generic-artifactory package repository
//   - [Package] -- a package within a repository
//   - [Property] -- one configuration key/value pair
//   - [Mapping] -- an ordered key/value projection of a package
//   - [WithIDGenerator], [WithEncrypter] -- construction options
package gocd
