// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package digest computes content digests of configuration documents.
//
// A [Digest] is a BLAKE3 keyed hash under a fixed domain key, so the
// same bytes hashed for another purpose never collide with a config
// digest. The configurator compares digests of prettified documents to
// decide whether anything changed, and the archive addresses stored
// revisions by digest.
package digest
