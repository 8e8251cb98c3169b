// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package archive keeps a local history of configuration documents
// fetched from and posted to a GoCD server.
//
// Each stored document is a blob addressed by its [digest.Digest] and
// compressed with zstd or LZ4 when that makes it smaller. A CBOR index
// records one [Entry] per (digest, kind) pair, so storing the same
// document twice under the same kind is a no-op.
//
// On-disk layout:
//
//	<dir>/index.cbor
//	<dir>/blobs/<hex>.xml        (uncompressed)
//	<dir>/blobs/<hex>.xml.lz4
//	<dir>/blobs/<hex>.xml.zst
//
// A [Store] is safe for concurrent use within one process. Two
// processes sharing a directory may lose index entries to each other
// (last writer wins); blobs are never lost.
package archive
