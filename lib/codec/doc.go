// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec is the CBOR encoding used for gomatic's on-disk state.
//
// The archive index is the only persisted structure outside the XML
// documents themselves. It is encoded with Core Deterministic Encoding
// (RFC 8949 §4.2) so the same index always produces the same bytes and
// rewrites that change nothing leave the file identical.
//
// Types implementing encoding.TextMarshaler (such as digest.Digest)
// encode as CBOR text strings, which keeps the index readable with
// [Diagnose].
package codec
