// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package secret keeps the GoCD server password and the property cipher
// key out of swap, core dumps and the garbage-collected heap.
//
// A [Buffer] is an anonymous mapping locked with mlock and marked
// MADV_DONTDUMP. [ReadFromPath] loads a trimmed secret from a file or
// the first line of stdin, and [Take] moves bytes read some other way
// (a terminal prompt) into a Buffer, zeroing the source.
//
// lib/config reads server.password_file through it, the CLI password
// prompt lands in one, restclient builds the Authorization header from
// one per request, and lib/sealed holds cipher keys in them.
package secret
