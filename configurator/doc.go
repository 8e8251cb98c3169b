// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package configurator owns one editing session against a GoCD
// server's configuration document.
//
// [New] fetches cruise-config.xml and its md5 through a [Transport].
// Callers then ensure, replace, or remove entities at the document
// root; every accessor hands back a [gocd.Repository] view over the
// live tree. [Configurator.SaveUpdatedConfig] compares the prettified
// document before and after editing and posts the result only when it
// changed, keyed by the md5 the session started from so concurrent
// edits on the server are rejected rather than overwritten.
//
// The session is single-threaded: a Configurator must not be used from
// more than one goroutine at a time.
//
// Key exports:
//   - [Configurator] -- the editing session
//   - [Transport] -- fetch/post abstraction, implemented by *restclient.Client
//   - [FakeTransport] -- in-memory transport that records posts
//   - [SaveOptions], [SaveResult] -- SaveUpdatedConfig parameters and outcome
//   - [EmptyConfig] -- a minimal valid document
package configurator
