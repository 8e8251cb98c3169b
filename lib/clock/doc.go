// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock abstracts the time source so that timestamps recorded
// by the configuration archive can be pinned in tests.
//
// Production code receives [Real], which delegates to time.Now. Tests
// use [Fake], which stands still until [FakeClock.Set] or
// [FakeClock.Advance] moves it.
package clock
