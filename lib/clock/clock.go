// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import "time"

// Clock reads the current time. Production code uses [Real]; tests
// use [Fake] to pin timestamps.
type Clock interface {
	Now() time.Time
}
