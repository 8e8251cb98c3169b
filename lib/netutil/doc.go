// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package netutil bounds the HTTP bodies the GoCD REST client reads.
//
// [ReadResponse] refuses a configuration download over
// [MaxResponseSize] with [ErrTooLarge] instead of truncating it, so a
// partial cruise-config.xml is never parsed, edited and posted back.
// [ErrorBody] keeps the first [MaxErrorBodySize] bytes of a failed
// response for the error message.
package netutil
