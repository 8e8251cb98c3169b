// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package netutil

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// MaxResponseSize bounds a configuration download. cruise-config.xml
// for a large installation runs to tens of megabytes.
const MaxResponseSize int64 = 64 << 20

// MaxErrorBodySize bounds how much of a failed response is kept for
// its error message.
const MaxErrorBodySize int64 = 64 << 10

// ErrTooLarge is returned when a body exceeds its bound. A truncated
// configuration is never handed back as if it were whole.
var ErrTooLarge = errors.New("netutil: response body exceeds size limit")

// ReadResponse reads a whole response body of at most MaxResponseSize
// bytes. A longer body is ErrTooLarge.
func ReadResponse(body io.Reader) ([]byte, error) {
	return readBounded(body, MaxResponseSize)
}

func readBounded(body io.Reader, limit int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(body, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%w of %d bytes", ErrTooLarge, limit)
	}
	return data, nil
}

// DecodeResponse reads a JSON body with ReadResponse and decodes it
// into v.
func DecodeResponse(body io.Reader, v any) error {
	data, err := ReadResponse(body)
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}
	return json.Unmarshal(data, v)
}

// ErrorBody returns the start of a failed response for a diagnostic,
// trimmed of surrounding whitespace. At most MaxErrorBodySize bytes are
// kept and a cut body ends in "...". Read errors are ignored: whatever
// arrived before the failure is still returned.
func ErrorBody(body io.Reader) string {
	data, _ := io.ReadAll(io.LimitReader(body, MaxErrorBodySize+1))
	truncated := int64(len(data)) > MaxErrorBodySize
	if truncated {
		data = data[:MaxErrorBodySize]
	}
	text := strings.TrimSpace(string(data))
	if truncated {
		text += "..."
	}
	return text
}
