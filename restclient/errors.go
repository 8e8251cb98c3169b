// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package restclient

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/bureau-foundation/gomatic/lib/netutil"
)

// ServerError is a non-2xx response from the GoCD server. Use
// errors.As to inspect it:
//
//	var serverErr *restclient.ServerError
//	if errors.As(err, &serverErr) && serverErr.StatusCode == http.StatusUnauthorized { ... }
type ServerError struct {
	// Method and URL identify the failed request.
	Method string
	URL    string
	// StatusCode is the HTTP status code.
	StatusCode int
	// Message is the "result" field of a JSON error body, or the raw
	// body when it was not JSON.
	Message string
	// NotJSON is true when the body could not be parsed as JSON.
	NotJSON bool
}

func (e *ServerError) Error() string {
	qualifier := ""
	if e.NotJSON {
		qualifier = " (and result was not json)"
	}
	return fmt.Sprintf("restclient: %s %s returned %d%s: %s", e.Method, e.URL, e.StatusCode, qualifier, e.Message)
}

// IsConflict reports whether err is a 409 from a config post, which
// GoCD returns when the md5 no longer matches the current config.
func IsConflict(err error) bool {
	var serverErr *ServerError
	return errors.As(err, &serverErr) && serverErr.StatusCode == http.StatusConflict
}

// parseServerError builds a ServerError from a failed response body.
func parseServerError(method, url string, statusCode int, body string) *ServerError {
	serverErr := &ServerError{
		Method:     method,
		URL:        url,
		StatusCode: statusCode,
	}
	// GoCD sometimes escapes single quotes, which is not valid JSON.
	cleaned := strings.ReplaceAll(body, `\'`, "'")
	var parsed map[string]any
	if err := netutil.DecodeResponse(strings.NewReader(cleaned), &parsed); err != nil {
		serverErr.Message = body
		serverErr.NotJSON = true
		return serverErr
	}
	if result, ok := parsed["result"].(string); ok {
		serverErr.Message = result
	} else {
		serverErr.Message = body
	}
	return serverErr
}
