// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package netutil

import (
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"
)

const cruiseConfig = `<?xml version="1.0" encoding="utf-8"?>
<cruise schemaVersion="72"><server/><repositories/></cruise>`

func TestReadBounded(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		limit   int64
		want    string
		wantErr error
	}{
		{"under the limit", cruiseConfig, int64(len(cruiseConfig)) + 1, cruiseConfig, nil},
		{"exactly the limit", cruiseConfig, int64(len(cruiseConfig)), cruiseConfig, nil},
		{"one byte over", cruiseConfig, int64(len(cruiseConfig)) - 1, "", ErrTooLarge},
		{"empty", "", 16, "", nil},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			data, err := readBounded(strings.NewReader(test.body), test.limit)
			if !errors.Is(err, test.wantErr) {
				t.Fatalf("readBounded() error = %v, want %v", err, test.wantErr)
			}
			if string(data) != test.want {
				t.Errorf("readBounded() = %q, want %q", data, test.want)
			}
		})
	}
}

func TestReadResponse_ReadError(t *testing.T) {
	failing := iotest.ErrReader(errors.New("connection reset by peer"))
	if _, err := ReadResponse(failing); err == nil || errors.Is(err, ErrTooLarge) {
		t.Errorf("ReadResponse() error = %v, want the read error", err)
	}
}

func TestDecodeResponse_GoCDResult(t *testing.T) {
	var result struct {
		Result string `json:"result"`
	}
	body := strings.NewReader(`{"result":"Save failed. Configuration file has been modified by someone else."}`)
	if err := DecodeResponse(body, &result); err != nil {
		t.Fatalf("DecodeResponse() error: %v", err)
	}
	if !strings.HasPrefix(result.Result, "Save failed.") {
		t.Errorf("result = %q", result.Result)
	}

	if err := DecodeResponse(strings.NewReader("<html>502 Bad Gateway</html>"), &result); err == nil {
		t.Error("DecodeResponse() of an HTML error page succeeded")
	}
}

func TestErrorBody(t *testing.T) {
	long := strings.Repeat("x", int(MaxErrorBodySize)+100)
	tests := []struct {
		name string
		body io.Reader
		want string
	}{
		{"json result", strings.NewReader(`{"result":"Invalid config"}`), `{"result":"Invalid config"}`},
		{"html page with newlines", strings.NewReader("\n<html>bad gateway</html>\n"), "<html>bad gateway</html>"},
		{"empty", strings.NewReader(""), ""},
		{"cut at the bound", strings.NewReader(long), long[:MaxErrorBodySize] + "..."},
		{
			"partial body before a read error",
			io.MultiReader(strings.NewReader("Internal Server"), iotest.ErrReader(errors.New("unexpected EOF"))),
			"Internal Server",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := ErrorBody(test.body); got != test.want {
				t.Errorf("ErrorBody() = %.80q, want %.80q", got, test.want)
			}
		})
	}
}
