// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package digest

import (
	"strings"
	"testing"

	"github.com/zeebo/blake3"
)

func TestOf_Deterministic(t *testing.T) {
	first := Of([]byte("<cruise/>"))
	second := OfString("<cruise/>")
	if first != second {
		t.Errorf("digests differ: %s vs %s", first, second)
	}
	if Of([]byte("<cruise />")) == first {
		t.Error("different input produced the same digest")
	}
	if first.IsZero() {
		t.Error("digest of non-empty input is zero")
	}
}

func TestOf_DomainSeparated(t *testing.T) {
	data := []byte("<cruise/>")
	plain := blake3.Sum256(data)
	if Of(data) == Digest(plain) {
		t.Error("keyed digest equals the unkeyed BLAKE3 hash")
	}
}

func TestParse_RoundTrip(t *testing.T) {
	original := OfString("revision")

	parsed, err := Parse(original.String())
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if parsed != original {
		t.Errorf("Parse(String()) = %s, want %s", parsed, original)
	}
	if !strings.HasPrefix(original.String(), original.Short()) || len(original.Short()) != 12 {
		t.Errorf("Short() = %q", original.Short())
	}

	text, err := original.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText() error: %v", err)
	}
	var decoded Digest
	if err := decoded.UnmarshalText(text); err != nil {
		t.Fatalf("UnmarshalText() error: %v", err)
	}
	if decoded != original {
		t.Errorf("UnmarshalText(MarshalText()) = %s, want %s", decoded, original)
	}
}

func TestParse_Errors(t *testing.T) {
	for _, input := range []string{"", "zz", "abcd", strings.Repeat("a", 66)} {
		if _, err := Parse(input); err == nil {
			t.Errorf("Parse(%q) succeeded, want error", input)
		}
	}
}
