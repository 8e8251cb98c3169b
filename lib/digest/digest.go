// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package digest

import (
	"encoding/hex"
	"fmt"

	"github.com/zeebo/blake3"
)

// Size is the length of a digest in bytes.
const Size = 32

// Digest is a 32-byte BLAKE3 keyed hash.
type Digest [Size]byte

// configDomainKey is the ASCII domain name zero-padded to 32 bytes.
// Changing it invalidates every stored digest.
var configDomainKey = [Size]byte{
	'g', 'o', 'm', 'a', 't', 'i', 'c', '.', 'c', 'o', 'n', 'f', 'i', 'g', '.',
	'r', 'e', 'v', 'i', 's', 'i', 'o', 'n', 0, 0, 0, 0, 0, 0, 0, 0, 0,
}

// Of returns the config-domain digest of data.
func Of(data []byte) Digest {
	hasher, err := blake3.NewKeyed(configDomainKey[:])
	if err != nil {
		panic("digest: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	hasher.Write(data)
	var result Digest
	copy(result[:], hasher.Sum(nil))
	return result
}

// OfString is Of for string input.
func OfString(data string) Digest {
	return Of([]byte(data))
}

// String returns the lowercase hex encoding.
func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// Short returns the first 12 hex characters, for display.
func (d Digest) Short() string {
	return hex.EncodeToString(d[:6])
}

// IsZero reports whether d is the zero digest.
func (d Digest) IsZero() bool {
	return d == Digest{}
}

// MarshalText encodes d as hex.
func (d Digest) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText decodes a 64-character hex string.
func (d *Digest) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Parse decodes a 64-character hex string.
func Parse(hexString string) (Digest, error) {
	var result Digest
	decoded, err := hex.DecodeString(hexString)
	if err != nil {
		return result, fmt.Errorf("parsing digest: %w", err)
	}
	if len(decoded) != Size {
		return result, fmt.Errorf("digest is %d bytes, want %d", len(decoded), Size)
	}
	copy(result[:], decoded)
	return result, nil
}
