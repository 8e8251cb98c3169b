// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package sealed

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"

	"github.com/bureau-foundation/gomatic/lib/secret"
)

// CipherKeySize is the length in bytes of a cipher key.
const CipherKeySize = 32

// cipherPrefix tags values produced by CipherEncrypter so a reader can
// tell them apart from age ciphertext.
const cipherPrefix = "XC20P:"

// cipherVersion is bound into every ciphertext as additional
// authenticated data.
const cipherVersion byte = 0x01

// hkdfInfoProperty separates property encryption keys from any other
// use of the same cipher key.
var hkdfInfoProperty = []byte("gomatic.property.v1")

// CipherEncrypter encrypts with XChaCha20-Poly1305 under a key derived
// from a shared cipher key. The derived key lives in a locked buffer
// released by Close.
type CipherEncrypter struct {
	key *secret.Buffer
}

// NewCipherEncrypter derives the property key from cipherKey, which
// must be CipherKeySize bytes.
func NewCipherEncrypter(cipherKey []byte) (*CipherEncrypter, error) {
	if len(cipherKey) != CipherKeySize {
		return nil, fmt.Errorf("cipher key is %d bytes, want %d", len(cipherKey), CipherKeySize)
	}
	reader := hkdf.New(sha256.New, cipherKey, nil, hkdfInfoProperty)
	derived, err := secret.New(chacha20poly1305.KeySize)
	if err != nil {
		return nil, err
	}
	if _, err := io.ReadFull(reader, derived.Bytes()); err != nil {
		derived.Close()
		return nil, fmt.Errorf("HKDF key derivation failed: %w", err)
	}
	return &CipherEncrypter{key: derived}, nil
}

// Close zeroes and releases the derived key. The encrypter must not be
// used afterwards.
func (e *CipherEncrypter) Close() error {
	return e.key.Close()
}

// LoadCipherKey reads a hex-encoded cipher key from path into a locked
// buffer. Surrounding whitespace is ignored. The caller closes the
// returned buffer.
func LoadCipherKey(path string) (*secret.Buffer, error) {
	encoded, err := secret.ReadFromPath(path)
	if err != nil {
		return nil, fmt.Errorf("reading cipher key: %w", err)
	}
	defer encoded.Close()

	if hex.DecodedLen(encoded.Len()) != CipherKeySize {
		return nil, fmt.Errorf("cipher key %s is %d bytes, want %d", path, hex.DecodedLen(encoded.Len()), CipherKeySize)
	}
	key, err := secret.New(CipherKeySize)
	if err != nil {
		return nil, err
	}
	if _, err := hex.Decode(key.Bytes(), encoded.Bytes()); err != nil {
		key.Close()
		return nil, fmt.Errorf("decoding cipher key %s: %w", path, err)
	}
	return key, nil
}

// Encrypt returns "XC20P:" followed by base64(version || nonce || ciphertext).
func (e *CipherEncrypter) Encrypt(plaintext string) (string, error) {
	aead, err := chacha20poly1305.NewX(e.key.Bytes())
	if err != nil {
		return "", fmt.Errorf("creating XChaCha20-Poly1305 cipher: %w", err)
	}

	var nonce [chacha20poly1305.NonceSizeX]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return "", fmt.Errorf("generating random nonce: %w", err)
	}

	output := make([]byte, 1+len(nonce), 1+len(nonce)+len(plaintext)+aead.Overhead())
	output[0] = cipherVersion
	copy(output[1:], nonce[:])
	output = aead.Seal(output, nonce[:], []byte(plaintext), []byte{cipherVersion})

	return cipherPrefix + base64.StdEncoding.EncodeToString(output), nil
}

// Decrypt reverses Encrypt.
func (e *CipherEncrypter) Decrypt(value string) (string, error) {
	encoded, ok := strings.CutPrefix(value, cipherPrefix)
	if !ok {
		return "", fmt.Errorf("value does not start with %q", cipherPrefix)
	}
	blob, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("decoding base64 ciphertext: %w", err)
	}
	minimum := 1 + chacha20poly1305.NonceSizeX + chacha20poly1305.Overhead
	if len(blob) < minimum {
		return "", fmt.Errorf("ciphertext is %d bytes, minimum is %d", len(blob), minimum)
	}
	if blob[0] != cipherVersion {
		return "", fmt.Errorf("ciphertext version %d is not supported", blob[0])
	}

	aead, err := chacha20poly1305.NewX(e.key.Bytes())
	if err != nil {
		return "", fmt.Errorf("creating XChaCha20-Poly1305 cipher: %w", err)
	}
	nonce := blob[1 : 1+chacha20poly1305.NonceSizeX]
	plaintext, err := aead.Open(nil, nonce, blob[1+chacha20poly1305.NonceSizeX:], blob[:1])
	if err != nil {
		return "", fmt.Errorf("AEAD decryption failed (wrong key or tampered data): %w", err)
	}
	return string(plaintext), nil
}
