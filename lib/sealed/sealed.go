// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package sealed

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"

	"filippo.io/age"
)

// Encrypter converts a plaintext secret into its stored form.
type Encrypter interface {
	Encrypt(plaintext string) (string, error)
}

type passthrough struct{}

// Passthrough returns an Encrypter that stores values unchanged.
func Passthrough() Encrypter {
	return passthrough{}
}

func (passthrough) Encrypt(plaintext string) (string, error) {
	return plaintext, nil
}

// Keypair holds an age x25519 keypair. PrivateKey must never be
// written into a configuration document.
type Keypair struct {
	// PrivateKey is in AGE-SECRET-KEY-1... format.
	PrivateKey string
	// PublicKey is in age1... format and is what goes into
	// encryption.recipients.
	PublicKey string
}

// GenerateKeypair generates a new age x25519 keypair.
func GenerateKeypair() (*Keypair, error) {
	identity, err := age.GenerateX25519Identity()
	if err != nil {
		return nil, fmt.Errorf("generating age keypair: %w", err)
	}
	return &Keypair{
		PrivateKey: identity.String(),
		PublicKey:  identity.Recipient().String(),
	}, nil
}

// AgeEncrypter encrypts to a fixed set of age recipients.
type AgeEncrypter struct {
	recipients []age.Recipient
}

// NewAgeEncrypter parses recipientKeys (age1... strings). At least one
// recipient is required.
func NewAgeEncrypter(recipientKeys []string) (*AgeEncrypter, error) {
	if len(recipientKeys) == 0 {
		return nil, fmt.Errorf("at least one recipient is required")
	}
	recipients := make([]age.Recipient, 0, len(recipientKeys))
	for _, key := range recipientKeys {
		recipient, err := age.ParseX25519Recipient(key)
		if err != nil {
			return nil, fmt.Errorf("parsing recipient key %q: %w", key, err)
		}
		recipients = append(recipients, recipient)
	}
	return &AgeEncrypter{recipients: recipients}, nil
}

// Encrypt returns the standard base64 encoding of the age ciphertext.
func (e *AgeEncrypter) Encrypt(plaintext string) (string, error) {
	var ciphertext bytes.Buffer
	writer, err := age.Encrypt(&ciphertext, e.recipients...)
	if err != nil {
		return "", fmt.Errorf("creating age encryptor: %w", err)
	}
	if _, err := io.WriteString(writer, plaintext); err != nil {
		return "", fmt.Errorf("writing plaintext to age encryptor: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("finalizing age encryption: %w", err)
	}
	return base64.StdEncoding.EncodeToString(ciphertext.Bytes()), nil
}

// Decrypt reverses [AgeEncrypter.Encrypt] with an AGE-SECRET-KEY-1...
// private key.
func Decrypt(ciphertext, privateKey string) (string, error) {
	identity, err := age.ParseX25519Identity(privateKey)
	if err != nil {
		return "", fmt.Errorf("parsing private key: %w", err)
	}
	raw, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", fmt.Errorf("decoding base64 ciphertext: %w", err)
	}
	reader, err := age.Decrypt(bytes.NewReader(raw), identity)
	if err != nil {
		return "", fmt.Errorf("decrypting: %w", err)
	}
	plaintext, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("reading decrypted plaintext: %w", err)
	}
	return string(plaintext), nil
}

// ParsePublicKey reports whether publicKey is a valid age x25519
// recipient.
func ParsePublicKey(publicKey string) error {
	if _, err := age.ParseX25519Recipient(publicKey); err != nil {
		return fmt.Errorf("invalid age public key: %w", err)
	}
	return nil
}
