// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package sealed turns plaintext secrets into the opaque strings
// gomatic stores in <encryptedValue> elements of the configuration
// document.
//
// gomatic never interprets an encrypted value; it only chooses which
// storage form a property uses. The [Encrypter] interface is the whole
// contract. Three implementations cover the deployment shapes:
//
//   - [Passthrough] -- the caller already holds the server-encrypted
//     form (for example, copied from another GoCD config) and it is
//     stored verbatim
//   - [AgeEncrypter] -- encrypts to one or more age x25519 recipients
//     and base64-encodes the ciphertext
//   - [CipherEncrypter] -- XChaCha20-Poly1305 under a key derived by
//     HKDF-SHA256 from a 32-byte cipher key shared with the consumer
//
// [GenerateKeypair], [Decrypt] and [CipherEncrypter.Decrypt] exist for
// operators and tests that need to check what was written.
package sealed
