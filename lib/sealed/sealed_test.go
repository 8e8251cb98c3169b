// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package sealed

import (
	"encoding/base64"
	"strings"
	"testing"
)

func TestPassthrough(t *testing.T) {
	got, err := Passthrough().Encrypt("AES:abc:def")
	if err != nil {
		t.Fatalf("Encrypt() error: %v", err)
	}
	if got != "AES:abc:def" {
		t.Errorf("Encrypt() = %q, want input unchanged", got)
	}
}

func TestGenerateKeypair(t *testing.T) {
	keypair, err := GenerateKeypair()
	if err != nil {
		t.Fatalf("GenerateKeypair() error: %v", err)
	}

	if !strings.HasPrefix(keypair.PrivateKey, "AGE-SECRET-KEY-1") {
		t.Errorf("PrivateKey = %q, want prefix AGE-SECRET-KEY-1", keypair.PrivateKey)
	}
	if !strings.HasPrefix(keypair.PublicKey, "age1") {
		t.Errorf("PublicKey = %q, want prefix age1", keypair.PublicKey)
	}
	if err := ParsePublicKey(keypair.PublicKey); err != nil {
		t.Errorf("ParsePublicKey(generated) error: %v", err)
	}
}

func TestGenerateKeypair_Unique(t *testing.T) {
	keypair1, err := GenerateKeypair()
	if err != nil {
		t.Fatalf("GenerateKeypair() error: %v", err)
	}
	keypair2, err := GenerateKeypair()
	if err != nil {
		t.Fatalf("GenerateKeypair() error: %v", err)
	}
	if keypair1.PrivateKey == keypair2.PrivateKey {
		t.Error("two generated keypairs have identical private keys")
	}
}

func TestAgeEncrypter_RoundTrip(t *testing.T) {
	keypair, err := GenerateKeypair()
	if err != nil {
		t.Fatalf("GenerateKeypair() error: %v", err)
	}
	encrypter, err := NewAgeEncrypter([]string{keypair.PublicKey})
	if err != nil {
		t.Fatalf("NewAgeEncrypter() error: %v", err)
	}

	ciphertext, err := encrypter.Encrypt("artifactory-password")
	if err != nil {
		t.Fatalf("Encrypt() error: %v", err)
	}
	if strings.Contains(ciphertext, "artifactory-password") {
		t.Error("ciphertext contains plaintext")
	}
	if _, err := base64.StdEncoding.DecodeString(ciphertext); err != nil {
		t.Errorf("ciphertext is not valid base64: %v", err)
	}

	plaintext, err := Decrypt(ciphertext, keypair.PrivateKey)
	if err != nil {
		t.Fatalf("Decrypt() error: %v", err)
	}
	if plaintext != "artifactory-password" {
		t.Errorf("Decrypt() = %q, want %q", plaintext, "artifactory-password")
	}
}

func TestAgeEncrypter_MultipleRecipients(t *testing.T) {
	first, err := GenerateKeypair()
	if err != nil {
		t.Fatalf("GenerateKeypair() error: %v", err)
	}
	second, err := GenerateKeypair()
	if err != nil {
		t.Fatalf("GenerateKeypair() error: %v", err)
	}
	encrypter, err := NewAgeEncrypter([]string{first.PublicKey, second.PublicKey})
	if err != nil {
		t.Fatalf("NewAgeEncrypter() error: %v", err)
	}
	ciphertext, err := encrypter.Encrypt("shared")
	if err != nil {
		t.Fatalf("Encrypt() error: %v", err)
	}

	for _, keypair := range []*Keypair{first, second} {
		plaintext, err := Decrypt(ciphertext, keypair.PrivateKey)
		if err != nil {
			t.Fatalf("Decrypt() error: %v", err)
		}
		if plaintext != "shared" {
			t.Errorf("Decrypt() = %q, want %q", plaintext, "shared")
		}
	}
}

func TestDecrypt_WrongKey(t *testing.T) {
	owner, err := GenerateKeypair()
	if err != nil {
		t.Fatalf("GenerateKeypair() error: %v", err)
	}
	other, err := GenerateKeypair()
	if err != nil {
		t.Fatalf("GenerateKeypair() error: %v", err)
	}
	encrypter, err := NewAgeEncrypter([]string{owner.PublicKey})
	if err != nil {
		t.Fatalf("NewAgeEncrypter() error: %v", err)
	}
	ciphertext, err := encrypter.Encrypt("secret")
	if err != nil {
		t.Fatalf("Encrypt() error: %v", err)
	}
	if _, err := Decrypt(ciphertext, other.PrivateKey); err == nil {
		t.Error("Decrypt() with the wrong key should fail")
	}
}

func TestNewAgeEncrypter_Errors(t *testing.T) {
	if _, err := NewAgeEncrypter(nil); err == nil {
		t.Error("NewAgeEncrypter(nil) should fail")
	}
	if _, err := NewAgeEncrypter([]string{"not-a-key"}); err == nil {
		t.Error("NewAgeEncrypter with an invalid key should fail")
	}
	if err := ParsePublicKey("age1bogus"); err == nil {
		t.Error("ParsePublicKey(age1bogus) should fail")
	}
}
