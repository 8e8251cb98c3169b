// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/bureau-foundation/gomatic/lib/sealed"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gomatic.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Server.URL != "http://localhost:8153" {
		t.Errorf("Server.URL = %q", cfg.Server.URL)
	}
	if cfg.Encryption.Mode != EncryptionPassthrough {
		t.Errorf("Encryption.Mode = %q, want passthrough", cfg.Encryption.Mode)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default().Validate() error: %v", err)
	}
	timeout, err := cfg.Timeout()
	if err != nil || timeout != 30*time.Second {
		t.Errorf("Timeout() = %v, %v; want 30s", timeout, err)
	}
}

func TestLoad_RequiresGomaticConfig(t *testing.T) {
	t.Setenv("GOMATIC_CONFIG", "")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error when GOMATIC_CONFIG not set, got nil")
	}
	if !strings.HasPrefix(err.Error(), "GOMATIC_CONFIG environment variable not set") {
		t.Errorf("error = %q", err)
	}
}

func TestLoad_WithGomaticConfig(t *testing.T) {
	keypair, err := sealed.GenerateKeypair()
	if err != nil {
		t.Fatalf("GenerateKeypair() error: %v", err)
	}
	path := writeConfig(t, fmt.Sprintf(`
server:
  url: https://gocd.example.com
  username: admin
  timeout: 5s
encryption:
  mode: age
  recipients: [%s]
log_level: debug
`, keypair.PublicKey))
	t.Setenv("GOMATIC_CONFIG", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Server.URL != "https://gocd.example.com" || cfg.Server.Username != "admin" {
		t.Errorf("Server = %+v", cfg.Server)
	}
	if cfg.Archive.Compression != "zstd" {
		t.Errorf("unset field lost its default: Archive.Compression = %q", cfg.Archive.Compression)
	}
	if level, err := cfg.Level(); err != nil || level != slog.LevelDebug {
		t.Errorf("Level() = %v, %v", level, err)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error: %v", err)
	}
}

func TestLoadFile_ExpandsVariables(t *testing.T) {
	t.Setenv("GOMATIC_TEST_ROOT", "/srv/gomatic")
	path := writeConfig(t, `
save:
  local_dir: ${GOMATIC_TEST_ROOT}/saved
archive:
  dir: ${GOMATIC_TEST_UNSET:-/var/lib/gomatic}/archive
`)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}
	if cfg.Save.LocalDir != "/srv/gomatic/saved" {
		t.Errorf("Save.LocalDir = %q", cfg.Save.LocalDir)
	}
	if cfg.Archive.Dir != "/var/lib/gomatic/archive" {
		t.Errorf("Archive.Dir = %q", cfg.Archive.Dir)
	}
}

func TestLoadFile_Errors(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadFile(missing) succeeded")
	}
	if _, err := LoadFile(writeConfig(t, "server: [")); err == nil {
		t.Error("LoadFile(malformed) succeeded")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		want   string
	}{
		{"relative url", func(c *Config) { c.Server.URL = "gocd:8153" }, "server.url"},
		{"bad timeout", func(c *Config) { c.Server.Timeout = "soon" }, "server.timeout"},
		{"negative timeout", func(c *Config) { c.Server.Timeout = "-1s" }, "must not be negative"},
		{"password without user", func(c *Config) { c.Server.PasswordFile = "/p" }, "requires server.username"},
		{"compression", func(c *Config) { c.Archive.Compression = "gzip" }, "archive.compression"},
		{"mode", func(c *Config) { c.Encryption.Mode = "rot13" }, "encryption.mode"},
		{"age without recipients", func(c *Config) { c.Encryption.Mode = EncryptionAge }, "encryption.recipients"},
		{"bad recipient", func(c *Config) {
			c.Encryption.Mode = EncryptionAge
			c.Encryption.Recipients = []string{"age1notakey"}
		}, "invalid age public key"},
		{"cipher without key", func(c *Config) { c.Encryption.Mode = EncryptionCipher }, "cipher_key_file"},
		{"log level", func(c *Config) { c.LogLevel = "chatty" }, "log_level"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cfg := Default()
			test.modify(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate() succeeded")
			}
			if !strings.Contains(err.Error(), test.want) {
				t.Errorf("Validate() error = %q, want it to mention %q", err, test.want)
			}
		})
	}
}

func TestPassword(t *testing.T) {
	cfg := Default()
	if password, err := cfg.Password(); err != nil || password != nil {
		t.Errorf("Password() without file = %v, %v; want nil, nil", password, err)
	}

	path := filepath.Join(t.TempDir(), "password")
	if err := os.WriteFile(path, []byte("hunter2\n"), 0o600); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}
	cfg.Server.PasswordFile = path
	password, err := cfg.Password()
	if err != nil {
		t.Fatalf("Password() error: %v", err)
	}
	defer password.Close()
	if got := string(password.Bytes()); got != "hunter2" {
		t.Errorf("Password() = %q, want %q", got, "hunter2")
	}

	cfg.Server.PasswordFile = filepath.Join(t.TempDir(), "missing")
	if _, err := cfg.Password(); err == nil {
		t.Error("Password() with a missing file succeeded")
	}
}
