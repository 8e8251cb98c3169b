// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"regexp"
	"slices"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/gomatic/lib/sealed"
	"github.com/bureau-foundation/gomatic/lib/secret"
)

// Encryption modes.
const (
	EncryptionPassthrough = "passthrough"
	EncryptionAge         = "age"
	EncryptionCipher      = "cipher"
)

// Config is the configuration for the gomatic command.
type Config struct {
	// Server is the GoCD server to configure.
	Server ServerConfig `yaml:"server"`

	// Save controls what happens when an updated config is saved.
	Save SaveConfig `yaml:"save"`

	// Archive configures the local revision archive.
	Archive ArchiveConfig `yaml:"archive"`

	// Encryption selects how repository passwords are stored.
	Encryption EncryptionConfig `yaml:"encryption"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
}

// ServerConfig identifies the GoCD server.
type ServerConfig struct {
	// URL is the server base URL, without the /go suffix.
	// Default: http://localhost:8153
	URL string `yaml:"url"`

	// Username enables basic authentication when set.
	Username string `yaml:"username"`

	// PasswordFile holds the basic-auth password, or "-" for stdin.
	PasswordFile string `yaml:"password_file"`

	// Timeout bounds each HTTP request. Default: 30s
	Timeout string `yaml:"timeout"`
}

// SaveConfig controls saving.
type SaveConfig struct {
	// LocalDir receives config-before.xml and config-after.xml.
	// Empty disables local copies.
	LocalDir string `yaml:"local_dir"`

	// DryRun skips posting to the server.
	DryRun bool `yaml:"dry_run"`
}

// ArchiveConfig configures the revision archive.
type ArchiveConfig struct {
	// Dir is the archive directory. Empty disables archiving.
	Dir string `yaml:"dir"`

	// Compression is none, lz4 or zstd. Default: zstd
	Compression string `yaml:"compression"`
}

// EncryptionConfig selects the password encrypter.
type EncryptionConfig struct {
	// Mode is passthrough, age or cipher. Default: passthrough
	Mode string `yaml:"mode"`

	// Recipients are age public keys (mode age).
	Recipients []string `yaml:"recipients"`

	// CipherKeyFile holds a hex-encoded 32-byte key (mode cipher).
	CipherKeyFile string `yaml:"cipher_key_file"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			URL:     "http://localhost:8153",
			Timeout: "30s",
		},
		Archive: ArchiveConfig{
			Compression: "zstd",
		},
		Encryption: EncryptionConfig{
			Mode: EncryptionPassthrough,
		},
		LogLevel: "info",
	}
}

// Load loads configuration from the file named by GOMATIC_CONFIG.
func Load() (*Config, error) {
	configPath := os.Getenv("GOMATIC_CONFIG")
	if configPath == "" {
		return nil, fmt.Errorf("GOMATIC_CONFIG environment variable not set; " +
			"set it to the path of your gomatic.yaml config file, or use --config flag")
	}
	return LoadFile(configPath)
}

// LoadFile loads configuration from path over the defaults and expands
// variables in path fields.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	cfg.expandVariables()
	return cfg, nil
}

// expandVariables expands ${VAR} and ${VAR:-default} in path fields.
func (c *Config) expandVariables() {
	c.Server.PasswordFile = expandVars(c.Server.PasswordFile)
	c.Save.LocalDir = expandVars(c.Save.LocalDir)
	c.Archive.Dir = expandVars(c.Archive.Dir)
	c.Encryption.CipherKeyFile = expandVars(c.Encryption.CipherKeyFile)
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if value := os.Getenv(parts[1]); value != "" {
			return value
		}
		return parts[2]
	})
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	parsed, err := url.Parse(c.Server.URL)
	if c.Server.URL == "" || err != nil || parsed.Scheme == "" || parsed.Host == "" {
		errs = append(errs, fmt.Errorf("server.url must be an absolute URL, got %q", c.Server.URL))
	}
	if _, err := c.Timeout(); err != nil {
		errs = append(errs, err)
	}
	if c.Server.PasswordFile != "" && c.Server.Username == "" {
		errs = append(errs, fmt.Errorf("server.password_file requires server.username"))
	}

	compressions := []string{"none", "lz4", "zstd"}
	if !slices.Contains(compressions, c.Archive.Compression) {
		errs = append(errs, fmt.Errorf("archive.compression must be one of: %v", compressions))
	}

	switch c.Encryption.Mode {
	case EncryptionPassthrough:
	case EncryptionAge:
		if len(c.Encryption.Recipients) == 0 {
			errs = append(errs, fmt.Errorf("encryption.recipients is required for mode %q", EncryptionAge))
		}
		for _, recipient := range c.Encryption.Recipients {
			if err := sealed.ParsePublicKey(recipient); err != nil {
				errs = append(errs, fmt.Errorf("encryption.recipients: %w", err))
			}
		}
	case EncryptionCipher:
		if c.Encryption.CipherKeyFile == "" {
			errs = append(errs, fmt.Errorf("encryption.cipher_key_file is required for mode %q", EncryptionCipher))
		}
	default:
		errs = append(errs, fmt.Errorf("encryption.mode must be one of: %v",
			[]string{EncryptionPassthrough, EncryptionAge, EncryptionCipher}))
	}

	if _, err := c.Level(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// Timeout parses Server.Timeout. An empty value means no timeout.
func (c *Config) Timeout() (time.Duration, error) {
	if c.Server.Timeout == "" {
		return 0, nil
	}
	duration, err := time.ParseDuration(c.Server.Timeout)
	if err != nil {
		return 0, fmt.Errorf("server.timeout: %w", err)
	}
	if duration < 0 {
		return 0, fmt.Errorf("server.timeout must not be negative, got %s", duration)
	}
	return duration, nil
}

// Password reads Server.PasswordFile into a locked buffer, which the
// caller closes. Surrounding whitespace is trimmed and "-" reads the
// first line of stdin. It returns nil when no file is configured.
func (c *Config) Password() (*secret.Buffer, error) {
	if c.Server.PasswordFile == "" {
		return nil, nil
	}
	buffer, err := secret.ReadFromPath(c.Server.PasswordFile)
	if err != nil {
		return nil, fmt.Errorf("reading server.password_file: %w", err)
	}
	return buffer, nil
}

// Level parses LogLevel.
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if c.LogLevel == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log_level: %w", err)
	}
	return level, nil
}
