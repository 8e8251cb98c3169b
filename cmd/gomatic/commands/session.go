// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/gomatic/cmd/gomatic/cli"
	"github.com/bureau-foundation/gomatic/configurator"
	"github.com/bureau-foundation/gomatic/lib/archive"
	"github.com/bureau-foundation/gomatic/lib/config"
	"github.com/bureau-foundation/gomatic/lib/sealed"
	"github.com/bureau-foundation/gomatic/restclient"
)

// connectionParams are the flags shared by every command that reads
// the configuration file.
type connectionParams struct {
	ConfigPath   string
	ServerURL    string
	Username     string
	PasswordFile string
	ArchiveDir   string
	LogLevel     string
}

func (p *connectionParams) register(flagSet *pflag.FlagSet) {
	flagSet.StringVar(&p.ConfigPath, "config", "", "path to gomatic.yaml (default: $GOMATIC_CONFIG)")
	flagSet.StringVarP(&p.ServerURL, "server", "s", "", "GoCD server URL, e.g. http://localhost:8153")
	flagSet.StringVar(&p.Username, "username", "", "basic-auth username")
	flagSet.StringVar(&p.PasswordFile, "password-file", "", "file holding the basic-auth password")
	flagSet.StringVar(&p.ArchiveDir, "archive-dir", "", "revision archive directory")
	flagSet.StringVar(&p.LogLevel, "log-level", "", "debug, info, warn or error")
}

// load reads the configuration and applies flag overrides.
func (p *connectionParams) load() (*config.Config, error) {
	var cfg *config.Config
	var err error
	switch {
	case p.ConfigPath != "":
		cfg, err = config.LoadFile(p.ConfigPath)
	case os.Getenv("GOMATIC_CONFIG") != "":
		cfg, err = config.Load()
	default:
		cfg = config.Default()
	}
	if err != nil {
		return nil, err
	}

	if p.ServerURL != "" {
		cfg.Server.URL = p.ServerURL
	}
	if p.Username != "" {
		cfg.Server.Username = p.Username
	}
	if p.PasswordFile != "" {
		cfg.Server.PasswordFile = p.PasswordFile
	}
	if p.ArchiveDir != "" {
		cfg.Archive.Dir = p.ArchiveDir
	}
	if p.LogLevel != "" {
		cfg.LogLevel = p.LogLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// commandLogger returns the command logger at the configured level.
func commandLogger(cfg *config.Config) *slog.Logger {
	level, err := cfg.Level()
	if err != nil {
		level = slog.LevelInfo
	}
	return cli.NewCommandLogger(level)
}

// newClient builds the REST client for cfg. When a username is set and
// no password file is configured, the password is prompted for on an
// interactive terminal. The caller closes the client.
func newClient(cfg *config.Config, logger *slog.Logger) (*restclient.Client, error) {
	timeout, err := cfg.Timeout()
	if err != nil {
		return nil, err
	}
	password, err := cfg.Password()
	if err != nil {
		return nil, err
	}
	if cfg.Server.Username != "" && password == nil && cli.StdinIsTerminal() {
		password, err = cli.ReadPassword(fmt.Sprintf("Password for %s@%s: ", cfg.Server.Username, cfg.Server.URL))
		if err != nil {
			return nil, err
		}
	}
	client, err := restclient.NewClient(restclient.ClientConfig{
		ServerURL:  cfg.Server.URL,
		Username:   cfg.Server.Username,
		Password:   password,
		HTTPClient: &http.Client{Timeout: timeout},
		Logger:     logger,
	})
	if err != nil {
		if password != nil {
			password.Close()
		}
		return nil, err
	}
	return client, nil
}

// newEncrypter builds the password encrypter selected by
// encryption.mode.
func newEncrypter(cfg *config.Config) (sealed.Encrypter, error) {
	switch cfg.Encryption.Mode {
	case config.EncryptionAge:
		return sealed.NewAgeEncrypter(cfg.Encryption.Recipients)
	case config.EncryptionCipher:
		key, err := sealed.LoadCipherKey(cfg.Encryption.CipherKeyFile)
		if err != nil {
			return nil, err
		}
		defer key.Close()
		return sealed.NewCipherEncrypter(key.Bytes())
	default:
		return sealed.Passthrough(), nil
	}
}

// openArchive opens the configured archive, or returns nil when
// archiving is disabled.
func openArchive(cfg *config.Config, logger *slog.Logger) (*archive.Store, error) {
	if cfg.Archive.Dir == "" {
		return nil, nil
	}
	compression, err := archive.ParseCompression(cfg.Archive.Compression)
	if err != nil {
		return nil, err
	}
	return archive.Open(cfg.Archive.Dir, archive.Options{Compression: compression, Logger: logger})
}

// openSession connects to the server and fetches its configuration.
// The returned release func closes the client and any encrypter that
// holds key material; call it once the session is done.
func openSession(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*configurator.Configurator, func(), error) {
	var closers []io.Closer
	release := func() {
		for _, closer := range closers {
			if err := closer.Close(); err != nil {
				logger.Warn("releasing session resource", "error", err)
			}
		}
	}

	client, err := newClient(cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	closers = append(closers, client)
	encrypter, err := newEncrypter(cfg)
	if err != nil {
		release()
		return nil, nil, err
	}
	if closer, ok := encrypter.(io.Closer); ok {
		closers = append(closers, closer)
	}
	store, err := openArchive(cfg, logger)
	if err != nil {
		release()
		return nil, nil, err
	}

	options := []configurator.Option{
		configurator.WithLogger(logger),
		configurator.WithEncrypter(encrypter),
	}
	if store != nil {
		options = append(options, configurator.WithArchive(store))
	}
	session, err := configurator.New(ctx, client, options...)
	if err != nil {
		release()
		return nil, nil, err
	}
	return session, release, nil
}
