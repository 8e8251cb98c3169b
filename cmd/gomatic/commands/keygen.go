// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/gomatic/cmd/gomatic/cli"
	"github.com/bureau-foundation/gomatic/lib/sealed"
)

type keygenParams struct {
	Cipher bool
}

func keygenCommand() *cli.Command {
	var params keygenParams

	return &cli.Command{
		Name:    "keygen",
		Summary: "Generate a password encryption key",
		Description: `Generate key material for encryption.mode.

By default, prints a new age x25519 keypair. The public key goes into
encryption.recipients; keep the private key out of the repository, it
is only needed to read passwords back.

With --cipher, prints a random 32-byte key in hex for
encryption.cipher_key_file.`,
		Usage: "gomatic keygen [flags]",
		Examples: []cli.Example{
			{
				Description: "Create a cipher key file",
				Command:     "gomatic keygen --cipher > gomatic.key && chmod 600 gomatic.key",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("keygen", pflag.ContinueOnError)
			flagSet.BoolVar(&params.Cipher, "cipher", false, "generate a symmetric key instead of an age keypair")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) > 0 {
				return fmt.Errorf("keygen takes no positional arguments, got %q", args[0])
			}
			return runKeygen(params, rand.Reader, os.Stdout)
		},
	}
}

func runKeygen(params keygenParams, random io.Reader, w io.Writer) error {
	if params.Cipher {
		key := make([]byte, sealed.CipherKeySize)
		if _, err := io.ReadFull(random, key); err != nil {
			return fmt.Errorf("generating cipher key: %w", err)
		}
		_, err := fmt.Fprintln(w, hex.EncodeToString(key))
		return err
	}

	keypair, err := sealed.GenerateKeypair()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "# public key: %s\n%s\n", keypair.PublicKey, keypair.PrivateKey)
	return err
}
