// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package gocd

import (
	"github.com/bureau-foundation/gomatic/lib/identity"
	"github.com/bureau-foundation/gomatic/lib/sealed"
)

// Option configures entity construction.
type Option func(*options)

type options struct {
	ids       identity.Generator
	encrypter sealed.Encrypter
}

func buildOptions(opts []Option) options {
	resolved := options{
		ids:       identity.UUID(),
		encrypter: sealed.Passthrough(),
	}
	for _, opt := range opts {
		opt(&resolved)
	}
	return resolved
}

// WithIDGenerator sets the generator used for missing id attributes.
// Defaults to [identity.UUID].
func WithIDGenerator(generator identity.Generator) Option {
	return func(o *options) {
		if generator != nil {
			o.ids = generator
		}
	}
}

// WithEncrypter sets the encrypter applied to passwords by
// [Repository.SetCredentials]. Defaults to [sealed.Passthrough], which
// stores the value as supplied.
func WithEncrypter(encrypter sealed.Encrypter) Option {
	return func(o *options) {
		if encrypter != nil {
			o.encrypter = encrypter
		}
	}
}
