// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package identity

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// Generator produces identity tokens on demand.
type Generator interface {
	NewID() string
}

// Func adapts a plain function to the Generator interface.
type Func func() string

// NewID calls f.
func (f Func) NewID() string { return f() }

type uuidGenerator struct{}

// UUID returns the production Generator. Tokens are version 1 UUIDs;
// if the node clock sequence cannot be initialized the generator falls
// back to random version 4 UUIDs.
func UUID() Generator {
	return uuidGenerator{}
}

func (uuidGenerator) NewID() string {
	id, err := uuid.NewUUID()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// Sequence issues "prefix-1", "prefix-2", ... in order. Safe for
// concurrent use.
type Sequence struct {
	prefix  string
	counter atomic.Uint64
}

// NewSequence returns a Sequence with the given prefix.
func NewSequence(prefix string) *Sequence {
	return &Sequence{prefix: prefix}
}

// NewID returns the next token in the sequence.
func (s *Sequence) NewID() string {
	return fmt.Sprintf("%s-%d", s.prefix, s.counter.Add(1))
}

// Issued returns how many tokens the sequence has handed out.
func (s *Sequence) Issued() uint64 {
	return s.counter.Load()
}
