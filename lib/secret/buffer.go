// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package secret

import (
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sys/unix"
)

// ErrEmpty is returned when a secret would have no bytes.
var ErrEmpty = errors.New("secret: empty secret")

// Buffer holds a server password or cipher key in an anonymous mapping
// that is locked into RAM and left out of core dumps. Close zeroes and
// unmaps it; reading a closed Buffer panics.
type Buffer struct {
	mu     sync.Mutex
	region []byte // nil once closed
}

// New returns a zero-filled Buffer of size bytes. The caller closes it.
func New(size int) (*Buffer, error) {
	if size <= 0 {
		return nil, fmt.Errorf("secret: buffer size must be positive, got %d", size)
	}
	region, err := mapLocked(size)
	if err != nil {
		return nil, err
	}
	return &Buffer{region: region}, nil
}

// Take moves source into a new Buffer. source is zeroed whether or not
// the move succeeds.
func Take(source []byte) (*Buffer, error) {
	defer Zero(source)
	if len(source) == 0 {
		return nil, ErrEmpty
	}
	buffer, err := New(len(source))
	if err != nil {
		return nil, err
	}
	copy(buffer.region, source)
	return buffer, nil
}

// Zero overwrites data with zeros.
func Zero(data []byte) {
	clear(data)
}

// Bytes returns the secret. The slice aliases the locked mapping, so
// callers copy out only what an API boundary forces them to and never
// keep it past Close.
func (b *Buffer) Bytes() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.region == nil {
		panic("secret: read from closed buffer")
	}
	return b.region
}

// Len returns the secret's length, or 0 once closed.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.region)
}

// Close zeroes and releases the mapping. Closing twice is a no-op.
func (b *Buffer) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.region == nil {
		return nil
	}
	region := b.region
	b.region = nil
	return unmapLocked(region)
}

// mapLocked maps size anonymous bytes, locks them against swap and
// marks them MADV_DONTDUMP.
func mapLocked(size int) ([]byte, error) {
	region, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANONYMOUS)
	if err != nil {
		return nil, fmt.Errorf("secret: mmap: %w", err)
	}
	if err := unix.Mlock(region); err != nil {
		return nil, errors.Join(fmt.Errorf("secret: mlock: %w", err), unix.Munmap(region))
	}
	if err := unix.Madvise(region, unix.MADV_DONTDUMP); err != nil {
		return nil, errors.Join(fmt.Errorf("secret: madvise: %w", err), unmapLocked(region))
	}
	return region, nil
}

// unmapLocked zeroes region, then unlocks and unmaps it.
func unmapLocked(region []byte) error {
	Zero(region)
	var errs []error
	if err := unix.Munlock(region); err != nil {
		errs = append(errs, fmt.Errorf("secret: munlock: %w", err))
	}
	if err := unix.Munmap(region); err != nil {
		errs = append(errs, fmt.Errorf("secret: munmap: %w", err))
	}
	return errors.Join(errs...)
}
