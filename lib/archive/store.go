// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package archive

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/bureau-foundation/gomatic/lib/clock"
	"github.com/bureau-foundation/gomatic/lib/codec"
	"github.com/bureau-foundation/gomatic/lib/digest"
)

// ErrNotFound is returned when no stored revision matches.
var ErrNotFound = errors.New("archive: revision not found")

// Kinds used by the configurator.
const (
	KindBefore = "before"
	KindAfter  = "after"
)

const indexFile = "index.cbor"

// Entry describes one stored revision.
type Entry struct {
	Digest digest.Digest `cbor:"digest"`
	Kind   string        `cbor:"kind"`
	// MD5 is the server's config md5 at the time the revision was
	// stored, if known.
	MD5         string      `cbor:"md5,omitempty"`
	Size        int         `cbor:"size"`
	StoredSize  int         `cbor:"stored_size"`
	Compression Compression `cbor:"compression"`
	StoredAt    time.Time   `cbor:"stored_at"`
}

// index is the on-disk form of the index file.
type index struct {
	Version int     `cbor:"version"`
	Entries []Entry `cbor:"entries"`
}

// Options configures a Store.
type Options struct {
	// Compression applied to new blobs. Blobs that do not shrink are
	// stored uncompressed regardless.
	Compression Compression
	// Logger defaults to slog.Default().
	Logger *slog.Logger
	// Clock stamps new entries. Defaults to clock.Real().
	Clock clock.Clock
}

// Store is a directory of archived configuration revisions.
type Store struct {
	dir         string
	compression Compression
	logger      *slog.Logger
	clock       clock.Clock

	mu      sync.Mutex
	entries []Entry
}

// Open opens or creates the archive at dir and loads its index.
func Open(dir string, options Options) (*Store, error) {
	if dir == "" {
		return nil, fmt.Errorf("archive: directory is required")
	}
	if err := os.MkdirAll(filepath.Join(dir, "blobs"), 0o755); err != nil {
		return nil, fmt.Errorf("archive: creating %s: %w", dir, err)
	}
	store := &Store{
		dir:         dir,
		compression: options.Compression,
		logger:      options.Logger,
		clock:       options.Clock,
	}
	if store.logger == nil {
		store.logger = slog.Default()
	}
	if store.clock == nil {
		store.clock = clock.Real()
	}

	data, err := os.ReadFile(filepath.Join(dir, indexFile))
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("archive: reading index: %w", err)
	default:
		var loaded index
		if err := codec.Unmarshal(data, &loaded); err != nil {
			return nil, fmt.Errorf("archive: decoding index: %w", err)
		}
		store.entries = loaded.Entries
	}
	return store, nil
}

// Dir returns the archive directory.
func (s *Store) Dir() string {
	return s.dir
}

// Put stores data under kind. Storing a document already archived
// under the same kind returns the existing entry unchanged.
func (s *Store) Put(kind string, data []byte, md5 string) (Entry, error) {
	if kind == "" {
		return Entry{}, fmt.Errorf("archive: kind is required")
	}
	sum := digest.Of(data)

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.entries {
		if existing.Digest == sum && existing.Kind == kind {
			return existing, nil
		}
	}

	entry, err := s.writeBlob(sum, data)
	if err != nil {
		return Entry{}, err
	}
	entry.Kind = kind
	entry.MD5 = md5
	entry.StoredAt = s.clock.Now().UTC()

	entries := append(slices.Clone(s.entries), entry)
	if err := s.writeIndex(entries); err != nil {
		return Entry{}, err
	}
	s.entries = entries

	s.logger.Debug("archived configuration revision",
		"kind", kind,
		"digest", sum.Short(),
		"size", entry.Size,
		"stored_size", entry.StoredSize,
		"compression", entry.Compression.String(),
	)
	return entry, nil
}

// writeBlob stores the blob for sum, reusing one written earlier under
// another kind.
func (s *Store) writeBlob(sum digest.Digest, data []byte) (Entry, error) {
	for _, existing := range s.entries {
		if existing.Digest == sum {
			return Entry{
				Digest:      sum,
				Size:        existing.Size,
				StoredSize:  existing.StoredSize,
				Compression: existing.Compression,
			}, nil
		}
	}

	stored, compression, err := compress(data, s.compression)
	if err != nil {
		return Entry{}, fmt.Errorf("archive: compressing revision %s: %w", sum.Short(), err)
	}
	if err := writeFileAtomic(s.blobPath(sum, compression), stored); err != nil {
		return Entry{}, fmt.Errorf("archive: writing revision %s: %w", sum.Short(), err)
	}
	return Entry{
		Digest:      sum,
		Size:        len(data),
		StoredSize:  len(stored),
		Compression: compression,
	}, nil
}

// Get returns the document with the given digest.
func (s *Store) Get(sum digest.Digest) ([]byte, error) {
	s.mu.Lock()
	position := slices.IndexFunc(s.entries, func(entry Entry) bool { return entry.Digest == sum })
	var entry Entry
	if position >= 0 {
		entry = s.entries[position]
	}
	s.mu.Unlock()

	if position < 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, sum.Short())
	}
	stored, err := os.ReadFile(s.blobPath(sum, entry.Compression))
	if err != nil {
		return nil, fmt.Errorf("archive: reading revision %s: %w", sum.Short(), err)
	}
	data, err := decompress(stored, entry.Compression, entry.Size)
	if err != nil {
		return nil, fmt.Errorf("archive: revision %s: %w", sum.Short(), err)
	}
	if digest.Of(data) != sum {
		return nil, fmt.Errorf("archive: revision %s is corrupt (digest mismatch)", sum.Short())
	}
	return data, nil
}

// List returns every entry, oldest first.
func (s *Store) List() []Entry {
	s.mu.Lock()
	entries := slices.Clone(s.entries)
	s.mu.Unlock()

	slices.SortStableFunc(entries, func(a, b Entry) int {
		return a.StoredAt.Compare(b.StoredAt)
	})
	return entries
}

// Latest returns the most recently stored entry of the given kind.
func (s *Store) Latest(kind string) (Entry, error) {
	entries := s.List()
	for i := len(entries) - 1; i >= 0; i-- {
		if entries[i].Kind == kind {
			return entries[i], nil
		}
	}
	return Entry{}, fmt.Errorf("%w: no %q revision", ErrNotFound, kind)
}

// RawIndex returns the encoded index file contents.
func (s *Store) RawIndex() ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, indexFile))
	if err != nil {
		return nil, fmt.Errorf("archive: reading index: %w", err)
	}
	return data, nil
}

func (s *Store) blobPath(sum digest.Digest, compression Compression) string {
	return filepath.Join(s.dir, "blobs", sum.String()+compression.extension())
}

func (s *Store) writeIndex(entries []Entry) error {
	data, err := codec.Marshal(index{Version: 1, Entries: entries})
	if err != nil {
		return fmt.Errorf("archive: encoding index: %w", err)
	}
	if err := writeFileAtomic(filepath.Join(s.dir, indexFile), data); err != nil {
		return fmt.Errorf("archive: writing index: %w", err)
	}
	return nil
}

// writeFileAtomic writes data to a temporary file in the destination
// directory and renames it into place.
func writeFileAtomic(path string, data []byte) error {
	temporary, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return err
	}
	temporaryPath := temporary.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(temporaryPath)
		}
	}()

	if _, err := temporary.Write(data); err != nil {
		temporary.Close()
		return err
	}
	if err := temporary.Close(); err != nil {
		return err
	}
	if err := os.Rename(temporaryPath, path); err != nil {
		return err
	}
	success = true
	return nil
}
