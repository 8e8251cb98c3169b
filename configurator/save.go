// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package configurator

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bureau-foundation/gomatic/lib/archive"
	"github.com/bureau-foundation/gomatic/lib/digest"
	"github.com/bureau-foundation/gomatic/lib/xmltree"
)

// Local copies written by SaveUpdatedConfig.
const (
	BeforeFile = "config-before.xml"
	AfterFile  = "config-after.xml"
)

// SaveOptions controls SaveUpdatedConfig.
type SaveOptions struct {
	// LocalDir, when set, receives prettified copies of the document
	// before and after editing.
	LocalDir string
	// DryRun skips the post.
	DryRun bool
}

// SaveResult describes what SaveUpdatedConfig did.
type SaveResult struct {
	// Changed is true when the prettified documents differ.
	Changed bool
	// Posted is true when the edited document was sent to the server.
	Posted bool
	// Before and After are the prettified documents.
	Before string
	After  string
	// BeforeDigest and AfterDigest identify the prettified documents.
	BeforeDigest digest.Digest
	AfterDigest  digest.Digest
	// LocalFiles lists the files written under LocalDir.
	LocalFiles []string
}

// snapshot is the document compared before and after editing.
type snapshot struct {
	config       []byte
	before       string
	after        string
	beforeDigest digest.Digest
	afterDigest  digest.Digest
}

func (s snapshot) changed() bool {
	return s.beforeDigest != s.afterDigest
}

func (c *Configurator) snapshot() (snapshot, error) {
	config, err := c.Config()
	if err != nil {
		return snapshot{}, err
	}
	before, err := xmltree.Prettify(c.initialConfig)
	if err != nil {
		return snapshot{}, fmt.Errorf("configurator: prettifying initial config: %w", err)
	}
	after, err := xmltree.Prettify(config)
	if err != nil {
		return snapshot{}, fmt.Errorf("configurator: prettifying updated config: %w", err)
	}
	return snapshot{
		config:       config,
		before:       before,
		after:        after,
		beforeDigest: digest.OfString(before),
		afterDigest:  digest.OfString(after),
	}, nil
}

// SaveUpdatedConfig writes local copies and archive revisions as
// configured, then posts the edited document unless options.DryRun is
// set or nothing changed. The post carries the md5 the session was
// fetched with.
func (c *Configurator) SaveUpdatedConfig(ctx context.Context, options SaveOptions) (SaveResult, error) {
	snapshot, err := c.snapshot()
	if err != nil {
		return SaveResult{}, err
	}
	result := SaveResult{
		Changed:      snapshot.changed(),
		Before:       snapshot.before,
		After:        snapshot.after,
		BeforeDigest: snapshot.beforeDigest,
		AfterDigest:  snapshot.afterDigest,
	}

	if options.LocalDir != "" {
		files, err := writeLocalCopies(options.LocalDir, snapshot)
		if err != nil {
			return result, err
		}
		result.LocalFiles = files
	}

	if c.archive != nil {
		if err := c.archiveRevisions(snapshot); err != nil {
			return result, err
		}
	}

	switch {
	case !result.Changed:
		c.logger.Info("gocd configuration unchanged, nothing to post", "digest", snapshot.afterDigest.Short())
	case options.DryRun:
		c.logger.Info("dry run, not posting gocd configuration",
			"before", snapshot.beforeDigest.Short(),
			"after", snapshot.afterDigest.Short(),
		)
	default:
		if err := c.transport.PostConfig(ctx, snapshot.config, c.initialMD5); err != nil {
			return result, fmt.Errorf("configurator: posting updated config: %w", err)
		}
		result.Posted = true
		c.logger.Info("posted gocd configuration",
			"before", snapshot.beforeDigest.Short(),
			"after", snapshot.afterDigest.Short(),
			"md5", c.initialMD5,
		)
	}
	return result, nil
}

func writeLocalCopies(dir string, snapshot snapshot) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("configurator: creating %s: %w", dir, err)
	}
	var written []string
	for _, file := range []struct {
		name    string
		content string
	}{
		{BeforeFile, snapshot.before},
		{AfterFile, snapshot.after},
	} {
		path := filepath.Join(dir, file.name)
		if err := os.WriteFile(path, []byte(file.content), 0o644); err != nil {
			return written, fmt.Errorf("configurator: writing %s: %w", path, err)
		}
		written = append(written, path)
	}
	return written, nil
}

func (c *Configurator) archiveRevisions(snapshot snapshot) error {
	if _, err := c.archive.Put(archive.KindBefore, []byte(snapshot.before), c.initialMD5); err != nil {
		return fmt.Errorf("configurator: archiving initial config: %w", err)
	}
	if _, err := c.archive.Put(archive.KindAfter, []byte(snapshot.after), c.initialMD5); err != nil {
		return fmt.Errorf("configurator: archiving updated config: %w", err)
	}
	return nil
}
