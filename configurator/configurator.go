// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package configurator

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/beevik/etree"

	"github.com/bureau-foundation/gomatic/lib/archive"
	"github.com/bureau-foundation/gomatic/lib/gocd"
	"github.com/bureau-foundation/gomatic/lib/identity"
	"github.com/bureau-foundation/gomatic/lib/sealed"
	"github.com/bureau-foundation/gomatic/lib/xmltree"
	"github.com/bureau-foundation/gomatic/restclient"
)

// Transport fetches and posts the configuration document.
type Transport interface {
	FetchConfig(ctx context.Context) (*restclient.ConfigFile, error)
	PostConfig(ctx context.Context, xml []byte, md5 string) error
}

// Root-level sections GoCD requires after everything else.
var trailingSections = []string{"pipelines", "templates", "environments", "agents"}

// Option configures a Configurator.
type Option func(*Configurator)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Configurator) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithIDGenerator sets the generator for ids of new repositories and
// packages.
func WithIDGenerator(generator identity.Generator) Option {
	return func(c *Configurator) {
		c.entityOptions = append(c.entityOptions, gocd.WithIDGenerator(generator))
	}
}

// WithEncrypter sets the encrypter applied to repository passwords.
func WithEncrypter(encrypter sealed.Encrypter) Option {
	return func(c *Configurator) {
		c.entityOptions = append(c.entityOptions, gocd.WithEncrypter(encrypter))
	}
}

// WithArchive records the before and after revisions of every save in
// store.
func WithArchive(store *archive.Store) Option {
	return func(c *Configurator) {
		c.archive = store
	}
}

// Configurator is an editing session over one fetched document.
type Configurator struct {
	transport     Transport
	logger        *slog.Logger
	archive       *archive.Store
	entityOptions []gocd.Option

	initialConfig []byte
	initialMD5    string
	document      *etree.Document
}

// New fetches the current configuration through transport and returns
// a session over it.
func New(ctx context.Context, transport Transport, opts ...Option) (*Configurator, error) {
	if transport == nil {
		return nil, fmt.Errorf("configurator: transport is required")
	}
	c := &Configurator{
		transport: transport,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}

	file, err := transport.FetchConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("configurator: fetching current config: %w", err)
	}
	document, err := xmltree.Parse(file.XML)
	if err != nil {
		return nil, fmt.Errorf("configurator: parsing current config: %w", err)
	}
	c.initialConfig = file.XML
	c.initialMD5 = file.MD5
	c.document = document

	c.logger.Info("loaded gocd configuration", "bytes", len(file.XML), "md5", file.MD5)
	return c, nil
}

func (c *Configurator) String() string {
	return fmt.Sprintf("Configurator(%v)", c.transport)
}

// CurrentConfig fetches the server's configuration again. The session's
// document is not affected.
func (c *Configurator) CurrentConfig(ctx context.Context) ([]byte, error) {
	file, err := c.transport.FetchConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("configurator: fetching current config: %w", err)
	}
	return file.XML, nil
}

// InitialMD5 returns the md5 the session was fetched with.
func (c *Configurator) InitialMD5() string {
	return c.initialMD5
}

// InitialConfig returns the document as it was fetched.
func (c *Configurator) InitialConfig() []byte {
	return c.initialConfig
}

// Root returns the live root element.
func (c *Configurator) Root() *etree.Element {
	return c.document.Root()
}

// Repositories returns a view over every repository in the root
// repositories section, in document order. Wrapping normalizes each
// repository the way [gocd.NewRepository] does.
func (c *Configurator) Repositories() []*gocd.Repository {
	var repositories []*gocd.Repository
	for element := range xmltree.Read(c.Root()).Child("repositories").Children("repository") {
		repositories = append(repositories, gocd.NewRepository(element, c.entityOptions...))
	}
	return repositories
}

// Repository returns the first repository with the given name.
func (c *Configurator) Repository(name string) (*gocd.Repository, bool) {
	for element := range xmltree.Read(c.Root()).Child("repositories").Children("repository") {
		if xmltree.Read(element).HasAttribute("name", name) {
			return gocd.NewRepository(element, c.entityOptions...), true
		}
	}
	return nil, false
}

// EnsureRepository returns the repository with the given name, creating
// the repositories section and the repository as needed.
func (c *Configurator) EnsureRepository(name string) *gocd.Repository {
	element := xmltree.Ensure(c.Root()).
		EnsureChild("repositories").
		EnsureChildWithAttribute("repository", "name", name).
		Element()
	return gocd.NewRepository(element, c.entityOptions...)
}

// EnsureReplacementOfRepository ensures the repository and clears its
// contents. Its name and id are kept; the plugin descriptor is
// restored.
func (c *Configurator) EnsureReplacementOfRepository(name string) *gocd.Repository {
	repository := c.EnsureRepository(name)
	repository.MakeEmpty()
	return gocd.NewRepository(repository.Element(), c.entityOptions...)
}

// EnsureRemovalOfRepository removes every repository with the given
// name. A missing repository is not an error.
func (c *Configurator) EnsureRemovalOfRepository(name string) {
	section := xmltree.Read(c.Root()).Child("repositories").Element()
	if section == nil {
		return
	}
	var matching []*etree.Element
	for _, child := range section.ChildElements() {
		if child.Tag == "repository" && xmltree.Read(child).HasAttribute("name", name) {
			matching = append(matching, child)
		}
	}
	for _, child := range matching {
		section.RemoveChild(child)
	}
	if len(matching) > 0 {
		c.logger.Debug("removed repository", "name", name, "count", len(matching))
	}
}

// Config moves the pipelines, templates, environments and agents
// sections to the end of the root, where GoCD's schema expects them,
// and serializes the document.
func (c *Configurator) Config() ([]byte, error) {
	for _, tag := range trailingSections {
		xmltree.MoveAllToEnd(c.Root(), tag)
	}
	data, err := xmltree.Serialize(c.document)
	if err != nil {
		return nil, fmt.Errorf("configurator: %w", err)
	}
	return data, nil
}

// HasChanges reports whether the edited document differs from the
// fetched one, ignoring formatting.
func (c *Configurator) HasChanges() (bool, error) {
	snapshot, err := c.snapshot()
	if err != nil {
		return false, err
	}
	return snapshot.changed(), nil
}
