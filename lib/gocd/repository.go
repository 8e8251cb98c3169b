// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package gocd

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"

	"github.com/bureau-foundation/gomatic/lib/xmltree"
)

// Plugin descriptor written on every repository.
const (
	PluginID      = "generic-artifactory"
	PluginVersion = "1"
)

// Well-known repository configuration keys.
const (
	KeyRepositoryURL = "REPO_URL"
	KeyUsername      = "USERNAME"
	KeyPassword      = "PASSWORD"
)

// Repository is a view over a <repository> element.
type Repository struct {
	element *etree.Element
	options options
}

// NewRepository wraps element, assigning an id when absent and
// ensuring the generic-artifactory pluginConfiguration child. A nil
// element panics with an *xmltree.ContractError.
func NewRepository(element *etree.Element, opts ...Option) *Repository {
	repository := &Repository{
		element: element,
		options: buildOptions(opts),
	}
	ensurer := xmltree.Ensure(element)
	if !repository.HasID() {
		ensurer.Set("id", repository.options.ids.NewID())
	}
	ensurer.EnsureChildWithAttribute("pluginConfiguration", "id", PluginID).Set("version", PluginVersion)
	return repository
}

func (r *Repository) String() string {
	return fmt.Sprintf("Repository(%q)", xmltree.Read(r.element).Attribute("name", ""))
}

// Element returns the underlying element.
func (r *Repository) Element() *etree.Element {
	return r.element
}

// Name returns the repository's name attribute. A repository without
// one violates the document contract and panics.
func (r *Repository) Name() string {
	return xmltree.RequireAttribute(r.element, "name")
}

// ID returns the id attribute.
func (r *Repository) ID() string {
	return xmltree.Read(r.element).Attribute("id", "")
}

// HasID reports whether the id attribute is present.
func (r *Repository) HasID() bool {
	return r.element.SelectAttr("id") != nil
}

// MakeEmpty detaches every child element. Attributes are kept.
func (r *Repository) MakeEmpty() {
	xmltree.Read(r.element).RemoveAllChildren()
}

func (r *Repository) properties() propertyBlock {
	return propertyBlock{owner: r.element}
}

// SetConfigurationProperty appends a plaintext pair. Existing pairs
// with the same key are kept.
func (r *Repository) SetConfigurationProperty(name, value string) {
	r.properties().add(name, value, false)
}

// SetEncryptedConfigurationProperty appends a pair stored in
// <encryptedValue>. The value is written as given.
func (r *Repository) SetEncryptedConfigurationProperty(name, encryptedValue string) {
	r.properties().add(name, encryptedValue, true)
}

// RemoveConfigurationProperty removes every pair with the given key.
func (r *Repository) RemoveConfigurationProperty(name string) *Repository {
	r.properties().remove(name)
	return r
}

// ConfigurationProperty returns the first pair with the given key.
func (r *Repository) ConfigurationProperty(name string) (value string, encrypted bool, ok bool) {
	property, found := r.properties().lookup(name)
	return property.Value, property.Encrypted, found
}

// ConfigurationProperties returns every pair in document order.
func (r *Repository) ConfigurationProperties() []Property {
	return r.properties().all()
}

// SetRepositoryURL replaces REPO_URL.
func (r *Repository) SetRepositoryURL(url string) *Repository {
	r.properties().replace(KeyRepositoryURL, url, false)
	return r
}

// RepositoryURL returns REPO_URL, or "".
func (r *Repository) RepositoryURL() string {
	return r.properties().value(KeyRepositoryURL)
}

// SetCredentials replaces USERNAME and PASSWORD. The username is stored
// percent-encoded as a plain value; the password passes through the
// repository's encrypter and is stored as an encrypted value. When
// encryption fails the document is left unchanged.
func (r *Repository) SetCredentials(username, password string) error {
	encrypted, err := r.options.encrypter.Encrypt(password)
	if err != nil {
		return fmt.Errorf("gocd: encrypting password for repository %q: %w",
			xmltree.Read(r.element).Attribute("name", ""), err)
	}
	properties := r.properties()
	properties.remove(KeyUsername)
	properties.remove(KeyPassword)
	properties.add(KeyUsername, quoteComponent(username), false)
	properties.add(KeyPassword, encrypted, true)
	return nil
}

// Username returns the stored USERNAME value (still percent-encoded).
func (r *Repository) Username() string {
	return r.properties().value(KeyUsername)
}

// Packages returns every <package> under <packages>, each with its
// repository name set to this repository.
func (r *Repository) Packages() []*Package {
	name := r.Name()
	var packages []*Package
	for element := range xmltree.Read(r.element).Child("packages").Children("package") {
		pkg := r.newPackage(element)
		pkg.SetRepositoryName(name)
		packages = append(packages, pkg)
	}
	return packages
}

// EnsurePackage returns the package with the given name, creating it
// under <packages> when absent.
func (r *Repository) EnsurePackage(name string) *Package {
	element := xmltree.Ensure(r.element).
		EnsureChild("packages").
		EnsureChildWithAttribute("package", "name", name).
		Element()
	pkg := r.newPackage(element)
	pkg.SetRepositoryName(r.Name())
	return pkg
}

// RemovePackage removes every package with the given name.
func (r *Repository) RemovePackage(name string) *Repository {
	packages := xmltree.Read(r.element).Child("packages")
	var matching []*etree.Element
	for element := range packages.Children("package") {
		if xmltree.Read(element).HasAttribute("name", name) {
			matching = append(matching, element)
		}
	}
	for _, element := range matching {
		packages.Element().RemoveChild(element)
	}
	return r
}

// ReplacePackage ensures the named package exists, then clears it:
// every child and the id attribute are removed, only the name remains.
// The returned view has no id; wrapping the element again with
// NewPackage assigns a fresh one.
func (r *Repository) ReplacePackage(name string) *Package {
	pkg := r.EnsurePackage(name)
	pkg.MakeEmpty()
	xmltree.Read(pkg.element).RemoveAttribute("id")
	return pkg
}

func (r *Repository) newPackage(element *etree.Element) *Package {
	return newPackage(element, r.options)
}

// quoteComponent percent-encodes every byte except ASCII letters,
// digits and "-._". "/", "@" and "~" are escaped too.
func quoteComponent(value string) string {
	const hex = "0123456789ABCDEF"
	var builder strings.Builder
	for i := 0; i < len(value); i++ {
		c := value[i]
		if isUnreserved(c) {
			builder.WriteByte(c)
			continue
		}
		builder.WriteByte('%')
		builder.WriteByte(hex[c>>4])
		builder.WriteByte(hex[c&0x0f])
	}
	return builder.String()
}

func isUnreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	case c == '-', c == '.', c == '_':
		return true
	}
	return false
}
