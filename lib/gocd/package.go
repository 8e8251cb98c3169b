// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package gocd

import (
	"fmt"

	"github.com/beevik/etree"

	"github.com/bureau-foundation/gomatic/lib/xmltree"
)

// PackageType is the "type" reported by [Package.ToMapping].
const PackageType = "artifactory"

// Package configuration keys.
const (
	KeyRepositoryID    = "REPO_ID"
	KeyPackagePath     = "PACKAGE_PATH"
	KeyPackageID       = "PACKAGE_ID"
	KeyPollVersionFrom = "POLL_VERSION_FROM"
	KeyPollVersionTo   = "POLL_VERSION_TO"
)

// Package is a view over a <package> element. Its repository name is
// held in memory only and is not written to the tree.
type Package struct {
	element        *etree.Element
	repositoryName string
}

// NewPackage wraps element, assigning an id when the attribute is
// absent or empty. Repositories only check presence; see [Repository.HasID].
func NewPackage(element *etree.Element, opts ...Option) *Package {
	return newPackage(element, buildOptions(opts))
}

func newPackage(element *etree.Element, resolved options) *Package {
	ensurer := xmltree.Ensure(element)
	if xmltree.Read(element).Attribute("id", "") == "" {
		ensurer.Set("id", resolved.ids.NewID())
	}
	return &Package{element: element}
}

func (p *Package) String() string {
	return fmt.Sprintf("Package(%q)", xmltree.Read(p.element).Attribute("name", ""))
}

// Element returns the underlying element.
func (p *Package) Element() *etree.Element {
	return p.element
}

// Name returns the package's name attribute and panics when absent.
func (p *Package) Name() string {
	return xmltree.RequireAttribute(p.element, "name")
}

// ID returns the id attribute, or "" after [Repository.ReplacePackage].
func (p *Package) ID() string {
	return xmltree.Read(p.element).Attribute("id", "")
}

// RepositoryName returns the in-memory back-reference.
func (p *Package) RepositoryName() string {
	return p.repositoryName
}

// SetRepositoryName sets the in-memory back-reference.
func (p *Package) SetRepositoryName(name string) {
	p.repositoryName = name
}

// MakeEmpty detaches every child element. Attributes are kept.
func (p *Package) MakeEmpty() {
	xmltree.Read(p.element).RemoveAllChildren()
}

func (p *Package) properties() propertyBlock {
	return propertyBlock{owner: p.element}
}

// ConfigurationProperties returns every pair in document order.
func (p *Package) ConfigurationProperties() []Property {
	return p.properties().all()
}

// RepositoryID returns REPO_ID, or "".
func (p *Package) RepositoryID() string { return p.properties().value(KeyRepositoryID) }

// SetRepositoryID replaces REPO_ID.
func (p *Package) SetRepositoryID(value string) *Package {
	p.properties().replace(KeyRepositoryID, value, false)
	return p
}

// PackagePath returns PACKAGE_PATH, or "".
func (p *Package) PackagePath() string { return p.properties().value(KeyPackagePath) }

// SetPackagePath replaces PACKAGE_PATH.
func (p *Package) SetPackagePath(value string) *Package {
	p.properties().replace(KeyPackagePath, value, false)
	return p
}

// PackageID returns PACKAGE_ID, or "".
func (p *Package) PackageID() string { return p.properties().value(KeyPackageID) }

// SetPackageID replaces PACKAGE_ID.
func (p *Package) SetPackageID(value string) *Package {
	p.properties().replace(KeyPackageID, value, false)
	return p
}

// PollVersionFrom returns POLL_VERSION_FROM, or "".
func (p *Package) PollVersionFrom() string { return p.properties().value(KeyPollVersionFrom) }

// SetPollVersionFrom replaces POLL_VERSION_FROM.
func (p *Package) SetPollVersionFrom(value string) *Package {
	p.properties().replace(KeyPollVersionFrom, value, false)
	return p
}

// PollVersionTo returns POLL_VERSION_TO, or "".
func (p *Package) PollVersionTo() string { return p.properties().value(KeyPollVersionTo) }

// SetPollVersionTo replaces POLL_VERSION_TO.
func (p *Package) SetPollVersionTo(value string) *Package {
	p.properties().replace(KeyPollVersionTo, value, false)
	return p
}

// ToMapping projects the package into type, repository_name, name, id
// and a nested configuration map. When ordered is true the keys keep
// that order; otherwise they are sorted. ToMapping only reads.
func (p *Package) ToMapping(ordered bool) Mapping {
	mapping := NewMapping(!ordered)
	mapping.Set("type", PackageType)
	mapping.Set("repository_name", p.repositoryName)
	mapping.Set("name", xmltree.Read(p.element).Attribute("name", ""))
	mapping.Set("id", p.ID())
	mapping.Set("configuration", map[string]string{
		"repository_id":     p.RepositoryID(),
		"package_path":      p.PackagePath(),
		"package_id":        p.PackageID(),
		"poll_version_from": p.PollVersionFrom(),
		"poll_version_to":   p.PollVersionTo(),
	})
	return mapping
}
