// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package gocd

import (
	"github.com/beevik/etree"

	"github.com/bureau-foundation/gomatic/lib/xmltree"
)

// Property is one key/value pair from a configuration block.
type Property struct {
	Key   string
	Value string
	// Encrypted is true when the value was stored in <encryptedValue>.
	Encrypted bool
}

// propertyBlock manages the <configuration> child of owner.
type propertyBlock struct {
	owner *etree.Element
}

func (b propertyBlock) reader() xmltree.Reader {
	return xmltree.Read(b.owner).Child("configuration")
}

// add appends a new pair without looking for an existing one.
func (b propertyBlock) add(key, value string, encrypted bool) {
	valueTag := "value"
	if encrypted {
		valueTag = "encryptedValue"
	}
	xmltree.Ensure(b.owner).EnsureChild("configuration").Append(xmltree.NewFragment("property",
		xmltree.TextElement("key", key),
		xmltree.TextElement(valueTag, value),
	))
}

// remove detaches every pair whose key matches. A missing block is left
// missing.
func (b propertyBlock) remove(key string) {
	configuration := b.reader()
	var matching []*etree.Element
	for property := range configuration.Children("property") {
		if propertyKey(property) == key {
			matching = append(matching, property)
		}
	}
	for _, property := range matching {
		configuration.Element().RemoveChild(property)
	}
}

// replace removes every pair with key and appends exactly one.
func (b propertyBlock) replace(key, value string, encrypted bool) {
	b.remove(key)
	b.add(key, value, encrypted)
}

// lookup returns the first pair with key. It never mutates the tree.
func (b propertyBlock) lookup(key string) (Property, bool) {
	for property := range b.reader().Children("property") {
		if propertyKey(property) == key {
			return decodeProperty(property), true
		}
	}
	return Property{}, false
}

// value returns the first pair's value for key, or "".
func (b propertyBlock) value(key string) string {
	property, _ := b.lookup(key)
	return property.Value
}

func (b propertyBlock) all() []Property {
	var properties []Property
	for property := range b.reader().Children("property") {
		properties = append(properties, decodeProperty(property))
	}
	return properties
}

func propertyKey(property *etree.Element) string {
	return xmltree.Read(property).Child("key").Text("")
}

func decodeProperty(property *etree.Element) Property {
	reader := xmltree.Read(property)
	decoded := Property{Key: reader.Child("key").Text("")}
	if value := reader.Child("value"); value.Exists() {
		decoded.Value = value.Text("")
		return decoded
	}
	decoded.Value = reader.Child("encryptedValue").Text("")
	decoded.Encrypted = reader.Child("encryptedValue").Exists()
	return decoded
}
