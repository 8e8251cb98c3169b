// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package xmltree

import (
	"iter"

	"github.com/beevik/etree"
)

// Reader is a view over an element that may be missing. The zero
// Reader is missing. Readers are small values; copy them freely.
type Reader struct {
	element *etree.Element
}

// Read returns a Reader over element. A nil element produces a missing
// Reader.
func Read(element *etree.Element) Reader {
	return Reader{element: element}
}

// Exists reports whether the Reader points at an element.
func (r Reader) Exists() bool {
	return r.element != nil
}

// Element returns the underlying element, or nil when missing.
func (r Reader) Element() *etree.Element {
	return r.element
}

// Child returns a Reader over the first child element with the given
// tag. The result is missing if r is missing or no such child exists.
func (r Reader) Child(tag string) Reader {
	if r.element == nil {
		return Reader{}
	}
	return Reader{element: r.element.SelectElement(tag)}
}

// Children yields every child element with the given tag in document
// order. The sequence is empty when r is missing. Each iteration walks
// the live child list, so ranging twice reflects mutations made in
// between.
func (r Reader) Children(tag string) iter.Seq[*etree.Element] {
	return func(yield func(*etree.Element) bool) {
		if r.element == nil {
			return
		}
		for _, child := range r.element.ChildElements() {
			if child.Tag != tag {
				continue
			}
			if !yield(child) {
				return
			}
		}
	}
}

// Attribute returns the value of the named attribute, or defaultValue
// when r is missing or the attribute is absent.
func (r Reader) Attribute(name, defaultValue string) string {
	if r.element == nil {
		return defaultValue
	}
	attr := r.element.SelectAttr(name)
	if attr == nil {
		return defaultValue
	}
	return attr.Value
}

// HasAttribute reports whether the element carries the named attribute
// with exactly the given value.
func (r Reader) HasAttribute(name, value string) bool {
	if r.element == nil {
		return false
	}
	attr := r.element.SelectAttr(name)
	return attr != nil && attr.Value == value
}

// Text returns the element's text content, or defaultValue when r is
// missing.
func (r Reader) Text(defaultValue string) string {
	if r.element == nil {
		return defaultValue
	}
	return r.element.Text()
}

// RemoveAllChildren detaches every child element. No-op when missing.
func (r Reader) RemoveAllChildren() Reader {
	if r.element == nil {
		return r
	}
	for _, child := range r.element.ChildElements() {
		r.element.RemoveChild(child)
	}
	return r
}

// RemoveChildren detaches every child element with the given tag.
// No-op when missing.
func (r Reader) RemoveChildren(tag string) Reader {
	if r.element == nil {
		return r
	}
	for _, child := range r.element.ChildElements() {
		if child.Tag == tag {
			r.element.RemoveChild(child)
		}
	}
	return r
}

// RemoveAttribute deletes the named attribute. No-op when missing.
func (r Reader) RemoveAttribute(name string) Reader {
	if r.element == nil {
		return r
	}
	r.element.RemoveAttr(name)
	return r
}
