// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package xmltree

import "github.com/beevik/etree"

// Ensurer is a builder view over an element that exists. Every method
// returns an Ensurer (or element) for the result so calls chain into a
// path-construction expression.
type Ensurer struct {
	element *etree.Element
}

// Ensure returns an Ensurer over element. Passing nil is a programming
// error and panics with a *ContractError.
func Ensure(element *etree.Element) *Ensurer {
	if element == nil {
		panic(&ContractError{Operation: "Ensure"})
	}
	return &Ensurer{element: element}
}

// Element returns the underlying element.
func (e *Ensurer) Element() *etree.Element {
	return e.element
}

// Reader returns a Reader over the same element.
func (e *Ensurer) Reader() Reader {
	return Reader{element: e.element}
}

// EnsureChild returns an Ensurer over the first child with the given
// tag, creating and appending one when none exists.
func (e *Ensurer) EnsureChild(tag string) *Ensurer {
	if child := e.element.SelectElement(tag); child != nil {
		return &Ensurer{element: child}
	}
	return &Ensurer{element: e.element.CreateElement(tag)}
}

// EnsureChildWithAttribute returns an Ensurer over the first child with
// the given tag whose attrName attribute equals attrValue. When no child
// matches, a new child is appended with the attribute set. Children
// with the tag but without the attribute never match.
func (e *Ensurer) EnsureChildWithAttribute(tag, attrName, attrValue string) *Ensurer {
	for _, child := range e.element.ChildElements() {
		if child.Tag != tag {
			continue
		}
		if attr := child.SelectAttr(attrName); attr != nil && attr.Value == attrValue {
			return &Ensurer{element: child}
		}
	}
	child := e.element.CreateElement(tag)
	child.CreateAttr(attrName, attrValue)
	return &Ensurer{element: child}
}

// Set sets an attribute on the current element and returns e.
func (e *Ensurer) Set(attrName, value string) *Ensurer {
	e.element.CreateAttr(attrName, value)
	return e
}

// SetText replaces the element's text content and returns e.
func (e *Ensurer) SetText(value string) *Ensurer {
	e.element.SetText(value)
	return e
}

// Append adds fragment as the last child and returns it. A fragment
// already attached elsewhere is moved, not copied.
func (e *Ensurer) Append(fragment *etree.Element) *etree.Element {
	e.element.AddChild(fragment)
	return fragment
}
