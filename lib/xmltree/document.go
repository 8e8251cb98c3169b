// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package xmltree

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"
)

// Parse reads an XML document. The document must have a root element.
func Parse(data []byte) (*etree.Document, error) {
	document := etree.NewDocument()
	if err := document.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("xmltree: parsing document: %w", err)
	}
	if document.Root() == nil {
		return nil, fmt.Errorf("xmltree: document has no root element")
	}
	return document, nil
}

// Serialize writes the document as bytes without altering whitespace.
func Serialize(document *etree.Document) ([]byte, error) {
	data, err := document.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("xmltree: serializing document: %w", err)
	}
	return data, nil
}

// Prettify re-indents an XML document with two spaces and drops blank
// lines. Two documents that differ only in formatting prettify to the
// same string, which is what change detection compares.
func Prettify(data []byte) (string, error) {
	document, err := Parse(data)
	if err != nil {
		return "", err
	}
	document.Indent(2)
	formatted, err := document.WriteToString()
	if err != nil {
		return "", fmt.Errorf("xmltree: serializing document: %w", err)
	}
	lines := strings.Split(formatted, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n"), nil
}

// RequireAttribute returns the named attribute of element. A nil
// element or a missing attribute panics with a *ContractError: callers
// use this only for attributes the document model guarantees, such as
// the name of a repository.
func RequireAttribute(element *etree.Element, name string) string {
	if element == nil {
		panic(&ContractError{Operation: "RequireAttribute", Attribute: name})
	}
	attr := element.SelectAttr(name)
	if attr == nil {
		panic(&ContractError{Operation: "RequireAttribute", Tag: element.Tag, Attribute: name})
	}
	return attr.Value
}

// TextElement returns a detached element holding text, e.g.
// <key>REPO_URL</key>.
func TextElement(tag, text string) *etree.Element {
	element := etree.NewElement(tag)
	element.SetText(text)
	return element
}

// NewFragment returns a detached element with the given children
// appended in order. The result is meant for [Ensurer.Append].
func NewFragment(tag string, children ...*etree.Element) *etree.Element {
	fragment := etree.NewElement(tag)
	for _, child := range children {
		fragment.AddChild(child)
	}
	return fragment
}

// MoveAllToEnd moves every child of parent with the given tag to the
// end of the child list, keeping their relative order.
func MoveAllToEnd(parent *etree.Element, tag string) {
	if parent == nil {
		return
	}
	var matching []*etree.Element
	for _, child := range parent.ChildElements() {
		if child.Tag == tag {
			matching = append(matching, child)
		}
	}
	for _, child := range matching {
		parent.RemoveChild(child)
		parent.AddChild(child)
	}
}
