// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package xmltree

import (
	"testing"

	"github.com/beevik/etree"
)

func mustParse(t *testing.T, data string) *etree.Document {
	t.Helper()
	document, err := Parse([]byte(data))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	return document
}

func collect(reader Reader, tag string) []*etree.Element {
	var result []*etree.Element
	for element := range reader.Children(tag) {
		result = append(result, element)
	}
	return result
}

func TestReader_MissingChainReturnsDefaults(t *testing.T) {
	missing := Read(nil)

	deep := missing.Child("repositories").Child("repository").Child("configuration")
	if deep.Exists() {
		t.Fatal("child of missing reader should be missing")
	}
	if deep.Element() != nil {
		t.Errorf("Element() = %v, want nil", deep.Element())
	}
	if got := deep.Attribute("name", "fallback"); got != "fallback" {
		t.Errorf("Attribute() = %q, want %q", got, "fallback")
	}
	if got := deep.Text("none"); got != "none" {
		t.Errorf("Text() = %q, want %q", got, "none")
	}
	if deep.HasAttribute("id", "") {
		t.Error("HasAttribute() on missing reader should be false")
	}
	if children := collect(deep, "property"); len(children) != 0 {
		t.Errorf("Children() yielded %d elements, want 0", len(children))
	}

	// Removals on a missing reader are no-ops and keep the chain going.
	deep.RemoveAllChildren().RemoveChildren("property").RemoveAttribute("id")
}

func TestReader_ChildFirstMatchWins(t *testing.T) {
	document := mustParse(t, `<root><item name="a"/><other/><item name="b"/></root>`)
	root := Read(document.Root())

	item := root.Child("item")
	if !item.Exists() {
		t.Fatal("expected item child")
	}
	if got := item.Attribute("name", ""); got != "a" {
		t.Errorf("first item name = %q, want %q", got, "a")
	}
	if root.Child("absent").Exists() {
		t.Error("absent child should be missing")
	}
}

func TestReader_ChildrenIsRestartableAndLive(t *testing.T) {
	document := mustParse(t, `<root><item name="a"/><other/><item name="b"/></root>`)
	root := Read(document.Root())
	sequence := root.Children("item")

	first := 0
	for range sequence {
		first++
	}
	second := 0
	for range sequence {
		second++
	}
	if first != 2 || second != 2 {
		t.Fatalf("iterations yielded %d and %d, want 2 and 2", first, second)
	}

	document.Root().CreateElement("item")
	third := 0
	for range sequence {
		third++
	}
	if third != 3 {
		t.Errorf("after append, iteration yielded %d, want 3", third)
	}
}

func TestReader_ChildrenStopsEarly(t *testing.T) {
	document := mustParse(t, `<root><item/><item/><item/></root>`)
	count := 0
	for range Read(document.Root()).Children("item") {
		count++
		break
	}
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}
}

func TestReader_AttributeAndText(t *testing.T) {
	document := mustParse(t, `<root id="r1"><key>REPO_URL</key></root>`)
	root := Read(document.Root())

	if got := root.Attribute("id", ""); got != "r1" {
		t.Errorf("Attribute(id) = %q, want %q", got, "r1")
	}
	if got := root.Attribute("missing", "default"); got != "default" {
		t.Errorf("Attribute(missing) = %q, want %q", got, "default")
	}
	if !root.HasAttribute("id", "r1") {
		t.Error("HasAttribute(id, r1) = false, want true")
	}
	if root.HasAttribute("id", "r2") {
		t.Error("HasAttribute(id, r2) = true, want false")
	}
	if got := root.Child("key").Text(""); got != "REPO_URL" {
		t.Errorf("Text() = %q, want %q", got, "REPO_URL")
	}
}

func TestReader_RemoveAllChildren(t *testing.T) {
	document := mustParse(t, `<root id="r"><a/><b/><a/></root>`)
	root := Read(document.Root())

	root.RemoveAllChildren()

	if got := len(document.Root().ChildElements()); got != 0 {
		t.Errorf("child count = %d, want 0", got)
	}
	if got := root.Attribute("id", ""); got != "r" {
		t.Errorf("attributes should survive RemoveAllChildren, id = %q", got)
	}
}

func TestReader_RemoveChildrenByTag(t *testing.T) {
	document := mustParse(t, `<root><a/><b/><a/></root>`)
	root := Read(document.Root())

	root.RemoveChildren("a")

	children := document.Root().ChildElements()
	if len(children) != 1 || children[0].Tag != "b" {
		t.Errorf("remaining children = %v, want [b]", children)
	}
}

func TestReader_RemoveAttribute(t *testing.T) {
	document := mustParse(t, `<root id="r" name="n"/>`)
	root := Read(document.Root())

	root.RemoveAttribute("id").RemoveAttribute("never-there")

	if root.Attribute("id", "gone") != "gone" {
		t.Error("id attribute should have been removed")
	}
	if root.Attribute("name", "") != "n" {
		t.Error("name attribute should remain")
	}
}
