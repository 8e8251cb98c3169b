// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package xmltree

import (
	"errors"
	"testing"

	"github.com/beevik/etree"
)

func TestEnsure_NilElementPanics(t *testing.T) {
	defer func() {
		recovered := recover()
		if recovered == nil {
			t.Fatal("Ensure(nil) did not panic")
		}
		err, ok := recovered.(error)
		if !ok {
			t.Fatalf("panic value %T is not an error", recovered)
		}
		var contractErr *ContractError
		if !errors.As(err, &contractErr) {
			t.Fatalf("panic value %v is not a *ContractError", err)
		}
		if contractErr.Operation != "Ensure" {
			t.Errorf("Operation = %q, want %q", contractErr.Operation, "Ensure")
		}
	}()
	Ensure(nil)
}

func TestEnsureChild_Idempotent(t *testing.T) {
	root := etree.NewElement("cruise")

	first := Ensure(root).EnsureChild("repositories")
	countAfterFirst := len(root.ChildElements())
	second := Ensure(root).EnsureChild("repositories")

	if first.Element() != second.Element() {
		t.Error("EnsureChild returned different elements on repeated calls")
	}
	if countAfterFirst != 1 || len(root.ChildElements()) != 1 {
		t.Errorf("child counts = %d then %d, want 1 and 1", countAfterFirst, len(root.ChildElements()))
	}
}

func TestEnsureChild_ReusesFirstExisting(t *testing.T) {
	document := mustParse(t, `<root><packages n="1"/><packages n="2"/></root>`)

	got := Ensure(document.Root()).EnsureChild("packages")

	if got.Reader().Attribute("n", "") != "1" {
		t.Errorf("EnsureChild picked n=%q, want first (n=1)", got.Reader().Attribute("n", ""))
	}
	if len(document.Root().ChildElements()) != 2 {
		t.Error("pre-existing duplicates should be left untouched")
	}
}

func TestEnsureChildWithAttribute_Idempotent(t *testing.T) {
	root := etree.NewElement("packages")

	first := Ensure(root).EnsureChildWithAttribute("package", "name", "pkg-a")
	second := Ensure(root).EnsureChildWithAttribute("package", "name", "pkg-a")

	if first.Element() != second.Element() {
		t.Error("EnsureChildWithAttribute returned different elements on repeated calls")
	}
	if len(root.ChildElements()) != 1 {
		t.Errorf("child count = %d, want 1", len(root.ChildElements()))
	}
	if got := first.Reader().Attribute("name", ""); got != "pkg-a" {
		t.Errorf("name = %q, want %q", got, "pkg-a")
	}
}

func TestEnsureChildWithAttribute_DistinguishesValues(t *testing.T) {
	root := etree.NewElement("packages")

	a := Ensure(root).EnsureChildWithAttribute("package", "name", "a")
	b := Ensure(root).EnsureChildWithAttribute("package", "name", "b")

	if a.Element() == b.Element() {
		t.Fatal("different attribute values should produce different children")
	}
	if len(root.ChildElements()) != 2 {
		t.Errorf("child count = %d, want 2", len(root.ChildElements()))
	}
}

func TestEnsureChildWithAttribute_SkipsChildrenWithoutAttribute(t *testing.T) {
	document := mustParse(t, `<root><package/><package name="x"/></root>`)

	got := Ensure(document.Root()).EnsureChildWithAttribute("package", "name", "x")

	if got.Element() != document.Root().ChildElements()[1] {
		t.Error("expected the second child, which carries name=x")
	}
	if len(document.Root().ChildElements()) != 2 {
		t.Errorf("child count = %d, want 2", len(document.Root().ChildElements()))
	}
}

func TestEnsurer_ChainBuildsPath(t *testing.T) {
	root := etree.NewElement("cruise")

	Ensure(root).
		EnsureChild("repositories").
		EnsureChildWithAttribute("repository", "name", "artifacts").
		Set("id", "r-1").
		EnsureChildWithAttribute("pluginConfiguration", "id", "generic-artifactory").
		Set("version", "1")

	repository := Read(root).Child("repositories").Child("repository")
	if repository.Attribute("id", "") != "r-1" {
		t.Errorf("repository id = %q, want %q", repository.Attribute("id", ""), "r-1")
	}
	plugin := repository.Child("pluginConfiguration")
	if !plugin.HasAttribute("id", "generic-artifactory") || !plugin.HasAttribute("version", "1") {
		t.Errorf("pluginConfiguration attributes wrong: id=%q version=%q",
			plugin.Attribute("id", ""), plugin.Attribute("version", ""))
	}
}

func TestEnsurer_SetOverwritesAttribute(t *testing.T) {
	root := etree.NewElement("pluginConfiguration")

	Ensure(root).Set("version", "1").Set("version", "2")

	if len(root.Attr) != 1 {
		t.Fatalf("attribute count = %d, want 1", len(root.Attr))
	}
	if got := Read(root).Attribute("version", ""); got != "2" {
		t.Errorf("version = %q, want %q", got, "2")
	}
}

func TestEnsurer_AppendAndSetText(t *testing.T) {
	root := etree.NewElement("configuration")
	Ensure(root).EnsureChild("existing")

	fragment := NewFragment("property", TextElement("key", "K"), TextElement("value", "V"))
	appended := Ensure(root).Append(fragment)

	if appended != fragment {
		t.Error("Append should return the appended fragment")
	}
	children := root.ChildElements()
	if len(children) != 2 || children[1] != fragment {
		t.Fatalf("fragment should be the last child, children = %v", children)
	}
	if got := Read(fragment).Child("value").Text(""); got != "V" {
		t.Errorf("value text = %q, want %q", got, "V")
	}

	Ensure(fragment).EnsureChild("value").SetText("W")
	if got := Read(fragment).Child("value").Text(""); got != "W" {
		t.Errorf("value text after SetText = %q, want %q", got, "W")
	}
}
