// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package xmltree

import "fmt"

// ContractError is the panic value raised when a caller breaks a
// structural precondition: building an Ensurer over a missing element,
// or reading an attribute the document model requires.
type ContractError struct {
	// Operation names the call that detected the violation
	// (e.g., "Ensure", "RequireAttribute").
	Operation string
	// Tag is the tag of the element involved, or "" when the element
	// itself was missing.
	Tag string
	// Attribute is the attribute involved, if any.
	Attribute string
}

func (e *ContractError) Error() string {
	switch {
	case e.Tag == "":
		return fmt.Sprintf("xmltree: %s: element is missing", e.Operation)
	case e.Attribute != "":
		return fmt.Sprintf("xmltree: %s: <%s> has no %q attribute", e.Operation, e.Tag, e.Attribute)
	default:
		return fmt.Sprintf("xmltree: %s: <%s> violates document contract", e.Operation, e.Tag)
	}
}
