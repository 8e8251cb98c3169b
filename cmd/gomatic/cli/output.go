// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"reflect"

	"gopkg.in/yaml.v3"
)

// Output formats accepted by --format.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// WriteFormatted writes value to w as JSON or YAML.
func WriteFormatted(w io.Writer, format string, value any) error {
	switch format {
	case FormatJSON:
		return WriteJSON(w, value)
	case FormatYAML:
		return WriteYAML(w, value)
	default:
		return fmt.Errorf("unknown format %q (want %s or %s)", format, FormatJSON, FormatYAML)
	}
}

// WriteJSON marshals value as indented JSON. Nil slices are written as
// [] rather than null.
func WriteJSON(w io.Writer, value any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(normalizeNilSlice(value))
}

// WriteYAML marshals value as YAML with two-space indentation.
func WriteYAML(w io.Writer, value any) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(normalizeNilSlice(value)); err != nil {
		return err
	}
	return encoder.Close()
}

// normalizeNilSlice returns an empty slice of the same type if value
// is a nil slice. Returns value unchanged for all other types.
func normalizeNilSlice(value any) any {
	v := reflect.ValueOf(value)
	if v.Kind() == reflect.Slice && v.IsNil() {
		return reflect.MakeSlice(v.Type(), 0, 0).Interface()
	}
	return value
}
