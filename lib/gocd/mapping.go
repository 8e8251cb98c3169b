// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package gocd

import (
	"bytes"
	"encoding/json"
	"iter"
	"slices"

	"gopkg.in/yaml.v3"
)

// Mapping is a string-keyed projection that remembers insertion order.
// A sorted Mapping iterates its keys in lexical order instead. Both
// forms marshal to JSON and YAML in iteration order.
type Mapping struct {
	keys   []string
	values map[string]any
	sorted bool
}

// NewMapping returns an empty Mapping. A sorted Mapping iterates its
// keys lexically.
func NewMapping(sorted bool) Mapping {
	return Mapping{sorted: sorted}
}

// Set stores value under key. Setting an existing key keeps its
// original position.
func (m *Mapping) Set(key string, value any) {
	if m.values == nil {
		m.values = make(map[string]any)
	}
	if _, exists := m.values[key]; !exists {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Get returns the value for key.
func (m Mapping) Get(key string) (any, bool) {
	value, ok := m.values[key]
	return value, ok
}

// Len returns the number of keys.
func (m Mapping) Len() int {
	return len(m.keys)
}

// Keys returns the keys in iteration order.
func (m Mapping) Keys() []string {
	keys := slices.Clone(m.keys)
	if m.sorted {
		slices.Sort(keys)
	}
	return keys
}

// All yields every key/value pair in iteration order.
func (m Mapping) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		for _, key := range m.Keys() {
			if !yield(key, m.values[key]) {
				return
			}
		}
	}
}

// MarshalJSON writes a JSON object in iteration order.
func (m Mapping) MarshalJSON() ([]byte, error) {
	var buffer bytes.Buffer
	buffer.WriteByte('{')
	first := true
	for key, value := range m.All() {
		if !first {
			buffer.WriteByte(',')
		}
		first = false
		encodedKey, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		encodedValue, err := json.Marshal(value)
		if err != nil {
			return nil, err
		}
		buffer.Write(encodedKey)
		buffer.WriteByte(':')
		buffer.Write(encodedValue)
	}
	buffer.WriteByte('}')
	return buffer.Bytes(), nil
}

// MarshalYAML returns a mapping node in iteration order.
func (m Mapping) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for key, value := range m.All() {
		keyNode := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key}
		valueNode := &yaml.Node{}
		if err := valueNode.Encode(value); err != nil {
			return nil, err
		}
		node.Content = append(node.Content, keyNode, valueNode)
	}
	return node, nil
}
