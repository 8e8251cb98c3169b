// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package configurator

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"sync"

	"github.com/bureau-foundation/gomatic/restclient"
)

// EmptyConfig is the smallest document GoCD accepts.
const EmptyConfig = `<?xml version="1.0" encoding="utf-8"?>
<cruise xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance" xsi:noNamespaceSchemaLocation="cruise-config.xsd" schemaVersion="72">
  <server artifactsdir="artifacts" commandRepositoryLocation="default" serverId="96eca4bf-210e-499f-9dc9-0cefdae38d0c" />
</cruise>`

// Post is one configuration post recorded by FakeTransport.
type Post struct {
	XML []byte
	MD5 string
}

// FakeTransport serves a fixed document and records posts. Its md5 is
// computed from the document the way GoCD computes it.
type FakeTransport struct {
	mu      sync.Mutex
	config  []byte
	posts   []Post
	postErr error
}

// NewFakeTransport returns a transport serving config.
func NewFakeTransport(config string) *FakeTransport {
	return &FakeTransport{config: []byte(config)}
}

func (f *FakeTransport) String() string {
	return "FakeTransport"
}

// FetchConfig returns the current document and its md5.
func (f *FakeTransport) FetchConfig(ctx context.Context) (*restclient.ConfigFile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return &restclient.ConfigFile{XML: append([]byte(nil), f.config...), MD5: md5Hex(f.config)}, nil
}

// PostConfig records the post. Unless a post error is set, the posted
// document becomes the one served.
func (f *FakeTransport) PostConfig(ctx context.Context, xml []byte, md5 string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.posts = append(f.posts, Post{XML: append([]byte(nil), xml...), MD5: md5})
	if f.postErr != nil {
		return f.postErr
	}
	f.config = append([]byte(nil), xml...)
	return nil
}

// FailPosts makes every later post return err. Nil restores success.
func (f *FakeTransport) FailPosts(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.postErr = err
}

// Posts returns the recorded posts in order.
func (f *FakeTransport) Posts() []Post {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Post(nil), f.posts...)
}

func md5Hex(data []byte) string {
	sum := md5.Sum(data)
	return hex.EncodeToString(sum[:])
}
