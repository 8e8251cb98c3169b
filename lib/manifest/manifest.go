// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package manifest

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tidwall/jsonc"
)

// Manifest is the desired state of a server's artifact repositories.
type Manifest struct {
	Repositories []Repository `json:"repositories"`
	// RemoveRepositories names repositories to delete. Removals run
	// before any repository is ensured.
	RemoveRepositories []string `json:"remove_repositories,omitempty"`
}

// Repository describes one generic-artifactory repository.
type Repository struct {
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`

	Username string `json:"username,omitempty"`
	// Password is stored through the configured encrypter. Prefer
	// PasswordEnv so manifests can be committed.
	Password string `json:"password,omitempty"`
	// PasswordEnv names an environment variable holding the password.
	PasswordEnv string `json:"password_env,omitempty"`

	// Replace clears the existing repository before applying.
	Replace bool `json:"replace,omitempty"`

	Packages       []Package `json:"packages,omitempty"`
	RemovePackages []string  `json:"remove_packages,omitempty"`
}

// Package describes one package inside a repository. Empty fields are
// left untouched on an existing package.
type Package struct {
	Name            string `json:"name"`
	RepositoryID    string `json:"repository_id,omitempty"`
	PackagePath     string `json:"package_path,omitempty"`
	PackageID       string `json:"package_id,omitempty"`
	PollVersionFrom string `json:"poll_version_from,omitempty"`
	PollVersionTo   string `json:"poll_version_to,omitempty"`
	// Replace clears the package and gives it a new id.
	Replace bool `json:"replace,omitempty"`
}

// Parse strips JSONC comments and trailing commas and decodes data.
func Parse(data []byte) (*Manifest, error) {
	var manifest Manifest
	if err := json.Unmarshal(jsonc.ToJSON(data), &manifest); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}
	return &manifest, nil
}

// ReadFile reads and parses a manifest file.
func ReadFile(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	manifest, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return manifest, nil
}

// resolvePassword returns the password for r, reading PasswordEnv
// through lookup when set.
func (r Repository) resolvePassword(lookup func(string) (string, bool)) (string, error) {
	if r.PasswordEnv == "" {
		return r.Password, nil
	}
	value, ok := lookup(r.PasswordEnv)
	if !ok {
		return "", fmt.Errorf("repository %q: environment variable %s is not set", r.Name, r.PasswordEnv)
	}
	return value, nil
}
