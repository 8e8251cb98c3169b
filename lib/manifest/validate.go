// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package manifest

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalid wraps every error returned by Check.
var ErrInvalid = errors.New("invalid manifest")

// Validate returns human-readable descriptions of structural problems.
// An empty result means the manifest is valid.
//
// Checks:
//   - repository and package names are non-empty and unique within
//     their scope
//   - a repository is not both removed and ensured
//   - password and password_env are mutually exclusive and require
//     a username
func Validate(manifest *Manifest) []string {
	var issues []string

	removed := make(map[string]bool, len(manifest.RemoveRepositories))
	for index, name := range manifest.RemoveRepositories {
		if name == "" {
			issues = append(issues, fmt.Sprintf("remove_repositories[%d]: empty name", index))
		}
		removed[name] = true
	}

	repositoryNames := make(map[string]int, len(manifest.Repositories))
	for index, repository := range manifest.Repositories {
		label := fmt.Sprintf("repositories[%d]", index)
		if repository.Name == "" {
			issues = append(issues, label+": name is required")
		} else {
			label = fmt.Sprintf("%s %q", label, repository.Name)
			if first, exists := repositoryNames[repository.Name]; exists {
				issues = append(issues, fmt.Sprintf("%s: duplicate name (first used at repositories[%d])", label, first))
			} else {
				repositoryNames[repository.Name] = index
			}
			if removed[repository.Name] {
				issues = append(issues, label+": also listed in remove_repositories")
			}
		}

		if repository.Password != "" && repository.PasswordEnv != "" {
			issues = append(issues, label+": password and password_env are mutually exclusive")
		}
		if (repository.Password != "" || repository.PasswordEnv != "") && repository.Username == "" {
			issues = append(issues, label+": a password requires a username")
		}

		packageNames := make(map[string]int, len(repository.Packages))
		for packageIndex, pkg := range repository.Packages {
			packageLabel := fmt.Sprintf("%s packages[%d]", label, packageIndex)
			if pkg.Name == "" {
				issues = append(issues, packageLabel+": name is required")
				continue
			}
			if first, exists := packageNames[pkg.Name]; exists {
				issues = append(issues, fmt.Sprintf("%s %q: duplicate name (first used at packages[%d])", packageLabel, pkg.Name, first))
			} else {
				packageNames[pkg.Name] = packageIndex
			}
		}
		for removeIndex, name := range repository.RemovePackages {
			if name == "" {
				issues = append(issues, fmt.Sprintf("%s remove_packages[%d]: empty name", label, removeIndex))
				continue
			}
			if _, ensured := packageNames[name]; ensured {
				issues = append(issues, fmt.Sprintf("%s: package %q is both removed and ensured", label, name))
			}
		}
	}

	return issues
}

// Check runs Validate and folds any issues into one error wrapping
// ErrInvalid.
func Check(manifest *Manifest) error {
	issues := Validate(manifest)
	if len(issues) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(issues, "; "))
}
