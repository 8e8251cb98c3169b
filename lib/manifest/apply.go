// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package manifest

import (
	"fmt"
	"os"

	"github.com/bureau-foundation/gomatic/lib/gocd"
)

// RepositoryEnsurer is the part of the configurator a manifest drives.
type RepositoryEnsurer interface {
	EnsureRepository(name string) *gocd.Repository
	EnsureReplacementOfRepository(name string) *gocd.Repository
	EnsureRemovalOfRepository(name string)
}

// Result counts what Apply touched.
type Result struct {
	RepositoriesEnsured int
	RepositoriesRemoved int
	PackagesEnsured     int
	PackagesRemoved     int
}

// ApplyOptions configures Apply.
type ApplyOptions struct {
	// LookupEnv resolves password_env. Defaults to os.LookupEnv.
	LookupEnv func(string) (string, bool)
}

// Apply checks the manifest and applies it to target. An invalid
// manifest is rejected before anything is changed; a later failure
// (an unset password variable, an encryption error) can leave earlier
// repositories applied.
func Apply(manifest *Manifest, target RepositoryEnsurer, options ApplyOptions) (Result, error) {
	var result Result
	if err := Check(manifest); err != nil {
		return result, err
	}
	lookup := options.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}

	for _, name := range manifest.RemoveRepositories {
		target.EnsureRemovalOfRepository(name)
		result.RepositoriesRemoved++
	}

	for _, spec := range manifest.Repositories {
		var repository *gocd.Repository
		if spec.Replace {
			repository = target.EnsureReplacementOfRepository(spec.Name)
		} else {
			repository = target.EnsureRepository(spec.Name)
		}
		result.RepositoriesEnsured++

		if spec.URL != "" {
			repository.SetRepositoryURL(spec.URL)
		}
		if spec.Username != "" {
			password, err := spec.resolvePassword(lookup)
			if err != nil {
				return result, err
			}
			if err := repository.SetCredentials(spec.Username, password); err != nil {
				return result, fmt.Errorf("repository %q: %w", spec.Name, err)
			}
		}

		for _, name := range spec.RemovePackages {
			repository.RemovePackage(name)
			result.PackagesRemoved++
		}
		for _, pkgSpec := range spec.Packages {
			applyPackage(repository, pkgSpec)
			result.PackagesEnsured++
		}
	}
	return result, nil
}

func applyPackage(repository *gocd.Repository, spec Package) {
	if spec.Replace {
		repository.ReplacePackage(spec.Name)
	}
	// After a replace the element has no id; ensuring it again assigns
	// a fresh one.
	pkg := repository.EnsurePackage(spec.Name)

	setters := []struct {
		value string
		set   func(string) *gocd.Package
	}{
		{spec.RepositoryID, pkg.SetRepositoryID},
		{spec.PackagePath, pkg.SetPackagePath},
		{spec.PackageID, pkg.SetPackageID},
		{spec.PollVersionFrom, pkg.SetPollVersionFrom},
		{spec.PollVersionTo, pkg.SetPollVersionTo},
	}
	for _, setter := range setters {
		if setter.value != "" {
			setter.set(setter.value)
		}
	}
}
