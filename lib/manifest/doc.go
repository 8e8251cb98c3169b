// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package manifest reads declarative descriptions of the artifact
// repositories a GoCD server should have and applies them to a
// configuration document.
//
// Manifests are JSONC files (JSON with // and /* */ comments and
// trailing commas):
//
//	{
//	  // repositories to create or update
//	  "repositories": [
//	    {
//	      "name": "artifacts",
//	      "url": "https://artifactory.example.com/api",
//	      "username": "ci",
//	      "password_env": "ARTIFACTORY_PASSWORD",
//	      "packages": [
//	        {"name": "app", "repository_id": "libs-release", "package_path": "com/example/app"},
//	      ],
//	    },
//	  ],
//	  "remove_repositories": ["legacy"],
//	}
//
// The typical flow:
//
//  1. ReadFile or Parse: JSONC bytes to [Manifest]
//  2. Validate or Check: structural checks
//  3. Apply: drive a [RepositoryEnsurer] (the configurator)
package manifest
