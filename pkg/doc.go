// Package pkg provides the libraries behind jarl-action.
//
// # Overview
//
// jarl-action installs the jarl linter on a CI runner and runs it. The pkg
// directory is organized by stage:
//
//  1. [manifest] - Read a pinned jarl version from pyproject.toml or requirements files
//  2. [version] - Resolve "latest", exact versions and ranges (SemVer, then PEP 440)
//  3. [integrations/github] - List releases with token and anonymous fallback
//  4. [install] and [toolcache] - Download, verify, extract and cache a release
//  5. [actions] - Workflow commands: PATH, env, outputs, problem matchers
//  6. [pipeline] - Orchestration (resolve → install → apply → invoke)
//
// # Architecture
//
// The data flow of one run:
//
//	version / version-file / pyproject.toml
//	         ↓
//	    [version] package (constraint → release tag)
//	         ↓
//	    [install] package (tool cache or GitHub download)
//	         ↓
//	    [actions] package (PATH, JARL_OUTPUT_FORMAT, jarl-version)
//	         ↓
//	    jarl <args> <src...>
//
// Supporting packages: [errors] for coded failures, [httputil] for retries
// and pagination, [observability] for debug hooks and [buildinfo] for
// ldflags metadata.
//
// [manifest]: https://pkg.go.dev/github.com/matzehuels/jarl-action/pkg/manifest
// [version]: https://pkg.go.dev/github.com/matzehuels/jarl-action/pkg/version
// [integrations/github]: https://pkg.go.dev/github.com/matzehuels/jarl-action/pkg/integrations/github
// [install]: https://pkg.go.dev/github.com/matzehuels/jarl-action/pkg/install
// [toolcache]: https://pkg.go.dev/github.com/matzehuels/jarl-action/pkg/toolcache
// [actions]: https://pkg.go.dev/github.com/matzehuels/jarl-action/pkg/actions
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/jarl-action/pkg/pipeline
// [errors]: https://pkg.go.dev/github.com/matzehuels/jarl-action/pkg/errors
// [httputil]: https://pkg.go.dev/github.com/matzehuels/jarl-action/pkg/httputil
// [observability]: https://pkg.go.dev/github.com/matzehuels/jarl-action/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/jarl-action/pkg/buildinfo
package pkg
