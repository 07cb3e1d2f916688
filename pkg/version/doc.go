// Package version resolves jarl version constraints to concrete releases.
//
// # Overview
//
// A constraint is an opaque string at the boundary. It is one of:
//
//   - "latest": the release GitHub currently marks as latest
//   - an explicit version ("0.0.247"), used as-is without listing releases
//   - a range in SemVer syntax ("^0.1", "<0.3.0", "0.2.x")
//   - a specifier in PEP 440 syntax (">=0.1,<0.3", "~=0.2.1")
//
// The two range grammars are never merged into one version type. A range
// is first evaluated with SemVer rules and, only when that yields nothing,
// with PEP 440 rules. In both cases the highest satisfying version under
// that grammar's own ordering wins.
//
// # Usage
//
//	r := version.NewResolver(releases, logger)
//	v, err := r.Resolve(ctx, ">=0.1,<0.3")
//
// [MaxSatisfying] exposes the matching rule on its own; the tool cache uses
// it to evaluate locally cached versions.
package version
