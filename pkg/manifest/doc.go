// Package manifest extracts the pinned version of a tool from Python
// dependency manifests.
//
// Two shapes are understood:
//
//   - Flat requirements listings (any path ending in .txt), one
//     requirement per line.
//   - pyproject.toml, searched in PEP 621 project.dependencies, then
//     project.optional-dependencies, then PEP 735 dependency-groups, and
//     finally Poetry's tool.poetry dependency tables.
//
// A requirement such as "jarl==0.1.2" yields "0.1.2"; any other specifier
// ("jarl>=0.1,<0.3") is returned verbatim for the version resolver to
// interpret.
//
// Problems with a manifest are never errors: a missing or malformed file
// is logged as a warning and reported as "no version found".
package manifest
