package toolcache

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/matzehuels/jarl-action/pkg/observability"
	"github.com/matzehuels/jarl-action/pkg/version"
)

const markerSuffix = ".complete"

// Cache is a tool cache rooted at a directory.
type Cache struct {
	root string
}

// Entry is one completed cache entry.
type Entry struct {
	Tool    string
	Version string
	Arch    string
	Path    string
}

// New creates a Cache rooted at root. The directory is created lazily by
// [Cache.Store].
func New(root string) *Cache {
	return &Cache{root: root}
}

// DefaultRoot returns the tool cache directory of the current runner:
// $RUNNER_TOOL_CACHE when set, otherwise a per-user cache directory.
func DefaultRoot() (string, error) {
	if dir := os.Getenv("RUNNER_TOOL_CACHE"); dir != "" {
		return dir, nil
	}
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, "jarl-action", "tools"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", "jarl-action", "tools"), nil
}

// Root returns the cache root directory.
func (c *Cache) Root() string { return c.root }

// Find returns the directory of the completed entry for an exact version.
func (c *Cache) Find(tool, v, arch string) (string, bool) {
	dir := c.entryDir(tool, v, arch)
	if _, err := os.Stat(dir + markerSuffix); err != nil {
		return "", false
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return "", false
	}
	return dir, true
}

// FindAllVersions returns the completed versions of tool for arch, sorted
// ascending. Versions that are not valid SemVer sort last in name order.
func (c *Cache) FindAllVersions(tool, arch string) []string {
	entries, err := os.ReadDir(filepath.Join(c.root, tool))
	if err != nil {
		return nil
	}
	var versions []string
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if _, ok := c.Find(tool, e.Name(), arch); ok {
			versions = append(versions, e.Name())
		}
	}
	sortVersions(versions)
	return versions
}

// Lookup evaluates constraint against the cached versions of tool for arch
// and returns the best entry and its exact version. When no cached version
// satisfies it, the constraint itself is tried as a literal version.
func (c *Cache) Lookup(ctx context.Context, tool, constraint, arch string) (dir, v string, ok bool) {
	v = constraint
	if best, _, found := version.MaxSatisfying(c.FindAllVersions(tool, arch), constraint); found {
		v = best
	}
	dir, ok = c.Find(tool, v, arch)
	if ok {
		observability.Cache().OnCacheHit(ctx, tool, v, arch)
		return dir, v, true
	}
	observability.Cache().OnCacheMiss(ctx, tool, constraint, arch)
	return "", "", false
}

// Store copies the directory src into the cache as (tool, v, arch) and
// marks it complete. Any previous entry for the key is replaced.
func (c *Cache) Store(ctx context.Context, src, tool, v, arch string) (string, error) {
	dir := c.entryDir(tool, v, arch)
	marker := dir + markerSuffix

	if err := os.RemoveAll(marker); err != nil {
		return "", err
	}
	if err := os.RemoveAll(dir); err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	if err := os.CopyFS(dir, os.DirFS(src)); err != nil {
		return "", err
	}
	if err := os.WriteFile(marker, nil, 0o644); err != nil {
		return "", err
	}

	observability.Cache().OnCacheStore(ctx, tool, v, arch)
	return dir, nil
}

// Entries lists every completed entry of tool, for all architectures.
func (c *Cache) Entries(tool string) ([]Entry, error) {
	versions, err := os.ReadDir(filepath.Join(c.root, tool))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var result []Entry
	for _, ver := range versions {
		if !ver.IsDir() {
			continue
		}
		archs, err := os.ReadDir(filepath.Join(c.root, tool, ver.Name()))
		if err != nil {
			return nil, err
		}
		for _, a := range archs {
			if !a.IsDir() {
				continue
			}
			if dir, ok := c.Find(tool, ver.Name(), a.Name()); ok {
				result = append(result, Entry{Tool: tool, Version: ver.Name(), Arch: a.Name(), Path: dir})
			}
		}
	}
	slices.SortStableFunc(result, func(a, b Entry) int {
		return compareVersions(a.Version, b.Version)
	})
	return result, nil
}

func (c *Cache) entryDir(tool, v, arch string) string {
	if clean := version.Clean(v); clean != "" {
		v = clean
	}
	return filepath.Join(c.root, tool, v, arch)
}

func sortVersions(versions []string) {
	slices.SortStableFunc(versions, compareVersions)
}

func compareVersions(a, b string) int {
	va, errA := semver.NewVersion(a)
	vb, errB := semver.NewVersion(b)
	switch {
	case errA == nil && errB == nil:
		return va.Compare(vb)
	case errA == nil:
		return -1
	case errB == nil:
		return 1
	}
	return strings.Compare(a, b)
}
