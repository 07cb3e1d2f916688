// Package toolcache stores extracted tool releases on disk, keyed by
// (tool, version, arch).
//
// The layout matches the hosted GitHub runner tool cache so entries are
// shared with other actions on the same runner:
//
//	$RUNNER_TOOL_CACHE/
//	  jarl/
//	    0.0.250/
//	      x86_64/            extracted release
//	      x86_64.complete    marker written after a successful copy
//
// An entry without its marker is treated as absent. Entries are never
// invalidated, and concurrent writers are not coordinated: the last
// [Cache.Store] for a key wins.
package toolcache
