package version

import (
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/matzehuels/jarl-action/pkg/errors"
)

// Latest is the sentinel constraint for the newest published release.
const Latest = "latest"

// Clean normalizes a version string the way the runner tool cache does:
// surrounding whitespace and at most one leading "=" or "v" are removed.
// If the result is not a strict SemVer version, Clean returns the empty
// string, so "==1.0.0" is left to specifier matching.
func Clean(v string) string {
	s := strings.TrimSpace(v)
	if strings.HasPrefix(s, "=") || strings.HasPrefix(s, "v") {
		s = s[1:]
	}
	if _, err := semver.StrictNewVersion(s); err != nil {
		return ""
	}
	return s
}

// IsExplicit reports whether v names exactly one release, i.e. it is a full
// MAJOR.MINOR.PATCH version (optionally with pre-release and build parts)
// with no range operators or wildcards.
func IsExplicit(v string) bool {
	return Clean(v) != ""
}

// Less reports whether a has lower SemVer precedence than b.
// Both versions are parsed leniently ("v0.1" is accepted); unparsable input
// is an error rather than an arbitrary ordering.
func Less(a, b string) (bool, error) {
	va, err := semver.NewVersion(a)
	if err != nil {
		return false, errors.Wrap(errors.ErrCodeUnsupportedVersion, err, "invalid version %q", a)
	}
	vb, err := semver.NewVersion(b)
	if err != nil {
		return false, errors.Wrap(errors.ErrCodeUnsupportedVersion, err, "invalid version %q", b)
	}
	return va.LessThan(vb), nil
}
