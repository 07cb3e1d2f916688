package version

import (
	"strings"

	"github.com/Masterminds/semver/v3"
	pep440 "github.com/aquasecurity/go-pep440-version"
)

// Grammar identifies which constraint syntax produced a match.
type Grammar string

const (
	GrammarSemver Grammar = "semver"
	GrammarPEP440 Grammar = "pep440"
)

// MaxSatisfying returns the best version in versions for constraint.
// SemVer is tried first; PEP 440 only when SemVer yields no match. The
// returned string is the element of versions as given (tags are not
// normalized). ok is false when neither grammar matches.
func MaxSatisfying(versions []string, constraint string) (best string, grammar Grammar, ok bool) {
	if v, ok := MaxSemver(versions, constraint); ok {
		return v, GrammarSemver, true
	}
	if v, ok := MaxPEP440(versions, constraint); ok {
		return v, GrammarPEP440, true
	}
	return "", "", false
}

// MaxSemver returns the highest version by SemVer precedence that satisfies
// the SemVer range constraint. Versions that are not strict SemVer after
// [Clean] (such as "0.1") are skipped. A constraint that does not parse yields no match.
func MaxSemver(versions []string, constraint string) (string, bool) {
	c, err := semver.NewConstraint(strings.TrimSpace(constraint))
	if err != nil {
		return "", false
	}

	var best *semver.Version
	var bestRaw string
	for _, raw := range versions {
		cleaned := Clean(raw)
		if cleaned == "" {
			continue
		}
		v, err := semver.StrictNewVersion(cleaned)
		if err != nil || !c.Check(v) {
			continue
		}
		if best == nil || v.GreaterThan(best) {
			best, bestRaw = v, raw
		}
	}
	return bestRaw, best != nil
}

// MaxPEP440 returns the highest version by PEP 440 ordering that satisfies
// the PEP 440 specifier set constraint. Versions that do not parse under
// PEP 440 are skipped, and so are pre-releases unless the specifier itself
// names one. A specifier that does not parse yields no match.
func MaxPEP440(versions []string, constraint string) (string, bool) {
	spec, err := pep440.NewSpecifiers(strings.TrimSpace(constraint))
	if err != nil {
		return "", false
	}
	allowPre := namesPreRelease(constraint)

	var best pep440.Version
	var bestRaw string
	found := false
	for _, raw := range versions {
		v, err := pep440.Parse(strings.TrimSpace(raw))
		if err != nil || (v.IsPreRelease() && !allowPre) || !spec.Check(v) {
			continue
		}
		if !found || v.GreaterThan(best) {
			best, bestRaw, found = v, raw, true
		}
	}
	return bestRaw, found
}

// namesPreRelease reports whether any clause of a PEP 440 specifier set
// refers to a pre-release or dev release.
func namesPreRelease(constraint string) bool {
	for _, clause := range strings.Split(constraint, ",") {
		operand := strings.TrimLeft(strings.TrimSpace(clause), "~=!<>")
		if v, err := pep440.Parse(strings.TrimSuffix(strings.TrimSpace(operand), ".*")); err == nil && v.IsPreRelease() {
			return true
		}
	}
	return false
}
