package manifest

import (
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// FromFile returns the version specifier for tool declared in the manifest
// at path. The boolean is false when the file is missing, cannot be parsed,
// or does not mention tool.
func FromFile(path, tool string, logger *log.Logger) (string, bool) {
	if logger == nil {
		logger = log.Default()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Warn("Could not find file: " + path)
		} else {
			logger.Warn("Could not read file", "path", path, "err", err)
		}
		return "", false
	}

	var spec string
	var ok bool
	if strings.HasSuffix(path, ".txt") {
		spec, ok = FromRequirements(string(data), tool)
	} else {
		spec, ok, err = FromPyproject(data, tool)
		if err != nil {
			logger.Warn("Error while parsing " + path + ": " + err.Error())
			return "", false
		}
	}

	if ok {
		logger.Info("Found "+tool+" version in "+path, "version", spec)
	}
	return spec, ok
}

// FromRequirements scans a requirements listing for tool.
func FromRequirements(content, tool string) (string, bool) {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return firstMatch(lines, tool)
}

// firstMatch returns the specifier of the first requirement naming tool.
func firstMatch(deps []string, tool string) (string, bool) {
	for _, dep := range deps {
		if spec, ok := specFor(dep, tool); ok {
			return spec, true
		}
	}
	return "", false
}

// specFor reports whether dep is a requirement on tool and returns its
// specifier. The name must be followed by a character that cannot continue
// a package name, so "jarl" does not match "jarl-extras>=1".
func specFor(dep, tool string) (string, bool) {
	dep = stripMarkers(strings.TrimSpace(dep))
	rest, ok := strings.CutPrefix(dep, tool)
	if !ok || rest == "" || isNameChar(rest[0]) {
		return "", false
	}
	spec := strings.TrimSpace(rest)
	if spec == "" {
		return "", false
	}
	if v, pinned := strings.CutPrefix(spec, "=="); pinned {
		return strings.TrimSpace(v), true
	}
	return spec, true
}

// stripMarkers drops a trailing comment and a PEP 508 environment marker.
func stripMarkers(dep string) string {
	if i := strings.IndexByte(dep, '#'); i >= 0 {
		dep = dep[:i]
	}
	if i := strings.IndexByte(dep, ';'); i >= 0 {
		dep = dep[:i]
	}
	return strings.TrimSpace(dep)
}

func isNameChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' ||
		c == '.' || c == '_' || c == '-'
}
