package manifest

import (
	"slices"

	"github.com/BurntSushi/toml"
)

type pyproject struct {
	Project struct {
		Dependencies         []string            `toml:"dependencies"`
		OptionalDependencies map[string][]string `toml:"optional-dependencies"`
	} `toml:"project"`
	DependencyGroups map[string][]any `toml:"dependency-groups"`
	Tool             struct {
		Poetry struct {
			Dependencies map[string]any `toml:"dependencies"`
			Group        map[string]struct {
				Dependencies map[string]any `toml:"dependencies"`
			} `toml:"group"`
		} `toml:"poetry"`
	} `toml:"tool"`
}

// FromPyproject searches a pyproject.toml document for tool. The error is
// non-nil only when data is not valid TOML of the expected shape.
func FromPyproject(data []byte, tool string) (string, bool, error) {
	var p pyproject
	md, err := toml.Decode(string(data), &p)
	if err != nil {
		return "", false, err
	}

	deps := slices.Clone(p.Project.Dependencies)
	for _, group := range childKeys(md, "project", "optional-dependencies") {
		deps = append(deps, p.Project.OptionalDependencies[group]...)
	}
	for _, group := range childKeys(md, "dependency-groups") {
		for _, item := range p.DependencyGroups[group] {
			// include-group tables are not requirements
			if s, ok := item.(string); ok {
				deps = append(deps, s)
			}
		}
	}
	if spec, ok := firstMatch(deps, tool); ok {
		return spec, true, nil
	}

	spec, ok := fromPoetry(md, &p, tool)
	return spec, ok, nil
}

// fromPoetry handles Poetry projects, whose dependency tables map names to
// specs instead of listing PEP 508 strings. The main dependencies are
// searched before every group.
func fromPoetry(md toml.MetaData, p *pyproject, tool string) (string, bool) {
	poetry := p.Tool.Poetry
	tables := []map[string]any{poetry.Dependencies}
	for _, group := range childKeys(md, "tool", "poetry", "group") {
		tables = append(tables, poetry.Group[group].Dependencies)
	}

	for _, table := range tables {
		switch spec := table[tool].(type) {
		case string:
			return spec, true
		case map[string]any:
			if v, ok := spec["version"].(string); ok {
				return v, true
			}
		}
	}
	return "", false
}

// childKeys returns the names of the keys directly below prefix in the
// order they first appear in the document. Deeper keys count too, since a
// header like [a.b.c] does not always record its implicit parent tables.
func childKeys(md toml.MetaData, prefix ...string) []string {
	var names []string
	for _, key := range md.Keys() {
		if len(key) <= len(prefix) || !slices.Equal(key[:len(prefix)], prefix) {
			continue
		}
		if name := key[len(prefix)]; !slices.Contains(names, name) {
			names = append(names, name)
		}
	}
	return names
}
