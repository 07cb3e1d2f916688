package actions

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
)

// Problem matcher names.
const (
	MatcherCheck  = "check.json"
	MatcherFormat = "format.json"
)

//go:embed matchers/*.json
var matcherFS embed.FS

// WriteMatchers writes the named embedded problem matchers into dir and
// returns their paths in the same order.
func WriteMatchers(dir string, names ...string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	paths := make([]string, 0, len(names))
	for _, name := range names {
		data, err := matcherFS.ReadFile("matchers/" + name)
		if err != nil {
			return nil, fmt.Errorf("unknown matcher %q: %w", name, err)
		}
		path := filepath.Join(dir, "jarl-"+name)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}
