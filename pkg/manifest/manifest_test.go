package manifest

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestFromRequirements(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
		wantOK  bool
	}{
		{"pinned", "requests>=2\njarl==0.0.250\n", "0.0.250", true},
		{"range kept verbatim", "jarl>=0.0.247,<0.1\n", ">=0.0.247,<0.1", true},
		{"compatible release", "jarl~=0.1.0", "~=0.1.0", true},
		{"spaces around operator", "  jarl == 0.1.2  ", "0.1.2", true},
		{"crlf", "flake8\r\njarl==0.2.0\r\n", "0.2.0", true},
		{"marker dropped", "jarl==0.1.0 ; python_version >= '3.9'", "0.1.0", true},
		{"comment dropped", "jarl>=0.1 # linter", ">=0.1", true},
		{"longer name skipped", "jarl-extras==9.9\njarl==0.1.0", "0.1.0", true},
		{"dotted name skipped", "jarl.core==1.0", "", false},
		{"bare name", "jarl\n", "", false},
		{"first match wins", "jarl==0.1.0\njarl==0.2.0", "0.1.0", true},
		{"absent", "ruff==0.5.0\n", "", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FromRequirements(tt.content, "jarl")
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("FromRequirements() = %q, %v; want %q, %v", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestFromPyproject(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
		wantOK  bool
	}{
		{
			name: "project dependencies",
			content: `[project]
name = "demo"
dependencies = ["requests", "jarl==0.0.248"]
`,
			want:   "0.0.248",
			wantOK: true,
		},
		{
			name: "optional dependencies",
			content: `[project]
dependencies = ["requests"]

[project.optional-dependencies]
docs = ["mkdocs"]
lint = ["jarl>=0.0.247"]
`,
			want:   ">=0.0.247",
			wantOK: true,
		},
		{
			name: "dependency groups skip include tables",
			content: `[dependency-groups]
test = ["pytest"]
dev = [{include-group = "test"}, "jarl==0.1.0"]
`,
			want:   "0.1.0",
			wantOK: true,
		},
		{
			name: "project wins over groups",
			content: `[project]
dependencies = ["jarl==0.1.0"]

[dependency-groups]
dev = ["jarl==0.2.0"]
`,
			want:   "0.1.0",
			wantOK: true,
		},
		{
			name: "poetry main dependencies",
			content: `[tool.poetry.dependencies]
python = "^3.11"
jarl = "^0.1.0"
`,
			want:   "^0.1.0",
			wantOK: true,
		},
		{
			name: "poetry group",
			content: `[tool.poetry.dependencies]
python = "^3.11"

[tool.poetry.group.dev.dependencies]
jarl = "0.0.250"
`,
			want:   "0.0.250",
			wantOK: true,
		},
		{
			name: "poetry table with version",
			content: `[tool.poetry.group.lint.dependencies]
jarl = { version = ">=0.1", optional = true }
`,
			want:   ">=0.1",
			wantOK: true,
		},
		{
			name: "poetry main before groups",
			content: `[tool.poetry.group.dev.dependencies]
jarl = "0.2.0"

[tool.poetry.dependencies]
jarl = "0.1.0"
`,
			want:   "0.1.0",
			wantOK: true,
		},
		{
			name: "poetry table without version",
			content: `[tool.poetry.dependencies]
jarl = { git = "https://github.com/etiennebacher/jarl" }
`,
			wantOK: false,
		},
		{
			name:    "not present",
			content: "[project]\ndependencies = [\"ruff\"]\n",
			wantOK:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok, err := FromPyproject([]byte(tt.content), "jarl")
			if err != nil {
				t.Fatalf("FromPyproject() error: %v", err)
			}
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("FromPyproject() = %q, %v; want %q, %v", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestFromPyprojectInvalid(t *testing.T) {
	if _, _, err := FromPyproject([]byte("[project\n"), "jarl"); err == nil {
		t.Error("expected parse error")
	}
}

func TestFromFile(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
		return path
	}

	t.Run("requirements", func(t *testing.T) {
		path := write("requirements-dev.txt", "jarl==0.0.260\n")
		got, ok := FromFile(path, "jarl", log.New(&bytes.Buffer{}))
		if !ok || got != "0.0.260" {
			t.Errorf("FromFile() = %q, %v", got, ok)
		}
	})

	t.Run("pyproject", func(t *testing.T) {
		path := write("pyproject.toml", "[project]\ndependencies = [\"jarl>=0.0.247\"]\n")
		got, ok := FromFile(path, "jarl", log.New(&bytes.Buffer{}))
		if !ok || got != ">=0.0.247" {
			t.Errorf("FromFile() = %q, %v", got, ok)
		}
	})

	t.Run("missing file warns", func(t *testing.T) {
		var buf bytes.Buffer
		_, ok := FromFile(filepath.Join(dir, "nope.toml"), "jarl", log.New(&buf))
		if ok {
			t.Error("expected no version")
		}
		if !strings.Contains(buf.String(), "Could not find file") {
			t.Errorf("log = %q", buf.String())
		}
	})

	t.Run("parse error warns", func(t *testing.T) {
		var buf bytes.Buffer
		path := write("broken.toml", "[project\n")
		_, ok := FromFile(path, "jarl", log.New(&buf))
		if ok {
			t.Error("expected no version")
		}
		if !strings.Contains(buf.String(), "Error while parsing") {
			t.Errorf("log = %q", buf.String())
		}
	})
}
