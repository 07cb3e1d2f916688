package actions

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Runner writes workflow commands to out and runner files named by the
// environment.
type Runner struct {
	out io.Writer
}

// New creates a Runner that writes workflow commands to out.
func New(out io.Writer) *Runner {
	return &Runner{out: out}
}

// AddPath prepends dir to PATH for this process and later steps.
func (r *Runner) AddPath(dir string) error {
	if err := appendFile("GITHUB_PATH", dir+"\n"); err != nil {
		return err
	}
	return os.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))
}

// ExportVariable sets name for this process and later steps.
func (r *Runner) ExportVariable(name, value string) error {
	if err := appendFile("GITHUB_ENV", keyValue(name, value)); err != nil {
		return err
	}
	return os.Setenv(name, value)
}

// SetOutput sets a step output. Outside a runner the legacy set-output
// command is written to out instead.
func (r *Runner) SetOutput(name, value string) error {
	if os.Getenv("GITHUB_OUTPUT") == "" {
		r.command("set-output", map[string]string{"name": name}, value)
		return nil
	}
	return appendFile("GITHUB_OUTPUT", keyValue(name, value))
}

// AddMatcher registers the problem matcher file at path.
func (r *Runner) AddMatcher(path string) {
	r.command("add-matcher", nil, path)
}

// Error writes an error annotation.
func (r *Runner) Error(msg string) { r.command("error", nil, msg) }

// Warning writes a warning annotation.
func (r *Runner) Warning(msg string) { r.command("warning", nil, msg) }

// IsDebug reports whether step debug logging is enabled for the run.
func IsDebug() bool {
	return os.Getenv("RUNNER_DEBUG") == "1"
}

// Input returns the action input name as passed by the runner
// (INPUT_<NAME>, spaces replaced by underscores), trimmed.
func Input(name string) string {
	key := "INPUT_" + strings.ToUpper(strings.ReplaceAll(name, " ", "_"))
	return strings.TrimSpace(os.Getenv(key))
}

// TempDir returns the runner's scratch directory, or the system one.
func TempDir() string {
	if dir := os.Getenv("RUNNER_TEMP"); dir != "" {
		return dir
	}
	return os.TempDir()
}

func (r *Runner) command(name string, props map[string]string, msg string) {
	var b strings.Builder
	b.WriteString("::")
	b.WriteString(name)
	first := true
	for k, v := range props {
		if first {
			b.WriteByte(' ')
			first = false
		} else {
			b.WriteByte(',')
		}
		b.WriteString(k + "=" + escapeProperty(v))
	}
	b.WriteString("::")
	b.WriteString(escapeData(msg))
	fmt.Fprintln(r.out, b.String())
}

// keyValue formats an entry of $GITHUB_ENV or $GITHUB_OUTPUT with a random
// heredoc delimiter, so values may span lines.
func keyValue(name, value string) string {
	delim := "ghadelimiter_" + uuid.NewString()
	return name + "<<" + delim + "\n" + value + "\n" + delim + "\n"
}

// appendFile appends content to the runner file named by env. It is a
// no-op when the variable is unset.
func appendFile(env, content string) error {
	path := os.Getenv(env)
	if path == "" {
		return nil
	}
	f, err := os.OpenFile(filepath.Clean(path), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open %s: %w", env, err)
	}
	if _, err := f.WriteString(content); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", env, err)
	}
	return f.Close()
}

var (
	dataEscaper     = strings.NewReplacer("%", "%25", "\r", "%0D", "\n", "%0A")
	propertyEscaper = strings.NewReplacer("%", "%25", "\r", "%0D", "\n", "%0A", ":", "%3A", ",", "%2C")
)

func escapeData(s string) string     { return dataEscaper.Replace(s) }
func escapeProperty(s string) string { return propertyEscaper.Replace(s) }
