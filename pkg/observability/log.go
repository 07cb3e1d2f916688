package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks implements every hook interface by writing debug-level entries
// to a logger.
type LogHooks struct {
	Logger *log.Logger
}

// NewLogHooks creates LogHooks writing to l. If l is nil, log.Default() is used.
func NewLogHooks(l *log.Logger) *LogHooks {
	if l == nil {
		l = log.Default()
	}
	return &LogHooks{Logger: l}
}

// Register installs h as the install, cache and HTTP hooks.
func (h *LogHooks) Register() {
	SetInstallHooks(h)
	SetCacheHooks(h)
	SetHTTPHooks(h)
}

func (h *LogHooks) OnResolve(_ context.Context, constraint, resolved string, d time.Duration, err error) {
	h.Logger.Debug("resolve", "constraint", constraint, "version", resolved, "duration", d.Round(time.Millisecond), "err", err)
}

func (h *LogHooks) OnDownload(_ context.Context, url string, size int64, d time.Duration, err error) {
	h.Logger.Debug("download", "url", url, "bytes", size, "duration", d.Round(time.Millisecond), "err", err)
}

func (h *LogHooks) OnInvoke(_ context.Context, path string, args []string, d time.Duration, err error) {
	h.Logger.Debug("invoke", "path", path, "args", args, "duration", d.Round(time.Millisecond), "err", err)
}

func (h *LogHooks) OnCacheHit(_ context.Context, tool, version, arch string) {
	h.Logger.Debug("tool cache hit", "tool", tool, "version", version, "arch", arch)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, tool, version, arch string) {
	h.Logger.Debug("tool cache miss", "tool", tool, "version", version, "arch", arch)
}

func (h *LogHooks) OnCacheStore(_ context.Context, tool, version, arch string) {
	h.Logger.Debug("tool cache store", "tool", tool, "version", version, "arch", arch)
}

func (h *LogHooks) OnRequest(_ context.Context, method, host, path string) {
	h.Logger.Debug("http request", "method", method, "host", host, "path", path)
}

func (h *LogHooks) OnResponse(_ context.Context, method, host, path string, status int, d time.Duration) {
	h.Logger.Debug("http response", "method", method, "host", host, "path", path, "status", status, "duration", d.Round(time.Millisecond))
}

func (h *LogHooks) OnError(_ context.Context, method, host, path string, err error) {
	h.Logger.Debug("http error", "method", method, "host", host, "path", path, "err", err)
}

var (
	_ InstallHooks = (*LogHooks)(nil)
	_ CacheHooks   = (*LogHooks)(nil)
	_ HTTPHooks    = (*LogHooks)(nil)
)
