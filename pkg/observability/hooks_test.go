package observability

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	// Install hooks
	i := NoopInstallHooks{}
	i.OnResolve(ctx, "latest", "0.3.0", time.Second, nil)
	i.OnDownload(ctx, "https://example.com/jarl.tar.gz", 1024, time.Second, nil)
	i.OnInvoke(ctx, "/opt/jarl", []string{"check", "."}, time.Second, nil)

	// Cache hooks
	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "jarl", "0.3.0", "x86_64")
	c.OnCacheMiss(ctx, "jarl", "0.3.0", "x86_64")
	c.OnCacheStore(ctx, "jarl", "0.3.0", "x86_64")

	// HTTP hooks
	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "GET", "api.github.com", "/repos/etiennebacher/jarl/releases")
	h.OnResponse(ctx, "GET", "api.github.com", "/repos/etiennebacher/jarl/releases", 200, time.Second)
	h.OnError(ctx, "GET", "api.github.com", "/repos/etiennebacher/jarl/releases", nil)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	if _, ok := Install().(NoopInstallHooks); !ok {
		t.Error("Install() should return NoopInstallHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	customInstall := &testInstallHooks{}
	SetInstallHooks(customInstall)
	if Install() != customInstall {
		t.Error("SetInstallHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	customHTTP := &testHTTPHooks{}
	SetHTTPHooks(customHTTP)
	if HTTP() != customHTTP {
		t.Error("SetHTTPHooks should set custom hooks")
	}

	Reset()
	if _, ok := Install().(NoopInstallHooks); !ok {
		t.Error("Reset() should restore NoopInstallHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testInstallHooks{}
	SetInstallHooks(custom)
	SetInstallHooks(nil)

	if Install() != custom {
		t.Error("SetInstallHooks(nil) should be ignored")
	}

	Reset()
}

func TestLogHooks(t *testing.T) {
	defer Reset()

	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	NewLogHooks(logger).Register()

	ctx := context.Background()
	Install().OnResolve(ctx, "^0.3", "0.3.1", 5*time.Millisecond, nil)
	Cache().OnCacheMiss(ctx, "jarl", "0.3.1", "aarch64")
	HTTP().OnError(ctx, "GET", "github.com", "/x", errors.New("refused"))

	out := buf.String()
	for _, want := range []string{"resolve", "0.3.1", "tool cache miss", "aarch64", "http error", "refused"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestLogHooks_SilentAtInfo(t *testing.T) {
	var buf bytes.Buffer
	h := NewLogHooks(log.NewWithOptions(&buf, log.Options{Level: log.InfoLevel}))
	h.OnCacheHit(context.Background(), "jarl", "0.3.1", "x86_64")
	if buf.Len() != 0 {
		t.Errorf("LogHooks should only log at debug level, got %q", buf.String())
	}
}

// Test implementations
type testInstallHooks struct {
	NoopInstallHooks
	_ int
}
type testCacheHooks struct {
	NoopCacheHooks
	_ int
}
type testHTTPHooks struct {
	NoopHTTPHooks
	_ int
}
