package version

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/charmbracelet/log"

	apperrors "github.com/matzehuels/jarl-action/pkg/errors"
)

type fakeReleases struct {
	latest     string
	latestErr  error
	tags       []string
	listErr    error
	latestCall int
	listCalls  int
}

func (f *fakeReleases) Latest(context.Context) (string, error) {
	f.latestCall++
	return f.latest, f.latestErr
}

func (f *fakeReleases) List(context.Context) ([]string, error) {
	f.listCalls++
	return f.tags, f.listErr
}

func testResolver(f *fakeReleases) *Resolver {
	return NewResolver(f, log.New(&bytes.Buffer{}))
}

func TestResolve_Explicit(t *testing.T) {
	for _, v := range []string{"0.0.247", "0.3.1", "1.0.0-rc.2"} {
		f := &fakeReleases{listErr: errors.New("must not list")}
		got, err := testResolver(f).Resolve(context.Background(), v)
		if err != nil {
			t.Fatalf("Resolve(%q) error: %v", v, err)
		}
		if got != v {
			t.Errorf("Resolve(%q) = %q, want unchanged", v, got)
		}
		if f.listCalls != 0 || f.latestCall != 0 {
			t.Errorf("Resolve(%q) made %d list and %d latest calls, want none", v, f.listCalls, f.latestCall)
		}
	}
}

func TestResolve_Latest(t *testing.T) {
	f := &fakeReleases{latest: "0.4.2", tags: []string{"0.5.0"}}
	got, err := testResolver(f).Resolve(context.Background(), Latest)
	if err != nil {
		t.Fatalf("Resolve(latest) error: %v", err)
	}
	if got != "0.4.2" {
		t.Errorf("Resolve(latest) = %q, want %q", got, "0.4.2")
	}
	if f.listCalls != 0 {
		t.Errorf("Resolve(latest) listed releases %d times, want 0", f.listCalls)
	}
}

func TestResolve_LatestEmpty(t *testing.T) {
	f := &fakeReleases{}
	_, err := testResolver(f).Resolve(context.Background(), Latest)
	if !apperrors.Is(err, apperrors.ErrCodeRegistry) {
		t.Errorf("Resolve(latest) error = %v, want REGISTRY", err)
	}
}

func TestResolve_LatestError(t *testing.T) {
	boom := errors.New("boom")
	f := &fakeReleases{latestErr: boom}
	if _, err := testResolver(f).Resolve(context.Background(), Latest); !errors.Is(err, boom) {
		t.Errorf("Resolve(latest) error = %v, want %v", err, boom)
	}
}

func TestResolve_Range(t *testing.T) {
	tests := []struct {
		constraint string
		want       string
	}{
		{"<2.0.0", "1.2.0"},
		{">=1.0,<2.0", "1.2.0"},
		{"~=1.0", "1.2.0"},
		{"==1.0.0", "1.0.0"},
		{"^2", "2.0.0"},
	}

	for _, tt := range tests {
		t.Run(tt.constraint, func(t *testing.T) {
			f := &fakeReleases{tags: []string{"1.0.0", "1.2.0", "2.0.0"}}
			got, err := testResolver(f).Resolve(context.Background(), tt.constraint)
			if err != nil {
				t.Fatalf("Resolve(%q) error: %v", tt.constraint, err)
			}
			if got != tt.want {
				t.Errorf("Resolve(%q) = %q, want %q", tt.constraint, got, tt.want)
			}
			if f.listCalls != 1 {
				t.Errorf("Resolve(%q) listed releases %d times, want 1", tt.constraint, f.listCalls)
			}
		})
	}
}

func TestResolve_SkipsPreReleases(t *testing.T) {
	tests := []struct {
		tags       []string
		constraint string
		want       string
	}{
		{[]string{"0.2.0", "0.2.5", "0.3.0rc1"}, "~=0.2", "0.2.5"},
		{[]string{"0.2.0", "0.2.5", "0.3.0-rc.1"}, ">0.2.0", "0.2.5"},
	}

	for _, tt := range tests {
		f := &fakeReleases{tags: tt.tags}
		got, err := testResolver(f).Resolve(context.Background(), tt.constraint)
		if err != nil {
			t.Fatalf("Resolve(%q) error: %v", tt.constraint, err)
		}
		if got != tt.want {
			t.Errorf("Resolve(%q) = %q, want %q", tt.constraint, got, tt.want)
		}
	}
}

func TestResolve_NoMatch(t *testing.T) {
	f := &fakeReleases{tags: []string{"1.0.0", "1.2.0"}}
	_, err := testResolver(f).Resolve(context.Background(), ">=3.0")
	if !apperrors.Is(err, apperrors.ErrCodeNoMatch) {
		t.Fatalf("Resolve() error = %v, want NO_MATCH", err)
	}
	if msg := apperrors.UserMessage(err); msg != "no version found for >=3.0" {
		t.Errorf("UserMessage() = %q", msg)
	}
}

func TestResolve_ListError(t *testing.T) {
	boom := apperrors.New(apperrors.ErrCodeRegistry, "empty")
	f := &fakeReleases{listErr: boom}
	if _, err := testResolver(f).Resolve(context.Background(), "^1"); !errors.Is(err, boom) {
		t.Errorf("Resolve() error = %v, want %v", err, boom)
	}
}

func TestNewResolver_NilLogger(t *testing.T) {
	r := NewResolver(&fakeReleases{}, nil)
	if r.logger == nil {
		t.Error("NewResolver() should default the logger")
	}
}
