package install

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/opencontainers/go-digest"

	apperrors "github.com/matzehuels/jarl-action/pkg/errors"
	"github.com/matzehuels/jarl-action/pkg/integrations"
	"github.com/matzehuels/jarl-action/pkg/toolcache"
)

// DefaultServerURL is the host releases are downloaded from.
const DefaultServerURL = "https://github.com"

// Config describes where releases come from and where they are cached.
type Config struct {
	Tool      string // tool-cache name and artifact prefix, e.g. "jarl"
	Owner     string
	Repo      string
	ServerURL string // defaults to DefaultServerURL
	TempDir   string // parent for scratch directories; os.TempDir() when empty
	Cache     *toolcache.Cache
	Logger    *log.Logger
}

// Request is one acquisition.
type Request struct {
	Target   Target
	Version  string // resolved release tag
	Checksum string // optional; see ParseChecksum
	Token    string // optional GitHub token sent with the download
}

// Result describes an installed release.
type Result struct {
	Version string // exact version installed (the cached version on a hit)
	Dir     string // directory holding the executable
	Cached  bool   // true when no download happened
}

// Installer obtains release artifacts from the tool cache or GitHub.
type Installer struct {
	cfg    Config
	client *integrations.Client
}

// New creates an Installer.
func New(cfg Config) *Installer {
	if cfg.ServerURL == "" {
		cfg.ServerURL = DefaultServerURL
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	return &Installer{cfg: cfg, client: integrations.NewDownloadClient(nil)}
}

// WithClient replaces the download client. It is intended for tests.
func (i *Installer) WithClient(c *integrations.Client) *Installer {
	i.client = c
	return i
}

// DownloadURL returns the release asset URL for version on target.
func (i *Installer) DownloadURL(version string, target Target) string {
	return fmt.Sprintf("%s/%s/%s/releases/download/%s/%s%s",
		strings.TrimSuffix(i.cfg.ServerURL, "/"), i.cfg.Owner, i.cfg.Repo,
		version, target.Artifact(i.cfg.Tool), target.Extension())
}

// Acquire returns the installed directory for req, downloading and
// caching the release when the tool cache has no matching entry.
func (i *Installer) Acquire(ctx context.Context, req Request) (*Result, error) {
	logger := i.cfg.Logger
	logger.Debug("trying tool cache", "tool", i.cfg.Tool, "version", req.Version, "arch", req.Target.Arch)
	logger.Debug("cached versions", "versions", i.cfg.Cache.FindAllVersions(i.cfg.Tool, req.Target.Arch))

	if dir, v, ok := i.cfg.Cache.Lookup(ctx, i.cfg.Tool, req.Version, req.Target.Arch); ok {
		logger.Info("Found " + i.cfg.Tool + " in tool-cache for " + v)
		return &Result{Version: v, Dir: dir, Cached: true}, nil
	}

	var expected digest.Digest
	if req.Checksum != "" {
		d, err := ParseChecksum(req.Checksum)
		if err != nil {
			return nil, err
		}
		expected = d
	}

	scratch, err := os.MkdirTemp(i.cfg.TempDir, i.cfg.Tool+"-")
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, err, "create scratch dir")
	}
	defer os.RemoveAll(scratch)

	url := i.DownloadURL(req.Version, req.Target)
	archive := filepath.Join(scratch, req.Target.Artifact(i.cfg.Tool)+req.Target.Extension())
	if err := i.download(ctx, url, archive, req.Token); err != nil {
		return nil, err
	}
	logger.Debug("downloaded release", "url", url, "path", archive)

	if expected != "" {
		if err := VerifyFile(archive, expected); err != nil {
			return nil, err
		}
		logger.Debug("checksum verified", "digest", expected)
	}

	extracted := filepath.Join(scratch, "extract")
	if err := Extract(ctx, archive, req.Target.Extension(), extracted); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, err, "extract %s", filepath.Base(archive))
	}
	// Unix archives wrap their contents in a directory named after the artifact.
	if req.Target.Extension() == ".tar.gz" {
		extracted = filepath.Join(extracted, req.Target.Artifact(i.cfg.Tool))
	}
	if err := logContents(logger, extracted); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, err, "read extracted release")
	}

	dir, err := i.cfg.Cache.Store(ctx, extracted, i.cfg.Tool, req.Version, req.Target.Arch)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, err, "cache %s %s", i.cfg.Tool, req.Version)
	}
	return &Result{Version: req.Version, Dir: dir}, nil
}

// download fetches url into dst. A rejected token is dropped once, since
// release assets of public repositories need no authentication.
func (i *Installer) download(ctx context.Context, url, dst, token string) error {
	client := i.client
	if token != "" {
		client = client.WithHeader("Authorization", "Bearer "+token)
	}

	_, err := client.Download(ctx, url, dst)
	if errors.Is(err, integrations.ErrUnauthorized) && token != "" {
		i.cfg.Logger.Info("No (valid) GitHub token provided. Falling back to anonymous. Requests might be rate limited.")
		_, err = client.Without("Authorization").Download(ctx, url, dst)
	}

	switch {
	case err == nil:
		return nil
	case apperrors.GetCode(err) != "":
		return err
	case errors.Is(err, integrations.ErrNotFound):
		return apperrors.Wrap(apperrors.ErrCodeNotFound, err, "download %s", url)
	case errors.Is(err, context.Canceled):
		return err
	default:
		return apperrors.Wrap(apperrors.ErrCodeNetwork, err, "download %s", url)
	}
}

func logContents(logger *log.Logger, dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	names := make([]string, len(entries))
	for j, e := range entries {
		names[j] = e.Name()
	}
	logger.Debug("contents of "+dir, "files", strings.Join(names, ", "))
	return nil
}
