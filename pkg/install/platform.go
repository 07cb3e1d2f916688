package install

import (
	"runtime"

	"github.com/matzehuels/jarl-action/pkg/errors"
)

// Release platforms, as they appear in artifact names.
const (
	PlatformLinux   = "unknown-linux-gnu"
	PlatformDarwin  = "apple-darwin"
	PlatformWindows = "pc-windows-msvc"
)

var platforms = map[string]string{
	"linux":   PlatformLinux,
	"darwin":  PlatformDarwin,
	"windows": PlatformWindows,
}

var architectures = map[string]string{
	"386":     "i686",
	"amd64":   "x86_64",
	"arm64":   "aarch64",
	"arm":     "armv7",
	"ppc64le": "powerpc64le",
	"s390x":   "s390x",
}

// Target identifies the release artifact for one host.
type Target struct {
	Platform string
	Arch     string
}

// Detect returns the Target of the running host.
func Detect() (Target, error) {
	return DetectFor(runtime.GOOS, runtime.GOARCH)
}

// DetectFor maps a GOOS/GOARCH pair to a release Target. Hosts without
// published artifacts yield an UNSUPPORTED_PLATFORM error.
func DetectFor(goos, goarch string) (Target, error) {
	platform, ok := platforms[goos]
	if !ok {
		return Target{}, errors.New(errors.ErrCodeUnsupportedPlatform, "Unsupported platform: %s", goos)
	}
	arch, ok := architectures[goarch]
	if !ok {
		return Target{}, errors.New(errors.ErrCodeUnsupportedPlatform, "Unsupported architecture: %s", goarch)
	}
	return Target{Platform: platform, Arch: arch}, nil
}

// Artifact returns the artifact base name, e.g. "jarl-x86_64-unknown-linux-gnu".
func (t Target) Artifact(tool string) string {
	return tool + "-" + t.Arch + "-" + t.Platform
}

// Extension returns the archive extension published for the platform.
func (t Target) Extension() string {
	if t.Platform == PlatformWindows {
		return ".zip"
	}
	return ".tar.gz"
}

// Executable returns the file name of the tool binary on the platform.
func (t Target) Executable(tool string) string {
	if t.Platform == PlatformWindows {
		return tool + ".exe"
	}
	return tool
}

func (t Target) String() string {
	return t.Arch + "-" + t.Platform
}
