package errors

import (
	"encoding/hex"
	"path"
	"regexp"
	"strings"
	"unicode"
)

// ValidateVersionInput validates a user-supplied version constraint.
// Empty input is allowed and means "not given".
//
// The rules only reject input that can never be a constraint:
//   - No control characters or null bytes
//   - Maximum length of 256 characters
func ValidateVersionInput(v string) error {
	if len(v) > 256 {
		return New(ErrCodeInvalidInput, "version too long (max 256 characters)")
	}
	for _, r := range v {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "version contains invalid control characters")
		}
	}
	return nil
}

// ValidateArchiveEntry validates the name of an entry inside a release archive.
// It rejects names that would be written outside the extraction directory.
//
// Validation rules:
//   - Name cannot be empty
//   - No null bytes
//   - No absolute paths (leading / or a Windows volume)
//   - No parent directory segments (..)
func ValidateArchiveEntry(name string) error {
	if name == "" {
		return New(ErrCodeInvalidPath, "archive entry has an empty name")
	}
	if strings.ContainsRune(name, '\x00') {
		return New(ErrCodeInvalidPath, "archive entry %q contains a null byte", name)
	}

	slashed := strings.ReplaceAll(name, "\\", "/")
	if strings.HasPrefix(slashed, "/") || windowsVolumeRE.MatchString(slashed) {
		return New(ErrCodeInvalidPath, "archive entry %q is an absolute path", name)
	}
	for _, seg := range strings.Split(path.Clean(slashed), "/") {
		if seg == ".." {
			return New(ErrCodeInvalidPath, "archive entry %q escapes the extraction directory", name)
		}
	}
	return nil
}

var windowsVolumeRE = regexp.MustCompile(`^[A-Za-z]:`)

// checksumAlgorithms maps accepted digest prefixes to their hex length.
var checksumAlgorithms = map[string]int{
	"sha256": 64,
	"sha384": 96,
	"sha512": 128,
}

// ValidateChecksum validates an expected artifact checksum.
// Accepted forms are a bare hex string (sha256) or "<algorithm>:<hex>" with
// algorithm one of sha256, sha384 or sha512.
func ValidateChecksum(sum string) error {
	algo, encoded, found := strings.Cut(sum, ":")
	if !found {
		algo, encoded = "sha256", sum
	}
	want, ok := checksumAlgorithms[strings.ToLower(algo)]
	if !ok {
		return New(ErrCodeInvalidChecksum, "unsupported checksum algorithm %q", algo)
	}
	if len(encoded) != want {
		return New(ErrCodeInvalidChecksum, "%s checksum must be %d hex characters, got %d", algo, want, len(encoded))
	}
	if _, err := hex.DecodeString(encoded); err != nil {
		return New(ErrCodeInvalidChecksum, "checksum is not valid hex: %q", encoded)
	}
	return nil
}
