package install

import (
	_ "crypto/sha256"
	_ "crypto/sha512"
	"os"
	"strings"

	"github.com/opencontainers/go-digest"

	"github.com/matzehuels/jarl-action/pkg/errors"
)

// ParseChecksum converts a user-supplied checksum into a digest. A bare hex
// string is a sha256 sum; "<algorithm>:<hex>" selects sha256, sha384 or
// sha512.
func ParseChecksum(sum string) (digest.Digest, error) {
	sum = strings.ToLower(strings.TrimSpace(sum))
	if err := errors.ValidateChecksum(sum); err != nil {
		return "", err
	}
	if !strings.Contains(sum, ":") {
		sum = string(digest.SHA256) + ":" + sum
	}
	d, err := digest.Parse(sum)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidChecksum, err, "invalid checksum %q", sum)
	}
	return d, nil
}

// VerifyFile checks that the file at path has the expected digest. A
// mismatch is a CHECKSUM error.
func VerifyFile(path string, expected digest.Digest) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	actual, err := expected.Algorithm().FromReader(f)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "hash %s", path)
	}
	if actual != expected {
		return errors.New(errors.ErrCodeChecksum,
			"Checksum for %s did not match %s (got %s)", path, expected.Encoded(), actual.Encoded())
	}
	return nil
}
