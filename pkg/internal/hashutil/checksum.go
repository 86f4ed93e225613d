package hashutil

import (
	"crypto/sha256"
	"fmt"
	"io"

	"github.com/zeebo/xxh3"
)

// Fingerprint is a 128-bit content hash used to detect changed files
// without keeping or comparing their previous content.
type Fingerprint = xxh3.Uint128

// failureMarker prefixes every hashed failure so that an error can never
// collide with a successful read of the same bytes.
const failureMarker = "\x00tmplfs:read-failure\x00"

// FingerprintBytes hashes successfully read content.
func FingerprintBytes(data []byte) Fingerprint {
	return xxh3.Hash128(data)
}

// FingerprintFailure hashes a failed read. Identical failures (same kind and
// message) produce identical fingerprints.
func FingerprintFailure(err error) Fingerprint {
	return xxh3.HashString128(failureMarker + err.Error())
}

// Checksum calculates the SHA256 checksum of everything read from r.
func Checksum(r io.Reader) (string, error) {
	hash := sha256.New()
	if _, err := io.Copy(hash, r); err != nil {
		return "", err
	}

	return fmt.Sprintf("sha256:%x", hash.Sum(nil)), nil
}
