package hashutil

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFingerprintBytes(t *testing.T) {
	a := FingerprintBytes([]byte("= Invoice"))
	b := FingerprintBytes([]byte("= Invoice"))
	c := FingerprintBytes([]byte("= Receipt"))

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestFingerprintFailure(t *testing.T) {
	missing := errors.New("file not found: /main.typ")

	assert.Equal(t, FingerprintFailure(missing), FingerprintFailure(errors.New("file not found: /main.typ")))
	assert.NotEqual(t, FingerprintFailure(missing), FingerprintFailure(errors.New("is a directory")))
	assert.NotEqual(t, FingerprintFailure(missing), FingerprintBytes([]byte(missing.Error())))
}

func TestChecksum(t *testing.T) {
	sum, err := Checksum(strings.NewReader("hello world"))
	require.NoError(t, err)
	assert.Equal(t, "sha256:b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9", sum)
}
