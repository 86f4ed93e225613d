package types_test

import (
	"testing"

	"github.com/arthur-debert/tmplfs/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVersion(t *testing.T) {
	v, err := types.ParseVersion("1.12.3")
	require.NoError(t, err)
	assert.Equal(t, types.Version{Major: 1, Minor: 12, Patch: 3}, v)
	assert.Equal(t, "1.12.3", v.String())

	for _, bad := range []string{"", "1", "1.2", "1.2.3.4", "01.2.3", "a.b.c", "1.2.-3", "99999999999.0.0"} {
		_, err := types.ParseVersion(bad)
		assert.Error(t, err, "version %q", bad)
	}
}

func TestVersionText(t *testing.T) {
	var v types.Version
	require.NoError(t, v.UnmarshalText([]byte("2.10.0")))
	assert.Equal(t, types.Version{Major: 2, Minor: 10}, v)

	out, err := v.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "2.10.0", string(out))

	assert.Error(t, v.UnmarshalText([]byte("2.10")))
}
