package types_test

import (
	"testing"

	"github.com/arthur-debert/tmplfs/pkg/errors"
	"github.com/arthur-debert/tmplfs/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePackageSpec(t *testing.T) {
	spec, err := types.ParsePackageSpec("@preview/test:0.1.0")
	require.NoError(t, err)
	assert.Equal(t, types.PackageSpec{
		Namespace: "preview",
		Name:      "test",
		Version:   types.Version{Major: 0, Minor: 1, Patch: 0},
	}, spec)
	assert.Equal(t, "@preview/test:0.1.0", spec.String())
	assert.Equal(t, "preview/test/0.1.0", spec.Dir())
}

func TestParsePackageSpecErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{name: "no_at", in: "preview/test:0.1.0"},
		{name: "no_namespace", in: "@/test:0.1.0"},
		{name: "no_slash", in: "@preview"},
		{name: "no_name", in: "@preview/:0.1.0"},
		{name: "no_version", in: "@preview/test"},
		{name: "empty_version", in: "@preview/test:"},
		{name: "short_version", in: "@preview/test:0.1"},
		{name: "prerelease", in: "@preview/test:0.1.0-rc1"},
		{name: "bad_name", in: "@preview/1test:0.1.0"},
		{name: "relative_path", in: "lib/util.typ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := types.ParsePackageSpec(tt.in)
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrPackageSpecInvalid))
		})
	}
}

func TestIsIdent(t *testing.T) {
	assert.True(t, types.IsIdent("invoice"))
	assert.True(t, types.IsIdent("_private"))
	assert.True(t, types.IsIdent("my-package_2"))
	assert.True(t, types.IsIdent("übersicht"))

	assert.False(t, types.IsIdent(""))
	assert.False(t, types.IsIdent("-leading"))
	assert.False(t, types.IsIdent("2fast"))
	assert.False(t, types.IsIdent("has space"))
}

func TestFileIDEquality(t *testing.T) {
	spec := types.PackageSpec{Namespace: "preview", Name: "pkg", Version: types.MustParseVersion("1.0.0")}

	a := types.PackageFile(spec, "lib.typ")
	b := types.NewFileID(&spec, types.NewVirtualPath("/lib.typ"))
	assert.Equal(t, a, b)

	ids := map[types.FileID]bool{a: true}
	assert.True(t, ids[b], "equal ids must hash equally")

	plain := types.TemplateFile("/lib.typ")
	assert.NotEqual(t, a, plain)
	_, scoped := plain.Package()
	assert.False(t, scoped)

	got, scoped := a.Package()
	assert.True(t, scoped)
	assert.Equal(t, spec, got)
	assert.Equal(t, "@preview/pkg:1.0.0/lib.typ", a.String())
}
